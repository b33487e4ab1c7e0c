// Package crypto は STEP.DAT などのリソースパックで使われる簡易難読化を提供します。
//
// 主な機能:
//   - XOR: 単一キーによる XOR
//   - RollXOR: バイトごとにキーを加算していくローリング XOR
package crypto

// XOR はデータストリームの各バイトを指定されたキーで XOR します。
func XOR(data []byte, key byte) {
	for i := range data {
		data[i] ^= key
	}
}

// RollXOR はデータの各バイトを現在のキーで XOR し、1バイトごとにキーへ step を加算します。
// XOR なので同じ key と step で2回適用すると元に戻ります。
// 戻り値は処理後のキーです。
func RollXOR(data []byte, key, step byte) byte {
	currentKey := key
	for i := range data {
		data[i] ^= currentKey
		currentKey += step
	}
	return currentKey
}
