// Package euckr はゲームデータ内の EUC-KR 文字列と UTF-8 の相互変換を行います
package euckr

import (
	"bytes"
	"io"

	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"
)

// Decode は EUC-KR のバイト列を UTF-8 文字列に変換します
func Decode(b []byte) (string, error) {
	reader := bytes.NewReader(b)
	ret, err := io.ReadAll(transform.NewReader(reader, korean.EUCKR.NewDecoder()))
	if err != nil {
		return "", err
	}
	return string(ret), nil
}

// Encode は UTF-8 文字列を EUC-KR のバイト列に変換します
func Encode(s string) ([]byte, error) {
	ret, _, err := transform.Bytes(korean.EUCKR.NewEncoder(), []byte(s))
	if err != nil {
		return nil, err
	}
	return ret, nil
}
