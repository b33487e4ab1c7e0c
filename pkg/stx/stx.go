// Package stx はリズムゲームの譜面ファイル（.STXファイル）を読み書きするためのパッケージです。
//
// STX ファイルはレガシーモード（Normal, Hard, Crazy, Freestyle, Nightmare）ごとに
// 1つのステップデータセクションを持ちます。各セクションはスプリットの列で、
// スプリットはブロックの列です。ブロックはミリ秒単位のディレイを持ちます。
//
// 基本的な使い方:
//
//	file, err := stx.Open("STEP/001.STX")
//	if err != nil {
//	    return err
//	}
//	for _, mode := range stx.LegacyModes() {
//	    data, err := file.ReadStepData(mode)
//	    // data を編集...
//	    err = file.SetStepData(file.Version(), data)
//	}
//	buf, err := file.Encode(file.Version())
package stx

import (
	"fmt"

	"github.com/shiroemons/go-stxoffset/pkg/satmath"
)

// Version は STX ファイルのフォーマットバージョンです
type Version uint16

const (
	// Version1 は初期フォーマット（スクロール速度なし）
	Version1 Version = 1
	// Version2 はブロックにスクロール速度を持つフォーマット
	Version2 Version = 2
)

// IsSupported はバージョンが読み書き可能かどうかを返します
func (v Version) IsSupported() bool {
	return v == Version1 || v == Version2
}

func (v Version) String() string {
	return fmt.Sprintf("v%d", uint16(v))
}

// LegacyMode は譜面が持つレガシーモードです
type LegacyMode uint16

const (
	ModeNormal LegacyMode = iota
	ModeHard
	ModeCrazy
	ModeFreestyle
	ModeNightmare
)

var legacyModes = [...]LegacyMode{
	ModeNormal,
	ModeHard,
	ModeCrazy,
	ModeFreestyle,
	ModeNightmare,
}

var legacyModeNames = [...]string{
	ModeNormal:    "Normal",
	ModeHard:      "Hard",
	ModeCrazy:     "Crazy",
	ModeFreestyle: "Freestyle",
	ModeNightmare: "Nightmare",
}

// LegacyModes は全てのレガシーモードを正規の順序で返します
func LegacyModes() []LegacyMode {
	modes := make([]LegacyMode, len(legacyModes))
	copy(modes, legacyModes[:])
	return modes
}

// IsValid はモードが既知のものかどうかを返します
func (m LegacyMode) IsValid() bool {
	return int(m) < len(legacyModes)
}

func (m LegacyMode) String() string {
	if !m.IsValid() {
		return fmt.Sprintf("LegacyMode(%d)", uint16(m))
	}
	return legacyModeNames[m]
}

// Block はタイミングの最小単位です
type Block struct {
	DelayMs        int32   // ディレイ（ミリ秒）
	BPM            float32 // テンポ
	Speed          float32 // スクロール速度（Version2 のみ保存される）
	BeatPerMeasure uint8
	BeatSplit      uint8
	Notes          []byte // ノーツ行データ（解釈しない）
}

// AddDelay はディレイに delta ミリ秒を飽和演算で加算します
func (b *Block) AddDelay(delta int32) {
	b.DelayMs = satmath.Add(b.DelayMs, delta)
}

// Split はブロックの列です
type Split struct {
	Blocks []Block
}

// StepData は1つのレガシーモードのステップデータです
type StepData struct {
	Mode   LegacyMode
	Splits []Split
}
