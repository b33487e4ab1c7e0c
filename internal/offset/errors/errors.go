// Package errors はオフセット適用処理のエラー種別を提供します
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSplitsFound はステップデータにスプリットがない場合のエラー
	ErrNoSplitsFound = errors.New("スプリットが見つかりません")

	// ErrNoBlocksInFirstSplit は最初のスプリットにブロックがない場合のエラー
	ErrNoBlocksInFirstSplit = errors.New("最初のスプリットにブロックが見つかりません")

	// ErrDecodeFailure は譜面の展開に失敗した場合のエラー
	ErrDecodeFailure = errors.New("譜面の読み込みに失敗しました")

	// ErrEncodeFailure は譜面の書き出しに失敗した場合のエラー
	ErrEncodeFailure = errors.New("譜面の書き出しに失敗しました")

	// ErrContainerIO はコンテナの読み書きに失敗した場合のエラー
	ErrContainerIO = errors.New("コンテナの読み書きに失敗しました")

	// ErrFileIO はファイルの読み書きに失敗した場合のエラー
	ErrFileIO = errors.New("ファイルの読み書きに失敗しました")

	// ErrSourceNotFound は STEP.DAT も STEP ディレクトリも見つからない場合のエラー
	ErrSourceNotFound = errors.New("STEP.DAT または STEP ディレクトリが見つかりません")
)

// Kind はエラーの種別です
type Kind int

const (
	KindUnknown Kind = iota
	KindNoSplitsFound
	KindNoBlocksInFirstSplit
	KindDecodeFailure
	KindEncodeFailure
	KindContainerIO
	KindFileIO
	KindSourceNotFound
)

var kinds = []struct {
	kind Kind
	err  error
	name string
}{
	{KindNoSplitsFound, ErrNoSplitsFound, "NoSplitsFound"},
	{KindNoBlocksInFirstSplit, ErrNoBlocksInFirstSplit, "NoBlocksInFirstSplit"},
	{KindDecodeFailure, ErrDecodeFailure, "DecodeFailure"},
	{KindEncodeFailure, ErrEncodeFailure, "EncodeFailure"},
	{KindContainerIO, ErrContainerIO, "ContainerIoFailure"},
	{KindFileIO, ErrFileIO, "FileIoFailure"},
	{KindSourceNotFound, ErrSourceNotFound, "SourceNotFound"},
}

// String は種別名を返します
func (k Kind) String() string {
	for _, entry := range kinds {
		if entry.kind == k {
			return entry.name
		}
	}
	return "Unknown"
}

// KindOf はエラーチェーンから種別を判定します
func KindOf(err error) Kind {
	for _, entry := range kinds {
		if errors.Is(err, entry.err) {
			return entry.kind
		}
	}
	return KindUnknown
}

// ItemError はメンバーまたはファイル1件の処理エラー
type ItemError struct {
	Name string // メンバー名またはファイルパス
	Err  error  // 元のエラー
}

// Error はエラーメッセージを返します
func (e *ItemError) Error() string {
	return fmt.Sprintf("%s: %v", e.Name, e.Err)
}

// Unwrap は元のエラーを返します
func (e *ItemError) Unwrap() error {
	return e.Err
}

// Kind はエラーの種別を返します
func (e *ItemError) Kind() Kind {
	return KindOf(e.Err)
}

// NewItemError は新しいItemErrorを作成します
func NewItemError(name string, err error) *ItemError {
	return &ItemError{
		Name: name,
		Err:  err,
	}
}
