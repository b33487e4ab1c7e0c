package respack

import "errors"

var (
	// ErrInvalidMagic はファイル先頭のマジックが一致しない場合のエラー
	ErrInvalidMagic = errors.New("respack: invalid magic")

	// ErrUnsupportedVersion は未対応のバージョンの場合のエラー
	ErrUnsupportedVersion = errors.New("respack: unsupported version")

	// ErrTruncated はデータが途中で終わっている場合のエラー
	ErrTruncated = errors.New("respack: truncated data")

	// ErrEntryNotFound は指定した名前のエントリがない場合のエラー
	ErrEntryNotFound = errors.New("respack: entry not found")

	// ErrDuplicateEntry は同じ名前のエントリが複数ある場合のエラー
	ErrDuplicateEntry = errors.New("respack: duplicate entry")

	// ErrSizeMismatch は展開後のサイズがエントリの記録と一致しない場合のエラー
	ErrSizeMismatch = errors.New("respack: size mismatch")

	// ErrTooLarge はアーカイブが 4GiB を超える場合のエラー
	ErrTooLarge = errors.New("respack: archive too large")
)
