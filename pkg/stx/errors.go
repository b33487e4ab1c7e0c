package stx

import "errors"

var (
	// ErrInvalidMagic はファイル先頭のマジックが一致しない場合のエラー
	ErrInvalidMagic = errors.New("stx: invalid magic")

	// ErrUnsupportedVersion は未対応のバージョンの場合のエラー
	ErrUnsupportedVersion = errors.New("stx: unsupported version")

	// ErrTruncated はデータが途中で終わっている場合のエラー
	ErrTruncated = errors.New("stx: truncated data")

	// ErrUnknownMode は未知のレガシーモードの場合のエラー
	ErrUnknownMode = errors.New("stx: unknown legacy mode")

	// ErrDuplicateMode は同じレガシーモードのセクションが複数ある場合のエラー
	ErrDuplicateMode = errors.New("stx: duplicate legacy mode section")

	// ErrModeNotPresent は指定したレガシーモードのセクションがない場合のエラー
	ErrModeNotPresent = errors.New("stx: legacy mode not present")

	// ErrNilStepData はステップデータが nil の場合のエラー
	ErrNilStepData = errors.New("stx: nil step data")

	// ErrFieldTooLarge は値がフォーマットの上限を超える場合のエラー
	ErrFieldTooLarge = errors.New("stx: field too large")
)
