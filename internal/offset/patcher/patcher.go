// Package patcher は譜面のディレイにオフセットを適用します
package patcher

import (
	"fmt"

	apperrors "github.com/shiroemons/go-stxoffset/internal/offset/errors"
	"github.com/shiroemons/go-stxoffset/internal/offset/interfaces"
	"github.com/shiroemons/go-stxoffset/pkg/satmath"
	"github.com/shiroemons/go-stxoffset/pkg/stx"
)

// DelayQuantumMs はオフセット1あたりのミリ秒数
const DelayQuantumMs int32 = 10

// Apply は全てのレガシーモードについて、最初のスプリットの全ブロックのディレイに
// offset * DelayQuantumMs を飽和演算で加算します。2番目以降のスプリットは変更しません。
//
// 各モードの結果はファイル本来のバージョンで書き戻されます。
// あるモードで失敗した場合はそこで中断し、それ以前のモードの変更は残ります。
func Apply(file interfaces.StepFile, offset int32) error {
	delta := satmath.Mul(offset, DelayQuantumMs)
	for _, mode := range stx.LegacyModes() {
		if err := applyMode(file, mode, delta); err != nil {
			return fmt.Errorf("%s: %w", mode, err)
		}
	}
	return nil
}

func applyMode(file interfaces.StepFile, mode stx.LegacyMode, delta int32) error {
	data, err := file.ReadStepData(mode)
	if err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrDecodeFailure, err)
	}

	if len(data.Splits) == 0 {
		return apperrors.ErrNoSplitsFound
	}
	first := &data.Splits[0]
	if len(first.Blocks) == 0 {
		return apperrors.ErrNoBlocksInFirstSplit
	}

	for i := range first.Blocks {
		first.Blocks[i].AddDelay(delta)
	}

	if err := file.SetStepData(file.Version(), data); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrEncodeFailure, err)
	}
	return nil
}
