package batch

import (
	"context"
	"fmt"

	apperrors "github.com/shiroemons/go-stxoffset/internal/offset/errors"
	"github.com/shiroemons/go-stxoffset/internal/offset/fileutil"
	"github.com/shiroemons/go-stxoffset/internal/offset/interfaces"
	"github.com/shiroemons/go-stxoffset/internal/offset/patcher"
)

// ContainerRunner はコンテナ内の譜面メンバーにオフセットを適用します
type ContainerRunner struct {
	fs        interfaces.FileSystem
	loader    interfaces.ContainerLoader
	codec     interfaces.StepCodec
	logger    interfaces.Logger
	extension string
}

// NewContainerRunner は新しいContainerRunnerを作成します
func NewContainerRunner(fs interfaces.FileSystem, loader interfaces.ContainerLoader, codec interfaces.StepCodec, logger interfaces.Logger, extension string) *ContainerRunner {
	return &ContainerRunner{
		fs:        fs,
		loader:    loader,
		codec:     codec,
		logger:    logger,
		extension: extension,
	}
}

// Run はコンテナを一度だけ読み込み、名前順に譜面メンバーを処理します。
// メンバー1件の適用に成功するたびにコンテナ全体をファイルに書き戻します。
// コンテナを開けない場合のみエラーを返します。
func (r *ContainerRunner) Run(ctx context.Context, path string, offset int32) (*Report, error) {
	container, err := r.loader.Load(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", apperrors.ErrContainerIO, path, err)
	}

	report := &Report{Source: path}
	for _, name := range container.NamesSortedByName() {
		// コンテキストのキャンセルチェック
		select {
		case <-ctx.Done():
			return report, ctx.Err()
		default:
		}

		if !fileutil.HasExtension(name, r.extension) {
			continue
		}

		r.logger.Statusf(statusFormat, name)
		report.record(r.logger, name, r.patchMember(container, path, name, offset))
	}

	return report, nil
}

func (r *ContainerRunner) patchMember(container interfaces.Container, path, name string, offset int32) error {
	original, err := container.ReadFile(name)
	if err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrContainerIO, err)
	}

	file, err := r.codec.Decode(original)
	if err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrDecodeFailure, err)
	}
	if err := patcher.Apply(file, offset); err != nil {
		return err
	}
	patched, err := file.Encode(file.Version())
	if err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrEncodeFailure, err)
	}

	if err := container.SetFileData(name, patched); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrContainerIO, err)
	}
	if err := r.persist(container, path); err != nil {
		// 書き戻せなかった変更は後続メンバーの保存に含めない
		if rbErr := container.SetFileData(name, original); rbErr != nil {
			r.logger.Errorf("%s の巻き戻しに失敗しました: %v", name, rbErr)
		}
		return err
	}
	return nil
}

func (r *ContainerRunner) persist(container interfaces.Container, path string) error {
	buf, err := container.Serialize()
	if err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrContainerIO, err)
	}
	if err := r.fs.WriteFile(path, buf, 0o644); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrContainerIO, err)
	}
	return nil
}
