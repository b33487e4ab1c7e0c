package batch

import (
	"context"
	"fmt"
	"path/filepath"

	apperrors "github.com/shiroemons/go-stxoffset/internal/offset/errors"
	"github.com/shiroemons/go-stxoffset/internal/offset/fileutil"
	"github.com/shiroemons/go-stxoffset/internal/offset/interfaces"
	"github.com/shiroemons/go-stxoffset/internal/offset/patcher"
)

// DirectoryRunner はディレクトリ内の譜面ファイルにオフセットを適用します
type DirectoryRunner struct {
	fs        interfaces.FileSystem
	codec     interfaces.StepCodec
	logger    interfaces.Logger
	extension string
}

// NewDirectoryRunner は新しいDirectoryRunnerを作成します
func NewDirectoryRunner(fs interfaces.FileSystem, codec interfaces.StepCodec, logger interfaces.Logger, extension string) *DirectoryRunner {
	return &DirectoryRunner{
		fs:        fs,
		codec:     codec,
		logger:    logger,
		extension: extension,
	}
}

// Run はディレクトリのエントリを ReadDir の順に処理し、各ファイルを同じパスに上書きします。
// サブディレクトリは対象外です。ディレクトリを読めない場合のみエラーを返します。
func (r *DirectoryRunner) Run(ctx context.Context, dir string, offset int32) (*Report, error) {
	entries, err := r.fs.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", apperrors.ErrFileIO, dir, err)
	}

	report := &Report{Source: dir}
	for _, entry := range entries {
		select {
		case <-ctx.Done():
			return report, ctx.Err()
		default:
		}

		if !entry.IsRegular() || !fileutil.HasExtension(entry.Name(), r.extension) {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		r.logger.Statusf(statusFormat, path)
		report.record(r.logger, path, r.patchFile(path, offset))
	}

	return report, nil
}

func (r *DirectoryRunner) patchFile(path string, offset int32) error {
	data, err := r.fs.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrFileIO, err)
	}

	file, err := r.codec.Decode(data)
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

	if err := r.fs.WriteFile(path, patched, 0o644); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrFileIO, err)
	}
	return nil
}
