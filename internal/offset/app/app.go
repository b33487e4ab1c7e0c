// Package app はアプリケーションのメインロジックを実装します
package app

import (
	"context"
	"fmt"

	"github.com/shiroemons/go-stxoffset/internal/offset/batch"
	"github.com/shiroemons/go-stxoffset/internal/offset/codec"
	"github.com/shiroemons/go-stxoffset/internal/offset/config"
	apperrors "github.com/shiroemons/go-stxoffset/internal/offset/errors"
	"github.com/shiroemons/go-stxoffset/internal/offset/fileutil"
	"github.com/shiroemons/go-stxoffset/internal/offset/interfaces"
)

// Runner は配置形態ごとのバッチ処理
type Runner interface {
	Run(ctx context.Context, path string, offset int32) (*batch.Report, error)
}

// App はアプリケーションのメインロジックを管理します
type App struct {
	config    *config.Config
	logger    interfaces.Logger
	locator   *fileutil.SourceLocator
	container Runner
	directory Runner
}

// Options はAppの設定オプション
type Options struct {
	FileSystem      interfaces.FileSystem
	Logger          interfaces.Logger
	ContainerLoader interfaces.ContainerLoader
	StepCodec       interfaces.StepCodec
}

// Result は実行結果
type Result struct {
	Source    fileutil.SourceKind
	Report    *batch.Report
	HasErrors bool
}

// New は新しいAppを作成します
func New(cfg *config.Config) *App {
	return NewWithOptions(cfg, Options{})
}

// NewWithOptions は新しいAppをオプション付きで作成します
func NewWithOptions(cfg *config.Config, opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = config.NewConsole()
	}

	// デフォルトのファイルシステムを設定
	fs := opts.FileSystem
	if fs == nil {
		fs = fileutil.NewOSFileSystem()
	}
	cfg = resolveWorkDir(cfg, fs)

	loader := opts.ContainerLoader
	if loader == nil {
		loader = codec.NewRespackLoader(fs)
	}

	stepCodec := opts.StepCodec
	if stepCodec == nil {
		stepCodec = codec.NewSTXCodec()
	}

	return &App{
		config:    cfg,
		logger:    logger,
		locator:   fileutil.NewSourceLocator(fs, cfg.ContainerName, cfg.DirectoryName),
		container: batch.NewContainerRunner(fs, loader, stepCodec, logger, cfg.StepExtension),
		directory: batch.NewDirectoryRunner(fs, stepCodec, logger, cfg.StepExtension),
	}
}

// Run は譜面の配置形態を判定し、対応するバッチ処理を実行します。
// 譜面が見つからない場合やコンテナ・ディレクトリ自体を読めない場合はエラーを返します。
// 個々の譜面の失敗は Result.HasErrors に集約されます。
func (a *App) Run(ctx context.Context) (Result, error) {
	kind := a.locator.Locate(a.config.WorkDir)
	result := Result{Source: kind}

	var runner Runner
	var path string
	switch kind {
	case fileutil.SourceContainer:
		runner, path = a.container, a.config.ContainerPath()
	case fileutil.SourceDirectory:
		runner, path = a.directory, a.config.DirectoryPath()
	default:
		return result, fmt.Errorf("%w: %s", apperrors.ErrSourceNotFound, a.config.WorkDir)
	}

	report, err := runner.Run(ctx, path, a.config.Offset)
	result.Report = report
	if err != nil {
		return result, err
	}

	result.HasErrors = report.Failed()
	return result, nil
}

// resolveWorkDir は作業ディレクトリが未指定または "." の場合に実際のパスへ置き換えた設定を返します。
// 取得できない場合は元の設定のままです。
func resolveWorkDir(cfg *config.Config, fs interfaces.FileSystem) *config.Config {
	if cfg.WorkDir != "" && cfg.WorkDir != "." {
		return cfg
	}
	wd, err := fs.Getwd()
	if err != nil {
		return cfg
	}
	resolved := *cfg
	resolved.WorkDir = wd
	return &resolved
}
