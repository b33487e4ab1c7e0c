package app

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shiroemons/go-stxoffset/internal/offset/batch"
	"github.com/shiroemons/go-stxoffset/internal/offset/config"
	apperrors "github.com/shiroemons/go-stxoffset/internal/offset/errors"
	"github.com/shiroemons/go-stxoffset/internal/offset/fileutil"
	"github.com/shiroemons/go-stxoffset/internal/offset/mocks"
	"github.com/shiroemons/go-stxoffset/pkg/respack"
	"github.com/shiroemons/go-stxoffset/pkg/stx"
)

const workDir = "/game"

func stepBytes(t *testing.T, delay int32) []byte {
	t.Helper()
	f, err := stx.New(stx.Version1)
	if err != nil {
		t.Fatalf("stx.New() error = %v", err)
	}
	for _, mode := range stx.LegacyModes() {
		data := &stx.StepData{Mode: mode, Splits: []stx.Split{{Blocks: []stx.Block{{DelayMs: delay, BPM: 120}}}}}
		if err := f.SetStepData(stx.Version1, data); err != nil {
			t.Fatalf("SetStepData() error = %v", err)
		}
	}
	buf, err := f.Encode(stx.Version1)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	return buf
}

func packBytes(t *testing.T, members map[string][]byte) []byte {
	t.Helper()
	pack := respack.New()
	for name, data := range members {
		if err := pack.Add(name, data, respack.FlagZstd, 0); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
	}
	buf, err := pack.Serialize()
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}
	return buf
}

func newConfig(offset int32) *config.Config {
	cfg := config.Default()
	cfg.WorkDir = workDir
	cfg.Offset = offset
	return cfg
}

func TestApp_Run(t *testing.T) {
	containerPath := filepath.Join(workDir, "STEP.DAT")
	dirPath := filepath.Join(workDir, "STEP")

	tests := []struct {
		name          string
		setup         func(t *testing.T, fs *mocks.MockFileSystem)
		wantSource    fileutil.SourceKind
		wantKind      apperrors.Kind
		wantHasErrors bool
		wantWrites    []string
	}{
		{
			name: "STEP.DATがある場合",
			setup: func(t *testing.T, fs *mocks.MockFileSystem) {
				fs.Files[containerPath] = packBytes(t, map[string][]byte{"001.STX": stepBytes(t, 0)})
			},
			wantSource: fileutil.SourceContainer,
			wantWrites: []string{containerPath},
		},
		{
			name: "STEP.DATとSTEPの両方がある場合はSTEP.DATを優先",
			setup: func(t *testing.T, fs *mocks.MockFileSystem) {
				fs.Files[containerPath] = packBytes(t, map[string][]byte{"001.STX": stepBytes(t, 0)})
				fs.Dirs[dirPath] = true
				fs.Files[filepath.Join(dirPath, "001.STX")] = stepBytes(t, 0)
			},
			wantSource: fileutil.SourceContainer,
			wantWrites: []string{containerPath},
		},
		{
			name: "STEPディレクトリのみある場合",
			setup: func(t *testing.T, fs *mocks.MockFileSystem) {
				fs.Dirs[dirPath] = true
				fs.Files[filepath.Join(dirPath, "001.STX")] = stepBytes(t, 0)
				fs.Files[filepath.Join(dirPath, "002.STX")] = []byte("broken")
			},
			wantSource:    fileutil.SourceDirectory,
			wantHasErrors: true,
			wantWrites:    []string{filepath.Join(dirPath, "001.STX")},
		},
		{
			name:       "どちらもない場合",
			setup:      func(t *testing.T, fs *mocks.MockFileSystem) {},
			wantSource: fileutil.SourceNotFound,
			wantKind:   apperrors.KindSourceNotFound,
		},
		{
			name: "STEP.DATが壊れている場合",
			setup: func(t *testing.T, fs *mocks.MockFileSystem) {
				fs.Files[containerPath] = []byte("garbage")
			},
			wantSource: fileutil.SourceContainer,
			wantKind:   apperrors.KindContainerIO,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := mocks.NewMockFileSystem()
			tt.setup(t, fs)
			logger := &mocks.MockLogger{}

			app := NewWithOptions(newConfig(10), Options{FileSystem: fs, Logger: logger})
			result, err := app.Run(context.Background())

			if result.Source != tt.wantSource {
				t.Errorf("Source = %s, want %s", result.Source, tt.wantSource)
			}
			if tt.wantKind != apperrors.KindUnknown {
				if apperrors.KindOf(err) != tt.wantKind {
					t.Errorf("Run() error = %v, want kind %s", err, tt.wantKind)
				}
				if len(fs.Writes) != 0 {
					t.Errorf("Writes = %v, want none", fs.Writes)
				}
				return
			}
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if result.HasErrors != tt.wantHasErrors {
				t.Errorf("HasErrors = %v, want %v", result.HasErrors, tt.wantHasErrors)
			}
			if len(fs.Writes) != len(tt.wantWrites) {
				t.Fatalf("Writes = %v, want %v", fs.Writes, tt.wantWrites)
			}
			for i := range tt.wantWrites {
				if fs.Writes[i] != tt.wantWrites[i] {
					t.Errorf("write %d = %s, want %s", i, fs.Writes[i], tt.wantWrites[i])
				}
			}
		})
	}
}

func TestApp_Run_SourceNotFoundSkipsFileWork(t *testing.T) {
	fs := mocks.NewMockFileSystem()
	app := NewWithOptions(newConfig(1), Options{FileSystem: fs, Logger: &mocks.MockLogger{}})

	result, err := app.Run(context.Background())
	if !errors.Is(err, apperrors.ErrSourceNotFound) {
		t.Fatalf("Run() error = %v, want ErrSourceNotFound", err)
	}
	if result.Report != nil || result.HasErrors {
		t.Errorf("result = %+v, want no report", result)
	}
	// コンテナとディレクトリの確認のみ
	if len(fs.StatCalls) != 2 {
		t.Errorf("StatCalls = %v, want 2", fs.StatCalls)
	}
}

// stubRunner は呼び出しを記録する Runner
type stubRunner struct {
	report *batch.Report
	err    error
	paths  []string
	offset int32
}

func (r *stubRunner) Run(ctx context.Context, path string, offset int32) (*batch.Report, error) {
	r.paths = append(r.paths, path)
	r.offset = offset
	return r.report, r.err
}

func TestApp_Run_Dispatch(t *testing.T) {
	fs := mocks.NewMockFileSystem()
	fs.Dirs[filepath.Join(workDir, "STEP")] = true

	app := NewWithOptions(newConfig(-7), Options{FileSystem: fs, Logger: &mocks.MockLogger{}})
	container := &stubRunner{report: &batch.Report{}}
	directory := &stubRunner{report: &batch.Report{Outcomes: []batch.Outcome{{Name: "x", Err: errors.New("boom")}}}}
	app.container, app.directory = container, directory

	result, err := app.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(container.paths) != 0 {
		t.Errorf("container runner called with %v", container.paths)
	}
	if len(directory.paths) != 1 || directory.paths[0] != filepath.Join(workDir, "STEP") || directory.offset != -7 {
		t.Errorf("directory runner called with %v, offset %d", directory.paths, directory.offset)
	}
	if !result.HasErrors {
		t.Error("HasErrors = false, want true")
	}
}

func TestApp_Run_ResolvesWorkDir(t *testing.T) {
	tests := []struct {
		name    string
		workDir string
	}{
		{name: "カレントディレクトリ指定", workDir: "."},
		{name: "未指定", workDir: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := mocks.NewMockFileSystem()
			fs.WorkingDir = "/install"
			containerPath := filepath.Join("/install", "STEP.DAT")
			fs.Files[containerPath] = packBytes(t, map[string][]byte{"001.STX": stepBytes(t, 0)})

			cfg := config.Default()
			cfg.WorkDir = tt.workDir
			cfg.Offset = 3
			app := NewWithOptions(cfg, Options{FileSystem: fs, Logger: &mocks.MockLogger{}})

			result, err := app.Run(context.Background())
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if result.Source != fileutil.SourceContainer {
				t.Errorf("Source = %s, want container", result.Source)
			}
			if len(fs.Writes) != 1 || fs.Writes[0] != containerPath {
				t.Errorf("Writes = %v, want [%s]", fs.Writes, containerPath)
			}
			if cfg.WorkDir != tt.workDir {
				t.Errorf("caller config WorkDir changed to %q", cfg.WorkDir)
			}
		})
	}
}

func TestApp_Run_SourceNotFoundNamesWorkingDir(t *testing.T) {
	fs := mocks.NewMockFileSystem()
	fs.WorkingDir = "/install"
	cfg := config.Default()

	_, err := NewWithOptions(cfg, Options{FileSystem: fs, Logger: &mocks.MockLogger{}}).Run(context.Background())
	if !errors.Is(err, apperrors.ErrSourceNotFound) {
		t.Fatalf("Run() error = %v, want ErrSourceNotFound", err)
	}
	if !strings.Contains(err.Error(), "/install") {
		t.Errorf("error = %q, want it to name /install", err)
	}
	for _, call := range fs.StatCalls {
		if !strings.HasPrefix(call, "/install/") {
			t.Errorf("Stat(%q) not under the working directory", call)
		}
	}
}

func TestApp_Run_KeepsExplicitWorkDir(t *testing.T) {
	fs := mocks.NewMockFileSystem()
	fs.WorkingDir = "/elsewhere"
	fs.Dirs[filepath.Join(workDir, "STEP")] = true

	result, err := NewWithOptions(newConfig(1), Options{FileSystem: fs, Logger: &mocks.MockLogger{}}).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.Source != fileutil.SourceDirectory {
		t.Errorf("Source = %s, want directory", result.Source)
	}
}
