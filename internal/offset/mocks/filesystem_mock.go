// Package mocks はテスト用のモック実装を提供します
package mocks

import (
	"errors"
	"path/filepath"
	"sort"

	"github.com/shiroemons/go-stxoffset/internal/offset/interfaces"
)

// MockFileSystem はテスト用のファイルシステムモック
type MockFileSystem struct {
	Files      map[string][]byte
	Dirs       map[string]bool
	WorkingDir string
	Error      error
	// WriteErrors はパスごとに WriteFile が返すエラー
	WriteErrors map[string]error

	// StatCalls は Stat に渡されたパスの記録
	StatCalls []string
	// Writes は WriteFile に渡されたパスの記録（呼び出し順）
	Writes []string
}

// NewMockFileSystem は新しいMockFileSystemを作成します
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		Files:       make(map[string][]byte),
		Dirs:        make(map[string]bool),
		WorkingDir:  "/test/dir",
		WriteErrors: make(map[string]error),
	}
}

// ReadFile はファイルを読み込みます
func (fs *MockFileSystem) ReadFile(filename string) ([]byte, error) {
	if fs.Error != nil {
		return nil, fs.Error
	}
	data, exists := fs.Files[filename]
	if !exists {
		return nil, errors.New("file not found")
	}
	return append([]byte(nil), data...), nil
}

// WriteFile はファイルを書き込みます
func (fs *MockFileSystem) WriteFile(filename string, data []byte, perm uint32) error {
	if fs.Error != nil {
		return fs.Error
	}
	if err := fs.WriteErrors[filename]; err != nil {
		return err
	}
	fs.Writes = append(fs.Writes, filename)
	fs.Files[filename] = append([]byte(nil), data...)
	return nil
}

// Stat はファイル情報を取得します
func (fs *MockFileSystem) Stat(name string) (interfaces.FileInfo, error) {
	fs.StatCalls = append(fs.StatCalls, name)
	if fs.Error != nil {
		return nil, fs.Error
	}
	if _, exists := fs.Files[name]; exists {
		return &MockFileInfo{name: filepath.Base(name), isDir: false}, nil
	}
	if _, exists := fs.Dirs[name]; exists {
		return &MockFileInfo{name: filepath.Base(name), isDir: true}, nil
	}
	return nil, errors.New("file not found")
}

// ReadDir はディレクトリを読み込みます。エントリは名前順で返します。
func (fs *MockFileSystem) ReadDir(dirname string) ([]interfaces.DirEntry, error) {
	if fs.Error != nil {
		return nil, fs.Error
	}
	if !fs.Dirs[dirname] {
		return nil, errors.New("directory not found")
	}

	var entries []interfaces.DirEntry
	// ファイルをディレクトリエントリとして追加
	for path := range fs.Files {
		if filepath.Dir(path) == dirname {
			entries = append(entries, &MockDirEntry{
				name:  filepath.Base(path),
				isDir: false,
			})
		}
	}
	// サブディレクトリをエントリとして追加
	for path := range fs.Dirs {
		if filepath.Dir(path) == dirname && path != dirname {
			entries = append(entries, &MockDirEntry{
				name:  filepath.Base(path),
				isDir: true,
			})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	return entries, nil
}

// Getwd は現在の作業ディレクトリを返します
func (fs *MockFileSystem) Getwd() (string, error) {
	if fs.Error != nil {
		return "", fs.Error
	}
	return fs.WorkingDir, nil
}

// MockFileInfo はテスト用のFileInfo実装
type MockFileInfo struct {
	name  string
	isDir bool
}

// Name はファイル名を返します
func (fi *MockFileInfo) Name() string {
	return fi.name
}

// IsDir はディレクトリかどうかを返します
func (fi *MockFileInfo) IsDir() bool {
	return fi.isDir
}

// IsRegular は通常のファイルかどうかを返します
func (fi *MockFileInfo) IsRegular() bool {
	return !fi.isDir
}

// MockDirEntry はテスト用のDirEntry実装
type MockDirEntry struct {
	name  string
	isDir bool
}

// Name はエントリ名を返します
func (de *MockDirEntry) Name() string {
	return de.name
}

// IsDir はディレクトリかどうかを返します
func (de *MockDirEntry) IsDir() bool {
	return de.isDir
}

// IsRegular は通常のファイルかどうかを返します
func (de *MockDirEntry) IsRegular() bool {
	return !de.isDir
}
