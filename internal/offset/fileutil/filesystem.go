package fileutil

import (
	"os"

	"github.com/shiroemons/go-stxoffset/internal/offset/interfaces"
)

// OSFileSystem は実際のOSファイルシステムを使用する実装
type OSFileSystem struct{}

// NewOSFileSystem は新しいOSFileSystemを作成します
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

// ReadFile はファイルを読み込みます
func (fs *OSFileSystem) ReadFile(filename string) ([]byte, error) {
	return os.ReadFile(filename)
}

// WriteFile はファイルを書き込みます
func (fs *OSFileSystem) WriteFile(filename string, data []byte, perm uint32) error {
	return os.WriteFile(filename, data, os.FileMode(perm))
}

// Stat はファイル情報を取得します
func (fs *OSFileSystem) Stat(name string) (interfaces.FileInfo, error) {
	info, err := os.Stat(name)
	if err != nil {
		return nil, err
	}
	return &osFileInfo{info}, nil
}

// ReadDir はディレクトリを読み込みます
func (fs *OSFileSystem) ReadDir(dirname string) ([]interfaces.DirEntry, error) {
	entries, err := os.ReadDir(dirname)
	if err != nil {
		return nil, err
	}

	result := make([]interfaces.DirEntry, len(entries))
	for i, entry := range entries {
		result[i] = &osDirEntry{entry}
	}
	return result, nil
}

// Getwd は現在の作業ディレクトリを取得します
func (fs *OSFileSystem) Getwd() (string, error) {
	return os.Getwd()
}

// osFileInfo はos.FileInfoのラッパー
type osFileInfo struct {
	os.FileInfo
}

// IsRegular は通常のファイルかどうかを返します
func (fi *osFileInfo) IsRegular() bool {
	return fi.Mode().IsRegular()
}

// osDirEntry はos.DirEntryのラッパー
type osDirEntry struct {
	os.DirEntry
}

// IsRegular は通常のファイルかどうかを返します（シンボリックリンクは含まない）
func (de *osDirEntry) IsRegular() bool {
	return de.Type().IsRegular()
}
