// Package fileutil はファイル操作と譜面の配置場所の判定を提供します
package fileutil

import (
	"path/filepath"
	"strings"

	"github.com/shiroemons/go-stxoffset/internal/offset/interfaces"
)

// HasExtension は最後の "." より後ろの部分が ext と一致するかを大文字小文字を区別せずに判定します。
// "." を含まない名前は一致しません。
func HasExtension(name, ext string) bool {
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return false
	}
	return strings.EqualFold(name[i+1:], ext)
}

// SourceKind は譜面データの配置形態です
type SourceKind int

const (
	// SourceNotFound はコンテナもディレクトリも見つからない状態
	SourceNotFound SourceKind = iota
	// SourceContainer はコンテナファイル（STEP.DAT）にまとめられた状態
	SourceContainer
	// SourceDirectory はディレクトリ（STEP）に展開された状態
	SourceDirectory
)

func (k SourceKind) String() string {
	switch k {
	case SourceContainer:
		return "container"
	case SourceDirectory:
		return "directory"
	default:
		return "not found"
	}
}

// SourceLocator は作業ディレクトリから譜面データの配置形態を判定します
type SourceLocator struct {
	fs            interfaces.FileSystem
	containerName string
	directoryName string
}

// NewSourceLocator は新しいSourceLocatorを作成します
func NewSourceLocator(fs interfaces.FileSystem, containerName, directoryName string) *SourceLocator {
	return &SourceLocator{
		fs:            fs,
		containerName: containerName,
		directoryName: directoryName,
	}
}

// Locate はコンテナファイル、ディレクトリの順に確認します。
// コンテナが通常のファイルとして存在する場合、ディレクトリは確認しません。
func (l *SourceLocator) Locate(workDir string) SourceKind {
	if info, err := l.fs.Stat(filepath.Join(workDir, l.containerName)); err == nil && info.IsRegular() {
		return SourceContainer
	}
	if info, err := l.fs.Stat(filepath.Join(workDir, l.directoryName)); err == nil && info.IsDir() {
		return SourceDirectory
	}
	return SourceNotFound
}
