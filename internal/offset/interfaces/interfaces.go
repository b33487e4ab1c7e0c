// Package interfaces はstxoffsetコマンドで使用するインターフェースを定義します
package interfaces

import (
	"github.com/shiroemons/go-stxoffset/pkg/stx"
)

// FileSystem はファイルシステム操作のインターフェース
type FileSystem interface {
	ReadFile(filename string) ([]byte, error)
	WriteFile(filename string, data []byte, perm uint32) error
	Stat(name string) (FileInfo, error)
	ReadDir(dirname string) ([]DirEntry, error)
	Getwd() (string, error)
}

// FileInfo はファイル情報のインターフェース
type FileInfo interface {
	Name() string
	IsDir() bool
	IsRegular() bool
}

// DirEntry はディレクトリエントリのインターフェース
type DirEntry interface {
	Name() string
	IsDir() bool
	IsRegular() bool
}

// StepFile は展開済みの譜面ファイルのインターフェース
type StepFile interface {
	Version() stx.Version
	ReadStepData(mode stx.LegacyMode) (*stx.StepData, error)
	SetStepData(version stx.Version, data *stx.StepData) error
	Encode(version stx.Version) ([]byte, error)
}

// StepCodec はバイト列から譜面ファイルを展開するインターフェース
type StepCodec interface {
	Decode(data []byte) (StepFile, error)
}

// Container はメンバーファイルをまとめたコンテナのインターフェース
type Container interface {
	NamesSortedByName() []string
	ReadFile(name string) ([]byte, error)
	SetFileData(name string, data []byte) error
	Serialize() ([]byte, error)
}

// ContainerLoader はコンテナを開くインターフェース
type ContainerLoader interface {
	Load(path string) (Container, error)
}

// Logger はログ出力のインターフェース
type Logger interface {
	// Statusf は処理中の項目を改行なしで標準出力に表示します
	Statusf(format string, a ...any)
	// Resultln は Statusf に続く結果を1行で表示します
	Resultln(result string)
	// Errorf はエラー出力に1行表示します
	Errorf(format string, a ...any)
}
