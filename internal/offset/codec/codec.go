// Package codec は pkg/stx と pkg/respack を interfaces の実装として提供します
package codec

import (
	"github.com/shiroemons/go-stxoffset/internal/offset/interfaces"
	"github.com/shiroemons/go-stxoffset/pkg/respack"
	"github.com/shiroemons/go-stxoffset/pkg/stx"
)

// STXCodec は STX 譜面の StepCodec 実装
type STXCodec struct{}

// NewSTXCodec は新しいSTXCodecを作成します
func NewSTXCodec() *STXCodec {
	return &STXCodec{}
}

// Decode はバイト列から譜面を展開します
func (c *STXCodec) Decode(data []byte) (interfaces.StepFile, error) {
	f, err := stx.Decode(data)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// RespackLoader はファイルシステムからリソースパックを開く ContainerLoader 実装
type RespackLoader struct {
	fs interfaces.FileSystem
}

// NewRespackLoader は新しいRespackLoaderを作成します
func NewRespackLoader(fs interfaces.FileSystem) *RespackLoader {
	return &RespackLoader{fs: fs}
}

// Load はリソースパックを読み込みます
func (l *RespackLoader) Load(path string) (interfaces.Container, error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		return nil, err
	}
	pack, err := respack.Parse(data)
	if err != nil {
		return nil, err
	}
	pack.Path = path
	return pack, nil
}
