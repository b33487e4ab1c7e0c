package config

import (
	"fmt"
	"io"
	"os"
)

// Console は処理状況を標準出力に、エラーを標準エラー出力に表示します
type Console struct {
	out    io.Writer
	errOut io.Writer
}

// NewConsole は標準出力と標準エラー出力を使う Console を作成します
func NewConsole() *Console {
	return NewConsoleWithWriters(os.Stdout, os.Stderr)
}

// NewConsoleWithWriters は出力先を指定して Console を作成します
func NewConsoleWithWriters(out, errOut io.Writer) *Console {
	return &Console{out: out, errOut: errOut}
}

// Statusf は処理中の項目を改行なしで表示します
func (c *Console) Statusf(format string, a ...any) {
	fmt.Fprintf(c.out, format, a...)
}

// Resultln は処理結果を表示して改行します
func (c *Console) Resultln(result string) {
	fmt.Fprintln(c.out, result)
}

// Errorf はエラー出力にメッセージを1行表示します
func (c *Console) Errorf(format string, a ...any) {
	fmt.Fprintf(c.errOut, format+"\n", a...)
}
