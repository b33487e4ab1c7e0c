package mocks

import (
	"fmt"
	"strings"
)

// MockLogger は出力を記録するロガーのモック
type MockLogger struct {
	Stdout strings.Builder
	Errors []string
}

// Statusf は標準出力への表示を記録します
func (l *MockLogger) Statusf(format string, a ...any) {
	fmt.Fprintf(&l.Stdout, format, a...)
}

// Resultln は結果の表示を記録します
func (l *MockLogger) Resultln(result string) {
	l.Stdout.WriteString(result + "\n")
}

// Errorf はエラー出力を記録します
func (l *MockLogger) Errorf(format string, a ...any) {
	l.Errors = append(l.Errors, fmt.Sprintf(format, a...))
}

// Lines は標準出力の内容を行ごとに返します
func (l *MockLogger) Lines() []string {
	return strings.Split(strings.TrimSuffix(l.Stdout.String(), "\n"), "\n")
}
