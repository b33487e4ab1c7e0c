// Package config はstxoffsetコマンドの設定管理を行います
package config

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	// Name はコマンド名
	Name = "stxoffset"

	// Version はコマンドのバージョン
	Version = "0.1.0"

	// Description はヘルプに表示する説明
	Description = "STEP.DAT または STEP ディレクトリ内の STX 譜面にオフセットを一括適用します（1 = 10ms）"

	// ContainerFileName はパック版インストールのコンテナファイル名
	ContainerFileName = "STEP.DAT"

	// StepDirName は展開版インストールの譜面ディレクトリ名
	StepDirName = "STEP"

	// StepExtension は譜面ファイルの拡張子（大文字小文字は区別しない）
	StepExtension = "STX"
)

// Config はアプリケーションの設定を保持します
type Config struct {
	Offset        int32
	ShowHelp      bool
	WorkDir       string
	ContainerName string
	DirectoryName string
	StepExtension string
}

// Default はオフセット以外の既定値を持つ設定を返します
func Default() *Config {
	return &Config{
		WorkDir:       ".",
		ContainerName: ContainerFileName,
		DirectoryName: StepDirName,
		StepExtension: StepExtension,
	}
}

// ParseArgs は位置引数（実行ファイル名を除く）を解析して設定を返します。
// 引数がちょうど1つでない場合はヘルプ表示になります。
func ParseArgs(args []string) *Config {
	cfg := Default()
	if len(args) != 1 {
		cfg.ShowHelp = true
		return cfg
	}
	cfg.Offset = ParseOffset(args[0])
	return cfg
}

// ParseOffset は10進数のオフセットを解析します。解析できない値は 0 になります。
func ParseOffset(s string) int32 {
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0
	}
	return int32(v)
}

// ContainerPath はコンテナファイルのパスを返します
func (c *Config) ContainerPath() string {
	return filepath.Join(c.WorkDir, c.ContainerName)
}

// DirectoryPath は譜面ディレクトリのパスを返します
func (c *Config) DirectoryPath() string {
	return filepath.Join(c.WorkDir, c.DirectoryName)
}

// HelpText はヘルプ表示の内容を返します。exe は実行ファイルのパスです。
func HelpText(exe string) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("»» %s v%s\n\n", Name, Version))
	builder.WriteString(fmt.Sprintf("» Description: %s\n\n", Description))
	builder.WriteString(fmt.Sprintf("» Example: %s +20\n", exampleCommand(exe)))
	return builder.String()
}

// exampleCommand は Windows の .exe 以外では ./ を付けたコマンド名を返します
func exampleCommand(exe string) string {
	filename := filepath.Base(exe)
	if strings.EqualFold(filepath.Ext(filename), ".exe") {
		return filename
	}
	return "./" + filename
}
