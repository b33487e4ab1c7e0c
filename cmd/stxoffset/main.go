package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/shiroemons/go-stxoffset/internal/offset/app"
	"github.com/shiroemons/go-stxoffset/internal/offset/config"
)

const pausePrompt = "\nPress ENTER to continue... "

func main() {
	root := newRootCmd(os.Args[0])
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(exe string) *cobra.Command {
	return &cobra.Command{
		Use:   config.Name + " [offset]",
		Short: config.Description,
		// "-20" をフラグではなくオフセットとして受け取る
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		CompletionOptions:  cobra.CompletionOptions{DisableDefaultCmd: true},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, exe, args)
		},
	}
}

// run は1回分の実行です。処理できたエラーは表示して一時停止し、nil を返します。
func run(cmd *cobra.Command, exe string, args []string) error {
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()

	cfg := config.ParseArgs(args)
	if cfg.ShowHelp {
		fmt.Fprint(out, config.HelpText(exe))
		return pause(cmd.InOrStdin(), out)
	}

	logger := config.NewConsoleWithWriters(out, errOut)
	application := app.NewWithOptions(cfg, app.Options{Logger: logger})

	result, err := application.Run(cmd.Context())
	if err != nil {
		fmt.Fprintf(errOut, "Error: %v\n", err)
		return pause(cmd.InOrStdin(), out)
	}
	if result.HasErrors {
		return pause(cmd.InOrStdin(), out)
	}
	return nil
}

// pause は ENTER が押されるまで待ちます。入力が閉じている場合はそのまま戻ります。
func pause(in io.Reader, out io.Writer) error {
	if _, err := fmt.Fprint(out, pausePrompt); err != nil {
		return err
	}
	_, _ = bufio.NewReader(in).ReadString('\n')
	return nil
}
