// Package main is rl_custom_complete, the completer the shim runs for every
// completion request. It receives the text as its only argument and
// readline's candidates on stdin, and prints the candidates to offer. A
// non-zero exit means "offer nothing".
package main

import (
	"context"
	"fmt"
	"os"

	rlcli "github.com/NikitaCOEUR/rlcomplete/internal/cli"
	"github.com/NikitaCOEUR/rlcomplete/internal/cache"
	"github.com/NikitaCOEUR/rlcomplete/internal/config"
	"github.com/NikitaCOEUR/rlcomplete/internal/trace"
	"github.com/NikitaCOEUR/rlcomplete/pkg/version"
	"github.com/urfave/cli/v3"
)

func main() {
	configDir, _ := config.Dir()
	cachePath, _ := cache.DefaultPath()

	stopTrace := trace.Init()
	err := newApp(configDir, cachePath).Run(context.Background(), os.Args)
	stopTrace()
	if err != nil {
		os.Exit(1)
	}
}

func newApp(configDir, cachePath string) *cli.Command {
	return &cli.Command{
		Name:      "rl_custom_complete",
		Usage:     "Answer one readline completion request from the rlcomplete rules",
		ArgsUsage: "<text>",
		Version:   version.Version,
		// The text may start with "-": never treat it as a flag
		SkipFlagParsing: true,
		HideHelp:        true,
		HideVersion:     true,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return fmt.Errorf("expected exactly one argument, got %d", cmd.Args().Len())
			}
			return rlcli.Helper(ctx, rlcli.HelperParams{
				ConfigDir: configDir,
				CachePath: cachePath,
				Text:      cmd.Args().Get(0),
				Stdin:     os.Stdin,
				Stdout:    os.Stdout,
			})
		},
	}
}
