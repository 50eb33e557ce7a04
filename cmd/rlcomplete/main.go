// Package main is the entry point for the rlcomplete CLI, which manages the
// completion shim and its rules.
package main

import (
	"context"
	"fmt"
	"os"

	rlcli "github.com/NikitaCOEUR/rlcomplete/internal/cli"
	"github.com/NikitaCOEUR/rlcomplete/internal/cache"
	"github.com/NikitaCOEUR/rlcomplete/internal/config"
	"github.com/NikitaCOEUR/rlcomplete/pkg/version"
	"github.com/urfave/cli/v3"
)

func main() {
	configDir, err := config.Dir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cachePath, err := cache.DefaultPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := newApp(configDir, cachePath).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func firstArg(cmd *cli.Command) string {
	if cmd.Args().Len() > 0 {
		return cmd.Args().Get(0)
	}
	return ""
}

//nolint:gocyclo // Command table complexity is acceptable
func newApp(configDir, cachePath string) *cli.Command {
	return &cli.Command{
		Name:                  "rlcomplete",
		Usage:                 "Rule-driven completion for any readline program",
		Version:               version.Version,
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "warn",
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars("RLCOMPLETE_LOG_LEVEL"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "status",
				Usage: "Show settings, installation and rules",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "lib",
						Usage: "Path to librlcomplete.so (searched when not specified)",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					return rlcli.Status(rlcli.StatusParams{
						ConfigDir:   configDir,
						CachePath:   cachePath,
						LibraryPath: cmd.String("lib"),
					})
				},
			},
			{
				Name:  "init",
				Usage: "Create a sample rule file",
				Action: func(_ context.Context, _ *cli.Command) error {
					return rlcli.Init(configDir)
				},
			},
			{
				Name:      "validate",
				Usage:     "Validate a rule file",
				ArgsUsage: "[rules-file]",
				Action: func(_ context.Context, cmd *cli.Command) error {
					return rlcli.Validate(firstArg(cmd), configDir)
				},
			},
			{
				Name:  "edit",
				Usage: "Edit or create the rule file",
				Action: func(_ context.Context, _ *cli.Command) error {
					return rlcli.Edit(configDir)
				},
			},
			{
				Name:      "schema",
				Usage:     "Display or export the JSON Schema for rule files",
				ArgsUsage: "[output-file]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (prints to stdout if not specified)",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					outputPath := cmd.String("output")
					if outputPath == "" {
						outputPath = firstArg(cmd)
					}
					return rlcli.Schema(outputPath)
				},
			},
			{
				Name:      "env",
				Usage:     "Print the LD_PRELOAD line that loads the shim",
				ArgsUsage: "[program [args...]]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "lib",
						Usage: "Path to librlcomplete.so (searched when not specified)",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					return rlcli.Env(rlcli.EnvParams{
						Library: cmd.String("lib"),
						Command: cmd.Args().Slice(),
						Current: os.Getenv("LD_PRELOAD"),
					})
				},
			},
			{
				Name:      "run",
				Usage:     "Send one completion request to the helper and show the answer",
				ArgsUsage: "<text> [candidates...]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "program",
						Usage: "Completer to run instead of the configured one",
					},
					&cli.StringFlag{
						Name:  "name",
						Usage: "Readline application name to pass",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					if cmd.Args().Len() == 0 {
						return fmt.Errorf("text to complete required")
					}
					return rlcli.Run(rlcli.RunParams{
						ConfigDir:  configDir,
						LogLevel:   cmd.String("log-level"),
						Program:    cmd.String("program"),
						Name:       cmd.String("name"),
						Text:       cmd.Args().Get(0),
						Candidates: cmd.Args().Slice()[1:],
					})
				},
			},
			{
				Name:  "clean",
				Usage: "Clean cached command output",
				Flags: []cli.Flag{
					&cli.DurationFlag{
						Name:  "older-than",
						Usage: "Only remove entries older than this (e.g. 24h)",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					return rlcli.Clean(rlcli.CleanParams{
						CachePath: cachePath,
						LogLevel:  cmd.String("log-level"),
						OlderThan: cmd.Duration("older-than"),
					})
				},
			},
		},
	}
}
