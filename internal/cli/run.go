package cli

import (
	"fmt"
	"os"

	"github.com/NikitaCOEUR/rlcomplete/internal/bridge"
	"github.com/NikitaCOEUR/rlcomplete/internal/logger"
)

// RunParams holds parameters for the Run function
type RunParams struct {
	ConfigDir string
	LogLevel  string
	// Program overrides the configured completer
	Program string
	// Name is the readline name to pass; empty uses the configured
	// variable's current value
	Name       string
	Text       string
	Candidates []string
}

// Run sends one request through the same bridge the shim uses and prints
// the outcome. Candidates are given the way readline holds them: with more
// than one, the first is the common prefix and is not forwarded.
func Run(params RunParams) error {
	settings := loadSettings(params.ConfigDir)
	program := settings.Program
	if params.Program != "" {
		program = params.Program
	}

	name := params.Name
	if name == "" {
		name = os.Getenv(settings.NameVar)
	}

	refreshed := 0
	b := bridge.New(bridge.Options{
		Program: program,
		NameVar: settings.NameVar,
		Name: func() (string, bool) {
			return name, name != ""
		},
		Refresh: func() { refreshed++ },
		Logger:  logger.New(params.LogLevel, nil),
	})

	res, err := b.Transform([]byte(params.Text), bridge.Strings(params.Candidates...))
	if err != nil {
		return fmt.Errorf("request aborted: %w", err)
	}

	fmt.Printf("Program:   %s\n", b.Program())
	fmt.Printf("Verdict:   %s\n", res.Kind)
	fmt.Printf("Exit code: %d\n", res.ExitCode)
	fmt.Printf("Refreshed: %t\n", refreshed > 0)

	if res.Kind == bridge.UseOriginal {
		fmt.Println("Readline keeps its own candidates")
		return nil
	}
	if len(res.Candidates) == 0 {
		fmt.Println("No candidates")
		return nil
	}
	for i, c := range res.Candidates {
		if i == 0 && len(res.Candidates) > 1 {
			fmt.Printf("  [%d] %q (common prefix slot)\n", i, c)
			continue
		}
		fmt.Printf("  [%d] %q\n", i, c)
	}
	return nil
}
