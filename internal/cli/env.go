package cli

import (
	"fmt"
	"os"
	"strings"

	"mvdan.cc/sh/v3/syntax"

	"github.com/NikitaCOEUR/rlcomplete/internal/config"
)

// EnvParams holds parameters for the Env function
type EnvParams struct {
	// Library overrides the shim location
	Library string
	// Command is the program to start; empty prints an export line
	Command []string
	// Current is the LD_PRELOAD value to extend
	Current string
}

// Env prints the shell line that runs a program with the shim preloaded
func Env(params EnvParams) error {
	line, err := EnvLine(params)
	if err != nil {
		return err
	}
	fmt.Println(line)
	return nil
}

// EnvLine builds the line printed by Env. The shim goes first in
// LD_PRELOAD so its rl_complete wins; an existing entry for it is not
// repeated.
func EnvLine(params EnvParams) (string, error) {
	lib, found := config.FindLibrary(params.Library)
	if !found {
		fmt.Fprintf(os.Stderr, "warning: %s does not exist\n", lib)
	}

	preload := lib
	if params.Current != "" && !config.Preloaded(params.Current) {
		preload = lib + ":" + params.Current
	} else if params.Current != "" {
		preload = params.Current
	}

	quoted, err := quote(preload)
	if err != nil {
		return "", err
	}

	if len(params.Command) == 0 {
		return "export LD_PRELOAD=" + quoted, nil
	}

	words := []string{"LD_PRELOAD=" + quoted}
	for _, arg := range params.Command {
		q, err := quote(arg)
		if err != nil {
			return "", err
		}
		words = append(words, q)
	}
	return strings.Join(words, " "), nil
}

func quote(s string) (string, error) {
	q, err := syntax.Quote(s, syntax.LangBash)
	if err != nil {
		return "", fmt.Errorf("cannot quote %q for the shell: %w", s, err)
	}
	return q, nil
}
