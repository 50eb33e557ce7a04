package helper

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"

	"github.com/NikitaCOEUR/rlcomplete/internal/cache"
	"github.com/NikitaCOEUR/rlcomplete/internal/config"
	"github.com/NikitaCOEUR/rlcomplete/internal/derrors"
)

// command runs the rule's shell snippet in-process and returns its stdout
// lines. The text is $1 and $RL_TEXT; readline's candidates are
// $RL_CANDIDATES, one per line.
func (e *Engine) command(ctx context.Context, rule config.Rule, req Request) ([]string, error) {
	candidates := strings.Join(req.Candidates, "\n")

	key := cache.Key(req.App, rule.Name, rule.Command, req.Text, candidates, req.Dir)
	if rule.Cache > 0 && e.cache != nil {
		if lines, ok := e.cache.Get(key, rule.Cache); ok {
			e.log.Debug().Str("rule", rule.Name).Int("lines", len(lines)).Msg("Command output from cache")
			return lines, nil
		}
	}

	prog, err := syntax.NewParser().Parse(strings.NewReader(rule.Command), rule.Name)
	if err != nil {
		return nil, derrors.NewExecutionError(rule.Command, "failed to parse command", err)
	}

	env := append(append([]string{}, e.env...),
		"RL_TEXT="+req.Text,
		"RL_CANDIDATES="+candidates,
	)

	var stdout bytes.Buffer
	opts := []interp.RunnerOption{
		interp.Env(expand.ListEnviron(env...)),
		interp.Params("--", req.Text),
		interp.StdIO(nil, &stdout, e.stderr),
	}
	if req.Dir != "" {
		opts = append(opts, interp.Dir(req.Dir))
	}

	runner, err := interp.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create shell runner: %w", err)
	}

	if err := runner.Run(ctx, prog); err != nil {
		return nil, derrors.NewExecutionError(rule.Command, "command failed", err)
	}

	lines := splitLines(stdout.String())

	if rule.Cache > 0 && e.cache != nil {
		if err := e.cache.Set(key, rule.Name, lines); err != nil {
			e.log.Warn().Err(err).Str("rule", rule.Name).Msg("Failed to cache command output")
		}
	}

	return lines, nil
}

// splitLines returns the non-empty lines of s without line terminators
func splitLines(s string) []string {
	lines := []string{}
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
