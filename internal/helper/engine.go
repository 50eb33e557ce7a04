// Package helper implements rl_custom_complete, the rule-driven completer
// the shim consults. It reads readline's candidates, picks the first rule
// that applies to the application and the text, and prints the candidates
// readline should offer instead.
package helper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/samber/lo"

	"github.com/NikitaCOEUR/rlcomplete/internal/cache"
	"github.com/NikitaCOEUR/rlcomplete/internal/condition"
	"github.com/NikitaCOEUR/rlcomplete/internal/config"
	"github.com/NikitaCOEUR/rlcomplete/internal/logger"
)

// ErrRejected is returned when a rejecting rule matched
var ErrRejected = errors.New("completion rejected")

// Request is one invocation of the helper
type Request struct {
	// App is the readline name of the host ("" when unknown)
	App string
	// Text is the word being completed
	Text string
	// Candidates are readline's own candidates, as read from stdin
	Candidates []string
	// Dir anchors relative paths in conditions and runs commands
	Dir string
}

// Result is the helper's answer
type Result struct {
	// Rule is the name of the rule that answered, "" when none matched
	Rule       string
	Candidates []string
}

// Options configures an Engine
type Options struct {
	Rules *config.Rules
	// Cache stores command output; nil disables caching
	Cache  *cache.Cache
	Logger *logger.Logger
	// Env is the environment commands start from (default os.Environ())
	Env []string
	// Stderr receives command stderr (default io.Discard)
	Stderr io.Writer
}

// Engine evaluates rules
type Engine struct {
	rules  *config.Rules
	cache  *cache.Cache
	log    *logger.Logger
	env    []string
	stderr io.Writer
}

// New creates an engine
func New(opts Options) *Engine {
	e := &Engine{
		rules:  opts.Rules,
		cache:  opts.Cache,
		log:    opts.Logger,
		env:    opts.Env,
		stderr: opts.Stderr,
	}
	if e.log == nil {
		e.log = logger.Discard()
	}
	if e.env == nil {
		e.env = os.Environ()
	}
	if e.stderr == nil {
		e.stderr = io.Discard
	}
	return e
}

// Complete answers req. Without a matching rule the candidates are returned
// unchanged. A matching rejecting rule yields ErrRejected.
func (e *Engine) Complete(ctx context.Context, req Request) (Result, error) {
	for _, rule := range e.rules.For(req.App) {
		ok, err := e.applies(rule, req)
		if err != nil {
			return Result{Rule: rule.Name}, fmt.Errorf("rule %s: %w", rule.Name, err)
		}
		if !ok {
			continue
		}

		e.log.Debug().Str("rule", rule.Name).Str("text", req.Text).Msg("Rule matched")

		if rule.Reject {
			return Result{Rule: rule.Name, Candidates: []string{}}, fmt.Errorf("rule %s: %w", rule.Name, ErrRejected)
		}

		candidates, err := e.produce(ctx, rule, req)
		if err != nil {
			return Result{Rule: rule.Name}, fmt.Errorf("rule %s: %w", rule.Name, err)
		}
		return Result{Rule: rule.Name, Candidates: candidates}, nil
	}

	e.log.Debug().Str("app", req.App).Str("text", req.Text).Msg("No rule matched, echoing candidates")
	out := req.Candidates
	if out == nil {
		out = []string{}
	}
	return Result{Candidates: out}, nil
}

func (e *Engine) applies(rule config.Rule, req Request) (bool, error) {
	if rule.Match != "" {
		re, err := regexp.Compile(rule.Match)
		if err != nil {
			return false, fmt.Errorf("invalid match: %w", err)
		}
		if !re.MatchString(req.Text) {
			return false, nil
		}
	}

	if rule.When == nil {
		return true, nil
	}

	cond, err := condition.Parse(rule.When)
	if err != nil {
		return false, fmt.Errorf("invalid when: %w", err)
	}
	ok, msg, err := cond.Evaluate(condition.Context{
		App:        req.App,
		Text:       req.Text,
		WorkingDir: req.Dir,
	})
	if err != nil {
		return false, err
	}
	if !ok {
		e.log.Debug().Str("rule", rule.Name).Str("reason", msg).Msg("Rule skipped")
	}
	return ok, nil
}

// produce gathers words, command output and passthrough candidates, in
// that order, then renders, filters and de-duplicates them
func (e *Engine) produce(ctx context.Context, rule config.Rule, req Request) ([]string, error) {
	var out []string
	out = append(out, rule.Words...)

	if rule.Command != "" {
		lines, err := e.command(ctx, rule, req)
		if err != nil {
			return nil, err
		}
		out = append(out, lines...)
	}

	if rule.Passthrough {
		out = append(out, req.Candidates...)
	}

	out, err := render(rule, out)
	if err != nil {
		return nil, err
	}

	out = filter(rule.Filter, req.Text, out)
	out = lo.Uniq(lo.Compact(out))
	return out, nil
}
