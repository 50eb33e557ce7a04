package helper

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NikitaCOEUR/rlcomplete/internal/cache"
	"github.com/NikitaCOEUR/rlcomplete/internal/config"
	"github.com/NikitaCOEUR/rlcomplete/internal/derrors"
)

func newEngine(t *testing.T, apps map[string][]config.Rule, env ...string) *Engine {
	t.Helper()
	return New(Options{
		Rules: &config.Rules{Apps: apps},
		Env:   append([]string{"PATH=" + os.Getenv("PATH")}, env...),
	})
}

func complete(t *testing.T, e *Engine, req Request) Result {
	t.Helper()
	res, err := e.Complete(context.Background(), req)
	require.NoError(t, err)
	return res
}

func TestComplete_NoRuleEchoesCandidates(t *testing.T) {
	e := newEngine(t, nil)

	res := complete(t, e, Request{App: "bc", Text: "s", Candidates: []string{"scale", "sqrt"}})
	assert.Empty(t, res.Rule)
	assert.Equal(t, []string{"scale", "sqrt"}, res.Candidates)

	res = complete(t, e, Request{App: "bc", Text: "s"})
	assert.NotNil(t, res.Candidates)
	assert.Empty(t, res.Candidates)
}

func TestComplete_WordsWithPrefixFilter(t *testing.T) {
	e := newEngine(t, map[string][]config.Rule{
		"bc": {{Name: "builtins", Words: []string{"scale", "sqrt", "length"}}},
	})

	res := complete(t, e, Request{App: "bc", Text: "s"})
	assert.Equal(t, "builtins", res.Rule)
	assert.Equal(t, []string{"scale", "sqrt"}, res.Candidates)

	// Empty text keeps everything
	res = complete(t, e, Request{App: "bc", Text: ""})
	assert.Equal(t, []string{"scale", "sqrt", "length"}, res.Candidates)
}

func TestComplete_RuleOrder(t *testing.T) {
	e := newEngine(t, map[string][]config.Rule{
		"bc": {
			{Name: "dots", Match: `^\.`, Words: []string{".quit"}},
			{Name: "bc-words", Words: []string{"scale"}},
		},
		config.AnyApp: {
			{Name: "fallback", Words: []string{"anything"}},
		},
	})

	assert.Equal(t, "dots", complete(t, e, Request{App: "bc", Text: ".q"}).Rule)
	assert.Equal(t, "bc-words", complete(t, e, Request{App: "bc", Text: "s"}).Rule)
	assert.Equal(t, "fallback", complete(t, e, Request{App: "gdb", Text: "a"}).Rule)
}

func TestComplete_Reject(t *testing.T) {
	e := newEngine(t, map[string][]config.Rule{
		config.AnyApp: {{Name: "secrets", Match: "^secret", Reject: true}},
	})

	res, err := e.Complete(context.Background(), Request{Text: "secret-key", Candidates: []string{"secret-key.pem"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRejected))
	assert.Equal(t, "secrets", res.Rule)

	// Other text is unaffected
	res = complete(t, e, Request{Text: "public", Candidates: []string{"public.pem"}})
	assert.Equal(t, []string{"public.pem"}, res.Candidates)
}

func TestComplete_When(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Makefile"), nil, 0644))

	e := newEngine(t, map[string][]config.Rule{
		config.AnyApp: {
			{Name: "make", When: &config.When{File: "Makefile"}, Words: []string{"make-target"}},
			{Name: "python-only", When: &config.When{App: "python"}, Words: []string{"import"}},
		},
	})

	assert.Equal(t, "make", complete(t, e, Request{Text: "m", Dir: dir}).Rule)
	assert.Equal(t, "python-only", complete(t, e, Request{App: "python", Text: "i", Dir: t.TempDir()}).Rule)
	assert.Empty(t, complete(t, e, Request{App: "bc", Text: "i", Dir: t.TempDir()}).Rule)
}

func TestComplete_InvalidRule(t *testing.T) {
	e := newEngine(t, map[string][]config.Rule{
		"bc": {{Name: "broken", Match: "([", Words: []string{"x"}}},
	})
	_, err := e.Complete(context.Background(), Request{App: "bc", Text: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rule broken")

	e = newEngine(t, map[string][]config.Rule{
		"bc": {{Name: "empty-when", When: &config.When{}, Words: []string{"x"}}},
	})
	_, err = e.Complete(context.Background(), Request{App: "bc", Text: "x"})
	assert.Error(t, err)
}

func TestComplete_Command(t *testing.T) {
	e := newEngine(t, map[string][]config.Rule{
		"bc": {{Name: "cmd", Command: `printf '%s\n' "$1-one" "$RL_TEXT-two"`}},
	})

	res := complete(t, e, Request{App: "bc", Text: "x"})
	assert.Equal(t, []string{"x-one", "x-two"}, res.Candidates)
}

func TestComplete_CommandSeesCandidates(t *testing.T) {
	e := newEngine(t, map[string][]config.Rule{
		"bc": {{Name: "rev", Filter: config.FilterNone, Command: `printf '%s\n' "$RL_CANDIDATES" | sort -r`}},
	})

	res := complete(t, e, Request{App: "bc", Text: "s", Candidates: []string{"scale", "sqrt"}})
	assert.Equal(t, []string{"sqrt", "scale"}, res.Candidates)
}

func TestComplete_CommandFailure(t *testing.T) {
	e := newEngine(t, map[string][]config.Rule{
		"bc": {{Name: "failing", Command: "exit 3"}},
	})
	_, err := e.Complete(context.Background(), Request{App: "bc", Text: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "command failed")
	var execErr *derrors.ExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, "exit 3", execErr.Command)

	e = newEngine(t, map[string][]config.Rule{
		"bc": {{Name: "unparsable", Command: "echo 'unterminated"}},
	})
	_, err = e.Complete(context.Background(), Request{App: "bc", Text: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse command")
}

func TestComplete_CommandCache(t *testing.T) {
	c, err := cache.New(filepath.Join(t.TempDir(), "commands.json"))
	require.NoError(t, err)

	rules := map[string][]config.Rule{
		"bc": {{Name: "marked", Filter: config.FilterNone, Command: `echo "$MARK"`, Cache: time.Minute}},
	}
	engine := func(mark string) *Engine {
		return New(Options{
			Rules: &config.Rules{Apps: rules},
			Cache: c,
			Env:   []string{"PATH=" + os.Getenv("PATH"), "MARK=" + mark},
		})
	}

	res := complete(t, engine("first"), Request{App: "bc", Text: "x"})
	assert.Equal(t, []string{"first"}, res.Candidates)
	assert.Equal(t, 1, c.Len())

	res = complete(t, engine("second"), Request{App: "bc", Text: "x"})
	assert.Equal(t, []string{"first"}, res.Candidates)

	// Different text, different entry
	res = complete(t, engine("second"), Request{App: "bc", Text: "y"})
	assert.Equal(t, []string{"second"}, res.Candidates)
}

func TestComplete_PassthroughDeduplicates(t *testing.T) {
	e := newEngine(t, map[string][]config.Rule{
		"bc": {{Name: "merge", Words: []string{"scale", "sin"}, Passthrough: true}},
	})

	res := complete(t, e, Request{App: "bc", Text: "s", Candidates: []string{"sqrt", "scale", "", "length"}})
	assert.Equal(t, []string{"scale", "sin", "sqrt"}, res.Candidates)
}

func TestComplete_Template(t *testing.T) {
	e := newEngine(t, map[string][]config.Rule{
		"bc": {{Name: "upper", Filter: config.FilterNone, Words: []string{"scale", "sqrt"}, Template: "{{ . | upper }}"}},
	})

	res := complete(t, e, Request{App: "bc", Text: "s"})
	assert.Equal(t, []string{"SCALE", "SQRT"}, res.Candidates)
}

func TestComplete_FuzzyFilter(t *testing.T) {
	e := newEngine(t, map[string][]config.Rule{
		"bc": {{Name: "fuzzy", Filter: config.FilterFuzzy, Words: []string{"scale", "sqrt", "square", "length"}}},
	})

	res := complete(t, e, Request{App: "bc", Text: "sq"})
	assert.ElementsMatch(t, []string{"sqrt", "square"}, res.Candidates)
}

func TestServe(t *testing.T) {
	e := newEngine(t, map[string][]config.Rule{
		"bc": {{Name: "merge", Words: []string{"sin"}, Passthrough: true}},
	})

	var out strings.Builder
	res, err := e.Serve(context.Background(), Request{App: "bc", Text: "s"}, strings.NewReader("scale\r\nsqrt\n\n"), &out)
	require.NoError(t, err)
	assert.Equal(t, "merge", res.Rule)
	assert.Equal(t, "sin\nscale\nsqrt\n", out.String())
}

func TestServe_RejectWritesNothing(t *testing.T) {
	e := newEngine(t, map[string][]config.Rule{
		config.AnyApp: {{Name: "nothing", Reject: true}},
	})

	var out strings.Builder
	_, err := e.Serve(context.Background(), Request{Text: "x"}, strings.NewReader("x1\n"), &out)
	assert.ErrorIs(t, err, ErrRejected)
	assert.Empty(t, out.String())
}

func TestReadCandidates(t *testing.T) {
	got, err := ReadCandidates(strings.NewReader("a\n\nb\r\nc"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, got)

	got, err = ReadCandidates(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, got)
}
