// Package condition evaluates the `when` guards of completion rules
package condition

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
)

// Condition is a guard a completion request must satisfy
type Condition interface {
	// Evaluate reports whether the condition holds, a human readable reason
	// when it does not, and an error when it could not be checked at all.
	Evaluate(ctx Context) (bool, string, error)
}

// Context describes the completion request being guarded
type Context struct {
	// App is the host's readline name ("" when the host set none)
	App string
	// Text is the word being completed
	Text string
	// Env overrides the process environment
	Env map[string]string
	// WorkingDir anchors relative paths
	WorkingDir string
}

func (ctx Context) getenv(key string) string {
	if val, ok := ctx.Env[key]; ok {
		return val
	}
	return os.Getenv(key)
}

// path expands variables in p and anchors it to the working directory
func (ctx Context) path(p string) string {
	p = os.Expand(p, ctx.getenv)
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(ctx.WorkingDir, p)
}

func stat(ctx Context, raw, kind string, wantDir bool) (bool, string, error) {
	info, err := os.Stat(ctx.path(raw))
	if err != nil {
		if os.IsNotExist(err) {
			return false, fmt.Sprintf("%s '%s' does not exist", kind, raw), nil
		}
		return false, "", fmt.Errorf("failed to check %s '%s': %w", kind, raw, err)
	}
	if info.IsDir() != wantDir {
		if wantDir {
			return false, fmt.Sprintf("'%s' is a file, not a directory", raw), nil
		}
		return false, fmt.Sprintf("'%s' is a directory, not a file", raw), nil
	}
	return true, "", nil
}

// FileCondition holds when Path names an existing regular file.
// Path may reference environment variables.
type FileCondition struct {
	Path string
}

// Evaluate implements Condition
func (c FileCondition) Evaluate(ctx Context) (bool, string, error) {
	return stat(ctx, c.Path, "file", false)
}

// DirCondition holds when Path names an existing directory
type DirCondition struct {
	Path string
}

// Evaluate implements Condition
func (c DirCondition) Evaluate(ctx Context) (bool, string, error) {
	return stat(ctx, c.Path, "directory", true)
}

// VarCondition holds when the variable is set and non-empty
type VarCondition struct {
	Name string
}

// Evaluate implements Condition
func (c VarCondition) Evaluate(ctx Context) (bool, string, error) {
	if ctx.getenv(c.Name) != "" {
		return true, "", nil
	}
	return false, fmt.Sprintf("environment variable '%s' is not set or empty", c.Name), nil
}

// CommandCondition holds when Name is found in PATH
type CommandCondition struct {
	Name string
}

// Evaluate implements Condition
func (c CommandCondition) Evaluate(_ Context) (bool, string, error) {
	if _, err := exec.LookPath(c.Name); err != nil {
		return false, fmt.Sprintf("command '%s' not found in PATH", c.Name), nil
	}
	return true, "", nil
}

// AppCondition holds when the host's readline name is exactly Name
type AppCondition struct {
	Name string
}

// Evaluate implements Condition
func (c AppCondition) Evaluate(ctx Context) (bool, string, error) {
	if ctx.App == c.Name {
		return true, "", nil
	}
	return false, fmt.Sprintf("application is '%s', not '%s'", ctx.App, c.Name), nil
}

// TextCondition holds when the completed word matches Pattern
type TextCondition struct {
	Pattern *regexp.Regexp
}

// Evaluate implements Condition
func (c TextCondition) Evaluate(ctx Context) (bool, string, error) {
	if c.Pattern.MatchString(ctx.Text) {
		return true, "", nil
	}
	return false, fmt.Sprintf("text '%s' does not match /%s/", ctx.Text, c.Pattern), nil
}

// AllCondition holds when every condition holds
type AllCondition struct {
	Conditions []Condition
}

// Evaluate implements Condition. Every condition is evaluated so the
// reason lists all failures.
func (c AllCondition) Evaluate(ctx Context) (bool, string, error) {
	var failed []string
	for _, cond := range c.Conditions {
		ok, msg, err := cond.Evaluate(ctx)
		if err != nil {
			return false, "", err
		}
		if !ok {
			failed = append(failed, msg)
		}
	}
	if len(failed) > 0 {
		return false, "  - " + strings.Join(failed, "\n  - "), nil
	}
	return true, "", nil
}

// AnyCondition holds when at least one condition holds
type AnyCondition struct {
	Conditions []Condition
}

// Evaluate implements Condition
func (c AnyCondition) Evaluate(ctx Context) (bool, string, error) {
	var b strings.Builder
	b.WriteString("none of the following conditions were met:\n")
	for _, cond := range c.Conditions {
		ok, msg, err := cond.Evaluate(ctx)
		if err != nil {
			return false, "", err
		}
		if ok {
			return true, "", nil
		}
		b.WriteString("  - " + msg + "\n")
	}
	return false, b.String(), nil
}
