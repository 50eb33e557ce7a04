// Package bridge runs the external completer program for one completion
// request and turns its answer into a new candidate list.
//
// Protocol: the program gets the text being completed as its only
// argument, the host's readline name in an environment variable, and the
// existing candidates on stdin, one per line. Exit status 0 means "these
// stdout lines are the candidates", anything else means "no candidates".
package bridge

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"os"
	"os/exec"
	"unicode/utf8"

	"github.com/NikitaCOEUR/rlcomplete/internal/derrors"
	"github.com/NikitaCOEUR/rlcomplete/internal/logger"
	"github.com/NikitaCOEUR/rlcomplete/internal/timing"
)

const (
	// DefaultProgram is the completer looked up in PATH
	DefaultProgram = "rl_custom_complete"
	// DefaultNameVar carries the host's rl_readline_name to the completer
	DefaultNameVar = "READLINE_NAME"
)

// Source yields the existing candidates, in order, once
type Source interface {
	Next() ([]byte, bool)
}

// Kind tells the caller what to do with a Result
type Kind int

const (
	// UseOriginal leaves the existing candidates untouched
	UseOriginal Kind = iota
	// Replace substitutes Result.Candidates, which may be empty
	Replace
)

func (k Kind) String() string {
	switch k {
	case UseOriginal:
		return "use-original"
	case Replace:
		return "replace"
	default:
		return "unknown"
	}
}

// Result is the outcome of one completer run
type Result struct {
	Kind       Kind
	Candidates []string
	// ExitCode of the completer, or -1 when it never ran to completion
	ExitCode int
}

// Options configures a Bridge. Zero values fall back to the defaults.
type Options struct {
	Program string
	NameVar string
	// Name returns the host's readline name, if it set one
	Name func() (string, bool)
	// Refresh redraws the input line after the completer has been consulted
	Refresh func()
	// Stderr receives the completer's stderr (default os.Stderr)
	Stderr io.Writer
	Logger *logger.Logger
}

// Bridge spawns the completer for each request
type Bridge struct {
	program string
	nameVar string
	name    func() (string, bool)
	refresh func()
	stderr  io.Writer
	log     *logger.Logger
}

// New creates a bridge from opts
func New(opts Options) *Bridge {
	b := &Bridge{
		program: opts.Program,
		nameVar: opts.NameVar,
		name:    opts.Name,
		refresh: opts.Refresh,
		stderr:  opts.Stderr,
		log:     opts.Logger,
	}
	if b.program == "" {
		b.program = DefaultProgram
	}
	if b.nameVar == "" {
		b.nameVar = DefaultNameVar
	}
	if b.name == nil {
		b.name = func() (string, bool) { return "", false }
	}
	if b.refresh == nil {
		b.refresh = func() {}
	}
	if b.stderr == nil {
		b.stderr = os.Stderr
	}
	if b.log == nil {
		b.log = logger.Discard()
	}
	return b
}

// Program returns the completer program name or path
func (b *Bridge) Program() string {
	return b.program
}

// Transform sends candidates to the completer and returns its verdict.
//
// A completer that cannot be started, or whose wait fails, yields
// UseOriginal. A non-zero exit yields an empty Replace. text must be valid
// UTF-8 and successful output must be readable as UTF-8 lines; violations
// are returned as errors and abort the request.
func (b *Bridge) Transform(text []byte, candidates Source) (Result, error) {
	if !utf8.Valid(text) {
		return Result{}, derrors.NewEncodingError(text, "completion text is not valid UTF-8")
	}

	timer := timing.NewTimer()
	forwarded := Forwarded(drain(candidates))

	cmd := exec.Command(b.program, string(text))
	cmd.Env = os.Environ()
	if name, ok := b.name(); ok {
		cmd.Env = append(cmd.Env, b.nameVar+"="+name)
	}
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = b.stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		b.log.Debug().Err(err).Msg("Failed to create completer stdin")
		return Result{Kind: UseOriginal, ExitCode: -1}, nil
	}

	if err := cmd.Start(); err != nil {
		// Missing helper: behave as if the shim were not installed
		b.log.Debug().Str("program", b.program).Err(err).Msg("Completer not started")
		return Result{Kind: UseOriginal, ExitCode: -1}, nil
	}
	timer.Mark("spawn")

	written := writeCandidates(stdin, forwarded)
	_ = stdin.Close()
	timer.Mark("write")

	err = cmd.Wait()
	timer.Mark("wait")

	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			b.log.Debug().Err(err).Msg("Waiting for completer failed")
			return Result{Kind: UseOriginal, ExitCode: -1}, nil
		}

		b.refresh()
		b.log.Debug().
			Str("program", b.program).
			Int("exit", exitErr.ExitCode()).
			Int("written", written).
			Str("timing", timer.Summary()).
			Msg("Completer declined")
		return Result{Kind: Replace, Candidates: []string{}, ExitCode: exitErr.ExitCode()}, nil
	}

	b.refresh()

	lines, err := ParseOutput(b.program, stdout.Bytes())
	timer.Mark("read")
	if err != nil {
		return Result{}, err
	}

	b.log.Debug().
		Str("program", b.program).
		Int("written", written).
		Int("lines", len(lines)).
		Str("timing", timer.Summary()).
		Msg("Completer answered")

	return Result{Kind: Replace, Candidates: WithPrefixSlot(lines), ExitCode: 0}, nil
}

func drain(src Source) [][]byte {
	if src == nil {
		return nil
	}
	var out [][]byte
	for {
		value, ok := src.Next()
		if !ok {
			return out
		}
		out = append(out, value)
	}
}

// Forwarded returns the candidates the completer should see. With several
// candidates, readline keeps the longest common prefix in slot 0; that slot
// is not a real candidate and is dropped. A single candidate is kept.
func Forwarded(candidates [][]byte) [][]byte {
	if len(candidates) <= 1 {
		return candidates
	}
	return candidates[1:]
}

// writeCandidates writes each non-empty candidate as a line and stops at the
// first failed write: a closed pipe means the completer stopped listening.
func writeCandidates(w io.Writer, candidates [][]byte) int {
	written := 0
	for _, c := range candidates {
		if len(c) == 0 {
			continue
		}
		line := make([]byte, 0, len(c)+1)
		line = append(line, c...)
		line = append(line, '\n')
		if _, err := w.Write(line); err != nil {
			break
		}
		written++
	}
	return written
}

// ParseOutput splits completer output into lines. Line endings ("\n" or
// "\r\n") are stripped and a missing final newline is tolerated. Any line
// that is not valid UTF-8 is a protocol violation.
func ParseOutput(program string, output []byte) ([]string, error) {
	lines := []string{}
	r := bufio.NewReader(bytes.NewReader(output))
	for n := 1; ; n++ {
		line, err := r.ReadBytes('\n')
		if len(line) > 0 {
			line = bytes.TrimSuffix(line, []byte("\n"))
			line = bytes.TrimSuffix(line, []byte("\r"))
			if !utf8.Valid(line) {
				return nil, derrors.NewProtocolError(program, n, "completer output is not valid UTF-8", nil)
			}
			lines = append(lines, string(line))
		}
		if err == io.EOF {
			return lines, nil
		}
		if err != nil {
			return nil, derrors.NewProtocolError(program, n, "failed to read completer output", err)
		}
	}
}

// WithPrefixSlot restores readline's layout: several candidates are preceded
// by an empty common-prefix slot.
func WithPrefixSlot(lines []string) []string {
	if len(lines) <= 1 {
		return lines
	}
	return append([]string{""}, lines...)
}

// SliceSource is a Source over an in-memory list
type SliceSource struct {
	items [][]byte
}

// Strings returns a Source yielding each string in order
func Strings(items ...string) *SliceSource {
	s := &SliceSource{}
	for _, item := range items {
		s.items = append(s.items, []byte(item))
	}
	return s
}

// Next implements Source
func (s *SliceSource) Next() ([]byte, bool) {
	if len(s.items) == 0 {
		return nil, false
	}
	item := s.items[0]
	s.items = s.items[1:]
	return item, true
}
