// Package shim implements the replacement completion callback: ask the
// library for its own candidates, let the external completer rewrite them,
// and hand back an array the library can own.
package shim

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/NikitaCOEUR/rlcomplete/internal/bridge"
	"github.com/NikitaCOEUR/rlcomplete/internal/carray"
	"github.com/NikitaCOEUR/rlcomplete/internal/derrors"
	"github.com/NikitaCOEUR/rlcomplete/internal/logger"
)

// Request is one completion request as the library passes it: the text
// being completed (a NUL-terminated C string) and its bounds in the line.
// The bounds are forwarded untouched.
type Request struct {
	Text  unsafe.Pointer
	Start int
	End   int
}

// Library produces the candidates the library would have offered itself
type Library interface {
	// Matches calls the saved completion callback (when saved is non-zero)
	// and falls back to the library's default entry completer when that
	// yields nothing. The result is a borrowed char** array or nil.
	Matches(req Request, saved uintptr) unsafe.Pointer
}

// Transformer rewrites candidates through the external completer
type Transformer interface {
	Transform(text []byte, candidates bridge.Source) (bridge.Result, error)
}

// Completer is the body of the replacement callback
type Completer struct {
	lib    Library
	saved  func() uintptr
	bridge Transformer
	log    *logger.Logger
}

// New creates a completer. saved returns the callback that was installed
// before the current hijack.
func New(lib Library, saved func() uintptr, transformer Transformer, log *logger.Logger) *Completer {
	if log == nil {
		log = logger.Discard()
	}
	return &Completer{
		lib:    lib,
		saved:  saved,
		bridge: transformer,
		log:    log,
	}
}

// Attempt answers one request with a char** array owned by the caller, or
// nil for "no matches". It never panics: anything going wrong past the
// first stage degrades to the library's own candidates.
func (c *Completer) Attempt(req Request) (result unsafe.Pointer) {
	matches := c.lib.Matches(req, c.saved())

	defer func() {
		if r := recover(); r != nil {
			c.log.Error().
				Err(fmt.Errorf("%v", r)).
				Msg("Completion attempt panicked, using default candidates")
			result = matches
		}
	}()

	text := carray.GoBytes(req.Text)
	c.log.Debug().
		Str("text", string(text)).
		Int("start", req.Start).
		Int("end", req.End).
		Int("matches", carray.Len(matches)).
		Msg("Completion request")

	res, err := c.bridge.Transform(text, carray.Iterate(matches))
	if err != nil {
		var encErr *derrors.EncodingError
		if errors.As(err, &encErr) {
			c.log.Warn().Err(err).Msg("Request aborted, using default candidates")
			return matches
		}
		c.log.Error().Err(err).Msg("Request aborted, completer broke the protocol")
		return nil
	}

	switch res.Kind {
	case bridge.Replace:
		c.log.Debug().Strs("candidates", res.Candidates).Msg("Replacing candidates")
		return carray.ToForeign(res.Candidates)
	default:
		return matches
	}
}
