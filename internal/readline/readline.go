// Package readline binds the completion shim to GNU readline: the
// attempted-completion slot, the default match generator, the application
// name and line refresh, plus the process-wide state behind the exported
// rl_complete.
package readline

/*
#cgo LDFLAGS: -lreadline
#include <stdio.h>
#include <stdint.h>
#include <stdlib.h>
#include <readline/readline.h>

extern char** rlcomplete_attempted(char*, int, int);

static int rlc_call_command(uintptr_t fn, int ignore, int key) {
	return ((rl_command_func_t*)fn)(ignore, key);
}

static char** rlc_call_attempted(uintptr_t fn, const char* text, int start, int end) {
	return ((rl_completion_func_t*)fn)(text, start, end);
}

static uintptr_t rlc_get_attempted(void) {
	return (uintptr_t)rl_attempted_completion_function;
}

static void rlc_set_attempted(uintptr_t fn) {
	rl_attempted_completion_function = (rl_completion_func_t*)fn;
}

// Same generator readline itself falls back to
static char** rlc_default_matches(const char* text) {
	rl_compentry_func_t* entry = rl_completion_entry_function;
	if (entry == NULL) {
		entry = rl_filename_completion_function;
	}
	return rl_completion_matches(text, entry);
}

static const char* rlc_readline_name(void) {
	return rl_readline_name;
}

static void rlc_refresh_line(void) {
	rl_refresh_line(0, 0);
}

static uintptr_t rlc_attempted_ptr(void) {
	return (uintptr_t)&rlcomplete_attempted;
}
*/
import "C"

import (
	"unicode/utf8"
	"unsafe"

	"github.com/NikitaCOEUR/rlcomplete/internal/shim"
)

// Library is the readline instance the host linked against
type Library struct{}

// Load returns the current rl_attempted_completion_function
func (Library) Load() uintptr {
	return uintptr(C.rlc_get_attempted())
}

// Store replaces rl_attempted_completion_function
func (Library) Store(fn uintptr) {
	C.rlc_set_attempted(C.uintptr_t(fn))
}

// Replacement returns the address of the exported completion callback
func (Library) Replacement() uintptr {
	return uintptr(C.rlc_attempted_ptr())
}

// Matches asks the callback saved by the hijack first, then readline's
// entry completer (filename completion when the host configured none).
func (l Library) Matches(req shim.Request, saved uintptr) unsafe.Pointer {
	text := (*C.char)(req.Text)

	// Our own callback in the slot means a nested hijack; calling it would recurse
	if saved != 0 && saved != l.Replacement() {
		if m := C.rlc_call_attempted(C.uintptr_t(saved), text, C.int(req.Start), C.int(req.End)); m != nil {
			return unsafe.Pointer(m)
		}
	}
	return unsafe.Pointer(C.rlc_default_matches(text))
}

// Name returns rl_readline_name. It reports false when the host left it
// NULL or it is not valid UTF-8.
func (Library) Name() (string, bool) {
	p := C.rlc_readline_name()
	if p == nil {
		return "", false
	}
	name := C.GoString(p)
	if !utf8.ValidString(name) {
		return "", false
	}
	return name, true
}

// RefreshLine redraws the input line
func (Library) RefreshLine() {
	C.rlc_refresh_line()
}

// call invokes a readline command function such as the original rl_complete
func call(fn unsafe.Pointer, ignore, key int) int {
	return int(C.rlc_call_command(C.uintptr_t(uintptr(fn)), C.int(ignore), C.int(key)))
}
