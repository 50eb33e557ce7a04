package readline

/*
#include <stdint.h>
#include <stdlib.h>
#include <string.h>
#include <readline/readline.h>

static char** rlc_fixture_fixed(const char* text, int start, int end) {
	char** m = malloc(3 * sizeof(char*));
	m[0] = strdup("fixed-one");
	m[1] = strdup("fixed-two");
	m[2] = NULL;
	return m;
}

static char** rlc_fixture_null(const char* text, int start, int end) {
	return NULL;
}

static char* rlc_fixture_entry(const char* text, int state) {
	return state == 0 ? strdup("entry-match") : NULL;
}

static uintptr_t rlc_fixture_fixed_ptr(void) { return (uintptr_t)&rlc_fixture_fixed; }
static uintptr_t rlc_fixture_null_ptr(void) { return (uintptr_t)&rlc_fixture_null; }
static uintptr_t rlc_fixture_entry_ptr(void) { return (uintptr_t)&rlc_fixture_entry; }

static uintptr_t rlc_get_entry(void) {
	return (uintptr_t)rl_completion_entry_function;
}

static void rlc_set_entry(uintptr_t fn) {
	rl_completion_entry_function = (rl_compentry_func_t*)fn;
}
*/
import "C"

// Fixed C callbacks for exercising Matches without a host program

// fixedCallback returns an attempted-completion callback answering
// ["fixed-one", "fixed-two"]
func fixedCallback() uintptr { return uintptr(C.rlc_fixture_fixed_ptr()) }

// nullCallback returns an attempted-completion callback answering NULL
func nullCallback() uintptr { return uintptr(C.rlc_fixture_null_ptr()) }

// entryFunction returns an entry completer yielding "entry-match" once
func entryFunction() uintptr { return uintptr(C.rlc_fixture_entry_ptr()) }

// setEntryFunction installs fn as rl_completion_entry_function and returns
// a function putting the previous one back
func setEntryFunction(fn uintptr) func() {
	prev := C.rlc_get_entry()
	C.rlc_set_entry(C.uintptr_t(fn))
	return func() { C.rlc_set_entry(prev) }
}
