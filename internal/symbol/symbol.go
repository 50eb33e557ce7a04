// Package symbol resolves the next definition of a symbol in load order,
// skipping the definition made by the calling module. It is how an
// override reaches the implementation it replaces.
package symbol

/*
#define _GNU_SOURCE
#cgo LDFLAGS: -ldl
#include <dlfcn.h>
#include <stdlib.h>

// Clear dlerror, look up name after the calling object, and report the error
// (if any) next to the result. A NULL result alone is ambiguous.
static void* rlc_dlsym_next(const char* name, char** err) {
	dlerror();
	void* p = dlsym(RTLD_NEXT, name);
	char* e = dlerror();
	if (e) { if (err) *err = e; return NULL; }
	if (err) *err = NULL;
	return p;
}
*/
import "C"

import (
	"errors"
	"sync"
	"unsafe"

	"github.com/NikitaCOEUR/rlcomplete/internal/derrors"
)

// Next returns the address of the next definition of name after the
// module containing this package
func Next(name string) (unsafe.Pointer, error) {
	cs := C.CString(name)
	defer C.free(unsafe.Pointer(cs))

	var cerr *C.char
	p := C.rlc_dlsym_next(cs, &cerr)
	if cerr != nil {
		return nil, derrors.NewSymbolError(name, "dlsym(RTLD_NEXT) failed", errors.New(C.GoString(cerr)))
	}
	if p == nil {
		return nil, derrors.NewSymbolError(name, "symbol resolved to NULL", nil)
	}
	return unsafe.Pointer(p), nil
}

// Lazy returns a function that resolves name on its first call and returns
// the cached address afterwards. A missing symbol panics with the
// *derrors.SymbolError: an override without its original has nothing safe
// to fall back to.
func Lazy(name string) func() unsafe.Pointer {
	return sync.OnceValue(func() unsafe.Pointer {
		p, err := Next(name)
		if err != nil {
			panic(err)
		}
		return p
	})
}
