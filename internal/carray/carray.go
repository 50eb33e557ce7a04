// Package carray converts between Go strings and the NULL-terminated
// `char **` arrays readline uses for completion matches.
//
// Arrays handed to this package are borrowed: they are read, never freed.
// Arrays produced by ToForeign live on the C heap and belong to the caller
// on the C side from then on. Readline releases completion arrays itself
// with free(3), so every allocation here goes through malloc.
package carray

/*
#include <stdlib.h>
#include <string.h>
*/
import "C"

import (
	"unsafe"
)

const ptrSize = unsafe.Sizeof(uintptr(0))

// Iterator walks a borrowed array one entry at a time.
// It stops at the first NULL entry and cannot be restarted.
type Iterator struct {
	p unsafe.Pointer
}

// Iterate returns an iterator over the array at p. A nil p yields nothing.
func Iterate(p unsafe.Pointer) *Iterator {
	return &Iterator{p: p}
}

// Next returns a copy of the next entry, or false once the NULL sentinel
// has been reached.
func (it *Iterator) Next() ([]byte, bool) {
	if it.p == nil {
		return nil, false
	}

	elem := *(**C.char)(it.p)
	if elem == nil {
		it.p = nil
		return nil, false
	}

	value := C.GoBytes(unsafe.Pointer(elem), C.int(C.strlen(elem)))
	it.p = unsafe.Add(it.p, ptrSize)
	return value, true
}

// Len counts the entries before the NULL sentinel
func Len(p unsafe.Pointer) int {
	if p == nil {
		return 0
	}
	n := 0
	for *(*unsafe.Pointer)(unsafe.Add(p, uintptr(n)*ptrSize)) != nil {
		n++
	}
	return n
}

// ToForeign copies list into a freshly malloc'd array of NUL-terminated
// strings followed by a NULL entry, and returns the array.
// An empty list returns nil, readline's "no matches".
//
// Nothing here frees the result: ownership moves to the foreign caller,
// which may read it long after this call returns.
func ToForeign(list []string) unsafe.Pointer {
	if len(list) == 0 {
		return nil
	}

	array := C.malloc(C.size_t(len(list)+1) * C.size_t(ptrSize))
	entries := unsafe.Slice((**C.char)(array), len(list)+1)
	for i, s := range list {
		entries[i] = C.CString(s)
	}
	entries[len(list)] = nil

	return array
}

// GoBytes copies the NUL-terminated string at p. A nil p yields nil.
func GoBytes(p unsafe.Pointer) []byte {
	if p == nil {
		return nil
	}
	cs := (*C.char)(p)
	return C.GoBytes(p, C.int(C.strlen(cs)))
}
