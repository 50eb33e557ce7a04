// Package main builds librlcomplete.so, a readline completion override
// meant to be loaded with LD_PRELOAD:
//
//	go build -buildmode=c-shared -o librlcomplete.so ./cmd/librlcomplete
//	LD_PRELOAD=$PWD/librlcomplete.so python3
package main

import "C"

import (
	"github.com/NikitaCOEUR/rlcomplete/internal/readline"
)

// rl_complete shadows readline's own rl_complete, which stays reachable
// through the next definition in load order.
//
//export rl_complete
func rl_complete(ignore, key C.int) C.int { //nolint:revive
	return C.int(readline.Complete(int(ignore), int(key)))
}

func main() {}
