package readline

// #include <stdlib.h>
import "C"

import (
	"unsafe"

	"github.com/NikitaCOEUR/rlcomplete/internal/shim"
)

// rlcomplete_attempted is installed as rl_attempted_completion_function for
// the duration of one rl_complete call.
//
//export rlcomplete_attempted
func rlcomplete_attempted(text *C.char, start, end C.int) **C.char { //nolint:revive
	req := shim.Request{
		Text:  unsafe.Pointer(text),
		Start: int(start),
		End:   int(end),
	}
	return (**C.char)(current().completer.Attempt(req))
}
