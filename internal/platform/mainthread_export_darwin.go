//go:build darwin

package platform

// #include <stdint.h>
import "C"

import "runtime/cgo"

//export goRunMainTask
func goRunMainTask(handle C.uintptr_t) {
	runMainTask(cgo.Handle(handle))
}
