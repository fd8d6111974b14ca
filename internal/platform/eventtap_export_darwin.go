//go:build darwin

package platform

// #include <stdint.h>
import "C"

//export goEventTapKeyDown
func goEventTapKeyDown(code C.int64_t, flags C.uint64_t) C.int {
	if dispatchKeyDown(int64(code), uint64(flags)) {
		return 1
	}
	return 0
}
