//go:build !linux && !darwin

package platform

import (
	"fmt"
	"runtime"
)

// Open reports that no window automation backend exists for this platform.
func Open(Options) (Backend, error) {
	return nil, fmt.Errorf("window control is not supported on %s", runtime.GOOS)
}
