//go:build !linux && !darwin

package hotkeys

import (
	"fmt"
	"runtime"

	"github.com/1broseidon/winsnap/internal/platform"
)

// NewListener reports that global hotkeys are unavailable on this platform.
func NewListener(platform.Backend) (Listener, error) {
	return nil, fmt.Errorf("global hotkeys are not supported on %s", runtime.GOOS)
}
