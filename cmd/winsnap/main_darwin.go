//go:build darwin

package main

import "runtime"

// The event tap's run loop and AppKit calls must stay on the main thread.
func init() {
	runtime.LockOSThread()
}
