//go:build !darwin

package platform

// OnMainThread runs fn on the calling goroutine. X11 requests carry no
// thread affinity.
func OnMainThread(fn func()) {
	fn()
}
