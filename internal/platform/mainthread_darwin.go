//go:build darwin

package platform

/*
#include <dispatch/dispatch.h>
#include <pthread.h>
#include <stdint.h>

extern void goRunMainTask(uintptr_t handle);

static void ws_main_trampoline(void *ctx) {
	goRunMainTask((uintptr_t)ctx);
}

static int ws_is_main_thread(void) {
	return pthread_main_np();
}

static void ws_dispatch_main(uintptr_t handle) {
	dispatch_async_f(dispatch_get_main_queue(), (void *)handle, ws_main_trampoline);
}
*/
import "C"

import "runtime/cgo"

// OnMainThread runs fn on the main thread and waits for it. AppKit and the
// Accessibility API are only safe there. The main run loop must be pumping
// (the event tap's Run) for queued work to start; calls made from the main
// thread itself run inline.
func OnMainThread(fn func()) {
	if C.ws_is_main_thread() != 0 {
		fn()
		return
	}

	done := make(chan any, 1)
	task := func() {
		defer func() { done <- recover() }()
		fn()
	}
	C.ws_dispatch_main(C.uintptr_t(cgo.NewHandle(task)))
	if p := <-done; p != nil {
		panic(p)
	}
}

func runMainTask(h cgo.Handle) {
	task := h.Value().(func())
	h.Delete()
	task()
}
