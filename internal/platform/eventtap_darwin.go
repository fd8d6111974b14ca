//go:build darwin

package platform

/*
#cgo LDFLAGS: -framework ApplicationServices -framework CoreFoundation
#include <ApplicationServices/ApplicationServices.h>
#include <stdint.h>

extern int goEventTapKeyDown(int64_t keycode, uint64_t flags);

static CFMachPortRef g_tap = NULL;
static CFRunLoopSourceRef g_source = NULL;
static CFRunLoopRef g_loop = NULL;

static CGEventRef tap_callback(CGEventTapProxy proxy, CGEventType type, CGEventRef event, void *refcon) {
	// The system disables slow taps; switch it straight back on.
	if (type == kCGEventTapDisabledByTimeout || type == kCGEventTapDisabledByUserInput) {
		if (g_tap) CGEventTapEnable(g_tap, true);
		return event;
	}
	if (type != kCGEventKeyDown) return event;

	int64_t code = CGEventGetIntegerValueField(event, kCGKeyboardEventKeycode);
	CGEventFlags flags = CGEventGetFlags(event);
	if (goEventTapKeyDown(code, (uint64_t)flags)) {
		return NULL;
	}
	return event;
}

static int tap_install(void) {
	CGEventMask mask = CGEventMaskBit(kCGEventKeyDown);
	g_tap = CGEventTapCreate(kCGSessionEventTap, kCGHeadInsertEventTap,
		kCGEventTapOptionDefault, mask, tap_callback, NULL);
	if (!g_tap) return 0;
	g_source = CFMachPortCreateRunLoopSource(kCFAllocatorDefault, g_tap, 0);
	if (!g_source) {
		CFRelease(g_tap);
		g_tap = NULL;
		return 0;
	}
	return 1;
}

static void tap_run(void) {
	g_loop = CFRunLoopGetCurrent();
	CFRunLoopAddSource(g_loop, g_source, kCFRunLoopCommonModes);
	CGEventTapEnable(g_tap, true);
	CFRunLoopRun();
}

static void tap_stop(void) {
	if (g_loop) CFRunLoopStop(g_loop);
}

static void tap_close(void) {
	if (g_tap) {
		CGEventTapEnable(g_tap, false);
		CFMachPortInvalidate(g_tap);
	}
	if (g_source) {
		if (g_loop) CFRunLoopRemoveSource(g_loop, g_source, kCFRunLoopCommonModes);
		CFRelease(g_source);
		g_source = NULL;
	}
	if (g_tap) {
		CFRelease(g_tap);
		g_tap = NULL;
	}
	g_loop = NULL;
}
*/
import "C"

import (
	"errors"
	"runtime"
	"sync"
)

// KeyEvent is a raw key-down observed by the event tap.
type KeyEvent struct {
	KeyCode uint16
	Flags   uint64
}

// KeyHandler inspects a key-down and reports whether to swallow it.
type KeyHandler func(KeyEvent) bool

// EventTap is the process-wide keyboard event tap. Only one may exist.
type EventTap struct {
	handler KeyHandler
	closed  bool
}

var (
	tapMu     sync.Mutex
	activeTap *EventTap
)

// ErrTapExists is returned when a second event tap is requested.
var ErrTapExists = errors.New("event tap already installed")

// NewEventTap installs a session-level key-down tap. Creation fails when the
// process lacks accessibility or input monitoring access.
func NewEventTap(handler KeyHandler) (*EventTap, error) {
	tapMu.Lock()
	defer tapMu.Unlock()

	if activeTap != nil {
		return nil, ErrTapExists
	}
	if C.tap_install() != 1 {
		return nil, errors.Join(errors.New("failed to create keyboard event tap"), ErrPermissionDenied)
	}
	activeTap = &EventTap{handler: handler}
	return activeTap, nil
}

// Run pumps the current thread's run loop until Stop is called. The calling
// goroutine is locked to its OS thread for the duration.
func (t *EventTap) Run() {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	C.tap_run()
}

// Stop makes Run return.
func (t *EventTap) Stop() {
	C.tap_stop()
}

// Close removes the tap. It is safe to call more than once.
func (t *EventTap) Close() {
	tapMu.Lock()
	defer tapMu.Unlock()

	if t.closed {
		return
	}
	t.closed = true
	C.tap_stop()
	C.tap_close()
	if activeTap == t {
		activeTap = nil
	}
}

func dispatchKeyDown(code int64, flags uint64) bool {
	tapMu.Lock()
	tap := activeTap
	tapMu.Unlock()

	if tap == nil || tap.handler == nil {
		return false
	}
	return tap.handler(KeyEvent{KeyCode: uint16(code), Flags: flags})
}
