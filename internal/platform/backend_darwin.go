//go:build darwin

package platform

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework ApplicationServices -framework AppKit
#import <ApplicationServices/ApplicationServices.h>
#import <AppKit/AppKit.h>
#include <stdlib.h>
#include <string.h>
#include <stdint.h>

typedef struct {
	double x, y, w, h;
} ws_rect;

typedef struct {
	unsigned int id;
	char name[128];
	ws_rect frame;
	ws_rect visible;
} ws_screen;

// NSScreen reports bottom-left origin frames; screens[0] holds the menu bar.
static int ws_screens(ws_screen *out, int max) {
	int n = 0;
	@autoreleasepool {
		NSArray<NSScreen *> *screens = [NSScreen screens];
		for (NSScreen *screen in screens) {
			if (n >= max) break;
			NSRect f = [screen frame];
			NSRect v = [screen visibleFrame];
			NSNumber *num = [[screen deviceDescription] objectForKey:@"NSScreenNumber"];
			out[n].id = num ? [num unsignedIntValue] : (unsigned int)n;
			out[n].name[0] = 0;
			if ([screen respondsToSelector:@selector(localizedName)]) {
				NSString *name = [screen localizedName];
				if (name) strlcpy(out[n].name, [name UTF8String], sizeof(out[n].name));
			}
			out[n].frame = (ws_rect){f.origin.x, f.origin.y, f.size.width, f.size.height};
			out[n].visible = (ws_rect){v.origin.x, v.origin.y, v.size.width, v.size.height};
			n++;
		}
	}
	return n;
}

static int ax_trusted(int prompt) {
	const void *keys[] = { kAXTrustedCheckOptionPrompt };
	const void *vals[] = { prompt ? kCFBooleanTrue : kCFBooleanFalse };
	CFDictionaryRef opts = CFDictionaryCreate(NULL, keys, vals, 1,
		&kCFTypeDictionaryKeyCallBacks, &kCFTypeDictionaryValueCallBacks);
	Boolean ok = AXIsProcessTrustedWithOptions(opts);
	if (opts) CFRelease(opts);
	return ok ? 1 : 0;
}

// Returns a retained focused window of the frontmost application, or 0 with
// the AX error in *err. Elements cross into Go as integers.
static uintptr_t ax_focused_window(int *err) {
	*err = kAXErrorSuccess;
	pid_t pid = 0;
	@autoreleasepool {
		NSRunningApplication *app = [[NSWorkspace sharedWorkspace] frontmostApplication];
		if (!app) { *err = kAXErrorNoValue; return 0; }
		pid = app.processIdentifier;
	}
	AXUIElementRef axApp = AXUIElementCreateApplication(pid);
	if (!axApp) { *err = kAXErrorFailure; return 0; }
	CFTypeRef win = NULL;
	AXError e = AXUIElementCopyAttributeValue(axApp, kAXFocusedWindowAttribute, &win);
	CFRelease(axApp);
	if (e != kAXErrorSuccess || !win) {
		*err = e != kAXErrorSuccess ? e : kAXErrorNoValue;
		return 0;
	}
	return (uintptr_t)win;
}

static int ax_window_frame(uintptr_t ref, ws_rect *out) {
	AXUIElementRef win = (AXUIElementRef)ref;
	CFTypeRef posVal = NULL, sizeVal = NULL;
	AXError e = AXUIElementCopyAttributeValue(win, kAXPositionAttribute, &posVal);
	if (e != kAXErrorSuccess) return e;
	e = AXUIElementCopyAttributeValue(win, kAXSizeAttribute, &sizeVal);
	if (e != kAXErrorSuccess) { CFRelease(posVal); return e; }
	CGPoint p = CGPointZero;
	CGSize s = CGSizeZero;
	AXValueGetValue((AXValueRef)posVal, kAXValueCGPointType, &p);
	AXValueGetValue((AXValueRef)sizeVal, kAXValueCGSizeType, &s);
	CFRelease(posVal);
	CFRelease(sizeVal);
	*out = (ws_rect){p.x, p.y, s.width, s.height};
	return kAXErrorSuccess;
}

static int ax_set_position(uintptr_t ref, double x, double y) {
	AXUIElementRef win = (AXUIElementRef)ref;
	CGPoint p = CGPointMake(x, y);
	AXValueRef v = AXValueCreate(kAXValueCGPointType, &p);
	if (!v) return kAXErrorFailure;
	AXError e = AXUIElementSetAttributeValue(win, kAXPositionAttribute, v);
	CFRelease(v);
	return e;
}

static int ax_set_size(uintptr_t ref, double w, double h) {
	AXUIElementRef win = (AXUIElementRef)ref;
	CGSize s = CGSizeMake(w, h);
	AXValueRef v = AXValueCreate(kAXValueCGSizeType, &s);
	if (!v) return kAXErrorFailure;
	AXError e = AXUIElementSetAttributeValue(win, kAXSizeAttribute, v);
	CFRelease(v);
	return e;
}

static void ax_release(uintptr_t ref) {
	if (ref) CFRelease((CFTypeRef)ref);
}
*/
import "C"

import (
	"fmt"
	"sync"

	"github.com/1broseidon/winsnap/internal/geometry"
)

const maxScreens = 16

// DarwinBackend drives windows through the Accessibility API. Window handles
// index retained AXUIElement references; the previous reference is released
// whenever a new focused window is looked up.
type DarwinBackend struct {
	mu      sync.Mutex
	nextID  uint64
	windows map[uint64]C.uintptr_t
}

var _ Backend = (*DarwinBackend)(nil)

// Open returns the Accessibility backend. Options only apply to X11.
func Open(Options) (Backend, error) {
	return &DarwinBackend{windows: make(map[uint64]C.uintptr_t)}, nil
}

// Close releases any retained window references.
func (b *DarwinBackend) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.releaseLocked()
}

// Trusted reports whether the process is an accessibility client, optionally
// showing the system prompt that links to the privacy settings.
func (b *DarwinBackend) Trusted(prompt bool) bool {
	p := C.int(0)
	if prompt {
		p = 1
	}
	return C.ax_trusted(p) == 1
}

// Displays returns NSScreen regions in native convention; the first screen is primary.
func (b *DarwinBackend) Displays() ([]Display, error) {
	screens := make([]C.ws_screen, maxScreens)
	n := int(C.ws_screens(&screens[0], C.int(maxScreens)))

	displays := make([]Display, 0, n)
	for i := 0; i < n; i++ {
		s := screens[i]
		bounds := frameFromRect(s.frame, geometry.Native)
		name := C.GoString(&s.name[0])
		if name == "" {
			name = fmt.Sprintf("Display %d", i+1)
		}
		displays = append(displays, Display{
			ID:      int(s.id),
			Name:    name,
			Index:   i,
			Primary: i == 0,
			Bounds:  bounds,
			Usable:  ClipUsable(bounds, frameFromRect(s.visible, geometry.Native)),
		})
	}
	return displays, nil
}

// FocusedWindow returns the focused window of the frontmost application.
func (b *DarwinBackend) FocusedWindow() (WindowHandle, error) {
	var axErr C.int
	win := C.ax_focused_window(&axErr)
	if win == 0 {
		return WindowHandle{}, axError(int(axErr))
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.releaseLocked()
	b.nextID++
	b.windows[b.nextID] = win
	return NewWindowHandle(b.nextID), nil
}

// WindowFrame returns the window frame in the automation convention.
func (b *DarwinBackend) WindowFrame(h WindowHandle) (geometry.Frame, error) {
	win, err := b.element(h)
	if err != nil {
		return geometry.Frame{}, err
	}
	var r C.ws_rect
	if e := C.ax_window_frame(win, &r); e != 0 {
		return geometry.Frame{}, axError(int(e))
	}
	return frameFromRect(r, geometry.Automation), nil
}

// SetPosition writes the AXPosition attribute.
func (b *DarwinBackend) SetPosition(h WindowHandle, p geometry.Point) error {
	if p.Convention != geometry.Automation {
		return fmt.Errorf("position must be in automation convention, got %s", p.Convention)
	}
	win, err := b.element(h)
	if err != nil {
		return err
	}
	if e := C.ax_set_position(win, C.double(p.X), C.double(p.Y)); e != 0 {
		return fmt.Errorf("set position: %w", axError(int(e)))
	}
	return nil
}

// SetSize writes the AXSize attribute.
func (b *DarwinBackend) SetSize(h WindowHandle, s geometry.Size) error {
	win, err := b.element(h)
	if err != nil {
		return err
	}
	if e := C.ax_set_size(win, C.double(s.Width), C.double(s.Height)); e != 0 {
		return fmt.Errorf("set size: %w", axError(int(e)))
	}
	return nil
}

func (b *DarwinBackend) element(h WindowHandle) (C.uintptr_t, error) {
	if !h.Valid() {
		return 0, ErrInvalidHandle
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	win, ok := b.windows[h.ID()]
	if !ok {
		return 0, fmt.Errorf("window %s: %w", h, ErrInvalidHandle)
	}
	return win, nil
}

func (b *DarwinBackend) releaseLocked() {
	for id, win := range b.windows {
		C.ax_release(win)
		delete(b.windows, id)
	}
}

// AXError values from HIServices/AXError.h.
const (
	axErrorFailure          = -25200
	axErrorIllegalArgument  = -25201
	axErrorInvalidUIElement = -25202
	axErrorCannotComplete   = -25204
	axErrorAPIDisabled      = -25211
	axErrorNoValue          = -25212
)

func axError(code int) error {
	switch code {
	case axErrorAPIDisabled:
		return ErrPermissionDenied
	case axErrorNoValue:
		return ErrNoFocusedWindow
	case axErrorInvalidUIElement:
		return ErrInvalidHandle
	case axErrorCannotComplete:
		return fmt.Errorf("accessibility request could not complete (AXError %d)", code)
	case axErrorIllegalArgument:
		return fmt.Errorf("accessibility request rejected (AXError %d)", code)
	default:
		return fmt.Errorf("accessibility error %d", code)
	}
}

func frameFromRect(r C.ws_rect, c geometry.Convention) geometry.Frame {
	return geometry.NewFrame(float64(r.x), float64(r.y), float64(r.w), float64(r.h), c)
}
