// SPDX-License-Identifier: Unlicense OR MIT

//go:build (linux && !android) || freebsd
// +build linux,!android freebsd

// Package x11 opens Xlib displays and the native windows EGL surfaces are
// created for.
package x11

/*
#cgo linux pkg-config: x11
#cgo freebsd LDFLAGS: -lX11
#cgo freebsd CFLAGS: -I/usr/local/include
#cgo freebsd LDFLAGS: -L/usr/local/lib

#include <stdlib.h>
#include <X11/Xlib.h>
#include <X11/Xatom.h>
#include <X11/Xutil.h>
*/
import "C"
import (
	"errors"
	"fmt"
	"time"
	"unsafe"

	syscall "golang.org/x/sys/unix"

	"github.com/eglx11/eglx11/internal/xevent"
)

// Display is a connection to an X server.
type Display struct {
	x     *C.Display
	atoms map[string]C.Atom
}

// Options describe a new window.
type Options struct {
	Title         string
	X, Y          int
	Width, Height int
	// VisualID is the native visual to create the window with, usually
	// the EGL_NATIVE_VISUAL_ID of the chosen EGL config. The default
	// visual is used if no such visual exists.
	VisualID int
}

// Window is a top level window that reports WM_DELETE_WINDOW requests.
type Window struct {
	d        *Display
	xw       C.Window
	colormap C.Colormap
	xev      *C.XEvent

	viewport xevent.Viewport
	filter   xevent.Filter
}

// OpenDisplay connects to the X server named by name, or by $DISPLAY
// if name is empty.
func OpenDisplay(name string) (*Display, error) {
	var cname *C.char
	if name != "" {
		cname = C.CString(name)
		defer C.free(unsafe.Pointer(cname))
	}
	dpy := C.XOpenDisplay(cname)
	if dpy == nil {
		return nil, errors.New("x11: cannot connect to the X server")
	}
	return &Display{x: dpy}, nil
}

// Native returns the Xlib Display pointer.
func (d *Display) Native() unsafe.Pointer {
	return unsafe.Pointer(d.x)
}

// Close closes the connection. Windows must be destroyed first.
func (d *Display) Close() {
	if d.x != nil {
		C.XCloseDisplay(d.x)
		d.x = nil
	}
}

// atom is a wrapper around XInternAtom. Atoms are cached per display to
// limit round-trips to the X server.
func (d *Display) atom(name string, onlyIfExists bool) C.Atom {
	if a, ok := d.atoms[name]; ok {
		return a
	}
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	flag := C.Bool(C.False)
	if onlyIfExists {
		flag = C.True
	}
	a := C.XInternAtom(d.x, cname, flag)
	if a != C.None {
		if d.atoms == nil {
			d.atoms = make(map[string]C.Atom)
		}
		d.atoms[name] = a
	}
	return a
}

// NewWindow creates and maps a window on the default screen of d.
func NewWindow(d *Display, opts Options) (*Window, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("x11: invalid window size %dx%d", opts.Width, opts.Height)
	}
	dpy := d.x
	screen := C.XDefaultScreen(dpy)
	root := C.XRootWindow(dpy, screen)

	visual := C.XDefaultVisual(dpy, screen)
	depth := C.XDefaultDepth(dpy, screen)
	var req C.XVisualInfo
	req.visualid = C.VisualID(opts.VisualID)
	var n C.int
	if info := C.XGetVisualInfo(dpy, C.VisualIDMask, &req, &n); info != nil {
		if n > 0 {
			visual = info.visual
			depth = info.depth
		}
		C.XFree(unsafe.Pointer(info))
	}
	colormap := C.XCreateColormap(dpy, root, visual, C.AllocNone)

	swa := C.XSetWindowAttributes{
		background_pixel: 0,
		border_pixel:     0,
		colormap:         colormap,
		event_mask: C.ExposureMask | C.FocusChangeMask | // update
			C.KeyPressMask | C.KeyReleaseMask | // keyboard
			C.ButtonPressMask | C.ButtonReleaseMask | // mouse clicks
			C.PointerMotionMask | // mouse movement
			C.StructureNotifyMask, // resize
	}
	win := C.XCreateWindow(dpy, root,
		C.int(opts.X), C.int(opts.Y), C.uint(opts.Width), C.uint(opts.Height),
		0, depth, C.InputOutput, visual,
		C.CWBackPixel|C.CWBorderPixel|C.CWColormap|C.CWEventMask, &swa)

	w := &Window{
		d:        d,
		xw:       win,
		colormap: colormap,
		xev:      new(C.XEvent),
		viewport: xevent.Viewport{Width: opts.Width, Height: opts.Height},
	}

	// extensions
	evDelWindow := d.atom("WM_DELETE_WINDOW", false)
	C.XSetWMProtocols(dpy, win, &evDelWindow, 1)

	w.filter = xevent.Filter{
		Window:     uint64(win),
		DeleteAtom: uint64(evDelWindow),
		Viewport:   &w.viewport,
	}

	hints := C.XSizeHints{
		flags:  C.USSize | C.USPosition,
		x:      C.int(opts.X),
		y:      C.int(opts.Y),
		width:  C.int(opts.Width),
		height: C.int(opts.Height),
	}
	ctitle := C.CString(opts.Title)
	defer C.free(unsafe.Pointer(ctitle))
	C.XSetStandardProperties(dpy, win, ctitle, ctitle, C.None, nil, 0, &hints)
	// set _NET_WM_NAME as well for UTF-8 support in window title.
	C.XSetTextProperty(dpy, win,
		&C.XTextProperty{
			value:    (*C.uchar)(unsafe.Pointer(ctitle)),
			encoding: d.atom("UTF8_STRING", false),
			format:   8,
			nitems:   C.ulong(len(opts.Title)),
		},
		d.atom("_NET_WM_NAME", false))

	// make the window visible on the screen
	C.XMapWindow(dpy, win)
	C.XFlush(dpy)
	return w, nil
}

// ID returns the X window id.
func (w *Window) ID() uint64 {
	return uint64(w.xw)
}

// Native returns the window as an EGLNativeWindowType value.
func (w *Window) Native() uintptr {
	return uintptr(w.xw)
}

// Size returns the window size as of the last processed ConfigureNotify.
func (w *Window) Size() (width, height int) {
	return w.viewport.Width, w.viewport.Height
}

// OnResize sets the function called when the window changes size.
func (w *Window) OnResize(f func(width, height int)) {
	w.filter.Resize = f
}

// OnPointer sets the function called for pointer motion and buttons.
func (w *Window) OnPointer(f func(x, y int, left bool)) {
	w.filter.Pointer = f
}

// ProcessEvents handles every queued event. It returns false if the
// window manager asked the window to close.
func (w *Window) ProcessEvents() bool {
	for C.XEventsQueued(w.d.x, C.QueuedAfterFlush) != 0 {
		C.XNextEvent(w.d.x, w.xev)
		if !w.filter.Dispatch(w.decode()) {
			return false
		}
	}
	return true
}

// WaitEvents blocks until the X connection has events to read or timeout
// has passed.
func (w *Window) WaitEvents(timeout time.Duration) error {
	if C.XPending(w.d.x) != 0 {
		return nil
	}
	ms := int(timeout / time.Millisecond)
	if timeout > 0 && ms == 0 {
		ms = 1
	}
	xfd := C.XConnectionNumber(w.d.x)
	pollfds := []syscall.PollFd{
		{Fd: int32(xfd), Events: syscall.POLLIN | syscall.POLLERR},
	}
	if _, err := syscall.Poll(pollfds, ms); err != nil && err != syscall.EINTR {
		return fmt.Errorf("x11: poll failed: %w", err)
	}
	if pollfds[0].Revents&(syscall.POLLERR|syscall.POLLHUP) != 0 {
		return errors.New("x11: connection to the X server lost")
	}
	return nil
}

// decode converts the current event to its xevent form.
func (w *Window) decode() xevent.Event {
	xev := w.xev
	anyEv := (*C.XAnyEvent)(unsafe.Pointer(xev))
	ev := xevent.Event{Window: uint64(anyEv.window)}
	switch anyEv._type {
	case C.ClientMessage: // extensions
		cevt := (*C.XClientMessageEvent)(unsafe.Pointer(xev))
		ev.Kind = xevent.ClientMessage
		ev.Data0 = uint64(*(*C.long)(unsafe.Pointer(&cevt.data)))
	case C.ConfigureNotify: // window configuration change
		cevt := (*C.XConfigureEvent)(unsafe.Pointer(xev))
		ev.Kind = xevent.Configure
		ev.Window = uint64(cevt.window)
		ev.Width = int(cevt.width)
		ev.Height = int(cevt.height)
	case C.MotionNotify:
		mevt := (*C.XMotionEvent)(unsafe.Pointer(xev))
		ev.Kind = xevent.Motion
		ev.X, ev.Y = int(mevt.x), int(mevt.y)
		ev.Left = mevt.state&C.Button1Mask != 0
	case C.ButtonPress, C.ButtonRelease:
		bevt := (*C.XButtonEvent)(unsafe.Pointer(xev))
		ev.Kind = xevent.ButtonPress
		if bevt._type == C.ButtonRelease {
			ev.Kind = xevent.ButtonRelease
		}
		ev.X, ev.Y = int(bevt.x), int(bevt.y)
		// state holds the buttons before this event.
		left := bevt.state&C.Button1Mask != 0
		if bevt.button == C.Button1 {
			left = ev.Kind == xevent.ButtonPress
		}
		ev.Left = left
	case C.Expose:
		ev.Kind = xevent.Expose
	default:
		ev.Kind = xevent.Other
	}
	return ev
}

// Destroy unmaps and destroys the window and frees its colormap.
func (w *Window) Destroy() {
	dpy := w.d.x
	C.XUnmapWindow(dpy, w.xw)
	C.XDestroyWindow(dpy, w.xw)
	C.XFreeColormap(dpy, w.colormap)
	C.XFlush(dpy)
}
