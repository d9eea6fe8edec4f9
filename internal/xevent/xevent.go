// SPDX-License-Identifier: Unlicense OR MIT

// Package xevent classifies native window events independently of Xlib,
// so that the close and resize decisions of the event loop can be
// exercised without an X server.
package xevent

// Kind is the type of a native event, reduced to what the demos act on.
type Kind uint8

const (
	Other Kind = iota
	ClientMessage
	Configure
	Motion
	ButtonPress
	ButtonRelease
	Expose
)

// Event is a decoded native event.
type Event struct {
	Kind Kind
	// Window is the native window the event was delivered to.
	Window uint64
	// Data0 is the first 32-bit datum of a client message; for the
	// WM_PROTOCOLS message it holds the protocol atom.
	Data0 uint64
	// Width and Height of a Configure event.
	Width, Height int
	// X and Y of a pointer event.
	X, Y int
	// Left reports whether the first mouse button is held.
	Left bool
}

// Viewport is the window size state shared with the resize handler.
type Viewport struct {
	Width, Height int
}

// Filter decides for a single tracked window what a native event means.
type Filter struct {
	// Window is the tracked window.
	Window uint64
	// DeleteAtom is the interned WM_DELETE_WINDOW atom.
	DeleteAtom uint64
	// Viewport is updated on every Configure event for Window.
	Viewport *Viewport
	// Resize, if set, is called after Viewport is updated.
	Resize func(width, height int)
	// Pointer, if set, receives motion and button events for Window.
	Pointer func(x, y int, left bool)
}

// Dispatch handles ev and reports whether the window is still open. It
// returns false exactly for a WM_DELETE_WINDOW client message addressed
// to the tracked window.
func (f *Filter) Dispatch(ev Event) bool {
	if ev.Window != f.Window {
		return true
	}
	switch ev.Kind {
	case ClientMessage:
		if ev.Data0 == f.DeleteAtom {
			return false
		}
	case Configure:
		if f.Viewport != nil {
			if f.Viewport.Width == ev.Width && f.Viewport.Height == ev.Height {
				// Moves also generate ConfigureNotify.
				break
			}
			f.Viewport.Width, f.Viewport.Height = ev.Width, ev.Height
		}
		if f.Resize != nil {
			f.Resize(ev.Width, ev.Height)
		}
	case Motion, ButtonPress, ButtonRelease:
		if f.Pointer != nil {
			f.Pointer(ev.X, ev.Y, ev.Left)
		}
	}
	return true
}

// DispatchAll dispatches evs in order and stops at the first close event.
// It returns the number of events consumed and whether the window is
// still open.
func (f *Filter) DispatchAll(evs []Event) (int, bool) {
	for i, ev := range evs {
		if !f.Dispatch(ev) {
			return i + 1, false
		}
	}
	return len(evs), true
}
