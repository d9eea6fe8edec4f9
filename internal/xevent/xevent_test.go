// SPDX-License-Identifier: Unlicense OR MIT

package xevent

import (
	"math/rand"
	"testing"
)

const (
	testWindow = 0x4a00001
	otherWin   = 0x4a00002
	delAtom    = 301
	otherAtom  = 302
)

func TestDispatchClose(t *testing.T) {
	tests := []struct {
		name string
		ev   Event
		open bool
	}{
		{"delete", Event{Kind: ClientMessage, Window: testWindow, Data0: delAtom}, false},
		{"delete other window", Event{Kind: ClientMessage, Window: otherWin, Data0: delAtom}, true},
		{"other protocol", Event{Kind: ClientMessage, Window: testWindow, Data0: otherAtom}, true},
		{"configure", Event{Kind: Configure, Window: testWindow, Width: 10, Height: 10}, true},
		{"motion", Event{Kind: Motion, Window: testWindow}, true},
		{"expose", Event{Kind: Expose, Window: testWindow}, true},
		{"unknown", Event{Kind: Other, Window: testWindow, Data0: delAtom}, true},
	}
	for _, test := range tests {
		f := &Filter{Window: testWindow, DeleteAtom: delAtom}
		if got := f.Dispatch(test.ev); got != test.open {
			t.Errorf("%s: got open=%v, want %v", test.name, got, test.open)
		}
	}
}

func TestDispatchResize(t *testing.T) {
	vp := &Viewport{Width: 1280, Height: 720}
	var calls [][2]int
	f := &Filter{
		Window:     testWindow,
		DeleteAtom: delAtom,
		Viewport:   vp,
		Resize: func(w, h int) {
			calls = append(calls, [2]int{w, h})
		},
	}
	f.Dispatch(Event{Kind: Configure, Window: testWindow, Width: 1280, Height: 720})
	f.Dispatch(Event{Kind: Configure, Window: otherWin, Width: 1, Height: 1})
	f.Dispatch(Event{Kind: Configure, Window: testWindow, Width: 800, Height: 600})
	if len(calls) != 1 {
		t.Fatalf("got %d resize calls, want 1: %v", len(calls), calls)
	}
	if calls[0] != [2]int{800, 600} {
		t.Errorf("resize got %v, want [800 600]", calls[0])
	}
	if vp.Width != 800 || vp.Height != 600 {
		t.Errorf("viewport is %dx%d, want 800x600", vp.Width, vp.Height)
	}
}

func TestDispatchPointer(t *testing.T) {
	var got []Event
	f := &Filter{
		Window: testWindow,
		Pointer: func(x, y int, left bool) {
			got = append(got, Event{X: x, Y: y, Left: left})
		},
	}
	f.Dispatch(Event{Kind: Motion, Window: testWindow, X: 3, Y: 4, Left: true})
	f.Dispatch(Event{Kind: ButtonRelease, Window: testWindow, X: 5, Y: 6})
	f.Dispatch(Event{Kind: Motion, Window: otherWin, X: 7, Y: 8})
	if len(got) != 2 {
		t.Fatalf("got %d pointer events, want 2", len(got))
	}
	if got[0].X != 3 || got[0].Y != 4 || !got[0].Left {
		t.Errorf("first pointer event is %+v", got[0])
	}
	if got[1].Left {
		t.Errorf("second pointer event reports left button held")
	}
}

func TestDispatchAllStopsAtClose(t *testing.T) {
	evs := []Event{
		{Kind: Expose, Window: testWindow},
		{Kind: ClientMessage, Window: testWindow, Data0: delAtom},
		{Kind: Configure, Window: testWindow, Width: 1, Height: 1},
	}
	resized := false
	f := &Filter{Window: testWindow, DeleteAtom: delAtom, Resize: func(int, int) { resized = true }}
	n, open := f.DispatchAll(evs)
	if open {
		t.Fatal("window reported open after delete message")
	}
	if n != 2 {
		t.Errorf("consumed %d events, want 2", n)
	}
	if resized {
		t.Error("event after close was dispatched")
	}
}

// TestDispatchAllRandom checks that for arbitrary event sequences the
// window closes iff a delete message for the tracked window is present.
func TestDispatchAllRandom(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	kinds := []Kind{Other, ClientMessage, Configure, Motion, ButtonPress, ButtonRelease, Expose}
	for i := 0; i < 1000; i++ {
		evs := make([]Event, rnd.Intn(20))
		want := true
		for j := range evs {
			ev := Event{
				Kind:   kinds[rnd.Intn(len(kinds))],
				Window: testWindow,
				Data0:  otherAtom,
				Width:  rnd.Intn(2000),
				Height: rnd.Intn(2000),
			}
			if rnd.Intn(4) == 0 {
				ev.Window = otherWin
			}
			if rnd.Intn(8) == 0 {
				ev.Data0 = delAtom
			}
			if ev.Kind == ClientMessage && ev.Window == testWindow && ev.Data0 == delAtom {
				want = false
			}
			evs[j] = ev
		}
		f := &Filter{Window: testWindow, DeleteAtom: delAtom, Viewport: new(Viewport)}
		if _, open := f.DispatchAll(evs); open != want {
			t.Fatalf("sequence %d: got open=%v, want %v (%+v)", i, open, want, evs)
		}
	}
}
