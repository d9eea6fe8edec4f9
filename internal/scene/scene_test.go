// SPDX-License-Identifier: Unlicense OR MIT

//go:build linux || freebsd
// +build linux freebsd

package scene

import (
	"image"
	"strings"
	"testing"
	"time"

	"github.com/eglx11/eglx11/internal/loop"
	"github.com/eglx11/eglx11/internal/mesh"
)

func TestUnknownVariant(t *testing.T) {
	_, err := New("cube", nil, Options{Width: 10, Height: 10})
	if err == nil {
		t.Fatal("unknown variant accepted")
	}
	if !strings.Contains(err.Error(), "text2") {
		t.Errorf("error %q does not list the variants", err)
	}
}

func TestTextNeedsFace(t *testing.T) {
	for _, name := range []string{"text", "text2"} {
		if _, err := New(name, nil, Options{Width: 10, Height: 10}); err == nil {
			t.Errorf("%s: created without a font face", name)
		}
	}
}

func TestLabel(t *testing.T) {
	tests := []struct {
		f    loop.Frame
		want string
	}{
		{loop.Frame{}, "0"},
		{loop.Frame{Index: 1, Delta: time.Second / 60, Rate: 60.02}, "60"},
		{loop.Frame{Index: 2, Rate: 143.7}, "144"},
	}
	for _, test := range tests {
		if got := label(test.f); got != test.want {
			t.Errorf("label(%+v) = %q, want %q", test.f, got, test.want)
		}
	}
}

func TestZeroSpeed(t *testing.T) {
	still := &quad{animate: true, speed: 0, width: 200, height: 100}
	spinning := &quad{animate: true, speed: DefaultSpeed, width: 200, height: 100}
	want := mesh.Aspect(200, 100)
	for _, el := range []time.Duration{0, time.Second, 3 * time.Second} {
		fr := loop.Frame{Index: 1, Elapsed: el}
		if got := still.transform(fr); !got.ApproxEqual(want) {
			t.Errorf("speed 0 at %v: got %v, want %v", el, got, want)
		}
	}
	if got := spinning.transform(loop.Frame{Elapsed: time.Second}); got.ApproxEqual(want) {
		t.Errorf("speed %v did not rotate after 1s", DefaultSpeed)
	}
}

func TestCheckMask(t *testing.T) {
	tests := []struct {
		sz image.Point
		ok bool
	}{
		{image.Pt(20, 30), true},
		{image.Pt(2048, 2048), true},
		{image.Pt(2049, 10), false},
		{image.Pt(10, 4096), false},
	}
	for _, test := range tests {
		if err := checkMask('8', test.sz, 2048); (err == nil) != test.ok {
			t.Errorf("checkMask(%v): unexpected error state %v", test.sz, err)
		}
	}
}
