// SPDX-License-Identifier: Unlicense OR MIT

//go:build linux || freebsd
// +build linux freebsd

// Package scene implements the demo variants, from clearing the window up
// to a double-buffered text overlay.
package scene

import (
	"fmt"
	"strings"

	"github.com/eglx11/eglx11/internal/gl"
	"github.com/eglx11/eglx11/internal/glyph"
	"github.com/eglx11/eglx11/internal/loop"
	"github.com/eglx11/eglx11/internal/mesh"
)

// Scene draws one variant. All methods must run on the thread the GL
// context is current on.
type Scene interface {
	// Draw renders the frame into the back buffer.
	Draw(f loop.Frame) error
	// Resize updates the viewport.
	Resize(width, height int)
	// Release deletes the GL objects of the scene.
	Release()
}

// DefaultSpeed is the rotation speed of the animated variants in
// revolutions per second.
const DefaultSpeed = 0.25

// Names lists the variants in tutorial order.
var Names = []string{"clear", "triangle", "quad", "anim", "text", "text2"}

// Options configure a scene.
type Options struct {
	Width, Height int
	// Face rasterizes the overlay of the text variants.
	Face *glyph.Face
	// Speed is the rotation speed of the animated quad in revolutions
	// per second. Zero stops the rotation.
	Speed float64
}

// New builds the named variant.
func New(name string, f *gl.Functions, opts Options) (Scene, error) {
	if !valid(name) {
		return nil, fmt.Errorf("scene: unknown variant %q (want one of %s)", name, strings.Join(Names, ", "))
	}
	var s Scene
	var err error
	switch name {
	case "clear":
		s = &clearScene{f: f}
	case "triangle":
		s, err = newTriangle(f)
	case "quad":
		s, err = newQuad(f, false, opts.Speed)
	case "anim":
		s, err = newQuad(f, true, opts.Speed)
	case "text", "text2":
		if opts.Face == nil {
			return nil, fmt.Errorf("scene: %s needs a font face", name)
		}
		s, err = newText(f, opts, name == "text2")
	}
	if err != nil {
		return nil, fmt.Errorf("scene: %s: %w", name, err)
	}
	s.Resize(opts.Width, opts.Height)
	return s, nil
}

func valid(name string) bool {
	for _, n := range Names {
		if n == name {
			return true
		}
	}
	return false
}

func clearFrame(f *gl.Functions) {
	c := mesh.ClearColor
	f.ClearColor(c[0], c[1], c[2], c[3])
	f.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func checkError(f *gl.Functions) error {
	if err := f.GetError(); err != gl.NO_ERROR {
		return fmt.Errorf("gl error 0x%x", err)
	}
	return nil
}

type clearScene struct {
	f *gl.Functions
}

func (s *clearScene) Draw(loop.Frame) error {
	clearFrame(s.f)
	return checkError(s.f)
}

func (s *clearScene) Resize(width, height int) {
	s.f.Viewport(0, 0, width, height)
}

func (s *clearScene) Release() {}
