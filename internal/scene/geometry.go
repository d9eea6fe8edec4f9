// SPDX-License-Identifier: Unlicense OR MIT

//go:build linux || freebsd
// +build linux freebsd

package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/eglx11/eglx11/internal/gl"
	"github.com/eglx11/eglx11/internal/loop"
	"github.com/eglx11/eglx11/internal/mesh"
)

type triangle struct {
	f      *gl.Functions
	prog   gl.Program
	vbo    gl.Buffer
	uColor gl.Uniform
}

func newTriangle(f *gl.Functions) (*triangle, error) {
	prog, err := gl.CreateProgram(f, mesh.FlatVSrc, mesh.FlatFSrc, mesh.FlatAttribs)
	if err != nil {
		return nil, err
	}
	u, err := gl.GetUniformLocation(f, prog, "u_color")
	if err != nil {
		f.DeleteProgram(prog)
		return nil, err
	}
	s := &triangle{f: f, prog: prog, uColor: u}
	s.vbo = staticBuffer(f, mesh.Triangle)
	return s, nil
}

func staticBuffer(f *gl.Functions, data []float32) gl.Buffer {
	b := f.CreateBuffer()
	f.BindBuffer(gl.ARRAY_BUFFER, b)
	f.BufferData(gl.ARRAY_BUFFER, gl.Float32Bytes(data), gl.STATIC_DRAW)
	f.BindBuffer(gl.ARRAY_BUFFER, gl.Buffer{})
	return b
}

func (s *triangle) Draw(loop.Frame) error {
	f := s.f
	clearFrame(f)
	f.UseProgram(s.prog)
	c := mesh.TriangleColor
	f.Uniform4f(s.uColor, c[0], c[1], c[2], c[3])
	f.BindBuffer(gl.ARRAY_BUFFER, s.vbo)
	f.VertexAttribPointer(0, 2, gl.FLOAT, false, 0, 0)
	f.EnableVertexAttribArray(0)
	f.DrawArrays(gl.TRIANGLES, 0, len(mesh.Triangle)/2)
	f.DisableVertexAttribArray(0)
	return checkError(f)
}

func (s *triangle) Resize(width, height int) {
	s.f.Viewport(0, 0, width, height)
}

func (s *triangle) Release() {
	s.f.DeleteBuffer(s.vbo)
	s.f.DeleteProgram(s.prog)
}

// quad is the colored quad, optionally spinning.
type quad struct {
	f             *gl.Functions
	prog          gl.Program
	vbo           gl.Buffer
	uMVP          gl.Uniform
	animate       bool
	speed         float64
	width, height int
}

func newQuad(f *gl.Functions, animate bool, speed float64) (*quad, error) {
	prog, err := gl.CreateProgram(f, mesh.ColorVSrc, mesh.ColorFSrc, mesh.ColorAttribs)
	if err != nil {
		return nil, err
	}
	u, err := gl.GetUniformLocation(f, prog, "u_mvp")
	if err != nil {
		f.DeleteProgram(prog)
		return nil, err
	}
	return &quad{
		f:       f,
		prog:    prog,
		vbo:     staticBuffer(f, mesh.Quad),
		uMVP:    u,
		animate: animate,
		speed:   speed,
	}, nil
}

func (s *quad) Draw(fr loop.Frame) error {
	clearFrame(s.f)
	s.draw(fr)
	return checkError(s.f)
}

// transform returns the model-view-projection matrix for fr.
func (s *quad) transform(fr loop.Frame) mgl32.Mat4 {
	if s.animate {
		return mesh.QuadTransform(s.width, s.height, fr.Elapsed, s.speed)
	}
	return mesh.Aspect(s.width, s.height)
}

func (s *quad) draw(fr loop.Frame) {
	f := s.f
	mvp := s.transform(fr)
	f.UseProgram(s.prog)
	f.UniformMatrix4fv(s.uMVP, (*[16]float32)(&mvp))
	f.BindBuffer(gl.ARRAY_BUFFER, s.vbo)
	const stride = mesh.QuadStride * 4
	f.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, 0)
	f.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, 2*4)
	f.EnableVertexAttribArray(0)
	f.EnableVertexAttribArray(1)
	f.DrawArrays(gl.TRIANGLE_STRIP, 0, mesh.QuadVertices)
	f.DisableVertexAttribArray(0)
	f.DisableVertexAttribArray(1)
}

func (s *quad) Resize(width, height int) {
	s.width, s.height = width, height
	s.f.Viewport(0, 0, width, height)
}

func (s *quad) Release() {
	s.f.DeleteBuffer(s.vbo)
	s.f.DeleteProgram(s.prog)
}
