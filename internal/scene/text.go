// SPDX-License-Identifier: Unlicense OR MIT

//go:build linux || freebsd
// +build linux freebsd

package scene

import (
	"fmt"
	"image"

	"github.com/eglx11/eglx11/internal/gl"
	"github.com/eglx11/eglx11/internal/glyph"
	"github.com/eglx11/eglx11/internal/loop"
	"github.com/eglx11/eglx11/internal/mesh"
)

// margin is the distance of the overlay from the top left corner.
const margin = 16

// text draws the spinning quad with the frame rate on top. The single
// buffered variant uploads every glyph texture and the vertex data anew
// each frame; the double-buffered one keeps glyph textures and alternates
// between two vertex buffers.
type text struct {
	*quad
	face     *glyph.Face
	prog     gl.Program
	uProj    gl.Uniform
	uColor   gl.Uniform
	uTex     gl.Uniform
	buffered bool
	vbos     [2]gl.Buffer
	// sizes is the allocated byte size of each vertex buffer.
	sizes [2]int
	// maxTex is GL_MAX_TEXTURE_SIZE.
	maxTex int
	// textures caches glyph textures of the double-buffered variant.
	textures map[rune]gl.Texture
	verts    []float32
	rects    []image.Rectangle
}

func newText(f *gl.Functions, opts Options, buffered bool) (*text, error) {
	q, err := newQuad(f, true, opts.Speed)
	if err != nil {
		return nil, err
	}
	prog, err := gl.CreateProgram(f, mesh.TextVSrc, mesh.TextFSrc, mesh.TextAttribs)
	if err != nil {
		q.Release()
		return nil, err
	}
	s := &text{
		quad:     q,
		face:     opts.Face,
		prog:     prog,
		buffered: buffered,
	}
	for _, u := range []struct {
		dst  *gl.Uniform
		name string
	}{
		{&s.uProj, "u_proj"},
		{&s.uColor, "u_color"},
		{&s.uTex, "u_tex"},
	} {
		loc, err := gl.GetUniformLocation(f, prog, u.name)
		if err != nil {
			s.Release()
			return nil, err
		}
		*u.dst = loc
	}
	s.maxTex = f.GetInteger(gl.MAX_TEXTURE_SIZE)
	s.vbos[0] = f.CreateBuffer()
	if buffered {
		s.vbos[1] = f.CreateBuffer()
		s.textures = make(map[rune]gl.Texture)
	}
	return s, nil
}

// label is the overlay text for a frame.
func label(fr loop.Frame) string {
	return fmt.Sprintf("%.0f", fr.Rate)
}

func (s *text) Draw(fr loop.Frame) error {
	f := s.f
	clearFrame(f)
	s.quad.draw(fr)

	pen := image.Pt(margin, margin+s.face.Metrics().Ascent.Ceil())
	placed, err := s.face.Layout(label(fr), pen)
	if err != nil {
		return err
	}
	s.rects = s.rects[:0]
	for _, p := range placed {
		if !p.Empty() {
			s.rects = append(s.rects, p.Rect)
		}
	}
	s.verts = mesh.GlyphQuads(s.verts[:0], s.rects)

	f.UseProgram(s.prog)
	proj := mesh.Pixels(s.width, s.height)
	f.UniformMatrix4fv(s.uProj, (*[16]float32)(&proj))
	c := mesh.TextColor
	f.Uniform4f(s.uColor, c[0], c[1], c[2], c[3])
	f.Uniform1i(s.uTex, 0)
	f.ActiveTexture(gl.TEXTURE0)
	f.Enable(gl.BLEND)
	f.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	data := gl.Float32Bytes(s.verts)
	if s.buffered {
		// Fill one buffer while the other may still be in use by the
		// previous frame. Buffers are reallocated only to grow.
		n := fr.Index % 2
		f.BindBuffer(gl.ARRAY_BUFFER, s.vbos[n])
		if len(data) > s.sizes[n] {
			f.BufferData(gl.ARRAY_BUFFER, data, gl.DYNAMIC_DRAW)
			s.sizes[n] = len(data)
		} else {
			f.BufferSubData(gl.ARRAY_BUFFER, 0, data)
		}
	} else {
		f.BindBuffer(gl.ARRAY_BUFFER, s.vbos[0])
		f.BufferData(gl.ARRAY_BUFFER, data, gl.STREAM_DRAW)
	}
	const stride = mesh.TextStride * 4
	f.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, 0)
	f.VertexAttribPointer(1, 2, gl.FLOAT, false, stride, 2*4)
	f.EnableVertexAttribArray(0)
	f.EnableVertexAttribArray(1)

	i := 0
	for _, p := range placed {
		if p.Empty() {
			continue
		}
		tex, err := s.texture(p.Glyph)
		if err != nil {
			return err
		}
		f.BindTexture(gl.TEXTURE_2D, tex)
		f.DrawArrays(gl.TRIANGLE_STRIP, i*4, 4)
		if !s.buffered {
			f.DeleteTexture(tex)
		}
		i++
	}

	f.DisableVertexAttribArray(0)
	f.DisableVertexAttribArray(1)
	f.BindTexture(gl.TEXTURE_2D, gl.Texture{})
	f.Disable(gl.BLEND)
	return checkError(f)
}

// checkMask reports an error if a glyph mask of size sz exceeds the
// texture size limit.
func checkMask(r rune, sz image.Point, limit int) error {
	if sz.X > limit || sz.Y > limit {
		return fmt.Errorf("glyph %q is %dx%d, larger than the %d texture limit", r, sz.X, sz.Y, limit)
	}
	return nil
}

// texture returns the alpha texture of g, uploading it unless cached.
func (s *text) texture(g *glyph.Glyph) (gl.Texture, error) {
	if tex, ok := s.textures[g.Rune]; ok {
		return tex, nil
	}
	sz := g.Mask.Bounds().Size()
	if err := checkMask(g.Rune, sz, s.maxTex); err != nil {
		return gl.Texture{}, err
	}
	f := s.f
	tex := f.CreateTexture()
	f.BindTexture(gl.TEXTURE_2D, tex)
	f.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	f.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	f.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	f.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	// Mask rows are tightly packed bytes.
	f.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	f.TexImage2D(gl.TEXTURE_2D, 0, gl.ALPHA, sz.X, sz.Y, gl.ALPHA, gl.UNSIGNED_BYTE, g.Mask.Pix)
	if s.textures != nil {
		s.textures[g.Rune] = tex
	}
	return tex, nil
}

func (s *text) Release() {
	f := s.f
	for r, tex := range s.textures {
		f.DeleteTexture(tex)
		delete(s.textures, r)
	}
	for _, b := range s.vbos {
		if b.Valid() {
			f.DeleteBuffer(b)
		}
	}
	f.DeleteProgram(s.prog)
	s.quad.Release()
}
