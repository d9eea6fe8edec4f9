// SPDX-License-Identifier: Unlicense OR MIT

// Package glyph rasterizes characters into alpha masks for the text
// overlay and places them along a baseline.
package glyph

import (
	"fmt"
	"image"
	"os"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// DefaultDPI is the resolution glyphs are rasterized at.
const DefaultDPI = 72

// Glyph is a rasterized character.
type Glyph struct {
	Rune rune
	// Mask holds the coverage of the glyph. Its bounds start at (0, 0).
	Mask *image.Alpha
	// Bounds is the mask rectangle relative to the pen position on the
	// baseline, with y pointing down.
	Bounds image.Rectangle
	// Advance is the horizontal pen advance.
	Advance fixed.Int26_6
}

// Empty reports whether the glyph has no visible pixels, such as a space.
func (g *Glyph) Empty() bool {
	return g.Bounds.Empty()
}

// Placed is a glyph positioned by Layout.
type Placed struct {
	*Glyph
	// Rect is where the mask lands, in pixels, y pointing down.
	Rect image.Rectangle
}

// Face rasterizes glyphs of one font at one size. It caches every glyph
// it renders and is not safe for concurrent use.
type Face struct {
	face  font.Face
	cache map[rune]*Glyph
}

// LoadFace loads the font file at path. An empty path selects the
// embedded Go Mono font.
func LoadFace(path string, size float64) (*Face, error) {
	src := gomono.TTF
	if path != "" {
		var err error
		src, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("glyph: %w", err)
		}
	}
	f, err := ParseFace(src, size)
	if err != nil && path != "" {
		return nil, fmt.Errorf("glyph: %s: %w", path, err)
	}
	return f, err
}

// ParseFace parses a TrueType or OpenType font, or the first font of a
// collection, and prepares it for rasterizing at size points.
func ParseFace(src []byte, size float64) (*Face, error) {
	fnt, err := opentype.Parse(src)
	if err != nil {
		coll, cerr := opentype.ParseCollection(src)
		if cerr != nil {
			return nil, fmt.Errorf("glyph: parsing font: %w", err)
		}
		if fnt, err = coll.Font(0); err != nil {
			return nil, fmt.Errorf("glyph: parsing font collection: %w", err)
		}
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    size,
		DPI:     DefaultDPI,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("glyph: %w", err)
	}
	return &Face{face: face, cache: make(map[rune]*Glyph)}, nil
}

// Metrics returns the vertical metrics of the face.
func (f *Face) Metrics() font.Metrics {
	return f.face.Metrics()
}

// Glyph returns the rasterized glyph for r.
func (f *Face) Glyph(r rune) (*Glyph, error) {
	if g, ok := f.cache[r]; ok {
		return g, nil
	}
	dr, mask, maskp, adv, ok := f.face.Glyph(fixed.Point26_6{}, r)
	if !ok {
		return nil, fmt.Errorf("glyph: no glyph for %q", r)
	}
	// The face reuses its mask buffer between calls.
	a := image.NewAlpha(image.Rect(0, 0, dr.Dx(), dr.Dy()))
	if !dr.Empty() {
		draw.Draw(a, a.Bounds(), mask, maskp, draw.Src)
	}
	g := &Glyph{Rune: r, Mask: a, Bounds: dr, Advance: adv}
	f.cache[r] = g
	return g, nil
}

// Layout places the glyphs of s on a single line starting at pen, which
// is a point on the baseline. The pen advances by each glyph's advance
// and the kerning between consecutive runes.
func (f *Face) Layout(s string, pen image.Point) ([]Placed, error) {
	var placed []Placed
	dot := fixed.I(pen.X)
	prev := rune(-1)
	for _, r := range s {
		if prev >= 0 {
			dot += f.face.Kern(prev, r)
		}
		g, err := f.Glyph(r)
		if err != nil {
			return nil, err
		}
		placed = append(placed, Placed{
			Glyph: g,
			Rect:  g.Bounds.Add(image.Pt(dot.Round(), pen.Y)),
		})
		dot += g.Advance
		prev = r
	}
	return placed, nil
}

// Close releases the face.
func (f *Face) Close() error {
	return f.face.Close()
}
