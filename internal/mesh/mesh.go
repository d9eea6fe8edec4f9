// SPDX-License-Identifier: Unlicense OR MIT

// Package mesh holds the shader sources, vertex data and transforms of the
// demo scenes. Vertex data is laid out as flat float32 slices ready for
// upload to a vertex buffer.
package mesh

import (
	"image"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// ClearColor is the background of every scene.
var ClearColor = [4]float32{0.5, 0.5, 0.5, 1.0}

// Triangle is a single triangle in clip space, two floats per vertex.
var Triangle = []float32{
	0.0, 0.5,
	-0.5, -0.5,
	0.5, -0.5,
}

// TriangleColor is the flat color of Triangle.
var TriangleColor = [4]float32{1.0, 0.5, 0.0, 1.0}

// QuadStride is the number of floats per Quad vertex: position then color.
const QuadStride = 5

// Quad is a square drawn as a triangle strip, with a color per corner.
var Quad = []float32{
	-0.5, -0.5, 1.0, 0.0, 0.0,
	0.5, -0.5, 0.0, 1.0, 0.0,
	-0.5, 0.5, 0.0, 0.0, 1.0,
	0.5, 0.5, 1.0, 1.0, 0.0,
}

// QuadVertices is the number of vertices in Quad.
const QuadVertices = 4

// TextStride is the number of floats per text vertex: position then
// texture coordinate.
const TextStride = 4

// TextColor is the solid color glyph coverage is applied to.
var TextColor = [4]float32{1.0, 1.0, 1.0, 1.0}

// Aspect returns the transform that keeps clip-space shapes square in a
// width by height viewport.
func Aspect(width, height int) mgl32.Mat4 {
	if width <= 0 || height <= 0 {
		return mgl32.Ident4()
	}
	if width >= height {
		return mgl32.Scale3D(float32(height)/float32(width), 1, 1)
	}
	return mgl32.Scale3D(1, float32(width)/float32(height), 1)
}

// Spin returns the rotation about the z axis after elapsed time at speed
// revolutions per second.
func Spin(elapsed time.Duration, speed float64) mgl32.Mat4 {
	turns := math.Mod(elapsed.Seconds()*speed, 1)
	return mgl32.HomogRotate3DZ(float32(2 * math.Pi * turns))
}

// QuadTransform is the model-view-projection of the animated quad.
func QuadTransform(width, height int, elapsed time.Duration, speed float64) mgl32.Mat4 {
	return Aspect(width, height).Mul4(Spin(elapsed, speed))
}

// Pixels returns the projection from window pixels, origin top left and y
// pointing down, to clip space.
func Pixels(width, height int) mgl32.Mat4 {
	return mgl32.Ortho2D(0, float32(width), float32(height), 0)
}

// GlyphQuad appends the triangle strip of a textured quad covering r to
// dst. The texture coordinates map the whole mask onto r.
func GlyphQuad(dst []float32, r image.Rectangle) []float32 {
	x0, y0 := float32(r.Min.X), float32(r.Min.Y)
	x1, y1 := float32(r.Max.X), float32(r.Max.Y)
	return append(dst,
		x0, y0, 0, 0,
		x1, y0, 1, 0,
		x0, y1, 0, 1,
		x1, y1, 1, 1,
	)
}

// GlyphQuads appends the strips of all rects to dst back to back, four
// vertices each.
func GlyphQuads(dst []float32, rects []image.Rectangle) []float32 {
	for _, r := range rects {
		dst = GlyphQuad(dst, r)
	}
	return dst
}
