// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package raster

import (
	"image"
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"
)

// Layer is an image composited with a given opacity
// and blur radius (in pixels).
type Layer struct {
	Image   *image.RGBA
	Opacity float64
	Blur    float64
}

// Fill sets every pixel of img to c.
func Fill(img draw.Image, c colorful.Color) {
	draw.Draw(img, img.Bounds(), image.NewUniform(NRGBA(c, 1)), image.Point{}, draw.Src)
}

// Composite draws each layer over dst, in order.
// Layers with no opacity are skipped.
func Composite(dst *image.RGBA, layers ...Layer) {
	for _, l := range layers {
		op := min(1, max(0, l.Opacity))
		if l.Image == nil || op == 0 {
			continue
		}
		src := l.Image
		if rad := int(math.Round(l.Blur)); rad > 0 {
			src = BoxBlur(src, rad)
		}
		mask := image.NewUniform(color.Alpha{uint8(op*255 + 0.5)})
		draw.DrawMask(dst, dst.Bounds(), src, src.Bounds().Min, mask, image.Point{}, draw.Over)
	}
}

// Compose creates an image of the given size filled with
// the renderer's background and composites the layers
// onto it.
func (r *Renderer) Compose(width, height int, layers ...Layer) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	Fill(dst, r.bg)
	Composite(dst, layers...)
	return dst
}

// BoxBlur returns a copy of src blurred by a box filter
// of the given radius, applied horizontally and then
// vertically. Pixels outside src are treated as
// transparent.
func BoxBlur(src *image.RGBA, radius int) *image.RGBA {
	b := src.Bounds()
	out := image.NewRGBA(b)
	draw.Draw(out, b, src, b.Min, draw.Src)
	if radius <= 0 || b.Empty() {
		return out
	}
	tmp := image.NewRGBA(b)
	blur1D(tmp.Pix, out.Pix, b.Dx(), b.Dy(), 4, out.Stride, radius)
	blur1D(out.Pix, tmp.Pix, b.Dy(), b.Dx(), out.Stride, 4, radius)
	return out
}

// blur1D blurs n lines of length m from src into dst.
// step is the distance between two pixels of a line and
// stride the distance between two lines, in bytes.
func blur1D(dst, src []byte, m, n, step, stride, radius int) {
	div := uint32(2*radius + 1)
	for j := range n {
		base := j * stride
		var sum [4]uint32
		for i := -radius; i <= radius; i++ {
			if i >= 0 && i < m {
				o := base + i*step
				for c := range sum {
					sum[c] += uint32(src[o+c])
				}
			}
		}
		for i := range m {
			o := base + i*step
			for c := range sum {
				dst[o+c] = uint8(sum[c] / div)
			}
			if k := i - radius; k >= 0 {
				o := base + k*step
				for c := range sum {
					sum[c] -= uint32(src[o+c])
				}
			}
			if k := i + radius + 1; k < m {
				o := base + k*step
				for c := range sum {
					sum[c] += uint32(src[o+c])
				}
			}
		}
	}
}
