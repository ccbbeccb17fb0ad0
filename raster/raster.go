// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package raster renders scene frames into images.
package raster

import (
	"image"
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/vector"

	"github.com/gviegas/backdrop/scene"
)

// Config is used to configure a Renderer.
type Config struct {
	// Factor by which frames are supersampled.
	// Values less than 1 are treated as 1.
	//
	// Default is 2.
	Supersample int `yaml:"supersample"`

	// Minimum stroke width in pixels.
	//
	// Default is 1.
	MinWidth float32 `yaml:"minWidth"`

	// Number of rings used to draw glowing sprites.
	//
	// Default is 4.
	GlowRings int `yaml:"glowRings"`

	// Background color used by Compose.
	//
	// Default is "#0a192f".
	Background string `yaml:"background"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Supersample: 2,
		MinWidth:    1,
		GlowRings:   4,
		Background:  "#0a192f",
	}
}

// Renderer draws frames using a vector rasterizer.
// It is not safe for concurrent use.
type Renderer struct {
	cfg  Config
	bg   colorful.Color
	z    vector.Rasterizer
	face font.Face
}

// New creates a new renderer.
// If cfg is nil, DefaultConfig is used.
func New(cfg *Config) *Renderer {
	r := &Renderer{cfg: DefaultConfig()}
	if cfg != nil {
		r.cfg = *cfg
	}
	r.cfg.Supersample = max(1, r.cfg.Supersample)
	r.cfg.GlowRings = max(1, r.cfg.GlowRings)
	r.bg = scene.ParseColor(r.cfg.Background, scene.MustColor(DefaultConfig().Background))
	return r
}

// Background returns the background color.
func (r *Renderer) Background() colorful.Color { return r.bg }

// batch is a set of polygons sharing a color.
type batch struct {
	c     color.NRGBA
	polys [][]pt
}

type pt [2]float32

// Render draws f as seen through the camera of sc onto
// a new transparent image the size of sc's viewport.
func (r *Renderer) Render(sc *scene.Scene, f *scene.Frame) *image.RGBA {
	w, h := sc.Size()
	ss := r.cfg.Supersample
	big := image.NewRGBA(image.Rect(0, 0, w*ss, h*ss))

	var batches []*batch
	index := make(map[color.NRGBA]*batch)
	add := func(c color.NRGBA, poly []pt) {
		poly = clip(poly, float32(w*ss), float32(h*ss))
		if len(poly) < 3 || c.A == 0 {
			return
		}
		b, ok := index[c]
		if !ok {
			b = &batch{c: c}
			index[c] = b
			batches = append(batches, b)
		}
		b.polys = append(b.polys, poly)
	}

	vp := sc.ViewProj()
	s := float32(ss)
	minw := r.cfg.MinWidth * s
	for i := range f.Lines {
		l := &f.Lines[i]
		ax, ay, aw, ok := sc.Project(&vp, &l.A)
		if !ok {
			continue
		}
		bx, by, bw, ok := sc.Project(&vp, &l.B)
		if !ok {
			continue
		}
		width := max(minw, sc.PixelSize(l.Width, (aw+bw)/2)*s)
		add(NRGBA(l.Color, l.Alpha), segment(pt{ax * s, ay * s}, pt{bx * s, by * s}, width))
	}
	for i := range f.Points {
		p := &f.Points[i]
		x, y, pw, ok := sc.Project(&vp, &p.Pos)
		if !ok {
			continue
		}
		rad := max(minw/2, sc.PixelSize(p.Radius, pw)*s)
		add(NRGBA(p.Color, p.Alpha), disc(pt{x * s, y * s}, rad))
	}
	for i := range f.Sprites {
		sp := &f.Sprites[i]
		x, y, sw, ok := sc.Project(&vp, &sp.Pos)
		if !ok {
			continue
		}
		rad := max(minw, sc.PixelSize(sp.Size, sw)*s/2)
		n := r.cfg.GlowRings
		a := sp.Alpha / float32(n)
		for k := range n {
			add(NRGBA(sp.Color, a), disc(pt{x * s, y * s}, rad*float32(n-k)/float32(n)))
		}
	}

	bounds := big.Bounds()
	for _, b := range batches {
		r.z.Reset(bounds.Dx(), bounds.Dy())
		for _, poly := range b.polys {
			r.z.MoveTo(poly[0][0], poly[0][1])
			for _, p := range poly[1:] {
				r.z.LineTo(p[0], p[1])
			}
			r.z.ClosePath()
		}
		r.z.DrawOp = draw.Over
		r.z.Draw(big, bounds, image.NewUniform(b.c), image.Point{})
	}

	if ss == 1 {
		return big
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), big, bounds, draw.Src, nil)
	return dst
}

// NRGBA converts c with opacity a to a color.NRGBA.
// a is clamped to [0, 1].
func NRGBA(c colorful.Color, a float32) color.NRGBA {
	cr, cg, cb := c.Clamped().RGB255()
	a = min(1, max(0, a))
	return color.NRGBA{cr, cg, cb, uint8(a*255 + 0.5)}
}

// segment returns a quad covering the segment from
// a to b with the given width.
func segment(a, b pt, width float32) []pt {
	dx, dy := b[0]-a[0], b[1]-a[1]
	n := float32(math.Hypot(float64(dx), float64(dy)))
	if n < 1e-3 {
		return disc(a, width/2)
	}
	nx, ny := -dy/n*width/2, dx/n*width/2
	return []pt{
		{a[0] + nx, a[1] + ny},
		{b[0] + nx, b[1] + ny},
		{b[0] - nx, b[1] - ny},
		{a[0] - nx, a[1] - ny},
	}
}

// disc returns a polygon approximating a circle.
func disc(c pt, radius float32) []pt {
	n := min(64, max(8, int(radius*2)))
	poly := make([]pt, n)
	for i := range poly {
		s, co := math.Sincos(2 * math.Pi * float64(i) / float64(n))
		poly[i] = pt{c[0] + radius*float32(co), c[1] + radius*float32(s)}
	}
	return poly
}

// clip clips poly to the rectangle [0, w]x[0, h].
func clip(poly []pt, w, h float32) []pt {
	edges := [4]struct {
		inside func(pt) bool
		cross  func(a, b pt) pt
	}{
		{func(p pt) bool { return p[0] >= 0 }, func(a, b pt) pt { return crossX(a, b, 0) }},
		{func(p pt) bool { return p[0] <= w }, func(a, b pt) pt { return crossX(a, b, w) }},
		{func(p pt) bool { return p[1] >= 0 }, func(a, b pt) pt { return crossY(a, b, 0) }},
		{func(p pt) bool { return p[1] <= h }, func(a, b pt) pt { return crossY(a, b, h) }},
	}
	for _, e := range edges {
		if len(poly) == 0 {
			break
		}
		in := poly
		poly = make([]pt, 0, len(in)+2)
		prev := in[len(in)-1]
		for _, cur := range in {
			switch ci, pi := e.inside(cur), e.inside(prev); {
			case ci && pi:
				poly = append(poly, cur)
			case ci:
				poly = append(poly, e.cross(prev, cur), cur)
			case pi:
				poly = append(poly, e.cross(prev, cur))
			}
			prev = cur
		}
	}
	return poly
}

func crossX(a, b pt, x float32) pt {
	t := (x - a[0]) / (b[0] - a[0])
	return pt{x, a[1] + (b[1]-a[1])*t}
}

func crossY(a, b pt, y float32) pt {
	t := (y - a[1]) / (b[1] - a[1])
	return pt{a[0] + (b[0]-a[0])*t, y}
}
