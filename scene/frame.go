// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package scene

import (
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/plan-systems/klog"

	"github.com/gviegas/backdrop/linear"
)

// Point is a filled disc (e.g., a neuron or a base).
// Radius is in world units.
type Point struct {
	Pos    linear.V3
	Radius float32
	Color  colorful.Color
	Alpha  float32
}

// Line is a segment (e.g., an edge, a bond or a piece
// of backbone). Width is in world units.
type Line struct {
	A, B  linear.V3
	Width float32
	Color colorful.Color
	Alpha float32
}

// Sprite is a glowing billboard (e.g., a pulse).
// Size is in world units.
type Sprite struct {
	Pos   linear.V3
	Size  float32
	Color colorful.Color
	Alpha float32
}

// Frame is the renderable output of a scene for a
// single frame. Positions are in world space.
type Frame struct {
	Points  []Point
	Lines   []Line
	Sprites []Sprite
}

// Reset empties f, keeping the allocated storage.
func (f *Frame) Reset() {
	f.Points = f.Points[:0]
	f.Lines = f.Lines[:0]
	f.Sprites = f.Sprites[:0]
}

// Len returns the number of primitives in f.
func (f *Frame) Len() int { return len(f.Points) + len(f.Lines) + len(f.Sprites) }

// ParseColor parses a hex color (e.g., "#64ffda").
// If s is not a valid hex color, it logs a warning and
// returns fallback instead.
func ParseColor(s string, fallback colorful.Color) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		klog.Warningf("scene: invalid color %q, using %s", s, fallback.Hex())
		return fallback
	}
	return c
}

// MustColor is like ParseColor but for colors known to
// be valid. It panics otherwise.
func MustColor(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic("scene: invalid color literal " + s)
	}
	return c
}
