// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package scene provides the pieces shared by the backdrop
// scenes: the scene graph root, the camera and projection,
// frame primitives and scene lifecycle.
package scene

import (
	"math"

	"github.com/gviegas/backdrop/linear"
	"github.com/gviegas/backdrop/node"
)

// Scene defines a scene graph viewed through a
// perspective camera.
type Scene struct {
	root   node.Node
	camera Camera
	width  int
	height int
}

// New creates an initialized scene.
func New() *Scene { return new(Scene).Init() }

// Init initializes a scene.
// The camera is set to DefaultCamera and the viewport
// to 1x1 until Resize is called.
func (s *Scene) Init() *Scene {
	s.root.Init()
	s.root.Name = "root"
	s.camera = DefaultCamera()
	s.width, s.height = 1, 1
	return s
}

// Root returns the root node of the scene graph.
func (s *Scene) Root() *node.Node { return &s.root }

// Len returns the number of nodes in the scene graph,
// not counting the root.
func (s *Scene) Len() int { return s.root.Len() }

// Camera returns the scene's camera.
func (s *Scene) Camera() *Camera { return &s.camera }

// Size returns the size of the viewport in pixels.
func (s *Scene) Size() (width, height int) { return s.width, s.height }

// Resize updates the viewport and the camera's aspect
// ratio. Non-positive dimensions are ignored.
// It returns whether anything changed.
func (s *Scene) Resize(width, height int) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	if width == s.width && height == s.height {
		return false
	}
	s.width, s.height = width, height
	s.camera.Aspect = float32(width) / float32(height)
	return true
}

// ViewProj returns the product of the camera's
// projection and view transforms.
func (s *Scene) ViewProj() linear.M4 {
	var v, p linear.M4
	s.camera.View(&v)
	s.camera.Projection(&p)
	p.Mul(&p, &v)
	return p
}

// Project transforms the world-space point p into
// viewport coordinates.
// It returns the pixel position, the clip-space w
// (i.e., the distance along the view direction) and
// whether p lies in front of the camera.
func (s *Scene) Project(vp *linear.M4, p *linear.V3) (x, y, w float32, ok bool) {
	c := linear.Point(p)
	c.Mul(vp, &c)
	if c[3] <= s.camera.Near {
		return
	}
	x = (c[0]/c[3] + 1) * 0.5 * float32(s.width)
	y = (1 - c[1]/c[3]) * 0.5 * float32(s.height)
	return x, y, c[3], true
}

// PixelSize returns the size in pixels of a world-space
// extent located at clip-space distance w.
func (s *Scene) PixelSize(extent, w float32) float32 {
	if w <= 0 {
		return 0
	}
	var p linear.M4
	s.camera.Projection(&p)
	return extent * p[1][1] * 0.5 * float32(s.height) / w
}

// Transform returns the point p transformed by m.
func Transform(m *linear.M4, p *linear.V3) linear.V3 {
	v := linear.Point(p)
	v.Mul(m, &v)
	return linear.V3{v[0], v[1], v[2]}
}

// Camera describes a perspective camera located at
// Position and looking down the negative z axis.
type Camera struct {
	// Vertical field of view in degrees.
	FOV float32
	// Width over height.
	Aspect float32
	// Near and far clipping planes.
	Near, Far float32
	// Position in world space.
	Position linear.V3
}

// DefaultCamera returns a camera similar to the
// lattice's: 75° FOV, 0.1/1000 clipping planes,
// located at z = 5.
func DefaultCamera() Camera {
	return Camera{
		FOV:      75,
		Aspect:   1,
		Near:     0.1,
		Far:      1000,
		Position: linear.V3{0, 0, 5},
	}
}

// Projection sets m to contain c's projection transform.
func (c *Camera) Projection(m *linear.M4) {
	aspect := c.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	m.Perspective(c.FOV*math.Pi/180, aspect, c.Near, c.Far)
}

// View sets m to contain c's view transform.
func (c *Camera) View(m *linear.M4) {
	var p linear.V3
	p.Scale(-1, &c.Position)
	m.Translate(&p)
}
