// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package helix implements the DNA backdrop: two helical
// backbones joined by complementary base pairs, slowly
// spinning and undulating.
package helix

import (
	"math"
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/plan-systems/klog"

	"github.com/gviegas/backdrop/linear"
	"github.com/gviegas/backdrop/node"
	"github.com/gviegas/backdrop/scene"
)

// Base is a nucleotide.
type Base byte

// Nucleotides.
const (
	A Base = 'A'
	T Base = 'T'
	G Base = 'G'
	C Base = 'C'
)

// alphabet is indexed by Rand.Intn(4).
var alphabet = [4]Base{A, T, G, C}

// Complement returns the base that pairs with b.
func (b Base) Complement() Base {
	switch b {
	case A:
		return T
	case T:
		return A
	case G:
		return C
	case C:
		return G
	}
	return b
}

func (b Base) String() string { return string(rune(b)) }

// Strand is one of the two backbones.
// Points are relative to the helix group.
type Strand struct {
	Phase  float32
	Points []linear.V3
}

// BasePair is a rung between the two backbones.
// Pos holds the world-space position of each base for
// the current frame.
type BasePair struct {
	Index int
	T     float32
	Bases [2]Base
	Pos   [2]linear.V3
}

// Scene is the double helix scene.
type Scene struct {
	cfg  Config
	surf scene.Surface
	lc   *scene.Lifecycle
	rnd  scene.Rand

	sc    *scene.Scene
	group *node.Node
	turns float32
	theta float32

	strands [2]Strand
	bases   [][2]Base
	pairs   []BasePair

	backbone colorful.Color
	palette  map[Base]colorful.Color
}

// New creates a new, uninitialized scene.
// If lc is nil, the scene uses a private lifecycle.
// If cfg is nil, DefaultConfig is used.
func New(surf scene.Surface, lc *scene.Lifecycle, rnd scene.Rand, cfg *Config) *Scene {
	s := &Scene{
		cfg:  DefaultConfig(),
		surf: surf,
		lc:   lc,
		rnd:  rnd,
	}
	if cfg != nil {
		s.cfg = *cfg
	}
	if s.lc == nil {
		s.lc = new(scene.Lifecycle)
	}
	s.cfg.BasePairs = max(2, s.cfg.BasePairs)
	s.cfg.StrandSamples = max(2, s.cfg.StrandSamples)
	return s
}

// Init builds the backbones and assigns bases.
// It does nothing and returns false if the scene was
// already initialized, or if the surface is missing or
// has zero area.
func (s *Scene) Init() bool {
	if s.lc.Initialized() {
		return false
	}
	if s.surf == nil {
		klog.V(1).Info("helix: no surface, skipping initialization")
		return false
	}
	w, h := s.surf.Size()
	if w <= 0 || h <= 0 {
		klog.V(1).Infof("helix: empty surface (%dx%d), skipping initialization", w, h)
		return false
	}
	s.lc.Begin()

	def := DefaultConfig()
	s.backbone = scene.ParseColor(s.cfg.BackboneColor, scene.MustColor(def.BackboneColor))
	s.palette = make(map[Base]colorful.Color, len(alphabet))
	for _, b := range alphabet {
		s.palette[b] = scene.ParseColor(s.cfg.Palette.Hex(b), scene.MustColor(def.Palette.Hex(b)))
	}

	s.turns = s.cfg.Turns
	if s.turns == 0 && s.cfg.PairsPerTurn > 0 {
		s.turns = float32(s.cfg.BasePairs-1) / s.cfg.PairsPerTurn
	}

	s.sc = scene.New()
	cam := s.sc.Camera()
	cam.FOV = s.cfg.FOV
	cam.Position = linear.V3{0, 0, s.cfg.Distance}
	s.sc.Resize(w, h)
	s.group = node.New()
	s.group.Name = "helix"
	s.sc.Root().Insert(s.group)
	s.theta = 0

	s.buildStrands()
	s.assignBases()
	s.update()
	klog.V(1).Infof("helix: %d base pairs, %.2f turns", len(s.bases), s.turns)
	return true
}

// height returns the length of the helix along its axis.
func (s *Scene) height() float32 { return float32(s.cfg.BasePairs-1) * s.cfg.Rise }

// Pos returns the point at parameter t of the backbone
// whose phase offset is phase, relative to the helix
// group. t is in [0, 1].
func (s *Scene) Pos(t, phase float32) linear.V3 {
	a := float64(t)*2*math.Pi*float64(s.turns) + float64(phase)
	sin, cos := math.Sincos(a)
	return linear.V3{
		float32(cos) * s.cfg.Radius,
		(t - 0.5) * s.height(),
		float32(sin) * s.cfg.Radius,
	}
}

func (s *Scene) buildStrands() {
	n := s.cfg.StrandSamples
	for i, phase := range [2]float32{0, math.Pi} {
		pts := make([]linear.V3, n)
		for j := range pts {
			pts[j] = s.Pos(float32(j)/float32(n-1), phase)
		}
		s.strands[i] = Strand{Phase: phase, Points: pts}
	}
}

func (s *Scene) assignBases() {
	s.bases = make([][2]Base, s.cfg.BasePairs)
	for i := range s.bases {
		b := A
		if s.rnd != nil {
			b = alphabet[s.rnd.Intn(len(alphabet))]
		}
		s.bases[i] = [2]Base{b, b.Complement()}
	}
	s.pairs = make([]BasePair, len(s.bases))
}

// Undulation returns the vertical offset of rung i at
// phase theta. Its magnitude never exceeds the configured
// bound.
func (s *Scene) Undulation(i int, theta float32) float32 {
	amp := float32(math.Abs(float64(s.cfg.Undulation)))
	return amp * float32(math.Sin(float64(s.cfg.Wave*theta)+float64(i)*0.35))
}

// update recomputes the group rotation and the base
// pairs for the current phase.
func (s *Scene) update() {
	th := float64(s.theta)
	s.group.Local().Euler(
		s.cfg.TiltX*float32(math.Sin(th*0.5)),
		s.cfg.Spin*s.theta,
		s.cfg.TiltZ*float32(math.Sin(th*0.23)),
	)
	w := s.group.World()
	n := len(s.bases)
	for i := range s.pairs {
		t := float32(i) / float32(n-1)
		dy := s.Undulation(i, s.theta)
		p := &s.pairs[i]
		p.Index = i
		p.T = t
		p.Bases = s.bases[i]
		for k, phase := range [2]float32{0, math.Pi} {
			v := s.Pos(t, phase)
			v[1] += dy
			p.Pos[k] = scene.Transform(&w, &v)
		}
	}
}

// Tick advances the animation by dt.
func (s *Scene) Tick(dt time.Duration) {
	if !s.lc.Initialized() {
		return
	}
	s.theta += s.cfg.PhaseStep * scene.Frames(dt)
	s.update()
}

// Resize updates the projection for a surface of the
// given size and rebuilds the backbones.
// Non-positive sizes are ignored.
func (s *Scene) Resize(width, height int) {
	if !s.lc.Initialized() {
		return
	}
	if s.sc.Resize(width, height) {
		s.buildStrands()
	}
}

// Close releases the scene's geometry. The scene can
// be initialized again afterwards.
func (s *Scene) Close() {
	if !s.lc.Initialized() {
		return
	}
	s.group.Remove()
	s.strands = [2]Strand{}
	s.bases = nil
	s.pairs = nil
	s.lc.Reset()
	klog.V(1).Info("helix: closed")
}

// Surface returns the surface the scene draws into.
func (s *Scene) Surface() scene.Surface { return s.surf }

// Scene returns the underlying scene graph and camera.
// It is nil until Init succeeds.
func (s *Scene) Scene() *scene.Scene { return s.sc }

// Phase returns the phase accumulator.
func (s *Scene) Phase() float32 { return s.theta }

// Turns returns the number of turns of the helix.
func (s *Scene) Turns() float32 { return s.turns }

// Strands returns the two backbones.
// The slices must not be modified.
func (s *Scene) Strands() [2]Strand { return s.strands }

// Pairs returns a copy of the base pairs for the
// current frame.
func (s *Scene) Pairs() []BasePair { return append([]BasePair(nil), s.pairs...) }
