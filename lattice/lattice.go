// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package lattice implements the neural network backdrop:
// a rotating grid of neurons whose nearby pairs are joined
// by edges, along which pulses travel from time to time.
package lattice

import (
	"time"

	"github.com/emirpasic/gods/queues/circularbuffer"
	"github.com/emirpasic/gods/stacks/arraystack"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/plan-systems/klog"

	"github.com/gviegas/backdrop/internal/bitvec"
	"github.com/gviegas/backdrop/linear"
	"github.com/gviegas/backdrop/node"
	"github.com/gviegas/backdrop/scene"
)

// Edge connects two distinct neurons, identified by
// their indices in Scene.Neurons.
type Edge struct {
	A, B     int
	Firing   bool
	Progress float32
}

// Pulse marks the position of a travelling signal on
// a firing edge.
type Pulse struct {
	Edge     int
	Progress float32
}

// Scene is the neural network scene.
type Scene struct {
	cfg   Config
	surf  scene.Surface
	lc    *scene.Lifecycle
	sched scene.Scheduler
	rnd   scene.Rand

	sc      *scene.Scene
	cluster *node.Node
	rot     [2]float32

	neurons []linear.V3
	edges   []Edge
	pulses  []*Pulse
	pool    *arraystack.Stack
	recent  *circularbuffer.Queue
	busy    bitvec.V[uint32]
	cooling bitvec.V[uint32]
	timer   scene.Timer

	neuronColor colorful.Color
	edgeColor   colorful.Color
	pulseColor  colorful.Color
}

// New creates a new, uninitialized scene.
// surf is where the scene is drawn, lc tracks whether
// it was initialized, sched runs the periodic firing
// and rnd chooses which edges fire.
// If lc is nil, the scene uses a private lifecycle.
// If cfg is nil, DefaultConfig is used.
func New(surf scene.Surface, lc *scene.Lifecycle, sched scene.Scheduler, rnd scene.Rand, cfg *Config) *Scene {
	s := &Scene{
		cfg:   DefaultConfig(),
		surf:  surf,
		lc:    lc,
		sched: sched,
		rnd:   rnd,
	}
	if cfg != nil {
		s.cfg = *cfg
	}
	if s.lc == nil {
		s.lc = new(scene.Lifecycle)
	}
	return s
}

// Init builds the neurons and edges and starts the
// periodic firing.
// It does nothing and returns false if the scene was
// already initialized, or if the surface is missing or
// has zero area.
func (s *Scene) Init() bool {
	if s.lc.Initialized() {
		return false
	}
	if s.surf == nil {
		klog.V(1).Info("lattice: no surface, skipping initialization")
		return false
	}
	w, h := s.surf.Size()
	if w <= 0 || h <= 0 {
		klog.V(1).Infof("lattice: empty surface (%dx%d), skipping initialization", w, h)
		return false
	}
	s.lc.Begin()

	def := DefaultConfig()
	s.neuronColor = scene.ParseColor(s.cfg.NeuronColor, scene.MustColor(def.NeuronColor))
	s.edgeColor = scene.ParseColor(s.cfg.EdgeColor, scene.MustColor(def.EdgeColor))
	s.pulseColor = scene.ParseColor(s.cfg.PulseColor, scene.MustColor(def.PulseColor))

	s.sc = scene.New()
	cam := s.sc.Camera()
	cam.FOV = s.cfg.FOV
	cam.Position = linear.V3{0, 0, s.cfg.Distance}
	s.sc.Resize(w, h)
	s.cluster = node.New()
	s.cluster.Name = "cluster"
	s.sc.Root().Insert(s.cluster)
	s.rot = [2]float32{}

	s.createNeurons()
	s.createEdges()

	s.pulses = s.pulses[:0]
	s.pool = arraystack.New()
	s.recent = nil
	if s.cfg.Cooldown > 0 {
		s.recent = circularbuffer.New(s.cfg.Cooldown)
	}
	s.busy.Fit(len(s.neurons))
	s.cooling.Fit(len(s.edges))

	if s.sched != nil {
		s.timer = s.sched.Every(s.cfg.FireInterval, func() { s.Fire() })
	}
	klog.V(1).Infof("lattice: %d neurons, %d edges", len(s.neurons), len(s.edges))
	return true
}

// createNeurons places one neuron at every grid point.
func (s *Scene) createNeurons() {
	n := max(0, s.cfg.Extent)
	side := 2*n + 1
	s.neurons = make([]linear.V3, 0, side*side*side)
	for x := -n; x <= n; x++ {
		for y := -n; y <= n; y++ {
			for z := -n; z <= n; z++ {
				p := linear.V3{float32(x), float32(y), float32(z)}
				p.Scale(s.cfg.Spacing, &p)
				s.neurons = append(s.neurons, p)
			}
		}
	}
}

// createEdges connects every pair of neurons closer
// than the threshold.
func (s *Scene) createEdges() {
	s.edges = s.edges[:0]
	for i := range s.neurons {
		for j := i + 1; j < len(s.neurons); j++ {
			if s.neurons[i].Dist(&s.neurons[j]) < s.cfg.Threshold {
				s.edges = append(s.edges, Edge{A: i, B: j})
			}
		}
	}
}

// Fire selects edges to start firing.
// At most Config.MaxFiring edges fire at once. Edges that
// are firing, that fired recently or that share a neuron
// with a firing edge are not eligible.
// It returns the number of edges that started firing.
func (s *Scene) Fire() int {
	if !s.lc.Initialized() || s.rnd == nil {
		return 0
	}
	quota := s.cfg.MaxFiring - len(s.pulses)
	if quota <= 0 {
		return 0
	}
	cand := make([]int, 0, len(s.edges))
	for i := range s.edges {
		if s.eligible(i) {
			cand = append(cand, i)
		}
	}
	scene.Shuffle(s.rnd, len(cand), func(i, j int) { cand[i], cand[j] = cand[j], cand[i] })

	var n int
	for _, i := range cand {
		if n == quota {
			break
		}
		// Earlier picks may have claimed a neuron.
		if !s.eligible(i) {
			continue
		}
		s.fire(i)
		n++
	}
	klog.V(3).Infof("lattice: fired %d edge(s) out of %d candidate(s)", n, len(cand))
	return n
}

func (s *Scene) eligible(edge int) bool {
	e := &s.edges[edge]
	return !e.Firing &&
		!s.cooling.IsSet(edge) &&
		!s.busy.IsSet(e.A) &&
		!s.busy.IsSet(e.B)
}

func (s *Scene) fire(edge int) {
	e := &s.edges[edge]
	e.Firing = true
	e.Progress = 0
	s.busy.Set(e.A)
	s.busy.Set(e.B)

	if s.recent != nil {
		if s.recent.Full() {
			if old, ok := s.recent.Dequeue(); ok {
				s.cooling.Unset(old.(int))
			}
		}
		s.recent.Enqueue(edge)
		s.cooling.Set(edge)
	}

	var p *Pulse
	if v, ok := s.pool.Pop(); ok {
		p = v.(*Pulse)
	} else {
		p = new(Pulse)
	}
	*p = Pulse{Edge: edge}
	s.pulses = append(s.pulses, p)
}

// Tick advances the animation by dt.
func (s *Scene) Tick(dt time.Duration) {
	if !s.lc.Initialized() {
		return
	}
	f := scene.Frames(dt)
	s.rot[0] += s.cfg.RotX * f
	s.rot[1] += s.cfg.RotY * f
	s.cluster.Local().Euler(s.rot[0], s.rot[1], 0)

	for i := len(s.pulses) - 1; i >= 0; i-- {
		p := s.pulses[i]
		e := &s.edges[p.Edge]
		e.Progress += s.cfg.PulseStep * f
		p.Progress = e.Progress
		if e.Progress < 1 {
			continue
		}
		e.Firing = false
		e.Progress = 0
		s.busy.Unset(e.A)
		s.busy.Unset(e.B)
		last := len(s.pulses) - 1
		s.pulses[i] = s.pulses[last]
		s.pulses[last] = nil
		s.pulses = s.pulses[:last]
		if s.cfg.PoolMarkers {
			s.pool.Push(p)
		}
	}
}

// Resize updates the projection for a surface of the
// given size. Non-positive sizes are ignored.
func (s *Scene) Resize(width, height int) {
	if s.sc != nil {
		s.sc.Resize(width, height)
	}
}

// Close stops the periodic firing and releases the
// scene's geometry. The scene can be initialized again
// afterwards.
func (s *Scene) Close() {
	if !s.lc.Initialized() {
		return
	}
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.cluster.Remove()
	s.neurons = nil
	s.edges = nil
	s.pulses = nil
	s.lc.Reset()
	klog.V(1).Info("lattice: closed")
}

// Surface returns the surface the scene draws into.
func (s *Scene) Surface() scene.Surface { return s.surf }

// Scene returns the underlying scene graph and camera.
// It is nil until Init succeeds.
func (s *Scene) Scene() *scene.Scene { return s.sc }

// Neurons returns the neuron positions relative to
// the cluster. The slice must not be modified.
func (s *Scene) Neurons() []linear.V3 { return s.neurons }

// Edges returns the edges. The slice must not be
// modified.
func (s *Scene) Edges() []Edge { return s.edges }

// Pulses returns the active pulse markers.
func (s *Scene) Pulses() []Pulse {
	ps := make([]Pulse, len(s.pulses))
	for i, p := range s.pulses {
		ps[i] = *p
	}
	return ps
}

// Pooled returns the number of idle pulse markers
// available for reuse.
func (s *Scene) Pooled() int {
	if s.pool == nil {
		return 0
	}
	return s.pool.Size()
}
