// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package lattice

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/gviegas/backdrop/engine"
	"github.com/gviegas/backdrop/scene"
)

func newTestScene(cfg *Config) (*Scene, *engine.Loop) {
	loop := engine.New(nil)
	s := New(&scene.Viewport{Width: 800, Height: 600}, new(scene.Lifecycle), loop, rand.New(rand.NewSource(1)), cfg)
	return s, loop
}

// tickFrames calls s.Tick n times with one reference
// frame each.
func (s *Scene) tickFrames(n int) {
	for range n {
		s.Tick(scene.FrameInterval)
	}
}

// checkFiring checks that no neuron takes part in more
// than one firing edge and that the busy set agrees.
func (s *Scene) checkFiring(t *testing.T) {
	t.Helper()
	uses := make([]int, len(s.neurons))
	var firing int
	for _, e := range s.edges {
		if !e.Firing {
			continue
		}
		firing++
		uses[e.A]++
		uses[e.B]++
	}
	for i, n := range uses {
		if n > 1 {
			t.Fatalf("neuron %d is in %d firing edges", i, n)
		}
		if b := s.busy.IsSet(i); b != (n == 1) {
			t.Fatalf("busy[%d]\nhave %t\nwant %t", i, b, n == 1)
		}
	}
	if firing != len(s.pulses) {
		t.Fatalf("firing edges vs. pulses\nhave %d\nwant %d", firing, len(s.pulses))
	}
	if firing > s.cfg.MaxFiring {
		t.Fatalf("firing edges\nhave %d\nwant at most %d", firing, s.cfg.MaxFiring)
	}
}

func TestInit(t *testing.T) {
	s, loop := newTestScene(nil)
	if !s.Init() {
		t.Fatal("Scene.Init\nhave false\nwant true")
	}
	if n := len(s.Neurons()); n != 125 {
		t.Fatalf("len(Scene.Neurons)\nhave %d\nwant 125", n)
	}
	nodes, edges := s.Scene().Len(), len(s.Edges())
	if nodes != 1 {
		t.Fatalf("Scene.Scene().Len\nhave %d\nwant 1", nodes)
	}
	if n := loop.Timers(); n != 1 {
		t.Fatalf("loop.Timers\nhave %d\nwant 1", n)
	}

	if s.Init() {
		t.Fatal("Scene.Init (again)\nhave true\nwant false")
	}
	if n := s.Scene().Len(); n != nodes {
		t.Fatalf("Scene.Init (again): Scene().Len\nhave %d\nwant %d", n, nodes)
	}
	if n := len(s.Edges()); n != edges {
		t.Fatalf("Scene.Init (again): len(Edges)\nhave %d\nwant %d", n, edges)
	}
	if n := loop.Timers(); n != 1 {
		t.Fatalf("Scene.Init (again): loop.Timers\nhave %d\nwant 1", n)
	}

	s.Close()
	if n := loop.Timers(); n != 0 {
		t.Fatalf("Scene.Close: loop.Timers\nhave %d\nwant 0", n)
	}
	if n := s.Scene().Len(); n != 0 {
		t.Fatalf("Scene.Close: Scene().Len\nhave %d\nwant 0", n)
	}
	if !s.Init() {
		t.Fatal("Scene.Init (after Close)\nhave false\nwant true")
	}
	if n := len(s.Edges()); n != edges {
		t.Fatalf("Scene.Init (after Close): len(Edges)\nhave %d\nwant %d", n, edges)
	}
}

func TestInitGuards(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	if New(nil, nil, nil, rnd, nil).Init() {
		t.Fatal("Scene.Init (nil surface)\nhave true\nwant false")
	}
	for _, vp := range [...]scene.Viewport{{Width: 0, Height: 600}, {Width: 800}, {Width: -1, Height: -1}} {
		s := New(&vp, nil, nil, rnd, nil)
		if s.Init() {
			t.Fatalf("Scene.Init (%dx%d)\nhave true\nwant false", vp.Width, vp.Height)
		}
		// Nothing to animate, nothing to fail.
		s.Tick(scene.FrameInterval)
		s.Resize(0, 0)
		if n := s.Fire(); n != 0 {
			t.Fatalf("Scene.Fire (uninitialized)\nhave %d\nwant 0", n)
		}
		if snap := s.Snapshot(); len(snap.Neurons) != 0 {
			t.Fatal("Scene.Snapshot (uninitialized): should be empty")
		}
	}

	var lc scene.Lifecycle
	lc.Begin()
	s := New(&scene.Viewport{Width: 1, Height: 1}, &lc, nil, rnd, nil)
	if s.Init() {
		t.Fatal("Scene.Init (shared lifecycle already initialized)\nhave true\nwant false")
	}
	lc.Reset()
	if !s.Init() || !lc.Initialized() {
		t.Fatal("Scene.Init (after lifecycle Reset) should succeed")
	}
}

func TestEdges(t *testing.T) {
	for _, cfg := range [...]Config{
		DefaultConfig(),
		func() Config { c := DefaultConfig(); c.Threshold = 1.5; return c }(),
		func() Config { c := DefaultConfig(); c.Extent = 1; c.Spacing = 0.5; return c }(),
		func() Config { c := DefaultConfig(); c.Threshold = 0.5; return c }(),
	} {
		s, _ := newTestScene(&cfg)
		s.Init()
		want := make(map[[2]int]bool)
		for i := range s.neurons {
			for j := i + 1; j < len(s.neurons); j++ {
				if s.neurons[i].Dist(&s.neurons[j]) < cfg.Threshold {
					want[[2]int{i, j}] = true
				}
			}
		}
		if len(s.edges) != len(want) {
			t.Fatalf("len(Scene.Edges) (threshold %v)\nhave %d\nwant %d", cfg.Threshold, len(s.edges), len(want))
		}
		for _, e := range s.edges {
			if e.A == e.B {
				t.Fatalf("Edge %v: endpoints must be distinct", e)
			}
			if !want[[2]int{e.A, e.B}] {
				t.Fatalf("Edge %v: unexpected edge", e)
			}
			if d := s.neurons[e.A].Dist(&s.neurons[e.B]); d >= cfg.Threshold {
				t.Fatalf("Edge %v: distance %v not below %v", e, d, cfg.Threshold)
			}
		}
	}
}

func TestFire(t *testing.T) {
	s, _ := newTestScene(nil)
	s.Init()

	if n := s.Fire(); n != s.cfg.MaxFiring {
		t.Fatalf("Scene.Fire\nhave %d\nwant %d", n, s.cfg.MaxFiring)
	}
	s.checkFiring(t)
	first := make(map[int]bool)
	for _, p := range s.Pulses() {
		first[p.Edge] = true
	}
	if n := s.Fire(); n != 0 {
		t.Fatalf("Scene.Fire (quota filled)\nhave %d\nwant 0", n)
	}

	s.tickFrames(33)
	if n := len(s.Pulses()); n != s.cfg.MaxFiring {
		t.Fatalf("Scene.Tick x33: len(Pulses)\nhave %d\nwant %d", n, s.cfg.MaxFiring)
	}
	s.tickFrames(1)
	if n := len(s.Pulses()); n != 0 {
		t.Fatalf("Scene.Tick x34: len(Pulses)\nhave %d\nwant 0", n)
	}
	s.checkFiring(t)
	if n := s.Pooled(); n != s.cfg.MaxFiring {
		t.Fatalf("Scene.Pooled\nhave %d\nwant %d", n, s.cfg.MaxFiring)
	}
	for _, e := range s.Edges() {
		if e.Firing || e.Progress != 0 {
			t.Fatalf("Edge %v: should have been reset", e)
		}
	}

	if n := s.Fire(); n != s.cfg.MaxFiring {
		t.Fatalf("Scene.Fire (second round)\nhave %d\nwant %d", n, s.cfg.MaxFiring)
	}
	if n := s.Pooled(); n != 0 {
		t.Fatalf("Scene.Pooled (second round)\nhave %d\nwant 0", n)
	}
	for _, p := range s.Pulses() {
		if first[p.Edge] {
			t.Fatalf("edge %d fired again while cooling down", p.Edge)
		}
	}
	s.checkFiring(t)
}

func TestFireMany(t *testing.T) {
	for _, seed := range [...]int64{1, 2, 3, 42} {
		cfg := DefaultConfig()
		cfg.MaxFiring = 40
		cfg.Extent = 1
		cfg.Cooldown = 3
		s := New(&scene.Viewport{Width: 8, Height: 6}, nil, nil, rand.New(rand.NewSource(seed)), &cfg)
		s.Init()
		for i := range 200 {
			if i%7 == 0 {
				s.Fire()
			}
			s.Tick(scene.FrameInterval * time.Duration(1+i%3))
			s.checkFiring(t)
		}
	}
}

func TestFireExhausted(t *testing.T) {
	// Two neurons, one edge: at most one firing.
	cfg := DefaultConfig()
	cfg.Extent = 0
	s, _ := newTestScene(&cfg)
	s.Init()
	if n := len(s.Edges()); n != 0 {
		t.Fatalf("len(Scene.Edges) (single neuron)\nhave %d\nwant 0", n)
	}
	if n := s.Fire(); n != 0 {
		t.Fatalf("Scene.Fire (no edges)\nhave %d\nwant 0", n)
	}

	cfg = DefaultConfig()
	cfg.Extent = 1
	cfg.Threshold = 1.1
	cfg.Cooldown = 0
	s, _ = newTestScene(&cfg)
	s.Init()
	// 27 neurons can take part in at most 13 disjoint edges.
	if n := s.Fire(); n < 1 || n > 10 {
		t.Fatalf("Scene.Fire\nhave %d\nwant [1, 10]", n)
	}
	s.checkFiring(t)
}

func TestNoPool(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PoolMarkers = false
	s, _ := newTestScene(&cfg)
	s.Init()
	s.Fire()
	s.tickFrames(40)
	if n := s.Pooled(); n != 0 {
		t.Fatalf("Scene.Pooled (pooling disabled)\nhave %d\nwant 0", n)
	}
}

func TestTimer(t *testing.T) {
	s, loop := newTestScene(nil)
	s.Init()
	loop.Add(s)
	for range 59 {
		loop.Step(scene.FrameInterval)
	}
	if n := len(s.Pulses()); n != 0 {
		t.Fatalf("len(Scene.Pulses) before FireInterval\nhave %d\nwant 0", n)
	}
	loop.Step(scene.FrameInterval)
	loop.Step(scene.FrameInterval)
	if n := len(s.Pulses()); n != s.cfg.MaxFiring {
		t.Fatalf("len(Scene.Pulses) after FireInterval\nhave %d\nwant %d", n, s.cfg.MaxFiring)
	}
	s.Close()
	for range 120 {
		loop.Step(scene.FrameInterval)
	}
	if n := len(s.Pulses()); n != 0 {
		t.Fatalf("len(Scene.Pulses) after Close\nhave %d\nwant 0", n)
	}
}

func TestHiddenSurface(t *testing.T) {
	s, loop := newTestScene(nil)
	vp := s.surf.(*scene.Viewport)
	lc := s.lc
	if !s.Init() {
		t.Fatal("Scene.Init: should succeed")
	}
	loop.Add(s)
	for range 61 {
		loop.Step(scene.FrameInterval)
	}
	if n := len(s.Pulses()); n == 0 {
		t.Fatal("len(Scene.Pulses) after FireInterval: should not be 0")
	}

	vp.Hidden = true
	for range 600 {
		loop.Step(scene.FrameInterval)
	}
	if n := loop.Len(); n != 0 {
		t.Fatalf("Loop.Len (hidden)\nhave %d\nwant 0", n)
	}
	if n := loop.Timers(); n != 0 {
		t.Fatalf("Loop.Timers (hidden)\nhave %d\nwant 0", n)
	}
	if n := len(s.Pulses()); n != 0 {
		t.Fatalf("len(Scene.Pulses) (hidden)\nhave %d\nwant 0", n)
	}
	if lc.Initialized() {
		t.Fatal("Lifecycle.Initialized (hidden): should be false")
	}

	vp.Hidden = false
	if !s.Init() {
		t.Fatal("Scene.Init (visible again): should succeed")
	}
	loop.Add(s)
	if n := loop.Timers(); n != 1 {
		t.Fatalf("Loop.Timers (visible again)\nhave %d\nwant 1", n)
	}
	for range 61 {
		loop.Step(scene.FrameInterval)
	}
	if n := len(s.Pulses()); n != s.cfg.MaxFiring {
		t.Fatalf("len(Scene.Pulses) (visible again)\nhave %d\nwant %d", n, s.cfg.MaxFiring)
	}
	s.checkFiring(t)
}

func TestResize(t *testing.T) {
	s, _ := newTestScene(nil)
	s.Init()
	edges := append([]Edge(nil), s.Edges()...)
	neurons := len(s.Neurons())

	s.Resize(1600, 1200)
	if a := s.Scene().Camera().Aspect; a != float32(1600)/1200 {
		t.Fatalf("Scene.Resize: Aspect\nhave %v\nwant %v", a, float32(1600)/1200)
	}
	if n := len(s.Neurons()); n != neurons {
		t.Fatalf("Scene.Resize: len(Neurons)\nhave %d\nwant %d", n, neurons)
	}
	if len(s.Edges()) != len(edges) {
		t.Fatalf("Scene.Resize: len(Edges)\nhave %d\nwant %d", len(s.Edges()), len(edges))
	}
	for i, e := range s.Edges() {
		if e.A != edges[i].A || e.B != edges[i].B {
			t.Fatalf("Scene.Resize: Edges[%d]\nhave %v\nwant %v", i, e, edges[i])
		}
	}
	s.Resize(0, 0)
	if a := s.Scene().Camera().Aspect; a != float32(1600)/1200 {
		t.Fatalf("Scene.Resize(0, 0): Aspect\nhave %v\nwant %v", a, float32(1600)/1200)
	}
}

func TestSnapshot(t *testing.T) {
	s, _ := newTestScene(nil)
	s.Init()
	s.Fire()
	s.tickFrames(100)
	s.Fire()
	s.tickFrames(10)

	snap := s.Snapshot()
	if len(snap.Neurons) != len(s.neurons) || len(snap.Edges) != len(s.edges) {
		t.Fatal("Scene.Snapshot: size mismatch")
	}
	var moved bool
	for i, p := range snap.Neurons {
		l := s.neurons[i]
		if math.Abs(float64(p.Len()-l.Len())) > 1e-4 {
			t.Fatalf("Snapshot.Neurons[%d]: rotation should preserve length\nhave %v\nwant %v", i, p.Len(), l.Len())
		}
		if p != l {
			moved = true
		}
	}
	if !moved {
		t.Fatal("Scene.Snapshot: cluster should have rotated")
	}
	for i, e := range snap.Edges {
		want := s.cfg.EdgeOpacity
		if s.edges[i].Firing {
			want = s.cfg.FiringOpacity
		}
		if e.Opacity != want || e.Firing != s.edges[i].Firing {
			t.Fatalf("Snapshot.Edges[%d]\nhave %v\nwant opacity %v", i, e, want)
		}
	}
	if len(snap.Pulses) != s.cfg.MaxFiring {
		t.Fatalf("len(Snapshot.Pulses)\nhave %d\nwant %d", len(snap.Pulses), s.cfg.MaxFiring)
	}
	for _, p := range snap.Pulses {
		if want := 0.8*(1-p.Progress) + 0.2; math.Abs(float64(p.Opacity-want)) > 1e-6 {
			t.Fatalf("Snapshot.Pulses: Opacity\nhave %v\nwant %v", p.Opacity, want)
		}
		if p.Opacity < 0.2 || p.Opacity > 1 {
			t.Fatalf("Snapshot.Pulses: Opacity out of range: %v", p.Opacity)
		}
	}

	var f scene.Frame
	s.Draw(&f)
	if len(f.Points) != len(snap.Neurons) || len(f.Lines) != len(snap.Edges) || len(f.Sprites) != len(snap.Pulses) {
		t.Fatalf("Scene.Draw: have %d/%d/%d primitives", len(f.Points), len(f.Lines), len(f.Sprites))
	}
	if c := f.Lines[0].Color.Hex(); c != "#64ffda" {
		t.Fatalf("Scene.Draw: edge color\nhave %s\nwant #64ffda", c)
	}
}
