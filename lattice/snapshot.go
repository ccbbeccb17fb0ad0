// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package lattice

import (
	"github.com/gviegas/backdrop/linear"
	"github.com/gviegas/backdrop/scene"
)

// EdgeView is an edge as it appears in a Snapshot.
type EdgeView struct {
	A, B    linear.V3
	Firing  bool
	Opacity float32
}

// PulseView is a pulse as it appears in a Snapshot.
type PulseView struct {
	Pos      linear.V3
	Progress float32
	Opacity  float32
}

// Snapshot is the state of the scene at a given frame,
// in world space.
type Snapshot struct {
	Neurons []linear.V3
	Edges   []EdgeView
	Pulses  []PulseView
}

// Snapshot returns the current state of the scene.
// It returns the zero Snapshot if the scene is not
// initialized.
func (s *Scene) Snapshot() (snap Snapshot) {
	if !s.lc.Initialized() {
		return
	}
	w := s.cluster.World()
	snap.Neurons = make([]linear.V3, len(s.neurons))
	for i := range s.neurons {
		snap.Neurons[i] = scene.Transform(&w, &s.neurons[i])
	}
	snap.Edges = make([]EdgeView, len(s.edges))
	for i, e := range s.edges {
		op := s.cfg.EdgeOpacity
		if e.Firing {
			op = s.cfg.FiringOpacity
		}
		snap.Edges[i] = EdgeView{
			A:       snap.Neurons[e.A],
			B:       snap.Neurons[e.B],
			Firing:  e.Firing,
			Opacity: op,
		}
	}
	snap.Pulses = make([]PulseView, len(s.pulses))
	for i, p := range s.pulses {
		e := &snap.Edges[p.Edge]
		var pos linear.V3
		pos.Lerp(&e.A, &e.B, p.Progress)
		snap.Pulses[i] = PulseView{
			Pos:      pos,
			Progress: p.Progress,
			Opacity:  0.8*(1-p.Progress) + 0.2,
		}
	}
	return
}

// Draw appends the scene's primitives to f.
func (s *Scene) Draw(f *scene.Frame) {
	snap := s.Snapshot()
	for _, p := range snap.Neurons {
		f.Points = append(f.Points, scene.Point{
			Pos:    p,
			Radius: s.cfg.NeuronRadius,
			Color:  s.neuronColor,
			Alpha:  s.cfg.NeuronOpacity,
		})
	}
	for _, e := range snap.Edges {
		f.Lines = append(f.Lines, scene.Line{
			A:     e.A,
			B:     e.B,
			Width: s.cfg.EdgeWidth,
			Color: s.edgeColor,
			Alpha: e.Opacity,
		})
	}
	for _, p := range snap.Pulses {
		f.Sprites = append(f.Sprites, scene.Sprite{
			Pos:   p.Pos,
			Size:  s.cfg.PulseSize,
			Color: s.pulseColor,
			Alpha: p.Opacity,
		})
	}
}
