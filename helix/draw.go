// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package helix

import (
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/gviegas/backdrop/scene"
)

var (
	bondAT = scene.MustColor("#ffffff")
	bondGC = scene.MustColor("#bbbbbb")
)

// BondColor returns the color of the bond between the
// bases of p: white for A-T pairs and light gray for
// G-C pairs.
func BondColor(p *BasePair) colorful.Color {
	if b := p.Bases[0]; b == A || b == T {
		return bondAT
	}
	return bondGC
}

// Draw appends the scene's primitives to f.
func (s *Scene) Draw(f *scene.Frame) {
	if !s.lc.Initialized() {
		return
	}
	w := s.group.World()
	width, dashed := s.cfg.BackboneWidth, s.cfg.Dashed
	if s.cfg.Mode == Tube {
		width, dashed = 2*s.cfg.TubeRadius, false
	}
	for _, st := range s.strands {
		prev := scene.Transform(&w, &st.Points[0])
		for j := 1; j < len(st.Points); j++ {
			cur := scene.Transform(&w, &st.Points[j])
			if !dashed || j%2 == 1 {
				f.Lines = append(f.Lines, scene.Line{
					A:     prev,
					B:     cur,
					Width: width,
					Color: s.backbone,
					Alpha: s.cfg.BackboneOpacity,
				})
			}
			prev = cur
		}
	}

	for i := range s.pairs {
		p := &s.pairs[i]
		for k := range p.Pos {
			f.Points = append(f.Points, scene.Point{
				Pos:    p.Pos[k],
				Radius: s.cfg.BaseRadius,
				Color:  s.palette[p.Bases[k]],
				Alpha:  s.cfg.BaseOpacity,
			})
		}
		f.Lines = append(f.Lines, scene.Line{
			A:     p.Pos[0],
			B:     p.Pos[1],
			Width: s.cfg.BondWidth,
			Color: BondColor(p),
			Alpha: s.cfg.BondOpacity,
		})
	}
}
