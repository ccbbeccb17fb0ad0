// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package linear implements math for 3D graphics.
package linear

import (
	"math"
)

// V3 is a 3-component vector of float32.
type V3 [3]float32

// Add sets v to contain l + r.
func (v *V3) Add(l, r *V3) {
	for i := range v {
		v[i] = l[i] + r[i]
	}
}

// Sub sets v to contain l - r.
func (v *V3) Sub(l, r *V3) {
	for i := range v {
		v[i] = l[i] - r[i]
	}
}

// Scale sets v to contain s ⋅ w.
func (v *V3) Scale(s float32, w *V3) {
	for i := range v {
		v[i] = s * w[i]
	}
}

// Dot returns v ⋅ w.
func (v *V3) Dot(w *V3) (d float32) {
	for i := range v {
		d += v[i] * w[i]
	}
	return
}

// Len returns the length of v.
func (v *V3) Len() float32 { return float32(math.Sqrt(float64(v.Dot(v)))) }

// Norm sets v to contain w normalized.
func (v *V3) Norm(w *V3) { v.Scale(1/w.Len(), w) }

// Cross sets v to contain l × r.
func (v *V3) Cross(l, r *V3) {
	x := l[1]*r[2] - l[2]*r[1]
	y := l[2]*r[0] - l[0]*r[2]
	z := l[0]*r[1] - l[1]*r[0]
	*v = V3{x, y, z}
}

// Lerp sets v to contain the linear interpolation
// between l and r at t.
// t is not clamped.
func (v *V3) Lerp(l, r *V3, t float32) {
	for i := range v {
		v[i] = l[i] + (r[i]-l[i])*t
	}
}

// Dist returns the distance between v and w.
func (v *V3) Dist(w *V3) float32 {
	var d V3
	d.Sub(v, w)
	return d.Len()
}

// Mul sets v to contain m ⋅ w.
func (v *V3) Mul(m *M3, w *V3) {
	var u V3
	for i := range u {
		for j := range u {
			u[i] += m[j][i] * w[j]
		}
	}
	*v = u
}

// V4 is a 4-component vector of float32.
type V4 [4]float32

// Add sets v to contain l + r.
func (v *V4) Add(l, r *V4) {
	for i := range v {
		v[i] = l[i] + r[i]
	}
}

// Sub sets v to contain l - r.
func (v *V4) Sub(l, r *V4) {
	for i := range v {
		v[i] = l[i] - r[i]
	}
}

// Scale sets v to contain s ⋅ w.
func (v *V4) Scale(s float32, w *V4) {
	for i := range v {
		v[i] = s * w[i]
	}
}

// Dot returns v ⋅ w.
func (v *V4) Dot(w *V4) (d float32) {
	for i := range v {
		d += v[i] * w[i]
	}
	return
}

// Len returns the length of v.
func (v *V4) Len() float32 { return float32(math.Sqrt(float64(v.Dot(v)))) }

// Mul sets v to contain m ⋅ w.
func (v *V4) Mul(m *M4, w *V4) {
	var u V4
	for i := range u {
		for j := range u {
			u[i] += m[j][i] * w[j]
		}
	}
	*v = u
}

// Point returns the V4 {p[0], p[1], p[2], 1}.
func Point(p *V3) V4 { return V4{p[0], p[1], p[2], 1} }
