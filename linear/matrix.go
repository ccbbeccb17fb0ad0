// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package linear

import (
	"math"
)

// M3 is a column-major 3x3 matrix of float32.
type M3 [3]V3

// I makes m an identity matrix.
func (m *M3) I() { *m = M3{{1}, {0, 1}, {0, 0, 1}} }

// Mul sets m to contain l ⋅ r.
func (m *M3) Mul(l, r *M3) {
	var n M3
	for i := range n {
		for j := range n {
			for k := range n {
				n[i][j] += l[k][j] * r[i][k]
			}
		}
	}
	*m = n
}

// Transpose sets m to contain the transpose of n.
func (m *M3) Transpose(n *M3) {
	t := *n
	for i := range m {
		for j := range m {
			m[i][j] = t[j][i]
		}
	}
}

// M4 is a column-major 4x4 matrix of float32.
type M4 [4]V4

// I makes m an identity matrix.
func (m *M4) I() { *m = M4{{1}, {0, 1}, {0, 0, 1}, {0, 0, 0, 1}} }

// Mul sets m to contain l ⋅ r.
func (m *M4) Mul(l, r *M4) {
	var n M4
	for i := range n {
		for j := range n {
			for k := range n {
				n[i][j] += l[k][j] * r[i][k]
			}
		}
	}
	*m = n
}

// Translate sets m to contain a translation by v.
func (m *M4) Translate(v *V3) {
	m.I()
	m[3] = V4{v[0], v[1], v[2], 1}
}

// RotateX sets m to contain a rotation of angle
// radians around the x axis.
func (m *M4) RotateX(angle float32) {
	s, c := sincos(angle)
	*m = M4{{1}, {0, c, s}, {0, -s, c}, {0, 0, 0, 1}}
}

// RotateY sets m to contain a rotation of angle
// radians around the y axis.
func (m *M4) RotateY(angle float32) {
	s, c := sincos(angle)
	*m = M4{{c, 0, -s}, {0, 1}, {s, 0, c}, {0, 0, 0, 1}}
}

// RotateZ sets m to contain a rotation of angle
// radians around the z axis.
func (m *M4) RotateZ(angle float32) {
	s, c := sincos(angle)
	*m = M4{{c, s}, {-s, c}, {0, 0, 1}, {0, 0, 0, 1}}
}

// Euler sets m to contain the rotation described by
// the given angles, applied in XYZ order.
func (m *M4) Euler(x, y, z float32) {
	var rx, ry, rz M4
	rx.RotateX(x)
	ry.RotateY(y)
	rz.RotateZ(z)
	m.Mul(&ry, &rz)
	m.Mul(&rx, m)
}

// Perspective sets m to contain a perspective projection.
// yfov is the vertical field of view in radians.
// The projection maps depth in [znear, zfar] to [0, 1].
func (m *M4) Perspective(yfov, aspect, znear, zfar float32) {
	ct := 1 / float32(math.Tan(float64(yfov)*0.5))
	*m = M4{
		{ct / aspect},
		{0, ct},
		{0, 0, zfar / (znear - zfar), -1},
		{0, 0, (znear * zfar) / (znear - zfar)},
	}
}

func sincos(angle float32) (s, c float32) {
	s64, c64 := math.Sincos(float64(angle))
	return float32(s64), float32(c64)
}
