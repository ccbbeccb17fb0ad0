// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package gltf

import (
	"github.com/pkg/errors"
)

func newErr(reason string) error {
	return errors.New("gltf: " + reason)
}

func validIndex[T any](idx int64, s []T) bool { return idx >= 0 && idx < int64(len(s)) }

// Check checks that f is valid glTF.
func (f *GLTF) Check() error {
	if f.Asset.Version != "2.0" {
		return newErr("invalid GLTF.Asset.Version value")
	}
	if s := f.Scene; s != nil && !validIndex(*s, f.Scenes) {
		return newErr("invalid GLTF.Scene index")
	}
	for _, b := range f.Buffers {
		if b.ByteLength < 1 {
			return newErr("invalid Buffer.ByteLength value")
		}
	}
	for i := range f.BufferViews {
		if err := f.BufferViews[i].Check(f); err != nil {
			return err
		}
	}
	for i := range f.Accessors {
		if err := f.Accessors[i].Check(f); err != nil {
			return err
		}
	}
	for _, m := range f.Materials {
		switch m.AlphaMode {
		case "", OPAQUE, MASK, BLEND:
		default:
			return newErr("invalid Material.AlphaMode value")
		}
	}
	for i := range f.Meshes {
		if len(f.Meshes[i].Primitives) == 0 {
			return newErr("invalid Mesh.Primitives length")
		}
		for j := range f.Meshes[i].Primitives {
			if err := f.Meshes[i].Primitives[j].Check(f); err != nil {
				return err
			}
		}
	}
	for _, n := range f.Nodes {
		if n.Mesh != nil && !validIndex(*n.Mesh, f.Meshes) {
			return newErr("invalid Node.Mesh index")
		}
		for _, c := range n.Children {
			if !validIndex(c, f.Nodes) {
				return newErr("invalid Node.Children index")
			}
		}
	}
	for _, s := range f.Scenes {
		for _, n := range s.Nodes {
			if !validIndex(n, f.Nodes) {
				return newErr("invalid Scene.Nodes index")
			}
		}
	}
	return nil
}

// Check checks that v is valid glTF.bufferViews' element.
func (v *BufferView) Check(gltf *GLTF) error {
	if !validIndex(v.Buffer, gltf.Buffers) {
		return newErr("invalid BufferView.Buffer index")
	}
	if v.ByteOffset < 0 {
		return newErr("invalid BufferView.ByteOffset value")
	}
	if v.ByteLength < 1 || v.ByteOffset+v.ByteLength > gltf.Buffers[v.Buffer].ByteLength {
		return newErr("invalid BufferView.ByteLength value")
	}
	if s := v.ByteStride; s != 0 && (s < 4 || s > 252 || s%4 != 0) {
		return newErr("invalid BufferView.ByteStride value")
	}
	return nil
}

// Check checks that a is valid glTF.accessors' element.
func (a *Accessor) Check(gltf *GLTF) error {
	if a.BufferView != nil && !validIndex(*a.BufferView, gltf.BufferViews) {
		return newErr("invalid Accessor.BufferView index")
	}
	if a.ByteOffset < 0 {
		return newErr("invalid Accessor.ByteOffset value")
	}
	size := componentSize(a.ComponentType)
	if size == 0 {
		return newErr("invalid Accessor.ComponentType value")
	}
	if a.Count < 1 {
		return newErr("invalid Accessor.Count value")
	}
	n := componentCount(a.Type)
	if n == 0 {
		return newErr("invalid Accessor.Type value")
	}
	if (a.Max != nil && int64(len(a.Max)) != n) || (a.Min != nil && int64(len(a.Min)) != n) {
		return newErr("invalid Accessor.Max/Min length")
	}
	if a.BufferView != nil {
		v := &gltf.BufferViews[*a.BufferView]
		stride := v.ByteStride
		if stride == 0 {
			stride = size * n
		}
		if a.ByteOffset+stride*(a.Count-1)+size*n > v.ByteLength {
			return newErr("Accessor does not fit in its BufferView")
		}
	}
	return nil
}

// Check checks that p is valid mesh.primitives' element.
func (p *Primitive) Check(gltf *GLTF) error {
	if len(p.Attributes) == 0 {
		return newErr("invalid Primitive.Attributes length")
	}
	count := int64(-1)
	for _, idx := range p.Attributes {
		if !validIndex(idx, gltf.Accessors) {
			return newErr("invalid Primitive.Attributes index")
		}
		c := gltf.Accessors[idx].Count
		if count >= 0 && c != count {
			return newErr("Primitive.Attributes counts differ")
		}
		count = c
	}
	if idx, ok := p.Attributes[POSITION]; ok {
		a := &gltf.Accessors[idx]
		if a.Type != VEC3 || a.ComponentType != FLOAT {
			return newErr("invalid POSITION accessor")
		}
		if a.Min == nil || a.Max == nil {
			return newErr("POSITION accessor requires Min/Max")
		}
	}
	if p.Indices != nil && !validIndex(*p.Indices, gltf.Accessors) {
		return newErr("invalid Primitive.Indices index")
	}
	if p.Material != nil && !validIndex(*p.Material, gltf.Materials) {
		return newErr("invalid Primitive.Material index")
	}
	if m := p.Mode; m != nil && (*m < POINTS || *m > TRIANGLE_FAN) {
		return newErr("invalid Primitive.Mode value")
	}
	return nil
}
