// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package gltf

import (
	"encoding/base64"
	"encoding/binary"
	"io"
	"math"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"

	"github.com/gviegas/backdrop/linear"
	"github.com/gviegas/backdrop/scene"
)

// ErrEmptyFrame means that a frame had nothing to export.
var ErrEmptyFrame = errors.New("gltf: empty frame")

// DataURIPrefix prefixes buffer URIs that embed their data.
const DataURIPrefix = "data:application/octet-stream;base64,"

// Builder accumulates frames into a single glTF asset.
// Each frame becomes a node with one mesh, whose
// primitives are the frame's points, lines and sprites.
type Builder struct {
	gltf GLTF
	bin  []byte
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	var zero int64
	var metallic, roughness float32 = 0, 1
	b := &Builder{gltf: GLTF{
		ExtensionsUsed: []string{Unlit},
		Asset:          Asset{Generator: "backdrop", Version: "2.0"},
		Materials: []Material{{
			PBRMetallicRoughness: &PBRMetallicRoughness{
				MetallicFactor:  &metallic,
				RoughnessFactor: &roughness,
			},
			AlphaMode:   BLEND,
			DoubleSided: true,
			Name:        "vertex color",
			Extensions:  map[string]any{Unlit: map[string]any{}},
		}},
		Scene:  &zero,
		Scenes: []Scene{{Name: "backdrop"}},
	}}
	return b
}

// Len returns the number of frames added to b.
func (b *Builder) Len() int { return len(b.gltf.Meshes) }

// AddFrame adds f as a new node named name.
// It returns ErrEmptyFrame if f has no primitives.
func (b *Builder) AddFrame(name string, f *scene.Frame) error {
	if f == nil || f.Len() == 0 {
		return errors.Wrapf(ErrEmptyFrame, "frame %q", name)
	}
	var prims []Primitive
	if n := len(f.Points); n > 0 {
		pos := make([]linear.V3, n)
		col := make([][4]float32, n)
		for i, p := range f.Points {
			pos[i] = p.Pos
			col[i] = rgba(p.Color, p.Alpha)
		}
		prims = append(prims, b.primitive(pos, col, POINTS))
	}
	if n := len(f.Lines); n > 0 {
		pos := make([]linear.V3, 0, 2*n)
		col := make([][4]float32, 0, 2*n)
		for _, l := range f.Lines {
			c := rgba(l.Color, l.Alpha)
			pos = append(pos, l.A, l.B)
			col = append(col, c, c)
		}
		prims = append(prims, b.primitive(pos, col, LINES))
	}
	if n := len(f.Sprites); n > 0 {
		pos := make([]linear.V3, n)
		col := make([][4]float32, n)
		for i, s := range f.Sprites {
			pos[i] = s.Pos
			col[i] = rgba(s.Color, s.Alpha)
		}
		prims = append(prims, b.primitive(pos, col, POINTS))
	}

	mesh := int64(len(b.gltf.Meshes))
	b.gltf.Meshes = append(b.gltf.Meshes, Mesh{Primitives: prims, Name: name})
	node := int64(len(b.gltf.Nodes))
	b.gltf.Nodes = append(b.gltf.Nodes, Node{Mesh: &mesh, Name: name})
	b.gltf.Scenes[0].Nodes = append(b.gltf.Scenes[0].Nodes, node)
	return nil
}

// rgba converts c to linear RGB with alpha a, as
// expected by COLOR_0.
func rgba(c colorful.Color, a float32) [4]float32 {
	r, g, b := c.LinearRgb()
	return [4]float32{float32(r), float32(g), float32(b), min(1, max(0, a))}
}

func (b *Builder) primitive(pos []linear.V3, col [][4]float32, mode int64) Primitive {
	lo := pos[0]
	hi := pos[0]
	for _, p := range pos[1:] {
		for i := range p {
			lo[i] = min(lo[i], p[i])
			hi[i] = max(hi[i], p[i])
		}
	}
	pa := b.accessor(VEC3, len(pos), func(dst []byte) []byte {
		for _, p := range pos {
			dst = appendFloats(dst, p[:]...)
		}
		return dst
	})
	b.gltf.Accessors[pa].Min = lo[:]
	b.gltf.Accessors[pa].Max = hi[:]
	ca := b.accessor(VEC4, len(col), func(dst []byte) []byte {
		for _, c := range col {
			dst = appendFloats(dst, c[:]...)
		}
		return dst
	})
	var mat int64
	return Primitive{
		Attributes: map[string]int64{POSITION: pa, COLOR_0: ca},
		Material:   &mat,
		Mode:       &mode,
	}
}

// accessor appends a float accessor of count elements
// and its buffer view. fill writes the data.
func (b *Builder) accessor(typ string, count int, fill func([]byte) []byte) int64 {
	off := len(b.bin)
	b.bin = fill(b.bin)
	view := int64(len(b.gltf.BufferViews))
	b.gltf.BufferViews = append(b.gltf.BufferViews, BufferView{
		ByteOffset: int64(off),
		ByteLength: int64(len(b.bin) - off),
		Target:     ARRAY_BUFFER,
	})
	idx := int64(len(b.gltf.Accessors))
	b.gltf.Accessors = append(b.gltf.Accessors, Accessor{
		BufferView:    &view,
		ComponentType: FLOAT,
		Count:         int64(count),
		Type:          typ,
	})
	return idx
}

func appendFloats(dst []byte, fs ...float32) []byte {
	for _, f := range fs {
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(f))
	}
	return dst
}

// withBuffer returns a shallow copy of b's glTF with a
// single buffer of the given URI.
func (b *Builder) withBuffer(uri string) *GLTF {
	g := b.gltf
	g.Buffers = nil
	if len(b.bin) > 0 {
		g.Buffers = []Buffer{{URI: uri, ByteLength: int64(len(b.bin))}}
	}
	return &g
}

// GLTF returns the asset with its buffer embedded as a
// data URI. The result shares storage with b.
func (b *Builder) GLTF() *GLTF {
	return b.withBuffer(DataURIPrefix + base64.StdEncoding.EncodeToString(b.bin))
}

// Encode writes the asset into w as glTF JSON.
func (b *Builder) Encode(w io.Writer) error { return Encode(w, b.GLTF()) }

// WriteGLB writes the asset into w as a GLB blob.
func (b *Builder) WriteGLB(w io.Writer) error { return WriteGLB(w, b.withBuffer(""), b.bin) }

// FromFrame creates a glTF asset containing f.
func FromFrame(name string, f *scene.Frame) (*GLTF, error) {
	b := NewBuilder()
	if err := b.AddFrame(name, f); err != nil {
		return nil, err
	}
	return b.GLTF(), nil
}

// BufferData returns the contents of the buffer at index i.
// bin is the binary chunk of a GLB blob, and is used for
// a buffer with no URI. Only data URIs are supported.
func (f *GLTF) BufferData(i int, bin []byte) ([]byte, error) {
	if i < 0 || i >= len(f.Buffers) {
		return nil, newErr("invalid Buffer index")
	}
	buf := &f.Buffers[i]
	var data []byte
	switch {
	case buf.URI == "":
		data = bin
	case strings.HasPrefix(buf.URI, DataURIPrefix):
		var err error
		data, err = base64.StdEncoding.DecodeString(buf.URI[len(DataURIPrefix):])
		if err != nil {
			return nil, errors.Wrap(err, "gltf: buffer data URI")
		}
	default:
		return nil, newErr("unsupported Buffer.URI")
	}
	if int64(len(data)) < buf.ByteLength {
		return nil, newErr("Buffer data is too short")
	}
	return data[:buf.ByteLength], nil
}

// Floats returns the elements of a FLOAT accessor,
// flattened. data is the contents of the accessor's buffer.
func (f *GLTF) Floats(accessor int64, data []byte) ([]float32, error) {
	if !validIndex(accessor, f.Accessors) {
		return nil, newErr("invalid Accessor index")
	}
	a := &f.Accessors[accessor]
	if a.ComponentType != FLOAT || a.BufferView == nil {
		return nil, newErr("unsupported Accessor")
	}
	v := &f.BufferViews[*a.BufferView]
	n := componentCount(a.Type)
	stride := v.ByteStride
	if stride == 0 {
		stride = 4 * n
	}
	fs := make([]float32, 0, a.Count*n)
	for i := range a.Count {
		off := v.ByteOffset + a.ByteOffset + i*stride
		if off+4*n > int64(len(data)) {
			return nil, newErr("Accessor data is too short")
		}
		for j := range n {
			bits := binary.LittleEndian.Uint32(data[off+4*j:])
			fs = append(fs, math.Float32frombits(bits))
		}
	}
	return fs, nil
}
