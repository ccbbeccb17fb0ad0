// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package gltf

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
)

// GLB header.
type glbHeader [3]uint32

// Indices in glbHeader.
const (
	headerMagic   = 0
	headerVersion = 1
	headerLength  = 2
)

// GLB chunk.
type glbChunk [2]uint32

// Indices in glbChunk.
const (
	chunkLength = 0
	chunkType   = 1
	// Then payload.
)

const (
	// glbHeader[headerMagic].
	magic = 0x46546c67

	// glbChunk[chunkType].
	typeJSON = 0x4e4f534a
	typeBIN  = 0x004e4942
)

// IsGLB returns whether r refers to a binary glTF (version 2).
// It assumes that r was positioned accordingly.
func IsGLB(r io.Reader) bool {
	var h glbHeader
	err := binary.Read(r, binary.LittleEndian, h[:])
	switch {
	case err != nil, h[headerMagic] != magic, h[headerVersion] != 2:
		return false
	default:
		return true
	}
}

// SeekJSON seeks into r until it finds the beginning
// of the JSON string.
// If successful, it returns the length of the chunk.
// r must refer to an unread GLB blob.
func SeekJSON(r io.Reader) (n int, err error) {
	if !IsGLB(r) {
		err = newErr("not a GLB blob")
		return
	}
	var c glbChunk
	err = binary.Read(r, binary.LittleEndian, c[:])
	switch {
	case err != nil:
		err = errors.Wrap(err, "gltf: GLB chunk")
	case c[chunkLength] == 0 || c[chunkType] != typeJSON:
		err = newErr("invalid GLB chunk")
	default:
		n = int(c[chunkLength])
	}
	return
}

// pad4 pads b to a multiple of 4 bytes with c.
func pad4(b []byte, c byte) []byte {
	for len(b)%4 != 0 {
		b = append(b, c)
	}
	return b
}

// WriteGLB writes gltf into w as a GLB blob whose
// binary chunk is bin. If bin is not empty, the first
// buffer of gltf must describe it and have no URI.
func WriteGLB(w io.Writer, gltf *GLTF, bin []byte) error {
	js, err := sonic.Marshal(gltf)
	if err != nil {
		return errors.Wrap(err, "gltf: encode")
	}
	js = pad4(js, ' ')
	bin = pad4(append([]byte(nil), bin...), 0)

	n := 12 + 8 + len(js)
	if len(bin) > 0 {
		n += 8 + len(bin)
	}
	var buf bytes.Buffer
	buf.Grow(n)
	binary.Write(&buf, binary.LittleEndian, glbHeader{magic, 2, uint32(n)})
	binary.Write(&buf, binary.LittleEndian, glbChunk{uint32(len(js)), typeJSON})
	buf.Write(js)
	if len(bin) > 0 {
		binary.Write(&buf, binary.LittleEndian, glbChunk{uint32(len(bin)), typeBIN})
		buf.Write(bin)
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return errors.Wrap(err, "gltf: write GLB")
	}
	return nil
}

// ReadGLB reads a GLB blob from r. It returns the decoded
// glTF and the contents of the binary chunk, if any.
func ReadGLB(r io.Reader) (*GLTF, []byte, error) {
	n, err := SeekJSON(r)
	if err != nil {
		return nil, nil, err
	}
	js := make([]byte, n)
	if _, err := io.ReadFull(r, js); err != nil {
		return nil, nil, errors.Wrap(err, "gltf: GLB JSON chunk")
	}
	gltf, err := Decode(bytes.NewReader(js))
	if err != nil {
		return nil, nil, err
	}
	var c glbChunk
	switch err := binary.Read(r, binary.LittleEndian, c[:]); {
	case err == io.EOF:
		return gltf, nil, nil
	case err != nil:
		return nil, nil, errors.Wrap(err, "gltf: GLB chunk")
	case c[chunkType] != typeBIN:
		return nil, nil, newErr("invalid GLB chunk")
	}
	bin := make([]byte, c[chunkLength])
	if _, err := io.ReadFull(r, bin); err != nil {
		return nil, nil, errors.Wrap(err, "gltf: GLB BIN chunk")
	}
	return gltf, bin, nil
}
