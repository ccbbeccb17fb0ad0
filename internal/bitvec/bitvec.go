// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package bitvec defines a bit vector type used to track
// per-element flags (e.g., which lattice neurons are busy).
package bitvec

import (
	"iter"
	"unsafe"
)

// Uint represents the granularity of a bit vector.
type Uint interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// V is a growable bit vector with custom granularity.
type V[T Uint] struct {
	s   []T
	rem int
}

// nbit returns the number of bits in T.
func (*V[T]) nbit() int { return int(unsafe.Sizeof(T(0))) * 8 }

// Len returns the number of bits in the vector.
func (v *V[_]) Len() int { return len(v.s) * v.nbit() }

// Rem returns the number of unset bits in the vector.
func (v *V[_]) Rem() int { return v.rem }

// Count returns the number of set bits in the vector.
func (v *V[_]) Count() int { return v.Len() - v.rem }

// Grow resizes the vector to contain nplus additional Uints.
// The new extent is appended as a contiguous range of
// unset bits.
// It returns the value of v.Len prior to appending the new
// extent.
// It is valid to call this method with any value of nplus.
func (v *V[T]) Grow(nplus int) (index int) {
	index = v.Len()
	if nplus > 0 {
		v.rem += nplus * v.nbit()
		v.s = append(v.s, make([]T, nplus)...)
	}
	return
}

// Fit ensures that the vector holds at least nbits bits,
// all of them unset.
func (v *V[T]) Fit(nbits int) {
	v.Clear()
	if n := v.nbit(); nbits > v.Len() {
		v.Grow((nbits - v.Len() + n - 1) / n)
	}
}

// Set sets a given bit.
func (v *V[T]) Set(index int) {
	n := v.nbit()
	i := index / n
	b := T(1) << (index & (n - 1))
	if v.s[i]&b == 0 {
		v.s[i] |= b
		v.rem--
	}
}

// Unset unsets a given bit.
func (v *V[T]) Unset(index int) {
	n := v.nbit()
	i := index / n
	b := T(1) << (index & (n - 1))
	if v.s[i]&b != 0 {
		v.s[i] &^= b
		v.rem++
	}
}

// IsSet checks whether a given bit is set.
func (v *V[T]) IsSet(index int) bool {
	n := v.nbit()
	i := index / n
	b := T(1) << (index & (n - 1))
	return v.s[i]&b != 0
}

// Search attempts to locate an unset bit in the vector.
// If ok is true, then index is a value suitable for use in
// a call to v.Set.
// This method will fail only when v.Rem() == 0.
func (v *V[T]) Search() (index int, ok bool) {
	if v.Rem() == 0 {
		return
	}
	for i, x := range v.s {
		if x == ^T(0) {
			continue
		}
		var b int
		for ; x&(1<<b) != 0; b++ {
		}
		index = i*v.nbit() + b
		ok = true
		break
	}
	return
}

// Clear unsets every bit in the vector.
func (v *V[T]) Clear() {
	n := v.Len()
	if n == v.Rem() {
		return
	}
	clear(v.s)
	v.rem = n
}

// Ones returns an iterator over the indices of set bits,
// in increasing order.
func (v *V[T]) Ones() iter.Seq[int] {
	return func(yield func(int) bool) {
		n := v.nbit()
		for i, x := range v.s {
			if x == 0 {
				continue
			}
			for b := range n {
				if x&(1<<b) != 0 && !yield(i*n+b) {
					return
				}
			}
		}
	}
}
