// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"github.com/gviegas/backdrop/internal/bitvec"
)

// slot pairs a value with the key that refers to it.
type slot[V any] struct {
	key int
	val V
}

// registry hands out small integer keys of type K for
// values of type V. Values are packed in a slice, so
// iteration is cheap. del moves the last slot into the
// freed one; loops that delete must walk backwards.
// Keys are reused once deleted. has(k) reports whether
// k currently refers to a value.
type registry[K ~int, V any] struct {
	pos   []int
	used  bitvec.V[uint32]
	slots []slot[V]
}

// add stores val and returns its key.
func (r *registry[K, V]) add(val V) K {
	if r.used.Rem() == 0 {
		r.used.Grow(1)
		r.pos = append(r.pos, make([]int, r.used.Len()-len(r.pos))...)
	}
	k, ok := r.used.Search()
	if !ok {
		panic("engine: registry has no free key after growing")
	}
	r.used.Set(k)
	r.pos[k] = len(r.slots)
	r.slots = append(r.slots, slot[V]{k, val})
	return K(k)
}

// del deletes the value under key k and returns it.
// k must be in use.
func (r *registry[K, V]) del(k K) V {
	i := r.pos[k]
	val := r.slots[i].val
	n := len(r.slots) - 1
	if i != n {
		r.slots[i] = r.slots[n]
		r.pos[r.slots[i].key] = i
	}
	r.slots[n] = slot[V]{}
	r.slots = r.slots[:n]
	r.pos[k] = -1
	r.used.Unset(int(k))
	return val
}

func (r *registry[K, _]) has(k K) bool {
	return k >= 0 && int(k) < r.used.Len() && r.used.IsSet(int(k))
}

// get returns a pointer to the value under key k,
// which must be in use. It is invalidated by add and del.
func (r *registry[K, V]) get(k K) *V { return &r.slots[r.pos[k]].val }

// all returns the packed slots. Callers must not modify
// the slice.
func (r *registry[K, V]) all() []slot[V] { return r.slots }

func (r *registry[_, _]) len() int { return len(r.slots) }
