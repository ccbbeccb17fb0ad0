// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"testing"
)

func TestRegistry(t *testing.T) {
	var r registry[int, string]
	if n := r.len(); n != 0 {
		t.Fatalf("registry.len\nhave %d\nwant 0", n)
	}
	if r.has(0) || r.has(-1) {
		t.Fatal("registry.has: empty registry should have no keys")
	}

	keys := make([]int, 40)
	for i := range keys {
		keys[i] = r.add(string(rune('a' + i%26)))
		if !r.has(keys[i]) {
			t.Fatalf("registry.has(%d)\nhave false\nwant true", keys[i])
		}
	}
	if n := r.len(); n != len(keys) {
		t.Fatalf("registry.len\nhave %d\nwant %d", n, len(keys))
	}
	for i, k := range keys {
		if s, x := *r.get(k), string(rune('a'+i%26)); s != x {
			t.Fatalf("registry.get(%d)\nhave %q\nwant %q", k, s, x)
		}
	}

	if s := r.del(keys[0]); s != "a" {
		t.Fatalf("registry.del(%d)\nhave %q\nwant \"a\"", keys[0], s)
	}
	if r.has(keys[0]) {
		t.Fatalf("registry.has(%d) after del\nhave true\nwant false", keys[0])
	}
	// The last slot moved into the freed one.
	if s := *r.get(keys[39]); s != "n" {
		t.Fatalf("registry.get(%d) after del\nhave %q\nwant \"n\"", keys[39], s)
	}
	if e := r.all()[0]; e.key != keys[39] {
		t.Fatalf("registry.all()[0].key\nhave %d\nwant %d", e.key, keys[39])
	}

	// Deleted keys are reused.
	if k := r.add("z"); k != keys[0] {
		t.Fatalf("registry.add: key reuse\nhave %d\nwant %d", k, keys[0])
	}
	for i := r.len() - 1; i >= 0; i-- {
		r.del(r.all()[i].key)
	}
	if n := r.len(); n != 0 {
		t.Fatalf("registry.len after clearing\nhave %d\nwant 0", n)
	}
	if r.has(keys[10]) {
		t.Fatalf("registry.has(%d) after clearing\nhave true\nwant false", keys[10])
	}
}
