// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package node provides the elements of the scene graph.
package node

import (
	"github.com/gviegas/backdrop/linear"
)

// Node represents a single node in a scene graph.
// Nodes have at most one immediate ancestor and
// an arbitrary number of immediate descendants.
// Each node carries a local transform that is
// relative to its immediate ancestor.
type Node struct {
	next *Node
	prev *Node
	sub  *Node

	local linear.M4

	// Name for the node.
	// It is not used by node code.
	Name string
}

// New creates an initialized node.
func New() *Node { return new(Node).Init() }

// Init initializes node n.
// It resets the local transform to identity.
func (n *Node) Init() *Node {
	n.local.I()
	return n
}

// Local returns the local transform of n.
// The transform may be modified through the
// returned pointer.
func (n *Node) Local() *linear.M4 { return &n.local }

// SetLocal replaces the local transform of n.
func (n *Node) SetLocal(m *linear.M4) { n.local = *m }

// Insert inserts node sub as immediate descendant
// of node n.
// sub must be either a descendant of n or part of
// an unrelated graph - it must not be an ancestor
// of node n.
func (n *Node) Insert(sub *Node) {
	sub.Remove()
	sub.next = n.sub
	sub.prev = n
	if n.sub != nil {
		n.sub.prev = sub
	}
	n.sub = sub
}

// Remove removes node n from its immediate ancestor.
func (n *Node) Remove() {
	// Node.prev is only nil when the node has no
	// ancestors, since the prev field of the first
	// immediate descendant refers to its immediate
	// ancestor.
	if n.prev != nil {
		if n.prev.sub == n {
			n.prev.sub = n.next
		} else {
			n.prev.next = n.next
		}
		if n.next != nil {
			n.next.prev = n.prev
		}
		n.prev = nil
		n.next = nil
	}
}

// Parent returns the immediate ancestor of n,
// or nil if n has none.
func (n *Node) Parent() *Node {
	for x := n; x.prev != nil; x = x.prev {
		if x.prev.sub == x {
			return x.prev
		}
	}
	return nil
}

// World returns the world transform of n, which
// is the product of the local transforms from the
// root of the graph down to n.
func (n *Node) World() linear.M4 {
	w := n.local
	for x := n.Parent(); x != nil; x = x.Parent() {
		w.Mul(&x.local, &w)
	}
	return w
}

// ForEach calls f for each descendant of node n.
// Ancestors are processed first.
// The scene graph must not be changed until this
// method returns.
func (n *Node) ForEach(f func(*Node)) {
	n.Until(func(x *Node) bool {
		f(x)
		return true
	})
}

// Until calls f for each descendant of node n.
// Ancestors are processed first. If f returns false,
// Until returns immediately.
// The scene graph must not be changed until this
// method returns.
func (n *Node) Until(f func(*Node) bool) {
	if n.sub == nil {
		return
	}
	que := []*Node{n.sub}
	for len(que) > 0 {
		for nd := que[0]; nd != nil; nd = nd.next {
			if !f(nd) {
				return
			}
			if sub := nd.sub; sub != nil {
				que = append(que, sub)
			}
		}
		que = que[1:]
	}
}

// Len returns the number of descendants of n.
func (n *Node) Len() (cnt int) {
	n.ForEach(func(*Node) { cnt++ })
	return
}
