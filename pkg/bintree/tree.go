// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package bintree

// Tree is a binary tree rooted at an optional node.
//
// The zero value is an empty tree ready for use. A nil *Tree behaves as an
// empty tree for every read-only method.
//
// Invariants:
//   - The node graph reachable from root is acyclic
//   - Every node except root is reachable from exactly one parent
type Tree[T Value] struct {
	root *Node[T]
}

// New creates a tree that owns the node graph reachable from root.
// A nil root creates an empty tree.
func New[T Value](root *Node[T]) *Tree[T] {
	return &Tree[T]{root: root}
}

// Root returns the root node, or nil for an empty tree.
func (t *Tree[T]) Root() *Node[T] {
	if t == nil {
		return nil
	}
	return t.root
}

// IsEmpty reports whether the tree has no nodes.
func (t *Tree[T]) IsEmpty() bool {
	return t.Root() == nil
}

// Size returns the number of nodes in the tree.
func (t *Tree[T]) Size() int {
	count := 0
	t.Walk(func(*Node[T], int) bool {
		count++
		return true
	})
	return count
}

// Walk visits every node in pre-order, passing the node and its depth
// (root has depth 1). Returning false from fn stops the walk.
//
// Walk is iterative, so degenerate trees of any height do not grow the
// goroutine stack.
func (t *Tree[T]) Walk(fn func(n *Node[T], depth int) bool) {
	if t.IsEmpty() {
		return
	}

	stack := []depthEntry[T]{{node: t.root, depth: 1}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !fn(top.node, top.depth) {
			return
		}
		// Right first so Left is popped first.
		if top.node.Right != nil {
			stack = append(stack, depthEntry[T]{node: top.node.Right, depth: top.depth + 1})
		}
		if top.node.Left != nil {
			stack = append(stack, depthEntry[T]{node: top.node.Left, depth: top.depth + 1})
		}
	}
}

// Equal reports whether a and b have identical shape and values.
// Node identity is not compared.
func Equal[T Value](a, b *Tree[T]) bool {
	return nodesEqual(a.Root(), b.Root())
}

func nodesEqual[T Value](a, b *Node[T]) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Value == b.Value &&
		nodesEqual(a.Left, b.Left) &&
		nodesEqual(a.Right, b.Right)
}

// depthEntry pairs a node with its depth for BFS and DFS work lists.
type depthEntry[T Value] struct {
	node  *Node[T]
	depth int
}
