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

import "fmt"

// placement records where a node sits: its depth and immediate parent.
type placement[T Value] struct {
	depth  int
	parent *Node[T]
}

// place finds target by identity and reports its depth and parent.
// The root has depth 1 and a nil parent.
func (t *Tree[T]) place(target *Node[T]) (placement[T], bool) {
	if t.IsEmpty() || target == nil {
		return placement[T]{}, false
	}

	type frame struct {
		node   *Node[T]
		parent *Node[T]
		depth  int
	}
	stack := []frame{{node: t.root, depth: 1}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if top.node == target {
			return placement[T]{depth: top.depth, parent: top.parent}, true
		}
		if top.node.Right != nil {
			stack = append(stack, frame{node: top.node.Right, parent: top.node, depth: top.depth + 1})
		}
		if top.node.Left != nil {
			stack = append(stack, frame{node: top.node.Left, parent: top.node, depth: top.depth + 1})
		}
	}
	return placement[T]{}, false
}

// Contains reports whether n is reachable from the root.
func (t *Tree[T]) Contains(n *Node[T]) bool {
	_, ok := t.place(n)
	return ok
}

// AreCousins reports whether a and b sit at the same depth under different
// parents.
//
// Nodes are matched by identity. The result is false for an empty tree, for
// nil or unreachable nodes, and when a and b are the same node. Siblings are
// not cousins. The relation is symmetric.
func (t *Tree[T]) AreCousins(a, b *Node[T]) bool {
	if a == b {
		return false
	}

	pa, ok := t.place(a)
	if !ok {
		return false
	}
	pb, ok := t.place(b)
	if !ok {
		return false
	}
	return pa.depth == pb.depth && pa.parent != pb.parent
}

// LowestCommonAncestor returns the deepest node that is an ancestor of both
// a and b, where a node counts as its own ancestor.
//
// Description:
//
//	If one target is an ancestor of the other, that target is returned.
//	Both targets are located by identity before the search, so a target
//	that is missing from the tree is reported as ErrNodeNotInTree instead
//	of letting the other target float up as a false answer.
//
// Outputs:
//
//	*Node[T] - The ancestor. nil for an empty tree or on error.
//	error - ErrNodeNotInTree if a or b is nil or unreachable.
//
// Special Cases:
//   - LCA(a, a) = a
//   - LCA(parent, child) = parent
//   - empty tree: (nil, nil)
func (t *Tree[T]) LowestCommonAncestor(a, b *Node[T]) (*Node[T], error) {
	if t.IsEmpty() {
		return nil, nil
	}
	if !t.Contains(a) {
		return nil, fmt.Errorf("lowest common ancestor: first target: %w", ErrNodeNotInTree)
	}
	if !t.Contains(b) {
		return nil, fmt.Errorf("lowest common ancestor: second target: %w", ErrNodeNotInTree)
	}
	return commonAncestor(t.root, a, b), nil
}

// commonAncestor returns a or b if found under n, or n itself when one
// target lies in each subtree.
func commonAncestor[T Value](n, a, b *Node[T]) *Node[T] {
	if n == nil || n == a || n == b {
		return n
	}

	left := commonAncestor(n.Left, a, b)
	right := commonAncestor(n.Right, a, b)
	switch {
	case left != nil && right != nil:
		return n
	case left != nil:
		return left
	default:
		return right
	}
}
