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

import "golang.org/x/exp/constraints"

// Value is the set of types a tree can hold. Values must be both ordered
// (NextLarger) and summable (MaxSum).
type Value interface {
	constraints.Integer | constraints.Float
}

// Node is a single tree node. A nil child pointer means the child is absent.
type Node[T Value] struct {
	Value T
	Left  *Node[T]
	Right *Node[T]
}

// NewNode creates a node with the given value and children.
//
// Example:
//
//	root := bintree.NewNode(1,
//	    bintree.NewNode(2, nil, nil),
//	    bintree.NewNode(3, nil, nil),
//	)
func NewNode[T Value](value T, left, right *Node[T]) *Node[T] {
	return &Node[T]{Value: value, Left: left, Right: right}
}

// Leaf creates a node with no children.
func Leaf[T Value](value T) *Node[T] {
	return &Node[T]{Value: value}
}

// IsLeaf reports whether the node has neither a left nor a right child.
func (n *Node[T]) IsLeaf() bool {
	return n.Left == nil && n.Right == nil
}
