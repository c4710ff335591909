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

import "testing"

// exampleTree builds:
//
//	    3
//	   / \
//	  9   20
//	     /  \
//	    15   7
func exampleTree(t *testing.T) (*Tree[int], map[int]*Node[int]) {
	t.Helper()
	n15, n7 := Leaf(15), Leaf(7)
	n20 := NewNode(20, n15, n7)
	n9 := Leaf(9)
	root := NewNode(3, n9, n20)
	return New(root), map[int]*Node[int]{3: root, 9: n9, 20: n20, 15: n15, 7: n7}
}

// perfectTree builds a perfect tree of height 3:
//
//	      1
//	    /   \
//	   2     3
//	  / \   / \
//	 4   5 6   7
func perfectTree(t *testing.T) (*Tree[int], map[int]*Node[int]) {
	t.Helper()
	nodes := make(map[int]*Node[int], 7)
	for v := 1; v <= 7; v++ {
		nodes[v] = Leaf(v)
	}
	nodes[1].Left, nodes[1].Right = nodes[2], nodes[3]
	nodes[2].Left, nodes[2].Right = nodes[4], nodes[5]
	nodes[3].Left, nodes[3].Right = nodes[6], nodes[7]
	return New(nodes[1]), nodes
}

// chain builds a degenerate tree of the given length, every node a left child.
func chain(length int) *Tree[int] {
	var root *Node[int]
	for v := length; v >= 1; v-- {
		root = NewNode(v, root, nil)
	}
	return New(root)
}
