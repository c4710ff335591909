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

// MinDepth returns the number of nodes on the shortest root-to-leaf path,
// or 0 for an empty tree.
//
// Description:
//
//	Breadth-first search over (node, depth) pairs. Every node at depth d is
//	dequeued before any node at depth d+1, so the first leaf dequeued lies
//	on a shortest path and the search stops there.
//
// Algorithm:
//
//	Time:  O(n) worst case, stops at the first leaf
//	Space: O(w) where w is the widest level visited
func (t *Tree[T]) MinDepth() int {
	if t.IsEmpty() {
		return 0
	}

	queue := []depthEntry[T]{{node: t.root, depth: 1}}
	for head := 0; head < len(queue); head++ {
		entry := queue[head]
		if entry.node.IsLeaf() {
			return entry.depth
		}
		if entry.node.Left != nil {
			queue = append(queue, depthEntry[T]{node: entry.node.Left, depth: entry.depth + 1})
		}
		if entry.node.Right != nil {
			queue = append(queue, depthEntry[T]{node: entry.node.Right, depth: entry.depth + 1})
		}
	}

	// Unreachable for an acyclic tree: every finite tree has a leaf.
	return 0
}

// MaxDepth returns the number of nodes on the longest root-to-leaf path,
// or 0 for an empty tree.
//
// Every node is visited, so traversal order does not matter; Walk's
// depth-first order keeps the work list small.
func (t *Tree[T]) MaxDepth() int {
	deepest := 0
	t.Walk(func(_ *Node[T], depth int) bool {
		deepest = max(deepest, depth)
		return true
	})
	return deepest
}
