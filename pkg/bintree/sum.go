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

// MaxSum returns the maximum sum of values along any path in the tree, or 0
// for an empty tree.
//
// Description:
//
//	A path is any sequence of nodes connected by parent-child links that
//	visits each node at most once. It may start and end anywhere, so it
//	rises from one node to a single top node and then descends. The top
//	node can join its left and right branches, but a branch handed up to a
//	parent can only continue along one side.
//
//	For a non-empty tree whose values are all negative the result is the
//	least negative single value, not 0. Only the empty tree returns 0.
//
// Algorithm:
//
//	Post-order recursion with the running best threaded as an explicit
//	accumulator. At each node:
//	  leftGain  = max(0, gain(left))
//	  rightGain = max(0, gain(right))
//	  best      = max(best, value + leftGain + rightGain)
//	  gain      = value + max(leftGain, rightGain)
//
//	Time:  O(n)
//	Space: O(h) recursion depth
func (t *Tree[T]) MaxSum() T {
	if t.IsEmpty() {
		return 0
	}

	// Any path through the root is at least the root value, so seeding with
	// it matches a negative-infinity start without needing one per type.
	best := t.root.Value
	branchGain(t.root, &best)
	return best
}

// branchGain returns the best sum of a downward path starting at n and
// raises *best when a path bending at n beats it.
func branchGain[T Value](n *Node[T], best *T) T {
	if n == nil {
		return 0
	}

	leftGain := max(0, branchGain(n.Left, best))
	rightGain := max(0, branchGain(n.Right, best))

	if through := n.Value + leftGain + rightGain; through > *best {
		*best = through
	}
	return n.Value + max(leftGain, rightGain)
}
