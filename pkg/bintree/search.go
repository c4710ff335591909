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

// NextLarger returns the smallest value strictly greater than lowerBound.
//
// The tree has no ordering invariant to prune with, so every node is
// compared. ok is false when no value exceeds lowerBound, including for an
// empty tree.
//
// Example:
//
//	if v, ok := tree.NextLarger(9); ok {
//	    fmt.Println("next after 9:", v)
//	}
func (t *Tree[T]) NextLarger(lowerBound T) (value T, ok bool) {
	t.Walk(func(n *Node[T], _ int) bool {
		if n.Value > lowerBound && (!ok || n.Value < value) {
			value, ok = n.Value, true
		}
		return true
	})
	return value, ok
}
