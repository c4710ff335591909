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

import (
	"fmt"
	"strings"
)

// Path steps. A path is a string of steps from the root; "" is the root
// itself and "LR" is the right child of the root's left child.
const (
	StepLeft  = 'L'
	StepRight = 'R'
)

// Locate resolves a path from the root to a node.
//
// Returns ErrInvalidPath when the path holds a step other than 'L' or 'R',
// and ErrNodeNotInTree when a step leads to an absent child.
func (t *Tree[T]) Locate(path string) (*Node[T], error) {
	node := t.Root()
	if node == nil {
		return nil, fmt.Errorf("locate %q: tree is empty: %w", path, ErrNodeNotInTree)
	}

	for i, step := range path {
		switch step {
		case StepLeft:
			node = node.Left
		case StepRight:
			node = node.Right
		default:
			return nil, fmt.Errorf("locate %q: step %d is %q: %w", path, i, step, ErrInvalidPath)
		}
		if node == nil {
			return nil, fmt.Errorf("locate %q: no node after step %d: %w", path, i, ErrNodeNotInTree)
		}
	}
	return node, nil
}

// PathOf returns the path from the root to n. It is the inverse of Locate.
func (t *Tree[T]) PathOf(n *Node[T]) (string, error) {
	if t.IsEmpty() || n == nil {
		return "", ErrNodeNotInTree
	}

	type frame struct {
		node *Node[T]
		path string
	}
	stack := []frame{{node: t.root}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if top.node == n {
			return top.path, nil
		}
		if top.node.Right != nil {
			stack = append(stack, frame{node: top.node.Right, path: top.path + string(StepRight)})
		}
		if top.node.Left != nil {
			stack = append(stack, frame{node: top.node.Left, path: top.path + string(StepLeft)})
		}
	}
	return "", ErrNodeNotInTree
}

// ValidPath reports whether path is made only of 'L' and 'R' steps.
func ValidPath(path string) bool {
	return strings.Trim(path, string(StepLeft)+string(StepRight)) == ""
}
