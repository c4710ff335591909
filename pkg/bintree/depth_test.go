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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDepth(t *testing.T) {
	example, _ := exampleTree(t)
	perfect, _ := perfectTree(t)

	// 1 -> right 2 -> left 3: the only leaf is at depth 3.
	zigzag := New(NewNode(1, nil, NewNode(2, Leaf(3), nil)))

	// Shallow leaf on the right, deep branch on the left.
	lopsided := New(NewNode(1, NewNode(2, NewNode(3, Leaf(4), nil), nil), Leaf(5)))

	tests := []struct {
		name    string
		tree    *Tree[int]
		wantMin int
		wantMax int
	}{
		{"empty", New[int](nil), 0, 0},
		{"single node", New(Leaf(7)), 1, 1},
		{"example", example, 2, 3},
		{"perfect", perfect, 3, 3},
		{"zigzag", zigzag, 3, 3},
		{"lopsided", lopsided, 2, 4},
		{"chain", chain(500), 500, 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMin, tt.tree.MinDepth(), "MinDepth")
			assert.Equal(t, tt.wantMax, tt.tree.MaxDepth(), "MaxDepth")
			assert.LessOrEqual(t, tt.tree.MinDepth(), tt.tree.MaxDepth())
		})
	}
}

// A node with one child is not a leaf, so MinDepth must follow the child.
func TestMinDepth_SingleChildIsNotLeaf(t *testing.T) {
	tree := New(NewNode(1, Leaf(2), nil))
	assert.Equal(t, 2, tree.MinDepth())
}
