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

func TestNextLarger(t *testing.T) {
	example, _ := exampleTree(t)

	tests := []struct {
		name   string
		bound  int
		want   int
		wantOK bool
	}{
		{"below all", 0, 3, true},
		{"between", 9, 15, true},
		{"equal to value is excluded", 15, 20, true},
		{"just below max", 19, 20, true},
		{"at max", 20, 0, false},
		{"above max", 100, 0, false},
		{"negative bound", -50, 3, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := example.NextLarger(tt.bound)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestNextLarger_Empty(t *testing.T) {
	for _, bound := range []int{-1, 0, 1} {
		_, ok := New[int](nil).NextLarger(bound)
		assert.False(t, ok)
	}
}

func TestNextLarger_SingleNode(t *testing.T) {
	tree := New(Leaf(42))

	got, ok := tree.NextLarger(41)
	assert.True(t, ok)
	assert.Equal(t, 42, got)

	_, ok = tree.NextLarger(42)
	assert.False(t, ok)
}

func TestNextLarger_Duplicates(t *testing.T) {
	tree := New(NewNode(5, Leaf(5), NewNode(8, Leaf(5), Leaf(6))))
	got, ok := tree.NextLarger(5)
	assert.True(t, ok)
	assert.Equal(t, 6, got)
}
