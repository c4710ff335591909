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

import "errors"

// Sentinel errors for tree operations.
var (
	// ErrMalformedInput is returned when a serialized tree is not a valid
	// pre-order encoding: not a JSON array, empty, truncated, carrying
	// trailing tokens, or holding a token that is not a value of the
	// tree's type.
	ErrMalformedInput = errors.New("malformed tree encoding")

	// ErrNodeNotInTree is returned when a node reference or path does not
	// resolve to a node reachable from the root.
	ErrNodeNotInTree = errors.New("node not in tree")

	// ErrInvalidPath is returned when a path contains a step other than
	// 'L' or 'R'.
	ErrInvalidPath = errors.New("invalid node path")

	// ErrUnencodableValue is returned when a node value has no JSON form,
	// such as NaN or an infinity.
	ErrUnencodableValue = errors.New("value cannot be encoded")
)
