// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package treequery

import "errors"

// Sentinel errors for the query service.
var (
	// ErrTreeNotFound indicates no cached tree has the requested ID, or the
	// tree expired.
	ErrTreeNotFound = errors.New("tree not found")

	// ErrTreeTooLarge indicates the tree exceeds the configured node limit.
	ErrTreeTooLarge = errors.New("tree exceeds node limit")

	// ErrInvalidRequest indicates a request body failed validation.
	ErrInvalidRequest = errors.New("invalid request")
)
