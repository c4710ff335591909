// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package bintree provides an in-memory binary tree with structural queries.
//
// A Tree owns a graph of Nodes reachable from its root through Left and Right
// links. Values are numeric (any integer or floating point type) so the tree
// supports both ordering queries (NextLarger) and summing queries (MaxSum).
// Values carry no uniqueness constraint; duplicates are allowed.
//
// # Queries
//
//   - MinDepth / MaxDepth: node count on the shortest / longest root-to-leaf path
//   - MaxSum: maximum path sum, where a path may bend once at its top node
//   - NextLarger: smallest value strictly greater than a bound
//   - AreCousins: same depth, different parents
//   - LowestCommonAncestor: deepest node that is an ancestor of both targets
//
// # Node Identity
//
// AreCousins, LowestCommonAncestor and PathOf compare nodes by pointer
// identity, never by value, so two nodes holding the same value are still
// distinct. Callers obtain node references from the tree itself, either from
// the nodes they constructed, from Locate, or from Walk.
//
// # Encoding
//
// Serialize emits a pre-order JSON array with null for every absent child:
//
//	    1
//	   / \        ->  [1,2,null,null,3,null,null]
//	  2   3
//
// Grammar:
//
//	Tree := Node
//	Node := null | value Node Node
//
// Deserialize consumes the same sequence front to back and rejects anything
// that is not exactly one complete encoding with ErrMalformedInput. Tree also
// implements json.Marshaler and json.Unmarshaler with the same format, so it
// can be embedded directly in request and response bodies.
//
// # Empty Trees
//
// Queries on an empty tree return their zero result (0, absent, false) and
// never fail.
//
// # Thread Safety
//
// Tree has no internal synchronization. Concurrent reads of a tree that nobody
// mutates are safe; any mutation of nodes requires external locking around
// every access to the tree.
package bintree
