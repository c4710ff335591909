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
	"bytes"
	"encoding/json"
	"fmt"
)

// nullToken marks an absent child in the encoding.
var nullToken = []byte("null")

// Serialize encodes the tree as a pre-order JSON array with null for every
// absent child. An empty tree encodes as [null].
//
// Returns ErrUnencodableValue if a value has no JSON form (NaN, ±Inf).
func Serialize[T Value](t *Tree[T]) (string, error) {
	data, err := t.MarshalJSON()
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Deserialize decodes a pre-order JSON array produced by Serialize.
//
// Description:
//
//	Tokens are read front to back through a cursor: a null token yields
//	no node, any other token becomes a node whose left and then right
//	subtree are decoded from the tokens that follow. The input must hold
//	exactly one complete encoding.
//
// Outputs:
//
//	*Tree[T] - The decoded tree. nil on error, never a partial tree.
//	error - ErrMalformedInput when the input is not a JSON array, is
//	        empty, ends early, has trailing tokens, or holds a token that
//	        does not decode as T.
//
// Example:
//
//	tree, err := bintree.Deserialize[int]("[1,2,null,null,3,null,null]")
//	if err != nil {
//	    return fmt.Errorf("load tree: %w", err)
//	}
func Deserialize[T Value](text string) (*Tree[T], error) {
	var t Tree[T]
	if err := t.UnmarshalJSON([]byte(text)); err != nil {
		return nil, err
	}
	return &t, nil
}

// MarshalJSON implements json.Marshaler using the pre-order encoding.
func (t *Tree[T]) MarshalJSON() ([]byte, error) {
	tokens := appendPreOrder(make([]*T, 0, 16), t.Root())
	data, err := json.Marshal(tokens)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnencodableValue, err)
	}
	return data, nil
}

// UnmarshalJSON implements json.Unmarshaler using the pre-order encoding.
// On error the receiver is left unchanged.
func (t *Tree[T]) UnmarshalJSON(data []byte) error {
	var tokens []json.RawMessage
	if err := json.Unmarshal(data, &tokens); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedInput, err)
	}
	if len(tokens) == 0 {
		return fmt.Errorf("%w: empty token sequence", ErrMalformedInput)
	}

	c := cursor[T]{tokens: tokens}
	root, err := c.node()
	if err != nil {
		return err
	}
	if remaining := len(tokens) - c.pos; remaining > 0 {
		return fmt.Errorf("%w: %d trailing tokens after position %d", ErrMalformedInput, remaining, c.pos)
	}

	t.root = root
	return nil
}

// appendPreOrder appends the encoding of n to tokens. A nil entry encodes
// as null.
func appendPreOrder[T Value](tokens []*T, n *Node[T]) []*T {
	if n == nil {
		return append(tokens, nil)
	}
	tokens = append(tokens, &n.Value)
	tokens = appendPreOrder(tokens, n.Left)
	return appendPreOrder(tokens, n.Right)
}

// cursor walks an immutable token slice. pos is the next token to read.
type cursor[T Value] struct {
	tokens []json.RawMessage
	pos    int
}

// node decodes one Node production starting at pos.
func (c *cursor[T]) node() (*Node[T], error) {
	if c.pos >= len(c.tokens) {
		return nil, fmt.Errorf("%w: sequence ended after %d tokens", ErrMalformedInput, c.pos)
	}

	at := c.pos
	token := bytes.TrimSpace(c.tokens[at])
	c.pos++
	if bytes.Equal(token, nullToken) {
		return nil, nil
	}

	var value T
	if err := json.Unmarshal(token, &value); err != nil {
		return nil, fmt.Errorf("%w: token %d (%s): %w", ErrMalformedInput, at, token, err)
	}

	n := &Node[T]{Value: value}
	var err error
	if n.Left, err = c.node(); err != nil {
		return nil, err
	}
	if n.Right, err = c.node(); err != nil {
		return nil, err
	}
	return n, nil
}
