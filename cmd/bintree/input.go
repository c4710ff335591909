// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AleutianAI/bintree/pkg/bintree"
	"github.com/AleutianAI/bintree/services/treequery"
)

// readTree decodes a <tree> argument.
//
// Inputs:
//
//	in - Source for "-".
//	arg - A JSON array literal, @path, or -.
//	limit - Maximum input size in bytes. 0 means unlimited.
func readTree(in io.Reader, arg string, limit int64) (*treequery.Tree, error) {
	text, err := readTreeText(in, arg, limit)
	if err != nil {
		return nil, err
	}

	tree, err := bintree.Deserialize[float64](strings.TrimSpace(text))
	if err != nil {
		return nil, fmt.Errorf("read tree: %w", err)
	}
	return tree, nil
}

func readTreeText(in io.Reader, arg string, limit int64) (string, error) {
	var (
		r    io.Reader
		name string
	)
	switch {
	case arg == "-":
		r, name = in, "stdin"
	case strings.HasPrefix(arg, "@"):
		f, err := os.Open(arg[1:])
		if err != nil {
			return "", fmt.Errorf("read tree: %w", err)
		}
		defer f.Close()
		r, name = f, arg[1:]
	default:
		if limit > 0 && int64(len(arg)) > limit {
			return "", fmt.Errorf("read tree: argument is %d bytes, limit %d", len(arg), limit)
		}
		return arg, nil
	}

	if limit > 0 {
		r = io.LimitReader(r, limit+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read tree from %s: %w", name, err)
	}
	if limit > 0 && int64(len(data)) > limit {
		return "", fmt.Errorf("read tree from %s: input exceeds %d bytes", name, limit)
	}
	return string(data), nil
}
