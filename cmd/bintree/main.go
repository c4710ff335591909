// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Command bintree queries binary trees from the command line and serves the
// same queries over HTTP.
//
// Trees are written in pre-order with null marking every absent child:
//
//	bintree stats '[3,9,null,null,20,15,null,null,7,null,null]'
//	bintree next-larger @tree.json --bound 9
//	bintree lca - RL RR < tree.json
//	bintree serve --config ~/.bintree/bintree.yaml
//
// Nodes are named by paths of 'L' and 'R' steps from the root; "" is the
// root itself.
package main

import (
	"os"

	"github.com/AleutianAI/bintree/pkg/ux"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		ux.NewPrinter(os.Stderr, ux.ModeText).Error(err)
		os.Exit(1)
	}
}
