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

	"github.com/AleutianAI/bintree/pkg/bintree"
	"github.com/AleutianAI/bintree/pkg/ux"
	"github.com/AleutianAI/bintree/services/treequery"
	"github.com/spf13/cobra"
)

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats <tree>",
		Short: "Print size, min and max depth, and the best path sum",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := a.readTree(cmd, args[0])
			if err != nil {
				return err
			}
			report, err := a.service().Analyze(cmd.Context(), tree)
			if err != nil {
				return err
			}
			return a.printer.Result("Tree stats", report,
				ux.Field{Key: "size", Value: report.Size},
				ux.Field{Key: "min depth", Value: report.MinDepth},
				ux.Field{Key: "max depth", Value: report.MaxDepth},
				ux.Field{Key: "max path sum", Value: report.MaxSum},
			)
		},
	}
}

func newNextLargerCmd(a *app) *cobra.Command {
	var bound float64

	cmd := &cobra.Command{
		Use:   "next-larger <tree> --bound N",
		Short: "Print the smallest value strictly greater than a bound",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := a.readTree(cmd, args[0])
			if err != nil {
				return err
			}
			value, found, err := a.service().NextLarger(cmd.Context(), tree, bound)
			if err != nil {
				return err
			}

			resp := treequery.NextLargerResponse{Found: found}
			var shown any
			if found {
				resp.Value = &value
				shown = value
			}
			return a.printer.Result("Next larger", resp,
				ux.Field{Key: "bound", Value: bound},
				ux.Field{Key: "value", Value: shown},
			)
		},
	}
	cmd.Flags().Float64Var(&bound, "bound", 0, "exclusive lower bound")
	_ = cmd.MarkFlagRequired("bound")
	return cmd
}

func newCousinsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "cousins <tree> <pathA> <pathB>",
		Short: "Report whether two nodes are cousins",
		Long: `Report whether two nodes are cousins: same depth, different parents.

A path that leads off the tree names no node, and a missing node has no
cousins.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := a.readTree(cmd, args[0])
			if err != nil {
				return err
			}
			cousins, err := a.service().Cousins(cmd.Context(), tree, args[1], args[2])
			if err != nil {
				return err
			}
			return a.printer.Result("Cousins", treequery.CousinsResponse{Cousins: cousins},
				ux.Field{Key: "a", Value: displayPath(args[1])},
				ux.Field{Key: "b", Value: displayPath(args[2])},
				ux.Field{Key: "cousins", Value: cousins},
			)
		},
	}
}

func newLCACmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lca <tree> <pathA> <pathB>",
		Short: "Print the lowest common ancestor of two nodes",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := a.readTree(cmd, args[0])
			if err != nil {
				return err
			}
			result, err := a.service().LCA(cmd.Context(), tree, args[1], args[2])
			if err != nil {
				return err
			}
			return a.printer.Result("Lowest common ancestor", result,
				ux.Field{Key: "path", Value: displayPath(result.Path)},
				ux.Field{Key: "value", Value: result.Value},
			)
		},
	}
}

// roundtripResult is the JSON output of `bintree roundtrip`.
type roundtripResult struct {
	Encoded string `json:"encoded"`
	Size    int    `json:"size"`
}

func newRoundtripCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "roundtrip <tree>",
		Short: "Decode a tree and print its canonical encoding",
		Long: `Decode a tree and print its canonical encoding.

Malformed input (not an array, an exhausted sequence, trailing tokens,
or a non-numeric value) exits non-zero.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := a.readTree(cmd, args[0])
			if err != nil {
				return err
			}
			encoded, err := bintree.Serialize(tree)
			if err != nil {
				return err
			}

			decoded, err := bintree.Deserialize[float64](encoded)
			if err != nil {
				return fmt.Errorf("re-decode canonical encoding: %w", err)
			}
			if !bintree.Equal(tree, decoded) {
				return fmt.Errorf("canonical encoding %s does not decode to the same tree", encoded)
			}

			return a.printer.Result("Round trip", roundtripResult{Encoded: encoded, Size: tree.Size()},
				ux.Field{Key: "encoded", Value: encoded},
				ux.Field{Key: "size", Value: tree.Size()},
			)
		},
	}
}

func (a *app) readTree(cmd *cobra.Command, arg string) (*treequery.Tree, error) {
	return readTree(cmd.InOrStdin(), arg, a.cfg.Limits.MaxBodyBytes)
}
