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
	"github.com/AleutianAI/bintree/cmd/bintree/config"
	"github.com/AleutianAI/bintree/pkg/ux"
	"github.com/spf13/cobra"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the bintree configuration file",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init [path]",
		Short: "Write the default configuration (default ~/.bintree/bintree.yaml)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			path := a.configPath
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				p, err := config.DefaultPath()
				if err != nil {
					return err
				}
				path = p
			}

			if err := config.Create(path, config.DefaultConfig()); err != nil {
				return err
			}
			a.printer.Success("Wrote default configuration to " + path)
			return a.printer.Result("Config", map[string]string{"path": path},
				ux.Field{Key: "path", Value: path})
		},
	})
	return cmd
}
