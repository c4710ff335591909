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
	"log/slog"
	"os"

	"github.com/AleutianAI/bintree/cmd/bintree/config"
	"github.com/AleutianAI/bintree/pkg/logging"
	"github.com/AleutianAI/bintree/pkg/ux"
	"github.com/AleutianAI/bintree/services/treequery"
	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "dev"

// app holds the state shared by every subcommand. Flags fill the first
// block; setup fills the rest before any RunE is called.
type app struct {
	configPath string
	logLevel   string
	output     string

	cfgPath string
	cfg     config.BintreeConfig
	logger  *logging.Logger
	printer *ux.Printer
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "bintree",
		Short: "Query and transform binary trees",
		Long: `bintree answers structural queries over binary trees: depths, best path
sum, bounded successor, cousin and lowest-common-ancestor tests, and the
pre-order encoding round trip.

A <tree> argument is a JSON array literal, @file to read it from a file,
or - to read it from stdin.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if a.logger != nil {
				return a.logger.Close()
			}
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default ~/.bintree/bintree.yaml)")
	flags.StringVar(&a.logLevel, "log-level", "", "override logging.level (debug, info, warn, error)")
	flags.StringVarP(&a.output, "output", "o", string(ux.ModeAuto), "output format: auto, text or json")

	root.AddCommand(
		newStatsCmd(a),
		newNextLargerCmd(a),
		newCousinsCmd(a),
		newLCACmd(a),
		newRoundtripCmd(a),
		newServeCmd(a),
		newConfigCmd(a),
		newVersionCmd(a),
	)
	return root
}

// setup loads the config and builds the logger and printer.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	path := a.configPath
	if path == "" {
		if p, err := config.DefaultPath(); err == nil {
			path = p
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return err
	}
	a.cfgPath = path
	a.cfg = cfg

	a.logger = logging.New(logging.Config{
		Level:   level,
		LogDir:  cfg.Logging.LogDir,
		Service: "bintree",
		JSON:    cfg.Logging.JSON,
		Output:  cmd.ErrOrStderr(),
	})
	logging.SetDefault(a.logger)

	mode, err := ux.ParseMode(a.output)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if f, ok := out.(*os.File); ok {
		mode = mode.Resolve(f)
	} else {
		mode = mode.Resolve(nil)
	}
	a.printer = ux.NewPrinter(out, mode)

	slog.Debug("Configuration loaded", "path", path, "output", string(mode))
	return nil
}

// applyReload adopts the parts of a reloaded config that can change while
// serving. Only the log level does; a --log-level flag pins it.
func (a *app) applyReload(cfg config.BintreeConfig) {
	if a.logLevel != "" {
		return
	}
	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return
	}
	a.logger.SetLevel(level)
	slog.Info("Log level updated", "level", level.String())
}

// service builds a query service bounded by the configured limits.
func (a *app) service() *treequery.Service {
	return treequery.NewService(treequery.ServiceConfig{
		MaxNodes:       a.cfg.Limits.MaxNodes,
		MaxCachedTrees: a.cfg.Limits.MaxCachedTrees,
		TreeTTL:        a.cfg.Limits.TreeTTL,
	})
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the bintree version",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return a.printer.Result("bintree", map[string]string{
				"version":         Version,
				"service_version": treequery.ServiceVersion,
			},
				ux.Field{Key: "version", Value: Version},
				ux.Field{Key: "service", Value: treequery.ServiceVersion},
			)
		},
	}
}

// displayPath renders a node path for text output.
func displayPath(path string) string {
	if path == "" {
		return "(root)"
	}
	return fmt.Sprintf("%q", path)
}
