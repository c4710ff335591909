// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package config loads and validates the bintree YAML configuration.
package config

import (
	"time"

	"github.com/AleutianAI/bintree/services/treequery/telemetry"
)

// BintreeConfig is the full on-disk configuration.
type BintreeConfig struct {
	// Server: HTTP listener and request handling for `bintree serve`
	Server ServerConfig `yaml:"server"`

	// Limits: bounds on accepted trees and the tree cache
	Limits LimitsConfig `yaml:"limits"`

	// Logging: level and destinations
	Logging LoggingConfig `yaml:"logging"`

	// Telemetry: trace and metric exporters
	Telemetry telemetry.Config `yaml:"telemetry"`
}

type ServerConfig struct {
	// Address is the listen address, e.g. ":8080"
	Address string `yaml:"address" validate:"required"`

	// Mode is the gin mode: debug, release, or test
	Mode string `yaml:"mode" validate:"oneof=debug release test"`

	// RequestTimeout bounds each request's context
	RequestTimeout time.Duration `yaml:"request_timeout" validate:"gt=0"`

	// ShutdownGrace is how long in-flight requests get on shutdown
	ShutdownGrace time.Duration `yaml:"shutdown_grace" validate:"gt=0"`

	// RateLimit is the sustained requests per second; 0 disables limiting
	RateLimit float64 `yaml:"rate_limit" validate:"gte=0"`
	RateBurst int     `yaml:"rate_burst" validate:"gte=0,required_with=RateLimit"`
}

type LimitsConfig struct {
	MaxNodes       int           `yaml:"max_nodes" validate:"gt=0"`
	MaxBodyBytes   int64         `yaml:"max_body_bytes" validate:"gt=0"`
	MaxCachedTrees int           `yaml:"max_cached_trees" validate:"gt=0"`
	TreeTTL        time.Duration `yaml:"tree_ttl" validate:"gte=0"` // 0 keeps trees until evicted
}

type LoggingConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn warning error"`
	JSON   bool   `yaml:"json"`
	LogDir string `yaml:"log_dir,omitempty"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() BintreeConfig {
	return BintreeConfig{
		Server: ServerConfig{
			Address:        ":8080",
			Mode:           "release",
			RequestTimeout: 10 * time.Second,
			ShutdownGrace:  5 * time.Second,
			RateLimit:      50,
			RateBurst:      100,
		},
		Limits: LimitsConfig{
			MaxNodes:       100_000,
			MaxBodyBytes:   4 << 20,
			MaxCachedTrees: 64,
			TreeTTL:        30 * time.Minute,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Telemetry: telemetry.DefaultConfig(),
	}
}
