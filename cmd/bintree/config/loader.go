// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// ErrConfigExists is returned by Create when the target file is present.
var ErrConfigExists = errors.New("config file already exists")

var validate = validator.New()

// DefaultPath returns ~/.bintree/bintree.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find the user's home directory: %w", err)
	}
	return filepath.Join(home, ".bintree", "bintree.yaml"), nil
}

// Load reads the config at path over the defaults, applies environment
// overrides, and validates the result.
//
// A missing file is not an error: the defaults are used. Fields absent from
// the file keep their default values.
//
// Environment overrides:
//   - BINTREE_ADDRESS: server.address
//   - BINTREE_LOG_LEVEL: logging.level
func Load(path string) (BintreeConfig, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// defaults
	case err != nil:
		return cfg, fmt.Errorf("failed to read the config file %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse the config file %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks cfg against its struct constraints.
func Validate(cfg BintreeConfig) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Create writes cfg to path, creating parent directories. It refuses to
// overwrite an existing file.
func Create(path string, cfg BintreeConfig) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: %s", ErrConfigExists, path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create the config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal the config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

func applyEnv(cfg *BintreeConfig) {
	if v := os.Getenv("BINTREE_ADDRESS"); v != "" {
		cfg.Server.Address = v
	}
	if v := os.Getenv("BINTREE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}
