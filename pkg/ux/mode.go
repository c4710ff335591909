// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package ux

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// Mode selects how command results are written.
type Mode string

const (
	// ModeAuto picks ModeText on a terminal and ModeJSON otherwise.
	ModeAuto Mode = "auto"

	// ModeText renders styled, human readable output.
	ModeText Mode = "text"

	// ModeJSON writes one JSON document per result, for scripting.
	ModeJSON Mode = "json"
)

// ParseMode converts a flag value to a Mode. Matching is case-insensitive.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeAuto, "":
		return ModeAuto, nil
	case ModeText:
		return ModeText, nil
	case ModeJSON:
		return ModeJSON, nil
	default:
		return "", fmt.Errorf("unknown output mode %q (want auto, text or json)", s)
	}
}

// Resolve turns ModeAuto into a concrete mode for the given file.
func (m Mode) Resolve(f *os.File) Mode {
	if m != ModeAuto {
		return m
	}
	if f != nil && IsTerminal(f) {
		return ModeText
	}
	return ModeJSON
}

// IsTerminal reports whether f is an interactive terminal, including
// Cygwin and MSYS pseudo terminals.
func IsTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
