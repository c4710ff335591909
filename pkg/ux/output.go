// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package ux provides terminal output styling for the bintree CLI.
package ux

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette, deep ocean teals
var (
	ColorTealBright  = lipgloss.Color("#2CD7C7") // highlights, success
	ColorTealPrimary = lipgloss.Color("#20B9B4") // main brand color
	ColorTealDeep    = lipgloss.Color("#16858E") // borders
	ColorSlate       = lipgloss.Color("#2C4A54") // muted text

	ColorWarning = lipgloss.Color("#F4D03F")
	ColorError   = lipgloss.Color("#E74C3C")
)

// Styles provides pre-configured lipgloss styles
var Styles = struct {
	Title   lipgloss.Style
	Key     lipgloss.Style
	Value   lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Box     lipgloss.Style
}{
	Title:   lipgloss.NewStyle().Bold(true).Foreground(ColorTealBright),
	Key:     lipgloss.NewStyle().Foreground(ColorTealPrimary),
	Value:   lipgloss.NewStyle().Bold(true),
	Muted:   lipgloss.NewStyle().Foreground(ColorSlate),
	Success: lipgloss.NewStyle().Foreground(ColorTealBright),
	Warning: lipgloss.NewStyle().Foreground(ColorWarning),
	Error:   lipgloss.NewStyle().Foreground(ColorError),
	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorTealDeep).
		Padding(0, 1),
}

// Icon provides themed status icons
type Icon string

const (
	IconSuccess Icon = "✓"
	IconWarning Icon = "⚠"
	IconError   Icon = "✗"
	IconArrow   Icon = "→"
)

// Render returns the icon with appropriate styling
func (i Icon) Render() string {
	switch i {
	case IconSuccess:
		return Styles.Success.Render(string(i))
	case IconWarning:
		return Styles.Warning.Render(string(i))
	case IconError:
		return Styles.Error.Render(string(i))
	default:
		return string(i)
	}
}

// Field is one labelled value in a result.
type Field struct {
	Key   string
	Value any
}

// Printer writes command results in one Mode.
//
// Description:
//
//	In ModeText a result is a titled box of aligned key/value lines. In
//	ModeJSON the JSON payload passed to Result is written as-is and the
//	fields are ignored. ModeAuto must be resolved before use; an
//	unresolved Printer behaves as ModeText.
//
// Thread Safety:
//
//	Not safe for concurrent use.
type Printer struct {
	w    io.Writer
	mode Mode
}

// NewPrinter creates a printer writing to w.
func NewPrinter(w io.Writer, mode Mode) *Printer {
	return &Printer{w: w, mode: mode}
}

// Mode returns the printer's output mode.
func (p *Printer) Mode() Mode {
	return p.mode
}

// Result writes one command result.
//
// Inputs:
//
//	title - Heading for text output.
//	payload - Value written in JSON mode.
//	fields - Lines shown in text mode, in order.
func (p *Printer) Result(title string, payload any, fields ...Field) error {
	if p.mode == ModeJSON {
		return p.JSON(payload)
	}

	width := 0
	for _, f := range fields {
		width = max(width, len(f.Key))
	}

	lines := make([]string, 0, len(fields)+1)
	lines = append(lines, Styles.Title.Render(title))
	for _, f := range fields {
		key := Styles.Key.Render(f.Key + strings.Repeat(" ", width-len(f.Key)))
		lines = append(lines, fmt.Sprintf("%s  %s", key, Styles.Value.Render(formatValue(f.Value))))
	}

	_, err := fmt.Fprintln(p.w, Styles.Box.Render(strings.Join(lines, "\n")))
	return err
}

// JSON writes v as a single line of JSON.
func (p *Printer) JSON(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// Success prints a success message with checkmark. Silent in JSON mode.
func (p *Printer) Success(text string) {
	if p.mode == ModeJSON {
		return
	}
	fmt.Fprintf(p.w, "%s %s\n", IconSuccess.Render(), Styles.Success.Render(text))
}

// Error prints an error message.
func (p *Printer) Error(err error) {
	if p.mode == ModeJSON {
		_ = p.JSON(map[string]string{"error": err.Error()})
		return
	}
	fmt.Fprintf(p.w, "%s %s\n", IconError.Render(), Styles.Error.Render(err.Error()))
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return Styles.Muted.Render("none")
	case bool:
		if val {
			return "yes"
		}
		return "no"
	case float64:
		return fmt.Sprintf("%g", val)
	default:
		return fmt.Sprint(val)
	}
}
