// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package logging provides structured logging for bintree commands and services.
//
// Logger wraps the standard library slog package with the destinations a
// bintree process needs:
//
//   - stderr (default), text or JSON
//   - an optional JSON log file named {service}_{date}.log under LogDir
//
// # Basic Usage
//
//	logger := logging.New(logging.Config{Level: logging.LevelDebug, Service: "bintree"})
//	defer logger.Close()
//	logger.Info("tree stored", "tree_id", id, "size", size)
//
// # Process-Wide Default
//
// Handlers and services log through slog directly, the way the rest of the
// codebase does. SetDefault installs a Logger as the slog default so those
// calls reach the configured destinations.
//
// # Thread Safety
//
// Logger is safe for concurrent use.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// =============================================================================
// Log Levels
// =============================================================================

// Level represents log severity. Debug < Info < Warn < Error.
type Level int

const (
	// LevelDebug is for development troubleshooting.
	LevelDebug Level = iota

	// LevelInfo is for normal operational messages.
	LevelInfo

	// LevelWarn is for unexpected but recoverable situations.
	LevelWarn

	// LevelError is for failed operations.
	LevelError
)

// String returns "DEBUG", "INFO", "WARN", "ERROR", or "UNKNOWN".
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a level name (case-insensitive) to a Level.
//
// Accepts "debug", "info", "warn", "warning" and "error". Returns an error
// for anything else so misspelled config values are not silently ignored.
func ParseLevel(name string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q", name)
	}
}

func (l Level) toSlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// =============================================================================
// Configuration
// =============================================================================

// Config configures a Logger. The zero value logs Info and above to stderr
// as text.
type Config struct {
	// Level sets the minimum level. Default: LevelInfo.
	Level Level

	// LogDir enables JSON file logging to {LogDir}/{Service}_{YYYY-MM-DD}.log.
	// A leading ~ expands to the home directory. Default: "" (disabled).
	LogDir string

	// Service is attached to every entry as the "service" attribute.
	Service string

	// JSON switches the console output to JSON. File output is always JSON.
	JSON bool

	// Quiet disables console output.
	Quiet bool

	// Output overrides the console writer. Default: os.Stderr.
	Output io.Writer
}

// =============================================================================
// Logger
// =============================================================================

// Logger is a structured logger with console and optional file output.
//
// Always Close a Logger configured with LogDir so the file is synced.
type Logger struct {
	slog  *slog.Logger
	level *slog.LevelVar
	file  *os.File
	mu    sync.Mutex
}

// New creates a Logger from config.
//
// If the log directory cannot be created or the file cannot be opened the
// logger falls back to console output only; logging setup never fails a
// command.
func New(config Config) *Logger {
	level := new(slog.LevelVar)
	level.Set(config.Level.toSlogLevel())
	opts := &slog.HandlerOptions{Level: level}
	logger := &Logger{level: level}

	var handlers []slog.Handler
	if !config.Quiet {
		out := config.Output
		if out == nil {
			out = os.Stderr
		}
		if config.JSON {
			handlers = append(handlers, slog.NewJSONHandler(out, opts))
		} else {
			handlers = append(handlers, slog.NewTextHandler(out, opts))
		}
	}

	if config.LogDir != "" {
		if file, err := openLogFile(expandPath(config.LogDir), config.Service); err == nil {
			logger.file = file
			handlers = append(handlers, slog.NewJSONHandler(file, opts))
		}
	}

	var handler slog.Handler
	switch len(handlers) {
	case 0:
		handler = slog.NewTextHandler(io.Discard, opts)
	case 1:
		handler = handlers[0]
	default:
		handler = &multiHandler{handlers: handlers}
	}

	if config.Service != "" {
		handler = handler.WithAttrs([]slog.Attr{slog.String("service", config.Service)})
	}

	logger.slog = slog.New(handler)
	return logger
}

// Default returns an Info-level stderr logger for the "bintree" service.
func Default() *Logger {
	return New(Config{Level: LevelInfo, Service: "bintree"})
}

// SetDefault installs l as the process-wide slog default.
func SetDefault(l *Logger) {
	slog.SetDefault(l.slog)
}

// Debug logs at Debug level with key-value attributes.
func (l *Logger) Debug(msg string, args ...any) { l.slog.Debug(msg, args...) }

// Info logs at Info level with key-value attributes.
func (l *Logger) Info(msg string, args ...any) { l.slog.Info(msg, args...) }

// Warn logs at Warn level with key-value attributes.
func (l *Logger) Warn(msg string, args ...any) { l.slog.Warn(msg, args...) }

// Error logs at Error level with key-value attributes.
func (l *Logger) Error(msg string, args ...any) { l.slog.Error(msg, args...) }

// With returns a child logger that adds args to every entry. The child
// shares the parent's file; only the parent should be closed.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{slog: l.slog.With(args...), level: l.level, file: l.file}
}

// SetLevel changes the minimum level at runtime. The change applies to the
// logger and every child created by With.
func (l *Logger) SetLevel(level Level) {
	l.level.Set(level.toSlogLevel())
}

// Slog returns the underlying slog.Logger.
func (l *Logger) Slog() *slog.Logger {
	return l.slog
}

// Close syncs and closes the log file, if any. Safe to call more than once.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}
	syncErr := l.file.Sync()
	closeErr := l.file.Close()
	l.file = nil

	if syncErr != nil {
		return fmt.Errorf("sync log file: %w", syncErr)
	}
	if closeErr != nil {
		return fmt.Errorf("close log file: %w", closeErr)
	}
	return nil
}

// =============================================================================
// Helpers
// =============================================================================

func openLogFile(dir, service string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, err
	}
	if service == "" {
		service = "bintree"
	}
	name := fmt.Sprintf("%s_%s.log", service, time.Now().Format("2006-01-02"))
	return os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0640)
}

// expandPath expands a leading ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
