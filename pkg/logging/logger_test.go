// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevel_String(t *testing.T) {
	assert.Equal(t, "DEBUG", LevelDebug.String())
	assert.Equal(t, "INFO", LevelInfo.String())
	assert.Equal(t, "WARN", LevelWarn.String())
	assert.Equal(t, "ERROR", LevelError.String())
	assert.Equal(t, "UNKNOWN", Level(99).String())
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{" warn ", LevelWarn, false},
		{"warning", LevelWarn, false},
		{"Error", LevelError, false},
		{"verbose", LevelInfo, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelWarn, Output: &buf})

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	out := buf.String()
	assert.NotContains(t, out, "debug message")
	assert.NotContains(t, out, "info message")
	assert.Contains(t, out, "warn message")
	assert.Contains(t, out, "error message")
}

func TestLogger_SetLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelWarn, Output: &buf})
	child := logger.With("component", "watcher")

	child.Info("before")
	logger.SetLevel(LevelDebug)
	child.Debug("after")

	out := buf.String()
	assert.NotContains(t, out, "before")
	assert.Contains(t, out, "after")
	assert.Contains(t, out, "component=watcher")
}

func TestLogger_JSONWithService(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{JSON: true, Service: "bintree-test", Output: &buf})

	logger.Info("tree stored", "size", 5)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "tree stored", entry["msg"])
	assert.Equal(t, "bintree-test", entry["service"])
	assert.EqualValues(t, 5, entry["size"])
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Output: &buf})

	logger.With("request_id", "abc").Info("handled")
	assert.Contains(t, buf.String(), "request_id=abc")

	buf.Reset()
	logger.Info("parent")
	assert.NotContains(t, buf.String(), "request_id", "parent is not modified")
}

func TestLogger_Quiet(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Quiet: true, Output: &buf})
	logger.Error("dropped")
	assert.Empty(t, buf.String())
}

func TestLogger_LogDir(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer
	logger := New(Config{LogDir: dir, Service: "svc", Output: &buf})

	logger.Info("to both", "k", "v")
	require.NoError(t, logger.Close())
	require.NoError(t, logger.Close(), "second close is a no-op")

	assert.Contains(t, buf.String(), "to both")

	matches, err := filepath.Glob(filepath.Join(dir, "svc_*.log"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	line := strings.TrimSpace(string(data))

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &entry), "file log is JSON")
	assert.Equal(t, "to both", entry["msg"])
	assert.Equal(t, "v", entry["k"])
}

func TestLogger_LogDirUnwritable(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))

	var buf bytes.Buffer
	logger := New(Config{LogDir: filepath.Join(blocker, "logs"), Output: &buf})
	logger.Info("still logs")

	assert.Contains(t, buf.String(), "still logs")
	assert.NoError(t, logger.Close())
}

func TestSetDefault(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	var buf bytes.Buffer
	SetDefault(New(Config{Output: &buf}))
	slog.Info("via default")
	assert.Contains(t, buf.String(), "via default")
}

func TestLogger_ConcurrentUse(t *testing.T) {
	var buf safeBuffer
	logger := New(Config{Output: &buf})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			logger.With("worker", i).Info("tick")
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 20, strings.Count(buf.String(), "tick"))
}

func TestMultiHandler(t *testing.T) {
	var debugBuf, errorBuf bytes.Buffer
	h := &multiHandler{handlers: []slog.Handler{
		slog.NewTextHandler(&debugBuf, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewTextHandler(&errorBuf, &slog.HandlerOptions{Level: slog.LevelError}),
	}}

	ctx := context.Background()
	assert.True(t, h.Enabled(ctx, slog.LevelDebug))

	logger := slog.New(h.WithAttrs([]slog.Attr{slog.String("k", "v")}))
	logger.Info("info only")
	logger.Error("both")

	assert.Contains(t, debugBuf.String(), "info only")
	assert.Contains(t, debugBuf.String(), "k=v")
	assert.NotContains(t, errorBuf.String(), "info only")
	assert.Contains(t, errorBuf.String(), "both")

	grouped := slog.New(h.WithGroup("g"))
	grouped.Error("grouped", "x", 1)
	assert.Contains(t, errorBuf.String(), "g.x=1")
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "logs"), expandPath("~/logs"))
	assert.Equal(t, "/var/log", expandPath("/var/log"))
	assert.Equal(t, "relative", expandPath("relative"))
}

// safeBuffer is a bytes.Buffer safe for concurrent writers.
type safeBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *safeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *safeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
