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
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long Watcher waits after the last change before
// reloading.
const DefaultDebounce = 100 * time.Millisecond

// Watcher reloads the config file when it changes on disk.
//
// Description:
//
//	The parent directory is watched rather than the file, so editors that
//	save by renaming a temp file over the original are still seen. Bursts
//	of events are debounced into one reload. A reload that fails to parse
//	or validate is logged and skipped; the last good config stays active.
//
// Thread Safety:
//
//	onChange runs on the Run goroutine.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	onChange func(BintreeConfig)
	debounce time.Duration
}

// NewWatcher watches path and calls onChange with each reloaded config.
// The parent directory must exist.
func NewWatcher(path string, onChange func(BintreeConfig)) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create config watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{
		path:     abs,
		watcher:  watcher,
		onChange: onChange,
		debounce: DefaultDebounce,
	}, nil
}

// Close releases the watcher without running it.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

// Run processes events until ctx is done, then closes the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	var timer *time.Timer
	var timerC <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path || !event.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				timer.Reset(w.debounce)
			}

		case <-timerC:
			timer, timerC = nil, nil
			w.reload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Config watcher error", "path", w.path, "error", err)
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		slog.Warn("Config reload failed, keeping previous config", "path", w.path, "error", err)
		return
	}
	slog.Info("Config reloaded", "path", w.path)
	if w.onChange != nil {
		w.onChange(cfg)
	}
}
