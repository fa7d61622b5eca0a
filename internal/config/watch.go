// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long Watch waits for a burst of writes to settle.
const DefaultDebounce = 200 * time.Millisecond

// Reload is delivered by Watch after the config file changes.
// Exactly one of Config and Err is set.
type Reload struct {
	Config *Config
	Err    error
}

// Watch reloads the config file at path whenever it changes and sends the
// result on the returned channel. The parent directory is watched so that
// editors which replace the file on save are still seen.
// The channel is closed when ctx is cancelled.
func Watch(ctx context.Context, path string, debounce time.Duration) (<-chan Reload, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	out := make(chan Reload, 1)
	go watchLoop(ctx, w, abs, debounce, out)
	return out, nil
}

// watchLoop coalesces events for one file and reloads after the quiet period.
func watchLoop(ctx context.Context, w *fsnotify.Watcher, path string, debounce time.Duration, out chan<- Reload) {
	defer close(out)
	defer w.Close()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			cfg, err := LoadFromPath(path)
			r := Reload{Config: cfg, Err: err}
			if err != nil {
				r.Config = nil
			}
			select {
			case out <- r:
			case <-ctx.Done():
				return
			}

		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			select {
			case out <- Reload{Err: fmt.Errorf("watch %s: %w", path, err)}:
			case <-ctx.Done():
				return
			}
		}
	}
}
