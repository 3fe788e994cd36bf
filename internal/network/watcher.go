// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package network

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce coalesces the burst of events editors produce on save.
const reloadDebounce = 500 * time.Millisecond

// Watch reloads the registry whenever the networks file is created, written,
// removed or renamed. The parent directory is watched because editors often
// replace the file instead of writing it in place. Watch returns once the
// watcher is running; it stops when ctx is canceled.
func (r *Registry) Watch(ctx context.Context, path string, log *slog.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch networks directory: %w", err)
	}

	target := filepath.Clean(path)

	go func() {
		defer func() { _ = watcher.Close() }()

		var reloadTimer *time.Timer
		defer func() {
			if reloadTimer != nil {
				reloadTimer.Stop()
			}
		}()

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}

				if reloadTimer != nil {
					reloadTimer.Stop()
				}
				reloadTimer = time.AfterFunc(reloadDebounce, func() {
					if err := r.Reload(path); err != nil {
						log.Warn("networks reload failed, keeping previous list", "path", path, "error", err)
						return
					}
					log.Info("networks reloaded", "path", path)
				})

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Warn("networks watcher error", "error", err)
			}
		}
	}()

	return nil
}
