package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ReloadDelay is how long the file must stay quiet before it is reloaded.
const ReloadDelay = 100 * time.Millisecond

// Watch reloads the file at path once it has been quiet for ReloadDelay
// after a write and sends the new Params on the returned channel. Only the
// latest unread Params is kept. Empty files and files that fail to load
// are logged and skipped, so the last good Params stay in effect. The
// channel is closed once ctx is done.
func Watch(ctx context.Context, path string) (<-chan Params, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	// Editors often replace the file, so watch its directory.
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}

	name := filepath.Clean(path)
	out := make(chan Params, 1)
	go func() {
		defer close(out)
		defer w.Close()
		timer := time.NewTimer(ReloadDelay)
		timer.Stop()
		defer timer.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != name || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				// A save is often a truncate followed by writes.
				timer.Reset(ReloadDelay)
			case <-timer.C:
				if p, ok := reload(path); ok {
					publish(out, p)
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				slog.Warn("config watcher", "err", err)
			}
		}
	}()
	return out, nil
}

// reload loads path and reports whether it yielded valid Params.
func reload(path string) (Params, bool) {
	fi, err := os.Stat(path)
	if err != nil {
		slog.Warn("config reload skipped", "err", err)
		return Params{}, false
	}
	if fi.Size() == 0 {
		slog.Debug("config reload skipped: empty file", "path", path)
		return Params{}, false
	}
	cfg, err := Load(path)
	if err != nil {
		slog.Warn("config reload skipped", "err", err)
		return Params{}, false
	}
	return cfg.Params, true
}

// publish replaces any unread value in out with p. out must have a buffer
// of one and a single sender.
func publish(out chan Params, p Params) {
	select {
	case out <- p:
		return
	default:
	}
	select {
	case <-out:
	default:
	}
	out <- p
}
