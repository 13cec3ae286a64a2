package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/Dicklesworthstone/radius_viewer/pkg/logging"
	"github.com/Dicklesworthstone/radius_viewer/pkg/tokens"
)

// Watch calls onChange with the freshly loaded token set whenever the file
// at path is written, created or renamed into place, debounced by d (zero
// means DefaultDebounceDuration). A reload that fails is reported through
// onError and the previous set stays in effect. Watch blocks until ctx is
// done.
//
// The parent directory is watched rather than the file itself so that
// editors which replace the file atomically keep being noticed.
func Watch(ctx context.Context, path string, d time.Duration, onChange func(tokens.Set), onError func(error)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	reload := NewDebouncer(d, func() {
		set, err := tokens.Load(abs)
		if err != nil {
			logging.Logger().Warn("token reload failed", "path", abs, "err", err)
			if onError != nil {
				onError(err)
			}
			return
		}
		logging.Logger().Debug("token file reloaded", "path", abs,
			"spacing", set.Spacing.Len(), "radius", set.Radii.Len())
		onChange(set)
	})
	defer reload.Cancel()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				reload.Trigger()
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logging.Logger().Warn("watch error", "err", err)
			if onError != nil {
				onError(err)
			}
		}
	}
}
