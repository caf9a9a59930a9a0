package app

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch runs an update pass now and again after every write to path, until
// the context is cancelled. Events are debounced so editors that write in
// several syscalls trigger one pass. The pass itself rewrites the file, which
// raises one more event; that pass finds the table already up to date and
// persists nothing, so the loop settles.
func (r *Runner) Watch(ctx context.Context, path string, debounce time.Duration) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory, not the file: editors replace files on save and
	// a watch on the old inode would go stale.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	if err := r.RunOnce(ctx); err != nil {
		r.Log.Error().Err(err).Msg("update pass failed")
	}

	base := filepath.Base(path)
	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(ev.Name) != base {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			pending = time.After(debounce)

		case <-pending:
			pending = nil
			if err := r.RunOnce(ctx); err != nil {
				r.Log.Error().Err(err).Msg("update pass failed")
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.Log.Error().Err(err).Msg("watcher error")
		}
	}
}
