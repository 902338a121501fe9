package walker

import (
	"context"
	"io/fs"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceInterval coalesces editor save bursts into a single re-run.
const debounceInterval = 300 * time.Millisecond

// Watch re-invokes trigger whenever anything under root changes, until ctx
// is cancelled. Excluded directories are not watched. The first trigger only
// fires on a change, not on start.
func (w *Walker) Watch(ctx context.Context, root string, trigger func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := w.addWatchRecursive(watcher, root); err != nil {
		return err
	}

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// New directories need their own watch.
			if ev.Has(fsnotify.Create) {
				_ = w.addWatchRecursive(watcher, ev.Name)
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounceInterval, trigger)
		case <-watcher.Errors:
			// Watch errors are transient; keep going.
		}
	}
}

func (w *Walker) addWatchRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if slices.Contains(w.excludes, d.Name()) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}
