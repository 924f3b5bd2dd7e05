package check

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// debounce is how long a file must stay quiet after a write before it is
// reported.
const debounce = 100 * time.Millisecond

// Watcher reports files that change under a set of paths.
type Watcher struct {
	logger  *zap.Logger
	watcher *fsnotify.Watcher
}

// NewWatcher starts watching paths. Directories are watched recursively
// as they exist now.
func NewWatcher(logger *zap.Logger, paths []string) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			fw.Close()
			return nil, fmt.Errorf("error accessing %s: %w", path, err)
		}
		if !info.IsDir() {
			if err := fw.Add(path); err != nil {
				fw.Close()
				return nil, fmt.Errorf("error watching %s: %w", path, err)
			}
			continue
		}
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return fw.Add(p)
			}
			return nil
		})
		if err != nil {
			fw.Close()
			return nil, fmt.Errorf("error adding directory to watcher: %w", err)
		}
	}

	return &Watcher{logger: logger, watcher: fw}, nil
}

// Run calls fn with the name of every file written or created, once it
// has been quiet for a short while. It returns nil when ctx is done.
func (w *Watcher) Run(ctx context.Context, fn func(path string)) error {
	pending := make(map[string]time.Time)
	ticker := time.NewTicker(debounce / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				pending[event.Name] = time.Now()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("Watch error", zap.Error(err))
		case now := <-ticker.C:
			for name, at := range pending {
				if now.Sub(at) < debounce {
					continue
				}
				delete(pending, name)
				if info, err := os.Stat(name); err == nil && !info.IsDir() {
					w.logger.Debug("File changed", zap.String("file", name))
					fn(name)
				}
			}
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

// Watch watches paths and calls fn for each changed file until ctx is
// done.
func Watch(ctx context.Context, logger *zap.Logger, paths []string, fn func(path string)) error {
	w, err := NewWatcher(logger, paths)
	if err != nil {
		return err
	}
	defer w.Close()
	return w.Run(ctx, fn)
}
