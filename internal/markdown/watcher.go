package markdown

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/mekongworks/sitekit/internal/logging"
	"github.com/mekongworks/sitekit/pkg/interfaces"
)

const reloadDebounce = 500 * time.Millisecond

// Watcher refreshes a Store when files under the content directory change.
// Events are debounced so a burst of writes triggers a single reload.
type Watcher struct {
	dir    string
	store  *Store
	logger interfaces.Logger
}

// NewWatcher constructs a watcher for the given content directory.
func NewWatcher(dir string, store *Store, logger interfaces.Logger) *Watcher {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Watcher{dir: dir, store: store, logger: logger}
}

// Run blocks until ctx is cancelled, reloading the store after filesystem
// changes settle. Watch failures are logged and end the loop; the store keeps
// serving its last snapshot.
func (w *Watcher) Run(ctx context.Context) error {
	notifier, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer notifier.Close()

	if err := addRecursive(notifier, w.dir); err != nil {
		return err
	}

	var timer *time.Timer
	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-notifier.Events:
			if !ok {
				return nil
			}
			if !relevant(event) {
				continue
			}
			// New directories need their own watch before files inside them
			// produce events.
			if event.Op.Has(fsnotify.Create) {
				if info, statErr := fs.Stat(watchFS(w.dir), relTo(w.dir, event.Name)); statErr == nil && info.IsDir() {
					_ = addRecursive(notifier, event.Name)
				}
			}
			if timer == nil {
				timer = time.NewTimer(reloadDebounce)
			} else {
				timer.Reset(reloadDebounce)
			}
			pending = timer.C
		case <-pending:
			pending = nil
			if err := w.store.Reload(ctx); err != nil {
				w.logger.Warn("markdown watcher: reload failed", "error", err)
				continue
			}
			w.logger.Debug("markdown watcher: content reloaded", "dir", w.dir)
		case watchErr, ok := <-notifier.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("markdown watcher: watch error", "error", watchErr)
		}
	}
}

func relevant(event fsnotify.Event) bool {
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) &&
		!event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
		return false
	}
	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".") {
		return false
	}
	return strings.HasSuffix(name, ".md") || filepath.Ext(name) == ""
}

func addRecursive(notifier *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return notifier.Add(path)
		}
		return nil
	})
}

func watchFS(dir string) fs.FS {
	return os.DirFS(dir)
}

func relTo(dir, name string) string {
	rel, err := filepath.Rel(dir, name)
	if err != nil {
		return name
	}
	return filepath.ToSlash(rel)
}
