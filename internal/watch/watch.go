// Package watch re-runs conversions when source documents change.
package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Handler receives the paths of changed documents after debouncing.
type Handler func(paths []string)

// Watcher watches a directory tree and reports document changes in
// debounced batches, so editors that write several times in a row
// trigger one reconversion.
type Watcher struct {
	dir      string
	debounce time.Duration
	exts     map[string]bool
	handler  Handler
	log      *zap.Logger

	fs *fsnotify.Watcher
}

// New creates a watcher over dir and its subdirectories. Extensions are
// matched case insensitively; an empty list matches every file.
func New(dir string, debounce time.Duration, extensions []string, handler Handler, log *zap.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}

	exts := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		exts[strings.ToLower(ext)] = true
	}

	w := &Watcher{
		dir:      dir,
		debounce: debounce,
		exts:     exts,
		handler:  handler,
		log:      log,
		fs:       fsw,
	}
	if err := w.addRecursive(dir); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// Run dispatches change batches until the context is canceled.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fs.Close()

	w.log.Info("watching for document changes",
		zap.String("dir", w.dir),
		zap.Duration("debounce", w.debounce))

	pending := make(map[string]bool)
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			// Directories created later join the watch list so documents
			// added to them are seen too.
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addRecursive(event.Name); err != nil {
						w.log.Warn("failed to watch new directory",
							zap.String("dir", event.Name), zap.Error(err))
					}
					continue
				}
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			if !w.matches(event.Name) {
				continue
			}

			pending[event.Name] = true
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", zap.Error(err))

		case <-fire:
			fire = nil
			paths := make([]string, 0, len(pending))
			for path := range pending {
				paths = append(paths, path)
			}
			sort.Strings(paths)
			pending = make(map[string]bool)

			w.log.Debug("documents changed", zap.Strings("paths", paths))
			w.handler(paths)
		}
	}
}

func (w *Watcher) matches(path string) bool {
	if len(w.exts) == 0 {
		return true
	}
	return w.exts[strings.ToLower(filepath.Ext(path))]
}

func (w *Watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.fs.Add(path)
		}
		return nil
	})
}
