// Package watcher provides fsnotify-based watching of a compilation
// job's source files for watch mode.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/texforge/texforge/pkg/logger"
)

// Source file extensions that trigger a recompile. Generated artifacts
// land in the same directory for template jobs, so everything else is
// ignored to keep recompiles from feeding themselves.
var watchedExtensions = map[string]bool{
	".tex": true,
	".bib": true,
	".sty": true,
	".cls": true,
	".png": true,
	".jpg": true,
	".eps": true,
}

// SourceWatcher watches the directories a compilation job reads from
// and reports changed files after a settling delay.
type SourceWatcher struct {
	watcher  *fsnotify.Watcher
	logger   logger.Logger
	dirs     []string
	settling time.Duration
}

// New creates a watcher over the given directories. Duplicates are
// tolerated (a template job's source dir and output dir coincide).
func New(log logger.Logger, dirs []string, settling time.Duration) (*SourceWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	if settling <= 0 {
		settling = 100 * time.Millisecond
	}

	seen := make(map[string]bool)
	unique := make([]string, 0, len(dirs))
	for _, d := range dirs {
		if d == "" || seen[d] {
			continue
		}
		seen[d] = true
		unique = append(unique, d)
	}

	return &SourceWatcher{
		watcher:  fsw,
		logger:   log,
		dirs:     unique,
		settling: settling,
	}, nil
}

// Close stops the watcher
func (w *SourceWatcher) Close() error {
	return w.watcher.Close()
}

// Watch blocks, invoking the callback with the batch of changed files
// each time events settle. Returns when the context is canceled or
// the watcher is closed.
func (w *SourceWatcher) Watch(ctx context.Context, callback func(changed []string)) error {
	for _, dir := range w.dirs {
		if err := w.watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		if w.logger != nil {
			w.logger.Debug("Watching directory", logger.WithField("dir", dir))
		}
	}

	pending := make(map[string]struct{})
	timer := time.NewTimer(w.settling)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			pending[event.Name] = struct{}{}
			timer.Reset(w.settling)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			if w.logger != nil {
				w.logger.Warn("Watcher error", logger.WithField("error", err))
			}

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			changed := make([]string, 0, len(pending))
			for name := range pending {
				changed = append(changed, name)
			}
			sort.Strings(changed)
			pending = make(map[string]struct{})
			callback(changed)
		}
	}
}

func (w *SourceWatcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return false
	}
	ext := strings.ToLower(filepath.Ext(event.Name))
	return watchedExtensions[ext]
}
