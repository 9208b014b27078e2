// Copyright (c) 2026 Keymaster Team
// Contactbook - minimal contact list
// This source code is licensed under the MIT license found in the LICENSE file.

package live

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/toeirei/contactbook/internal/logging"
)

// Refresher reloads state after an external change.
type Refresher interface {
	Refresh(ctx context.Context) error
}

const (
	debounceTick  = 100 * time.Millisecond
	debounceQuiet = 250 * time.Millisecond
)

// FileWatcher watches an SQLite database file (and its -wal/-journal
// companions) and calls Refresh once writes settle. It lets a running TUI
// pick up changes made by another contactbook process.
type FileWatcher struct {
	mu        sync.Mutex
	watcher   *fsnotify.Watcher
	target    Refresher
	dir       string
	names     map[string]struct{}
	quiet     time.Duration
	lastEvent time.Time
	pending   bool
	stopCh    chan struct{}
	doneCh    chan struct{}
	running   bool
}

// NewFileWatcher creates a watcher for the database file at path.
func NewFileWatcher(path string, target Refresher) (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		_ = w.Close()
		return nil, err
	}
	return &FileWatcher{
		watcher: w,
		target:  target,
		dir:     filepath.Dir(abs),
		names: map[string]struct{}{
			abs:              {},
			abs + "-wal":     {},
			abs + "-journal": {},
		},
		quiet:  debounceQuiet,
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}, nil
}

// Start begins watching. It does not block.
func (fw *FileWatcher) Start(ctx context.Context) error {
	fw.mu.Lock()
	if fw.running {
		fw.mu.Unlock()
		return nil
	}
	fw.running = true
	fw.mu.Unlock()

	// The directory is watched rather than the file so that replacements
	// (rename over the file) are still seen.
	if err := fw.watcher.Add(fw.dir); err != nil {
		fw.mu.Lock()
		fw.running = false
		fw.mu.Unlock()
		return err
	}
	logging.Debugf("live: watching %s", fw.dir)

	go fw.run(ctx)
	return nil
}

// Stop stops the watcher and waits for its goroutine. It is safe to call
// more than once, and after ctx passed to Start was cancelled.
func (fw *FileWatcher) Stop() {
	fw.mu.Lock()
	wasRunning := fw.running
	fw.running = false
	fw.mu.Unlock()

	if wasRunning {
		select {
		case <-fw.stopCh:
		default:
			close(fw.stopCh)
		}
		<-fw.doneCh
	}
	if err := fw.watcher.Close(); err != nil {
		logging.Warnf("live: closing watcher: %v", err)
	}
}

func (fw *FileWatcher) run(ctx context.Context) {
	defer close(fw.doneCh)

	ticker := time.NewTicker(debounceTick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-fw.stopCh:
			return
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			fw.handleEvent(event)
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			logging.Warnf("live: watcher error: %v", err)
		case <-ticker.C:
			fw.flush(ctx)
		}
	}
}

func (fw *FileWatcher) handleEvent(event fsnotify.Event) {
	if _, ok := fw.names[filepath.Clean(event.Name)]; !ok {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return
	}
	logging.Debugf("live: %s %s", event.Op, event.Name)
	fw.mu.Lock()
	fw.pending = true
	fw.lastEvent = time.Now()
	fw.mu.Unlock()
}

func (fw *FileWatcher) flush(ctx context.Context) {
	fw.mu.Lock()
	if !fw.pending || time.Since(fw.lastEvent) < fw.quiet {
		fw.mu.Unlock()
		return
	}
	fw.pending = false
	fw.mu.Unlock()

	if err := fw.target.Refresh(ctx); err != nil {
		logging.Warnf("live: refresh after external change: %v", err)
	}
}
