// Package watch delivers external edits of a composer value stored in a
// file. The TUI feeds each delivered value to Composer.SetValue.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/composer/internal/core/ports/driven"
	"github.com/custodia-labs/composer/internal/logger"
)

// Ensure FileWatcher implements the interface.
var _ driven.ValueWatcher = (*FileWatcher)(nil)

// FileWatcher watches one file. The parent directory is watched so
// editors that save by renaming a temporary file are still seen.
type FileWatcher struct {
	path string

	mu      sync.Mutex
	last    string
	watcher *fsnotify.Watcher
	done    chan struct{}
	closed  bool
}

// NewFileWatcher creates a watcher for path. The file need not exist yet.
func NewFileWatcher(path string) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}
	w := &FileWatcher{path: abs}
	if data, err := os.ReadFile(abs); err == nil {
		w.last = string(data)
	}
	return w, nil
}

// Path returns the watched file.
func (w *FileWatcher) Path() string {
	return w.path
}

// Current returns the last value read or written.
func (w *FileWatcher) Current() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.last
}

// Watch starts watching. Values equal to the last one read or written
// are not delivered again.
func (w *FileWatcher) Watch(ctx context.Context) (<-chan string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil, errors.New("watcher closed")
	}
	if w.watcher != nil {
		return nil, errors.New("already watching")
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		fw.Close()
		return nil, fmt.Errorf("creating %s: %w", dir, err)
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}
	w.watcher = fw
	w.done = make(chan struct{})

	values := make(chan string)
	go w.loop(ctx, fw, w.done, values)
	return values, nil
}

func (w *FileWatcher) loop(ctx context.Context, fw *fsnotify.Watcher, done <-chan struct{}, values chan<- string) {
	defer close(values)
	for {
		select {
		case <-ctx.Done():
			return
		case <-done:
			return
		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			value, changed := w.handleEvent(event)
			if !changed {
				continue
			}
			select {
			case values <- value:
			case <-ctx.Done():
				return
			case <-done:
				return
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			logger.Warn("watching %s: %v", w.path, err)
		}
	}
}

// handleEvent reads the file after a create or write of it and reports
// whether its content differs from the last known value.
func (w *FileWatcher) handleEvent(event fsnotify.Event) (string, bool) {
	if filepath.Clean(event.Name) != w.path {
		return "", false
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return "", false
	}
	data, err := os.ReadFile(w.path)
	if err != nil {
		logger.Debug("reading %s after %s: %v", w.path, event.Op, err)
		return "", false
	}
	value := string(data)

	w.mu.Lock()
	defer w.mu.Unlock()
	if value == w.last {
		return "", false
	}
	w.last = value
	return value, true
}

// Write stores value in the file. The write is not delivered back.
func (w *FileWatcher) Write(value string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if value == w.last {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(w.path), 0700); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	if err := os.WriteFile(w.path, []byte(value), 0600); err != nil {
		return fmt.Errorf("writing %s: %w", w.path, err)
	}
	w.last = value
	return nil
}

// Close stops watching and closes the value channel.
func (w *FileWatcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	if w.watcher == nil {
		return nil
	}
	close(w.done)
	err := w.watcher.Close()
	w.watcher = nil
	return err
}
