package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFileWatcher_ReadsExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draft.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0600))

	w, err := NewFileWatcher(path)

	require.NoError(t, err)
	assert.Equal(t, path, w.Path())
	assert.Equal(t, "hello", w.Current())
}

func TestFileWatcher_HandleEvent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "draft.txt")
	other := filepath.Join(dir, "other.txt")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0600))
	require.NoError(t, os.WriteFile(other, []byte("x"), 0600))

	w, err := NewFileWatcher(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte("v2"), 0600))

	tests := []struct {
		name    string
		event   fsnotify.Event
		want    string
		changed bool
	}{
		{"other file", fsnotify.Event{Name: other, Op: fsnotify.Write}, "", false},
		{"chmod only", fsnotify.Event{Name: path, Op: fsnotify.Chmod}, "", false},
		{"write", fsnotify.Event{Name: path, Op: fsnotify.Write | fsnotify.Chmod}, "v2", true},
		{"same content again", fsnotify.Event{Name: path, Op: fsnotify.Create}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, changed := w.handleEvent(tt.event)
			assert.Equal(t, tt.changed, changed)
			assert.Equal(t, tt.want, value)
		})
	}
}

func TestFileWatcher_HandleEvent_Removed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draft.txt")
	w, err := NewFileWatcher(path)
	require.NoError(t, err)

	_, changed := w.handleEvent(fsnotify.Event{Name: path, Op: fsnotify.Write})

	assert.False(t, changed)
}

func TestFileWatcher_Write_NotEchoed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "draft.txt")
	w, err := NewFileWatcher(path)
	require.NoError(t, err)

	require.NoError(t, w.Write("mine"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "mine", string(data))

	_, changed := w.handleEvent(fsnotify.Event{Name: path, Op: fsnotify.Write})
	assert.False(t, changed)
}

func TestFileWatcher_Watch_DeliversExternalEdits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draft.txt")
	w, err := NewFileWatcher(path)
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	values, err := w.Watch(ctx)
	require.NoError(t, err)

	go func() {
		time.Sleep(50 * time.Millisecond)
		_ = os.WriteFile(path, []byte("external"), 0600)
	}()

	select {
	case value := <-values:
		assert.Equal(t, "external", value)
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for file change")
	}
}

func TestFileWatcher_Watch_Twice(t *testing.T) {
	w, err := NewFileWatcher(filepath.Join(t.TempDir(), "draft.txt"))
	require.NoError(t, err)
	defer w.Close()

	_, err = w.Watch(context.Background())
	require.NoError(t, err)

	_, err = w.Watch(context.Background())
	assert.Error(t, err)
}

func TestFileWatcher_Close_ClosesChannel(t *testing.T) {
	w, err := NewFileWatcher(filepath.Join(t.TempDir(), "draft.txt"))
	require.NoError(t, err)

	values, err := w.Watch(context.Background())
	require.NoError(t, err)
	require.NoError(t, w.Close())

	select {
	case _, ok := <-values:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed")
	}

	_, err = w.Watch(context.Background())
	assert.Error(t, err)
}

func TestFileWatcher_Loop_StopsWhenClosedWithoutReader(t *testing.T) {
	w, err := NewFileWatcher(filepath.Join(t.TempDir(), "draft.txt"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(w.Path(), []byte("pending"), 0600))

	fw := &fsnotify.Watcher{Events: make(chan fsnotify.Event), Errors: make(chan error)}
	done := make(chan struct{})
	values := make(chan string)
	exited := make(chan struct{})
	go func() {
		w.loop(context.Background(), fw, done, values)
		close(exited)
	}()

	fw.Events <- fsnotify.Event{Name: w.Path(), Op: fsnotify.Write}
	close(done)

	select {
	case <-exited:
	case <-time.After(2 * time.Second):
		t.Fatal("loop blocked on an unread value")
	}
	_, ok := <-values
	assert.False(t, ok)
}
