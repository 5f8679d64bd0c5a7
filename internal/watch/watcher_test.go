package watch

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestWatcherSeesFileChange(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	schemaPath := filepath.Join(dir, "schema.json")
	otherPath := filepath.Join(dir, "unrelated.json")
	require.NoError(t, os.WriteFile(schemaPath, []byte("{}"), 0o600))
	require.NoError(t, os.WriteFile(otherPath, []byte("{}"), 0o600))

	w := New(discardLogger(), schemaPath)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := make(chan Event, 8)
	done := make(chan error, 1)
	go func() {
		done <- w.Watch(ctx, func(ev Event) { events <- ev })
	}()

	select {
	case <-w.Ready:
	case <-time.After(5 * time.Second):
		t.Fatal("watcher never became ready")
	}

	// A change to an unrelated file in the same directory is filtered out;
	// a change to the watched file is reported.
	require.NoError(t, os.WriteFile(otherPath, []byte(`{"x": 1}`), 0o600))
	require.NoError(t, os.WriteFile(schemaPath, []byte(`{"type": "string"}`), 0o600))

	select {
	case ev := <-events:
		abs, _ := filepath.Abs(schemaPath)
		assert.Equal(t, abs, ev.Path)
	case <-time.After(5 * time.Second):
		t.Fatal("no event for watched file")
	}

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
}

func TestWatcherDebouncesBursts(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	p := filepath.Join(dir, "data.json")
	require.NoError(t, os.WriteFile(p, []byte("{}"), 0o600))

	w := New(discardLogger(), p)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := make(chan Event, 64)
	go func() { _ = w.Watch(ctx, func(ev Event) { events <- ev }) }()
	<-w.Ready

	for i := range 5 {
		require.NoError(t, os.WriteFile(p, []byte{byte('0' + i)}, 0o600))
		time.Sleep(5 * time.Millisecond)
	}

	// The burst collapses into far fewer callbacks than writes.
	time.Sleep(500 * time.Millisecond)
	assert.Less(t, len(events), 5)
	assert.NotEmpty(t, events)
}

func TestWatcherCreationFailure(t *testing.T) {
	t.Parallel()

	w := New(discardLogger(), "whatever.json")
	wantErr := errors.New("inotify exhausted")
	w.newWatcher = func() (*fsnotify.Watcher, error) { return nil, wantErr }

	err := w.Watch(context.Background(), func(Event) {})
	require.ErrorIs(t, err, wantErr)
}
