package theme

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_ReportsChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "live.css")
	require.NoError(t, os.WriteFile(path, []byte(".toast { color: red; }"), 0644))

	th, err := Resolve("live", dir)
	require.NoError(t, err)

	w := NewWatcher(th, nil)
	w.SetPollInterval(10 * time.Millisecond)

	changes := make(chan string, 4)
	w.SetChangeCallback(func(css string) { changes <- css })

	w.Start(context.Background())
	defer w.Stop()
	assert.True(t, w.IsRunning())

	require.NoError(t, os.WriteFile(path, []byte(".toast { color: green; }"), 0644))
	future := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(path, future, future))

	select {
	case css := <-changes:
		assert.Contains(t, css, "green")
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for theme change")
	}
}

func TestWatcher_IgnoresBundledTheme(t *testing.T) {
	th, err := Resolve("default", "")
	require.NoError(t, err)

	w := NewWatcher(th, nil)
	w.Start(context.Background())
	assert.False(t, w.IsRunning())
	w.Stop()
}

func TestWatcher_StopsWithContext(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "x.css"), []byte(""), 0644))
	th, err := Resolve("x", dir)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	w := NewWatcher(th, nil)
	w.SetPollInterval(10 * time.Millisecond)
	w.Start(ctx)
	cancel()

	// Stop must not block after the loop exited on its own.
	done := make(chan struct{})
	go func() {
		w.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop blocked")
	}
}
