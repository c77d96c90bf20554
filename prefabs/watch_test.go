package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatcherReportsSpecEdits(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer func() { require.NoError(t, w.Close()) }()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, BoxFile), []byte("mass: 2\n"), 0o644))

	select {
	case name := <-w.Events:
		require.Equal(t, BoxFile, name)
	case err := <-w.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for spec event")
	}
}

func TestWatcherMissingDir(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	_, ok := <-w.Events
	require.False(t, ok)
}

func TestIsSpecFile(t *testing.T) {
	require.True(t, isSpecFile("prefabs/box.yaml"))
	require.True(t, isSpecFile("LEVEL.YML"))
	require.True(t, isSpecFile("scripts/glide.tengo"))
	require.False(t, isSpecFile("notes.txt"))
	require.False(t, isSpecFile("box.yaml~"))
}
