package services

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestFileWatchServiceSignalsManagedFile(t *testing.T) {
	dir := t.TempDir()
	managed := filepath.Join(dir, "A", "strings.xml")
	writeFile(t, managed, "<resources/>")

	w := NewFileWatchService(t.Logf)
	started, err := w.Start([]string{managed})
	require.NoError(t, err)
	require.True(t, started)
	t.Cleanup(w.Stop)

	ch := w.NextEvent()
	require.NotNil(t, ch)
	assert.Nil(t, w.NextEvent(), "second NextEvent must not hand out the channel while waiting")

	writeFile(t, managed, `<resources><string name="a">A</string></resources>`)

	select {
	case path := <-ch:
		abs, _ := filepath.Abs(managed)
		assert.Equal(t, abs, path)
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for file change")
	}

	w.ResetWaiting()
	assert.NotNil(t, w.NextEvent())
}

func TestFileWatchServiceIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	managed := filepath.Join(dir, "strings.xml")
	writeFile(t, managed, "<resources/>")

	w := NewFileWatchService(nil)
	w.files = map[string]struct{}{managed: {}}
	w.lastSignal = map[string]time.Time{}

	now := time.Now()
	assert.False(t, w.shouldSignal(filepath.Join(dir, "other.xml"), now))
	assert.True(t, w.shouldSignal(managed, now))
	assert.False(t, w.shouldSignal(managed, now.Add(FileWatchDebounce/2)), "debounced")
	assert.True(t, w.shouldSignal(managed, now.Add(2*FileWatchDebounce)))
}

func TestFileWatchServiceSuppress(t *testing.T) {
	managed := filepath.Join(t.TempDir(), "strings.xml")

	w := NewFileWatchService(nil)
	w.files = map[string]struct{}{managed: {}}
	w.lastSignal = map[string]time.Time{}

	w.Suppress(time.Minute)
	assert.False(t, w.shouldSignal(managed, time.Now()))
	assert.True(t, w.Watches(managed))
}

func TestFileWatchServiceNothingToWatch(t *testing.T) {
	w := NewFileWatchService(nil)

	started, err := w.Start(nil)
	require.NoError(t, err)
	assert.False(t, started)

	started, err = w.Start([]string{filepath.Join(t.TempDir(), "missing", "strings.xml")})
	require.NoError(t, err)
	assert.False(t, started)
	assert.Nil(t, w.NextEvent())
	w.Stop()
}
