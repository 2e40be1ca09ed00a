package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitChange(t *testing.T, w *Watcher) string {
	t.Helper()
	select {
	case name := <-w.Changes():
		return name
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change notification")
	}
	return ""
}

func TestReportsWrites(t *testing.T) {
	dir := t.TempDir()
	vertex := filepath.Join(dir, "vertex.glsl")
	fragment := filepath.Join(dir, "fragment.glsl")
	require.NoError(t, os.WriteFile(vertex, []byte("a"), 0644))
	require.NoError(t, os.WriteFile(fragment, []byte("b"), 0644))

	w, err := New(vertex, fragment)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(fragment, []byte("bb"), 0644))
	assert.Equal(t, fragment, waitChange(t, w))
}

func TestIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	vertex := filepath.Join(dir, "vertex.glsl")
	require.NoError(t, os.WriteFile(vertex, []byte("a"), 0644))

	w, err := New(vertex)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0644))
	time.Sleep(200 * time.Millisecond)
	_, ok := w.Poll()
	assert.False(t, ok)
}

func TestCoalescesBursts(t *testing.T) {
	dir := t.TempDir()
	vertex := filepath.Join(dir, "vertex.glsl")
	require.NoError(t, os.WriteFile(vertex, []byte("a"), 0644))

	w, err := New(vertex)
	require.NoError(t, err)
	defer w.Close()

	for i := 0; i < 10; i++ {
		require.NoError(t, os.WriteFile(vertex, []byte{byte('a' + i)}, 0644))
	}
	waitChange(t, w)
	time.Sleep(200 * time.Millisecond)
	// At most one more notification can be pending after draining one.
	w.Poll()
	_, ok := w.Poll()
	assert.False(t, ok)
}

func TestNewErrors(t *testing.T) {
	_, err := New()
	assert.Error(t, err)

	_, err = New(filepath.Join(t.TempDir(), "missing-dir", "vertex.glsl"))
	assert.Error(t, err)
}
