package watch

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sinocarta/hanzi-extract/internal/config"
)

func TestWatcherInvokesOnChangeForModifiedFile(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "src", "msg.ts")
	require.NoError(t, os.MkdirAll(filepath.Dir(target), 0o755))
	require.NoError(t, os.WriteFile(target, []byte(`const msg = "hi";`+"\n"), 0o644))

	cfg := config.Default()
	cfg.WatchDebounceMs = 20

	var mu sync.Mutex
	var seen []string
	w, err := New(root, cfg, func(path string) {
		mu.Lock()
		seen = append(seen, path)
		mu.Unlock()
	})
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Stop()

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(target, []byte(`const msg = "提交";`+"\n"), 0o644))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) == 1 && seen[0] == target
	}, 2*time.Second, 10*time.Millisecond)
}

func TestWatcherIgnoresUnmatchedExtensions(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "notes.txt")
	require.NoError(t, os.WriteFile(target, []byte("hello"), 0o644))

	cfg := config.Default()
	cfg.WatchDebounceMs = 20

	var mu sync.Mutex
	var seen []string
	w, err := New(root, cfg, func(path string) {
		mu.Lock()
		seen = append(seen, path)
		mu.Unlock()
	})
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Stop()

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(target, []byte("hello again"), 0o644))

	time.Sleep(200 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.Empty(t, seen)
}

func TestIsIgnoredDirMatchesBaseOrFullRelative(t *testing.T) {
	assert.True(t, isIgnoredDir("node_modules", []string{"node_modules"}))
	assert.True(t, isIgnoredDir("src/node_modules", []string{"node_modules"}))
	assert.False(t, isIgnoredDir("src/app", []string{"node_modules"}))
}
