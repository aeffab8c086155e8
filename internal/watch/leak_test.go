//go:build leaktests
// +build leaktests

package watch

import (
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/sinocarta/hanzi-extract/internal/config"
)

// TestWatcherStopLeavesNoGoroutines verifies that Stop tears down the
// fsnotify event loop started by Start, along with any pending debounce timer.
func TestWatcherStopLeavesNoGoroutines(t *testing.T) {
	defer goleak.VerifyNone(t)

	root := t.TempDir()
	cfg := config.Default()

	w, err := New(root, cfg, func(path string) {})
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("failed to start watcher: %v", err)
	}
	if err := w.Stop(); err != nil {
		t.Fatalf("failed to stop watcher: %v", err)
	}

	time.Sleep(100 * time.Millisecond)
}
