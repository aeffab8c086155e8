// Package watch implements the supplemented watch mode: it re-runs the
// extraction pipeline on individual files as they change, debounced the
// way the teacher's FileWatcher/eventDebouncer pair does for its own
// incremental re-index, adapted here to a single-file reprocess callback
// instead of an incremental index update.
package watch

import (
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/sinocarta/hanzi-extract/internal/config"
)

// OnChange is invoked once per debounce window for every file that changed,
// in no particular order — the orchestrator's per-file pipeline is
// idempotent (L2) so re-running it on an unrelated batch order is safe.
type OnChange func(path string)

// Watcher recursively watches root for changes to files the configured
// FileType list covers, outside IgnoreDir, debouncing bursts of events
// (editors routinely emit several writes per save) before invoking OnChange.
type Watcher struct {
	root   string
	cfg    *config.Config
	onFile OnChange

	fsw       *fsnotify.Watcher
	debouncer *debouncer

	cancel func()
	wg     sync.WaitGroup
}

// New creates a Watcher for root, ready to Start.
func New(root string, cfg *config.Config, onFile OnChange) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{root: root, cfg: cfg, onFile: onFile, fsw: fsw}
	w.debouncer = newDebouncer(time.Duration(cfg.WatchDebounceMs)*time.Millisecond, w.flush)
	return w, nil
}

// Start adds watches for root and every non-ignored subdirectory, then
// begins processing fsnotify events in a background goroutine. Cancel via
// Stop.
func (w *Watcher) Start() error {
	if err := w.addWatches(w.root); err != nil {
		return err
	}

	done := make(chan struct{})
	w.cancel = func() { close(done) }

	w.wg.Add(1)
	go w.loop(done)
	return nil
}

// Stop halts event processing, stops any pending debounce timer, and closes
// the underlying fsnotify watcher.
func (w *Watcher) Stop() error {
	if w.cancel != nil {
		w.cancel()
	}
	w.debouncer.mu.Lock()
	if w.debouncer.timer != nil {
		w.debouncer.timer.Stop()
	}
	w.debouncer.mu.Unlock()
	err := w.fsw.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) addWatches(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() {
			return nil
		}
		rel, _ := filepath.Rel(root, path)
		if rel != "." && isIgnoredDir(filepath.ToSlash(rel), w.cfg.IgnoreDir) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			log.Printf("watch: failed to add %s: %v", path, err)
		}
		return nil
	})
}

func (w *Watcher) loop(done <-chan struct{}) {
	defer w.wg.Done()
	for {
		select {
		case <-done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Printf("watch: fsnotify error: %v", err)
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	info, err := os.Stat(ev.Name)
	if err != nil {
		return
	}
	if info.IsDir() {
		if ev.Op&fsnotify.Create != 0 {
			if addErr := w.fsw.Add(ev.Name); addErr != nil {
				log.Printf("watch: failed to add new directory %s: %v", ev.Name, addErr)
			}
		}
		return
	}
	if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return
	}
	if !w.cfg.HasFileType(filepath.Ext(ev.Name)) {
		return
	}
	w.debouncer.add(ev.Name)
}

func (w *Watcher) flush(paths []string) {
	for _, p := range paths {
		w.onFile(p)
	}
}

func isIgnoredDir(rel string, patterns []string) bool {
	base := filepath.Base(rel)
	for _, p := range patterns {
		if base == p || rel == p {
			return true
		}
	}
	return false
}

// debouncer collapses bursts of path events within window into one flush
// call carrying the distinct path set.
type debouncer struct {
	window time.Duration
	flush  func(paths []string)

	mu      sync.Mutex
	pending map[string]struct{}
	timer   *time.Timer
}

func newDebouncer(window time.Duration, flush func(paths []string)) *debouncer {
	return &debouncer{window: window, flush: flush, pending: make(map[string]struct{})}
}

func (d *debouncer) add(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending[path] = struct{}{}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.runFlush)
}

func (d *debouncer) runFlush() {
	d.mu.Lock()
	paths := make([]string, 0, len(d.pending))
	for p := range d.pending {
		paths = append(paths, p)
	}
	d.pending = make(map[string]struct{})
	d.mu.Unlock()

	if len(paths) > 0 {
		d.flush(paths)
	}
}
