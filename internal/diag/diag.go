// Package diag provides gated diagnostic logging for the extraction pipeline.
// Output is silent by default; callers opt in with SetOutput or the DEBUG
// environment variable so a normal run produces no noise on stdout/stderr.
package diag

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// EnableDebug can be overridden at build time:
// go build -ldflags "-X github.com/sinocarta/hanzi-extract/internal/diag.EnableDebug=true"
var EnableDebug = "false"

var (
	mu     sync.Mutex
	output io.Writer
)

// SetOutput sets the writer diagnostic messages are sent to; a non-nil
// writer turns logging on. Pass nil to clear it (the default), which leaves
// logging to EnableDebug or DEBUG, writing to stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

func writer() io.Writer {
	mu.Lock()
	defer mu.Unlock()
	return output
}

// Enabled reports whether diagnostic logging is currently active: an output
// writer is set, EnableDebug is "true", or DEBUG is "1" or "true".
func Enabled() bool {
	if writer() != nil || EnableDebug == "true" {
		return true
	}
	v := os.Getenv("DEBUG")
	return v == "1" || v == "true"
}

// Log writes a component-tagged diagnostic line, e.g. Log("rewrite", "injecting import for %s", path).
func Log(component, format string, args ...interface{}) {
	if !Enabled() {
		return
	}
	w := writer()
	if w == nil {
		w = os.Stderr
	}
	fmt.Fprintf(w, "[%s] "+format+"\n", append([]interface{}{component}, args...)...)
}
