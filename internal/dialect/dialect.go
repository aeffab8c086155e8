// Package dialect implements the Dialect Dispatcher (C2): it routes a file's
// path and contents to the extractor for its syntax, returning that
// extractor's flat span list unsorted.
package dialect

import (
	"path/filepath"

	"github.com/sinocarta/hanzi-extract/internal/extract/component"
	"github.com/sinocarta/hanzi-extract/internal/extract/htmldoc"
	"github.com/sinocarta/hanzi-extract/internal/extract/script"
	"github.com/sinocarta/hanzi-extract/internal/span"
	"github.com/sinocarta/hanzi-extract/internal/tsgrammar"
)

// Kind identifies which extractor a file was routed to.
type Kind int

const (
	KindTypedScript Kind = iota
	KindScript
	KindHTML
	KindComponent
)

// For returns the extractor Kind for a file path's suffix (§4.2): .html →
// HTML, .vue → component, .js/.jsx → script, otherwise → typed-script.
func For(path string) Kind {
	switch filepath.Ext(path) {
	case ".html":
		return KindHTML
	case ".vue":
		return KindComponent
	case ".js", ".jsx":
		return KindScript
	default:
		return KindTypedScript
	}
}

// Options carries the per-run configuration an extractor needs beyond a
// file's bytes.
type Options struct {
	VueVersion int
}

// Extract dispatches path/content to the right extractor and returns its
// span records.
func Extract(path string, content []byte, opts Options) ([]span.Record, error) {
	switch For(path) {
	case KindHTML:
		return htmldoc.Extract(content)
	case KindComponent:
		return component.Extract(content, opts.VueVersion)
	case KindScript:
		d := tsgrammar.DialectForExt(".jsx")
		if filepath.Ext(path) == ".js" {
			d = tsgrammar.JavaScript
		}
		return script.Extract(d, content, 0)
	default:
		d := tsgrammar.DialectForExt(filepath.Ext(path))
		return script.Extract(d, content, 0)
	}
}
