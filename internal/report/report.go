// Package report accumulates the ambient run summary the CLI prints after
// an extraction pass: files scanned, literals found, keys created versus
// reused, and per-file failures.
package report

import (
	"fmt"
	"io"

	"github.com/sinocarta/hanzi-extract/pkg/pathutil"
)

// FileFailure records one file's pipeline failure and the classification
// it was recovered at.
type FileFailure struct {
	Path  string
	Class string
	Err   error
}

// Summary aggregates one run's outcome (§4.9, §7's "per-file failures are
// reported, the run continues").
type Summary struct {
	FilesScanned   int
	FilesRewritten int
	LiteralsFound  int
	KeysCreated    int
	KeysReused     int
	Failures       []FileFailure
}

// AddFile folds one successfully processed file's counts into the summary.
func (s *Summary) AddFile(literals, created, reused int) {
	s.FilesScanned++
	s.FilesRewritten++
	s.LiteralsFound += literals
	s.KeysCreated += created
	s.KeysReused += reused
}

// AddSkipped folds in a file that was scanned but not rewritten (no
// Chinese literals found — not a failure).
func (s *Summary) AddSkipped() {
	s.FilesScanned++
}

// AddFailure records a per-file failure without aborting the run.
func (s *Summary) AddFailure(path, class string, err error) {
	s.FilesScanned++
	s.Failures = append(s.Failures, FileFailure{Path: path, Class: class, Err: err})
}

// WriteTo prints a human-readable summary, the form the CLI's stdout
// report takes after a run. Paths are shown relative to root.
func (s *Summary) WriteTo(w io.Writer, root string) {
	fmt.Fprintf(w, "scanned %d files, rewrote %d, found %d literals (%d new keys, %d reused)\n",
		s.FilesScanned, s.FilesRewritten, s.LiteralsFound, s.KeysCreated, s.KeysReused)
	for _, f := range s.Failures {
		fmt.Fprintf(w, "  FAILED %s [%s]: %v\n", pathutil.ToRelative(f.Path, root), f.Class, f.Err)
	}
}
