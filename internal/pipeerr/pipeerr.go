// Package pipeerr classifies pipeline failures into the taxonomy the
// orchestrator uses to decide whether a failure aborts the run or is
// recovered at the file boundary.
package pipeerr

import "fmt"

// Class identifies which of the pipeline's recognized failure categories an
// error belongs to.
type Class string

const (
	// ClassConfig is a hard-abort misconfiguration (e.g. unknown translator provider).
	ClassConfig Class = "config"
	// ClassParse means a dialect parser rejected a file's contents.
	ClassParse Class = "parse"
	// ClassTranslate means the KeyTranslator returned a zero-length result or errored.
	ClassTranslate Class = "translate"
	// ClassDuplicateKey means a catalog write would bind one key to two distinct values.
	ClassDuplicateKey Class = "duplicate_key"
	// ClassIO covers file read/write/rewrite failures.
	ClassIO Class = "io"
)

// Error wraps an underlying failure with the file and operation it occurred
// in, and the class that determines recovery behavior.
type Error struct {
	Class      Class
	Path       string
	Op         string
	Underlying error
}

// New creates a classified pipeline error.
func New(class Class, op, path string, err error) *Error {
	return &Error{Class: class, Op: op, Path: path, Underlying: err}
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %s: %v", e.Class, e.Op, e.Underlying)
	}
	return fmt.Sprintf("%s: %s %s: %v", e.Class, e.Op, e.Path, e.Underlying)
}

func (e *Error) Unwrap() error {
	return e.Underlying
}

// Fatal reports whether an error of this class must abort the whole run
// rather than being recovered at the file boundary (§7: only configuration
// errors are fatal).
func (e *Error) Fatal() bool {
	return e.Class == ClassConfig
}

// Config wraps err as a configuration error.
func Config(op string, err error) *Error { return New(ClassConfig, op, "", err) }

// Parse wraps err as a per-file parse error.
func Parse(path string, err error) *Error { return New(ClassParse, "parse", path, err) }

// Translate wraps err as a per-file translation error.
func Translate(path string, err error) *Error { return New(ClassTranslate, "translate", path, err) }

// DuplicateKey wraps err as a duplicate-key catalog error.
func DuplicateKey(path string, err error) *Error {
	return New(ClassDuplicateKey, "catalog_write", path, err)
}

// IO wraps err as a per-file I/O error.
func IO(op, path string, err error) *Error { return New(ClassIO, op, path, err) }
