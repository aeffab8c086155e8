// Package tsgrammar is the single place tree-sitter JS/TS/TSX grammars are
// wired up, grounded on the teacher's per-language parser setup
// (internal/parser/parser_language_setup.go): one *tree_sitter.Parser per
// dialect, built lazily and reused.
package tsgrammar

import (
	"sync"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// Dialect identifies which grammar a file should be parsed with.
type Dialect int

const (
	// JavaScript covers .js/.jsx — the grammar accepts JSX natively.
	JavaScript Dialect = iota
	// TypeScript covers plain .ts (no JSX).
	TypeScript
	// TSX covers .tsx (TypeScript with JSX/markup-expression syntax).
	TSX
)

var (
	once       sync.Once
	languages  map[Dialect]*tree_sitter.Language
	initErrors map[Dialect]error
)

func setup() {
	languages = make(map[Dialect]*tree_sitter.Language, 3)
	initErrors = make(map[Dialect]error, 3)

	languages[JavaScript] = tree_sitter.NewLanguage(tree_sitter_javascript.Language())
	languages[TypeScript] = tree_sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript())
	languages[TSX] = tree_sitter.NewLanguage(tree_sitter_typescript.LanguageTSX())
}

// NewParser returns a fresh parser configured for the given dialect. A fresh
// parser is returned (rather than a pooled singleton) because tree-sitter
// parsers are not safe for concurrent reuse across goroutines and the
// pipeline's single-threaded-per-file contract (§5) makes pooling
// unnecessary engineering.
func NewParser(d Dialect) (*tree_sitter.Parser, error) {
	once.Do(setup)

	lang, ok := languages[d]
	if !ok {
		return nil, initErrors[d]
	}

	p := tree_sitter.NewParser()
	if err := p.SetLanguage(lang); err != nil {
		return nil, err
	}
	return p, nil
}

// DialectForExt maps a file extension (with leading dot) to the grammar
// that should parse it.
func DialectForExt(ext string) Dialect {
	switch ext {
	case ".ts":
		return TypeScript
	case ".tsx":
		return TSX
	default:
		// .js, .jsx, and anything the HTML/component extractors hand off
		// to the script extractor for a fenced script block.
		return JavaScript
	}
}

// Parse parses content with the grammar for dialect d. The caller owns
// tree.Close() and must pass a defensive copy if content is shared —
// tree-sitter's C library may retain references into the buffer for the
// tree's lifetime.
func Parse(d Dialect, content []byte) (*tree_sitter.Tree, error) {
	p, err := NewParser(d)
	if err != nil {
		return nil, err
	}
	defer p.Close()
	tree := p.Parse(content, nil)
	return tree, nil
}
