// Package script implements the typed-script and script literal extractors
// (C3): both walk a tree-sitter JS/TS/TSX tree and report the same three
// span categories — string literals, template literals, and markup text
// children — differing only in which grammar parses the file.
package script

import (
	"regexp"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/sinocarta/hanzi-extract/internal/span"
	"github.com/sinocarta/hanzi-extract/internal/tsgrammar"
)

var hanRe = regexp.MustCompile(`[\x{4E00}-\x{9FFF}]`)

// HasChinese reports whether s contains a code point in the CJK Unified
// Ideographs block (U+4E00..U+9FFF) — the Chinese-detection predicate every
// extractor shares.
func HasChinese(s string) bool {
	return hanRe.MatchString(s)
}

var commentRe = regexp.MustCompile(`(?s)/\*.*?\*/|//[^\n]*`)

func stripComments(s string) string {
	return commentRe.ReplaceAllString(s, "")
}

// stringLiteralKinds are the tree-sitter-javascript/typescript node kinds
// whose whole span (quotes included) is the span record for a string
// literal.
var stringLiteralKinds = map[string]bool{
	"string": true,
}

// textChildKinds are the node kinds tree-sitter-javascript/typescript use
// for a JSX/TSX element's plain text children.
var textChildKinds = map[string]bool{
	"jsx_text": true,
}

// Extract walks content parsed under dialect d and returns every span it
// finds, with byte offsets shifted by offset (so callers embedding a script
// section inside a larger file — component sections — can report spans
// relative to the whole file).
func Extract(d tsgrammar.Dialect, content []byte, offset int) ([]span.Record, error) {
	tree, err := tsgrammar.Parse(d, content)
	if err != nil {
		return nil, err
	}
	if tree == nil {
		return nil, nil
	}
	defer tree.Close()

	var out []span.Record
	walk(tree.RootNode(), content, offset, &out)
	return out, nil
}

func walk(n *tree_sitter.Node, content []byte, offset int, out *[]span.Record) {
	if n == nil {
		return
	}

	kind := n.Kind()
	start, end := int(n.StartByte()), int(n.EndByte())
	if end > len(content) {
		end = len(content)
	}

	switch {
	case stringLiteralKinds[kind]:
		text := string(content[start:end])
		if HasChinese(text) {
			*out = append(*out, span.Record{
				Text:     unquoteOuter(text),
				Start:    start + offset,
				End:      end + offset,
				IsString: true,
			})
		}
		// String literal children (string_fragment, escape_sequence) carry
		// no further Chinese this walk needs to recurse into.
		return

	case kind == "template_string":
		text := string(content[start:end])
		if HasChinese(text) {
			*out = append(*out, span.Record{
				Text:     unquoteOuter(text),
				Start:    start + offset,
				End:      end + offset,
				IsString: true,
			})
		}
		return

	case textChildKinds[kind]:
		raw := string(content[start:end])
		stripped := stripComments(raw)
		if HasChinese(stripped) {
			*out = append(*out, span.Record{
				Text:     strings.TrimSpace(raw),
				Start:    start + offset,
				End:      end + offset,
				IsString: false,
			})
		}
		return
	}

	for i := uint(0); i < n.ChildCount(); i++ {
		walk(n.Child(i), content, offset, out)
	}
}

// unquoteOuter strips one layer of matching quote/backtick delimiters —
// span.Record.Text carries the literal's interior per §3's data model.
func unquoteOuter(s string) string {
	if len(s) < 2 {
		return s
	}
	first, last := s[0], s[len(s)-1]
	if (first == '\'' || first == '"' || first == '`') && first == last {
		return s[1 : len(s)-1]
	}
	return s
}
