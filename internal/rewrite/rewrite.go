// Package rewrite implements the Rewriter (C7): it substitutes a file's
// Chinese literals with lookup-key references, selecting the wrapping form
// from the unchanged original bytes around each span, and injects the
// lookup symbol's import when the file doesn't already have one.
package rewrite

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sinocarta/hanzi-extract/internal/span"
)

// Span is one assigned substitution: a span.Record whose Key field has
// already been filled in by the key synthesizer (C6).
type Span = span.Record

// Options configures one file's rewrite.
type Options struct {
	LookupSymbol string // conventionally "I18N"
	IsMarkup     bool   // .html or .vue — controls {{ref}} vs {ref} wrapping
}

// Result carries the rewritten bytes. CatalogOverrides maps a key to the
// catalog value that should be written instead of the span's raw text —
// only populated for template literals
// with interpolations, whose catalog value carries `{val_i}` placeholders
// instead of the original `${expr_i}` (§4.7).
type Result struct {
	Content          []byte
	CatalogOverrides map[string]string
}

// Apply substitutes every span in content, back to front (spans must
// already be sorted by descending Start — §4.4's contract), and returns the
// rewritten bytes plus any catalog-value overrides template literals need.
func Apply(content []byte, spans []Span, opts Options) (Result, error) {
	buf := make([]byte, len(content))
	copy(buf, content)

	overrides := make(map[string]string)

	for _, sp := range spans {
		ref := opts.LookupSymbol + "." + sp.Key
		replacement, override, err := substitution(buf, sp, ref, opts)
		if err != nil {
			return Result{}, err
		}
		if override != "" {
			overrides[sp.Key] = override
		}

		// A span that excludes its delimiters (a template literal's backticks,
		// or a quoted token inside `{{ ... }}`) has them replaced too, so the
		// reference doesn't end up inside a string.
		start, end := sp.Start, sp.End
		if start > 0 && end < len(buf) && buf[start-1] == buf[end] {
			d := buf[end]
			if (d == '`' && sp.IsString) || ((d == '"' || d == '\'') && insideMustache(buf, start, end)) {
				start, end = start-1, end+1
			}
		}

		buf = append(buf[:start], append([]byte(replacement), buf[end:]...)...)
	}

	return Result{Content: buf, CatalogOverrides: overrides}, nil
}

var interpolationRe = regexp.MustCompile(`\$\{([^}]*)\}`)

func substitution(buf []byte, sp Span, ref string, opts Options) (replacement, catalogOverride string, err error) {
	// A template literal's interior is always just an expression — whether
	// or not it's also mustache-bound — so this check runs before the
	// mustache check: a mustache-bound `{{ `..${n}..` }}` still needs its
	// `${n}` rewritten into the catalog's `{val1}` placeholder and its
	// `.template(...)` wrapper, not a bare ref substitution. Extractors
	// differ on whether a template literal's span includes its backticks
	// (script.go's general walk does; the mustache-bound
	// template-literal-substring case does not) — check both positions.
	if sp.IsString && ((sp.Start < len(buf) && buf[sp.Start] == '`') || (sp.Start > 0 && buf[sp.Start-1] == '`')) {
		return templateSubstitution(sp, ref)
	}

	// A span already sitting inside an existing `{{ ... }}` region (a bound
	// expression's literal or token) gets a bare substitution — the braces
	// are already there, re-wrapping would double them up.
	if insideMustache(buf, sp.Start, sp.End) {
		return ref, "", nil
	}

	if !sp.IsString {
		return wrapMarkup(ref, opts.IsMarkup), "", nil
	}

	if sp.Start > 0 && buf[sp.Start-1] == '=' {
		return wrapMarkup(ref, opts.IsMarkup), "", nil
	}

	return ref, "", nil
}

func wrapMarkup(ref string, isMarkup bool) string {
	if isMarkup {
		return "{{" + ref + "}}"
	}
	return "{" + ref + "}"
}

// templateSubstitution builds the `<LOOKUP>.template(ref, {...})` call for a
// template literal with interpolations, or returns ref unchanged otherwise.
func templateSubstitution(sp Span, ref string) (replacement, catalogOverride string, err error) {
	matches := interpolationRe.FindAllStringSubmatch(sp.Text, -1)
	if len(matches) == 0 {
		return ref, "", nil
	}

	var args []string
	value := sp.Text
	for i, m := range matches {
		valName := fmt.Sprintf("val%d", i+1)
		args = append(args, fmt.Sprintf("%s: %s", valName, m[1]))
		value = strings.Replace(value, m[0], "{"+valName+"}", 1)
	}

	replacement = fmt.Sprintf("%s.template(%s, { %s })", lookupPrefix(ref), ref, strings.Join(args, ", "))
	return replacement, value, nil
}

// lookupPrefix returns the `<LOOKUP>` segment of a `<LOOKUP>.<key>` ref.
func lookupPrefix(ref string) string {
	if i := strings.Index(ref, "."); i >= 0 {
		return ref[:i]
	}
	return ref
}

// insideMustache reports whether [start,end) lies inside a `{{ ... }}`
// region already present in buf — the component-file interpolation case
// (§4.7) where only the interior is replaced, preserving the braces.
func insideMustache(buf []byte, start, end int) bool {
	openIdx := strings.LastIndex(string(buf[:start]), "{{")
	if openIdx == -1 {
		return false
	}
	closeAfterOpen := strings.Index(string(buf[openIdx:]), "}}")
	if closeAfterOpen == -1 {
		return false
	}
	mustacheEnd := openIdx + closeAfterOpen + 2
	return end <= mustacheEnd
}
