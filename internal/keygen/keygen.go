// Package keygen implements the Key Synthesizer (C6): it turns a literal's
// text, its file path, and a translator's proposed token into a stable,
// collision-free catalog key.
package keygen

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/sinocarta/hanzi-extract/internal/catalog"
)

// Lookup abstracts the two catalog queries the synthesizer needs, satisfied
// by *catalog.Store — a narrow interface keeps this package testable
// without spinning up a real Store.
type Lookup interface {
	LookupByValue(v string) (string, bool)
	LookupByKey(k string) (string, bool)
}

// Synthesizer assigns keys for the literals of one file, memoizing repeated
// text within that file (§4.6 step 5) so every occurrence of the same text
// gets the same key. It never calls the translator itself; Assign receives
// the already translated token.
type Synthesizer struct {
	Catalog Lookup
	Prefix  string

	memo map[string]Assignment
}

// Assignment is the outcome of synthesizing a key for one literal.
type Assignment struct {
	Key       string
	NeedWrite bool
}

// New returns a Synthesizer bound to catalog, with an optional explicit key
// prefix (already stripped of its lookup-symbol segment by the CLI layer).
func New(cat Lookup, prefix string) *Synthesizer {
	return &Synthesizer{Catalog: cat, Prefix: prefix, memo: make(map[string]Assignment)}
}

var pagesRe = regexp.MustCompile(`/pages/[^/]+/([^/]+)/([^/]+)\.[^./]+$`)

// Assign synthesizes or reuses a key for one literal. path is the file the
// literal came from (used only when the catalog doesn't already hold text);
// transText is the translator's already camel-cased English token for this
// literal.
func (s *Synthesizer) Assign(path, text, transText string) Assignment {
	if a, ok := s.memo[text]; ok {
		return a
	}

	if key, ok := s.Catalog.LookupByValue(text); ok {
		a := Assignment{Key: normalizeUnderscore(key), NeedWrite: false}
		s.memo[text] = a
		return a
	}

	suggestion := pathSuggestion(path)
	base := s.composeBase(suggestion, transText)
	key := s.avoidCollision(base, text)

	a := Assignment{Key: key, NeedWrite: true}
	s.memo[text] = a
	return a
}

func (s *Synthesizer) composeBase(suggestion []string, transText string) string {
	var base string
	if s.Prefix != "" {
		base = s.Prefix + "." + transText
	} else {
		base = strings.Join(suggestion, ".") + "." + transText
	}
	return normalizeUnderscore(base)
}

// avoidCollision implements §4.6 step 4: keep probing occurTime until either
// the candidate already maps to the same text (reuse) or is unoccupied
// (first-time assignment), guaranteeing (K2).
func (s *Synthesizer) avoidCollision(base, text string) string {
	occurTime := 1
	for {
		candidate := base
		if occurTime >= 2 {
			candidate = base + strconv.Itoa(occurTime)
		}

		existing, hasKey := s.Catalog.LookupByKey(candidate)
		sameValue := hasKey && existing == text
		occupied := hasKey

		if sameValue || !occupied {
			return candidate
		}
		occurTime++
	}
}

// pathSuggestion derives the dotted-path suggestion from a file path per
// §4.6 step 2.
func pathSuggestion(path string) []string {
	slashPath := filepath.ToSlash(path)
	if strings.Contains(slashPath, "/pages/") {
		if m := pagesRe.FindStringSubmatch(slashPath); m != nil {
			return []string{normalizeUnderscore(m[1]), normalizeUnderscore(m[2])}
		}
	}

	ext := filepath.Ext(slashPath)
	fileBase := normalizeUnderscore(strings.TrimSuffix(filepath.Base(slashPath), ext))
	dirName := normalizeUnderscore(filepath.Base(filepath.Dir(slashPath)))

	if dirName == fileBase {
		return []string{dirName}
	}
	return []string{dirName, fileBase}
}

func normalizeUnderscore(s string) string {
	return strings.ReplaceAll(s, "-", "_")
}

// CamelCase normalizes a translator token ("ti jiao", "ti_jiao", "ti-jiao")
// into transText form ("tiJiao"), lower-casing the leading segment.
func CamelCase(s string) string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '_' || r == '-'
	})
	if len(parts) == 0 {
		return ""
	}
	var b strings.Builder
	for i, p := range parts {
		if p == "" {
			continue
		}
		if i == 0 {
			b.WriteString(strings.ToLower(p[:1]) + p[1:])
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		if len(p) > 1 {
			b.WriteString(p[1:])
		}
	}
	return b.String()
}
