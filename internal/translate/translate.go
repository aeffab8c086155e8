// Package translate defines the KeyTranslator capability the Key Synthesizer
// consumes, plus provider implementations for the three supported
// configuration values. Translation itself is an external collaborator
// (spec §1) — these are thin, stdlib-HTTP boundary clients, not part of the
// extraction core.
package translate

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// KeyTranslator turns a batch of original-literal fragments into an equal
// length slice of English candidate tokens, one per fragment, in the same
// order (§4.6's translator contract).
type KeyTranslator interface {
	TranslateBatch(ctx context.Context, fragments []string) ([]string, error)
}

// PrepareFragment reduces a literal's text to the form the translator
// receives: Chinese characters and letters only, truncated to five
// characters, defaulting to the sentinel when nothing survives.
func PrepareFragment(text string) string {
	var b strings.Builder
	for _, r := range text {
		if unicode.Is(unicode.Han, r) || unicode.IsLetter(r) {
			b.WriteRune(r)
		}
	}
	out := []rune(b.String())
	if len(out) > 5 {
		out = out[:5]
	}
	if len(out) == 0 {
		return "中文符号"
	}
	return string(out)
}

// NewForProvider resolves a configured provider name to a KeyTranslator,
// returning a configuration error for anything else (§6, §7: unrecognized
// translator provider is a hard abort).
func NewForProvider(name string) (KeyTranslator, error) {
	switch strings.ToLower(name) {
	case "pinyin", "":
		return NewPinyinProvider(), nil
	case "google":
		return NewGoogleProvider(), nil
	case "baidu":
		return NewBaiduProvider(), nil
	default:
		return nil, fmt.Errorf("unrecognized translator provider %q", name)
	}
}

var nonWordRe = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// sanitizeToken lower-cases and strips anything that wouldn't survive into
// an identifier segment — shared by every provider's response handling.
func sanitizeToken(s string) string {
	s = nonWordRe.ReplaceAllString(s, " ")
	return strings.ToLower(strings.TrimSpace(s))
}
