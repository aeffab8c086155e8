// Package htmldoc implements the HTML literal extractor (C3): it walks raw
// markup with golang.org/x/net/html's low-level tokenizer (rather than its
// DOM builder) so every emitted span can carry byte-accurate offsets into
// the original source — the DOM tree itself discards position information.
package htmldoc

import (
	"bytes"
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/sinocarta/hanzi-extract/internal/extract/script"
	"github.com/sinocarta/hanzi-extract/internal/span"
)

// Extract walks an HTML document and reports one span per attribute value
// or text node containing Chinese, with offsets relative to content. A text
// node with `{{ ... }}` interpolation regions instead yields one span per
// Chinese substring inside those regions.
func Extract(content []byte) ([]span.Record, error) {
	z := html.NewTokenizer(bytes.NewReader(content))
	pos := 0
	var out []span.Record

	for {
		tt := z.Next()
		raw := z.Raw()
		tokenStart := pos
		pos += len(raw)

		switch tt {
		case html.ErrorToken:
			return out, nil

		case html.TextToken:
			text := string(raw)
			if recs := interpolationSpans(text, tokenStart); len(recs) > 0 {
				out = append(out, recs...)
				continue
			}
			stripped := stripComment(text)
			if script.HasChinese(stripped) {
				out = append(out, span.Record{
					Text:     strings.TrimSpace(html.UnescapeString(text)),
					Start:    tokenStart,
					End:      tokenStart + len(raw),
					IsString: false,
				})
			}

		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			out = append(out, attributeSpans(tok, raw, tokenStart)...)
		}
	}
}

var commentRe = regexp.MustCompile(`(?s)<!--.*?-->`)

func stripComment(s string) string {
	return commentRe.ReplaceAllString(s, "")
}

var mustacheRe = regexp.MustCompile(`\{\{(.*?)\}\}`)
var chineseSubstringRe = regexp.MustCompile(`[\x{4E00}-\x{9FFF}\x{3000}-\x{303F}\x{FF00}-\x{FFEF}]+`)

// interpolationSpans extracts one record per Chinese substring match inside
// each `{{ source }}` interpolation region of a text node — the "node whose
// value is a structured object exposing a source string" case (§4.3),
// distinct from a plain text node's own Chinese content. Offsets are
// relative to content via base (the text node's start offset).
func interpolationSpans(text string, base int) []span.Record {
	var out []span.Record
	for _, m := range mustacheRe.FindAllStringSubmatchIndex(text, -1) {
		srcStart, srcEnd := m[2], m[3]
		source := text[srcStart:srcEnd]
		for _, cm := range chineseSubstringRe.FindAllStringIndex(source, -1) {
			out = append(out, span.Record{
				Text:     source[cm[0]:cm[1]],
				Start:    base + srcStart + cm[0],
				End:      base + srcStart + cm[1],
				IsString: false,
			})
		}
	}
	return out
}

var attrValueRe = regexp.MustCompile(`([a-zA-Z_:][-a-zA-Z0-9_:.]*)\s*=\s*("([^"]*)"|'([^']*)')`)

// attributeSpans locates each attribute's quoted value within the tag's raw
// bytes by regexp (the tokenizer's Token.Attr carries no position info),
// emitting a span per attribute whose value contains Chinese.
func attributeSpans(tok html.Token, raw []byte, tagStart int) []span.Record {
	var out []span.Record
	matches := attrValueRe.FindAllSubmatchIndex(raw, -1)
	attrByName := make(map[string]string, len(tok.Attr))
	for _, a := range tok.Attr {
		attrByName[a.Key] = a.Val
	}

	for _, m := range matches {
		name := string(raw[m[2]:m[3]])
		if _, known := attrByName[name]; !known {
			continue
		}
		valStart, valEnd := m[4], m[5]
		value := string(raw[valStart:valEnd])
		inner := unquote(value)
		if !script.HasChinese(inner) {
			continue
		}
		out = append(out, span.Record{
			Text:     html.UnescapeString(inner),
			Start:    tagStart + valStart,
			End:      tagStart + valEnd,
			IsString: true,
		})
	}
	return out
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}
