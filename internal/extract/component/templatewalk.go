package component

import (
	"regexp"
	"strings"

	"github.com/sinocarta/hanzi-extract/internal/extract/script"
	"github.com/sinocarta/hanzi-extract/internal/span"
)

var mustacheRe = regexp.MustCompile(`\{\{(.*?)\}\}`)

// walkMustaches finds every `{{ expr }}` region in a template slice and
// emits span records for it per §4.3 Variant A's "bound expression node"
// rule. Offsets in returned records are relative to tmpl (callers add the
// template section's base offset).
func walkMustaches(tmpl string) []span.Record {
	var out []span.Record
	for _, m := range mustacheRe.FindAllStringSubmatchIndex(tmpl, -1) {
		exprStart, exprEnd := m[2], m[3]
		exprText := tmpl[exprStart:exprEnd]

		if recs := templateLiteralSubstrings(tmpl, exprStart, exprText); len(recs) > 0 {
			out = append(out, recs...)
			continue
		}
		if !script.HasChinese(exprText) {
			continue
		}
		out = append(out, tokenSpans(tmpl, exprStart, exprText)...)
	}
	return out
}

var templateLiteralRe = regexp.MustCompile("(?s)`([^`]*)`")

// templateLiteralSubstrings extracts Chinese template-literal substrings
// from a bound expression's text (§4.3: "first attempt to extract Chinese
// template-literal substrings").
func templateLiteralSubstrings(tmpl string, exprOffset int, exprText string) []span.Record {
	var out []span.Record
	for _, m := range templateLiteralRe.FindAllStringSubmatchIndex(exprText, -1) {
		whole := exprText[m[0]:m[1]]
		if !script.HasChinese(whole) {
			continue
		}
		hasInterp := strings.Contains(whole, "${")
		if hasInterp {
			out = append(out, span.Record{
				Text:     whole[1 : len(whole)-1],
				Start:    exprOffset + m[0] + 1,
				End:      exprOffset + m[1] - 1,
				IsString: true,
			})
		} else {
			out = append(out, span.Record{
				Text:     whole[1 : len(whole)-1],
				Start:    exprOffset + m[0],
				End:      exprOffset + m[1],
				IsString: false,
			})
		}
	}
	return out
}

var exprTokenRe = regexp.MustCompile(`[\p{Han}\w]+`)

// tokenSpans falls back to per-token emission when a bound expression has
// no template-literal substring: each Chinese-containing token is reported
// with a span found via indexOf inside the expression text (§4.3).
func tokenSpans(tmpl string, exprOffset int, exprText string) []span.Record {
	var out []span.Record
	for _, tok := range exprTokenRe.FindAllString(exprText, -1) {
		if !script.HasChinese(tok) {
			continue
		}
		idx := strings.Index(exprText, tok)
		if idx == -1 {
			continue
		}
		out = append(out, span.Record{
			Text:     tok,
			Start:    exprOffset + idx,
			End:      exprOffset + idx + len(tok),
			IsString: false,
		})
	}
	return out
}
