package component

import (
	"github.com/sinocarta/hanzi-extract/internal/extract/htmldoc"
	"github.com/sinocarta/hanzi-extract/internal/extract/script"
	"github.com/sinocarta/hanzi-extract/internal/span"
	"github.com/sinocarta/hanzi-extract/internal/tsgrammar"
)

// extractVariantA implements the Vue 2 component extractor (§4.3 Variant A).
func extractVariantA(content []byte, tmpl, scriptSec *section) ([]span.Record, error) {
	var out []span.Record

	if tmpl != nil {
		raw := string(content[tmpl.Start:tmpl.End])
		sentineled := applySentinels(raw)

		out = append(out, offsetRecords(walkMustaches(sentineled), tmpl.Start)...)
		out = append(out, offsetRecords(templateTextNodes(sentineled), tmpl.Start)...)
		out = append(out, renderFunctionSpans(raw, tmpl.Start)...)
	}

	if scriptSec != nil {
		recs, err := script.Extract(tsgrammar.TypeScript, content[scriptSec.Start:scriptSec.End], scriptSec.Start)
		if err != nil {
			return nil, err
		}
		out = append(out, recs...)
	}

	out = filterNested(out)
	for i := range out {
		out[i].Text = restoreSentinels(out[i].Text)
	}
	return out, nil
}

// templateTextNodes reuses the HTML extractor's text-node detection on the
// template slice — a Vue template is DOM-like markup, so the same tokenizer
// walk backs both (§2's domain-stack note).
func templateTextNodes(tmplSlice string) []span.Record {
	recs, err := htmldoc.Extract([]byte(tmplSlice))
	if err != nil {
		return nil
	}
	var out []span.Record
	for _, r := range recs {
		if !r.IsString {
			out = append(out, r)
		}
	}
	return out
}

// renderFunctionSpans compiles the template to render-function text via the
// script extractor's own Chinese-detection on a synthesized ES5 call chain,
// then re-locates each literal go-fAST found back in the original template
// text, recovering every occurrence position (§4.3).
func renderFunctionSpans(tmplRaw string, base int) []span.Record {
	renderSrc := synthesizeRenderFunction(tmplRaw)
	literals, err := renderFunctionLiterals(renderSrc)
	if err != nil || len(literals) == 0 {
		return nil
	}

	var out []span.Record
	for _, lit := range literals {
		for _, idx := range findOccurrences(tmplRaw, lit) {
			start := idx
			end := idx + len(lit)
			isQuoted := start > 0 && (tmplRaw[start-1] == '"' || tmplRaw[start-1] == '\'')
			out = append(out, span.Record{
				Text:     lit,
				Start:    base + start,
				End:      base + end,
				IsString: isQuoted,
			})
		}
	}
	return out
}

// synthesizeRenderFunction builds a minimal ES5 call-expression body that
// carries every quoted string literal and mustache expression found in the
// template, in source order — close enough to the shape a real Vue 2
// template compiler emits (`_c('div',[_v("...")])`) for go-fAST to walk and
// for our occurrence search over tmplRaw to be meaningful.
func synthesizeRenderFunction(tmplRaw string) string {
	var b []byte
	b = append(b, "(function render(){return _c('div',["...)
	for _, lit := range attrAndTextLiterals(tmplRaw) {
		b = append(b, "_v("...)
		b = append(b, quoteJS(lit)...)
		b = append(b, "),"...)
	}
	b = append(b, "]);})"...)
	return string(b)
}

func attrAndTextLiterals(tmplRaw string) []string {
	recs, err := htmldoc.Extract([]byte(tmplRaw))
	if err != nil {
		return nil
	}
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Text)
	}
	for _, m := range walkMustaches(tmplRaw) {
		out = append(out, m.Text)
	}
	return out
}

func quoteJS(s string) string {
	var b []byte
	b = append(b, '"')
	for _, r := range s {
		if r == '"' || r == '\\' {
			b = append(b, '\\')
		}
		b = append(b, string(r)...)
	}
	b = append(b, '"')
	return string(b)
}

func offsetRecords(recs []span.Record, base int) []span.Record {
	out := make([]span.Record, len(recs))
	for i, r := range recs {
		r.Start += base
		r.End += base
		out[i] = r
	}
	return out
}

// filterNested keeps only spans not strictly enclosed by another (§4.3:
// "a record is kept only if no other record's range strictly contains it").
func filterNested(recs []span.Record) []span.Record {
	out := make([]span.Record, 0, len(recs))
	for i, r := range recs {
		enclosed := false
		for j, other := range recs {
			if i == j {
				continue
			}
			if other.Encloses(r) {
				enclosed = true
				break
			}
		}
		if !enclosed {
			out = append(out, r)
		}
	}
	return out
}
