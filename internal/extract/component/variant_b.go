package component

import (
	"fmt"

	"github.com/sinocarta/hanzi-extract/internal/extract/htmldoc"
	"github.com/sinocarta/hanzi-extract/internal/extract/script"
	"github.com/sinocarta/hanzi-extract/internal/span"
	"github.com/sinocarta/hanzi-extract/internal/tsgrammar"
)

// extractVariantB implements the Vue 3 component extractor (§4.3 Variant B).
// There is no Vue 3 template-compiler library in the ecosystem this pack
// draws from, so the template walk reuses the same DOM-like tokenizer as
// Variant A/HTML rather than a real SFC compiler descriptor; interpolation
// and compound-expression handling still follow the node-kind rules the
// spec describes. On any failure this returns an error so the caller can
// fall back to Variant A, matching "Emit failure back to Variant A on
// parser error".
func extractVariantB(content []byte, tmpl, scriptSec, setupSec *section) ([]span.Record, error) {
	if tmpl == nil && scriptSec == nil && setupSec == nil {
		return nil, fmt.Errorf("component: no recognizable sections")
	}

	var out []span.Record

	if tmpl != nil {
		raw := string(content[tmpl.Start:tmpl.End])
		out = append(out, offsetRecords(walkMustaches(raw), tmpl.Start)...)

		recs, err := htmldoc.Extract([]byte(raw))
		if err != nil {
			return nil, err
		}
		out = append(out, offsetRecords(recs, tmpl.Start)...)
	}

	for _, sec := range []*section{scriptSec, setupSec} {
		if sec == nil {
			continue
		}
		recs, err := script.Extract(tsgrammar.TypeScript, content[sec.Start:sec.End], sec.Start)
		if err != nil {
			return nil, err
		}
		out = append(out, recs...)
	}

	return filterNested(out), nil
}
