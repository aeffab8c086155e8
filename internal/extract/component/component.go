// Package component implements the single-file component extractor (C3):
// two variants, selected by configured Vue major version, sharing the
// template-mustache walk and the typed-script extractor for script/setup
// sections.
package component

import "github.com/sinocarta/hanzi-extract/internal/span"

// Extract routes a .vue file's contents to Variant A (vueVersion 2) or
// Variant B (vueVersion 3, falling back to Variant A on a Variant B parse
// failure), per §4.3.
func Extract(content []byte, vueVersion int) ([]span.Record, error) {
	tmpl, scriptSec, setupSec := findSections(content)

	if vueVersion == 3 {
		if recs, err := extractVariantB(content, tmpl, scriptSec, setupSec); err == nil {
			return recs, nil
		}
	}

	effectiveScript := scriptSec
	if effectiveScript == nil {
		effectiveScript = setupSec
	}
	return extractVariantA(content, tmpl, effectiveScript)
}
