// Package span defines the byte-span currency of the extraction pipeline:
// the records C3's dialect extractors produce, and the C4 normalization
// step that turns a raw span list into a safe, back-to-front edit plan.
package span

import "sort"

// Record is one Chinese-literal occurrence found by a dialect extractor.
//
// Range is the half-open byte interval [Start, End) into the *original*
// source. Text is the literal's value as it belongs in the catalog: outer
// quotes/backticks stripped, and for markup text nodes, leading/trailing
// whitespace trimmed (even though Range still covers that whitespace).
type Record struct {
	Text     string
	Start    int
	End      int
	IsString bool

	// Key and NeedWrite are filled in by the key synthesizer (C6); they are
	// zero-valued on every Record a C3 extractor returns.
	Key       string
	NeedWrite bool
}

// Len returns the byte length of the span.
func (r Record) Len() int { return r.End - r.Start }

// Encloses reports whether r strictly contains other — both of other's
// endpoints fall within r, with at least one strict inequality, per §4.4's
// "enclose" test.
func (r Record) Encloses(other Record) bool {
	if r.Start > other.Start || r.End < other.End {
		return false
	}
	return r.Start < other.Start || r.End > other.End
}

// WorkItem is a file and its normalized span list, ready for key synthesis
// and rewriting.
type WorkItem struct {
	Path  string
	Spans []Record
}

// Normalize keeps only the maximal spans — a span enclosed by any other
// survivor is dropped — then sorts survivors by descending Start so the
// rewriter can apply edits back-to-front without invalidating earlier
// offsets (§4.4, K3).
func Normalize(records []Record) []Record {
	kept := make([]Record, 0, len(records))
	for i, r := range records {
		enclosed := false
		for j, other := range records {
			if i == j {
				continue
			}
			if other.Encloses(r) {
				enclosed = true
				break
			}
		}
		if !enclosed {
			kept = append(kept, r)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Start > kept[j].Start
	})
	return kept
}

// SortDescending orders spans by descending Start in place, for the
// rewriter's back-to-front edit pass.
func SortDescending(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Start > records[j].Start
	})
}

// Forward returns spans ordered by ascending Start — the order literals must
// be submitted to the translator and have keys assigned in (§4.6's tie-break
// rule), independent of the reverse order Normalize leaves them in for the
// rewriter.
func Forward(records []Record) []Record {
	out := make([]Record, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start < out[j].Start
	})
	return out
}
