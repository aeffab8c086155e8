package component

import "regexp"

// section is one top-level block of a single-file component, with its
// content's byte range in the whole file (content excludes the tag
// delimiters themselves).
type section struct {
	Start, End int
}

var (
	templateRe  = regexp.MustCompile(`(?s)<template[^>]*>(.*?)</template>`)
	scriptRe    = regexp.MustCompile(`(?s)<script(?:\s+[^>]*)?>(.*?)</script>`)
	setupAttrRe = regexp.MustCompile(`\bsetup\b`)
)

// findSections locates the template, script, and script-setup blocks of a
// single-file component by tag, the way vue-loader's own block splitting
// does before handing each block to its own compiler. A real SFC doesn't
// nest <script>/<template> blocks, so a non-nested regex scan is sufficient
// and avoids pulling in a bespoke SFC parser this pack has no library for.
func findSections(content []byte) (tmpl *section, script, setupScript *section) {
	if m := templateRe.FindSubmatchIndex(content); m != nil {
		tmpl = &section{Start: m[2], End: m[3]}
	}

	for _, m := range findAllScriptTags(content) {
		tagOpen := content[m[0]:m[2]]
		if setupAttrRe.Match(tagOpen) {
			setupScript = &section{Start: m[2], End: m[3]}
		} else if script == nil {
			script = &section{Start: m[2], End: m[3]}
		}
	}
	return tmpl, script, setupScript
}

func findAllScriptTags(content []byte) [][]int {
	return scriptRe.FindAllSubmatchIndex(content, -1)
}

// ScriptOffset returns the byte offset of a component file's script (or
// script-setup, if that's the only one present) section content, for
// callers that need to inject an import immediately after the opening
// `<script>` tag rather than at the file's top (§4.7).
func ScriptOffset(content []byte) (offset int, found bool) {
	_, scriptSec, setupSec := findSections(content)
	sec := scriptSec
	if sec == nil {
		sec = setupSec
	}
	if sec == nil {
		return 0, false
	}
	return sec.Start, true
}
