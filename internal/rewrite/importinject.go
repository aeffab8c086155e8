package rewrite

import (
	"fmt"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/sinocarta/hanzi-extract/internal/tsgrammar"
)

// ImportOptions describes the import the file needs if it doesn't already
// carry one.
type ImportOptions struct {
	LookupSymbol string // e.g. "I18N"
	ImportPath   string // e.g. "@/i18n"
	IsComponent  bool // .vue — inject after the opening <script> tag, not at file top
	ScriptOffset int  // byte offset of the script section within content, component files only
}

// EnsureImport parses content's script portion looking for an existing
// import/require of ImportOptions.LookupSymbol (default, named, or namespace
// form) and, if none is found, injects one at the rule-appropriate site:
// before the first top-level statement for plain script files, or
// immediately after the opening `<script>` tag for component files (§4.7).
func EnsureImport(content []byte, opts ImportOptions) ([]byte, error) {
	scriptBytes := content
	scriptOffset := 0
	if opts.IsComponent {
		scriptBytes = content[opts.ScriptOffset:]
		scriptOffset = opts.ScriptOffset
	}

	d := tsgrammar.DialectForExt(".ts")
	buf := make([]byte, len(scriptBytes))
	copy(buf, scriptBytes)

	tree, err := tsgrammar.Parse(d, buf)
	if err != nil {
		return nil, err
	}
	if tree != nil {
		defer tree.Close()
		if hasImport(tree.RootNode(), buf, opts.LookupSymbol) {
			return content, nil
		}
	}

	stmt := importStatement(opts)
	insertAt := scriptOffset
	if tree != nil {
		if first := firstTopLevelStatement(tree.RootNode()); first != nil {
			insertAt = scriptOffset + int(first.StartByte())
		}
	}

	out := make([]byte, 0, len(content)+len(stmt))
	out = append(out, content[:insertAt]...)
	out = append(out, []byte(stmt)...)
	out = append(out, content[insertAt:]...)
	return out, nil
}

func importStatement(opts ImportOptions) string {
	return fmt.Sprintf("import %s from '%s';\n", opts.LookupSymbol, opts.ImportPath)
}

// hasImport walks top-level import_statement nodes for a specifier that
// binds opts' lookup symbol, in default, named (`{ I18N }`), or namespace
// (`* as I18N`) form — and also tolerates a plain `require` assignment to
// the same identifier, since some of the corpus's script sections predate
// ES module syntax.
func hasImport(root *tree_sitter.Node, content []byte, symbol string) bool {
	if root == nil {
		return false
	}
	for i := uint(0); i < root.ChildCount(); i++ {
		child := root.Child(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "import_statement":
			if importBindsSymbol(child, content, symbol) {
				return true
			}
		case "lexical_declaration", "variable_declaration":
			if strings.Contains(nodeText(child, content), symbol) && strings.Contains(nodeText(child, content), "require(") {
				return true
			}
		}
	}
	return false
}

func importBindsSymbol(importStmt *tree_sitter.Node, content []byte, symbol string) bool {
	clause := importStmt.ChildByFieldName("import")
	if clause == nil {
		// No named clause field in this grammar version — fall back to a
		// text scan of the whole statement, which is still exact enough
		// to avoid a duplicate import.
		return strings.Contains(nodeText(importStmt, content), symbol)
	}
	return strings.Contains(nodeText(clause, content), symbol)
}

func firstTopLevelStatement(root *tree_sitter.Node) *tree_sitter.Node {
	if root == nil || root.ChildCount() == 0 {
		return nil
	}
	return root.Child(0)
}

func nodeText(n *tree_sitter.Node, content []byte) string {
	if n == nil {
		return ""
	}
	return string(content[n.StartByte():n.EndByte()])
}
