package catalog

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/sinocarta/hanzi-extract/internal/tsgrammar"
)

// parseNamespaceFile parses an existing namespace/aggregator source file and
// returns the object tree of its `export default { ... }` expression. A file
// with no default-exported object literal yields an empty Node rather than
// an error — the writer then treats it as if it didn't carry any entries
// yet, which is the safest behavior for a hand-edited catalog file.
func parseNamespaceFile(ext string, content []byte) (*Node, error) {
	d := tsgrammar.DialectForExt(ext)
	buf := make([]byte, len(content))
	copy(buf, content)

	tree, err := tsgrammar.Parse(d, buf)
	if err != nil {
		return NewNode(), err
	}
	if tree == nil {
		return NewNode(), nil
	}
	defer tree.Close()

	root := tree.RootNode()
	objNode := findDefaultExportObject(root, buf)
	if objNode == nil {
		return NewNode(), nil
	}
	return nodeFromObject(objNode, buf), nil
}

// findDefaultExportObject walks top-level statements for `export default`
// and returns the object literal it exports, falling back to a search for
// the first object-like node anywhere in the export statement if the
// grammar's field layout doesn't match what we expect.
func findDefaultExportObject(root *tree_sitter.Node, content []byte) *tree_sitter.Node {
	if root == nil {
		return nil
	}
	for i := uint(0); i < root.ChildCount(); i++ {
		child := root.Child(i)
		if child == nil || child.Kind() != "export_statement" {
			continue
		}
		if obj := exportedObject(child, content); obj != nil {
			return obj
		}
	}
	return nil
}

func exportedObject(exportStmt *tree_sitter.Node, content []byte) *tree_sitter.Node {
	if v := exportStmt.ChildByFieldName("value"); v != nil {
		if obj := unwrapToObject(v); obj != nil {
			return obj
		}
	}
	if v := exportStmt.ChildByFieldName("declaration"); v != nil {
		if obj := unwrapToObject(v); obj != nil {
			return obj
		}
	}
	// Fallback: scan every descendant for the first object node. Handles
	// grammar shapes where default-export expressions aren't exposed as a
	// named field.
	return firstObjectDescendant(exportStmt)
}

// unwrapToObject accepts either an object literal directly, or a call like
// Object.assign({}, { ... }) — returning the last object-literal argument
// (§4.8 tolerates both forms on read; the catalog writer itself creates the
// bare `{ ... }` form).
func unwrapToObject(n *tree_sitter.Node) *tree_sitter.Node {
	if n == nil {
		return nil
	}
	if n.Kind() == "object" {
		return n
	}
	if n.Kind() == "call_expression" {
		args := n.ChildByFieldName("arguments")
		if args == nil {
			return nil
		}
		var last *tree_sitter.Node
		for i := uint(0); i < args.ChildCount(); i++ {
			c := args.Child(i)
			if c != nil && c.Kind() == "object" {
				last = c
			}
		}
		return last
	}
	return nil
}

func firstObjectDescendant(n *tree_sitter.Node) *tree_sitter.Node {
	if n == nil {
		return nil
	}
	if n.Kind() == "object" {
		return n
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		if found := firstObjectDescendant(n.Child(i)); found != nil {
			return found
		}
	}
	return nil
}

// nodeFromObject converts a tree-sitter `object` node into our ordered Node
// tree. Only `pair` members with a string, template-string or object value
// are kept; spread elements and shorthand property references (e.g.
// `common,` in the aggregator's merge object) are skipped, since the
// aggregator's own members carry no string values — only namespace files do.
func nodeFromObject(obj *tree_sitter.Node, content []byte) *Node {
	out := NewNode()
	for i := uint(0); i < obj.ChildCount(); i++ {
		pair := obj.Child(i)
		if pair == nil || pair.Kind() != "pair" {
			continue
		}
		keyNode := pair.ChildByFieldName("key")
		valueNode := pair.ChildByFieldName("value")
		if keyNode == nil || valueNode == nil {
			continue
		}
		key := nodeText(keyNode, content)
		key = unquote(key)

		switch valueNode.Kind() {
		case "string", "template_string":
			out.set(key, unescapeNewlines(unquote(nodeText(valueNode, content))))
		case "object":
			out.set(key, nodeFromObject(valueNode, content))
		}
	}
	return out
}

func nodeText(n *tree_sitter.Node, content []byte) string {
	if n == nil {
		return ""
	}
	start, end := n.StartByte(), n.EndByte()
	if int(end) > len(content) {
		end = uint(len(content))
	}
	return string(content[start:end])
}

// unquote strips a single layer of matching quote/backtick delimiters.
func unquote(s string) string {
	if len(s) < 2 {
		return s
	}
	first, last := s[0], s[len(s)-1]
	if (first == '\'' || first == '"' || first == '`') && first == last {
		return s[1 : len(s)-1]
	}
	return s
}
