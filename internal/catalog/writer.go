package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/sinocarta/hanzi-extract/internal/pipeerr"
)

// Entry is one key assignment the Key Synthesizer (C6) flagged as needing a
// catalog write.
type Entry struct {
	// Key is the full dotted key, e.g. "common.tiJiao" or "pages.user.queRen2".
	Key   string
	Value string
}

// Writer persists Catalog Entries to disk, creating namespace files and the
// aggregator on demand (§4.8). Per-file changes are staged and committed
// together by WriteAll so a crash can't leave the catalog ahead of a file
// whose rewrite hasn't been persisted yet (§9's open ordering question,
// resolved in favor of "commit once the file's bytes are safely written").
type Writer struct {
	Store             *Store
	ValidateDuplicate bool
}

// NewWriter returns a Writer bound to store.
func NewWriter(store *Store, validateDuplicate bool) *Writer {
	return &Writer{Store: store, ValidateDuplicate: validateDuplicate}
}

// WriteAll commits every entry for one file's rewrite. Entries must already
// be deduplicated by key (the key synthesizer's per-file memo guarantees
// this — §4.6 step 5). Returns a *pipeerr.Error with ClassDuplicateKey if
// ValidateDuplicate is set and an entry would rebind an existing key to a
// different value; no entries are written once that happens.
func (w *Writer) WriteAll(entries []Entry) error {
	for _, e := range entries {
		if err := w.writeOne(e); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writeOne(e Entry) error {
	ns, fullKey, err := splitKey(e.Key)
	if err != nil {
		return pipeerr.IO("catalog_key", e.Key, err)
	}

	if w.ValidateDuplicate {
		if existing, ok := w.Store.LookupByKey(e.Key); ok && existing != e.Value {
			return pipeerr.DuplicateKey(w.Store.namespacePath(ns),
				fmt.Errorf("key %q already bound to %q, cannot rebind to %q", e.Key, existing, e.Value))
		}
	}

	isNewFile := !w.Store.NamespaceExists(ns)
	node := w.Store.Namespace(ns)
	node.SetPath(fullKey, unescapeNewlines(e.Value))

	content := "export default " + Render(node, 0) + ";\n"
	if err := os.MkdirAll(w.Store.Dir, 0o755); err != nil {
		return pipeerr.IO("create_catalog_dir", w.Store.Dir, err)
	}
	if err := os.WriteFile(w.Store.namespacePath(ns), []byte(content), 0o644); err != nil {
		return pipeerr.IO("write_namespace", w.Store.namespacePath(ns), err)
	}
	w.Store.setNamespace(ns, node)

	if isNewFile {
		if err := w.registerNamespace(ns); err != nil {
			return err
		}
	}
	return nil
}

// splitKey parses the bare "<namespace>.<rest...>" form (the synthesizer's
// keys carry no lookup-symbol prefix) into its namespace and remaining
// dotted path. The first segment is always taken as the namespace; a
// leading "I18N." segment is not stripped.
func splitKey(key string) (ns, fullKey string, err error) {
	parts := strings.SplitN(key, ".", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("key %q has no namespace segment", key)
	}
	return parts[0], parts[1], nil
}

func (w *Writer) aggregatorPath() string {
	return filepath.Join(w.Store.Dir, "index"+w.Store.Ext)
}

var aggregatorBodyRe = regexp.MustCompile(`(?s)export default\s+(Object\.assign\(\{\},\s*)?\{(.*?)\}\s*(\))?\s*;?\s*\z`)

// registerNamespace adds ns to the aggregator file, creating the aggregator
// if it doesn't exist yet, and tolerating both the `Object.assign({}, {...})`
// and bare `{...}` default-export forms on an existing one (§4.8).
func (w *Writer) registerNamespace(ns string) error {
	path := w.aggregatorPath()
	content, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return pipeerr.IO("read_aggregator", path, err)
		}
		return os.WriteFile(path, []byte(newAggregatorContent(ns)), 0o644)
	}

	updated, err := addNamespaceToAggregator(string(content), ns)
	if err != nil {
		return pipeerr.IO("update_aggregator", path, err)
	}
	return os.WriteFile(path, []byte(updated), 0o644)
}

func newAggregatorContent(ns string) string {
	return fmt.Sprintf("import %s from './%s';\n\nexport default {\n  %s,\n};\n", ns, ns, ns)
}

// addNamespaceToAggregator adds one import line after the first existing
// import, and one comma-separated member before the closing brace of the
// default export.
func addNamespaceToAggregator(content, ns string) (string, error) {
	lines := strings.Split(content, "\n")
	importIdx := -1
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "import ") {
			importIdx = i
			break
		}
	}
	newImport := fmt.Sprintf("import %s from './%s';", ns, ns)
	if importIdx == -1 {
		lines = append([]string{newImport, ""}, lines...)
	} else {
		lines = append(lines[:importIdx+1], append([]string{newImport}, lines[importIdx+1:]...)...)
	}
	content = strings.Join(lines, "\n")

	m := aggregatorBodyRe.FindStringSubmatchIndex(content)
	if m == nil {
		// No recognizable default export — append a fresh one.
		return content + fmt.Sprintf("\nexport default {\n  %s,\n};\n", ns), nil
	}

	assignPrefix := ""
	if m[2] != -1 {
		assignPrefix = content[m[2]:m[3]]
	}
	body := content[m[4]:m[5]]
	closingParen := ""
	if m[6] != -1 {
		closingParen = content[m[6]:m[7]]
	}

	trimmedBody := strings.TrimRight(body, " \t\n")
	if trimmedBody != "" && !strings.HasSuffix(trimmedBody, ",") {
		trimmedBody += ","
	}
	newBody := trimmedBody + "\n  " + ns + ",\n"

	replacement := "export default " + assignPrefix + "{" + newBody + "}" + closingParen + ";\n"
	return content[:m[0]] + replacement + content[m[1]:], nil
}
