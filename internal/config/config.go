// Package config loads a project's .hanzi.kdl file into a Config, using the
// same kdl-go document-tree traversal idiom as the teacher's project
// configuration loader.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"
)

// Config is the resolved set of options for one extraction run, covering
// exactly the keys described in the external interfaces section plus the
// ambient additions (htmlEnabled, validateDuplicate, respectGitignore, and
// watch-mode fields) carried regardless of the distilled spec's non-goals.
type Config struct {
	KiwiDir string
	SrcLang string
	// FileType lists the source extensions the walker visits. The spec's
	// key table describes this key as "catalog file extension" instead;
	// CatalogExt carries that meaning so both needs are served without
	// overloading one field (see DESIGN.md).
	FileType               []string
	CatalogExt             string
	IgnoreDir              []string
	IgnoreFile             []string
	DefaultTranslateKeyAPI string
	ImportI18N             string
	VueVersion             int

	HTMLEnabled       bool
	ValidateDuplicate bool
	RespectGitignore  bool

	WatchMode       bool
	WatchDebounceMs int
}

// Default returns the configuration a project gets when it carries no
// .hanzi.kdl at all.
func Default() *Config {
	return &Config{
		KiwiDir:                "src/locales",
		SrcLang:                "zh-CN",
		FileType:               []string{".ts", ".tsx", ".js", ".jsx", ".vue"},
		CatalogExt:             ".ts",
		IgnoreDir:              []string{"node_modules", "dist", "build"},
		IgnoreFile:             nil,
		DefaultTranslateKeyAPI: "pinyin",
		ImportI18N:             "I18N",
		VueVersion:             3,
		HTMLEnabled:            false,
		ValidateDuplicate:      false,
		RespectGitignore:       true,
		WatchMode:              false,
		WatchDebounceMs:        300,
	}
}

// Load reads <projectRoot>/.hanzi.kdl, falling back to Default() if the file
// doesn't exist — a missing project config is not an error, matching the
// teacher's LoadKDL contract.
func Load(projectRoot string) (*Config, error) {
	path := filepath.Join(projectRoot, ".hanzi.kdl")
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return parseKDL(string(content))
}

func parseKDL(content string) (*Config, error) {
	cfg := Default()

	doc, err := kdl.Parse(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("parse .hanzi.kdl: %w", err)
	}

	for _, n := range doc.Nodes {
		switch nodeName(n) {
		case "kiwiDir":
			assignSimpleString(n, func(v string) { cfg.KiwiDir = v })
		case "srcLang":
			assignSimpleString(n, func(v string) { cfg.SrcLang = v })
		case "defaultTranslateKeyApi":
			assignSimpleString(n, func(v string) { cfg.DefaultTranslateKeyAPI = v })
		case "importI18N":
			assignSimpleString(n, func(v string) { cfg.ImportI18N = v })
		case "vueVersion":
			if v, ok := firstIntArg(n); ok {
				cfg.VueVersion = v
			}
		case "htmlEnabled":
			if b, ok := firstBoolArg(n); ok {
				cfg.HTMLEnabled = b
			}
		case "validateDuplicate":
			if b, ok := firstBoolArg(n); ok {
				cfg.ValidateDuplicate = b
			}
		case "respectGitignore":
			if b, ok := firstBoolArg(n); ok {
				cfg.RespectGitignore = b
			}
		case "watchMode":
			if b, ok := firstBoolArg(n); ok {
				cfg.WatchMode = b
			}
		case "watchDebounceMs":
			if v, ok := firstIntArg(n); ok {
				cfg.WatchDebounceMs = v
			}
		case "fileType":
			if vals := collectStringArgs(n); len(vals) > 0 {
				cfg.FileType = vals
			}
		case "catalogExt":
			assignSimpleString(n, func(v string) { cfg.CatalogExt = v })
		case "ignoreDir":
			if vals := collectStringArgs(n); len(vals) > 0 {
				cfg.IgnoreDir = vals
			}
		case "ignoreFile":
			if vals := collectStringArgs(n); len(vals) > 0 {
				cfg.IgnoreFile = vals
			}
		}
	}

	return cfg, nil
}

func nodeName(n *document.Node) string {
	if n == nil || n.Name == nil {
		return ""
	}
	return n.Name.NodeNameString()
}

func firstIntArg(n *document.Node) (int, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

func firstStringArg(n *document.Node) (string, bool) {
	if len(n.Arguments) == 0 {
		return "", false
	}
	if s, ok := n.Arguments[0].Value.(string); ok {
		return s, true
	}
	return "", false
}

func firstBoolArg(n *document.Node) (bool, bool) {
	if len(n.Arguments) == 0 {
		return false, false
	}
	if b, ok := n.Arguments[0].Value.(bool); ok {
		return b, true
	}
	return false, false
}

// collectStringArgs reads a node's arguments as strings, falling back to
// treating each child node's own name as a string element — KDL's block form
// for a list, e.g. `ignoreDir { "node_modules" "dist" }`.
func collectStringArgs(n *document.Node) []string {
	if n == nil {
		return nil
	}
	out := make([]string, 0, len(n.Arguments))
	for _, a := range n.Arguments {
		if s, ok := a.Value.(string); ok {
			out = append(out, s)
		}
	}
	if len(out) == 0 && len(n.Children) > 0 {
		for _, child := range n.Children {
			if s, ok := firstStringArg(child); ok {
				out = append(out, s)
			} else if child.Name != nil {
				if s, ok := child.Name.Value.(string); ok {
					out = append(out, s)
				}
			}
		}
	}
	return out
}

func assignSimpleString(n *document.Node, set func(string)) {
	if s, ok := firstStringArg(n); ok {
		set(s)
	}
}

// CatalogDir returns the directory a Store should load/write, kiwiDir
// joined with the source language (§6: "src/locales/zh-CN").
func (c *Config) CatalogDir() string {
	return filepath.Join(c.KiwiDir, c.SrcLang)
}

var importStatementRe = regexp.MustCompile(`import\s+(\w+)\s+from\s+['"]([^'"]+)['"]`)

// ImportSymbol returns the identifier rewritten references are qualified
// under. importI18N is allowed to hold either a bare symbol ("I18N") or a
// full import statement ("import I18N from '@/utils/i18n';") — the latter
// is what §6's key table calls "import statement text to inject".
func (c *Config) ImportSymbol() string {
	if m := importStatementRe.FindStringSubmatch(c.ImportI18N); m != nil {
		return m[1]
	}
	return c.ImportI18N
}

// ImportPath returns the module specifier the lookup symbol's import
// should come from, defaulting when importI18N was configured as a bare
// symbol rather than a full statement.
func (c *Config) ImportPath() string {
	if m := importStatementRe.FindStringSubmatch(c.ImportI18N); m != nil {
		return m[2]
	}
	return "@/utils/i18n"
}

// HasFileType reports whether ext (with leading dot) is among the
// configured file types the walker should visit.
func (c *Config) HasFileType(ext string) bool {
	for _, t := range c.FileType {
		if t == ext {
			return true
		}
	}
	return false
}
