// Package walker implements the File Walker (C1): it enumerates the source
// files one extraction run should visit, applying extension filtering and
// the configured exclusions before handing each path to the dialect
// dispatcher.
package walker

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Options configures one walk. CatalogDir is always excluded so a run never
// re-visits the files it itself writes.
type Options struct {
	Root             string
	FileTypes        []string
	IgnoreDir        []string
	IgnoreFile       []string
	CatalogDir       string
	RespectGitignore bool
}

// Walk returns every file under opts.Root whose extension is in
// opts.FileTypes, in deterministic (lexical) path order — the order the
// orchestrator (C9) then processes files in, per §5's serial-per-file
// contract.
func Walk(opts Options) ([]string, error) {
	var gi *GitignoreParser
	if opts.RespectGitignore {
		gi = NewGitignoreParser()
		if err := gi.LoadGitignore(opts.Root); err != nil {
			return nil, err
		}
	}

	catalogAbs := ""
	if opts.CatalogDir != "" {
		catalogAbs = filepath.Clean(filepath.Join(opts.Root, opts.CatalogDir))
	}

	var out []string
	err := filepath.Walk(opts.Root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(opts.Root, path)
		if relErr != nil {
			return relErr
		}
		if rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if info.IsDir() {
			if isExcludedDir(rel, opts.IgnoreDir) {
				return filepath.SkipDir
			}
			if catalogAbs != "" && filepath.Clean(path) == catalogAbs {
				return filepath.SkipDir
			}
			if gi != nil && gi.ShouldIgnore(rel, true) {
				return filepath.SkipDir
			}
			return nil
		}

		if !hasFileType(path, opts.FileTypes) {
			return nil
		}
		if isExcludedFile(rel, opts.IgnoreFile) {
			return nil
		}
		if gi != nil && gi.ShouldIgnore(rel, false) {
			return nil
		}

		out = append(out, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(out)
	return out, nil
}

// WalkTarget implements §4.1's input contract: target is a comma-separated
// list of tokens. If the first token names a directory, the remaining
// tokens are ignored and the directory is walked recursively exactly as
// Walk does (opts.Root is overridden with that token). Otherwise every
// token is treated as an explicit file path — no recursion, no ignore-list
// filtering, just the extension filter and catalog-dir exclusion — and a
// token that doesn't resolve to an existing file is silently skipped.
func WalkTarget(target string, opts Options) ([]string, error) {
	tokens := splitTarget(target)
	if len(tokens) == 0 {
		return nil, nil
	}

	if info, err := os.Stat(tokens[0]); err == nil && info.IsDir() {
		opts.Root = tokens[0]
		return Walk(opts)
	}

	return walkExplicitFiles(tokens, opts)
}

func splitTarget(target string) []string {
	var out []string
	for _, tok := range strings.Split(target, ",") {
		tok = strings.TrimSpace(tok)
		if tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

// walkExplicitFiles resolves each of paths to an absolute path, applying
// the extension filter and catalog-dir exclusion but none of the
// directory-walk's ignore lists (there is no directory to walk).
func walkExplicitFiles(paths []string, opts Options) ([]string, error) {
	catalogAbs := ""
	if opts.CatalogDir != "" && opts.Root != "" {
		catalogAbs = filepath.Clean(filepath.Join(opts.Root, opts.CatalogDir))
	}

	var out []string
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			continue
		}
		info, err := os.Stat(abs)
		if err != nil || info.IsDir() {
			continue
		}
		if !hasFileType(abs, opts.FileTypes) {
			continue
		}
		if catalogAbs != "" && strings.HasPrefix(abs, catalogAbs+string(filepath.Separator)) {
			continue
		}
		out = append(out, abs)
	}

	sort.Strings(out)
	return out, nil
}

func hasFileType(path string, types []string) bool {
	ext := filepath.Ext(path)
	for _, t := range types {
		if t == ext {
			return true
		}
	}
	return false
}

func isExcludedDir(rel string, patterns []string) bool {
	base := filepath.Base(rel)
	for _, p := range patterns {
		if base == p || rel == p {
			return true
		}
		if matched, _ := doublestar.Match(p, rel); matched {
			return true
		}
	}
	return false
}

func isExcludedFile(rel string, patterns []string) bool {
	base := filepath.Base(rel)
	for _, p := range patterns {
		if matched, _ := doublestar.Match(p, rel); matched {
			return true
		}
		if matched, _ := doublestar.Match(p, base); matched {
			return true
		}
		if strings.HasSuffix(rel, "/"+p) {
			return true
		}
	}
	return false
}
