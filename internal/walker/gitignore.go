package walker

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// GitignoreParser implements the opt-in RespectGitignore exclusion source
// (§6): patterns are matched with the same doublestar glob engine the
// walker already uses for ignoreDir/ignoreFile, rather than a second,
// hand-rolled glob-to-regex compiler — one glob matcher for every
// exclusion source in this package.
type GitignoreParser struct {
	patterns []gitignorePattern
}

type gitignorePattern struct {
	Pattern   string
	Negate    bool
	Directory bool
	Absolute  bool
}

// NewGitignoreParser creates an empty parser.
func NewGitignoreParser() *GitignoreParser {
	return &GitignoreParser{}
}

// LoadGitignore reads rootPath/.gitignore, a no-op if the file is absent.
func (gp *GitignoreParser) LoadGitignore(rootPath string) error {
	file, err := os.Open(filepath.Join(rootPath, ".gitignore"))
	if err != nil {
		return nil
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		gp.patterns = append(gp.patterns, parseGitignoreLine(line))
	}
	return scanner.Err()
}

// AddPattern adds a single raw pattern line, for tests that don't want to
// write a .gitignore file to disk. Like LoadGitignore, it trims the line and
// skips it if blank or a "#" comment.
func (gp *GitignoreParser) AddPattern(line string) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return
	}
	gp.patterns = append(gp.patterns, parseGitignoreLine(line))
}

func parseGitignoreLine(line string) gitignorePattern {
	var p gitignorePattern
	if strings.HasPrefix(line, "!") {
		p.Negate = true
		line = line[1:]
	}
	if strings.HasSuffix(line, "/") {
		p.Directory = true
		line = strings.TrimSuffix(line, "/")
	}
	if strings.HasPrefix(line, "/") {
		p.Absolute = true
		line = line[1:]
	}
	p.Pattern = line
	return p
}

// ShouldIgnore reports whether path (slash-separated, relative to the
// watched root) is excluded, applying patterns in file order so a later
// negation overrides an earlier match — gitignore's own precedence rule.
func (gp *GitignoreParser) ShouldIgnore(path string, isDir bool) bool {
	path = filepath.ToSlash(path)

	ignored := false
	for _, p := range gp.patterns {
		if matchesGitignorePattern(p, path, isDir) {
			ignored = !p.Negate
		}
	}
	return ignored
}

// matchesGitignorePattern reports whether p matches path, honoring
// gitignore's directory-pattern-also-matches-contents rule and the
// relative-pattern-matches-any-path-component rule.
func matchesGitignorePattern(p gitignorePattern, path string, isDir bool) bool {
	if p.Directory && !isDir {
		// A directory-only pattern never matches the file itself; it
		// matches a file found underneath a directory with that name, at
		// any depth.
		return hasIgnoredAncestor(path, p.Pattern)
	}

	if p.Absolute {
		return globOrPrefixMatch(p.Pattern, path)
	}

	if globOrPrefixMatch(p.Pattern, path) {
		return true
	}
	// A relative pattern also matches against any suffix of the path, the
	// same "matches at any depth" behavior a real .gitignore gives a bare
	// pattern with no leading slash.
	parts := strings.Split(path, "/")
	for i := 1; i < len(parts); i++ {
		if globOrPrefixMatch(p.Pattern, strings.Join(parts[i:], "/")) {
			return true
		}
	}
	return false
}

// hasIgnoredAncestor reports whether name appears as one of path's
// directory components, excluding path's own final segment.
func hasIgnoredAncestor(path, name string) bool {
	parts := strings.Split(path, "/")
	for _, part := range parts[:len(parts)-1] {
		if part == name {
			return true
		}
	}
	return false
}

func globOrPrefixMatch(pattern, path string) bool {
	if matched, err := doublestar.Match(pattern, path); err == nil && matched {
		return true
	}
	return pattern == path
}

// GetExclusionPatterns renders the non-negated patterns as doublestar
// globs, for callers that want to fold gitignore exclusions into the same
// ignoreDir/ignoreFile glob list the walker already filters against.
func (gp *GitignoreParser) GetExclusionPatterns() []string {
	var out []string
	for _, p := range gp.patterns {
		if p.Negate {
			continue
		}
		out = append(out, toGlobPattern(p))
	}
	return out
}

func toGlobPattern(p gitignorePattern) string {
	if p.Directory {
		if p.Absolute {
			return p.Pattern + "/**"
		}
		return "**/" + p.Pattern + "/**"
	}
	if p.Absolute {
		return p.Pattern
	}
	return "**/" + p.Pattern
}
