// Package pathutil converts between absolute and relative paths.
//
// The pipeline works in absolute paths internally (the walker, extractors,
// and rewriter all key off os.ReadFile/os.WriteFile's own path), but the
// run report shown to a user should read in project-relative form.
package pathutil

import (
	"path/filepath"
	"strings"
)

// ToRelative converts an absolute path to relative based on a root
// directory. Falls back to the original path if conversion fails or the
// path is already relative, or falls outside root.
//
// Examples:
//   - ToRelative("/home/user/project/src/main.ts", "/home/user/project") → "src/main.ts"
//   - ToRelative("/other/location/file.ts", "/home/user/project") → "/other/location/file.ts" (outside root)
//   - ToRelative("src/main.ts", "/home/user/project") → "src/main.ts" (already relative)
func ToRelative(absPath, rootDir string) string {
	if absPath == "" || rootDir == "" {
		return absPath
	}
	if !filepath.IsAbs(absPath) {
		return absPath
	}

	absPath = filepath.Clean(absPath)
	rootDir = filepath.Clean(rootDir)

	relPath, err := filepath.Rel(rootDir, absPath)
	if err != nil {
		return absPath
	}
	if strings.HasPrefix(relPath, "..") {
		return absPath
	}
	return relPath
}
