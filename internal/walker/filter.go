package walker

import (
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultExcludes are directory names never descended into.
var DefaultExcludes = []string{
	"node_modules",
	"vendor",
	".git",
	".lightpack",
	".idea",
	".vscode",
}

func shouldExcludeDir(name string) bool {
	return slices.ContainsFunc(DefaultExcludes, func(excl string) bool {
		return strings.EqualFold(name, excl)
	})
}

// MatchesInclude reports whether relPath matches one of the include
// patterns. No patterns include everything.
func MatchesInclude(relPath string, patterns []string) bool {
	return len(patterns) == 0 || matchesAny(relPath, patterns)
}

// MatchesExclude reports whether relPath matches one of the exclude patterns.
func MatchesExclude(relPath string, patterns []string) bool {
	return len(patterns) > 0 && matchesAny(relPath, patterns)
}

// matchesAny tries each doublestar pattern against the full slash path and
// against the base name, so "*.md" selects Markdown at any depth.
func matchesAny(relPath string, patterns []string) bool {
	normalized := filepath.ToSlash(relPath)
	base := path.Base(normalized)
	for _, p := range patterns {
		p = filepath.ToSlash(p)
		if ok, err := doublestar.Match(p, normalized); err == nil && ok {
			return true
		}
		if ok, err := doublestar.Match(p, base); err == nil && ok {
			return true
		}
	}
	return false
}
