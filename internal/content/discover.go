package content

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// defaultExcludes are directory names skipped during discovery.
var defaultExcludes = []string{
	".git",
	"node_modules",
	".docsite",
	".idea",
	".vscode",
}

// Doc is a discovered markdown source with its derived route path.
type Doc struct {
	File string // slash path relative to the content dir
	Path string // route path, e.g. "/guides/styling"
}

// Discover walks dir for markdown files, honoring include and exclude
// glob patterns (doublestar syntax). Results come back ordered: the
// index first, then the remaining routes sorted by path, so derived
// route tables are stable across runs.
func Discover(dir string, include, exclude []string) ([]Doc, error) {
	var docs []Doc
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != dir && ExcludedDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(p, ".md") {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if !matchesInclude(rel, include) || matchesExclude(rel, exclude) {
			return nil
		}
		docs = append(docs, Doc{File: rel, Path: RoutePath(rel)})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", dir, err)
	}

	sort.Slice(docs, func(i, j int) bool {
		if (docs[i].Path == "/") != (docs[j].Path == "/") {
			return docs[i].Path == "/"
		}
		return docs[i].Path < docs[j].Path
	})
	return docs, nil
}

// RoutePath derives the canonical route for a markdown file:
// "index.md" → "/", "guide.md" → "/guide", "guides/index.md" → "/guides".
func RoutePath(rel string) string {
	p := strings.TrimSuffix(filepath.ToSlash(rel), ".md")
	if p == "index" {
		return "/"
	}
	p = strings.TrimSuffix(p, "/index")
	return "/" + p
}

// ExcludedDir reports whether a directory name is skipped during
// discovery and asset walks. Shared with the watcher so both sides
// ignore the same trees.
func ExcludedDir(name string) bool {
	for _, excl := range defaultExcludes {
		if strings.EqualFold(name, excl) {
			return true
		}
	}
	return false
}

// matchesInclude reports whether relPath matches any include pattern.
// An empty pattern list includes everything.
func matchesInclude(relPath string, patterns []string) bool {
	if len(patterns) == 0 {
		return true
	}
	return matchesAny(relPath, patterns)
}

// matchesExclude reports whether relPath matches any exclude pattern.
// An empty pattern list excludes nothing.
func matchesExclude(relPath string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}
	return matchesAny(relPath, patterns)
}

// matchesAny tries each glob against the full relative path and, as a
// convenience, the bare filename.
func matchesAny(relPath string, patterns []string) bool {
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if matched, err := doublestar.PathMatch(pattern, relPath); err == nil && matched {
			return true
		}
		base := filepath.Base(relPath)
		if matched, err := doublestar.PathMatch(pattern, base); err == nil && matched {
			return true
		}
	}
	return false
}
