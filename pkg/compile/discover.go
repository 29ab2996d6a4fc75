package compile

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// PathMatcher decides whether a file name is excluded by user patterns.
type PathMatcher interface {
	MatchesPath(path string) bool
}

// Discover lists the files directly inside dir whose extension is ext,
// drops every path in excluded and every name matched by m, and returns the
// rest sorted lexicographically by path. Hidden files and directories are
// never candidates. m may be nil.
func Discover(dir, ext string, excluded []string, m PathMatcher) ([]Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	skip := make(map[string]bool, len(excluded))
	for _, p := range excluded {
		skip[filepath.Clean(p)] = true
	}

	var docs []Document
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || filepath.Ext(name) != ext {
			continue
		}

		path := filepath.Join(dir, name)
		if skip[path] {
			continue
		}
		if m != nil && m.MatchesPath(name) {
			continue
		}

		doc := Document{
			Path: path,
			Name: strings.TrimSuffix(name, ext),
		}
		// A file that vanished between listing and stat stays a candidate;
		// ProcessCandidate reports it.
		if info, err := entry.Info(); err == nil {
			doc.Size = info.Size()
		}
		docs = append(docs, doc)
	}

	sort.Slice(docs, func(i, j int) bool {
		return docs[i].Path < docs[j].Path
	})
	return docs, nil
}
