// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package group

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/pdiddy/notekit/internal/logging"
)

const markdownExt = ".md"

var datePrefix = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})`)

// FindMarkdown walks root and returns every file whose name ends in .md, in
// walk order. Unreadable subdirectories are logged and skipped.
func FindMarkdown(root string, log logging.Logger) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			log.Warn("skipping unreadable path", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), markdownExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}
	return files, nil
}

// YearOf returns the year of a YYYY-MM-DD prefix on the base name of path.
func YearOf(path string) (string, bool) {
	m := datePrefix.FindStringSubmatch(filepath.Base(path))
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Groups maps a four-digit year to the files whose names start with it.
// Files keep their scan order within a year.
type Groups map[string][]string

// GroupByYear buckets paths by filename year. Paths without a date prefix
// are left out.
func GroupByYear(paths []string) Groups {
	g := make(Groups)
	for _, p := range paths {
		if year, ok := YearOf(p); ok {
			g[year] = append(g[year], p)
		}
	}
	return g
}

// Years returns the keys in ascending order.
func (g Groups) Years() []string {
	years := make([]string, 0, len(g))
	for y := range g {
		years = append(years, y)
	}
	sort.Strings(years)
	return years
}

// Len returns the number of grouped files.
func (g Groups) Len() int {
	n := 0
	for _, files := range g {
		n += len(files)
	}
	return n
}
