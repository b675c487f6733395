// Package cleanup resolves transient artifact patterns against a directory
// and deletes a pre-resolved list of files.
//
// Scanning and deletion are separate steps: Scan is the only
// place that knows about glob syntax, Remove only sees concrete file names.
package cleanup

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Report lists what a Remove call did.
type Report struct {
	Removed []string `json:"removed"`
	Missing []string `json:"missing,omitempty"`
}

// Scan returns the regular files of fsys matching any glob, followed by the
// named files that exist. Hidden files only match patterns that start with a
// dot. The result is de-duplicated and keeps first-seen order.
func Scan(fsys fs.FS, globs []string, named []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			files = append(files, name)
		}
	}

	for _, pattern := range globs {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid cleanup pattern %q", pattern)
		}
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("failed to scan pattern %q: %w", pattern, err)
		}
		slices.Sort(matches)
		for _, m := range matches {
			if isHidden(m) && !isHidden(pattern) {
				continue
			}
			add(m)
		}
	}

	for _, name := range named {
		info, err := fs.Stat(fsys, filepath.ToSlash(name))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("failed to stat %s: %w", name, err)
		}
		if !info.IsDir() {
			add(filepath.ToSlash(name))
		}
	}

	return files, nil
}

// isHidden reports whether any segment of a slash-separated path starts with a dot.
func isHidden(p string) bool {
	for _, seg := range strings.Split(p, "/") {
		if strings.HasPrefix(seg, ".") && seg != "." && seg != ".." {
			return true
		}
	}
	return false
}

// ScanDir is Scan over the directory dir.
func ScanDir(dir string, globs []string, named []string) ([]string, error) {
	return Scan(os.DirFS(dir), globs, named)
}

// Remove deletes every file (relative to dir). A file that is already gone is
// recorded as missing, not reported as an error. The first other failure stops the removal.
func Remove(dir string, files []string) (Report, error) {
	var report Report
	for _, name := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.Remove(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				report.Missing = append(report.Missing, name)
				continue
			}
			return report, fmt.Errorf("failed to remove %s: %w", name, err)
		}
		report.Removed = append(report.Removed, name)
	}
	return report, nil
}
