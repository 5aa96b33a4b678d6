// Package discover assembles the per-category target file set: a
// static manual list plus a recursive scan for an exact filename,
// deduplicated and sorted for a deterministic processing order.
package discover

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// Options shape one discovery pass.
type Options struct {
	// Root is the tree to scan.
	Root string

	// TargetName is the exact filename collected during the walk.
	// Empty disables the scan, leaving only the manual list.
	TargetName string

	// ManualFiles are absolute paths always included.
	ManualFiles []string

	// ExcludedFiles are absolute paths always removed.
	ExcludedFiles []string

	// ExcludedDirMarker drops every path that sits under a directory
	// whose name contains this token.
	ExcludedDirMarker string
}

// Targets returns the deduplicated, lexicographically sorted file set.
// Walk errors on individual entries are skipped so one unreadable
// directory cannot sink the run.
func Targets(opts Options) ([]string, error) {
	seen := make(map[string]bool)
	for _, p := range opts.ManualFiles {
		seen[filepath.Clean(p)] = true
	}

	if opts.TargetName != "" {
		err := filepath.WalkDir(opts.Root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if d != nil && d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.IsDir() && d.Name() == opts.TargetName {
				seen[filepath.Clean(path)] = true
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", opts.Root, err)
		}
	}

	for _, p := range opts.ExcludedFiles {
		delete(seen, filepath.Clean(p))
	}

	out := make([]string, 0, len(seen))
	for p := range seen {
		if opts.ExcludedDirMarker != "" && underMarkedDir(p, opts.ExcludedDirMarker) {
			continue
		}
		out = append(out, p)
	}
	sort.Strings(out)
	return out, nil
}

// underMarkedDir reports whether any directory component of path
// contains the marker token.
func underMarkedDir(path, marker string) bool {
	dir := filepath.Dir(path)
	for _, part := range strings.Split(dir, string(filepath.Separator)) {
		if part != "" && strings.Contains(part, marker) {
			return true
		}
	}
	return false
}
