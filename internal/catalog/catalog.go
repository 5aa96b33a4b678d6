// Package catalog loads the valid symbol list for one category from a
// constant-definitions header.
package catalog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
)

// ErrUnavailable reports that a catalog source could not be opened.
// Callers decide whether to skip the category or fall back.
var ErrUnavailable = errors.New("catalog source unavailable")

// Catalog is the ordered set of valid symbols for one category. It is
// immutable after construction.
type Catalog struct {
	symbols []string
	index   map[string]int
}

// Load scans line-oriented text for `#define <prefix>_NAME` declarations
// and returns the distinct names in first-seen order, minus exclusions.
func Load(r io.Reader, prefix string, exclude map[string]bool) (*Catalog, error) {
	pattern, err := regexp.Compile(`^#define (` + regexp.QuoteMeta(prefix) + `_\w+)\s`)
	if err != nil {
		return nil, fmt.Errorf("compile symbol pattern for prefix %q: %w", prefix, err)
	}

	c := &Catalog{index: make(map[string]int)}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		m := pattern.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}
		name := m[1]
		if exclude[name] {
			continue
		}
		if _, seen := c.index[name]; seen {
			continue
		}
		c.index[name] = len(c.symbols)
		c.symbols = append(c.symbols, name)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan catalog source: %w", err)
	}
	return c, nil
}

// LoadFile is Load over a file path. A missing file yields ErrUnavailable.
func LoadFile(path, prefix string, exclude map[string]bool) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrUnavailable, path)
		}
		return nil, fmt.Errorf("open catalog source %s: %w", path, err)
	}
	defer f.Close()
	return Load(f, prefix, exclude)
}

// Symbols returns the catalog contents in first-seen order. The caller
// must not modify the returned slice.
func (c *Catalog) Symbols() []string {
	return c.symbols
}

// Contains reports whether the symbol is part of the catalog.
func (c *Catalog) Contains(sym string) bool {
	_, ok := c.index[sym]
	return ok
}

// Len returns the number of symbols.
func (c *Catalog) Len() int {
	return len(c.symbols)
}

// ExclusionSet converts a symbol list into the lookup form Load expects.
func ExclusionSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}
