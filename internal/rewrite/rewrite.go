// Package rewrite performs the in-place text transform: word-boundary
// symbol matching, optional marker-delimited region scoping, and a
// collection pass for the shuffle policy.
package rewrite

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"dexrand/internal/resolve"
)

// Engine rewrites symbol occurrences for one category. Construct once
// per category and reuse across files.
type Engine struct {
	pattern     *regexp.Regexp
	startMarker string
	endMarker   string

	// lineFilter, when set, exempts whole lines from matching: a line
	// for which it returns false passes through byte-identical. Used
	// for the forbidden-command check; deliberately line-scoped, not
	// occurrence-scoped.
	lineFilter func(line string) bool
}

// New builds an engine matching \b<prefix>_\w+\b, scoped by the given
// region markers (substring match anywhere within a line).
func New(prefix, startMarker, endMarker string) *Engine {
	return &Engine{
		pattern:     regexp.MustCompile(`\b` + regexp.QuoteMeta(prefix) + `_\w+\b`),
		startMarker: startMarker,
		endMarker:   endMarker,
	}
}

// WithLineFilter returns a copy of the engine that skips lines the
// filter rejects. Collection and replacement share the filter, which
// keeps the shuffle queue aligned with its occurrences.
func (e *Engine) WithLineFilter(f func(line string) bool) *Engine {
	clone := *e
	clone.lineFilter = f
	return &clone
}

// walk visits every substitution-eligible line and replaces it with
// fn's result. Ineligible lines (outside the active region, marker
// lines, filtered lines) pass through untouched.
func (e *Engine) walk(content string, fn func(line string) string) string {
	useMarkers := e.startMarker != "" && strings.Contains(content, e.startMarker)
	lines := strings.SplitAfter(content, "\n")
	var b strings.Builder
	b.Grow(len(content))

	inRegion := !useMarkers
	for _, line := range lines {
		isStart := useMarkers && strings.Contains(line, e.startMarker)
		if useMarkers {
			if isStart {
				inRegion = true
			} else if strings.Contains(line, e.endMarker) {
				inRegion = false
			}
		}
		eligible := inRegion && !isStart
		if eligible && e.lineFilter != nil && !e.lineFilter(line) {
			eligible = false
		}
		if eligible {
			b.WriteString(fn(line))
		} else {
			b.WriteString(line)
		}
	}
	return b.String()
}

// Rewrite replaces every eligible occurrence via the resolver and
// returns the new content plus the number of occurrences that actually
// changed.
func (e *Engine) Rewrite(content string, resolver resolve.Func) (string, int) {
	changed := 0
	out := e.walk(content, func(line string) string {
		return e.pattern.ReplaceAllStringFunc(line, func(sym string) string {
			next := resolver(sym)
			if next != sym {
				changed++
			}
			return next
		})
	})
	return out, changed
}

// Collect returns every eligible occurrence in line order, without
// modifying anything. Feeding files to Collect and then Rewrite in the
// same order yields matching occurrence sequences.
func (e *Engine) Collect(content string) []string {
	var out []string
	e.walk(content, func(line string) string {
		out = append(out, e.pattern.FindAllString(line, -1)...)
		return line
	})
	return out
}

// RewriteFile reads, transforms, and fully overwrites one target file.
func (e *Engine) RewriteFile(path string, resolver resolve.Func) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", path, err)
	}
	out, changed := e.Rewrite(string(data), resolver)
	if err := os.WriteFile(path, []byte(out), 0644); err != nil {
		return 0, fmt.Errorf("write %s: %w", path, err)
	}
	return changed, nil
}

// CollectFile is Collect over a file on disk.
func (e *Engine) CollectFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return e.Collect(string(data)), nil
}

// ForbiddenCommandFilter builds a line filter that rejects lines
// containing any of the tokens, case-insensitively. A rejected line is
// exempted wholesale, even if it also carries otherwise-eligible
// symbols.
func ForbiddenCommandFilter(tokens []string) func(string) bool {
	lowered := make([]string, len(tokens))
	for i, t := range tokens {
		lowered[i] = strings.ToLower(t)
	}
	return func(line string) bool {
		l := strings.ToLower(line)
		for _, t := range lowered {
			if strings.Contains(l, t) {
				return false
			}
		}
		return true
	}
}
