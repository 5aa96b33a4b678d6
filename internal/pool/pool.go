// Package pool turns a catalog (plus optional attribute scores) into the
// candidate pools substitution draws from.
package pool

import (
	"sort"

	"dexrand/internal/attr"
	"dexrand/internal/catalog"
)

// Flat returns the catalog minus the result-exclusion set, preserving
// catalog order. These are the symbols allowed to appear as replacement
// results under the fully-random policy.
func Flat(c *catalog.Catalog, exclude map[string]bool) []string {
	out := make([]string, 0, c.Len())
	for _, s := range c.Symbols() {
		if exclude[s] {
			continue
		}
		out = append(out, s)
	}
	return out
}

// SimilarityTable maps each scored symbol to the symbols whose score
// falls within the tolerance window. Built once, read-only afterwards.
type SimilarityTable map[string][]string

// BuildSimilarity computes the pairwise table: b is in a's pool iff
// |score(a)-score(b)| <= tolerance. The window is inclusive and
// symmetric, and every symbol's pool contains at least itself. Symbols
// absent from the attribute map get no entry at all.
func BuildSimilarity(scores attr.Map, tolerance int) SimilarityTable {
	// Iterate a stable order so a seeded run is reproducible even
	// though map iteration is not.
	symbols := make([]string, 0, len(scores))
	for s := range scores {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)

	table := make(SimilarityTable, len(symbols))
	for _, a := range symbols {
		sa := scores[a]
		var pool []string
		for _, b := range symbols {
			if diff := sa - scores[b]; diff <= tolerance && -diff <= tolerance {
				pool = append(pool, b)
			}
		}
		table[a] = pool
	}
	return table
}

// Pool returns the similarity pool for sym, nil when the symbol has no
// entry.
func (t SimilarityTable) Pool(sym string) []string {
	return t[sym]
}
