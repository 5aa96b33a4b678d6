// Package resolve decides what each matched symbol becomes. The policy
// chain is fixed: pinned mapping, protected passthrough, similarity
// pool, flat random pick, identity. A shuffle queue covers the one
// category that needs a bijective reassignment instead of independent
// picks.
package resolve

import (
	"math/rand"

	"dexrand/internal/pool"
)

// Resolver maps one symbol to its replacement. The second return is
// false when this resolver has no opinion and the chain should move on.
type Resolver interface {
	Resolve(sym string) (string, bool)
}

// Func is the terminal form consumed by the substitution engine.
type Func func(sym string) string

// Chain composes resolvers in fixed order; the first one that handles
// the symbol wins, and an unhandled symbol resolves to itself.
func Chain(rs ...Resolver) Func {
	return func(sym string) string {
		for _, r := range rs {
			if out, ok := r.Resolve(sym); ok {
				return out
			}
		}
		return sym
	}
}

// Pinned resolves symbols that were assigned a run-global replacement
// up front.
type Pinned map[string]string

func (p Pinned) Resolve(sym string) (string, bool) {
	out, ok := p[sym]
	return out, ok
}

// Protected resolves listed symbols to themselves, shielding them from
// every later policy.
type Protected map[string]bool

func (p Protected) Resolve(sym string) (string, bool) {
	if p[sym] {
		return sym, true
	}
	return "", false
}

// Similarity picks uniformly from the symbol's similarity pool. When
// similarity mode is active it terminates the chain for every symbol:
// a symbol without a pool entry is deliberately left unchanged rather
// than passed on to a looser policy.
type Similarity struct {
	Table pool.SimilarityTable
	Rand  *rand.Rand
}

func (s Similarity) Resolve(sym string) (string, bool) {
	p := s.Table.Pool(sym)
	if len(p) == 0 {
		return sym, true
	}
	return p[s.Rand.Intn(len(p))], true
}

// FlatRandom picks uniformly from a flat candidate pool. An empty pool
// defers to the chain fallback.
type FlatRandom struct {
	Pool []string
	Rand *rand.Rand
}

func (f FlatRandom) Resolve(sym string) (string, bool) {
	if len(f.Pool) == 0 {
		return "", false
	}
	return f.Pool[f.Rand.Intn(len(f.Pool))], true
}

// PinMap chooses the run-global replacement for each pinned symbol.
// With a similarity table the pick comes from the symbol's own pool
// (identity when it has none); otherwise from the flat pool. Chosen
// exactly once, before any file is touched, so every occurrence in
// every file maps the same way.
func PinMap(pinned []string, table pool.SimilarityTable, flat []string, rng *rand.Rand) Pinned {
	m := make(Pinned, len(pinned))
	for _, sym := range pinned {
		switch {
		case table != nil:
			if p := table.Pool(sym); len(p) > 0 {
				m[sym] = p[rng.Intn(len(p))]
			} else {
				m[sym] = sym
			}
		case len(flat) > 0:
			m[sym] = flat[rng.Intn(len(flat))]
		default:
			m[sym] = sym
		}
	}
	return m
}

// ShuffleQueue hands out a pre-permuted sequence of symbols, one per
// call, in the order occurrences were collected. Because the permuted
// multiset equals the collected multiset, consuming it end to end is a
// bijection over the original occurrences.
type ShuffleQueue struct {
	values []string
	next   int
}

// NewShuffleQueue permutes the collected occurrences with the supplied
// source.
func NewShuffleQueue(collected []string, rng *rand.Rand) *ShuffleQueue {
	values := make([]string, len(collected))
	copy(values, collected)
	rng.Shuffle(len(values), func(i, j int) {
		values[i], values[j] = values[j], values[i]
	})
	return &ShuffleQueue{values: values}
}

// Next returns the following permuted value. Exhaustion returns the
// input unchanged; it only happens if collection and replacement
// disagree about eligibility.
func (q *ShuffleQueue) Next(sym string) string {
	if q.next >= len(q.values) {
		return sym
	}
	out := q.values[q.next]
	q.next++
	return out
}

// Remaining reports how many permuted values are still unconsumed.
func (q *ShuffleQueue) Remaining() int {
	return len(q.values) - q.next
}
