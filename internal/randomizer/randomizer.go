// Package randomizer drives a full run: build catalogs, pools, and the
// pin map once, then rewrite every target file for each enabled
// category. Categories fail independently; a missing source skips that
// category and the run moves on.
package randomizer

import (
	"errors"
	"fmt"
	"math/rand"
	"os"

	"go.uber.org/zap"

	"dexrand/internal/attr"
	"dexrand/internal/catalog"
	"dexrand/internal/config"
	"dexrand/internal/discover"
	"dexrand/internal/items"
	"dexrand/internal/pool"
	"dexrand/internal/resolve"
	"dexrand/internal/rewrite"
)

// Runner executes one randomization run. Everything random flows
// through the single injected source, so a fixed seed reproduces the
// run exactly.
type Runner struct {
	cfg    *config.Config
	rng    *rand.Rand
	log    *zap.Logger
	dryRun bool
}

// New builds a Runner. The configuration must already be validated.
func New(cfg *config.Config, rng *rand.Rand, log *zap.Logger, dryRun bool) *Runner {
	return &Runner{cfg: cfg, rng: rng, log: log, dryRun: dryRun}
}

// Run processes all categories in fixed order. Only a setup failure
// outside any category (none currently exist) would return an error;
// per-category problems are logged and skipped.
func (r *Runner) Run() error {
	if err := r.RunSpecies(); err != nil {
		r.log.Warn("species category skipped", zap.Error(err))
	}
	if err := r.RunAbilities(); err != nil {
		r.log.Warn("abilities category skipped", zap.Error(err))
	}
	if err := r.RunItems(); err != nil {
		r.log.Warn("items category skipped", zap.Error(err))
	}
	r.log.Info("randomization complete")
	return nil
}

// SpeciesPlan is everything decided before species files are touched.
type SpeciesPlan struct {
	Catalog    *catalog.Catalog
	Flat       []string
	Similarity pool.SimilarityTable
	PinMap     resolve.Pinned
}

// BuildSpeciesPlan loads the species catalog and attribute sources and
// fixes the pin map for this run. Similarity mode degrades to fully
// random when neither attribute source is usable.
func (r *Runner) BuildSpeciesPlan() (*SpeciesPlan, error) {
	sc := r.cfg.Species
	exclusions := catalog.ExclusionSet(sc.PoolExclusions)

	cat, err := catalog.LoadFile(r.abs(sc.Header), "SPECIES", exclusions)
	if err != nil {
		return nil, fmt.Errorf("species catalog: %w", err)
	}
	r.log.Info("species catalog loaded", zap.Int("count", cat.Len()))

	plan := &SpeciesPlan{
		Catalog: cat,
		Flat:    pool.Flat(cat, exclusions),
	}

	if sc.UseSimilarity {
		scores, err := attr.FromCSVFile(sc.StatsCSV, cat.Contains)
		if err != nil {
			if !errors.Is(err, attr.ErrUnavailable) {
				return nil, fmt.Errorf("stats csv: %w", err)
			}
			r.log.Info("stats csv unavailable, falling back to stats header",
				zap.String("csv", sc.StatsCSV))
			scores, err = attr.FromStatsHeaderFile(r.abs(sc.StatsHeader), exclusions)
			if err != nil {
				r.log.Warn("no attribute source usable, using fully random mode",
					zap.Error(err))
				scores = nil
			}
		}
		if len(scores) > 0 {
			plan.Similarity = pool.BuildSimilarity(scores, sc.Tolerance)
			r.log.Info("similarity pools built",
				zap.Int("scored_species", len(scores)),
				zap.Int("tolerance", sc.Tolerance))
		}
	}

	plan.PinMap = resolve.PinMap(sc.Pinned, plan.Similarity, plan.Flat, r.rng)
	for original, replacement := range plan.PinMap {
		r.log.Info("pinned replacement chosen",
			zap.String("original", original),
			zap.String("replacement", replacement))
	}
	return plan, nil
}

// RunSpecies randomizes species constants across the species target set.
func (r *Runner) RunSpecies() error {
	plan, err := r.BuildSpeciesPlan()
	if err != nil {
		return err
	}

	sc := r.cfg.Species
	resolvers := []resolve.Resolver{
		plan.PinMap,
		resolve.Protected(catalog.ExclusionSet(sc.Protected)),
	}
	if plan.Similarity != nil {
		resolvers = append(resolvers, resolve.Similarity{Table: plan.Similarity, Rand: r.rng})
	} else {
		resolvers = append(resolvers, resolve.FlatRandom{Pool: plan.Flat, Rand: r.rng})
	}

	targets, err := discover.Targets(discover.Options{
		Root:        r.cfg.Root,
		TargetName:  sc.AutoTargetName,
		ManualFiles: r.cfg.AbsPaths(sc.ManualFiles),
	})
	if err != nil {
		return fmt.Errorf("discover species targets: %w", err)
	}
	r.log.Info("species targets resolved", zap.Int("files", len(targets)))

	engine := rewrite.New("SPECIES", config.RegionStartMarker, config.RegionEndMarker)
	r.processFiles("species", engine, targets, resolve.Chain(resolvers...))
	return nil
}

// RunAbilities randomizes ability constants in the species info file.
func (r *Runner) RunAbilities() error {
	ac := r.cfg.Abilities
	protected := catalog.ExclusionSet(ac.Protected)

	cat, err := catalog.LoadFile(r.abs(ac.Header), "ABILITY", protected)
	if err != nil {
		return fmt.Errorf("ability catalog: %w", err)
	}
	r.log.Info("ability catalog loaded", zap.Int("count", cat.Len()))

	chain := resolve.Chain(
		resolve.Protected(protected),
		resolve.FlatRandom{Pool: cat.Symbols(), Rand: r.rng},
	)
	engine := rewrite.New("ABILITY", config.RegionStartMarker, config.RegionEndMarker)
	r.processFiles("abilities", engine, []string{r.abs(ac.DataFile)}, chain)
	return nil
}

// RunItems randomizes item constants: regular items are independent
// pocket-consistent picks, key items are shuffled bijectively across
// all occurrences so none is duplicated or lost.
func (r *Runner) RunItems() error {
	ic := r.cfg.Items
	pools, err := items.LoadFile(r.abs(ic.CatalogJSON), catalog.ExclusionSet(ic.PoolExclusions))
	if err != nil {
		return fmt.Errorf("item catalog: %w", err)
	}
	r.log.Info("item pools loaded",
		zap.Int("regular", len(pools.Regular)),
		zap.Int("key", len(pools.Key)))

	targets, err := discover.Targets(discover.Options{
		Root:              r.cfg.Root,
		TargetName:        ic.AutoTargetName,
		ManualFiles:       r.cfg.AbsPaths(ic.ManualFiles),
		ExcludedFiles:     r.cfg.AbsPaths(ic.ExcludedFiles),
		ExcludedDirMarker: ic.ExcludedDirMarker,
	})
	if err != nil {
		return fmt.Errorf("discover item targets: %w", err)
	}
	r.log.Info("item targets resolved", zap.Int("files", len(targets)))

	protected := catalog.ExclusionSet(ic.Protected)
	engine := rewrite.New("ITEM", config.RegionStartMarker, config.RegionEndMarker).
		WithLineFilter(rewrite.ForbiddenCommandFilter(ic.ForbiddenCommands))

	// First pass: collect key-item occurrences across all files in
	// processing order, then permute once.
	var keyOccurrences []string
	for _, path := range targets {
		occ, err := engine.CollectFile(path)
		if err != nil {
			r.log.Warn("skipping file during collection", zap.String("file", path), zap.Error(err))
			continue
		}
		for _, sym := range occ {
			if !protected[sym] && pools.PocketOf(sym) == items.PocketKey {
				keyOccurrences = append(keyOccurrences, sym)
			}
		}
	}
	queue := resolve.NewShuffleQueue(keyOccurrences, r.rng)
	r.log.Info("key item occurrences shuffled", zap.Int("count", len(keyOccurrences)))

	chain := resolve.Chain(
		resolve.Protected(protected),
		&pocketResolver{pools: pools, queue: queue, rng: r.rng},
	)
	r.processFiles("items", engine, targets, chain)

	if n := queue.Remaining(); n > 0 {
		r.log.Warn("shuffle queue not fully consumed", zap.Int("remaining", n))
	}
	return nil
}

// pocketResolver routes item symbols by pocket: key items consume the
// shuffle queue, regular items draw a fresh pick from the regular
// pool, unknown items stay put.
type pocketResolver struct {
	pools *items.Pools
	queue *resolve.ShuffleQueue
	rng   *rand.Rand
}

func (p *pocketResolver) Resolve(sym string) (string, bool) {
	switch p.pools.PocketOf(sym) {
	case items.PocketKey:
		return p.queue.Next(sym), true
	case items.PocketRegular:
		if len(p.pools.Regular) > 0 {
			return p.pools.Regular[p.rng.Intn(len(p.pools.Regular))], true
		}
	}
	return sym, true
}

// processFiles rewrites each target in order. Missing or unreadable
// files are reported and skipped; the run continues.
func (r *Runner) processFiles(category string, engine *rewrite.Engine, targets []string, resolver resolve.Func) {
	log := r.log.With(zap.String("category", category))
	for _, path := range targets {
		var changed int
		var err error
		if r.dryRun {
			var data []byte
			if data, err = os.ReadFile(path); err == nil {
				_, changed = engine.Rewrite(string(data), resolver)
			}
		} else {
			changed, err = engine.RewriteFile(path, resolver)
		}
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				log.Warn("file not found, skipping", zap.String("file", path))
			} else {
				log.Warn("file skipped", zap.String("file", path), zap.Error(err))
			}
			continue
		}
		log.Info("file processed",
			zap.String("file", path),
			zap.Int("replacements", changed),
			zap.Bool("dry_run", r.dryRun))
	}
}

func (r *Runner) abs(rel string) string {
	paths := r.cfg.AbsPaths([]string{rel})
	return paths[0]
}
