package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"dexrand/internal/randomizer"
)

// poolsCmd builds the species pools and pin map without processing any
// file, so a seed's starter picks can be inspected ahead of a run.
var poolsCmd = &cobra.Command{
	Use:   "pools",
	Short: "Summarize the species pools and pinned picks for a seed",
	RunE:  runPools,
}

func runPools(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	plan, err := randomizer.New(cfg, newRand(), logger, true).BuildSpeciesPlan()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Catalog: %d species\n", plan.Catalog.Len())
	fmt.Fprintf(out, "Flat pool: %d candidates\n", len(plan.Flat))
	if plan.Similarity != nil {
		fmt.Fprintf(out, "Similarity pools: %d entries (tolerance %d)\n",
			len(plan.Similarity), cfg.Species.Tolerance)
	} else {
		fmt.Fprintln(out, "Similarity pools: none (fully random mode)")
	}

	originals := make([]string, 0, len(plan.PinMap))
	for o := range plan.PinMap {
		originals = append(originals, o)
	}
	sort.Strings(originals)
	fmt.Fprintln(out, "Pinned picks:")
	for _, o := range originals {
		fmt.Fprintf(out, "  %s -> %s\n", o, plan.PinMap[o])
	}
	return nil
}
