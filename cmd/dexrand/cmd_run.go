package main

import (
	"github.com/spf13/cobra"

	"dexrand/internal/randomizer"
)

// runCmd executes the full randomization pass.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Randomize species, abilities, and items across the project",
	Long: `Runs every enabled category in order:

  1. Species: similarity-constrained swap when an attribute source is
     available, fully random otherwise. Starters are pinned to one
     run-global replacement each.
  2. Abilities: fully random over the ability catalog.
  3. Items: pocket-consistent random picks for regular items and a
     bijective shuffle for key items.

A category whose required source is missing is skipped; the rest of
the run continues.`,
	RunE: runRandomizer,
}

func runRandomizer(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return randomizer.New(cfg, newRand(), logger, dryRun).Run()
}
