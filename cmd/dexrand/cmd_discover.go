package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"dexrand/internal/discover"
)

// discoverCmd prints the resolved target file sets without touching
// anything, for checking manual lists and exclusions.
var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "List the target files each category would process",
	RunE:  runDiscover,
}

func runDiscover(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	speciesTargets, err := discover.Targets(discover.Options{
		Root:        cfg.Root,
		TargetName:  cfg.Species.AutoTargetName,
		ManualFiles: cfg.AbsPaths(cfg.Species.ManualFiles),
	})
	if err != nil {
		return fmt.Errorf("discover species targets: %w", err)
	}
	itemTargets, err := discover.Targets(discover.Options{
		Root:              cfg.Root,
		TargetName:        cfg.Items.AutoTargetName,
		ManualFiles:       cfg.AbsPaths(cfg.Items.ManualFiles),
		ExcludedFiles:     cfg.AbsPaths(cfg.Items.ExcludedFiles),
		ExcludedDirMarker: cfg.Items.ExcludedDirMarker,
	})
	if err != nil {
		return fmt.Errorf("discover item targets: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Species targets (%d):\n", len(speciesTargets))
	for _, p := range speciesTargets {
		fmt.Fprintf(out, "  %s\n", p)
	}
	fmt.Fprintf(out, "Ability targets (1):\n  %s\n", cfg.AbsPaths([]string{cfg.Abilities.DataFile})[0])
	fmt.Fprintf(out, "Item targets (%d):\n", len(itemTargets))
	for _, p := range itemTargets {
		fmt.Fprintf(out, "  %s\n", p)
	}
	return nil
}
