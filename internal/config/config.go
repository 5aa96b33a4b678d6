// Package config holds the immutable run configuration for dexrand.
// Defaults mirror the constants the tool has always shipped with; an
// optional YAML file overlays them so a project can tune pools and
// target lists without rebuilding.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Region marker tokens. Recognized as substrings anywhere within a line.
const (
	RegionStartMarker = "// RANDOMIZER_START"
	RegionEndMarker   = "// RANDOMIZER_END"
)

// Config is the full run configuration. It is built once per run and
// never mutated afterwards; components receive it (or a sub-config) at
// construction.
type Config struct {
	// Root is the project tree being randomized. Set from the CLI, not
	// the YAML file.
	Root string `yaml:"-"`

	Species   SpeciesConfig   `yaml:"species"`
	Abilities AbilitiesConfig `yaml:"abilities"`
	Items     ItemsConfig     `yaml:"items"`
}

// SpeciesConfig configures the species category.
type SpeciesConfig struct {
	// UseSimilarity selects similarity-constrained swaps over fully
	// random replacement when an attribute source can be loaded.
	UseSimilarity bool `yaml:"use_similarity"`

	// Tolerance is the +/- window on base stat totals for two species
	// to count as similar.
	Tolerance int `yaml:"tolerance"`

	// Header is the species constant definitions file, relative to Root.
	Header string `yaml:"header"`

	// StatsCSV is the primary attribute source (Name/Total columns).
	StatsCSV string `yaml:"stats_csv"`

	// StatsHeader is the fallback attribute source, relative to Root.
	StatsHeader string `yaml:"stats_header"`

	// ManualFiles are always-processed targets, relative to Root.
	ManualFiles []string `yaml:"manual_files"`

	// AutoTargetName is the exact filename discovered recursively.
	AutoTargetName string `yaml:"auto_target_name"`

	// PoolExclusions never appear as replacement results.
	PoolExclusions []string `yaml:"pool_exclusions"`

	// Protected are never replaced wherever they occur.
	Protected []string `yaml:"protected"`

	// Pinned symbols get one run-global replacement each.
	Pinned []string `yaml:"pinned"`
}

// AbilitiesConfig configures the ability category.
type AbilitiesConfig struct {
	Header    string   `yaml:"header"`
	DataFile  string   `yaml:"data_file"`
	Protected []string `yaml:"protected"`
}

// ItemsConfig configures the item category.
type ItemsConfig struct {
	CatalogJSON    string   `yaml:"catalog_json"`
	ManualFiles    []string `yaml:"manual_files"`
	ExcludedFiles  []string `yaml:"excluded_files"`
	AutoTargetName string   `yaml:"auto_target_name"`
	PoolExclusions []string `yaml:"pool_exclusions"`
	Protected      []string `yaml:"protected"`

	// ForbiddenCommands exempts a whole line from key-item shuffle
	// collection when any token matches case-insensitively.
	ForbiddenCommands []string `yaml:"forbidden_commands"`

	// ExcludedDirMarker drops any discovered path that sits under a
	// directory whose name contains this token.
	ExcludedDirMarker string `yaml:"excluded_dir_marker"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Species: SpeciesConfig{
			UseSimilarity: true,
			Tolerance:     75,
			Header:        filepath.Join("include", "constants", "species.h"),
			StatsCSV:      "pokemon.csv",
			StatsHeader:   filepath.Join("src", "data", "pokemon", "base_stats.h"),
			ManualFiles: []string{
				"src/data/wild_encounters.h",
				"src/data/trainer_parties.h",
				"src/oak_speech.c",
				"src/data/ingame_trades.h",
				"src/field_specials.c",
			},
			AutoTargetName: "scripts.inc",
			PoolExclusions: speciesPoolExclusions(),
			Protected:      []string{"SPECIES_NONE", "SPECIES_EGG"},
			Pinned: []string{
				"SPECIES_BULBASAUR",
				"SPECIES_CHARMANDER",
				"SPECIES_SQUIRTLE",
			},
		},
		Abilities: AbilitiesConfig{
			Header:   filepath.Join("include", "constants", "abilities.h"),
			DataFile: filepath.Join("src", "data", "pokemon", "species_info.h"),
			Protected: []string{
				"ABILITY_NONE",
				"ABILITY_WONDER_GUARD", // unbeatable when handed out at random
			},
		},
		Items: ItemsConfig{
			CatalogJSON: filepath.Join("src", "data", "items.json"),
			ManualFiles: []string{
				"src/field_specials.c",
				"src/script_menu.c",
				"src/daycare.c",
			},
			ExcludedFiles: []string{
				"src/data/pokemon_mart.c",
			},
			AutoTargetName: "scripts.inc",
			PoolExclusions: []string{"ITEM_NONE", "ITEM_BERRY_POUCH", "ITEM_TM_CASE"},
			Protected:      []string{"ITEM_NONE"},
			ForbiddenCommands: []string{
				"checkitem",
				"removeitem",
				"bufferitemname",
			},
			ExcludedDirMarker: "mart",
		},
	}
}

// speciesPoolExclusions builds the default result-exclusion list: the
// placeholder species plus every Unown letter form.
func speciesPoolExclusions() []string {
	out := []string{"SPECIES_NONE", "SPECIES_EGG", "SPECIES_UNOWN"}
	for c := 'B'; c <= 'Z'; c++ {
		out = append(out,
			fmt.Sprintf("SPECIES_OLD_UNOWN_%c", c),
			fmt.Sprintf("SPECIES_UNOWN_%c", c),
		)
	}
	return append(out, "SPECIES_UNOWN_EMARK", "SPECIES_UNOWN_QMARK")
}

// Load returns the defaults overlaid with the YAML file at path. An
// empty path returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports obviously unusable settings before a run starts.
func (c *Config) Validate() error {
	if c.Root == "" {
		return fmt.Errorf("project root required")
	}
	if c.Species.Tolerance < 0 {
		return fmt.Errorf("species tolerance must be >= 0, got %d", c.Species.Tolerance)
	}
	return nil
}

// AbsPaths resolves the given root-relative paths against Root.
func (c *Config) AbsPaths(rel []string) []string {
	out := make([]string, 0, len(rel))
	for _, p := range rel {
		out = append(out, filepath.Join(c.Root, filepath.FromSlash(p)))
	}
	return out
}
