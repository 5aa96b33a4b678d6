package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"dexrand/internal/config"
)

var (
	// Global flags
	verbose    bool
	rootDir    string
	configPath string
	seed       int64
	dryRun     bool

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "dexrand",
	Short: "dexrand - build-time constant randomizer for decomp projects",
	Long: `dexrand rewrites species, ability, and item constants across a
decompiled game source tree.

It builds valid symbol pools from the project's own headers and data
files, then substitutes occurrences in the target files according to
the configured policy: similarity-constrained swap, fully random pick,
or bijective shuffle. Region markers (// RANDOMIZER_START and
// RANDOMIZER_END) limit which lines of a file are eligible.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zcfg := zap.NewDevelopmentConfig()
		zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = logger.With(zap.String("run_id", uuid.NewString()))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: full randomization pass.
		return runRandomizer(cmd, args)
	},
}

// loadConfig resolves the effective configuration for this invocation.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if rootDir == "" {
		rootDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolve working directory: %w", err)
		}
	}
	cfg.Root = rootDir
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newRand builds the single random source for the run. Every random
// decision flows through it, so --seed reproduces a run bit for bit.
func newRand() *rand.Rand {
	s := seed
	if s == 0 {
		s = time.Now().UnixNano()
	}
	logger.Debug("random source seeded", zap.Int64("seed", s))
	return rand.New(rand.NewSource(s))
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "root", "r", "", "Project root to randomize (default: current directory)")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Optional YAML config overriding the built-in defaults")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "Random seed (0 = time-based)")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Report replacements without writing any file")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(poolsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
