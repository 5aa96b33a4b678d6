package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setGlobals(t *testing.T, root string) {
	t.Helper()
	logger = zap.NewNop()
	rootDir = root
	configPath = ""
	seed = 1
	dryRun = false
	t.Cleanup(func() {
		rootDir = ""
		seed = 0
	})
}

func TestLoadConfig(t *testing.T) {
	root := t.TempDir()
	setGlobals(t, root)

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, root, cfg.Root)
	assert.True(t, cfg.Species.UseSimilarity)
}

func TestDiscoverCmd(t *testing.T) {
	root := t.TempDir()
	setGlobals(t, root)

	scriptDir := filepath.Join(root, "data", "maps", "Route1")
	require.NoError(t, os.MkdirAll(scriptDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(scriptDir, "scripts.inc"), []byte("x\n"), 0644))

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	require.NoError(t, runDiscover(cmd, nil))
	out := buf.String()
	assert.Contains(t, out, "scripts.inc")
	assert.Contains(t, out, "Species targets")
	assert.Contains(t, out, "Item targets")
}

func TestRunCmdMissingSources(t *testing.T) {
	// An empty tree has no catalogs at all; every category is skipped
	// but the run itself completes.
	setGlobals(t, t.TempDir())

	cmd := &cobra.Command{}
	assert.NoError(t, runRandomizer(cmd, nil))
}

func TestPoolsCmdRequiresCatalog(t *testing.T) {
	setGlobals(t, t.TempDir())

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	err := runPools(cmd, nil)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "catalog"))
}
