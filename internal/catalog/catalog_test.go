package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const speciesHeader = `#ifndef GUARD_SPECIES_H
#define GUARD_SPECIES_H

#define SPECIES_NONE 0
#define SPECIES_BULBASAUR 1
#define SPECIES_IVYSAUR 2
#define SPECIES_VENUSAUR 3 // final form
#define SPECIES_EGG 412
#define NOT_A_SPECIES 99
  #define SPECIES_INDENTED 100
#define SPECIES_BULBASAUR 1
#endif
`

func TestLoad(t *testing.T) {
	t.Run("first-seen order with exclusions", func(t *testing.T) {
		c, err := Load(strings.NewReader(speciesHeader), "SPECIES",
			ExclusionSet([]string{"SPECIES_NONE", "SPECIES_EGG"}))
		require.NoError(t, err)
		assert.Equal(t, []string{
			"SPECIES_BULBASAUR", "SPECIES_IVYSAUR", "SPECIES_VENUSAUR",
		}, c.Symbols())
	})

	t.Run("duplicates collapse to first occurrence", func(t *testing.T) {
		c, err := Load(strings.NewReader(speciesHeader), "SPECIES", nil)
		require.NoError(t, err)
		count := 0
		for _, s := range c.Symbols() {
			if s == "SPECIES_BULBASAUR" {
				count++
			}
		}
		assert.Equal(t, 1, count)
	})

	t.Run("only line-leading defines with the prefix match", func(t *testing.T) {
		c, err := Load(strings.NewReader(speciesHeader), "SPECIES", nil)
		require.NoError(t, err)
		assert.False(t, c.Contains("NOT_A_SPECIES"))
		assert.False(t, c.Contains("SPECIES_INDENTED"))
		// The include guard has the wrong shape entirely.
		assert.False(t, c.Contains("GUARD_SPECIES_H"))
	})

	t.Run("contains and len", func(t *testing.T) {
		c, err := Load(strings.NewReader(speciesHeader), "SPECIES", nil)
		require.NoError(t, err)
		assert.True(t, c.Contains("SPECIES_EGG"))
		assert.Equal(t, 5, c.Len())
	})
}

func TestLoadFile(t *testing.T) {
	t.Run("reads from disk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "abilities.h")
		require.NoError(t, os.WriteFile(path,
			[]byte("#define ABILITY_NONE 0\n#define ABILITY_STENCH 1\n"), 0644))

		c, err := LoadFile(path, "ABILITY", nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"ABILITY_NONE", "ABILITY_STENCH"}, c.Symbols())
	})

	t.Run("missing file is ErrUnavailable", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "gone.h"), "SPECIES", nil)
		assert.True(t, errors.Is(err, ErrUnavailable))
	})
}
