package attr

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeName(t *testing.T) {
	cases := map[string]string{
		"Bulbasaur":       "SPECIES_BULBASAUR",
		"Nidoran♀":        "SPECIES_NIDORAN_F",
		"Nidoran♂":        "SPECIES_NIDORAN_M",
		"Farfetch'd":      "SPECIES_FARFETCHD",
		"Mr. Mime":        "SPECIES_MR_MIME",
		"Mime Jr.":        "SPECIES_MIME_JR",
		"Mega Venusaur":   "SPECIES_MEGA_VENUSAUR",
		"Alolan Raichu":   "SPECIES_ALOLAN_RAICHU",
		"Galarian Meowth": "SPECIES_GALARIAN_MEOWTH",
		"Ho-oh":           "SPECIES_HO_OH",
		"Porygon2":        "SPECIES_PORYGON2",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeName(in), "input %q", in)
	}
}

func TestFromCSV(t *testing.T) {
	csvBody := `#,Name,Type 1,Total,HP
1,Bulbasaur,Grass,318,45
2,Ivysaur,Grass,405,60
3,MissingNo,Glitch,oops,33
4,Fakemon,Normal,500,50
`

	t.Run("maps valid rows only", func(t *testing.T) {
		valid := func(s string) bool {
			return s == "SPECIES_BULBASAUR" || s == "SPECIES_IVYSAUR"
		}
		m, err := FromCSV(strings.NewReader(csvBody), valid)
		require.NoError(t, err)
		assert.Equal(t, Map{
			"SPECIES_BULBASAUR": 318,
			"SPECIES_IVYSAUR":   405,
		}, m)
	})

	t.Run("non-numeric totals skipped", func(t *testing.T) {
		m, err := FromCSV(strings.NewReader(csvBody), nil)
		require.NoError(t, err)
		_, found := m["SPECIES_MISSING_NO"]
		assert.False(t, found)
	})

	t.Run("missing columns error", func(t *testing.T) {
		_, err := FromCSV(strings.NewReader("a,b\n1,2\n"), nil)
		assert.Error(t, err)
	})
}

func TestFromCSVFile(t *testing.T) {
	_, err := FromCSVFile(filepath.Join(t.TempDir(), "pokemon.csv"), nil)
	assert.True(t, errors.Is(err, ErrUnavailable))
}

const statsHeader = `
const struct BaseStats gBaseStats[] = {
    [SPECIES_BULBASAUR] =
    {
        .baseHP        = 45,
        .baseAttack    = 49,
        .baseDefense   = 49,
        .baseSpeed     = 45,
        .baseSpAttack  = 65,
        .baseSpDefense = 65,
        .type1 = TYPE_GRASS,
    },

    [SPECIES_BROKEN] =
    {
        .baseHP     = 10,
        .baseAttack = 10,
    },

    [SPECIES_MEWTWO] =
    {
        .baseHP        = 106,
        .baseAttack    = 110,
        .baseDefense   = 90,
        .baseSpeed     = 130,
        .baseSpAttack  = 154,
        .baseSpDefense = 90,
    },
};
`

func TestFromStatsHeader(t *testing.T) {
	t.Run("sums the six base stats", func(t *testing.T) {
		m, err := FromStatsHeader(strings.NewReader(statsHeader), nil)
		require.NoError(t, err)
		assert.Equal(t, 318, m["SPECIES_BULBASAUR"])
		assert.Equal(t, 680, m["SPECIES_MEWTWO"])
	})

	t.Run("partial records excluded entirely", func(t *testing.T) {
		m, err := FromStatsHeader(strings.NewReader(statsHeader), nil)
		require.NoError(t, err)
		_, found := m["SPECIES_BROKEN"]
		assert.False(t, found)
	})

	t.Run("excluded symbols skipped", func(t *testing.T) {
		m, err := FromStatsHeader(strings.NewReader(statsHeader),
			map[string]bool{"SPECIES_MEWTWO": true})
		require.NoError(t, err)
		_, found := m["SPECIES_MEWTWO"]
		assert.False(t, found)
		assert.Equal(t, 318, m["SPECIES_BULBASAUR"])
	})
}

func TestFromStatsHeaderFile(t *testing.T) {
	t.Run("missing file is ErrUnavailable", func(t *testing.T) {
		_, err := FromStatsHeaderFile(filepath.Join(t.TempDir(), "base_stats.h"), nil)
		assert.True(t, errors.Is(err, ErrUnavailable))
	})

	t.Run("reads from disk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "base_stats.h")
		require.NoError(t, os.WriteFile(path, []byte(statsHeader), 0644))
		m, err := FromStatsHeaderFile(path, nil)
		require.NoError(t, err)
		assert.Len(t, m, 2)
	})
}
