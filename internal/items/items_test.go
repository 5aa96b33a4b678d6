package items

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogJSON = `{
  "items": [
    {"itemId": "ITEM_NONE", "pocket": "POCKET_ITEMS"},
    {"itemId": "ITEM_POTION", "pocket": "POCKET_ITEMS", "price": 300},
    {"itemId": "ITEM_BICYCLE", "pocket": "POCKET_KEY_ITEMS"},
    {"itemId": "ITEM_HM01", "pocket": "POCKET_TM_CASE"},
    {"itemId": "ITEM_REPEL", "pocket": "POCKET_ITEMS"},
    {"pocket": "POCKET_ITEMS"},
    {"itemId": "ITEM_TOWN_MAP", "pocket": "POCKET_KEY_ITEMS"}
  ]
}`

func TestLoad(t *testing.T) {
	pools, err := Load(strings.NewReader(catalogJSON),
		map[string]bool{"ITEM_NONE": true})
	require.NoError(t, err)

	t.Run("pockets split", func(t *testing.T) {
		assert.Equal(t, []string{"ITEM_POTION", "ITEM_REPEL"}, pools.Regular)
		assert.Equal(t, []string{"ITEM_BICYCLE", "ITEM_TOWN_MAP"}, pools.Key)
	})

	t.Run("exclusions and HMs dropped", func(t *testing.T) {
		assert.Equal(t, PocketUnknown, pools.PocketOf("ITEM_NONE"))
		assert.Equal(t, PocketUnknown, pools.PocketOf("ITEM_HM01"))
	})

	t.Run("records without id ignored", func(t *testing.T) {
		assert.Len(t, pools.Regular, 2)
	})

	t.Run("pocket lookup", func(t *testing.T) {
		assert.Equal(t, PocketRegular, pools.PocketOf("ITEM_POTION"))
		assert.Equal(t, PocketKey, pools.PocketOf("ITEM_BICYCLE"))
		assert.Equal(t, PocketUnknown, pools.PocketOf("ITEM_MYSTERY"))
	})
}

func TestLoadErrors(t *testing.T) {
	t.Run("malformed json", func(t *testing.T) {
		_, err := Load(strings.NewReader("{not json"), nil)
		assert.True(t, errors.Is(err, ErrUnavailable))
	})

	t.Run("missing items list", func(t *testing.T) {
		_, err := Load(strings.NewReader(`{"other": []}`), nil)
		assert.True(t, errors.Is(err, ErrUnavailable))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "items.json"), nil)
		assert.True(t, errors.Is(err, ErrUnavailable))
	})
}
