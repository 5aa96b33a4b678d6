// Package items loads the structured item catalog and splits it into
// pocket-consistent pools.
package items

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrUnavailable reports a missing or unparseable item catalog; the
// item category is skipped when it occurs.
var ErrUnavailable = errors.New("item catalog unavailable")

const keyItemsPocket = "POCKET_KEY_ITEMS"

// hmPrefix excludes hidden-machine items wholesale; losing one can make
// a save unwinnable.
const hmPrefix = "ITEM_HM"

// Pocket classifies an item for pocket-consistent substitution.
type Pocket int

const (
	PocketUnknown Pocket = iota
	PocketRegular
	PocketKey
)

type catalogFile struct {
	Items []itemRecord `json:"items"`
}

type itemRecord struct {
	ItemID string `json:"itemId"`
	Pocket string `json:"pocket"`
}

// Pools holds the replacement candidates per pocket plus the pocket
// lookup for every known item.
type Pools struct {
	Regular []string
	Key     []string

	pockets map[string]Pocket
}

// Load parses the item catalog JSON, dropping excluded and HM items
// from the pools.
func Load(r io.Reader, exclude map[string]bool) (*Pools, error) {
	var cat catalogFile
	if err := json.NewDecoder(r).Decode(&cat); err != nil {
		return nil, fmt.Errorf("%w: parse: %v", ErrUnavailable, err)
	}
	if len(cat.Items) == 0 {
		return nil, fmt.Errorf("%w: no items list", ErrUnavailable)
	}

	p := &Pools{pockets: make(map[string]Pocket, len(cat.Items))}
	for _, it := range cat.Items {
		if it.ItemID == "" || exclude[it.ItemID] || strings.HasPrefix(it.ItemID, hmPrefix) {
			continue
		}
		if it.Pocket == keyItemsPocket {
			p.Key = append(p.Key, it.ItemID)
			p.pockets[it.ItemID] = PocketKey
		} else {
			p.Regular = append(p.Regular, it.ItemID)
			p.pockets[it.ItemID] = PocketRegular
		}
	}
	return p, nil
}

// LoadFile is Load over a path. A missing file yields ErrUnavailable.
func LoadFile(path string, exclude map[string]bool) (*Pools, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrUnavailable, path)
		}
		return nil, fmt.Errorf("open item catalog %s: %w", path, err)
	}
	defer f.Close()
	return Load(f, exclude)
}

// PocketOf reports which pool an item belongs to. Items dropped from
// the pools (excluded, HMs, or simply unknown) return PocketUnknown and
// are left alone during substitution.
func (p *Pools) PocketOf(sym string) Pocket {
	return p.pockets[sym]
}
