package data

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/udisondev/dinomarathon/internal/effect"
)

// ItemTable — глобальный registry всех экипируемых предметов.
// Заполняется LoadItemTemplates() при старте.
var ItemTable *ItemCatalog

// ItemCatalog maps item ids to their definitions.
// Read-only after construction, safe for concurrent use.
type ItemCatalog struct {
	defs map[string]*itemDef
	ids  []string
}

// LoadItemTemplates строит ItemTable из Go-литералов (itemDefs).
// Every template is validated so broken data fails at startup, not mid-race.
func LoadItemTemplates() error {
	catalog, err := newItemCatalog(itemDefs)
	if err != nil {
		return err
	}
	ItemTable = catalog
	slog.Info("loaded item templates", "count", len(catalog.ids))
	return nil
}

// DefaultCatalog returns ItemTable, loading it on first use.
func DefaultCatalog() (*ItemCatalog, error) {
	if ItemTable == nil {
		if err := LoadItemTemplates(); err != nil {
			return nil, err
		}
	}
	return ItemTable, nil
}

func newItemCatalog(defs []itemDef) (*ItemCatalog, error) {
	c := &ItemCatalog{
		defs: make(map[string]*itemDef, len(defs)),
		ids:  make([]string, 0, len(defs)),
	}
	for i := range defs {
		d := &defs[i]
		if _, dup := c.defs[d.id]; dup {
			return nil, fmt.Errorf("duplicate item %q", d.id)
		}
		if _, ok := RarityWeights[d.rarity]; !ok {
			return nil, fmt.Errorf("item %q: unknown rarity %q", d.id, d.rarity)
		}
		for j, t := range d.templates {
			if err := t.Validate(); err != nil {
				return nil, fmt.Errorf("item %q template #%d: %w", d.id, j, err)
			}
		}
		c.defs[d.id] = d
		c.ids = append(c.ids, d.id)
	}
	return c, nil
}

// Templates returns modifier templates for itemID.
// Implements effect.Catalog. Unknown ids wrap effect.ErrUnknownItem.
func (c *ItemCatalog) Templates(itemID string) ([]effect.Template, error) {
	d, ok := c.defs[itemID]
	if !ok {
		if s := c.Suggest(itemID); s != "" {
			return nil, fmt.Errorf("%w %q (did you mean %q?)", effect.ErrUnknownItem, itemID, s)
		}
		return nil, fmt.Errorf("%w %q", effect.ErrUnknownItem, itemID)
	}
	return slices.Clone(d.templates), nil
}

// Has reports whether itemID is a known item.
func (c *ItemCatalog) Has(itemID string) bool {
	_, ok := c.defs[itemID]
	return ok
}

// IDs returns all item ids in definition order.
func (c *ItemCatalog) IDs() []string {
	return slices.Clone(c.ids)
}

// Price returns the shop price of itemID, or 0 if not found.
func (c *ItemCatalog) Price(itemID string) int {
	if d, ok := c.defs[itemID]; ok {
		return d.price
	}
	return 0
}

// Rarity returns the rarity of itemID, or "" if not found.
func (c *ItemCatalog) Rarity(itemID string) Rarity {
	if d, ok := c.defs[itemID]; ok {
		return d.rarity
	}
	return ""
}

// Description returns the tooltip text of itemID.
func (c *ItemCatalog) Description(itemID string) string {
	if d, ok := c.defs[itemID]; ok {
		return d.description
	}
	return ""
}

// Suggest returns the closest known item id to itemID, or "" if nothing is close.
// Comparison is case-insensitive.
func (c *ItemCatalog) Suggest(itemID string) string {
	needle := strings.ToLower(itemID)
	if needle == "" {
		return ""
	}

	best := ""
	bestDist := -1
	for _, id := range c.ids {
		dist := levenshtein.ComputeDistance(needle, strings.ToLower(id))
		if dist > suggestLimit(len(id)) {
			continue
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = id, dist
		}
	}
	return best
}

func suggestLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
