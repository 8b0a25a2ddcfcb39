package shop

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"

	"github.com/udisondev/dinomarathon/internal/data"
	"github.com/udisondev/dinomarathon/internal/model"
)

// Shop sells items and consumables between races.
// Not thread-safe: owned by one campaign.
type Shop struct {
	catalog *data.ItemCatalog
	rng     *rand.Rand
}

// New creates a Shop with a deterministic offer sequence for seed.
func New(catalog *data.ItemCatalog, seed uint64) *Shop {
	return &Shop{
		catalog: catalog,
		rng:     rand.New(rand.NewPCG(seed, seed^0x5deece66d)),
	}
}

// Offers draws n distinct items, weighted by rarity.
// Returns fewer than n if the catalog is smaller.
func (s *Shop) Offers(n int) []string {
	pool := s.catalog.IDs()
	offers := make([]string, 0, min(n, len(pool)))

	for len(offers) < n && len(pool) > 0 {
		total := 0
		for _, id := range pool {
			total += data.RarityWeights[s.catalog.Rarity(id)]
		}
		pick := s.rng.IntN(total)
		for i, id := range pool {
			pick -= data.RarityWeights[s.catalog.Rarity(id)]
			if pick < 0 {
				offers = append(offers, id)
				pool = slices.Delete(pool, i, i+1)
				break
			}
		}
	}
	return offers
}

// PickStarter equips a free starting item.
func (s *Shop) PickStarter(p *model.Progression, itemID string) error {
	if !s.catalog.Has(itemID) {
		return fmt.Errorf("picking starter: unknown item %q", itemID)
	}
	return p.Equip(itemID)
}

// BuyItem charges the item price and equips it.
// Nothing is charged when no slot is free.
func (s *Shop) BuyItem(p *model.Progression, itemID string) error {
	if !s.catalog.Has(itemID) {
		return fmt.Errorf("buying item: unknown item %q", itemID)
	}
	if p.FreeSlots() == 0 {
		return fmt.Errorf("buying %q: %w", itemID, model.ErrSlotsFull)
	}
	price := s.catalog.Price(itemID)
	if err := p.Spend(price); err != nil {
		return fmt.Errorf("buying %q: %w", itemID, err)
	}
	if err := p.Equip(itemID); err != nil {
		return err
	}

	slog.Debug("item bought", "item", itemID, "price", price, "money", p.Money)
	return nil
}

// BuyConsumable charges the consumable price and adds it to the inventory.
func (s *Shop) BuyConsumable(p *model.Progression, id string) error {
	c, err := data.GetConsumable(id)
	if err != nil {
		return fmt.Errorf("buying consumable: %w", err)
	}
	if err := p.Spend(c.Price); err != nil {
		return fmt.Errorf("buying %q: %w", id, err)
	}
	p.AddConsumable(id)

	slog.Debug("consumable bought", "consumable", id, "price", c.Price, "money", p.Money)
	return nil
}
