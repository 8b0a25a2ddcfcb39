package campaign

import (
	"cmp"
	"slices"

	"github.com/udisondev/dinomarathon/internal/data"
	"github.com/udisondev/dinomarathon/internal/model"
	"github.com/udisondev/dinomarathon/internal/race"
)

// Purchase is one shop order.
type Purchase struct {
	ID         string
	Consumable bool
}

// Player makes the decisions a human makes in menus and mid-race.
type Player interface {
	// PickStarter chooses one of the free starting items.
	PickStarter(offers []string) string
	// VisitShop returns purchases to attempt, in order. p is a copy.
	VisitShop(p *model.Progression, offers []string) []Purchase
	// EatDuringRace is asked before every tick.
	EatDuringRace(st race.State, inventory []string) (string, bool)
}

// GreedyPlayer buys the cheapest affordable items, keeps one spare
// consumable and eats when stamina drops below EatBelow.
type GreedyPlayer struct {
	Catalog  *data.ItemCatalog
	EatBelow float64 // fraction of max stamina
}

// NewGreedyPlayer creates a GreedyPlayer that eats below 30% stamina.
func NewGreedyPlayer(catalog *data.ItemCatalog) *GreedyPlayer {
	return &GreedyPlayer{Catalog: catalog, EatBelow: 0.3}
}

func (g *GreedyPlayer) PickStarter(offers []string) string {
	// Most expensive offer is the best value for free.
	return slices.MaxFunc(offers, func(a, b string) int {
		return cmp.Compare(g.Catalog.Price(a), g.Catalog.Price(b))
	})
}

func (g *GreedyPlayer) VisitShop(p *model.Progression, offers []string) []Purchase {
	sorted := slices.Clone(offers)
	slices.SortStableFunc(sorted, func(a, b string) int {
		return cmp.Compare(g.Catalog.Price(a), g.Catalog.Price(b))
	})

	var out []Purchase
	money, slots := p.Money, p.FreeSlots()
	for _, id := range sorted {
		price := g.Catalog.Price(id)
		if slots == 0 || price > money {
			break
		}
		out = append(out, Purchase{ID: id})
		money -= price
		slots--
	}

	if len(p.Consumables) == 0 {
		if apple, err := data.GetConsumable(data.ConsumableIDs()[0]); err == nil && apple.Price <= money {
			out = append(out, Purchase{ID: apple.ID, Consumable: true})
		}
	}
	return out
}

func (g *GreedyPlayer) EatDuringRace(st race.State, inventory []string) (string, bool) {
	if len(inventory) == 0 || st.MaxStamina <= 0 {
		return "", false
	}
	if st.Stamina/st.MaxStamina >= g.EatBelow {
		return "", false
	}
	return inventory[0], true
}
