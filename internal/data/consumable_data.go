package data

import (
	"fmt"
	"slices"
)

// Consumable describes a one-shot item eaten during a race.
type Consumable struct {
	ID            string
	Price         int
	StaminaRefill float64 // fraction of max stamina
	IntoxDelta    float64 // added to the stumble chance, percent points
	WeightDelta   int
	Description   string
}

var consumableDefs = []Consumable{
	{ID: "apple", Price: 1, StaminaRefill: 0.05, Description: "5% stamina refill"},
	{ID: "Orange", Price: 2, StaminaRefill: 0.10, Description: "10% stamina refill"},
	{ID: "Beer", Price: 3, StaminaRefill: 0.20, IntoxDelta: 5, WeightDelta: 1, Description: "20% stamina refill"},
}

// StartingConsumables — набор расходников у нового забега.
var StartingConsumables = []string{"apple", "Orange", "Beer"}

// GetConsumable returns the consumable definition by id.
func GetConsumable(id string) (Consumable, error) {
	i := slices.IndexFunc(consumableDefs, func(c Consumable) bool { return c.ID == id })
	if i < 0 {
		return Consumable{}, fmt.Errorf("unknown consumable %q", id)
	}
	return consumableDefs[i], nil
}

// ConsumableIDs returns ids of all consumables sold in the shop.
func ConsumableIDs() []string {
	ids := make([]string, len(consumableDefs))
	for i, c := range consumableDefs {
		ids[i] = c.ID
	}
	return ids
}
