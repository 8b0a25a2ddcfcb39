package data

import (
	"time"

	"github.com/udisondev/dinomarathon/internal/effect"
)

// Rarity — редкость предмета, определяет вес в выдаче магазина.
type Rarity string

const (
	RarityCommon   Rarity = "Common"
	RarityUncommon Rarity = "Uncommon"
	RarityRare     Rarity = "Rare"
)

// RarityWeights — вес редкости при случайном выборе предложений магазина.
var RarityWeights = map[Rarity]int{
	RarityCommon:   10,
	RarityUncommon: 5,
	RarityRare:     1,
}

// itemDef — определение экипируемого предмета.
type itemDef struct {
	id          string
	rarity      Rarity
	price       int
	description string
	templates   []effect.Template
}

// halfDrain returns a "halves stamina usage for active of every cycle" template.
func halfDrain(cycle, active time.Duration) []effect.Template {
	return []effect.Template{{
		Kind:         effect.StaminaDrainScale,
		Value:        0.5,
		CyclePeriod:  cycle,
		ActiveWindow: active,
	}}
}

const sec = time.Second

var itemDefs = []itemDef{
	// Coins: cyclical stamina drain reducers
	{id: "Coin", rarity: RarityCommon, price: 1, description: "Halves stamina usage for 1 sec every 3 sec.", templates: halfDrain(3*sec, 1*sec)},
	{id: "Bit", rarity: RarityCommon, price: 1, description: "Halves stamina usage for 1 sec every 4 sec.", templates: halfDrain(4*sec, 1*sec)},
	{id: "Copper", rarity: RarityCommon, price: 1, description: "Halves stamina usage for 1 sec every 5 sec.", templates: halfDrain(5*sec, 1*sec)},
	{id: "CopperStack", rarity: RarityCommon, price: 1, description: "Halves stamina usage for 2 sec every 5 sec.", templates: halfDrain(5*sec, 2*sec)},
	{id: "Silver", rarity: RarityUncommon, price: 2, description: "Halves stamina usage for 3 sec every 5 sec.", templates: halfDrain(5*sec, 3*sec)},
	{id: "Dubloon", rarity: RarityUncommon, price: 2, description: "Halves stamina usage for 1 sec every 2 sec.", templates: halfDrain(2*sec, 1*sec)},
	{id: "Piece", rarity: RarityUncommon, price: 2, description: "Halves stamina usage for 2 sec every 4 sec.", templates: halfDrain(4*sec, 2*sec)},
	{id: "Gold", rarity: RarityRare, price: 3, description: "Halves stamina usage for 4 sec every 5 sec.", templates: halfDrain(5*sec, 4*sec)},
	{id: "Pound", rarity: RarityRare, price: 3, description: "Halves stamina usage for 2 sec every 3 sec.", templates: halfDrain(3*sec, 2*sec)},
	{id: "Booty", rarity: RarityRare, price: 3, description: "Halves stamina usage for 3 sec every 4 sec.", templates: halfDrain(4*sec, 3*sec)},

	// Passive items
	{id: "Ginger", rarity: RarityCommon, price: 2, description: "Stamina depletes 10% slower.",
		templates: []effect.Template{{Kind: effect.StaminaDrainScale, Value: 0.9}}},
	{id: "Ruby_Amulet", rarity: RarityUncommon, price: 2, description: "Recovers 5% stamina every 5 sec.",
		templates: []effect.Template{{Kind: effect.StaminaRecovery, Value: 0.05, CyclePeriod: 5 * sec}}},
	{id: "Ring", rarity: RarityUncommon, price: 2, description: "Gains 1% speed every time an item cycles.",
		templates: []effect.Template{{Kind: effect.CooldownSpeedBonus, Value: 0.01}}},
	{id: "Candle", rarity: RarityUncommon, price: 2, description: "Increases max stamina by 2 for every win.",
		templates: []effect.Template{{Kind: effect.MaxStaminaPerWin, Value: 2}}},
	{id: "Feather", rarity: RarityUncommon, price: 2, description: "Runs 5% faster.",
		templates: []effect.Template{{Kind: effect.SpeedScale, Value: 1.05}}},
	{id: "Sneakers", rarity: RarityCommon, price: 2, description: "Adds 10% base speed.",
		templates: []effect.Template{{Kind: effect.FlatSpeedBonus, Value: 0.1}}},
	{id: "Horseshoe", rarity: RarityRare, price: 3, description: "Permanently adds 0.5 m/s for every win.",
		templates: []effect.Template{{Kind: effect.SpeedPerWin, Value: 0.5}}},
	{id: "Mushroom", rarity: RarityRare, price: 3, description: "Every consumable eaten adds 5% speed.",
		templates: []effect.Template{{Kind: effect.ConsumableSpeedBonus, Value: 0.05}}},
	{id: "Energy_Gel", rarity: RarityCommon, price: 1, description: "Halves stamina usage for the first 5 sec.",
		templates: []effect.Template{{Kind: effect.StaminaDrainScale, Value: 0.5, TotalDuration: 5 * sec}}},
	{id: "Hourglass", rarity: RarityRare, price: 3, description: "Halves stamina usage for 2 sec every 6 sec and adds 2% speed.",
		templates: []effect.Template{
			{Kind: effect.StaminaDrainScale, Value: 0.5, CyclePeriod: 6 * sec, ActiveWindow: 2 * sec},
			{Kind: effect.FlatSpeedBonus, Value: 0.02},
		}},
}
