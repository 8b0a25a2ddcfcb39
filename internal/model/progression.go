package model

import (
	"errors"
	"fmt"
	"slices"

	"github.com/udisondev/dinomarathon/internal/config"
	"github.com/udisondev/dinomarathon/internal/data"
	"github.com/udisondev/dinomarathon/internal/race"
)

var (
	ErrSlotsFull        = errors.New("all item slots are taken")
	ErrNotEnoughMoney   = errors.New("not enough money")
	ErrNoSuchConsumable = errors.New("consumable not in inventory")
)

// Progression is the player state that survives between races.
// Mutated only at race boundaries and in the shop, never mid-tick.
type Progression struct {
	MaxStamina          float64
	PermanentSpeedBonus float64 // m/s
	Roster              []string
	MaxSlots            int
	Money               int
	Wins                int
	Level               int // zero-based round index
	Consumables         []string
	Weight              int
	Intox               float64 // base stumble chance, percent
	WellRested          float64 // base boost chance, percent
}

// NewProgression creates a fresh run.
func NewProgression(cfg config.Campaign) *Progression {
	return &Progression{
		MaxStamina:  cfg.StartMaxStamina,
		MaxSlots:    cfg.MaxSlots,
		Consumables: slices.Clone(data.StartingConsumables),
		Weight:      cfg.StartWeight,
	}
}

// Clone returns a deep copy.
func (p *Progression) Clone() *Progression {
	c := *p
	c.Roster = slices.Clone(p.Roster)
	c.Consumables = slices.Clone(p.Consumables)
	return &c
}

// RaceEntry builds the race entry for the current level.
func (p *Progression) RaceEntry() (race.Entry, error) {
	distance, err := data.RoundDistance(p.Level)
	if err != nil {
		return race.Entry{}, err
	}
	return race.Entry{
		Roster:              slices.Clone(p.Roster),
		MaxStamina:          p.MaxStamina,
		PermanentSpeedBonus: p.PermanentSpeedBonus,
		DistanceMeters:      distance,
		FatigueLevel:        p.Intox,
		RecoveryLevel:       p.WellRested,
	}, nil
}

// FreeSlots returns the number of empty item slots.
func (p *Progression) FreeSlots() int {
	return max(0, p.MaxSlots-len(p.Roster))
}

// Equip puts itemID into a free slot.
func (p *Progression) Equip(itemID string) error {
	if p.FreeSlots() == 0 {
		return fmt.Errorf("equipping %q: %w", itemID, ErrSlotsFull)
	}
	p.Roster = append(p.Roster, itemID)
	return nil
}

// Spend deducts amount from money.
func (p *Progression) Spend(amount int) error {
	if amount > p.Money {
		return fmt.Errorf("%w: have %d, need %d", ErrNotEnoughMoney, p.Money, amount)
	}
	p.Money -= amount
	return nil
}

// AddConsumable puts a consumable into the inventory.
func (p *Progression) AddConsumable(id string) {
	p.Consumables = append(p.Consumables, id)
}

// TakeConsumable removes one consumable with id from the inventory.
func (p *Progression) TakeConsumable(id string) error {
	i := slices.Index(p.Consumables, id)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrNoSuchConsumable, id)
	}
	p.Consumables = slices.Delete(p.Consumables, i, i+1)
	return nil
}

// ApplyWin credits a won race: reward by stamina left, per-win item bonuses, next level.
// Returns the reward paid.
func (p *Progression) ApplyWin(s race.Summary, cfg config.Campaign) int {
	reward := cfg.RewardFor(s.StaminaRemainingFraction * 100)
	p.Money += reward
	p.Wins++
	p.Level++
	p.MaxStamina += s.MaxStaminaPerWin
	p.PermanentSpeedBonus += s.SpeedPerWin
	return reward
}

// ApplyLoss resets the run.
func (p *Progression) ApplyLoss(cfg config.Campaign) {
	*p = *NewProgression(cfg)
}

// CampaignComplete reports whether every round has been won.
func (p *Progression) CampaignComplete() bool {
	return p.Level >= data.TotalRounds
}
