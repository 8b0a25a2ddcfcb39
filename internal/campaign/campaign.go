package campaign

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/udisondev/dinomarathon/internal/config"
	"github.com/udisondev/dinomarathon/internal/data"
	"github.com/udisondev/dinomarathon/internal/model"
	"github.com/udisondev/dinomarathon/internal/race"
	"github.com/udisondev/dinomarathon/internal/shop"
)

// ctxCheckTicks is how often a running race checks ctx.
const ctxCheckTicks = 64

// RaceRecord is the outcome of one race of a campaign.
type RaceRecord struct {
	Level    int
	Distance int
	Summary  race.Summary
	Reward   int
}

// Result is the outcome of a whole campaign.
type Result struct {
	Records   []RaceRecord
	Completed bool              // every round won
	Final     *model.Progression // progression when the campaign stopped, before any reset
}

// Wins returns the number of won races.
func (r Result) Wins() int {
	n := 0
	for _, rec := range r.Records {
		if rec.Summary.Won {
			n++
		}
	}
	return n
}

// Campaign plays menu → race → shop → race … until a loss or the last round.
// Not thread-safe; run independent campaigns in separate goroutines.
type Campaign struct {
	cfg         config.Config
	engine      *race.Engine
	shop        *shop.Shop
	player      Player
	progression *model.Progression
}

// New creates a campaign with fresh progression.
// seed drives both random events and shop offers.
func New(cfg config.Config, catalog *data.ItemCatalog, player Player, seed uint64) *Campaign {
	return &Campaign{
		cfg:         cfg,
		engine:      race.NewEngine(cfg.Race, catalog, race.NewRandRoller(seed)),
		shop:        shop.New(catalog, seed),
		player:      player,
		progression: model.NewProgression(cfg.Campaign),
	}
}

// Resume continues a campaign from saved progression instead of the main menu.
func Resume(cfg config.Config, catalog *data.ItemCatalog, player Player, seed uint64, p *model.Progression) *Campaign {
	c := New(cfg, catalog, player, seed)
	c.progression = p.Clone()
	return c
}

// Progression returns a copy of the current progression.
func (c *Campaign) Progression() *model.Progression {
	return c.progression.Clone()
}

// Run plays the campaign to its end.
func (c *Campaign) Run(ctx context.Context) (Result, error) {
	var res Result

	if len(c.progression.Roster) == 0 {
		if err := c.pickStarter(); err != nil {
			return res, err
		}
	}

	for !c.progression.CampaignComplete() {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		rec, err := c.runRace(ctx)
		if err != nil {
			return res, err
		}
		res.Records = append(res.Records, rec)

		if rec.Summary.Lost {
			res.Final = c.progression.Clone()
			c.progression.ApplyLoss(c.cfg.Campaign)
			slog.Info("campaign lost", "level", rec.Level, "distance", rec.Distance, "wins", res.Wins())
			return res, nil
		}
		if c.progression.CampaignComplete() {
			break
		}
		c.visitShop()
	}

	res.Completed = true
	res.Final = c.progression.Clone()
	slog.Info("campaign completed", "wins", res.Wins(), "money", res.Final.Money)
	return res, nil
}

func (c *Campaign) pickStarter() error {
	offers := c.shop.Offers(c.cfg.Campaign.StartingOffers)
	if len(offers) == 0 {
		return errors.New("no starting items offered")
	}
	choice := c.player.PickStarter(offers)
	if err := c.shop.PickStarter(c.progression, choice); err != nil {
		return fmt.Errorf("picking starter: %w", err)
	}
	slog.Debug("starter picked", "item", choice, "offers", offers)
	return nil
}

// runRace plays the current level and applies the outcome to progression.
func (c *Campaign) runRace(ctx context.Context) (RaceRecord, error) {
	p := c.progression
	entry, err := p.RaceEntry()
	if err != nil {
		return RaceRecord{}, err
	}
	h, err := c.engine.StartRace(entry)
	if err != nil {
		return RaceRecord{}, err
	}

	delta := c.cfg.Race.TickDelta()
	for i := 0; ; i++ {
		if i%ctxCheckTicks == 0 {
			if err := ctx.Err(); err != nil {
				c.engine.AbortRace(h)
				return RaceRecord{}, err
			}
		}

		st, err := c.engine.State(h)
		if err != nil {
			return RaceRecord{}, err
		}
		if id, ok := c.player.EatDuringRace(st, p.Consumables); ok {
			if err := c.eat(h, id); err != nil {
				c.engine.AbortRace(h)
				return RaceRecord{}, err
			}
		}

		res, err := c.engine.Tick(h, delta)
		if err != nil {
			c.engine.AbortRace(h)
			return RaceRecord{}, err
		}
		if res.Won || res.Lost {
			break
		}
	}

	summary, err := c.engine.EndRace(h)
	if err != nil {
		return RaceRecord{}, err
	}

	rec := RaceRecord{Level: p.Level, Distance: entry.DistanceMeters, Summary: summary}
	if summary.Won {
		rec.Reward = p.ApplyWin(summary, c.cfg.Campaign)
	}
	slog.Info("race finished",
		"level", rec.Level,
		"distance", rec.Distance,
		"won", summary.Won,
		"time", summary.CompletionTime,
		"stamina_left", summary.StaminaRemainingFraction,
		"reward", rec.Reward)
	return rec, nil
}

func (c *Campaign) eat(h race.Handle, id string) error {
	consumable, err := data.GetConsumable(id)
	if err != nil {
		return err
	}
	if err := c.progression.TakeConsumable(id); err != nil {
		return err
	}
	if err := c.engine.NotifyConsumableEaten(h, id); err != nil {
		return err
	}
	c.progression.Weight += consumable.WeightDelta
	return nil
}

func (c *Campaign) visitShop() {
	p := c.progression
	offers := c.shop.Offers(c.cfg.Campaign.ShopOffers)

	for _, buy := range c.player.VisitShop(p.Clone(), offers) {
		var err error
		if buy.Consumable {
			err = c.shop.BuyConsumable(p, buy.ID)
		} else {
			err = c.shop.BuyItem(p, buy.ID)
		}
		if err != nil {
			slog.Debug("purchase rejected", "id", buy.ID, "err", err)
		}
	}
}
