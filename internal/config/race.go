package config

import (
	"errors"
	"fmt"
	"time"
)

// Race holds race simulation tuning.
type Race struct {
	TickPeriod  time.Duration `yaml:"tick_period"`  // simulated time per tick
	FastForward float64       `yaml:"fast_forward"` // player-controlled time scale

	BaseTimePer100m      float64 `yaml:"base_time_per_100m"`     // seconds per 100m at multiplier 1
	BaseStaminaTime      float64 `yaml:"base_stamina_time"`      // seconds to drain full stamina unmodified
	BaseSpeedReference   float64 `yaml:"base_speed_reference"`   // m/s, converts per-win speed into a multiplier
	AccelerationFactor   float64 `yaml:"acceleration_factor"`    // fraction of the speed gap closed per second
	StartSpeedMultiplier float64 `yaml:"start_speed_multiplier"` // smoothed multiplier at the starting line

	// Random events
	EventCheckInterval time.Duration `yaml:"event_check_interval"`
	StumbleHalt        time.Duration `yaml:"stumble_halt"`
	StumbleSlow        time.Duration `yaml:"stumble_slow"`
	StumbleSlowFactor  float64       `yaml:"stumble_slow_factor"`
	BoostDuration      time.Duration `yaml:"boost_duration"`
	BoostFactor        float64       `yaml:"boost_factor"`
}

// DefaultRace returns Race tuning of the original game.
func DefaultRace() Race {
	return Race{
		TickPeriod:           100 * time.Millisecond,
		FastForward:          1,
		BaseTimePer100m:      5,
		BaseStaminaTime:      10,
		BaseSpeedReference:   20, // 100m / 5s
		AccelerationFactor:   2,
		StartSpeedMultiplier: 1,
		EventCheckInterval:   2 * time.Second,
		StumbleHalt:          time.Second,
		StumbleSlow:          3 * time.Second,
		StumbleSlowFactor:    0.5,
		BoostDuration:        3 * time.Second,
		BoostFactor:          2,
	}
}

// TickDelta returns simulated time per tick with fast-forward applied.
func (r Race) TickDelta() time.Duration {
	return time.Duration(float64(r.TickPeriod) * r.FastForward)
}

// Validate checks tuning ranges.
func (r Race) Validate() error {
	var errs []error
	if r.TickPeriod <= 0 {
		errs = append(errs, fmt.Errorf("race: tick_period must be positive, got %s", r.TickPeriod))
	}
	if r.FastForward <= 0 {
		errs = append(errs, fmt.Errorf("race: fast_forward must be positive, got %v", r.FastForward))
	}
	if r.BaseTimePer100m <= 0 {
		errs = append(errs, fmt.Errorf("race: base_time_per_100m must be positive, got %v", r.BaseTimePer100m))
	}
	if r.BaseStaminaTime <= 0 {
		errs = append(errs, fmt.Errorf("race: base_stamina_time must be positive, got %v", r.BaseStaminaTime))
	}
	if r.BaseSpeedReference <= 0 {
		errs = append(errs, fmt.Errorf("race: base_speed_reference must be positive, got %v", r.BaseSpeedReference))
	}
	if r.AccelerationFactor <= 0 {
		errs = append(errs, fmt.Errorf("race: acceleration_factor must be positive, got %v", r.AccelerationFactor))
	}
	if r.StartSpeedMultiplier < 0 {
		errs = append(errs, fmt.Errorf("race: start_speed_multiplier must not be negative, got %v", r.StartSpeedMultiplier))
	}
	if r.EventCheckInterval <= 0 || r.StumbleHalt < 0 || r.StumbleSlow < 0 || r.BoostDuration < 0 {
		errs = append(errs, errors.New("race: random event durations must not be negative and check interval must be positive"))
	}
	return errors.Join(errs...)
}

// RewardTier pays Reward when a race is won with at least MinStaminaPercent left.
type RewardTier struct {
	MinStaminaPercent float64 `yaml:"min_stamina_percent"`
	Reward            int     `yaml:"reward"`
}

// Campaign holds progression and shop tuning.
type Campaign struct {
	StartMaxStamina float64      `yaml:"start_max_stamina"`
	StartWeight     int          `yaml:"start_weight"`
	MaxSlots        int          `yaml:"max_slots"`
	StartingOffers  int          `yaml:"starting_offers"`
	ShopOffers      int          `yaml:"shop_offers"`
	RewardTiers     []RewardTier `yaml:"reward_tiers"` // sorted by MinStaminaPercent descending
}

// DefaultCampaign returns Campaign tuning of the original game.
func DefaultCampaign() Campaign {
	return Campaign{
		StartMaxStamina: 100,
		StartWeight:     100,
		MaxSlots:        5,
		StartingOffers:  5,
		ShopOffers:      3,
		RewardTiers: []RewardTier{
			{MinStaminaPercent: 75, Reward: 5},
			{MinStaminaPercent: 50, Reward: 3},
			{MinStaminaPercent: 0, Reward: 1},
		},
	}
}

// Validate checks campaign ranges.
func (c Campaign) Validate() error {
	var errs []error
	if c.StartMaxStamina <= 0 {
		errs = append(errs, fmt.Errorf("campaign: start_max_stamina must be positive, got %v", c.StartMaxStamina))
	}
	if c.MaxSlots <= 0 {
		errs = append(errs, fmt.Errorf("campaign: max_slots must be positive, got %d", c.MaxSlots))
	}
	if c.StartingOffers < 0 || c.ShopOffers < 0 {
		errs = append(errs, errors.New("campaign: offer counts must not be negative"))
	}
	for i := 1; i < len(c.RewardTiers); i++ {
		if c.RewardTiers[i].MinStaminaPercent > c.RewardTiers[i-1].MinStaminaPercent {
			errs = append(errs, errors.New("campaign: reward_tiers must be sorted by min_stamina_percent descending"))
			break
		}
	}
	return errors.Join(errs...)
}

// RewardFor returns the payout for a won race with staminaPercent left.
func (c Campaign) RewardFor(staminaPercent float64) int {
	for _, tier := range c.RewardTiers {
		if staminaPercent >= tier.MinStaminaPercent {
			return tier.Reward
		}
	}
	return 0
}
