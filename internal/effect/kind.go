package effect

// Kind defines how a modifier contributes to race rates.
type Kind int8

const (
	KindInvalid Kind = iota

	StaminaDrainScale    // Multiplier on stamina usage, continuous or cyclical (e.g. ×0.5 for 1s every 3s)
	SpeedScale           // Multiplier on speed, continuous
	StaminaRecovery      // Fraction of max stamina restored per completed cycle
	FlatSpeedBonus       // Additive speed fraction, no time dependency
	CooldownSpeedBonus   // Additive speed fraction granted per completed cycle of any periodic modifier
	MaxStaminaPerWin     // Added to max stamina once per won race
	SpeedPerWin          // Added to permanent speed bonus (m/s) once per won race
	ConsumableSpeedBonus // Additive speed fraction granted per consumable eaten
)

var kindNames = [...]string{
	KindInvalid:          "invalid",
	StaminaDrainScale:    "stamina_drain_scale",
	SpeedScale:           "speed_scale",
	StaminaRecovery:      "stamina_recovery",
	FlatSpeedBonus:       "flat_speed_bonus",
	CooldownSpeedBonus:   "cooldown_speed_bonus",
	MaxStaminaPerWin:     "max_stamina_per_win",
	SpeedPerWin:          "speed_per_win",
	ConsumableSpeedBonus: "consumable_speed_bonus",
}

// String returns the snake_case name of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Valid reports whether k is one of the defined kinds.
func (k Kind) Valid() bool {
	return k > KindInvalid && int(k) < len(kindNames)
}

// IsMultiplicative reports whether modifiers of this kind combine by product.
func (k Kind) IsMultiplicative() bool {
	return k == StaminaDrainScale || k == SpeedScale
}
