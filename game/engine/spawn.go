package engine

// SpawnPolicy decides what appears after a consumption and whether a special
// item carries a speed effect.
type SpawnPolicy struct {
	RegularChance float64
	BonusShare    float64
	EffectChance  float64

	rng Random
}

// NewSpawnPolicy builds a policy from the config probabilities
func NewSpawnPolicy(config *GameConfig, rng Random) *SpawnPolicy {
	return &SpawnPolicy{
		RegularChance: config.RegularChance,
		BonusShare:    config.BonusShare,
		EffectChance:  config.EffectChance,
		rng:           rng,
	}
}

// ChooseOutcome returns exactly one kind. The first draw selects the regular
// apple; otherwise a second draw splits the remainder between bonus and penalty.
func (p *SpawnPolicy) ChooseOutcome() ItemKind {
	if p.rng.Float64() < p.RegularChance {
		return RegularApple
	}
	if p.rng.Float64() < p.BonusShare {
		return BonusItem
	}
	return PenaltyItem
}

// RollEffect reports whether an eaten special item also applies its speed effect
func (p *SpawnPolicy) RollEffect() bool {
	return p.rng.Float64() < p.EffectChance
}
