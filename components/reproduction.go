package components

import "github.com/mlange-42/ark/ecs"

// Sex is binary per the original source's reproduction model.
type Sex uint8

const (
	SexMale Sex = iota
	SexFemale
)

// Age tracks ticks alive against the species' maturity threshold.
// Grounded on original_source/src/entities/reproduction.rs Age.
type Age struct {
	TicksAlive    uint64
	MatureAtTicks uint32
}

// IsAdult reports whether the agent has reached maturity.
func (a Age) IsAdult() bool {
	return uint64(a.MatureAtTicks) <= a.TicksAlive
}

// ReproductionCooldown gates re-mating after a successful pairing.
type ReproductionCooldown struct {
	RemainingTicks uint32
}

// Pregnancy counts down to birth. Installed on the female when a Mate
// action completes.
type Pregnancy struct {
	RemainingTicks uint32
	LitterSize     uint8
	Father         ecs.Entity
}

// WellFedStreak counts consecutive ticks during which both hunger and
// thirst are below species-specific well-fed norms (GLOSSARY). Reset to
// zero the instant either stat exceeds its norm.
type WellFedStreak struct {
	Ticks uint32
}

// ReproductionConfig is the per-species tuning bundle used by the
// species registry and the reproduction system.
type ReproductionConfig struct {
	MaturityAgeTicks       uint32
	GestationTicks         uint32
	MatingCooldownTicks    uint32 // applied to the male
	PostpartumCooldownTicks uint32 // applied to the female
	LitterSizeMin          uint8
	LitterSizeMax          uint8
	MatingSearchRadius     float32
	MatchingIntervalTicks  uint32
	MinEnergyNormalized    float32
	MinHealthNormalized    float32
	WellFedRequiredTicks   uint32
	MateActionDurationTicks int32
}

// IsEligible reports whether an agent satisfies every mating precondition,
// mirroring original_source's is_eligible() predicate.
func IsEligible(cfg ReproductionConfig, age Age, cooldown ReproductionCooldown, stats StatsBundle, wellFed WellFedStreak, pregnant bool) bool {
	if pregnant {
		return false
	}
	if !age.IsAdult() {
		return false
	}
	if cooldown.RemainingTicks != 0 {
		return false
	}
	if stats.Energy.Normalized() < cfg.MinEnergyNormalized {
		return false
	}
	if stats.Health.Normalized() < cfg.MinHealthNormalized {
		return false
	}
	if wellFed.Ticks < cfg.WellFedRequiredTicks {
		return false
	}
	return true
}
