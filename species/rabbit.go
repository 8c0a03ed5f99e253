package species

import "github.com/jeanfbrito/ecosim-core/components"

// RabbitDefinition returns the bundled rabbit species. Numeric constants
// are taken verbatim from original_source/src/vegetation/constants.rs's
// species::rabbit block.
func RabbitDefinition() Definition {
	return Definition{
		ID:    "rabbit",
		Class: components.ClassHerbivore,
		Behavior: BehaviorConfig{
			WellFedHungerNorm:    0.4,
			WellFedThirstNorm:    0.4,
			GrazeSearchRadius:    15,
			DrinkSearchRadius:    15,
			WanderRadius:         6,
			FollowStopDistance:   2,
			TicksPerMove:         2,
			MealSizeFraction:     0.15,
			PreferredBiomassMin:  30,
			PreferredBiomassMax:  80,
			Foraging:             ForagingStrategy{Kind: ForagingSampled, SampleSize: 8},
			RestDurationTicks:    30,
			MateDurationTicks:    20,
		},
		Needs: SpeciesNeeds{
			HungerMax:   100,
			ThirstMax:   100,
			EatAmount:   25, // daily_biomass_need
			DrinkAmount: 20,
		},
		Stats: components.StatsBundle{
			Hunger: components.Stat{Current: 0.3, Min: 0, Max: 1, Drift: 0.0008},
			Thirst: components.Stat{Current: 0.3, Min: 0, Max: 1, Drift: 0.001},
			Energy: components.Stat{Current: 0.8, Min: 0, Max: 1, Drift: -0.0005},
			Health: components.Stat{Current: 1.0, Min: 0, Max: 1, Drift: 0.0002},
		},
		Reproduction: components.ReproductionConfig{
			MaturityAgeTicks:        3000,
			GestationTicks:          310, // ~31 days at 10 TPS/day=10s scaled
			MatingCooldownTicks:     600,
			PostpartumCooldownTicks: 900,
			LitterSizeMin:           2,
			LitterSizeMax:           6,
			MatingSearchRadius:      20,
			MatchingIntervalTicks:   50,
			MinEnergyNormalized:     0.5,
			MinHealthNormalized:     0.5,
			WellFedRequiredTicks:    100,
			MateActionDurationTicks: 20,
		},
		Group: components.GroupFormationConfig{
			GroupType:          components.GroupWarren,
			MinGroupSize:       3,
			MaxGroupSize:       8,
			FormationRadius:    40,
			CohesionRadius:     60,
			CheckIntervalTicks: 300,
			Enabled:            true,
		},
		Evaluate: evaluateRabbit,
	}
}

func evaluateRabbit(ctx EvalContext) []Candidate {
	cands := evaluateCoreActions(ctx)
	if ctx.IsJuvenile && ctx.HasMother {
		if c, ok := evaluateFollowMother(ctx); ok {
			cands = append(cands, c)
		}
	}
	return cands
}
