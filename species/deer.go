package species

import "github.com/jeanfbrito/ecosim-core/components"

// DeerDefinition returns the bundled deer species, a larger herbivore with
// a wider search radius than rabbit. Constants from
// original_source/src/vegetation/constants.rs species::deer.
func DeerDefinition() Definition {
	return Definition{
		ID:    "deer",
		Class: components.ClassHerbivore,
		Behavior: BehaviorConfig{
			WellFedHungerNorm:   0.45,
			WellFedThirstNorm:   0.45,
			GrazeSearchRadius:   25,
			DrinkSearchRadius:   25,
			WanderRadius:        10,
			FollowStopDistance:  3,
			TicksPerMove:        1,
			MealSizeFraction:    0.25,
			PreferredBiomassMin: 40,
			PreferredBiomassMax: 90,
			Foraging:            ForagingStrategy{Kind: ForagingSampled, SampleSize: 12},
			RestDurationTicks:   40,
			MateDurationTicks:   25,
		},
		Needs: SpeciesNeeds{
			HungerMax:   100,
			ThirstMax:   100,
			EatAmount:   80,
			DrinkAmount: 40,
		},
		Stats: components.StatsBundle{
			Hunger: components.Stat{Current: 0.3, Min: 0, Max: 1, Drift: 0.0006},
			Thirst: components.Stat{Current: 0.3, Min: 0, Max: 1, Drift: 0.0008},
			Energy: components.Stat{Current: 0.8, Min: 0, Max: 1, Drift: -0.0004},
			Health: components.Stat{Current: 1.0, Min: 0, Max: 1, Drift: 0.0002},
		},
		Reproduction: components.ReproductionConfig{
			MaturityAgeTicks:        6000,
			GestationTicks:          600,
			MatingCooldownTicks:     1200,
			PostpartumCooldownTicks: 1800,
			LitterSizeMin:           1,
			LitterSizeMax:           2,
			MatingSearchRadius:      30,
			MatchingIntervalTicks:   100,
			MinEnergyNormalized:     0.55,
			MinHealthNormalized:     0.55,
			WellFedRequiredTicks:    150,
			MateActionDurationTicks: 25,
		},
		Group: components.GroupFormationConfig{
			GroupType:          components.GroupHerd,
			MinGroupSize:       4,
			MaxGroupSize:       12,
			FormationRadius:    100,
			CohesionRadius:     150,
			CheckIntervalTicks: 300,
			Enabled:            true,
		},
		Evaluate: evaluateDeer,
	}
}

func evaluateDeer(ctx EvalContext) []Candidate {
	cands := evaluateCoreActions(ctx)
	if ctx.IsJuvenile && ctx.HasMother {
		if c, ok := evaluateFollowMother(ctx); ok {
			cands = append(cands, c)
		}
	}
	return cands
}
