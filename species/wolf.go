package species

import "github.com/jeanfbrito/ecosim-core/components"

// WolfDefinition returns a predator species, exercising Hunt/Scavenge and
// the fear system end-to-end — without a concrete predator evaluator,
// the Graze-stripping rule shared predator species follow would have
// nothing to run against.
func WolfDefinition() Definition {
	return Definition{
		ID:    "wolf",
		Class: components.ClassPredator,
		Behavior: BehaviorConfig{
			WellFedHungerNorm:    0.5,
			WellFedThirstNorm:    0.5,
			DrinkSearchRadius:    20,
			WanderRadius:         15,
			HuntSearchRadius:     30,
			ScavengeSearchRadius: 20,
			FollowStopDistance:   3,
			TicksPerMove:         1,
			RestDurationTicks:    50,
			HuntBiteRange:        1,
			MateDurationTicks:    30,
		},
		Needs: SpeciesNeeds{
			HungerMax:   100,
			ThirstMax:   100,
			EatAmount:   60,
			DrinkAmount: 30,
		},
		Stats: components.StatsBundle{
			Hunger: components.Stat{Current: 0.35, Min: 0, Max: 1, Drift: 0.001},
			Thirst: components.Stat{Current: 0.3, Min: 0, Max: 1, Drift: 0.0009},
			Energy: components.Stat{Current: 0.8, Min: 0, Max: 1, Drift: -0.0006},
			Health: components.Stat{Current: 1.0, Min: 0, Max: 1, Drift: 0.0002},
		},
		Reproduction: components.ReproductionConfig{
			MaturityAgeTicks:        7000,
			GestationTicks:          630,
			MatingCooldownTicks:     1500,
			PostpartumCooldownTicks: 2000,
			LitterSizeMin:           1,
			LitterSizeMax:           4,
			MatingSearchRadius:      40,
			MatchingIntervalTicks:   150,
			MinEnergyNormalized:     0.6,
			MinHealthNormalized:     0.6,
			WellFedRequiredTicks:    200,
			MateActionDurationTicks: 30,
		},
		Group: components.GroupFormationConfig{
			GroupType:          components.GroupPack,
			MinGroupSize:       3,
			MaxGroupSize:       8,
			FormationRadius:    60,
			CohesionRadius:     100,
			CheckIntervalTicks: 300,
			Enabled:            true,
		},
		Evaluate: evaluateWolf,
	}
}

func evaluateWolf(ctx EvalContext) []Candidate {
	cands := stripGraze(evaluateCoreActions(ctx))

	radius := ctx.Behavior.HuntSearchRadius
	if radius <= 0 {
		radius = 30
	}
	prey := ctx.World.NearbyEntities(ctx.Position, radius, components.ClassHerbivore)
	if len(prey) > 0 {
		target := prey[0]
		hunger := ctx.Stats.Hunger.Normalized()
		if hunger > 0.2 {
			cands = append(cands, Candidate{
				Kind:         components.ActionHunt,
				TargetEntity: target,
				HasEntity:    true,
				Utility:      hunger,
				Priority:     5,
			})
		}
	}
	return cands
}
