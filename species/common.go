package species

import (
	"github.com/jeanfbrito/ecosim-core/components"
)

// evaluateCoreActions proposes the baseline Drink/Graze/Rest/Wander
// candidates shared by every species, built from stats + world state.
// Species evaluators call this first and then push their own additions.
// Grounded on original_source/src/ai/herbivore_toolkit.rs
// evaluate_core_actions.
func evaluateCoreActions(ctx EvalContext) []Candidate {
	var out []Candidate

	fearMod := feedingUtilityModifier(ctx.Fear)

	if c, ok := evaluateDrink(ctx); ok {
		c.Utility *= (1 + fearMod) / 2
		out = append(out, c)
	}
	if c, ok := evaluateGraze(ctx); ok {
		c.Utility *= fearMod
		out = append(out, c)
	}
	if c, ok := evaluateRest(ctx); ok {
		c.Utility *= (1 + fearMod) / 2
		out = append(out, c)
	}
	if c, ok := evaluateWander(ctx); ok {
		out = append(out, c)
	}
	return out
}

// feedingUtilityModifier is the utility multiplier for feeding (at most
// 1.0): it scales linearly down from 1.0 as fear rises, floored at
// 1 - FeedingReduction.
func feedingUtilityModifier(fear components.FearState) float32 {
	const feedingReduction = 0.3
	return 1.0 - fear.Level*feedingReduction
}

func evaluateDrink(ctx EvalContext) (Candidate, bool) {
	thirst := ctx.Stats.Thirst.Normalized()
	if thirst < 0.3 {
		return Candidate{}, false
	}
	goal, ok := nearestWater(ctx)
	if !ok {
		return Candidate{}, false
	}
	return Candidate{
		Kind:       components.ActionDrinkWater,
		TargetTile: goal,
		Utility:    thirst,
		Priority:   0,
	}, true
}

func evaluateGraze(ctx EvalContext) (Candidate, bool) {
	hunger := ctx.Stats.Hunger.Normalized()
	if hunger < 0.3 {
		return Candidate{}, false
	}
	goal, ok := findForagePatch(ctx)
	if !ok {
		return Candidate{}, false
	}
	return Candidate{
		Kind:       components.ActionGraze,
		TargetTile: goal,
		Utility:    hunger,
		Priority:   0,
	}, true
}

func evaluateRest(ctx EvalContext) (Candidate, bool) {
	energy := ctx.Stats.Energy.Normalized()
	if energy > 0.5 {
		return Candidate{}, false
	}
	return Candidate{
		Kind:          components.ActionRest,
		Utility:       1 - energy,
		Priority:      0,
		TargetTile:    ctx.Position,
	}, true
}

func evaluateWander(ctx EvalContext) (Candidate, bool) {
	angleSteps := [8][2]int32{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}
	dir := angleSteps[ctx.RNG.Intn(len(angleSteps))]
	radius := int32(ctx.Behavior.WanderRadius)
	if radius <= 0 {
		radius = 5
	}
	goal := ctx.Position.Add(dir[0]*radius, dir[1]*radius)
	return Candidate{
		Kind:       components.ActionWander,
		TargetTile: goal,
		Utility:    0.1,
		Priority:   0,
	}, true
}

// findForagePatch searches for a tile with acceptable biomass within the
// species' search radius, using the configured ForagingStrategy.
func findForagePatch(ctx EvalContext) (components.TilePosition, bool) {
	radius := int32(ctx.Behavior.GrazeSearchRadius)
	if radius <= 0 {
		radius = 10
	}
	best := ctx.Position
	bestBiomass := float32(-1)
	found := false

	consider := func(tile components.TilePosition) {
		if !ctx.World.IsWalkable(tile) {
			return
		}
		biomass, _ := ctx.Vegetation.SampleBiomass(tile)
		if biomass < ctx.Behavior.PreferredBiomassMin*0.25 {
			return
		}
		if biomass > bestBiomass {
			bestBiomass = biomass
			best = tile
			found = true
		}
	}

	switch ctx.Behavior.Foraging.Kind {
	case ForagingSampled:
		n := ctx.Behavior.Foraging.SampleSize
		if n <= 0 {
			n = 8
		}
		for i := 0; i < n; i++ {
			dx := int32(ctx.RNG.Intn(int(2*radius+1))) - radius
			dy := int32(ctx.RNG.Intn(int(2*radius+1))) - radius
			consider(ctx.Position.Add(dx, dy))
		}
	default: // Exhaustive
		for dy := -radius; dy <= radius; dy++ {
			for dx := -radius; dx <= radius; dx++ {
				consider(ctx.Position.Add(dx, dy))
			}
		}
	}

	return best, found
}

// nearestWater is a stand-in water search: the world loader tags water
// tiles via terrain; here it degenerates to "nearest walkable tile with
// zero vegetation terrain factor" as a simple heuristic grounded on the
// fact that the core spec treats water identically to a tile target.
func nearestWater(ctx EvalContext) (components.TilePosition, bool) {
	radius := int32(ctx.Behavior.DrinkSearchRadius)
	if radius <= 0 {
		radius = 10
	}
	for r := int32(1); r <= radius; r++ {
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				if dx != -r && dx != r && dy != -r && dy != r {
					continue
				}
				tile := ctx.Position.Add(dx, dy)
				if ctx.Vegetation.TerrainFactor(tile) == 0 && ctx.World.IsWalkable(tile) {
					return tile, true
				}
			}
		}
	}
	return components.TilePosition{}, false
}

// evaluateFollowMother proposes a Follow candidate for a juvenile with a
// living mother, grounded on
// original_source/src/ai/herbivore_toolkit.rs maybe_add_follow_mother.
func evaluateFollowMother(ctx EvalContext) (Candidate, bool) {
	motherPos, ok := ctx.World.PositionOf(ctx.MotherEntity)
	if !ok {
		return Candidate{}, false
	}
	if components.ChebyshevDistance(ctx.Position, motherPos) <= int32(ctx.Behavior.FollowStopDistance) {
		return Candidate{}, false
	}
	return Candidate{
		Kind:         components.ActionFollow,
		TargetEntity: ctx.MotherEntity,
		HasEntity:    true,
		Utility:      0.5,
		Priority:     10,
	}, true
}

// stripGraze removes Graze candidates, used by predator species: they
// strip Graze candidates before returning their own list.
func stripGraze(cands []Candidate) []Candidate {
	out := cands[:0]
	for _, c := range cands {
		if c.Kind == components.ActionGraze {
			continue
		}
		out = append(out, c)
	}
	return out
}
