package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/jeanfbrito/ecosim-core/components"
	"github.com/jeanfbrito/ecosim-core/config"
)

// FearSystem updates prey fear state from predator proximity every tick.
// Grounded on the teacher's sensor-based threat detection
// (systems/sensors.go's predator-proximity scan), generalized from a
// continuous vision cone to the spec's chunked spatial-index radius query
// and from an instantaneous signal to an exponentially-decaying level.
type FearSystem struct {
	spatial *SpatialIndex
	cfg     config.FearConfig

	agentMap *ecs.Map1[components.Agent]
	tileMap  *ecs.Map1[components.TilePosition]
	fearMap  *ecs.Map1[components.FearState]
	filter   *ecs.Filter2[components.Agent, components.TilePosition]
}

// NewFearSystem builds a fear system bound to spatial and cfg.
func NewFearSystem(world *ecs.World, spatial *SpatialIndex, cfg config.FearConfig) *FearSystem {
	return &FearSystem{
		spatial:  spatial,
		cfg:      cfg,
		agentMap: ecs.NewMap1[components.Agent](world),
		tileMap:  ecs.NewMap1[components.TilePosition](world),
		fearMap:  ecs.NewMap1[components.FearState](world),
		filter:   ecs.NewFilter2[components.Agent, components.TilePosition](world),
	}
}

// decayFactor returns the per-tick multiplicative decay implementing a
// half-life of halfLifeTicks: level *= 0.5^(1/halfLife) each tick.
func decayFactor(halfLifeTicks float64) float32 {
	if halfLifeTicks <= 0 {
		return 0
	}
	return float32(math.Pow(0.5, 1.0/halfLifeTicks))
}

// Update scans every non-predator agent for nearby predators and
// raises/decays its fear level accordingly.
func (f *FearSystem) Update() {
	radius := float32(f.cfg.Radius)
	if radius <= 0 {
		radius = 20
	}
	decay := decayFactor(f.cfg.HalfLifeTicks)

	query := f.filter.Query()
	for query.Next() {
		e := query.Entity()
		agent, tile := query.Get()
		if agent.Class == components.ClassPredator {
			continue
		}

		nearby := f.spatial.EntitiesInRadius(*tile, radius, components.ClassPredator)
		// exclude self defensively, even though self is never a predator here
		count := len(nearby)
		for _, n := range nearby {
			if n == e {
				count--
			}
		}

		fear := f.fearMap.Get(e)
		if fear == nil {
			f.fearMap.Add(e, &components.FearState{})
			fear = f.fearMap.Get(e)
		}
		fear.NearbyPredators = count

		if count > 0 {
			target := float32(count) / 3.0 // saturates toward 1.0 around 3 predators
			if target > 1 {
				target = 1
			}
			if target > fear.Level {
				fear.Level = target
			}
		} else {
			fear.Level *= decay
			if fear.Level < 0.001 {
				fear.Level = 0
			}
		}
	}
}

// SpeedBoost returns the movement-speed multiplier fear grants, capped at
// maxBoost (the action system passes 1.5).
func SpeedBoost(fear components.FearState, maxBoost float64) float32 {
	boost := 1 + fear.Level*float32(maxBoost-1)
	cap := float32(maxBoost)
	if boost > cap {
		boost = cap
	}
	return boost
}

// FeedingDurationReduction returns the fraction by which fear shortens a
// feeding action's effective duration, capped at maxReduction.
func FeedingDurationReduction(fear components.FearState, maxReduction float64) float32 {
	r := fear.Level * float32(maxReduction)
	if r > float32(maxReduction) {
		r = float32(maxReduction)
	}
	return r
}

// BiomassToleranceShift returns how much a fearful forager lowers its
// giving-up density tolerance — fearful agents accept thinner patches
// rather than linger.
func BiomassToleranceShift(fear components.FearState) float32 {
	return fear.Level * 0.5
}
