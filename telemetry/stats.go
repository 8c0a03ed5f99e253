package telemetry

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/mlange-42/ark/ecs"

	"github.com/jeanfbrito/ecosim-core/components"
)

// PopulationHealth summarizes the hunger/thirst/fear distribution across
// every agent in one snapshot: mean, variance, and the median (p50) via
// gonum/stat, matching the teacher's confinement of gonum to non-hot-path
// analysis (cmd/optimize/main.go, systems/simd_bench_test.go) rather than
// the per-tick simulation loop.
type PopulationHealth struct {
	Count int `json:"count"`

	HungerMean float64 `json:"hunger_mean"`
	HungerVar  float64 `json:"hunger_variance"`
	HungerP50  float64 `json:"hunger_p50"`

	ThirstMean float64 `json:"thirst_mean"`
	ThirstVar  float64 `json:"thirst_variance"`
	ThirstP50  float64 `json:"thirst_p50"`

	FearMean float64 `json:"fear_mean"`
	FearVar  float64 `json:"fear_variance"`
	FearP50  float64 `json:"fear_p50"`
}

// ComputePopulationHealth aggregates hunger, thirst, and fear across
// every agent in world. gonum/stat.Quantile requires its input sorted
// ascending (unweighted), so each distribution is sorted once before the
// three quantile calls.
func ComputePopulationHealth(world *ecs.World) PopulationHealth {
	statsMap := ecs.NewMap1[components.StatsBundle](world)
	fearMap := ecs.NewMap1[components.FearState](world)
	filter := ecs.NewFilter1[components.StatsBundle](world)

	var hunger, thirst, fear []float64
	query := filter.Query()
	for query.Next() {
		e := query.Entity()
		s := statsMap.Get(e)
		hunger = append(hunger, float64(s.Hunger.Normalized()))
		thirst = append(thirst, float64(s.Thirst.Normalized()))
		if f := fearMap.Get(e); f != nil {
			fear = append(fear, float64(f.Level))
		} else {
			fear = append(fear, 0)
		}
	}

	var out PopulationHealth
	out.Count = len(hunger)
	if out.Count == 0 {
		return out
	}

	out.HungerMean, out.HungerVar = meanVariance(hunger)
	out.ThirstMean, out.ThirstVar = meanVariance(thirst)
	out.FearMean, out.FearVar = meanVariance(fear)

	sort.Float64s(hunger)
	sort.Float64s(thirst)
	sort.Float64s(fear)
	out.HungerP50 = stat.Quantile(0.5, stat.Empirical, hunger, nil)
	out.ThirstP50 = stat.Quantile(0.5, stat.Empirical, thirst, nil)
	out.FearP50 = stat.Quantile(0.5, stat.Empirical, fear, nil)

	return out
}

func meanVariance(values []float64) (mean, variance float64) {
	mean = stat.Mean(values, nil)
	variance = stat.Variance(values, nil)
	return mean, variance
}
