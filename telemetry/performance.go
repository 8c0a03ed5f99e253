package telemetry

import (
	"github.com/mlange-42/ark/ecs"
)

// PerformanceSnapshot is the `performance` field of the performance-
// metrics surface, extended with the population-health aggregates since
// a standalone tick-timing number is of little use without knowing
// whether the population it's timing is healthy.
type PerformanceSnapshot struct {
	Perf       PerfStats        `json:"perf"`
	Population PopulationHealth `json:"population"`
}

// SnapshotPerformance combines the rolling tick-timing window with the
// current population's health aggregates.
func SnapshotPerformance(world *ecs.World, perf *PerfCollector) PerformanceSnapshot {
	return PerformanceSnapshot{
		Perf:       perf.Stats(),
		Population: ComputePopulationHealth(world),
	}
}
