package telemetry

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/jeanfbrito/ecosim-core/systems"
)

// Alert is one per-tick health-status warning surfaced by SnapshotAlerts.
type Alert struct {
	Severity string `json:"severity"` // "info", "warn", "critical"
	Message  string `json:"message"`
}

const (
	lowPopulationThreshold   = 5
	highPathBacklogThreshold = 200
)

// SnapshotAlerts inspects the current world and pending-work queues for
// conditions an operator would want surfaced: a population crash, a
// pathfinding backlog building up faster than it drains, or vegetation
// events piling up. These are read-only observations, not corrective
// actions — nothing here mutates state.
func SnapshotAlerts(world *ecs.World, pathQ *systems.PathQueue, veg *systems.VegetationGrid) []Alert {
	var alerts []Alert

	entities := SnapshotEntities(world)
	if len(entities) <= lowPopulationThreshold {
		alerts = append(alerts, Alert{Severity: "critical", Message: "population at or below critical threshold"})
	}

	if pending := pathQ.Pending(); pending > highPathBacklogThreshold {
		alerts = append(alerts, Alert{Severity: "warn", Message: "pathfinding request backlog is growing"})
	}

	if veg.PendingEvents() > 0 && veg.CellCount() > 0 && veg.PendingEvents() > 10*veg.CellCount() {
		alerts = append(alerts, Alert{Severity: "warn", Message: "vegetation regrowth events backlogged relative to instantiated cells"})
	}

	return alerts
}
