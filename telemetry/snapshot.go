// Package telemetry provides read-only observation aggregators over a
// running simulation: a JSON entity list, a biomass heatmap, performance
// metrics, and alert thresholds. None of these mutate core state — they
// are pure readers, called from whatever cadence the caller (cmd/ or a
// future viewer) chooses. Grounded on the
// teacher's telemetry package (telemetry/snapshot.go, telemetry/perf.go):
// same JSON-aggregator shape, generalized from the teacher's neural-net
// organism state to this spec's StatsBundle/Agent/FearState fields.
package telemetry

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/jeanfbrito/ecosim-core/components"
)

// EntitySnapshot is one agent's externally observable state: an entity
// list entry with {id, species, position{x,y}, health}, extended with the
// other normalized stats and fear level since those are the fields a
// real dashboard would also want.
type EntitySnapshot struct {
	ID       uint32                 `json:"id"`
	Species  components.SpeciesID   `json:"species"`
	Class    components.EntityClass `json:"class"`
	Position TilePos                `json:"position"`
	Hunger   float32                `json:"hunger"`
	Thirst   float32                `json:"thirst"`
	Energy   float32                `json:"energy"`
	Health   float32                `json:"health"`
	Fear     float32                `json:"fear"`
}

// TilePos is the JSON-friendly form of components.TilePosition.
type TilePos struct {
	X int32 `json:"x"`
	Y int32 `json:"y"`
}

// SnapshotEntities returns the current observable state of every agent in
// world. Callers marshal the result to JSON for the observation surface.
func SnapshotEntities(world *ecs.World) []EntitySnapshot {
	fearMap := ecs.NewMap1[components.FearState](world)

	filter := ecs.NewFilter3[components.Agent, components.TilePosition, components.StatsBundle](world)
	query := filter.Query()

	var out []EntitySnapshot
	for query.Next() {
		e := query.Entity()
		agent, tile, stats := query.Get()

		var fear float32
		if f := fearMap.Get(e); f != nil {
			fear = f.Level
		}

		out = append(out, EntitySnapshot{
			ID:       agent.ID,
			Species:  agent.Species,
			Class:    agent.Class,
			Position: TilePos{X: tile.X, Y: tile.Y},
			Hunger:   stats.Hunger.Normalized(),
			Thirst:   stats.Thirst.Normalized(),
			Energy:   stats.Energy.Normalized(),
			Health:   stats.Health.Normalized(),
			Fear:     fear,
		})
	}
	return out
}
