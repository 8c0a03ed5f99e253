package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/jeanfbrito/ecosim-core/components"
)

// WorldView adapts the grid and spatial index into the small read-only
// interfaces species.EvalContext needs, so the species package never has
// to import systems directly (avoiding an import cycle: systems already
// imports species for the planner).
type WorldView struct {
	Grid    *PathGrid
	Spatial *SpatialIndex
}

// IsWalkable satisfies species.SpatialQuerier.
func (v WorldView) IsWalkable(tile components.TilePosition) bool {
	return v.Grid.IsWalkable(tile)
}

// NearbyEntities satisfies species.SpatialQuerier.
func (v WorldView) NearbyEntities(center components.TilePosition, radius float32, class components.EntityClass) []ecs.Entity {
	return v.Spatial.EntitiesInRadius(center, radius, class)
}

// PositionOf satisfies species.SpatialQuerier.
func (v WorldView) PositionOf(e ecs.Entity) (components.TilePosition, bool) {
	return v.Spatial.PositionOf(e)
}
