package components

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"
)

// formatTileKey builds a failure-memory / log key for a tile-targeted
// action: "Graze:(x,y)".
func formatTileKey(kind string, tile TilePosition) string {
	return fmt.Sprintf("%s:(%d,%d)", kind, tile.X, tile.Y)
}

// formatEntityKey builds a failure-memory / log key for an entity-targeted
// action: "Hunt:<entity-bits>". ark's ecs.Entity.ID() is the stable
// per-world identifier used as the "bits" value.
func formatEntityKey(kind string, e ecs.Entity) string {
	return fmt.Sprintf("%s:%d", kind, e.ID())
}
