package telemetry

import (
	"github.com/jeanfbrito/ecosim-core/components"
	"github.com/jeanfbrito/ecosim-core/systems"
)

// BiomassHeatmap is the JSON shape of a biomass heatmap:
// {cells, max_biomass, tile_size}. The grid is sparse and unbounded, so
// there is no dense heatmap array and no metadata field; the snapshot
// lists only instantiated cells, and a viewer renders the rest as full
// capacity, as if
// they held biomass = max_biomass * terrain_factor.
type BiomassHeatmap struct {
	Cells      []BiomassCell `json:"cells"`
	MaxBiomass float32       `json:"max_biomass"`
	TileSize   int           `json:"tile_size"`
}

// BiomassCell is one instantiated vegetation cell's current state.
type BiomassCell struct {
	Position TilePos `json:"position"`
	Biomass  float32 `json:"biomass"`
	Capacity float32 `json:"capacity"`
	Pressure float32 `json:"pressure"`
}

// SnapshotBiomassHeatmap returns every instantiated vegetation cell in
// veg. tileSize is the caller's rendering tile size in world units,
// carried through unchanged for a viewer to scale against.
func SnapshotBiomassHeatmap(veg *systems.VegetationGrid, tileSize int) BiomassHeatmap {
	hm := BiomassHeatmap{TileSize: tileSize}
	veg.EachCell(func(tile components.TilePosition, cell systems.VegetationCell) {
		hm.Cells = append(hm.Cells, BiomassCell{
			Position: TilePos{X: tile.X, Y: tile.Y},
			Biomass:  cell.Biomass,
			Capacity: cell.MaxBiomass,
			Pressure: cell.Pressure,
		})
		if cell.MaxBiomass > hm.MaxBiomass {
			hm.MaxBiomass = cell.MaxBiomass
		}
	})
	return hm
}
