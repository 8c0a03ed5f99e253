package systems

import (
	"container/heap"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/jeanfbrito/ecosim-core/components"
	"github.com/jeanfbrito/ecosim-core/config"
)

// VegetationCell is a lazily-instantiated per-tile resource record.
// Grounded on the teacher's ResourceField (systems/resource_field.go)
// for the regrow-towards-capacity shape, generalized from a dense float
// array (the teacher's fixed-size toroidal world) to a sparse map (this
// grid is unbounded) and from a single regen rate to a logistic growth
// step plus an independently-scheduled event queue.
type VegetationCell struct {
	Biomass        float32
	MaxBiomass     float32
	GrowthRate     float32
	Pressure       float32
	LastGrazedTick uint64
	Type           string
}

// regrowthEvent is a scheduled future regrowth application.
type regrowthEvent struct {
	Tile    components.TilePosition
	DueTick uint64
	index   int
}

type regrowthHeap []*regrowthEvent

func (h regrowthHeap) Len() int            { return len(h) }
func (h regrowthHeap) Less(i, j int) bool  { return h[i].DueTick < h[j].DueTick }
func (h regrowthHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i]; h[i].index = i; h[j].index = j }
func (h *regrowthHeap) Push(x any)         { e := x.(*regrowthEvent); e.index = len(*h); *h = append(*h, e) }
func (h *regrowthHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*h = old[:n-1]
	return e
}

// RandSource is the minimal RNG surface the vegetation grid needs for
// random-cell sampling, satisfied by *rand.Rand.
type RandSource interface {
	Intn(n int) int
	Float64() float64
}

// VegetationGrid is the per-cell biomass resource. Cells are
// created on first read/write and persist; regrowth is driven by a
// min-heap of due-tick events plus a bounded random sample each tick so
// cells without pending events still recover slowly.
type VegetationGrid struct {
	cfg    config.VegetationConfig
	loader WorldLoader
	noise  opensimplex.Noise

	cells  map[components.TilePosition]*VegetationCell
	events regrowthHeap

	// order preserves insertion order of cells for the random-sample step
	// so sampling doesn't need to build a key slice from the map every
	// tick; cellOrInit appends each newly created cell's tile.
	order []components.TilePosition
}

// NewVegetationGrid creates a grid backed by loader for terrain lookups
// and noiseSeed for the capacity-perturbation noise field, giving each
// terrain class's max_biomass a little organic variation rather than a
// hard uniform cap.
func NewVegetationGrid(cfg config.VegetationConfig, loader WorldLoader, noiseSeed int64) *VegetationGrid {
	return &VegetationGrid{
		cfg:    cfg,
		loader: loader,
		noise:  opensimplex.New(noiseSeed),
		cells:  make(map[components.TilePosition]*VegetationCell),
	}
}

// baseMaxBiomass returns the terrain-class capacity before noise
// perturbation. Unknown/unset terrain defaults to 100.
func baseMaxBiomass(class string) float32 {
	switch class {
	case "water", "rock", "cliff":
		return 0
	case "forest":
		return 120
	case "grassland":
		return 100
	case "shrub":
		return 70
	default:
		return 100
	}
}

// TerrainFactor returns tile's capacity multiplier: 0 for water, rock and
// cliff, otherwise the terrain class's base capacity normalized against
// 100 (at most 1.2, for forest), perturbed by a
// low-frequency noise field so capacity isn't perfectly uniform within a
// class.
func (g *VegetationGrid) TerrainFactor(tile components.TilePosition) float32 {
	class := "grassland"
	if g.loader != nil {
		if c, _, ok := g.loader.TerrainAt(tile); ok {
			class = c
		}
	}
	base := baseMaxBiomass(class) / 100
	if base == 0 {
		return 0
	}
	freq := g.cfg.NoiseFrequency
	if freq <= 0 {
		freq = 0.05
	}
	n := g.noise.Eval2(float64(tile.X)*freq, float64(tile.Y)*freq) // in [-1,1]
	amp := g.cfg.NoiseAmplitude
	perturb := float32(1 + n*amp)
	if perturb < 0.2 {
		perturb = 0.2
	}
	return base * perturb
}

// cellOrInit returns tile's cell, lazily creating it from terrain-derived
// capacity at full biomass if absent.
func (g *VegetationGrid) cellOrInit(tile components.TilePosition) *VegetationCell {
	if c, ok := g.cells[tile]; ok {
		return c
	}
	factor := g.TerrainFactor(tile)
	class := "grassland"
	if g.loader != nil {
		if c, _, ok := g.loader.TerrainAt(tile); ok {
			class = c
		}
	}
	maxB := 100 * factor
	cell := &VegetationCell{
		Biomass:    maxB,
		MaxBiomass: maxB,
		GrowthRate: 0.05,
		Type:       class,
	}
	g.cells[tile] = cell
	g.order = append(g.order, tile)
	return cell
}

// GetCell reads tile without allocating. Absent tiles report biomass at
// full terrain-derived capacity for ranking purposes, as if they held
// biomass = max_biomass * terrain_factor.
func (g *VegetationGrid) GetCell(tile components.TilePosition) (biomass, maxBiomass float32) {
	if c, ok := g.cells[tile]; ok {
		return c.Biomass, c.MaxBiomass
	}
	factor := g.TerrainFactor(tile)
	return 100 * factor, 100 * factor
}

// SampleBiomass satisfies species.VegetationSampler.
func (g *VegetationGrid) SampleBiomass(tile components.TilePosition) (float32, float32) {
	return g.GetCell(tile)
}

// ConsumeAt applies a consumption event at tile. desired is the
// amount the forager wants; dietFactor scales it into the forager's own
// meal cap (e.g. species.MealSizeFraction * remaining hunger capacity).
// Consumed is clamped to min(desired, meal_cap, 0.3*biomass) and is never
// negative — running out of biomass is never an error, only a smaller
// consumption. A RegrowthEvent is scheduled whose delay grows with the
// magnitude consumed.
func (g *VegetationGrid) ConsumeAt(tile components.TilePosition, desired, dietFactor float32, tick uint64) float32 {
	cell := g.cellOrInit(tile)

	mealCap := desired * dietFactor
	maxFraction := float32(g.cfg.MaxMealFraction)
	if maxFraction <= 0 {
		maxFraction = 0.3
	}
	biomassCap := maxFraction * cell.Biomass

	consumed := desired
	if mealCap < consumed {
		consumed = mealCap
	}
	if biomassCap < consumed {
		consumed = biomassCap
	}
	if consumed < 0 {
		consumed = 0
	}
	if consumed > cell.Biomass {
		consumed = cell.Biomass
	}

	cell.Biomass -= consumed
	cell.Pressure += float32(g.cfg.PressureIncrement)
	cell.LastGrazedTick = tick

	delay := regrowDelay(g.cfg, consumed)
	heap.Push(&g.events, &regrowthEvent{Tile: tile, DueTick: tick + delay})

	return consumed
}

// regrowDelay grows with the magnitude of consumption: heavier grazing
// schedules a longer recovery delay. base_delay is the floor (matches
// the teacher's growth-interval cadence); k scales with the amount
// consumed.
func regrowDelay(cfg config.VegetationConfig, consumed float32) uint64 {
	base := cfg.RegrowBaseDelay
	if base <= 0 {
		base = 10
	}
	k := cfg.RegrowDelayPerUnit
	if k <= 0 {
		k = 1.0
	}
	return uint64(base) + uint64(k*float64(consumed))
}

// ProcessDueEvents applies a logistic growth step to every cell with a due
// RegrowthEvent at or before tick, bounded by budget. Multiple
// events queued at the same tile (from repeated consumption) are each
// processed independently, applying the step once per event.
func (g *VegetationGrid) ProcessDueEvents(tick uint64, budget int) int {
	processed := 0
	for processed < budget && g.events.Len() > 0 && g.events[0].DueTick <= tick {
		ev := heap.Pop(&g.events).(*regrowthEvent)
		g.applyLogisticStep(ev.Tile)
		processed++
	}
	return processed
}

// SampleRandomCells applies the same logistic growth step to up to k
// already-instantiated cells chosen at random, independent of pending
// events, so cells without a scheduled regrowth still recover slowly.
func (g *VegetationGrid) SampleRandomCells(k int, rng RandSource) int {
	n := len(g.order)
	if n == 0 {
		return 0
	}
	if k > n {
		k = n
	}
	for i := 0; i < k; i++ {
		tile := g.order[rng.Intn(n)]
		g.applyLogisticStep(tile)
	}
	return k
}

func (g *VegetationGrid) applyLogisticStep(tile components.TilePosition) {
	cell, ok := g.cells[tile]
	if !ok || cell.MaxBiomass <= 0 {
		return
	}
	terrainFactor := g.TerrainFactor(tile)
	rate := cell.GrowthRate
	if rate <= 0 {
		rate = 0.05
	}
	b := cell.Biomass
	bmax := cell.MaxBiomass
	growth := rate * b * (1 - b/bmax) * terrainFactor
	cell.Biomass += growth
	if cell.Biomass > cell.MaxBiomass {
		cell.Biomass = cell.MaxBiomass
	}
	if cell.Biomass < 0 {
		cell.Biomass = 0
	}
}

// DecayPressure exponentially decays every instantiated cell's pressure
// toward zero.
func (g *VegetationGrid) DecayPressure() {
	decay := float32(g.cfg.PressureDecayRate)
	if decay <= 0 {
		return
	}
	for _, cell := range g.cells {
		cell.Pressure *= (1 - decay)
		if cell.Pressure < 0.0001 {
			cell.Pressure = 0
		}
	}
}

// Update runs one tick of vegetation maintenance: due regrowth events (up
// to EventBudgetPerTick), a bounded random sample, and pressure decay.
func (g *VegetationGrid) Update(tick uint64, rng RandSource) {
	budget := g.cfg.EventBudgetPerTick
	if budget <= 0 {
		budget = 500
	}
	g.ProcessDueEvents(tick, budget)

	k := g.cfg.RandomSampleCells
	if k <= 0 {
		k = 50
	}
	g.SampleRandomCells(k, rng)

	g.DecayPressure()
}

// GivingUpThreshold returns the biomass floor below which a forager
// abandons tile's patch: max(giving_up_ratio*max_biomass,
// forage_min_biomass). Consumed by planners, not by the grid itself.
func (g *VegetationGrid) GivingUpThreshold(tile components.TilePosition) float32 {
	_, maxB := g.GetCell(tile)
	ratio := float32(g.cfg.GivingUpRatio)
	if ratio <= 0 {
		ratio = 0.25
	}
	floor := float32(g.cfg.ForageMinBiomass)
	rel := ratio * maxB
	if rel > floor {
		return rel
	}
	return floor
}

// PendingEvents returns the number of not-yet-processed RegrowthEvents,
// used by tests and the performance observation surface.
func (g *VegetationGrid) PendingEvents() int {
	return g.events.Len()
}

// CellCount returns the number of lazily-instantiated cells.
func (g *VegetationGrid) CellCount() int {
	return len(g.cells)
}

// EachCell calls fn once per instantiated cell, in insertion order. Used
// by the telemetry package's biomass heatmap snapshot; the grid has no
// other exported way to enumerate its sparse cell map.
func (g *VegetationGrid) EachCell(fn func(components.TilePosition, VegetationCell)) {
	for _, tile := range g.order {
		if cell, ok := g.cells[tile]; ok {
			fn(tile, *cell)
		}
	}
}
