// Command ecosim runs the simulation core headlessly: load config and a
// spawn manifest, build a world, and tick it forward, periodically
// logging population and performance stats. Grounded on the teacher's
// runHeadless/NewGameHeadless (main.go), generalized from a windowed
// game loop with an optional headless branch to an always-headless
// entrypoint, since this module has no renderer.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jeanfbrito/ecosim-core/components"
	"github.com/jeanfbrito/ecosim-core/config"
	"github.com/jeanfbrito/ecosim-core/gamelog"
	"github.com/jeanfbrito/ecosim-core/species"
	"github.com/jeanfbrito/ecosim-core/systems"
	"github.com/jeanfbrito/ecosim-core/telemetry"
	"github.com/jeanfbrito/ecosim-core/world"
)

var (
	configPath   = flag.String("config", "", "Path to a config YAML overriding the embedded defaults")
	spawnPath    = flag.String("spawn", "", "Path to a spawn manifest YAML (required)")
	logFile      = flag.String("logfile", "", "Write logs to a file instead of stdout")
	maxTicks     = flag.Uint64("max-ticks", 0, "Stop after N ticks (0 = run forever)")
	reportTicks  = flag.Uint64("report-every", 100, "Log population/perf stats every N ticks")
	seed         = flag.Int64("seed", 1, "RNG seed")
	worldRadius  = flag.Int("world-radius", 64, "Half-width of the square walkable region built at startup, centered on (0,0)")
	csvPath      = flag.String("csv", "", "Path to a telemetry CSV trail (empty disables CSV export)")
)

func main() {
	flag.Parse()

	if *logFile != "" {
		f, err := os.Create(*logFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to create log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		gamelog.SetWriter(f)
	}

	if *spawnPath == "" {
		fmt.Fprintln(os.Stderr, "ecosim: -spawn is required")
		os.Exit(1)
	}

	config.MustInit(*configPath)
	cfg := config.Cfg()

	spawnDoc, err := config.LoadSpawnDocument(*spawnPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ecosim: %v\n", err)
		os.Exit(1)
	}

	loader := systems.NewStaticWorldLoader("grassland")
	registry := species.NewRegistry()

	w := world.New(cfg, registry, loader, *seed)

	tiles := squareRegion(*worldRadius)
	w.BuildRegions(tiles)
	w.SpawnFromDocument(spawnDoc, 0)

	outputManager, err := telemetry.NewOutputManager(*csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ecosim: %v\n", err)
		os.Exit(1)
	}
	defer outputManager.Close()

	perf := telemetry.NewPerfCollector(int(*reportTicks))

	gamelog.Logf("ecosim starting: seed=%d spawn=%s max_ticks=%d", *seed, *spawnPath, *maxTicks)

	start := time.Now()
	for tick := uint64(1); *maxTicks == 0 || tick <= *maxTicks; tick++ {
		perf.StartTick()
		w.Tick(tick)
		perf.EndTick()

		if *reportTicks > 0 && tick%*reportTicks == 0 {
			report(w, perf, outputManager, tick)
		}
	}

	elapsed := time.Since(start)
	gamelog.Logf("ecosim finished: elapsed=%s", elapsed.Round(time.Millisecond))
}

func report(w *world.World, perf *telemetry.PerfCollector, out *telemetry.OutputManager, tick uint64) {
	health := telemetry.ComputePopulationHealth(w.ECS)
	perfStats := perf.Stats()

	gamelog.Logf("tick=%d population=%d hunger_mean=%.2f thirst_mean=%.2f fear_mean=%.2f avg_tick_us=%d",
		tick, health.Count, health.HungerMean, health.ThirstMean, health.FearMean, perfStats.AvgTickDuration.Microseconds())

	for _, alert := range telemetry.SnapshotAlerts(w.ECS, w.PathQ, w.Veg) {
		gamelog.Logf("[%s] %s", alert.Severity, alert.Message)
	}

	if err := out.WriteWindow(telemetry.WindowRecord{
		Tick:            tick,
		Population:      health.Count,
		HungerMean:      health.HungerMean,
		ThirstMean:      health.ThirstMean,
		FearMean:        health.FearMean,
		VegetationCells: w.Veg.CellCount(),
		PendingEvents:   w.Veg.PendingEvents(),
		AvgTickUs:       perfStats.AvgTickDuration.Microseconds(),
	}); err != nil {
		gamelog.Logf("telemetry csv write failed: %v", err)
	}
}

// squareRegion enumerates every tile in [-radius, radius]^2, the startup
// walkable region the region map is built over.
func squareRegion(radius int) []components.TilePosition {
	tiles := make([]components.TilePosition, 0, (2*radius+1)*(2*radius+1))
	for x := -radius; x <= radius; x++ {
		for y := -radius; y <= radius; y++ {
			tiles = append(tiles, components.TilePosition{X: int32(x), Y: int32(y)})
		}
	}
	return tiles
}
