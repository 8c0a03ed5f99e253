package telemetry

import (
	"time"

	"github.com/jeanfbrito/ecosim-core/gamelog"
)

// Phase names for the tick pipeline, in world.Tick's order, used as
// PerfCollector's breakdown keys.
const (
	PhaseTriggers    = "triggers"
	PhasePlanner     = "planner"
	PhaseActions     = "actions"
	PhasePathfinding = "pathfinding"
	PhaseMovement    = "movement"
	PhaseVegetation  = "vegetation"
	PhaseReproduction = "reproduction"
	PhaseFear        = "fear"
	PhaseGroups      = "groups"
	PhaseCleanup     = "cleanup"
)

// PerfSample holds timing data for a single tick. Grounded on the
// teacher's telemetry.PerfSample (telemetry/perf.go), unchanged in
// shape.
type PerfSample struct {
	TickDuration time.Duration
	Phases       map[string]time.Duration
}

// PerfCollector tracks tick timing over a rolling window, exactly the
// teacher's ring-buffer shape (telemetry/perf.go's PerfCollector),
// renamed phases aside.
type PerfCollector struct {
	windowSize    int
	samples       []PerfSample
	writeIndex    int
	sampleCount   int
	currentPhases map[string]time.Duration
	tickStart     time.Time
	phaseStart    time.Time
	lastPhase     string
}

// NewPerfCollector creates a collector averaging over windowSize ticks.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 600
	}
	return &PerfCollector{
		windowSize:    windowSize,
		samples:       make([]PerfSample, windowSize),
		currentPhases: make(map[string]time.Duration),
	}
}

// StartTick begins timing a new tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = time.Now()
	p.currentPhases = make(map[string]time.Duration)
	p.lastPhase = ""
}

// StartPhase begins timing phase, closing out whichever phase was
// previously open.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndTick closes out the final phase and records the sample.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}

	p.samples[p.writeIndex] = PerfSample{TickDuration: now.Sub(p.tickStart), Phases: p.currentPhases}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// PerfStats is the aggregated window: the `performance` field of a wider
// metrics surface that also covers resource-grid, chunk-LOD, and
// heatmap-refresh stats — those other three have no equivalent in this
// core (no LOD or client-side heatmap refresh concept) and are the
// viewer's concern, not the simulation's; the tick-timing breakdown is
// what the core can actually report.
type PerfStats struct {
	AvgTickDuration time.Duration `json:"avg_tick_duration_ns"`
	MinTickDuration time.Duration `json:"min_tick_duration_ns"`
	MaxTickDuration time.Duration `json:"max_tick_duration_ns"`
	PhaseAvg        map[string]time.Duration `json:"-"`
	PhasePct        map[string]float64       `json:"phase_pct"`
	TicksPerSecond  float64                  `json:"ticks_per_second"`
}

// Stats computes aggregated statistics over the collector's current
// window.
func (p *PerfCollector) Stats() PerfStats {
	if p.sampleCount == 0 {
		return PerfStats{PhaseAvg: map[string]time.Duration{}, PhasePct: map[string]float64{}}
	}

	var total, min, max time.Duration
	phaseSum := make(map[string]time.Duration)
	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		total += s.TickDuration
		if i == 0 || s.TickDuration < min {
			min = s.TickDuration
		}
		if s.TickDuration > max {
			max = s.TickDuration
		}
		for phase, dur := range s.Phases {
			phaseSum[phase] += dur
		}
	}

	avg := total / time.Duration(p.sampleCount)
	phaseAvg := make(map[string]time.Duration)
	phasePct := make(map[string]float64)
	for phase, sum := range phaseSum {
		phaseAvg[phase] = sum / time.Duration(p.sampleCount)
		if avg > 0 {
			phasePct[phase] = float64(phaseAvg[phase]) / float64(avg) * 100
		}
	}

	var tps float64
	if avg > 0 {
		tps = float64(time.Second) / float64(avg)
	}

	return PerfStats{
		AvgTickDuration: avg,
		MinTickDuration: min,
		MaxTickDuration: max,
		PhaseAvg:        phaseAvg,
		PhasePct:        phasePct,
		TicksPerSecond:  tps,
	}
}

// LogStats logs the window's aggregated performance via gamelog,
// matching the teacher's logPerfStats call shape in game/logging.go.
func (s PerfStats) LogStats() {
	gamelog.Logf("perf avg_tick_us=%d min_tick_us=%d max_tick_us=%d ticks_per_sec=%.1f",
		s.AvgTickDuration.Microseconds(), s.MinTickDuration.Microseconds(), s.MaxTickDuration.Microseconds(), s.TicksPerSecond)
}
