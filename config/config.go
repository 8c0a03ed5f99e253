// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds the tunables for the simulation core that systems/ reads
// at construction. Some thresholds (the critical-needs interrupt level,
// the fear speed-boost cap passed by the action system, the species
// feeding reduction) are still constants in code, not fields here.
type Config struct {
	Tick         TickConfig         `yaml:"tick"`
	Spatial      SpatialConfig      `yaml:"spatial"`
	Pathfinding  PathfindingConfig  `yaml:"pathfinding"`
	Vegetation   VegetationConfig   `yaml:"vegetation"`
	Replan       ReplanConfig       `yaml:"replan"`
	Planner      PlannerConfig      `yaml:"planner"`
	Groups       GroupsConfig       `yaml:"groups"`
	Fear         FearConfig         `yaml:"fear"`
	Telemetry    TelemetryConfig    `yaml:"telemetry"`

	// Derived holds values computed after loading.
	Derived DerivedConfig `yaml:"-"`
}

// TickConfig holds tick-clock parameters.
type TickConfig struct {
	RateHz          float64 `yaml:"rate_hz"`
	MaxTicksPerFrame int    `yaml:"max_ticks_per_frame"`
}

// SpatialConfig holds the entity/vegetation spatial index parameters.
type SpatialConfig struct {
	ChunkSize        int `yaml:"chunk_size"`
	MaxQueryResults  int `yaml:"max_query_results"`
}

// PathfindingConfig holds the async pathfinding queue parameters.
type PathfindingConfig struct {
	RequestsPerTick int `yaml:"requests_per_tick"`
	MaxRetries      int `yaml:"max_retries"`
	MaxPathAgeTicks int32 `yaml:"max_path_age_ticks"`
	MaxIterations   int `yaml:"max_iterations"`
}

// VegetationConfig holds the vegetation resource grid parameters.
type VegetationConfig struct {
	GrowthInterval      int     `yaml:"growth_interval_ticks"`
	RegrowBaseDelay      int     `yaml:"regrow_base_delay_ticks"`
	RegrowDelayPerUnit   float64 `yaml:"regrow_delay_per_unit"`
	MaxMealFraction      float64 `yaml:"max_meal_fraction"`
	ForageMinBiomass     float64 `yaml:"forage_min_biomass"`
	GivingUpRatio        float64 `yaml:"giving_up_ratio"`
	GivingUpCooldownTicks int    `yaml:"giving_up_cooldown_ticks"`
	PressureIncrement    float64 `yaml:"pressure_increment"`
	PressureDecayRate    float64 `yaml:"pressure_decay_rate"`
	RandomSampleCells    int     `yaml:"random_sample_cells"`
	EventBudgetPerTick   int     `yaml:"event_budget_per_tick"`
	NoiseFrequency       float64 `yaml:"noise_frequency"`
	NoiseAmplitude       float64 `yaml:"noise_amplitude"`
}

// ReplanConfig holds the replan queue drain budget.
type ReplanConfig struct {
	DrainBudget int `yaml:"drain_budget"`
}

// PlannerConfig holds the utility planner's emergency/cooldown thresholds.
type PlannerConfig struct {
	UtilityThreshold          float64 `yaml:"utility_threshold"`
	EmergencyHungerThreshold  float64 `yaml:"emergency_hunger_threshold"`
	EmergencyThirstThreshold  float64 `yaml:"emergency_thirst_threshold"`
	EmergencyEnergyThreshold  float64 `yaml:"emergency_energy_threshold"`
	EmergencySurvivalPriority int     `yaml:"emergency_survival_priority"`
	FailureCooldownTicks      uint64  `yaml:"failure_cooldown_ticks"`
	FailureCooldownMultiplier float64 `yaml:"failure_cooldown_multiplier"`
	MaxFailuresPerEntity      int     `yaml:"max_failures_per_entity"`
}

// GroupsConfig holds default group-formation parameters, overridable
// per agent via GroupFormationConfig.
type GroupsConfig struct {
	CheckIntervalTicks int     `yaml:"check_interval_ticks"`
	FormationRadius    float64 `yaml:"formation_radius"`
	CohesionRadius     float64 `yaml:"cohesion_radius"`
	MinGroupSize       int     `yaml:"min_group_size"`
	MaxGroupSize       int     `yaml:"max_group_size"`
}

// FearConfig holds the fear/hunting parameters.
type FearConfig struct {
	Radius          float64 `yaml:"radius"`
	HalfLifeTicks   float64 `yaml:"half_life_ticks"`
	FeedingReduction float64 `yaml:"feeding_reduction"`
	MaxSpeedBoost   float64 `yaml:"max_speed_boost"`
	HighThreshold   float64 `yaml:"high_threshold"`
}

// TelemetryConfig holds observation-API aggregation parameters.
type TelemetryConfig struct {
	CSVExportEnabled bool   `yaml:"csv_export_enabled"`
	CSVPath          string `yaml:"csv_path"`
	SampleWindowTicks int   `yaml:"sample_window_ticks"`
}

// DerivedConfig holds values computed after loading.
type DerivedConfig struct {
	TickPeriod float64 // seconds per tick, 1/RateHz
}

var global *Config

// Init loads configuration from the given path, or uses embedded defaults if
// path is empty. Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error. Only ever called from main at
// startup, before the tick loop begins — fatal conditions are only
// possible pre-loop.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()
	return cfg, nil
}

func (c *Config) computeDerived() {
	if c.Tick.RateHz <= 0 {
		c.Tick.RateHz = 10
	}
	c.Derived.TickPeriod = 1.0 / c.Tick.RateHz
}
