package config

import "testing"

func TestLoadEmbeddedDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}
	if cfg.Tick.RateHz <= 0 {
		t.Fatalf("Tick.RateHz = %v, want > 0 from embedded defaults", cfg.Tick.RateHz)
	}
	if cfg.Spatial.ChunkSize <= 0 {
		t.Errorf("Spatial.ChunkSize = %v, want > 0 from embedded defaults", cfg.Spatial.ChunkSize)
	}
	if cfg.Pathfinding.RequestsPerTick <= 0 {
		t.Errorf("Pathfinding.RequestsPerTick = %v, want > 0 from embedded defaults", cfg.Pathfinding.RequestsPerTick)
	}
}

func TestComputeDerivedTickPeriod(t *testing.T) {
	cfg := &Config{Tick: TickConfig{RateHz: 20}}
	cfg.computeDerived()
	want := 0.05
	if cfg.Derived.TickPeriod != want {
		t.Errorf("TickPeriod = %v, want %v", cfg.Derived.TickPeriod, want)
	}
}

func TestComputeDerivedDefaultsZeroRateHz(t *testing.T) {
	cfg := &Config{}
	cfg.computeDerived()
	if cfg.Tick.RateHz != 10 {
		t.Errorf("RateHz = %v, want defaulted to 10", cfg.Tick.RateHz)
	}
	if cfg.Derived.TickPeriod != 0.1 {
		t.Errorf("TickPeriod = %v, want 0.1", cfg.Derived.TickPeriod)
	}
}

func TestLoadMissingFileErrors(t *testing.T) {
	if _, err := Load("/nonexistent/path/does-not-exist.yaml"); err == nil {
		t.Error("Load() with a missing file returned nil error, want non-nil")
	}
}

func TestMustInitAndCfg(t *testing.T) {
	MustInit("")
	if Cfg() == nil {
		t.Error("Cfg() = nil after MustInit")
	}
}
