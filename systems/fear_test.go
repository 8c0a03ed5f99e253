package systems

import (
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/jeanfbrito/ecosim-core/components"
	"github.com/jeanfbrito/ecosim-core/config"
)

func TestFearSystemRaisesLevelNearPredators(t *testing.T) {
	w := ecs.NewWorld()
	spatial := NewSpatialIndex(16, 128)
	cfg := config.FearConfig{Radius: 20, HalfLifeTicks: 30}
	f := NewFearSystem(&w, spatial, cfg)

	mapper := ecs.NewMap2[components.Agent, components.TilePosition](&w)
	prey := mapper.NewEntity(&components.Agent{Class: components.ClassHerbivore}, &components.TilePosition{X: 0, Y: 0})
	predator := mapper.NewEntity(&components.Agent{Class: components.ClassPredator}, &components.TilePosition{X: 1, Y: 0})
	spatial.Insert(prey, components.TilePosition{X: 0, Y: 0}, components.ClassHerbivore)
	spatial.Insert(predator, components.TilePosition{X: 1, Y: 0}, components.ClassPredator)

	f.Update()

	fearMap := ecs.NewMap1[components.FearState](&w)
	fear := fearMap.Get(prey)
	if fear == nil {
		t.Fatal("expected FearState to be installed on the prey agent")
	}
	if fear.Level <= 0 {
		t.Errorf("Level = %v, want > 0 with a predator nearby", fear.Level)
	}
	if fear.NearbyPredators != 1 {
		t.Errorf("NearbyPredators = %d, want 1", fear.NearbyPredators)
	}
}

func TestFearSystemDecaysWithoutPredators(t *testing.T) {
	w := ecs.NewWorld()
	spatial := NewSpatialIndex(16, 128)
	cfg := config.FearConfig{Radius: 20, HalfLifeTicks: 1}
	f := NewFearSystem(&w, spatial, cfg)

	mapper := ecs.NewMap2[components.Agent, components.TilePosition](&w)
	prey := mapper.NewEntity(&components.Agent{Class: components.ClassHerbivore}, &components.TilePosition{X: 0, Y: 0})
	spatial.Insert(prey, components.TilePosition{X: 0, Y: 0}, components.ClassHerbivore)

	fearMap := ecs.NewMap1[components.FearState](&w)
	fearMap.Add(prey, &components.FearState{Level: 1.0})

	f.Update()
	fear := fearMap.Get(prey)
	if fear.Level >= 1.0 {
		t.Errorf("Level = %v after decay tick with no predators, want < 1.0", fear.Level)
	}
}

func TestFearSystemNeverFlagsPredatorsAsAfraid(t *testing.T) {
	w := ecs.NewWorld()
	spatial := NewSpatialIndex(16, 128)
	f := NewFearSystem(&w, spatial, config.FearConfig{Radius: 20, HalfLifeTicks: 30})

	mapper := ecs.NewMap2[components.Agent, components.TilePosition](&w)
	predator := mapper.NewEntity(&components.Agent{Class: components.ClassPredator}, &components.TilePosition{X: 0, Y: 0})
	spatial.Insert(predator, components.TilePosition{X: 0, Y: 0}, components.ClassPredator)

	f.Update()

	fearMap := ecs.NewMap1[components.FearState](&w)
	if fearMap.Get(predator) != nil {
		t.Error("FearState installed on a predator, want predators never tracked")
	}
}

func TestSpeedBoostCapsAtMax(t *testing.T) {
	fear := components.FearState{Level: 1.0}
	if got := SpeedBoost(fear, 1.5); got != 1.5 {
		t.Errorf("SpeedBoost(level=1.0, max=1.5) = %v, want 1.5", got)
	}
	fear.Level = 0
	if got := SpeedBoost(fear, 1.5); got != 1.0 {
		t.Errorf("SpeedBoost(level=0, max=1.5) = %v, want 1.0 (no boost)", got)
	}
}

func TestFeedingDurationReductionCapsAtMax(t *testing.T) {
	fear := components.FearState{Level: 2.0} // clamp exercise, even though Level is normally <=1
	if got := FeedingDurationReduction(fear, 0.3); got != 0.3 {
		t.Errorf("FeedingDurationReduction() = %v, want capped at 0.3", got)
	}
}

func TestBiomassToleranceShift(t *testing.T) {
	fear := components.FearState{Level: 0.4}
	if got := BiomassToleranceShift(fear); got != 0.2 {
		t.Errorf("BiomassToleranceShift() = %v, want 0.2", got)
	}
}
