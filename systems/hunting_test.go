package systems

import (
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/jeanfbrito/ecosim-core/components"
)

func TestHuntingEstablishInstallsBothHalves(t *testing.T) {
	w := ecs.NewWorld()
	h := NewHuntingRelationships(&w)
	mapper := ecs.NewMap1[components.Agent](&w)
	predator := mapper.NewEntity(&components.Agent{Class: components.ClassPredator})
	prey := mapper.NewEntity(&components.Agent{Class: components.ClassHerbivore})

	h.Establish(predator, prey, 10)

	hunterMap := ecs.NewMap1[components.ActiveHunter](&w)
	targetMap := ecs.NewMap1[components.HuntingTarget](&w)
	hunter := hunterMap.Get(predator)
	target := targetMap.Get(prey)
	if hunter == nil || hunter.Target != prey {
		t.Fatalf("ActiveHunter = %+v, want Target=%v", hunter, prey)
	}
	if target == nil || target.Predator != predator {
		t.Fatalf("HuntingTarget = %+v, want Predator=%v", target, predator)
	}
}

func TestHuntingClearRemovesBothHalves(t *testing.T) {
	w := ecs.NewWorld()
	h := NewHuntingRelationships(&w)
	mapper := ecs.NewMap1[components.Agent](&w)
	predator := mapper.NewEntity(&components.Agent{Class: components.ClassPredator})
	prey := mapper.NewEntity(&components.Agent{Class: components.ClassHerbivore})

	h.Establish(predator, prey, 10)
	h.Clear(predator, prey)

	hunterMap := ecs.NewMap1[components.ActiveHunter](&w)
	targetMap := ecs.NewMap1[components.HuntingTarget](&w)
	if hunterMap.Get(predator) != nil {
		t.Error("ActiveHunter still present after Clear")
	}
	if targetMap.Get(prey) != nil {
		t.Error("HuntingTarget still present after Clear")
	}
}

func TestHuntingClearForEntityFromPreySide(t *testing.T) {
	w := ecs.NewWorld()
	h := NewHuntingRelationships(&w)
	mapper := ecs.NewMap1[components.Agent](&w)
	predator := mapper.NewEntity(&components.Agent{Class: components.ClassPredator})
	prey := mapper.NewEntity(&components.Agent{Class: components.ClassHerbivore})

	h.Establish(predator, prey, 1)
	h.ClearForEntity(&w, prey)

	hunterMap := ecs.NewMap1[components.ActiveHunter](&w)
	targetMap := ecs.NewMap1[components.HuntingTarget](&w)
	if hunterMap.Get(predator) != nil || targetMap.Get(prey) != nil {
		t.Error("ClearForEntity(prey) did not clear both halves")
	}
}

func TestHuntingReconcileRemovesHalfPointingAtDeadEntity(t *testing.T) {
	w := ecs.NewWorld()
	h := NewHuntingRelationships(&w)
	mapper := ecs.NewMap1[components.Agent](&w)
	predator := mapper.NewEntity(&components.Agent{Class: components.ClassPredator})
	prey := mapper.NewEntity(&components.Agent{Class: components.ClassHerbivore})

	h.Establish(predator, prey, 1)
	w.RemoveEntity(prey)

	h.Reconcile(&w)

	hunterMap := ecs.NewMap1[components.ActiveHunter](&w)
	if hunterMap.Get(predator) != nil {
		t.Error("Reconcile() left an ActiveHunter pointing at a dead prey entity")
	}
}
