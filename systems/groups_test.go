package systems

import (
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/jeanfbrito/ecosim-core/components"
	"github.com/jeanfbrito/ecosim-core/species"
)

func newRegistryWithHerd() *species.Registry {
	r := species.NewRegistry()
	r.Register(species.Definition{
		ID:    "herd-test",
		Class: components.ClassHerbivore,
		Group: components.GroupFormationConfig{
			GroupType:          components.GroupHerd,
			MinGroupSize:       5,
			MaxGroupSize:       8,
			FormationRadius:    10,
			CohesionRadius:     10,
			CheckIntervalTicks: 1,
			Enabled:            true,
		},
	})
	return r
}

func spawnHerdCandidate(w *ecs.World, mapper *ecs.Map2[components.Agent, components.TilePosition], id uint32, tile components.TilePosition) ecs.Entity {
	return mapper.NewEntity(&components.Agent{ID: id, Species: "herd-test", Class: components.ClassHerbivore}, &tile)
}

// TestGroupsFormsAtExactlyMinimumSize verifies a cluster of exactly
// MinGroupSize agents elects a leader, matching the herd-forms-at-five
// boundary case.
func TestGroupsFormsAtExactlyMinimumSize(t *testing.T) {
	w := ecs.NewWorld()
	registry := newRegistryWithHerd()
	spatial := NewSpatialIndex(16, 128)
	g := NewGroupsSystem(&w, registry, spatial)

	mapper := ecs.NewMap2[components.Agent, components.TilePosition](&w)
	for i := uint32(0); i < 5; i++ {
		spawnHerdCandidate(&w, mapper, i, components.TilePosition{X: int32(i), Y: 0})
	}

	g.FormGroups(1)

	leaderFilter := ecs.NewFilter1[components.PackLeader](&w)
	q := leaderFilter.Query()
	count := 0
	for q.Next() {
		count++
		leader := q.Get()
		if len(leader.Members) != 4 {
			t.Errorf("len(Members) = %d, want 4 (5 total minus the leader)", len(leader.Members))
		}
	}
	if count != 1 {
		t.Fatalf("number of PackLeaders formed = %d, want exactly 1", count)
	}
}

// TestGroupsDoesNotFormBelowMinimumSize verifies one agent short of
// MinGroupSize never elects a leader.
func TestGroupsDoesNotFormBelowMinimumSize(t *testing.T) {
	w := ecs.NewWorld()
	registry := newRegistryWithHerd()
	spatial := NewSpatialIndex(16, 128)
	g := NewGroupsSystem(&w, registry, spatial)

	mapper := ecs.NewMap2[components.Agent, components.TilePosition](&w)
	for i := uint32(0); i < 4; i++ {
		spawnHerdCandidate(&w, mapper, i, components.TilePosition{X: int32(i), Y: 0})
	}

	g.FormGroups(1)

	leaderFilter := ecs.NewFilter1[components.PackLeader](&w)
	q := leaderFilter.Query()
	count := 0
	for q.Next() {
		count++
	}
	if count != 0 {
		t.Errorf("number of PackLeaders formed = %d, want 0 below MinGroupSize", count)
	}
}

// TestGroupsCohesionDropsDistantMembersAndDissolvesSmallGroups verifies a
// member straying beyond CohesionRadius is dropped, and that the whole
// group dissolves once membership falls below MinGroupSize-1.
func TestGroupsCohesionDropsDistantMembersAndDissolvesSmallGroups(t *testing.T) {
	w := ecs.NewWorld()
	registry := newRegistryWithHerd()
	spatial := NewSpatialIndex(16, 128)
	g := NewGroupsSystem(&w, registry, spatial)

	mapper := ecs.NewMap2[components.Agent, components.TilePosition](&w)
	var entities []ecs.Entity
	for i := uint32(0); i < 5; i++ {
		entities = append(entities, spawnHerdCandidate(&w, mapper, i, components.TilePosition{X: int32(i), Y: 0}))
	}
	g.FormGroups(1)

	tileMap := ecs.NewMap1[components.TilePosition](&w)
	// Drag every non-leader member far away so the group collapses below
	// threshold (leave only the leader behind).
	leaderFilter := ecs.NewFilter1[components.PackLeader](&w)
	q := leaderFilter.Query()
	var leader ecs.Entity
	for q.Next() {
		leader = q.Entity()
	}
	for _, e := range entities {
		if e == leader {
			continue
		}
		*tileMap.Get(e) = components.TilePosition{X: 1000, Y: 1000}
	}

	g.Cohesion()

	leaderMap := ecs.NewMap1[components.PackLeader](&w)
	if leaderMap.Get(leader) != nil {
		t.Error("PackLeader survived cohesion after every member scattered, want dissolved")
	}
}
