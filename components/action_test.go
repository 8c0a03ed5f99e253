package components

import (
	"fmt"
	"strings"
	"testing"
)

func TestActionKindTileTargeted(t *testing.T) {
	tileTargeted := map[ActionKind]bool{
		ActionGraze:      true,
		ActionDrinkWater: true,
		ActionWander:     true,
		ActionHarvest:    true,
		ActionRest:       false,
		ActionHunt:       false,
		ActionScavenge:   false,
		ActionFollow:     false,
		ActionMate:       false,
	}
	for kind, want := range tileTargeted {
		if got := kind.TileTargeted(); got != want {
			t.Errorf("%v.TileTargeted() = %v, want %v", kind, got, want)
		}
	}
}

func TestActionKeyRest(t *testing.T) {
	a := Action{Kind: ActionRest, TargetTile: TilePosition{X: 7, Y: 9}}
	if got := a.Key(); got != "Rest" {
		t.Errorf("Key() = %q, want %q", got, "Rest")
	}
}

func TestActionKeyTileTargeted(t *testing.T) {
	a := Action{Kind: ActionGraze, TargetTile: TilePosition{X: 3, Y: -4}}
	want := fmt.Sprintf("Graze:(%d,%d)", 3, -4)
	if got := a.Key(); got != want {
		t.Errorf("Key() = %q, want %q", got, want)
	}
}

func TestActionKeyEntityTargeted(t *testing.T) {
	a := Action{Kind: ActionHunt}
	got := a.Key()
	if !strings.HasPrefix(got, "Hunt:") {
		t.Errorf("Key() = %q, want prefix %q", got, "Hunt:")
	}
}

func TestActionKindString(t *testing.T) {
	if got := ActionMate.String(); got != "Mate" {
		t.Errorf("String() = %q, want %q", got, "Mate")
	}
}
