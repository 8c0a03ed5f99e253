package components

import "github.com/mlange-42/ark/ecs"

// ActionKind is the closed set of intents an agent can pursue. Action is
// modeled as a tagged sum type — a single struct carrying every field any
// kind might need, rather than one component type per action. Fields
// irrelevant to a given Kind are zero.
type ActionKind uint8

const (
	ActionGraze ActionKind = iota
	ActionDrinkWater
	ActionWander
	ActionHarvest
	ActionRest
	ActionHunt
	ActionScavenge
	ActionFollow
	ActionMate
)

// String names an ActionKind the way the failure-memory key format names
// it, used both for that key and for log messages.
func (k ActionKind) String() string {
	switch k {
	case ActionGraze:
		return "Graze"
	case ActionDrinkWater:
		return "DrinkWater"
	case ActionWander:
		return "Wander"
	case ActionHarvest:
		return "Harvest"
	case ActionRest:
		return "Rest"
	case ActionHunt:
		return "Hunt"
	case ActionScavenge:
		return "Scavenge"
	case ActionFollow:
		return "Follow"
	case ActionMate:
		return "Mate"
	default:
		return "Unknown"
	}
}

// TileTargeted reports whether this action kind is keyed by a target tile
// (as opposed to a target entity) for both pathfinding and failure memory.
func (k ActionKind) TileTargeted() bool {
	switch k {
	case ActionGraze, ActionDrinkWater, ActionWander, ActionHarvest:
		return true
	default:
		return false
	}
}

// ActionState is one of the five lifecycle states shared by every action
// kind. Only the on-site effect varies per kind.
type ActionState uint8

const (
	ActionQueued ActionState = iota
	ActionNeedPath
	ActionWaitingForPath
	ActionMoving
	ActionPerforming
)

// Action is the agent's single active intent. An agent with no Action
// component is idle.
type Action struct {
	Kind ActionKind
	State ActionState

	TargetTile   TilePosition
	TargetEntity ecs.Entity
	HasEntity    bool

	DurationTicks int32
	ElapsedTicks  int32

	Retries int
}

// Key returns the failure-memory key for this action's current target:
// "Graze:(x,y)", "Hunt:<entity-bits>", "Rest" (no target), etc.
func (a Action) Key() string {
	if a.Kind == ActionRest {
		return "Rest"
	}
	if a.Kind.TileTargeted() {
		return formatTileKey(a.Kind.String(), a.TargetTile)
	}
	return formatEntityKey(a.Kind.String(), a.TargetEntity)
}
