// Package pilot implements the reactive controller that flies the ship:
// it tracks the nearest threat, estimates the ship's heading from a turn
// counter and picks one action per tick in either evade or engage mode.
package pilot

// Action is the single output of the pilot each tick. The integer values are
// the codes the game environment expects.
type Action int

const (
	ActionIdle      Action = 0
	ActionFire      Action = 1
	ActionThrust    Action = 2
	ActionTurnRight Action = 3
	ActionTurnLeft  Action = 4
)

// NumActions is the size of the action set.
const NumActions = 5

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionIdle:
		return "Idle"
	case ActionFire:
		return "Fire"
	case ActionThrust:
		return "Thrust"
	case ActionTurnRight:
		return "TurnRight"
	case ActionTurnLeft:
		return "TurnLeft"
	default:
		return "Unknown"
	}
}

// Valid reports whether a is one of the five known actions.
func (a Action) Valid() bool {
	return a >= ActionIdle && a <= ActionTurnLeft
}

// Mode is the controller state.
type Mode int

const (
	ModeEngage Mode = iota
	ModeEvade
)

// String returns a human-readable name for the mode.
func (m Mode) String() string {
	switch m {
	case ModeEngage:
		return "ENGAGE"
	case ModeEvade:
		return "EVADE"
	default:
		return "UNKNOWN"
	}
}

// SelectMode picks the controller mode for this tick. A threat at exactly
// the radius already counts as too close.
func SelectMode(threatDistance, radius float64) Mode {
	if threatDistance <= radius {
		return ModeEvade
	}
	return ModeEngage
}
