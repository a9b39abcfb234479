package pilot

// Decide runs the controller for one tick and returns the action to emit.
// It mutates the heading counter, the fire cooldown and the mode.
func Decide(s *ShipState, steerLimit float64) Action {
	heading := s.Heading()

	s.Mode = SelectMode(s.Threat.Distance, s.Radius)
	if s.Mode == ModeEvade {
		return evade(s, NormalizeHeading(heading), steerLimit)
	}
	return engage(s, heading)
}

// evade turns the ship away from the threat until the counter reaches the
// partial-turn limit on that side, then thrusts.
func evade(s *ShipState, heading, limit float64) Action {
	dx := s.Threat.Point.X - s.Location.X

	if dx < 0 {
		// Threat on the left: push right.
		if s.Counter == limit {
			return ActionThrust
		}
		if heading < 180 {
			return s.turn(ActionTurnRight)
		}
		return s.turn(ActionTurnLeft)
	}

	if s.Counter == -limit {
		return ActionThrust
	}
	if heading < 180 {
		return s.turn(ActionTurnLeft)
	}
	return s.turn(ActionTurnRight)
}

// engage fires when the cooldown allows and otherwise steers toward the
// threat. Once aimed it fires regardless of the cooldown.
func engage(s *ShipState, heading float64) Action {
	if s.Fire.Tick() {
		return ActionFire
	}
	if !s.Threat.Seen {
		return ActionIdle
	}

	bearing := Bearing(s.Location, s.Threat.Point)
	if s.Counter == CounterFromHeading(bearing) {
		return ActionFire
	}
	if heading-bearing > 0 {
		return s.turn(ActionTurnRight)
	}
	return s.turn(ActionTurnLeft)
}
