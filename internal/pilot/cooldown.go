package pilot

// DefaultFireCooldown is the number of ticks held between shots.
const DefaultFireCooldown = 4

// FireController gates how often the pilot may fire.
type FireController struct {
	Threshold int
	count     int
}

// NewFireController returns a controller that authorizes one shot every
// threshold+1 calls to Tick.
func NewFireController(threshold int) FireController {
	return FireController{Threshold: threshold}
}

// Tick advances the cooldown and reports whether the pilot may fire now.
func (f *FireController) Tick() bool {
	f.count++
	if f.count > f.Threshold {
		f.count = 0
		return true
	}
	return false
}

// Count returns the ticks accumulated since the last authorized shot.
func (f *FireController) Count() int {
	return f.count
}
