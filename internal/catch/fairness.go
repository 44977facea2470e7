package catch

import (
	"math"

	"github.com/vovakirdan/foodcatch/internal/config"
)

// Target is the desired terminal velocity and gravity for an item.
type Target struct {
	Terminal float64
	Gravity  float64
}

// Primary describes the current primary target as seen by the controller.
type Primary struct {
	ID  int
	X   float64
	ETA float64
}

// Controller adjusts item fall parameters so every item stays reachable.
type Controller struct {
	cfg config.FairnessConfig
}

// NewController creates a fairness controller.
func NewController(cfg config.FairnessConfig) Controller {
	return Controller{cfg: cfg}
}

// Desired computes the target fall parameters for an item given its ETA.
// primary may be nil when no target is set.
//
// Two constraints can slow an item down: the agent must be able to reach it
// from where it stands now (self-reach), and a non-primary item must not land
// before the agent can finish the primary and travel over (queue). Each uses
// its own floor constants; the more restrictive result wins.
func (c Controller) Desired(it *Item, eta float64, agent *Agent, primary *Primary) Target {
	want := Target{Terminal: it.BaseTerminalVY, Gravity: it.BaseGravity}

	selfReach := agent.TravelTime(it.X) + c.cfg.SelfCatchMargin
	if eta < selfReach {
		want = c.restrict(want, it, eta, selfReach, c.cfg.SelfReach)
	}

	if primary != nil && primary.ID != it.ID {
		speed := math.Max(1, agent.Speed)
		guaranteed := math.Max(primary.ETA, agent.TravelTime(primary.X)+c.cfg.SelfCatchMargin)
		required := guaranteed +
			math.Abs(it.X-primary.X)/speed +
			c.cfg.Queue.SwitchBuffer +
			c.cfg.Queue.ExtraMargin
		if eta < required {
			want = c.restrict(want, it, eta, required, c.cfg.Queue.Floors)
		}
	}

	return want
}

// restrict lowers want toward the slowdown eta/required, never below floors.
func (c Controller) restrict(want Target, it *Item, eta, required float64, floors config.SlowdownFloors) Target {
	s := clampF(eta/math.Max(c.cfg.MinDenominator, required), c.cfg.MinSlowdown, 1)
	terminal := clampF(it.BaseTerminalVY*s, floors.TerminalMin, it.BaseTerminalVY)
	gravity := clampF(it.BaseGravity*s*s, floors.GravityMin, it.BaseGravity)
	return Target{
		Terminal: math.Min(want.Terminal, terminal),
		Gravity:  math.Min(want.Gravity, gravity),
	}
}

// Apply moves the item's current parameters toward want.
func (c Controller) Apply(it *Item, want Target, dt float64) {
	it.TerminalVY = Blend(it.TerminalVY, want.Terminal, dt, c.cfg.BlendRate)
	it.Gravity = Blend(it.Gravity, want.Gravity, dt, c.cfg.BlendRate)
}

// Blend is an exponential smoothing step from current toward target.
func Blend(current, target, dt, rate float64) float64 {
	k := math.Min(1, dt*rate)
	if k < 0 {
		k = 0
	}
	return current + (target-current)*k
}

// clampF clamps v to [lo, hi]. hi wins when lo > hi.
func clampF(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
