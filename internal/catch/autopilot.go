package catch

import (
	"math"

	"github.com/vovakirdan/foodcatch/internal/config"
)

// Autopilot steers the agent toward the primary target, or toward the
// soonest item when no primary is set.
type Autopilot struct {
	eta config.ETAConfig
}

// NewAutopilot creates an autopilot.
func NewAutopilot(cfg config.CatchConfig) Autopilot {
	return Autopilot{eta: cfg.ETA}
}

// Steer returns the input for the next step.
func (a Autopilot) Steer(s Snapshot) Input {
	if p, ok := s.Primary(); ok {
		return Input{TargetX: p.X, HasTarget: true}
	}

	var best *Item
	bestETA := math.Inf(1)
	for i := range s.Items {
		it := &s.Items[i]
		if eta := EstimateETA(it, s.CatchY, a.eta); eta < bestETA {
			bestETA = eta
			best = it
		}
	}
	if best == nil {
		return Input{}
	}
	return Input{TargetX: best.X, HasTarget: true}
}
