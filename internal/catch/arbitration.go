package catch

import (
	"math"

	"github.com/vovakirdan/foodcatch/internal/config"
)

// Arbiter picks the primary target: the one item the fairness controller
// treats the agent as converging on.
type Arbiter struct {
	cfg    config.ArbitrationConfig
	eta    config.ETAConfig
	margin float64 // Self-catch margin added to travel time
}

// NewArbiter creates an arbiter from the catch config.
func NewArbiter(cfg config.CatchConfig) Arbiter {
	return Arbiter{
		cfg:    cfg.Arbitration,
		eta:    cfg.ETA,
		margin: cfg.Fairness.SelfCatchMargin,
	}
}

// Choose returns the primary target id. A live primary whose ETA is still
// below the sticky threshold is kept; otherwise the lowest-scoring feasible
// item within the look-ahead wins. ok is false when nothing is feasible.
// A primaryID that no longer names a live item is treated as unset.
func (a Arbiter) Choose(items []Item, agent *Agent, catchY float64, primaryID int) (id int, ok bool) {
	if primaryID != 0 {
		for i := range items {
			it := &items[i]
			if it.removed || it.ID != primaryID {
				continue
			}
			if EstimateETA(it, catchY, a.eta) < a.cfg.StickyETA {
				return it.ID, true
			}
			break
		}
	}

	center := agent.Center()
	best := 0
	bestScore := math.Inf(1)

	for i := range items {
		it := &items[i]
		if it.removed {
			continue
		}

		eta := EstimateETA(it, catchY, a.eta)
		if eta > a.cfg.LookAhead {
			continue
		}

		dx := math.Abs(it.X - center)
		moveTime := agent.TravelTime(it.X)
		if eta < moveTime+a.margin {
			continue
		}

		score := eta + moveTime*a.cfg.MoveWeight
		if dx < agent.W*a.cfg.AlignedFactor {
			score -= a.cfg.AlignedBonus
		}
		if score < bestScore {
			bestScore = score
			best = it.ID
		}
	}

	return best, best != 0
}
