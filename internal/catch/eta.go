package catch

import (
	"math"

	"github.com/vovakirdan/foodcatch/internal/config"
)

// EstimateETA returns the seconds until the item reaches catchY, including
// any remaining pre-fall delay. The result is finite and within [0, MaxETA].
//
// The fall is modelled as acceleration from VY toward TerminalVY under
// Gravity followed by constant speed at TerminalVY.
func EstimateETA(it *Item, catchY float64, lim config.ETAConfig) float64 {
	dy := catchY - it.Y
	if dy <= 0 {
		return 0
	}

	delay := math.Max(0, it.Delay)
	vy := math.Max(lim.MinVY, it.VY)
	g := math.Max(lim.MinGravity, it.Gravity)
	vt := math.Max(vy, it.TerminalVY)

	tToTerminal := (vt - vy) / g
	dToTerminal := vy*tToTerminal + 0.5*g*tToTerminal*tToTerminal

	var fall float64
	if dy <= dToTerminal {
		disc := vy*vy + 2*g*dy
		fall = (-vy + math.Sqrt(math.Max(0, disc))) / g
	} else {
		fall = tToTerminal + (dy-dToTerminal)/math.Max(lim.MinTerminal, vt)
	}

	eta := delay + fall
	if math.IsNaN(eta) {
		return lim.MaxETA
	}
	return math.Max(0, math.Min(lim.MaxETA, eta))
}
