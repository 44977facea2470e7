package catch

import "github.com/vovakirdan/foodcatch/internal/core"

// Outcome is the result of resolving one item after it moved.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeCaught
	OutcomeMissed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCaught:
		return "caught"
	case OutcomeMissed:
		return "missed"
	default:
		return "none"
	}
}

// Resolve checks an item against the catch zone and the ground line.
// A catch takes precedence over a miss on the same tick.
func Resolve(itemBox, catchZone core.Box, groundY float64) Outcome {
	if catchZone.Overlaps(itemBox) {
		return OutcomeCaught
	}
	if itemBox.Y+itemBox.H >= groundY {
		return OutcomeMissed
	}
	return OutcomeNone
}
