package catch

import (
	"math"

	"github.com/vovakirdan/foodcatch/internal/config"
)

const eps = 1e-9

func approx(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func chicken() Category {
	return Category{ID: "chicken", Name: "Chicken", Value: 12, Radius: 13, Weight: 17, Glyph: 'c'}
}

// fallingItem returns an item already past its delay with baselines equal to
// its current parameters.
func fallingItem(x, y, vy, terminal, gravity float64) Item {
	return Item{
		Category:       chicken(),
		X:              x,
		Y:              y,
		VY:             vy,
		TerminalVY:     terminal,
		BaseTerminalVY: terminal,
		Gravity:        gravity,
		BaseGravity:    gravity,
		Radius:         13,
	}
}

func quietEngine(opts ...Option) *Engine {
	return NewEngine(config.DefaultCatchConfig(), append([]Option{WithoutSpawner()}, opts...)...)
}

type reportCall struct {
	player string
	score  int
}

type fakeReporter struct {
	calls []reportCall
}

func (f *fakeReporter) ReportScore(player string, score int) {
	f.calls = append(f.calls, reportCall{player: player, score: score})
}
