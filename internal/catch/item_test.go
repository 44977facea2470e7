package catch

import (
	"math"
	"testing"

	"github.com/vovakirdan/foodcatch/internal/config"
)

func TestItemIntegrateBounce(t *testing.T) {
	field := config.FieldConfig{Width: 400, Height: 600, BounceMargin: 20}
	phys := config.PhysicsConfig{WobbleRate: 4}

	tests := []struct {
		name   string
		x, vx  float64
		wantX  float64
		wantVX float64
	}{
		{"left edge flips", 21, -50, 16, 50},
		{"right edge flips", 379, 50, 384, -50},
		{"inward at left keeps", 10, 30, 13, 30},
		{"inward at right keeps", 390, -30, 387, -30},
		{"middle keeps", 200, 50, 205, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := fallingItem(tt.x, 100, 0, 1000, 0)
			it.VX = tt.vx
			it.Integrate(0.1, phys, field)

			if !approx(it.X, tt.wantX, eps) {
				t.Errorf("X = %v, expected %v", it.X, tt.wantX)
			}
			if it.VX != tt.wantVX {
				t.Errorf("VX = %v, expected %v", it.VX, tt.wantVX)
			}
		})
	}
}

func TestItemIntegrateCapsAtTerminal(t *testing.T) {
	field := config.FieldConfig{Width: 400, Height: 600, BounceMargin: 20}
	phys := config.PhysicsConfig{WobbleRate: 4}

	// Fairness lowered the terminal velocity below the current speed.
	it := fallingItem(200, 100, 300, 100, 500)
	it.Integrate(0.1, phys, field)

	if !approx(it.Y, 130, eps) {
		t.Errorf("Y = %v, expected 130", it.Y)
	}
	if it.VY != 100 {
		t.Errorf("VY = %v, expected the lowered terminal 100", it.VY)
	}
	if !approx(it.Wobble, 0.4, eps) {
		t.Errorf("Wobble = %v, expected 0.4", it.Wobble)
	}

	// Below terminal the item accelerates.
	it = fallingItem(200, 100, 0, 100, 500)
	it.Integrate(0.1, phys, field)
	if !approx(it.VY, 50, eps) {
		t.Errorf("VY = %v, expected 50", it.VY)
	}
}

func TestItemVisualX(t *testing.T) {
	tests := []struct {
		phase float64
		want  float64
	}{
		{0, 100},
		{math.Pi / 2, 102},
		{math.Pi, 100},
		{3 * math.Pi / 2, 98},
	}

	for _, tt := range tests {
		it := fallingItem(100, 0, 0, 100, 0)
		it.Wobble = tt.phase
		if got := it.VisualX(2); !approx(got, tt.want, 1e-6) {
			t.Errorf("VisualX(2) at phase %v = %v, expected %v", tt.phase, got, tt.want)
		}
		box := it.Box(2)
		if !approx(box.X, tt.want-it.Radius, 1e-6) {
			t.Errorf("Box(2).X at phase %v = %v, expected %v", tt.phase, box.X, tt.want-it.Radius)
		}
	}
}
