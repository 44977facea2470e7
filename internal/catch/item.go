// Package catch implements the fair-catch falling-item engine: items fall
// from a source region and the fairness controller keeps every live item
// reachable by an agent with a bounded horizontal speed.
package catch

import (
	"math"
	"unicode/utf8"

	"github.com/vovakirdan/foodcatch/internal/config"
	"github.com/vovakirdan/foodcatch/internal/core"
)

// Category is an item type with its point value and look.
type Category struct {
	ID     string
	Name   string
	Value  int
	Radius float64
	Weight float64
	Glyph  rune
	Color  core.Color
}

// CategoriesFromConfig converts the configured catalogue.
func CategoriesFromConfig(cfgs []config.CategoryConfig) []Category {
	cats := make([]Category, 0, len(cfgs))
	for _, c := range cfgs {
		glyph := '*'
		if r, _ := utf8.DecodeRuneInString(c.Glyph); r != utf8.RuneError {
			glyph = r
		}
		cats = append(cats, Category{
			ID:     c.ID,
			Name:   c.Name,
			Value:  c.Value,
			Radius: c.Radius,
			Weight: c.Weight,
			Glyph:  glyph,
			Color:  core.ParseColor(c.Color),
		})
	}
	return cats
}

// Item is a single falling object.
//
// X is the idealized horizontal position used for reachability; the drawn
// and collided position adds a cosmetic wobble (see VisualX). TerminalVY and
// Gravity never exceed BaseTerminalVY and BaseGravity, which are fixed at
// spawn.
type Item struct {
	ID       int
	Category Category

	X, Y   float64
	VX, VY float64

	Gravity        float64
	TerminalVY     float64
	BaseGravity    float64
	BaseTerminalVY float64

	Delay  float64 // Seconds before the item starts moving
	Radius float64
	Wobble float64 // Wobble phase in radians

	removed bool
}

// Delayed reports whether the item is still waiting to start its fall.
func (it *Item) Delayed() bool {
	return it.Delay > 0
}

// VisualX returns the drawn and collided x including wobble.
func (it *Item) VisualX(amplitude float64) float64 {
	return it.X + amplitude*math.Sin(it.Wobble)
}

// Box returns the item's collision box.
func (it *Item) Box(amplitude float64) core.Box {
	return core.BoxAround(it.VisualX(amplitude), it.Y, it.Radius)
}

// Integrate advances the item by dt seconds under bounded acceleration and
// bounces its drift off the field edges.
func (it *Item) Integrate(dt float64, phys config.PhysicsConfig, field config.FieldConfig) {
	it.Wobble += phys.WobbleRate * dt
	it.X += it.VX * dt
	it.Y += it.VY * dt
	it.VY = math.Min(it.TerminalVY, it.VY+it.Gravity*dt)

	margin := field.BounceMargin
	if (it.X < margin && it.VX < 0) || (it.X > field.Width-margin && it.VX > 0) {
		it.VX = -it.VX
	}
}
