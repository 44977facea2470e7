package catch

import (
	"math"

	"github.com/vovakirdan/foodcatch/internal/config"
	"github.com/vovakirdan/foodcatch/internal/core"
)

// Input is the per-tick steering command.
// Dir is -1, 0 or 1. When HasTarget is set, TargetX is an absolute x the
// agent's center should move toward; the target keeps steering for the
// configured pointer hold time.
type Input struct {
	Dir       int
	TargetX   float64
	HasTarget bool
}

// Agent is the horizontally moving catcher.
type Agent struct {
	X, Y   float64 // Top-left corner
	W, H   float64
	Speed  float64
	Facing int

	pointerX     float64
	pointerTimer float64
}

func newAgent(cfg config.CatchConfig) Agent {
	return Agent{
		X:      cfg.Field.Width*0.5 - cfg.Agent.Width*0.5,
		Y:      cfg.Field.GroundY() - cfg.Agent.Height,
		W:      cfg.Agent.Width,
		H:      cfg.Agent.Height,
		Speed:  cfg.Agent.Speed,
		Facing: 1,
	}
}

// Center returns the agent's horizontal center.
func (a *Agent) Center() float64 {
	return a.X + a.W*0.5
}

// CatchZone returns the rectangle just above the agent that catches items.
func (a *Agent) CatchZone(cfg config.AgentConfig) core.Box {
	return core.Box{
		X: a.X + cfg.CatchInset,
		Y: a.Y - cfg.CatchTop,
		W: a.W - 2*cfg.CatchInset,
		H: cfg.CatchHeight,
	}
}

// TravelTime returns the seconds the agent needs to reach x from its center.
func (a *Agent) TravelTime(x float64) float64 {
	return math.Abs(x-a.Center()) / math.Max(1, a.Speed)
}

// Move applies one tick of steering, capped by speed and clamped to the field.
func (a *Agent) Move(dt float64, in Input, fieldW, hold float64) {
	if in.HasTarget {
		a.pointerX = in.TargetX
		a.pointerTimer = hold
	}

	dir := core.Clamp(in.Dir, -1, 1)
	if a.pointerTimer > 0 {
		target := core.ClampF(a.pointerX-a.W*0.5, 0, fieldW-a.W)
		dx := target - a.X
		if math.Abs(dx) > 2 {
			if dx < 0 {
				dir = -1
			} else {
				dir = 1
			}
			a.X += core.ClampF(dx, -a.Speed*dt, a.Speed*dt)
		}
		a.pointerTimer -= dt
	} else {
		a.X += float64(dir) * a.Speed * dt
	}

	a.X = core.ClampF(a.X, 0, fieldW-a.W)
	if dir != 0 {
		a.Facing = dir
	}
}
