package catch

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/foodcatch/internal/config"
)

// Spawner emits new items from lanes across the source region.
type Spawner struct {
	cfg   config.SpawnConfig
	field config.FieldConfig
	cats  []Category
	total float64
	rng   *rand.Rand
}

// NewSpawner creates a spawner drawing randomness from rng.
func NewSpawner(cfg config.CatchConfig, rng *rand.Rand) *Spawner {
	cats := CategoriesFromConfig(cfg.Spawn.Categories)
	var total float64
	for _, c := range cats {
		total += math.Max(0, c.Weight)
	}
	return &Spawner{
		cfg:   cfg.Spawn,
		field: cfg.Field,
		cats:  cats,
		total: total,
		rng:   rng,
	}
}

// Categories returns the spawnable categories.
func (s *Spawner) Categories() []Category {
	return s.cats
}

// Interval returns the seconds until the next spawn for the given lane count.
func (s *Spawner) Interval(lanes int) float64 {
	iv := s.cfg.Interval
	return clampF(iv.Base-float64(lanes)*iv.PerLane, iv.Min, iv.Max)
}

// ExtraChance returns the probability that a spawn emits a second item.
func (s *Spawner) ExtraChance(lanes int) float64 {
	ex := s.cfg.Extra
	return clampF(float64(lanes-ex.FromLanes)*ex.ChanceStep, 0, ex.ChanceMax)
}

// LaneX returns the x of a lane slot before jitter.
func (s *Spawner) LaneX(slot, lanes int) float64 {
	src := s.field.Source
	span := src.W - 2*s.cfg.LaneInset
	return src.X + s.cfg.LaneInset + float64(slot)/float64(max(1, lanes-1))*span
}

// SpawnY returns the y items start at, just below the source region.
func (s *Spawner) SpawnY() float64 {
	return s.field.Source.Y + s.field.Source.H + s.cfg.SpawnOffsetY
}

// PickCategory draws a category by weight.
func (s *Spawner) PickCategory() Category {
	roll := s.rng.Float64() * s.total
	for _, c := range s.cats {
		w := math.Max(0, c.Weight)
		if roll < w {
			return c
		}
		roll -= w
	}
	return s.cats[len(s.cats)-1]
}

// Spawn emits one item from a random lane and sometimes a second one nearby.
// Returned items have no id yet.
func (s *Spawner) Spawn(lanes int, elapsed float64, agent *Agent, catchY float64) []Item {
	slot := s.rng.Intn(max(1, lanes))
	lane := s.LaneX(slot, lanes)
	y := s.SpawnY()

	cat := s.PickCategory()
	x := lane + (s.rng.Float64()*2-1)*s.cfg.LaneJitter
	out := []Item{s.Drop(x, y, cat, s.cfg.Primary, lanes, elapsed, agent, catchY)}

	if s.rng.Float64() < s.ExtraChance(lanes) {
		ex := s.cfg.Extra
		cat2 := s.PickCategory()
		src := s.field.Source
		x2 := clampF(lane+(s.rng.Float64()*2-1)*ex.Spread, src.X+ex.EdgeInset, src.X+src.W-ex.EdgeInset)
		out = append(out, s.Drop(x2, y, cat2, ex.DropConfig, lanes, elapsed, agent, catchY))
	}
	return out
}

// Drop builds an item at (x, y) with initial kinematics. The terminal
// velocity is capped so that the agent can reach x from where it stands.
func (s *Spawner) Drop(x, y float64, cat Category, drop config.DropConfig, lanes int, elapsed float64, agent *Agent, catchY float64) Item {
	reach := agent.TravelTime(x) + s.cfg.ReachMargin
	verticalDist := math.Max(s.cfg.MinFallDist, catchY-y)

	fallBase := s.cfg.BaseSpeed + float64(lanes)*s.cfg.SpeedPerLane + elapsed*s.cfg.SpeedPerSecond
	baseVY := fallBase + s.rng.Float64()*drop.Variance
	fairVY := verticalDist / math.Max(s.cfg.MinReachTime, reach)
	terminal := clampF(math.Min(baseVY*s.cfg.BaseBoost, fairVY*s.cfg.FairBoost), s.cfg.TerminalMin, s.cfg.TerminalMax)
	gravity := clampF(terminal*s.cfg.GravityFactor, s.cfg.GravityMin, s.cfg.GravityMax)

	return Item{
		Category:       cat,
		X:              x,
		Y:              y,
		VY:             terminal * (s.cfg.InitialVYMin + s.rng.Float64()*s.cfg.InitialVYSpread),
		VX:             (s.rng.Float64()*2 - 1) * drop.Drift,
		Gravity:        gravity,
		TerminalVY:     terminal,
		BaseGravity:    gravity,
		BaseTerminalVY: terminal,
		Radius:         cat.Radius,
		Wobble:         s.rng.Float64() * 2 * math.Pi,
		Delay:          s.cfg.DelayMin + s.rng.Float64()*s.cfg.DelaySpread,
	}
}
