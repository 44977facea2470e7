package catch

import "math"

// Snapshot is a read-only copy of the engine state for rendering and tests.
type Snapshot struct {
	Run     RunState
	Agent   Agent
	Items   []Item
	Lanes   int
	CatchY  float64
	GroundY float64
}

// Snapshot returns the current engine state.
func (e *Engine) Snapshot() Snapshot {
	items := make([]Item, 0, len(e.items))
	for _, it := range e.items {
		if !it.removed {
			items = append(items, it)
		}
	}
	return Snapshot{
		Run:     e.run,
		Agent:   e.agent,
		Items:   items,
		Lanes:   e.Lanes(),
		CatchY:  e.CatchY(),
		GroundY: e.cfg.Field.GroundY(),
	}
}

// Primary returns the primary target item, if it is live.
func (s *Snapshot) Primary() (Item, bool) {
	if s.Run.PrimaryID == 0 {
		return Item{}, false
	}
	for _, it := range s.Items {
		if it.ID == s.Run.PrimaryID {
			return it, true
		}
	}
	return Item{}, false
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (s *Snapshot) Hash() uint64 {
	h := uint64(s.Run.Score)                          //#nosec G115 -- hash computation
	h = h*31 + uint64(s.Run.Misses)                   //#nosec G115 -- hash computation
	h = h*31 + uint64(s.Run.PrimaryID)                //#nosec G115 -- hash computation
	h = h*31 + uint64(s.Run.Phase)                    //#nosec G115 -- hash computation
	h = h*31 + math.Float64bits(s.Run.Elapsed)
	h = h*31 + math.Float64bits(s.Agent.X)
	h = h*31 + uint64(len(s.Items))

	for _, it := range s.Items {
		h = h*31 + uint64(it.ID) //#nosec G115 -- hash computation
		h = h*31 + math.Float64bits(it.X)
		h = h*31 + math.Float64bits(it.Y)
		h = h*31 + math.Float64bits(it.VY)
		h = h*31 + math.Float64bits(it.TerminalVY)
		h = h*31 + math.Float64bits(it.Gravity)
	}
	return h
}
