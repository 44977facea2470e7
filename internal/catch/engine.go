package catch

import (
	"math/rand"

	"github.com/vovakirdan/foodcatch/internal/config"
)

// Phase is the run phase.
type Phase int

const (
	PhasePlaying Phase = iota
	PhaseGameOver
)

func (p Phase) String() string {
	if p == PhaseGameOver {
		return "game-over"
	}
	return "playing"
}

// RunState is the state of the current run.
// PrimaryID is a weak reference: 0 means unset, and an id that no longer
// names a live item is treated the same way.
type RunState struct {
	Score     int
	Misses    int
	MaxMisses int
	Elapsed   float64
	PrimaryID int
	Phase     Phase
	Recorded  bool // Final score already handed to the reporter
}

// ScoreReporter receives the final score of a finished run.
// Implementations must not block the caller.
type ScoreReporter interface {
	ReportScore(player string, score int)
}

// Catch describes one item caught during a step.
type Catch struct {
	ItemID   int
	Category Category
	X, Y     float64
}

// Events summarizes what happened during a step.
type Events struct {
	Caught      []Catch
	Missed      int
	GameOverNow bool // Set only on the step the run ended
}

// Option configures an Engine.
type Option func(*Engine)

// WithSeed sets the RNG seed used for spawning.
func WithSeed(seed int64) Option {
	return func(e *Engine) { e.seed = seed }
}

// WithReporter sets the collaborator notified once per finished run.
func WithReporter(r ScoreReporter) Option {
	return func(e *Engine) { e.reporter = r }
}

// WithPlayer sets the player name passed to the reporter.
func WithPlayer(name string) Option {
	return func(e *Engine) { e.player = name }
}

// WithoutSpawner disables automatic spawning. Items can still be added
// with Place.
func WithoutSpawner() Option {
	return func(e *Engine) { e.spawning = false }
}

// Engine owns the item arena and run state and advances them one step at a
// time. It is not safe for concurrent use.
type Engine struct {
	cfg        config.CatchConfig
	seed       int64
	rng        *rand.Rand
	spawner    *Spawner
	arbiter    Arbiter
	fairness   Controller
	difficulty *config.DifficultyManager
	reporter   ScoreReporter
	player     string
	spawning   bool

	agent      Agent
	items      []Item
	nextID     int
	spawnTimer float64
	run        RunState
}

// NewEngine creates an engine ready to play.
func NewEngine(cfg config.CatchConfig, opts ...Option) *Engine {
	e := &Engine{
		cfg:      cfg,
		spawning: true,
	}
	for _, opt := range opts {
		opt(e)
	}

	e.rng = rand.New(rand.NewSource(e.seed)) //#nosec G404 -- gameplay randomness
	e.spawner = NewSpawner(cfg, e.rng)
	e.arbiter = NewArbiter(cfg)
	e.fairness = NewController(cfg.Fairness)
	e.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	e.items = make([]Item, 0, 32)
	e.Restart()
	return e
}

// Restart resets the run. Item ids keep counting so they are never reused.
func (e *Engine) Restart() {
	e.items = e.items[:0]
	e.agent = newAgent(e.cfg)
	e.spawnTimer = 0
	e.run = RunState{
		MaxMisses: e.cfg.Run.MaxMisses,
		Phase:     PhasePlaying,
	}
}

// SetPlayer changes the name reported at the end of the run.
func (e *Engine) SetPlayer(name string) {
	e.player = name
}

// Player returns the current player name.
func (e *Engine) Player() string {
	return e.player
}

// Config returns the engine's configuration.
func (e *Engine) Config() config.CatchConfig {
	return e.cfg
}

// Categories returns the spawnable item categories.
func (e *Engine) Categories() []Category {
	return e.spawner.Categories()
}

// Run returns a copy of the run state.
func (e *Engine) Run() RunState {
	return e.run
}

// CatchY returns the line ETAs are measured to.
func (e *Engine) CatchY() float64 {
	return e.agent.Y - e.cfg.Agent.CatchLineOffset
}

// Lanes returns the number of active spawn lanes.
func (e *Engine) Lanes() int {
	return e.difficulty.Lanes(e.cfg.Spawn.MinLanes, e.cfg.Spawn.MaxLanes, e.run.Score, e.run.Elapsed)
}

// Place adds an item to the arena, assigns it a fresh id and returns the id.
func (e *Engine) Place(it Item) int {
	e.nextID++
	it.ID = e.nextID
	it.removed = false
	e.items = append(e.items, it)
	return it.ID
}

// Step advances the simulation by dt seconds.
//
// Order: agent, spawn, arbitration, then per item feedback, kinematics and
// collision in one pass. Removed items are compacted out at the end.
func (e *Engine) Step(dt float64, in Input) Events {
	var ev Events
	if e.run.Phase == PhaseGameOver {
		e.finish()
		return ev
	}

	dt = clampF(dt, 0, e.cfg.Physics.MaxFrameDT)
	e.run.Elapsed += dt

	e.agent.Move(dt, in, e.cfg.Field.Width, e.cfg.Agent.PointerHold)
	e.spawn(dt)

	catchY := e.CatchY()
	var primary *Primary
	if id, ok := e.arbiter.Choose(e.items, &e.agent, catchY, e.run.PrimaryID); ok {
		p := e.find(id)
		primary = &Primary{ID: id, X: p.X, ETA: EstimateETA(p, catchY, e.cfg.ETA)}
		e.run.PrimaryID = id
	} else {
		e.run.PrimaryID = 0
	}

	zone := e.agent.CatchZone(e.cfg.Agent)
	groundY := e.cfg.Field.GroundY()
	amp := e.cfg.Physics.WobbleAmplitude

	for i := range e.items {
		it := &e.items[i]
		if it.removed {
			continue
		}
		if it.Delayed() {
			it.Delay -= dt
			continue
		}

		eta := EstimateETA(it, catchY, e.cfg.ETA)
		e.fairness.Apply(it, e.fairness.Desired(it, eta, &e.agent, primary), dt)
		it.Integrate(dt, e.cfg.Physics, e.cfg.Field)

		switch Resolve(it.Box(amp), zone, groundY) {
		case OutcomeCaught:
			e.run.Score += it.Category.Value
			ev.Caught = append(ev.Caught, Catch{ItemID: it.ID, Category: it.Category, X: it.VisualX(amp), Y: it.Y})
			e.remove(it)
		case OutcomeMissed:
			if e.run.Misses < e.run.MaxMisses {
				e.run.Misses++
			}
			ev.Missed++
			e.remove(it)
		}
	}
	e.compact()

	if e.run.Misses >= e.run.MaxMisses {
		e.run.Phase = PhaseGameOver
		ev.GameOverNow = true
		e.finish()
	}
	return ev
}

func (e *Engine) spawn(dt float64) {
	if !e.spawning {
		return
	}
	e.spawnTimer -= dt
	if e.spawnTimer > 0 {
		return
	}

	lanes := e.Lanes()
	for _, it := range e.spawner.Spawn(lanes, e.run.Elapsed, &e.agent, e.CatchY()) {
		e.Place(it)
	}
	e.spawnTimer = e.spawner.Interval(lanes)
}

// find returns the live item with id, or nil.
func (e *Engine) find(id int) *Item {
	for i := range e.items {
		if e.items[i].ID == id && !e.items[i].removed {
			return &e.items[i]
		}
	}
	return nil
}

// remove tombstones an item and clears it as primary.
func (e *Engine) remove(it *Item) {
	it.removed = true
	if e.run.PrimaryID == it.ID {
		e.run.PrimaryID = 0
	}
}

// compact drops tombstoned items in place.
func (e *Engine) compact() {
	live := e.items[:0]
	for _, it := range e.items {
		if !it.removed {
			live = append(live, it)
		}
	}
	e.items = live
}

// finish reports the final score once per run.
func (e *Engine) finish() {
	if e.run.Recorded {
		return
	}
	e.run.Recorded = true
	if e.reporter != nil {
		e.reporter.ReportScore(e.player, e.run.Score)
	}
}
