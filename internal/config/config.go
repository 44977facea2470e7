// Package config provides YAML-based tuning for the catch game and
// difficulty management.
package config

import (
	"errors"
	"fmt"
)

// CatchConfig contains every tunable of the falling-item engine.
// All distances are world units, all times are seconds.
type CatchConfig struct {
	Field       FieldConfig       `yaml:"field"`
	Agent       AgentConfig       `yaml:"agent"`
	Physics     PhysicsConfig     `yaml:"physics"`
	ETA         ETAConfig         `yaml:"eta"`
	Arbitration ArbitrationConfig `yaml:"arbitration"`
	Fairness    FairnessConfig    `yaml:"fairness"`
	Spawn       SpawnConfig       `yaml:"spawn"`
	Run         RunConfig         `yaml:"run"`
	Difficulty  DifficultyConfig  `yaml:"difficulty"`
}

// FieldConfig describes the playfield and the source region items drop from.
type FieldConfig struct {
	Width        float64      `yaml:"width"`
	Height       float64      `yaml:"height"`
	GroundInset  float64      `yaml:"ground_inset"` // Ground line sits this far above the bottom
	BounceMargin float64      `yaml:"bounce_margin"`
	Source       SourceConfig `yaml:"source"`
}

// SourceConfig is the rectangle at the top of the field that emits items.
type SourceConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// GroundY returns the y coordinate of the ground line.
func (f FieldConfig) GroundY() float64 {
	return f.Height - f.GroundInset
}

// AgentConfig defines the catcher's size, speed cap and catch zone.
type AgentConfig struct {
	Width           float64 `yaml:"width"`
	Height          float64 `yaml:"height"`
	Speed           float64 `yaml:"speed"`
	PointerHold     float64 `yaml:"pointer_hold"`      // Seconds a pointer target keeps steering
	CatchInset      float64 `yaml:"catch_inset"`       // Horizontal inset of the catch zone
	CatchTop        float64 `yaml:"catch_top"`         // Catch zone starts this far above the agent
	CatchHeight     float64 `yaml:"catch_height"`      // Catch zone height
	CatchLineOffset float64 `yaml:"catch_line_offset"` // ETA target line above the agent top
}

// PhysicsConfig holds integration parameters shared by all items.
type PhysicsConfig struct {
	MaxFrameDT      float64 `yaml:"max_frame_dt"`
	WobbleRate      float64 `yaml:"wobble_rate"`
	WobbleAmplitude float64 `yaml:"wobble_amplitude"`
}

// ETAConfig holds the estimator floors and clamp.
type ETAConfig struct {
	MinVY       float64 `yaml:"min_vy"`
	MinGravity  float64 `yaml:"min_gravity"`
	MinTerminal float64 `yaml:"min_terminal"`
	MaxETA      float64 `yaml:"max_eta"`
}

// ArbitrationConfig tunes primary target selection.
type ArbitrationConfig struct {
	StickyETA     float64 `yaml:"sticky_eta"`     // Keep a primary while its ETA is below this
	LookAhead     float64 `yaml:"look_ahead"`     // Ignore items further out than this
	MoveWeight    float64 `yaml:"move_weight"`    // Weight of move time in the score
	AlignedBonus  float64 `yaml:"aligned_bonus"`  // Score bonus for items already above the agent
	AlignedFactor float64 `yaml:"aligned_factor"` // Alignment window as a fraction of agent width
}

// FairnessConfig tunes the feedback controller. The self-reach and queue
// floors are kept as separate sets.
type FairnessConfig struct {
	SelfCatchMargin float64         `yaml:"self_catch_margin"`
	BlendRate       float64         `yaml:"blend_rate"`
	MinDenominator  float64         `yaml:"min_denominator"`
	MinSlowdown     float64         `yaml:"min_slowdown"`
	SelfReach       SlowdownFloors  `yaml:"self_reach"`
	Queue           QueueConstraint `yaml:"queue"`
}

// SlowdownFloors are the lowest terminal velocity and gravity a constraint
// may push an item down to.
type SlowdownFloors struct {
	TerminalMin float64 `yaml:"terminal_min"`
	GravityMin  float64 `yaml:"gravity_min"`
}

// QueueConstraint tunes the sequencing of non-primary items.
type QueueConstraint struct {
	SwitchBuffer float64        `yaml:"switch_buffer"`
	ExtraMargin  float64        `yaml:"extra_margin"`
	Floors       SlowdownFloors `yaml:"floors"`
}

// SpawnConfig tunes the spawn scheduler and initial item kinematics.
type SpawnConfig struct {
	MinLanes int `yaml:"min_lanes"`
	MaxLanes int `yaml:"max_lanes"`

	Interval IntervalConfig `yaml:"interval"`

	LaneInset    float64 `yaml:"lane_inset"`
	LaneJitter   float64 `yaml:"lane_jitter"`
	SpawnOffsetY float64 `yaml:"spawn_offset_y"`

	BaseSpeed      float64 `yaml:"base_speed"`
	SpeedPerLane   float64 `yaml:"speed_per_lane"`
	SpeedPerSecond float64 `yaml:"speed_per_second"`
	BaseBoost      float64 `yaml:"base_boost"`
	FairBoost      float64 `yaml:"fair_boost"`
	ReachMargin    float64 `yaml:"reach_margin"`
	MinFallDist    float64 `yaml:"min_fall_distance"`
	MinReachTime   float64 `yaml:"min_reach_time"`
	TerminalMin    float64 `yaml:"terminal_min"`
	TerminalMax    float64 `yaml:"terminal_max"`

	GravityFactor float64 `yaml:"gravity_factor"`
	GravityMin    float64 `yaml:"gravity_min"`
	GravityMax    float64 `yaml:"gravity_max"`

	InitialVYMin    float64 `yaml:"initial_vy_min"`
	InitialVYSpread float64 `yaml:"initial_vy_spread"`
	DelayMin        float64 `yaml:"delay_min"`
	DelaySpread     float64 `yaml:"delay_spread"`

	Primary DropConfig `yaml:"primary"`
	Extra   ExtraDrop  `yaml:"extra"`

	Categories []CategoryConfig `yaml:"categories"`
}

// IntervalConfig shapes the spawn interval: base - lanes*per_lane, clamped.
type IntervalConfig struct {
	Base    float64 `yaml:"base"`
	PerLane float64 `yaml:"per_lane"`
	Min     float64 `yaml:"min"`
	Max     float64 `yaml:"max"`
}

// DropConfig holds the per-drop randomness.
type DropConfig struct {
	Drift    float64 `yaml:"drift"`    // Max horizontal drift speed
	Variance float64 `yaml:"variance"` // Max random addition to base fall speed
}

// ExtraDrop configures the occasional second item of a spawn.
type ExtraDrop struct {
	DropConfig `yaml:",inline"`

	Spread     float64 `yaml:"spread"`      // Max x offset from the lane
	EdgeInset  float64 `yaml:"edge_inset"`  // Keep inside the source region by this much
	FromLanes  int     `yaml:"from_lanes"`  // Chance starts growing above this lane count
	ChanceStep float64 `yaml:"chance_step"` // Chance added per lane above FromLanes
	ChanceMax  float64 `yaml:"chance_max"`
}

// CategoryConfig describes one item type.
type CategoryConfig struct {
	ID     string  `yaml:"id"`
	Name   string  `yaml:"name"`
	Value  int     `yaml:"value"`
	Radius float64 `yaml:"radius"`
	Weight float64 `yaml:"weight"` // Relative spawn weight
	Glyph  string  `yaml:"glyph"`
	Color  string  `yaml:"color"`
}

// RunConfig holds run-level rules.
type RunConfig struct {
	MaxMisses int `yaml:"max_misses"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string  `yaml:"type"`   // "time", "score", or "none"
	MaxAt float64 `yaml:"max_at"` // Seconds (or points) at which max difficulty is reached
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI string into a preset. Unknown values yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// Validate rejects configurations the engine cannot run with.
func (c CatchConfig) Validate() error {
	var errs []error
	if c.Field.Width <= 0 || c.Field.Height <= 0 {
		errs = append(errs, fmt.Errorf("field size must be positive, got %vx%v", c.Field.Width, c.Field.Height))
	}
	if c.Field.GroundY() <= c.Field.Source.Y+c.Field.Source.H {
		errs = append(errs, errors.New("ground line must be below the source region"))
	}
	if c.Agent.Width <= 0 || c.Agent.Speed <= 0 {
		errs = append(errs, errors.New("agent width and speed must be positive"))
	}
	if c.Run.MaxMisses <= 0 {
		errs = append(errs, fmt.Errorf("run.max_misses must be positive, got %d", c.Run.MaxMisses))
	}
	if c.Spawn.MinLanes < 1 || c.Spawn.MaxLanes < c.Spawn.MinLanes {
		errs = append(errs, fmt.Errorf("spawn lanes must satisfy 1 <= min <= max, got %d..%d", c.Spawn.MinLanes, c.Spawn.MaxLanes))
	}
	if c.Spawn.TerminalMin <= 0 || c.Spawn.TerminalMax < c.Spawn.TerminalMin {
		errs = append(errs, errors.New("spawn terminal range is invalid"))
	}
	if len(c.Spawn.Categories) == 0 {
		errs = append(errs, errors.New("spawn.categories must not be empty"))
	}
	var total float64
	for _, cat := range c.Spawn.Categories {
		if cat.Value <= 0 || cat.Radius <= 0 {
			errs = append(errs, fmt.Errorf("category %q needs a positive value and radius", cat.ID))
		}
		total += cat.Weight
	}
	if len(c.Spawn.Categories) > 0 && total <= 0 {
		errs = append(errs, errors.New("category weights must sum to a positive number"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: invalid catch config: %w", err)
	}
	return nil
}
