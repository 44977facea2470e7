package config

import (
	_ "embed"
)

//go:embed defaults/catch.yaml
var defaultCatchYAML []byte

// DefaultCatchConfig returns the default catch game configuration.
func DefaultCatchConfig() CatchConfig {
	return CatchConfig{
		Field: FieldConfig{
			Width:        960,
			Height:       540,
			GroundInset:  58,
			BounceMargin: 8,
			Source:       SourceConfig{X: 180, Y: 20, W: 600, H: 120},
		},
		Agent: AgentConfig{
			Width:           76,
			Height:          38,
			Speed:           460,
			PointerHold:     0.55,
			CatchInset:      4,
			CatchTop:        18,
			CatchHeight:     28,
			CatchLineOffset: 6,
		},
		Physics: PhysicsConfig{
			MaxFrameDT:      0.033,
			WobbleRate:      4,
			WobbleAmplitude: 2,
		},
		ETA: ETAConfig{
			MinVY:       35,
			MinGravity:  1,
			MinTerminal: 1,
			MaxETA:      9,
		},
		Arbitration: ArbitrationConfig{
			StickyETA:     4.2,
			LookAhead:     5.4,
			MoveWeight:    1.45,
			AlignedBonus:  0.24,
			AlignedFactor: 0.95,
		},
		Fairness: FairnessConfig{
			SelfCatchMargin: 0.34,
			BlendRate:       9,
			MinDenominator:  0.05,
			MinSlowdown:     0.03,
			SelfReach:       SlowdownFloors{TerminalMin: 20, GravityMin: 2.5},
			Queue: QueueConstraint{
				SwitchBuffer: 0.42,
				ExtraMargin:  0.28,
				Floors:       SlowdownFloors{TerminalMin: 26, GravityMin: 4},
			},
		},
		Spawn: SpawnConfig{
			MinLanes: 5,
			MaxLanes: 18,
			Interval: IntervalConfig{Base: 1.02, PerLane: 0.04, Min: 0.24, Max: 1.25},

			LaneInset:    28,
			LaneJitter:   9,
			SpawnOffsetY: 8,

			BaseSpeed:      95,
			SpeedPerLane:   8,
			SpeedPerSecond: 1,
			BaseBoost:      1.2,
			FairBoost:      1.08,
			ReachMargin:    0.3,
			MinFallDist:    120,
			MinReachTime:   0.4,
			TerminalMin:    95,
			TerminalMax:    260,

			GravityFactor: 0.42,
			GravityMin:    28,
			GravityMax:    92,

			InitialVYMin:    0.55,
			InitialVYSpread: 0.08,
			DelayMin:        0.2,
			DelaySpread:     0.22,

			Primary: DropConfig{Drift: 20, Variance: 45},
			Extra: ExtraDrop{
				DropConfig: DropConfig{Drift: 28, Variance: 55},
				Spread:     50,
				EdgeInset:  20,
				FromLanes:  8,
				ChanceStep: 0.06,
				ChanceMax:  0.5,
			},

			Categories: DefaultCategories(),
		},
		Run: RunConfig{MaxMisses: 3},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "time",
				MaxAt: 143, // One extra lane every 11 seconds
			},
		},
	}
}

// DefaultCategories returns the stock item catalogue.
func DefaultCategories() []CategoryConfig {
	return []CategoryConfig{
		{ID: "poue", Name: "Poue", Value: 24, Radius: 12, Weight: 3.5, Glyph: "*", Color: "magenta"},
		{ID: "chicken", Name: "Chicken", Value: 12, Radius: 13, Weight: 17, Glyph: "c", Color: "yellow"},
		{ID: "pork", Name: "Pork", Value: 10, Radius: 12, Weight: 13.5, Glyph: "p", Color: "pink"},
		{ID: "beef", Name: "Beef", Value: 14, Radius: 13, Weight: 14, Glyph: "b", Color: "red"},
		{ID: "bread", Name: "Bread", Value: 6, Radius: 12, Weight: 21, Glyph: "o", Color: "brown"},
		{ID: "hazelnuts", Name: "Hazelnuts", Value: 8, Radius: 10, Weight: 15, Glyph: "n", Color: "orange"},
		{ID: "veggies", Name: "Veggies", Value: 5, Radius: 11, Weight: 16, Glyph: "v", Color: "green"},
	}
}

// DefaultYAML returns the embedded default catch.yaml.
func DefaultYAML() []byte {
	return defaultCatchYAML
}
