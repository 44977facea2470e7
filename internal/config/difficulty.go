package config

import "math"

// DifficultyManager maps run progress to a difficulty level and lane count.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) based on score or
// elapsed seconds.
func (d *DifficultyManager) Level(score int, elapsed float64) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := d.cfg.Progression.MaxAt
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "score":
		progress = float64(score) / maxAt
	case "time":
		progress = elapsed / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// Lanes returns the number of active spawn lanes in [minLanes, maxLanes].
// Lanes grow in whole steps as the level rises.
func (d *DifficultyManager) Lanes(minLanes, maxLanes, score int, elapsed float64) int {
	if maxLanes <= minLanes {
		return minLanes
	}
	level := d.Level(score, elapsed)
	span := float64(maxLanes - minLanes)
	// Small epsilon so exact step boundaries are not lost to rounding.
	lanes := minLanes + int(math.Floor(level*span+1e-9))
	if lanes > maxLanes {
		lanes = maxLanes
	}
	return lanes
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
