package config

import "testing"

func TestDifficultyLanesMatchElevenSecondSteps(t *testing.T) {
	d := NewDifficultyManager(DefaultCatchConfig().Difficulty)

	tests := []struct {
		elapsed float64
		want    int
	}{
		{0, 5},
		{10.9, 5},
		{11, 6},
		{22, 7},
		{54.9, 9},
		{110, 15},
		{143, 18},
		{1000, 18},
	}

	for _, tt := range tests {
		if got := d.Lanes(5, 18, 0, tt.elapsed); got != tt.want {
			t.Errorf("Lanes(elapsed=%v) = %d, expected %d", tt.elapsed, got, tt.want)
		}
	}
}

func TestDifficultyFixedKeepsInitialLevel(t *testing.T) {
	cfg := DefaultCatchConfig()
	ApplyCatchPreset(&cfg, DifficultyFixed)
	d := NewDifficultyManager(cfg.Difficulty)

	if d.IsEnabled() {
		t.Error("IsEnabled() = true, expected false")
	}
	if got := d.Lanes(5, 18, 0, 500); got != 5 {
		t.Errorf("Lanes() = %d, expected 5", got)
	}
}

func TestDifficultyLevelInterpolates(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.5,
		Progression:  ProgressionConfig{Type: "score", MaxAt: 100},
	})

	tests := []struct {
		score int
		want  float64
	}{
		{0, 0.5},
		{50, 0.75},
		{100, 1.0},
		{400, 1.0},
	}

	for _, tt := range tests {
		if got := d.Level(tt.score, 0); got != tt.want {
			t.Errorf("Level(score=%d) = %v, expected %v", tt.score, got, tt.want)
		}
	}
}

func TestDifficultyZeroMaxAt(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "time", MaxAt: 0},
	})
	if got := d.Level(0, 0.5); got != 0.5 {
		t.Errorf("Level() = %v, expected 0.5", got)
	}
}

func TestDifficultyInitialLevelClamps(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 3,
		Progression:  ProgressionConfig{Type: "none"},
	})
	if d.IsEnabled() {
		t.Error("IsEnabled() with type none = true, expected false")
	}
	if got := d.Level(0, 0); got != 1 {
		t.Errorf("Level() = %v, expected 1", got)
	}
}
