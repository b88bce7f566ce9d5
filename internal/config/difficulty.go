package config

import (
	"fmt"
	"time"

	"github.com/vovakirdan/math-arcade/internal/drill"
)

// Range growth used by the growing preset when the config sets none.
var (
	blitzGrowth  = drill.Ramp{Enabled: true, MaxAt: 300, Growth: 10}
	streakGrowth = drill.Ramp{Enabled: true, MaxAt: 200, Growth: 20}
)

// ParsePreset parses a --difficulty value. An empty string means no preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed, DifficultyGrowing:
		return p, nil
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard, fixed or growing)", s)
}

// IsFixedPreset returns true if the preset disables range growth.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyPreset modifies the config based on a difficulty preset.
// Only growing moves numbers past the configured ranges; the curated
// Math Lab round is the same at every difficulty.
func ApplyPreset(cfg *DrillConfig, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		cfg.Blitz.Difficulty.Enabled = false
		cfg.Streak.Difficulty.Enabled = false
	case DifficultyGrowing:
		enableGrowth(&cfg.Blitz.Difficulty, blitzGrowth)
		enableGrowth(&cfg.Streak.Difficulty, streakGrowth)
	}

	// Adjust timers based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Blitz.GameSeconds = 45
		cfg.Blitz.LockoutDelay = 500 * time.Millisecond
		cfg.Streak.QuestionSeconds = 15
	case DifficultyHard:
		cfg.Blitz.GameSeconds = 20
		cfg.Blitz.LockoutDelay = 1200 * time.Millisecond
		cfg.Streak.QuestionSeconds = 6
	}
}

// enableGrowth turns r on, keeping a growth the user configured.
func enableGrowth(r *drill.Ramp, def drill.Ramp) {
	if r.Growth <= 0 {
		r.Growth = def.Growth
	}
	if r.MaxAt <= 0 {
		r.MaxAt = def.MaxAt
	}
	r.Enabled = true
}
