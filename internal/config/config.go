// Package config provides YAML-based rules loading and difficulty presets
// for the drill games.
package config

import (
	"fmt"
	"time"

	"github.com/vovakirdan/math-arcade/internal/drill"
	"github.com/vovakirdan/math-arcade/internal/session"
)

// DrillConfig contains the rules of every drill variant.
type DrillConfig struct {
	MaxAdded int          `yaml:"max_added"` // upper clamp for added counters
	Praise   []string     `yaml:"praise"`    // spoken after correct answers
	MathLab  PoolConfig   `yaml:"mathlab"`
	Blitz    ArcadeConfig `yaml:"blitz"`
	Streak   ArcadeConfig `yaml:"streak"`
}

// PoolConfig defines the curated ten-question round.
type PoolConfig struct {
	Points      int               `yaml:"points"`
	Pattern     []drill.Operation `yaml:"pattern"`
	Addition    []drill.Fact      `yaml:"addition"`
	Subtraction []drill.Fact      `yaml:"subtraction"`
	Choices     PoolChoices       `yaml:"choices"`
}

// PoolChoices defines how pool distractors are sampled.
type PoolChoices struct {
	Min         int `yaml:"min"`
	Max         int `yaml:"max"`
	Distractors int `yaml:"distractors"`
}

// ArcadeConfig defines a timed or streak variant.
type ArcadeConfig struct {
	Points          int           `yaml:"points"`
	GameSeconds     int           `yaml:"game_seconds,omitempty"`     // blitz
	QuestionSeconds int           `yaml:"question_seconds,omitempty"` // streak
	AdvanceDelay    time.Duration `yaml:"advance_delay"`
	LockoutDelay    time.Duration `yaml:"lockout_delay,omitempty"`

	Ops         []drill.Operation `yaml:"ops"`
	Addend      drill.Range       `yaml:"addend"`
	Minuend     drill.Range       `yaml:"minuend"`
	Factor      drill.Range       `yaml:"factor"`
	Distractors ArcadeChoices     `yaml:"distractors"`
	Difficulty  drill.Ramp        `yaml:"difficulty"`
}

// ArcadeChoices defines the offset-based distractor search.
type ArcadeChoices struct {
	Count       int `yaml:"count"`
	MaxOffset   int `yaml:"max_offset"`
	MaxAttempts int `yaml:"max_attempts"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"

	// DifficultyGrowing widens the operand ranges past the configured
	// ones as the score climbs.
	DifficultyGrowing DifficultyPreset = "growing"
)

// Rules converts the variant for mode into session rules.
func (c DrillConfig) Rules(mode session.Mode) session.Rules {
	r := session.Rules{
		Mode:     mode,
		MaxAdded: c.MaxAdded,
		Praise:   append([]string(nil), c.Praise...),
	}

	switch mode {
	case session.ModePool:
		r.Points = c.MathLab.Points
		r.Pool = drill.PoolGenerator{
			Addition:    append([]drill.Fact(nil), c.MathLab.Addition...),
			Subtraction: append([]drill.Fact(nil), c.MathLab.Subtraction...),
			Pattern:     append([]drill.Operation(nil), c.MathLab.Pattern...),
			ChoiceMin:   c.MathLab.Choices.Min,
			ChoiceMax:   c.MathLab.Choices.Max,
			Distractors: c.MathLab.Choices.Distractors,
		}
	case session.ModeTimed:
		c.Blitz.apply(&r)
	case session.ModeStreak:
		c.Streak.apply(&r)
	}
	return r
}

func (a ArcadeConfig) apply(r *session.Rules) {
	r.Points = a.Points
	r.GameSeconds = a.GameSeconds
	r.QuestionSeconds = a.QuestionSeconds
	r.AdvanceDelay = a.AdvanceDelay
	r.LockoutDelay = a.LockoutDelay
	r.Range = drill.RangeGenerator{
		Ops:         append([]drill.Operation(nil), a.Ops...),
		Addend:      a.Addend,
		Minuend:     a.Minuend,
		Factor:      a.Factor,
		Distractors: a.Distractors.Count,
		MaxOffset:   a.Distractors.MaxOffset,
		MaxAttempts: a.Distractors.MaxAttempts,
	}
	r.Ramp = a.Difficulty
}

// Validate checks that every variant builds playable rules.
func (c DrillConfig) Validate() error {
	for _, v := range []struct {
		name string
		mode session.Mode
	}{
		{"mathlab", session.ModePool},
		{"blitz", session.ModeTimed},
		{"streak", session.ModeStreak},
	} {
		if err := c.Rules(v.mode).Validate(); err != nil {
			return fmt.Errorf("config: %s: %w", v.name, err)
		}
	}
	return nil
}
