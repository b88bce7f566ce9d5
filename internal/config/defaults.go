package config

import (
	_ "embed"
	"time"

	"github.com/vovakirdan/math-arcade/internal/drill"
	"github.com/vovakirdan/math-arcade/internal/session"
)

//go:embed defaults/drill.yaml
var defaultDrillYAML []byte

// DefaultYAML returns the embedded default config file.
func DefaultYAML() []byte {
	return append([]byte(nil), defaultDrillYAML...)
}

// DefaultDrillConfig returns the default drill configuration.
func DefaultDrillConfig() DrillConfig {
	return DrillConfig{
		MaxAdded: 9,
		Praise:   append([]string(nil), session.DefaultPraise...),
		MathLab: PoolConfig{
			Points:      1,
			Pattern:     append([]drill.Operation(nil), drill.DefaultPattern...),
			Addition:    append([]drill.Fact(nil), drill.AdditionFacts...),
			Subtraction: append([]drill.Fact(nil), drill.SubtractionFacts...),
			Choices: PoolChoices{
				Min:         1,
				Max:         10,
				Distractors: 3,
			},
		},
		Blitz: ArcadeConfig{
			Points:       10,
			GameSeconds:  30,
			AdvanceDelay: 500 * time.Millisecond,
			LockoutDelay: 800 * time.Millisecond,
			Ops:          []drill.Operation{drill.OpAdd, drill.OpSubtract, drill.OpMultiply},
			Addend:       drill.Range{Min: 1, Max: 20},
			Minuend:      drill.Range{Min: 10, Max: 29},
			Factor:       drill.Range{Min: 1, Max: 10},
			Distractors: ArcadeChoices{
				Count:       3,
				MaxOffset:   5,
				MaxAttempts: 64,
			},
			Difficulty: drill.Ramp{},
		},
		Streak: ArcadeConfig{
			Points:          10,
			QuestionSeconds: 10,
			AdvanceDelay:    300 * time.Millisecond,
			Ops:             []drill.Operation{drill.OpAdd, drill.OpSubtract},
			Addend:          drill.Range{Min: 1, Max: 20},
			Minuend:         drill.Range{Min: 10, Max: 29},
			Factor:          drill.Range{Min: 1, Max: 10},
			Distractors: ArcadeChoices{
				Count:       3,
				MaxOffset:   5,
				MaxAttempts: 64,
			},
			Difficulty: drill.Ramp{},
		},
	}
}
