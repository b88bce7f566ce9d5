package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/math-arcade/internal/drill"
)

// Mode selects how problems are generated and answered.
type Mode int

const (
	// ModePool: curated ten-question round with counters, check and choice.
	ModePool Mode = iota
	// ModeTimed: random problems against a round timer; wrong picks lock
	// the choices briefly and the same problem stays.
	ModeTimed
	// ModeStreak: random problems with a per-question timer; the first
	// wrong pick ends the round.
	ModeStreak
)

// String returns the config name of the mode.
func (m Mode) String() string {
	switch m {
	case ModePool:
		return "pool"
	case ModeTimed:
		return "timed"
	case ModeStreak:
		return "streak"
	default:
		return "unknown"
	}
}

// Arcade reports whether the mode answers directly from the choices.
func (m Mode) Arcade() bool {
	return m == ModeTimed || m == ModeStreak
}

// Rules parameterize a Machine.
type Rules struct {
	Mode  Mode
	Pool  drill.PoolGenerator  // ModePool
	Range drill.RangeGenerator // ModeTimed, ModeStreak
	Ramp  drill.Ramp           // optional; widens Range as the score grows

	MaxAdded int // upper clamp for added counters
	Points   int // score per correct answer (pool: first-try answers only)

	GameSeconds     int // ModeTimed round length
	QuestionSeconds int // ModeStreak time per question

	AdvanceDelay time.Duration // pause after a correct arcade pick
	LockoutDelay time.Duration // greyed-out time after a wrong timed pick

	Praise []string // phrases for spoken praise; empty disables it
}

// DefaultPraise are the phrases spoken after a correct answer.
var DefaultPraise = []string{
	"Great job!",
	"Well done!",
	"You got it!",
	"Awesome!",
	"Super counting!",
	"Fantastic!",
}

// DefaultRules returns the built-in rules for a mode.
func DefaultRules(mode Mode) Rules {
	r := Rules{
		Mode:     mode,
		MaxAdded: 9,
		Points:   10,
		Praise:   append([]string(nil), DefaultPraise...),
	}

	switch mode {
	case ModePool:
		r.Pool = drill.DefaultPoolGenerator()
		r.Points = 1
	case ModeTimed:
		r.Range = drill.DefaultRangeGenerator()
		r.GameSeconds = 30
		r.AdvanceDelay = 500 * time.Millisecond
		r.LockoutDelay = 800 * time.Millisecond
	case ModeStreak:
		r.Range = drill.DefaultRangeGenerator()
		r.Range.Ops = []drill.Operation{drill.OpAdd, drill.OpSubtract}
		r.QuestionSeconds = 10
		r.AdvanceDelay = 300 * time.Millisecond
	}
	return r
}

// Validate checks that the rules describe a playable game.
func (r Rules) Validate() error {
	if r.Points <= 0 {
		return fmt.Errorf("session: points must be positive, got %d", r.Points)
	}
	if r.Ramp.Growth < 0 {
		return fmt.Errorf("session: ramp growth must not be negative, got %d", r.Ramp.Growth)
	}
	if r.AdvanceDelay < 0 || r.LockoutDelay < 0 {
		return errors.New("session: delays must not be negative")
	}

	switch r.Mode {
	case ModePool:
		if err := r.Pool.Validate(); err != nil {
			return fmt.Errorf("session: pool: %w", err)
		}
		for _, f := range r.Pool.Addition {
			if f.B > r.MaxAdded {
				return fmt.Errorf("session: max_added %d cannot model %d + %d", r.MaxAdded, f.A, f.B)
			}
		}
	case ModeTimed:
		if err := r.Range.Validate(); err != nil {
			return fmt.Errorf("session: range: %w", err)
		}
		if r.GameSeconds <= 0 {
			return fmt.Errorf("session: game_seconds must be positive, got %d", r.GameSeconds)
		}
	case ModeStreak:
		if err := r.Range.Validate(); err != nil {
			return fmt.Errorf("session: range: %w", err)
		}
		if r.QuestionSeconds <= 0 {
			return fmt.Errorf("session: question_seconds must be positive, got %d", r.QuestionSeconds)
		}
	default:
		return fmt.Errorf("session: unknown mode %d", int(r.Mode))
	}
	return nil
}

// generator returns the range generator for the current score.
func (r Rules) generator(score int) drill.RangeGenerator {
	return r.Ramp.Apply(r.Range, score)
}

// timer returns the seconds a fresh timer starts with, or 0 when the mode has none.
func (r Rules) timer() int {
	switch r.Mode {
	case ModeTimed:
		return r.GameSeconds
	case ModeStreak:
		return r.QuestionSeconds
	default:
		return 0
	}
}
