// Package session implements the round state machine shared by the drill
// games: menu, playing and results phases, the per-question interaction
// states and score keeping. Transitions are pure: Machine.Apply takes a
// Session value and an Intent and returns the next Session plus the effect
// requests the platform should carry out.
package session

import (
	"slices"
	"time"

	"github.com/vovakirdan/math-arcade/internal/core"
	"github.com/vovakirdan/math-arcade/internal/drill"
)

// Phase is the top-level state of a session.
type Phase int

const (
	PhaseMenu Phase = iota
	PhasePlaying
	PhaseResults
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "menu"
	case PhasePlaying:
		return "playing"
	case PhaseResults:
		return "results"
	default:
		return "unknown"
	}
}

// Status is the interaction state of the current question.
type Status int

const (
	// StatusCounting: the player models the operation with counters.
	StatusCounting Status = iota
	// StatusWrong: the last check did not match; counters stay editable.
	StatusWrong
	// StatusChoosing: the player picks the answer from the choices.
	StatusChoosing
	// StatusSolved: the correct choice was picked.
	StatusSolved
	// StatusLocked: a wrong arcade pick greys the choices until unlocked.
	StatusLocked
)

// String returns a human-readable name for the status.
func (s Status) String() string {
	switch s {
	case StatusCounting:
		return "counting"
	case StatusWrong:
		return "wrong"
	case StatusChoosing:
		return "choosing"
	case StatusSolved:
		return "solved"
	case StatusLocked:
		return "locked"
	default:
		return "unknown"
	}
}

// EndReason records why a round reached the results phase.
type EndReason int

const (
	EndNone EndReason = iota
	EndCompleted
	EndTimeout
	EndWrongAnswer
)

// String returns the storage name of the reason.
func (r EndReason) String() string {
	switch r {
	case EndCompleted:
		return "completed"
	case EndTimeout:
		return "timeout"
	case EndWrongAnswer:
		return "wrong_answer"
	default:
		return "none"
	}
}

// Question is the interaction substate of the current problem.
// It is rebuilt whenever a problem is loaded.
type Question struct {
	Status      Status
	Added       int   // counters added (addition problems)
	Removed     []int // crossed-out counter indices, sorted (subtraction problems)
	Selected    int   // last picked choice, valid when HasSelected
	HasSelected bool
	FailedOnce  bool  // a check or pick failed on this problem
	Tried       []int // wrong choices already picked
}

// IsRemoved reports whether counter i is crossed out.
func (q Question) IsRemoved(i int) bool {
	_, found := slices.BinarySearch(q.Removed, i)
	return found
}

// WasTried reports whether v was already picked as a wrong choice.
func (q Question) WasTried(v int) bool {
	return slices.Contains(q.Tried, v)
}

// Tally returns the quantity the player has modeled for p.
func (q Question) Tally(p drill.Problem) int {
	if p.Op == drill.OpSubtract {
		return len(q.Removed)
	}
	return q.Added
}

// Editable reports whether counters may still be changed.
func (q Question) Editable() bool {
	return q.Status == StatusCounting || q.Status == StatusWrong
}

// Pending is a delayed task waiting for Fire.
type Pending struct {
	Token core.Token
	After time.Duration
}

// Session is the complete state of one player's game.
// Values are treated as immutable: Apply never mutates slices it received.
type Session struct {
	Phase Phase
	Seed  int64
	Epoch int // bumped on every start and every return to the menu

	Problems []drill.Problem
	Index    int

	Score      int
	FirstTry   int // problems solved without a failed check or pick
	Correct    int // problems solved
	Attempts   int // choice picks, right or wrong
	Streak     int
	BestStreak int

	HighScore  int // best score for the life of the process
	BestBefore int // HighScore when the round started

	TimeLeft int // seconds, when the rules have a timer
	Elapsed  int // seconds spent playing this round

	Question Question
	Pending  *Pending
	End      EndReason
}

// Current returns the problem being played.
func (s Session) Current() (drill.Problem, bool) {
	if s.Phase != PhasePlaying || s.Index < 0 || s.Index >= len(s.Problems) {
		return drill.Problem{}, false
	}
	return s.Problems[s.Index], true
}
