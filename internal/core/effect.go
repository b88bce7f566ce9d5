package core

import "time"

// EffectKind identifies an outbound request from a game to the platform.
type EffectKind int

const (
	// EffectSuccessTone asks for the short two-note reward tone.
	EffectSuccessTone EffectKind = iota
	// EffectSpeakPraise asks for Phrase to be spoken aloud.
	EffectSpeakPraise
	// EffectCelebrate asks for a burst of confetti.
	EffectCelebrate
	// EffectSchedule asks for Fire(Token) to be delivered after After.
	EffectSchedule
	// EffectRoundOver reports that the round reached its results card.
	EffectRoundOver
)

// String returns a short name for logging.
func (k EffectKind) String() string {
	switch k {
	case EffectSuccessTone:
		return "success_tone"
	case EffectSpeakPraise:
		return "speak_praise"
	case EffectCelebrate:
		return "celebrate"
	case EffectSchedule:
		return "schedule"
	case EffectRoundOver:
		return "round_over"
	default:
		return "unknown"
	}
}

// TaskKind is the kind of a delayed task.
type TaskKind int

const (
	TaskAdvance TaskKind = iota // load the next problem after a correct answer
	TaskUnlock                  // re-enable choices after a wrong answer lockout
)

// Token identifies a delayed task. A task only takes effect while the
// session still has the same epoch, problem index and pending kind.
type Token struct {
	Epoch int
	Index int
	Kind  TaskKind
}

// Effect is a fire-and-forget request. Nothing it does feeds back into
// game state except a scheduled Fire, which the game re-validates.
type Effect struct {
	Kind   EffectKind
	Phrase string        // EffectSpeakPraise
	Token  Token         // EffectSchedule
	After  time.Duration // EffectSchedule
}
