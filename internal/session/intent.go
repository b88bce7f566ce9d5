package session

import "github.com/vovakirdan/math-arcade/internal/core"

// IntentKind identifies an inbound request from the presentation layer.
type IntentKind int

const (
	IntentStart IntentKind = iota
	IntentIncrement
	IntentToggleRemoved
	IntentCheck
	IntentSelect
	IntentResetProblem
	IntentNext
	IntentMenu
	IntentTick // one second of play time elapsed
	IntentFire // a scheduled delay elapsed
)

// String returns a human-readable name for the intent kind.
func (k IntentKind) String() string {
	switch k {
	case IntentStart:
		return "start"
	case IntentIncrement:
		return "increment"
	case IntentToggleRemoved:
		return "toggle_removed"
	case IntentCheck:
		return "check"
	case IntentSelect:
		return "select"
	case IntentResetProblem:
		return "reset_problem"
	case IntentNext:
		return "next"
	case IntentMenu:
		return "menu"
	case IntentTick:
		return "tick"
	case IntentFire:
		return "fire"
	default:
		return "unknown"
	}
}

// Intent is a single user or timer request.
type Intent struct {
	Kind  IntentKind
	Index int        // IntentToggleRemoved
	Value int        // IntentSelect
	Token core.Token // IntentFire
}

func StartGame() Intent { return Intent{Kind: IntentStart} }
func IncrementCount() Intent { return Intent{Kind: IntentIncrement} }
func ToggleRemoved(i int) Intent { return Intent{Kind: IntentToggleRemoved, Index: i} }
func CheckAnswer() Intent { return Intent{Kind: IntentCheck} }
func SelectChoice(v int) Intent { return Intent{Kind: IntentSelect, Value: v} }
func ResetProblem() Intent { return Intent{Kind: IntentResetProblem} }
func AdvanceToNext() Intent { return Intent{Kind: IntentNext} }
func ReturnToMenu() Intent { return Intent{Kind: IntentMenu} }
func Tick() Intent { return Intent{Kind: IntentTick} }
func Fire(tok core.Token) Intent { return Intent{Kind: IntentFire, Token: tok} }
