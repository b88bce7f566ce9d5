package core

// Action represents a semantic game action, abstracted from physical key presses.
// Games translate actions into intents using their own cursor state.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow - move cursor up (menus)
	ActionDown           // S, Down arrow - move cursor down (menus)
	ActionLeft           // A, Left arrow - move cursor to previous counter/choice
	ActionRight          // D, Right arrow - move cursor to next counter/choice
	ActionToggle         // Space - cross out / restore the counter under the cursor, pick the choice under the cursor
	ActionAdd            // + or = - add one counter
	ActionConfirm        // Enter - start, check, next
	ActionReset          // X - reset the current problem
	ActionChoice1        // 1 - pick the first choice
	ActionChoice2        // 2 - pick the second choice
	ActionChoice3        // 3 - pick the third choice
	ActionChoice4        // 4 - pick the fourth choice
	ActionBack           // B, Escape - back to the game's menu
	ActionRestart        // R - play again from the results card
	ActionQuit           // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionToggle:
		return "Toggle"
	case ActionAdd:
		return "Add"
	case ActionConfirm:
		return "Confirm"
	case ActionReset:
		return "Reset"
	case ActionChoice1, ActionChoice2, ActionChoice3, ActionChoice4:
		return "Choice"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// ChoiceIndex returns the zero-based choice slot of a Choice action.
func (a Action) ChoiceIndex() (int, bool) {
	if a >= ActionChoice1 && a <= ActionChoice4 {
		return int(a - ActionChoice1), true
	}
	return 0, false
}

// InputFrame holds the actions triggered by one batch of key presses.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// FrameOf creates a frame with the given actions set.
func FrameOf(actions ...Action) InputFrame {
	f := NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}
