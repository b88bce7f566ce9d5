// Package tui provides the Bubble Tea integration for the arcade platform.
// It handles the terminal UI loop, input mapping, and game orchestration.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/math-arcade/internal/core"
)

// confettiFPS is the frame rate of the confetti overlay.
const confettiFPS = 10

// TickMsg is the one-second game clock. Gen identifies the tick chain;
// a chain ends when the round stops playing and stale ticks are dropped.
type TickMsg struct {
	Gen int
}

// FireMsg delivers a task the game scheduled earlier.
type FireMsg struct {
	Token core.Token
}

// confettiMsg advances the confetti overlay by one frame.
type confettiMsg struct{}

// tickCmd returns a command that sends the next clock tick in one second.
func tickCmd(gen int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return TickMsg{Gen: gen}
	})
}

// fireCmd delivers tok after the given delay.
func fireCmd(tok core.Token, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return FireMsg{Token: tok}
	})
}

func confettiCmd() tea.Cmd {
	return tea.Tick(time.Second/confettiFPS, func(time.Time) tea.Msg {
		return confettiMsg{}
	})
}
