package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/vovakirdan/math-arcade/internal/core"
	"github.com/vovakirdan/math-arcade/internal/storage"
)

func sessionUpdate(t *testing.T, m SessionModel, msg tea.Msg) SessionModel {
	t.Helper()
	next, _ := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return sm
}

func TestSessionMenuGameMenu(t *testing.T) {
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 1}
	m := NewSessionModel(nil, cfg, "kid", nil)

	if _, err := uuid.Parse(m.SessionID()); err != nil {
		t.Errorf("session id %q is not a UUID", m.SessionID())
	}
	if !strings.Contains(m.View(), "Pick a game") {
		t.Fatal("session should open on the arcade menu")
	}

	m = sessionUpdate(t, m, enterKey)
	if !m.inGame {
		t.Fatal("Enter should open the highlighted game")
	}

	// Esc on the game's own menu returns to the arcade menu.
	m = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	if m.inGame {
		t.Fatal("Esc should leave the game")
	}
	if !strings.Contains(m.View(), "Pick a game") {
		t.Error("expected the arcade menu again")
	}

	next, cmd := m.Update(runeKey('q'))
	if !next.(SessionModel).quitting || cmd == nil {
		t.Error("q should end the session")
	}
}

func TestSessionScoreboard(t *testing.T) {
	cfg := core.RuntimeConfig{ScreenW: 100, ScreenH: 30, Seed: 1}
	m := NewSessionModel(nil, cfg, "kid", nil)

	m = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.scoreboard == nil {
		t.Fatal("Tab should open the scoreboard")
	}
	if !strings.Contains(m.View(), "HIGH SCORES") {
		t.Error("expected the scoreboard view")
	}

	m = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	if m.scoreboard != nil || m.quitting {
		t.Error("Esc should return to the menu")
	}
}

func TestScoreboardShowsRounds(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	defer store.Close()

	board := NewScoreboardModel(store, 100, 30)
	if len(board.games) == 0 {
		t.Fatal("no games registered")
	}
	gameID := board.games[0].ID
	if _, err := store.SaveRound(storage.Round{
		GameID: gameID, Score: 70, FirstTry: 7, Total: 9, Correct: 7, Attempts: 8,
		BestStreak: 4, EndReason: "timeout",
	}); err != nil {
		t.Fatalf("SaveRound: %v", err)
	}

	board = NewScoreboardModel(store, 100, 30)
	view := board.View()
	for _, want := range []string{"70", "7/9", "88%"} {
		if !strings.Contains(view, want) {
			t.Errorf("scoreboard missing %q", want)
		}
	}

	// Narrow terminals drop the date column instead of breaking.
	narrow := NewScoreboardModel(store, 40, 20)
	if narrow.showDate {
		t.Error("date column should be hidden at width 40")
	}
	if !strings.Contains(narrow.View(), "70") {
		t.Error("narrow scoreboard should still list the round")
	}
}

func TestScoreboardRecentAndStats(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	defer store.Close()

	probe := NewScoreboardModel(store, 100, 30)
	gameID := probe.currentGame()
	for _, r := range []storage.Round{
		{GameID: gameID, Score: 90, FirstTry: 9, Total: 10, Correct: 9, Attempts: 10, BestStreak: 9, EndReason: "completed"},
		{GameID: gameID, Score: 20, FirstTry: 2, Total: 3, Correct: 2, Attempts: 3, BestStreak: 2, EndReason: "wrong_answer"},
		{GameID: "some-other-game", Score: 50, Total: 5, EndReason: "timeout"},
	} {
		if _, err := store.SaveRound(r); err != nil {
			t.Fatalf("SaveRound: %v", err)
		}
	}

	board := NewScoreboardModel(store, 120, 30)
	if len(board.rounds) != 2 || board.rounds[0].Score != 90 {
		t.Fatalf("best view rounds = %+v", board.rounds)
	}
	view := board.View()
	for _, want := range []string{"Best 90", "Rounds 2", "Longest streak 9"} {
		if !strings.Contains(view, want) {
			t.Errorf("stats line missing %q", want)
		}
	}

	next, _ := board.Update(runeKey('r'))
	board = next.(ScoreboardModel)
	if board.view != viewRecent {
		t.Fatal("r should switch to recent rounds")
	}
	if len(board.rounds) != 2 || board.rounds[0].Score != 20 {
		t.Errorf("recent view should list this game's newest round first, got %+v", board.rounds)
	}
	if !strings.Contains(board.View(), "RECENT ROUNDS") {
		t.Error("expected the recent title")
	}
	if board.showEnd && !strings.Contains(board.View(), "miss") {
		t.Error("end reason column should label wrong answers")
	}
}

func TestEndLabel(t *testing.T) {
	tests := map[string]string{
		"completed":    "done",
		"timeout":      "time up",
		"wrong_answer": "miss",
		"other":        "other",
	}
	for in, want := range tests {
		if got := endLabel(in); got != want {
			t.Errorf("endLabel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSessionSeedsEachGame(t *testing.T) {
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 42}
	m := NewSessionModel(nil, cfg, "kid", nil)

	for want := int64(42); want < 44; want++ {
		m = sessionUpdate(t, m, enterKey)
		if !m.inGame {
			t.Fatal("Enter should open the highlighted game")
		}
		if got := m.gameModel.config.Seed; got != want {
			t.Errorf("game seed = %d, want %d", got, want)
		}
		m = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	}
}
