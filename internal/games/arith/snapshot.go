package arith

import "github.com/vovakirdan/math-arcade/internal/session"

// Snapshot captures the observable game state for determinism testing and replay.
type Snapshot struct {
	Variant   string
	Phase     string // "menu", "playing" or "results"
	Status    string // question status while playing
	Index     int
	Problem   string // e.g. "8 - 3", empty outside play
	Choices   []int
	Cursor    int
	Score     int
	FirstTry  int
	Streak    int
	HighScore int
	TimeLeft  int
	End       string
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	s := g.sess
	snap := Snapshot{
		Variant:   string(g.variant),
		Phase:     s.Phase.String(),
		Index:     s.Index,
		Cursor:    g.cursor,
		Score:     s.Score,
		FirstTry:  s.FirstTry,
		Streak:    s.Streak,
		HighScore: s.HighScore,
		TimeLeft:  s.TimeLeft,
		End:       s.End.String(),
	}
	if s.Phase == session.PhasePlaying {
		snap.Status = s.Question.Status.String()
	}
	if p, ok := s.Current(); ok {
		snap.Problem = p.String()
		snap.Choices = append([]int(nil), p.Choices...)
	}
	return snap
}
