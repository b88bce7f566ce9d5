package session

// Summary is the results card of a finished round.
type Summary struct {
	Mode         Mode
	End          EndReason
	Score        int
	FirstTry     int
	Correct      int
	Attempts     int
	Total        int // problems presented
	BestStreak   int
	HighScore    int
	NewHighScore bool
	Elapsed      int     // seconds
	Accuracy     float64 // Correct / Attempts, 0 when nothing was picked
	Stars        int     // 0..3
}

// Summarize builds the results card for s. It is meaningful once the
// session reached PhaseResults but works on any phase.
func (m *Machine) Summarize(s Session) Summary {
	sum := Summary{
		Mode:         m.rules.Mode,
		End:          s.End,
		Score:        s.Score,
		FirstTry:     s.FirstTry,
		Correct:      s.Correct,
		Attempts:     s.Attempts,
		Total:        s.presented(),
		BestStreak:   s.BestStreak,
		HighScore:    s.HighScore,
		NewHighScore: s.Score > 0 && s.Score > s.BestBefore,
		Elapsed:      s.Elapsed,
	}
	if s.Attempts > 0 {
		sum.Accuracy = float64(s.Correct) / float64(s.Attempts)
	}

	ratio := sum.Accuracy
	if m.rules.Mode == ModePool && sum.Total > 0 {
		ratio = float64(s.FirstTry) / float64(sum.Total)
	}
	sum.Stars = stars(ratio)
	return sum
}

// presented counts the problems the player actually saw.
func (s Session) presented() int {
	if len(s.Problems) == 0 {
		return 0
	}
	if s.Phase == PhaseResults && s.End == EndCompleted {
		return len(s.Problems)
	}
	return min(s.Index+1, len(s.Problems))
}

func stars(ratio float64) int {
	switch {
	case ratio >= 0.9:
		return 3
	case ratio >= 0.7:
		return 2
	case ratio >= 0.4:
		return 1
	default:
		return 0
	}
}
