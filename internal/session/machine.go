package session

import (
	"math/rand"
	"slices"
	"time"

	"github.com/vovakirdan/math-arcade/internal/core"
	"github.com/vovakirdan/math-arcade/internal/drill"
)

// Salts keep the random streams of one session independent of each other.
const (
	saltRound  uint64 = 0x726f756e64 // problem set or first arcade problem
	saltNext   uint64 = 0x6e657874   // following arcade problems
	saltPraise uint64 = 0x707261697365
)

// Machine applies intents to sessions under a fixed set of rules.
// It holds no per-session state and is safe for concurrent use.
type Machine struct {
	rules Rules
}

// NewMachine validates the rules and returns a machine for them.
func NewMachine(r Rules) (*Machine, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &Machine{rules: r}, nil
}

// Rules returns the rules the machine was built with.
func (m *Machine) Rules() Rules {
	return m.rules
}

// NewSession returns a session waiting in the menu.
func (m *Machine) NewSession(seed int64) Session {
	return Session{Phase: PhaseMenu, Seed: seed}
}

// Apply returns the session that results from in, along with the effects
// the platform should perform. Intents that do not apply to the current
// phase or status return s unchanged and no effects.
func (m *Machine) Apply(s Session, in Intent) (Session, []core.Effect) {
	switch in.Kind {
	case IntentStart:
		return m.start(s)
	case IntentMenu:
		return m.menu(s)
	}

	if s.Phase != PhasePlaying {
		return s, nil
	}

	switch in.Kind {
	case IntentTick:
		return m.tick(s)
	case IntentFire:
		return m.fire(s, in.Token)
	}

	if m.rules.Mode.Arcade() {
		if in.Kind == IntentSelect {
			return m.selectArcade(s, in.Value)
		}
		return s, nil
	}

	switch in.Kind {
	case IntentIncrement:
		return m.increment(s)
	case IntentToggleRemoved:
		return m.toggle(s, in.Index)
	case IntentResetProblem:
		return m.resetProblem(s)
	case IntentCheck:
		return m.check(s)
	case IntentSelect:
		return m.selectPool(s, in.Value)
	case IntentNext:
		return m.next(s)
	}
	return s, nil
}

func (m *Machine) start(s Session) (Session, []core.Effect) {
	if s.Phase != PhaseMenu {
		return s, nil
	}

	next := Session{
		Phase:      PhasePlaying,
		Seed:       s.Seed,
		Epoch:      s.Epoch + 1,
		HighScore:  s.HighScore,
		BestBefore: s.HighScore,
		TimeLeft:   m.rules.timer(),
	}

	rng := next.rng(saltRound)
	if m.rules.Mode.Arcade() {
		next.Problems = []drill.Problem{m.rules.generator(0).Next(rng)}
	} else {
		next.Problems = m.rules.Pool.Generate(rng)
	}
	next.Question = m.freshQuestion()
	return next, nil
}

func (m *Machine) menu(s Session) (Session, []core.Effect) {
	if s.Phase == PhaseMenu {
		return s, nil
	}
	return Session{
		Phase:     PhaseMenu,
		Seed:      s.Seed,
		Epoch:     s.Epoch + 1,
		HighScore: s.HighScore,
	}, nil
}

func (m *Machine) freshQuestion() Question {
	if m.rules.Mode.Arcade() {
		return Question{Status: StatusChoosing}
	}
	return Question{Status: StatusCounting}
}

func (m *Machine) tick(s Session) (Session, []core.Effect) {
	s.Elapsed++
	if m.rules.timer() == 0 {
		return s, nil
	}
	// The per-question clock stops once the answer is in.
	if m.rules.Mode == ModeStreak && s.Question.Status == StatusSolved {
		return s, nil
	}

	s.TimeLeft--
	if s.TimeLeft > 0 {
		return s, nil
	}
	s.TimeLeft = 0
	return m.finish(s, EndTimeout)
}

func (m *Machine) fire(s Session, tok core.Token) (Session, []core.Effect) {
	if s.Pending == nil || s.Pending.Token != tok {
		return s, nil
	}
	s.Pending = nil

	switch tok.Kind {
	case core.TaskUnlock:
		if s.Question.Status == StatusLocked {
			s.Question.Status = StatusChoosing
		}
		return s, nil
	case core.TaskAdvance:
		return m.advanceArcade(s)
	}
	return s, nil
}

// finish moves the session to the results phase.
func (m *Machine) finish(s Session, reason EndReason) (Session, []core.Effect) {
	s.Phase = PhaseResults
	s.End = reason
	s.Pending = nil
	if s.Score > s.HighScore {
		s.HighScore = s.Score
	}

	effects := []core.Effect{{Kind: core.EffectRoundOver}}
	if reason == EndCompleted {
		effects = append(effects, core.Effect{Kind: core.EffectCelebrate})
	}
	return s, effects
}

// reward returns the effects that follow a correct answer.
func (m *Machine) reward(s Session) []core.Effect {
	effects := []core.Effect{{Kind: core.EffectSuccessTone}}
	if len(m.rules.Praise) > 0 {
		phrase := m.rules.Praise[s.rng(saltPraise).Intn(len(m.rules.Praise))]
		effects = append(effects, core.Effect{Kind: core.EffectSpeakPraise, Phrase: phrase})
	}
	return append(effects, core.Effect{Kind: core.EffectCelebrate})
}

// schedule records a pending task and returns the effect that asks the
// platform to fire it.
func schedule(s *Session, kind core.TaskKind, after time.Duration) core.Effect {
	tok := core.Token{Epoch: s.Epoch, Index: s.Index, Kind: kind}
	s.Pending = &Pending{Token: tok, After: after}
	return core.Effect{Kind: core.EffectSchedule, Token: tok, After: after}
}

// Pool mode.

func (m *Machine) increment(s Session) (Session, []core.Effect) {
	p, ok := s.Current()
	if !ok || p.Op != drill.OpAdd || !s.Question.Editable() {
		return s, nil
	}
	if s.Question.Added >= m.rules.MaxAdded {
		return s, nil
	}
	s.Question.Added++
	return s, nil
}

func (m *Machine) toggle(s Session, idx int) (Session, []core.Effect) {
	p, ok := s.Current()
	if !ok || p.Op != drill.OpSubtract || !s.Question.Editable() {
		return s, nil
	}
	if idx < 0 || idx >= p.A {
		return s, nil
	}

	removed := slices.Clone(s.Question.Removed)
	if i, found := slices.BinarySearch(removed, idx); found {
		removed = slices.Delete(removed, i, i+1)
	} else {
		removed = slices.Insert(removed, i, idx)
	}
	s.Question.Removed = removed
	return s, nil
}

func (m *Machine) resetProblem(s Session) (Session, []core.Effect) {
	if !s.Question.Editable() {
		return s, nil
	}
	s.Question.Added = 0
	s.Question.Removed = nil
	s.Question.Status = StatusCounting
	return s, nil
}

func (m *Machine) check(s Session) (Session, []core.Effect) {
	p, ok := s.Current()
	if !ok || !s.Question.Editable() {
		return s, nil
	}

	if s.Question.Tally(p) == p.B {
		s.Question.Status = StatusChoosing
		return s, nil
	}
	s.Question.Status = StatusWrong
	s.Question.FailedOnce = true
	return s, nil
}

func (m *Machine) selectPool(s Session, v int) (Session, []core.Effect) {
	p, ok := s.Current()
	if !ok || s.Question.Status != StatusChoosing || !p.HasChoice(v) {
		return s, nil
	}
	if s.Question.WasTried(v) {
		return s, nil
	}

	s.Attempts++
	s.Question.Selected = v
	s.Question.HasSelected = true

	if v != p.Answer {
		s.Question.FailedOnce = true
		s.Question.Tried = append(slices.Clip(s.Question.Tried), v)
		s.Streak = 0
		return s, nil
	}

	s.Question.Status = StatusSolved
	s.Correct++
	if !s.Question.FailedOnce {
		s.FirstTry++
		s.Score += m.rules.Points
		s.Streak++
		s.BestStreak = max(s.BestStreak, s.Streak)
	} else {
		s.Streak = 0
	}
	return s, m.reward(s)
}

func (m *Machine) next(s Session) (Session, []core.Effect) {
	if s.Question.Status != StatusSolved {
		return s, nil
	}
	if s.Index+1 >= len(s.Problems) {
		return m.finish(s, EndCompleted)
	}
	s.Index++
	s.Question = m.freshQuestion()
	return s, nil
}

// Arcade modes.

func (m *Machine) selectArcade(s Session, v int) (Session, []core.Effect) {
	p, ok := s.Current()
	if !ok || s.Question.Status != StatusChoosing || !p.HasChoice(v) {
		return s, nil
	}
	if s.Question.WasTried(v) {
		return s, nil
	}

	s.Attempts++
	s.Question.Selected = v
	s.Question.HasSelected = true

	if v == p.Answer {
		s.Question.Status = StatusSolved
		s.Score += m.rules.Points
		s.Correct++
		if !s.Question.FailedOnce {
			s.FirstTry++
		}
		s.Streak++
		s.BestStreak = max(s.BestStreak, s.Streak)

		effects := m.reward(s)
		effects = append(effects, schedule(&s, core.TaskAdvance, m.rules.AdvanceDelay))
		return s, effects
	}

	s.Question.FailedOnce = true
	s.Streak = 0
	if m.rules.Mode == ModeStreak {
		return m.finish(s, EndWrongAnswer)
	}

	s.Question.Status = StatusLocked
	s.Question.Tried = append(slices.Clip(s.Question.Tried), v)
	effect := schedule(&s, core.TaskUnlock, m.rules.LockoutDelay)
	return s, []core.Effect{effect}
}

func (m *Machine) advanceArcade(s Session) (Session, []core.Effect) {
	if s.Question.Status != StatusSolved {
		return s, nil
	}

	s.Index++
	s.Problems = append(slices.Clip(s.Problems), m.rules.generator(s.Score).Next(s.rng(saltNext)))
	s.Question = m.freshQuestion()
	if m.rules.Mode == ModeStreak {
		s.TimeLeft = m.rules.QuestionSeconds
	}
	return s, nil
}

// rng returns a random source derived from the session seed, the round and
// the current problem, so replaying the same intents yields the same game.
func (s Session) rng(salt uint64) *rand.Rand {
	x := mix64(uint64(s.Seed) ^ salt)
	x = mix64(x ^ uint64(s.Epoch)<<32 ^ uint64(s.Index))
	return rand.New(rand.NewSource(int64(x)))
}

// mix64 is the splitmix64 finalizer.
func mix64(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
