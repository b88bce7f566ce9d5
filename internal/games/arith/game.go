// Package arith implements the arithmetic drill games: Math Lab, Math Blitz
// and Math Streak. All three share the session state machine and differ
// only in their rules.
package arith

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/math-arcade/internal/config"
	"github.com/vovakirdan/math-arcade/internal/core"
	"github.com/vovakirdan/math-arcade/internal/drill"
	"github.com/vovakirdan/math-arcade/internal/registry"
	"github.com/vovakirdan/math-arcade/internal/session"
)

// Variant identifies one of the drill games.
type Variant string

const (
	VariantMathLab Variant = "mathlab"
	VariantBlitz   Variant = "blitz"
	VariantStreak  Variant = "streak"
)

// Mode returns the session mode a variant plays in.
func (v Variant) Mode() session.Mode {
	switch v {
	case VariantBlitz:
		return session.ModeTimed
	case VariantStreak:
		return session.ModeStreak
	default:
		return session.ModePool
	}
}

// Minimum screen size for the play field.
const (
	minScreenW = 44
	minScreenH = 18
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// logger receives config problems found when a game is created.
var logger = log.New(io.Discard)

// SetLogger sets the logger used by every drill game. Nil discards.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l.WithPrefix("arith")
}

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		p = ""
	}
	difficultyPreset = p
}

func init() {
	for _, v := range []Variant{VariantMathLab, VariantBlitz, VariantStreak} {
		registry.Register(string(v), func() registry.Game {
			return New(v)
		})
	}
}

// Game adapts a session machine to the platform's game interface.
type Game struct {
	variant Variant
	machine *session.Machine
	sess    session.Session

	// cursor is the highlighted counter (subtraction) or choice.
	cursor    int
	cursorKey cursorKey

	screenW  int
	screenH  int
	tooSmall bool
}

// cursorKey identifies what the cursor currently points into.
type cursorKey struct {
	epoch  int
	index  int
	status session.Status
}

// New creates a game for the given variant.
func New(v Variant) *Game {
	return &Game{variant: v}
}

// NewWithRules creates a game with explicit rules instead of loading config.
func NewWithRules(v Variant, r session.Rules) (*Game, error) {
	m, err := session.NewMachine(r)
	if err != nil {
		return nil, err
	}
	return &Game{variant: v, machine: m}, nil
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return string(g.variant)
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	switch g.variant {
	case VariantBlitz:
		return "Math Blitz"
	case VariantStreak:
		return "Math Streak"
	default:
		return "Math Lab"
	}
}

// Reset initializes the game and shows its menu. The high score survives.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	if g.machine == nil {
		g.machine = loadMachine(g.variant)
	}

	high := g.sess.HighScore
	g.sess = g.machine.NewSession(cfg.Seed)
	g.sess.HighScore = high
	g.cursor = 0
	g.cursorKey = cursorKey{}

	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.tooSmall = cfg.ScreenW < minScreenW || cfg.ScreenH < minScreenH
}

// loadMachine builds a machine from the config files, falling back to the
// built-in rules when they cannot be used.
func loadMachine(v Variant) *session.Machine {
	cfg, err := config.LoadDrill(configPath)
	if err != nil {
		logger.Warn("drill config unusable, using built-in rules", "game", string(v), "path", configPath, "err", err)
		cfg = config.DefaultDrillConfig()
	}
	config.ApplyPreset(&cfg, difficultyPreset)

	m, err := session.NewMachine(cfg.Rules(v.Mode()))
	if err != nil {
		logger.Warn("drill rules invalid, using built-in rules", "game", string(v), "err", err)
		m, _ = session.NewMachine(session.DefaultRules(v.Mode()))
	}
	return m
}

// Step translates one frame of actions into intents.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	var effects []core.Effect
	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	for _, a := range frameOrder {
		if !in.Has(a) {
			continue
		}
		for _, intent := range g.intents(a) {
			effects = append(effects, g.apply(intent)...)
		}
	}
	return core.StepResult{State: g.State(), Effects: effects}
}

// Tick advances the game clock by one second.
func (g *Game) Tick() core.StepResult {
	effects := g.apply(session.Tick())
	return core.StepResult{State: g.State(), Effects: effects}
}

// Fire delivers a scheduled task.
func (g *Game) Fire(tok core.Token) core.StepResult {
	effects := g.apply(session.Fire(tok))
	return core.StepResult{State: g.State(), Effects: effects}
}

func (g *Game) apply(in session.Intent) []core.Effect {
	var effects []core.Effect
	g.sess, effects = g.machine.Apply(g.sess, in)
	g.syncCursor()
	return effects
}

// syncCursor resets the cursor whenever the question or its status changes.
func (g *Game) syncCursor() {
	key := cursorKey{epoch: g.sess.Epoch, index: g.sess.Index, status: g.sess.Question.Status}
	if key == g.cursorKey {
		return
	}
	// Unlocking keeps the cursor on the choice the player was looking at.
	unlocked := key.epoch == g.cursorKey.epoch && key.index == g.cursorKey.index &&
		g.cursorKey.status == session.StatusLocked && key.status == session.StatusChoosing
	if !unlocked {
		g.cursor = 0
	}
	g.cursorKey = key
}

// frameOrder is the order actions of one frame are handled in.
var frameOrder = []core.Action{
	core.ActionBack,
	core.ActionRestart,
	core.ActionLeft,
	core.ActionRight,
	core.ActionAdd,
	core.ActionReset,
	core.ActionToggle,
	core.ActionChoice1,
	core.ActionChoice2,
	core.ActionChoice3,
	core.ActionChoice4,
	core.ActionConfirm,
}

// intents maps an action to intents for the current phase and status.
func (g *Game) intents(a core.Action) []session.Intent {
	switch g.sess.Phase {
	case session.PhaseMenu:
		if a == core.ActionConfirm || a == core.ActionToggle || a == core.ActionRestart {
			return []session.Intent{session.StartGame()}
		}
		return nil
	case session.PhaseResults:
		switch a {
		case core.ActionConfirm, core.ActionBack:
			return []session.Intent{session.ReturnToMenu()}
		case core.ActionRestart:
			return []session.Intent{session.ReturnToMenu(), session.StartGame()}
		}
		return nil
	}

	if a == core.ActionBack {
		return []session.Intent{session.ReturnToMenu()}
	}
	p, ok := g.sess.Current()
	if !ok {
		return nil
	}
	if i, isChoice := a.ChoiceIndex(); isChoice {
		if i < len(p.Choices) {
			return []session.Intent{session.SelectChoice(p.Choices[i])}
		}
		return nil
	}

	q := g.sess.Question
	switch q.Status {
	case session.StatusCounting, session.StatusWrong:
		return g.countingIntents(a)
	case session.StatusChoosing:
		switch a {
		case core.ActionLeft:
			g.moveCursor(-1, len(p.Choices))
		case core.ActionRight:
			g.moveCursor(1, len(p.Choices))
		case core.ActionToggle, core.ActionConfirm:
			if g.cursor < len(p.Choices) {
				return []session.Intent{session.SelectChoice(p.Choices[g.cursor])}
			}
		}
	case session.StatusSolved:
		if a == core.ActionConfirm {
			return []session.Intent{session.AdvanceToNext()}
		}
	}
	return nil
}

func (g *Game) countingIntents(a core.Action) []session.Intent {
	p, _ := g.sess.Current()
	subtract := p.Op == drill.OpSubtract

	switch a {
	case core.ActionAdd:
		if !subtract {
			return []session.Intent{session.IncrementCount()}
		}
	case core.ActionToggle:
		if subtract {
			return []session.Intent{session.ToggleRemoved(g.cursor)}
		}
		return []session.Intent{session.IncrementCount()}
	case core.ActionLeft:
		if subtract {
			g.moveCursor(-1, p.A)
		}
	case core.ActionRight:
		if subtract {
			g.moveCursor(1, p.A)
		}
	case core.ActionReset:
		return []session.Intent{session.ResetProblem()}
	case core.ActionConfirm:
		return []session.Intent{session.CheckAnswer()}
	}
	return nil
}

// moveCursor moves the cursor by delta, wrapping within [0, n).
func (g *Game) moveCursor(delta, n int) {
	if n <= 0 {
		g.cursor = 0
		return
	}
	g.cursor = ((g.cursor+delta)%n + n) % n
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.sess.Score,
		Playing:  g.sess.Phase == session.PhasePlaying && !g.tooSmall,
		GameOver: g.sess.Phase == session.PhaseResults,
	}
}

// Session returns the current session value.
func (g *Game) Session() session.Session {
	return g.sess
}

// Summary returns the results card of the current round.
func (g *Game) Summary() session.Summary {
	return g.machine.Summarize(g.sess)
}

// Resize updates the play field size.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.tooSmall = w < minScreenW || h < minScreenH
}

// SeedHighScore raises the remembered high score, e.g. from saved rounds.
func (g *Game) SeedHighScore(n int) {
	if n > g.sess.HighScore {
		g.sess.HighScore = n
	}
}
