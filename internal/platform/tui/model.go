package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/math-arcade/internal/core"
	"github.com/vovakirdan/math-arcade/internal/effects"
	"github.com/vovakirdan/math-arcade/internal/registry"
	"github.com/vovakirdan/math-arcade/internal/session"
	"github.com/vovakirdan/math-arcade/internal/storage"
)

// Optional game capabilities the platform uses when present.
type (
	summarizer interface {
		Summary() session.Summary
	}
	resizer interface {
		Resize(w, h int)
	}
	highScoreSeeder interface {
		SeedHighScore(n int)
	}
)

// Options wires the platform services into a GameModel.
type Options struct {
	Store  *storage.Store // nil disables score saving
	Player effects.Player // nil plays nothing
	Logger *log.Logger    // nil discards
}

func (o Options) withDefaults() Options {
	if o.Player == nil {
		o.Player = effects.Nop{}
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	return o
}

// GameModel is the Bubble Tea model that runs one game: it feeds key
// presses, the one-second clock and scheduled tasks into the game and
// carries out the effects it returns.
type GameModel struct {
	game      registry.Game
	screen    *core.Screen
	opts      Options
	config    core.RuntimeConfig
	gameState core.GameState
	keyMapper *KeyMapper
	confetti  *Confetti

	tickGen    int  // current clock chain; older TickMsgs are dropped
	standalone bool // quit the program instead of reporting BackToMenu
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a model for game. The game is reset here.
func NewGameModel(game registry.Game, opts Options, cfg core.RuntimeConfig) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	opts = opts.withDefaults()

	game.Reset(cfg)
	if seeder, ok := game.(highScoreSeeder); ok && opts.Store != nil {
		high, err := opts.Store.HighScore(game.ID())
		if err != nil {
			opts.Logger.Warn("could not load high score", "game", game.ID(), "err", err)
		}
		seeder.SeedHighScore(high)
	}

	return GameModel{
		game:      game,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		opts:      opts,
		config:    cfg,
		gameState: game.State(),
		keyMapper: NewKeyMapper(),
		confetti:  NewConfetti(cfg.Seed),
	}
}

// Init starts nothing; the clock runs only while a round is playing.
func (m GameModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.Gen != m.tickGen || !m.gameState.Playing {
			return m, nil
		}
		cmd := m.handleResult(m.game.Tick())
		if m.gameState.Playing {
			cmd = tea.Batch(cmd, tickCmd(m.tickGen))
		}
		return m, cmd

	case FireMsg:
		return m, m.handleResult(m.game.Fire(msg.Token))

	case confettiMsg:
		m.confetti.Step()
		if m.confetti.Active() {
			return m, confettiCmd()
		}
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		m.opts.Logger.Debug("quit", "game", m.game.ID())
		return m, tea.Quit
	}
	if action == core.ActionNone {
		return m, nil
	}

	// Back on the game's own menu leaves the game.
	if action == core.ActionBack && !m.gameState.Playing && !m.gameState.GameOver {
		m.backToMenu = true
		if m.standalone {
			return m, tea.Quit
		}
		return m, nil
	}

	return m, m.handleResult(m.game.Step(core.FrameOf(action)))
}

// handleResize processes window resize events.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(resizer); ok {
		r.Resize(msg.Width, msg.Height)
	} else if !m.gameState.Playing {
		m.game.Reset(m.config)
	}

	return m, m.handleResult(core.StepResult{State: m.game.State()})
}

// handleResult records the new state, starts the clock when a round
// begins and carries out the effects.
func (m *GameModel) handleResult(res core.StepResult) tea.Cmd {
	var cmds []tea.Cmd

	wasPlaying := m.gameState.Playing
	m.gameState = res.State
	if m.gameState.Playing && !wasPlaying {
		m.tickGen++
		cmds = append(cmds, tickCmd(m.tickGen))
	}

	for _, e := range res.Effects {
		switch e.Kind {
		case core.EffectSchedule:
			cmds = append(cmds, fireCmd(e.Token, e.After))
		case core.EffectCelebrate:
			if !m.confetti.Active() {
				cmds = append(cmds, confettiCmd())
			}
			m.confetti.Burst(m.config.ScreenW)
		case core.EffectRoundOver:
			m.saveRound()
		default:
			m.opts.Player.Play(e)
		}
	}

	return tea.Batch(cmds...)
}

// saveRound stores the finished round. Failures are logged and play goes on.
func (m *GameModel) saveRound() {
	sum, ok := m.game.(summarizer)
	if !ok {
		return
	}
	s := sum.Summary()
	m.opts.Logger.Info("round over",
		"game", m.game.ID(),
		"end", s.End,
		"score", s.Score,
		"first_try", s.FirstTry,
		"total", s.Total,
	)

	if m.opts.Store == nil || s.Score <= 0 {
		return
	}
	id, err := m.opts.Store.SaveRound(RoundFromSummary(m.game.ID(), s))
	if err != nil {
		m.opts.Logger.Error("could not save round", "game", m.game.ID(), "err", err)
		return
	}
	m.opts.Logger.Debug("round saved", "round_id", id)
}

// RoundFromSummary converts a results card to a storage record.
func RoundFromSummary(gameID string, s session.Summary) storage.Round {
	return storage.Round{
		GameID:     gameID,
		Score:      s.Score,
		FirstTry:   s.FirstTry,
		Correct:    s.Correct,
		Attempts:   s.Attempts,
		Total:      s.Total,
		BestStreak: s.BestStreak,
		EndReason:  s.End.String(),
		Duration:   s.Elapsed,
	}
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.opts.Logger.Warn("could not create screenshot directory", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.opts.Logger.Warn("could not save screenshot", "err", err)
		return
	}
	m.opts.Logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	m.confetti.Draw(m.screen)
	return RenderScreen(m.screen)
}

// State returns the last game state the model saw.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays game in the terminal until the player quits or backs out.
// It reports whether the player asked to go back rather than quit.
func Run(game registry.Game, opts Options, cfg core.RuntimeConfig) (backToMenu bool, err error) {
	model := NewGameModel(game, opts, cfg)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	if m, ok := final.(GameModel); ok {
		return m.BackToMenu(), nil
	}
	return false, nil
}
