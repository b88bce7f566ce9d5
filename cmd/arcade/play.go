package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/math-arcade/internal/config"
	"github.com/vovakirdan/math-arcade/internal/core"
	"github.com/vovakirdan/math-arcade/internal/effects"
	"github.com/vovakirdan/math-arcade/internal/games/arith"
	"github.com/vovakirdan/math-arcade/internal/platform/tui"
	"github.com/vovakirdan/math-arcade/internal/registry"
	"github.com/vovakirdan/math-arcade/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagMute       bool
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Games:
  mathlab - Ten problems, model each one with counters, then pick the answer
  blitz   - Answer as many as you can before the clock runs out
  streak  - Keep answering until the first mistake or a slow answer

Controls:
  Space      - Cross out / restore a counter, or pick the highlighted answer
  + / =      - Add a counter
  Left/Right - Move the cursor
  Enter      - Start, check, next
  1-4        - Pick an answer
  X          - Reset the counters
  B/Esc      - Back to the game menu
  R          - Play again (results card)
  Ctrl+S     - Save a screenshot
  Q/Ctrl+C   - Quit

Difficulty options:
  easy    - Longer timers
  normal  - Standard timers
  hard    - Shorter timers
  fixed   - Numbers stay in the config's ranges, even if the file turns growth on
  growing - Numbers grow past the standard ranges as your score climbs

Examples:
  arcade play mathlab
  arcade play blitz --difficulty easy
  arcade play streak --difficulty hard
  arcade play blitz --config ./my-drill.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom drill config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed, growing")
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "No bell and no spoken praise")
}

// applyGameFlags validates --config and --difficulty and hands them to the
// games. A bad file or preset is an error here rather than a silent fallback.
func applyGameFlags() error {
	if _, err := config.ParsePreset(flagDifficulty); err != nil {
		return err
	}
	if flagConfig != "" {
		if _, err := config.LoadDrill(flagConfig); err != nil {
			return err
		}
	}
	arith.SetConfigPath(flagConfig)
	arith.SetDifficultyPreset(flagDifficulty)
	return nil
}

// terminalSize returns the size of stdout, or 80x24 when unknown.
func terminalSize() (int, int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return 80, 24
}

// openStore opens the scores database; the games still run without one.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("scores disabled", "err", err)
		return nil
	}
	return store
}

func newPlayer(logger *log.Logger) effects.Player {
	if flagMute {
		return effects.Nop{}
	}
	return effects.NewTerminal(os.Stderr, true, logger)
}

func runPlay(cmd *cobra.Command, args []string) error {
	gameID := args[0]

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'arcade list' to see available games", gameID)
	}
	if err := applyGameFlags(); err != nil {
		return err
	}

	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	width, height := terminalSize()
	cfg := core.RuntimeConfig{
		ScreenW: width,
		ScreenH: height,
		Seed:    flagSeed,
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}
	player := newPlayer(logger)
	defer player.Close()

	logger.Info("playing", "game", gameID, "difficulty", flagDifficulty)
	if _, err := tui.Run(game, tui.Options{Store: store, Player: player, Logger: logger}, cfg); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
