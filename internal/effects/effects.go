// Package effects carries out the fire-and-forget requests games emit:
// the reward tone and spoken praise. Nothing here feeds back into game
// state, and every failure degrades to silence.
package effects

import (
	"context"
	"io"
	"os/exec"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/math-arcade/internal/core"
)

// Player performs audio effects.
// Effects it does not handle (confetti, scheduling) are ignored.
type Player interface {
	Play(e core.Effect)
	Close() error
}

// Nop discards every effect. Used for SSH sessions and muted play.
type Nop struct{}

func (Nop) Play(core.Effect) {}
func (Nop) Close() error     { return nil }

// Recorder keeps every effect it is given.
type Recorder struct {
	mu      sync.Mutex
	effects []core.Effect
}

// Play records e.
func (r *Recorder) Play(e core.Effect) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.effects = append(r.effects, e)
}

// Close does nothing.
func (r *Recorder) Close() error { return nil }

// Effects returns a copy of what was recorded.
func (r *Recorder) Effects() []core.Effect {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]core.Effect(nil), r.effects...)
}

// speakers are tried in order; the phrase is appended as the last argument.
var speakers = [][]string{
	{"espeak-ng", "-s", "140"},
	{"espeak", "-s", "140"},
	{"say"},
	{"spd-say", "-w"},
}

// SpeakFunc speaks one phrase, returning when done or when ctx is cancelled.
type SpeakFunc func(ctx context.Context, phrase string) error

// Terminal rings the terminal bell for the reward tone and speaks praise
// through the first text-to-speech command found on PATH.
type Terminal struct {
	out    io.Writer
	speak  SpeakFunc
	logger *log.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu       sync.Mutex
	speaking bool // one phrase at a time; phrases arriving meanwhile are dropped
}

// NewTerminal returns a player writing the bell to out. With speech off, or
// when no speech command is installed, praise is silent.
func NewTerminal(out io.Writer, speech bool, logger *log.Logger) *Terminal {
	var speak SpeakFunc
	if speech {
		speak = lookupSpeaker(logger)
	}
	return newTerminal(out, speak, logger)
}

func newTerminal(out io.Writer, speak SpeakFunc, logger *log.Logger) *Terminal {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Terminal{
		out:    out,
		speak:  speak,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

// lookupSpeaker finds an installed speech command.
func lookupSpeaker(logger *log.Logger) SpeakFunc {
	for _, argv := range speakers {
		path, err := exec.LookPath(argv[0])
		if err != nil {
			continue
		}
		args := argv[1:]
		if logger != nil {
			logger.Debug("speech enabled", "command", path)
		}
		return func(ctx context.Context, phrase string) error {
			cmd := exec.CommandContext(ctx, path, append(append([]string(nil), args...), phrase)...)
			return cmd.Run()
		}
	}
	if logger != nil {
		logger.Debug("no speech command found, praise will be silent")
	}
	return nil
}

// Play performs e without blocking.
func (t *Terminal) Play(e core.Effect) {
	switch e.Kind {
	case core.EffectSuccessTone:
		t.bell()
	case core.EffectSpeakPraise:
		t.say(e.Phrase)
	}
}

// bell writes two BEL characters, the terminal's closest thing to a two-note chime.
func (t *Terminal) bell() {
	if t.out == nil {
		return
	}
	if _, err := io.WriteString(t.out, "\a\a"); err != nil {
		t.logger.Debug("bell failed", "err", err)
	}
}

func (t *Terminal) say(phrase string) {
	if t.speak == nil || phrase == "" {
		return
	}

	t.mu.Lock()
	if t.speaking || t.ctx.Err() != nil {
		t.mu.Unlock()
		return
	}
	t.speaking = true
	t.wg.Add(1)
	t.mu.Unlock()

	go func() {
		defer t.wg.Done()
		defer func() {
			t.mu.Lock()
			t.speaking = false
			t.mu.Unlock()
		}()

		if err := t.speak(t.ctx, phrase); err != nil && t.ctx.Err() == nil {
			t.logger.Debug("speech failed", "phrase", phrase, "err", err)
		}
	}()
}

// Close stops any phrase being spoken and waits for it to exit.
func (t *Terminal) Close() error {
	t.mu.Lock()
	t.cancel()
	t.mu.Unlock()
	t.wg.Wait()
	return nil
}
