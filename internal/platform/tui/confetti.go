package tui

import (
	"math/rand"

	"github.com/vovakirdan/math-arcade/internal/core"
)

const (
	confettiPieces = 40
	confettiFrames = 2 * confettiFPS
)

var (
	confettiRunes  = []rune{'*', '+', '•', '✦', '~'}
	confettiColors = []core.Color{
		core.ColorYellow, core.ColorOrange, core.ColorCoral,
		core.ColorSoftBlue, core.ColorSoftGreen, core.ColorMagenta,
	}
)

type piece struct {
	x, y   float64
	vx, vy float64
	r      rune
	c      core.Color
}

// Confetti is a short burst of falling pieces drawn over the game.
type Confetti struct {
	rng    *rand.Rand
	pieces []piece
	frames int // frames left
}

// NewConfetti returns an idle overlay seeded for reproducible bursts.
func NewConfetti(seed int64) *Confetti {
	return &Confetti{rng: rand.New(rand.NewSource(seed))}
}

// Active reports whether a burst is on screen.
func (c *Confetti) Active() bool {
	return c.frames > 0
}

// Burst starts a new burst across a w-wide screen, replacing any running one.
func (c *Confetti) Burst(w int) {
	c.pieces = c.pieces[:0]
	for range confettiPieces {
		c.pieces = append(c.pieces, piece{
			x:  c.rng.Float64() * float64(max(w, 1)),
			y:  -c.rng.Float64() * 4,
			vx: c.rng.Float64()*0.6 - 0.3,
			vy: 0.5 + c.rng.Float64()*0.8,
			r:  confettiRunes[c.rng.Intn(len(confettiRunes))],
			c:  confettiColors[c.rng.Intn(len(confettiColors))],
		})
	}
	c.frames = confettiFrames
}

// Step advances one frame.
func (c *Confetti) Step() {
	if c.frames == 0 {
		return
	}
	c.frames--
	for i := range c.pieces {
		p := &c.pieces[i]
		p.x += p.vx
		p.y += p.vy
	}
	if c.frames == 0 {
		c.pieces = c.pieces[:0]
	}
}

// Draw paints the visible pieces onto dst.
func (c *Confetti) Draw(dst *core.Screen) {
	for _, p := range c.pieces {
		x, y := int(p.x), int(p.y)
		if x < 0 || y < 0 || x >= dst.Width() || y >= dst.Height() {
			continue
		}
		dst.SetColored(x, y, p.r, p.c)
	}
}
