package arith

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/math-arcade/internal/core"
	"github.com/vovakirdan/math-arcade/internal/drill"
	"github.com/vovakirdan/math-arcade/internal/session"
)

// Counter glyphs; each problem uses one, picked by its index.
var glyphs = []rune{'●', '■', '▲', '◆', '★', '♥', '♣', '♠'}

const (
	removedGlyph = '✗'
	cursorGlyph  = '^'
)

// Layout rows relative to the top of the play field.
const (
	rowHUD      = 0
	rowProgress = 1
	rowEquation = 4
	rowCounters = 7
	rowCursor   = 8
	rowMessage  = 10
	rowChoices  = 12
)

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	switch g.sess.Phase {
	case session.PhaseMenu:
		g.renderMenu(dst)
	case session.PhasePlaying:
		g.renderPlaying(dst)
	case session.PhaseResults:
		g.renderResults(dst)
	}
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small", core.ColorYellow)
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need at least %dx%d", minScreenW, minScreenH), core.ColorGray)
}

func (g *Game) tagline() string {
	switch g.variant {
	case VariantBlitz:
		return "Beat the clock!"
	case VariantStreak:
		return "How long can you keep going?"
	default:
		return "Let's experiment with numbers!"
	}
}

func (g *Game) renderMenu(dst *core.Screen) {
	box := core.NewRect(0, 0, g.screenW, g.screenH).Centered(36, 10)
	dst.DrawBox(box, core.ColorSoftBlue)

	dst.DrawTextCentered(box.Y+2, g.Title(), core.ColorWhite)
	dst.DrawTextCentered(box.Y+3, g.tagline(), core.ColorGray)

	r := g.machine.Rules()
	var info string
	switch r.Mode {
	case session.ModeTimed:
		info = fmt.Sprintf("%d seconds, %d points each", r.GameSeconds, r.Points)
	case session.ModeStreak:
		info = fmt.Sprintf("%d seconds per question", r.QuestionSeconds)
	default:
		info = fmt.Sprintf("%d questions", len(r.Pool.Pattern))
	}
	dst.DrawTextCentered(box.Y+5, info, core.ColorDefault)

	if g.sess.HighScore > 0 {
		dst.DrawTextCentered(box.Y+6, fmt.Sprintf("Best: %d", g.sess.HighScore), core.ColorYellow)
	}
	dst.DrawTextCentered(box.Y+8, "[ Enter: Start ]", core.ColorSoftGreen)
}

func (g *Game) renderPlaying(dst *core.Screen) {
	p, ok := g.sess.Current()
	if !ok {
		return
	}
	top := max(0, (g.screenH-minScreenH)/2)

	g.renderHUD(dst, top)
	g.renderEquation(dst, top+rowEquation, p)

	if !g.machine.Rules().Mode.Arcade() {
		g.renderCounters(dst, top, p)
	}
	g.renderMessage(dst, top+rowMessage, p)
	if g.choicesVisible() {
		g.renderChoices(dst, top+rowChoices, p)
	}
}

func (g *Game) renderHUD(dst *core.Screen, y int) {
	s := g.sess
	r := g.machine.Rules()

	dst.DrawTextColor(1, y+rowHUD, g.Title(), core.ColorWhite)

	var right string
	switch r.Mode {
	case session.ModeTimed:
		right = fmt.Sprintf("Score %d  Time %d:%02d", s.Score, s.TimeLeft/60, s.TimeLeft%60)
	case session.ModeStreak:
		right = fmt.Sprintf("Score %d  Streak %d  Time %d", s.Score, s.Streak, s.TimeLeft)
	default:
		right = fmt.Sprintf("Question %d/%d", s.Index+1, len(s.Problems))
	}
	x := g.screenW - len(right) - 1
	timeColor := core.ColorDefault
	if r.Mode.Arcade() && s.TimeLeft <= 5 {
		timeColor = core.ColorRed
	}
	dst.DrawTextColor(x, y+rowHUD, right, timeColor)

	if r.Mode == session.ModePool {
		// One dot per question: solved first try, solved, current, upcoming.
		width := len(s.Problems)*2 - 1
		x := (g.screenW - width) / 2
		for i := range s.Problems {
			c, ch := core.ColorGray, '○'
			switch {
			case i < s.Index:
				c, ch = core.ColorSoftGreen, '●'
			case i == s.Index:
				c, ch = core.ColorSoftBlue, '●'
			}
			dst.SetColored(x+i*2, y+rowProgress, ch, c)
		}
	}
	dst.DrawHLine(0, y+rowProgress+1, g.screenW, '─', core.ColorGray)
}

func (g *Game) renderEquation(dst *core.Screen, y int, p drill.Problem) {
	answer := "?"
	c := core.ColorWhite
	if g.sess.Question.Status == session.StatusSolved {
		answer = fmt.Sprint(p.Answer)
		c = core.ColorSoftGreen
	}
	dst.DrawTextCentered(y, fmt.Sprintf("%d %s %d = %s", p.A, p.Op.Symbol(), p.B, answer), c)
}

// renderCounters draws the pool-mode manipulatives.
func (g *Game) renderCounters(dst *core.Screen, top int, p drill.Problem) {
	q := g.sess.Question
	glyph := glyphs[g.sess.Index%len(glyphs)]

	if p.Op == drill.OpSubtract {
		width := p.A*2 - 1
		x := (g.screenW - width) / 2
		for i := 0; i < p.A; i++ {
			if q.IsRemoved(i) {
				dst.SetColored(x+i*2, top+rowCounters, removedGlyph, core.ColorCoral)
			} else {
				dst.SetColored(x+i*2, top+rowCounters, glyph, core.ColorSoftBlue)
			}
		}
		if q.Editable() {
			dst.SetColored(x+g.cursor*2, top+rowCursor, cursorGlyph, core.ColorYellow)
		}
		return
	}

	// Addition: the first addend, a gap, then the counters added so far.
	width := p.A*2 + 2 + max(q.Added, 1)*2
	x := (g.screenW - width) / 2
	for i := 0; i < p.A; i++ {
		dst.SetColored(x+i*2, top+rowCounters, glyph, core.ColorSoftBlue)
	}
	x += p.A*2 + 1
	dst.SetColored(x, top+rowCounters, '+', core.ColorGray)
	x += 2
	for i := 0; i < q.Added; i++ {
		dst.SetColored(x+i*2, top+rowCounters, glyph, core.ColorSoftGreen)
	}
	dst.DrawTextCentered(top+rowCursor, fmt.Sprintf("added %d", q.Added), core.ColorGray)
}

func (g *Game) renderMessage(dst *core.Screen, y int, p drill.Problem) {
	q := g.sess.Question
	var msg string
	c := core.ColorDefault

	switch q.Status {
	case session.StatusCounting:
		if p.Op == drill.OpSubtract {
			msg = fmt.Sprintf("Cross out %d with Space, then Enter", p.B)
		} else {
			msg = fmt.Sprintf("Add %d with +, then Enter", p.B)
		}
	case session.StatusWrong:
		msg, c = "Not quite. Count again!", core.ColorCoral
	case session.StatusChoosing:
		msg = "Pick the answer (1-4)"
		if q.HasSelected {
			msg, c = "Try another one!", core.ColorOrange
		}
	case session.StatusLocked:
		msg, c = "Oops! Wait a moment...", core.ColorCoral
	case session.StatusSolved:
		msg, c = "Correct!", core.ColorSoftGreen
		if !g.machine.Rules().Mode.Arcade() {
			msg = "Correct! Press Enter for the next one"
		}
	}
	dst.DrawTextCentered(y, msg, c)
}

// choicesVisible reports whether the answer buttons are shown.
func (g *Game) choicesVisible() bool {
	switch g.sess.Question.Status {
	case session.StatusChoosing, session.StatusLocked, session.StatusSolved:
		return true
	}
	return false
}

func (g *Game) renderChoices(dst *core.Screen, y int, p drill.Problem) {
	q := g.sess.Question

	labels := make([]string, len(p.Choices))
	for i, v := range p.Choices {
		labels[i] = fmt.Sprintf("[%d] %d", i+1, v)
	}
	width := len(strings.Join(labels, "   "))
	x := (g.screenW - width) / 2

	for i, v := range p.Choices {
		c := core.ColorDefault
		switch {
		case q.Status == session.StatusSolved && v == p.Answer:
			c = core.ColorSoftGreen
		case q.Status == session.StatusLocked || q.WasTried(v):
			c = core.ColorGray
		case i == g.cursor && q.Status == session.StatusChoosing:
			c = core.ColorYellow
		}
		dst.DrawTextColor(x, y, labels[i], c)
		if i == g.cursor && q.Status == session.StatusChoosing {
			dst.DrawHLine(x, y+1, len(labels[i]), '‾', core.ColorYellow)
		}
		x += len(labels[i]) + 3
	}
}

func (g *Game) renderResults(dst *core.Screen) {
	sum := g.Summary()
	box := core.NewRect(0, 0, g.screenW, g.screenH).Centered(36, 12)
	dst.DrawBox(box, core.ColorSoftGreen)

	var title, headline string
	switch sum.End {
	case session.EndTimeout:
		title = "Time's up!"
	case session.EndWrongAnswer:
		title = "Game over"
	default:
		title = "Lab Report"
	}
	if sum.Mode == session.ModePool {
		headline = fmt.Sprintf("Perfect experiments %d/%d", sum.FirstTry, sum.Total)
	} else {
		headline = fmt.Sprintf("Score %d", sum.Score)
	}

	dst.DrawTextCentered(box.Y+2, title, core.ColorWhite)
	dst.DrawTextCentered(box.Y+4, headline, core.ColorYellow)
	dst.DrawTextCentered(box.Y+5, starLine(sum.Stars), core.ColorYellow)

	detail := fmt.Sprintf("Accuracy %d%%  Best streak %d", int(sum.Accuracy*100+0.5), sum.BestStreak)
	dst.DrawTextCentered(box.Y+7, detail, core.ColorGray)

	if sum.NewHighScore {
		dst.DrawTextCentered(box.Y+8, "New high score!", core.ColorOrange)
	} else if sum.HighScore > 0 {
		dst.DrawTextCentered(box.Y+8, fmt.Sprintf("Best %d", sum.HighScore), core.ColorGray)
	}
	dst.DrawTextCentered(box.Y+10, "Enter: Menu   R: Play again", core.ColorSoftBlue)
}

func starLine(n int) string {
	return strings.Repeat("★", n) + strings.Repeat("☆", 3-n)
}
