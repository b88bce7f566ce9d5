package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/math-arcade/internal/registry"
	"github.com/vovakirdan/math-arcade/internal/storage"
)

const (
	minWidthForSidebar = 80
	sidebarWidth       = 22
	maxRounds          = 100
)

// boardView selects which rounds the table lists.
type boardView int

const (
	viewBest boardView = iota
	viewRecent
)

func (v boardView) String() string {
	if v == viewRecent {
		return "RECENT ROUNDS"
	}
	return "HIGH SCORES"
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Next   key.Binding
	Prev   key.Binding
	Recent key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Prev, k.Recent, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Next, k.Prev},
		{k.Recent, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k", "w"), key.WithHelp("↑/w", "scroll")),
		Down:   key.NewBinding(key.WithKeys("down", "j", "s"), key.WithHelp("↓/s", "scroll")),
		Next:   key.NewBinding(key.WithKeys("tab", "right", "l", "d"), key.WithHelp("tab/→", "next game")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab", "left", "h", "a"), key.WithHelp("←", "prev game")),
		Recent: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "best/recent")),
		Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel lists saved rounds per game, best first or newest first.
type ScoreboardModel struct {
	games      []registry.GameInfo
	gameCursor int
	store      *storage.Store
	stats      map[string]*storage.GameStats
	rounds     []storage.Round
	view       boardView
	table      table.Model
	help       help.Model
	keys       ScoreboardKeyMap
	width      int
	height     int
	quitting   bool
	goingBack  bool

	showSidebar bool
	showDate    bool // date column fits
	showEnd     bool // end reason column fits
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		games:  registry.List(),
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.loadStats()
	m.layout()
	m.reload()
	return m
}

func (m *ScoreboardModel) loadStats() {
	m.stats = nil
	if m.store == nil {
		return
	}
	if stats, err := m.store.GetAllGamesStats(); err == nil {
		m.stats = stats
	}
}

// layout rebuilds the table for the current size, dropping optional
// columns from the right when they do not fit.
func (m *ScoreboardModel) layout() {
	m.showSidebar = m.width >= minWidthForSidebar

	avail := m.width - 4
	if m.showSidebar {
		avail -= sidebarWidth + 3
	}

	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Score", Width: 6},
		{Title: "First try", Width: 9},
		{Title: "Accuracy", Width: 8},
		{Title: "Streak", Width: 6},
	}
	used := 0
	for _, c := range columns {
		used += c.Width + 2
	}

	endCol := table.Column{Title: "Ended", Width: 9}
	dateCol := table.Column{Title: "Date", Width: 12}

	m.showEnd = avail >= used+endCol.Width+2
	if m.showEnd {
		columns = append(columns, endCol)
		used += endCol.Width + 2
	}
	m.showDate = avail >= used+dateCol.Width+2
	if m.showDate {
		columns = append(columns, dateCol)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	m.table = t
}

func (m *ScoreboardModel) currentGame() string {
	if len(m.games) == 0 {
		return ""
	}
	return m.games[m.gameCursor].ID
}

// reload fetches rounds for the selected game and view.
func (m *ScoreboardModel) reload() {
	m.rounds = nil
	gameID := m.currentGame()
	if m.store != nil && gameID != "" {
		switch m.view {
		case viewRecent:
			if rounds, err := m.store.RecentRounds(maxRounds); err == nil {
				for _, r := range rounds {
					if r.GameID == gameID {
						m.rounds = append(m.rounds, r)
					}
				}
			}
		default:
			if rounds, err := m.store.TopRounds(gameID, maxRounds); err == nil {
				m.rounds = rounds
			}
		}
	}
	m.fillRows()
}

func (m *ScoreboardModel) fillRows() {
	rows := make([]table.Row, len(m.rounds))
	for i, r := range m.rounds {
		row := table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", r.Score),
			fmt.Sprintf("%d/%d", r.FirstTry, r.Total),
			percent(r.Accuracy()),
			fmt.Sprintf("%d", r.BestStreak),
		}
		if m.showEnd {
			row = append(row, endLabel(r.EndReason))
		}
		if m.showDate {
			row = append(row, r.CreatedAt.Format("Jan 02 15:04"))
		}
		rows[i] = row
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func percent(f float64) string {
	return fmt.Sprintf("%d%%", int(f*100+0.5))
}

func endLabel(reason string) string {
	switch reason {
	case "completed":
		return "done"
	case "timeout":
		return "time up"
	case "wrong_answer":
		return "miss"
	}
	return reason
}

func (m *ScoreboardModel) moveGame(delta int) {
	if len(m.games) == 0 {
		return
	}
	m.gameCursor = (m.gameCursor + delta + len(m.games)) % len(m.games)
	m.reload()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.moveGame(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.moveGame(-1)
			return m, nil
		case key.Matches(msg, m.keys.Recent):
			m.view = 1 - m.view
			m.reload()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.layout()
		m.fillRows()
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	title := m.view.String()
	if len(m.games) > 0 {
		title += " - " + m.games[m.gameCursor].Title
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWide())
	} else {
		b.WriteString(m.renderNarrow())
	}

	b.WriteString("\n")
	b.WriteString(m.renderStats())
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(m.help.View(m.keys)))

	return b.String()
}

var boxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("240")).
	Padding(0, 1)

// renderWide shows each game with its best score beside the table.
func (m ScoreboardModel) renderWide() string {
	var side strings.Builder
	side.WriteString("Games\n")
	side.WriteString(strings.Repeat("-", sidebarWidth-4))
	side.WriteString("\n")

	for i, g := range m.games {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.gameCursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		best := "-"
		if st, ok := m.stats[g.ID]; ok {
			best = fmt.Sprintf("%d", st.HighScore)
		}
		name := truncate(g.Title, sidebarWidth-8-len(best))
		pad := max(sidebarWidth-6-len([]rune(name))-len(best), 1)
		side.WriteString(style.Render(cursor + name + strings.Repeat(" ", pad) + best))
		side.WriteString("\n")
	}

	sidebar := boxStyle.Width(sidebarWidth).Render(side.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, "  ", boxStyle.Render(m.renderTable()))
}

// renderNarrow puts game tabs above the table.
func (m ScoreboardModel) renderNarrow() string {
	tabStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	activeStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, len(m.games))
	for i, g := range m.games {
		name := truncate(g.Title, 10)
		if i == m.gameCursor {
			tabs[i] = activeStyle.Render(name)
		} else {
			tabs[i] = tabStyle.Render(" " + name + " ")
		}
	}
	tabLine := strings.Join(tabs, " ")
	if lipgloss.Width(tabLine) > m.width-4 && len(m.games) > 0 {
		tabLine = fmt.Sprintf("< %s >", m.games[m.gameCursor].Title)
	}

	return centerText(tabLine, m.width) + "\n\n" + centerText(boxStyle.Render(m.renderTable()), m.width)
}

func (m ScoreboardModel) renderTable() string {
	if len(m.rounds) == 0 {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4).
			Render("No rounds recorded yet.\nFinish a round to set a high score!")
	}
	return m.table.View()
}

// renderStats is the one-line summary for the selected game.
func (m ScoreboardModel) renderStats() string {
	st, ok := m.stats[m.currentGame()]
	if !ok || st.GamesCount == 0 {
		return ""
	}
	line := fmt.Sprintf("Best %d  ·  Rounds %d  ·  Avg %.1f  ·  Longest streak %d  ·  Accuracy %s",
		st.HighScore, st.GamesCount, st.AvgScore, st.BestStreak, percent(st.Accuracy))
	return lipgloss.NewStyle().Foreground(lipgloss.Color("117")).Render(centerText(line, m.width)) + "\n"
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n < 2 || len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "."
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
