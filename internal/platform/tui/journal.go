package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-asteroids/internal/core"
	"github.com/vovakirdan/tui-asteroids/internal/registry"
	"github.com/vovakirdan/tui-asteroids/internal/storage"
)

// Journal layout constants
const (
	minWidthForSidebar = 100 // Minimum width to show game list sidebar
	sidebarWidth       = 24  // Width of game list sidebar
	maxRounds          = 100 // Max rounds to load
)

// JournalKeyMap defines the key bindings for the journal.
type JournalKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextGame key.Binding
	PrevGame key.Binding
	Clear    key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k JournalKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextGame, k.Clear, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k JournalKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextGame, k.PrevGame},
		{k.Clear, k.Back, k.Quit},
	}
}

// DefaultJournalKeyMap returns default key bindings.
func DefaultJournalKeyMap() JournalKeyMap {
	return JournalKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextGame: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next view"),
		),
		PrevGame: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev view"),
		),
		Clear: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear view"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// journalView is one tab of the journal. An empty GameID shows every game.
type journalView struct {
	GameID string
	Title  string
}

// JournalModel is the Bubble Tea model for the round journal screen.
type JournalModel struct {
	views       []journalView
	viewCursor  int
	store       *storage.Store
	tickRate    int
	rounds      []storage.Round
	stats       storage.Stats
	loadErr     error
	table       table.Model
	help        help.Model
	keys        JournalKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewJournalModel creates a new journal model. store may be nil.
func NewJournalModel(store *storage.Store, cfg core.RuntimeConfig) JournalModel {
	views := []journalView{{Title: "All rounds"}}
	for _, g := range registry.List() {
		views = append(views, journalView{GameID: g.ID, Title: g.Title})
	}

	tickRate := cfg.TickRate
	if tickRate <= 0 {
		tickRate = core.DefaultConfig().TickRate
	}

	h := help.New()
	h.ShowAll = false

	m := JournalModel{
		views:       views,
		store:       store,
		tickRate:    tickRate,
		keys:        DefaultJournalKeyMap(),
		help:        h,
		width:       cfg.ScreenW,
		height:      cfg.ScreenH,
		showSidebar: cfg.ScreenW >= minWidthForSidebar,
	}

	m.table = m.createTable()
	m.loadRounds()

	return m
}

// createTable creates a new table with appropriate columns.
func (m *JournalModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 5},
		{Title: "Outcome", Width: 10},
		{Title: "Wave", Width: 5},
		{Title: "Shots", Width: 6},
		{Title: "Hits", Width: 6},
		{Title: "Acc", Width: 6},
		{Title: "Time", Width: 7},
		{Title: "Date", Width: 13},
	}

	height := m.height - 10 // Leave room for header, stats, help, and margins
	if height < 3 {
		height = 3
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	// Table styles
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

	return t
}

// currentView returns the selected tab.
func (m JournalModel) currentView() journalView {
	return m.views[m.viewCursor]
}

// loadRounds loads rounds and aggregates for the current view.
func (m *JournalModel) loadRounds() {
	m.rounds = nil
	m.stats = storage.Stats{}
	m.loadErr = nil

	if m.store != nil {
		gameID := m.currentView().GameID
		rounds, err := m.store.RecentRounds(gameID, maxRounds)
		if err != nil {
			m.loadErr = err
		} else {
			m.rounds = rounds
		}
		stats, err := m.store.RoundStats(gameID)
		if err != nil {
			m.loadErr = err
		} else {
			m.stats = stats
		}
		if m.loadErr != nil {
			log.Warn("could not load journal", "game", gameID, "err", m.loadErr)
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current rounds.
func (m *JournalModel) updateTableRows() {
	rows := make([]table.Row, len(m.rounds))
	for i, r := range m.rounds {
		acc := "-"
		if r.ShotsFired > 0 {
			acc = fmt.Sprintf("%.0f%%", 100*float64(r.AsteroidsDestroyed)/float64(r.ShotsFired))
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", r.ID),
			r.Outcome,
			fmt.Sprintf("%d", r.Wave),
			fmt.Sprintf("%d", r.ShotsFired),
			fmt.Sprintf("%d", r.AsteroidsDestroyed),
			acc,
			formatTicks(r.Ticks, m.tickRate),
			r.CreatedAt.Local().Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)

	// Reset cursor to top
	m.table.GotoTop()
}

// formatTicks renders a tick count as play time.
func formatTicks(ticks, tickRate int) string {
	d := time.Duration(ticks) * time.Second / time.Duration(tickRate)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

// Init initializes the journal model.
func (m JournalModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the journal.
func (m JournalModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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

		case key.Matches(msg, m.keys.NextGame):
			m.viewCursor = (m.viewCursor + 1) % len(m.views)
			m.loadRounds()
			return m, nil

		case key.Matches(msg, m.keys.PrevGame):
			m.viewCursor--
			if m.viewCursor < 0 {
				m.viewCursor = len(m.views) - 1
			}
			m.loadRounds()
			return m, nil

		case key.Matches(msg, m.keys.Clear):
			if m.store != nil {
				if err := m.store.ClearRounds(m.currentView().GameID); err != nil {
					log.Warn("could not clear journal", "err", err)
				}
				m.loadRounds()
			}
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			// Pass to table for scrolling
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the journal.
func (m JournalModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := fmt.Sprintf("ROUND JOURNAL - %s", m.currentView().Title)
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	b.WriteString(centerText(m.statsLine(), m.width))
	b.WriteString("\n")

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// statsLine summarizes the current view.
func (m JournalModel) statsLine() string {
	s := m.stats
	return fmt.Sprintf("Rounds %d  |  Won %d  |  Lost %d  |  Accuracy %.0f%%  |  Played %s",
		s.Rounds, s.Wins, s.Losses, 100*s.Accuracy(), formatTicks(s.Ticks, m.tickRate))
}

// renderWideLayout renders the journal with a sidebar of views.
func (m JournalModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Views\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, v := range m.views {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.viewCursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sidebar.WriteString(style.Render(cursor + v.Title))
		sidebar.WriteString("\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()), "  ", tableStyle.Render(m.renderTableContent()))
}

// renderNarrowLayout renders the journal with view tabs above the table.
func (m JournalModel) renderNarrowLayout() string {
	var b strings.Builder

	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, len(m.views))
	for i, v := range m.views {
		if i == m.viewCursor {
			tabs[i] = activeTabStyle.Render(v.Title)
		} else {
			tabs[i] = tabStyle.Render(" " + v.Title + " ")
		}
	}

	tabLine := strings.Join(tabs, " ")
	if lipgloss.Width(tabLine) > m.width-4 {
		tabLine = fmt.Sprintf("< %s >", m.currentView().Title)
	}
	b.WriteString(centerText(tabLine, m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	b.WriteString(tableStyle.Render(m.renderTableContent()))

	return b.String()
}

// renderTableContent renders the table or an empty message.
func (m JournalModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.store == nil:
		return emptyStyle.Render("Journal unavailable.\nThe database could not be opened.")
	case m.loadErr != nil:
		return emptyStyle.Render("Journal could not be read.")
	case len(m.rounds) == 0:
		return emptyStyle.Render("No rounds recorded yet.\nFinish a round to see it here.")
	}

	return m.table.View()
}

// Rounds returns the rounds shown in the current view.
func (m JournalModel) Rounds() []storage.Round {
	return m.rounds
}

// IsGoingBack returns true if user wants to go back to menu.
func (m JournalModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m JournalModel) IsQuitting() bool {
	return m.quitting
}

// RunJournal runs the journal screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunJournal(store *storage.Store, cfg core.RuntimeConfig) (goBack bool, err error) {
	model := NewJournalModel(store, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(JournalModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
