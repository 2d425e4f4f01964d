package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-sokoban/internal/levels"
	"github.com/vovakirdan/tui-sokoban/internal/storage"
)

// Progress board layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show level list sidebar
	sidebarWidth       = 26  // Width of level list sidebar
	maxRuns            = 100 // Max runs to load per level
)

// ProgressKeyMap defines the key bindings for the progress board.
type ProgressKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextLevel key.Binding
	PrevLevel key.Binding
	Clear     key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ProgressKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextLevel, k.PrevLevel, k.Clear, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ProgressKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextLevel, k.PrevLevel},
		{k.Clear, k.Back, k.Quit},
	}
}

// DefaultProgressKeyMap returns default key bindings.
func DefaultProgressKeyMap() ProgressKeyMap {
	return ProgressKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextLevel: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab/→", "next level"),
		),
		PrevLevel: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab/←", "prev level"),
		),
		Clear: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear my runs"),
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

// ProgressModel is the Bubble Tea model for the progress board: a level
// list beside the best runs of the highlighted level.
type ProgressModel struct {
	levels      []levels.Level
	cursor      int // Currently selected level index
	opts        Options
	done        map[string]bool
	runs        []storage.Completion
	stats       *storage.LevelStats
	table       table.Model
	help        help.Model
	keys        ProgressKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool // True if user pressed back (not quit)
	showSidebar bool // Whether to show level list sidebar
}

// NewProgressModel creates a new progress board starting at levelID (or
// the first level when empty or unknown).
func NewProgressModel(opts Options, levelID string) ProgressModel {
	h := help.New()
	h.ShowAll = false

	m := ProgressModel{
		levels:      opts.Env.Pack.Levels(),
		opts:        opts,
		keys:        DefaultProgressKeyMap(),
		help:        h,
		width:       opts.Config.ScreenW,
		height:      opts.Config.ScreenH,
		showSidebar: opts.Config.ScreenW >= minWidthForSidebar,
	}
	if i := opts.Env.Pack.IndexOf(levelID); i >= 0 {
		m.cursor = i
	}

	m.table = m.createTable()
	m.loadDone()
	if len(m.levels) > 0 {
		m.loadRuns()
	}

	return m
}

// createTable creates a new table with appropriate columns.
func (m *ProgressModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Player", Width: 12},
		{Title: "Moves", Width: 6},
		{Title: "Pushes", Width: 6},
		{Title: "Date", Width: 12},
	}

	// Calculate available width for table
	tableWidth := m.width - 4 // Margins
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3 // Sidebar + border + gap
	}

	// Give spare width to the player column
	if spare := tableWidth - 51; spare > 0 {
		columns[1].Width += min(spare, 12)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-10)), // Leave room for header, stats, help
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(m.opts.Theme.Border).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(m.opts.Theme.SelectedFg).
		Background(m.opts.Theme.SelectedBg).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadDone loads the player's solved set.
func (m *ProgressModel) loadDone() {
	m.done = nil
	if m.opts.Store == nil {
		return
	}
	done, err := m.opts.Store.CompletedLevels(m.opts.player())
	if err != nil {
		m.opts.logger().Warn("could not load progress", "err", err)
		return
	}
	m.done = done
}

// loadRuns loads best runs and stats for the highlighted level.
func (m *ProgressModel) loadRuns() {
	m.runs, m.stats = nil, nil
	if m.opts.Store != nil {
		id := m.levels[m.cursor].ID
		if runs, err := m.opts.Store.BestRuns(id, maxRuns); err == nil {
			m.runs = runs
		}
		if stats, err := m.opts.Store.LevelStats(id); err == nil {
			m.stats = stats
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current runs.
func (m *ProgressModel) updateTableRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			r.Player,
			fmt.Sprintf("%d", r.Moves),
			fmt.Sprintf("%d", r.Pushes),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)

	// Reset cursor to top
	m.table.GotoTop()
}

// Init initializes the progress model.
func (m ProgressModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the progress board.
func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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

		case key.Matches(msg, m.keys.NextLevel):
			if len(m.levels) > 0 {
				m.cursor = (m.cursor + 1) % len(m.levels)
				m.loadRuns()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevLevel):
			if len(m.levels) > 0 {
				m.cursor--
				if m.cursor < 0 {
					m.cursor = len(m.levels) - 1
				}
				m.loadRuns()
			}
			return m, nil

		case key.Matches(msg, m.keys.Clear):
			if m.opts.Store != nil && len(m.levels) > 0 {
				id := m.levels[m.cursor].ID
				if _, err := m.opts.Store.ClearProgress(m.opts.player(), id); err != nil {
					m.opts.logger().Error("could not clear progress", "level", id, "err", err)
				}
				m.loadDone()
				m.loadRuns()
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
		m.opts.Config.ScreenW = msg.Width
		m.opts.Config.ScreenH = msg.Height
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

// View renders the progress board.
func (m ProgressModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	theme := m.opts.Theme
	var b strings.Builder

	title := "PROGRESS"
	if len(m.levels) > 0 {
		title = fmt.Sprintf("PROGRESS - %s", m.levels[m.cursor].Name)
	}
	b.WriteString(centerText(theme.Title.Render(title), m.width, lenVisible(title)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	// Help bar
	b.WriteString("\n")
	b.WriteString(theme.Help.Render(m.help.View(m.keys)))

	return b.String()
}

// renderWideLayout renders the board with a sidebar for level selection.
func (m ProgressModel) renderWideLayout() string {
	theme := m.opts.Theme
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString(fmt.Sprintf("Levels (%d/%d)\n", len(m.done), len(m.levels)))
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	// Show a window of levels around the cursor
	rows := max(1, m.height-8)
	start := max(0, min(m.cursor-rows/2, len(m.levels)-rows))
	end := min(len(m.levels), start+rows)

	for i := start; i < end; i++ {
		lvl := m.levels[i]
		cursor := "  "
		style := theme.ItemNormal
		if i == m.cursor {
			cursor = "> "
			style = theme.ItemActive
		}
		mark := "  "
		if m.done[lvl.ID] {
			mark = "✓ "
		}

		name := lvl.Name
		maxLen := sidebarWidth - 8
		if r := []rune(name); len(r) > maxLen {
			name = string(r[:maxLen-1]) + "."
		}
		sidebar.WriteString(style.Render(cursor + mark + name))
		sidebar.WriteString("\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	right := lipgloss.JoinVertical(lipgloss.Left, m.renderStats(), tableStyle.Render(m.renderTableContent()))

	return lipgloss.JoinHorizontal(lipgloss.Top, sidebarStyle.Render(sidebar.String()), "  ", right)
}

// renderNarrowLayout renders the current level name above the table.
func (m ProgressModel) renderNarrowLayout() string {
	var b strings.Builder

	if len(m.levels) > 0 {
		lvl := m.levels[m.cursor]
		mark := ""
		if m.done[lvl.ID] {
			mark = " ✓"
		}
		tab := fmt.Sprintf("< %s%s >", lvl.Name, mark)
		b.WriteString(centerText(tab, m.width, lenVisible(tab)))
		b.WriteString("\n")
	}
	b.WriteString(m.renderStats())
	b.WriteString("\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.opts.Theme.Border).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))

	return b.String()
}

// renderStats renders the aggregate line for the level.
func (m ProgressModel) renderStats() string {
	if m.stats == nil || m.stats.Solves == 0 {
		return m.opts.Theme.Description.Render("Not solved yet")
	}
	s := m.stats
	return m.opts.Theme.Description.Render(fmt.Sprintf(
		"%d solves by %d players  |  best %d moves / %d pushes  |  avg %.1f moves",
		s.Solves, s.Players, s.BestMoves, s.BestPushes, s.AvgMoves))
}

// renderTableContent renders the table or empty message.
func (m ProgressModel) renderTableContent() string {
	if len(m.runs) == 0 {
		return m.opts.Theme.EmptyMessage.Render("No runs recorded yet.\nSolve this level to get on the board!")
	}

	return m.table.View()
}

// Runs returns the runs shown for the highlighted level.
func (m ProgressModel) Runs() []storage.Completion {
	return m.runs
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ProgressModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ProgressModel) IsQuitting() bool {
	return m.quitting
}

// RunProgress runs the progress board.
// Returns true if user wants to go back to menu, false if quitting.
func RunProgress(opts Options, levelID string) (goBack bool, err error) {
	model := NewProgressModel(opts, levelID)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ProgressModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
