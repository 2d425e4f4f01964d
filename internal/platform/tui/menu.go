package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-sokoban/internal/core"
)

// menuChrome is the number of lines the menu uses around the level list.
const menuChrome = 9

// MenuItem represents a selectable level in the menu.
type MenuItem struct {
	LevelID   string
	Name      string
	Author    string
	Done      bool
	BestMoves int // 0 when unsolved
}

// MenuModel is the Bubble Tea model for the level select screen.
type MenuModel struct {
	items        []MenuItem
	cursor       int
	offset       int // first visible item
	width        int
	height       int
	opts         Options
	keyMapper    *KeyMapper
	quitting     bool
	selected     *MenuItem // Set when user selects a level
	openProgress bool      // True if user pressed Tab for the progress board
}

// NewMenuModel creates a new menu model. The cursor starts on the first
// unsolved level.
func NewMenuModel(opts Options) MenuModel {
	logger := opts.logger()

	var done map[string]bool
	if opts.Store != nil {
		var err error
		if done, err = opts.Store.CompletedLevels(opts.player()); err != nil {
			logger.Warn("could not load progress", "err", err)
		}
	}

	lvls := opts.Env.Pack.Levels()
	items := make([]MenuItem, 0, len(lvls))
	for _, lvl := range lvls {
		item := MenuItem{
			LevelID: lvl.ID,
			Name:    lvl.Name,
			Author:  lvl.Author,
			Done:    done[lvl.ID],
		}
		if item.Done {
			if best, err := opts.Store.Best(opts.player(), lvl.ID); err == nil && best != nil {
				item.BestMoves = best.Moves
			}
		}
		items = append(items, item)
	}

	m := MenuModel{
		items:     items,
		width:     opts.Config.ScreenW,
		height:    opts.Config.ScreenH,
		opts:      opts,
		keyMapper: NewKeyMapper(),
	}
	for i, item := range items {
		if !item.Done {
			m.cursor = i
			break
		}
	}
	m.scrollToCursor()
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.opts.Config.ScreenW = msg.Width
		m.opts.Config.ScreenH = msg.Height
		m.scrollToCursor()
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionPageUp:
		m.cursor = core.Max(0, m.cursor-m.visibleRows())

	case MenuActionPageDown:
		m.cursor = core.Min(len(m.items)-1, m.cursor+m.visibleRows())

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit // Exit menu to start the level
		}

	case MenuActionProgress:
		m.openProgress = true
		return m, tea.Quit
	}

	m.scrollToCursor()
	return m, nil
}

// visibleRows returns how many level lines fit on screen.
func (m MenuModel) visibleRows() int {
	return core.Max(1, m.height-menuChrome)
}

// scrollToCursor keeps the cursor inside the visible window.
func (m *MenuModel) scrollToCursor() {
	rows := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	m.offset = core.Clamp(m.offset, 0, core.Max(0, len(m.items)-rows))
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	theme := m.opts.Theme
	var b strings.Builder

	solved := 0
	for _, item := range m.items {
		if item.Done {
			solved++
		}
	}

	b.WriteString("\n")
	b.WriteString(centerText(theme.Title.Render("S O K O B A N"), m.width, lenVisible("S O K O B A N")))
	b.WriteString("\n\n")
	subtitle := fmt.Sprintf("Select a level  (%d/%d solved)", solved, len(m.items))
	b.WriteString(centerText(theme.Subtitle.Render(subtitle), m.width, lenVisible(subtitle)))
	b.WriteString("\n\n")

	end := core.Min(len(m.items), m.offset+m.visibleRows())
	for i := m.offset; i < end; i++ {
		item := m.items[i]

		cursor := "  "
		style := theme.ItemNormal
		if i == m.cursor {
			cursor = "> "
			style = theme.ItemActive
		}

		mark := "  "
		if item.Done {
			mark = theme.ItemDone.Render("✓ ")
		}

		best := ""
		if item.BestMoves > 0 {
			best = fmt.Sprintf("  best %d", item.BestMoves)
		}

		plain := fmt.Sprintf("%s%s%-24s%s", cursor, "  ", item.Name, best)
		line := style.Render(cursor) + mark + style.Render(fmt.Sprintf("%-24s", item.Name)) + theme.Description.Render(best)
		b.WriteString(centerText(line, m.width, lenVisible(plain)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if len(m.items) > 0 {
		cur := m.items[m.cursor]
		desc := cur.LevelID
		if cur.Author != "" {
			desc = fmt.Sprintf("%s by %s", cur.LevelID, cur.Author)
		}
		b.WriteString(centerText(theme.Description.Render(desc), m.width, lenVisible(desc)))
	}
	b.WriteString("\n\n")

	controls := "Up/Down: Navigate  |  Enter: Play  |  Tab: Progress  |  Q: Quit"
	b.WriteString(centerText(theme.Help.Render(controls), m.width, lenVisible(controls)))
	b.WriteString("\n")

	return b.String()
}

// focus moves the cursor to levelID when it is listed.
func (m *MenuModel) focus(levelID string) {
	for i, item := range m.items {
		if item.LevelID == levelID {
			m.cursor = i
			break
		}
	}
	m.scrollToCursor()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// Cursor returns the highlighted item index.
func (m MenuModel) Cursor() int {
	return m.cursor
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsProgress returns true if user requested the progress board.
func (m MenuModel) WantsProgress() bool {
	return m.openProgress
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.opts.Config
}

// lenVisible returns the display width of plain text.
func lenVisible(s string) int {
	return len([]rune(s))
}

// centerText pads styled text so that its visible part of length n is
// centered within width.
func centerText(text string, width, n int) string {
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	LevelID       string
	Config        core.RuntimeConfig
	WantsProgress bool
	Quit          bool
}

// RunMenu runs the level select screen and returns the selection result.
func RunMenu(opts Options) (MenuResult, error) {
	model := NewMenuModel(opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: opts.Config}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: opts.Config, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config()}

	switch {
	case m.WantsProgress():
		result.WantsProgress = true
	case m.Selected() != nil:
		result.LevelID = m.Selected().LevelID
	default:
		result.Quit = true
	}

	return result, nil
}
