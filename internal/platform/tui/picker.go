package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-origami/internal/config"
	"github.com/vovakirdan/tui-origami/internal/core"
	"github.com/vovakirdan/tui-origami/internal/games/origami/levels"
	"github.com/vovakirdan/tui-origami/internal/storage"
)

// Game modes a picker selection can start.
const (
	ModeCampaign = "origami"
	ModeFree     = "free"
)

// PickerItem is one row of the puzzle list.
type PickerItem struct {
	ID    string
	Name  string
	Par   int // reference solution length, 0 if unknown
	Best  int // fewest folds on record, 0 if unsolved
	Stars int
}

// PickerSelection holds what the player chose.
type PickerSelection struct {
	Mode  string
	Level string // puzzle ID, empty in free mode
}

// PickerModel is the puzzle picker. The last row opens free folding.
type PickerModel struct {
	items        []PickerItem
	cursor       int
	width        int
	height       int
	keyMapper    *KeyMapper
	selection    *PickerSelection
	quitting     bool
	back         bool
	wantsRecords bool
	scrollOffset int
}

// NewPickerModel lists lvls with the records found in store, which may be nil.
func NewPickerModel(lvls []levels.Level, store *storage.Store, scoring config.ScoringConfig, width, height int) PickerModel {
	var stats map[string]*storage.PuzzleStats
	if store != nil {
		// Best-effort: a broken database only hides the records
		stats, _ = store.Stats()
	}

	items := make([]PickerItem, 0, len(lvls))
	for _, lvl := range lvls {
		item := PickerItem{ID: lvl.ID, Name: lvl.Name, Par: len(lvl.Solution)}
		if st, ok := stats[lvl.ID]; ok {
			item.Best = st.BestFolds
			item.Stars = scoring.Stars(st.BestFolds, item.Par)
		}
		items = append(items, item)
	}

	return PickerModel{
		items:     items,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the model.
func (m PickerModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateScroll()
		return m, nil
	}
	return m, nil
}

func (m PickerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		m.cursor = core.Clamp(m.cursor-1, 0, len(m.items))
		m.updateScroll()
	case MenuActionDown:
		// the row after the puzzles is free fold
		m.cursor = core.Clamp(m.cursor+1, 0, len(m.items))
		m.updateScroll()
	case MenuActionSelect:
		if m.cursor == len(m.items) {
			m.selection = &PickerSelection{Mode: ModeFree}
		} else {
			m.selection = &PickerSelection{Mode: ModeCampaign, Level: m.items[m.cursor].ID}
		}
		return m, tea.Quit
	case MenuActionRecords:
		m.wantsRecords = true
		return m, tea.Quit
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

// visibleItems is how many puzzle rows fit between header and footer.
func (m PickerModel) visibleItems() int {
	return max(m.height-10, 3)
}

// updateScroll adjusts scroll offset to keep cursor visible.
func (m *PickerModel) updateScroll() {
	visible := m.visibleItems()
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	} else if m.cursor >= m.scrollOffset+visible {
		m.scrollOffset = m.cursor - visible + 1
	}
}

// View renders the puzzle list.
func (m PickerModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(theme.MenuTitle.Render("O R I G A M I"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(theme.MenuDescription.Render("Pick a sheet to fold"), m.width))
	b.WriteString("\n\n")

	rows := len(m.items) + 1
	end := min(m.scrollOffset+m.visibleItems(), rows)

	if m.scrollOffset > 0 {
		b.WriteString(centerText(theme.MenuDescription.Render("... more above ..."), m.width))
		b.WriteString("\n")
	}

	for i := m.scrollOffset; i < end; i++ {
		cursor := "  "
		style := theme.MenuItemNormal
		if i < len(m.items) && m.items[i].Best > 0 {
			style = theme.MenuItemSolved
		}
		if i == m.cursor {
			cursor = "> "
			style = theme.MenuItemActive
		}

		var line string
		if i == len(m.items) {
			line = style.Render(cursor + "Free fold")
		} else {
			line = style.Render(cursor+m.items[i].label()) + " " + theme.Stars.Render(m.items[i].stars())
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	if end < rows {
		b.WriteString(centerText(theme.MenuDescription.Render("... more below ..."), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := theme.HelpBar.Render("Up/Down: Navigate  |  Enter: Fold  |  Tab: Records  |  Q: Quit")
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

func (it PickerItem) label() string {
	name := it.Name
	if name == "" {
		name = it.ID
	}
	if it.Best > 0 {
		return fmt.Sprintf("%-24s best %d", name, it.Best)
	}
	return fmt.Sprintf("%-24s", name)
}

func (it PickerItem) stars() string {
	if it.Best == 0 {
		return ""
	}
	return config.StarString(it.Stars)
}

// Selected returns the selection, or nil if still choosing.
func (m PickerModel) Selected() *PickerSelection {
	return m.selection
}

// IsQuitting returns true if user wants to quit.
func (m PickerModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m PickerModel) WantsBack() bool {
	return m.back
}

// WantsRecords returns true if user asked for the records screen.
func (m PickerModel) WantsRecords() bool {
	return m.wantsRecords
}

// centerText centers text within given width, ignoring ANSI styling.
func centerText(text string, width int) string {
	n := lipgloss.Width(text)
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}

// PickerResult holds the result of running the picker.
type PickerResult struct {
	Selection    *PickerSelection
	Config       core.RuntimeConfig
	WantsRecords bool
	Quit         bool
}

// RunPicker runs the puzzle picker and returns the choice.
func RunPicker(lvls []levels.Level, store *storage.Store, scoring config.ScoringConfig, cfg core.RuntimeConfig) (PickerResult, error) {
	p := tea.NewProgram(
		NewPickerModel(lvls, store, scoring, cfg.ScreenW, cfg.ScreenH),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return PickerResult{Config: cfg}, err
	}

	m, ok := finalModel.(PickerModel)
	if !ok {
		return PickerResult{Config: cfg, Quit: true}, nil
	}

	cfg.ScreenW, cfg.ScreenH = m.width, m.height
	result := PickerResult{Config: cfg, Selection: m.Selected(), WantsRecords: m.WantsRecords()}
	if m.IsQuitting() || m.WantsBack() || (result.Selection == nil && !result.WantsRecords) {
		result.Quit = true
	}
	return result, nil
}
