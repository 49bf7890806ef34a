package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/herodex/internal/domain"
	"github.com/mmcdole/herodex/internal/search"
	"github.com/mmcdole/herodex/internal/tui/styles"
)

// Layout constants for the card grid
const (
	// CardWidth is the outer width of one card including border
	CardWidth = 32

	// CardHeight is the outer height of one card including border
	CardHeight = 5

	// Border adds 1 char on each side, padding another 1 horizontally
	cardChromeWidth = 4

	// Filter bar line when active
	filterLines = 1
)

// Grid renders heroes as a scrollable grid of cards with an optional
// fuzzy filter over the loaded entries.
type Grid struct {
	entries []domain.Entry

	// Selection
	cursor    int
	offsetRow int

	// Dimensions
	width   int
	height  int
	columns int
	rows    int

	// Filter state
	filterActive bool
	filterInput  textinput.Model
	results      []search.Result // nil when no filter query

	keys GridKeyMap
}

// NewGrid creates a new grid component
func NewGrid() Grid {
	ti := textinput.New()
	ti.Placeholder = "type to filter loaded heroes..."
	ti.Prompt = "filter: "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	return Grid{
		filterInput: ti,
		columns:     1,
		rows:        1,
		keys:        DefaultGridKeyMap(),
	}
}

// SetEntries replaces the grid content, keeping the cursor in range
func (g *Grid) SetEntries(entries []domain.Entry) {
	g.entries = entries
	if g.filterActive {
		g.applyFilter()
	}
	g.SetCursor(g.cursor)
}

// SetSize updates the component dimensions
func (g *Grid) SetSize(width, height int) {
	g.width = width
	g.height = height
	g.recalcLayout()
}

func (g *Grid) recalcLayout() {
	g.columns = g.width / CardWidth
	if g.columns < 1 {
		g.columns = 1
	}
	h := g.height
	if g.filterActive {
		h -= filterLines
	}
	g.rows = h / CardHeight
	if g.rows < 1 {
		g.rows = 1
	}
	g.ensureVisible()
}

// Len returns the number of visible entries (accounting for filter)
func (g Grid) Len() int {
	if g.results != nil {
		return len(g.results)
	}
	return len(g.entries)
}

// Cursor returns the current cursor position
func (g Grid) Cursor() int {
	return g.cursor
}

// SetCursor moves the cursor, clamped to the visible entries
func (g *Grid) SetCursor(pos int) {
	last := g.Len() - 1
	if last < 0 {
		g.cursor = 0
		g.offsetRow = 0
		return
	}
	g.cursor = max(0, min(pos, last))
	g.ensureVisible()
}

// Selected returns the entry under the cursor, or nil
func (g Grid) Selected() domain.Entry {
	if g.cursor >= g.Len() {
		return nil
	}
	if g.results != nil {
		return g.results[g.cursor].Entry
	}
	return g.entries[g.cursor]
}

func (g *Grid) ensureVisible() {
	row := g.cursor / g.columns
	if row < g.offsetRow {
		g.offsetRow = row
	}
	if row >= g.offsetRow+g.rows {
		g.offsetRow = row - g.rows + 1
	}
}

// ToggleFilter activates the filter input
func (g *Grid) ToggleFilter() tea.Cmd {
	g.filterActive = true
	g.recalcLayout()
	return g.filterInput.Focus()
}

// IsFiltering returns true if a filter is shown
func (g Grid) IsFiltering() bool {
	return g.filterActive
}

// IsFilterTyping returns true if the filter input has focus
func (g Grid) IsFilterTyping() bool {
	return g.filterActive && g.filterInput.Focused()
}

// ClearFilter deactivates the filter and shows all entries
func (g *Grid) ClearFilter() {
	g.filterActive = false
	g.results = nil
	g.filterInput.SetValue("")
	g.filterInput.Blur()
	g.recalcLayout()
	g.SetCursor(g.cursor)
}

func (g *Grid) applyFilter() {
	query := g.filterInput.Value()
	if strings.TrimSpace(query) == "" {
		g.results = nil
		return
	}
	g.results = search.Filter(query, g.entries)
	if g.results == nil {
		g.results = []search.Result{}
	}
}

// Update handles navigation and filter typing
func (g Grid) Update(msg tea.Msg) (Grid, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return g, nil
	}

	if g.IsFilterTyping() {
		switch {
		case key.Matches(keyMsg, g.keys.Escape):
			g.ClearFilter()
			return g, nil
		case key.Matches(keyMsg, g.keys.Enter):
			g.filterInput.Blur()
			return g, nil
		}
		var cmd tea.Cmd
		g.filterInput, cmd = g.filterInput.Update(msg)
		g.applyFilter()
		g.SetCursor(0)
		return g, cmd
	}

	page := g.columns * g.rows
	switch {
	case key.Matches(keyMsg, g.keys.Up):
		if g.cursor-g.columns >= 0 {
			g.SetCursor(g.cursor - g.columns)
		}
	case key.Matches(keyMsg, g.keys.Down):
		if g.cursor+g.columns < g.Len() {
			g.SetCursor(g.cursor + g.columns)
		} else {
			g.SetCursor(g.Len() - 1)
		}
	case key.Matches(keyMsg, g.keys.Left):
		g.SetCursor(g.cursor - 1)
	case key.Matches(keyMsg, g.keys.Right):
		g.SetCursor(g.cursor + 1)
	case key.Matches(keyMsg, g.keys.Home):
		g.SetCursor(0)
	case key.Matches(keyMsg, g.keys.End):
		g.SetCursor(g.Len() - 1)
	case key.Matches(keyMsg, g.keys.PageUp):
		g.SetCursor(g.cursor - page)
	case key.Matches(keyMsg, g.keys.PageDown):
		g.SetCursor(g.cursor + page)
	}
	return g, nil
}

// View renders the grid
func (g Grid) View() string {
	var lines []string

	if g.filterActive {
		status := styles.DimStyle.Render(fmt.Sprintf("  %d of %d", g.Len(), len(g.entries)))
		lines = append(lines, g.filterInput.View()+status)
	}

	if g.Len() == 0 {
		if g.filterActive {
			lines = append(lines, styles.DimStyle.Render("No loaded hero matches the filter"))
		}
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	start := g.offsetRow * g.columns
	end := min(start+g.rows*g.columns, g.Len())

	var row []string
	for i := start; i < end; i++ {
		row = append(row, g.renderCard(i))
		if len(row) == g.columns || i == end-1 {
			lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (g Grid) renderCard(i int) string {
	var e domain.Entry
	var matched []int
	if g.results != nil {
		e = g.results[i].Entry
		matched = g.results[i].MatchedIndexes
	} else {
		e = g.entries[i]
	}

	inner := CardWidth - cardChromeWidth
	f := e.GetFields()

	badge := ""
	if e.IsLocal() {
		badge = styles.CustomBadgeStyle.Render("Custom")
	}
	nameWidth := inner - lipgloss.Width(badge)
	if badge != "" {
		nameWidth--
	}
	name := styles.Truncate(e.GetName(), nameWidth)
	title := highlight(name, matched)
	if badge != "" {
		title = styles.Pad(title, nameWidth) + " " + badge
	}

	desc := f.Description
	if strings.TrimSpace(desc) == "" {
		desc = "No description available."
	}
	desc = styles.DimStyle.Render(styles.Truncate(strings.Join(strings.Fields(desc), " "), inner))

	counters := RenderCounters(f)

	style := styles.CardStyle
	if i == g.cursor {
		style = styles.CardSelectedStyle
	}
	return style.Width(CardWidth - 2).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, desc, counters),
	)
}

// RenderCounters renders the comics/series/stories availability line
func RenderCounters(f domain.HeroFields) string {
	return fmt.Sprintf("%s comics  %s series  %s stories",
		styles.ComicsStyle.Render(fmt.Sprint(f.Comics.Available)),
		styles.SeriesStyle.Render(fmt.Sprint(f.Series.Available)),
		styles.StoriesStyle.Render(fmt.Sprint(f.Stories.Available)),
	)
}

// highlight renders the matched byte offsets of s in the accent color
func highlight(s string, matched []int) string {
	if len(matched) == 0 {
		return styles.TitleStyle.Render(s)
	}
	set := make(map[int]bool, len(matched))
	for _, idx := range matched {
		set[idx] = true
	}

	var b strings.Builder
	for i, r := range s {
		if set[i] {
			b.WriteString(styles.MatchHighlightStyle.Render(string(r)))
		} else {
			b.WriteString(styles.TitleStyle.Render(string(r)))
		}
	}
	return b.String()
}
