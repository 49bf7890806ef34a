package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/herodex/internal/tui/styles"
)

// SearchBar is the name-prefix search input above the grid
type SearchBar struct {
	input textinput.Model
}

// NewSearchBar creates an unfocused search bar
func NewSearchBar() SearchBar {
	ti := textinput.New()
	ti.Placeholder = "Search Marvel heroes..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle
	ti.CharLimit = 100
	return SearchBar{input: ti}
}

// Focus gives the input keyboard focus
func (s *SearchBar) Focus() tea.Cmd {
	return s.input.Focus()
}

// Blur removes keyboard focus
func (s *SearchBar) Blur() {
	s.input.Blur()
}

// Focused reports whether the input has focus
func (s SearchBar) Focused() bool {
	return s.input.Focused()
}

// Value returns the typed text
func (s SearchBar) Value() string {
	return s.input.Value()
}

// SetValue replaces the typed text
func (s *SearchBar) SetValue(v string) {
	s.input.SetValue(v)
}

// SetWidth sets the visible input width
func (s *SearchBar) SetWidth(w int) {
	s.input.Width = max(10, w-4)
}

// Update forwards input events
func (s SearchBar) Update(msg tea.Msg) (SearchBar, tea.Cmd) {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// View renders the search bar
func (s SearchBar) View() string {
	return s.input.View()
}
