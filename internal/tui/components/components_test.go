package components

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/herodex/internal/domain"
	"github.com/mmcdole/herodex/internal/form"
	"github.com/mmcdole/herodex/internal/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entries() []domain.Entry {
	return []domain.Entry{
		domain.Hero{ID: 1, HeroFields: domain.HeroFields{Name: "Spider-Man", Description: "Bitten"}},
		domain.Hero{ID: 2, HeroFields: domain.HeroFields{Name: "Iron Man"}},
		domain.Hero{ID: 3, HeroFields: domain.HeroFields{Name: "Thor"}},
		domain.CustomHero{ID: "custom-1", Custom: true, HeroFields: domain.HeroFields{
			Name:      "Spider-Gwen",
			Thumbnail: domain.Thumbnail{Path: "https://example.com/gwen", Extension: "png"},
		}},
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestGridNavigation(t *testing.T) {
	g := NewGrid()
	g.SetSize(2*CardWidth, 4*CardHeight)
	g.SetEntries(entries())

	require.Equal(t, 4, g.Len())
	assert.Equal(t, "1", g.Selected().GetID())

	g, _ = g.Update(runes("l"))
	assert.Equal(t, 1, g.Cursor())

	g, _ = g.Update(runes("j"))
	assert.Equal(t, 3, g.Cursor())
	assert.True(t, g.Selected().IsLocal())

	g, _ = g.Update(runes("g"))
	assert.Equal(t, 0, g.Cursor())

	g, _ = g.Update(runes("G"))
	assert.Equal(t, 3, g.Cursor())
}

func TestGridCursorClampedOnShrink(t *testing.T) {
	g := NewGrid()
	g.SetSize(CardWidth, 10*CardHeight)
	g.SetEntries(entries())
	g.SetCursor(3)

	g.SetEntries(entries()[:2])
	assert.Equal(t, 1, g.Cursor())

	g.SetEntries(nil)
	assert.Nil(t, g.Selected())
}

func TestGridFilter(t *testing.T) {
	g := NewGrid()
	g.SetSize(3*CardWidth, 4*CardHeight)
	g.SetEntries(entries())

	g.ToggleFilter()
	require.True(t, g.IsFilterTyping())

	g, _ = g.Update(runes("spi"))
	assert.Equal(t, 2, g.Len())
	for i := range g.Len() {
		g.SetCursor(i)
		assert.Contains(t, g.Selected().GetName(), "Spider")
	}
	assert.Contains(t, g.View(), "2 of 4")

	g, _ = g.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, g.IsFilterTyping())
	assert.True(t, g.IsFiltering())

	g.ClearFilter()
	assert.Equal(t, 4, g.Len())
}

func TestGridFilterNoMatch(t *testing.T) {
	g := NewGrid()
	g.SetSize(3*CardWidth, 4*CardHeight)
	g.SetEntries(entries())
	g.ToggleFilter()

	g, _ = g.Update(runes("zzz"))
	assert.Equal(t, 0, g.Len())
	assert.Nil(t, g.Selected())
	assert.Contains(t, g.View(), "No loaded hero matches the filter")
}

func TestGridViewShowsBadge(t *testing.T) {
	g := NewGrid()
	g.SetSize(4*CardWidth, 2*CardHeight)
	g.SetEntries(entries())

	view := g.View()
	assert.Contains(t, view, "Spider-Man")
	assert.Contains(t, view, "Custom")
	assert.Contains(t, view, "No description available.")
}

func TestRenderDetailBody(t *testing.T) {
	remote := RenderDetailBody(entries()[0], 60)
	assert.Contains(t, remote, "Bitten")
	assert.Contains(t, remote, "Marvel hero")
	assert.Contains(t, remote, "Marvel Comics API")
	assert.Contains(t, remote, "no image")

	local := RenderDetailBody(entries()[3], 60)
	assert.Contains(t, local, noDescription)
	assert.Contains(t, local, "Custom hero")
	assert.Contains(t, local, "https://example.com/gwen.png")
	assert.NotContains(t, local, "Marvel Comics API")
}

func TestDetailImageURL(t *testing.T) {
	d := NewDetail()
	_, ok := d.ImageURL()
	assert.False(t, ok)

	d.Show(entries()[3], 100, 40)
	url, ok := d.ImageURL()
	require.True(t, ok)
	assert.Equal(t, "https://example.com/gwen.png", url)

	d.Hide()
	assert.False(t, d.IsVisible())
	assert.Nil(t, d.Entry())
}

func TestDetailViewBadge(t *testing.T) {
	titleLine := func(view, name string) string {
		for _, line := range strings.Split(view, "\n") {
			if strings.Contains(line, name) {
				return line
			}
		}
		return ""
	}

	d := NewDetail()
	d.Show(entries()[0], 100, 40)
	title := titleLine(d.View(), "Spider-Man")
	assert.Contains(t, title, "Marvel")
	assert.NotContains(t, title, "Custom")

	d.Show(entries()[3], 100, 40)
	title = titleLine(d.View(), "Spider-Gwen")
	assert.Contains(t, title, "Custom")
	assert.NotContains(t, title, "Marvel")
}

func TestConfirmModal(t *testing.T) {
	m := NewConfirmModal()
	m.Show("custom-1", "Spider-Gwen")
	assert.Contains(t, m.View(), "Spider-Gwen")

	m, res := m.Update(runes("q"))
	assert.Equal(t, ConfirmPending, res)
	assert.True(t, m.IsVisible())

	m, res = m.Update(runes("y"))
	assert.Equal(t, ConfirmYes, res)
	assert.False(t, m.IsVisible())

	id, name := m.Target()
	assert.Equal(t, "custom-1", id)
	assert.Equal(t, "Spider-Gwen", name)

	m.Show("custom-1", "Spider-Gwen")
	_, res = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ConfirmNo, res)
}

func TestFormModalEditClearsError(t *testing.T) {
	f := form.New(nil)
	_, err := f.Begin()
	require.ErrorIs(t, err, form.ErrInvalid)
	require.Contains(t, f.Errors, form.FieldName)

	m := NewFormModal()
	m.Show("New hero", f)
	assert.Contains(t, m.View(), "Name is required")

	m, _, submitted, cancelled := m.Update(runes("Hulk"))
	assert.False(t, submitted)
	assert.False(t, cancelled)
	assert.Equal(t, "Hulk", f.Values.Name)
	assert.NotContains(t, f.Errors, form.FieldName)
	assert.Contains(t, f.Errors, form.FieldDescription)
}

func TestFormModalSubmitAndCancel(t *testing.T) {
	f := form.New(nil)
	m := NewFormModal()
	m.Show("New hero", f)

	// enter advances until the last field
	var submitted bool
	for range len(formFields) - 1 {
		m, _, submitted, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		assert.False(t, submitted)
	}
	m, _, submitted, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, submitted)

	m, _, _, cancelled := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, cancelled)
	assert.False(t, m.IsVisible())
}

func TestFormModalIgnoresKeysWhileSubmitting(t *testing.T) {
	f := form.New(nil)
	f.Submitting = true
	m := NewFormModal()
	m.Show("Edit hero", f)

	_, _, submitted, cancelled := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.False(t, submitted)
	assert.False(t, cancelled)
}

func TestRenderToasts(t *testing.T) {
	assert.Empty(t, RenderToasts(nil))

	out := RenderToasts([]notify.Notification{
		{ID: "a", Kind: notify.Success, Message: "Hero created"},
		{ID: "b", Kind: notify.Error, Message: "Failed to delete hero"},
	})
	assert.Contains(t, out, "Hero created")
	assert.Contains(t, out, "Failed to delete hero")
	assert.Contains(t, out, notify.Error.Title())
}

func TestSearchBar(t *testing.T) {
	s := NewSearchBar()
	s.Focus()
	assert.True(t, s.Focused())

	s, _ = s.Update(runes("hulk"))
	assert.Equal(t, "hulk", s.Value())

	s.SetValue("")
	s.Blur()
	assert.False(t, s.Focused())
	assert.Empty(t, s.Value())
}
