package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/herodex/internal/domain"
	"github.com/mmcdole/herodex/internal/marvel"
	"github.com/mmcdole/herodex/internal/tui/styles"
	"github.com/muesli/reflow/wordwrap"
)

const (
	detailMaxWidth = 72
	noDescription  = "No description available for this hero."
)

// Detail shows every field of one hero in a scrollable modal
type Detail struct {
	visible  bool
	entry    domain.Entry
	viewport viewport.Model
	width    int
}

// NewDetail creates a hidden detail view
func NewDetail() Detail {
	return Detail{viewport: viewport.New(detailMaxWidth, 10)}
}

// Show displays entry sized to fit the terminal
func (d *Detail) Show(e domain.Entry, termWidth, termHeight int) {
	d.visible = true
	d.entry = e
	d.width = min(detailMaxWidth, max(20, termWidth-8))
	d.viewport.Width = d.width
	d.viewport.Height = max(5, termHeight-10)
	d.viewport.SetContent(RenderDetailBody(e, d.width))
	d.viewport.GotoTop()
}

// Hide dismisses the view
func (d *Detail) Hide() {
	d.visible = false
	d.entry = nil
}

// IsVisible returns whether the view is shown
func (d Detail) IsVisible() bool {
	return d.visible
}

// Entry returns the hero on display
func (d Detail) Entry() domain.Entry {
	return d.entry
}

// ImageURL returns the large portrait of the hero on display, if any
func (d Detail) ImageURL() (string, bool) {
	if d.entry == nil {
		return "", false
	}
	return marvel.DisplayImageURL(d.entry, marvel.PortraitIncredible)
}

// Update scrolls the body
func (d Detail) Update(msg tea.Msg) (Detail, tea.Cmd) {
	var cmd tea.Cmd
	d.viewport, cmd = d.viewport.Update(msg)
	return d, cmd
}

// View renders the detail modal
func (d Detail) View() string {
	if !d.visible || d.entry == nil {
		return ""
	}

	title := styles.TitleStyle.Render(d.entry.GetName())
	if d.entry.IsLocal() {
		title += " " + styles.CustomBadgeStyle.Render("Custom")
	} else {
		title += " " + styles.BadgeStyle.Render("Marvel")
	}

	hints := styles.HelpKeyStyle.Render("o") + styles.HelpDescStyle.Render(" open image  ") +
		styles.HelpKeyStyle.Render("y") + styles.HelpDescStyle.Render(" copy image URL  ") +
		styles.HelpKeyStyle.Render("e") + styles.HelpDescStyle.Render(" edit/copy  ") +
		styles.HelpKeyStyle.Render("esc") + styles.HelpDescStyle.Render(" close")

	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.ModalTitleStyle.Render(title),
		d.viewport.View(),
		"",
		hints,
	)
	return styles.ModalStyle.Render(content)
}

// RenderDetailBody renders the scrollable part of the detail view
func RenderDetailBody(e domain.Entry, width int) string {
	f := e.GetFields()

	desc := strings.TrimSpace(f.Description)
	if desc == "" {
		desc = noDescription
	}

	kind := "Marvel hero"
	if e.IsLocal() {
		kind = "Custom hero"
	}

	image, ok := marvel.DisplayImageURL(e, marvel.PortraitIncredible)
	if !ok {
		image = styles.DimStyle.Render("no image")
	}

	var b strings.Builder
	b.WriteString(wordwrap.String(desc, width))
	b.WriteString("\n\n")
	b.WriteString(RenderCounters(f))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%s %s\n", styles.SubtitleStyle.Render("ID:"), e.GetID())
	fmt.Fprintf(&b, "%s %s\n", styles.SubtitleStyle.Render("Type:"), kind)
	if !e.IsLocal() {
		fmt.Fprintf(&b, "%s %s\n", styles.SubtitleStyle.Render("Source:"), "Marvel Comics API")
	}
	fmt.Fprintf(&b, "%s %s", styles.SubtitleStyle.Render("Image:"), wordwrap.String(image, width))
	return b.String()
}
