package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/herodex/internal/tui/styles"
	"github.com/muesli/reflow/wordwrap"
)

// ConfirmResult is the outcome of a key press in the confirmation modal
type ConfirmResult int

const (
	ConfirmPending ConfirmResult = iota
	ConfirmYes
	ConfirmNo
)

// ConfirmModal asks the user to confirm deleting a hero
type ConfirmModal struct {
	visible bool
	id      string
	name    string
	keys    ConfirmKeyMap
}

// NewConfirmModal creates a hidden confirmation modal
func NewConfirmModal() ConfirmModal {
	return ConfirmModal{keys: DefaultConfirmKeyMap()}
}

// Show asks about deleting the hero with the given id and name
func (m *ConfirmModal) Show(id, name string) {
	m.visible = true
	m.id = id
	m.name = name
}

// Hide dismisses the modal
func (m *ConfirmModal) Hide() {
	m.visible = false
}

// IsVisible returns whether the modal is shown
func (m ConfirmModal) IsVisible() bool {
	return m.visible
}

// Target returns the id and name of the hero being deleted
func (m ConfirmModal) Target() (string, string) {
	return m.id, m.name
}

// Update interprets a key press. The modal hides itself on either answer.
func (m ConfirmModal) Update(msg tea.Msg) (ConfirmModal, ConfirmResult) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !m.visible {
		return m, ConfirmPending
	}
	switch {
	case key.Matches(keyMsg, m.keys.Confirm):
		m.Hide()
		return m, ConfirmYes
	case key.Matches(keyMsg, m.keys.Deny):
		m.Hide()
		return m, ConfirmNo
	}
	return m, ConfirmPending
}

// View renders the modal
func (m ConfirmModal) View() string {
	if !m.visible {
		return ""
	}

	const width = 40
	body := wordwrap.String(fmt.Sprintf("Delete %q? This cannot be undone.", m.name), width)

	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.ModalTitleStyle.Render("Delete hero"),
		body,
		"",
		styles.HelpKeyStyle.Render("[Y]")+styles.HelpDescStyle.Render(" Yes      ")+
			styles.HelpKeyStyle.Render("[N]")+styles.HelpDescStyle.Render(" No"),
	)
	return styles.DangerModalStyle.Render(content)
}
