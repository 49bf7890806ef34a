package components

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/herodex/internal/form"
	"github.com/mmcdole/herodex/internal/tui/styles"
)

// formField describes one input of the hero form
type formField struct {
	label       string
	errKey      string
	placeholder string
	numeric     bool
}

var formFields = []formField{
	{label: "Name", errKey: form.FieldName, placeholder: "Spider-Man"},
	{label: "Description", errKey: form.FieldDescription, placeholder: "Friendly neighborhood hero"},
	{label: "Image URL", errKey: form.FieldImage, placeholder: "https://example.com/image"},
	{label: "Extension", errKey: "extension", placeholder: form.DefaultExtension},
	{label: "Comics", errKey: form.FieldComics, placeholder: "0", numeric: true},
	{label: "Series", errKey: form.FieldSeries, placeholder: "0", numeric: true},
	{label: "Stories", errKey: form.FieldStories, placeholder: "0", numeric: true},
}

const (
	fieldName = iota
	fieldDescription
	fieldImage
	fieldExtension
	fieldComics
	fieldSeries
	fieldStories
)

const formWidth = 52

// FormModal edits a hero's fields on top of a form.Form
type FormModal struct {
	visible bool
	title   string
	form    *form.Form
	inputs  []textinput.Model
	focus   int
	keys    FormKeyMap
}

// NewFormModal creates a hidden form modal
func NewFormModal() FormModal {
	inputs := make([]textinput.Model, len(formFields))
	for i, f := range formFields {
		ti := textinput.New()
		ti.Placeholder = f.placeholder
		ti.Prompt = ""
		ti.Width = formWidth - 4
		ti.CharLimit = 512
		ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
		ti.PlaceholderStyle = styles.DimStyle
		inputs[i] = ti
	}
	return FormModal{inputs: inputs, keys: DefaultFormKeyMap()}
}

// Show opens the modal on f, copying its values into the inputs
func (m *FormModal) Show(title string, f *form.Form) tea.Cmd {
	m.visible = true
	m.title = title
	m.form = f

	v := f.Values
	m.inputs[fieldName].SetValue(v.Name)
	m.inputs[fieldDescription].SetValue(v.Description)
	m.inputs[fieldImage].SetValue(v.ImageURL)
	m.inputs[fieldExtension].SetValue(v.Extension)
	m.inputs[fieldComics].SetValue(strconv.Itoa(v.Comics))
	m.inputs[fieldSeries].SetValue(strconv.Itoa(v.Series))
	m.inputs[fieldStories].SetValue(strconv.Itoa(v.Stories))
	for i := range m.inputs {
		m.inputs[i].CursorEnd()
	}

	return m.setFocus(0)
}

// Hide dismisses the modal
func (m *FormModal) Hide() {
	m.visible = false
	m.form = nil
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
}

// IsVisible returns whether the modal is shown
func (m FormModal) IsVisible() bool {
	return m.visible
}

// Form returns the form being edited
func (m FormModal) Form() *form.Form {
	return m.form
}

func (m *FormModal) setFocus(i int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = (i + len(m.inputs)) % len(m.inputs)
	return m.inputs[m.focus].Focus()
}

// sync copies the inputs back into the form values
func (m *FormModal) sync() {
	if m.form == nil {
		return
	}
	m.form.Values = form.Values{
		Name:        m.inputs[fieldName].Value(),
		Description: m.inputs[fieldDescription].Value(),
		ImageURL:    m.inputs[fieldImage].Value(),
		Extension:   m.inputs[fieldExtension].Value(),
		Comics:      form.ParseCount(m.inputs[fieldComics].Value()),
		Series:      form.ParseCount(m.inputs[fieldSeries].Value()),
		Stories:     form.ParseCount(m.inputs[fieldStories].Value()),
	}
}

// Update handles input events, returns (modal, cmd, submitted, cancelled)
func (m FormModal) Update(msg tea.Msg) (FormModal, tea.Cmd, bool, bool) {
	if !m.visible || m.form == nil {
		return m, nil, false, false
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if m.form.Submitting {
			return m, nil, false, false
		}
		switch {
		case key.Matches(keyMsg, m.keys.Cancel):
			m.Hide()
			return m, nil, false, true
		case key.Matches(keyMsg, m.keys.Submit):
			m.sync()
			return m, nil, true, false
		case keyMsg.String() == "enter":
			if m.focus == len(m.inputs)-1 {
				m.sync()
				return m, nil, true, false
			}
			return m, m.setFocus(m.focus + 1), false, false
		case key.Matches(keyMsg, m.keys.Next):
			return m, m.setFocus(m.focus + 1), false, false
		case key.Matches(keyMsg, m.keys.Prev):
			return m, m.setFocus(m.focus - 1), false, false
		}

		before := m.inputs[m.focus].Value()
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		if m.inputs[m.focus].Value() != before {
			m.form.ClearError(formFields[m.focus].errKey)
			m.sync()
		}
		return m, cmd, false, false
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd, false, false
}

// View renders the form modal
func (m FormModal) View() string {
	if !m.visible || m.form == nil {
		return ""
	}

	rows := []string{styles.ModalTitleStyle.Render(m.title)}
	for i, f := range formFields {
		label := styles.SubtitleStyle.Render(f.label)
		if i == m.focus {
			label = styles.AccentStyle.Render("› " + f.label)
		}

		box := styles.CardStyle.Width(formWidth - 2)
		if i == m.focus {
			box = styles.CardSelectedStyle.Width(formWidth - 2)
		}
		errMsg, hasErr := m.form.Errors[f.errKey]
		if hasErr {
			box = box.BorderForeground(styles.Red)
		}

		rows = append(rows, label, box.Render(m.inputs[i].View()))
		if hasErr {
			rows = append(rows, styles.ErrorStyle.Render(errMsg))
		}
	}

	footer := styles.HelpKeyStyle.Render("tab") + styles.HelpDescStyle.Render(" next  ") +
		styles.HelpKeyStyle.Render("ctrl+s") + styles.HelpDescStyle.Render(" save  ") +
		styles.HelpKeyStyle.Render("esc") + styles.HelpDescStyle.Render(" cancel")
	if m.form.Submitting {
		footer = styles.DimStyle.Render("Saving...")
	}
	rows = append(rows, "", footer)

	return styles.ModalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
