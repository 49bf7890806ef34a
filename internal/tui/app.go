package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/herodex/internal/catalog"
	"github.com/mmcdole/herodex/internal/domain"
	"github.com/mmcdole/herodex/internal/form"
	"github.com/mmcdole/herodex/internal/notify"
	"github.com/mmcdole/herodex/internal/tui/components"
	"github.com/mmcdole/herodex/internal/tui/styles"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateSearching
	StateDetail
	StateForm
	StateConfirmDelete
	StateHelp
)

// Vertical chrome: header, search bar, footer
const (
	headerLines = 1
	searchLines = 2
	footerLines = 1

	spinnerInterval = 100 * time.Millisecond
)

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	State ApplicationState
	Ready bool

	// Services
	Catalog *catalog.Service
	Opener  ImageOpener
	Toasts  *notify.Stack
	logger  *slog.Logger

	// UI Components
	Grid      components.Grid
	SearchBar components.SearchBar
	Detail    components.Detail
	FormModal components.FormModal
	Confirm   components.ConfirmModal

	// Latest catalog snapshot
	Snapshot catalog.State

	// Hero being edited, empty when creating
	editingID string

	// Dimensions
	Width  int
	Height int

	SpinnerFrame int
	spinning     bool
}

// NewModel creates a new application model
func NewModel(svc *catalog.Service, opener ImageOpener, toasts *notify.Stack, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}
	if toasts == nil {
		toasts = notify.NewStack(notify.DefaultDuration)
	}
	m := Model{
		State:     StateBrowsing,
		Catalog:   svc,
		Opener:    opener,
		Toasts:    toasts,
		logger:    logger,
		Grid:      components.NewGrid(),
		SearchBar: components.NewSearchBar(),
		Detail:    components.NewDetail(),
		FormModal: components.NewFormModal(),
		Confirm:   components.NewConfirmModal(),
		Snapshot:  svc.State(),
		spinning:  true,
	}
	// Init starts the first fetch
	m.Snapshot.Loading = true
	return m
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		InitializeCmd(m.Catalog),
		TickCmd(spinnerInterval),
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case TickMsg:
		m.SpinnerFrame++
		if m.Snapshot.Loading {
			return m, TickCmd(spinnerInterval)
		}
		m.spinning = false
		return m, nil

	case CatalogLoadedMsg:
		if errors.Is(msg.Err, catalog.ErrSuperseded) {
			// a newer request owns the state
			return m, nil
		}
		m.applyState(msg.State)
		return m, nil

	case HeroSavedMsg:
		return m.handleHeroSaved(msg)

	case HeroCopiedMsg:
		if msg.Err != nil {
			return m, m.notify(notify.Error, "Failed to copy hero. Please try again.")
		}
		m.applyState(m.Catalog.State())
		return m, m.notify(notify.Success, fmt.Sprintf("Copy of %q created!", msg.Source))

	case HeroDeletedMsg:
		if msg.Err != nil || !msg.Deleted {
			return m, m.notify(notify.Error, "Failed to delete hero. Please try again.")
		}
		if e := m.Detail.Entry(); m.Detail.IsVisible() && e != nil && e.GetID() == msg.ID {
			m.Detail.Hide()
			if m.State == StateDetail {
				m.State = StateBrowsing
			}
		}
		m.applyState(m.Catalog.State())
		return m, m.notify(notify.Success, fmt.Sprintf("Hero %q deleted!", msg.Name))

	case ImageOpenedMsg:
		if msg.Err != nil {
			return m, m.notify(notify.Warning, "Could not open the image viewer.")
		}
		return m, nil

	case ClipboardMsg:
		if msg.Err != nil {
			return m, m.notify(notify.Warning, "Could not access the clipboard.")
		}
		return m, m.notify(notify.Info, "Image URL copied to clipboard.")

	case ToastExpiredMsg:
		m.Toasts.Dismiss(msg.ID)
		m.Toasts.Expire(time.Now())
		return m, nil
	}

	// Forward everything else (cursor blink etc.) to the focused input
	var cmd tea.Cmd
	switch m.State {
	case StateSearching:
		m.SearchBar, cmd = m.SearchBar.Update(msg)
	case StateForm:
		m.FormModal, cmd, _, _ = m.FormModal.Update(msg)
	case StateDetail:
		m.Detail, cmd = m.Detail.Update(msg)
	default:
		if m.Grid.IsFilterTyping() {
			m.Grid, cmd = m.Grid.Update(msg)
		}
	}
	return m, cmd
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.State {
	case StateHelp:
		m.State = StateBrowsing
		return m, nil

	case StateConfirmDelete:
		var result components.ConfirmResult
		m.Confirm, result = m.Confirm.Update(msg)
		switch result {
		case components.ConfirmYes:
			m.State = m.returnState()
			id, name := m.Confirm.Target()
			return m, DeleteHeroCmd(m.Catalog, id, name)
		case components.ConfirmNo:
			m.State = m.returnState()
		}
		return m, nil

	case StateForm:
		var cmd tea.Cmd
		var submitted, cancelled bool
		m.FormModal, cmd, submitted, cancelled = m.FormModal.Update(msg)
		if cancelled {
			m.State = m.returnState()
			m.editingID = ""
			return m, nil
		}
		if submitted {
			return m.submitForm()
		}
		return m, cmd

	case StateSearching:
		switch msg.String() {
		case "enter":
			m.SearchBar.Blur()
			m.State = StateBrowsing
			return m.startFetch(SearchCmd(m.Catalog, strings.TrimSpace(m.SearchBar.Value())))
		case "esc":
			m.SearchBar.Blur()
			m.SearchBar.SetValue(m.Snapshot.SearchText)
			m.State = StateBrowsing
			return m, nil
		}
		var cmd tea.Cmd
		m.SearchBar, cmd = m.SearchBar.Update(msg)
		return m, cmd

	case StateDetail:
		return m.handleDetailKey(msg)
	}

	// Grid filter captures typing
	if m.Grid.IsFilterTyping() {
		var cmd tea.Cmd
		m.Grid, cmd = m.Grid.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.State = StateHelp
		return m, nil

	case key.Matches(msg, Keys.Escape):
		if m.Grid.IsFiltering() {
			m.Grid.ClearFilter()
			return m, nil
		}
		if m.Snapshot.SearchText != "" {
			m.SearchBar.SetValue("")
			return m.startFetch(SearchCmd(m.Catalog, ""))
		}
		return m, nil

	case key.Matches(msg, Keys.Search):
		m.State = StateSearching
		return m, m.SearchBar.Focus()

	case key.Matches(msg, Keys.Filter):
		cmd := m.Grid.ToggleFilter()
		return m, cmd

	case key.Matches(msg, Keys.Enter):
		if e := m.Grid.Selected(); e != nil {
			m.Detail.Show(e, m.Width, m.Height)
			m.State = StateDetail
		}
		return m, nil

	case key.Matches(msg, Keys.New):
		return m.openForm(nil)

	case key.Matches(msg, Keys.Edit):
		return m.editOrCopy(m.Grid.Selected())

	case key.Matches(msg, Keys.Delete):
		return m.confirmDelete(m.Grid.Selected())

	case key.Matches(msg, Keys.LoadMore):
		if !m.Snapshot.HasMore || m.Snapshot.Loading {
			return m, nil
		}
		return m.startFetch(LoadMoreCmd(m.Catalog))

	case key.Matches(msg, Keys.Refresh):
		return m.startFetch(RefreshCmd(m.Catalog))

	case key.Matches(msg, Keys.Reset):
		m.SearchBar.SetValue("")
		m.Grid.ClearFilter()
		return m.startFetch(ResetCmd(m.Catalog))

	case key.Matches(msg, Keys.Dismiss):
		if items := m.Toasts.Items(); len(items) > 0 {
			m.Toasts.Dismiss(items[len(items)-1].ID)
		}
		return m, nil

	case key.Matches(msg, Keys.DismissAll):
		m.Toasts.DismissAll()
		return m, nil
	}

	var cmd tea.Cmd
	m.Grid, cmd = m.Grid.Update(msg)
	return m, cmd
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Escape, Keys.Quit, Keys.Enter):
		m.Detail.Hide()
		m.State = StateBrowsing
		return m, nil

	case key.Matches(msg, Keys.OpenImage):
		url, ok := m.Detail.ImageURL()
		if !ok {
			return m, m.notify(notify.Info, "This hero has no image to open.")
		}
		if m.Opener == nil {
			return m, m.notify(notify.Warning, "No image viewer configured.")
		}
		return m, OpenImageCmd(m.Opener, url)

	case key.Matches(msg, Keys.CopyURL):
		url, ok := m.Detail.ImageURL()
		if !ok {
			return m, m.notify(notify.Info, "This hero has no image URL.")
		}
		return m, CopyToClipboardCmd(url)

	case key.Matches(msg, Keys.Edit):
		return m.editOrCopy(m.Detail.Entry())

	case key.Matches(msg, Keys.Delete):
		return m.confirmDelete(m.Detail.Entry())
	}

	var cmd tea.Cmd
	m.Detail, cmd = m.Detail.Update(msg)
	return m, cmd
}

// returnState is where modals go back to: the detail view when it is open
func (m Model) returnState() ApplicationState {
	if m.Detail.IsVisible() {
		return StateDetail
	}
	return StateBrowsing
}

// editOrCopy edits a local hero or copies a remote one
func (m Model) editOrCopy(e domain.Entry) (tea.Model, tea.Cmd) {
	switch h := e.(type) {
	case domain.CustomHero:
		return m.openForm(h)
	case domain.Hero:
		return m, CopyHeroCmd(m.Catalog, h)
	}
	return m, nil
}

func (m Model) confirmDelete(e domain.Entry) (tea.Model, tea.Cmd) {
	if e == nil || !e.IsLocal() {
		return m, nil
	}
	m.Confirm.Show(e.GetID(), e.GetName())
	m.State = StateConfirmDelete
	return m, nil
}

// openForm opens the hero form, prefilled when editing
func (m Model) openForm(e domain.Entry) (tea.Model, tea.Cmd) {
	f := form.New(m.logger)
	title := "New hero"
	m.editingID = ""
	if e != nil {
		f.Load(e, true)
		title = "Edit hero"
		m.editingID = e.GetID()
	}
	cmd := m.FormModal.Show(title, f)
	m.State = StateForm
	return m, cmd
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	f := m.FormModal.Form()
	fields, err := f.Begin()
	if err != nil {
		return m, nil
	}
	return m, SaveHeroCmd(m.Catalog, m.editingID, fields)
}

func (m Model) handleHeroSaved(msg HeroSavedMsg) (tea.Model, tea.Cmd) {
	err := msg.Err
	if err == nil && !msg.Found {
		err = domain.ErrHeroNotFound
	}

	if f := m.FormModal.Form(); f != nil && !f.Complete(err) {
		action := "update"
		if msg.Created {
			action = "create"
		}
		return m, m.notify(notify.Error, fmt.Sprintf("Failed to %s hero. Please try again.", action))
	}

	m.FormModal.Hide()
	m.State = m.returnState()
	m.editingID = ""
	m.applyState(m.Catalog.State())

	if m.Detail.IsVisible() {
		m.Detail.Show(msg.Hero, m.Width, m.Height)
	}

	text := fmt.Sprintf("Hero %q updated!", msg.Name)
	if msg.Created {
		text = fmt.Sprintf("Hero %q created!", msg.Name)
	}
	return m, m.notify(notify.Success, text)
}

// startFetch marks the view loading and runs cmd with the spinner ticking
func (m Model) startFetch(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	m.Snapshot.Loading = true
	if m.spinning {
		return m, cmd
	}
	m.spinning = true
	return m, tea.Batch(cmd, TickCmd(spinnerInterval))
}

func (m *Model) applyState(st catalog.State) {
	m.Snapshot = st
	m.Grid.SetEntries(st.Merged)
	if m.State != StateSearching {
		m.SearchBar.SetValue(st.SearchText)
	}
}

// notify pushes a notification and schedules its expiry
func (m Model) notify(kind notify.Kind, message string) tea.Cmd {
	n := m.Toasts.Push(kind, message)
	m.logger.Debug("notification", "kind", kind.String(), "message", message)
	return ExpireToastCmd(n)
}

func (m *Model) updateLayout() {
	m.SearchBar.SetWidth(m.Width)
	m.Grid.SetSize(m.contentWidth(), m.contentHeight())
}

func (m Model) contentHeight() int {
	h := m.Height - headerLines - searchLines - footerLines
	if m.Snapshot.Err != "" {
		h -= 2
	}
	return max(h, components.CardHeight)
}

func (m Model) contentWidth() int {
	if m.Toasts.Len() > 0 && m.Width > components.CardWidth+components.ToastWidth {
		return m.Width - components.ToastWidth
	}
	return m.Width
}

// View renders the UI
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	if m.State == StateHelp {
		return m.renderHelp()
	}

	m.Grid.SetSize(m.contentWidth(), m.contentHeight())

	sections := []string{m.renderHeader(), m.renderSearch()}
	if m.Snapshot.Err != "" {
		sections = append(sections, m.renderErrorBanner())
	}

	body := m.renderBody()
	if toasts := components.RenderToasts(m.Toasts.Items()); toasts != "" {
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.NewStyle().Width(m.contentWidth()).Render(body),
			toasts,
		)
	}
	sections = append(sections, lipgloss.NewStyle().Height(m.contentHeight()).Render(body))
	sections = append(sections, m.renderFooter())

	view := lipgloss.JoinVertical(lipgloss.Left, sections...)

	// Overlay modals
	switch m.State {
	case StateDetail:
		view = lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, m.Detail.View())
	case StateForm:
		view = lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, m.FormModal.View())
	case StateConfirmDelete:
		view = lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, m.Confirm.View())
	}

	return view
}

func (m Model) renderHeader() string {
	title := styles.HeaderStyle.Render("HERODEX")
	sub := styles.SubtitleStyle.Render(" Manage your favorite Marvel heroes")
	right := styles.AccentStyle.Render("n") + styles.DimStyle.Render(" new hero")

	gap := m.Width - lipgloss.Width(title) - lipgloss.Width(sub) - lipgloss.Width(right)
	if gap < 1 {
		return title + sub
	}
	return title + sub + strings.Repeat(" ", gap) + right
}

func (m Model) renderSearch() string {
	line := m.SearchBar.View()
	var info string
	if m.Snapshot.SearchText != "" {
		info = styles.DimStyle.Render(fmt.Sprintf("Searching for: %q  (esc to clear)", m.Snapshot.SearchText))
	}
	return lipgloss.JoinVertical(lipgloss.Left, line, info)
}

func (m Model) renderErrorBanner() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		styles.ErrorStyle.Bold(true).Render("Oops! Something went wrong: "+m.Snapshot.Err),
		styles.DimStyle.Render("Press ")+styles.AccentStyle.Render("r")+styles.DimStyle.Render(" to try again"),
	)
}

func (m Model) renderBody() string {
	if len(m.Snapshot.Merged) > 0 {
		return m.Grid.View()
	}
	if m.Snapshot.Loading {
		return RenderSpinner(m.SpinnerFrame) + styles.DimStyle.Render(" Loading heroes...")
	}
	if m.Snapshot.Err != "" {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle.Render("No heroes found"),
		styles.DimStyle.Render("Try a different search or create your own hero with ")+styles.AccentStyle.Render("n"),
	)
}

// renderFooter renders a single-line footer
func (m Model) renderFooter() string {
	var left string
	if m.Snapshot.Loading {
		left = RenderSpinner(m.SpinnerFrame) + " " + styles.DimStyle.Render("Loading...")
	} else {
		left = styles.DimStyle.Render(fmt.Sprintf("%d Marvel · %d custom", len(m.Snapshot.Remote), len(m.Snapshot.Local)))
		if m.Snapshot.TotalPages > 0 {
			left += styles.DimStyle.Render(fmt.Sprintf(" · page %d/%d", m.Snapshot.Page+1, m.Snapshot.TotalPages))
		}
	}

	var center string
	if m.Snapshot.HasMore && !m.Snapshot.Loading && len(m.Snapshot.Remote) > 0 {
		center = styles.AccentStyle.Render("m") + styles.DimStyle.Render(" load more heroes")
	}

	right := styles.AccentStyle.Render("?") + styles.DimStyle.Render(" help")

	leftWidth := lipgloss.Width(left)
	centerWidth := lipgloss.Width(center)
	rightWidth := lipgloss.Width(right)

	if leftWidth+centerWidth+rightWidth >= m.Width {
		gap := max(0, m.Width-leftWidth-rightWidth)
		return left + strings.Repeat(" ", gap) + right
	}

	available := m.Width - leftWidth - rightWidth
	leftPad := (available - centerWidth) / 2
	rightPad := available - centerWidth - leftPad

	return left + strings.Repeat(" ", leftPad) + center + strings.Repeat(" ", rightPad) + right
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	help := `
BROWSE                          HEROES
  h/j/k/l    Move                 n      New hero
  g/G        First/last           e      Edit (custom) / copy (Marvel)
  PgUp/PgDn  Scroll page          d      Delete custom hero
  enter      Details              m      Load more
                                  r      Refresh / retry
SEARCH                            R      Reset search
  /          Search Marvel
  f          Filter loaded      DETAILS
  esc        Clear                o      Open image
                                  y      Copy image URL
OTHER
  c          Dismiss notification
  C          Clear notifications
  q          Quit
  ?          This help

Press any key to return...
`

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(help))
}

// RenderSpinner renders a loading spinner frame
func RenderSpinner(frame int) string {
	return styles.SpinnerStyle.Render(styles.SpinnerFrames[frame%len(styles.SpinnerFrames)])
}
