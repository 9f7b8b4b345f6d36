package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cheerioskun/charbrowser/internal/browser"
	"github.com/cheerioskun/charbrowser/internal/export"
	"github.com/cheerioskun/charbrowser/internal/messages"
	"github.com/cheerioskun/charbrowser/internal/models"
	"github.com/cheerioskun/charbrowser/internal/utils"
	"github.com/cheerioskun/charbrowser/ui/cards"
	exportui "github.com/cheerioskun/charbrowser/ui/export"
	"github.com/cheerioskun/charbrowser/ui/filters"
	"github.com/cheerioskun/charbrowser/ui/summary"
)

// FocusedPanel represents which panel is currently focused
type FocusedPanel int

const (
	SearchPanel FocusedPanel = iota
	FiltersPanel
	CardsPanel
)

// Searcher runs one catalog query
type Searcher interface {
	Search(ctx context.Context, f models.FilterState) (*models.Page, error)
}

// AppModel represents the main application model
type AppModel struct {
	// Core state
	browser  *browser.Controller
	searcher Searcher
	logger   *utils.Logger
	endpoint string

	// Components
	filters     *filters.Model
	cards       *cards.Model
	summary     *summary.Model
	exportModal *exportui.Model

	// UI state
	focused FocusedPanel
	width   int
	height  int

	// In-flight request
	cancel context.CancelFunc

	// Status
	status   string
	quitting bool
}

// NewAppModel creates a new application model
func NewAppModel(searcher Searcher, exportService *export.Service, logger *utils.Logger, endpoint string) *AppModel {
	if logger == nil {
		logger = utils.GetLogger()
	}

	m := &AppModel{
		browser:     browser.NewController(),
		searcher:    searcher,
		logger:      logger,
		endpoint:    endpoint,
		filters:     filters.NewModel(),
		cards:       cards.NewModel(),
		summary:     summary.NewModel(),
		exportModal: exportui.NewModel(exportService),
		focused:     SearchPanel,
		width:       80,
		height:      24,
	}
	m.filters.Focus()
	m.layout()
	return m
}

// Init implements tea.Model
func (m *AppModel) Init() tea.Cmd {
	return m.fetch()
}

// Update implements tea.Model
func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.exportModal.SetSize(msg.Width, msg.Height)
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case filters.ToggleMsg:
		m.toggle(msg)
		return m, m.filtersChanged("buttons")

	case messages.ResetFiltersMsg:
		if !m.browser.Reset() {
			return m, nil
		}
		return m, m.filtersChanged("reset")

	case messages.ResultsLoadedMsg:
		if !m.browser.Complete(msg.Seq, msg.Query, msg.Page) {
			m.logger.Debug("discarding stale results for request %d (%s)", msg.Seq, msg.Query)
			return m, nil
		}
		snap := m.browser.Snapshot()
		m.logger.Debug("request %d returned %d characters", msg.Seq, snap.Results.Len())
		m.propagateResults(snap.Results)
		m.status = ""
		return m, nil

	case messages.FetchFailedMsg:
		if !m.browser.Fail(msg.Seq, msg.Err) {
			m.logger.Debug("discarding stale failure for request %d: %v", msg.Seq, msg.Err)
			return m, nil
		}
		m.logger.Error("fetching characters for %s failed: %v", msg.Query, msg.Err)
		return m, nil

	case exportui.ExportModalCompletedMsg:
		if msg.Success {
			m.logger.Info("exported %d characters to %s", msg.Summary.CharacterCount, msg.Summary.DestinationPath)
		} else {
			m.logger.Error("export failed: %v", msg.Error)
		}
		var cmd tea.Cmd
		m.exportModal, cmd = m.exportModal.Update(msg)
		return m, cmd

	case exportui.ExportModalCancelledMsg:
		return m, nil
	}

	// Everything else (cursor blinks, etc.) goes to the modal or the focused component
	if m.exportModal.IsVisible() {
		var cmd tea.Cmd
		m.exportModal, cmd = m.exportModal.Update(msg)
		return m, cmd
	}
	return m, m.updateFocused(msg)
}

// View implements tea.Model
func (m *AppModel) View() string {
	if m.quitting {
		return "Wubba lubba dub dub!\n"
	}

	if m.exportModal.IsVisible() {
		return m.exportModal.View()
	}

	parts := []string{m.renderHeader(), m.filters.View()}
	if s := m.summary.View(); s != "" {
		parts = append(parts, s)
	}
	parts = append(parts, m.cards.View(), m.renderStatusBar())

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Browser exposes the controller for inspection
func (m *AppModel) Browser() *browser.Controller {
	return m.browser
}

// Focused returns the focused panel
func (m *AppModel) Focused() FocusedPanel {
	return m.focused
}

func (m *AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.exportModal.IsVisible() {
		var cmd tea.Cmd
		m.exportModal, cmd = m.exportModal.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "ctrl+c":
		return m.quit()
	case "ctrl+r":
		return m, resetCmd
	case "tab":
		m.setFocus((m.focused + 1) % 3)
		return m, nil
	case "shift+tab":
		m.setFocus((m.focused + 2) % 3)
		return m, nil
	}

	if m.focused == SearchPanel {
		if msg.String() == "esc" {
			m.setFocus(FiltersPanel)
			return m, nil
		}
		return m, m.updateFocused(msg)
	}

	switch msg.String() {
	case "q":
		return m.quit()
	case "/":
		m.setFocus(SearchPanel)
		return m, nil
	case "r":
		return m, resetCmd
	case "e":
		return m, m.exportModal.Show(m.browser.Snapshot().Results)
	case "?":
		m.status = "Tab: panels • /: search • Enter: toggle • r: reset • e: export • q: quit"
		return m, nil
	}

	return m, m.updateFocused(msg)
}

func resetCmd() tea.Msg {
	return messages.ResetFiltersMsg{}
}

func (m *AppModel) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	if m.cancel != nil {
		m.cancel()
	}
	return m, tea.Quit
}

func (m *AppModel) toggle(msg filters.ToggleMsg) {
	switch msg.Group {
	case filters.StatusGroup:
		m.browser.ToggleStatus(models.Status(msg.Value))
	case filters.SpeciesGroup:
		m.browser.ToggleSpecies(models.Species(msg.Value))
	case filters.GenderGroup:
		m.browser.ToggleGender(models.Gender(msg.Value))
	}
}

// filtersChanged mirrors the new filter into the panel and issues a fetch
func (m *AppModel) filtersChanged(source string) tea.Cmd {
	f := m.browser.Filter()
	m.filters.SetFilter(f)
	m.logger.Debug("filters changed by %s: %s", source, f)
	return m.fetch()
}

// fetch cancels the in-flight request and starts a new one for the current
// filter. Completions are matched against the sequence number it was issued
// with, so only the most recently requested filter reaches the screen.
func (m *AppModel) fetch() tea.Cmd {
	if m.cancel != nil {
		m.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel

	seq, query := m.browser.BeginFetch()
	searcher := m.searcher

	return func() tea.Msg {
		defer cancel()
		page, err := searcher.Search(ctx, query)
		if err != nil {
			return messages.FetchFailedMsg{Seq: seq, Query: query, Err: err}
		}
		return messages.ResultsLoadedMsg{Seq: seq, Query: query, Page: page}
	}
}

func (m *AppModel) propagateResults(rs *models.ResultSet) {
	update := messages.ResultsUpdatedMsg{Results: rs}
	m.cards.Update(update)
	m.summary.Update(update)
	m.layout()
}

func (m *AppModel) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.focused {
	case SearchPanel:
		m.filters, cmd = m.filters.Update(msg)
		// The box is read in the same update as the keystroke, so the
		// controller never sees terms out of typing order.
		if m.browser.SetSearch(m.filters.Value()) {
			cmd = tea.Batch(cmd, m.filtersChanged("search"))
		}
	case FiltersPanel:
		m.filters, cmd = m.filters.Update(msg)
	case CardsPanel:
		m.cards, cmd = m.cards.Update(msg)
	}
	return cmd
}

func (m *AppModel) setFocus(panel FocusedPanel) {
	m.focused = panel

	m.filters.Blur()
	m.cards.Blur()

	switch panel {
	case SearchPanel:
		m.filters.SetSection(filters.SearchSection)
		m.filters.Focus()
	case FiltersPanel:
		m.filters.SetSection(filters.ButtonSection)
		m.filters.Focus()
	case CardsPanel:
		m.cards.Focus()
	}
	m.layout()
}

// layout hands the remaining height to the card grid
func (m *AppModel) layout() {
	m.filters.SetSize(m.width, 0)
	m.summary.SetSize(m.width, 5)

	used := lipgloss.Height(m.renderHeader()) +
		lipgloss.Height(m.filters.View()) +
		lipgloss.Height(m.renderStatusBar())
	if s := m.summary.View(); s != "" {
		used += lipgloss.Height(s)
	}

	m.cards.SetSize(m.width, m.height-used)
}

func (m *AppModel) renderHeader() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("205")).
		Render("Rick and Morty Characters")

	source := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Render(fmt.Sprintf("Source: %s", m.endpoint))

	return lipgloss.JoinVertical(lipgloss.Left, title, source)
}

func (m *AppModel) renderStatusBar() string {
	snap := m.browser.Snapshot()

	var parts []string
	switch snap.Phase {
	case browser.PhaseLoading:
		parts = append(parts, "Loading...")
	case browser.PhaseResults:
		parts = append(parts, fmt.Sprintf("%d matches", snap.Results.Total))
	case browser.PhaseEmpty:
		parts = append(parts, cards.EmptyText)
	case browser.PhaseError:
		parts = append(parts, lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Render("Fetch failed: "+errorText(snap.Err)))
	}
	parts = append(parts, snap.Filter.String())
	if !snap.UpdatedAt.IsZero() {
		parts = append(parts, "updated "+snap.UpdatedAt.Format("15:04:05"))
	}
	if m.status != "" {
		parts = append(parts, m.status)
	}

	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Render(strings.Join(parts, " | "))
}

func errorText(err error) string {
	if err == nil {
		return ""
	}
	var timeout interface{ Timeout() bool }
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &timeout) && timeout.Timeout()) {
		return "request timed out"
	}
	return err.Error()
}
