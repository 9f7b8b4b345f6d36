package export

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cheerioskun/charbrowser/internal/export"
	"github.com/cheerioskun/charbrowser/internal/models"
)

// Styling
var (
	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Align(lipgloss.Center)

	inputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1).
			Margin(1, 0)

	previewStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Margin(1, 0)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Align(lipgloss.Center).
			Margin(1, 0)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true).
			Margin(1, 0)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("46")).
			Bold(true).
			Margin(1, 0)
)

// State represents the modal's current state
type State int

const (
	StateInput State = iota
	StateExporting
	StateSuccess
	StateError
)

// Model represents the export modal
type Model struct {
	// UI components
	textInput textinput.Model

	// State
	state   State
	visible bool
	width   int
	height  int

	// Data
	results        *models.ResultSet
	exportService  *export.Service
	exportSummary  *export.ExportSummary
	errorMessage   string
	successMessage string
}

// ExportModalCancelledMsg is sent when the modal closes without exporting
type ExportModalCancelledMsg struct{}

// ExportModalCompletedMsg is sent when an export attempt finishes
type ExportModalCompletedMsg struct {
	Success bool
	Error   error
	Summary *export.ExportSummary
}

// NewModel creates a new export modal
func NewModel(exportService *export.Service) *Model {
	ti := textinput.New()
	ti.Placeholder = "Enter export destination..."
	ti.CharLimit = 256
	ti.Width = 50

	return &Model{
		textInput:     ti,
		state:         StateInput,
		visible:       false,
		exportService: exportService,
	}
}

// Show displays the modal for the given result set
func (m *Model) Show(rs *models.ResultSet) tea.Cmd {
	m.visible = true
	m.state = StateInput
	m.results = rs
	m.errorMessage = ""
	m.successMessage = ""

	defaultPath, err := export.GetDefaultExportPath()
	if err != nil {
		defaultPath = "./" + export.DefaultFileName
	}

	m.textInput.SetValue(defaultPath)
	m.textInput.CursorEnd()
	m.updateSummary()

	return m.textInput.Focus()
}

// Hide hides the modal
func (m *Model) Hide() {
	m.visible = false
	m.textInput.Blur()
	m.state = StateInput
}

// IsVisible returns true if the modal is visible
func (m *Model) IsVisible() bool {
	return m.visible
}

// State returns the modal's current state
func (m *Model) State() State {
	return m.state
}

// SetSize sets the modal size
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the export modal
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	if !m.visible {
		return m, nil
	}

	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.state {
		case StateInput:
			switch msg.String() {
			case "enter":
				return m.confirmExport()
			case "esc":
				m.Hide()
				return m, func() tea.Msg { return ExportModalCancelledMsg{} }
			default:
				m.textInput, cmd = m.textInput.Update(msg)
				m.updateSummary()
				return m, cmd
			}
		case StateExporting:
			// Don't handle input while exporting
			return m, nil
		case StateSuccess, StateError:
			// Any key closes the modal after success/error
			m.Hide()
			return m, nil
		}

	case ExportModalCompletedMsg:
		if msg.Success {
			m.state = StateSuccess
			m.successMessage = fmt.Sprintf("Exported %d characters to %s",
				msg.Summary.CharacterCount, msg.Summary.DestinationPath)
		} else {
			m.state = StateError
			m.errorMessage = fmt.Sprintf("Export failed: %v", msg.Error)
		}
		return m, nil

	default:
		if m.state == StateInput {
			m.textInput, cmd = m.textInput.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

// View renders the export modal
func (m *Model) View() string {
	if !m.visible {
		return ""
	}

	var content string

	switch m.state {
	case StateInput:
		content = m.renderInputState()
	case StateExporting:
		content = titleStyle.Render("Exporting...")
	case StateSuccess:
		content = m.renderResultState("Export Complete", successStyle.Render(m.successMessage))
	case StateError:
		content = m.renderResultState("Export Failed", errorStyle.Render(m.errorMessage))
	}

	styledContent := modalStyle.
		Width(60).
		Render(content)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, styledContent)
}

func (m *Model) renderInputState() string {
	var parts []string

	parts = append(parts, titleStyle.Render("Export Characters"))

	if m.exportSummary != nil {
		preview := fmt.Sprintf("Characters to export: %d\nQuery: %s",
			m.exportSummary.CharacterCount, m.exportSummary.Query)
		parts = append(parts, previewStyle.Render(preview))
	}

	parts = append(parts, "Destination Path:")
	parts = append(parts, inputStyle.Render(m.textInput.View()))

	if m.errorMessage != "" {
		parts = append(parts, errorStyle.Render(m.errorMessage))
	}

	parts = append(parts, helpStyle.Render("Enter: Export • Esc: Cancel"))

	return strings.Join(parts, "\n")
}

func (m *Model) renderResultState(title, message string) string {
	return strings.Join([]string{
		titleStyle.Render(title),
		message,
		helpStyle.Render("Press any key to close"),
	}, "\n")
}

// confirmExport validates the path and starts the export
func (m *Model) confirmExport() (*Model, tea.Cmd) {
	destPath := strings.TrimSpace(m.textInput.Value())

	if err := m.exportService.ValidateExportPath(destPath); err != nil {
		m.errorMessage = err.Error()
		return m, nil
	}

	m.errorMessage = ""
	m.state = StateExporting

	return m, m.performExport(destPath)
}

func (m *Model) updateSummary() {
	destPath := strings.TrimSpace(m.textInput.Value())
	summary, err := m.exportService.GetExportSummary(m.results, destPath)
	if err != nil {
		m.exportSummary = nil
		return
	}
	m.exportSummary = summary
}

// performExport writes the file off the event loop and reports back
func (m *Model) performExport(destPath string) tea.Cmd {
	results := m.results
	service := m.exportService

	return func() tea.Msg {
		summary, err := service.ExportResults(results, export.ExportOptions{
			DestinationPath: destPath,
			Overwrite:       true,
		})
		return ExportModalCompletedMsg{
			Success: err == nil,
			Error:   err,
			Summary: summary,
		}
	}
}
