package cards

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cheerioskun/charbrowser/internal/messages"
	"github.com/cheerioskun/charbrowser/internal/models"
)

// EmptyText is shown when there is nothing to render
const EmptyText = "No characters found."

const (
	cardWidth  = 30 // Outer width of one card including border
	maxColumns = 5
)

// Model renders the result set as a responsive grid of cards
type Model struct {
	// Data
	characters []models.Character
	total      int

	// UI state
	focused  bool
	width    int
	height   int
	viewport viewport.Model

	// Styles
	titleStyle   lipgloss.Style
	cardStyle    lipgloss.Style
	nameStyle    lipgloss.Style
	imageStyle   lipgloss.Style
	fieldStyle   lipgloss.Style
	summaryStyle lipgloss.Style
	emptyStyle   lipgloss.Style
}

// NewModel creates a new card grid model
func NewModel() *Model {
	vp := viewport.New(80, 10) // Initial size, will be updated in SetSize
	vp.SetContent("")

	return &Model{
		characters: make([]models.Character, 0),
		focused:    false,
		width:      80,
		height:     14,
		viewport:   vp,

		titleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")),

		cardStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			Width(cardWidth - 2),

		nameStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255")),

		imageStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("111")).
			Underline(true),

		fieldStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")),

		summaryStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Align(lipgloss.Right),

		emptyStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true),
	}
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case messages.ResultsUpdatedMsg:
		m.SetResults(msg.Results)
		return m, nil

	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}
		switch msg.String() {
		case "j", "down":
			m.viewport.LineDown(1)
		case "k", "up":
			m.viewport.LineUp(1)
		case "pgdown", " ":
			m.viewport.ViewDown()
		case "pgup":
			m.viewport.ViewUp()
		case "home", "g":
			m.viewport.GotoTop()
		case "end", "G":
			m.viewport.GotoBottom()
		}
		return m, nil
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the component
func (m *Model) View() string {
	title := "🃏 Characters"
	if m.focused {
		title += " *"
	}
	header := m.titleStyle.Render(title)

	var content string
	if len(m.characters) == 0 {
		content = m.emptyStyle.Render(EmptyText)
	} else {
		content = m.viewport.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, content, m.renderSummary())
}

// SetResults replaces the cards with the given result set. A nil set renders
// the empty placeholder.
func (m *Model) SetResults(rs *models.ResultSet) {
	if rs == nil {
		m.characters = m.characters[:0]
		m.total = 0
	} else {
		m.characters = append(m.characters[:0], rs.Characters...)
		m.total = rs.Total
	}
	m.viewport.GotoTop()
	m.updateViewportContent()
}

// Len returns the number of cards
func (m *Model) Len() int {
	return len(m.characters)
}

// Columns returns how many cards fit side by side at the current width
func (m *Model) Columns() int {
	cols := m.width / cardWidth
	if cols < 1 {
		cols = 1
	}
	if cols > maxColumns {
		cols = maxColumns
	}
	return cols
}

// Component interface methods

func (m *Model) Focus() {
	m.focused = true
}

func (m *Model) Blur() {
	m.focused = false
}

func (m *Model) IsFocused() bool {
	return m.focused
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height

	// Title and summary take one line each
	viewportHeight := height - 2
	if viewportHeight < 1 {
		viewportHeight = 1
	}

	m.viewport.Width = width
	m.viewport.Height = viewportHeight

	m.updateViewportContent()
}

func (m *Model) updateViewportContent() {
	if len(m.characters) == 0 {
		m.viewport.SetContent(m.emptyStyle.Render(EmptyText))
		return
	}
	m.viewport.SetContent(m.renderGrid())
}

func (m *Model) renderGrid() string {
	cols := m.Columns()

	var rows []string
	for start := 0; start < len(m.characters); start += cols {
		end := start + cols
		if end > len(m.characters) {
			end = len(m.characters)
		}

		row := make([]string, 0, end-start)
		for _, c := range m.characters[start:end] {
			row = append(row, m.renderCard(c))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m *Model) renderCard(c models.Character) string {
	inner := cardWidth - 4 // border + padding

	lines := []string{
		m.nameStyle.Render(truncate(c.Name, inner)),
		m.imageStyle.Render(truncate(c.Image, inner)),
		m.fieldStyle.Render(truncate("Status: "+c.Status, inner)),
		m.fieldStyle.Render(truncate("Species: "+c.Species, inner)),
		m.fieldStyle.Render(truncate("Gender: "+c.Gender, inner)),
	}

	return m.cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m *Model) renderSummary() string {
	if len(m.characters) == 0 {
		return ""
	}

	total := m.total
	if total < len(m.characters) {
		total = len(m.characters)
	}

	summary := fmt.Sprintf("Showing %d of %d", len(m.characters), total)
	if m.viewport.TotalLineCount() > m.viewport.Height {
		summary += fmt.Sprintf(" • %3.0f%%", m.viewport.ScrollPercent()*100)
	}
	return m.summaryStyle.Width(m.width).Render(summary)
}

// truncate shortens s to at most n runes, marking the cut with "..."
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
