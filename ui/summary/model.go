package summary

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cheerioskun/charbrowser/internal/messages"
	"github.com/cheerioskun/charbrowser/internal/models"
)

// Styles for tally rendering
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86"))

	emptyBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))
)

// Dimension is one attribute the results are tallied by
type Dimension struct {
	Title string
	Field func(models.Character) string
}

// Dimensions are the tallies shown, matching the three filter groups
var Dimensions = []Dimension{
	{Title: "Status", Field: func(c models.Character) string { return c.Status }},
	{Title: "Species", Field: func(c models.Character) string { return c.Species }},
	{Title: "Gender", Field: func(c models.Character) string { return c.Gender }},
}

// Model shows how the current results break down per status, species and gender
type Model struct {
	results *models.ResultSet

	width       int
	height      int
	maxBarWidth int
	maxRows     int
}

// NewModel creates a new summary model
func NewModel() *Model {
	return &Model{
		width:       80,
		height:      6,
		maxBarWidth: 12,
		maxRows:     4,
	}
}

// Update handles messages for the summary panel
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	if msg, ok := msg.(messages.ResultsUpdatedMsg); ok {
		m.results = msg.Results
	}
	return m, nil
}

// View renders one column of bars per dimension
func (m *Model) View() string {
	if m.results.IsEmpty() {
		return ""
	}

	columns := make([]string, 0, len(Dimensions))
	colWidth := m.width / len(Dimensions)
	for _, d := range Dimensions {
		col := m.renderDimension(d)
		columns = append(columns, lipgloss.NewStyle().Width(colWidth).Render(col))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}

// SetSize sets the panel size
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.maxRows = height - 1
	if m.maxRows < 1 {
		m.maxRows = 1
	}

	m.maxBarWidth = width/len(Dimensions) - 20
	if m.maxBarWidth < 3 {
		m.maxBarWidth = 3
	}
}

func (m *Model) renderDimension(d Dimension) string {
	tallies := m.results.CountBy(d.Field)

	lines := []string{titleStyle.Render(d.Title)}
	if len(tallies) == 0 {
		return lines[0]
	}

	maxCount := tallies[0].Count
	for i, t := range tallies {
		if i >= m.maxRows {
			lines = append(lines, emptyBarStyle.Render(fmt.Sprintf("+%d more", len(tallies)-i)))
			break
		}
		barLength := t.Count * m.maxBarWidth / maxCount
		lines = append(lines, fmt.Sprintf("%s %s %d",
			labelStyle.Render(fmt.Sprintf("%-9s", truncateLabel(t.Value, 9))),
			m.createBar(barLength),
			t.Count,
		))
	}
	return strings.Join(lines, "\n")
}

// createBar creates a single tally bar
func (m *Model) createBar(length int) string {
	if length <= 0 {
		return emptyBarStyle.Render("▏")
	}
	return barStyle.Render(strings.Repeat("█", length))
}

func truncateLabel(s string, n int) string {
	if s == "" {
		s = "(none)"
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
