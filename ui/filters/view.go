package filters

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styling constants
var (
	// Colors
	primaryColor   = lipgloss.Color("205")
	secondaryColor = lipgloss.Color("240")

	groupColors = map[Group]lipgloss.Color{
		StatusGroup:  lipgloss.Color("39"),
		SpeciesGroup: lipgloss.Color("46"),
		GenderGroup:  lipgloss.Color("214"),
	}

	// Base styles
	searchStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	groupStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			Margin(0, 1, 0, 0)

	buttonStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("237"))

	activeButtonStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Bold(true).
				Foreground(lipgloss.Color("0")).
				Background(primaryColor)

	helpStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Italic(true).
			Padding(0, 1)
)

func (m *Model) render() string {
	search := m.renderSearch()
	groups := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderGroup(StatusGroup),
		m.renderGroup(SpeciesGroup),
		m.renderGroup(GenderGroup),
		m.renderReset(),
	)

	parts := []string{search, groups}
	if help := m.renderHelp(); help != "" {
		parts = append(parts, help)
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) renderSearch() string {
	borderColor := secondaryColor
	if m.focused && m.section == SearchSection {
		borderColor = primaryColor
	}

	width := m.width - 4
	if width < 20 {
		width = 20
	}

	return searchStyle.
		BorderForeground(borderColor).
		Width(width).
		Render(m.searchInput.View())
}

func (m *Model) renderGroup(group Group) string {
	color := groupColors[group]

	var buttons []string
	for i, b := range m.buttons {
		if b.Group != group {
			continue
		}
		buttons = append(buttons, m.renderButton(b, i == m.cursor && m.focused && m.section == ButtonSection))
	}

	title := lipgloss.NewStyle().Bold(true).Foreground(color).Render(group.String())
	body := lipgloss.JoinVertical(lipgloss.Left, title, strings.Join(buttons, " "))

	return groupStyle.BorderForeground(color).Render(body)
}

func (m *Model) renderButton(b Button, underCursor bool) string {
	style := buttonStyle
	if m.IsActive(b) {
		style = activeButtonStyle
	}
	if underCursor {
		style = style.Underline(true).Reverse(!m.IsActive(b))
	}
	return style.Render(b.Label())
}

func (m *Model) renderReset() string {
	label := buttonStyle.Render("Reset filters")
	hint := lipgloss.NewStyle().Foreground(secondaryColor).Render("ctrl+r")
	return lipgloss.NewStyle().
		Padding(1, 1).
		Render(lipgloss.JoinVertical(lipgloss.Left, label, hint))
}

func (m *Model) renderHelp() string {
	if !m.focused {
		return ""
	}

	var helpItems []string
	if m.section == SearchSection {
		helpItems = []string{
			"Type to search",
			"Esc: Buttons",
			"Tab: Next panel",
		}
	} else {
		helpItems = []string{
			"←/→: Button",
			"↑/↓: Group",
			"Enter/Space: Toggle",
			"/: Search",
			"x: Reset",
		}
	}

	return helpStyle.Render(strings.Join(helpItems, " • "))
}
