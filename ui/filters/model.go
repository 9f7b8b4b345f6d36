package filters

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cheerioskun/charbrowser/internal/messages"
	"github.com/cheerioskun/charbrowser/internal/models"
)

// Section represents which part of the panel has the keyboard
type Section int

const (
	SearchSection Section = iota
	ButtonSection
)

// Group identifies one of the three button groups
type Group int

const (
	StatusGroup Group = iota
	SpeciesGroup
	GenderGroup
)

// String returns the group title
func (g Group) String() string {
	switch g {
	case StatusGroup:
		return "Status"
	case SpeciesGroup:
		return "Species"
	case GenderGroup:
		return "Gender"
	default:
		return "Unknown"
	}
}

// Button is one toggle button
type Button struct {
	Group Group
	Value string
}

// Label returns the caption shown on the button
func (b Button) Label() string {
	return models.Label(b.Value)
}

// ToggleMsg is sent when a filter button is pressed
type ToggleMsg struct {
	Group Group
	Value string
}

// Buttons returns every toggle button in display order
func Buttons() []Button {
	buttons := make([]Button, 0, len(models.Statuses)+len(models.SpeciesOptions)+len(models.Genders))
	for _, s := range models.Statuses {
		buttons = append(buttons, Button{Group: StatusGroup, Value: string(s)})
	}
	for _, s := range models.SpeciesOptions {
		buttons = append(buttons, Button{Group: SpeciesGroup, Value: string(s)})
	}
	for _, g := range models.Genders {
		buttons = append(buttons, Button{Group: GenderGroup, Value: string(g)})
	}
	return buttons
}

// Model is the search box plus the status/species/gender button groups.
// It mirrors the filter state it is given and reports presses as messages;
// it never mutates the filter itself.
type Model struct {
	// Data
	filter  models.FilterState
	buttons []Button

	// UI State
	section     Section
	cursor      int
	searchInput textinput.Model

	// Component state
	focused bool
	width   int
	height  int
}

// NewModel creates a new filter panel model
func NewModel() *Model {
	input := textinput.New()
	input.Placeholder = "Search Characters..."
	input.Prompt = "🔍 "

	return &Model{
		buttons:     Buttons(),
		section:     SearchSection,
		cursor:      0,
		searchInput: input,
		focused:     false,
		width:       80,
		height:      8,
	}
}

// Update handles messages for the filter panel
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	if !m.focused {
		return m, nil
	}

	if m.section == SearchSection {
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h":
			m.moveCursor(-1)
		case "right", "l":
			m.moveCursor(1)
		case "up", "k":
			m.moveGroup(-1)
		case "down", "j":
			m.moveGroup(1)
		case "enter", " ":
			button := m.buttons[m.cursor]
			return m, func() tea.Msg { return ToggleMsg{Group: button.Group, Value: button.Value} }
		case "x":
			return m, func() tea.Msg { return messages.ResetFiltersMsg{} }
		}
	}

	return m, nil
}

// View renders the filter panel
func (m *Model) View() string {
	return m.render()
}

// Component interface methods

func (m *Model) Focus() {
	m.focused = true
	if m.section == SearchSection {
		m.searchInput.Focus()
	}
}

func (m *Model) Blur() {
	m.focused = false
	m.searchInput.Blur()
}

func (m *Model) IsFocused() bool {
	return m.focused
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.searchInput.Width = width - 8
}

// Section returns the active section
func (m *Model) Section() Section {
	return m.section
}

// SetSection switches between the search box and the buttons
func (m *Model) SetSection(section Section) {
	m.section = section
	if m.focused && section == SearchSection {
		m.searchInput.Focus()
	} else {
		m.searchInput.Blur()
	}
}

// Data management methods

// SetFilter mirrors the controller's filter state. The search box is only
// rewritten when it disagrees, so the cursor position survives normal typing.
func (m *Model) SetFilter(f models.FilterState) {
	m.filter = f
	if m.searchInput.Value() != f.Search {
		m.searchInput.SetValue(f.Search)
		m.searchInput.CursorEnd()
	}
}

// Value returns the text currently in the search box
func (m *Model) Value() string {
	return m.searchInput.Value()
}

// Filter returns the mirrored filter state
func (m *Model) Filter() models.FilterState {
	return m.filter
}

// Cursor returns the index of the highlighted button
func (m *Model) Cursor() int {
	return m.cursor
}

// IsActive reports whether b matches the current filter state
func (m *Model) IsActive(b Button) bool {
	switch b.Group {
	case StatusGroup:
		return string(m.filter.Status) == b.Value
	case SpeciesGroup:
		return string(m.filter.Species) == b.Value
	case GenderGroup:
		return string(m.filter.Gender) == b.Value
	}
	return false
}

// Internal methods

func (m *Model) moveCursor(delta int) {
	n := len(m.buttons)
	m.cursor = (m.cursor + delta + n) % n
}

// moveGroup jumps to the first button of the previous/next group
func (m *Model) moveGroup(delta int) {
	current := int(m.buttons[m.cursor].Group)
	target := Group((current + delta + 3) % 3)
	for i, b := range m.buttons {
		if b.Group == target {
			m.cursor = i
			return
		}
	}
}
