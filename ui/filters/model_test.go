package filters

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/cheerioskun/charbrowser/internal/messages"
	"github.com/cheerioskun/charbrowser/internal/models"
)

func newFocusedModel() *Model {
	m := NewModel()
	m.searchInput.Cursor.SetMode(cursor.CursorStatic)
	m.Focus()
	return m
}

// drain runs cmd and flattens batches into the produced messages
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestButtonsOrder(t *testing.T) {
	buttons := Buttons()
	require.Len(t, buttons, 8)
	require.Equal(t, Button{Group: StatusGroup, Value: "alive"}, buttons[0])
	require.Equal(t, Button{Group: SpeciesGroup, Value: "human"}, buttons[3])
	require.Equal(t, Button{Group: GenderGroup, Value: "unknown"}, buttons[7])
}

func TestTypingUpdatesValue(t *testing.T) {
	m := newFocusedModel()

	m.Update(key("M"))
	require.Equal(t, "M", m.Value())

	_, cmd := m.Update(key("o"))
	require.Equal(t, "Mo", m.Value())
	require.Empty(t, drain(cmd), "typing leaves fetching to the owner of the filter")
}

func TestLongSearchIsNotTruncated(t *testing.T) {
	m := newFocusedModel()
	term := strings.Repeat("a", 300)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(term)})
	require.Equal(t, term, m.Value())
}

func TestButtonsToggle(t *testing.T) {
	m := newFocusedModel()
	m.SetSection(ButtonSection)

	m.Update(key("right"))
	_, cmd := m.Update(key("enter"))
	require.Equal(t, []tea.Msg{ToggleMsg{Group: StatusGroup, Value: "dead"}}, drain(cmd))

	m.Update(key("down"))
	require.Equal(t, 3, m.Cursor())
	_, cmd = m.Update(key("enter"))
	require.Equal(t, []tea.Msg{ToggleMsg{Group: SpeciesGroup, Value: "human"}}, drain(cmd))

	m.Update(key("left"))
	m.Update(key("left"))
	m.Update(key("left"))
	m.Update(key("left"))
	require.Equal(t, 7, m.Cursor(), "cursor wraps around")
}

func TestResetKeyEmitsReset(t *testing.T) {
	m := newFocusedModel()
	m.SetSection(ButtonSection)

	_, cmd := m.Update(key("x"))
	require.Equal(t, []tea.Msg{messages.ResetFiltersMsg{}}, drain(cmd))
}

func TestUnfocusedIgnoresInput(t *testing.T) {
	m := NewModel()
	_, cmd := m.Update(key("a"))
	require.Nil(t, cmd)
}

func TestSetFilterMirrorsState(t *testing.T) {
	m := NewModel()
	m.SetFilter(models.FilterState{Search: "Rick", Status: models.StatusAlive, Gender: models.GenderMale})

	require.Equal(t, "Rick", m.searchInput.Value())
	require.True(t, m.IsActive(Button{Group: StatusGroup, Value: "alive"}))
	require.False(t, m.IsActive(Button{Group: StatusGroup, Value: "dead"}))
	require.True(t, m.IsActive(Button{Group: GenderGroup, Value: "male"}))
	require.False(t, m.IsActive(Button{Group: SpeciesGroup, Value: "human"}))

	m.SetFilter(models.FilterState{})
	require.Equal(t, "", m.searchInput.Value())
	require.False(t, m.IsActive(Button{Group: StatusGroup, Value: "alive"}))
}

func TestViewShowsGroups(t *testing.T) {
	m := NewModel()
	view := m.View()
	for _, s := range []string{"Status", "Species", "Gender", "Alive", "Dead", "Human", "Alien", "Female", "Reset filters"} {
		require.Contains(t, view, s)
	}
}
