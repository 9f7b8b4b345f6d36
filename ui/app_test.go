package ui

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/cheerioskun/charbrowser/internal/browser"
	"github.com/cheerioskun/charbrowser/internal/catalog"
	"github.com/cheerioskun/charbrowser/internal/export"
	"github.com/cheerioskun/charbrowser/internal/messages"
	"github.com/cheerioskun/charbrowser/internal/models"
	"github.com/cheerioskun/charbrowser/internal/utils"
	"github.com/cheerioskun/charbrowser/ui/cards"
	"github.com/cheerioskun/charbrowser/ui/filters"
)

// fakeSearcher records every query and answers from a canned function
type fakeSearcher struct {
	mu      sync.Mutex
	queries []models.FilterState
	answer  func(models.FilterState) (*models.Page, error)
}

func (f *fakeSearcher) Search(ctx context.Context, q models.FilterState) (*models.Page, error) {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	f.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.answer(q)
}

func (f *fakeSearcher) urls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.queries))
	for _, q := range f.queries {
		out = append(out, catalog.BuildURL(catalog.DefaultEndpoint, q))
	}
	return out
}

func morty() models.Character {
	return models.Character{ID: 1, Name: "Morty Smith", Status: "Alive", Species: "Human", Gender: "Male", Image: "https://img.test/1.jpeg"}
}

func newTestApp(s *fakeSearcher) *AppModel {
	m := NewAppModel(s, export.NewService(afero.NewMemMapFs()), utils.NewWriterLogger(io.Discard, true), catalog.DefaultEndpoint)
	m.Update(tea.WindowSizeMsg{Width: 160, Height: 60})
	return m
}

// settle runs cmd and returns its message. Timers such as cursor blinks do
// not finish in time and are dropped.
func settle(cmd tea.Cmd) (tea.Msg, bool) {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg, true
	case <-time.After(100 * time.Millisecond):
		return nil, false
	}
}

// collect flattens cmd into the messages it produces
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg, ok := settle(cmd)
	if !ok {
		return nil
	}
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// run feeds the messages produced by cmd back into the model until quiet
func run(m *AppModel, cmd tea.Cmd) {
	queue := collect(cmd)
	for len(queue) > 0 {
		msg := queue[0]
		queue = queue[1:]
		_, next := m.Update(msg)
		queue = append(queue, collect(next)...)
	}
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// typeText types s into the focused search box, running each fetch
func typeText(m *AppModel, s string) {
	for _, r := range s {
		_, cmd := m.Update(keyRune(r))
		run(m, cmd)
	}
}

func TestInitFetchesUnfiltered(t *testing.T) {
	s := &fakeSearcher{answer: func(models.FilterState) (*models.Page, error) {
		return &models.Page{Info: models.PageInfo{Count: 1}, Results: []models.Character{morty()}}, nil
	}}
	m := newTestApp(s)

	require.Equal(t, browser.PhaseEmpty, m.Browser().Snapshot().Phase)
	run(m, m.Init())

	require.Equal(t, []string{catalog.DefaultEndpoint + "?name="}, s.urls())
	require.Equal(t, browser.PhaseResults, m.Browser().Snapshot().Phase)
	require.Contains(t, m.View(), "Morty Smith")
}

func TestSearchScenario(t *testing.T) {
	s := &fakeSearcher{answer: func(q models.FilterState) (*models.Page, error) {
		if q.Search == "Morty" {
			return &models.Page{Info: models.PageInfo{Count: 1}, Results: []models.Character{morty()}}, nil
		}
		return &models.Page{}, nil
	}}
	m := newTestApp(s)

	typeText(m, "Morty")

	urls := s.urls()
	require.Equal(t, catalog.DefaultEndpoint+"?name=Morty", urls[len(urls)-1])

	view := m.View()
	require.Equal(t, 1, strings.Count(view, "Morty Smith"))
	require.Contains(t, view, "Status: Alive")
	require.Contains(t, view, "Species: Human")
	require.Contains(t, view, "Gender: Male")
	require.NotContains(t, view, cards.EmptyText)
}

func TestToggleTwiceOmitsStatus(t *testing.T) {
	s := &fakeSearcher{answer: func(models.FilterState) (*models.Page, error) { return &models.Page{}, nil }}
	m := newTestApp(s)

	toggle := func() tea.Msg { return filters.ToggleMsg{Group: filters.StatusGroup, Value: "dead"} }
	run(m, toggle)
	require.Equal(t, models.StatusDead, m.Browser().Filter().Status)

	run(m, toggle)
	require.Equal(t, models.StatusUnset, m.Browser().Filter().Status)

	urls := s.urls()
	require.Equal(t, []string{
		catalog.DefaultEndpoint + "?name=&status=dead",
		catalog.DefaultEndpoint + "?name=",
	}, urls)
	require.Contains(t, m.View(), cards.EmptyText)
}

func TestResetViaKeyClearsFilters(t *testing.T) {
	s := &fakeSearcher{answer: func(models.FilterState) (*models.Page, error) { return &models.Page{}, nil }}
	m := newTestApp(s)

	typeText(m, "Rick")
	run(m, func() tea.Msg { return filters.ToggleMsg{Group: filters.SpeciesGroup, Value: "alien"} })
	run(m, func() tea.Msg { return filters.ToggleMsg{Group: filters.GenderGroup, Value: "female"} })

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	run(m, cmd)

	require.True(t, m.Browser().Filter().IsZero())
	require.True(t, m.filters.Filter().IsZero())
	require.Equal(t, "", m.filters.Value())

	before := len(s.urls())
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	run(m, cmd)
	require.Len(t, s.urls(), before, "reset on empty filters does not refetch")
}

func TestStaleResponseIsDropped(t *testing.T) {
	s := &fakeSearcher{answer: func(q models.FilterState) (*models.Page, error) {
		return &models.Page{Results: []models.Character{{ID: 9, Name: "Result for " + string(q.Status)}}}, nil
	}}
	m := newTestApp(s)

	// Two filter changes in a row; run the commands in reverse completion order.
	_, first := m.Update(filters.ToggleMsg{Group: filters.StatusGroup, Value: "alive"})
	_, second := m.Update(filters.ToggleMsg{Group: filters.StatusGroup, Value: "dead"})

	m.Update(second())
	m.Update(first())

	view := m.View()
	require.Contains(t, view, "Result for dead")
	require.NotContains(t, view, "Result for alive")
}

func TestTypingKeepsLatestTermWhenFetchesFinishOutOfOrder(t *testing.T) {
	s := &fakeSearcher{answer: func(q models.FilterState) (*models.Page, error) {
		return &models.Page{Results: []models.Character{{ID: 9, Name: "Result for " + q.Search}}}, nil
	}}
	m := newTestApp(s)

	var pending []tea.Cmd
	for _, r := range "Mor" {
		_, cmd := m.Update(keyRune(r))
		require.NotNil(t, cmd)
		pending = append(pending, cmd)
	}
	require.Equal(t, "Mor", m.Browser().Filter().Search)

	// Deliver the newest keystroke's work first and the oldest last.
	for i := len(pending) - 1; i >= 0; i-- {
		for _, msg := range collect(pending[i]) {
			m.Update(msg)
		}
	}

	require.Equal(t, "Mor", m.Browser().Filter().Search)
	require.Equal(t, "Mor", m.filters.Value())

	snap := m.Browser().Snapshot()
	require.Equal(t, browser.PhaseResults, snap.Phase)
	require.Equal(t, "Mor", snap.Results.Query.Search)
	require.Equal(t, "Result for Mor", snap.Results.Characters[0].Name)
	require.Contains(t, m.View(), "Result for Mor")
}

func TestStatusBarShowsUpdateTime(t *testing.T) {
	m := newTestApp(&fakeSearcher{answer: func(models.FilterState) (*models.Page, error) { return &models.Page{}, nil }})
	require.NotContains(t, m.View(), "updated ")

	run(m, m.Init())

	updated := m.Browser().Snapshot().UpdatedAt
	require.Contains(t, m.View(), "updated "+updated.Format("15:04:05"))
}

func TestExportModalReceivesNonKeyMessages(t *testing.T) {
	m := newTestApp(&fakeSearcher{answer: func(models.FilterState) (*models.Page, error) { return &models.Page{}, nil }})
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, FiltersPanel, m.Focused())

	_, show := m.Update(keyRune('e'))
	require.True(t, m.exportModal.IsVisible())
	require.NotNil(t, show)

	// The first cursor blink belongs to the modal's input; when it arrives
	// there the cursor schedules its next blink.
	blink := show()
	_, next := m.Update(blink)
	require.NotNil(t, next)
}

func TestFailureKeepsPreviousCards(t *testing.T) {
	fail := false
	s := &fakeSearcher{answer: func(models.FilterState) (*models.Page, error) {
		if fail {
			return nil, errors.New("connection refused")
		}
		return &models.Page{Results: []models.Character{morty()}}, nil
	}}
	m := newTestApp(s)
	run(m, m.Init())

	fail = true
	run(m, func() tea.Msg { return filters.ToggleMsg{Group: filters.StatusGroup, Value: "alive"} })

	snap := m.Browser().Snapshot()
	require.Equal(t, browser.PhaseError, snap.Phase)
	view := m.View()
	require.Contains(t, view, "Morty Smith")
	require.Contains(t, view, "Fetch failed: connection refused")
}

func TestFocusCycle(t *testing.T) {
	m := newTestApp(&fakeSearcher{answer: func(models.FilterState) (*models.Page, error) { return &models.Page{}, nil }})
	require.Equal(t, SearchPanel, m.Focused())

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, FiltersPanel, m.Focused())
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, CardsPanel, m.Focused())
	m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	require.Equal(t, FiltersPanel, m.Focused())

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	require.Equal(t, SearchPanel, m.Focused())

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, FiltersPanel, m.Focused())
}

func TestQuitCancelsInFlight(t *testing.T) {
	m := newTestApp(&fakeSearcher{answer: func(models.FilterState) (*models.Page, error) { return &models.Page{}, nil }})
	fetch := m.Init()

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	msg := fetch()

	failed, ok := msg.(messages.FetchFailedMsg)
	require.True(t, ok)
	require.ErrorIs(t, failed.Err, context.Canceled)
	require.Contains(t, m.View(), "Wubba lubba dub dub!")
}
