package export

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/cheerioskun/charbrowser/internal/export"
	"github.com/cheerioskun/charbrowser/internal/models"
)

func TestModalExportsResults(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/tmp/out", 0755))

	m := NewModel(export.NewService(fs))
	m.SetSize(100, 30)
	rs := models.NewResultSet(models.FilterState{Search: "Morty"}, &models.Page{
		Results: []models.Character{{ID: 2, Name: "Morty Smith"}},
	})
	m.Show(rs)
	require.True(t, m.IsVisible())

	m.textInput.SetValue("/tmp/out/morty.json")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, StateExporting, m.State())
	require.NotNil(t, cmd)

	done, ok := cmd().(ExportModalCompletedMsg)
	require.True(t, ok)
	require.True(t, done.Success, "%v", done.Error)
	require.Equal(t, 1, done.Summary.CharacterCount)

	m.Update(done)
	require.Equal(t, StateSuccess, m.State())
	require.Contains(t, m.View(), "Exported 1 characters")

	exists, err := afero.Exists(fs, "/tmp/out/morty.json")
	require.NoError(t, err)
	require.True(t, exists)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.False(t, m.IsVisible())
}

func TestModalRejectsBadPath(t *testing.T) {
	m := NewModel(export.NewService(afero.NewMemMapFs()))
	m.Show(models.NewResultSet(models.FilterState{}, nil))

	m.textInput.SetValue("/nope/out.json")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Nil(t, cmd)
	require.Equal(t, StateInput, m.State())
	require.Contains(t, m.errorMessage, "parent directory does not exist")
}

func TestModalEscCancels(t *testing.T) {
	m := NewModel(export.NewService(afero.NewMemMapFs()))
	m.Show(nil)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.False(t, m.IsVisible())
	require.Equal(t, ExportModalCancelledMsg{}, cmd())
}
