package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bethropolis/drumsheet/internal/core"
	"github.com/bethropolis/drumsheet/internal/plugin/plugintest"
	"github.com/bethropolis/drumsheet/internal/sheet"
	"github.com/bethropolis/drumsheet/internal/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type editorAPI struct {
	*plugintest.API
	measure int
	quits   []bool
}

func (e *editorAPI) SheetStore() *core.Store { return e.Store }

func (e *editorAPI) CurrentMeasureID() string {
	sh := e.Sheet()
	if e.measure < len(sh.Measures) {
		return sh.Measures[e.measure].ID
	}
	return ""
}

func (e *editorAPI) Quit(force bool) error {
	if !force && e.IsModified() {
		return ErrUnsavedChanges
	}
	e.quits = append(e.quits, force)
	return nil
}

type themeAPI struct {
	*theme.Manager
	api *plugintest.API
}

func (t themeAPI) GetTheme() *theme.Theme { return t.Current() }

func (t themeAPI) SetStatusMessage(format string, args ...interface{}) {
	t.api.SetStatusMessage(format, args...)
}

func setup(t *testing.T) *editorAPI {
	t.Helper()
	api := &editorAPI{API: plugintest.New(nil)}
	require.NoError(t, RegisterAppCommands(api, themeAPI{theme.NewManager(""), api.API}))
	return api
}

func TestRegisterTwiceFails(t *testing.T) {
	api := setup(t)
	assert.Error(t, RegisterSheetCommands(api))
}

func TestMetadataCommands(t *testing.T) {
	api := setup(t)

	require.NoError(t, api.Run("title", "Cold", "Sweat"))
	require.NoError(t, api.Run("artist", "James", "Brown"))
	require.NoError(t, api.Run("tempo", "112"))
	sh := api.Sheet()
	assert.Equal(t, "Cold Sweat", sh.Title)
	assert.Equal(t, "James Brown", sh.Artist)
	assert.Equal(t, 112, sh.Tempo)
	assert.Equal(t, 1, api.Store.HistoryLen(), "metadata is not undoable")

	assert.Error(t, api.Run("tempo", "fast"))
	assert.Error(t, api.Run("tempo", "0"))
	require.NoError(t, api.Run("tempo"))
	assert.Equal(t, "Tempo: 112 bpm", api.LastMessage())
}

func TestWriteAndEdit(t *testing.T) {
	api := setup(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "groove.json")

	api.Store.ToggleNote(api.CurrentMeasureID(), sheet.Snare, 1)
	require.NoError(t, api.Run("w", path))
	assert.Equal(t, path, api.FilePath())
	assert.False(t, api.IsModified())
	assert.Equal(t, "Saved to "+path, api.LastMessage())

	require.NoError(t, api.Run("new"))
	assert.Empty(t, api.Sheet().Measures[0].Notes)
	api.Store.AddMeasure("")

	assert.ErrorIs(t, api.Run("e", path), ErrUnsavedChanges)
	require.NoError(t, api.Run("e!", path))
	assert.Len(t, api.Sheet().Measures[0].Notes, 1)
	assert.Equal(t, "Opened "+path+" (1 measures)", api.LastMessage())

	assert.Error(t, api.Run("e"))
	assert.Error(t, api.Run("e", filepath.Join(dir, "missing.json")))
}

func TestSectionCommands(t *testing.T) {
	api := setup(t)

	assert.Error(t, api.Run("section"))
	assert.Error(t, api.Run("section", "interlude"))
	require.NoError(t, api.Run("section", "chorus", "Big", "Chorus"))

	sh := api.Sheet()
	require.Len(t, sh.Sections, 1)
	assert.Equal(t, sheet.Chorus, sh.Sections[0].Type)
	assert.Equal(t, "Big Chorus", sh.Sections[0].Label)
	assert.Equal(t, sh.Sections[0].ID, sh.Measures[0].SectionID)

	require.NoError(t, api.Run("unsection"))
	sh = api.Sheet()
	assert.Empty(t, sh.Sections)
	assert.Empty(t, sh.Measures[0].SectionID)
	assert.Error(t, api.Run("unsection"))

	require.NoError(t, api.Run("undo"))
	assert.Len(t, api.Sheet().Sections, 1)
	require.NoError(t, api.Run("redo"))
	assert.Empty(t, api.Sheet().Sections)
	require.NoError(t, api.Run("redo"))
	assert.Equal(t, "Already at newest change", api.LastMessage())
}

func TestSelectionCommands(t *testing.T) {
	api := setup(t)

	require.NoError(t, api.Run("value", "8"))
	require.NoError(t, api.Run("restvalue", "half"))
	require.NoError(t, api.Run("part", "hihat"))
	sess := api.Store.Session()
	assert.Equal(t, sheet.Eighth, sess.NoteValue)
	assert.Equal(t, sheet.Half, sess.RestValue)
	assert.Equal(t, sheet.HiHat, sess.DrumPart)

	require.NoError(t, api.Run("part", "none"))
	assert.Equal(t, sheet.Part(""), api.Store.Session().DrumPart)

	assert.Error(t, api.Run("value", "3"))
	assert.Error(t, api.Run("part", "cowbell"))
	assert.Error(t, api.Run("restvalue"))
}

func TestExportMIDI(t *testing.T) {
	api := setup(t)
	dir := t.TempDir()
	api.Store.ToggleNote(api.CurrentMeasureID(), sheet.Bass, 0)
	require.NoError(t, api.Run("w", filepath.Join(dir, "song.json")))

	require.NoError(t, api.Run("midi"))
	data, err := os.ReadFile(filepath.Join(dir, "song.mid"))
	require.NoError(t, err)
	assert.Equal(t, "MThd", string(data[:4]))

	explicit := filepath.Join(dir, "other.mid")
	require.NoError(t, api.Run("midi", explicit))
	assert.FileExists(t, explicit)
	assert.Error(t, api.Run("midi", "a", "b"))
}

func TestQuitCommands(t *testing.T) {
	api := setup(t)
	api.Store.AddMeasure("")

	assert.ErrorIs(t, api.Run("q"), ErrUnsavedChanges)
	require.NoError(t, api.Run("q!"))
	assert.Equal(t, []bool{true}, api.quits)
}

func TestThemeCommands(t *testing.T) {
	api := setup(t)

	require.NoError(t, api.Run("theme"))
	assert.Equal(t, "Current theme: Stage Dark", api.LastMessage())

	require.NoError(t, api.Run("theme", "paper", "light"))
	assert.Equal(t, "Theme set to: paper light", api.LastMessage())

	err := api.Run("theme", "neon")
	assert.ErrorContains(t, err, "Available: Paper Light, Stage Dark")

	require.NoError(t, api.Run("themes"))
	assert.Equal(t, "Available themes: Paper Light, Stage Dark", api.LastMessage())
}
