package core

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bethropolis/drumsheet/internal/core/clipboard"
	"github.com/bethropolis/drumsheet/internal/event"
	"github.com/bethropolis/drumsheet/internal/sheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

func populatedStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore()
	id := firstMeasureID(s)
	s.SetTitle("Fool In The Rain")
	s.SetArtist("Led Zeppelin")
	s.SetTempo(130)
	s.ToggleNote(id, sheet.HiHat, 0)
	s.ToggleAccentMode()
	s.ToggleNote(id, sheet.Snare, 1)
	s.ToggleRest(id, 3)
	second := s.AddMeasure(id)
	s.SetRepeatStart(id, true)
	s.SetRepeatEnd(second, true)
	s.AddSection(sheet.Chorus, "Chorus", []string{id, second})
	return s
}

func TestSaveLoadRoundTrip(t *testing.T) {
	src := populatedStore(t)
	var buf bytes.Buffer
	require.NoError(t, src.Save(&buf))

	dst := NewStore()
	require.NoError(t, dst.Load(&buf))
	assert.Equal(t, src.Sheet(), dst.Sheet())
	assert.Equal(t, 1, dst.HistoryLen())
	assert.False(t, dst.CanUndo())
	assert.False(t, dst.Modified())
}

func TestLoadPreservesPassthroughFields(t *testing.T) {
	doc := `{"id":"s","title":"T","tempo":100,"measures":[{"id":"m","timeSignature":{"beats":4,"noteValue":4},"notes":[],"rests":[],
		"dynamics":[{"id":"d","beat":0,"type":"ff"}],"hairpins":[{"id":"h","startBeat":0,"endBeat":4,"type":"decrescendo"}]}],"sections":[]}`
	s := NewStore()
	require.NoError(t, s.Load(strings.NewReader(doc)))
	s.ToggleNote("m", sheet.Bass, 0)

	var buf bytes.Buffer
	require.NoError(t, s.Save(&buf))
	out := buf.String()
	assert.Contains(t, out, `"type": "ff"`)
	assert.Contains(t, out, `"type": "decrescendo"`)
}

func TestLoadFailureLeavesStoreUntouched(t *testing.T) {
	s := populatedStore(t)
	before := s.Sheet()
	historyLen := s.HistoryLen()

	err := s.Load(strings.NewReader("{not json"))
	assert.ErrorIs(t, err, sheet.ErrInvalidDocument)

	err = s.Load(failingReader{})
	assert.ErrorContains(t, err, "disk on fire")

	var saved bytes.Buffer
	require.NoError(t, NewStore().Save(&saved))
	err = s.Load(strings.NewReader(saved.String() + "}}} not json"))
	assert.ErrorIs(t, err, sheet.ErrInvalidDocument)

	assert.Equal(t, before, s.Sheet())
	assert.Equal(t, historyLen, s.HistoryLen())
	assert.True(t, s.CanUndo())

	// still usable afterwards
	assert.True(t, s.ToggleNote(before.Measures[0].ID, sheet.Crash, 0))
}

func TestLoadAsyncDeliversOnce(t *testing.T) {
	src := populatedStore(t)
	var buf bytes.Buffer
	require.NoError(t, src.Save(&buf))

	dst := NewStore()
	require.NoError(t, <-dst.LoadAsync(&buf))
	assert.Equal(t, "Fool In The Rain", dst.Sheet().Title)

	assert.Error(t, <-dst.LoadAsync(strings.NewReader("[]")))
}

func TestSaveFileAndLoadFile(t *testing.T) {
	dir := t.TempDir()
	mgr := event.NewManager()
	var saved, loaded []string
	mgr.Subscribe(event.TypeSheetSaved, func(e event.Event) bool {
		saved = append(saved, e.Data.(event.SheetSavedData).FilePath)
		return false
	})
	mgr.Subscribe(event.TypeSheetLoaded, func(e event.Event) bool {
		loaded = append(loaded, e.Data.(event.SheetLoadedData).FilePath)
		return false
	})

	s := populatedStore(t)
	s.SetEventManager(mgr)
	require.True(t, s.Modified())

	path := filepath.Join(dir, "groove.json")
	require.NoError(t, s.SaveFile(path))
	assert.False(t, s.Modified())
	assert.Equal(t, path, s.FilePath())

	other := NewStore(WithEventManager(mgr))
	require.NoError(t, other.LoadFile(path))
	assert.Equal(t, s.Sheet(), other.Sheet())
	assert.Equal(t, path, other.FilePath())

	other.SetTempo(99)
	require.NoError(t, other.SaveFile(""))
	reloaded := NewStore()
	require.NoError(t, reloaded.LoadFile(path))
	assert.Equal(t, 99, reloaded.Sheet().Tempo)

	assert.Equal(t, []string{path, path}, saved)
	assert.Equal(t, []string{path}, loaded)

	_, err := os.Stat(path)
	require.NoError(t, err)
	assert.ErrorIs(t, reloaded.LoadFile(filepath.Join(dir, "missing.json")), os.ErrNotExist)
}

func TestSetFilePathTargetsSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.json")
	s := NewStore()
	s.SetFilePath(path)
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	assert.False(t, s.Modified())

	require.NoError(t, s.SaveFile(""))
	assert.FileExists(t, path)
}

func TestSuggestedFileName(t *testing.T) {
	s := NewStore()
	s.SetTitle("AC/DC: Back In Black")
	assert.Equal(t, "AC_DC_ Back In Black.json", s.SuggestedFileName())

	s.SetTitle("   ")
	assert.Equal(t, "drum-sheet.json", s.SuggestedFileName())
}

func TestExportPath(t *testing.T) {
	assert.Equal(t, "songs/groove.mid", ExportPath("songs/groove.json", ".mid"))
	assert.Equal(t, "groove.mid", ExportPath("groove", ".mid"))
}

func TestCopyPasteMeasure(t *testing.T) {
	clip := &clipboard.Memory{}
	s := NewStore(WithClipboard(clip))
	id := firstMeasureID(s)
	s.ToggleNote(id, sheet.Snare, 1)
	s.AddSection(sheet.Verse, "V", []string{id})

	require.NoError(t, s.CopyMeasure(id))
	newID, err := s.PasteMeasure(id)
	require.NoError(t, err)

	sh := s.Sheet()
	require.Len(t, sh.Measures, 2)
	pasted := sh.Measures[1]
	assert.Equal(t, newID, pasted.ID)
	assert.NotEqual(t, id, pasted.ID)
	assert.Empty(t, pasted.SectionID)
	require.Len(t, pasted.Notes, 1)
	assert.NotEqual(t, sh.Measures[0].Notes[0].ID, pasted.Notes[0].ID)
	assert.Equal(t, sheet.Snare, pasted.Notes[0].Part)

	require.True(t, s.Undo())
	assert.Len(t, s.Sheet().Measures, 1)
}

func TestCopyPasteErrors(t *testing.T) {
	clip := &clipboard.Memory{}
	s := NewStore(WithClipboard(clip))

	assert.ErrorIs(t, s.CopyMeasure("missing"), ErrMeasureNotFound)

	_, err := s.PasteMeasure("")
	assert.ErrorIs(t, err, clipboard.ErrEmpty)

	require.NoError(t, clip.WriteAll("hello"))
	_, err = s.PasteMeasure("")
	assert.ErrorIs(t, err, sheet.ErrInvalidDocument)
	assert.Equal(t, 1, s.HistoryLen())
}
