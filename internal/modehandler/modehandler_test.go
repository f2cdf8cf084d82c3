package modehandler

import (
	"strings"
	"testing"

	"github.com/bethropolis/drumsheet/internal/core"
	"github.com/bethropolis/drumsheet/internal/core/cursor"
	"github.com/bethropolis/drumsheet/internal/event"
	"github.com/bethropolis/drumsheet/internal/input"
	"github.com/bethropolis/drumsheet/internal/sheet"
	"github.com/bethropolis/drumsheet/internal/statusbar"
	"github.com/bethropolis/drumsheet/internal/types"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	mh     *ModeHandler
	store  *core.Store
	cursor *cursor.Manager
	status *statusbar.StatusBar
	quit   chan struct{}
	keys   []string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	events := event.NewManager()
	store := core.NewStore(core.WithEventManager(events))
	cur := cursor.NewManager(cursor.StoreGrid{Store: store, StepsPerBeat: 4}, len(sheet.Parts))
	f := &fixture{
		store:  store,
		cursor: cur,
		status: statusbar.New(statusbar.DefaultConfig()),
		quit:   make(chan struct{}),
	}
	events.Subscribe(event.TypeKeyPressed, func(e event.Event) bool {
		f.keys = append(f.keys, e.Data.(event.KeyPressedData).Name)
		return false
	})
	f.mh = New(Config{
		Store:          store,
		Cursor:         cur,
		StepsPerBeat:   4,
		InputProcessor: input.NewInputProcessor(),
		EventManager:   events,
		StatusBar:      f.status,
		QuitSignal:     f.quit,
	})
	return f
}

func (f *fixture) press(keys ...*tcell.EventKey) {
	for _, k := range keys {
		f.mh.HandleKeyEvent(k)
	}
}

func (f *fixture) typeRunes(s string) {
	for _, r := range s {
		f.press(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

func (f *fixture) message() string {
	text, _ := f.status.Text()
	return text
}

func (f *fixture) quitClosed() bool {
	select {
	case <-f.quit:
		return true
	default:
		return false
	}
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func TestToggleNoteAtCursor(t *testing.T) {
	f := newFixture(t)
	f.cursor.SetPosition(types.Position{Row: 6, Step: 4}) // snare, beat 1
	f.typeRunes("5g ")

	m := f.store.Sheet().Measures[0]
	require.Len(t, m.Notes, 1)
	n := m.Notes[0]
	assert.Equal(t, sheet.Snare, n.Part)
	assert.Equal(t, 1.0, n.Beat)
	assert.Equal(t, sheet.Sixteenth, n.Value)
	assert.True(t, n.IsGhost)
	assert.Equal(t, []string{"Rune[5]", "Rune[g]", "Rune[ ]"}, f.keys)

	f.press(key(tcell.KeyEnter))
	assert.Empty(t, f.store.Sheet().Measures[0].Notes, "enter toggles the note off")
}

func TestFixedPartIgnoresRow(t *testing.T) {
	f := newFixture(t)
	f.store.SetSelectedDrumPart(sheet.Bass)
	f.press(key(tcell.KeyRight), key(tcell.KeyRight))
	f.typeRunes(" r")

	m := f.store.Sheet().Measures[0]
	require.Len(t, m.Notes, 1)
	assert.Equal(t, sheet.Bass, m.Notes[0].Part)
	assert.Equal(t, 0.5, m.Notes[0].Beat)
	require.Len(t, m.Rests, 1)
	assert.Equal(t, 0.5, m.Rests[0].Beat)
}

func TestMeasureActionsMoveCursor(t *testing.T) {
	f := newFixture(t)
	f.typeRunes("n")
	assert.Equal(t, 2, len(f.store.Sheet().Measures))
	assert.Equal(t, 1, f.cursor.GetPosition().Measure)

	f.typeRunes("x")
	assert.Equal(t, 1, len(f.store.Sheet().Measures))
	assert.Equal(t, 0, f.cursor.GetPosition().Measure)

	f.typeRunes("x")
	assert.Equal(t, "Cannot remove the only measure", f.message())

	f.typeRunes("u")
	assert.Equal(t, 2, len(f.store.Sheet().Measures))
	f.press(tcell.NewEventKey(tcell.KeyCtrlR, 0, tcell.ModCtrl))
	assert.Equal(t, 1, len(f.store.Sheet().Measures))
	f.press(tcell.NewEventKey(tcell.KeyCtrlY, 0, tcell.ModCtrl))
	assert.Equal(t, "Already at newest change", f.message())
}

func TestRepeatsAndClipboard(t *testing.T) {
	f := newFixture(t)
	f.typeRunes("[]")
	m := f.store.Sheet().Measures[0]
	assert.True(t, m.HasRepeatStart)
	assert.True(t, m.HasRepeatEnd)
	f.typeRunes("[")
	assert.False(t, f.store.Sheet().Measures[0].HasRepeatStart)

	f.typeRunes(" y")
	assert.Equal(t, "Measure copied", f.message())
	f.typeRunes("p")
	sh := f.store.Sheet()
	require.Len(t, sh.Measures, 2)
	assert.Len(t, sh.Measures[1].Notes, 1)
	assert.True(t, sh.Measures[1].HasRepeatEnd)
	assert.Equal(t, 1, f.cursor.GetPosition().Measure)

	f.typeRunes("c")
	assert.Empty(t, f.store.Sheet().Measures[1].Notes)
}

func TestQuitNeedsConfirmation(t *testing.T) {
	f := newFixture(t)
	f.typeRunes(" ")
	f.press(key(tcell.KeyEscape))
	assert.False(t, f.quitClosed())
	assert.Contains(t, f.message(), "Unsaved changes")

	f.press(key(tcell.KeyEscape))
	assert.True(t, f.quitClosed())

	// a second quit must not close the channel again
	assert.NoError(t, f.mh.Quit(true))
}

func TestQuitWithoutChangesIsImmediate(t *testing.T) {
	f := newFixture(t)
	f.press(key(tcell.KeyEscape))
	assert.True(t, f.quitClosed())
	text, _ := f.status.Text()
	assert.NotContains(t, text, "Unsaved changes")
}

func TestQuitPendingResetByEdit(t *testing.T) {
	f := newFixture(t)
	f.typeRunes(" ")
	f.press(key(tcell.KeyEscape))
	f.typeRunes("l")
	f.press(key(tcell.KeyEscape))
	assert.False(t, f.quitClosed())

	assert.Error(t, f.mh.Quit(false))
	f.press(tcell.NewEventKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl))
	assert.True(t, f.quitClosed())
}

func TestCommandMode(t *testing.T) {
	f := newFixture(t)
	var got []string
	require.NoError(t, f.mh.RegisterCommand("tempo", func(args []string) error {
		got = args
		return nil
	}))
	assert.Error(t, f.mh.RegisterCommand("tempo", nil))
	assert.Error(t, f.mh.RegisterCommand("", nil))

	f.typeRunes(":tempo 900")
	assert.Equal(t, ModeCommand, f.mh.GetCurrentMode())
	f.press(key(tcell.KeyBackspace2))
	assert.Equal(t, "tempo 90", f.mh.GetCommandBuffer())
	assert.Equal(t, ":tempo 90", f.message())

	f.press(key(tcell.KeyEnter))
	assert.Equal(t, ModeNormal, f.mh.GetCurrentMode())
	assert.Equal(t, []string{"90"}, got)
	assert.Empty(t, f.store.Sheet().Measures[0].Notes, "typed runes do not edit the grid")

	f.typeRunes(":bogus")
	f.press(key(tcell.KeyEnter))
	assert.Equal(t, "Unknown command: bogus", f.message())

	f.typeRunes(":n")
	f.press(key(tcell.KeyEscape))
	assert.Equal(t, ModeNormal, f.mh.GetCurrentMode())
	assert.Len(t, f.store.Sheet().Measures, 1)

	f.typeRunes(":")
	f.press(key(tcell.KeyBackspace2))
	assert.Equal(t, ModeNormal, f.mh.GetCurrentMode())
}

func TestCommandErrorShown(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.mh.RegisterCommand("fail", func([]string) error {
		return assert.AnError
	}))
	f.typeRunes(":fail")
	f.press(key(tcell.KeyEnter))
	assert.True(t, strings.HasPrefix(f.message(), "Error executing command 'fail'"))
}
