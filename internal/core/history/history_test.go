package history

import (
	"testing"

	"github.com/bethropolis/drumsheet/internal/sheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sheetWithTempo(tempo int) *sheet.Sheet {
	return sheet.New(sheet.Options{Tempo: tempo})
}

func TestNewManagerDefaultCap(t *testing.T) {
	assert.Equal(t, DefaultMaxHistory, NewManager(0).Max())
	assert.Equal(t, DefaultMaxHistory, NewManager(-3).Max())
	assert.Equal(t, 7, NewManager(7).Max())
}

func TestResetLeavesSingleEntry(t *testing.T) {
	m := NewManager(10)
	m.Reset(sheetWithTempo(100))
	m.Record(sheetWithTempo(101))
	m.Record(sheetWithTempo(102))

	m.Reset(sheetWithTempo(90))

	assert.Equal(t, 1, m.Len())
	assert.Equal(t, 0, m.Index())
	assert.False(t, m.CanUndo())
	assert.False(t, m.CanRedo())
	assert.Equal(t, 90, m.Current().Tempo)
}

func TestUndoRedo(t *testing.T) {
	m := NewManager(10)
	m.Reset(sheetWithTempo(100))
	m.Record(sheetWithTempo(101))
	m.Record(sheetWithTempo(102))

	s, ok := m.Undo()
	require.True(t, ok)
	assert.Equal(t, 101, s.Tempo)

	s, ok = m.Undo()
	require.True(t, ok)
	assert.Equal(t, 100, s.Tempo)

	_, ok = m.Undo()
	assert.False(t, ok)
	assert.Equal(t, 0, m.Index())

	s, ok = m.Redo()
	require.True(t, ok)
	assert.Equal(t, 101, s.Tempo)
	s, ok = m.Redo()
	require.True(t, ok)
	assert.Equal(t, 102, s.Tempo)

	_, ok = m.Redo()
	assert.False(t, ok)
	assert.Equal(t, 2, m.Index())
}

func TestRecordTruncatesRedoTail(t *testing.T) {
	m := NewManager(10)
	m.Reset(sheetWithTempo(100))
	m.Record(sheetWithTempo(101))
	m.Record(sheetWithTempo(102))
	m.Undo()
	m.Undo()

	m.Record(sheetWithTempo(200))

	assert.Equal(t, 2, m.Len())
	assert.False(t, m.CanRedo())
	s, ok := m.Undo()
	require.True(t, ok)
	assert.Equal(t, 100, s.Tempo)
}

func TestRecordEvictsOldest(t *testing.T) {
	m := NewManager(5)
	m.Reset(sheetWithTempo(100))
	for i := 1; i <= 20; i++ {
		m.Record(sheetWithTempo(100 + i))
		assert.LessOrEqual(t, m.Len(), 5)
		assert.Equal(t, m.Len()-1, m.Index())
	}

	assert.Equal(t, 120, m.Current().Tempo)

	var tempos []int
	for m.CanUndo() {
		s, _ := m.Undo()
		tempos = append(tempos, s.Tempo)
	}
	assert.Equal(t, []int{119, 118, 117, 116}, tempos)
}

func TestSnapshotsAreIsolated(t *testing.T) {
	m := NewManager(10)
	live := sheetWithTempo(100)
	m.Reset(live)

	live.Tempo = 140
	live.Measures[0].ToggleNote(sheet.Snare, 1, sheet.NoteOptions{Value: sheet.Quarter})
	m.Record(live)

	s, ok := m.Undo()
	require.True(t, ok)
	assert.Equal(t, 100, s.Tempo)
	assert.Empty(t, s.Measures[0].Notes)

	s.Tempo = 1
	again, _ := m.Redo()
	assert.Equal(t, 140, again.Tempo)
	back, _ := m.Undo()
	assert.Equal(t, 100, back.Tempo)
}

func TestCurrentBeforeReset(t *testing.T) {
	assert.Nil(t, NewManager(3).Current())
}

func TestDiscardedSnapshotsAreReleased(t *testing.T) {
	m := NewManager(10)
	m.Reset(sheetWithTempo(100))
	for tempo := 101; tempo <= 104; tempo++ {
		m.Record(sheetWithTempo(tempo))
	}
	_, ok := m.Undo()
	require.True(t, ok)
	_, ok = m.Undo()
	require.True(t, ok)

	m.Record(sheetWithTempo(200))
	assert.Equal(t, 4, m.Len())
	for i, s := range m.snapshots[m.Len():cap(m.snapshots)] {
		assert.Nil(t, s, "slot %d past the end still holds a snapshot", i)
	}

	m.Reset(sheetWithTempo(300))
	assert.Equal(t, 1, m.Len())
	for i, s := range m.snapshots[1:cap(m.snapshots)] {
		assert.Nil(t, s, "slot %d past the end still holds a snapshot", i)
	}
}
