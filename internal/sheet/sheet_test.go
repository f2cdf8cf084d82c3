package sheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUsesDefaults(t *testing.T) {
	s := New(Options{})

	assert.Equal(t, DefaultTitle, s.Title)
	assert.Equal(t, DefaultTempo, s.Tempo)
	require.Len(t, s.Measures, 1)
	assert.Equal(t, TimeSignature{Beats: 4, NoteValue: 4}, s.Measures[0].TimeSignature)
	assert.Empty(t, s.Measures[0].Notes)
	assert.NotNil(t, s.Measures[0].Notes)
	assert.NotNil(t, s.Sections)
	assert.NotEmpty(t, s.ID)
}

func TestNewKeepsGivenOptions(t *testing.T) {
	s := New(Options{Title: "Groove", Tempo: 90, TimeSignature: TimeSignature{Beats: 3, NoteValue: 4}})

	assert.Equal(t, "Groove", s.Title)
	assert.Equal(t, 90, s.Tempo)
	assert.Equal(t, 3, s.Measures[0].TimeSignature.Beats)
}

func TestStyleFor(t *testing.T) {
	tests := []struct {
		part Part
		want NoteStyle
	}{
		{Crash, StyleCymbal},
		{Ride, StyleCymbal},
		{HiHat, StyleCymbal},
		{HighTom, StyleDrum},
		{MidTom, StyleDrum},
		{LowTom, StyleDrum},
		{Snare, StyleDrum},
		{Bass, StyleDrum},
	}
	for _, tt := range tests {
		t.Run(string(tt.part), func(t *testing.T) {
			assert.Equal(t, tt.want, StyleFor(tt.part))
		})
	}
}

func TestCloneIsDeep(t *testing.T) {
	s := New(Options{})
	m := &s.Measures[0]
	m.ToggleNote(Snare, 1, NoteOptions{Value: Quarter})
	m.Dynamics = []DynamicMark{{ID: "d1", Beat: 0, Type: Forte}}
	s.Sections = append(s.Sections, Section{ID: "s1", Type: Verse, Label: "V", MeasureIDs: []string{m.ID}})

	c := s.Clone()
	require.Equal(t, s, c)

	c.Measures[0].Notes[0].Beat = 3
	c.Measures[0].Dynamics[0].Type = Piano
	c.Sections[0].MeasureIDs[0] = "other"
	c.Measures = append(c.Measures, NewMeasure(TimeSignature{Beats: 4, NoteValue: 4}))

	assert.Equal(t, 1.0, s.Measures[0].Notes[0].Beat)
	assert.Equal(t, Forte, s.Measures[0].Dynamics[0].Type)
	assert.Equal(t, m.ID, s.Sections[0].MeasureIDs[0])
	assert.Len(t, s.Measures, 1)
}

func TestCloneKeepsNilOptionalSlices(t *testing.T) {
	s := New(Options{})
	c := s.Clone()
	assert.Nil(t, c.Measures[0].Dynamics)
	assert.Nil(t, c.Measures[0].Hairpins)
}

func TestLookups(t *testing.T) {
	s := New(Options{})
	second := NewMeasure(s.Measures[0].TimeSignature)
	s.Measures = append(s.Measures, second)

	assert.Equal(t, 1, s.MeasureIndex(second.ID))
	assert.Equal(t, -1, s.MeasureIndex("missing"))
	assert.Nil(t, s.Measure("missing"))
	require.NotNil(t, s.Measure(second.ID))

	s.Measure(second.ID).HasRepeatEnd = true
	assert.True(t, s.Measures[1].HasRepeatEnd)
}

func TestMeasureSections(t *testing.T) {
	s := New(Options{})
	id := s.Measures[0].ID
	s.Sections = []Section{
		{ID: "a", Type: Intro, MeasureIDs: []string{id}},
		{ID: "b", Type: Verse, MeasureIDs: []string{id, "ghost"}},
	}

	got := s.MeasureSections()
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[id].ID)
	assert.Equal(t, "b", got["ghost"].ID)
}

func TestStats(t *testing.T) {
	s := New(Options{})
	m := &s.Measures[0]
	m.ToggleNote(Snare, 1, NoteOptions{Value: Quarter})
	m.ToggleNote(Snare, 3, NoteOptions{Value: Quarter})
	m.ToggleNote(Bass, 0, NoteOptions{Value: Quarter})
	m.ToggleRest(2, Quarter)

	st := s.Stats()
	assert.Equal(t, 1, st.Measures)
	assert.Equal(t, 3, st.Notes)
	assert.Equal(t, 1, st.Rests)
	assert.Equal(t, 2, st.PerPart[Snare])
	assert.Equal(t, 1, st.PerPart[Bass])
	assert.Zero(t, st.PerPart[Crash])
}

func TestParsers(t *testing.T) {
	p, err := ParsePart("HiHat")
	require.NoError(t, err)
	assert.Equal(t, HiHat, p)
	_, err = ParsePart("cowbell")
	assert.Error(t, err)

	v, err := ParseValue("8")
	require.NoError(t, err)
	assert.Equal(t, Eighth, v)
	v, err = ParseValue("sixteenth")
	require.NoError(t, err)
	assert.Equal(t, Sixteenth, v)
	_, err = ParseValue("3")
	assert.Error(t, err)

	st, err := ParseSectionType("Pre-Chorus")
	require.NoError(t, err)
	assert.Equal(t, PreChorus, st)
	_, err = ParseSectionType("coda")
	assert.Error(t, err)
}

func TestValueValid(t *testing.T) {
	for _, v := range Values {
		assert.True(t, v.Valid(), v.String())
	}
	assert.False(t, Value(0.3).Valid())
}
