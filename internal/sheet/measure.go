package sheet

import "math"

// BeatTolerance absorbs floating point drift when matching note positions.
// Rests are matched exactly.
const BeatTolerance = 0.01

// NoteOptions carries the selection captured into a newly inserted note.
type NoteOptions struct {
	Value  Value
	Ghost  bool
	Accent bool
}

// FindNote returns the index of the note on part at beat, or -1.
func (m *Measure) FindNote(part Part, beat float64) int {
	for i, n := range m.Notes {
		if n.Part == part && math.Abs(n.Beat-beat) < BeatTolerance {
			return i
		}
	}
	return -1
}

// FindRest returns the index of the rest at exactly beat, or -1.
func (m *Measure) FindRest(beat float64) int {
	for i, r := range m.Rests {
		if r.Beat == beat {
			return i
		}
	}
	return -1
}

// ToggleNote removes the note on part at beat if there is one, otherwise
// inserts a new note built from opts. It reports whether a note was added.
func (m *Measure) ToggleNote(part Part, beat float64, opts NoteOptions) bool {
	if i := m.FindNote(part, beat); i >= 0 {
		m.Notes = append(m.Notes[:i], m.Notes[i+1:]...)
		return false
	}
	m.Notes = append(m.Notes, DrumNote{
		ID:        NewID(),
		Part:      part,
		Beat:      beat,
		Value:     opts.Value,
		Style:     StyleFor(part),
		IsGhost:   opts.Ghost,
		HasAccent: opts.Accent,
	})
	return true
}

// ToggleRest removes the rest at beat if there is one, otherwise inserts a
// rest of the given value. It reports whether a rest was added.
func (m *Measure) ToggleRest(beat float64, value Value) bool {
	if i := m.FindRest(beat); i >= 0 {
		m.Rests = append(m.Rests[:i], m.Rests[i+1:]...)
		return false
	}
	m.Rests = append(m.Rests, Rest{
		ID:    NewID(),
		Beat:  beat,
		Value: value,
	})
	return true
}

// Clear drops all notes and rests. Time signature, section and repeats stay.
func (m *Measure) Clear() {
	m.Notes = []DrumNote{}
	m.Rests = []Rest{}
}

// Length is the number of beats in the measure.
func (m *Measure) Length() float64 {
	return float64(m.TimeSignature.Beats)
}

// Empty reports whether the measure has neither notes nor rests.
func (m *Measure) Empty() bool {
	return len(m.Notes) == 0 && len(m.Rests) == 0
}

// Renew gives the measure and everything in it fresh ids and drops its
// section link. Used when a measure is duplicated into the same sheet.
func (m *Measure) Renew() {
	m.ID = NewID()
	m.SectionID = ""
	for i := range m.Notes {
		m.Notes[i].ID = NewID()
	}
	for i := range m.Rests {
		m.Rests[i].ID = NewID()
	}
	for i := range m.Dynamics {
		m.Dynamics[i].ID = NewID()
	}
	for i := range m.Hairpins {
		m.Hairpins[i].ID = NewID()
	}
}
