package sheet

import "encoding/json"

// optional records which optional keys a decoded document spelled out with
// a zero value, so encoding writes them back instead of dropping them.
type optional uint8

const (
	hasStyle optional = 1 << iota
	hasIsOpen
	hasIsGhost
	hasHasAccent
	hasSectionID
	hasRepeatStart
	hasRepeatEnd
	hasArtist
)

// keep returns &v when v is set or its key was present on input.
func keep[T comparable](v T, present optional, bit optional) *T {
	var zero T
	if v == zero && present&bit == 0 {
		return nil
	}
	return &v
}

// mark records bit when the decoded key held a zero value.
func mark[T comparable](dst *T, src *T, present *optional, bit optional) {
	if src == nil {
		return
	}
	*dst = *src
	var zero T
	if *src == zero {
		*present |= bit
	}
}

func (n DrumNote) MarshalJSON() ([]byte, error) {
	type plain DrumNote
	return json.Marshal(struct {
		plain
		Style     *NoteStyle `json:"style,omitempty"`
		IsOpen    *bool      `json:"isOpen,omitempty"`
		IsGhost   *bool      `json:"isGhost,omitempty"`
		HasAccent *bool      `json:"hasAccent,omitempty"`
	}{
		plain:     plain(n),
		Style:     keep(n.Style, n.present, hasStyle),
		IsOpen:    keep(n.IsOpen, n.present, hasIsOpen),
		IsGhost:   keep(n.IsGhost, n.present, hasIsGhost),
		HasAccent: keep(n.HasAccent, n.present, hasHasAccent),
	})
}

func (n *DrumNote) UnmarshalJSON(data []byte) error {
	type plain DrumNote
	var aux struct {
		plain
		Style     *NoteStyle `json:"style"`
		IsOpen    *bool      `json:"isOpen"`
		IsGhost   *bool      `json:"isGhost"`
		HasAccent *bool      `json:"hasAccent"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*n = DrumNote(aux.plain)
	n.present = 0
	mark(&n.Style, aux.Style, &n.present, hasStyle)
	mark(&n.IsOpen, aux.IsOpen, &n.present, hasIsOpen)
	mark(&n.IsGhost, aux.IsGhost, &n.present, hasIsGhost)
	mark(&n.HasAccent, aux.HasAccent, &n.present, hasHasAccent)
	return nil
}

// Dynamics and hairpins are written whenever the slice is non-nil, so an
// empty list survives a round trip while a missing one stays missing.
func (m Measure) MarshalJSON() ([]byte, error) {
	type plain Measure
	return json.Marshal(struct {
		plain
		Dynamics       *[]DynamicMark `json:"dynamics,omitempty"`
		Hairpins       *[]Hairpin     `json:"hairpins,omitempty"`
		SectionID      *string        `json:"sectionId,omitempty"`
		HasRepeatStart *bool          `json:"hasRepeatStart,omitempty"`
		HasRepeatEnd   *bool          `json:"hasRepeatEnd,omitempty"`
	}{
		plain:          plain(m),
		Dynamics:       nonNil(m.Dynamics),
		Hairpins:       nonNil(m.Hairpins),
		SectionID:      keep(m.SectionID, m.present, hasSectionID),
		HasRepeatStart: keep(m.HasRepeatStart, m.present, hasRepeatStart),
		HasRepeatEnd:   keep(m.HasRepeatEnd, m.present, hasRepeatEnd),
	})
}

func (m *Measure) UnmarshalJSON(data []byte) error {
	type plain Measure
	var aux struct {
		plain
		SectionID      *string `json:"sectionId"`
		HasRepeatStart *bool   `json:"hasRepeatStart"`
		HasRepeatEnd   *bool   `json:"hasRepeatEnd"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*m = Measure(aux.plain)
	m.present = 0
	mark(&m.SectionID, aux.SectionID, &m.present, hasSectionID)
	mark(&m.HasRepeatStart, aux.HasRepeatStart, &m.present, hasRepeatStart)
	mark(&m.HasRepeatEnd, aux.HasRepeatEnd, &m.present, hasRepeatEnd)
	return nil
}

func nonNil[T any](s []T) *[]T {
	if s == nil {
		return nil
	}
	return &s
}

// MarshalJSON spells the fields out to keep "artist" between title and tempo.
func (s Sheet) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID       string    `json:"id"`
		Title    string    `json:"title"`
		Artist   *string   `json:"artist,omitempty"`
		Tempo    int       `json:"tempo"`
		Measures []Measure `json:"measures"`
		Sections []Section `json:"sections"`
	}{
		ID:       s.ID,
		Title:    s.Title,
		Artist:   keep(s.Artist, s.present, hasArtist),
		Tempo:    s.Tempo,
		Measures: s.Measures,
		Sections: s.Sections,
	})
}

func (s *Sheet) UnmarshalJSON(data []byte) error {
	type plain Sheet
	var aux struct {
		plain
		Artist *string `json:"artist"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*s = Sheet(aux.plain)
	s.present = 0
	mark(&s.Artist, aux.Artist, &s.present, hasArtist)
	return nil
}
