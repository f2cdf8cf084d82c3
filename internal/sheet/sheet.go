package sheet

import "github.com/google/uuid"

// Defaults used when creating a fresh sheet.
const (
	DefaultTitle     = "New Drum Sheet"
	DefaultTempo     = 120
	DefaultBeats     = 4
	DefaultNoteValue = 4
)

// TimeSignature is beats per measure over the note value that gets one beat.
type TimeSignature struct {
	Beats     int `json:"beats"`
	NoteValue int `json:"noteValue"`
}

// DrumNote is a single hit on one part.
type DrumNote struct {
	ID        string    `json:"id"`
	Part      Part      `json:"part"`
	Beat      float64   `json:"beat"` // offset within the measure, starting at 0
	Value     Value     `json:"value"`
	Style     NoteStyle `json:"style,omitempty"`
	IsOpen    bool      `json:"isOpen,omitempty"` // open hi-hat
	IsGhost   bool      `json:"isGhost,omitempty"`
	HasAccent bool      `json:"hasAccent,omitempty"`

	present optional
}

// Rest is a silence at a beat offset.
type Rest struct {
	ID    string  `json:"id"`
	Beat  float64 `json:"beat"`
	Value Value   `json:"value"`
}

// DynamicMark is a volume marking at a beat offset.
type DynamicMark struct {
	ID   string      `json:"id"`
	Beat float64     `json:"beat"`
	Type DynamicType `json:"type"`
}

// Hairpin is a crescendo or decrescendo spanning two beat offsets.
type Hairpin struct {
	ID        string      `json:"id"`
	StartBeat float64     `json:"startBeat"`
	EndBeat   float64     `json:"endBeat"`
	Type      HairpinType `json:"type"`
}

// Section labels a span of measures.
type Section struct {
	ID         string      `json:"id"`
	Type       SectionType `json:"type"`
	Label      string      `json:"label"`
	MeasureIDs []string    `json:"measureIds"`
}

// Measure holds the notes and rests of one bar. Notes and rests are unordered;
// their position is their Beat.
type Measure struct {
	ID             string        `json:"id"`
	TimeSignature  TimeSignature `json:"timeSignature"`
	Notes          []DrumNote    `json:"notes"`
	Rests          []Rest        `json:"rests"`
	Dynamics       []DynamicMark `json:"dynamics,omitempty"`
	Hairpins       []Hairpin     `json:"hairpins,omitempty"`
	SectionID      string        `json:"sectionId,omitempty"`
	HasRepeatStart bool          `json:"hasRepeatStart,omitempty"`
	HasRepeatEnd   bool          `json:"hasRepeatEnd,omitempty"`

	present optional
}

// Sheet is the whole document.
type Sheet struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Artist   string    `json:"artist,omitempty"`
	Tempo    int       `json:"tempo"`
	Measures []Measure `json:"measures"`
	Sections []Section `json:"sections"`

	present optional
}

// Options configures a freshly created sheet.
type Options struct {
	Title         string
	Tempo         int
	TimeSignature TimeSignature
}

// DefaultOptions returns the stock title, tempo and 4/4 time.
func DefaultOptions() Options {
	return Options{
		Title:         DefaultTitle,
		Tempo:         DefaultTempo,
		TimeSignature: TimeSignature{Beats: DefaultBeats, NoteValue: DefaultNoteValue},
	}
}

// NewID returns a random identifier for any document element.
func NewID() string {
	return uuid.NewString()
}

// New creates a sheet with a single empty measure. Zero option fields fall
// back to the defaults.
func New(opts Options) *Sheet {
	def := DefaultOptions()
	if opts.Title == "" {
		opts.Title = def.Title
	}
	if opts.Tempo <= 0 {
		opts.Tempo = def.Tempo
	}
	if opts.TimeSignature.Beats <= 0 || opts.TimeSignature.NoteValue <= 0 {
		opts.TimeSignature = def.TimeSignature
	}
	return &Sheet{
		ID:       NewID(),
		Title:    opts.Title,
		Tempo:    opts.Tempo,
		Measures: []Measure{NewMeasure(opts.TimeSignature)},
		Sections: []Section{},
	}
}

// NewMeasure returns an empty measure with a fresh id.
func NewMeasure(ts TimeSignature) Measure {
	return Measure{
		ID:            NewID(),
		TimeSignature: ts,
		Notes:         []DrumNote{},
		Rests:         []Rest{},
	}
}

// Clone returns a deep copy that shares no slices with s.
func (s *Sheet) Clone() *Sheet {
	if s == nil {
		return nil
	}
	c := *s
	c.Measures = make([]Measure, len(s.Measures))
	for i := range s.Measures {
		c.Measures[i] = s.Measures[i].Clone()
	}
	c.Sections = make([]Section, len(s.Sections))
	for i, sec := range s.Sections {
		sec.MeasureIDs = append([]string{}, sec.MeasureIDs...)
		c.Sections[i] = sec
	}
	return &c
}

// Clone returns a deep copy of the measure. Nil optional slices stay nil.
func (m Measure) Clone() Measure {
	c := m
	c.Notes = append([]DrumNote{}, m.Notes...)
	c.Rests = append([]Rest{}, m.Rests...)
	if m.Dynamics != nil {
		c.Dynamics = append([]DynamicMark{}, m.Dynamics...)
	}
	if m.Hairpins != nil {
		c.Hairpins = append([]Hairpin{}, m.Hairpins...)
	}
	return c
}

// MeasureIndex returns the position of the measure with the given id, or -1.
func (s *Sheet) MeasureIndex(id string) int {
	for i := range s.Measures {
		if s.Measures[i].ID == id {
			return i
		}
	}
	return -1
}

// Measure returns a pointer into s.Measures, or nil if id is unknown.
func (s *Sheet) Measure(id string) *Measure {
	if i := s.MeasureIndex(id); i >= 0 {
		return &s.Measures[i]
	}
	return nil
}

// SectionIndex returns the position of the section with the given id, or -1.
func (s *Sheet) SectionIndex(id string) int {
	for i := range s.Sections {
		if s.Sections[i].ID == id {
			return i
		}
	}
	return -1
}

// MeasureSections maps each measure id to the section listing it. When two
// sections list the same measure the later one wins.
func (s *Sheet) MeasureSections() map[string]*Section {
	out := make(map[string]*Section)
	for i := range s.Sections {
		sec := &s.Sections[i]
		for _, id := range sec.MeasureIDs {
			out[id] = sec
		}
	}
	return out
}

// Stats summarizes the contents of a sheet.
type Stats struct {
	Measures int
	Sections int
	Notes    int
	Rests    int
	PerPart  map[Part]int
}

// Stats counts notes per part along with rests, measures and sections.
func (s *Sheet) Stats() Stats {
	st := Stats{
		Measures: len(s.Measures),
		Sections: len(s.Sections),
		PerPart:  make(map[Part]int, len(Parts)),
	}
	for _, m := range s.Measures {
		st.Notes += len(m.Notes)
		st.Rests += len(m.Rests)
		for _, n := range m.Notes {
			st.PerPart[n.Part]++
		}
	}
	return st
}
