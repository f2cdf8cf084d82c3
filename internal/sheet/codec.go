package sheet

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

var (
	// ErrInvalidDocument is returned when input cannot be decoded as a sheet.
	ErrInvalidDocument = errors.New("invalid drum sheet document")
	// ErrNoMeasures is returned for a document without any measure.
	ErrNoMeasures = errors.New("drum sheet has no measures")
)

// FileExtension is appended to exported sheets.
const FileExtension = ".json"

// Encode writes s as indented JSON.
func Encode(w io.Writer, s *Sheet) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode sheet: %w", err)
	}
	return nil
}

// Decode reads one JSON sheet from r; trailing content is an error. Missing
// note, rest and section lists are normalized to empty ones.
func Decode(r io.Reader) (*Sheet, error) {
	var s Sheet
	if err := decodeOne(r, &s); err != nil {
		return nil, err
	}
	if len(s.Measures) == 0 {
		return nil, ErrNoMeasures
	}
	if s.Sections == nil {
		s.Sections = []Section{}
	}
	for i := range s.Measures {
		m := &s.Measures[i]
		if m.Notes == nil {
			m.Notes = []DrumNote{}
		}
		if m.Rests == nil {
			m.Rests = []Rest{}
		}
	}
	for i := range s.Sections {
		if s.Sections[i].MeasureIDs == nil {
			s.Sections[i].MeasureIDs = []string{}
		}
	}
	return &s, nil
}

// EncodeMeasure writes a single measure as compact JSON.
func EncodeMeasure(w io.Writer, m Measure) error {
	if err := json.NewEncoder(w).Encode(m); err != nil {
		return fmt.Errorf("encode measure: %w", err)
	}
	return nil
}

// DecodeMeasure reads a single JSON measure from r.
func DecodeMeasure(r io.Reader) (Measure, error) {
	var m Measure
	if err := decodeOne(r, &m); err != nil {
		return Measure{}, err
	}
	if m.TimeSignature.Beats <= 0 || m.TimeSignature.NoteValue <= 0 {
		return Measure{}, fmt.Errorf("%w: measure has no time signature", ErrInvalidDocument)
	}
	if m.Notes == nil {
		m.Notes = []DrumNote{}
	}
	if m.Rests == nil {
		m.Rests = []Rest{}
	}
	return m, nil
}

// decodeOne decodes exactly one JSON value from r into v.
func decodeOne(r io.Reader, v any) error {
	dec := json.NewDecoder(r)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			err = errors.New("unexpected data after document")
		}
		return fmt.Errorf("%w: trailing content: %w", ErrInvalidDocument, err)
	}
	return nil
}
