// Package sheet defines the drum sheet document model.
package sheet

import (
	"fmt"
	"strings"
)

// Part is a percussion position on the staff.
type Part string

const (
	Crash   Part = "crash"    // space above the staff
	Ride    Part = "ride"     // top line
	HiHat   Part = "hi-hat"   // fourth line
	HighTom Part = "high-tom" // between third and fourth line
	MidTom  Part = "mid-tom"  // third line
	LowTom  Part = "low-tom"  // second line
	Snare   Part = "snare"    // first line
	Bass    Part = "bass"     // space below the staff
)

// Parts lists every part in staff order, top to bottom.
var Parts = []Part{Crash, Ride, HiHat, HighTom, MidTom, LowTom, Snare, Bass}

// Valid reports whether p is one of the known parts.
func (p Part) Valid() bool {
	for _, known := range Parts {
		if p == known {
			return true
		}
	}
	return false
}

// ParsePart parses a part name case-insensitively. "hihat" is accepted for hi-hat.
func ParsePart(s string) (Part, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "hihat" {
		name = string(HiHat)
	}
	p := Part(name)
	if !p.Valid() {
		return "", fmt.Errorf("unknown drum part %q", s)
	}
	return p, nil
}

// Value is a note or rest duration as a fraction of a whole note.
type Value float64

const (
	Whole     Value = 1
	Half      Value = 0.5
	Quarter   Value = 0.25
	Eighth    Value = 0.125
	Sixteenth Value = 0.0625
)

// Values lists the supported durations, longest first.
var Values = []Value{Whole, Half, Quarter, Eighth, Sixteenth}

// Valid reports whether v is one of the five supported durations.
func (v Value) Valid() bool {
	for _, known := range Values {
		if v == known {
			return true
		}
	}
	return false
}

// String returns the conventional name of the duration.
func (v Value) String() string {
	switch v {
	case Whole:
		return "whole"
	case Half:
		return "half"
	case Quarter:
		return "quarter"
	case Eighth:
		return "eighth"
	case Sixteenth:
		return "sixteenth"
	}
	return fmt.Sprintf("%g", float64(v))
}

// ParseValue accepts a duration name ("quarter"), a denominator ("4") or a fraction ("0.25").
func ParseValue(s string) (Value, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "whole", "1", "1/1":
		return Whole, nil
	case "half", "2", "1/2", "0.5":
		return Half, nil
	case "quarter", "4", "1/4", "0.25":
		return Quarter, nil
	case "eighth", "8", "1/8", "0.125":
		return Eighth, nil
	case "sixteenth", "16", "1/16", "0.0625":
		return Sixteenth, nil
	}
	return 0, fmt.Errorf("unknown note value %q", s)
}

// NoteStyle is the notehead shape.
type NoteStyle string

const (
	StyleCymbal NoteStyle = "cymbal" // x-shaped head
	StyleDrum   NoteStyle = "drum"   // round head
)

// StyleFor returns the default notehead for a part.
func StyleFor(p Part) NoteStyle {
	switch p {
	case Crash, Ride, HiHat:
		return StyleCymbal
	default:
		return StyleDrum
	}
}

// DynamicType is a volume marking.
type DynamicType string

const (
	Pianissimo DynamicType = "pp"
	Piano      DynamicType = "p"
	MezzoPiano DynamicType = "mp"
	MezzoForte DynamicType = "mf"
	Forte      DynamicType = "f"
	Fortissimo DynamicType = "ff"
)

// HairpinType is a crescendo or decrescendo wedge.
type HairpinType string

const (
	Crescendo   HairpinType = "crescendo"
	Decrescendo HairpinType = "decrescendo"
)

// SectionType tags a span of measures.
type SectionType string

const (
	Intro     SectionType = "intro"
	Verse     SectionType = "verse"
	PreChorus SectionType = "pre-chorus"
	Chorus    SectionType = "chorus"
	Bridge    SectionType = "bridge"
	Outro     SectionType = "outro"
	Solo      SectionType = "solo"
)

// SectionTypes lists every section type.
var SectionTypes = []SectionType{Intro, Verse, PreChorus, Chorus, Bridge, Outro, Solo}

// Valid reports whether t is a known section type.
func (t SectionType) Valid() bool {
	for _, known := range SectionTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ParseSectionType parses a section type case-insensitively.
func ParseSectionType(s string) (SectionType, error) {
	t := SectionType(strings.ToLower(strings.TrimSpace(s)))
	if t == "prechorus" {
		t = PreChorus
	}
	if !t.Valid() {
		return "", fmt.Errorf("unknown section type %q", s)
	}
	return t, nil
}
