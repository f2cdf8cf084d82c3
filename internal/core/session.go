package core

import (
	"github.com/bethropolis/drumsheet/internal/event"
	"github.com/bethropolis/drumsheet/internal/sheet"
)

// Session is the editing selection applied to the next toggle. It is not
// part of the document and never enters history.
type Session struct {
	NoteValue sheet.Value
	RestValue sheet.Value
	DrumPart  sheet.Part // empty means the part is chosen by position
	Ghost     bool
	Accent    bool
}

// DefaultSession selects quarter notes and rests with no fixed part.
func DefaultSession() Session {
	return Session{
		NoteValue: sheet.Quarter,
		RestValue: sheet.Quarter,
	}
}

// NoteOptions is the part of the selection captured into a new note.
func (s Session) NoteOptions() sheet.NoteOptions {
	return sheet.NoteOptions{Value: s.NoteValue, Ghost: s.Ghost, Accent: s.Accent}
}

// Session returns the current selection.
func (s *Store) Session() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

func (s *Store) changeSession(fn func(sess *Session) bool) bool {
	s.mu.Lock()
	changed := fn(&s.session)
	sess := s.session
	s.mu.Unlock()
	if changed {
		s.dispatch(event.TypeSelectionChanged, sess)
	}
	return changed
}

// SetSelectedNoteValue sets the duration of notes added from now on.
// Unsupported durations are ignored.
func (s *Store) SetSelectedNoteValue(v sheet.Value) bool {
	return s.changeSession(func(sess *Session) bool {
		if !v.Valid() {
			return false
		}
		sess.NoteValue = v
		return true
	})
}

// SetSelectedRestValue sets the duration of rests added from now on.
func (s *Store) SetSelectedRestValue(v sheet.Value) bool {
	return s.changeSession(func(sess *Session) bool {
		if !v.Valid() {
			return false
		}
		sess.RestValue = v
		return true
	})
}

// SetSelectedDrumPart fixes the part used by the UI, or clears it with "".
func (s *Store) SetSelectedDrumPart(p sheet.Part) bool {
	return s.changeSession(func(sess *Session) bool {
		if p != "" && !p.Valid() {
			return false
		}
		sess.DrumPart = p
		return true
	})
}

// ToggleGhostNoteMode flips ghost mode and returns the new state. Existing
// notes keep their flags.
func (s *Store) ToggleGhostNoteMode() bool {
	var on bool
	s.changeSession(func(sess *Session) bool {
		sess.Ghost = !sess.Ghost
		on = sess.Ghost
		return true
	})
	return on
}

// ToggleAccentMode flips accent mode and returns the new state.
func (s *Store) ToggleAccentMode() bool {
	var on bool
	s.changeSession(func(sess *Session) bool {
		sess.Accent = !sess.Accent
		on = sess.Accent
		return true
	})
	return on
}
