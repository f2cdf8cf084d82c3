// internal/core/store_methods.go
package core

import (
	"slices"

	"github.com/bethropolis/drumsheet/internal/event"
	"github.com/bethropolis/drumsheet/internal/logger"
	"github.com/bethropolis/drumsheet/internal/sheet"
)

// AddMeasure inserts an empty measure right after afterID, or appends it
// when afterID is empty or unknown. The new measure copies the time
// signature of the current last measure. It returns the new measure's id.
func (s *Store) AddMeasure(afterID string) string {
	var id string
	s.commit("add-measure", "", func(sh *sheet.Sheet) bool {
		last := sh.Measures[len(sh.Measures)-1]
		m := sheet.NewMeasure(last.TimeSignature)
		id = m.ID
		insertMeasure(sh, afterID, m)
		return true
	})
	return id
}

func insertMeasure(sh *sheet.Sheet, afterID string, m sheet.Measure) {
	if afterID != "" {
		if i := sh.MeasureIndex(afterID); i >= 0 {
			sh.Measures = slices.Insert(sh.Measures, i+1, m)
			return
		}
	}
	sh.Measures = append(sh.Measures, m)
}

// RemoveMeasure deletes a measure unless it is the only one left. The
// measure is dropped from every section and sections left empty are removed.
func (s *Store) RemoveMeasure(id string) bool {
	return s.commit("remove-measure", id, func(sh *sheet.Sheet) bool {
		i := sh.MeasureIndex(id)
		if i < 0 || len(sh.Measures) <= 1 {
			return false
		}
		sections := sh.Sections[:0]
		for _, sec := range sh.Sections {
			sec.MeasureIDs = slices.DeleteFunc(sec.MeasureIDs, func(mid string) bool { return mid == id })
			if len(sec.MeasureIDs) > 0 {
				sections = append(sections, sec)
			} else {
				logger.DebugTagf("store", "Store: pruning empty section %s", sec.ID)
			}
		}
		sh.Sections = sections
		sh.Measures = slices.Delete(sh.Measures, i, i+1)
		return true
	})
}

// ClearMeasure removes all notes and rests of a measure.
func (s *Store) ClearMeasure(id string) bool {
	return s.commit("clear-measure", id, func(sh *sheet.Sheet) bool {
		m := sh.Measure(id)
		if m == nil {
			return false
		}
		m.Clear()
		return true
	})
}

// ToggleNote removes the note on part at beat (within sheet.BeatTolerance)
// or adds one using the current note value, ghost and accent selection.
// Unknown parts are ignored.
func (s *Store) ToggleNote(measureID string, part sheet.Part, beat float64) bool {
	if !part.Valid() {
		logger.Warnf("Store: ignoring note on unknown part %q", part)
		return false
	}
	return s.commit("toggle-note", measureID, func(sh *sheet.Sheet) bool {
		m := sh.Measure(measureID)
		if m == nil {
			return false
		}
		m.ToggleNote(part, beat, s.session.NoteOptions())
		return true
	})
}

// ToggleRest removes the rest at exactly beat or adds one using the current
// rest value.
func (s *Store) ToggleRest(measureID string, beat float64) bool {
	return s.commit("toggle-rest", measureID, func(sh *sheet.Sheet) bool {
		m := sh.Measure(measureID)
		if m == nil {
			return false
		}
		m.ToggleRest(beat, s.session.RestValue)
		return true
	})
}

// AddSection creates a section over measureIDs and points each existing
// measure at it. Unknown ids are kept in the section's list. A measure that
// already belonged to another section is relinked without touching the
// other section's list.
func (s *Store) AddSection(t sheet.SectionType, label string, measureIDs []string) string {
	sec := sheet.Section{
		ID:         sheet.NewID(),
		Type:       t,
		Label:      label,
		MeasureIDs: append([]string{}, measureIDs...),
	}
	s.commit("add-section", "", func(sh *sheet.Sheet) bool {
		sh.Sections = append(sh.Sections, sec)
		for _, id := range measureIDs {
			if m := sh.Measure(id); m != nil {
				m.SectionID = sec.ID
			}
		}
		return true
	})
	return sec.ID
}

// RemoveSection deletes a section and unlinks the measures pointing at it.
func (s *Store) RemoveSection(id string) bool {
	return s.commit("remove-section", "", func(sh *sheet.Sheet) bool {
		changed := false
		if i := sh.SectionIndex(id); i >= 0 {
			sh.Sections = slices.Delete(sh.Sections, i, i+1)
			changed = true
		}
		for i := range sh.Measures {
			if sh.Measures[i].SectionID == id {
				sh.Measures[i].SectionID = ""
				changed = true
			}
		}
		return changed
	})
}

// SetRepeatStart sets the repeat-start barline of a measure.
func (s *Store) SetRepeatStart(measureID string, on bool) bool {
	return s.commit("repeat-start", measureID, func(sh *sheet.Sheet) bool {
		m := sh.Measure(measureID)
		if m == nil {
			return false
		}
		m.HasRepeatStart = on
		return true
	})
}

// SetRepeatEnd sets the repeat-end barline of a measure.
func (s *Store) SetRepeatEnd(measureID string, on bool) bool {
	return s.commit("repeat-end", measureID, func(sh *sheet.Sheet) bool {
		m := sh.Measure(measureID)
		if m == nil {
			return false
		}
		m.HasRepeatEnd = on
		return true
	})
}

// SetTitle changes the title. Metadata edits are not recorded in history.
func (s *Store) SetTitle(title string) {
	s.update("set-title", func(sh *sheet.Sheet) bool {
		sh.Title = title
		return true
	})
}

// SetArtist changes the artist. Not recorded in history.
func (s *Store) SetArtist(artist string) {
	s.update("set-artist", func(sh *sheet.Sheet) bool {
		sh.Artist = artist
		return true
	})
}

// SetTempo changes the tempo in beats per minute. Non-positive values are
// ignored. Not recorded in history.
func (s *Store) SetTempo(bpm int) bool {
	return s.update("set-tempo", func(sh *sheet.Sheet) bool {
		if bpm <= 0 {
			return false
		}
		sh.Tempo = bpm
		return true
	})
}

// Undo replaces the live sheet with the previous snapshot.
func (s *Store) Undo() bool {
	return s.travel("undo", s.history.Undo)
}

// Redo replaces the live sheet with the next snapshot.
func (s *Store) Redo() bool {
	return s.travel("redo", s.history.Redo)
}

func (s *Store) travel(op string, step func() (*sheet.Sheet, bool)) bool {
	s.mu.Lock()
	snapshot, ok := step()
	if ok {
		s.sheet = snapshot
		s.modified = true
	}
	s.mu.Unlock()

	if !ok {
		return false
	}
	logger.DebugTagf("store", "Store: %s to history index %d", op, s.history.Index())
	s.dispatch(event.TypeHistoryChanged, event.HistoryChangedData{Index: s.history.Index(), Len: s.history.Len()})
	s.dispatch(event.TypeSheetModified, event.SheetModifiedData{Op: op})
	return true
}

// NewSheet replaces the live sheet with a fresh default one and resets history.
func (s *Store) NewSheet() {
	s.mu.Lock()
	s.sheet = sheet.New(s.defaults)
	s.history.Reset(s.sheet)
	s.filePath = ""
	s.modified = false
	s.mu.Unlock()

	logger.InfoTagf("store", "Store: started a new sheet")
	s.dispatch(event.TypeSheetLoaded, event.SheetLoadedData{})
}
