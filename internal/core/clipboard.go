package core

import (
	"fmt"
	"strings"

	"github.com/bethropolis/drumsheet/internal/logger"
	"github.com/bethropolis/drumsheet/internal/sheet"
)

// CopyMeasure puts the measure's JSON on the clipboard.
func (s *Store) CopyMeasure(id string) error {
	s.mu.Lock()
	m := s.sheet.Measure(id)
	var copied sheet.Measure
	if m != nil {
		copied = m.Clone()
	}
	clip := s.clipboard
	s.mu.Unlock()

	if m == nil {
		return fmt.Errorf("copy measure %q: %w", id, ErrMeasureNotFound)
	}

	var b strings.Builder
	if err := sheet.EncodeMeasure(&b, copied); err != nil {
		return err
	}
	if err := clip.WriteAll(b.String()); err != nil {
		return err
	}
	logger.DebugTagf("store", "Store: copied measure %s (%d notes)", id, len(copied.Notes))
	return nil
}

// PasteMeasure inserts the clipboard measure after afterID (or at the end)
// with fresh ids and no section. It returns the new measure's id.
func (s *Store) PasteMeasure(afterID string) (string, error) {
	s.mu.Lock()
	clip := s.clipboard
	s.mu.Unlock()

	text, err := clip.ReadAll()
	if err != nil {
		return "", err
	}
	m, err := sheet.DecodeMeasure(strings.NewReader(text))
	if err != nil {
		return "", fmt.Errorf("paste measure: %w", err)
	}
	m.Renew()

	s.commit("paste-measure", m.ID, func(sh *sheet.Sheet) bool {
		insertMeasure(sh, afterID, m)
		return true
	})
	return m.ID, nil
}
