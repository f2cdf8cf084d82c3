// internal/core/store.go
package core

import (
	"errors"
	"sync"

	"github.com/bethropolis/drumsheet/internal/core/clipboard"
	"github.com/bethropolis/drumsheet/internal/core/history"
	"github.com/bethropolis/drumsheet/internal/event"
	"github.com/bethropolis/drumsheet/internal/logger"
	"github.com/bethropolis/drumsheet/internal/sheet"
)

// ErrMeasureNotFound is returned by clipboard operations given an unknown measure id.
var ErrMeasureNotFound = errors.New("measure not found")

// Store owns the live drum sheet, the session selection and the undo history.
// Structural edits commit a snapshot; metadata and selection edits do not.
type Store struct {
	mu       sync.Mutex
	sheet    *sheet.Sheet
	session  Session
	history  *history.Manager
	defaults sheet.Options

	eventManager *event.Manager
	clipboard    clipboard.Backend

	filePath string
	modified bool
}

// Option configures a Store.
type Option func(*Store)

// WithMaxHistory caps the number of stored snapshots.
func WithMaxHistory(n int) Option {
	return func(s *Store) { s.history = history.NewManager(n) }
}

// WithDefaults sets the title, tempo and time signature used for new sheets.
func WithDefaults(opts sheet.Options) Option {
	return func(s *Store) { s.defaults = opts }
}

// WithEventManager makes the store dispatch document events.
func WithEventManager(mgr *event.Manager) Option {
	return func(s *Store) { s.eventManager = mgr }
}

// WithClipboard sets the clipboard used to copy and paste measures.
func WithClipboard(b clipboard.Backend) Option {
	return func(s *Store) { s.clipboard = b }
}

// NewStore creates a store holding a fresh default sheet and a single
// history entry.
func NewStore(opts ...Option) *Store {
	s := &Store{
		session:   DefaultSession(),
		history:   history.NewManager(history.DefaultMaxHistory),
		defaults:  sheet.DefaultOptions(),
		clipboard: &clipboard.Memory{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.sheet = sheet.New(s.defaults)
	s.history.Reset(s.sheet)
	return s
}

// SetEventManager sets the event manager for dispatching events.
func (s *Store) SetEventManager(mgr *event.Manager) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.eventManager = mgr
}

// Sheet returns a deep copy of the live sheet.
func (s *Store) Sheet() *sheet.Sheet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sheet.Clone()
}

// Read calls fn with the live sheet while holding the store lock. fn must
// not keep the pointer or call back into the store.
func (s *Store) Read(fn func(sh *sheet.Sheet)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.sheet)
}

// Stats summarizes the live sheet.
func (s *Store) Stats() sheet.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sheet.Stats()
}

// FilePath is the file the sheet was last loaded from or saved to.
func (s *Store) FilePath() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filePath
}

// Modified reports whether the sheet changed since it was loaded, created or saved.
func (s *Store) Modified() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.modified
}

// CanUndo reports whether Undo would change the sheet.
func (s *Store) CanUndo() bool {
	return s.history.CanUndo()
}

// CanRedo reports whether Redo would change the sheet.
func (s *Store) CanRedo() bool {
	return s.history.CanRedo()
}

// HistoryLen returns the number of stored snapshots.
func (s *Store) HistoryLen() int {
	return s.history.Len()
}

// commit runs fn on the live sheet and, when fn reports a change, records a
// snapshot and dispatches TypeSheetModified. Events are dispatched after the
// lock is released so handlers may read the store.
func (s *Store) commit(op, measureID string, fn func(sh *sheet.Sheet) bool) bool {
	s.mu.Lock()
	changed := fn(s.sheet)
	if changed {
		s.history.Record(s.sheet)
		s.modified = true
	}
	mgr := s.eventManager
	s.mu.Unlock()

	if !changed {
		logger.DebugTagf("store", "Store: %s made no change", op)
		return false
	}
	logger.DebugTagf("store", "Store: committed %s", op)
	if mgr != nil {
		mgr.Dispatch(event.TypeSheetModified, event.SheetModifiedData{Op: op, MeasureID: measureID})
	}
	return true
}

// update is commit without a history snapshot, for metadata edits.
func (s *Store) update(op string, fn func(sh *sheet.Sheet) bool) bool {
	s.mu.Lock()
	changed := fn(s.sheet)
	if changed {
		s.modified = true
	}
	mgr := s.eventManager
	s.mu.Unlock()

	if changed && mgr != nil {
		mgr.Dispatch(event.TypeSheetModified, event.SheetModifiedData{Op: op})
	}
	return changed
}

func (s *Store) dispatch(t event.Type, data interface{}) {
	s.mu.Lock()
	mgr := s.eventManager
	s.mu.Unlock()
	if mgr != nil {
		mgr.Dispatch(t, data)
	}
}
