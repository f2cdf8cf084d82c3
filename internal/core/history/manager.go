// Package history provides undo/redo over full sheet snapshots.
package history

import (
	"sync"

	"github.com/bethropolis/drumsheet/internal/logger"
	"github.com/bethropolis/drumsheet/internal/sheet"
)

// DefaultMaxHistory is the snapshot cap used when none is configured.
const DefaultMaxHistory = 50

// Manager keeps a bounded, linear list of sheet snapshots and a pointer to
// the snapshot matching the live document.
type Manager struct {
	snapshots  []*sheet.Sheet
	current    int // index of the snapshot matching the live sheet
	maxHistory int
	mutex      sync.Mutex
}

// NewManager creates a history manager holding at most maxHistory snapshots.
func NewManager(maxHistory int) *Manager {
	if maxHistory <= 0 {
		maxHistory = DefaultMaxHistory
	}
	return &Manager{
		snapshots:  make([]*sheet.Sheet, 0, maxHistory),
		maxHistory: maxHistory,
	}
}

// Reset discards all snapshots and starts over with s as the only entry.
func (m *Manager) Reset(s *sheet.Sheet) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	clear(m.snapshots)
	m.snapshots = append(m.snapshots[:0], s.Clone())
	m.current = 0
	logger.DebugTagf("history", "History: reset to a single snapshot")
}

// Record stores a copy of s after the current snapshot, dropping anything
// that could have been redone.
func (m *Manager) Record(s *sheet.Sheet) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	// Truncate the redo tail
	if m.current < len(m.snapshots)-1 {
		clear(m.snapshots[m.current+1:])
		m.snapshots = m.snapshots[:m.current+1]
	}

	m.snapshots = append(m.snapshots, s.Clone())

	// Oldest first; the pointer always ends on the newest entry below
	if excess := len(m.snapshots) - m.maxHistory; excess > 0 {
		clear(m.snapshots[:excess])
		m.snapshots = m.snapshots[excess:]
	}

	m.current = len(m.snapshots) - 1
	logger.DebugTagf("history", "History: recorded snapshot. Index: %d, Count: %d", m.current, len(m.snapshots))
}

// Undo steps back one snapshot and returns a copy of it. It returns false
// when already at the oldest snapshot.
func (m *Manager) Undo() (*sheet.Sheet, bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.current <= 0 {
		logger.DebugTagf("history", "History: nothing to undo")
		return nil, false
	}
	m.current--
	logger.DebugTagf("history", "History: undo to index %d of %d", m.current, len(m.snapshots))
	return m.snapshots[m.current].Clone(), true
}

// Redo steps forward one snapshot and returns a copy of it. It returns false
// when already at the newest snapshot.
func (m *Manager) Redo() (*sheet.Sheet, bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.current >= len(m.snapshots)-1 {
		logger.DebugTagf("history", "History: nothing to redo. current=%d, len=%d", m.current, len(m.snapshots))
		return nil, false
	}
	m.current++
	logger.DebugTagf("history", "History: redo to index %d of %d", m.current, len(m.snapshots))
	return m.snapshots[m.current].Clone(), true
}

// CanUndo returns true if there is an older snapshot.
func (m *Manager) CanUndo() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.current > 0
}

// CanRedo returns true if there is a newer snapshot.
func (m *Manager) CanRedo() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.current < len(m.snapshots)-1
}

// Len returns the number of stored snapshots.
func (m *Manager) Len() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.snapshots)
}

// Index returns the position of the current snapshot.
func (m *Manager) Index() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.current
}

// Max returns the snapshot cap.
func (m *Manager) Max() int {
	return m.maxHistory
}

// Current returns a copy of the current snapshot, or nil before Reset.
func (m *Manager) Current() *sheet.Sheet {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if len(m.snapshots) == 0 {
		return nil
	}
	return m.snapshots[m.current].Clone()
}
