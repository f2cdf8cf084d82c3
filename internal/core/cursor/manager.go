package cursor

import (
	"math"

	"github.com/bethropolis/drumsheet/internal/core"
	"github.com/bethropolis/drumsheet/internal/logger"
	"github.com/bethropolis/drumsheet/internal/sheet"
	"github.com/bethropolis/drumsheet/internal/types"
)

// Grid is the shape the cursor moves over.
type Grid interface {
	MeasureCount() int
	StepCount(measure int) int
}

// StoreGrid exposes a store's measures as a grid with StepsPerBeat steps
// per beat.
type StoreGrid struct {
	Store        *core.Store
	StepsPerBeat int
}

func (g StoreGrid) MeasureCount() int {
	n := 0
	g.Store.Read(func(sh *sheet.Sheet) { n = len(sh.Measures) })
	return n
}

func (g StoreGrid) StepCount(measure int) int {
	n := 0
	g.Store.Read(func(sh *sheet.Sheet) {
		if measure >= 0 && measure < len(sh.Measures) {
			n = StepsIn(sh.Measures[measure], g.StepsPerBeat)
		}
	})
	return n
}

// StepsIn returns the number of grid steps in m.
func StepsIn(m sheet.Measure, stepsPerBeat int) int {
	return m.TimeSignature.Beats * stepsPerBeat
}

// BeatAt converts a grid step to a beat position.
func BeatAt(step, stepsPerBeat int) float64 {
	return float64(step) / float64(stepsPerBeat)
}

// StepAt snaps a beat position to the nearest grid step.
func StepAt(beat float64, stepsPerBeat int) int {
	return int(math.Round(beat * float64(stepsPerBeat)))
}

// Manager handles cursor positioning and the horizontal measure viewport.
type Manager struct {
	grid        Grid
	rows        int
	position    types.Position
	viewportTop int // First visible measure
}

// NewManager creates a cursor over grid with the given number of rows.
func NewManager(grid Grid, rows int) *Manager {
	return &Manager{grid: grid, rows: rows}
}

// GetViewport returns the first visible measure.
func (m *Manager) GetViewport() int {
	return m.viewportTop
}

// GetPosition returns the current cursor position.
func (m *Manager) GetPosition() types.Position {
	return m.position
}

// SetPosition moves the cursor to pos, clamped to the grid.
func (m *Manager) SetPosition(pos types.Position) {
	measures := m.grid.MeasureCount()
	if measures == 0 {
		logger.Warnf("CursorManager.SetPosition: grid has no measures")
		m.position = types.Position{}
		return
	}
	pos.Measure = clamp(pos.Measure, 0, measures-1)
	pos.Row = clamp(pos.Row, 0, m.rows-1)
	pos.Step = clamp(pos.Step, 0, m.grid.StepCount(pos.Measure)-1)
	m.position = pos
}

// Clamp re-applies the grid bounds, e.g. after a measure was removed.
func (m *Manager) Clamp() {
	m.SetPosition(m.position)
}

// Move moves by rows and steps. Steps flow into neighbouring measures.
func (m *Manager) Move(deltaRow, deltaStep int) {
	pos := m.position
	pos.Row += deltaRow
	pos.Step += deltaStep

	count := m.grid.MeasureCount()
	for pos.Step < 0 && pos.Measure > 0 {
		pos.Measure--
		pos.Step += m.grid.StepCount(pos.Measure)
	}
	for pos.Measure < count-1 && pos.Step >= m.grid.StepCount(pos.Measure) {
		pos.Step -= m.grid.StepCount(pos.Measure)
		pos.Measure++
	}
	m.SetPosition(pos)
}

// MoveMeasure jumps delta measures, keeping row and step where possible.
func (m *Manager) MoveMeasure(delta int) {
	pos := m.position
	pos.Measure += delta
	m.SetPosition(pos)
}

// MoveToMeasureStart moves to the first step of the current measure.
func (m *Manager) MoveToMeasureStart() {
	pos := m.position
	pos.Step = 0
	m.SetPosition(pos)
}

// MoveToMeasureEnd moves to the last step of the current measure.
func (m *Manager) MoveToMeasureEnd() {
	pos := m.position
	pos.Step = m.grid.StepCount(pos.Measure) - 1
	m.SetPosition(pos)
}

// ScrollToCursor adjusts the viewport so the cursor's measure is visible.
// widths holds the screen columns of every measure; available is the
// width of the grid area.
func (m *Manager) ScrollToCursor(widths []int, available int) {
	cur := m.position.Measure
	if cur >= len(widths) {
		return
	}
	if m.viewportTop > cur {
		m.viewportTop = cur
	}
	if m.viewportTop >= len(widths) {
		m.viewportTop = len(widths) - 1
	}
	for m.viewportTop < cur && span(widths, m.viewportTop, cur) > available {
		m.viewportTop++
	}
}

func span(widths []int, from, to int) int {
	total := 0
	for i := from; i <= to; i++ {
		total += widths[i]
	}
	return total
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
