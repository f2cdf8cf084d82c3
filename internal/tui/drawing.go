// internal/tui/drawing.go
package tui

import (
	"fmt"

	"github.com/bethropolis/drumsheet/internal/core/cursor"
	"github.com/bethropolis/drumsheet/internal/sheet"
	"github.com/bethropolis/drumsheet/internal/theme"
	"github.com/bethropolis/drumsheet/internal/types"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// Screen rows of the drum grid.
const (
	HeaderRow    = 0
	SectionRow   = 1
	FirstPartRow = 2
)

// RestRow is the row below the last part.
var RestRow = FirstPartRow + len(sheet.Parts)

// GutterWidth is the width of the part label column.
const GutterWidth = 9

// MeasureWidth is the screen width of a measure: a leading barline, one
// column per step and a trailing repeat column.
func MeasureWidth(m sheet.Measure, stepsPerBeat int) int {
	return cursor.StepsIn(m, stepsPerBeat) + 2
}

// MeasureWidths returns the width of every measure in sh.
func MeasureWidths(sh *sheet.Sheet, stepsPerBeat int) []int {
	widths := make([]int, len(sh.Measures))
	for i, m := range sh.Measures {
		widths[i] = MeasureWidth(m, stepsPerBeat)
	}
	return widths
}

// View is what DrawSheet needs besides the sheet itself.
type View struct {
	Cursor       types.Position
	FirstMeasure int
	StepsPerBeat int
	Theme        *theme.Theme
	Height       int // rows available above the status bar
}

// NoteGlyph returns the character for a note: x for cymbals, o for drums,
// upper case when accented.
func NoteGlyph(n sheet.DrumNote) rune {
	style := n.Style
	if style == "" {
		style = sheet.StyleFor(n.Part)
	}
	switch {
	case style == sheet.StyleCymbal && n.IsOpen:
		return 'o'
	case style == sheet.StyleCymbal && n.HasAccent:
		return 'X'
	case style == sheet.StyleCymbal:
		return 'x'
	case n.HasAccent:
		return 'O'
	default:
		return 'o'
	}
}

type cellKey struct {
	part sheet.Part
	step int
}

// DrawSheet draws the header, section line, part rows and rest row.
func DrawSheet(t *TUI, sh *sheet.Sheet, v View) {
	th := v.Theme
	if th == nil {
		th = &theme.StageDark
	}
	width, _ := t.Size()
	if width <= 0 || v.Height <= 0 || v.StepsPerBeat <= 0 {
		return
	}

	defaultStyle := th.GetStyle(theme.StyleDefault)
	for y := 0; y < v.Height; y++ {
		for x := 0; x < width; x++ {
			t.screen.SetContent(x, y, ' ', nil, defaultStyle)
		}
	}

	header := sh.Title
	if sh.Artist != "" {
		header += " - " + sh.Artist
	}
	if len(sh.Measures) > 0 {
		ts := sh.Measures[0].TimeSignature
		header += fmt.Sprintf("  %d/%d", ts.Beats, ts.NoteValue)
	}
	header += fmt.Sprintf("  %d bpm", sh.Tempo)
	drawText(t, 0, HeaderRow, width, header, th.GetStyle(theme.StyleHeader))

	labelStyle := th.GetStyle(theme.StylePartLabel)
	for i, p := range sheet.Parts {
		drawText(t, 0, FirstPartRow+i, GutterWidth-1, string(p), labelStyle)
	}
	drawText(t, 0, RestRow, GutterWidth-1, "rest", labelStyle)

	t.screen.HideCursor()
	x := GutterWidth
	prevSection := ""
	if v.FirstMeasure > 0 && v.FirstMeasure <= len(sh.Measures) {
		prevSection = sh.Measures[v.FirstMeasure-1].SectionID
	}
	for mi := v.FirstMeasure; mi < len(sh.Measures) && x < width; mi++ {
		m := &sh.Measures[mi]
		if m.SectionID != "" && m.SectionID != prevSection {
			if si := sh.SectionIndex(m.SectionID); si >= 0 {
				sec := sh.Sections[si]
				label := sec.Label
				if label == "" {
					label = string(sec.Type)
				}
				drawText(t, x, SectionRow, width-x, label, th.GetStyle(theme.StyleSection))
			}
		}
		prevSection = m.SectionID
		drawMeasure(t, x, width, mi, m, v, th)
		x += MeasureWidth(*m, v.StepsPerBeat)
	}
}

func drawMeasure(t *TUI, x0, width, index int, m *sheet.Measure, v View, th *theme.Theme) {
	steps := cursor.StepsIn(*m, v.StepsPerBeat)

	notes := make(map[cellKey]sheet.DrumNote, len(m.Notes))
	for _, n := range m.Notes {
		notes[cellKey{n.Part, cursor.StepAt(n.Beat, v.StepsPerBeat)}] = n
	}
	rests := make(map[int]bool, len(m.Rests))
	for _, r := range m.Rests {
		rests[cursor.StepAt(r.Beat, v.StepsPerBeat)] = true
	}

	barStyle := th.GetStyle(theme.StyleBarline)
	repeatStyle := th.GetStyle(theme.StyleRepeat)
	for y := FirstPartRow; y <= RestRow; y++ {
		if m.HasRepeatStart {
			setCell(t, x0, y, width, '[', repeatStyle)
		} else {
			setCell(t, x0, y, width, '|', barStyle)
		}
		if m.HasRepeatEnd {
			setCell(t, x0+steps+1, y, width, ']', repeatStyle)
		}
	}

	for row, part := range sheet.Parts {
		y := FirstPartRow + row
		for step := 0; step < steps; step++ {
			r, style := '-', th.GetStyle(theme.StyleGrid)
			if step%v.StepsPerBeat == 0 {
				style = th.GetStyle(theme.StyleGridBeat)
			}
			if n, ok := notes[cellKey{part, step}]; ok {
				r = NoteGlyph(n)
				switch {
				case n.IsGhost:
					style = th.GetStyle(theme.StyleNoteGhost)
				case n.HasAccent:
					style = th.GetStyle(theme.StyleNoteAccent)
				default:
					style = th.GetStyle(theme.StyleNote)
				}
			}
			cellX := x0 + 1 + step
			if index == v.Cursor.Measure && row == v.Cursor.Row && step == v.Cursor.Step {
				style = th.GetStyle(theme.StyleCursor)
				if cellX < width && y < v.Height {
					t.screen.ShowCursor(cellX, y)
				}
			}
			setCell(t, cellX, y, width, r, style)
		}
	}

	restStyle := th.GetStyle(theme.StyleRest)
	for step := 0; step < steps; step++ {
		if rests[step] {
			setCell(t, x0+1+step, RestRow, width, 'R', restStyle)
		}
	}
}

func setCell(t *TUI, x, y, width int, r rune, style tcell.Style) {
	if x < 0 || x >= width {
		return
	}
	t.screen.SetContent(x, y, r, nil, style)
}

// drawText draws text from (x, y), clipped to maxWidth columns.
func drawText(t *TUI, x, y, maxWidth int, text string, style tcell.Style) {
	gr := uniseg.NewGraphemes(text)
	used := 0
	for gr.Next() {
		w := gr.Width()
		if used+w > maxWidth {
			break
		}
		if runes := gr.Runes(); len(runes) > 0 {
			t.screen.SetContent(x+used, y, runes[0], runes[1:], style)
		}
		used += w
	}
}
