package app

import (
	"github.com/bethropolis/drumsheet/internal/core/cursor"
	"github.com/bethropolis/drumsheet/internal/logger"
	"github.com/bethropolis/drumsheet/internal/modehandler"
	"github.com/bethropolis/drumsheet/internal/sheet"
	"github.com/bethropolis/drumsheet/internal/statusbar"
	"github.com/bethropolis/drumsheet/internal/theme"
	"github.com/bethropolis/drumsheet/internal/tui"
	"github.com/bethropolis/drumsheet/internal/types"
)

var cursorHome = types.Position{}

// draw clears the screen and redraws all components.
func (a *App) draw() {
	a.updateStatusBarContent()

	activeTheme := a.themeManager.Current()
	screen := a.tuiManager.GetScreen()
	width, height := a.tuiManager.Size()
	viewHeight := height - a.cfg.Editor.StatusBarHeight
	spb := a.cfg.Editor.StepsPerBeat

	logger.DebugTagf("draw", "draw: Screen Size (%d x %d), ViewHeight: %d", width, height, viewHeight)

	a.tuiManager.Clear()
	a.cursor.Clamp()
	a.store.Read(func(sh *sheet.Sheet) {
		a.cursor.ScrollToCursor(tui.MeasureWidths(sh, spb), width-tui.GutterWidth)
		tui.DrawSheet(a.tuiManager, sh, tui.View{
			Cursor:       a.cursor.GetPosition(),
			FirstMeasure: a.cursor.GetViewport(),
			StepsPerBeat: spb,
			Theme:        activeTheme,
			Height:       viewHeight,
		})
	})
	a.statusBar.Draw(screen, width, height)
	a.tuiManager.Show()
}

// updateStatusBarContent pushes current editor state to the status bar.
func (a *App) updateStatusBarContent() {
	a.statusBar.SetFileInfo(a.store.FilePath(), a.store.Modified())
	a.statusBar.SetEditorMode(a.modeHandler.GetCurrentMode().String())

	pos := a.cursor.GetPosition()
	a.statusBar.SetCursorInfo(statusbar.CursorInfo{
		Measure:  pos.Measure,
		Measures: a.store.Stats().Measures,
		Beat:     cursor.BeatAt(pos.Step, a.cfg.Editor.StepsPerBeat),
		Part:     a.modeHandler.CurrentPart(),
	})
	sess := a.store.Session()
	a.statusBar.SetSelectionInfo(statusbar.SelectionInfo{Value: sess.NoteValue, Ghost: sess.Ghost, Accent: sess.Accent})

	// Keep the command line visible while typing
	if a.modeHandler.GetCurrentMode() == modehandler.ModeCommand {
		a.statusBar.SetTemporaryMessage(":%s", a.modeHandler.GetCommandBuffer())
	}
}

// applyTheme pushes the active theme to the screen and status bar.
func (a *App) applyTheme(th *theme.Theme) {
	a.tuiManager.SetTheme(th)
	a.statusBar.SetConfig(statusbar.ConfigFromTheme(th))
	a.requestRedraw()
}
