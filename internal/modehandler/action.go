package modehandler

import (
	"errors"

	"github.com/bethropolis/drumsheet/internal/commands"
	"github.com/bethropolis/drumsheet/internal/input"
	"github.com/bethropolis/drumsheet/internal/logger"
	"github.com/bethropolis/drumsheet/internal/sheet"
	"github.com/bethropolis/drumsheet/internal/types"
)

// handleActionNormal handles actions on the grid.
func (mh *ModeHandler) handleActionNormal(actionEvent input.ActionEvent) bool {
	actionProcessed := true

	switch actionEvent.Action {
	// --- Mode Switching ---
	case input.ActionEnterCommandMode:
		mh.currentMode = ModeCommand
		mh.cmdBuffer = nil
		mh.statusBar.SetTemporaryMessage(":")
		logger.Debugf("ModeHandler: Entering Command Mode")

	// --- Quit/Save ---
	case input.ActionQuit:
		// The second ESC in a row forces the quit
		err := mh.Quit(mh.forceQuitPending)
		if errors.Is(err, commands.ErrUnsavedChanges) {
			mh.statusBar.SetTemporaryMessage("Unsaved changes! Press ESC again or Ctrl+Q to force quit.")
			mh.forceQuitPending = true
			return true
		}
		if err != nil {
			logger.Warnf("ModeHandler: Quit failed: %v", err)
		}
		return false
	case input.ActionForceQuit:
		if err := mh.Quit(true); err != nil {
			logger.Warnf("ModeHandler: Force quit failed: %v", err)
		}
		return false

	case input.ActionSave:
		if err := mh.store.SaveFile(""); err != nil {
			mh.statusBar.SetTemporaryMessage("Save FAILED: %v", err)
		} else {
			mh.statusBar.SetTemporaryMessage("Sheet saved to %s", mh.store.FilePath())
		}

	// --- Movement ---
	case input.ActionMoveUp:
		mh.cursor.Move(-1, 0)
	case input.ActionMoveDown:
		mh.cursor.Move(1, 0)
	case input.ActionMoveLeft:
		mh.cursor.Move(0, -1)
	case input.ActionMoveRight:
		mh.cursor.Move(0, 1)
	case input.ActionMovePrevMeasure:
		mh.cursor.MoveMeasure(-1)
	case input.ActionMoveNextMeasure:
		mh.cursor.MoveMeasure(1)
	case input.ActionMoveHome:
		mh.cursor.MoveToMeasureStart()
	case input.ActionMoveEnd:
		mh.cursor.MoveToMeasureEnd()

	// --- Notes and Rests ---
	case input.ActionToggleNote:
		actionProcessed = mh.store.ToggleNote(mh.CurrentMeasureID(), mh.CurrentPart(), mh.CurrentBeat())
	case input.ActionToggleRest:
		actionProcessed = mh.store.ToggleRest(mh.CurrentMeasureID(), mh.CurrentBeat())
	case input.ActionToggleGhost:
		mh.statusBar.SetTemporaryMessage("Ghost notes: %s", onOff(mh.store.ToggleGhostNoteMode()))
	case input.ActionToggleAccent:
		mh.statusBar.SetTemporaryMessage("Accents: %s", onOff(mh.store.ToggleAccentMode()))
	case input.ActionSelectValue:
		i := int(actionEvent.Rune - '1')
		if i < 0 || i >= len(sheet.Values) {
			actionProcessed = false
			break
		}
		mh.store.SetSelectedNoteValue(sheet.Values[i])
		mh.statusBar.SetTemporaryMessage("Note value: %s", sheet.Values[i])

	// --- Measures ---
	case input.ActionAddMeasure:
		mh.store.AddMeasure(mh.CurrentMeasureID())
		mh.moveToNextMeasureStart()
	case input.ActionRemoveMeasure:
		if !mh.store.RemoveMeasure(mh.CurrentMeasureID()) {
			mh.statusBar.SetTemporaryMessage("Cannot remove the only measure")
		}
		mh.cursor.Clamp()
	case input.ActionClearMeasure:
		actionProcessed = mh.store.ClearMeasure(mh.CurrentMeasureID())
	case input.ActionToggleRepeatStart, input.ActionToggleRepeatEnd:
		actionProcessed = mh.toggleRepeat(actionEvent.Action == input.ActionToggleRepeatStart)

	// --- History ---
	case input.ActionUndo:
		if !mh.store.Undo() {
			mh.statusBar.SetTemporaryMessage("Already at oldest change")
		}
		mh.cursor.Clamp()
	case input.ActionRedo:
		if !mh.store.Redo() {
			mh.statusBar.SetTemporaryMessage("Already at newest change")
		}
		mh.cursor.Clamp()

	// --- Clipboard ---
	case input.ActionCopyMeasure:
		if err := mh.store.CopyMeasure(mh.CurrentMeasureID()); err != nil {
			mh.statusBar.SetTemporaryMessage("Copy failed: %v", err)
		} else {
			mh.statusBar.SetTemporaryMessage("Measure copied")
		}
	case input.ActionPasteMeasure:
		if _, err := mh.store.PasteMeasure(mh.CurrentMeasureID()); err != nil {
			mh.statusBar.SetTemporaryMessage("Paste failed: %v", err)
			logger.Debugf("Paste error: %v", err)
		} else {
			mh.moveToNextMeasureStart()
		}

	default:
		actionProcessed = false
	}

	if actionProcessed && actionEvent.Action != input.ActionQuit {
		mh.forceQuitPending = false
	}
	return actionProcessed
}

func (mh *ModeHandler) moveToNextMeasureStart() {
	pos := mh.cursor.GetPosition()
	mh.cursor.SetPosition(types.Position{Measure: pos.Measure + 1, Row: pos.Row})
}

func (mh *ModeHandler) toggleRepeat(start bool) bool {
	id := mh.CurrentMeasureID()
	on := false
	mh.store.Read(func(sh *sheet.Sheet) {
		if m := sh.Measure(id); m != nil {
			on = m.HasRepeatStart
			if !start {
				on = m.HasRepeatEnd
			}
		}
	})
	if start {
		return mh.store.SetRepeatStart(id, !on)
	}
	return mh.store.SetRepeatEnd(id, !on)
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
