// internal/input/action.go
package input

// Action is an operation requested by a key press.
type Action int

const (
	// --- Meta Actions ---
	ActionUnknown   Action = iota
	ActionQuit             // checks the modified flag
	ActionForceQuit        // quits without checking
	ActionSave

	// --- Cursor Movement ---
	ActionMoveUp
	ActionMoveDown
	ActionMoveLeft
	ActionMoveRight
	ActionMovePrevMeasure
	ActionMoveNextMeasure
	ActionMoveHome // first step of the measure
	ActionMoveEnd  // last step of the measure

	// --- Sheet Editing ---
	ActionToggleNote
	ActionToggleRest
	ActionToggleGhost
	ActionToggleAccent
	ActionSelectValue // Rune holds '1' (whole) to '5' (sixteenth)
	ActionAddMeasure
	ActionRemoveMeasure
	ActionClearMeasure
	ActionToggleRepeatStart
	ActionToggleRepeatEnd
	ActionUndo
	ActionRedo
	ActionCopyMeasure
	ActionPasteMeasure

	// --- Command Line ---
	ActionEnterCommandMode
	ActionExecuteCommand
	ActionCancelCommand
	ActionAppendCommand // Rune holds the typed character
	ActionDeleteCommandChar
)

// ActionEvent is a decoded key press.
type ActionEvent struct {
	Action Action
	Rune   rune
}
