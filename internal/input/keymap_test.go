package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
)

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestProcessEventGrid(t *testing.T) {
	p := NewInputProcessor()
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want ActionEvent
	}{
		{"arrow", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), ActionEvent{Action: ActionMoveLeft}},
		{"page down", tcell.NewEventKey(tcell.KeyPgDn, 0, tcell.ModNone), ActionEvent{Action: ActionMoveNextMeasure}},
		{"alt left", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModAlt), ActionEvent{Action: ActionMovePrevMeasure}},
		{"shift arrow", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModShift), ActionEvent{Action: ActionMoveUp}},
		{"space", runeKey(' '), ActionEvent{Action: ActionToggleNote, Rune: ' '}},
		{"rest", runeKey('r'), ActionEvent{Action: ActionToggleRest, Rune: 'r'}},
		{"value", runeKey('3'), ActionEvent{Action: ActionSelectValue, Rune: '3'}},
		{"colon", runeKey(':'), ActionEvent{Action: ActionEnterCommandMode, Rune: ':'}},
		{"ctrl s", tcell.NewEventKey(tcell.KeyCtrlS, 0, tcell.ModCtrl), ActionEvent{Action: ActionSave}},
		{"ctrl z", tcell.NewEventKey(tcell.KeyCtrlZ, 0, tcell.ModCtrl), ActionEvent{Action: ActionUndo}},
		{"ctrl y", tcell.NewEventKey(tcell.KeyCtrlY, 0, tcell.ModCtrl), ActionEvent{Action: ActionRedo}},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), ActionEvent{Action: ActionQuit}},
		{"unbound rune", runeKey('Q'), ActionEvent{Action: ActionUnknown}},
		{"alt rune", tcell.NewEventKey(tcell.KeyRune, 'n', tcell.ModAlt), ActionEvent{Action: ActionUnknown}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.ProcessEvent(tt.ev))
		})
	}
}

func TestProcessTextEvent(t *testing.T) {
	p := NewInputProcessor()
	assert.Equal(t, ActionEvent{Action: ActionAppendCommand, Rune: 'w'}, p.ProcessTextEvent(runeKey('w')))
	assert.Equal(t, ActionEvent{Action: ActionAppendCommand, Rune: 'n'}, p.ProcessTextEvent(runeKey('n')), "grid bindings do not apply")
	assert.Equal(t, ActionExecuteCommand, p.ProcessTextEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)).Action)
	assert.Equal(t, ActionCancelCommand, p.ProcessTextEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)).Action)
	assert.Equal(t, ActionDeleteCommandChar, p.ProcessTextEvent(tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone)).Action)
	assert.Equal(t, ActionUnknown, p.ProcessTextEvent(tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone)).Action)
}
