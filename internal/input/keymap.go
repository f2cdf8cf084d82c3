// internal/input/keymap.go
package input

import (
	"github.com/gdamore/tcell/v2"
)

// Keymap maps special keys to actions.
type Keymap map[tcell.Key]Action

// RuneKeymap maps plain characters to actions.
type RuneKeymap map[rune]Action

// ModKeymap maps keys pressed with a modifier.
type ModKeymap map[tcell.ModMask]Keymap

// InputProcessor translates tcell key events into ActionEvents.
type InputProcessor struct {
	keymap     Keymap
	runeKeymap RuneKeymap
	modKeymap  ModKeymap
}

// NewInputProcessor creates a processor with the default bindings.
func NewInputProcessor() *InputProcessor {
	p := &InputProcessor{
		keymap:     make(Keymap),
		runeKeymap: make(RuneKeymap),
		modKeymap:  make(ModKeymap),
	}
	p.loadDefaultBindings()
	return p
}

func (p *InputProcessor) loadDefaultBindings() {
	// --- Simple Keys ---
	p.keymap[tcell.KeyUp] = ActionMoveUp
	p.keymap[tcell.KeyDown] = ActionMoveDown
	p.keymap[tcell.KeyLeft] = ActionMoveLeft
	p.keymap[tcell.KeyRight] = ActionMoveRight
	p.keymap[tcell.KeyPgUp] = ActionMovePrevMeasure
	p.keymap[tcell.KeyPgDn] = ActionMoveNextMeasure
	p.keymap[tcell.KeyHome] = ActionMoveHome
	p.keymap[tcell.KeyEnd] = ActionMoveEnd
	p.keymap[tcell.KeyEnter] = ActionToggleNote
	p.keymap[tcell.KeyDelete] = ActionClearMeasure
	p.keymap[tcell.KeyEscape] = ActionQuit

	// Control keys arrive as their own key codes.
	p.keymap[tcell.KeyCtrlC] = ActionQuit
	p.keymap[tcell.KeyCtrlQ] = ActionForceQuit
	p.keymap[tcell.KeyCtrlS] = ActionSave
	p.keymap[tcell.KeyCtrlZ] = ActionUndo
	p.keymap[tcell.KeyCtrlR] = ActionRedo
	p.keymap[tcell.KeyCtrlY] = ActionRedo

	// --- Modifier Keys ---
	p.modKeymap[tcell.ModAlt] = Keymap{
		tcell.KeyLeft:  ActionMovePrevMeasure,
		tcell.KeyRight: ActionMoveNextMeasure,
	}

	// --- Runes ---
	p.runeKeymap['h'] = ActionMoveLeft
	p.runeKeymap['j'] = ActionMoveDown
	p.runeKeymap['k'] = ActionMoveUp
	p.runeKeymap['l'] = ActionMoveRight
	p.runeKeymap[' '] = ActionToggleNote
	p.runeKeymap['r'] = ActionToggleRest
	p.runeKeymap['g'] = ActionToggleGhost
	p.runeKeymap['a'] = ActionToggleAccent
	for r := '1'; r <= '5'; r++ {
		p.runeKeymap[r] = ActionSelectValue
	}
	p.runeKeymap['n'] = ActionAddMeasure
	p.runeKeymap['x'] = ActionRemoveMeasure
	p.runeKeymap['c'] = ActionClearMeasure
	p.runeKeymap['['] = ActionToggleRepeatStart
	p.runeKeymap[']'] = ActionToggleRepeatEnd
	p.runeKeymap['u'] = ActionUndo
	p.runeKeymap['y'] = ActionCopyMeasure
	p.runeKeymap['p'] = ActionPasteMeasure
	p.runeKeymap[':'] = ActionEnterCommandMode
}

// ProcessEvent decodes a key press on the grid.
func (p *InputProcessor) ProcessEvent(ev *tcell.EventKey) ActionEvent {
	key := ev.Key()
	mod := ev.Modifiers()

	// 1. Modifier + key combinations
	if modKeymap, ok := p.modKeymap[mod]; ok {
		if action, ok := modKeymap[key]; ok {
			return ActionEvent{Action: action}
		}
	}
	// Ctrl+letter already has its own key code.
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		mod &^= tcell.ModCtrl
	}

	// 2. Special keys, Shift allowed
	if mod == tcell.ModNone || mod == tcell.ModShift {
		if action, ok := p.keymap[key]; ok {
			return ActionEvent{Action: action}
		}
	}

	// 3. Runes
	if key == tcell.KeyRune && (mod == tcell.ModNone || mod == tcell.ModShift) {
		r := ev.Rune()
		if action, ok := p.runeKeymap[r]; ok {
			return ActionEvent{Action: action, Rune: r}
		}
	}

	return ActionEvent{Action: ActionUnknown}
}

// ProcessTextEvent decodes a key press on the command line.
func (p *InputProcessor) ProcessTextEvent(ev *tcell.EventKey) ActionEvent {
	switch ev.Key() {
	case tcell.KeyEnter:
		return ActionEvent{Action: ActionExecuteCommand}
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionEvent{Action: ActionCancelCommand}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return ActionEvent{Action: ActionDeleteCommandChar}
	case tcell.KeyRune:
		if ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) == 0 {
			return ActionEvent{Action: ActionAppendCommand, Rune: ev.Rune()}
		}
	}
	return ActionEvent{Action: ActionUnknown}
}
