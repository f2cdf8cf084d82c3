// internal/modehandler/modehandler.go
package modehandler

import (
	"fmt"
	"sync"

	"github.com/bethropolis/drumsheet/internal/commands"
	"github.com/bethropolis/drumsheet/internal/core"
	"github.com/bethropolis/drumsheet/internal/core/cursor"
	"github.com/bethropolis/drumsheet/internal/event"
	"github.com/bethropolis/drumsheet/internal/input"
	"github.com/bethropolis/drumsheet/internal/logger"
	"github.com/bethropolis/drumsheet/internal/plugin"
	"github.com/bethropolis/drumsheet/internal/sheet"
	"github.com/bethropolis/drumsheet/internal/statusbar"
	"github.com/gdamore/tcell/v2"
)

// InputMode defines the different states for user input.
type InputMode int

const (
	ModeNormal InputMode = iota
	ModeCommand
)

// String returns the label shown in the status bar.
func (m InputMode) String() string {
	if m == ModeCommand {
		return "COMMAND"
	}
	return "NORMAL"
}

// ModeHandler manages input modes, command execution, and related state.
type ModeHandler struct {
	store          *core.Store
	cursor         *cursor.Manager
	stepsPerBeat   int
	inputProcessor *input.InputProcessor
	eventManager   *event.Manager
	statusBar      *statusbar.StatusBar
	quitSignal     chan<- struct{}
	quitOnce       sync.Once

	currentMode      InputMode
	cmdBuffer        []rune
	commands         map[string]plugin.CommandFunc
	forceQuitPending bool
}

// Config holds dependencies for the ModeHandler.
type Config struct {
	Store          *core.Store
	Cursor         *cursor.Manager
	StepsPerBeat   int
	InputProcessor *input.InputProcessor
	EventManager   *event.Manager
	StatusBar      *statusbar.StatusBar
	QuitSignal     chan<- struct{} // closed once to stop the app
}

// New creates a new ModeHandler.
func New(cfg Config) *ModeHandler {
	if cfg.Store == nil || cfg.Cursor == nil || cfg.InputProcessor == nil || cfg.EventManager == nil || cfg.StatusBar == nil || cfg.QuitSignal == nil {
		panic("modehandler.New: Missing required dependencies in Config")
	}
	if cfg.StepsPerBeat <= 0 {
		cfg.StepsPerBeat = 1
	}
	return &ModeHandler{
		store:          cfg.Store,
		cursor:         cfg.Cursor,
		stepsPerBeat:   cfg.StepsPerBeat,
		inputProcessor: cfg.InputProcessor,
		eventManager:   cfg.EventManager,
		statusBar:      cfg.StatusBar,
		quitSignal:     cfg.QuitSignal,
		currentMode:    ModeNormal,
		commands:       make(map[string]plugin.CommandFunc),
	}
}

// HandleKeyEvent decides what to do based on current mode and key event.
// It reports whether the screen needs a redraw.
func (mh *ModeHandler) HandleKeyEvent(ev *tcell.EventKey) bool {
	mh.eventManager.Dispatch(event.TypeKeyPressed, event.KeyPressedData{Name: ev.Name()})

	switch mh.currentMode {
	case ModeNormal:
		return mh.handleActionNormal(mh.inputProcessor.ProcessEvent(ev))
	case ModeCommand:
		return mh.handleActionCommand(mh.inputProcessor.ProcessTextEvent(ev))
	default:
		logger.Warnf("ModeHandler: Unknown input mode: %v", mh.currentMode)
		return false
	}
}

// RegisterCommand adds a command to the registry.
func (mh *ModeHandler) RegisterCommand(name string, cmdFunc plugin.CommandFunc) error {
	if name == "" {
		return fmt.Errorf("command name cannot be empty")
	}
	if _, exists := mh.commands[name]; exists {
		return fmt.Errorf("command '%s' already registered", name)
	}
	mh.commands[name] = cmdFunc
	logger.Debugf("ModeHandler: Registered command ':%s'", name)
	return nil
}

// Quit closes the quit channel. Without force it refuses while the sheet
// has unsaved changes.
func (mh *ModeHandler) Quit(force bool) error {
	if !force && mh.store.Modified() {
		return commands.ErrUnsavedChanges
	}
	mh.quitOnce.Do(func() {
		logger.Infof("ModeHandler: Quit requested (force=%v)", force)
		close(mh.quitSignal)
	})
	return nil
}

// GetCurrentMode returns the current input mode.
func (mh *ModeHandler) GetCurrentMode() InputMode {
	return mh.currentMode
}

// GetCommandBuffer returns the command line being typed.
func (mh *ModeHandler) GetCommandBuffer() string {
	if mh.currentMode == ModeCommand {
		return string(mh.cmdBuffer)
	}
	return ""
}

// CurrentMeasureID returns the id of the measure under the cursor.
func (mh *ModeHandler) CurrentMeasureID() string {
	idx := mh.cursor.GetPosition().Measure
	id := ""
	mh.store.Read(func(sh *sheet.Sheet) {
		if idx >= 0 && idx < len(sh.Measures) {
			id = sh.Measures[idx].ID
		}
	})
	return id
}

// CurrentPart returns the part a toggle would use: the fixed part from the
// selection, or the part of the cursor row.
func (mh *ModeHandler) CurrentPart() sheet.Part {
	if p := mh.store.Session().DrumPart; p != "" {
		return p
	}
	row := mh.cursor.GetPosition().Row
	if row >= 0 && row < len(sheet.Parts) {
		return sheet.Parts[row]
	}
	return sheet.Parts[0]
}

// CurrentBeat returns the beat under the cursor.
func (mh *ModeHandler) CurrentBeat() float64 {
	return cursor.BeatAt(mh.cursor.GetPosition().Step, mh.stepsPerBeat)
}
