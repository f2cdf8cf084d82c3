// internal/plugin/plugin.go
package plugin

import (
	"github.com/bethropolis/drumsheet/internal/config"
	"github.com/bethropolis/drumsheet/internal/event"
	"github.com/bethropolis/drumsheet/internal/sheet"
)

// CommandFunc defines the signature for commands registered by plugins.
// It takes the arguments typed after the command name.
type CommandFunc func(args []string) error

// SheetAPI is the part of the application plugins may use.
type SheetAPI interface {
	// --- Document Access (read-only) ---
	Sheet() *sheet.Sheet // Deep copy of the live sheet
	SheetStats() sheet.Stats
	FilePath() string
	IsModified() bool

	// --- Persistence ---
	// SaveSheet saves to path, or to the current file when path is empty.
	SaveSheet(path string) error

	// --- Event Bus Interaction ---
	DispatchEvent(eventType event.Type, data interface{})
	SubscribeEvent(eventType event.Type, handler event.Handler)

	// --- Command Registration ---
	RegisterCommand(name string, cmdFunc CommandFunc) error

	// --- Status Bar ---
	SetStatusMessage(format string, args ...interface{})

	// --- Configuration ---
	Config() *config.Config
}

// Plugin defines the interface that all plugins must implement.
type Plugin interface {
	// Name returns the unique identifier name of the plugin.
	Name() string

	// Initialize is called once after the application is wired.
	// Used for setup, subscribing to events, registering commands.
	Initialize(api SheetAPI) error

	// Shutdown is called once when the application is closing.
	Shutdown() error
}
