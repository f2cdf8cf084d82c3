package commands

import (
	"github.com/bethropolis/drumsheet/internal/core"
	"github.com/bethropolis/drumsheet/internal/plugin"
	"github.com/bethropolis/drumsheet/internal/theme"
)

// ThemeAPI extends the commands functionality to support theme operations
type ThemeAPI interface {
	SetTheme(name string) error
	GetTheme() *theme.Theme
	ListThemes() []string
	SetStatusMessage(format string, args ...interface{})
}

// SheetEditor is what the built-in sheet commands act on.
type SheetEditor interface {
	plugin.SheetAPI
	SheetStore() *core.Store
	// CurrentMeasureID is the measure under the cursor.
	CurrentMeasureID() string
	// Quit ends the session. Without force it refuses unsaved changes.
	Quit(force bool) error
}
