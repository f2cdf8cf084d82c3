package app

import (
	"github.com/bethropolis/drumsheet/internal/commands"
	"github.com/bethropolis/drumsheet/internal/config"
	"github.com/bethropolis/drumsheet/internal/core"
	"github.com/bethropolis/drumsheet/internal/event"
	"github.com/bethropolis/drumsheet/internal/logger"
	"github.com/bethropolis/drumsheet/internal/plugin"
	"github.com/bethropolis/drumsheet/internal/sheet"
	"github.com/bethropolis/drumsheet/internal/theme"
)

// Ensure appSheetAPI serves plugins and the built-in commands.
var (
	_ plugin.SheetAPI      = (*appSheetAPI)(nil)
	_ commands.SheetEditor = (*appSheetAPI)(nil)
	_ commands.ThemeAPI    = (*appSheetAPI)(nil)
)

// appSheetAPI exposes the App to plugins and commands.
type appSheetAPI struct {
	app *App
}

func newSheetAPI(app *App) *appSheetAPI {
	return &appSheetAPI{app: app}
}

// --- Document Access ---

func (api *appSheetAPI) Sheet() *sheet.Sheet {
	return api.app.store.Sheet()
}

func (api *appSheetAPI) SheetStats() sheet.Stats {
	return api.app.store.Stats()
}

func (api *appSheetAPI) FilePath() string {
	return api.app.store.FilePath()
}

func (api *appSheetAPI) IsModified() bool {
	return api.app.store.Modified()
}

func (api *appSheetAPI) SheetStore() *core.Store {
	return api.app.store
}

func (api *appSheetAPI) CurrentMeasureID() string {
	return api.app.modeHandler.CurrentMeasureID()
}

// --- Persistence ---

func (api *appSheetAPI) SaveSheet(path string) error {
	return api.app.store.SaveFile(path)
}

// --- Events and Commands ---

func (api *appSheetAPI) DispatchEvent(eventType event.Type, data interface{}) {
	api.app.eventManager.Dispatch(eventType, data)
}

func (api *appSheetAPI) SubscribeEvent(eventType event.Type, handler event.Handler) {
	api.app.eventManager.Subscribe(eventType, handler)
}

func (api *appSheetAPI) RegisterCommand(name string, cmdFunc plugin.CommandFunc) error {
	return api.app.modeHandler.RegisterCommand(name, cmdFunc)
}

func (api *appSheetAPI) Quit(force bool) error {
	return api.app.modeHandler.Quit(force)
}

// --- UI ---

func (api *appSheetAPI) SetStatusMessage(format string, args ...interface{}) {
	api.app.statusBar.SetTemporaryMessage(format, args...)
	api.app.requestRedraw()
}

func (api *appSheetAPI) Config() *config.Config {
	return api.app.cfg
}

// --- Themes ---

func (api *appSheetAPI) SetTheme(name string) error {
	if err := api.app.themeManager.SetTheme(name); err != nil {
		return err
	}
	th := api.app.themeManager.Current()
	logger.Debugf("SheetAPI: Theme set to %s", th.Name)
	api.app.applyTheme(th)
	return nil
}

func (api *appSheetAPI) GetTheme() *theme.Theme {
	return api.app.themeManager.Current()
}

func (api *appSheetAPI) ListThemes() []string {
	return api.app.themeManager.ListThemes()
}
