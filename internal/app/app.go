// internal/app/app.go
package app

import (
	"errors"
	"fmt"
	"os"

	"github.com/bethropolis/drumsheet/internal/commands"
	"github.com/bethropolis/drumsheet/internal/config"
	"github.com/bethropolis/drumsheet/internal/core"
	"github.com/bethropolis/drumsheet/internal/core/clipboard"
	"github.com/bethropolis/drumsheet/internal/core/cursor"
	"github.com/bethropolis/drumsheet/internal/event"
	"github.com/bethropolis/drumsheet/internal/input"
	"github.com/bethropolis/drumsheet/internal/logger"
	"github.com/bethropolis/drumsheet/internal/modehandler"
	"github.com/bethropolis/drumsheet/internal/plugin"
	"github.com/bethropolis/drumsheet/internal/sheet"
	"github.com/bethropolis/drumsheet/internal/statusbar"
	"github.com/bethropolis/drumsheet/internal/theme"
	"github.com/bethropolis/drumsheet/internal/tui"
	"github.com/gdamore/tcell/v2"
)

// App encapsulates the core components and main loop of the editor.
type App struct {
	cfg           *config.Config
	tuiManager    *tui.TUI
	store         *core.Store
	cursor        *cursor.Manager
	statusBar     *statusbar.StatusBar
	eventManager  *event.Manager
	pluginManager *plugin.Manager
	themeManager  *theme.Manager
	modeHandler   *modehandler.ModeHandler
	sheetAPI      *appSheetAPI

	quit          chan struct{}
	redrawRequest chan struct{}
	events        chan tcell.Event
}

// NewApp creates the application on the terminal and opens filePath.
// A path that does not exist yet starts a new sheet that saves there.
func NewApp(cfg *config.Config, filePath string) (*App, error) {
	return NewAppWithScreen(cfg, filePath, nil)
}

// NewAppWithScreen is NewApp on a given screen. A nil screen means the
// terminal.
func NewAppWithScreen(cfg *config.Config, filePath string, screen tcell.Screen) (*App, error) {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}

	// --- Create Core Components ---
	eventManager := event.NewManager()
	store := core.NewStore(
		core.WithMaxHistory(cfg.History.MaxEntries),
		core.WithDefaults(cfg.SheetOptions()),
		core.WithEventManager(eventManager),
		core.WithClipboard(clipboard.New(cfg.Editor.SystemClipboard)),
	)
	if err := openSheet(store, filePath); err != nil {
		return nil, err
	}

	themesDir := cfg.Editor.ThemesDir
	if themesDir == "" {
		themesDir = theme.DefaultThemesDir(config.AppName)
	}
	themeManager := theme.NewManager(themesDir)
	if err := themeManager.SetTheme(cfg.Editor.Theme); err != nil {
		logger.Warnf("App: %v, keeping %s", err, themeManager.Current().Name)
	}

	var tuiManager *tui.TUI
	var err error
	if screen == nil {
		tuiManager, err = tui.New(themeManager.Current())
	} else {
		tuiManager, err = tui.NewWithScreen(screen, themeManager.Current())
	}
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}

	cur := cursor.NewManager(cursor.StoreGrid{Store: store, StepsPerBeat: cfg.Editor.StepsPerBeat}, len(sheet.Parts))
	statusBar := statusbar.New(statusbar.ConfigFromTheme(themeManager.Current()))
	quitChan := make(chan struct{})

	modeHandler := modehandler.New(modehandler.Config{
		Store:          store,
		Cursor:         cur,
		StepsPerBeat:   cfg.Editor.StepsPerBeat,
		InputProcessor: input.NewInputProcessor(),
		EventManager:   eventManager,
		StatusBar:      statusBar,
		QuitSignal:     quitChan,
	})

	a := &App{
		cfg:           cfg,
		tuiManager:    tuiManager,
		store:         store,
		cursor:        cur,
		statusBar:     statusBar,
		eventManager:  eventManager,
		pluginManager: plugin.NewManager(),
		themeManager:  themeManager,
		modeHandler:   modeHandler,
		quit:          quitChan,
		redrawRequest: make(chan struct{}, 1),
		events:        make(chan tcell.Event),
	}
	a.sheetAPI = newSheetAPI(a)

	// --- Subscribe Core Components ---
	eventManager.Subscribe(event.TypeSheetModified, a.handleSheetChanged)
	eventManager.Subscribe(event.TypeSheetSaved, a.handleSheetChanged)
	eventManager.Subscribe(event.TypeSheetLoaded, a.handleSheetLoaded)
	eventManager.Subscribe(event.TypeSelectionChanged, a.handleSheetChanged)

	// --- Commands and Plugins ---
	if err := commands.RegisterAppCommands(a.sheetAPI, a.sheetAPI); err != nil {
		logger.Warnf("App: %v", err)
	}
	if err := registerPlugins(a.pluginManager); err != nil {
		logger.Warnf("App: %v", err)
	}
	if err := a.pluginManager.InitializePlugins(a.sheetAPI); err != nil {
		logger.Errorf("App: %v", err)
	}

	return a, nil
}

func openSheet(store *core.Store, filePath string) error {
	if filePath == "" {
		logger.Debugf("App: No file specified, starting empty.")
		return nil
	}
	err := store.LoadFile(filePath)
	if errors.Is(err, os.ErrNotExist) {
		logger.Infof("App: '%s' does not exist yet, starting a new sheet", filePath)
		store.SetFilePath(filePath)
		return nil
	}
	return err
}

// Run starts the application's main event and drawing loops.
func (a *App) Run() error {
	defer a.tuiManager.Close()
	defer a.pluginManager.ShutdownPlugins()

	go a.eventLoop()

	a.eventManager.Dispatch(event.TypeAppReady, event.AppReadyData{})
	a.statusBar.SetTemporaryMessage("drumsheet - Space note | r rest | : command | Ctrl+S save | Esc quit")
	a.requestRedraw()

	// Key handling and drawing share this goroutine.
	for {
		select {
		case <-a.quit:
			a.eventManager.Dispatch(event.TypeAppQuit, event.AppQuitData{})
			if a.store.Modified() {
				logger.Warnf("Exited with unsaved changes.")
			}
			logger.Infof("Exiting application.")
			return nil
		case ev := <-a.events:
			if a.handleEvent(ev) {
				a.requestRedraw()
			}
		case <-a.redrawRequest:
			a.draw()
		}
	}
}

// eventLoop forwards terminal events until the screen is closed.
func (a *App) eventLoop() {
	for {
		ev := a.tuiManager.PollEvent()
		if ev == nil {
			return
		}
		select {
		case a.events <- ev:
		case <-a.quit:
			return
		}
	}
}

// handleEvent reacts to one terminal event and reports whether a redraw
// is needed.
func (a *App) handleEvent(ev tcell.Event) bool {
	switch eventData := ev.(type) {
	case *tcell.EventResize:
		a.tuiManager.GetScreen().Sync()
		return true
	case *tcell.EventKey:
		return a.modeHandler.HandleKeyEvent(eventData)
	}
	return false
}

// requestRedraw sends a redraw signal non-blockingly.
func (a *App) requestRedraw() {
	select {
	case a.redrawRequest <- struct{}{}:
	default:
	}
}

// --- Event Handlers ---

func (a *App) handleSheetChanged(event.Event) bool {
	a.requestRedraw()
	return false
}

func (a *App) handleSheetLoaded(event.Event) bool {
	a.cursor.SetPosition(cursorHome)
	a.requestRedraw()
	return false
}

// Store returns the document store.
func (a *App) Store() *core.Store {
	return a.store
}
