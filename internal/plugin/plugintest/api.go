// Package plugintest provides a SheetAPI backed by a real store for plugin tests.
package plugintest

import (
	"fmt"
	"sync"

	"github.com/bethropolis/drumsheet/internal/config"
	"github.com/bethropolis/drumsheet/internal/core"
	"github.com/bethropolis/drumsheet/internal/event"
	"github.com/bethropolis/drumsheet/internal/plugin"
	"github.com/bethropolis/drumsheet/internal/sheet"
)

var _ plugin.SheetAPI = (*API)(nil)

// API implements plugin.SheetAPI and records commands and status messages.
type API struct {
	Store  *core.Store
	Events *event.Manager
	Cfg    *config.Config

	mu       sync.Mutex
	commands map[string]plugin.CommandFunc
	messages []string
}

// New returns an API over a fresh store wired to its own event manager.
func New(cfg *config.Config) *API {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	events := event.NewManager()
	return &API{
		Store:    core.NewStore(core.WithEventManager(events)),
		Events:   events,
		Cfg:      cfg,
		commands: make(map[string]plugin.CommandFunc),
	}
}

func (a *API) Sheet() *sheet.Sheet     { return a.Store.Sheet() }
func (a *API) SheetStats() sheet.Stats { return a.Store.Stats() }
func (a *API) FilePath() string        { return a.Store.FilePath() }
func (a *API) IsModified() bool        { return a.Store.Modified() }
func (a *API) Config() *config.Config  { return a.Cfg }

func (a *API) SaveSheet(path string) error { return a.Store.SaveFile(path) }

func (a *API) DispatchEvent(t event.Type, data interface{}) { a.Events.Dispatch(t, data) }

func (a *API) SubscribeEvent(t event.Type, h event.Handler) { a.Events.Subscribe(t, h) }

func (a *API) RegisterCommand(name string, fn plugin.CommandFunc) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, exists := a.commands[name]; exists {
		return fmt.Errorf("command '%s' already registered", name)
	}
	a.commands[name] = fn
	return nil
}

func (a *API) SetStatusMessage(format string, args ...interface{}) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.messages = append(a.messages, fmt.Sprintf(format, args...))
}

// Run executes a registered command.
func (a *API) Run(name string, args ...string) error {
	a.mu.Lock()
	fn, ok := a.commands[name]
	a.mu.Unlock()
	if !ok {
		return fmt.Errorf("unknown command: %s", name)
	}
	return fn(args)
}

// Messages returns the status messages shown so far.
func (a *API) Messages() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.messages...)
}

// LastMessage returns the latest status message, or "".
func (a *API) LastMessage() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.messages) == 0 {
		return ""
	}
	return a.messages[len(a.messages)-1]
}
