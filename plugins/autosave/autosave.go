package autosave

import (
	"bytes"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/bethropolis/drumsheet/internal/config"
	"github.com/bethropolis/drumsheet/internal/event"
	"github.com/bethropolis/drumsheet/internal/logger"
	"github.com/bethropolis/drumsheet/internal/plugin"
	"github.com/bethropolis/drumsheet/internal/sheet"
)

// Ensure AutoSave implements plugin.Plugin
var _ plugin.Plugin = (*AutoSave)(nil)

// AutoSave saves the sheet a short while after the last edit. With a
// configured path it writes a backup copy there and leaves the document's
// modified flag alone; otherwise it saves the open file.
type AutoSave struct {
	api plugin.SheetAPI

	mutex    sync.Mutex
	enabled  bool
	path     string
	delay    time.Duration
	schedule func(f func())
	stopped  bool
	saves    int
}

// New creates a new instance of the AutoSave plugin.
func New() *AutoSave {
	return &AutoSave{delay: config.DefaultAutosaveDelay}
}

// Name returns the unique name of the plugin.
func (p *AutoSave) Name() string {
	return "autosave"
}

// Initialize reads configuration and subscribes to edits when enabled.
func (p *AutoSave) Initialize(api plugin.SheetAPI) error {
	p.api = api
	cfg := api.Config().Autosave

	p.mutex.Lock()
	p.enabled = cfg.Enabled
	p.path = cfg.Path
	if cfg.Delay > 0 {
		p.delay = cfg.Delay
	}
	p.schedule = debounce.New(p.delay)
	enabled, delay := p.enabled, p.delay
	p.mutex.Unlock()

	logger.Infof("%s initialized. Enabled: %v, Delay: %v", p.Name(), enabled, delay)
	if !enabled {
		return nil
	}

	api.SubscribeEvent(event.TypeSheetModified, func(event.Event) bool {
		p.trigger()
		return false
	})
	if err := api.RegisterCommand("autosave", p.executeStatus); err != nil {
		return fmt.Errorf("failed to register 'autosave' command: %w", err)
	}
	return nil
}

// Shutdown drops any pending save.
func (p *AutoSave) Shutdown() error {
	p.mutex.Lock()
	p.stopped = true
	p.mutex.Unlock()
	logger.Debugf("%s: Stopped.", p.Name())
	return nil
}

// Saves reports how many autosaves have been written.
func (p *AutoSave) Saves() int {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.saves
}

func (p *AutoSave) trigger() {
	p.mutex.Lock()
	schedule, stopped := p.schedule, p.stopped
	p.mutex.Unlock()
	if stopped || schedule == nil {
		return
	}
	schedule(p.save)
}

// save runs on the debounce timer goroutine.
func (p *AutoSave) save() {
	p.mutex.Lock()
	stopped, path := p.stopped, p.path
	p.mutex.Unlock()
	if stopped {
		return
	}

	var err error
	if path != "" {
		err = writeBackup(path, p.api.Sheet())
	} else {
		path = p.api.FilePath()
		if path == "" {
			logger.Debugf("%s: Sheet has no file yet, skipping.", p.Name())
			return
		}
		if !p.api.IsModified() {
			return
		}
		err = p.api.SaveSheet("")
	}
	if err != nil {
		logger.Errorf("%s: Auto-save to '%s' failed: %v", p.Name(), path, err)
		p.api.SetStatusMessage("Autosave failed: %v", err)
		return
	}

	p.mutex.Lock()
	p.saves++
	p.mutex.Unlock()
	logger.DebugTagf("autosave", "%s: Saved to '%s'", p.Name(), path)
}

func writeBackup(path string, s *sheet.Sheet) error {
	var buf bytes.Buffer
	if err := sheet.Encode(&buf, s); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

func (p *AutoSave) executeStatus(args []string) error {
	p.mutex.Lock()
	target, saves := p.path, p.saves
	p.mutex.Unlock()
	if target == "" {
		target = "current file"
	}
	p.api.SetStatusMessage("Autosave: %s, %d save(s)", target, saves)
	return nil
}
