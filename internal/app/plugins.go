package app

import (
	"errors"
	"fmt"

	"github.com/bethropolis/drumsheet/internal/logger"
	"github.com/bethropolis/drumsheet/internal/plugin"
	"github.com/bethropolis/drumsheet/plugins/autosave"
	"github.com/bethropolis/drumsheet/plugins/stats"
)

// pluginConstructors lists the built-in plugins. Adding a plugin means
// adding its constructor here.
var pluginConstructors = []func() plugin.Plugin{
	func() plugin.Plugin { return stats.New() },
	func() plugin.Plugin { return autosave.New() },
}

// registerPlugins registers all known plugins with the manager.
func registerPlugins(pm *plugin.Manager) error {
	if pm == nil {
		return fmt.Errorf("plugin manager is nil")
	}

	var errs []error
	for _, newPlugin := range pluginConstructors {
		p := newPlugin()
		logger.Debugf("Registering plugin: %s", p.Name())
		if err := pm.Register(p); err != nil {
			wrappedErr := fmt.Errorf("failed to register plugin '%s': %w", p.Name(), err)
			logger.Errorf("%v", wrappedErr)
			errs = append(errs, wrappedErr)
		}
	}
	return errors.Join(errs...)
}
