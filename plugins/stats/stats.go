// plugins/stats/stats.go
package stats

import (
	"fmt"
	"strings"

	"github.com/bethropolis/drumsheet/internal/plugin"
	"github.com/bethropolis/drumsheet/internal/sheet"
)

// Ensure Stats implements plugin.Plugin
var _ plugin.Plugin = (*Stats)(nil)

// Stats reports note, rest, measure and section counts via :stats.
type Stats struct {
	api plugin.SheetAPI
}

// New creates a new instance of the Stats plugin.
func New() *Stats {
	return &Stats{}
}

// Name returns the unique name of the plugin.
func (p *Stats) Name() string {
	return "stats"
}

// Initialize registers the :stats command.
func (p *Stats) Initialize(api plugin.SheetAPI) error {
	p.api = api
	if err := api.RegisterCommand("stats", p.executeStats); err != nil {
		return fmt.Errorf("failed to register 'stats' command: %w", err)
	}
	return nil
}

// Shutdown performs cleanup (nothing needed for this plugin).
func (p *Stats) Shutdown() error {
	return nil
}

// executeStats shows totals, or per-part counts with ":stats parts".
func (p *Stats) executeStats(args []string) error {
	if p.api == nil {
		return fmt.Errorf("stats plugin not initialized with API")
	}
	st := p.api.SheetStats()

	if len(args) > 0 {
		if args[0] != "parts" {
			return fmt.Errorf("usage: stats [parts]")
		}
		p.api.SetStatusMessage("%s", FormatParts(st))
		return nil
	}

	p.api.SetStatusMessage("Measures: %d, Sections: %d, Notes: %d, Rests: %d",
		st.Measures, st.Sections, st.Notes, st.Rests)
	return nil
}

// FormatParts lists non-zero note counts in staff order.
func FormatParts(st sheet.Stats) string {
	var parts []string
	for _, part := range sheet.Parts {
		if n := st.PerPart[part]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s: %d", part, n))
		}
	}
	if len(parts) == 0 {
		return "No notes"
	}
	return strings.Join(parts, ", ")
}
