package stats

import (
	"testing"

	"github.com/bethropolis/drumsheet/internal/plugin/plugintest"
	"github.com/bethropolis/drumsheet/internal/sheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsCommand(t *testing.T) {
	api := plugintest.New(nil)
	p := New()
	require.NoError(t, p.Initialize(api))

	id := api.Sheet().Measures[0].ID
	api.Store.ToggleNote(id, sheet.Snare, 1)
	api.Store.ToggleNote(id, sheet.Snare, 3)
	api.Store.ToggleNote(id, sheet.Bass, 0)
	api.Store.ToggleRest(id, 2)
	second := api.Store.AddMeasure(id)
	api.Store.AddSection(sheet.Verse, "Verse", []string{id, second})

	require.NoError(t, api.Run("stats"))
	assert.Equal(t, "Measures: 2, Sections: 1, Notes: 3, Rests: 1", api.LastMessage())

	require.NoError(t, api.Run("stats", "parts"))
	assert.Equal(t, "snare: 2, bass: 1", api.LastMessage())

	assert.Error(t, api.Run("stats", "bogus"))
}

func TestFormatPartsEmpty(t *testing.T) {
	assert.Equal(t, "No notes", FormatParts(sheet.Stats{}))
}

func TestDoubleRegistrationFails(t *testing.T) {
	api := plugintest.New(nil)
	require.NoError(t, New().Initialize(api))
	assert.Error(t, New().Initialize(api))
}
