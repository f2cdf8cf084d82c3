// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/drumsheet/internal/logger"
	"github.com/bethropolis/drumsheet/internal/midi"
	"github.com/bethropolis/drumsheet/internal/sheet"
	"github.com/caarlos0/env/v11"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger   logger.Config  `toml:"logger"`
	Sheet    SheetConfig    `toml:"sheet" envPrefix:"SHEET_"`
	History  HistoryConfig  `toml:"history" envPrefix:"HISTORY_"`
	Editor   EditorConfig   `toml:"editor" envPrefix:"EDITOR_"`
	Autosave AutosaveConfig `toml:"autosave" envPrefix:"AUTOSAVE_"`
	MIDI     MIDIConfig     `toml:"midi" envPrefix:"MIDI_"`
}

// SheetConfig holds the values a new sheet starts with.
type SheetConfig struct {
	DefaultTitle     string `toml:"default_title" env:"DEFAULT_TITLE"`
	DefaultTempo     int    `toml:"default_tempo" env:"DEFAULT_TEMPO"`
	DefaultBeats     int    `toml:"default_beats" env:"DEFAULT_BEATS"`
	DefaultNoteValue int    `toml:"default_note_value" env:"DEFAULT_NOTE_VALUE"`
}

// HistoryConfig bounds the undo history.
type HistoryConfig struct {
	MaxEntries int `toml:"max_entries" env:"MAX_ENTRIES"`
}

// EditorConfig holds editor-specific settings.
type EditorConfig struct {
	StepsPerBeat    int    `toml:"steps_per_beat" env:"STEPS_PER_BEAT"`
	SystemClipboard bool   `toml:"system_clipboard" env:"SYSTEM_CLIPBOARD"`
	StatusBarHeight int    `toml:"status_bar_height" env:"STATUS_BAR_HEIGHT"`
	Theme           string `toml:"theme" env:"THEME"`
	ThemesDir       string `toml:"themes_dir" env:"THEMES_DIR"` // empty means <config dir>/themes
}

// AutosaveConfig controls the autosave plugin.
type AutosaveConfig struct {
	Enabled bool          `toml:"enabled" env:"ENABLED"`
	Path    string        `toml:"path" env:"PATH"`
	Delay   time.Duration `toml:"delay" env:"DELAY"`
}

// MIDIConfig controls MIDI export.
type MIDIConfig struct {
	TicksPerQuarter int `toml:"ticks_per_quarter" env:"TICKS_PER_QUARTER"`
	Velocity        int `toml:"velocity" env:"VELOCITY"`
	GhostVelocity   int `toml:"ghost_velocity" env:"GHOST_VELOCITY"`
	AccentVelocity  int `toml:"accent_velocity" env:"ACCENT_VELOCITY"`
}

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	def := midi.DefaultOptions()
	return &Config{
		Logger: logger.NewConfig(),
		Sheet: SheetConfig{
			DefaultTitle:     sheet.DefaultTitle,
			DefaultTempo:     sheet.DefaultTempo,
			DefaultBeats:     sheet.DefaultBeats,
			DefaultNoteValue: sheet.DefaultNoteValue,
		},
		History: HistoryConfig{MaxEntries: DefaultMaxHistory},
		Editor: EditorConfig{
			StepsPerBeat:    DefaultStepsPerBeat,
			SystemClipboard: SystemClipboard,
			StatusBarHeight: StatusBarHeight,
			Theme:           DefaultTheme,
		},
		Autosave: AutosaveConfig{Delay: DefaultAutosaveDelay},
		MIDI: MIDIConfig{
			TicksPerQuarter: int(def.TicksPerQuarter),
			Velocity:        int(def.Velocity),
			GhostVelocity:   int(def.GhostVelocity),
			AccentVelocity:  int(def.AccentVelocity),
		},
	}
}

// DefaultPath returns the config file location under the user config dir
// ($XDG_CONFIG_HOME on Linux), or "" when it cannot be determined.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, AppName, DefaultConfigFileName)
}

// loadFromFile decodes the TOML file at filePath on top of cfg.
// A missing file is not an error.
func loadFromFile(cfg *Config, filePath string) error {
	metadata, err := toml.DecodeFile(filePath, cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	if undecoded := metadata.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("config file '%s': unrecognized keys: %v", filePath, undecoded)
	}
	return nil
}

// loadFromEnv overrides cfg with any DRUMSHEET_* variables that are set.
func loadFromEnv(cfg *Config, environ map[string]string) error {
	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return fmt.Errorf("failed to read environment: %w", err)
	}
	return nil
}

// validate checks config values and resets invalid ones to defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}

	if c.Sheet.DefaultTempo <= 0 {
		c.Sheet.DefaultTempo = defaults.Sheet.DefaultTempo
	}
	if c.Sheet.DefaultBeats <= 0 {
		c.Sheet.DefaultBeats = defaults.Sheet.DefaultBeats
	}
	if !validNoteValue(c.Sheet.DefaultNoteValue) {
		c.Sheet.DefaultNoteValue = defaults.Sheet.DefaultNoteValue
	}

	if c.History.MaxEntries <= 0 {
		c.History.MaxEntries = defaults.History.MaxEntries
	}

	if c.Editor.StepsPerBeat <= 0 || c.Editor.StepsPerBeat > MaxStepsPerBeat {
		c.Editor.StepsPerBeat = defaults.Editor.StepsPerBeat
	}
	if c.Editor.StatusBarHeight <= 0 {
		c.Editor.StatusBarHeight = defaults.Editor.StatusBarHeight
	}
	if c.Editor.Theme == "" {
		c.Editor.Theme = defaults.Editor.Theme
	}

	if c.Autosave.Delay <= 0 {
		c.Autosave.Delay = defaults.Autosave.Delay
	}

	if c.MIDI.TicksPerQuarter <= 0 || c.MIDI.TicksPerQuarter > MaxTicksPerQuarter {
		c.MIDI.TicksPerQuarter = defaults.MIDI.TicksPerQuarter
	}
	if !validVelocity(c.MIDI.Velocity) {
		c.MIDI.Velocity = defaults.MIDI.Velocity
	}
	if !validVelocity(c.MIDI.GhostVelocity) {
		c.MIDI.GhostVelocity = defaults.MIDI.GhostVelocity
	}
	if !validVelocity(c.MIDI.AccentVelocity) {
		c.MIDI.AccentVelocity = defaults.MIDI.AccentVelocity
	}
}

func validNoteValue(v int) bool {
	switch v {
	case 1, 2, 4, 8, 16, 32:
		return true
	}
	return false
}

func validVelocity(v int) bool {
	return v >= 1 && v <= 127
}

// Load builds the effective configuration: defaults, then the TOML file,
// then DRUMSHEET_* environment variables, then flags that were set, then
// validation. An empty configFilePath means DefaultPath(). The returned
// config is usable even when err is non-nil.
func Load(configFilePath string, flags *Flags) (*Config, error) {
	return load(configFilePath, flags, nil)
}

func load(configFilePath string, flags *Flags, environ map[string]string) (*Config, error) {
	cfg := NewDefaultConfig()

	var errs []error
	effectivePath := configFilePath
	if effectivePath == "" {
		effectivePath = DefaultPath()
	}
	if effectivePath != "" {
		if err := loadFromFile(cfg, effectivePath); err != nil {
			errs = append(errs, err)
		}
	}

	if err := loadFromEnv(cfg, environ); err != nil {
		errs = append(errs, err)
	}

	if flags != nil {
		flags.ApplyOverrides(cfg)
	}

	cfg.validate()
	return cfg, errors.Join(errs...)
}

// Encode writes the configuration as TOML.
func (c *Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// SheetOptions returns the options for new sheets.
func (c *Config) SheetOptions() sheet.Options {
	return sheet.Options{
		Title: c.Sheet.DefaultTitle,
		Tempo: c.Sheet.DefaultTempo,
		TimeSignature: sheet.TimeSignature{
			Beats:     c.Sheet.DefaultBeats,
			NoteValue: c.Sheet.DefaultNoteValue,
		},
	}
}

// MIDIOptions returns the options for MIDI export.
func (c *Config) MIDIOptions() midi.Options {
	return midi.Options{
		TicksPerQuarter: uint16(c.MIDI.TicksPerQuarter),
		Velocity:        uint8(c.MIDI.Velocity),
		GhostVelocity:   uint8(c.MIDI.GhostVelocity),
		AccentVelocity:  uint8(c.MIDI.AccentVelocity),
	}
}
