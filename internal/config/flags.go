// internal/config/flags.go
package config

import (
	"fmt"

	"github.com/bethropolis/drumsheet/internal/logger"
	"github.com/spf13/pflag"
)

// Flags holds values parsed from command-line flags. Only flags the user
// actually set override the configuration.
type Flags struct {
	fs *pflag.FlagSet

	ConfigFilePath  string
	LogLevel        string
	LogFilePath     string
	EnableTags      []string
	DisableTags     []string
	EnablePkgs      []string
	DisablePkgs     []string
	EnableFiles     []string
	DisableFiles    []string
	MaxHistory      int
	StepsPerBeat    int
	SystemClipboard bool
	Autosave        bool
	AutosavePath    string
	Theme           string
}

// Define registers the flags on fs.
func (f *Flags) Define(fs *pflag.FlagSet) {
	f.fs = fs
	fs.StringVarP(&f.ConfigFilePath, "config", "c", "", fmt.Sprintf("Path to TOML configuration file (default %s)", DefaultPath()))
	fs.StringVar(&f.LogLevel, "loglevel", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&f.LogFilePath, "logfile", "", "Path to write log file (use '-' for stderr)")
	fs.StringSliceVar(&f.EnableTags, "log-tags", nil, "Comma-separated list of tags to enable")
	fs.StringSliceVar(&f.DisableTags, "log-disable-tags", nil, "Comma-separated list of tags to disable")
	fs.StringSliceVar(&f.EnablePkgs, "log-packages", nil, "Comma-separated list of packages to enable")
	fs.StringSliceVar(&f.DisablePkgs, "log-disable-packages", nil, "Comma-separated list of packages to disable")
	fs.StringSliceVar(&f.EnableFiles, "log-files", nil, "Comma-separated list of files to enable")
	fs.StringSliceVar(&f.DisableFiles, "log-disable-files", nil, "Comma-separated list of files to disable")
	fs.IntVar(&f.MaxHistory, "history", 0, "Number of undo snapshots to keep")
	fs.IntVar(&f.StepsPerBeat, "steps", 0, "Grid steps per beat in the editor")
	fs.BoolVar(&f.SystemClipboard, "system-clipboard", false, "Use system clipboard instead of internal clipboard")
	fs.BoolVar(&f.Autosave, "autosave", false, "Save automatically shortly after each edit")
	fs.StringVar(&f.AutosavePath, "autosave-path", "", "File the autosave plugin writes to (default: the open file)")
	fs.StringVar(&f.Theme, "theme", "", "Name of the color theme")
}

func (f *Flags) changed(name string) bool {
	return f.fs != nil && f.fs.Changed(name)
}

// ApplyOverrides updates cfg with the flags that were set.
func (f *Flags) ApplyOverrides(cfg *Config) {
	if f.changed("loglevel") && f.LogLevel != "" {
		cfg.Logger.LogLevel = f.LogLevel
	}
	if f.changed("logfile") {
		cfg.Logger.LogFilePath = f.LogFilePath
	}
	if f.changed("log-tags") {
		cfg.Logger.EnabledTags = f.EnableTags
	}
	if f.changed("log-disable-tags") {
		cfg.Logger.DisabledTags = f.DisableTags
	}
	if f.changed("log-packages") {
		cfg.Logger.EnabledPackages = f.EnablePkgs
	}
	if f.changed("log-disable-packages") {
		cfg.Logger.DisabledPackages = f.DisablePkgs
	}
	if f.changed("log-files") {
		cfg.Logger.EnabledFiles = f.EnableFiles
	}
	if f.changed("log-disable-files") {
		cfg.Logger.DisabledFiles = f.DisableFiles
	}
	if f.changed("history") && f.MaxHistory > 0 {
		cfg.History.MaxEntries = f.MaxHistory
	}
	if f.changed("steps") && f.StepsPerBeat > 0 {
		cfg.Editor.StepsPerBeat = f.StepsPerBeat
	}
	if f.changed("system-clipboard") {
		cfg.Editor.SystemClipboard = f.SystemClipboard
	}
	if f.changed("autosave") {
		cfg.Autosave.Enabled = f.Autosave
	}
	if f.changed("autosave-path") {
		cfg.Autosave.Path = f.AutosavePath
	}
	if f.changed("theme") && f.Theme != "" {
		cfg.Editor.Theme = f.Theme
	}

	if f.fs != nil {
		f.fs.Visit(func(fl *pflag.Flag) {
			logger.DebugTagf("config", "Applied flag override: %s=%s", fl.Name, fl.Value.String())
		})
	}
}
