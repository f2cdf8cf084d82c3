package config

import "time"

// Base application details
const AppName = "drumsheet"
const DefaultConfigFileName = "config.toml"
const DefaultLogFileName = "drumsheet.log"

// EnvPrefix is prepended to every environment variable the config reads.
const EnvPrefix = "DRUMSHEET_"

// UI Layout
const StatusBarHeight = 1

// Status Bar
const MessageTimeout = 4 * time.Second

// Editor defaults
const DefaultStepsPerBeat = 4
const MaxStepsPerBeat = 8
const SystemClipboard = true
const DefaultTheme = "Stage Dark"

// History
const DefaultMaxHistory = 50

// Autosave
const DefaultAutosaveDelay = 2 * time.Second

// MIDI export
const DefaultTicksPerQuarter = 480
const MaxTicksPerQuarter = 0x7FFF
