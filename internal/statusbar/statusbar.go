// internal/statusbar/statusbar.go
package statusbar

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bethropolis/drumsheet/internal/config"
	"github.com/bethropolis/drumsheet/internal/sheet"
	"github.com/bethropolis/drumsheet/internal/theme"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// Config defines the appearance and behavior of the status bar.
type Config struct {
	StyleDefault   tcell.Style
	StyleModified  tcell.Style
	StyleMessage   tcell.Style
	StyleCommand   tcell.Style // command line input
	MessageTimeout time.Duration
}

// DefaultConfig takes the styles from the built-in theme.
func DefaultConfig() Config {
	return ConfigFromTheme(&theme.StageDark)
}

// ConfigFromTheme takes the status bar styles from th.
func ConfigFromTheme(th *theme.Theme) Config {
	return Config{
		StyleDefault:   th.GetStyle(theme.StyleStatusBar),
		StyleModified:  th.GetStyle(theme.StyleStatusBarModified),
		StyleMessage:   th.GetStyle(theme.StyleStatusBarMessage),
		StyleCommand:   th.GetStyle(theme.StyleStatusBarCommand),
		MessageTimeout: config.MessageTimeout,
	}
}

// CursorInfo is the grid position shown on the right of the bar.
type CursorInfo struct {
	Measure  int // zero based
	Measures int
	Beat     float64 // zero based
	Part     sheet.Part
}

// SelectionInfo is the selection applied to the next note.
type SelectionInfo struct {
	Value  sheet.Value
	Ghost  bool
	Accent bool
}

// StatusBar is the bottom line of the screen.
type StatusBar struct {
	mu     sync.RWMutex
	config Config

	filePath   string
	isModified bool
	cursor     CursorInfo
	selection  SelectionInfo
	editorMode string

	tempMessage     string
	tempMessageTime time.Time
	now             func() time.Time
}

// New creates a new StatusBar with the given configuration.
func New(config Config) *StatusBar {
	return &StatusBar{config: config, now: time.Now}
}

// SetConfig replaces the styles, e.g. after a theme change.
func (sb *StatusBar) SetConfig(config Config) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.config = config
}

// SetFileInfo updates the file path and modified flag.
func (sb *StatusBar) SetFileInfo(path string, modified bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.filePath = path
	sb.isModified = modified
}

// SetCursorInfo updates the cursor position shown.
func (sb *StatusBar) SetCursorInfo(info CursorInfo) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.cursor = info
}

// SetSelectionInfo updates the selection shown.
func (sb *StatusBar) SetSelectionInfo(info SelectionInfo) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.selection = info
}

// SetEditorMode updates the displayed editor mode.
func (sb *StatusBar) SetEditorMode(mode string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.editorMode = mode
}

// SetTemporaryMessage displays a message for the configured duration.
func (sb *StatusBar) SetTemporaryMessage(format string, args ...interface{}) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = fmt.Sprintf(format, args...)
	sb.tempMessageTime = sb.now()
}

// ResetTemporaryMessage clears any temporary message.
func (sb *StatusBar) ResetTemporaryMessage() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = ""
	sb.tempMessageTime = time.Time{}
}

// Text returns the line the bar would draw now, and whether it is a
// temporary message.
func (sb *StatusBar) Text() (string, bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	if sb.messageActive() {
		return sb.tempMessage, true
	}
	return sb.defaultText(), false
}

// messageActive expires an old message. Caller holds the write lock.
func (sb *StatusBar) messageActive() bool {
	if sb.tempMessageTime.IsZero() {
		return false
	}
	if sb.now().Sub(sb.tempMessageTime) > sb.config.MessageTimeout {
		sb.tempMessage = ""
		sb.tempMessageTime = time.Time{}
		return false
	}
	return true
}

func (sb *StatusBar) defaultText() string {
	fPath := sb.filePath
	if fPath == "" {
		fPath = "[No Name]"
	}
	modifiedIndicator := ""
	if sb.isModified {
		modifiedIndicator = " [Modified]"
	}
	modeIndicator := ""
	if sb.editorMode != "" {
		modeIndicator = fmt.Sprintf(" -- %s", sb.editorMode)
	}

	flags := []string{sb.selection.Value.String()}
	if sb.selection.Ghost {
		flags = append(flags, "ghost")
	}
	if sb.selection.Accent {
		flags = append(flags, "accent")
	}

	c := sb.cursor
	return fmt.Sprintf("%s%s%s -- Measure %d/%d, Beat %g, %s -- %s",
		fPath, modifiedIndicator, modeIndicator,
		c.Measure+1, c.Measures, c.Beat+1, c.Part, strings.Join(flags, " "))
}

// Draw renders the status bar on the last screen line.
func (sb *StatusBar) Draw(screen tcell.Screen, width, height int) {
	if height <= 0 || width <= 0 {
		return
	}
	y := height - 1

	sb.mu.Lock()
	var text string
	var style tcell.Style
	switch {
	case sb.messageActive():
		text = sb.tempMessage
		style = sb.config.StyleMessage
		if strings.HasPrefix(text, ":") {
			style = sb.config.StyleCommand
		}
	case sb.isModified:
		text = sb.defaultText()
		style = sb.config.StyleModified
	default:
		text = sb.defaultText()
		style = sb.config.StyleDefault
	}
	sb.mu.Unlock()

	for x := 0; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}

	gr := uniseg.NewGraphemes(text)
	currentX := 0
	for gr.Next() {
		clusterWidth := gr.Width()
		if currentX+clusterWidth > width {
			break
		}
		if runes := gr.Runes(); len(runes) > 0 {
			screen.SetContent(currentX, y, runes[0], runes[1:], style)
		}
		currentX += clusterWidth
	}
}
