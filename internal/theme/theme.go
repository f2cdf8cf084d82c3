// internal/theme/theme.go
package theme

import (
	"strings"

	"github.com/bethropolis/drumsheet/internal/logger"
	"github.com/gdamore/tcell/v2"
)

// Theme maps style names to tcell styles.
type Theme struct {
	Name   string
	IsDark bool
	Styles map[string]tcell.Style
}

// Style names used by the drum grid and status bar.
const (
	StyleDefault           = "Default"
	StyleHeader            = "Header"
	StylePartLabel         = "PartLabel"
	StyleGrid              = "Grid"
	StyleGridBeat          = "Grid.beat"
	StyleBarline           = "Barline"
	StyleRepeat            = "Barline.repeat"
	StyleSection           = "Section"
	StyleNote              = "Note"
	StyleNoteGhost         = "Note.ghost"
	StyleNoteAccent        = "Note.accent"
	StyleRest              = "Rest"
	StyleCursor            = "Cursor"
	StyleStatusBar         = "StatusBar"
	StyleStatusBarModified = "StatusBarModified"
	StyleStatusBarMessage  = "StatusBarMessage"
	StyleStatusBarCommand  = "StatusBarCommand"
)

// GetStyle returns the named style, falling back to the part before the
// first dot and then to Default.
func (t *Theme) GetStyle(name string) tcell.Style {
	if style, ok := t.Styles[name]; ok {
		return style
	}

	if dotIndex := strings.Index(name, "."); dotIndex != -1 {
		if style, ok := t.Styles[name[:dotIndex]]; ok {
			return style
		}
	}

	if defStyle, ok := t.Styles[StyleDefault]; ok {
		if name != StyleDefault {
			logger.DebugTagf("theme", "Theme '%s': Style '%s' not found, falling back to 'Default'", t.Name, name)
		}
		return defStyle
	}

	logger.Warnf("Theme '%s': Style '%s' and 'Default' style not found, using tcell default.", t.Name, name)
	return tcell.StyleDefault
}

// --- Built-in Themes ---

// StageDark is the default theme.
var StageDark = func() Theme {
	bg := tcell.NewHexColor(0x2a2f38)
	fg := tcell.NewHexColor(0xc5cdd9)
	muted := tcell.NewHexColor(0x5c6370)
	orange := tcell.NewHexColor(0xd19a66)
	yellow := tcell.NewHexColor(0xe5c07b)
	green := tcell.NewHexColor(0x98c379)
	cyan := tcell.NewHexColor(0x56b6c2)
	blue := tcell.NewHexColor(0x61afef)
	magenta := tcell.NewHexColor(0xc678dd)

	base := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(fg)
	return Theme{
		Name:   "Stage Dark",
		IsDark: true,
		Styles: map[string]tcell.Style{
			StyleDefault:           base,
			StyleHeader:            base.Foreground(yellow).Bold(true),
			StylePartLabel:         base.Foreground(cyan),
			StyleGrid:              base.Foreground(muted),
			StyleGridBeat:          base.Foreground(fg),
			StyleBarline:           base.Foreground(fg),
			StyleRepeat:            base.Foreground(magenta).Bold(true),
			StyleSection:           base.Foreground(green).Bold(true),
			StyleNote:              base.Foreground(blue).Bold(true),
			StyleNoteGhost:         base.Foreground(muted),
			StyleNoteAccent:        base.Foreground(orange).Bold(true),
			StyleRest:              base.Foreground(green),
			StyleCursor:            base.Reverse(true),
			StyleStatusBar:         tcell.StyleDefault.Background(bg).Foreground(fg),
			StyleStatusBarModified: tcell.StyleDefault.Background(bg).Foreground(yellow),
			StyleStatusBarMessage:  tcell.StyleDefault.Background(bg).Foreground(fg).Bold(true),
			StyleStatusBarCommand:  tcell.StyleDefault.Background(bg).Foreground(green).Bold(true),
		},
	}
}()

// PaperLight suits light terminals.
var PaperLight = func() Theme {
	base := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(tcell.ColorBlack)
	bar := tcell.StyleDefault.Background(tcell.ColorSilver).Foreground(tcell.ColorBlack)
	return Theme{
		Name:   "Paper Light",
		IsDark: false,
		Styles: map[string]tcell.Style{
			StyleDefault:           base,
			StyleHeader:            base.Bold(true),
			StylePartLabel:         base.Foreground(tcell.ColorNavy),
			StyleGrid:              base.Foreground(tcell.ColorGray),
			StyleGridBeat:          base,
			StyleBarline:           base,
			StyleRepeat:            base.Foreground(tcell.ColorPurple).Bold(true),
			StyleSection:           base.Foreground(tcell.ColorGreen).Bold(true),
			StyleNote:              base.Bold(true),
			StyleNoteGhost:         base.Foreground(tcell.ColorGray),
			StyleNoteAccent:        base.Foreground(tcell.ColorMaroon).Bold(true),
			StyleRest:              base.Foreground(tcell.ColorGreen),
			StyleCursor:            base.Reverse(true),
			StyleStatusBar:         bar,
			StyleStatusBarModified: bar.Foreground(tcell.ColorMaroon),
			StyleStatusBarMessage:  bar.Bold(true),
			StyleStatusBarCommand:  bar.Foreground(tcell.ColorGreen).Bold(true),
		},
	}
}()
