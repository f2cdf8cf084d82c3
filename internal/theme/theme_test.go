package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const oceanTheme = `
name = "Ocean"
is_dark = true

[styles.Default]
fg = "#c0c5ce"
bg = "reset"

[styles.Note]
fg = "teal"
bold = true

[styles.Cursor]
reverse = true
`

func TestGetStyleFallsBack(t *testing.T) {
	th := &StageDark
	assert.Equal(t, th.Styles[StyleNote], th.GetStyle("Note.roll"), "unknown sub-style uses its parent")
	assert.Equal(t, th.Styles[StyleNoteGhost], th.GetStyle(StyleNoteGhost))
	assert.Equal(t, th.Styles[StyleDefault], th.GetStyle("Nonexistent"))

	bare := &Theme{Name: "bare", Styles: map[string]tcell.Style{}}
	assert.Equal(t, tcell.StyleDefault, bare.GetStyle(StyleNote))
}

func TestParseThemeInheritsDefault(t *testing.T) {
	th, err := ParseTheme(oceanTheme)
	require.NoError(t, err)
	assert.Equal(t, "Ocean", th.Name)
	assert.True(t, th.IsDark)

	fg, bg, _ := th.GetStyle(StyleNote).Decompose()
	assert.Equal(t, tcell.ColorTeal, fg)
	assert.Equal(t, tcell.ColorReset, bg)

	fg, _, attrs := th.GetStyle(StyleCursor).Decompose()
	assert.Equal(t, tcell.NewHexColor(0xc0c5ce), fg)
	assert.NotZero(t, attrs&tcell.AttrReverse)
}

func TestParseColorString(t *testing.T) {
	c, err := parseColorString("#FF0000")
	require.NoError(t, err)
	assert.Equal(t, tcell.NewHexColor(0xff0000), c)

	c, err = parseColorString("default")
	require.NoError(t, err)
	assert.Equal(t, tcell.ColorDefault, c)

	_, err = parseColorString("#fff")
	assert.Error(t, err)
	_, err = parseColorString("not-a-color")
	assert.Error(t, err)
}

func TestParseThemeRejectsBadDefault(t *testing.T) {
	_, err := ParseTheme("[styles.Default]\nfg = \"mauve-ish\"\n")
	assert.Error(t, err)

	_, err = ParseTheme("name = ")
	assert.Error(t, err)
}

func TestManagerLoadsDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ocean.toml"), []byte(oceanTheme), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "unnamed.toml"), []byte("[styles.Note]\nbold = true\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.toml"), []byte("[styles"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	m := NewManager(dir)
	assert.Equal(t, []string{"Ocean", "Paper Light", "Stage Dark", "unnamed"}, m.ListThemes())
	assert.Equal(t, DefaultThemeName, m.Current().Name)

	require.NoError(t, m.SetTheme("ocean"))
	assert.Equal(t, "Ocean", m.Current().Name)
	assert.Error(t, m.SetTheme("sunset"))
	assert.Equal(t, "Ocean", m.Current().Name)

	_, ok := m.GetTheme("PAPER LIGHT")
	assert.True(t, ok)
}

func TestManagerMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "absent")
	m := NewManager(dir)
	assert.Len(t, m.ListThemes(), 2)
	_, err := os.Stat(dir)
	assert.True(t, os.IsNotExist(err), "manager must not create the directory")
}
