package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bethropolis/drumsheet/internal/core"
	"github.com/bethropolis/drumsheet/internal/midi"
	"github.com/bethropolis/drumsheet/internal/plugin"
	"github.com/bethropolis/drumsheet/internal/sheet"
)

// ErrUnsavedChanges is returned by commands that would discard edits.
var ErrUnsavedChanges = errors.New("unsaved changes (add ! to discard)")

type sheetCommands struct {
	api SheetEditor
}

// RegisterSheetCommands registers the file, metadata, section, selection
// and quit commands.
func RegisterSheetCommands(api SheetEditor) error {
	c := &sheetCommands{api: api}
	return registerAll(api, map[string]plugin.CommandFunc{
		"w":         c.write,
		"wq":        c.writeQuit,
		"e":         c.edit(false),
		"e!":        c.edit(true),
		"new":       c.newSheet(false),
		"new!":      c.newSheet(true),
		"title":     c.title,
		"artist":    c.artist,
		"tempo":     c.tempo,
		"section":   c.section,
		"unsection": c.unsection,
		"value":     c.value,
		"restvalue": c.restValue,
		"part":      c.part,
		"undo":      c.undo,
		"redo":      c.redo,
		"midi":      c.exportMIDI,
		"q":         c.quit(false),
		"q!":        c.quit(true),
	})
}

func (c *sheetCommands) store() *core.Store {
	return c.api.SheetStore()
}

func (c *sheetCommands) write(args []string) error {
	if len(args) > 1 {
		return errors.New("usage: w [path]")
	}
	path := ""
	if len(args) == 1 {
		path = args[0]
	}
	if err := c.api.SaveSheet(path); err != nil {
		return err
	}
	c.api.SetStatusMessage("Saved to %s", c.api.FilePath())
	return nil
}

func (c *sheetCommands) writeQuit(args []string) error {
	if err := c.write(args); err != nil {
		return err
	}
	return c.api.Quit(false)
}

func (c *sheetCommands) edit(force bool) plugin.CommandFunc {
	return func(args []string) error {
		if len(args) != 1 {
			return errors.New("usage: e <path>")
		}
		if !force && c.api.IsModified() {
			return ErrUnsavedChanges
		}
		if err := c.store().LoadFile(args[0]); err != nil {
			return err
		}
		stats := c.api.SheetStats()
		c.api.SetStatusMessage("Opened %s (%d measures)", args[0], stats.Measures)
		return nil
	}
}

func (c *sheetCommands) newSheet(force bool) plugin.CommandFunc {
	return func(args []string) error {
		if !force && c.api.IsModified() {
			return ErrUnsavedChanges
		}
		c.store().NewSheet()
		c.api.SetStatusMessage("New sheet")
		return nil
	}
}

func (c *sheetCommands) title(args []string) error {
	title := strings.Join(args, " ")
	if title == "" {
		c.api.SetStatusMessage("Title: %s", c.api.Sheet().Title)
		return nil
	}
	c.store().SetTitle(title)
	c.api.SetStatusMessage("Title set to: %s", title)
	return nil
}

func (c *sheetCommands) artist(args []string) error {
	artist := strings.Join(args, " ")
	c.store().SetArtist(artist)
	if artist == "" {
		c.api.SetStatusMessage("Artist cleared")
	} else {
		c.api.SetStatusMessage("Artist set to: %s", artist)
	}
	return nil
}

func (c *sheetCommands) tempo(args []string) error {
	if len(args) == 0 {
		c.api.SetStatusMessage("Tempo: %d bpm", c.api.Sheet().Tempo)
		return nil
	}
	bpm, err := strconv.Atoi(args[0])
	if err != nil || bpm <= 0 {
		return fmt.Errorf("invalid tempo %q", args[0])
	}
	c.store().SetTempo(bpm)
	c.api.SetStatusMessage("Tempo set to %d bpm", bpm)
	return nil
}

func (c *sheetCommands) section(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: section <type> [label]")
	}
	t, err := sheet.ParseSectionType(args[0])
	if err != nil {
		return err
	}
	id := c.api.CurrentMeasureID()
	if id == "" {
		return errors.New("no measure under the cursor")
	}
	label := strings.Join(args[1:], " ")
	c.store().AddSection(t, label, []string{id})
	c.api.SetStatusMessage("Section %s added", t)
	return nil
}

func (c *sheetCommands) unsection(args []string) error {
	sh := c.api.Sheet()
	m := sh.Measure(c.api.CurrentMeasureID())
	if m == nil || m.SectionID == "" {
		return errors.New("measure is not in a section")
	}
	c.store().RemoveSection(m.SectionID)
	c.api.SetStatusMessage("Section removed")
	return nil
}

func (c *sheetCommands) value(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: value <whole|half|quarter|eighth|sixteenth>")
	}
	v, err := sheet.ParseValue(args[0])
	if err != nil {
		return err
	}
	c.store().SetSelectedNoteValue(v)
	c.api.SetStatusMessage("Note value: %s", v)
	return nil
}

func (c *sheetCommands) restValue(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: restvalue <whole|half|quarter|eighth|sixteenth>")
	}
	v, err := sheet.ParseValue(args[0])
	if err != nil {
		return err
	}
	c.store().SetSelectedRestValue(v)
	c.api.SetStatusMessage("Rest value: %s", v)
	return nil
}

func (c *sheetCommands) part(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: part <name|none>")
	}
	if args[0] == "none" {
		c.store().SetSelectedDrumPart("")
		c.api.SetStatusMessage("Part follows the cursor")
		return nil
	}
	p, err := sheet.ParsePart(args[0])
	if err != nil {
		return err
	}
	c.store().SetSelectedDrumPart(p)
	c.api.SetStatusMessage("Part: %s", p)
	return nil
}

func (c *sheetCommands) undo(args []string) error {
	if !c.store().Undo() {
		c.api.SetStatusMessage("Already at oldest change")
	}
	return nil
}

func (c *sheetCommands) redo(args []string) error {
	if !c.store().Redo() {
		c.api.SetStatusMessage("Already at newest change")
	}
	return nil
}

func (c *sheetCommands) exportMIDI(args []string) error {
	if len(args) > 1 {
		return errors.New("usage: midi [path]")
	}
	var path string
	switch {
	case len(args) == 1:
		path = args[0]
	case c.api.FilePath() != "":
		path = core.ExportPath(c.api.FilePath(), midi.FileExtension)
	default:
		path = core.ExportPath(c.store().SuggestedFileName(), midi.FileExtension)
	}
	if err := midi.ExportFile(path, c.api.Sheet(), c.api.Config().MIDIOptions()); err != nil {
		return err
	}
	c.api.SetStatusMessage("Exported MIDI to %s", path)
	return nil
}

func (c *sheetCommands) quit(force bool) plugin.CommandFunc {
	return func(args []string) error {
		return c.api.Quit(force)
	}
}
