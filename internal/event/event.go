// internal/event/event.go
package event

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	// Document events
	TypeSheetModified    // The live sheet changed (edit, metadata, undo or redo)
	TypeSheetLoaded      // A sheet replaced the live document (load or new)
	TypeSheetSaved       // The sheet was written to a file
	TypeHistoryChanged   // Undo or redo moved the history pointer
	TypeSelectionChanged // Session selection (value, part, ghost, accent) changed

	// Input events
	TypeKeyPressed

	// Application lifecycle
	TypeAppReady
	TypeAppQuit
)

// String returns a readable name for logs.
func (t Type) String() string {
	switch t {
	case TypeSheetModified:
		return "SheetModified"
	case TypeSheetLoaded:
		return "SheetLoaded"
	case TypeSheetSaved:
		return "SheetSaved"
	case TypeHistoryChanged:
		return "HistoryChanged"
	case TypeSelectionChanged:
		return "SelectionChanged"
	case TypeKeyPressed:
		return "KeyPressed"
	case TypeAppReady:
		return "AppReady"
	case TypeAppQuit:
		return "AppQuit"
	}
	return "Unknown"
}

// Event is the structure passed through the event bus.
type Event struct {
	Type Type
	Data interface{}
}

// SheetModifiedData names the operation that changed the sheet.
type SheetModifiedData struct {
	Op        string
	MeasureID string // empty for sheet-wide operations
}

// SheetLoadedData carries the source of a loaded sheet. FilePath is empty
// for a new sheet or a reader without a name.
type SheetLoadedData struct {
	FilePath string
}

// SheetSavedData carries the file the sheet was saved to.
type SheetSavedData struct {
	FilePath string
}

// HistoryChangedData reports the history pointer after undo or redo.
type HistoryChangedData struct {
	Index int
	Len   int
}

// KeyPressedData carries the raw key name as reported by the terminal.
type KeyPressedData struct {
	Name string
}

// AppQuitData could contain exit code or reason later.
type AppQuitData struct{}

// AppReadyData could contain initial config or state later.
type AppReadyData struct{}
