package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatchInOrder(t *testing.T) {
	m := NewManager()
	var got []string
	m.Subscribe(TypeSheetModified, func(e Event) bool {
		got = append(got, "first:"+e.Data.(SheetModifiedData).Op)
		return false
	})
	m.Subscribe(TypeSheetModified, func(e Event) bool {
		got = append(got, "second")
		return false
	})
	m.Subscribe(TypeSheetSaved, func(e Event) bool {
		got = append(got, "saved")
		return false
	})

	m.Dispatch(TypeSheetModified, SheetModifiedData{Op: "toggle-note"})

	assert.Equal(t, []string{"first:toggle-note", "second"}, got)
}

func TestConsumedStopsDelivery(t *testing.T) {
	m := NewManager()
	calls := 0
	m.Subscribe(TypeKeyPressed, func(Event) bool { calls++; return true })
	m.Subscribe(TypeKeyPressed, func(Event) bool { calls++; return false })

	m.Dispatch(TypeKeyPressed, KeyPressedData{Name: "Rune[x]"})
	assert.Equal(t, 1, calls)
}

func TestDispatchWithoutHandlers(t *testing.T) {
	assert.NotPanics(t, func() { NewManager().Dispatch(TypeAppReady, AppReadyData{}) })
}

func TestSubscribeDuringDispatch(t *testing.T) {
	m := NewManager()
	late := 0
	m.Subscribe(TypeAppReady, func(Event) bool {
		m.Subscribe(TypeAppReady, func(Event) bool { late++; return false })
		return false
	})

	m.Dispatch(TypeAppReady, nil)
	assert.Equal(t, 0, late)
	m.Dispatch(TypeAppReady, nil)
	assert.Equal(t, 1, late)
}

func TestTypeString(t *testing.T) {
	assert.Equal(t, "SheetModified", TypeSheetModified.String())
	assert.Equal(t, "Unknown", Type(99).String())
}
