// Package clipboard moves serialized measures between the editor and a clipboard.
package clipboard

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/atotto/clipboard"
	"github.com/bethropolis/drumsheet/internal/logger"
)

// ErrEmpty is returned when there is nothing to paste.
var ErrEmpty = errors.New("clipboard is empty")

// Backend stores one text payload.
type Backend interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

// System uses the operating system clipboard.
type System struct{}

// ReadAll returns the system clipboard text.
func (System) ReadAll() (string, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("read system clipboard: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrEmpty
	}
	return text, nil
}

// WriteAll replaces the system clipboard text.
func (System) WriteAll(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("write system clipboard: %w", err)
	}
	return nil
}

// Memory is a process-local clipboard.
type Memory struct {
	mu   sync.Mutex
	text string
}

// ReadAll returns the stored text.
func (m *Memory) ReadAll() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.text == "" {
		return "", ErrEmpty
	}
	return m.text, nil
}

// WriteAll stores text.
func (m *Memory) WriteAll(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
	return nil
}

// New returns the system clipboard when requested and available, and a
// Memory clipboard otherwise.
func New(useSystem bool) Backend {
	if useSystem {
		if clipboard.Unsupported {
			logger.Warnf("Clipboard: system clipboard unsupported, using internal clipboard")
		} else {
			return System{}
		}
	}
	return &Memory{}
}
