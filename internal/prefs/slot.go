package prefs

import (
	"errors"
	"sync"
)

// ErrCorrupt marks a medium that was read but holds unusable data. The next
// Set replaces it, so a Preference treats it as absent rather than degrading.
var ErrCorrupt = errors.New("preference data is corrupt")

// Slot is a durable key/value store for preference strings.
type Slot interface {
	// Get returns the stored value and whether it was present. A non-nil
	// error means the medium could not be read, or wraps ErrCorrupt when it
	// was read but could not be parsed.
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// MemorySlot keeps values in memory only.
type MemorySlot struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemorySlot returns an empty MemorySlot.
func NewMemorySlot() *MemorySlot {
	return &MemorySlot{values: make(map[string]string)}
}

func (m *MemorySlot) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemorySlot) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values == nil {
		m.values = make(map[string]string)
	}
	m.values[key] = value
	return nil
}
