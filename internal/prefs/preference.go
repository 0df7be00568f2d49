package prefs

import (
	"errors"
	"io"
	"sync"

	"github.com/sirupsen/logrus"
)

// Well-known preference keys and their fallbacks.
const (
	SearchKey     = "search"
	DefaultSearch = "React"
	ThemeKey      = "theme"
	DefaultTheme  = "Dracula"
)

// Preference is a single string kept in sync with a Slot. Writes go through
// to the slot before Set returns. If the slot fails, the preference stops
// writing and the in-memory value stays authoritative.
type Preference struct {
	mu       sync.RWMutex
	slot     Slot
	key      string
	value    string
	degraded bool
	log      logrus.FieldLogger
}

// New reads key from slot, falling back to fallback when the key is absent
// or the slot cannot be read. Only an unreadable medium degrades the
// preference; corrupt contents count as absent and get overwritten by Set. It never fails; a nil slot gives an
// in-memory-only preference.
func New(slot Slot, key, fallback string, log logrus.FieldLogger) *Preference {
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = discard
	}
	p := &Preference{
		slot:  slot,
		key:   key,
		value: fallback,
		log:   log.WithField("pref", key),
	}
	if slot == nil {
		p.degraded = true
		return p
	}

	v, ok, err := slot.Get(key)
	switch {
	case errors.Is(err, ErrCorrupt):
		p.log.WithError(err).Warn("stored preference unreadable, using fallback until next save")
	case err != nil:
		p.degraded = true
		p.log.WithError(err).Warn("preference storage unavailable, keeping value in memory")
	case ok:
		p.value = v
	}
	return p
}

// Key returns the slot key.
func (p *Preference) Key() string {
	return p.key
}

// Get returns the current value.
func (p *Preference) Get() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.value
}

// Set updates the value and writes it to the slot. Write failures are
// logged, not returned.
func (p *Preference) Set(value string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.value = value
	if p.degraded {
		return
	}
	if err := p.slot.Set(p.key, value); err != nil {
		p.degraded = true
		p.log.WithError(err).Warn("preference write failed, keeping value in memory")
	}
}

// Degraded reports whether the preference has fallen back to memory only.
func (p *Preference) Degraded() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.degraded
}
