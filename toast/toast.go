// Package toast shows short-lived status messages on the bottom line.
package toast

import (
	"sync"
	"time"
)

// Kind classifies a toast for styling.
type Kind int

const (
	Info Kind = iota
	Success
	Error
)

// DefaultDuration is how long a toast stays visible.
const DefaultDuration = 3 * time.Second

// Toast is a single visible message.
type Toast struct {
	Message string
	Kind    Kind
}

// Manager holds at most one visible toast. Showing a new toast replaces
// the current one and restarts the hide timer.
type Manager struct {
	mu      sync.Mutex
	current *Toast
	timer   *time.Timer
	subs    []func(*Toast)
}

func NewManager() *Manager {
	return &Manager{}
}

// Subscribe registers a callback fired on every change; a nil toast
// means the message was hidden.
func (m *Manager) Subscribe(fn func(*Toast)) {
	m.mu.Lock()
	m.subs = append(m.subs, fn)
	m.mu.Unlock()
}

// Show displays message for DefaultDuration.
func (m *Manager) Show(message string, kind Kind) {
	m.ShowFor(message, kind, DefaultDuration)
}

// ShowFor displays message for the given duration.
func (m *Manager) ShowFor(message string, kind Kind, d time.Duration) {
	m.mu.Lock()
	if m.timer != nil {
		m.timer.Stop()
	}
	t := &Toast{Message: message, Kind: kind}
	m.current = t
	m.timer = time.AfterFunc(d, func() {
		m.hide(t)
	})
	subs := m.snapshot()
	m.mu.Unlock()
	for _, fn := range subs {
		fn(t)
	}
}

// Current returns the visible toast, or nil.
func (m *Manager) Current() *Toast {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Hide dismisses the visible toast immediately.
func (m *Manager) Hide() {
	m.mu.Lock()
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	m.current = nil
	subs := m.snapshot()
	m.mu.Unlock()
	for _, fn := range subs {
		fn(nil)
	}
}

// hide clears only if t is still the visible toast, so a newer message
// is not dismissed by an older timer.
func (m *Manager) hide(t *Toast) {
	m.mu.Lock()
	if m.current != t {
		m.mu.Unlock()
		return
	}
	m.current = nil
	m.timer = nil
	subs := m.snapshot()
	m.mu.Unlock()
	for _, fn := range subs {
		fn(nil)
	}
}

func (m *Manager) snapshot() []func(*Toast) {
	subs := make([]func(*Toast), len(m.subs))
	copy(subs, m.subs)
	return subs
}
