package channel

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
)

// Manager owns the lifecycle of all registered channels.
type Manager struct {
	mu       sync.RWMutex
	channels map[string]Channel
}

func NewManager() *Manager {
	return &Manager{channels: make(map[string]Channel)}
}

// Register adds a channel under its own name.
func (m *Manager) Register(ch Channel) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.channels[ch.Name()] = ch
}

// StartAll starts every channel in name order; the first failure stops
// the startup.
func (m *Manager) StartAll(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, name := range m.sortedNames() {
		if err := m.channels[name].Start(ctx); err != nil {
			log.Printf("[channel] failed to start %s: %v", name, err)
			return fmt.Errorf("start %s: %w", name, err)
		}
		log.Printf("[channel] started %s", name)
	}
	return nil
}

// StopAll stops every running channel. Stop errors are logged, not
// returned, so one stuck channel cannot block shutdown of the rest.
func (m *Manager) StopAll(ctx context.Context) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, name := range m.sortedNames() {
		ch := m.channels[name]
		if !ch.IsRunning() {
			continue
		}
		if err := ch.Stop(ctx); err != nil {
			log.Printf("[channel] failed to stop %s: %v", name, err)
		} else {
			log.Printf("[channel] stopped %s", name)
		}
	}
}

// Get returns a channel by name.
func (m *Manager) Get(name string) (Channel, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ch, ok := m.channels[name]
	return ch, ok
}

// List returns channel names mapped to their running state.
func (m *Manager) List() map[string]bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make(map[string]bool, len(m.channels))
	for name, ch := range m.channels {
		result[name] = ch.IsRunning()
	}
	return result
}

// sortedNames must be called with m.mu held.
func (m *Manager) sortedNames() []string {
	names := make([]string, 0, len(m.channels))
	for name := range m.channels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
