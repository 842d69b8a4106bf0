package chat

import (
	"sync"

	"mozo/internal/catalog"
	"mozo/internal/models/providers"
)

// Manager hands out one session per session ID. Sessions live for the
// process lifetime; there is no persistence or eviction.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	gateway      providers.Provider
	cat          *catalog.Catalog
	historyLimit int
}

// NewManager creates a session manager
func NewManager(gateway providers.Provider, cat *catalog.Catalog, historyLimit int) *Manager {
	return &Manager{
		sessions:     make(map[string]*Session),
		gateway:      gateway,
		cat:          cat,
		historyLimit: historyLimit,
	}
}

// GetOrCreate returns the session for id, creating it on first use.
func (m *Manager) GetOrCreate(id string) *Session {
	m.mu.RLock()
	if s, ok := m.sessions[id]; ok {
		m.mu.RUnlock()
		return s
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[id]; ok {
		return s
	}
	s := NewSession(m.gateway, m.cat, m.historyLimit)
	m.sessions[id] = s
	return s
}

// Get returns the session for id if it exists.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
