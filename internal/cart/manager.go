package cart

import (
	"context"
	"sync"
)

// Manager owns one Store per browsing session, created lazily the first
// time a session touches its cart.
type Manager struct {
	mu        sync.Mutex
	stores    map[string]*Store
	snapshots Snapshotter
}

func NewManager(snapshots Snapshotter) *Manager {
	return &Manager{
		stores:    make(map[string]*Store),
		snapshots: snapshots,
	}
}

// Store returns the session's store, loading its snapshot on first use.
func (m *Manager) Store(ctx context.Context, sessionID string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()

	if store, ok := m.stores[sessionID]; ok {
		return store
	}
	store := NewStore(ctx, sessionID, m.snapshots)
	m.stores[sessionID] = store
	return store
}
