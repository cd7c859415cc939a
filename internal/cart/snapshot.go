package cart

import (
	"context"
	"encoding/json"
	"sync"
)

// Snapshotter persists the full line sequence of one browsing session.
// Save overwrites the slot wholesale; Load returns nil lines when the slot
// is empty. Implementations report failures as errors — the Store decides
// that load failures fall open to an empty cart and save failures are
// logged and swallowed.
type Snapshotter interface {
	Save(ctx context.Context, sessionID string, lines []Line) error
	Load(ctx context.Context, sessionID string) ([]Line, error)
}

// InMemorySnapshotter keeps serialized snapshots in a map. It is used for
// tests and local scenarios and goes through the same JSON encoding as the
// real slot so round-trip behaviour matches.
type InMemorySnapshotter struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

func NewInMemorySnapshotter() *InMemorySnapshotter {
	return &InMemorySnapshotter{slots: make(map[string][]byte)}
}

func (s *InMemorySnapshotter) Save(_ context.Context, sessionID string, lines []Line) error {
	if lines == nil {
		lines = []Line{}
	}
	data, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[sessionID] = data
	return nil
}

func (s *InMemorySnapshotter) Load(_ context.Context, sessionID string) ([]Line, error) {
	s.mu.RLock()
	data, ok := s.slots[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	var lines []Line
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// Seed writes raw bytes into a slot, bypassing serialization. Tests use it
// to simulate corrupt snapshots.
func (s *InMemorySnapshotter) Seed(sessionID string, raw []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[sessionID] = raw
}
