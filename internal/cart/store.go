package cart

import (
	"context"
	"log"
	"sync"

	"github.com/kittipat-r/storefront-backend/internal/catalog"
)

// Store holds the authoritative in-memory cart for one browsing session.
// Every mutation runs the pure reducer, then writes a snapshot of the new
// line sequence. The snapshot write is best effort: a failure is logged
// and never blocks the in-memory mutation or reaches the caller.
type Store struct {
	mu        sync.Mutex
	sessionID string
	state     State
	snapshots Snapshotter
}

// NewStore creates the session's store, seeded from any previously
// persisted snapshot. A missing, unreadable or corrupt snapshot falls open
// to an empty cart; initialization never fails.
func NewStore(ctx context.Context, sessionID string, snapshots Snapshotter) *Store {
	lines, err := snapshots.Load(ctx, sessionID)
	if err != nil {
		log.Printf("cart: could not load snapshot for session %s, starting empty: %v", sessionID, err)
		lines = nil
	}
	if lines == nil {
		lines = []Line{}
	}
	totalItems, totalPrice := deriveTotals(lines)
	return &Store{
		sessionID: sessionID,
		state:     State{Lines: lines, TotalItems: totalItems, TotalPrice: totalPrice},
		snapshots: snapshots,
	}
}

func (s *Store) SessionID() string {
	return s.sessionID
}

// AddItem puts one unit of the item in the cart: a new line with quantity 1,
// or an increment when the item already has a line.
func (s *Store) AddItem(ctx context.Context, item catalog.Item) State {
	return s.apply(ctx, Action{Type: ActionAddItem, Item: item})
}

// SetQuantity sets a line's quantity to exactly the given value. Unknown
// ids and non-positive quantities are no-ops; removal is RemoveItem's job.
func (s *Store) SetQuantity(ctx context.Context, id, quantity int) State {
	return s.apply(ctx, Action{Type: ActionSetQuantity, ID: id, Quantity: quantity})
}

// RemoveItem deletes the line with the given id if present.
func (s *Store) RemoveItem(ctx context.Context, id int) State {
	return s.apply(ctx, Action{Type: ActionRemoveItem, ID: id})
}

// Clear empties the cart and overwrites the snapshot with an empty
// sequence.
func (s *Store) Clear(ctx context.Context) State {
	return s.apply(ctx, Action{Type: ActionClear})
}

// State returns a copy of the current state; the caller may keep it
// without observing later mutations.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotState()
}

func (s *Store) apply(ctx context.Context, action Action) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = Reduce(s.state, action)
	if err := s.snapshots.Save(ctx, s.sessionID, s.state.Lines); err != nil {
		log.Printf("cart: snapshot write failed for session %s: %v", s.sessionID, err)
	}
	return s.snapshotState()
}

func (s *Store) snapshotState() State {
	lines := make([]Line, len(s.state.Lines))
	copy(lines, s.state.Lines)
	return State{Lines: lines, TotalItems: s.state.TotalItems, TotalPrice: s.state.TotalPrice}
}
