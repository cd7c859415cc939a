package catalog

import (
	"context"
	"sync"
)

// Repository persists products created through this backend plus the
// running product-id counter. The public catalog itself stays read-only.
type Repository interface {
	Insert(ctx context.Context, item Item) error
	MaxProductID(ctx context.Context) (int, error)
	SetMaxProductID(ctx context.Context, id int) error
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu    sync.RWMutex
	items []Item
	maxID int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

func (r *InMemoryRepository) Insert(_ context.Context, item Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, item)
	return nil
}

func (r *InMemoryRepository) MaxProductID(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.maxID, nil
}

func (r *InMemoryRepository) SetMaxProductID(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.maxID = id
	return nil
}

// Items returns a copy of everything inserted so far.
func (r *InMemoryRepository) Items() []Item {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Item, len(r.items))
	copy(out, r.items)
	return out
}
