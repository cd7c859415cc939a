package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingSnapshotter struct {
	loads []Line
}

func (f *failingSnapshotter) Save(context.Context, string, []Line) error {
	return errors.New("slot unwritable")
}

func (f *failingSnapshotter) Load(context.Context, string) ([]Line, error) {
	if f.loads == nil {
		return nil, errors.New("slot unreadable")
	}
	return f.loads, nil
}

func TestStorePersistsAfterEveryMutation(t *testing.T) {
	ctx := context.Background()
	snapshots := NewInMemorySnapshotter()
	store := NewStore(ctx, "s1", snapshots)

	store.AddItem(ctx, item(1, "10.00"))
	lines, err := snapshots.Load(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Quantity)

	store.SetQuantity(ctx, 1, 4)
	lines, err = snapshots.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 4, lines[0].Quantity)

	store.RemoveItem(ctx, 1)
	lines, err = snapshots.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	snapshots := NewInMemorySnapshotter()

	store := NewStore(ctx, "s1", snapshots)
	store.AddItem(ctx, item(1, "10.00"))
	store.AddItem(ctx, item(2, "5.50"))
	store.SetQuantity(ctx, 2, 3)

	// a fresh store for the same session reproduces the cart, including
	// derived totals
	reloaded := NewStore(ctx, "s1", snapshots)
	st := reloaded.State()
	require.Len(t, st.Lines, 2)
	assert.Equal(t, 1, st.Lines[0].ID)
	assert.Equal(t, 1, st.Lines[0].Quantity)
	assert.Equal(t, 2, st.Lines[1].ID)
	assert.Equal(t, 3, st.Lines[1].Quantity)
	assert.Equal(t, "item", st.Lines[1].Title)
	assert.True(t, st.Lines[1].Price.Equal(decimal.RequireFromString("5.50")))
	assert.Equal(t, 4, st.TotalItems)
	assert.True(t, st.TotalPrice.Equal(decimal.RequireFromString("26.50")))
}

func TestStoreLoadFailsOpenToEmpty(t *testing.T) {
	ctx := context.Background()

	// corrupt snapshot
	snapshots := NewInMemorySnapshotter()
	snapshots.Seed("s1", []byte("{not json"))
	store := NewStore(ctx, "s1", snapshots)
	st := store.State()
	assert.Empty(t, st.Lines)
	assert.Equal(t, 0, st.TotalItems)
	assert.True(t, st.TotalPrice.IsZero())

	// unreadable slot
	store = NewStore(ctx, "s2", &failingSnapshotter{})
	st = store.State()
	assert.Empty(t, st.Lines)
	assert.Equal(t, 0, st.TotalItems)
}

func TestStoreSwallowsSaveFailures(t *testing.T) {
	ctx := context.Background()
	store := NewStore(ctx, "s1", &failingSnapshotter{loads: []Line{}})

	// the write fails but the in-memory mutation still takes effect
	st := store.AddItem(ctx, item(1, "10.00"))
	require.Len(t, st.Lines, 1)
	assert.Equal(t, 1, st.TotalItems)

	st = store.SetQuantity(ctx, 1, 3)
	assert.Equal(t, 3, st.TotalItems)
}

func TestStoreClearOverwritesSnapshot(t *testing.T) {
	ctx := context.Background()
	snapshots := NewInMemorySnapshotter()
	store := NewStore(ctx, "s1", snapshots)
	store.AddItem(ctx, item(1, "10.00"))

	store.Clear(ctx)

	lines, err := snapshots.Load(ctx, "s1")
	require.NoError(t, err)
	assert.NotNil(t, lines)
	assert.Empty(t, lines)

	st := store.State()
	assert.Empty(t, st.Lines)
	assert.Equal(t, 0, st.TotalItems)
	assert.True(t, st.TotalPrice.IsZero())
}

func TestStoreStateIsACopy(t *testing.T) {
	ctx := context.Background()
	store := NewStore(ctx, "s1", NewInMemorySnapshotter())
	store.AddItem(ctx, item(1, "10.00"))

	taken := store.State()
	store.SetQuantity(ctx, 1, 9)

	assert.Equal(t, 1, taken.Lines[0].Quantity)
	assert.Equal(t, 1, taken.TotalItems)
}

func TestManagerReusesStorePerSession(t *testing.T) {
	ctx := context.Background()
	manager := NewManager(NewInMemorySnapshotter())

	a := manager.Store(ctx, "s1")
	b := manager.Store(ctx, "s1")
	other := manager.Store(ctx, "s2")

	assert.Same(t, a, b)
	assert.NotSame(t, a, other)

	a.AddItem(ctx, item(1, "10.00"))
	assert.Empty(t, other.State().Lines)
}
