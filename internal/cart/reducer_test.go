package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittipat-r/storefront-backend/internal/catalog"
)

func item(id int, price string) catalog.Item {
	return catalog.Item{
		ID:          id,
		Title:       "item",
		Price:       decimal.RequireFromString(price),
		Description: "desc",
		Category:    "things",
		Image:       "https://example.com/img.png",
		Rating:      catalog.Rating{Rate: 4.5, Count: 10},
	}
}

func TestReduceAddItem(t *testing.T) {
	st := State{}

	st = Reduce(st, Action{Type: ActionAddItem, Item: item(1, "10.00")})
	require.Len(t, st.Lines, 1)
	assert.Equal(t, 1, st.Lines[0].Quantity)
	assert.Equal(t, 1, st.TotalItems)
	assert.True(t, st.TotalPrice.Equal(decimal.RequireFromString("10.00")))

	// adding the same id increments the existing line, never duplicates it
	st = Reduce(st, Action{Type: ActionAddItem, Item: item(1, "10.00")})
	require.Len(t, st.Lines, 1)
	assert.Equal(t, 2, st.Lines[0].Quantity)
	assert.Equal(t, 2, st.TotalItems)
	assert.True(t, st.TotalPrice.Equal(decimal.RequireFromString("20.00")))
}

func TestReduceInsertionOrder(t *testing.T) {
	st := State{}
	st = Reduce(st, Action{Type: ActionAddItem, Item: item(3, "1")})
	st = Reduce(st, Action{Type: ActionAddItem, Item: item(1, "2")})
	st = Reduce(st, Action{Type: ActionAddItem, Item: item(2, "3")})
	st = Reduce(st, Action{Type: ActionAddItem, Item: item(1, "2")})

	require.Len(t, st.Lines, 3)
	assert.Equal(t, []int{3, 1, 2}, []int{st.Lines[0].ID, st.Lines[1].ID, st.Lines[2].ID})
}

func TestReduceSetQuantity(t *testing.T) {
	st := Reduce(State{}, Action{Type: ActionAddItem, Item: item(1, "10.00")})

	st = Reduce(st, Action{Type: ActionSetQuantity, ID: 1, Quantity: 5})
	require.Len(t, st.Lines, 1)
	assert.Equal(t, 5, st.Lines[0].Quantity)
	assert.Equal(t, 5, st.TotalItems)
	assert.True(t, st.TotalPrice.Equal(decimal.RequireFromString("50.00")))

	// non-positive quantity is a strict no-op: the line keeps its quantity
	// and is not removed
	for _, q := range []int{0, -1, -100} {
		next := Reduce(st, Action{Type: ActionSetQuantity, ID: 1, Quantity: q})
		require.Len(t, next.Lines, 1)
		assert.Equal(t, 5, next.Lines[0].Quantity)
	}

	// unknown id is a no-op
	next := Reduce(st, Action{Type: ActionSetQuantity, ID: 99, Quantity: 3})
	assert.Equal(t, st.TotalItems, next.TotalItems)
	assert.True(t, st.TotalPrice.Equal(next.TotalPrice))
}

func TestReduceRemoveItem(t *testing.T) {
	st := Reduce(State{}, Action{Type: ActionAddItem, Item: item(1, "10.00")})
	st = Reduce(st, Action{Type: ActionAddItem, Item: item(2, "5.50")})

	st = Reduce(st, Action{Type: ActionRemoveItem, ID: 1})
	require.Len(t, st.Lines, 1)
	assert.Equal(t, 2, st.Lines[0].ID)
	assert.Equal(t, 1, st.TotalItems)
	assert.True(t, st.TotalPrice.Equal(decimal.RequireFromString("5.50")))

	// removing an absent id changes nothing
	next := Reduce(st, Action{Type: ActionRemoveItem, ID: 42})
	assert.Equal(t, st.Lines, next.Lines)
	assert.Equal(t, st.TotalItems, next.TotalItems)
	assert.True(t, st.TotalPrice.Equal(next.TotalPrice))
}

func TestReduceClear(t *testing.T) {
	st := Reduce(State{}, Action{Type: ActionAddItem, Item: item(1, "10.00")})
	st = Reduce(st, Action{Type: ActionAddItem, Item: item(2, "5.50")})

	st = Reduce(st, Action{Type: ActionClear})
	assert.Empty(t, st.Lines)
	assert.Equal(t, 0, st.TotalItems)
	assert.True(t, st.TotalPrice.IsZero())
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	st := Reduce(State{}, Action{Type: ActionAddItem, Item: item(1, "10.00")})

	_ = Reduce(st, Action{Type: ActionSetQuantity, ID: 1, Quantity: 9})
	_ = Reduce(st, Action{Type: ActionRemoveItem, ID: 1})
	_ = Reduce(st, Action{Type: ActionClear})

	require.Len(t, st.Lines, 1)
	assert.Equal(t, 1, st.Lines[0].Quantity)
	assert.Equal(t, 1, st.TotalItems)
}

// Totals must always equal a fresh fold over the lines, whatever sequence
// of actions produced them.
func TestTotalsNeverDrift(t *testing.T) {
	actions := []Action{
		{Type: ActionAddItem, Item: item(1, "10.00")},
		{Type: ActionAddItem, Item: item(2, "0.99")},
		{Type: ActionAddItem, Item: item(1, "10.00")},
		{Type: ActionSetQuantity, ID: 2, Quantity: 7},
		{Type: ActionSetQuantity, ID: 2, Quantity: 0},
		{Type: ActionRemoveItem, ID: 1},
		{Type: ActionAddItem, Item: item(3, "199.95")},
		{Type: ActionSetQuantity, ID: 99, Quantity: 5},
		{Type: ActionRemoveItem, ID: 42},
	}

	st := State{}
	for _, action := range actions {
		st = Reduce(st, action)

		wantItems, wantPrice := deriveTotals(st.Lines)
		assert.Equal(t, wantItems, st.TotalItems)
		assert.True(t, st.TotalPrice.Equal(wantPrice),
			"totalPrice %s drifted from fresh fold %s", st.TotalPrice, wantPrice)

		for _, line := range st.Lines {
			assert.GreaterOrEqual(t, line.Quantity, 1)
		}
	}
}

// The scenario from the storefront: 10.00 item added twice, quantity set
// to 5, then removed.
func TestReduceScenario(t *testing.T) {
	st := State{}

	st = Reduce(st, Action{Type: ActionAddItem, Item: item(1, "10.00")})
	assert.Equal(t, 1, st.TotalItems)
	assert.True(t, st.TotalPrice.Equal(decimal.RequireFromString("10.00")))

	st = Reduce(st, Action{Type: ActionAddItem, Item: item(1, "10.00")})
	assert.Equal(t, 2, st.TotalItems)
	assert.True(t, st.TotalPrice.Equal(decimal.RequireFromString("20.00")))

	st = Reduce(st, Action{Type: ActionSetQuantity, ID: 1, Quantity: 5})
	assert.Equal(t, 5, st.TotalItems)
	assert.True(t, st.TotalPrice.Equal(decimal.RequireFromString("50.00")))

	st = Reduce(st, Action{Type: ActionRemoveItem, ID: 1})
	assert.Empty(t, st.Lines)
	assert.Equal(t, 0, st.TotalItems)
	assert.True(t, st.TotalPrice.IsZero())
}
