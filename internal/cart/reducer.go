package cart

import "github.com/kittipat-r/storefront-backend/internal/catalog"

// ActionType enumerates the four cart mutations.
type ActionType int

const (
	ActionAddItem ActionType = iota
	ActionSetQuantity
	ActionRemoveItem
	ActionClear
)

// Action describes one cart mutation. Item is set for AddItem; ID and
// Quantity are set for SetQuantity; ID alone for RemoveItem.
type Action struct {
	Type     ActionType
	Item     catalog.Item
	ID       int
	Quantity int
}

// Reduce applies one action to a state and returns the next state with
// totals recomputed. It never mutates its input, which keeps the cart
// logic testable without any storage attached.
//
// Transition rules:
//   - AddItem: increment quantity if a line with that id exists, otherwise
//     append a new line with quantity 1. Always succeeds.
//   - SetQuantity: set the line's quantity exactly, but only when the
//     quantity is positive and the line exists; anything else is a no-op.
//     A non-positive quantity does NOT remove the line — removal is a
//     distinct action.
//   - RemoveItem: drop the line if present, no-op otherwise.
//   - Clear: empty the sequence unconditionally.
//
// No transition can leave a line with quantity below 1.
func Reduce(state State, action Action) State {
	lines := make([]Line, len(state.Lines))
	copy(lines, state.Lines)

	switch action.Type {
	case ActionAddItem:
		found := false
		for i := range lines {
			if lines[i].ID == action.Item.ID {
				lines[i].Quantity++
				found = true
				break
			}
		}
		if !found {
			lines = append(lines, Line{Item: action.Item, Quantity: 1})
		}

	case ActionSetQuantity:
		if action.Quantity > 0 {
			for i := range lines {
				if lines[i].ID == action.ID {
					lines[i].Quantity = action.Quantity
					break
				}
			}
		}

	case ActionRemoveItem:
		kept := make([]Line, 0, len(lines))
		for _, line := range lines {
			if line.ID != action.ID {
				kept = append(kept, line)
			}
		}
		lines = kept

	case ActionClear:
		lines = []Line{}
	}

	totalItems, totalPrice := deriveTotals(lines)
	return State{Lines: lines, TotalItems: totalItems, TotalPrice: totalPrice}
}
