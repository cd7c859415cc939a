package cart

import (
	"github.com/shopspring/decimal"

	"github.com/kittipat-r/storefront-backend/internal/catalog"
)

// Line is one catalog item plus its quantity within a cart. The embedded
// item flattens into the line's JSON, so a serialized line carries the full
// catalog fields next to "quantity".
type Line struct {
	catalog.Item
	Quantity int `json:"quantity"`
}

// State is a cart: the line sequence in insertion order plus totals derived
// from it. Totals are never mutated directly, only recomputed from the
// lines after every structural change.
type State struct {
	Lines      []Line          `json:"items"`
	TotalItems int             `json:"totalItems"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

// deriveTotals folds the line sequence in a single pass. Prices accumulate
// exactly; rounding for display happens at presentation time only.
func deriveTotals(lines []Line) (int, decimal.Decimal) {
	totalItems := 0
	totalPrice := decimal.Zero
	for _, line := range lines {
		totalItems += line.Quantity
		totalPrice = totalPrice.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return totalItems, totalPrice
}
