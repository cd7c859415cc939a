package order

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kittipat-r/storefront-backend/internal/cart"
)

// Order represents a submitted checkout. The lines are a copy of the cart
// at submission time, so the cart clearing afterwards cannot touch them.
// An order is immutable once created.
type Order struct {
	ID          string          `json:"id"`
	UserID      string          `json:"userId"`
	Items       []cart.Line     `json:"items"`
	TotalItems  int             `json:"totalItems"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Date        time.Time       `json:"date"`
}
