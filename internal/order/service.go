package order

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kittipat-r/storefront-backend/internal/cart"
)

var taxRate = decimal.RequireFromString("0.1")

var (
	ErrEmptyCart        = errors.New("cart is empty")
	ErrCheckoutInFlight = errors.New("checkout already in progress")
)

// Receipt is the presentation view of a submitted order, with amounts
// formatted to two decimal places.
type Receipt struct {
	OrderNumber string `json:"orderNumber"`
	TotalItems  int    `json:"totalItems"`
	Subtotal    string `json:"subtotal"`
	Tax         string `json:"tax"`
	TotalAmount string `json:"totalAmount"`
}

// Service packages carts into orders and serves order history.
type Service struct {
	repo Repository

	mu      sync.Mutex
	pending map[string]bool // sessions with a checkout in flight
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, pending: make(map[string]bool)}
}

// Checkout builds an order from the session's current cart and submits it.
// Tax is 10% of the subtotal; the order number is ORD-<epoch millis>. The
// cart is cleared only after the repository acknowledges the order — on
// any failure it is left untouched so the user can retry. A session can
// have at most one checkout in flight.
func (s *Service) Checkout(ctx context.Context, userID string, store *cart.Store) (Order, Receipt, error) {
	session := store.SessionID()

	s.mu.Lock()
	if s.pending[session] {
		s.mu.Unlock()
		return Order{}, Receipt{}, ErrCheckoutInFlight
	}
	s.pending[session] = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.pending, session)
		s.mu.Unlock()
	}()

	state := store.State()
	if len(state.Lines) == 0 {
		return Order{}, Receipt{}, ErrEmptyCart
	}

	tax := state.TotalPrice.Mul(taxRate)
	finalAmount := state.TotalPrice.Add(tax)

	ord := Order{
		ID:          newOrderNumber(),
		UserID:      userID,
		Items:       state.Lines, // State() already returned a copy
		TotalItems:  state.TotalItems,
		TotalAmount: finalAmount,
		Date:        time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, ord)
	if err != nil {
		return Order{}, Receipt{}, err
	}

	store.Clear(ctx)

	receipt := Receipt{
		OrderNumber: created.ID,
		TotalItems:  created.TotalItems,
		Subtotal:    state.TotalPrice.StringFixed(2),
		Tax:         tax.StringFixed(2),
		TotalAmount: finalAmount.StringFixed(2),
	}
	return created, receipt, nil
}

// History returns the user's orders, newest first.
func (s *Service) History(ctx context.Context, userID string) ([]Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

func newOrderNumber() string {
	return fmt.Sprintf("ORD-%d", time.Now().UnixMilli())
}
