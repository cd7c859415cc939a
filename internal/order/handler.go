package order

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/kittipat-r/storefront-backend/internal/cart"
	"github.com/kittipat-r/storefront-backend/internal/user"
)

// Handler exposes checkout and order history. Both routes require an
// authenticated user: the cart is anonymous until this point, and the
// user's identity is attached to the order here.
type Handler struct {
	service *Service
	carts   *cart.Manager
}

func NewHandler(service *Service, carts *cart.Manager) *Handler {
	return &Handler{service: service, carts: carts}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/checkout", h.checkout)
	app.Get("/api/v1/orders", h.getOrders)
}

func (h *Handler) checkout(c *fiber.Ctx) error {
	email, err := user.GetUserEmailFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	sessionID, ok := cart.SessionID(c)
	if !ok {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"message": "cart is empty"})
	}

	store := h.carts.Store(c.UserContext(), sessionID)
	created, receipt, err := h.service.Checkout(c.UserContext(), email, store)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyCart):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"message": "cart is empty"})
		case errors.Is(err, ErrCheckoutInFlight):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "checkout already in progress"})
		default:
			// submission failed; the cart is untouched and the user can retry
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": err.Error()})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"order":   created,
		"receipt": receipt,
	})
}

func (h *Handler) getOrders(c *fiber.Ctx) error {
	email, err := user.GetUserEmailFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	orders, err := h.service.History(c.UserContext(), email)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(orders)
}
