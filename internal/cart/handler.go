package cart

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/kittipat-r/storefront-backend/internal/catalog"
)

// SessionCookie names the cookie carrying the cart session id. The cookie
// has no expiry, so it lives for the browsing session only.
const SessionCookie = "cart_session"

// Handler exposes the cart over HTTP. Cart routes are anonymous: the cart
// belongs to the browsing session and picks up a user identity only at
// checkout.
type Handler struct {
	manager *Manager
}

func NewHandler(manager *Manager) *Handler {
	return &Handler{manager: manager}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/cart", h.getCart)
	app.Post("/api/v1/cart/items", h.addItem)
	app.Put("/api/v1/cart/items/:id<[0-9]+>", h.setQuantity)
	app.Delete("/api/v1/cart/items/:id<[0-9]+>", h.removeItem)
	app.Delete("/api/v1/cart", h.clearCart)
}

// SessionID reads the session cookie without creating one. Consumers such
// as checkout use it to find the session's cart.
func SessionID(c *fiber.Ctx) (string, bool) {
	id := c.Cookies(SessionCookie)
	return id, id != ""
}

// session returns the request's session id, issuing a new cookie when the
// request carries none.
func (h *Handler) session(c *fiber.Ctx) string {
	if id := c.Cookies(SessionCookie); id != "" {
		return id
	}
	id := uuid.NewString()
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HTTPOnly: true,
		SameSite: "Lax",
	})
	return id
}

func (h *Handler) getCart(c *fiber.Ctx) error {
	store := h.manager.Store(c.UserContext(), h.session(c))
	return c.JSON(store.State())
}

func (h *Handler) addItem(c *fiber.Ctx) error {
	payload := new(catalog.Item)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.ID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid item id"})
	}

	store := h.manager.Store(c.UserContext(), h.session(c))
	return c.JSON(store.AddItem(c.UserContext(), *payload))
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) setQuantity(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid item id"})
	}
	payload := new(setQuantityRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	// non-positive quantities and unknown ids are no-ops by contract;
	// the response is simply the unchanged cart
	store := h.manager.Store(c.UserContext(), h.session(c))
	return c.JSON(store.SetQuantity(c.UserContext(), id, payload.Quantity))
}

func (h *Handler) removeItem(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid item id"})
	}

	store := h.manager.Store(c.UserContext(), h.session(c))
	return c.JSON(store.RemoveItem(c.UserContext(), id))
}

func (h *Handler) clearCart(c *fiber.Ctx) error {
	store := h.manager.Store(c.UserContext(), h.session(c))
	store.Clear(c.UserContext())
	return c.SendStatus(fiber.StatusNoContent)
}
