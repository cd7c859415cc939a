package catalog

import (
	"github.com/gofiber/fiber/v2"
)

// Handler exposes the catalog over HTTP. Reads proxy the public catalog
// API; creation is reserved for authenticated users.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/products", h.getProducts)
	app.Get("/api/v1/products/categories", h.getCategories)
	app.Get("/api/v1/products/category/:name", h.getProductsByCategory)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/products", h.createProduct)
}

func (h *Handler) getProducts(c *fiber.Ctx) error {
	items, err := h.service.ListItems(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(items)
}

func (h *Handler) getCategories(c *fiber.Ctx) error {
	categories, err := h.service.ListCategories(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(categories)
}

func (h *Handler) getProductsByCategory(c *fiber.Ctx) error {
	items, err := h.service.ListByCategory(c.UserContext(), c.Params("name"))
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(items)
}

func (h *Handler) createProduct(c *fiber.Ctx) error {
	payload := new(Item)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	created, err := h.service.CreateItem(c.UserContext(), *payload)
	if err != nil {
		if err == ErrInvalidProduct {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "title and a non-negative price are required"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}
