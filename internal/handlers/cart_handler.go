package handlers

import (
	"log"

	"lapak/internal/models"
	"lapak/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the authenticated user's cart.
type CartHandler struct {
	service *services.CartService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service: service,
	}
}

// RegisterRoutes registers the cart routes with the Fiber app. All routes
// assume the JWT middleware already ran.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Get("/totals", h.HandleGetTotals)
	cartRoutes.Post("/items", h.HandleAddItem)
	cartRoutes.Patch("/items/:id", h.HandleUpdateQuantity)
	cartRoutes.Delete("/items/:id", h.HandleRemoveItem)
	cartRoutes.Delete("/", h.HandleClearCart)
}

// HandleGetCart returns the cart collection.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	profile, ok := requireProfile(c)
	if !ok {
		return unauthenticated(c)
	}
	return c.JSON(h.service.Items(profile))
}

// HandleGetTotals returns the cart summary.
func (h *CartHandler) HandleGetTotals(c *fiber.Ctx) error {
	profile, ok := requireProfile(c)
	if !ok {
		return unauthenticated(c)
	}
	return c.JSON(h.service.Totals(profile))
}

// addItemRequest carries the product snapshot to merge into the cart.
type addItemRequest struct {
	Product  models.Product `json:"product"`
	Quantity int            `json:"quantity"`
}

// HandleAddItem merges a product into the cart, accumulating quantity when
// the product is already there.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	profile, ok := requireProfile(c)
	if !ok {
		return unauthenticated(c)
	}

	var req addItemRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing add-to-cart request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if req.Product.ID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "A product with an id is required.",
		})
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	items, err := h.service.AddToCart(profile, &req.Product, req.Quantity)
	if err != nil {
		log.Printf("Error adding product %s to cart: %v", req.Product.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update cart",
			"error":   err.Error(),
		})
	}
	return c.JSON(items)
}

// HandleUpdateQuantity sets the quantity of one cart line. An unknown id
// leaves the cart untouched.
func (h *CartHandler) HandleUpdateQuantity(c *fiber.Ctx) error {
	profile, ok := requireProfile(c)
	if !ok {
		return unauthenticated(c)
	}

	var req struct {
		Quantity float64 `json:"quantity"`
	}
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing quantity update request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	items, err := h.service.UpdateQuantity(profile, c.Params("id"), req.Quantity)
	if err != nil {
		log.Printf("Error updating cart quantity for %s: %v", c.Params("id"), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update cart",
			"error":   err.Error(),
		})
	}
	return c.JSON(items)
}

// HandleRemoveItem removes one cart line, if present.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	profile, ok := requireProfile(c)
	if !ok {
		return unauthenticated(c)
	}

	items, err := h.service.RemoveFromCart(profile, c.Params("id"))
	if err != nil {
		log.Printf("Error removing %s from cart: %v", c.Params("id"), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update cart",
			"error":   err.Error(),
		})
	}
	return c.JSON(items)
}

// HandleClearCart empties the cart.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	profile, ok := requireProfile(c)
	if !ok {
		return unauthenticated(c)
	}

	if err := h.service.ClearCart(profile); err != nil {
		log.Printf("Error clearing cart for profile %s: %v", profile, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not clear cart",
			"error":   err.Error(),
		})
	}
	return c.JSON([]models.CartItem{})
}
