package handlers

import (
	"log"

	"lapak/internal/models"
	"lapak/internal/services"

	"github.com/gofiber/fiber/v2"
)

// WishlistHandler handles HTTP requests for the authenticated user's
// wishlist.
type WishlistHandler struct {
	service *services.WishlistService
}

// NewWishlistHandler creates a new WishlistHandler.
func NewWishlistHandler(service *services.WishlistService) *WishlistHandler {
	return &WishlistHandler{
		service: service,
	}
}

// RegisterRoutes registers the wishlist routes with the Fiber app.
func (h *WishlistHandler) RegisterRoutes(router fiber.Router) {
	wishlistRoutes := router.Group("/wishlist")
	wishlistRoutes.Get("/", h.HandleGetWishlist)
	wishlistRoutes.Get("/count", h.HandleGetCount)
	wishlistRoutes.Get("/ids", h.HandleGetIDs)
	wishlistRoutes.Get("/contains/:id", h.HandleContains)
	wishlistRoutes.Post("/", h.HandleAdd)
	wishlistRoutes.Post("/toggle", h.HandleToggle)
	wishlistRoutes.Delete("/:id", h.HandleRemove)
	wishlistRoutes.Delete("/", h.HandleClear)
}

// HandleGetWishlist returns the wishlist collection.
func (h *WishlistHandler) HandleGetWishlist(c *fiber.Ctx) error {
	profile, ok := requireProfile(c)
	if !ok {
		return unauthenticated(c)
	}
	return c.JSON(h.service.Items(profile))
}

// HandleGetCount returns the number of wishlisted products.
func (h *WishlistHandler) HandleGetCount(c *fiber.Ctx) error {
	profile, ok := requireProfile(c)
	if !ok {
		return unauthenticated(c)
	}
	return c.JSON(fiber.Map{"count": h.service.Count(profile)})
}

// HandleGetIDs returns the wishlisted product ids.
func (h *WishlistHandler) HandleGetIDs(c *fiber.Ctx) error {
	profile, ok := requireProfile(c)
	if !ok {
		return unauthenticated(c)
	}
	return c.JSON(h.service.IDs(profile))
}

// HandleContains reports whether one product is wishlisted.
func (h *WishlistHandler) HandleContains(c *fiber.Ctx) error {
	profile, ok := requireProfile(c)
	if !ok {
		return unauthenticated(c)
	}
	return c.JSON(fiber.Map{"wishlisted": h.service.IsWishlisted(profile, c.Params("id"))})
}

func (h *WishlistHandler) parseProduct(c *fiber.Ctx) (*models.Product, error) {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return nil, err
	}
	return &product, nil
}

// HandleAdd inserts a product; adding an already wishlisted product changes
// nothing.
func (h *WishlistHandler) HandleAdd(c *fiber.Ctx) error {
	profile, ok := requireProfile(c)
	if !ok {
		return unauthenticated(c)
	}

	product, err := h.parseProduct(c)
	if err != nil {
		log.Printf("Error parsing wishlist add request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if product.ID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "A product with an id is required.",
		})
	}

	items, err := h.service.AddToWishlist(profile, product)
	if err != nil {
		log.Printf("Error adding product %s to wishlist: %v", product.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update wishlist",
			"error":   err.Error(),
		})
	}
	return c.JSON(items)
}

// HandleToggle adds the product when absent and removes it when present.
func (h *WishlistHandler) HandleToggle(c *fiber.Ctx) error {
	profile, ok := requireProfile(c)
	if !ok {
		return unauthenticated(c)
	}

	product, err := h.parseProduct(c)
	if err != nil {
		log.Printf("Error parsing wishlist toggle request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if product.ID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "A product with an id is required.",
		})
	}

	items, err := h.service.ToggleWishlist(profile, product)
	if err != nil {
		log.Printf("Error toggling product %s on wishlist: %v", product.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update wishlist",
			"error":   err.Error(),
		})
	}
	return c.JSON(items)
}

// HandleRemove removes a product, if present.
func (h *WishlistHandler) HandleRemove(c *fiber.Ctx) error {
	profile, ok := requireProfile(c)
	if !ok {
		return unauthenticated(c)
	}

	items, err := h.service.RemoveFromWishlist(profile, c.Params("id"))
	if err != nil {
		log.Printf("Error removing %s from wishlist: %v", c.Params("id"), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update wishlist",
			"error":   err.Error(),
		})
	}
	return c.JSON(items)
}

// HandleClear empties the wishlist.
func (h *WishlistHandler) HandleClear(c *fiber.Ctx) error {
	profile, ok := requireProfile(c)
	if !ok {
		return unauthenticated(c)
	}

	if err := h.service.ClearWishlist(profile); err != nil {
		log.Printf("Error clearing wishlist for profile %s: %v", profile, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not clear wishlist",
			"error":   err.Error(),
		})
	}
	return c.JSON([]models.WishlistItem{})
}
