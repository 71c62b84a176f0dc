package handlers

import (
	"log"

	"lapak/internal/services"

	"github.com/gofiber/fiber/v2"
)

// RatingHandler handles HTTP requests for the authenticated user's local
// product ratings.
type RatingHandler struct {
	service *services.RatingService
}

// NewRatingHandler creates a new RatingHandler.
func NewRatingHandler(service *services.RatingService) *RatingHandler {
	return &RatingHandler{
		service: service,
	}
}

// RegisterRoutes registers the rating routes with the Fiber app.
func (h *RatingHandler) RegisterRoutes(router fiber.Router) {
	ratingRoutes := router.Group("/ratings")
	ratingRoutes.Get("/:id", h.HandleGetRating)
	ratingRoutes.Post("/:id", h.HandleSubmitRating)
}

// HandleGetRating returns the rating entry for a product. An unrated product
// yields a zero entry rather than a 404.
func (h *RatingHandler) HandleGetRating(c *fiber.Ctx) error {
	profile, ok := requireProfile(c)
	if !ok {
		return unauthenticated(c)
	}
	return c.JSON(h.service.GetRating(profile, c.Params("id")))
}

// HandleSubmitRating folds one star value into the product's running mean.
func (h *RatingHandler) HandleSubmitRating(c *fiber.Ctx) error {
	profile, ok := requireProfile(c)
	if !ok {
		return unauthenticated(c)
	}

	var req struct {
		Stars int `json:"stars"`
	}
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing rating request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	entry, err := h.service.SubmitRating(profile, c.Params("id"), req.Stars)
	if err != nil {
		log.Printf("Error submitting rating for %s: %v", c.Params("id"), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not save rating",
			"error":   err.Error(),
		})
	}
	return c.JSON(entry)
}
