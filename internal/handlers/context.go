package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// profileID returns the authenticated user's id, which doubles as the
// namespace for the user's persisted collections. The JWT middleware stores
// it in the request locals; an empty result means the route was registered
// outside the auth group by mistake.
func profileID(c *fiber.Ctx) string {
	if id, ok := c.Locals("user_id").(string); ok {
		return id
	}
	return ""
}

// requireProfile sends a 401 and returns false when no profile is attached.
func requireProfile(c *fiber.Ctx) (string, bool) {
	profile := profileID(c)
	if profile == "" {
		return "", false
	}
	return profile, true
}

func unauthenticated(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"message": "Authentication is required",
	})
}
