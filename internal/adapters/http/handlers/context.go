package handlers

import (
	"muni-hostelhub/internal/adapters/persistence/models"
	"muni-hostelhub/internal/core/services"

	"github.com/gofiber/fiber/v2"
)

// currentUser resolves the authenticated user record from the request
// context. Anonymous requests resolve to nil.
func currentUser(c *fiber.Ctx, auth *services.AuthService) *models.User {
	userID, ok := c.Locals("userID").(string)
	if !ok || userID == "" {
		return nil
	}
	user, err := auth.GetUserByID(c.Context(), userID)
	if err != nil {
		return nil
	}
	return user
}
