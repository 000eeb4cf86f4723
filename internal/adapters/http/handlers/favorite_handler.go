package handlers

import (
	"errors"
	"strconv"

	"muni-hostelhub/internal/core/domain"
	"muni-hostelhub/internal/core/services"
	"muni-hostelhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// FavoriteHandler handles favorite list endpoints
type FavoriteHandler struct {
	favoriteService *services.FavoriteService
	authService     *services.AuthService
}

// NewFavoriteHandler creates a new favorite handler
func NewFavoriteHandler(favoriteService *services.FavoriteService, authService *services.AuthService) *FavoriteHandler {
	return &FavoriteHandler{
		favoriteService: favoriteService,
		authService:     authService,
	}
}

// List handles favorite listing
// @Summary List favorites
// @Description List the caller's favorite hostels
// @Tags Favorites
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /favorites [get]
func (h *FavoriteHandler) List(c *fiber.Ctx) error {
	user := currentUser(c, h.authService)
	if user == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	favorites, err := h.favoriteService.List(c.Context(), user)
	if err != nil {
		return response.InternalServerError(c, "Failed to list favorites")
	}

	return response.Success(c, "Favorites retrieved successfully", fiber.Map{
		"favorites": favorites,
		"count":     len(favorites),
	})
}

// Add handles adding a favorite
// @Summary Add favorite
// @Description Add a hostel to the caller's favorites. Adding twice is a no-op.
// @Tags Favorites
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Hostel ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /favorites/{id} [post]
func (h *FavoriteHandler) Add(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid hostel ID")
	}

	user := currentUser(c, h.authService)
	if user == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	if err := h.favoriteService.Add(c.Context(), user, uint(id)); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Hostel not found")
		}
		return response.InternalServerError(c, "Failed to add favorite")
	}

	return response.Success(c, "Hostel added to favorites", nil)
}

// Remove handles removing a favorite
// @Summary Remove favorite
// @Description Remove a hostel from the caller's favorites
// @Tags Favorites
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Hostel ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /favorites/{id} [delete]
func (h *FavoriteHandler) Remove(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid hostel ID")
	}

	user := currentUser(c, h.authService)
	if user == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	if err := h.favoriteService.Remove(c.Context(), user, uint(id)); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Hostel is not in your favorites")
		}
		return response.InternalServerError(c, "Failed to remove favorite")
	}

	return response.Success(c, "Hostel removed from favorites", nil)
}
