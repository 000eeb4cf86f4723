package handlers

import (
	"errors"
	"strconv"

	"muni-hostelhub/internal/core/domain"
	"muni-hostelhub/internal/core/services"
	"muni-hostelhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// HostelHandler handles hostel endpoints
type HostelHandler struct {
	hostelService *services.HostelService
	authService   *services.AuthService
}

// NewHostelHandler creates a new hostel handler
func NewHostelHandler(hostelService *services.HostelService, authService *services.AuthService) *HostelHandler {
	return &HostelHandler{
		hostelService: hostelService,
		authService:   authService,
	}
}

// List handles hostel listing
// @Summary List hostels
// @Description List hostels visible to the caller. Anonymous callers see active hostels without contact details.
// @Tags Hostels
// @Accept json
// @Produce json
// @Param search query string false "Search by name or location"
// @Param status query string false "Filter by status"
// @Success 200 {object} response.Response
// @Router /hostels [get]
func (h *HostelHandler) List(c *fiber.Ctx) error {
	user := currentUser(c, h.authService)

	input := &services.ListHostelsInput{
		Search: c.Query("search"),
		Status: c.Query("status"),
	}

	hostels, err := h.hostelService.List(c.Context(), user, input)
	if err != nil {
		return response.InternalServerError(c, "Failed to list hostels")
	}

	return response.Success(c, "Hostels retrieved successfully", fiber.Map{
		"hostels": hostels,
		"count":   len(hostels),
	})
}

// Get handles single hostel retrieval
// @Summary Get hostel
// @Description Get one hostel by ID
// @Tags Hostels
// @Accept json
// @Produce json
// @Param id path int true "Hostel ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /hostels/{id} [get]
func (h *HostelHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid hostel ID")
	}

	user := currentUser(c, h.authService)

	hostel, err := h.hostelService.Get(c.Context(), user, uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Hostel not found")
		}
		return response.InternalServerError(c, "Failed to get hostel")
	}

	return response.Success(c, "Hostel retrieved successfully", fiber.Map{
		"hostel": hostel,
	})
}

// Create handles hostel creation
// @Summary Create hostel
// @Description Create a hostel (super admin only)
// @Tags Hostels
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateHostelInput true "Hostel data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /hostels [post]
func (h *HostelHandler) Create(c *fiber.Ctx) error {
	user := currentUser(c, h.authService)
	if user == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.CreateHostelInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	hostel, err := h.hostelService.Create(c.Context(), user, &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInsufficientPrivilege):
			return response.Forbidden(c, "You don't have permission to create hostels")
		case errors.Is(err, domain.ErrValidation):
			return response.BadRequest(c, "Invalid hostel data")
		default:
			return response.InternalServerError(c, "Failed to create hostel")
		}
	}

	return response.Created(c, "Hostel created successfully", fiber.Map{
		"hostel": hostel.ToResponse(true),
	})
}

// Update handles hostel updates
// @Summary Update hostel
// @Description Update a hostel the caller manages
// @Tags Hostels
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Hostel ID"
// @Param body body services.UpdateHostelInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /hostels/{id} [put]
func (h *HostelHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid hostel ID")
	}

	user := currentUser(c, h.authService)
	if user == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.UpdateHostelInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	hostel, err := h.hostelService.Update(c.Context(), user, uint(id), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "Hostel not found")
		case errors.Is(err, domain.ErrInsufficientPrivilege):
			return response.Forbidden(c, "You can only manage your own hostel")
		case errors.Is(err, domain.ErrValidation):
			return response.BadRequest(c, "Invalid hostel data")
		default:
			return response.InternalServerError(c, "Failed to update hostel")
		}
	}

	return response.Success(c, "Hostel updated successfully", fiber.Map{
		"hostel": hostel.ToResponse(true),
	})
}

// Delete handles hostel deletion
// @Summary Delete hostel
// @Description Remove a hostel (super admin only)
// @Tags Hostels
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Hostel ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /hostels/{id} [delete]
func (h *HostelHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid hostel ID")
	}

	user := currentUser(c, h.authService)
	if user == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	if err := h.hostelService.Delete(c.Context(), user, uint(id)); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "Hostel not found")
		case errors.Is(err, domain.ErrInsufficientPrivilege):
			return response.Forbidden(c, "Only a super admin can delete hostels")
		default:
			return response.InternalServerError(c, "Failed to delete hostel")
		}
	}

	return response.Success(c, "Hostel deleted successfully", nil)
}
