package handlers

import (
	"errors"
	"strconv"

	"muni-hostelhub/internal/core/domain"
	"muni-hostelhub/internal/core/services"
	"muni-hostelhub/internal/pkg/pagination"
	"muni-hostelhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler handles user administration endpoints
type AdminHandler struct {
	userService      *services.UserService
	authzService     *services.AuthorizationService
	dashboardService *services.DashboardService
	authService      *services.AuthService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(
	userService *services.UserService,
	authzService *services.AuthorizationService,
	dashboardService *services.DashboardService,
	authService *services.AuthService,
) *AdminHandler {
	return &AdminHandler{
		userService:      userService,
		authzService:     authzService,
		dashboardService: dashboardService,
		authService:      authService,
	}
}

// UpdateRoleRequest represents role change body
type UpdateRoleRequest struct {
	Role string `json:"role"`
}

// UpdateStatusRequest represents status change body
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdatePermissionsRequest represents permission override body
type UpdatePermissionsRequest struct {
	Permissions []string `json:"permissions"`
}

// AssignHostelRequest represents hostel assignment body
type AssignHostelRequest struct {
	UserID string `json:"user_id"`
}

// ListUsers handles account listing
// @Summary List users
// @Description List accounts, optionally filtered by search term, role and status
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param search query string false "Search by name, email or student ID"
// @Param role query string false "Filter by role"
// @Param status query string false "Filter by status"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	input := &services.ListUsersInput{
		Search: c.Query("search"),
		Role:   c.Query("role"),
		Status: c.Query("status"),
	}

	users, err := h.userService.ListUsers(c.Context(), input)
	if err != nil {
		return response.InternalServerError(c, "Failed to list users")
	}

	params := pagination.GetParams(c)
	total := int64(len(users))
	page := pagination.Slice(users, params)

	return response.Success(c, "Users retrieved successfully", pagination.NewResponse(page, params, total))
}

// CreateUser handles admin account creation
// @Summary Create user
// @Description Create an account with a generated temporary password. New accounts start out pending.
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateUserInput true "Account data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/users [post]
func (h *AdminHandler) CreateUser(c *fiber.Ctx) error {
	actor := currentUser(c, h.authService)
	if actor == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.CreateUserInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.FirstName == "" || input.LastName == "" || input.Email == "" {
		return response.BadRequest(c, "Name and email are required")
	}

	created, err := h.userService.CreateUser(c.Context(), actor, &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateEmail):
			return response.Conflict(c, "An account with this email already exists")
		case errors.Is(err, domain.ErrValidation):
			return response.BadRequest(c, "Invalid account data")
		default:
			return response.InternalServerError(c, "Failed to create user")
		}
	}

	return response.Created(c, "User created successfully", created)
}

// UserStats handles account statistics
// @Summary User statistics
// @Description Account counts by role and status
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /admin/users/stats [get]
func (h *AdminHandler) UserStats(c *fiber.Ctx) error {
	stats, err := h.userService.Stats(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to compute statistics")
	}

	return response.Success(c, "Statistics retrieved successfully", stats)
}

// UpdateRole handles role changes
// @Summary Change user role
// @Description Change an account's role. Super admin accounts can't be targeted or granted.
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param body body UpdateRoleRequest true "New role"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/users/{id}/role [patch]
func (h *AdminHandler) UpdateRole(c *fiber.Ctx) error {
	actor := currentUser(c, h.authService)
	if actor == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req UpdateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	user, err := h.authzService.UpdateUserRole(c.Context(), actor, c.Params("id"), domain.Role(req.Role))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "User not found")
		case errors.Is(err, domain.ErrInsufficientPrivilege):
			return response.Forbidden(c, "This account's role can't be changed")
		case errors.Is(err, domain.ErrValidation):
			return response.BadRequest(c, "Invalid role")
		default:
			return response.InternalServerError(c, "Failed to change role")
		}
	}

	return response.Success(c, "Role updated successfully", fiber.Map{
		"user": user.ToResponse(),
	})
}

// UpdateStatus handles account status changes
// @Summary Change account status
// @Description Activate, suspend or re-approve an account
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param body body UpdateStatusRequest true "New status"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/users/{id}/status [patch]
func (h *AdminHandler) UpdateStatus(c *fiber.Ctx) error {
	actor := currentUser(c, h.authService)
	if actor == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	user, err := h.userService.SetStatus(c.Context(), actor, c.Params("id"), domain.AccountStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "User not found")
		case errors.Is(err, domain.ErrInsufficientPrivilege):
			return response.Forbidden(c, "This account's status can't be changed")
		case errors.Is(err, domain.ErrValidation):
			return response.BadRequest(c, "Invalid status")
		default:
			return response.InternalServerError(c, "Failed to change status")
		}
	}

	return response.Success(c, "Status updated successfully", fiber.Map{
		"user": user,
	})
}

// UpdatePermissions handles stored permission overrides
// @Summary Set user permissions
// @Description Store a custom permission list on an account
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param body body UpdatePermissionsRequest true "Permission list"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/users/{id}/permissions [patch]
func (h *AdminHandler) UpdatePermissions(c *fiber.Ctx) error {
	actor := currentUser(c, h.authService)
	if actor == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req UpdatePermissionsRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	user, err := h.userService.SetPermissions(c.Context(), actor, c.Params("id"), req.Permissions)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "User not found")
		case errors.Is(err, domain.ErrInsufficientPrivilege):
			return response.Forbidden(c, "This account's permissions can't be changed")
		case errors.Is(err, domain.ErrValidation):
			return response.BadRequest(c, "Unknown permission in list")
		default:
			return response.InternalServerError(c, "Failed to change permissions")
		}
	}

	return response.Success(c, "Permissions updated successfully", fiber.Map{
		"user": user,
	})
}

// AssignHostel handles hostel ownership assignment
// @Summary Assign hostel to admin
// @Description Hand an unowned hostel to a hostel admin
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Hostel ID"
// @Param body body AssignHostelRequest true "Target user"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/hostels/{id}/assign [post]
func (h *AdminHandler) AssignHostel(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid hostel ID")
	}

	actor := currentUser(c, h.authService)
	if actor == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req AssignHostelRequest
	if err := c.BodyParser(&req); err != nil || req.UserID == "" {
		return response.BadRequest(c, "Target user is required")
	}

	if err := h.authzService.AssignHostelToAdmin(c.Context(), actor, req.UserID, uint(id)); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "User or hostel not found")
		case errors.Is(err, domain.ErrNotHostelAdmin):
			return response.BadRequest(c, "Target user is not a hostel admin")
		case errors.Is(err, domain.ErrHostelOwned):
			return response.Conflict(c, "Hostel already has an owner")
		case errors.Is(err, domain.ErrInsufficientPrivilege):
			return response.Forbidden(c, "Only a super admin can assign hostels")
		default:
			return response.InternalServerError(c, "Failed to assign hostel")
		}
	}

	return response.Success(c, "Hostel assigned successfully", nil)
}

// UnassignHostel handles hostel ownership release
// @Summary Unassign hostel
// @Description Release a hostel from its owner
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Hostel ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/hostels/{id}/unassign [post]
func (h *AdminHandler) UnassignHostel(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid hostel ID")
	}

	actor := currentUser(c, h.authService)
	if actor == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	if err := h.authzService.UnassignHostel(c.Context(), actor, uint(id)); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "Hostel not found")
		case errors.Is(err, domain.ErrHostelNotOwned):
			return response.BadRequest(c, "Hostel has no owner")
		case errors.Is(err, domain.ErrInsufficientPrivilege):
			return response.Forbidden(c, "Only a super admin can unassign hostels")
		default:
			return response.InternalServerError(c, "Failed to unassign hostel")
		}
	}

	return response.Success(c, "Hostel unassigned successfully", nil)
}

// Export handles data export
// @Summary Export data
// @Description Export the caller's visible data as a JSON bundle. Passwords are never included.
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /admin/export [get]
func (h *AdminHandler) Export(c *fiber.Ctx) error {
	actor := currentUser(c, h.authService)
	if actor == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	bundle, err := h.dashboardService.Export(c.Context(), actor)
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientPrivilege) {
			return response.Forbidden(c, "You don't have permission to export data")
		}
		return response.InternalServerError(c, "Failed to export data")
	}

	c.Set("Content-Disposition", `attachment; filename="hostelhub-export.json"`)
	return response.Success(c, "Data exported successfully", bundle)
}
