package handlers

import (
	"muni-hostelhub/internal/core/domain"
	"muni-hostelhub/internal/core/services"
	"muni-hostelhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles dashboard endpoints
type DashboardHandler struct {
	dashboardService *services.DashboardService
	authService      *services.AuthService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService, authService *services.AuthService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		authService:      authService,
	}
}

// Get handles the role scoped dashboard
// @Summary Get dashboard
// @Description Overview figures scoped to the caller's role
// @Tags Dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /dashboard [get]
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	user := currentUser(c, h.authService)
	if user == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	var (
		data interface{}
		err  error
	)
	switch user.Role {
	case domain.RoleSuperAdmin:
		data, err = h.dashboardService.GetSuperAdminDashboard(c.Context())
	case domain.RoleHostelAdmin:
		data, err = h.dashboardService.GetHostelAdminDashboard(c.Context(), user)
	default:
		data, err = h.dashboardService.GetUserDashboard(c.Context(), user)
	}
	if err != nil {
		return response.InternalServerError(c, "Failed to load dashboard")
	}

	return response.Success(c, "Dashboard retrieved successfully", fiber.Map{
		"role":      user.Role,
		"dashboard": data,
	})
}
