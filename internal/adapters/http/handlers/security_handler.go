package handlers

import (
	"muni-hostelhub/internal/core/services"
	"muni-hostelhub/internal/pkg/pagination"
	"muni-hostelhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// SecurityHandler handles security log endpoints
type SecurityHandler struct {
	securityLogService *services.SecurityLogService
}

// NewSecurityHandler creates a new security handler
func NewSecurityHandler(securityLogService *services.SecurityLogService) *SecurityHandler {
	return &SecurityHandler{securityLogService: securityLogService}
}

// List handles security log listing
// @Summary List security logs
// @Description List security log entries, newest first
// @Tags Security
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /admin/security-logs [get]
func (h *SecurityHandler) List(c *fiber.Ctx) error {
	logs, err := h.securityLogService.List(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list security logs")
	}

	params := pagination.GetParams(c)
	total := int64(len(logs))
	page := pagination.Slice(logs, params)

	return response.Success(c, "Security logs retrieved successfully", pagination.NewResponse(page, params, total))
}

// Clear handles wiping the security log
// @Summary Clear security logs
// @Description Remove all security log entries (super admin only)
// @Tags Security
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /admin/security-logs [delete]
func (h *SecurityHandler) Clear(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)

	if err := h.securityLogService.Clear(c.Context(), userID); err != nil {
		return response.InternalServerError(c, "Failed to clear security logs")
	}

	return response.Success(c, "Security logs cleared successfully", nil)
}
