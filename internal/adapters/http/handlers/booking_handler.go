package handlers

import (
	"errors"

	"muni-hostelhub/internal/core/domain"
	"muni-hostelhub/internal/core/services"
	"muni-hostelhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// BookingHandler handles booking endpoints
type BookingHandler struct {
	bookingService *services.BookingService
	authService    *services.AuthService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookingService *services.BookingService, authService *services.AuthService) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
		authService:    authService,
	}
}

// UpdateBookingStatusRequest represents booking status update body
type UpdateBookingStatusRequest struct {
	Status string `json:"status"`
}

// Create handles booking creation
// @Summary Create booking
// @Description Book a hostel for a number of months starting at a check-in date
// @Tags Bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateBookingInput true "Booking data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /bookings [post]
func (h *BookingHandler) Create(c *fiber.Ctx) error {
	user := currentUser(c, h.authService)
	if user == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.CreateBookingInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	booking, err := h.bookingService.Create(c.Context(), user, &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "Hostel not found")
		case errors.Is(err, domain.ErrValidation):
			return response.BadRequest(c, "Invalid booking data")
		default:
			return response.InternalServerError(c, "Failed to create booking")
		}
	}

	return response.Created(c, "Booking created successfully", fiber.Map{
		"booking": booking,
	})
}

// List handles booking listing
// @Summary List bookings
// @Description List bookings visible to the caller: own bookings for students, own hostel's for hostel admins, everything for super admins
// @Tags Bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /bookings [get]
func (h *BookingHandler) List(c *fiber.Ctx) error {
	user := currentUser(c, h.authService)
	if user == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	bookings, err := h.bookingService.List(c.Context(), user)
	if err != nil {
		return response.InternalServerError(c, "Failed to list bookings")
	}

	return response.Success(c, "Bookings retrieved successfully", fiber.Map{
		"bookings": bookings,
		"count":    len(bookings),
	})
}

// Get handles single booking retrieval
// @Summary Get booking
// @Description Get one booking by ID
// @Tags Bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /bookings/{id} [get]
func (h *BookingHandler) Get(c *fiber.Ctx) error {
	user := currentUser(c, h.authService)
	if user == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	booking, err := h.bookingService.Get(c.Context(), user, c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Booking not found")
		}
		return response.InternalServerError(c, "Failed to get booking")
	}

	return response.Success(c, "Booking retrieved successfully", fiber.Map{
		"booking": booking,
	})
}

// UpdateStatus handles booking status transitions
// @Summary Update booking status
// @Description Confirm or cancel a booking
// @Tags Bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param body body UpdateBookingStatusRequest true "New status"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /bookings/{id}/status [patch]
func (h *BookingHandler) UpdateStatus(c *fiber.Ctx) error {
	user := currentUser(c, h.authService)
	if user == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req UpdateBookingStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	booking, err := h.bookingService.UpdateStatus(c.Context(), user, c.Params("id"), domain.BookingStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "Booking not found")
		case errors.Is(err, domain.ErrInsufficientPrivilege):
			return response.Forbidden(c, "You can't manage this booking")
		case errors.Is(err, domain.ErrValidation):
			return response.BadRequest(c, "Invalid status transition")
		default:
			return response.InternalServerError(c, "Failed to update booking")
		}
	}

	return response.Success(c, "Booking updated successfully", fiber.Map{
		"booking": booking,
	})
}
