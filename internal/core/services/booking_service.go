package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"muni-hostelhub/internal/adapters/persistence/models"
	"muni-hostelhub/internal/adapters/persistence/repositories"
	"muni-hostelhub/internal/core/domain"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// BookingService handles booking business logic
type BookingService struct {
	bookingRepo repositories.BookingRepository
	hostelRepo  repositories.HostelRepository
	authz       *AuthorizationService
	securityLog *SecurityLogService
}

// NewBookingService creates a new booking service
func NewBookingService(
	bookingRepo repositories.BookingRepository,
	hostelRepo repositories.HostelRepository,
	authz *AuthorizationService,
	securityLog *SecurityLogService,
) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
		hostelRepo:  hostelRepo,
		authz:       authz,
		securityLog: securityLog,
	}
}

// CreateBookingInput represents booking creation input
type CreateBookingInput struct {
	HostelID     uint   `json:"hostel_id" validate:"required"`
	CheckIn      string `json:"check_in" validate:"required"`
	Duration     int    `json:"duration" validate:"required,min=1"`
	Requirements string `json:"requirements"`
}

// Create places a booking. The user and hostel details are snapshotted
// onto the record; the amount is the monthly price times the duration and
// the check-out date is the check-in date plus the duration in months.
func (s *BookingService) Create(ctx context.Context, user *models.User, input *CreateBookingInput) (*models.Booking, error) {
	if user == nil {
		return nil, domain.ErrInsufficientPrivilege
	}
	if input.Duration < 1 {
		return nil, domain.ErrValidation
	}

	checkIn, err := time.Parse(dateLayout, input.CheckIn)
	if err != nil {
		return nil, domain.ErrValidation
	}

	hostel, err := s.hostelRepo.GetByID(ctx, input.HostelID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if hostel.Status != domain.HostelActive {
		return nil, domain.ErrValidation
	}

	price, err := parsePrice(hostel.Price)
	if err != nil {
		return nil, err
	}

	booking := &models.Booking{
		ID:           newBookingID(),
		UserID:       user.ID,
		UserEmail:    user.Email,
		UserName:     user.FirstName + " " + user.LastName,
		HostelID:     hostel.ID,
		HostelName:   hostel.Name,
		CheckIn:      checkIn.Format(dateLayout),
		CheckOut:     checkIn.AddDate(0, input.Duration, 0).Format(dateLayout),
		Duration:     input.Duration,
		Amount:       formatUGX(price * input.Duration),
		Status:       domain.BookingPending,
		Requirements: input.Requirements,
		BookingDate:  time.Now(),
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}

	s.securityLog.Log(ctx, EventBookingCreated, user.ID, map[string]interface{}{
		"booking_id": booking.ID,
		"hostel_id":  booking.HostelID,
		"amount":     booking.Amount,
	})

	log.Printf("✅ Booking created: %s (%s at %s)", booking.ID, booking.UserEmail, booking.HostelName)
	return booking, nil
}

// List returns the bookings visible to the caller
func (s *BookingService) List(ctx context.Context, user *models.User) ([]*models.Booking, error) {
	bookings, err := s.bookingRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.authz.FilterBookingsByRole(ctx, user, bookings)
}

// Get returns one booking if the caller may see it
func (s *BookingService) Get(ctx context.Context, user *models.User, id string) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if !s.canSee(ctx, user, booking) {
		return nil, domain.ErrNotFound
	}
	return booking, nil
}

// UpdateStatus transitions a booking. Pending bookings can be confirmed or
// cancelled, confirmed bookings only cancelled; cancelled is terminal.
func (s *BookingService) UpdateStatus(ctx context.Context, actor *models.User, id string, status domain.BookingStatus) (*models.Booking, error) {
	if !status.Valid() {
		return nil, domain.ErrValidation
	}
	if !s.authz.HasPermission(actor, domain.PermManageBookings) {
		return nil, domain.ErrInsufficientPrivilege
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	// Hostel admins may only act on bookings for their own hostel
	if actor.Role == domain.RoleHostelAdmin {
		hostel, err := s.hostelRepo.GetByID(ctx, booking.HostelID)
		if err != nil || !s.authz.CanAccessHostel(actor, hostel) {
			return nil, domain.ErrInsufficientPrivilege
		}
	}

	if !validTransition(booking.Status, status) {
		return nil, domain.ErrValidation
	}

	oldStatus := booking.Status
	booking.Status = status
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}

	s.securityLog.Log(ctx, EventBookingStatusChanged, actor.ID, map[string]interface{}{
		"booking_id": booking.ID,
		"old_status": string(oldStatus),
		"new_status": string(status),
	})

	log.Printf("✅ Booking %s: %s -> %s by %s", booking.ID, oldStatus, status, actor.Email)
	return booking, nil
}

func (s *BookingService) canSee(ctx context.Context, user *models.User, booking *models.Booking) bool {
	if user == nil {
		return false
	}
	switch user.Role {
	case domain.RoleSuperAdmin:
		return true
	case domain.RoleHostelAdmin:
		hostel, err := s.hostelRepo.GetByID(ctx, booking.HostelID)
		return err == nil && s.authz.CanAccessHostel(user, hostel)
	default:
		return booking.UserID == user.ID
	}
}

func validTransition(from, to domain.BookingStatus) bool {
	switch from {
	case domain.BookingPending:
		return to == domain.BookingConfirmed || to == domain.BookingCancelled
	case domain.BookingConfirmed:
		return to == domain.BookingCancelled
	}
	return false
}

func newBookingID() string {
	return "BK-" + strings.ToUpper(uuid.New().String()[:8])
}

// parsePrice reads a comma grouped amount, with or without the UGX prefix.
func parsePrice(s string) (int, error) {
	cleaned := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "UGX"))
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	n, err := strconv.Atoi(cleaned)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("malformed amount %q", s)
	}
	return n, nil
}

// normalizePrice re-renders an amount in the stored comma grouped form.
func normalizePrice(s string) (string, error) {
	n, err := parsePrice(s)
	if err != nil {
		return "", err
	}
	return groupThousands(n), nil
}

// formatUGX renders an amount the way bookings display it: "UGX 750,000".
func formatUGX(n int) string {
	return "UGX " + groupThousands(n)
}

func groupThousands(n int) string {
	s := strconv.Itoa(n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
