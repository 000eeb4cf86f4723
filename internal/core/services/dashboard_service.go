package services

import (
	"context"
	"time"

	"muni-hostelhub/internal/adapters/persistence/models"
	"muni-hostelhub/internal/adapters/persistence/repositories"
	"muni-hostelhub/internal/core/domain"
)

// DashboardService computes role scoped overview figures
type DashboardService struct {
	repos       *repositories.Set
	authz       *AuthorizationService
	securityLog *SecurityLogService
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(repos *repositories.Set, authz *AuthorizationService, securityLog *SecurityLogService) *DashboardService {
	return &DashboardService{repos: repos, authz: authz, securityLog: securityLog}
}

// ============================================================
// Super Admin Dashboard
// ============================================================

// SuperAdminDashboardData represents the platform-wide overview
type SuperAdminDashboardData struct {
	TotalUsers       int64  `json:"total_users"`
	PendingApprovals int64  `json:"pending_approvals"`
	TotalHostels     int64  `json:"total_hostels"`
	ActiveHostels    int64  `json:"active_hostels"`
	TotalBookings    int64  `json:"total_bookings"`
	PendingBookings  int64  `json:"pending_bookings"`
	Revenue          string `json:"revenue"`
}

// GetSuperAdminDashboard returns the platform-wide overview. Revenue sums
// the amounts of confirmed bookings.
func (s *DashboardService) GetSuperAdminDashboard(ctx context.Context) (*SuperAdminDashboardData, error) {
	data := &SuperAdminDashboardData{}

	users, err := s.repos.Users.List(ctx)
	if err != nil {
		return nil, err
	}
	data.TotalUsers = int64(len(users))
	for _, u := range users {
		if u.Status == domain.StatusPending {
			data.PendingApprovals++
		}
	}

	hostels, err := s.repos.Hostels.List(ctx)
	if err != nil {
		return nil, err
	}
	data.TotalHostels = int64(len(hostels))
	for _, h := range hostels {
		if h.Status == domain.HostelActive {
			data.ActiveHostels++
		}
	}

	bookings, err := s.repos.Bookings.List(ctx)
	if err != nil {
		return nil, err
	}
	data.TotalBookings = int64(len(bookings))
	data.PendingBookings, data.Revenue = bookingFigures(bookings)

	return data, nil
}

// ============================================================
// Hostel Admin Dashboard
// ============================================================

// HostelAdminDashboardData represents a hostel admin's overview
type HostelAdminDashboardData struct {
	Hostel            *models.HostelResponse `json:"hostel,omitempty"`
	TotalBookings     int64                  `json:"total_bookings"`
	PendingBookings   int64                  `json:"pending_bookings"`
	ConfirmedBookings int64                  `json:"confirmed_bookings"`
	Revenue           string                 `json:"revenue"`
}

// GetHostelAdminDashboard returns the overview for a hostel admin's own
// hostel. An admin without a hostel yet sees zeroes.
func (s *DashboardService) GetHostelAdminDashboard(ctx context.Context, user *models.User) (*HostelAdminDashboardData, error) {
	data := &HostelAdminDashboardData{Revenue: formatUGX(0)}

	if user.HostelID != nil {
		if hostel, err := s.repos.Hostels.GetByID(ctx, *user.HostelID); err == nil {
			data.Hostel = hostel.ToResponse(true)
		}
	}

	bookings, err := s.repos.Bookings.List(ctx)
	if err != nil {
		return nil, err
	}
	mine, err := s.authz.FilterBookingsByRole(ctx, user, bookings)
	if err != nil {
		return nil, err
	}

	data.TotalBookings = int64(len(mine))
	data.PendingBookings, data.Revenue = bookingFigures(mine)
	for _, b := range mine {
		if b.Status == domain.BookingConfirmed {
			data.ConfirmedBookings++
		}
	}

	return data, nil
}

// ============================================================
// Student Dashboard
// ============================================================

// UserDashboardData represents a student's overview
type UserDashboardData struct {
	TotalBookings   int64             `json:"total_bookings"`
	PendingBookings int64             `json:"pending_bookings"`
	Favorites       int64             `json:"favorites"`
	RecentBookings  []*models.Booking `json:"recent_bookings"`
}

// GetUserDashboard returns a student's overview
func (s *DashboardService) GetUserDashboard(ctx context.Context, user *models.User) (*UserDashboardData, error) {
	data := &UserDashboardData{}

	bookings, err := s.repos.Bookings.List(ctx)
	if err != nil {
		return nil, err
	}
	mine, err := s.authz.FilterBookingsByRole(ctx, user, bookings)
	if err != nil {
		return nil, err
	}

	data.TotalBookings = int64(len(mine))
	for _, b := range mine {
		if b.Status == domain.BookingPending {
			data.PendingBookings++
		}
	}
	if len(mine) > 5 {
		mine = mine[:5]
	}
	data.RecentBookings = mine

	favs, err := s.repos.Favorites.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	data.Favorites = int64(len(favs))

	return data, nil
}

// ============================================================
// Export
// ============================================================

// ExportBundle is the full data snapshot handed to admins. Passwords stay
// out; everything else is scoped to what the caller may see.
type ExportBundle struct {
	ExportedAt   time.Time                `json:"exported_at"`
	Users        []*models.UserResponse   `json:"users,omitempty"`
	Hostels      []*models.HostelResponse `json:"hostels"`
	Bookings     []*models.Booking        `json:"bookings"`
	SecurityLogs []*models.SecurityLog    `json:"security_logs,omitempty"`
}

// Export assembles the caller's data snapshot
func (s *DashboardService) Export(ctx context.Context, actor *models.User) (*ExportBundle, error) {
	if !s.authz.HasPermission(actor, domain.PermExportData) {
		return nil, domain.ErrInsufficientPrivilege
	}

	bundle := &ExportBundle{ExportedAt: time.Now()}

	if s.authz.HasPermission(actor, domain.PermManageUsers) {
		users, err := s.repos.Users.List(ctx)
		if err != nil {
			return nil, err
		}
		bundle.Users = make([]*models.UserResponse, len(users))
		for i, u := range users {
			bundle.Users[i] = u.ToResponse()
		}
	}

	hostels, err := s.repos.Hostels.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, h := range s.authz.FilterHostelsByRole(actor, hostels) {
		bundle.Hostels = append(bundle.Hostels, h.ToResponse(true))
	}

	bookings, err := s.repos.Bookings.List(ctx)
	if err != nil {
		return nil, err
	}
	bundle.Bookings, err = s.authz.FilterBookingsByRole(ctx, actor, bookings)
	if err != nil {
		return nil, err
	}

	if s.authz.HasPermission(actor, domain.PermViewSecurityLogs) {
		logs, err := s.repos.SecurityLogs.List(ctx)
		if err != nil {
			return nil, err
		}
		bundle.SecurityLogs = logs
	}

	s.securityLog.Log(ctx, EventDataExported, actor.ID, map[string]interface{}{
		"bookings": len(bundle.Bookings),
		"hostels":  len(bundle.Hostels),
		"users":    len(bundle.Users),
	})

	return bundle, nil
}

// bookingFigures counts pending bookings and sums confirmed revenue
func bookingFigures(bookings []*models.Booking) (pending int64, revenue string) {
	var total int
	for _, b := range bookings {
		switch b.Status {
		case domain.BookingPending:
			pending++
		case domain.BookingConfirmed:
			if n, err := parsePrice(b.Amount); err == nil {
				total += n
			}
		}
	}
	return pending, formatUGX(total)
}
