package services

import (
	"context"
	"errors"
	"log"
	"time"

	"muni-hostelhub/internal/adapters/persistence/models"
	"muni-hostelhub/internal/adapters/persistence/repositories"
	"muni-hostelhub/internal/core/domain"
)

// AuthorizationService answers permission and visibility questions and
// performs the privileged role and ownership mutations.
type AuthorizationService struct {
	userRepo    repositories.UserRepository
	hostelRepo  repositories.HostelRepository
	securityLog *SecurityLogService
}

// NewAuthorizationService creates a new authorization service
func NewAuthorizationService(
	userRepo repositories.UserRepository,
	hostelRepo repositories.HostelRepository,
	securityLog *SecurityLogService,
) *AuthorizationService {
	return &AuthorizationService{
		userRepo:    userRepo,
		hostelRepo:  hostelRepo,
		securityLog: securityLog,
	}
}

// HasPermission reports whether a user holds a permission. Grants come
// from the role table only; anonymous callers hold nothing.
func (s *AuthorizationService) HasPermission(user *models.User, perm domain.Permission) bool {
	if user == nil {
		return false
	}
	return domain.RoleHasPermission(user.Role, perm)
}

// CanAccessHostel reports whether a user may manage a specific hostel.
// Super admins manage every hostel; hostel admins only the one they own.
func (s *AuthorizationService) CanAccessHostel(user *models.User, hostel *models.Hostel) bool {
	if user == nil || hostel == nil {
		return false
	}
	switch user.Role {
	case domain.RoleSuperAdmin:
		return true
	case domain.RoleHostelAdmin:
		return hostel.OwnerID != nil && *hostel.OwnerID == user.ID
	}
	return false
}

// FilterHostelsByRole narrows a hostel list to what the caller may see.
// Anonymous callers and students see active hostels only, hostel admins
// see their own hostels regardless of status, super admins see everything.
func (s *AuthorizationService) FilterHostelsByRole(user *models.User, hostels []*models.Hostel) []*models.Hostel {
	if user != nil && user.Role == domain.RoleSuperAdmin {
		return hostels
	}

	filtered := make([]*models.Hostel, 0, len(hostels))
	if user != nil && user.Role == domain.RoleHostelAdmin {
		for _, h := range hostels {
			if h.OwnerID != nil && *h.OwnerID == user.ID {
				filtered = append(filtered, h)
			}
		}
		return filtered
	}

	for _, h := range hostels {
		if h.Status == domain.HostelActive {
			filtered = append(filtered, h)
		}
	}
	return filtered
}

// FilterBookingsByRole narrows a booking list to what the caller may see.
// Students see their own bookings, hostel admins the bookings of hostels
// they own, super admins everything, anonymous callers nothing.
func (s *AuthorizationService) FilterBookingsByRole(ctx context.Context, user *models.User, bookings []*models.Booking) ([]*models.Booking, error) {
	if user == nil {
		return []*models.Booking{}, nil
	}

	switch user.Role {
	case domain.RoleSuperAdmin:
		return bookings, nil

	case domain.RoleHostelAdmin:
		hostels, err := s.hostelRepo.List(ctx)
		if err != nil {
			return nil, err
		}
		owned := make(map[uint]bool)
		for _, h := range hostels {
			if h.OwnerID != nil && *h.OwnerID == user.ID {
				owned[h.ID] = true
			}
		}
		filtered := make([]*models.Booking, 0, len(bookings))
		for _, b := range bookings {
			if owned[b.HostelID] {
				filtered = append(filtered, b)
			}
		}
		return filtered, nil

	default:
		filtered := make([]*models.Booking, 0, len(bookings))
		for _, b := range bookings {
			if b.UserID == user.ID {
				filtered = append(filtered, b)
			}
		}
		return filtered, nil
	}
}

// UpdateUserRole changes a user's role. Only a super admin may call it,
// super admin accounts can never be targeted, and no account can be
// promoted to super admin through this path. The stored permission set
// is rewritten from the role table.
func (s *AuthorizationService) UpdateUserRole(ctx context.Context, actor *models.User, targetID string, newRole domain.Role) (*models.User, error) {
	if actor == nil || actor.Role != domain.RoleSuperAdmin {
		return nil, domain.ErrInsufficientPrivilege
	}
	if !newRole.Valid() || newRole == domain.RoleSuperAdmin {
		return nil, domain.ErrValidation
	}

	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if target.Role == domain.RoleSuperAdmin {
		return nil, domain.ErrInsufficientPrivilege
	}

	oldRole := target.Role
	target.Role = newRole
	target.Permissions = permissionsCSV(newRole)

	if err := s.userRepo.Update(ctx, target); err != nil {
		return nil, err
	}

	s.securityLog.Log(ctx, EventRoleChanged, actor.ID, map[string]interface{}{
		"target_id": target.ID,
		"old_role":  string(oldRole),
		"new_role":  string(newRole),
	})

	log.Printf("✅ Role changed: %s (%s -> %s) by %s", target.Email, oldRole, newRole, actor.Email)
	return target, nil
}

// AssignHostelToAdmin hands a hostel to a hostel admin. The target must
// actually hold the hostel_admin role and the hostel must be unowned.
func (s *AuthorizationService) AssignHostelToAdmin(ctx context.Context, actor *models.User, targetID string, hostelID uint) error {
	if !s.HasPermission(actor, domain.PermManageAllHostels) {
		return domain.ErrInsufficientPrivilege
	}

	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return domain.ErrNotFound
		}
		return err
	}
	if target.Role != domain.RoleHostelAdmin {
		return domain.ErrNotHostelAdmin
	}

	hostel, err := s.hostelRepo.GetByID(ctx, hostelID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return domain.ErrNotFound
		}
		return err
	}
	if hostel.OwnerID != nil {
		return domain.ErrHostelOwned
	}

	now := time.Now()
	hostel.OwnerID = &target.ID
	hostel.UpdatedBy = &actor.ID
	hostel.UpdatedAt = &now
	if err := s.hostelRepo.Update(ctx, hostel); err != nil {
		return err
	}

	target.HostelID = &hostel.ID
	target.HostelName = hostel.Name
	if err := s.userRepo.Update(ctx, target); err != nil {
		return err
	}

	s.securityLog.Log(ctx, EventHostelAssigned, actor.ID, map[string]interface{}{
		"target_id": target.ID,
		"hostel_id": hostel.ID,
	})

	log.Printf("✅ Hostel %d assigned to %s by %s", hostel.ID, target.Email, actor.Email)
	return nil
}

// UnassignHostel releases a hostel from its owner.
func (s *AuthorizationService) UnassignHostel(ctx context.Context, actor *models.User, hostelID uint) error {
	if !s.HasPermission(actor, domain.PermManageAllHostels) {
		return domain.ErrInsufficientPrivilege
	}

	hostel, err := s.hostelRepo.GetByID(ctx, hostelID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return domain.ErrNotFound
		}
		return err
	}
	if hostel.OwnerID == nil {
		return domain.ErrHostelNotOwned
	}

	ownerID := *hostel.OwnerID

	now := time.Now()
	hostel.OwnerID = nil
	hostel.UpdatedBy = &actor.ID
	hostel.UpdatedAt = &now
	if err := s.hostelRepo.Update(ctx, hostel); err != nil {
		return err
	}

	owner, err := s.userRepo.GetByID(ctx, ownerID)
	if err == nil {
		owner.HostelID = nil
		owner.HostelName = ""
		if err := s.userRepo.Update(ctx, owner); err != nil {
			return err
		}
	}

	s.securityLog.Log(ctx, EventHostelUnassigned, actor.ID, map[string]interface{}{
		"owner_id":  ownerID,
		"hostel_id": hostel.ID,
	})

	log.Printf("✅ Hostel %d unassigned by %s", hostel.ID, actor.Email)
	return nil
}
