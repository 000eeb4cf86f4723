package services

import (
	"context"
	"errors"
	"log"
	"sort"
	"strings"

	"muni-hostelhub/internal/adapters/persistence/models"
	"muni-hostelhub/internal/adapters/persistence/repositories"
	"muni-hostelhub/internal/core/domain"
	"muni-hostelhub/internal/pkg/password"

	"github.com/google/uuid"
)

// UserService handles user management business logic
type UserService struct {
	userRepo    repositories.UserRepository
	securityLog *SecurityLogService
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository, securityLog *SecurityLogService) *UserService {
	return &UserService{
		userRepo:    userRepo,
		securityLog: securityLog,
	}
}

// CreateUserInput represents admin-created account input
type CreateUserInput struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required"`
	Role      string `json:"role" validate:"required"`
	StudentID string `json:"student_id"`
}

// CreatedUser carries the new account together with its one-time
// temporary password.
type CreatedUser struct {
	User         *models.UserResponse `json:"user"`
	TempPassword string               `json:"temp_password"`
}

// ListUsersInput represents list users input
type ListUsersInput struct {
	Search string
	Role   string
	Status string
}

// RoleStats represents account counts by role and status
type RoleStats struct {
	Total        int64 `json:"total"`
	SuperAdmins  int64 `json:"super_admins"`
	HostelAdmins int64 `json:"hostel_admins"`
	Students     int64 `json:"students"`
	Active       int64 `json:"active"`
	Pending      int64 `json:"pending"`
	Inactive     int64 `json:"inactive"`
}

// CreateUser creates an account on behalf of an admin. The account starts
// out pending with a generated temporary password. Nothing is written when
// the email is already taken.
func (s *UserService) CreateUser(ctx context.Context, actor *models.User, input *CreateUserInput) (*CreatedUser, error) {
	role := domain.Role(input.Role)
	if !role.Valid() || role == domain.RoleSuperAdmin {
		return nil, domain.ErrValidation
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateEmail
	}

	tempPassword, err := password.GenerateTemp()
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:          uuid.New().String(),
		FirstName:   strings.TrimSpace(input.FirstName),
		LastName:    strings.TrimSpace(input.LastName),
		Email:       strings.ToLower(strings.TrimSpace(input.Email)),
		Phone:       strings.TrimSpace(input.Phone),
		Password:    tempPassword,
		Role:        role,
		Status:      domain.StatusPending,
		StudentID:   strings.TrimSpace(input.StudentID),
		Permissions: permissionsCSV(role),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.securityLog.Log(ctx, EventUserCreated, actor.ID, map[string]interface{}{
		"target_id": user.ID,
		"email":     user.Email,
		"role":      string(user.Role),
	})

	log.Printf("✅ User created by admin: %s (role: %s)", user.Email, user.Role)

	return &CreatedUser{
		User:         user.ToResponse(),
		TempPassword: tempPassword,
	}, nil
}

// ListUsers lists accounts, optionally narrowed by a search term and by
// role or status. Results are ordered by creation time, newest first.
func (s *UserService) ListUsers(ctx context.Context, input *ListUsersInput) ([]*models.UserResponse, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	search := strings.ToLower(strings.TrimSpace(input.Search))
	filtered := make([]*models.User, 0, len(users))
	for _, u := range users {
		if input.Role != "" && string(u.Role) != input.Role {
			continue
		}
		if input.Status != "" && string(u.Status) != input.Status {
			continue
		}
		if search != "" && !matchesSearch(u, search) {
			continue
		}
		filtered = append(filtered, u)
	}

	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})

	responses := make([]*models.UserResponse, len(filtered))
	for i, u := range filtered {
		responses[i] = u.ToResponse()
	}
	return responses, nil
}

func matchesSearch(u *models.User, search string) bool {
	haystacks := []string{
		strings.ToLower(u.FirstName),
		strings.ToLower(u.LastName),
		strings.ToLower(u.Email),
		strings.ToLower(u.StudentID),
	}
	for _, h := range haystacks {
		if strings.Contains(h, search) {
			return true
		}
	}
	return false
}

// GetUser gets a single account
func (s *UserService) GetUser(ctx context.Context, id string) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return user.ToResponse(), nil
}

// Stats returns account counts by role and status
func (s *UserService) Stats(ctx context.Context) (*RoleStats, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	stats := &RoleStats{Total: int64(len(users))}
	for _, u := range users {
		switch u.Role {
		case domain.RoleSuperAdmin:
			stats.SuperAdmins++
		case domain.RoleHostelAdmin:
			stats.HostelAdmins++
		case domain.RoleUser:
			stats.Students++
		}
		switch u.Status {
		case domain.StatusActive:
			stats.Active++
		case domain.StatusPending:
			stats.Pending++
		case domain.StatusInactive:
			stats.Inactive++
		}
	}
	return stats, nil
}

// SetStatus activates, suspends or re-approves an account. Super admin
// accounts can never be targeted.
func (s *UserService) SetStatus(ctx context.Context, actor *models.User, targetID string, status domain.AccountStatus) (*models.UserResponse, error) {
	if !status.Valid() {
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

	oldStatus := target.Status
	target.Status = status
	if err := s.userRepo.Update(ctx, target); err != nil {
		return nil, err
	}

	s.securityLog.Log(ctx, EventStatusChanged, actor.ID, map[string]interface{}{
		"target_id":  target.ID,
		"old_status": string(oldStatus),
		"new_status": string(status),
	})

	log.Printf("✅ Status changed: %s (%s -> %s) by %s", target.Email, oldStatus, status, actor.Email)
	return target.ToResponse(), nil
}

// SetPermissions stores a custom permission list on an account. The stored
// list is informational; runtime grants always come from the role table.
func (s *UserService) SetPermissions(ctx context.Context, actor *models.User, targetID string, perms []string) (*models.UserResponse, error) {
	for _, p := range perms {
		if !validPermission(domain.Permission(p)) {
			return nil, domain.ErrValidation
		}
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

	target.Permissions = strings.Join(perms, ",")
	if err := s.userRepo.Update(ctx, target); err != nil {
		return nil, err
	}

	s.securityLog.Log(ctx, EventPermissionsChanged, actor.ID, map[string]interface{}{
		"target_id":   target.ID,
		"permissions": target.Permissions,
	})

	return target.ToResponse(), nil
}

func validPermission(p domain.Permission) bool {
	for _, known := range domain.AllPermissions {
		if p == known {
			return true
		}
	}
	return false
}
