package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"muni-hostelhub/internal/adapters/persistence/models"
	"muni-hostelhub/internal/adapters/persistence/repositories"
	"muni-hostelhub/internal/core/domain"
)

// HostelService handles hostel listing business logic
type HostelService struct {
	hostelRepo  repositories.HostelRepository
	userRepo    repositories.UserRepository
	authz       *AuthorizationService
	securityLog *SecurityLogService
}

// NewHostelService creates a new hostel service
func NewHostelService(
	hostelRepo repositories.HostelRepository,
	userRepo repositories.UserRepository,
	authz *AuthorizationService,
	securityLog *SecurityLogService,
) *HostelService {
	return &HostelService{
		hostelRepo:  hostelRepo,
		userRepo:    userRepo,
		authz:       authz,
		securityLog: securityLog,
	}
}

// CreateHostelInput represents hostel creation input
type CreateHostelInput struct {
	Name        string                `json:"name" validate:"required"`
	Price       string                `json:"price" validate:"required"`
	Location    string                `json:"location" validate:"required"`
	Address     string                `json:"address" validate:"required"`
	Phone       string                `json:"phone"`
	Email       string                `json:"email"`
	Capacity    int                   `json:"capacity" validate:"required,min=1"`
	Description string                `json:"description"`
	Features    models.HostelFeatures `json:"features"`
	Image       string                `json:"image"`
}

// UpdateHostelInput represents partial hostel update input
type UpdateHostelInput struct {
	Name        *string                `json:"name"`
	Price       *string                `json:"price"`
	Location    *string                `json:"location"`
	Address     *string                `json:"address"`
	Phone       *string                `json:"phone"`
	Email       *string                `json:"email"`
	Capacity    *int                   `json:"capacity"`
	Description *string                `json:"description"`
	Features    *models.HostelFeatures `json:"features"`
	Image       *string                `json:"image"`
	Status      *string                `json:"status"`
}

// ListHostelsInput represents list hostels input
type ListHostelsInput struct {
	Search string
	Status string
}

// Create registers a new hostel, active and unowned. Only a super admin
// may add hostels; ownership is handed out separately via assignment.
func (s *HostelService) Create(ctx context.Context, actor *models.User, input *CreateHostelInput) (*models.Hostel, error) {
	if !s.authz.HasPermission(actor, domain.PermManageAllHostels) {
		return nil, domain.ErrInsufficientPrivilege
	}

	price, err := normalizePrice(input.Price)
	if err != nil {
		return nil, domain.ErrValidation
	}
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Location) == "" || input.Capacity < 1 {
		return nil, domain.ErrValidation
	}

	hostel := &models.Hostel{
		Name:        strings.TrimSpace(input.Name),
		Price:       price,
		Location:    strings.TrimSpace(input.Location),
		Address:     strings.TrimSpace(input.Address),
		Phone:       strings.TrimSpace(input.Phone),
		Email:       strings.TrimSpace(input.Email),
		Capacity:    input.Capacity,
		Description: input.Description,
		Features:    input.Features,
		Image:       input.Image,
		Status:      domain.HostelActive,
		CreatedBy:   actor.ID,
	}

	if err := s.hostelRepo.Create(ctx, hostel); err != nil {
		return nil, err
	}

	s.securityLog.Log(ctx, EventHostelCreated, actor.ID, map[string]interface{}{
		"hostel_id": hostel.ID,
		"name":      hostel.Name,
	})

	log.Printf("✅ Hostel created: %s (ID: %d) by %s", hostel.Name, hostel.ID, actor.Email)
	return hostel, nil
}

// Update edits a hostel. The caller must be able to manage it.
func (s *HostelService) Update(ctx context.Context, actor *models.User, id uint, input *UpdateHostelInput) (*models.Hostel, error) {
	hostel, err := s.hostelRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if !s.authz.CanAccessHostel(actor, hostel) {
		return nil, domain.ErrInsufficientPrivilege
	}

	if input.Name != nil {
		hostel.Name = strings.TrimSpace(*input.Name)
	}
	if input.Price != nil {
		price, err := normalizePrice(*input.Price)
		if err != nil {
			return nil, domain.ErrValidation
		}
		hostel.Price = price
	}
	if input.Location != nil {
		hostel.Location = strings.TrimSpace(*input.Location)
	}
	if input.Address != nil {
		hostel.Address = strings.TrimSpace(*input.Address)
	}
	if input.Phone != nil {
		hostel.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.Email != nil {
		hostel.Email = strings.TrimSpace(*input.Email)
	}
	if input.Capacity != nil {
		if *input.Capacity < 1 {
			return nil, domain.ErrValidation
		}
		hostel.Capacity = *input.Capacity
	}
	if input.Description != nil {
		hostel.Description = *input.Description
	}
	if input.Features != nil {
		hostel.Features = *input.Features
	}
	if input.Image != nil {
		hostel.Image = *input.Image
	}
	if input.Status != nil {
		status := domain.HostelStatus(*input.Status)
		switch status {
		case domain.HostelActive, domain.HostelPending, domain.HostelInactive:
			hostel.Status = status
		default:
			return nil, domain.ErrValidation
		}
	}

	now := time.Now()
	hostel.UpdatedBy = &actor.ID
	hostel.UpdatedAt = &now

	if err := s.hostelRepo.Update(ctx, hostel); err != nil {
		return nil, err
	}

	// Keep the owner's denormalized hostel name in sync
	if input.Name != nil && hostel.OwnerID != nil {
		if owner, err := s.userRepo.GetByID(ctx, *hostel.OwnerID); err == nil {
			owner.HostelName = hostel.Name
			if err := s.userRepo.Update(ctx, owner); err != nil {
				return nil, err
			}
		}
	}

	s.securityLog.Log(ctx, EventHostelUpdated, actor.ID, map[string]interface{}{
		"hostel_id": hostel.ID,
	})

	log.Printf("✅ Hostel updated: %s (ID: %d) by %s", hostel.Name, hostel.ID, actor.Email)
	return hostel, nil
}

// Delete removes a hostel. Super admin only; the owner, if any, is released.
func (s *HostelService) Delete(ctx context.Context, actor *models.User, id uint) error {
	if !s.authz.HasPermission(actor, domain.PermManageAllHostels) {
		return domain.ErrInsufficientPrivilege
	}

	hostel, err := s.hostelRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return domain.ErrNotFound
		}
		return err
	}

	if hostel.OwnerID != nil {
		if owner, err := s.userRepo.GetByID(ctx, *hostel.OwnerID); err == nil {
			owner.HostelID = nil
			owner.HostelName = ""
			if err := s.userRepo.Update(ctx, owner); err != nil {
				return err
			}
		}
	}

	if err := s.hostelRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.securityLog.Log(ctx, EventHostelDeleted, actor.ID, map[string]interface{}{
		"hostel_id": hostel.ID,
		"name":      hostel.Name,
	})

	log.Printf("✅ Hostel deleted: %s (ID: %d) by %s", hostel.Name, hostel.ID, actor.Email)
	return nil
}

// List returns the hostels visible to the caller, optionally narrowed by
// a search term over name and location. Contact details are included only
// for authenticated callers.
func (s *HostelService) List(ctx context.Context, user *models.User, input *ListHostelsInput) ([]*models.HostelResponse, error) {
	hostels, err := s.hostelRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	visible := s.authz.FilterHostelsByRole(user, hostels)

	search := strings.ToLower(strings.TrimSpace(input.Search))
	includeContact := user != nil

	responses := make([]*models.HostelResponse, 0, len(visible))
	for _, h := range visible {
		if input.Status != "" && string(h.Status) != input.Status {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(h.Name), search) &&
			!strings.Contains(strings.ToLower(h.Location), search) {
			continue
		}
		responses = append(responses, h.ToResponse(includeContact))
	}
	return responses, nil
}

// Get returns one hostel if the caller may see it: everyone sees active
// hostels, managers additionally see their own regardless of status.
func (s *HostelService) Get(ctx context.Context, user *models.User, id uint) (*models.HostelResponse, error) {
	hostel, err := s.hostelRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if hostel.Status != domain.HostelActive && !s.authz.CanAccessHostel(user, hostel) {
		return nil, domain.ErrNotFound
	}

	return hostel.ToResponse(user != nil), nil
}

// GetModel returns the raw hostel record for internal callers.
func (s *HostelService) GetModel(ctx context.Context, id uint) (*models.Hostel, error) {
	hostel, err := s.hostelRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return hostel, nil
}
