package services

import (
	"context"
	"errors"
	"time"

	"muni-hostelhub/internal/adapters/persistence/models"
	"muni-hostelhub/internal/adapters/persistence/repositories"
	"muni-hostelhub/internal/core/domain"
)

// FavoriteService handles per-user favorite lists
type FavoriteService struct {
	favoriteRepo repositories.FavoriteRepository
	hostelRepo   repositories.HostelRepository
}

// NewFavoriteService creates a new favorite service
func NewFavoriteService(
	favoriteRepo repositories.FavoriteRepository,
	hostelRepo repositories.HostelRepository,
) *FavoriteService {
	return &FavoriteService{
		favoriteRepo: favoriteRepo,
		hostelRepo:   hostelRepo,
	}
}

// Add puts a hostel on the user's favorites list, snapshotting its summary
// fields. Adding an already favorited hostel is a no-op.
func (s *FavoriteService) Add(ctx context.Context, user *models.User, hostelID uint) error {
	hostel, err := s.hostelRepo.GetByID(ctx, hostelID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return domain.ErrNotFound
		}
		return err
	}

	exists, err := s.favoriteRepo.Exists(ctx, user.ID, hostelID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	fav := &models.Favorite{
		UserID:   user.ID,
		HostelID: hostel.ID,
		Name:     hostel.Name,
		Image:    hostel.Image,
		Price:    hostel.Price,
		Location: hostel.Location,
		AddedAt:  time.Now(),
	}
	return s.favoriteRepo.Add(ctx, fav)
}

// List returns the user's favorites in the order they were added
func (s *FavoriteService) List(ctx context.Context, user *models.User) ([]*models.Favorite, error) {
	return s.favoriteRepo.ListByUser(ctx, user.ID)
}

// Remove takes a hostel off the user's favorites list
func (s *FavoriteService) Remove(ctx context.Context, user *models.User, hostelID uint) error {
	err := s.favoriteRepo.Remove(ctx, user.ID, hostelID)
	if errors.Is(err, repositories.ErrNotFound) {
		return domain.ErrNotFound
	}
	return err
}
