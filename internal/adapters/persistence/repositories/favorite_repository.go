package repositories

import (
	"context"

	"muni-hostelhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// favoriteRepository implements FavoriteRepository on GORM
type favoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository creates a new favorite repository
func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

// Add adds a hostel to a user's favorites
func (r *favoriteRepository) Add(ctx context.Context, fav *models.Favorite) error {
	return r.db.WithContext(ctx).Create(fav).Error
}

// ListByUser lists a user's favorites in insertion order
func (r *favoriteRepository) ListByUser(ctx context.Context, userID string) ([]*models.Favorite, error) {
	var favs []*models.Favorite
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&favs).Error
	if err != nil {
		return nil, err
	}
	return favs, nil
}

// Exists checks whether a hostel is already in a user's favorites
func (r *favoriteRepository) Exists(ctx context.Context, userID string, hostelID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Favorite{}).
		Where("user_id = ? AND hostel_id = ?", userID, hostelID).Count(&count).Error
	return count > 0, err
}

// Remove removes a hostel from a user's favorites
func (r *favoriteRepository) Remove(ctx context.Context, userID string, hostelID uint) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND hostel_id = ?", userID, hostelID).
		Delete(&models.Favorite{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
