package repositories

import (
	"context"

	"muni-hostelhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// hostelRepository implements HostelRepository on GORM
type hostelRepository struct {
	db *gorm.DB
}

// NewHostelRepository creates a new hostel repository
func NewHostelRepository(db *gorm.DB) HostelRepository {
	return &hostelRepository{db: db}
}

// Create creates a new hostel; the sequential ID is assigned by the driver
func (r *hostelRepository) Create(ctx context.Context, hostel *models.Hostel) error {
	return r.db.WithContext(ctx).Create(hostel).Error
}

// GetByID gets a hostel by ID
func (r *hostelRepository) GetByID(ctx context.Context, id uint) (*models.Hostel, error) {
	var hostel models.Hostel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&hostel).Error
	if err != nil {
		return nil, translate(err)
	}
	return &hostel, nil
}

// Update updates a hostel
func (r *hostelRepository) Update(ctx context.Context, hostel *models.Hostel) error {
	return r.db.WithContext(ctx).Save(hostel).Error
}

// Delete removes a hostel
func (r *hostelRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Hostel{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// List lists all hostels
func (r *hostelRepository) List(ctx context.Context) ([]*models.Hostel, error) {
	var hostels []*models.Hostel
	if err := r.db.WithContext(ctx).Order("id").Find(&hostels).Error; err != nil {
		return nil, err
	}
	return hostels, nil
}
