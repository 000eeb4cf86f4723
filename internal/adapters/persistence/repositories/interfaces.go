package repositories

import (
	"context"
	"errors"

	"muni-hostelhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// ErrNotFound is returned by every repository, regardless of driver, when a
// record cannot be resolved. Services match on this instead of driver
// specific sentinel values.
var ErrNotFound = errors.New("record not found")

// UserRepository defines the user collection interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	List(ctx context.Context) ([]*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// HostelRepository defines the hostel collection interface
type HostelRepository interface {
	Create(ctx context.Context, hostel *models.Hostel) error
	GetByID(ctx context.Context, id uint) (*models.Hostel, error)
	Update(ctx context.Context, hostel *models.Hostel) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]*models.Hostel, error)
}

// BookingRepository defines the booking collection interface. Bookings are
// never deleted, only status-transitioned, so no Delete is exposed.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	Update(ctx context.Context, booking *models.Booking) error
	List(ctx context.Context) ([]*models.Booking, error)
}

// SecurityLogRepository defines the append-only security log interface
type SecurityLogRepository interface {
	Append(ctx context.Context, entry *models.SecurityLog) error
	List(ctx context.Context) ([]*models.SecurityLog, error)
	Clear(ctx context.Context) error
}

// FavoriteRepository defines the per-user favorites interface
type FavoriteRepository interface {
	Add(ctx context.Context, fav *models.Favorite) error
	ListByUser(ctx context.Context, userID string) ([]*models.Favorite, error)
	Exists(ctx context.Context, userID string, hostelID uint) (bool, error)
	Remove(ctx context.Context, userID string, hostelID uint) error
}

// RefreshTokenRepository defines the refresh token interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID string) error
}

// Set bundles one repository per collection. Both drivers (MySQL and the
// JSON file store) produce a Set, which is what services and routes consume.
type Set struct {
	Users         UserRepository
	Hostels       HostelRepository
	Bookings      BookingRepository
	SecurityLogs  SecurityLogRepository
	Favorites     FavoriteRepository
	RefreshTokens RefreshTokenRepository
}

// NewGormSet builds the MySQL-backed repository set.
func NewGormSet(db *gorm.DB) *Set {
	return &Set{
		Users:         NewUserRepository(db),
		Hostels:       NewHostelRepository(db),
		Bookings:      NewBookingRepository(db),
		SecurityLogs:  NewSecurityLogRepository(db),
		Favorites:     NewFavoriteRepository(db),
		RefreshTokens: NewRefreshTokenRepository(db),
	}
}

// translate maps GORM's not-found to the driver-neutral sentinel.
func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
