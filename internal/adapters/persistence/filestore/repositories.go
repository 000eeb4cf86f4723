package filestore

import (
	"context"
	"sort"
	"strings"
	"time"

	"muni-hostelhub/internal/adapters/persistence/models"
	"muni-hostelhub/internal/adapters/persistence/repositories"
)

// Collection keys. favorites are stored per user under "favorites_<userID>".
const (
	keyUsers         = "users"
	keyHostels       = "hostels"
	keyBookings      = "bookings"
	keySecurityLogs  = "securityLogs"
	keyRefreshTokens = "refreshTokens"
	favoritesPrefix  = "favorites_"
)

// NewSet builds the file-backed repository set.
func NewSet(store *Store) *repositories.Set {
	return &repositories.Set{
		Users:         &userRepository{store: store},
		Hostels:       &hostelRepository{store: store},
		Bookings:      &bookingRepository{store: store},
		SecurityLogs:  &securityLogRepository{store: store},
		Favorites:     &favoriteRepository{store: store},
		RefreshTokens: &refreshTokenRepository{store: store},
	}
}

// ============================================================
// Users
// ============================================================

// userRecord shadows the model's "-" password tag; the file keeps the
// plaintext password just as the record store contract requires.
type userRecord struct {
	models.User
	Password string `json:"password"`
}

func toUserRecord(u *models.User) userRecord {
	return userRecord{User: *u, Password: u.Password}
}

func (rec userRecord) toModel() *models.User {
	u := rec.User
	u.Password = rec.Password
	return &u
}

type userRepository struct {
	store *Store
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	var recs []userRecord
	return r.store.Update(keyUsers, &recs, func() error {
		recs = append(recs, toUserRecord(user))
		return nil
	})
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var recs []userRecord
	if err := r.store.Read(keyUsers, &recs); err != nil {
		return nil, err
	}
	for _, rec := range recs {
		if rec.ID == id {
			return rec.toModel(), nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var recs []userRecord
	if err := r.store.Read(keyUsers, &recs); err != nil {
		return nil, err
	}
	for _, rec := range recs {
		if strings.EqualFold(rec.Email, email) {
			return rec.toModel(), nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	var recs []userRecord
	return r.store.Update(keyUsers, &recs, func() error {
		for i, rec := range recs {
			if rec.ID == user.ID {
				recs[i] = toUserRecord(user)
				return nil
			}
		}
		return repositories.ErrNotFound
	})
}

func (r *userRepository) List(ctx context.Context) ([]*models.User, error) {
	var recs []userRecord
	if err := r.store.Read(keyUsers, &recs); err != nil {
		return nil, err
	}
	users := make([]*models.User, 0, len(recs))
	for _, rec := range recs {
		users = append(users, rec.toModel())
	}
	return users, nil
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	if err == repositories.ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ============================================================
// Hostels
// ============================================================

type hostelRepository struct {
	store *Store
}

func (r *hostelRepository) Create(ctx context.Context, hostel *models.Hostel) error {
	if hostel.CreatedAt.IsZero() {
		hostel.CreatedAt = time.Now()
	}
	var hostels []*models.Hostel
	return r.store.Update(keyHostels, &hostels, func() error {
		if hostel.ID == 0 {
			var max uint
			for _, h := range hostels {
				if h.ID > max {
					max = h.ID
				}
			}
			hostel.ID = max + 1
		}
		hostels = append(hostels, hostel)
		return nil
	})
}

func (r *hostelRepository) GetByID(ctx context.Context, id uint) (*models.Hostel, error) {
	var hostels []*models.Hostel
	if err := r.store.Read(keyHostels, &hostels); err != nil {
		return nil, err
	}
	for _, h := range hostels {
		if h.ID == id {
			return h, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *hostelRepository) Update(ctx context.Context, hostel *models.Hostel) error {
	var hostels []*models.Hostel
	return r.store.Update(keyHostels, &hostels, func() error {
		for i, h := range hostels {
			if h.ID == hostel.ID {
				hostels[i] = hostel
				return nil
			}
		}
		return repositories.ErrNotFound
	})
}

func (r *hostelRepository) Delete(ctx context.Context, id uint) error {
	var hostels []*models.Hostel
	return r.store.Update(keyHostels, &hostels, func() error {
		for i, h := range hostels {
			if h.ID == id {
				hostels = append(hostels[:i], hostels[i+1:]...)
				return nil
			}
		}
		return repositories.ErrNotFound
	})
}

func (r *hostelRepository) List(ctx context.Context) ([]*models.Hostel, error) {
	var hostels []*models.Hostel
	if err := r.store.Read(keyHostels, &hostels); err != nil {
		return nil, err
	}
	sort.Slice(hostels, func(i, j int) bool { return hostels[i].ID < hostels[j].ID })
	return hostels, nil
}

// ============================================================
// Bookings
// ============================================================

type bookingRepository struct {
	store *Store
}

func (r *bookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	if booking.BookingDate.IsZero() {
		booking.BookingDate = time.Now()
	}
	var bookings []*models.Booking
	return r.store.Update(keyBookings, &bookings, func() error {
		bookings = append(bookings, booking)
		return nil
	})
}

func (r *bookingRepository) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	var bookings []*models.Booking
	if err := r.store.Read(keyBookings, &bookings); err != nil {
		return nil, err
	}
	for _, b := range bookings {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *bookingRepository) Update(ctx context.Context, booking *models.Booking) error {
	var bookings []*models.Booking
	return r.store.Update(keyBookings, &bookings, func() error {
		for i, b := range bookings {
			if b.ID == booking.ID {
				bookings[i] = booking
				return nil
			}
		}
		return repositories.ErrNotFound
	})
}

func (r *bookingRepository) List(ctx context.Context) ([]*models.Booking, error) {
	var bookings []*models.Booking
	if err := r.store.Read(keyBookings, &bookings); err != nil {
		return nil, err
	}
	sort.Slice(bookings, func(i, j int) bool {
		return bookings[i].BookingDate.After(bookings[j].BookingDate)
	})
	return bookings, nil
}

// ============================================================
// Security Logs
// ============================================================

type securityLogRepository struct {
	store *Store
}

func (r *securityLogRepository) Append(ctx context.Context, entry *models.SecurityLog) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	var logs []*models.SecurityLog
	return r.store.Update(keySecurityLogs, &logs, func() error {
		logs = append(logs, entry)
		return nil
	})
}

func (r *securityLogRepository) List(ctx context.Context) ([]*models.SecurityLog, error) {
	var logs []*models.SecurityLog
	if err := r.store.Read(keySecurityLogs, &logs); err != nil {
		return nil, err
	}
	sort.Slice(logs, func(i, j int) bool {
		return logs[i].Timestamp.After(logs[j].Timestamp)
	})
	return logs, nil
}

func (r *securityLogRepository) Clear(ctx context.Context) error {
	return r.store.Write(keySecurityLogs, []*models.SecurityLog{})
}

// ============================================================
// Favorites
// ============================================================

type favoriteRepository struct {
	store *Store
}

func favoritesKey(userID string) string {
	return favoritesPrefix + userID
}

func (r *favoriteRepository) Add(ctx context.Context, fav *models.Favorite) error {
	if fav.AddedAt.IsZero() {
		fav.AddedAt = time.Now()
	}
	var favs []*models.Favorite
	return r.store.Update(favoritesKey(fav.UserID), &favs, func() error {
		favs = append(favs, fav)
		return nil
	})
}

func (r *favoriteRepository) ListByUser(ctx context.Context, userID string) ([]*models.Favorite, error) {
	var favs []*models.Favorite
	if err := r.store.Read(favoritesKey(userID), &favs); err != nil {
		return nil, err
	}
	for _, f := range favs {
		f.UserID = userID
	}
	return favs, nil
}

func (r *favoriteRepository) Exists(ctx context.Context, userID string, hostelID uint) (bool, error) {
	favs, err := r.ListByUser(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, f := range favs {
		if f.HostelID == hostelID {
			return true, nil
		}
	}
	return false, nil
}

func (r *favoriteRepository) Remove(ctx context.Context, userID string, hostelID uint) error {
	var favs []*models.Favorite
	return r.store.Update(favoritesKey(userID), &favs, func() error {
		for i, f := range favs {
			if f.HostelID == hostelID {
				favs = append(favs[:i], favs[i+1:]...)
				return nil
			}
		}
		return repositories.ErrNotFound
	})
}

// ============================================================
// Refresh Tokens
// ============================================================

// tokenRecord shadows the model's "-" token hash tag so the file keeps it.
type tokenRecord struct {
	models.RefreshToken
	TokenHash string `json:"token_hash"`
}

func toTokenRecord(t *models.RefreshToken) tokenRecord {
	return tokenRecord{RefreshToken: *t, TokenHash: t.TokenHash}
}

func (rec tokenRecord) toModel() *models.RefreshToken {
	t := rec.RefreshToken
	t.TokenHash = rec.TokenHash
	return &t
}

type refreshTokenRepository struct {
	store *Store
}

func (r *refreshTokenRepository) Create(ctx context.Context, token *models.RefreshToken) error {
	if token.CreatedAt.IsZero() {
		token.CreatedAt = time.Now()
	}
	var recs []tokenRecord
	return r.store.Update(keyRefreshTokens, &recs, func() error {
		if token.ID == 0 {
			var max uint
			for _, rec := range recs {
				if rec.ID > max {
					max = rec.ID
				}
			}
			token.ID = max + 1
		}
		recs = append(recs, toTokenRecord(token))
		return nil
	})
}

func (r *refreshTokenRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error) {
	var recs []tokenRecord
	if err := r.store.Read(keyRefreshTokens, &recs); err != nil {
		return nil, err
	}
	for _, rec := range recs {
		if rec.TokenHash == tokenHash && rec.RevokedAt == nil {
			return rec.toModel(), nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *refreshTokenRepository) Revoke(ctx context.Context, id uint) error {
	return r.revokeMatching(func(rec tokenRecord) bool { return rec.ID == id })
}

func (r *refreshTokenRepository) RevokeByTokenHash(ctx context.Context, tokenHash string) error {
	return r.revokeMatching(func(rec tokenRecord) bool { return rec.TokenHash == tokenHash })
}

func (r *refreshTokenRepository) RevokeAllByUserID(ctx context.Context, userID string) error {
	return r.revokeMatching(func(rec tokenRecord) bool { return rec.UserID == userID })
}

func (r *refreshTokenRepository) revokeMatching(match func(tokenRecord) bool) error {
	now := time.Now()
	var recs []tokenRecord
	return r.store.Update(keyRefreshTokens, &recs, func() error {
		for i := range recs {
			if recs[i].RevokedAt == nil && match(recs[i]) {
				recs[i].RevokedAt = &now
			}
		}
		return nil
	})
}
