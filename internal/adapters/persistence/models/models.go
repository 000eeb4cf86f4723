package models

import (
	"time"

	"muni-hostelhub/internal/core/domain"

	"gorm.io/gorm"
)

// ============================================================
// Users & Sessions
// ============================================================

// User represents the users collection. Passwords are stored and compared
// in plaintext: this is a demo credential system, kept deliberately.
type User struct {
	ID          string               `gorm:"primaryKey;size:40" json:"id"`
	FirstName   string               `gorm:"size:50;not null" json:"first_name"`
	LastName    string               `gorm:"size:50;not null" json:"last_name"`
	Email       string               `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Phone       string               `gorm:"size:30;not null" json:"phone"`
	Password    string               `gorm:"size:100;not null" json:"-"`
	Role        domain.Role          `gorm:"size:20;default:'user'" json:"role"`
	Status      domain.AccountStatus `gorm:"size:20;default:'pending'" json:"status"`
	StudentID   string               `gorm:"size:30" json:"student_id,omitempty"`
	HostelID    *uint                `json:"hostel_id,omitempty"`
	HostelName  string               `gorm:"size:100" json:"hostel_name,omitempty"`
	Permissions string               `gorm:"size:500" json:"permissions,omitempty"`
	CreatedAt   time.Time            `gorm:"autoCreateTime" json:"created_at"`
	LastLogin   *time.Time           `json:"last_login,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO: the user snapshot handed to clients and stored in the
// session, always stripped of the password.
type UserResponse struct {
	ID         string               `json:"id"`
	FirstName  string               `json:"first_name"`
	LastName   string               `json:"last_name"`
	Email      string               `json:"email"`
	Phone      string               `json:"phone"`
	Role       domain.Role          `json:"role"`
	Status     domain.AccountStatus `json:"status"`
	HostelID   *uint                `json:"hostel_id,omitempty"`
	HostelName string               `json:"hostel_name,omitempty"`
	CreatedAt  time.Time            `json:"created_at"`
	LastLogin  *time.Time           `json:"last_login,omitempty"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:         u.ID,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Email:      u.Email,
		Phone:      u.Phone,
		Role:       u.Role,
		Status:     u.Status,
		HostelID:   u.HostelID,
		HostelName: u.HostelName,
		CreatedAt:  u.CreatedAt,
		LastLogin:  u.LastLogin,
	}
}

// RefreshToken represents the refresh_tokens collection
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    string     `gorm:"index;size:40;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Hostels
// ============================================================

// HostelFeatures are the four advertised amenities.
type HostelFeatures struct {
	Wifi        bool `json:"wifi"`
	Water       bool `json:"water"`
	Electricity bool `json:"electricity"`
	Security    bool `json:"security"`
}

// Hostel represents the hostels collection. Price is a display string with
// thousands separators ("250,000"), a quirk inherited from the source data.
type Hostel struct {
	ID          uint                `gorm:"primaryKey" json:"id"`
	Name        string              `gorm:"size:100;not null" json:"name"`
	Price       string              `gorm:"size:30;not null" json:"price"`
	Location    string              `gorm:"size:100;not null" json:"location"`
	Address     string              `gorm:"size:200;not null" json:"address"`
	Phone       string              `gorm:"size:30" json:"phone"`
	Email       string              `gorm:"size:100" json:"email"`
	Capacity    int                 `gorm:"not null" json:"capacity"`
	Description string              `gorm:"type:text" json:"description"`
	Features    HostelFeatures      `gorm:"embedded;embeddedPrefix:feature_" json:"features"`
	Image       string              `gorm:"size:500" json:"image"`
	Status      domain.HostelStatus `gorm:"size:20;default:'pending'" json:"status"`
	OwnerID     *string             `gorm:"size:40;index" json:"owner_id"`
	CreatedBy   string              `gorm:"size:40" json:"created_by"`
	CreatedAt   time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedBy   *string             `gorm:"size:40" json:"updated_by,omitempty"`
	UpdatedAt   *time.Time          `json:"updated_at,omitempty"`
}

func (Hostel) TableName() string {
	return "hostels"
}

// HostelResponse DTO. Contact details are omitted for anonymous callers.
type HostelResponse struct {
	ID          uint                `json:"id"`
	Name        string              `json:"name"`
	Price       string              `json:"price"`
	Location    string              `json:"location"`
	Address     string              `json:"address,omitempty"`
	Phone       string              `json:"phone,omitempty"`
	Email       string              `json:"email,omitempty"`
	Capacity    int                 `json:"capacity"`
	Description string              `json:"description"`
	Features    HostelFeatures      `json:"features"`
	Image       string              `json:"image"`
	Status      domain.HostelStatus `json:"status"`
	OwnerID     *string             `json:"owner_id,omitempty"`
}

// ToResponse builds the client view of a hostel. Contact information is
// included only when the caller is authenticated.
func (h *Hostel) ToResponse(includeContact bool) *HostelResponse {
	resp := &HostelResponse{
		ID:          h.ID,
		Name:        h.Name,
		Price:       h.Price,
		Location:    h.Location,
		Capacity:    h.Capacity,
		Description: h.Description,
		Features:    h.Features,
		Image:       h.Image,
		Status:      h.Status,
		OwnerID:     h.OwnerID,
	}
	if includeContact {
		resp.Address = h.Address
		resp.Phone = h.Phone
		resp.Email = h.Email
	}
	return resp
}

// ============================================================
// Bookings
// ============================================================

// Booking represents the bookings collection. User and hostel fields are a
// denormalized snapshot taken at creation time; they intentionally do not
// track later edits to the referenced records.
type Booking struct {
	ID           string               `gorm:"primaryKey;size:50" json:"id"`
	UserID       string               `gorm:"index;size:40;not null" json:"user_id"`
	UserEmail    string               `gorm:"size:100;not null" json:"user_email"`
	UserName     string               `gorm:"size:100;not null" json:"user_name"`
	HostelID     uint                 `gorm:"index;not null" json:"hostel_id"`
	HostelName   string               `gorm:"size:100;not null" json:"hostel_name"`
	CheckIn      string               `gorm:"size:10;not null" json:"check_in"`
	CheckOut     string               `gorm:"size:10;not null" json:"check_out"`
	Duration     int                  `gorm:"not null" json:"duration"`
	Amount       string               `gorm:"size:30;not null" json:"amount"`
	Status       domain.BookingStatus `gorm:"size:20;default:'pending'" json:"status"`
	Requirements string               `gorm:"type:text" json:"requirements"`
	BookingDate  time.Time            `gorm:"autoCreateTime" json:"booking_date"`
}

func (Booking) TableName() string {
	return "bookings"
}

// ============================================================
// Security Logs
// ============================================================

// SecurityLog represents the securityLogs collection. Entries are append
// only; the collection supports a single bulk-clear operation.
type SecurityLog struct {
	ID        string    `gorm:"primaryKey;size:50" json:"id"`
	EventType string    `gorm:"size:50;not null;index" json:"event_type"`
	Details   string    `gorm:"type:text" json:"details"`
	UserID    string    `gorm:"size:40;index" json:"user_id,omitempty"`
	Timestamp time.Time `gorm:"autoCreateTime" json:"timestamp"`
}

func (SecurityLog) TableName() string {
	return "security_logs"
}

// ============================================================
// Favorites
// ============================================================

// Favorite represents one entry of a user's favorites list: a denormalized
// hostel summary keyed by the owning user.
type Favorite struct {
	ID       uint      `gorm:"primaryKey" json:"-"`
	UserID   string    `gorm:"index;size:40;not null" json:"-"`
	HostelID uint      `gorm:"not null" json:"id"`
	Name     string    `gorm:"size:100" json:"name"`
	Image    string    `gorm:"size:500" json:"image"`
	Price    string    `gorm:"size:30" json:"price"`
	Location string    `gorm:"size:100" json:"location"`
	AddedAt  time.Time `gorm:"autoCreateTime" json:"added_at"`
}

func (Favorite) TableName() string {
	return "favorites"
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate creates the tables for the MySQL driver.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&Hostel{},
		&Booking{},
		&SecurityLog{},
		&Favorite{},
	)
}
