package config

import (
	"context"
	"log"
	"strings"

	"muni-hostelhub/internal/adapters/persistence/models"
	"muni-hostelhub/internal/adapters/persistence/repositories"
	"muni-hostelhub/internal/core/domain"

	"github.com/google/uuid"
)

// Seeder populates an empty store with the default super admin and the
// sample hostel catalogue.
type Seeder struct {
	repos *repositories.Set
}

// NewSeeder creates a new seeder instance
func NewSeeder(repos *repositories.Set) *Seeder {
	return &Seeder{repos: repos}
}

// Run executes all seeders
func (s *Seeder) Run(ctx context.Context) error {
	log.Println("🌱 Running seeders...")

	if err := s.seedSuperAdmin(ctx); err != nil {
		return err
	}
	if err := s.seedHostels(ctx); err != nil {
		return err
	}

	log.Println("✅ Seeding completed")
	return nil
}

// seedSuperAdmin seeds the default super admin account. The credentials
// are for development only.
func (s *Seeder) seedSuperAdmin(ctx context.Context) error {
	exists, err := s.repos.Users.ExistsByEmail(ctx, "admin@muni.test")
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	perms := domain.PermissionsForRole(domain.RoleSuperAdmin)
	parts := make([]string, len(perms))
	for i, p := range perms {
		parts[i] = string(p)
	}

	admin := &models.User{
		ID:          uuid.New().String(),
		FirstName:   "System",
		LastName:    "Administrator",
		Email:       "admin@muni.test",
		Phone:       "+256700000001",
		Password:    "Admin@123",
		Role:        domain.RoleSuperAdmin,
		Status:      domain.StatusActive,
		Permissions: strings.Join(parts, ","),
	}

	if err := s.repos.Users.Create(ctx, admin); err != nil {
		return err
	}

	log.Printf("✅ Super admin created: %s", admin.Email)
	return nil
}

// seedHostels seeds the sample hostel catalogue on an empty store
func (s *Seeder) seedHostels(ctx context.Context) error {
	existing, err := s.repos.Hostels.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	hostels := []*models.Hostel{
		{
			Name:        "Green Valley Hostel",
			Price:       "250,000",
			Location:    "Arua Hill",
			Address:     "Plot 14, Weatherhead Park Lane, Arua",
			Phone:       "+256772100200",
			Email:       "info@greenvalley.test",
			Capacity:    120,
			Description: "Quiet hostel close to campus with spacious double rooms and a reading area.",
			Features:    models.HostelFeatures{Wifi: true, Water: true, Electricity: true, Security: true},
			Image:       "/images/hostels/green-valley.jpg",
			Status:      domain.HostelActive,
		},
		{
			Name:        "Campus View Hostel",
			Price:       "300,000",
			Location:    "Muni Park",
			Address:     "Block B, University Road, Arua",
			Phone:       "+256772100201",
			Email:       "bookings@campusview.test",
			Capacity:    80,
			Description: "Modern rooms overlooking the university with self-contained units.",
			Features:    models.HostelFeatures{Wifi: true, Water: true, Electricity: true, Security: true},
			Image:       "/images/hostels/campus-view.jpg",
			Status:      domain.HostelActive,
		},
		{
			Name:        "Student Comfort Hostel",
			Price:       "200,000",
			Location:    "Ediofe",
			Address:     "Ediofe Cathedral Road, Arua",
			Phone:       "+256772100202",
			Email:       "stay@studentcomfort.test",
			Capacity:    150,
			Description: "Affordable shared rooms with a communal kitchen and laundry service.",
			Features:    models.HostelFeatures{Wifi: false, Water: true, Electricity: true, Security: true},
			Image:       "/images/hostels/student-comfort.jpg",
			Status:      domain.HostelActive,
		},
		{
			Name:        "Muni Elite Hostel",
			Price:       "350,000",
			Location:    "Mvara",
			Address:     "Mvara Close, Arua",
			Phone:       "+256772100203",
			Email:       "elite@munielite.test",
			Capacity:    60,
			Description: "Premium single rooms with en-suite bathrooms, backup power and a gym.",
			Features:    models.HostelFeatures{Wifi: true, Water: true, Electricity: true, Security: true},
			Image:       "/images/hostels/muni-elite.jpg",
			Status:      domain.HostelActive,
		},
	}

	for _, h := range hostels {
		if err := s.repos.Hostels.Create(ctx, h); err != nil {
			return err
		}
	}

	log.Printf("✅ Seeded %d sample hostels", len(hostels))
	return nil
}
