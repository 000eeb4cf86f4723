package services

import (
	"context"
	"testing"

	"muni-hostelhub/internal/adapters/persistence/filestore"
	"muni-hostelhub/internal/adapters/persistence/models"
	"muni-hostelhub/internal/adapters/persistence/repositories"
	"muni-hostelhub/internal/config"
	"muni-hostelhub/internal/core/domain"

	"github.com/google/uuid"
)

// newTestRepos builds a file-backed repository set rooted in a temp dir.
func newTestRepos(t *testing.T) *repositories.Set {
	t.Helper()
	store, err := filestore.New(t.TempDir())
	if err != nil {
		t.Fatalf("open filestore: %v", err)
	}
	return filestore.NewSet(store)
}

func testConfig() *config.Config {
	return &config.Config{
		AppMode: "dev",
		JWT: config.JWTConfig{
			Secret:           "test-access-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
	}
}

func seedUser(t *testing.T, repos *repositories.Set, email string, role domain.Role, status domain.AccountStatus) *models.User {
	t.Helper()
	user := &models.User{
		ID:        uuid.New().String(),
		FirstName: "Test",
		LastName:  "User",
		Email:     email,
		Phone:     "+256700000000",
		Password:  "Secret@123",
		Role:      role,
		Status:    status,
	}
	if err := repos.Users.Create(context.Background(), user); err != nil {
		t.Fatalf("seed user %s: %v", email, err)
	}
	return user
}

func seedHostel(t *testing.T, repos *repositories.Set, name, price string, status domain.HostelStatus, ownerID *string) *models.Hostel {
	t.Helper()
	hostel := &models.Hostel{
		Name:     name,
		Price:    price,
		Location: "Arua Hill",
		Address:  "Plot 1, Arua",
		Capacity: 50,
		Status:   status,
		OwnerID:  ownerID,
	}
	if err := repos.Hostels.Create(context.Background(), hostel); err != nil {
		t.Fatalf("seed hostel %s: %v", name, err)
	}
	return hostel
}

func newTestAuthz(repos *repositories.Set) (*AuthorizationService, *SecurityLogService) {
	securityLog := NewSecurityLogService(repos.SecurityLogs)
	return NewAuthorizationService(repos.Users, repos.Hostels, securityLog), securityLog
}
