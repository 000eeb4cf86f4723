package services

import (
	"context"
	"errors"
	"testing"

	"muni-hostelhub/internal/adapters/persistence/repositories"
	"muni-hostelhub/internal/core/domain"
)

func newTestHostelService(t *testing.T, repos *repositories.Set) *HostelService {
	t.Helper()
	authz, securityLog := newTestAuthz(repos)
	return NewHostelService(repos.Hostels, repos.Users, authz, securityLog)
}

func TestCreateHostel(t *testing.T) {
	repos := newTestRepos(t)
	svc := newTestHostelService(t, repos)
	ctx := context.Background()

	super := seedUser(t, repos, "root@muni.test", domain.RoleSuperAdmin, domain.StatusActive)
	admin := seedUser(t, repos, "admin@muni.test", domain.RoleHostelAdmin, domain.StatusActive)
	student := seedUser(t, repos, "student@muni.test", domain.RoleUser, domain.StatusActive)

	t.Run("super admin creates an active unowned hostel", func(t *testing.T) {
		hostel, err := svc.Create(ctx, super, &CreateHostelInput{
			Name:     "Green Valley Hostel",
			Price:    "250000",
			Location: "Arua Hill",
			Address:  "Plot 14, Arua",
			Capacity: 120,
		})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if hostel.Status != domain.HostelActive {
			t.Errorf("status = %s, want active", hostel.Status)
		}
		if hostel.OwnerID != nil {
			t.Error("super admin listing should be unowned")
		}
		if hostel.Price != "250,000" {
			t.Errorf("price = %q, want normalized 250,000", hostel.Price)
		}
	})

	t.Run("hostel admin is denied", func(t *testing.T) {
		_, err := svc.Create(ctx, admin, &CreateHostelInput{
			Name:     "Campus View Hostel",
			Price:    "300,000",
			Location: "Muni Park",
			Address:  "University Road, Arua",
			Capacity: 80,
		})
		if !errors.Is(err, domain.ErrInsufficientPrivilege) {
			t.Errorf("err = %v, want ErrInsufficientPrivilege", err)
		}

		hostels, err := repos.Hostels.List(ctx)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(hostels) != 1 {
			t.Errorf("got %d hostels, want only the super admin's", len(hostels))
		}
	})

	t.Run("student is denied", func(t *testing.T) {
		_, err := svc.Create(ctx, student, &CreateHostelInput{
			Name:     "Nope",
			Price:    "100,000",
			Location: "Arua",
			Address:  "Arua",
			Capacity: 10,
		})
		if !errors.Is(err, domain.ErrInsufficientPrivilege) {
			t.Errorf("err = %v, want ErrInsufficientPrivilege", err)
		}
	})

	t.Run("malformed price", func(t *testing.T) {
		_, err := svc.Create(ctx, super, &CreateHostelInput{
			Name:     "Bad Price",
			Price:    "cheap",
			Location: "Arua",
			Address:  "Arua",
			Capacity: 10,
		})
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("err = %v, want ErrValidation", err)
		}
	})
}

func TestUpdateHostel(t *testing.T) {
	repos := newTestRepos(t)
	svc := newTestHostelService(t, repos)
	ctx := context.Background()

	admin := seedUser(t, repos, "admin@muni.test", domain.RoleHostelAdmin, domain.StatusActive)
	other := seedUser(t, repos, "admin2@muni.test", domain.RoleHostelAdmin, domain.StatusActive)
	hostel := seedHostel(t, repos, "Old Name", "200,000", domain.HostelActive, &admin.ID)

	admin.HostelID = &hostel.ID
	admin.HostelName = hostel.Name
	if err := repos.Users.Update(ctx, admin); err != nil {
		t.Fatalf("link admin: %v", err)
	}

	t.Run("partial update touches only the given fields", func(t *testing.T) {
		name := "Student Comfort Hostel"
		price := "220000"
		updated, err := svc.Update(ctx, admin, hostel.ID, &UpdateHostelInput{Name: &name, Price: &price})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if updated.Name != name {
			t.Errorf("name = %q, want %q", updated.Name, name)
		}
		if updated.Price != "220,000" {
			t.Errorf("price = %q, want 220,000", updated.Price)
		}
		if updated.Location != hostel.Location {
			t.Error("untouched field changed")
		}
		if updated.UpdatedBy == nil || *updated.UpdatedBy != admin.ID {
			t.Error("updated_by not recorded")
		}

		// The owner's denormalized hostel name follows the rename
		gotAdmin, err := repos.Users.GetByID(ctx, admin.ID)
		if err != nil {
			t.Fatalf("get admin: %v", err)
		}
		if gotAdmin.HostelName != name {
			t.Errorf("owner hostel name = %q, want %q", gotAdmin.HostelName, name)
		}
	})

	t.Run("foreign hostel admin is denied", func(t *testing.T) {
		name := "Hijack"
		_, err := svc.Update(ctx, other, hostel.ID, &UpdateHostelInput{Name: &name})
		if !errors.Is(err, domain.ErrInsufficientPrivilege) {
			t.Errorf("err = %v, want ErrInsufficientPrivilege", err)
		}
	})

	t.Run("invalid status value", func(t *testing.T) {
		status := "archived"
		_, err := svc.Update(ctx, admin, hostel.ID, &UpdateHostelInput{Status: &status})
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("err = %v, want ErrValidation", err)
		}
	})
}

func TestDeleteHostel(t *testing.T) {
	repos := newTestRepos(t)
	svc := newTestHostelService(t, repos)
	ctx := context.Background()

	super := seedUser(t, repos, "root@muni.test", domain.RoleSuperAdmin, domain.StatusActive)
	admin := seedUser(t, repos, "admin@muni.test", domain.RoleHostelAdmin, domain.StatusActive)
	hostel := seedHostel(t, repos, "Doomed Hostel", "150,000", domain.HostelActive, &admin.ID)

	admin.HostelID = &hostel.ID
	admin.HostelName = hostel.Name
	if err := repos.Users.Update(ctx, admin); err != nil {
		t.Fatalf("link admin: %v", err)
	}

	t.Run("hostel admin cannot delete", func(t *testing.T) {
		if err := svc.Delete(ctx, admin, hostel.ID); !errors.Is(err, domain.ErrInsufficientPrivilege) {
			t.Errorf("err = %v, want ErrInsufficientPrivilege", err)
		}
	})

	t.Run("super admin delete releases the owner", func(t *testing.T) {
		if err := svc.Delete(ctx, super, hostel.ID); err != nil {
			t.Fatalf("delete: %v", err)
		}

		if _, err := repos.Hostels.GetByID(ctx, hostel.ID); !errors.Is(err, repositories.ErrNotFound) {
			t.Error("hostel still present")
		}

		gotAdmin, err := repos.Users.GetByID(ctx, admin.ID)
		if err != nil {
			t.Fatalf("get admin: %v", err)
		}
		if gotAdmin.HostelID != nil || gotAdmin.HostelName != "" {
			t.Error("owner reference not released")
		}
	})

	t.Run("missing hostel", func(t *testing.T) {
		if err := svc.Delete(ctx, super, 9999); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})
}

func TestListHostels(t *testing.T) {
	repos := newTestRepos(t)
	svc := newTestHostelService(t, repos)
	ctx := context.Background()

	student := seedUser(t, repos, "student@muni.test", domain.RoleUser, domain.StatusActive)
	seedHostel(t, repos, "Green Valley Hostel", "250,000", domain.HostelActive, nil)
	seedHostel(t, repos, "Campus View Hostel", "300,000", domain.HostelActive, nil)
	seedHostel(t, repos, "Hidden Hostel", "100,000", domain.HostelPending, nil)

	t.Run("anonymous callers get no contact details", func(t *testing.T) {
		got, err := svc.List(ctx, nil, &ListHostelsInput{})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("got %d hostels, want 2 active", len(got))
		}
		for _, h := range got {
			if h.Address != "" || h.Phone != "" {
				t.Error("contact details leaked to anonymous caller")
			}
		}
	})

	t.Run("authenticated callers get contact details", func(t *testing.T) {
		got, err := svc.List(ctx, student, &ListHostelsInput{})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(got) == 0 || got[0].Address == "" {
			t.Error("contact details missing for authenticated caller")
		}
	})

	t.Run("search over name and location", func(t *testing.T) {
		got, err := svc.List(ctx, student, &ListHostelsInput{Search: "campus"})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(got) != 1 || got[0].Name != "Campus View Hostel" {
			t.Errorf("search returned %d hostels", len(got))
		}
	})
}

func TestGetHostelVisibility(t *testing.T) {
	repos := newTestRepos(t)
	svc := newTestHostelService(t, repos)
	ctx := context.Background()

	admin := seedUser(t, repos, "admin@muni.test", domain.RoleHostelAdmin, domain.StatusActive)
	student := seedUser(t, repos, "student@muni.test", domain.RoleUser, domain.StatusActive)
	pending := seedHostel(t, repos, "Pending Hostel", "200,000", domain.HostelPending, &admin.ID)

	if _, err := svc.Get(ctx, admin, pending.ID); err != nil {
		t.Errorf("owner denied their pending hostel: %v", err)
	}
	if _, err := svc.Get(ctx, student, pending.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("student err = %v, want ErrNotFound", err)
	}
	if _, err := svc.Get(ctx, nil, pending.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("anonymous err = %v, want ErrNotFound", err)
	}
}
