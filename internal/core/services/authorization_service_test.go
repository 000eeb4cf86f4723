package services

import (
	"context"
	"errors"
	"testing"

	"muni-hostelhub/internal/adapters/persistence/models"
	"muni-hostelhub/internal/core/domain"
)

func TestHasPermission(t *testing.T) {
	repos := newTestRepos(t)
	authz, _ := newTestAuthz(repos)

	super := &models.User{ID: "s1", Role: domain.RoleSuperAdmin}
	admin := &models.User{ID: "a1", Role: domain.RoleHostelAdmin}
	student := &models.User{ID: "u1", Role: domain.RoleUser}

	tests := []struct {
		name string
		user *models.User
		perm domain.Permission
		want bool
	}{
		{"super manages all hostels", super, domain.PermManageAllHostels, true},
		{"super views security logs", super, domain.PermViewSecurityLogs, true},
		{"hostel admin denied manage all", admin, domain.PermManageAllHostels, false},
		{"hostel admin manages own", admin, domain.PermManageOwnHostel, true},
		{"hostel admin manages bookings", admin, domain.PermManageBookings, true},
		{"hostel admin exports", admin, domain.PermExportData, true},
		{"student holds nothing", student, domain.PermViewBookings, false},
		{"student cannot export", student, domain.PermExportData, false},
		{"anonymous holds nothing", nil, domain.PermManageOwnHostel, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := authz.HasPermission(tt.user, tt.perm); got != tt.want {
				t.Errorf("HasPermission = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanAccessHostel(t *testing.T) {
	repos := newTestRepos(t)
	authz, _ := newTestAuthz(repos)

	ownerID := "owner-1"
	hostel := &models.Hostel{ID: 1, OwnerID: &ownerID}
	unowned := &models.Hostel{ID: 2}

	super := &models.User{ID: "s1", Role: domain.RoleSuperAdmin}
	owner := &models.User{ID: ownerID, Role: domain.RoleHostelAdmin}
	other := &models.User{ID: "other", Role: domain.RoleHostelAdmin}
	student := &models.User{ID: "u1", Role: domain.RoleUser}

	if !authz.CanAccessHostel(super, hostel) {
		t.Error("super admin should manage any hostel")
	}
	if !authz.CanAccessHostel(owner, hostel) {
		t.Error("owner should manage their hostel")
	}
	if authz.CanAccessHostel(other, hostel) {
		t.Error("hostel admin should not manage someone else's hostel")
	}
	if authz.CanAccessHostel(other, unowned) {
		t.Error("hostel admin should not manage an unowned hostel")
	}
	if authz.CanAccessHostel(student, hostel) {
		t.Error("student should not manage hostels")
	}
	if authz.CanAccessHostel(nil, hostel) {
		t.Error("anonymous should not manage hostels")
	}
}

func TestFilterHostelsByRole(t *testing.T) {
	repos := newTestRepos(t)
	authz, _ := newTestAuthz(repos)

	adminID := "admin-1"
	hostels := []*models.Hostel{
		{ID: 1, Status: domain.HostelActive},
		{ID: 2, Status: domain.HostelPending, OwnerID: &adminID},
		{ID: 3, Status: domain.HostelInactive},
	}

	t.Run("anonymous sees active only", func(t *testing.T) {
		got := authz.FilterHostelsByRole(nil, hostels)
		if len(got) != 1 || got[0].ID != 1 {
			t.Errorf("got %d hostels, want only the active one", len(got))
		}
	})

	t.Run("student sees active only", func(t *testing.T) {
		student := &models.User{ID: "u1", Role: domain.RoleUser}
		got := authz.FilterHostelsByRole(student, hostels)
		if len(got) != 1 || got[0].ID != 1 {
			t.Errorf("got %d hostels, want only the active one", len(got))
		}
	})

	t.Run("hostel admin sees own regardless of status", func(t *testing.T) {
		admin := &models.User{ID: adminID, Role: domain.RoleHostelAdmin}
		got := authz.FilterHostelsByRole(admin, hostels)
		if len(got) != 1 || got[0].ID != 2 {
			t.Errorf("got %d hostels, want only the owned pending one", len(got))
		}
	})

	t.Run("super admin sees everything", func(t *testing.T) {
		super := &models.User{ID: "s1", Role: domain.RoleSuperAdmin}
		if got := authz.FilterHostelsByRole(super, hostels); len(got) != 3 {
			t.Errorf("got %d hostels, want 3", len(got))
		}
	})
}

func TestFilterBookingsByRole(t *testing.T) {
	repos := newTestRepos(t)
	authz, _ := newTestAuthz(repos)
	ctx := context.Background()

	admin := seedUser(t, repos, "admin@muni.test", domain.RoleHostelAdmin, domain.StatusActive)
	owned := seedHostel(t, repos, "Owned Hostel", "250,000", domain.HostelActive, &admin.ID)
	foreign := seedHostel(t, repos, "Other Hostel", "300,000", domain.HostelActive, nil)

	bookings := []*models.Booking{
		{ID: "BK-AAAA0001", UserID: "student-1", HostelID: owned.ID},
		{ID: "BK-AAAA0002", UserID: "student-2", HostelID: foreign.ID},
		{ID: "BK-AAAA0003", UserID: "student-1", HostelID: foreign.ID},
	}

	t.Run("anonymous sees nothing", func(t *testing.T) {
		got, err := authz.FilterBookingsByRole(ctx, nil, bookings)
		if err != nil {
			t.Fatalf("filter: %v", err)
		}
		if len(got) != 0 {
			t.Errorf("got %d bookings, want 0", len(got))
		}
	})

	t.Run("student sees own bookings", func(t *testing.T) {
		student := &models.User{ID: "student-1", Role: domain.RoleUser}
		got, err := authz.FilterBookingsByRole(ctx, student, bookings)
		if err != nil {
			t.Fatalf("filter: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("got %d bookings, want 2", len(got))
		}
		for _, b := range got {
			if b.UserID != "student-1" {
				t.Errorf("leaked booking %s of %s", b.ID, b.UserID)
			}
		}
	})

	t.Run("hostel admin sees bookings of owned hostel", func(t *testing.T) {
		got, err := authz.FilterBookingsByRole(ctx, admin, bookings)
		if err != nil {
			t.Fatalf("filter: %v", err)
		}
		if len(got) != 1 || got[0].HostelID != owned.ID {
			t.Errorf("got %d bookings, want only the owned hostel's", len(got))
		}
	})

	t.Run("super admin sees everything", func(t *testing.T) {
		super := &models.User{ID: "s1", Role: domain.RoleSuperAdmin}
		got, err := authz.FilterBookingsByRole(ctx, super, bookings)
		if err != nil {
			t.Fatalf("filter: %v", err)
		}
		if len(got) != 3 {
			t.Errorf("got %d bookings, want 3", len(got))
		}
	})
}

func TestUpdateUserRole(t *testing.T) {
	repos := newTestRepos(t)
	authz, _ := newTestAuthz(repos)
	ctx := context.Background()

	super := seedUser(t, repos, "root@muni.test", domain.RoleSuperAdmin, domain.StatusActive)
	student := seedUser(t, repos, "student@muni.test", domain.RoleUser, domain.StatusActive)
	otherSuper := seedUser(t, repos, "root2@muni.test", domain.RoleSuperAdmin, domain.StatusActive)

	t.Run("promote student to hostel admin", func(t *testing.T) {
		updated, err := authz.UpdateUserRole(ctx, super, student.ID, domain.RoleHostelAdmin)
		if err != nil {
			t.Fatalf("update role: %v", err)
		}
		if updated.Role != domain.RoleHostelAdmin {
			t.Errorf("role = %s, want hostel_admin", updated.Role)
		}
		if updated.Permissions == "" {
			t.Error("permission set was not rewritten from the role table")
		}
	})

	t.Run("super admin target is untouchable", func(t *testing.T) {
		_, err := authz.UpdateUserRole(ctx, super, otherSuper.ID, domain.RoleUser)
		if !errors.Is(err, domain.ErrInsufficientPrivilege) {
			t.Errorf("err = %v, want ErrInsufficientPrivilege", err)
		}
	})

	t.Run("nobody is promoted to super admin", func(t *testing.T) {
		_, err := authz.UpdateUserRole(ctx, super, student.ID, domain.RoleSuperAdmin)
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("err = %v, want ErrValidation", err)
		}
	})

	t.Run("student actor is denied", func(t *testing.T) {
		actor := &models.User{ID: "u9", Role: domain.RoleUser}
		_, err := authz.UpdateUserRole(ctx, actor, student.ID, domain.RoleHostelAdmin)
		if !errors.Is(err, domain.ErrInsufficientPrivilege) {
			t.Errorf("err = %v, want ErrInsufficientPrivilege", err)
		}
	})

	t.Run("hostel admin actor is denied", func(t *testing.T) {
		actor := seedUser(t, repos, "admin@muni.test", domain.RoleHostelAdmin, domain.StatusActive)
		_, err := authz.UpdateUserRole(ctx, actor, student.ID, domain.RoleUser)
		if !errors.Is(err, domain.ErrInsufficientPrivilege) {
			t.Fatalf("err = %v, want ErrInsufficientPrivilege", err)
		}

		target, err := repos.Users.GetByID(ctx, student.ID)
		if err != nil {
			t.Fatalf("get target: %v", err)
		}
		if target.Role != domain.RoleHostelAdmin {
			t.Errorf("target role = %s, the denied call must not mutate it", target.Role)
		}
	})
}

func TestAssignAndUnassignHostel(t *testing.T) {
	repos := newTestRepos(t)
	authz, _ := newTestAuthz(repos)
	ctx := context.Background()

	super := seedUser(t, repos, "root@muni.test", domain.RoleSuperAdmin, domain.StatusActive)
	admin := seedUser(t, repos, "admin@muni.test", domain.RoleHostelAdmin, domain.StatusActive)
	student := seedUser(t, repos, "student@muni.test", domain.RoleUser, domain.StatusActive)
	hostel := seedHostel(t, repos, "Green Valley Hostel", "250,000", domain.HostelActive, nil)

	t.Run("target must be a hostel admin", func(t *testing.T) {
		err := authz.AssignHostelToAdmin(ctx, super, student.ID, hostel.ID)
		if !errors.Is(err, domain.ErrNotHostelAdmin) {
			t.Errorf("err = %v, want ErrNotHostelAdmin", err)
		}
	})

	t.Run("assign links both sides", func(t *testing.T) {
		if err := authz.AssignHostelToAdmin(ctx, super, admin.ID, hostel.ID); err != nil {
			t.Fatalf("assign: %v", err)
		}

		gotHostel, err := repos.Hostels.GetByID(ctx, hostel.ID)
		if err != nil {
			t.Fatalf("get hostel: %v", err)
		}
		if gotHostel.OwnerID == nil || *gotHostel.OwnerID != admin.ID {
			t.Error("hostel owner not set")
		}

		gotAdmin, err := repos.Users.GetByID(ctx, admin.ID)
		if err != nil {
			t.Fatalf("get admin: %v", err)
		}
		if gotAdmin.HostelID == nil || *gotAdmin.HostelID != hostel.ID {
			t.Error("admin hostel reference not set")
		}
		if gotAdmin.HostelName != hostel.Name {
			t.Errorf("admin hostel name = %q, want %q", gotAdmin.HostelName, hostel.Name)
		}
	})

	t.Run("an owned hostel cannot be reassigned", func(t *testing.T) {
		other := seedUser(t, repos, "admin2@muni.test", domain.RoleHostelAdmin, domain.StatusActive)
		err := authz.AssignHostelToAdmin(ctx, super, other.ID, hostel.ID)
		if !errors.Is(err, domain.ErrHostelOwned) {
			t.Errorf("err = %v, want ErrHostelOwned", err)
		}
	})

	t.Run("unassign releases both sides", func(t *testing.T) {
		if err := authz.UnassignHostel(ctx, super, hostel.ID); err != nil {
			t.Fatalf("unassign: %v", err)
		}

		gotHostel, err := repos.Hostels.GetByID(ctx, hostel.ID)
		if err != nil {
			t.Fatalf("get hostel: %v", err)
		}
		if gotHostel.OwnerID != nil {
			t.Error("hostel owner not cleared")
		}

		gotAdmin, err := repos.Users.GetByID(ctx, admin.ID)
		if err != nil {
			t.Fatalf("get admin: %v", err)
		}
		if gotAdmin.HostelID != nil || gotAdmin.HostelName != "" {
			t.Error("admin hostel reference not cleared")
		}
	})

	t.Run("unassign of an unowned hostel fails", func(t *testing.T) {
		err := authz.UnassignHostel(ctx, super, hostel.ID)
		if !errors.Is(err, domain.ErrHostelNotOwned) {
			t.Errorf("err = %v, want ErrHostelNotOwned", err)
		}
	})

	t.Run("hostel admin actor is denied", func(t *testing.T) {
		err := authz.AssignHostelToAdmin(ctx, admin, admin.ID, hostel.ID)
		if !errors.Is(err, domain.ErrInsufficientPrivilege) {
			t.Errorf("err = %v, want ErrInsufficientPrivilege", err)
		}
	})
}
