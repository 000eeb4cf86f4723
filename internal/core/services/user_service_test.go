package services

import (
	"context"
	"errors"
	"testing"

	"muni-hostelhub/internal/core/domain"
)

func TestAdminCreateUser(t *testing.T) {
	repos := newTestRepos(t)
	securityLog := NewSecurityLogService(repos.SecurityLogs)
	svc := NewUserService(repos.Users, securityLog)
	ctx := context.Background()

	super := seedUser(t, repos, "root@muni.test", domain.RoleSuperAdmin, domain.StatusActive)

	t.Run("created account starts pending with a temp password", func(t *testing.T) {
		created, err := svc.CreateUser(ctx, super, &CreateUserInput{
			FirstName: "Drasi",
			LastName:  "Peter",
			Email:     "peter@muni.test",
			Phone:     "+256704444444",
			Role:      "hostel_admin",
		})
		if err != nil {
			t.Fatalf("create user: %v", err)
		}
		if created.User.Status != domain.StatusPending {
			t.Errorf("status = %s, want pending", created.User.Status)
		}
		if len(created.TempPassword) != 12 {
			t.Errorf("temp password length = %d, want 12", len(created.TempPassword))
		}
	})

	t.Run("super admin role cannot be minted", func(t *testing.T) {
		_, err := svc.CreateUser(ctx, super, &CreateUserInput{
			Email: "boss@muni.test", Role: "super_admin",
		})
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("err = %v, want ErrValidation", err)
		}
	})

	t.Run("duplicate email writes nothing", func(t *testing.T) {
		before, err := repos.Users.List(ctx)
		if err != nil {
			t.Fatalf("list: %v", err)
		}

		_, err = svc.CreateUser(ctx, super, &CreateUserInput{
			Email: "peter@muni.test", Role: "user",
		})
		if !errors.Is(err, domain.ErrDuplicateEmail) {
			t.Fatalf("err = %v, want ErrDuplicateEmail", err)
		}

		after, err := repos.Users.List(ctx)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(after) != len(before) {
			t.Error("rejected create wrote a record")
		}
	})
}

func TestListUsersFiltering(t *testing.T) {
	repos := newTestRepos(t)
	securityLog := NewSecurityLogService(repos.SecurityLogs)
	svc := NewUserService(repos.Users, securityLog)
	ctx := context.Background()

	seedUser(t, repos, "root@muni.test", domain.RoleSuperAdmin, domain.StatusActive)
	seedUser(t, repos, "admin@muni.test", domain.RoleHostelAdmin, domain.StatusPending)
	student := seedUser(t, repos, "okello@muni.test", domain.RoleUser, domain.StatusActive)
	student.StudentID = "MU/2024/042"
	if err := repos.Users.Update(ctx, student); err != nil {
		t.Fatalf("update: %v", err)
	}

	t.Run("by role", func(t *testing.T) {
		got, err := svc.ListUsers(ctx, &ListUsersInput{Role: "hostel_admin"})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(got) != 1 || got[0].Email != "admin@muni.test" {
			t.Errorf("got %d users", len(got))
		}
	})

	t.Run("by status", func(t *testing.T) {
		got, err := svc.ListUsers(ctx, &ListUsersInput{Status: "pending"})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(got) != 1 {
			t.Errorf("got %d users, want 1 pending", len(got))
		}
	})

	t.Run("search matches student ID", func(t *testing.T) {
		got, err := svc.ListUsers(ctx, &ListUsersInput{Search: "2024/042"})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(got) != 1 || got[0].Email != "okello@muni.test" {
			t.Errorf("got %d users", len(got))
		}
	})
}

func TestUserStats(t *testing.T) {
	repos := newTestRepos(t)
	securityLog := NewSecurityLogService(repos.SecurityLogs)
	svc := NewUserService(repos.Users, securityLog)
	ctx := context.Background()

	seedUser(t, repos, "root@muni.test", domain.RoleSuperAdmin, domain.StatusActive)
	seedUser(t, repos, "admin@muni.test", domain.RoleHostelAdmin, domain.StatusPending)
	seedUser(t, repos, "s1@muni.test", domain.RoleUser, domain.StatusActive)
	seedUser(t, repos, "s2@muni.test", domain.RoleUser, domain.StatusInactive)

	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}

	if stats.Total != 4 {
		t.Errorf("total = %d, want 4", stats.Total)
	}
	if stats.SuperAdmins != 1 || stats.HostelAdmins != 1 || stats.Students != 2 {
		t.Errorf("role counts = %d/%d/%d, want 1/1/2", stats.SuperAdmins, stats.HostelAdmins, stats.Students)
	}
	if stats.Active != 2 || stats.Pending != 1 || stats.Inactive != 1 {
		t.Errorf("status counts = %d/%d/%d, want 2/1/1", stats.Active, stats.Pending, stats.Inactive)
	}
}

func TestSetStatus(t *testing.T) {
	repos := newTestRepos(t)
	securityLog := NewSecurityLogService(repos.SecurityLogs)
	svc := NewUserService(repos.Users, securityLog)
	ctx := context.Background()

	super := seedUser(t, repos, "root@muni.test", domain.RoleSuperAdmin, domain.StatusActive)
	otherSuper := seedUser(t, repos, "root2@muni.test", domain.RoleSuperAdmin, domain.StatusActive)
	applicant := seedUser(t, repos, "admin@muni.test", domain.RoleHostelAdmin, domain.StatusPending)

	t.Run("approve a pending application", func(t *testing.T) {
		updated, err := svc.SetStatus(ctx, super, applicant.ID, domain.StatusActive)
		if err != nil {
			t.Fatalf("set status: %v", err)
		}
		if updated.Status != domain.StatusActive {
			t.Errorf("status = %s, want active", updated.Status)
		}
	})

	t.Run("super admin accounts are untouchable", func(t *testing.T) {
		_, err := svc.SetStatus(ctx, super, otherSuper.ID, domain.StatusInactive)
		if !errors.Is(err, domain.ErrInsufficientPrivilege) {
			t.Errorf("err = %v, want ErrInsufficientPrivilege", err)
		}
	})

	t.Run("invalid status", func(t *testing.T) {
		_, err := svc.SetStatus(ctx, super, applicant.ID, domain.AccountStatus("banned"))
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("err = %v, want ErrValidation", err)
		}
	})
}

func TestSetPermissions(t *testing.T) {
	repos := newTestRepos(t)
	securityLog := NewSecurityLogService(repos.SecurityLogs)
	svc := NewUserService(repos.Users, securityLog)
	ctx := context.Background()

	super := seedUser(t, repos, "root@muni.test", domain.RoleSuperAdmin, domain.StatusActive)
	admin := seedUser(t, repos, "admin@muni.test", domain.RoleHostelAdmin, domain.StatusActive)

	t.Run("stores the given list", func(t *testing.T) {
		updated, err := svc.SetPermissions(ctx, super, admin.ID, []string{"view_bookings", "manage_bookings"})
		if err != nil {
			t.Fatalf("set permissions: %v", err)
		}
		if updated.ID != admin.ID {
			t.Errorf("updated wrong user")
		}

		got, err := repos.Users.GetByID(ctx, admin.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.Permissions != "view_bookings,manage_bookings" {
			t.Errorf("permissions = %q", got.Permissions)
		}
	})

	t.Run("unknown permission name", func(t *testing.T) {
		_, err := svc.SetPermissions(ctx, super, admin.ID, []string{"rule_the_world"})
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("err = %v, want ErrValidation", err)
		}
	})
}
