package domain

import "testing"

func TestRoleHasPermission(t *testing.T) {
	for _, p := range AllPermissions {
		if !RoleHasPermission(RoleSuperAdmin, p) {
			t.Errorf("super admin denied %s", p)
		}
	}

	if RoleHasPermission(RoleHostelAdmin, PermManageAllHostels) {
		t.Error("hostel admin granted manage_all_hostels")
	}
	for _, p := range AllPermissions {
		if p == PermManageAllHostels {
			continue
		}
		if !RoleHasPermission(RoleHostelAdmin, p) {
			t.Errorf("hostel admin denied %s", p)
		}
	}

	for _, p := range AllPermissions {
		if RoleHasPermission(RoleUser, p) {
			t.Errorf("student granted %s", p)
		}
	}

	if RoleHasPermission(Role("ghost"), PermViewBookings) {
		t.Error("unknown role granted a permission")
	}
}

func TestPermissionsForRole(t *testing.T) {
	if got := PermissionsForRole(RoleSuperAdmin); len(got) != len(AllPermissions) {
		t.Errorf("super admin has %d permissions, want %d", len(got), len(AllPermissions))
	}
	if got := PermissionsForRole(RoleHostelAdmin); len(got) != len(AllPermissions)-1 {
		t.Errorf("hostel admin has %d permissions, want %d", len(got), len(AllPermissions)-1)
	}
	if got := PermissionsForRole(RoleUser); len(got) != 0 {
		t.Errorf("student has %d permissions, want 0", len(got))
	}
	if got := PermissionsForRole(Role("ghost")); got != nil {
		t.Errorf("unknown role has %v, want nil", got)
	}
}

func TestValidators(t *testing.T) {
	if !Role("hostel_admin").Valid() || Role("admin").Valid() {
		t.Error("role validation wrong")
	}
	if !AccountStatus("pending").Valid() || AccountStatus("banned").Valid() {
		t.Error("status validation wrong")
	}
	if !BookingStatus("confirmed").Valid() || BookingStatus("done").Valid() {
		t.Error("booking status validation wrong")
	}
}
