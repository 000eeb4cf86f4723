package domain

// Role represents a user role in the system
type Role string

const (
	RoleSuperAdmin  Role = "super_admin"
	RoleHostelAdmin Role = "hostel_admin"
	RoleUser        Role = "user"
)

// Valid reports whether the role is one of the closed set.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleHostelAdmin, RoleUser:
		return true
	}
	return false
}

// AccountStatus represents the lifecycle state of a user account
type AccountStatus string

const (
	StatusActive   AccountStatus = "active"
	StatusPending  AccountStatus = "pending"
	StatusInactive AccountStatus = "inactive"
)

// Valid reports whether the status is one of the closed set.
func (s AccountStatus) Valid() bool {
	switch s {
	case StatusActive, StatusPending, StatusInactive:
		return true
	}
	return false
}

// HostelStatus represents the publication state of a hostel
type HostelStatus string

const (
	HostelActive   HostelStatus = "active"
	HostelPending  HostelStatus = "pending"
	HostelInactive HostelStatus = "inactive"
)

// BookingStatus represents the state of a booking request
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// Valid reports whether the booking status is one of the closed set.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled:
		return true
	}
	return false
}

// Permission names a gated action. The set is closed; role grants are
// declared in the permission table below.
type Permission string

const (
	PermManageAllHostels Permission = "manage_all_hostels"
	PermManageOwnHostel  Permission = "manage_own_hostel"
	PermManageUsers      Permission = "manage_users"
	PermViewBookings     Permission = "view_bookings"
	PermManageBookings   Permission = "manage_bookings"
	PermExportData       Permission = "export_data"
	PermViewSecurityLogs Permission = "view_security_logs"
)

// AllPermissions lists every permission in the system.
var AllPermissions = []Permission{
	PermManageAllHostels,
	PermManageOwnHostel,
	PermManageUsers,
	PermViewBookings,
	PermManageBookings,
	PermExportData,
	PermViewSecurityLogs,
}

// rolePermissions is the declarative grant table. A super admin holds every
// permission; a hostel admin holds everything except manage_all_hostels;
// a student holds none.
var rolePermissions = map[Role]map[Permission]bool{
	RoleSuperAdmin: {
		PermManageAllHostels: true,
		PermManageOwnHostel:  true,
		PermManageUsers:      true,
		PermViewBookings:     true,
		PermManageBookings:   true,
		PermExportData:       true,
		PermViewSecurityLogs: true,
	},
	RoleHostelAdmin: {
		PermManageOwnHostel:  true,
		PermManageUsers:      true,
		PermViewBookings:     true,
		PermManageBookings:   true,
		PermExportData:       true,
		PermViewSecurityLogs: true,
	},
	RoleUser: {},
}

// RoleHasPermission consults the grant table. Unknown roles hold nothing.
func RoleHasPermission(role Role, perm Permission) bool {
	grants, ok := rolePermissions[role]
	if !ok {
		return false
	}
	return grants[perm]
}

// PermissionsForRole returns the granted permissions of a role in table order.
func PermissionsForRole(role Role) []Permission {
	grants, ok := rolePermissions[role]
	if !ok {
		return nil
	}
	perms := make([]Permission, 0, len(grants))
	for _, p := range AllPermissions {
		if grants[p] {
			perms = append(perms, p)
		}
	}
	return perms
}
