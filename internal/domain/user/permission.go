package user

type Permission string

const (
	// Attendance
	PermissionAttendanceCreate  Permission = "attendance.create"
	PermissionAttendanceViewOwn Permission = "attendance.view_own"
	PermissionAttendanceViewAll Permission = "attendance.view_all"

	// Leave
	PermissionLeaveCreate  Permission = "leave.create"
	PermissionLeaveViewOwn Permission = "leave.view_own"
	PermissionLeaveViewAll Permission = "leave.view_all"
	PermissionLeaveApprove Permission = "leave.approve"

	// Reporting
	PermissionReportsView   Permission = "reports.view"
	PermissionDashboardView Permission = "dashboard.view"
)

// RoleConfig is the role→permission table. It is built once at startup and
// injected into the middleware; handlers never consult role literals.
type RoleConfig struct {
	grants map[Role][]Permission
}

func NewRoleConfig(grants map[Role][]Permission) *RoleConfig {
	return &RoleConfig{grants: grants}
}

// Has checks whether role carries permission.
func (c *RoleConfig) Has(role Role, permission Permission) bool {
	for _, p := range c.grants[role] {
		if p == permission {
			return true
		}
	}
	return false
}

// DefaultGrants is the stock permission table. developer and superadmin see
// everything; admin runs day-to-day approvals; employee acts on own records.
func DefaultGrants() map[Role][]Permission {
	all := []Permission{
		PermissionAttendanceCreate,
		PermissionAttendanceViewOwn,
		PermissionAttendanceViewAll,
		PermissionLeaveCreate,
		PermissionLeaveViewOwn,
		PermissionLeaveViewAll,
		PermissionLeaveApprove,
		PermissionReportsView,
		PermissionDashboardView,
	}
	return map[Role][]Permission{
		RoleDeveloper:  all,
		RoleSuperadmin: all,
		RoleAdmin: {
			PermissionAttendanceCreate,
			PermissionAttendanceViewOwn,
			PermissionAttendanceViewAll,
			PermissionLeaveCreate,
			PermissionLeaveViewOwn,
			PermissionLeaveViewAll,
			PermissionLeaveApprove,
			PermissionReportsView,
			PermissionDashboardView,
		},
		RoleEmployee: {
			PermissionAttendanceCreate,
			PermissionAttendanceViewOwn,
			PermissionLeaveCreate,
			PermissionLeaveViewOwn,
		},
	}
}
