package user

type Permission string

const (
	// Attendance
	PermissionAttendanceCreate  Permission = "attendance.create"
	PermissionAttendanceViewOwn Permission = "attendance.view_own"
	PermissionAttendanceViewAll Permission = "attendance.view_all"

	// Late arrival
	PermissionLateRequestCreate  Permission = "late_request.create"
	PermissionLateRequestViewAll Permission = "late_request.view_all"
	PermissionLateRequestDecide  Permission = "late_request.decide"

	// Leave
	PermissionLeaveCreate  Permission = "leave.create"
	PermissionLeaveViewOwn Permission = "leave.view_own"
	PermissionLeaveViewAll Permission = "leave.view_all"
	PermissionLeaveApprove Permission = "leave.approve"

	// Dashboard
	PermissionDashboardViewOwn    Permission = "dashboard.view_own"
	PermissionDashboardViewSystem Permission = "dashboard.view_system"
)

var employeePermissions = []Permission{
	PermissionAttendanceCreate,
	PermissionAttendanceViewOwn,
	PermissionLateRequestCreate,
	PermissionLeaveCreate,
	PermissionLeaveViewOwn,
	PermissionDashboardViewOwn,
}

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleEmployee: employeePermissions,
	RoleAdmin: append([]Permission{
		PermissionAttendanceViewAll,
		PermissionLateRequestViewAll,
		PermissionLateRequestDecide,
		PermissionLeaveViewAll,
		PermissionLeaveApprove,
		PermissionDashboardViewSystem,
	}, employeePermissions...),
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
