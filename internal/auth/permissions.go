package auth

import "github.com/spec-kit/groundops-service/internal/domain"

// Permission names a capability a role may exercise.
type Permission string

const (
	PermManageStations    Permission = "stations:manage"
	PermManageStaff       Permission = "staff:manage"
	PermManageOperations  Permission = "operations:manage"
	PermCreateAssignments Permission = "assignments:create"
	PermReplaceStaff      Permission = "assignments:replace"
	PermViewSchedule      Permission = "schedule:view"
	PermUpdateOwnStatus   Permission = "assignments:update-own-status"
)

// rolePermissions is a pure static capability lookup. Roles are cumulative:
// each tier carries everything below it.
var rolePermissions = map[domain.StaffRole][]Permission{
	domain.StaffRoleWorker: {
		PermViewSchedule,
		PermUpdateOwnStatus,
	},
	domain.StaffRoleSupervisor: {
		PermViewSchedule,
		PermUpdateOwnStatus,
		PermCreateAssignments,
		PermReplaceStaff,
	},
	domain.StaffRoleManager: {
		PermViewSchedule,
		PermUpdateOwnStatus,
		PermCreateAssignments,
		PermReplaceStaff,
		PermManageOperations,
		PermManageStaff,
	},
	domain.StaffRoleAdmin: {
		PermViewSchedule,
		PermUpdateOwnStatus,
		PermCreateAssignments,
		PermReplaceStaff,
		PermManageOperations,
		PermManageStaff,
		PermManageStations,
	},
}

// PermissionsFor returns the capability set granted to a role.
func PermissionsFor(role domain.StaffRole) map[Permission]struct{} {
	perms := rolePermissions[role]
	set := make(map[Permission]struct{}, len(perms))
	for _, p := range perms {
		set[p] = struct{}{}
	}
	return set
}

// HasPermission reports whether the role grants the permission.
func HasPermission(role domain.StaffRole, perm Permission) bool {
	_, ok := PermissionsFor(role)[perm]
	return ok
}
