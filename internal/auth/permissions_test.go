package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/groundops-service/internal/domain"
)

func TestRolePermissionsAreCumulative(t *testing.T) {
	assert.True(t, HasPermission(domain.StaffRoleWorker, PermViewSchedule))
	assert.False(t, HasPermission(domain.StaffRoleWorker, PermCreateAssignments))

	assert.True(t, HasPermission(domain.StaffRoleSupervisor, PermCreateAssignments))
	assert.True(t, HasPermission(domain.StaffRoleSupervisor, PermReplaceStaff))
	assert.False(t, HasPermission(domain.StaffRoleSupervisor, PermManageStaff))

	assert.True(t, HasPermission(domain.StaffRoleManager, PermManageStaff))
	assert.True(t, HasPermission(domain.StaffRoleManager, PermManageOperations))
	assert.False(t, HasPermission(domain.StaffRoleManager, PermManageStations))

	assert.True(t, HasPermission(domain.StaffRoleAdmin, PermManageStations))
}

func TestPermissionsForUnknownRole(t *testing.T) {
	assert.Empty(t, PermissionsFor(domain.StaffRole("INTERN")))
}

func TestEachTierCarriesTheLowerTier(t *testing.T) {
	tiers := []domain.StaffRole{
		domain.StaffRoleWorker,
		domain.StaffRoleSupervisor,
		domain.StaffRoleManager,
		domain.StaffRoleAdmin,
	}
	for i := 1; i < len(tiers); i++ {
		lower := PermissionsFor(tiers[i-1])
		higher := PermissionsFor(tiers[i])
		for perm := range lower {
			assert.Contains(t, higher, perm, "%s should carry %s from %s", tiers[i], perm, tiers[i-1])
		}
	}
}
