package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMissingCertifications(t *testing.T) {
	staff := &StaffMember{Certifications: []string{"ramp_safety"}}

	assert.Nil(t, staff.MissingCertifications(nil))
	assert.Empty(t, staff.MissingCertifications([]string{"ramp_safety"}))
	assert.Equal(t, []string{"customs_clearance", "deicing"},
		staff.MissingCertifications([]string{"ramp_safety", "customs_clearance", "deicing"}))
}

func TestHasSkills(t *testing.T) {
	staff := &StaffMember{Skills: []string{"baggage_loading", "crowd_management"}}

	assert.True(t, staff.HasSkills(nil))
	assert.True(t, staff.HasSkills([]string{"crowd_management"}))
	assert.False(t, staff.HasSkills([]string{"crowd_management", "deicing"}))
}

func TestWorksShift(t *testing.T) {
	staff := &StaffMember{AvailableShifts: []ShiftWindow{ShiftMorning}}
	assert.True(t, staff.WorksShift(ShiftMorning))
	assert.False(t, staff.WorksShift(ShiftNight))

	// No declared shifts means no shift matches.
	none := &StaffMember{}
	assert.False(t, none.WorksShift(ShiftMorning))
}

func TestHourCapsFallBackToDefaults(t *testing.T) {
	staff := &StaffMember{}
	assert.Equal(t, DefaultMaxWeeklyHours, staff.WeeklyCap())
	assert.Equal(t, DefaultMaxDailyHours, staff.DailyCap())

	custom := &StaffMember{MaxWeeklyHours: 30, MaxDailyHours: 6}
	assert.Equal(t, 30.0, custom.WeeklyCap())
	assert.Equal(t, 6.0, custom.DailyCap())
}
