package payroll

import (
	"testing"

	"github.com/Pydah-Soft-Projects/li-hrms-sub004/internal/domain/attendance"
	"github.com/Pydah-Soft-Projects/li-hrms-sub004/internal/domain/employee"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeAttendanceBalancesToMonth(t *testing.T) {
	agg := attendance.MonthlyAggregate{
		EmployeeID:    "emp-1",
		Month:         "2026-07",
		TotalDays:     31,
		PresentDays:   20,
		ODDays:        2,
		PaidLeaveDays: 1,
		WeeklyOffs:    4,
		Holidays:      2,
	}

	sum := NormalizeAttendance(agg, employee.CompensationProfile{}, 30)

	assert.Equal(t, 30.0, sum.DaysInMonth)
	assert.Equal(t, 22.0, sum.PayableShifts)
	// 30 - 20 - 4 - 2 - 1: on-duty days do not reduce the absent balance.
	assert.Equal(t, 3.0, sum.AbsentDays)
}

func TestNormalizeAttendanceFallsBackToAggregateDays(t *testing.T) {
	agg := attendance.MonthlyAggregate{TotalDays: 28, PresentDays: 28}

	sum := NormalizeAttendance(agg, employee.CompensationProfile{}, 0)

	assert.Equal(t, 28.0, sum.DaysInMonth)
	assert.Equal(t, 0.0, sum.AbsentDays)
}

func TestNormalizeAttendanceAbsentNeverNegative(t *testing.T) {
	agg := attendance.MonthlyAggregate{
		TotalDays:     30,
		PresentDays:   28,
		WeeklyOffs:    4,
		Holidays:      2,
		PaidLeaveDays: 1,
	}

	sum := NormalizeAttendance(agg, employee.CompensationProfile{}, 30)

	assert.Equal(t, 0.0, sum.AbsentDays)
}

func TestNormalizeAttendanceEarnedLeaveAsPaydays(t *testing.T) {
	agg := attendance.MonthlyAggregate{
		TotalDays:          30,
		PresentDays:        18,
		WeeklyOffs:         4,
		EarnedLeaveBalance: 5,
	}
	comp := employee.CompensationProfile{EarnedLeavePayday: true}

	sum := NormalizeAttendance(agg, comp, 30)

	assert.Equal(t, 5.0, sum.EarnedLeaveUsed)
	assert.Equal(t, 23.0, sum.PayableShifts)
	assert.Equal(t, 5.0, sum.PaidLeaveDays)
	// 30 - 18 - 4 - 0 - 5
	assert.Equal(t, 3.0, sum.AbsentDays)
}

func TestNormalizeAttendanceEarnedLeaveCappedAtCycle(t *testing.T) {
	agg := attendance.MonthlyAggregate{
		TotalDays:          30,
		EarnedLeaveBalance: 45,
	}
	comp := employee.CompensationProfile{EarnedLeavePayday: true}

	sum := NormalizeAttendance(agg, comp, 30)

	assert.Equal(t, 30.0, sum.EarnedLeaveUsed)
	assert.Equal(t, 30.0, sum.PayableShifts)
}
