package payroll

import (
	"github.com/Pydah-Soft-Projects/li-hrms-sub004/internal/domain/attendance"
	"github.com/Pydah-Soft-Projects/li-hrms-sub004/internal/domain/employee"
)

// NormalizeAttendance converts the raw monthly aggregate into the
// canonical summary the calculators work from.
//
// Days in month come from the configured pay-cycle window (cycleDays);
// when the cycle lookup failed upstream the aggregate's own count is
// used. If the employee's leave policy treats earned leave as
// payday-equivalent, up to min(balance, daysInMonth) earned-leave units
// are consumed into both payable shifts and paid leave days. Absent is
// always the balancing term, never negative.
func NormalizeAttendance(agg attendance.MonthlyAggregate, comp employee.CompensationProfile, cycleDays int) attendance.Summary {
	daysInMonth := float64(cycleDays)
	if daysInMonth <= 0 {
		daysInMonth = float64(agg.TotalDays)
	}

	payableShifts := agg.PresentDays + agg.ODDays
	paidLeave := agg.PaidLeaveDays
	earnedLeaveUsed := 0.0

	if comp.EarnedLeavePayday && agg.EarnedLeaveBalance > 0 {
		earnedLeaveUsed = agg.EarnedLeaveBalance
		if earnedLeaveUsed > daysInMonth {
			earnedLeaveUsed = daysInMonth
		}
		payableShifts += earnedLeaveUsed
		paidLeave += earnedLeaveUsed
	}

	// On-duty days are paid through payable shifts but do not reduce the
	// absent balance.
	absent := daysInMonth - agg.PresentDays - agg.WeeklyOffs - agg.Holidays - paidLeave
	if absent < 0 {
		absent = 0
	}

	return attendance.Summary{
		EmployeeID:      agg.EmployeeID,
		Month:           agg.Month,
		DaysInMonth:     daysInMonth,
		PayableShifts:   payableShifts,
		PresentDays:     agg.PresentDays,
		ODDays:          agg.ODDays,
		PaidLeaveDays:   paidLeave,
		WeeklyOffs:      agg.WeeklyOffs,
		Holidays:        agg.Holidays,
		AbsentDays:      absent,
		OTHours:         agg.OTHours,
		LOPDays:         agg.LOPDays,
		EarnedLeaveUsed: earnedLeaveUsed,
		LateInCount:     agg.LateInCount,
		EarlyOutCount:   agg.EarlyOutCount,
		PermissionCount: agg.PermissionCount,
	}
}
