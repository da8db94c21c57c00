package payroll

import "github.com/shopspring/decimal"

// eventsPerHalfDay: every third late-in, early-out or permission event
// costs half a day of basic pay.
const eventsPerHalfDay = 3

// calcAttendanceDeduction charges punctuality lapses and unpaid absence
// against the per-day basic rate. Each event class is individually
// switchable on the employee's compensation profile, and the whole
// calculator is skipped when attendance deduction does not apply.
func (e *Engine) calcAttendanceDeduction(ctx *calcContext) {
	comp := ctx.in.Employee.Compensation
	ctx.vars["attendance_deduction"] = 0
	if !comp.ApplyAttendanceDeduction {
		return
	}

	att := ctx.att
	perDay := ctx.slip.Earnings.PerDayBasicPay

	events := 0
	if comp.DeductLateIn {
		events += att.LateInCount
	}
	if comp.DeductEarlyOut {
		events += att.EarlyOutCount
	}
	if comp.DeductPermission {
		events += att.PermissionCount
	}

	halfDays := float64(events / eventsPerHalfDay)
	deduction := perDay.Mul(decimal.NewFromFloat(halfDays * 0.5))

	if comp.DeductAbsent && att.AbsentDays > 0 {
		deduction = deduction.Add(perDay.Mul(decimal.NewFromFloat(att.AbsentDays)))
	}

	deduction = deduction.Round(2)
	ctx.slip.Deductions.AttendanceDeduction = deduction
	ctx.vars["attendance_deduction"] = decimalToFloat(deduction)
}
