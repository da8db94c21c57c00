package payroll

import (
	"strings"

	"github.com/Pydah-Soft-Projects/li-hrms-sub004/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

var allCalculators = []calcKind{
	calcBasicPay,
	calcOvertime,
	calcAllowances,
	calcOtherDeductions,
	calcStatutory,
	calcAttendanceDeduction,
	calcLoanAdvance,
	calcArrears,
}

var grossCalculators = []calcKind{calcBasicPay, calcOvertime, calcAllowances, calcArrears}

var deductionCalculators = []calcKind{calcAttendanceDeduction, calcOtherDeductions, calcStatutory, calcLoanAdvance}

// splitFieldPath separates the named-item suffix from a field path:
// "earnings.allowanceAmount:HRA" yields ("earnings.allowanceamount",
// "HRA"). The base is lowercased; the name keeps its case for display
// but is matched case-insensitively.
func splitFieldPath(path string) (base, name string) {
	if i := strings.IndexByte(path, ':'); i >= 0 {
		return strings.ToLower(strings.TrimSpace(path[:i])), strings.TrimSpace(path[i+1:])
	}
	return strings.ToLower(strings.TrimSpace(path)), ""
}

// fieldCalculators names the calculators whose output a field path
// reads, so the pipeline can materialize exactly those before looking
// the value up. Raw employee and attendance fields need none.
func fieldCalculators(path string) []calcKind {
	base, _ := splitFieldPath(path)
	switch base {
	case "earnings.basicpay", "earnings.perdaybasicpay", "earnings.incentive":
		return []calcKind{calcBasicPay}
	case "earnings.otpay":
		return []calcKind{calcOvertime}
	case "earnings.totalallowances", "earnings.allowanceamount":
		return []calcKind{calcAllowances}
	case "earnings.grosssalary":
		return grossCalculators
	case "deductions.attendancededuction":
		return []calcKind{calcBasicPay, calcAttendanceDeduction}
	case "deductions.otherdeductionamount", "deductions.othercumulative":
		return []calcKind{calcOtherDeductions}
	case "deductions.statutoryamount", "deductions.statutorycumulative":
		return []calcKind{calcStatutory}
	case "deductions.totaldeductions":
		return deductionCalculators
	case "loanadvance.totalemi", "loanadvance.advancededuction", "loanadvance.remainingbalance":
		return []calcKind{calcLoanAdvance}
	case "arrears.arrearsamount":
		return []calcKind{calcArrears}
	case "netsalary", "roundoff":
		return allCalculators
	}
	return nil
}

// lookupField reads a resolved value out of the payslip under
// construction. Unknown paths resolve to decimal zero rather than
// failing the run.
func (e *Engine) lookupField(ctx *calcContext, path string) any {
	base, name := splitFieldPath(path)
	emp := ctx.in.Employee
	att := ctx.att
	slip := ctx.slip

	switch base {
	case "employee.id":
		return emp.ID
	case "employee.code":
		return emp.Code
	case "employee.name":
		return emp.Name
	case "employee.departmentid":
		return emp.DepartmentID
	case "employee.divisionid":
		return emp.DivisionID
	case "employee.grosssalary":
		return emp.GrossSalary
	case "employee.dearnessallowance":
		return emp.DearnessAllowance

	case "attendance.daysinmonth":
		return att.DaysInMonth
	case "attendance.payableshifts":
		return att.PayableShifts
	case "attendance.presentdays":
		return att.PresentDays
	case "attendance.oddays":
		return att.ODDays
	case "attendance.paidleavedays":
		return att.PaidLeaveDays
	case "attendance.weeklyoffs":
		return att.WeeklyOffs
	case "attendance.holidays":
		return att.Holidays
	case "attendance.absentdays":
		return att.AbsentDays
	case "attendance.othours":
		return att.OTHours
	case "attendance.lopdays":
		return att.LOPDays
	case "attendance.earnedleaveused":
		return att.EarnedLeaveUsed
	case "attendance.lateincount":
		return float64(att.LateInCount)
	case "attendance.earlyoutcount":
		return float64(att.EarlyOutCount)
	case "attendance.permissioncount":
		return float64(att.PermissionCount)

	case "earnings.basicpay":
		return slip.Earnings.BasicPay
	case "earnings.perdaybasicpay":
		return slip.Earnings.PerDayBasicPay
	case "earnings.otpay":
		return slip.Earnings.OTPay
	case "earnings.totalallowances":
		return slip.Earnings.TotalAllowances
	case "earnings.grosssalary":
		return slip.Earnings.GrossSalary
	case "earnings.incentive":
		return slip.Earnings.Incentive
	case "earnings.allowanceamount":
		return lineItemAmount(slip.Earnings.Allowances, name)

	case "deductions.attendancededuction":
		return slip.Deductions.AttendanceDeduction
	case "deductions.totaldeductions":
		return slip.Deductions.TotalDeductions
	case "deductions.otherdeductionamount":
		return lineItemAmount(slip.Deductions.OtherDeductions, name)
	case "deductions.othercumulative":
		return sumLineItems(slip.Deductions.OtherDeductions).Round(2)
	case "deductions.statutoryamount":
		return statutoryAmount(slip.Deductions.StatutoryDeductions, name)
	case "deductions.statutorycumulative":
		return sumStatutoryEmployee(slip.Deductions.StatutoryDeductions).Round(2)

	case "loanadvance.totalemi":
		return slip.LoanAdvance.TotalEMI
	case "loanadvance.advancededuction":
		return slip.LoanAdvance.AdvanceDeduction
	case "loanadvance.remainingbalance":
		return slip.LoanAdvance.RemainingBalance

	case "arrears.arrearsamount":
		return slip.Arrears.ArrearsAmount

	case "netsalary":
		net, _ := e.netValues(ctx)
		return net
	case "roundoff":
		_, roundOff := e.netValues(ctx)
		return roundOff
	}

	e.logger.Warn("unknown field path resolved to zero", "path", path)
	return decimal.Zero
}

func lineItemAmount(items []payroll.LineItem, name string) decimal.Decimal {
	for _, it := range items {
		if strings.EqualFold(it.Name, name) {
			return it.Amount
		}
	}
	return decimal.Zero
}

func statutoryAmount(lines []payroll.StatutoryLine, name string) decimal.Decimal {
	for _, l := range lines {
		if strings.EqualFold(l.Name, name) {
			return l.Employee
		}
	}
	return decimal.Zero
}
