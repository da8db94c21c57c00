package payroll

import (
	"context"
	"log/slog"
	"time"

	"github.com/Pydah-Soft-Projects/li-hrms-sub004/internal/domain/attendance"
	"github.com/Pydah-Soft-Projects/li-hrms-sub004/internal/domain/employee"
	"github.com/Pydah-Soft-Projects/li-hrms-sub004/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// CalculationInput bundles everything one employee-month calculation
// reads. All of it is immutable for the duration of the run; the engine
// shares nothing between runs, which is what makes batches trivially
// parallel across employees.
type CalculationInput struct {
	Employee  employee.Employee
	Aggregate attendance.MonthlyAggregate
	Month     string
	Config    payroll.Configuration
	Masters   []payroll.ComponentMaster
	Rules     []payroll.ComponentRule
	Policies  []payroll.ComponentPolicy
	Statutory payroll.StatutorySettings
	OTRates   []payroll.OvertimeRate
	Loans     []payroll.LoanAccount
	Advances  []payroll.Advance
	Arrears   []payroll.ArrearsEntry
	// CycleDays is the day count of the configured pay-cycle window for
	// this month. Zero falls back to the aggregate's own count.
	CycleDays int
}

// Engine runs the column pipeline for a single employee-month. It is
// stateless and safe for concurrent use.
type Engine struct {
	logger *slog.Logger
}

func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{logger: logger}
}

type calcKind int

const (
	calcBasicPay calcKind = iota
	calcOvertime
	calcAllowances
	calcOtherDeductions
	calcStatutory
	calcAttendanceDeduction
	calcLoanAdvance
	calcArrears
)

var calcNames = map[calcKind]string{
	calcBasicPay:            "basic_pay",
	calcOvertime:            "overtime",
	calcAllowances:          "allowances",
	calcOtherDeductions:     "other_deductions",
	calcStatutory:           "statutory",
	calcAttendanceDeduction: "attendance_deduction",
	calcLoanAdvance:         "loan_advance",
	calcArrears:             "arrears",
}

// calcContext is the run-scoped arena threaded through the pipeline:
// the payslip being built, the formula variable context, and the
// memoization table guaranteeing each calculator runs at most once per
// employee-month.
type calcContext struct {
	in   *CalculationInput
	att  attendance.Summary
	slip *payroll.Payslip
	vars map[string]float64
	done map[calcKind]bool

	// Late-bound proration signals picked up from resolved columns.
	paidDaysSignal  *float64
	monthDaysSignal *float64

	// Basic pay intermediates, valid once calcBasicPay has run.
	paidDays  float64
	extraDays float64

	netFromColumn *decimal.Decimal
}

// runCalc invokes the calculator for kind exactly once; repeat demands
// are no-ops. Derived values (gross, cumulative totals) are refreshed
// after every run so later columns observe consistent state.
func (e *Engine) runCalc(ctx *calcContext, kind calcKind) {
	if ctx.done[kind] {
		return
	}
	ctx.done[kind] = true

	switch kind {
	case calcBasicPay:
		e.calcBasicPay(ctx)
	case calcOvertime:
		e.calcOvertime(ctx)
	case calcAllowances:
		e.ensure(ctx, calcBasicPay)
		e.calcAllowances(ctx)
	case calcOtherDeductions:
		e.ensure(ctx, calcBasicPay)
		e.calcOtherDeductions(ctx)
	case calcStatutory:
		e.ensure(ctx, calcBasicPay)
		e.calcStatutory(ctx)
	case calcAttendanceDeduction:
		e.ensure(ctx, calcBasicPay)
		e.calcAttendanceDeduction(ctx)
	case calcLoanAdvance:
		e.calcLoanAdvance(ctx)
	case calcArrears:
		e.calcArrears(ctx)
	}

	e.refreshDerived(ctx)
}

// ensure is runCalc without the refresh, used for prerequisite chaining.
func (e *Engine) ensure(ctx *calcContext, kind calcKind) {
	if !ctx.done[kind] {
		e.runCalc(ctx, kind)
	}
}

// refreshDerived recomputes the values that are sums over calculator
// outputs. Calculators that never ran contribute zero.
func (e *Engine) refreshDerived(ctx *calcContext) {
	earn := &ctx.slip.Earnings
	gross := earn.BasicPay.
		Add(earn.Incentive).
		Add(earn.OTPay).
		Add(earn.TotalAllowances).
		Add(ctx.slip.Arrears.ArrearsAmount)
	earn.GrossSalary = gross.Round(2)

	ded := &ctx.slip.Deductions
	total := ded.AttendanceDeduction.
		Add(sumLineItems(ded.OtherDeductions)).
		Add(sumStatutoryEmployee(ded.StatutoryDeductions)).
		Add(ctx.slip.LoanAdvance.TotalEMI).
		Add(ctx.slip.LoanAdvance.AdvanceDeduction)
	ded.TotalDeductions = total.Round(2)

	ctx.vars["earned_gross"] = decimalToFloat(earn.GrossSalary)
	ctx.vars["total_deductions"] = decimalToFloat(ded.TotalDeductions)
}

func sumLineItems(items []payroll.LineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.Amount)
	}
	return sum
}

func sumStatutoryEmployee(lines []payroll.StatutoryLine) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.Employee)
	}
	return sum
}

func decimalToFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

// Run executes the full pipeline: normalize attendance, walk the
// configured columns resolving each one, then finalize the payslip.
// The returned payslip and row are deterministic for identical inputs.
func (e *Engine) Run(_ context.Context, in CalculationInput) (payroll.Payslip, payroll.PaysheetRow, error) {
	if err := in.Config.Validate(); err != nil {
		return payroll.Payslip{}, payroll.PaysheetRow{}, err
	}
	if in.Employee.GrossSalary.IsZero() {
		return payroll.Payslip{}, payroll.PaysheetRow{}, payroll.ErrNoGrossSalary
	}

	att := NormalizeAttendance(in.Aggregate, in.Employee.Compensation, in.CycleDays)

	slip := payroll.Payslip{
		EmployeeID:   in.Employee.ID,
		EmployeeCode: in.Employee.Code,
		EmployeeName: in.Employee.Name,
		Month:        in.Month,
		Attendance:   att,
	}

	ctx := &calcContext{
		in:   &in,
		att:  att,
		slip: &slip,
		vars: baseVariables(in.Employee, att),
		done: make(map[calcKind]bool),
	}

	row := e.executeColumns(ctx)
	e.assemble(ctx)

	slip.GeneratedAt = time.Now().UTC()
	return slip, row, nil
}

// baseVariables is the fixed context every formula can reference before
// any column has resolved.
func baseVariables(emp employee.Employee, att attendance.Summary) map[string]float64 {
	return map[string]float64{
		"gross_salary":       decimalToFloat(emp.GrossSalary),
		"dearness_allowance": decimalToFloat(emp.DearnessAllowance),
		"month_days":         att.DaysInMonth,
		"days_in_month":      att.DaysInMonth,
		"payable_shifts":     att.PayableShifts,
		"present_days":       att.PresentDays,
		"od_days":            att.ODDays,
		"paid_leave_days":    att.PaidLeaveDays,
		"weekly_offs":        att.WeeklyOffs,
		"holidays":           att.Holidays,
		"absent_days":        att.AbsentDays,
		"ot_hours":           att.OTHours,
		"lop_days":           att.LOPDays,
		"earned_leave_used":  att.EarnedLeaveUsed,
	}
}
