package payroll

import (
	"context"
	"testing"

	"github.com/Pydah-Soft-Projects/li-hrms-sub004/internal/domain/attendance"
	"github.com/Pydah-Soft-Projects/li-hrms-sub004/internal/domain/employee"
	"github.com/Pydah-Soft-Projects/li-hrms-sub004/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEmployee(gross int64) employee.Employee {
	return employee.Employee{
		ID:           "emp-1",
		Code:         "E001",
		Name:         "Asha Verma",
		DepartmentID: "dept-1",
		GrossSalary:  decimal.NewFromInt(gross),
		IsActive:     true,
	}
}

// fullMonthAgg totals exactly thirty paid units against a thirty-day
// cycle.
func fullMonthAgg() attendance.MonthlyAggregate {
	return attendance.MonthlyAggregate{
		EmployeeID:    "emp-1",
		Month:         "2026-07",
		TotalDays:     30,
		PresentDays:   23,
		PaidLeaveDays: 2,
		WeeklyOffs:    4,
		Holidays:      1,
	}
}

func fieldColumn(order int, header, field string) payroll.OutputColumn {
	return payroll.OutputColumn{Header: header, Source: payroll.SourceField, Field: field, Order: order}
}

func formulaColumn(order int, header, expr string) payroll.OutputColumn {
	return payroll.OutputColumn{Header: header, Source: payroll.SourceFormula, Formula: expr, Order: order}
}

func testInput(cols ...payroll.OutputColumn) CalculationInput {
	return CalculationInput{
		Employee:  testEmployee(30000),
		Aggregate: fullMonthAgg(),
		Month:     "2026-07",
		Config:    payroll.Configuration{ID: "cfg-1", OutputColumns: cols},
		CycleDays: 30,
	}
}

func TestRunFullMonthBasicPay(t *testing.T) {
	engine := NewEngine(nil)
	in := testInput(
		fieldColumn(1, "Emp Code", "employee.code"),
		fieldColumn(2, "Basic Pay", "earnings.basicPay"),
	)

	slip, row, err := engine.Run(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, "30000", slip.Earnings.BasicPay.String())
	assert.Equal(t, "1000", slip.Earnings.PerDayBasicPay.String())
	assert.True(t, slip.Earnings.Incentive.IsZero())
	assert.Equal(t, "E001", row.Get("Emp Code"))
	assert.Equal(t, 30000.0, row.Get("Basic Pay"))
}

func TestRunProratedBasicPay(t *testing.T) {
	engine := NewEngine(nil)
	in := testInput(fieldColumn(1, "Basic Pay", "earnings.basicPay"))
	in.Aggregate = attendance.MonthlyAggregate{
		EmployeeID:  "emp-1",
		Month:       "2026-07",
		TotalDays:   30,
		PresentDays: 20,
		WeeklyOffs:  4,
		Holidays:    1,
	}

	slip, _, err := engine.Run(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, "25000", slip.Earnings.BasicPay.String())
	assert.Equal(t, 5.0, slip.Attendance.AbsentDays)
}

func TestRunExcessUnitsBecomeIncentive(t *testing.T) {
	engine := NewEngine(nil)
	in := testInput(
		fieldColumn(1, "Basic Pay", "earnings.basicPay"),
		fieldColumn(2, "Incentive", "earnings.incentive"),
	)
	in.Aggregate = attendance.MonthlyAggregate{
		EmployeeID:  "emp-1",
		Month:       "2026-07",
		TotalDays:   30,
		PresentDays: 28,
		ODDays:      2,
		WeeklyOffs:  4,
		Holidays:    1,
	}

	slip, _, err := engine.Run(context.Background(), in)
	require.NoError(t, err)

	// 35 paid units against 30 days: basic is capped, 5 days become
	// incentive at the same rate.
	assert.Equal(t, "30000", slip.Earnings.BasicPay.String())
	assert.Equal(t, "5000", slip.Earnings.Incentive.String())
}

func TestRunNetRoundsUpToWholeRupee(t *testing.T) {
	engine := NewEngine(nil)
	in := testInput(
		fieldColumn(1, "Net Salary", "netSalary"),
		fieldColumn(2, "Round Off", "roundOff"),
	)
	in.Employee = testEmployee(31000)
	in.Employee.Compensation.Deductions = []employee.ComponentOverride{
		{Name: "Society Fund", CalcType: "fixed", Amount: decimal.NewFromFloat(1234.50)},
	}

	slip, row, err := engine.Run(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, "31000", slip.Earnings.GrossSalary.String())
	assert.Equal(t, "1234.5", slip.Deductions.TotalDeductions.String())
	// The net column displays the already-ceiled net; that display must
	// not feed back as an override and erase the round-off.
	assert.Equal(t, "29766", slip.NetSalary.String())
	assert.Equal(t, "0.5", slip.RoundOff.String())
	assert.Equal(t, 29766.0, row.Get("Net Salary"))
	assert.Equal(t, 0.5, row.Get("Round Off"))
}

func TestRunFormulaNetColumnOverridesDerived(t *testing.T) {
	engine := NewEngine(nil)
	in := testInput(formulaColumn(1, "Net Salary", "gross_salary - 1234.5"))

	slip, row, err := engine.Run(context.Background(), in)
	require.NoError(t, err)

	// The derived net would be the full 30000; the formula column wins
	// and the rupee ceiling applies on top of it.
	assert.Equal(t, 28765.5, row.Get("Net Salary"))
	assert.Equal(t, "28766", slip.NetSalary.String())
	assert.Equal(t, "0.5", slip.RoundOff.String())
}

func TestRunNetNeverNegative(t *testing.T) {
	engine := NewEngine(nil)
	in := testInput(fieldColumn(1, "Net Salary", "netSalary"))
	in.Employee.Compensation.Deductions = []employee.ComponentOverride{
		{Name: "Recovery", CalcType: "fixed", Amount: decimal.NewFromInt(90000)},
	}

	slip, _, err := engine.Run(context.Background(), in)
	require.NoError(t, err)

	assert.True(t, slip.NetSalary.IsZero())
	assert.True(t, slip.RoundOff.IsZero())
}

func TestRunPFCapsContributionBase(t *testing.T) {
	engine := NewEngine(nil)
	in := testInput(fieldColumn(1, "PF", "deductions.statutoryAmount:PF"))
	in.Employee = testEmployee(20000)
	in.Employee.Compensation.ApplyPF = true
	in.Statutory = payroll.StatutorySettings{
		PF: payroll.PFScheme{
			Enabled:         true,
			WageCeiling:     decimal.NewFromInt(15000),
			EmployeePercent: decimal.NewFromInt(12),
			EmployerPercent: decimal.NewFromInt(12),
		},
	}

	slip, row, err := engine.Run(context.Background(), in)
	require.NoError(t, err)

	require.Len(t, slip.Deductions.StatutoryDeductions, 1)
	assert.Equal(t, "1800", slip.Deductions.StatutoryDeductions[0].Employee.String())
	assert.Equal(t, 1800.0, row.Get("PF"))
}

func TestRunESISkippedAboveWageCeiling(t *testing.T) {
	engine := NewEngine(nil)
	in := testInput(fieldColumn(1, "ESI", "deductions.statutoryAmount:ESI"))
	in.Employee = testEmployee(25000)
	in.Employee.Compensation.ApplyESI = true
	in.Statutory = payroll.StatutorySettings{
		ESI: payroll.ESIScheme{
			Enabled:         true,
			WageBasePercent: decimal.NewFromInt(100),
			WageCeiling:     decimal.NewFromInt(21000),
			EmployeePercent: decimal.NewFromFloat(0.75),
			EmployerPercent: decimal.NewFromFloat(3.25),
		},
	}

	slip, row, err := engine.Run(context.Background(), in)
	require.NoError(t, err)

	assert.Empty(t, slip.Deductions.StatutoryDeductions)
	assert.Equal(t, 0.0, row.Get("ESI"))
}

func TestRunAllowanceProratedByRule(t *testing.T) {
	engine := NewEngine(nil)
	in := testInput(fieldColumn(1, "Conveyance", "earnings.allowanceAmount:Conveyance"))
	in.Aggregate = attendance.MonthlyAggregate{
		EmployeeID:  "emp-1",
		Month:       "2026-07",
		TotalDays:   30,
		PresentDays: 22,
	}
	in.Masters = []payroll.ComponentMaster{
		{ID: "m-1", Name: "Conveyance", Type: payroll.ComponentTypeAllowance, IsActive: true},
	}
	in.Rules = []payroll.ComponentRule{
		{ID: "r-1", MasterID: "m-1", CalcType: payroll.CalcTypeFixed, Amount: decimal.NewFromInt(3000), Prorate: true},
	}

	slip, row, err := engine.Run(context.Background(), in)
	require.NoError(t, err)

	// 3000 over 30 days for 22 paid days.
	require.Len(t, slip.Earnings.Allowances, 1)
	assert.Equal(t, "2200", slip.Earnings.Allowances[0].Amount.String())
	assert.Equal(t, 2200.0, row.Get("Conveyance"))
}

func TestRunPaidDaysColumnProratesStatutory(t *testing.T) {
	engine := NewEngine(nil)
	in := testInput(
		formulaColumn(1, "Paid Days", "present_days"),
		fieldColumn(2, "PF", "deductions.statutoryAmount:PF"),
	)
	in.Config.PaidDaysHeader = "Paid Days"
	in.Aggregate = attendance.MonthlyAggregate{
		EmployeeID:  "emp-1",
		Month:       "2026-07",
		TotalDays:   30,
		PresentDays: 15,
	}
	in.Employee.Compensation.ApplyPF = true
	in.Statutory = payroll.StatutorySettings{
		PF: payroll.PFScheme{
			Enabled:         true,
			WageCeiling:     decimal.NewFromInt(15000),
			EmployeePercent: decimal.NewFromInt(12),
			EmployerPercent: decimal.NewFromInt(12),
		},
	}

	_, row, err := engine.Run(context.Background(), in)
	require.NoError(t, err)

	// Basic is already 15000 for 15 days; the paid-days column halves
	// the statutory contribution on top of that.
	assert.Equal(t, 15.0, row.Get("Paid Days"))
	assert.Equal(t, 900.0, row.Get("PF"))
}

func TestRunFormulaSeesOnlyEarlierColumns(t *testing.T) {
	engine := NewEngine(nil)
	in := testInput(
		formulaColumn(1, "Too Early", "bonus * 2"),
		formulaColumn(2, "Bonus", "500"),
		formulaColumn(3, "Doubled", "bonus * 2"),
	)

	_, row, err := engine.Run(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, 0.0, row.Get("Too Early"))
	assert.Equal(t, 500.0, row.Get("Bonus"))
	assert.Equal(t, 1000.0, row.Get("Doubled"))
}

func TestRunBrokenFormulaYieldsZeroWithoutFailing(t *testing.T) {
	engine := NewEngine(nil)
	in := testInput(
		formulaColumn(1, "Broken", "basic_pay / (month_days - 30)"),
		fieldColumn(2, "Basic Pay", "earnings.basicPay"),
	)

	slip, row, err := engine.Run(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, 0.0, row.Get("Broken"))
	assert.Equal(t, "30000", slip.Earnings.BasicPay.String())
}

func TestRunDeterministicForIdenticalInputs(t *testing.T) {
	engine := NewEngine(nil)
	in := testInput(
		fieldColumn(1, "Basic Pay", "earnings.basicPay"),
		formulaColumn(2, "HRA", "basic_pay * 0.1"),
		fieldColumn(3, "Net Salary", "netSalary"),
	)

	first, firstRow, err := engine.Run(context.Background(), in)
	require.NoError(t, err)
	second, secondRow, err := engine.Run(context.Background(), in)
	require.NoError(t, err)

	first.GeneratedAt = second.GeneratedAt
	assert.Equal(t, first, second)
	assert.Equal(t, firstRow, secondRow)
}

func TestRunRejectsEmptyConfiguration(t *testing.T) {
	engine := NewEngine(nil)
	in := testInput()

	_, _, err := engine.Run(context.Background(), in)
	assert.ErrorIs(t, err, payroll.ErrEmptyConfiguration)
}

func TestRunRejectsMissingGrossSalary(t *testing.T) {
	engine := NewEngine(nil)
	in := testInput(fieldColumn(1, "Basic Pay", "earnings.basicPay"))
	in.Employee.GrossSalary = decimal.Zero

	_, _, err := engine.Run(context.Background(), in)
	assert.ErrorIs(t, err, payroll.ErrNoGrossSalary)
}

func TestRunLoanRecoveryCappedAtOutstanding(t *testing.T) {
	engine := NewEngine(nil)
	in := testInput(
		fieldColumn(1, "Loan EMI", "loanAdvance.totalEMI"),
		fieldColumn(2, "Balance", "loanAdvance.remainingBalance"),
		fieldColumn(3, "Net Salary", "netSalary"),
	)
	in.Loans = []payroll.LoanAccount{
		{ID: "l-1", EmployeeID: "emp-1", MonthlyEMI: decimal.NewFromInt(2000), Outstanding: decimal.NewFromInt(1500), IsActive: true},
		{ID: "l-2", EmployeeID: "emp-1", MonthlyEMI: decimal.NewFromInt(1000), Outstanding: decimal.NewFromInt(5000), IsActive: true},
	}

	slip, row, err := engine.Run(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, "2500", slip.LoanAdvance.TotalEMI.String())
	assert.Equal(t, "4000", slip.LoanAdvance.RemainingBalance.String())
	assert.Equal(t, 2500.0, row.Get("Loan EMI"))
	assert.Equal(t, "27500", slip.NetSalary.String())
}

func TestRunArrearsRaiseGrossAndNet(t *testing.T) {
	engine := NewEngine(nil)
	in := testInput(
		fieldColumn(1, "Arrears", "arrears.arrearsAmount"),
		fieldColumn(2, "Net Salary", "netSalary"),
	)
	in.Arrears = []payroll.ArrearsEntry{
		{ID: "a-1", EmployeeID: "emp-1", Month: "2026-07", Amount: decimal.NewFromInt(1200), Reason: "june revision"},
	}

	slip, _, err := engine.Run(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, "1200", slip.Arrears.ArrearsAmount.String())
	assert.Equal(t, "31200", slip.Earnings.GrossSalary.String())
	assert.Equal(t, "31200", slip.NetSalary.String())
}

func TestRunOvertimeUsesDepartmentRate(t *testing.T) {
	engine := NewEngine(nil)
	in := testInput(fieldColumn(1, "OT Pay", "earnings.otPay"))
	in.Aggregate.OTHours = 10
	in.OTRates = []payroll.OvertimeRate{
		{DepartmentID: "dept-2", RatePerHour: decimal.NewFromInt(999)},
		{DepartmentID: "dept-1", RatePerHour: decimal.NewFromFloat(62.5)},
	}

	slip, row, err := engine.Run(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, "625", slip.Earnings.OTPay.String())
	assert.Equal(t, 625.0, row.Get("OT Pay"))
}

func TestRunAttendanceDeductionHalfDayPerThreeEvents(t *testing.T) {
	engine := NewEngine(nil)
	in := testInput(fieldColumn(1, "Att Deduction", "deductions.attendanceDeduction"))
	in.Aggregate.LateInCount = 4
	in.Aggregate.EarlyOutCount = 2
	in.Employee.Compensation.ApplyAttendanceDeduction = true
	in.Employee.Compensation.DeductLateIn = true
	in.Employee.Compensation.DeductEarlyOut = true

	slip, row, err := engine.Run(context.Background(), in)
	require.NoError(t, err)

	// 6 events at a thousand per day: two half days.
	assert.Equal(t, "1000", slip.Deductions.AttendanceDeduction.String())
	assert.Equal(t, 1000.0, row.Get("Att Deduction"))
}
