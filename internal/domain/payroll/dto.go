package payroll

import (
	"time"

	"github.com/Pydah-Soft-Projects/li-hrms-sub004/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== CONFIGURATION DTOs ==========

type ReplaceConfigurationRequest struct {
	OutputColumns   []OutputColumn `json:"output_columns"`
	PaidDaysHeader  string         `json:"paid_days_header,omitempty"`
	MonthDaysHeader string         `json:"month_days_header,omitempty"`
}

func (r *ReplaceConfigurationRequest) Validate() error {
	var errs validator.ValidationErrors

	cfg := Configuration{OutputColumns: r.OutputColumns}
	if err := cfg.Validate(); err != nil {
		errs = append(errs, validator.ValidationError{Field: "output_columns", Message: err.Error()})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ConfigurationResponse struct {
	ID              string         `json:"id"`
	OutputColumns   []OutputColumn `json:"output_columns"`
	PaidDaysHeader  string         `json:"paid_days_header,omitempty"`
	MonthDaysHeader string         `json:"month_days_header,omitempty"`
	UpdatedAt       string         `json:"updated_at"`
}

func ToConfigurationResponse(c Configuration) ConfigurationResponse {
	return ConfigurationResponse{
		ID:              c.ID,
		OutputColumns:   c.SortedColumns(),
		PaidDaysHeader:  c.PaidDaysHeader,
		MonthDaysHeader: c.MonthDaysHeader,
		UpdatedAt:       c.UpdatedAt.Format(time.RFC3339),
	}
}

// ========== RUN DTOs ==========

type RunPayrollRequest struct {
	Month string `json:"month"` // YYYY-MM
	// Empty means all active employees.
	EmployeeIDs []string `json:"employee_ids,omitempty"`
}

func (r *RunPayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidMonthKey(r.Month) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be YYYY-MM"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SkippedEmployee struct {
	EmployeeID string `json:"employee_id"`
	Reason     string `json:"reason"`
}

type BatchRunResponse struct {
	Month     string            `json:"month"`
	Processed int               `json:"processed"`
	Skipped   []SkippedEmployee `json:"skipped,omitempty"`
}

// ========== PAYSLIP DTOs ==========

type AttendanceResponse struct {
	DaysInMonth     float64 `json:"days_in_month"`
	PayableShifts   float64 `json:"payable_shifts"`
	PresentDays     float64 `json:"present_days"`
	ODDays          float64 `json:"od_days"`
	PaidLeaveDays   float64 `json:"paid_leave_days"`
	WeeklyOffs      float64 `json:"weekly_offs"`
	Holidays        float64 `json:"holidays"`
	AbsentDays      float64 `json:"absent_days"`
	OTHours         float64 `json:"ot_hours"`
	LOPDays         float64 `json:"lop_days"`
	EarnedLeaveUsed float64 `json:"earned_leave_used"`
}

type PayslipResponse struct {
	ID           string             `json:"id"`
	EmployeeID   string             `json:"employee_id"`
	EmployeeCode string             `json:"employee_code"`
	EmployeeName string             `json:"employee_name"`
	Month        string             `json:"month"`
	Attendance   AttendanceResponse `json:"attendance"`
	Earnings     Earnings           `json:"earnings"`
	Deductions   Deductions         `json:"deductions"`
	LoanAdvance  LoanAdvance        `json:"loan_advance"`
	Arrears      Arrears            `json:"arrears"`
	NetSalary    decimal.Decimal    `json:"net_salary"`
	RoundOff     decimal.Decimal    `json:"round_off"`
	GeneratedAt  string             `json:"generated_at"`
}

func ToPayslipResponse(p Payslip) PayslipResponse {
	return PayslipResponse{
		ID:           p.ID,
		EmployeeID:   p.EmployeeID,
		EmployeeCode: p.EmployeeCode,
		EmployeeName: p.EmployeeName,
		Month:        p.Month,
		Attendance: AttendanceResponse{
			DaysInMonth:     p.Attendance.DaysInMonth,
			PayableShifts:   p.Attendance.PayableShifts,
			PresentDays:     p.Attendance.PresentDays,
			ODDays:          p.Attendance.ODDays,
			PaidLeaveDays:   p.Attendance.PaidLeaveDays,
			WeeklyOffs:      p.Attendance.WeeklyOffs,
			Holidays:        p.Attendance.Holidays,
			AbsentDays:      p.Attendance.AbsentDays,
			OTHours:         p.Attendance.OTHours,
			LOPDays:         p.Attendance.LOPDays,
			EarnedLeaveUsed: p.Attendance.EarnedLeaveUsed,
		},
		Earnings:    p.Earnings,
		Deductions:  p.Deductions,
		LoanAdvance: p.LoanAdvance,
		Arrears:     p.Arrears,
		NetSalary:   p.NetSalary,
		RoundOff:    p.RoundOff,
		GeneratedAt: p.GeneratedAt.Format(time.RFC3339),
	}
}
