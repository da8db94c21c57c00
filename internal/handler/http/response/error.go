package response

import (
	"errors"
	"net/http"

	"github.com/Pydah-Soft-Projects/li-hrms-sub004/internal/domain/attendance"
	"github.com/Pydah-Soft-Projects/li-hrms-sub004/internal/domain/employee"
	"github.com/Pydah-Soft-Projects/li-hrms-sub004/internal/domain/payroll"
	"github.com/Pydah-Soft-Projects/li-hrms-sub004/internal/domain/report"
	"github.com/Pydah-Soft-Projects/li-hrms-sub004/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeInactive):
		BadRequest(w, "Employee is inactive", nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "No attendance recorded for this employee and month")
	case errors.Is(err, attendance.ErrInvalidMonth),
		errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, "Month must be in YYYY-MM format", nil)

	// Payroll domain errors
	case errors.Is(err, payroll.ErrConfigurationNotFound):
		NotFound(w, "No payroll configuration has been saved")
	case errors.Is(err, payroll.ErrEmptyConfiguration),
		errors.Is(err, payroll.ErrBlankHeader),
		errors.Is(err, payroll.ErrDuplicateHeader),
		errors.Is(err, payroll.ErrMissingFieldPath),
		errors.Is(err, payroll.ErrMissingFormula),
		errors.Is(err, payroll.ErrInvalidColumnSource):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, payroll.ErrNoGrossSalary):
		BadRequest(w, "Employee has no gross salary configured", nil)
	case errors.Is(err, payroll.ErrStatutoryNotConfigured):
		NotFound(w, "Statutory settings are not configured")
	case errors.Is(err, payroll.ErrPayslipNotFound):
		NotFound(w, "Payslip not found")

	// Report domain errors
	case errors.Is(err, report.ErrNoPayslipsForMonth):
		NotFound(w, "No payslips exist for this month")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
