package payroll

import "errors"

var (
	ErrConfigurationNotFound = errors.New("payroll configuration not found")
	ErrEmptyConfiguration    = errors.New("payroll configuration has no output columns")
	ErrBlankHeader           = errors.New("output column header is blank")
	ErrDuplicateHeader       = errors.New("output column headers must be unique after normalization")
	ErrMissingFieldPath      = errors.New("field column requires a field path")
	ErrMissingFormula        = errors.New("formula column requires a formula")
	ErrInvalidColumnSource   = errors.New("output column source must be 'field' or 'formula'")

	ErrPayslipNotFound        = errors.New("payslip not found")
	ErrStatutoryNotConfigured = errors.New("statutory settings not configured")
	ErrInvalidPeriod          = errors.New("invalid payroll period")
	ErrNoGrossSalary          = errors.New("employee has no gross salary configured")
)
