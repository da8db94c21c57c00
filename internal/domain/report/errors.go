package report

import "errors"

var (
	ErrNoPayslipsForMonth = errors.New("no payslips found for month")
)
