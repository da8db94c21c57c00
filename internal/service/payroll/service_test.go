package payroll

import (
	"context"
	"testing"

	"github.com/Pydah-Soft-Projects/li-hrms-sub004/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPayrollRepo struct {
	payroll.PayrollRepository
	payslips []payroll.Payslip
}

func (s *stubPayrollRepo) ListPayslips(ctx context.Context, month string) ([]payroll.Payslip, error) {
	return s.payslips, nil
}

func TestListPayslipsForMonth(t *testing.T) {
	repo := &stubPayrollRepo{payslips: []payroll.Payslip{
		{ID: "p-1", EmployeeID: "emp-1", EmployeeCode: "E001", Month: "2026-07", NetSalary: decimal.NewFromInt(24000)},
		{ID: "p-2", EmployeeID: "emp-2", EmployeeCode: "E002", Month: "2026-07", NetSalary: decimal.NewFromInt(17500)},
	}}
	svc := NewPayrollService(nil, repo, nil, nil, nil, Options{})

	result, err := svc.ListPayslips(context.Background(), "2026-07")
	require.NoError(t, err)

	require.Len(t, result, 2)
	assert.Equal(t, "E001", result[0].EmployeeCode)
	assert.Equal(t, "24000", result[0].NetSalary.String())
	assert.Equal(t, "E002", result[1].EmployeeCode)
}

func TestListPayslipsRejectsBadMonth(t *testing.T) {
	svc := NewPayrollService(nil, &stubPayrollRepo{}, nil, nil, nil, Options{})

	_, err := svc.ListPayslips(context.Background(), "July 2026")
	assert.ErrorIs(t, err, payroll.ErrInvalidPeriod)
}
