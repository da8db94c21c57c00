package report

import (
	"bytes"
	"context"
	"testing"

	"github.com/Pydah-Soft-Projects/li-hrms-sub004/internal/domain/payroll"
	"github.com/Pydah-Soft-Projects/li-hrms-sub004/internal/domain/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type stubPayrollRepo struct {
	payroll.PayrollRepository
	rows []payroll.PaysheetRow
}

func (s *stubPayrollRepo) GetPaysheetRows(ctx context.Context, month string) ([]payroll.PaysheetRow, error) {
	return s.rows, nil
}

func paysheetRow(employeeID string, cells map[string]any, headers ...string) payroll.PaysheetRow {
	return payroll.PaysheetRow{EmployeeID: employeeID, Headers: headers, Values: cells}
}

func TestPaysheetExcelLayout(t *testing.T) {
	repo := &stubPayrollRepo{rows: []payroll.PaysheetRow{
		paysheetRow("emp-1", map[string]any{
			"Emp Code": "E001", "Basic Pay": 25000.0, "Net Salary": 24000.0,
		}, "Emp Code", "Basic Pay", "Net Salary"),
		paysheetRow("emp-2", map[string]any{
			"Emp Code": "E002", "Basic Pay": 18000.0, "Net Salary": 17500.0,
		}, "Emp Code", "Basic Pay", "Net Salary"),
	}}
	svc := NewReportService(repo, nil)

	data, filename, err := svc.PaysheetExcel(context.Background(), "2026-07")
	require.NoError(t, err)
	assert.Equal(t, "paysheet-2026-07.xlsx", filename)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	get := func(cell string) string {
		v, err := f.GetCellValue("Paysheet", cell)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "Emp Code", get("A1"))
	assert.Equal(t, "Basic Pay", get("B1"))
	assert.Equal(t, "E001", get("A2"))
	assert.Equal(t, "18000", get("B3"))

	// Totals row
	assert.Equal(t, "Total", get("A4"))
	assert.Equal(t, "43000", get("B4"))
	assert.Equal(t, "41500", get("C4"))
}

func TestPaysheetExcelRejectsBadMonth(t *testing.T) {
	svc := NewReportService(&stubPayrollRepo{}, nil)

	_, _, err := svc.PaysheetExcel(context.Background(), "July 2026")
	assert.ErrorIs(t, err, payroll.ErrInvalidPeriod)
}

func TestPaysheetExcelEmptyMonth(t *testing.T) {
	svc := NewReportService(&stubPayrollRepo{}, nil)

	_, _, err := svc.PaysheetExcel(context.Background(), "2026-07")
	assert.ErrorIs(t, err, report.ErrNoPayslipsForMonth)
}
