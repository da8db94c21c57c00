package report

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Pydah-Soft-Projects/li-hrms-sub004/internal/domain/payroll"
	"github.com/Pydah-Soft-Projects/li-hrms-sub004/internal/domain/report"
	"github.com/Pydah-Soft-Projects/li-hrms-sub004/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

type ReportServiceImpl struct {
	payrollRepo payroll.PayrollRepository
	logger      *slog.Logger
}

func NewReportService(payrollRepo payroll.PayrollRepository, logger *slog.Logger) report.ReportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportServiceImpl{payrollRepo: payrollRepo, logger: logger}
}

const paysheetSheet = "Paysheet"

// PaysheetExcel renders one worksheet: a header row in configured
// column order, one row per employee, and a totals row summing every
// numeric column.
func (s *ReportServiceImpl) PaysheetExcel(ctx context.Context, month string) ([]byte, string, error) {
	if !validator.IsValidMonthKey(month) {
		return nil, "", payroll.ErrInvalidPeriod
	}

	rows, err := s.payrollRepo.GetPaysheetRows(ctx, month)
	if err != nil {
		return nil, "", err
	}
	if len(rows) == 0 {
		return nil, "", report.ErrNoPayslipsForMonth
	}

	headers := paysheetHeaders(rows)

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(paysheetSheet)
	if err != nil {
		return nil, "", err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, "", err
		}
		if err := f.SetCellValue(paysheetSheet, cell, h); err != nil {
			return nil, "", err
		}
	}

	totals := make(map[string]float64)
	counted := make(map[string]bool)

	for i, row := range rows {
		for col, h := range headers {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, "", err
			}
			value := row.Get(h)
			if num, ok := cellNumber(value); ok {
				totals[h] += num
				counted[h] = true
				if err := f.SetCellValue(paysheetSheet, cell, num); err != nil {
					return nil, "", err
				}
				continue
			}
			if err := f.SetCellValue(paysheetSheet, cell, value); err != nil {
				return nil, "", err
			}
		}
	}

	totalsRow := len(rows) + 2
	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, totalsRow)
		if err != nil {
			return nil, "", err
		}
		var value any
		switch {
		case col == 0:
			value = "Total"
		case counted[h]:
			value = totals[h]
		default:
			continue
		}
		if err := f.SetCellValue(paysheetSheet, cell, value); err != nil {
			return nil, "", err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("paysheet-%s.xlsx", month)
	s.logger.Info("paysheet exported", "month", month, "rows", len(rows), "filename", filename)
	return buf.Bytes(), filename, nil
}

// paysheetHeaders returns the column order of the first row, extended
// with any headers that only appear in later rows. Rows produced by
// different configuration versions thus still land in one sheet.
func paysheetHeaders(rows []payroll.PaysheetRow) []string {
	var headers []string
	seen := make(map[string]bool)
	for _, row := range rows {
		for _, h := range row.Headers {
			if !seen[h] {
				seen[h] = true
				headers = append(headers, h)
			}
		}
	}
	return headers
}

func cellNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case decimal.Decimal:
		f, _ := v.Float64()
		return f, true
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}
