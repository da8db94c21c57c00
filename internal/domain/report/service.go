package report

import "context"

type ReportService interface {
	// PaysheetExcel renders the month's paysheet as an xlsx workbook and
	// returns the file bytes plus a suggested filename.
	PaysheetExcel(ctx context.Context, month string) ([]byte, string, error)
}
