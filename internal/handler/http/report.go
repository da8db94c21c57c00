package http

import (
	"fmt"
	"net/http"

	"github.com/Pydah-Soft-Projects/li-hrms-sub004/internal/domain/report"
	"github.com/Pydah-Soft-Projects/li-hrms-sub004/internal/handler/http/response"
)

type ReportHandler interface {
	// Paysheet Export
	ExportPaysheet(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// ExportPaysheet handles GET /reports/paysheet
func (h *reportHandlerImpl) ExportPaysheet(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")

	data, filename, err := h.reportService.PaysheetExcel(r.Context(), month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := w.Write(data); err != nil {
		response.InternalServerError(w, "Failed to write file")
	}
}
