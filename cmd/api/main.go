package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/Pydah-Soft-Projects/li-hrms-sub004/internal/config"
	appHTTP "github.com/Pydah-Soft-Projects/li-hrms-sub004/internal/handler/http"
	"github.com/Pydah-Soft-Projects/li-hrms-sub004/internal/pkg/database"
	"github.com/Pydah-Soft-Projects/li-hrms-sub004/internal/repository/postgresql"
	payrollService "github.com/Pydah-Soft-Projects/li-hrms-sub004/internal/service/payroll"
	reportService "github.com/Pydah-Soft-Projects/li-hrms-sub004/internal/service/report"
	"github.com/go-chi/jwtauth/v5"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(
		slog.String("app", "li-hrms-payroll"),
	)

	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)

	payrollSvc := payrollService.NewPayrollService(
		db,
		payrollRepo,
		employeeRepo,
		attendanceRepo,
		logger,
		payrollService.Options{
			CycleStartDay: cfg.Payroll.CycleStartDay,
			BatchWorkers:  cfg.Payroll.BatchWorkers,
			CacheTTL:      cfg.Payroll.CacheTTL,
		},
	)
	reportSvc := reportService.NewReportService(payrollRepo, logger)

	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)

	ja := jwtauth.New("HS256", []byte(cfg.JWT.Secret), nil)
	router := appHTTP.NewRouter(ja, payrollHandler, reportHandler)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	logger.Info("server starting", "addr", addr, "env", cfg.App.Env)
	if err := http.ListenAndServe(addr, router); err != nil {
		logger.Error("server stopped", "error", err)
	}
}
