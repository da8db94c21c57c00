package payroll

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Pydah-Soft-Projects/li-hrms-sub004/internal/domain/attendance"
	"github.com/Pydah-Soft-Projects/li-hrms-sub004/internal/domain/employee"
	"github.com/Pydah-Soft-Projects/li-hrms-sub004/internal/domain/payroll"
	"github.com/Pydah-Soft-Projects/li-hrms-sub004/internal/pkg/database"
	"github.com/Pydah-Soft-Projects/li-hrms-sub004/internal/pkg/validator"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Options are the run-time knobs for the calculation service.
type Options struct {
	// CycleStartDay anchors the pay-cycle window. 1 means calendar month.
	CycleStartDay int
	// BatchWorkers bounds the per-employee concurrency of a month run.
	BatchWorkers int
	// CacheTTL bounds how long rule-master data is reused across runs.
	CacheTTL time.Duration
}

func (o Options) withDefaults() Options {
	if o.CycleStartDay < 1 {
		o.CycleStartDay = 1
	}
	if o.BatchWorkers < 1 {
		o.BatchWorkers = 8
	}
	if o.CacheTTL <= 0 {
		o.CacheTTL = time.Minute
	}
	return o
}

type PayrollServiceImpl struct {
	db             *database.DB
	payrollRepo    payroll.PayrollRepository
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	engine         *Engine
	cache          *ruleCache
	opts           Options
	logger         *slog.Logger
}

func NewPayrollService(
	db *database.DB,
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	logger *slog.Logger,
	opts Options,
) payroll.PayrollService {
	if logger == nil {
		logger = slog.Default()
	}
	opts = opts.withDefaults()
	return &PayrollServiceImpl{
		db:             db,
		payrollRepo:    payrollRepo,
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		engine:         NewEngine(logger),
		cache:          newRuleCache(payrollRepo, opts.CacheTTL),
		opts:           opts,
		logger:         logger,
	}
}

// ========== CONFIGURATION ==========

func (s *PayrollServiceImpl) GetConfiguration(ctx context.Context) (payroll.ConfigurationResponse, error) {
	cfg, err := s.payrollRepo.GetConfiguration(ctx)
	if err != nil {
		return payroll.ConfigurationResponse{}, err
	}
	return payroll.ToConfigurationResponse(cfg), nil
}

func (s *PayrollServiceImpl) ReplaceConfiguration(ctx context.Context, req payroll.ReplaceConfigurationRequest) (payroll.ConfigurationResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.ConfigurationResponse{}, err
	}

	cfg := payroll.Configuration{
		ID:              uuid.NewString(),
		OutputColumns:   req.OutputColumns,
		PaidDaysHeader:  req.PaidDaysHeader,
		MonthDaysHeader: req.MonthDaysHeader,
	}

	saved, err := s.payrollRepo.ReplaceConfiguration(ctx, cfg)
	if err != nil {
		return payroll.ConfigurationResponse{}, err
	}

	s.cache.Invalidate()
	return payroll.ToConfigurationResponse(saved), nil
}

// ========== CALCULATION ==========

func (s *PayrollServiceImpl) CalculateEmployee(ctx context.Context, employeeID, month string) (payroll.PayslipResponse, error) {
	if !validator.IsValidMonthKey(month) {
		return payroll.PayslipResponse{}, payroll.ErrInvalidPeriod
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}
	if !emp.IsActive {
		return payroll.PayslipResponse{}, employee.ErrEmployeeInactive
	}

	cfg, err := s.payrollRepo.GetConfiguration(ctx)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}
	req := AnalyzeRequirements(cfg)

	snap, err := s.cache.Snapshot(ctx, req)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}

	agg, err := s.attendanceRepo.GetMonthlyAggregate(ctx, employeeID, month)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}

	in, err := s.buildInput(ctx, emp, agg, month, cfg, snap, req)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}

	slip, row, err := s.engine.Run(ctx, in)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}

	saved, err := s.payrollRepo.UpsertPayslip(ctx, slip, row)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}

	s.logger.Info("payslip calculated",
		"employee_id", employeeID,
		"month", month,
		"net_salary", saved.NetSalary,
	)
	return payroll.ToPayslipResponse(saved), nil
}

func (s *PayrollServiceImpl) RunMonth(ctx context.Context, req payroll.RunPayrollRequest) (payroll.BatchRunResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.BatchRunResponse{}, err
	}

	cfg, err := s.payrollRepo.GetConfiguration(ctx)
	if err != nil {
		return payroll.BatchRunResponse{}, err
	}
	reqs := AnalyzeRequirements(cfg)

	snap, err := s.cache.Snapshot(ctx, reqs)
	if err != nil {
		return payroll.BatchRunResponse{}, err
	}

	var employees []employee.Employee
	if len(req.EmployeeIDs) > 0 {
		employees, err = s.employeeRepo.GetByIDs(ctx, req.EmployeeIDs)
	} else {
		employees, err = s.employeeRepo.GetActive(ctx)
	}
	if err != nil {
		return payroll.BatchRunResponse{}, err
	}

	ids := make([]string, 0, len(employees))
	for _, emp := range employees {
		ids = append(ids, emp.ID)
	}
	aggs, err := s.attendanceRepo.GetMonthlyAggregates(ctx, req.Month, ids)
	if err != nil {
		return payroll.BatchRunResponse{}, err
	}
	aggByID := make(map[string]attendance.MonthlyAggregate, len(aggs))
	for _, a := range aggs {
		aggByID[a.EmployeeID] = a
	}

	var (
		mu        sync.Mutex
		processed int
		skipped   []payroll.SkippedEmployee
	)
	skip := func(id, reason string) {
		mu.Lock()
		skipped = append(skipped, payroll.SkippedEmployee{EmployeeID: id, Reason: reason})
		mu.Unlock()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.BatchWorkers)

	for _, emp := range employees {
		g.Go(func() error {
			if !emp.IsActive {
				skip(emp.ID, employee.ErrEmployeeInactive.Error())
				return nil
			}
			agg, ok := aggByID[emp.ID]
			if !ok {
				skip(emp.ID, attendance.ErrAttendanceNotFound.Error())
				return nil
			}

			in, err := s.buildInput(gctx, emp, agg, req.Month, cfg, snap, reqs)
			if err != nil {
				skip(emp.ID, err.Error())
				return nil
			}

			slip, row, err := s.engine.Run(gctx, in)
			if err != nil {
				skip(emp.ID, err.Error())
				return nil
			}

			if _, err := s.payrollRepo.UpsertPayslip(gctx, slip, row); err != nil {
				s.logger.Error("payslip upsert failed",
					"employee_id", emp.ID,
					"month", req.Month,
					"error", err,
				)
				skip(emp.ID, err.Error())
				return nil
			}

			mu.Lock()
			processed++
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return payroll.BatchRunResponse{}, err
	}

	s.logger.Info("payroll month run finished",
		"month", req.Month,
		"processed", processed,
		"skipped", len(skipped),
	)
	return payroll.BatchRunResponse{
		Month:     req.Month,
		Processed: processed,
		Skipped:   skipped,
	}, nil
}

// buildInput assembles one employee's calculation input, fetching only
// the per-employee recoveries the configured columns can reach.
func (s *PayrollServiceImpl) buildInput(
	ctx context.Context,
	emp employee.Employee,
	agg attendance.MonthlyAggregate,
	month string,
	cfg payroll.Configuration,
	snap ruleSnapshot,
	reqs Requirements,
) (CalculationInput, error) {
	in := CalculationInput{
		Employee:  emp,
		Aggregate: agg,
		Month:     month,
		Config:    cfg,
		Masters:   snap.Masters,
		Rules:     snap.Rules,
		Policies:  snap.Policies,
		Statutory: snap.Statutory,
		OTRates:   snap.OTRates,
		CycleDays: cycleWindowDays(month, s.opts.CycleStartDay),
	}

	var err error
	if reqs.NeedsLoans() {
		if in.Loans, err = s.payrollRepo.GetActiveLoans(ctx, emp.ID); err != nil {
			return CalculationInput{}, err
		}
		if in.Advances, err = s.payrollRepo.GetOpenAdvances(ctx, emp.ID); err != nil {
			return CalculationInput{}, err
		}
	}
	if reqs.NeedsArrears() {
		if in.Arrears, err = s.payrollRepo.GetArrears(ctx, emp.ID, month); err != nil {
			return CalculationInput{}, err
		}
	}
	return in, nil
}

// ========== RESULTS ==========

func (s *PayrollServiceImpl) GetPayslip(ctx context.Context, employeeID, month string) (payroll.PayslipResponse, error) {
	if !validator.IsValidMonthKey(month) {
		return payroll.PayslipResponse{}, payroll.ErrInvalidPeriod
	}

	slip, err := s.payrollRepo.GetPayslip(ctx, employeeID, month)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}
	return payroll.ToPayslipResponse(slip), nil
}

func (s *PayrollServiceImpl) ListPayslips(ctx context.Context, month string) ([]payroll.PayslipResponse, error) {
	if !validator.IsValidMonthKey(month) {
		return nil, payroll.ErrInvalidPeriod
	}

	slips, err := s.payrollRepo.ListPayslips(ctx, month)
	if err != nil {
		return nil, err
	}

	result := make([]payroll.PayslipResponse, 0, len(slips))
	for _, slip := range slips {
		result = append(result, payroll.ToPayslipResponse(slip))
	}
	return result, nil
}

func (s *PayrollServiceImpl) GetPaysheetRows(ctx context.Context, month string) ([]payroll.PaysheetRow, error) {
	if !validator.IsValidMonthKey(month) {
		return nil, payroll.ErrInvalidPeriod
	}
	return s.payrollRepo.GetPaysheetRows(ctx, month)
}
