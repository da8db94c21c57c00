package payroll

import "context"

type PayrollService interface {
	// Configuration
	GetConfiguration(ctx context.Context) (ConfigurationResponse, error)
	ReplaceConfiguration(ctx context.Context, req ReplaceConfigurationRequest) (ConfigurationResponse, error)

	// Calculation
	CalculateEmployee(ctx context.Context, employeeID, month string) (PayslipResponse, error)
	RunMonth(ctx context.Context, req RunPayrollRequest) (BatchRunResponse, error)

	// Results
	GetPayslip(ctx context.Context, employeeID, month string) (PayslipResponse, error)
	ListPayslips(ctx context.Context, month string) ([]PayslipResponse, error)
	GetPaysheetRows(ctx context.Context, month string) ([]PaysheetRow, error)
}
