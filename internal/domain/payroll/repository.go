package payroll

import "context"

// PayrollRepository defines data access for the calculation engine's
// inputs and its payslip output. The engine only ever reads rule data;
// payslips are the single thing it writes.
type PayrollRepository interface {
	// Configuration
	GetConfiguration(ctx context.Context) (Configuration, error)
	ReplaceConfiguration(ctx context.Context, cfg Configuration) (Configuration, error)

	// Rule masters
	GetComponentMasters(ctx context.Context) ([]ComponentMaster, error)
	GetComponentRules(ctx context.Context) ([]ComponentRule, error)
	GetComponentPolicies(ctx context.Context) ([]ComponentPolicy, error)
	GetStatutorySettings(ctx context.Context) (StatutorySettings, error)
	GetOvertimeRates(ctx context.Context) ([]OvertimeRate, error)

	// Recoveries
	GetActiveLoans(ctx context.Context, employeeID string) ([]LoanAccount, error)
	GetOpenAdvances(ctx context.Context, employeeID string) ([]Advance, error)
	GetArrears(ctx context.Context, employeeID, month string) ([]ArrearsEntry, error)

	// Payslips
	UpsertPayslip(ctx context.Context, slip Payslip, row PaysheetRow) (Payslip, error)
	GetPayslip(ctx context.Context, employeeID, month string) (Payslip, error)
	ListPayslips(ctx context.Context, month string) ([]Payslip, error)
	GetPaysheetRows(ctx context.Context, month string) ([]PaysheetRow, error)
}
