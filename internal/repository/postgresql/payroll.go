package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Pydah-Soft-Projects/li-hrms-sub004/internal/domain/payroll"
	"github.com/Pydah-Soft-Projects/li-hrms-sub004/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

// ========== CONFIGURATION ==========

// configDoc is the stored configuration document. Older documents may
// carry extra keys (a legacy steps list among them); decoding ignores
// anything not listed here.
type configDoc struct {
	OutputColumns   []payroll.OutputColumn `json:"output_columns"`
	PaidDaysHeader  string                 `json:"paid_days_header,omitempty"`
	MonthDaysHeader string                 `json:"month_days_header,omitempty"`
}

func (r *payrollRepository) GetConfiguration(ctx context.Context) (payroll.Configuration, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, doc, updated_at
		FROM payroll_configurations
		ORDER BY updated_at DESC
		LIMIT 1
	`

	var cfg payroll.Configuration
	var doc []byte
	err := q.QueryRow(ctx, query).Scan(&cfg.ID, &doc, &cfg.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Configuration{}, payroll.ErrConfigurationNotFound
		}
		return payroll.Configuration{}, fmt.Errorf("failed to get configuration: %w", err)
	}

	var d configDoc
	if err := json.Unmarshal(doc, &d); err != nil {
		return payroll.Configuration{}, fmt.Errorf("failed to decode configuration: %w", err)
	}
	cfg.OutputColumns = d.OutputColumns
	cfg.PaidDaysHeader = d.PaidDaysHeader
	cfg.MonthDaysHeader = d.MonthDaysHeader
	return cfg, nil
}

func (r *payrollRepository) ReplaceConfiguration(ctx context.Context, cfg payroll.Configuration) (payroll.Configuration, error) {
	doc, err := json.Marshal(configDoc{
		OutputColumns:   cfg.OutputColumns,
		PaidDaysHeader:  cfg.PaidDaysHeader,
		MonthDaysHeader: cfg.MonthDaysHeader,
	})
	if err != nil {
		return payroll.Configuration{}, fmt.Errorf("failed to encode configuration: %w", err)
	}

	if cfg.ID == "" {
		cfg.ID = uuid.NewString()
	}

	// Whole-document replace: the previous configuration is gone once
	// the transaction commits.
	err = WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM payroll_configurations`); err != nil {
			return fmt.Errorf("failed to clear configuration: %w", err)
		}

		query := `
			INSERT INTO payroll_configurations (id, doc, updated_at)
			VALUES ($1, $2, NOW())
			RETURNING updated_at
		`
		if err := tx.QueryRow(ctx, query, cfg.ID, doc).Scan(&cfg.UpdatedAt); err != nil {
			return fmt.Errorf("failed to insert configuration: %w", err)
		}
		return nil
	})
	if err != nil {
		return payroll.Configuration{}, err
	}
	return cfg, nil
}

// ========== RULE MASTERS ==========

func (r *payrollRepository) GetComponentMasters(ctx context.Context) ([]payroll.ComponentMaster, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, type, is_active, created_at, updated_at
		FROM component_masters
		ORDER BY name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get component masters: %w", err)
	}
	defer rows.Close()

	var masters []payroll.ComponentMaster
	for rows.Next() {
		var m payroll.ComponentMaster
		if err := rows.Scan(&m.ID, &m.Name, &m.Type, &m.IsActive, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan component master: %w", err)
		}
		masters = append(masters, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read component masters: %w", err)
	}
	return masters, nil
}

func (r *payrollRepository) GetComponentRules(ctx context.Context) ([]payroll.ComponentRule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, master_id, COALESCE(department_id, ''), COALESCE(division_id, ''),
			   calc_type, amount, percent, base, min_amount, max_amount, prorate
		FROM component_rules
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get component rules: %w", err)
	}
	defer rows.Close()

	var rules []payroll.ComponentRule
	for rows.Next() {
		var rule payroll.ComponentRule
		var minAmount, maxAmount decimal.NullDecimal
		err := rows.Scan(
			&rule.ID, &rule.MasterID, &rule.DepartmentID, &rule.DivisionID,
			&rule.CalcType, &rule.Amount, &rule.Percent, &rule.Base,
			&minAmount, &maxAmount, &rule.Prorate,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan component rule: %w", err)
		}
		if minAmount.Valid {
			rule.MinAmount = &minAmount.Decimal
		}
		if maxAmount.Valid {
			rule.MaxAmount = &maxAmount.Decimal
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read component rules: %w", err)
	}
	return rules, nil
}

func (r *payrollRepository) GetComponentPolicies(ctx context.Context) ([]payroll.ComponentPolicy, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(department_id, ''), include_missing_components
		FROM component_policies
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get component policies: %w", err)
	}
	defer rows.Close()

	var policies []payroll.ComponentPolicy
	for rows.Next() {
		var p payroll.ComponentPolicy
		if err := rows.Scan(&p.DepartmentID, &p.IncludeMissingComponents); err != nil {
			return nil, fmt.Errorf("failed to scan component policy: %w", err)
		}
		policies = append(policies, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read component policies: %w", err)
	}
	return policies, nil
}

func (r *payrollRepository) GetStatutorySettings(ctx context.Context) (payroll.StatutorySettings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT doc, updated_at
		FROM statutory_settings
		ORDER BY updated_at DESC
		LIMIT 1
	`

	var doc []byte
	var settings payroll.StatutorySettings
	err := q.QueryRow(ctx, query).Scan(&doc, &settings.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.StatutorySettings{}, payroll.ErrStatutoryNotConfigured
		}
		return payroll.StatutorySettings{}, fmt.Errorf("failed to get statutory settings: %w", err)
	}

	if err := json.Unmarshal(doc, &settings); err != nil {
		return payroll.StatutorySettings{}, fmt.Errorf("failed to decode statutory settings: %w", err)
	}
	return settings, nil
}

func (r *payrollRepository) GetOvertimeRates(ctx context.Context) ([]payroll.OvertimeRate, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT department_id, rate_per_hour FROM overtime_rates`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get overtime rates: %w", err)
	}
	defer rows.Close()

	var rates []payroll.OvertimeRate
	for rows.Next() {
		var rate payroll.OvertimeRate
		if err := rows.Scan(&rate.DepartmentID, &rate.RatePerHour); err != nil {
			return nil, fmt.Errorf("failed to scan overtime rate: %w", err)
		}
		rates = append(rates, rate)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read overtime rates: %w", err)
	}
	return rates, nil
}

// ========== RECOVERIES ==========

func (r *payrollRepository) GetActiveLoans(ctx context.Context, employeeID string) ([]payroll.LoanAccount, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, monthly_emi, outstanding, is_active
		FROM loans
		WHERE employee_id = $1 AND is_active = TRUE AND outstanding > 0
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get loans: %w", err)
	}
	defer rows.Close()

	var loans []payroll.LoanAccount
	for rows.Next() {
		var l payroll.LoanAccount
		if err := rows.Scan(&l.ID, &l.EmployeeID, &l.MonthlyEMI, &l.Outstanding, &l.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan loan: %w", err)
		}
		loans = append(loans, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read loans: %w", err)
	}
	return loans, nil
}

func (r *payrollRepository) GetOpenAdvances(ctx context.Context, employeeID string) ([]payroll.Advance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, recovery_amount, outstanding
		FROM advances
		WHERE employee_id = $1 AND outstanding > 0
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get advances: %w", err)
	}
	defer rows.Close()

	var advances []payroll.Advance
	for rows.Next() {
		var a payroll.Advance
		if err := rows.Scan(&a.ID, &a.EmployeeID, &a.RecoveryAmount, &a.Outstanding); err != nil {
			return nil, fmt.Errorf("failed to scan advance: %w", err)
		}
		advances = append(advances, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read advances: %w", err)
	}
	return advances, nil
}

func (r *payrollRepository) GetArrears(ctx context.Context, employeeID, month string) ([]payroll.ArrearsEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, month, amount, COALESCE(reason, '')
		FROM arrears
		WHERE employee_id = $1 AND month = $2
	`

	rows, err := q.Query(ctx, query, employeeID, month)
	if err != nil {
		return nil, fmt.Errorf("failed to get arrears: %w", err)
	}
	defer rows.Close()

	var entries []payroll.ArrearsEntry
	for rows.Next() {
		var e payroll.ArrearsEntry
		if err := rows.Scan(&e.ID, &e.EmployeeID, &e.Month, &e.Amount, &e.Reason); err != nil {
			return nil, fmt.Errorf("failed to scan arrears entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read arrears: %w", err)
	}
	return entries, nil
}

// ========== PAYSLIPS ==========

// rowDoc is the stored paysheet row.
type rowDoc struct {
	Headers []string       `json:"headers"`
	Values  map[string]any `json:"values"`
}

func (r *payrollRepository) UpsertPayslip(ctx context.Context, slip payroll.Payslip, row payroll.PaysheetRow) (payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	if slip.ID == "" {
		slip.ID = uuid.NewString()
	}

	doc, err := json.Marshal(slip)
	if err != nil {
		return payroll.Payslip{}, fmt.Errorf("failed to encode payslip: %w", err)
	}
	rowJSON, err := json.Marshal(rowDoc{Headers: row.Headers, Values: row.Values})
	if err != nil {
		return payroll.Payslip{}, fmt.Errorf("failed to encode paysheet row: %w", err)
	}

	query := `
		INSERT INTO payslips (id, employee_id, month, doc, row_doc, net_salary, generated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (employee_id, month) DO UPDATE SET
			doc = EXCLUDED.doc,
			row_doc = EXCLUDED.row_doc,
			net_salary = EXCLUDED.net_salary,
			generated_at = EXCLUDED.generated_at
		RETURNING id
	`

	err = q.QueryRow(ctx, query,
		slip.ID, slip.EmployeeID, slip.Month, doc, rowJSON, slip.NetSalary, slip.GeneratedAt,
	).Scan(&slip.ID)
	if err != nil {
		return payroll.Payslip{}, fmt.Errorf("failed to upsert payslip: %w", err)
	}
	return slip, nil
}

func (r *payrollRepository) GetPayslip(ctx context.Context, employeeID, month string) (payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT id, doc FROM payslips WHERE employee_id = $1 AND month = $2`

	var id string
	var doc []byte
	err := q.QueryRow(ctx, query, employeeID, month).Scan(&id, &doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Payslip{}, payroll.ErrPayslipNotFound
		}
		return payroll.Payslip{}, fmt.Errorf("failed to get payslip: %w", err)
	}

	var slip payroll.Payslip
	if err := json.Unmarshal(doc, &slip); err != nil {
		return payroll.Payslip{}, fmt.Errorf("failed to decode payslip: %w", err)
	}
	slip.ID = id
	return slip, nil
}

func (r *payrollRepository) ListPayslips(ctx context.Context, month string) ([]payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT id, doc FROM payslips WHERE month = $1 ORDER BY employee_id`

	rows, err := q.Query(ctx, query, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list payslips: %w", err)
	}
	defer rows.Close()

	var slips []payroll.Payslip
	for rows.Next() {
		var id string
		var doc []byte
		if err := rows.Scan(&id, &doc); err != nil {
			return nil, fmt.Errorf("failed to scan payslip: %w", err)
		}
		var slip payroll.Payslip
		if err := json.Unmarshal(doc, &slip); err != nil {
			return nil, fmt.Errorf("failed to decode payslip: %w", err)
		}
		slip.ID = id
		slips = append(slips, slip)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read payslips: %w", err)
	}
	return slips, nil
}

func (r *payrollRepository) GetPaysheetRows(ctx context.Context, month string) ([]payroll.PaysheetRow, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT employee_id, row_doc FROM payslips WHERE month = $1 ORDER BY employee_id`

	rows, err := q.Query(ctx, query, month)
	if err != nil {
		return nil, fmt.Errorf("failed to get paysheet rows: %w", err)
	}
	defer rows.Close()

	var result []payroll.PaysheetRow
	for rows.Next() {
		var employeeID string
		var doc []byte
		if err := rows.Scan(&employeeID, &doc); err != nil {
			return nil, fmt.Errorf("failed to scan paysheet row: %w", err)
		}
		var d rowDoc
		if err := json.Unmarshal(doc, &d); err != nil {
			return nil, fmt.Errorf("failed to decode paysheet row: %w", err)
		}
		row := payroll.PaysheetRow{EmployeeID: employeeID, Headers: d.Headers, Values: d.Values}
		if row.Values == nil {
			row.Values = make(map[string]any)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read paysheet rows: %w", err)
	}
	return result, nil
}
