package payroll

import (
	"sort"
	"time"

	"github.com/Pydah-Soft-Projects/li-hrms-sub004/internal/domain/attendance"
	"github.com/Pydah-Soft-Projects/li-hrms-sub004/internal/pkg/formula"
	"github.com/shopspring/decimal"
)

// ComponentType enum
type ComponentType string

const (
	ComponentTypeAllowance ComponentType = "allowance"
	ComponentTypeDeduction ComponentType = "deduction"
)

// CalcType enum
type CalcType string

const (
	CalcTypeFixed      CalcType = "fixed"
	CalcTypePercentage CalcType = "percentage"
)

// AmountBase enum - what a percentage component is computed against.
type AmountBase string

const (
	BaseBasic AmountBase = "basic"
	BaseGross AmountBase = "gross"
)

// ComponentMaster - a named allowance or deduction definition.
type ComponentMaster struct {
	ID        string
	Name      string
	Type      ComponentType
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ComponentRule is one layer of the rule hierarchy for a component
// master. Specificity: DivisionID+DepartmentID > DepartmentID > global
// (both empty). The most specific matching rule wins; employee
// overrides beat all of them.
type ComponentRule struct {
	ID           string
	MasterID     string
	DepartmentID string // empty matches any department
	DivisionID   string // empty matches any division
	CalcType     CalcType
	Amount       decimal.Decimal
	Percent      decimal.Decimal
	Base         AmountBase
	MinAmount    *decimal.Decimal
	MaxAmount    *decimal.Decimal
	Prorate      bool
}

// Specificity ranks a rule for the resolver chain.
func (r ComponentRule) Specificity() int {
	switch {
	case r.DivisionID != "" && r.DepartmentID != "":
		return 2
	case r.DepartmentID != "":
		return 1
	}
	return 0
}

// ComponentPolicy controls whether base-rule components with no
// employee override are still included. Resolved department first,
// then global (empty DepartmentID).
type ComponentPolicy struct {
	DepartmentID             string
	IncludeMissingComponents bool
}

// ========== STATUTORY ==========

type ESIScheme struct {
	Enabled         bool            `json:"enabled"`
	WageBasePercent decimal.Decimal `json:"wage_base_percent"`
	// WageCeiling of zero means unlimited.
	WageCeiling     decimal.Decimal `json:"wage_ceiling"`
	EmployeePercent decimal.Decimal `json:"employee_percent"`
	EmployerPercent decimal.Decimal `json:"employer_percent"`
}

type PFScheme struct {
	Enabled         bool            `json:"enabled"`
	IncludeDA       bool            `json:"include_da"`
	WageCeiling     decimal.Decimal `json:"wage_ceiling"`
	EmployeePercent decimal.Decimal `json:"employee_percent"`
	EmployerPercent decimal.Decimal `json:"employer_percent"`
}

// TaxSlab is one profession tax bracket. Max of zero marks the last,
// open-ended slab.
type TaxSlab struct {
	Min    decimal.Decimal `json:"min"`
	Max    decimal.Decimal `json:"max"`
	Amount decimal.Decimal `json:"amount"`
}

type ProfessionTaxScheme struct {
	Enabled bool      `json:"enabled"`
	Slabs   []TaxSlab `json:"slabs,omitempty"`
}

type StatutorySettings struct {
	ESI           ESIScheme           `json:"esi"`
	PF            PFScheme            `json:"pf"`
	ProfessionTax ProfessionTaxScheme `json:"profession_tax"`
	UpdatedAt     time.Time           `json:"-"`
}

// OvertimeRate - department-scoped OT rate per hour.
type OvertimeRate struct {
	DepartmentID string
	RatePerHour  decimal.Decimal
}

// ========== RECOVERIES ==========

type LoanAccount struct {
	ID          string
	EmployeeID  string
	MonthlyEMI  decimal.Decimal
	Outstanding decimal.Decimal
	IsActive    bool
}

type Advance struct {
	ID             string
	EmployeeID     string
	RecoveryAmount decimal.Decimal
	Outstanding    decimal.Decimal
}

type ArrearsEntry struct {
	ID         string
	EmployeeID string
	Month      string
	Amount     decimal.Decimal
	Reason     string
}

// ========== CONFIGURATION ==========

// ColumnSource enum
type ColumnSource string

const (
	SourceField   ColumnSource = "field"
	SourceFormula ColumnSource = "formula"
)

// OutputColumn is one configured paysheet column: either a field path
// into the payslip or a formula over previously resolved columns.
type OutputColumn struct {
	Header  string       `json:"header"`
	Source  ColumnSource `json:"source"`
	Field   string       `json:"field,omitempty"`
	Formula string       `json:"formula,omitempty"`
	Order   int          `json:"order"`
}

// Configuration is the ordered output column list driving the
// calculation pipeline. Whole-document replace; only OutputColumns is
// load-bearing (the legacy steps list is ignored on read).
type Configuration struct {
	ID            string
	OutputColumns []OutputColumn
	// PaidDaysHeader and MonthDaysHeader explicitly designate the
	// columns feeding late-bound proration. When empty, conventional
	// header names are auto-detected.
	PaidDaysHeader  string
	MonthDaysHeader string
	UpdatedAt       time.Time
}

// SortedColumns returns the output columns in ascending order without
// mutating the configuration.
func (c Configuration) SortedColumns() []OutputColumn {
	cols := make([]OutputColumn, len(c.OutputColumns))
	copy(cols, c.OutputColumns)
	sort.SliceStable(cols, func(i, j int) bool { return cols[i].Order < cols[j].Order })
	return cols
}

// Validate enforces the configuration invariants: every column names a
// header, headers must be unique after normalization (they become
// formula variable names), and each column carries the payload its
// source requires.
func (c Configuration) Validate() error {
	if len(c.OutputColumns) == 0 {
		return ErrEmptyConfiguration
	}
	seen := make(map[string]bool, len(c.OutputColumns))
	for _, col := range c.OutputColumns {
		key := formula.NormalizeKey(col.Header)
		if key == "" {
			return ErrBlankHeader
		}
		if seen[key] {
			return ErrDuplicateHeader
		}
		seen[key] = true

		switch col.Source {
		case SourceField:
			if col.Field == "" {
				return ErrMissingFieldPath
			}
		case SourceFormula:
			if col.Formula == "" {
				return ErrMissingFormula
			}
		default:
			return ErrInvalidColumnSource
		}
	}
	return nil
}

// ========== PAYSLIP ==========

type LineItem struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

type StatutoryLine struct {
	Name     string          `json:"name"`
	Employee decimal.Decimal `json:"employee"`
	Employer decimal.Decimal `json:"employer"`
}

type Earnings struct {
	BasicPay        decimal.Decimal `json:"basic_pay"`
	PerDayBasicPay  decimal.Decimal `json:"per_day_basic_pay"`
	OTPay           decimal.Decimal `json:"ot_pay"`
	Allowances      []LineItem      `json:"allowances"`
	TotalAllowances decimal.Decimal `json:"total_allowances"`
	GrossSalary     decimal.Decimal `json:"gross_salary"`
	Incentive       decimal.Decimal `json:"incentive"`
}

type Deductions struct {
	AttendanceDeduction decimal.Decimal `json:"attendance_deduction"`
	OtherDeductions     []LineItem      `json:"other_deductions"`
	StatutoryDeductions []StatutoryLine `json:"statutory_deductions"`
	TotalDeductions     decimal.Decimal `json:"total_deductions"`
}

type LoanAdvance struct {
	TotalEMI         decimal.Decimal `json:"total_emi"`
	AdvanceDeduction decimal.Decimal `json:"advance_deduction"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
}

type Arrears struct {
	ArrearsAmount decimal.Decimal `json:"arrears_amount"`
}

// Payslip is the system of record for one employee-month. Recomputing
// the same employee-month with unchanged inputs replaces it with an
// identical document.
type Payslip struct {
	ID           string             `json:"id"`
	EmployeeID   string             `json:"employee_id"`
	EmployeeCode string             `json:"employee_code"`
	EmployeeName string             `json:"employee_name"`
	Month        string             `json:"month"`
	Attendance   attendance.Summary `json:"attendance"`
	Earnings     Earnings           `json:"earnings"`
	Deductions   Deductions         `json:"deductions"`
	LoanAdvance  LoanAdvance        `json:"loan_advance"`
	Arrears      Arrears            `json:"arrears"`
	NetSalary    decimal.Decimal    `json:"net_salary"`
	RoundOff     decimal.Decimal    `json:"round_off"`
	GeneratedAt  time.Time          `json:"generated_at"`
}

// PaysheetRow is the payslip flattened into header -> value cells in
// configured column order, for tabular export.
type PaysheetRow struct {
	EmployeeID string
	Headers    []string
	Values     map[string]any
}

func NewPaysheetRow(employeeID string) PaysheetRow {
	return PaysheetRow{EmployeeID: employeeID, Values: make(map[string]any)}
}

func (r *PaysheetRow) Set(header string, value any) {
	if _, exists := r.Values[header]; !exists {
		r.Headers = append(r.Headers, header)
	}
	r.Values[header] = value
}

func (r PaysheetRow) Get(header string) any {
	return r.Values[header]
}
