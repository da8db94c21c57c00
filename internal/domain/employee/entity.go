package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID           string
	Code         string
	Name         string
	DepartmentID string
	DivisionID   string
	// GrossSalary is the monthly gross used as the basic pay base.
	GrossSalary       decimal.Decimal
	DearnessAllowance decimal.Decimal
	Compensation      CompensationProfile
	IsActive          bool
	JoinedAt          time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// CompensationProfile carries the statutory and attendance-deduction
// flags plus the per-employee component overrides. Read-only input to
// the calculation engine.
type CompensationProfile struct {
	ApplyESI                 bool `json:"apply_esi"`
	ApplyPF                  bool `json:"apply_pf"`
	ApplyProfessionTax       bool `json:"apply_profession_tax"`
	ApplyAttendanceDeduction bool `json:"apply_attendance_deduction"`
	DeductLateIn             bool `json:"deduct_late_in"`
	DeductEarlyOut           bool `json:"deduct_early_out"`
	DeductPermission         bool `json:"deduct_permission"`
	DeductAbsent             bool `json:"deduct_absent"`
	// EarnedLeavePayday marks earned leave as payday-equivalent: unused
	// balance is consumed into payable shifts during normalization.
	EarnedLeavePayday bool `json:"earned_leave_payday"`

	Allowances []ComponentOverride `json:"allowances,omitempty"`
	Deductions []ComponentOverride `json:"deductions,omitempty"`
}

// ComponentOverride replaces a matching base component rule for this
// employee. Matching is by MasterID when set, otherwise by
// case-insensitive name.
type ComponentOverride struct {
	MasterID string          `json:"master_id,omitempty"`
	Name     string          `json:"name"`
	CalcType string          `json:"calc_type"` // "fixed" or "percentage"
	Amount   decimal.Decimal `json:"amount"`
	Percent  decimal.Decimal `json:"percent"`
	Base     string          `json:"base,omitempty"` // "basic" or "gross"
	Min      *decimal.Decimal `json:"min,omitempty"`
	Max      *decimal.Decimal `json:"max,omitempty"`
	Prorate  bool            `json:"prorate"`
}
