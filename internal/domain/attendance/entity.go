package attendance

// MonthlyAggregate is the raw per-employee-month attendance rollup as
// recorded by the attendance subsystem. Day counts are float64 because
// half-day shifts exist.
type MonthlyAggregate struct {
	EmployeeID         string
	Month              string // YYYY-MM
	TotalDays          int
	PresentDays        float64
	ODDays             float64
	PaidLeaveDays      float64
	WeeklyOffs         float64
	Holidays           float64
	AbsentDays         float64
	OTHours            float64
	LOPDays            float64
	EarnedLeaveBalance float64
	LateInCount        int
	EarlyOutCount      int
	PermissionCount    int
}

// Summary is the canonical attendance record the payroll engine works
// from, produced once per calculation by the normalizer and immutable
// afterwards. Invariant: PresentDays + WeeklyOffs + Holidays +
// PaidLeaveDays + AbsentDays == DaysInMonth, with absent as the
// balancing term.
type Summary struct {
	EmployeeID string `json:"employee_id"`
	Month      string `json:"month"`
	// DaysInMonth is anchored to the configured pay-cycle window, not
	// the calendar month.
	DaysInMonth float64 `json:"days_in_month"`
	// PayableShifts folds in present and on-duty days, plus any earned
	// leave consumed as payday-equivalent.
	PayableShifts   float64 `json:"payable_shifts"`
	PresentDays     float64 `json:"present_days"`
	ODDays          float64 `json:"od_days"`
	PaidLeaveDays   float64 `json:"paid_leave_days"`
	WeeklyOffs      float64 `json:"weekly_offs"`
	Holidays        float64 `json:"holidays"`
	AbsentDays      float64 `json:"absent_days"`
	OTHours         float64 `json:"ot_hours"`
	LOPDays         float64 `json:"lop_days"`
	EarnedLeaveUsed float64 `json:"earned_leave_used"`
	LateInCount     int     `json:"late_in_count"`
	EarlyOutCount   int     `json:"early_out_count"`
	PermissionCount int     `json:"permission_count"`
}
