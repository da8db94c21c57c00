package payroll

import (
	"github.com/Pydah-Soft-Projects/li-hrms-sub004/internal/domain/payroll"
	"github.com/Pydah-Soft-Projects/li-hrms-sub004/internal/pkg/formula"
)

// varCalculators maps the formula variables a calculator publishes back
// to the calculators that produce them, so a formula column can pull in
// exactly the computation it references.
var varCalculators = map[string][]calcKind{
	"basic_pay":     {calcBasicPay},
	"per_day_basic": {calcBasicPay},
	"paid_days":     {calcBasicPay},
	"extra_days":    {calcBasicPay},
	"incentive":     {calcBasicPay},

	"ot_pay": {calcOvertime},

	"total_allowances": {calcAllowances},

	"other_deductions_total": {calcOtherDeductions},

	"esi_employee":    {calcStatutory},
	"esi_employer":    {calcStatutory},
	"pf_employee":     {calcStatutory},
	"pf_employer":     {calcStatutory},
	"profession_tax":  {calcStatutory},
	"statutory_total": {calcStatutory},

	"attendance_deduction": {calcBasicPay, calcAttendanceDeduction},

	"loan_emi":          {calcLoanAdvance},
	"advance_deduction": {calcLoanAdvance},

	"arrears_amount": {calcArrears},

	"earned_gross":     grossCalculators,
	"total_deductions": deductionCalculators,
	"net_salary":       allCalculators,
}

// Requirements is the set of calculators a configuration's columns can
// reach. The service uses it to skip fetching inputs no column will
// ever read.
type Requirements struct {
	calcs map[calcKind]bool
}

// AnalyzeRequirements walks the configured columns and collects every
// calculator they demand, directly through field paths or indirectly
// through formula variables. Formula variables that only name earlier
// columns contribute nothing extra; those columns are analyzed on their
// own.
func AnalyzeRequirements(cfg payroll.Configuration) Requirements {
	req := Requirements{calcs: make(map[calcKind]bool)}
	for _, col := range cfg.OutputColumns {
		switch col.Source {
		case payroll.SourceField:
			req.add(fieldCalculators(col.Field))
		case payroll.SourceFormula:
			for _, name := range formula.Variables(col.Formula) {
				req.add(varCalculators[name])
			}
		}
	}
	return req
}

func (r Requirements) add(kinds []calcKind) {
	for _, k := range kinds {
		r.calcs[k] = true
	}
}

func (r Requirements) needs(kind calcKind) bool {
	return r.calcs[kind]
}

// NeedsComponents reports whether component masters, rules and policies
// must be fetched.
func (r Requirements) NeedsComponents() bool {
	return r.needs(calcAllowances) || r.needs(calcOtherDeductions)
}

func (r Requirements) NeedsStatutory() bool {
	return r.needs(calcStatutory)
}

func (r Requirements) NeedsOvertimeRates() bool {
	return r.needs(calcOvertime)
}

func (r Requirements) NeedsLoans() bool {
	return r.needs(calcLoanAdvance)
}

func (r Requirements) NeedsArrears() bool {
	return r.needs(calcArrears)
}
