package payroll

import (
	"github.com/Pydah-Soft-Projects/li-hrms-sub004/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// Statutory scheme names as they appear on payslip lines and in
// basePath:key field lookups.
const (
	schemeESI           = "ESI"
	schemePF            = "PF"
	schemeProfessionTax = "Profession Tax"
)

// prorationFactor is paidDays/monthDays when an explicit paid-days
// count has been supplied by a resolved column; 1 otherwise. The factor
// never exceeds 1.
func (ctx *calcContext) prorationFactor() decimal.Decimal {
	if ctx.paidDaysSignal == nil {
		return decimal.NewFromInt(1)
	}
	monthDays := ctx.effectiveMonthDays()
	if monthDays <= 0 {
		return decimal.NewFromInt(1)
	}
	factor := decimal.NewFromFloat(*ctx.paidDaysSignal).Div(decimal.NewFromFloat(monthDays))
	if factor.GreaterThan(decimal.NewFromInt(1)) {
		return decimal.NewFromInt(1)
	}
	if factor.IsNegative() {
		return decimal.Zero
	}
	return factor
}

// calcStatutory computes the employer/employee shares for the enabled
// wage-ceiling-bound schemes, each individually skippable per employee.
func (e *Engine) calcStatutory(ctx *calcContext) {
	comp := ctx.in.Employee.Compensation
	cfg := ctx.in.Statutory
	basic := ctx.slip.Earnings.BasicPay
	factor := ctx.prorationFactor()

	for _, name := range []string{"esi_employee", "esi_employer", "pf_employee", "pf_employer", "profession_tax"} {
		ctx.vars[name] = 0
	}

	var lines []payroll.StatutoryLine

	if cfg.ESI.Enabled && comp.ApplyESI {
		if line, ok := esiShares(cfg.ESI, basic); ok {
			lines = append(lines, prorateLine(line, factor))
		}
	}

	if cfg.PF.Enabled && comp.ApplyPF {
		da := decimal.Zero
		if cfg.PF.IncludeDA {
			da = ctx.in.Employee.DearnessAllowance
		}
		lines = append(lines, prorateLine(pfShares(cfg.PF, basic, da), factor))
	}

	if cfg.ProfessionTax.Enabled && comp.ApplyProfessionTax {
		if amount, ok := professionTaxAmount(cfg.ProfessionTax.Slabs, basic); ok {
			lines = append(lines, prorateLine(payroll.StatutoryLine{
				Name:     schemeProfessionTax,
				Employee: amount,
			}, factor))
		}
	}

	ctx.slip.Deductions.StatutoryDeductions = lines

	for _, l := range lines {
		switch l.Name {
		case schemeESI:
			ctx.vars["esi_employee"] = decimalToFloat(l.Employee)
			ctx.vars["esi_employer"] = decimalToFloat(l.Employer)
		case schemePF:
			ctx.vars["pf_employee"] = decimalToFloat(l.Employee)
			ctx.vars["pf_employer"] = decimalToFloat(l.Employer)
		case schemeProfessionTax:
			ctx.vars["profession_tax"] = decimalToFloat(l.Employee)
		}
	}
	ctx.vars["statutory_total"] = decimalToFloat(sumStatutoryEmployee(lines).Round(2))
}

// esiShares computes ESI on the percentage wage base. The scheme only
// applies while basic pay is within the wage ceiling; a zero ceiling
// means unlimited.
func esiShares(scheme payroll.ESIScheme, basic decimal.Decimal) (payroll.StatutoryLine, bool) {
	if !scheme.WageCeiling.IsZero() && basic.GreaterThan(scheme.WageCeiling) {
		return payroll.StatutoryLine{}, false
	}
	hundred := decimal.NewFromInt(100)
	wage := basic.Mul(scheme.WageBasePercent).Div(hundred)
	return payroll.StatutoryLine{
		Name:     schemeESI,
		Employee: wage.Mul(scheme.EmployeePercent).Div(hundred).Round(2),
		Employer: wage.Mul(scheme.EmployerPercent).Div(hundred).Round(2),
	}, true
}

// pfShares caps the contribution base at the wage ceiling before
// applying the share percentages.
func pfShares(scheme payroll.PFScheme, basic, da decimal.Decimal) payroll.StatutoryLine {
	base := basic.Add(da)
	if !scheme.WageCeiling.IsZero() && base.GreaterThan(scheme.WageCeiling) {
		base = scheme.WageCeiling
	}
	hundred := decimal.NewFromInt(100)
	return payroll.StatutoryLine{
		Name:     schemePF,
		Employee: base.Mul(scheme.EmployeePercent).Div(hundred).Round(2),
		Employer: base.Mul(scheme.EmployerPercent).Div(hundred).Round(2),
	}
}

// professionTaxAmount finds the slab covering basic pay. A slab with
// zero Max is open-ended.
func professionTaxAmount(slabs []payroll.TaxSlab, basic decimal.Decimal) (decimal.Decimal, bool) {
	for _, slab := range slabs {
		if basic.LessThan(slab.Min) {
			continue
		}
		if slab.Max.IsZero() || basic.LessThanOrEqual(slab.Max) {
			return slab.Amount, true
		}
	}
	return decimal.Zero, false
}

func prorateLine(line payroll.StatutoryLine, factor decimal.Decimal) payroll.StatutoryLine {
	if factor.Equal(decimal.NewFromInt(1)) {
		return line
	}
	line.Employee = line.Employee.Mul(factor).Round(2)
	line.Employer = line.Employer.Mul(factor).Round(2)
	return line
}
