package payroll

import (
	"strings"

	"github.com/Pydah-Soft-Projects/li-hrms-sub004/internal/domain/employee"
	"github.com/Pydah-Soft-Projects/li-hrms-sub004/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// componentSpec is a fully resolved component: either the winning rule
// from the hierarchy or an employee override converted into the same
// shape.
type componentSpec struct {
	Name     string
	CalcType payroll.CalcType
	Amount   decimal.Decimal
	Percent  decimal.Decimal
	Base     payroll.AmountBase
	Min      *decimal.Decimal
	Max      *decimal.Decimal
	Prorate  bool
}

// resolveRule walks the hierarchy for one master: division+department
// beats department-only beats global. First match at the highest
// specificity wins.
func resolveRule(rules []payroll.ComponentRule, masterID, departmentID, divisionID string) (payroll.ComponentRule, bool) {
	var best payroll.ComponentRule
	bestRank := -1
	for _, r := range rules {
		if r.MasterID != masterID {
			continue
		}
		if r.DepartmentID != "" && r.DepartmentID != departmentID {
			continue
		}
		if r.DivisionID != "" && r.DivisionID != divisionID {
			continue
		}
		if rank := r.Specificity(); rank > bestRank {
			best = r
			bestRank = rank
		}
	}
	return best, bestRank >= 0
}

// includeMissingPolicy resolves the department-then-global flag that
// decides whether base-rule components with no employee override are
// still included. Defaults to true when nothing is configured.
func includeMissingPolicy(policies []payroll.ComponentPolicy, departmentID string) bool {
	include := true
	foundGlobal := false
	for _, p := range policies {
		if p.DepartmentID == departmentID && departmentID != "" {
			return p.IncludeMissingComponents
		}
		if p.DepartmentID == "" && !foundGlobal {
			include = p.IncludeMissingComponents
			foundGlobal = true
		}
	}
	return include
}

// findOverride matches an employee override against a master: by
// master ID when the override carries one, otherwise by
// case-insensitive name.
func findOverride(overrides []employee.ComponentOverride, master payroll.ComponentMaster) (employee.ComponentOverride, bool) {
	for _, o := range overrides {
		if o.MasterID != "" && o.MasterID == master.ID {
			return o, true
		}
		if o.MasterID == "" && strings.EqualFold(o.Name, master.Name) {
			return o, true
		}
	}
	return employee.ComponentOverride{}, false
}

func specFromRule(name string, r payroll.ComponentRule) componentSpec {
	return componentSpec{
		Name:     name,
		CalcType: r.CalcType,
		Amount:   r.Amount,
		Percent:  r.Percent,
		Base:     r.Base,
		Min:      r.MinAmount,
		Max:      r.MaxAmount,
		Prorate:  r.Prorate,
	}
}

func specFromOverride(name string, o employee.ComponentOverride) componentSpec {
	base := payroll.AmountBase(o.Base)
	if base == "" {
		base = payroll.BaseGross
	}
	return componentSpec{
		Name:     name,
		CalcType: payroll.CalcType(o.CalcType),
		Amount:   o.Amount,
		Percent:  o.Percent,
		Base:     base,
		Min:      o.Min,
		Max:      o.Max,
		Prorate:  o.Prorate,
	}
}

// effectivePaidDays prefers the explicit paid-days signal from a
// resolved output column and falls back to present + paid leave + OD.
func (ctx *calcContext) effectivePaidDays() float64 {
	if ctx.paidDaysSignal != nil {
		return *ctx.paidDaysSignal
	}
	return ctx.att.PresentDays + ctx.att.PaidLeaveDays + ctx.att.ODDays
}

func (ctx *calcContext) effectiveMonthDays() float64 {
	if ctx.monthDaysSignal != nil && *ctx.monthDaysSignal > 0 {
		return *ctx.monthDaysSignal
	}
	return ctx.att.DaysInMonth
}

// componentAmount computes one line item. Fixed amounts may be prorated
// by paid days; percentages are taken of the configured gross or the
// computed basic pay. Clamps apply after computation and the result is
// never negative.
func (e *Engine) componentAmount(ctx *calcContext, spec componentSpec) decimal.Decimal {
	var amount decimal.Decimal

	switch spec.CalcType {
	case payroll.CalcTypePercentage:
		base := ctx.in.Employee.GrossSalary
		if spec.Base == payroll.BaseBasic {
			base = ctx.slip.Earnings.BasicPay
		}
		amount = base.Mul(spec.Percent).Div(decimal.NewFromInt(100))

	default: // fixed
		amount = spec.Amount
		if spec.Prorate {
			totalDays := ctx.effectiveMonthDays()
			if totalDays > 0 {
				amount = amount.
					Div(decimal.NewFromFloat(totalDays)).
					Mul(decimal.NewFromFloat(ctx.effectivePaidDays()))
			}
		}
	}

	if spec.Min != nil && amount.LessThan(*spec.Min) {
		amount = *spec.Min
	}
	if spec.Max != nil && amount.GreaterThan(*spec.Max) {
		amount = *spec.Max
	}
	if amount.IsNegative() {
		amount = decimal.Zero
	}
	return amount.Round(2)
}

// resolveComponents merges the rule hierarchy with employee overrides
// for one component type. An override always wins over any rule layer;
// ad-hoc overrides naming no master are honored as-is. When the
// employee has overrides, base-rule components without one are only
// included if the include-missing policy says so.
func (e *Engine) resolveComponents(ctx *calcContext, compType payroll.ComponentType, overrides []employee.ComponentOverride) []payroll.LineItem {
	emp := ctx.in.Employee
	includeMissing := includeMissingPolicy(ctx.in.Policies, emp.DepartmentID)

	var items []payroll.LineItem
	matched := make(map[string]bool)

	for _, master := range ctx.in.Masters {
		if master.Type != compType || !master.IsActive {
			continue
		}

		if o, ok := findOverride(overrides, master); ok {
			matched[strings.ToLower(o.Name)] = true
			if o.MasterID != "" {
				matched[o.MasterID] = true
			}
			items = append(items, payroll.LineItem{
				Name:   master.Name,
				Amount: e.componentAmount(ctx, specFromOverride(master.Name, o)),
			})
			continue
		}

		if len(overrides) > 0 && !includeMissing {
			continue
		}
		if rule, ok := resolveRule(ctx.in.Rules, master.ID, emp.DepartmentID, emp.DivisionID); ok {
			items = append(items, payroll.LineItem{
				Name:   master.Name,
				Amount: e.componentAmount(ctx, specFromRule(master.Name, rule)),
			})
		}
	}

	// Ad-hoc overrides that matched no master still produce lines.
	for _, o := range overrides {
		if matched[strings.ToLower(o.Name)] || (o.MasterID != "" && matched[o.MasterID]) {
			continue
		}
		if o.Name == "" {
			continue
		}
		items = append(items, payroll.LineItem{
			Name:   o.Name,
			Amount: e.componentAmount(ctx, specFromOverride(o.Name, o)),
		})
	}

	return items
}

func (e *Engine) calcAllowances(ctx *calcContext) {
	items := e.resolveComponents(ctx, payroll.ComponentTypeAllowance, ctx.in.Employee.Compensation.Allowances)

	earn := &ctx.slip.Earnings
	earn.Allowances = items
	earn.TotalAllowances = sumLineItems(items).Round(2)
	ctx.vars["total_allowances"] = decimalToFloat(earn.TotalAllowances)
}

func (e *Engine) calcOtherDeductions(ctx *calcContext) {
	items := e.resolveComponents(ctx, payroll.ComponentTypeDeduction, ctx.in.Employee.Compensation.Deductions)

	ded := &ctx.slip.Deductions
	ded.OtherDeductions = items
	ctx.vars["other_deductions_total"] = decimalToFloat(sumLineItems(items).Round(2))
}
