package payroll

import (
	"github.com/Pydah-Soft-Projects/li-hrms-sub004/internal/domain/payroll"
	"github.com/Pydah-Soft-Projects/li-hrms-sub004/internal/pkg/formula"
	"github.com/shopspring/decimal"
)

// Conventional header names recognized as proration signals when the
// configuration does not designate columns explicitly.
var (
	autoPaidDayKeys  = map[string]bool{"paid_days": true, "total_paid_days": true, "present_days": true}
	autoMonthDayKeys = map[string]bool{"month_days": true, "total_days": true}
	netColumnKeys    = map[string]bool{"net_salary": true, "net_pay": true, "netsalary": true}
)

// executeColumns resolves the configured columns strictly left to
// right. Each resolved column publishes its numeric value into the
// formula context under its normalized header, so every formula sees
// exactly the columns to its left plus the calculator aliases. Columns
// run calculators on demand; the memoization table makes repeated
// demands free.
func (e *Engine) executeColumns(ctx *calcContext) payroll.PaysheetRow {
	row := payroll.NewPaysheetRow(ctx.in.Employee.ID)

	paidKey := formula.NormalizeKey(ctx.in.Config.PaidDaysHeader)
	monthKey := formula.NormalizeKey(ctx.in.Config.MonthDaysHeader)

	for _, col := range ctx.in.Config.SortedColumns() {
		key := formula.NormalizeKey(col.Header)
		var value any

		switch col.Source {
		case payroll.SourceField:
			for _, kind := range fieldCalculators(col.Field) {
				e.runCalc(ctx, kind)
			}
			value = e.lookupField(ctx, col.Field)

		case payroll.SourceFormula:
			for _, name := range formula.Variables(col.Formula) {
				if _, ok := ctx.vars[name]; ok {
					continue
				}
				for _, kind := range varCalculators[name] {
					e.runCalc(ctx, kind)
				}
				if name == "net_salary" {
					net, _ := e.netValues(ctx)
					ctx.vars[name] = decimalToFloat(net)
				}
			}
			v, err := formula.TryEval(col.Formula, ctx.vars)
			if err != nil {
				e.logger.Warn("formula column resolved to zero",
					"employee_id", ctx.in.Employee.ID,
					"header", col.Header,
					"error", err,
				)
			}
			value = decimal.NewFromFloat(v).Round(2)
		}

		// Numeric cells are stored as plain floats so rows survive a
		// JSON round trip without type drift.
		if num, ok := numericValue(value); ok {
			ctx.vars[key] = num
			e.captureSignals(ctx, key, paidKey, monthKey, num, value, col.Source == payroll.SourceFormula)
			row.Set(col.Header, num)
		} else {
			row.Set(col.Header, value)
		}
	}

	return row
}

// captureSignals picks up the late-bound proration inputs and an
// explicit net column as they resolve. Explicit designation wins over
// name detection. Only formula columns can override the net: a field
// column headed "Net Salary" merely displays the derived net, which is
// already ceiled, and feeding it back would erase the round-off.
func (e *Engine) captureSignals(ctx *calcContext, key, paidKey, monthKey string, num float64, value any, formulaSourced bool) {
	switch {
	case paidKey != "" && key == paidKey,
		paidKey == "" && autoPaidDayKeys[key]:
		v := num
		ctx.paidDaysSignal = &v

	case monthKey != "" && key == monthKey,
		monthKey == "" && autoMonthDayKeys[key]:
		v := num
		ctx.monthDaysSignal = &v
	}

	if formulaSourced && netColumnKeys[key] {
		if d, ok := value.(decimal.Decimal); ok {
			ctx.netFromColumn = &d
		} else {
			d := decimal.NewFromFloat(num)
			ctx.netFromColumn = &d
		}
	}
}

// numericValue converts the cell types the pipeline produces into a
// formula-context float. Strings are not numeric.
func numericValue(value any) (float64, bool) {
	switch v := value.(type) {
	case decimal.Decimal:
		return decimalToFloat(v), true
	case float64:
		return v, true
	case int:
		return float64(v), true
	}
	return 0, false
}
