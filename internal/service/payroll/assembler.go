package payroll

import "github.com/shopspring/decimal"

// netValues computes the payable net and its round-off from the current
// slip state. The exact net is gross minus total deductions, floored at
// zero, then rounded UP to the next whole rupee; round-off is the
// amount added by that rounding. A formula net column resolved earlier
// in the pipeline overrides the derived exact net; the ceiling and
// round-off still apply on top of the override.
func (e *Engine) netValues(ctx *calcContext) (net, roundOff decimal.Decimal) {
	var exact decimal.Decimal
	if ctx.netFromColumn != nil {
		exact = *ctx.netFromColumn
	} else {
		exact = ctx.slip.Earnings.GrossSalary.Sub(ctx.slip.Deductions.TotalDeductions)
	}
	if exact.IsNegative() {
		exact = decimal.Zero
	}
	net = exact.Ceil()
	return net, net.Sub(exact)
}

// assemble finalizes the payslip after the column walk: derived totals
// are refreshed one last time and the net plus round-off are fixed.
func (e *Engine) assemble(ctx *calcContext) {
	e.refreshDerived(ctx)

	net, roundOff := e.netValues(ctx)
	ctx.slip.NetSalary = net
	ctx.slip.RoundOff = roundOff
	ctx.vars["net_salary"] = decimalToFloat(net)
}
