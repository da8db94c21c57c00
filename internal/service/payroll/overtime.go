package payroll

import "github.com/shopspring/decimal"

// calcOvertime converts OT hours into pay using the department-scoped
// hourly rate. An unconfigured department earns nothing.
func (e *Engine) calcOvertime(ctx *calcContext) {
	rate := decimal.Zero
	for _, r := range ctx.in.OTRates {
		if r.DepartmentID == ctx.in.Employee.DepartmentID {
			rate = r.RatePerHour
			break
		}
	}

	otPay := rate.Mul(decimal.NewFromFloat(ctx.att.OTHours)).Round(2)

	ctx.slip.Earnings.OTPay = otPay
	ctx.vars["ot_pay"] = decimalToFloat(otPay)
}
