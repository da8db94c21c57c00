package payroll

import "github.com/shopspring/decimal"

// calcBasicPay derives the per-day rate, caps paid days at the month's
// day count and pays the excess as incentive.
//
// physicalUnits = payableShifts + paidLeave + weeklyOffs + holidays
// (payable shifts already fold in present and on-duty days). When the
// units exceed the days in month, the surplus becomes extra days paid
// at the same per-day rate.
func (e *Engine) calcBasicPay(ctx *calcContext) {
	att := ctx.att
	gross := ctx.in.Employee.GrossSalary

	if att.DaysInMonth <= 0 {
		for _, name := range []string{"basic_pay", "per_day_basic", "paid_days", "extra_days", "incentive"} {
			ctx.vars[name] = 0
		}
		return
	}

	perDay := gross.Div(decimal.NewFromFloat(att.DaysInMonth))

	physicalUnits := att.PayableShifts + att.PaidLeaveDays + att.WeeklyOffs + att.Holidays
	paidDays := physicalUnits
	extraDays := 0.0
	if physicalUnits > att.DaysInMonth {
		extraDays = physicalUnits - att.DaysInMonth
		paidDays = att.DaysInMonth
	}

	basePay := perDay.Mul(decimal.NewFromFloat(paidDays)).Round(2)
	incentive := perDay.Mul(decimal.NewFromFloat(extraDays)).Round(2)

	ctx.paidDays = paidDays
	ctx.extraDays = extraDays

	earn := &ctx.slip.Earnings
	earn.PerDayBasicPay = perDay.Round(2)
	earn.BasicPay = basePay
	earn.Incentive = incentive

	ctx.vars["basic_pay"] = decimalToFloat(basePay)
	ctx.vars["per_day_basic"] = decimalToFloat(earn.PerDayBasicPay)
	ctx.vars["paid_days"] = paidDays
	ctx.vars["extra_days"] = extraDays
	ctx.vars["incentive"] = decimalToFloat(incentive)
}
