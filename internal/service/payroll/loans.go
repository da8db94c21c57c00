package payroll

import "github.com/shopspring/decimal"

// calcLoanAdvance recovers loan EMIs and advance installments. Each
// recovery is capped at the amount still outstanding so a closing loan
// never over-deducts, and the remaining balance is the post-recovery
// total across all accounts, clamped at zero.
func (e *Engine) calcLoanAdvance(ctx *calcContext) {
	totalEMI := decimal.Zero
	remaining := decimal.Zero

	for _, loan := range ctx.in.Loans {
		if !loan.IsActive {
			continue
		}
		emi := loan.MonthlyEMI
		if emi.GreaterThan(loan.Outstanding) {
			emi = loan.Outstanding
		}
		if emi.IsNegative() {
			emi = decimal.Zero
		}
		totalEMI = totalEMI.Add(emi)
		remaining = remaining.Add(loan.Outstanding.Sub(emi))
	}

	advanceDeduction := decimal.Zero
	for _, adv := range ctx.in.Advances {
		rec := adv.RecoveryAmount
		if rec.GreaterThan(adv.Outstanding) {
			rec = adv.Outstanding
		}
		if rec.IsNegative() {
			rec = decimal.Zero
		}
		advanceDeduction = advanceDeduction.Add(rec)
		remaining = remaining.Add(adv.Outstanding.Sub(rec))
	}

	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	la := &ctx.slip.LoanAdvance
	la.TotalEMI = totalEMI.Round(2)
	la.AdvanceDeduction = advanceDeduction.Round(2)
	la.RemainingBalance = remaining.Round(2)

	ctx.vars["loan_emi"] = decimalToFloat(la.TotalEMI)
	ctx.vars["advance_deduction"] = decimalToFloat(la.AdvanceDeduction)
}

// calcArrears totals the prior-period adjustments booked for this month.
func (e *Engine) calcArrears(ctx *calcContext) {
	total := decimal.Zero
	for _, a := range ctx.in.Arrears {
		total = total.Add(a.Amount)
	}
	ctx.slip.Arrears.ArrearsAmount = total.Round(2)
	ctx.vars["arrears_amount"] = decimalToFloat(ctx.slip.Arrears.ArrearsAmount)
}
