/*
charges.go - Additional fee charges on the payment schedule

PURPOSE:
  Layers selected fees (pet rent, parking, utilities) on top of the base
  payment schedule. Each fee's price*quantity is prorated per period with
  the same day counts as the base rent, the fee's own concession list is
  applied to the fee's per-period amounts, and the results are summed into
  the schedule.

SCHEDULE PARTICIPATION:
  Only fees with QuotePaymentSchedule participate; other fees are quoted
  elsewhere (deposits, application fees) and never touch the schedule.

SEE ALSO:
  - rollover.go: fee-level concession application
  - quote.go: orchestration
*/
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/warp/pricing-engine/money"
)

// =============================================================================
// FEES
// =============================================================================

// Fee is one additional charge line from the pricing catalog.
type Fee struct {
	ID   string
	Name string

	// Price is the unit price; Quantity multiplies it (0 counts as 1).
	Price    decimal.Decimal
	Quantity int

	Selected      bool
	ServicePeriod string

	// QuotePaymentSchedule marks fees that appear on the payment schedule.
	QuotePaymentSchedule bool

	// Concessions on the fee itself, same model as term concessions.
	Concessions []Concession
}

// amount is the charged per-period amount before proration.
func (f Fee) amount() decimal.Decimal {
	qty := f.Quantity
	if qty == 0 {
		qty = 1
	}
	return f.Price.Mul(money.FromInt(qty))
}

// AdditionalCharges is the fee set attached to a quote.
type AdditionalCharges struct {
	Fees []Fee
}

// FeeSchedule holds a fee's concession-adjusted per-period amounts.
type FeeSchedule struct {
	FeeID   string
	Amounts []Payment
}

// =============================================================================
// PER-FEE AMOUNTS
// =============================================================================

// MonthlyAmountToPayPerFee prorates a fee amount over one period.
func MonthlyAmountToPayPerFee(feeAmount decimal.Decimal, billableDays, daysInMonth int) decimal.Decimal {
	return prorate(feeAmount, billableDays, daysInMonth)
}

// feeAmountByPeriod mirrors the base schedule's day counts for one fee. A
// fee that prorates to zero contributes no schedule.
func feeAmountByPeriod(fee Fee, payments []Payment) []Payment {
	amounts := make([]Payment, 0, len(payments))
	for _, p := range payments {
		amount := MonthlyAmountToPayPerFee(fee.amount().Abs(), p.BillableDays, p.DaysInMonth)
		if amount.IsZero() {
			return nil
		}
		amounts = append(amounts, Payment{
			Amount:       amount,
			BillableDays: p.BillableDays,
			DaysInMonth:  p.DaysInMonth,
		})
	}
	return amounts
}

// feeScheduleWithConcessions builds the fee's per-period amounts with its
// own concessions applied.
func feeScheduleWithConcessions(fee Fee, payments []Payment, termLength int, start Date) []Payment {
	if !fee.Selected || len(fee.Concessions) == 0 {
		return nil
	}
	amounts := feeAmountByPeriod(fee, payments)
	return ApplyMonthlyConcessions(fee.Price, fee.Concessions, termLength, amounts, start)
}

// =============================================================================
// SCHEDULE APPLICATION
// =============================================================================

// SelectedFeesMonthlyAmount sums the schedule-participating fee amounts for
// one period, preferring the concession-adjusted per-fee schedule when the
// fee carries concessions.
func SelectedFeesMonthlyAmount(charges AdditionalCharges, payment Payment, periodIndex int, feeSchedules []FeeSchedule) decimal.Decimal {
	total := decimal.Zero
	for _, fee := range charges.Fees {
		if !fee.Selected || !fee.QuotePaymentSchedule {
			continue
		}
		amount := MonthlyAmountToPayPerFee(fee.amount().Abs(), payment.BillableDays, payment.DaysInMonth)
		if len(fee.Concessions) > 0 {
			for _, fs := range feeSchedules {
				if fs.FeeID == fee.ID && periodIndex < len(fs.Amounts) {
					amount = fs.Amounts[periodIndex].Amount
					break
				}
			}
		}
		total = total.Add(amount)
	}
	return total
}

// ApplyMonthlyAdditionalCharges adds every participating fee's per-period
// amount onto the payment schedule. Payments pass through unchanged when
// there are no fees.
func ApplyMonthlyAdditionalCharges(charges AdditionalCharges, payments []Payment, termLength int, start Date) []Payment {
	feeSchedules := make([]FeeSchedule, 0, len(charges.Fees))
	for _, fee := range charges.Fees {
		feeSchedules = append(feeSchedules, FeeSchedule{
			FeeID:   fee.ID,
			Amounts: feeScheduleWithConcessions(fee, payments, termLength, start),
		})
	}

	for i := range payments {
		payments[i].Amount = payments[i].Amount.Add(
			SelectedFeesMonthlyAmount(charges, payments[i], i, feeSchedules))
	}
	return payments
}
