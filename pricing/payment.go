/*
payment.go - Base payment schedule generation

PURPOSE:
  Converts a lease term plus a move-in date into the ordered Payment
  sequence, prorating the leading and trailing partial months under the
  property's proration strategy. Week/day/hour terms have fixed-length
  periods with no proration; only their timeframe labels differ.

PRORATION FORMULA:
  amount = Fixed((rent / daysInMonth) * billableDays, 2)
  The order (divide, multiply, then fix) is load-bearing: schedule amounts
  are defined by this exact rounding sequence.

TIMEFRAME LABELS:
  month:  "Mar 2017"
  week:   "Sep 15, 2016 - Sep 21, 2016"
  day:    "Sep 15, 2016"
  hour:   "Sep 15 2016, 12:00 am"

SEE ALSO:
  - calendar.go: billable day rules
  - rollover.go: concession application over these payments
*/
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/warp/pricing-engine/money"
)

// =============================================================================
// PAYMENT
// =============================================================================

// Payment is one schedule row: a billing period and its running amount.
// BillableDays and DaysInMonth are zero for non-month periods.
type Payment struct {
	Timeframe    string
	BillableDays int
	DaysInMonth  int
	Amount       decimal.Decimal

	// AppliedConcessions records, per concession, how much was deducted
	// from this period (display attribution).
	AppliedConcessions []AppliedConcession
}

// AppliedConcession attributes a deducted amount to a concession.
type AppliedConcession struct {
	ConcessionID string
	Amount       decimal.Decimal
}

// recordApplied accumulates attribution for a concession on this period.
func (p *Payment) recordApplied(concessionID string, amount decimal.Decimal) {
	if !amount.IsPositive() {
		return
	}
	for i := range p.AppliedConcessions {
		if p.AppliedConcessions[i].ConcessionID == concessionID {
			p.AppliedConcessions[i].Amount = p.AppliedConcessions[i].Amount.Add(amount)
			return
		}
	}
	p.AppliedConcessions = append(p.AppliedConcessions, AppliedConcession{
		ConcessionID: concessionID,
		Amount:       amount,
	})
}

// fullMonth reports whether the period covers its whole (possibly
// normalized) month.
func (p Payment) fullMonth() bool {
	return p.BillableDays == p.DaysInMonth
}

// =============================================================================
// TIMEFRAME FORMATTING
// =============================================================================

const (
	monthYearLayout         = "Jan 2006"
	monthDateYearLayout     = "Jan 2, 2006"
	monthDateYearHourLayout = "Jan 2 2006, 3:04 pm"
)

// FormatTimeframe renders a period label for the given unit.
func FormatTimeframe(d Date, unit PeriodUnit) string {
	switch unit {
	case PeriodMonth:
		return d.Format(monthYearLayout)
	case PeriodHour:
		return d.Format(monthDateYearHourLayout)
	default:
		return d.Format(monthDateYearLayout)
	}
}

// =============================================================================
// MONTHLY SCHEDULE
// =============================================================================

// prorate applies the proration formula at currency scale.
func prorate(amount decimal.Decimal, billableDays, daysInMonth int) decimal.Decimal {
	return money.FixedCurrency(amount.Div(money.FromInt(daysInMonth)).Mul(money.FromInt(billableDays)))
}

// monthlyBasePayment builds the schedule row at periodIndex.
func monthlyBasePayment(term LeaseTerm, start Date, periodIndex, numPeriods int, strategy ProrationStrategy) Payment {
	periodDate := start.Add(periodIndex, term.Period)
	p := Payment{Timeframe: FormatTimeframe(periodDate, term.Period)}

	switch {
	case periodIndex == 0:
		p.BillableDays, p.DaysInMonth = billableDaysPerPeriod(start, true, strategy)
	case periodIndex == numPeriods-1:
		p.BillableDays, p.DaysInMonth = billableDaysPerPeriod(term.endDate(start), false, strategy)
	default:
		p.DaysInMonth = daysInMonthFor(periodDate, strategy)
		p.BillableDays = p.DaysInMonth
	}

	p.Amount = prorate(term.baseRent(), p.BillableDays, p.DaysInMonth)
	return p
}

// MonthlyBasePayments produces the prorated base-rent schedule for a monthly
// lease term, before concessions and additional charges.
func MonthlyBasePayments(term LeaseTerm, start Date, strategy ProrationStrategy) ([]Payment, error) {
	if term.AdjustedMarketRent.IsZero() && term.OverwrittenBaseRent.IsZero() {
		return nil, ErrMissingAdjustedMarketRent
	}
	numPeriods, err := NumberOfMonthsInLeaseTerm(term, start)
	if err != nil {
		return nil, err
	}

	payments := make([]Payment, 0, numPeriods)
	for i := 0; i < numPeriods; i++ {
		payments = append(payments, monthlyBasePayment(term, start, i, numPeriods, strategy))
	}
	return payments, nil
}

// =============================================================================
// WEEK / DAY / HOUR SCHEDULE
// =============================================================================

// TimeAndAmountOfPeriod computes the schedule row at periodIndex for a
// non-month lease term. The amount is the full per-period rent; only the
// timeframe differs by unit. Weeks render as a 7-day range.
func TimeAndAmountOfPeriod(term LeaseTerm, start Date, periodIndex int) (Payment, error) {
	if term.AdjustedMarketRent.IsZero() {
		return Payment{}, fmt.Errorf("period %d: %w", periodIndex, ErrMissingAdjustedMarketRent)
	}
	if term.Period == "" {
		return Payment{}, fmt.Errorf("period %d: %w", periodIndex, ErrMissingPeriodUnit)
	}

	periodDate := start.Add(periodIndex, term.Period)
	timeframe := FormatTimeframe(periodDate, term.Period)
	if term.Period == PeriodWeek {
		timeframe = fmt.Sprintf("%s - %s",
			FormatTimeframe(periodDate, term.Period),
			FormatTimeframe(periodDate.AddDays(6), term.Period))
	}

	return Payment{
		Timeframe: timeframe,
		Amount:    term.AdjustedMarketRent,
	}, nil
}

// BasePaymentForEachPeriod produces the schedule for week/day/hour terms.
func BasePaymentForEachPeriod(term LeaseTerm, start Date) ([]Payment, error) {
	payments := make([]Payment, 0, term.TermLength)
	for i := 0; i < term.TermLength; i++ {
		p, err := TimeAndAmountOfPeriod(term, start, i)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, nil
}
