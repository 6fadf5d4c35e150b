/*
quote.go - Quote-level orchestration

PURPOSE:
  The flow quote consumers call: build the base schedule for a lease term,
  apply the term's concessions, add additional charges, and produce the
  grouped display rows. Monthly terms run the full proration/rollover
  pipeline; week/day/hour terms use flat per-period amounts with simple
  concession subtraction.

SEE ALSO:
  - payment.go, rollover.go, charges.go, grouping.go: the stages
*/
package pricing

import (
	"github.com/warp/pricing-engine/money"
)

// QuoteSchedule is the engine's full output for one lease term.
type QuoteSchedule struct {
	Payments []Payment
	Groups   []GroupedPayment
}

// PeriodAmountsForLeaseTerm computes the complete payment schedule for a
// lease term starting at the given date.
func PeriodAmountsForLeaseTerm(term LeaseTerm, start Date, charges AdditionalCharges, strategy ProrationStrategy) (QuoteSchedule, error) {
	if start.IsZero() {
		return QuoteSchedule{}, ErrMissingLeaseStartDate
	}
	if term.Period == "" {
		return QuoteSchedule{}, ErrMissingPeriodUnit
	}

	if term.Period == PeriodMonth {
		payments, err := MonthlyBasePayments(term, start, strategy)
		if err != nil {
			return QuoteSchedule{}, err
		}
		payments = ApplyMonthlyConcessions(term.baseRent(), term.Concessions, term.TermLength, payments, start)
		payments = ApplyMonthlyAdditionalCharges(charges, payments, term.TermLength, start)
		return QuoteSchedule{
			Payments: payments,
			Groups:   MonthlyPeriodsGroupsByAmount(payments),
		}, nil
	}

	payments, err := BasePaymentForEachPeriod(term, start)
	if err != nil {
		return QuoteSchedule{}, err
	}
	payments, err = ApplyConcessionsToPeriod(term, payments)
	if err != nil {
		return QuoteSchedule{}, err
	}
	return QuoteSchedule{Payments: payments}, nil
}

// =============================================================================
// WEEK / DAY / HOUR CONCESSIONS
// =============================================================================

// nonMonthMaxPeriods resolves how many periods a concession covers on a
// non-month schedule; 0 means every period.
func nonMonthMaxPeriods(c Concession) int {
	if c.Kind == ConcessionOneTime {
		return 1
	}
	return c.RecurringCount
}

// ApplyConcessionsToPeriod applies the term's concessions to a week/day/hour
// schedule. There is no proration on these schedules; each eligible period
// is reduced by the concession's flat adjustment, floored at zero.
func ApplyConcessionsToPeriod(term LeaseTerm, payments []Payment) ([]Payment, error) {
	for _, c := range term.Concessions {
		if !c.Selected || c.ExcludeFromRent {
			continue
		}
		adjustment, err := AdjustmentForConcession(term, c)
		if err != nil {
			return nil, err
		}
		adjustment = adjustment.Abs()

		maxPeriods := nonMonthMaxPeriods(c)

		apply := func(i int) {
			before := payments[i].Amount
			next := money.FixedCurrency(before.Sub(adjustment))
			if next.IsNegative() {
				next = money.Zero()
			}
			payments[i].Amount = next
			payments[i].recordApplied(c.ID, before.Sub(next))
		}

		switch {
		case maxPeriods == 0:
			for i := range payments {
				apply(i)
			}
		case c.AppliedAt == AppliedLast:
			for i, n := len(payments)-1, 0; i >= 0 && n < maxPeriods; i, n = i-1, n+1 {
				apply(i)
			}
		default:
			for i := 0; i < len(payments) && i < maxPeriods; i++ {
				apply(i)
			}
		}
	}
	return payments, nil
}
