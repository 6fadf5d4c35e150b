/*
term.go - Lease term model

PURPOSE:
  LeaseTerm is the immutable input of the engine: the billing period unit,
  the term length, the adjusted market rent, and the ordered concession list
  (insertion order is application order).

SCHEDULE LENGTH:
  A monthly lease starting on the 1st has exactly termLength periods. Any
  other start day adds a trailing partial period: both the leading and the
  trailing partial months are billed, so the schedule holds termLength+1
  rows. This is intentional, not an off-by-one.

SEE ALSO:
  - calendar.go: end-date rules
  - payment.go: schedule generation
*/
package pricing

import "github.com/shopspring/decimal"

// =============================================================================
// ENUMS
// =============================================================================

// PeriodUnit is the billing period of a lease term.
type PeriodUnit string

const (
	PeriodMonth PeriodUnit = "month"
	PeriodWeek  PeriodUnit = "week"
	PeriodDay   PeriodUnit = "day"
	PeriodHour  PeriodUnit = "hour"
)

// ProrationStrategy selects the day-counting rule for partial months.
// The string values are the catalog's property-setting values.
type ProrationStrategy string

const (
	StrategyCalendarMonth  ProrationStrategy = "Calendar month"
	StrategyThirtyDayMonth ProrationStrategy = "30 day month"
)

// =============================================================================
// LEASE TERM
// =============================================================================

// LeaseTerm describes one priced lease offer. It is owned by the caller and
// never mutated by the engine.
type LeaseTerm struct {
	ID string

	// Period is the billing unit; TermLength counts periods.
	Period     PeriodUnit
	TermLength int

	// AdjustedMarketRent is the per-period rent after market adjustments.
	AdjustedMarketRent decimal.Decimal

	// OverwrittenBaseRent, when set, replaces AdjustedMarketRent in base
	// payment computation (agent override on a quote).
	OverwrittenBaseRent decimal.Decimal

	// EndDate may be supplied by the caller; when zero the engine derives it
	// from the start date (EndDateFromStartDate).
	EndDate Date

	// Concessions apply in slice order.
	Concessions []Concession
}

// baseRent returns the rent the schedule is built from.
func (t LeaseTerm) baseRent() decimal.Decimal {
	if !t.OverwrittenBaseRent.IsZero() {
		return t.OverwrittenBaseRent
	}
	return t.AdjustedMarketRent
}

// endDate resolves the lease end, preferring a caller-supplied date.
func (t LeaseTerm) endDate(start Date) Date {
	if !t.EndDate.IsZero() {
		return t.EndDate
	}
	return EndDateFromStartDate(start, t)
}

// NumberOfMonthsInLeaseTerm returns the schedule row count for a monthly
// term starting at the given date.
func NumberOfMonthsInLeaseTerm(term LeaseTerm, start Date) (int, error) {
	if start.IsZero() {
		return 0, ErrMissingLeaseStartDate
	}
	if start.Day() == 1 {
		return term.TermLength, nil
	}
	return term.TermLength + 1, nil
}
