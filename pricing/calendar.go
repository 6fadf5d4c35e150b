/*
calendar.go - Calendar arithmetic for lease schedules

PURPOSE:
  All date handling for the engine: a Date value type (UTC, no external
  timezone concerns inside the computation), month-length queries, the
  end-date rules for a lease term, and billable-day computation under both
  proration strategies.

PRORATION STRATEGIES:
  CalendarMonth: a period's daysInMonth is the actual calendar length of the
    month it falls in (28/29/30/31).
  ThirtyDayMonth: every month is normalized to 30 days. Day-of-month
    positions are still real calendar positions, which creates the two edge
    families this file handles explicitly:
    - the 31st of a month sits past the normalized length
    - the last day of February (28th or 29th) must count as a full month
      boundary, not day 28/29 of 30

END DATE RULES (month periods):
  Move-in on the 1st:   endDate = start + termLength months - 1 day
  Move-in on any other: endDate = (start - 1 day) + termLength months
  The second rule is why a mid-month move-in yields termLength+1 periods:
  both the leading and trailing partial months are billed.

SEE ALSO:
  - term.go: LeaseTerm and schedule length
  - payment.go: turns billable days into amounts
*/
package pricing

import "time"

// =============================================================================
// DATE
// =============================================================================

// Date is a point on the lease calendar. It is a value type in UTC; the hour
// component only matters for hour-period leases.
type Date struct {
	t time.Time
}

// NewDate creates a Date at midnight UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateFromTime normalizes an external time into a Date.
func DateFromTime(t time.Time) Date {
	return Date{t: t.UTC()}
}

// ParseDate parses a YYYY-MM-DD date, the catalog/API wire format.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, err
	}
	return Date{t: t}, nil
}

func (d Date) IsZero() bool       { return d.t.IsZero() }
func (d Date) Time() time.Time    { return d.t }
func (d Date) Year() int          { return d.t.Year() }
func (d Date) Month() time.Month  { return d.t.Month() }
func (d Date) Day() int           { return d.t.Day() }
func (d Date) Format(l string) string { return d.t.Format(l) }

// AddDays returns the date n days later (negative n moves back).
func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

// AddMonths returns the date n months later. time.AddDate normalizes
// overflow (Jan 31 + 1 month = Mar 2/3), which matches the schedule
// semantics this engine needs: month arithmetic is only ever anchored on
// day 1 or applied after stepping back to the previous day.
func (d Date) AddMonths(n int) Date {
	return Date{t: d.t.AddDate(0, n, 0)}
}

// Add advances the date by n units of the given period.
func (d Date) Add(n int, unit PeriodUnit) Date {
	switch unit {
	case PeriodMonth:
		return d.AddMonths(n)
	case PeriodWeek:
		return d.AddDays(7 * n)
	case PeriodDay:
		return d.AddDays(n)
	case PeriodHour:
		return Date{t: d.t.Add(time.Duration(n) * time.Hour)}
	}
	return d
}

// DaysInCalendarMonth returns the actual length of the month containing d.
func (d Date) DaysInCalendarMonth() int {
	firstOfNext := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return firstOfNext.AddDate(0, 0, -1).Day()
}

// IsLastDayOfFebruary reports whether d is Feb 28 of a non-leap year or
// Feb 29 of a leap year.
func (d Date) IsLastDayOfFebruary() bool {
	if d.Month() != time.February {
		return false
	}
	if isLeapYear(d.Year()) {
		return d.Day() == 29
	}
	return d.Day() == 28
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysBetween returns the number of whole days from d to other.
func (d Date) DaysBetween(other Date) int {
	return int(other.t.Sub(d.t).Hours() / 24)
}

// =============================================================================
// LEASE END DATE
// =============================================================================

// EndDateFromStartDate computes the last day covered by the lease.
// For non-month periods the end is simply start + termLength units.
func EndDateFromStartDate(start Date, term LeaseTerm) Date {
	if term.Period != PeriodMonth {
		return start.Add(term.TermLength, term.Period)
	}
	if start.Day() == 1 {
		return start.AddMonths(term.TermLength).AddDays(-1)
	}
	return start.AddDays(-1).AddMonths(term.TermLength)
}

// =============================================================================
// BILLABLE DAYS
// =============================================================================

const thirtyDayMonth = 30

// daysInMonthFor returns the period's day base under the strategy.
func daysInMonthFor(d Date, strategy ProrationStrategy) int {
	if strategy == StrategyThirtyDayMonth {
		return thirtyDayMonth
	}
	return d.DaysInCalendarMonth()
}

// billableDays computes the chargeable days of a partial period.
//
// Move-in month: days from the move-in date through month end, inclusive.
// A move-in on the 31st under the 30-day strategy sits past the normalized
// month and bills a single day.
//
// Move-out month: days from the month start through the end date, inclusive.
// The 31st past a normalized month, and the last day of February under the
// 30-day strategy, both count as the full normalized month.
func billableDays(d Date, daysInMonth int, isMoveInMonth bool, strategy ProrationStrategy) int {
	day := d.Day()
	if isMoveInMonth {
		if day == daysInMonth || (day > daysInMonth && strategy == StrategyThirtyDayMonth) {
			return 1
		}
		return daysInMonth + 1 - day
	}

	if day > daysInMonth || (d.IsLastDayOfFebruary() && strategy == StrategyThirtyDayMonth) {
		return daysInMonth
	}
	return day
}

// billableDaysPerPeriod resolves both the billable days and the day base for
// the month containing d.
func billableDaysPerPeriod(d Date, isMoveInMonth bool, strategy ProrationStrategy) (billable, daysInMonth int) {
	daysInMonth = daysInMonthFor(d, strategy)
	return billableDays(d, daysInMonth, isMoveInMonth, strategy), daysInMonth
}
