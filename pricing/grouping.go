/*
grouping.go - Display grouping of equal consecutive amounts

PURPOSE:
  Collapses runs of consecutive schedule periods with byte-equal 2-decimal
  amounts into one display row. Non-consecutive equal amounts are never
  merged; the grouping is a single left-to-right pass.

LABELS:
  Single period:           "Mar 2017"
  Run within one year:     "Mar - Jun 2017"
  Run across a year break: "Nov 2017 - Feb 2018"
*/
package pricing

import (
	"fmt"
	"strings"
)

// GroupedPayment is one display row of the schedule.
type GroupedPayment struct {
	Timeframe string
	Amount    string
}

// MonthlyPeriodsGroupsByAmount merges consecutive equal-amount periods.
// Amounts compare and render at fixed 2-decimal strings.
func MonthlyPeriodsGroupsByAmount(payments []Payment) []GroupedPayment {
	groups := make([]GroupedPayment, 0, len(payments))
	runStart := 0

	flush := func(start, end int) {
		amount := payments[start].Amount.StringFixed(2)
		if start == end {
			groups = append(groups, GroupedPayment{
				Timeframe: payments[start].Timeframe,
				Amount:    amount,
			})
			return
		}
		groups = append(groups, GroupedPayment{
			Timeframe: rangeTimeframe(payments[start].Timeframe, payments[end].Timeframe),
			Amount:    amount,
		})
	}

	for i := 1; i <= len(payments); i++ {
		if i == len(payments) || payments[i].Amount.StringFixed(2) != payments[runStart].Amount.StringFixed(2) {
			flush(runStart, i-1)
			runStart = i
		}
	}
	return groups
}

// rangeTimeframe joins two "Jan 2006" labels, omitting the first year when
// both ends share it.
func rangeTimeframe(start, end string) string {
	startMonth, startYear := splitMonthYear(start)
	endMonth, endYear := splitMonthYear(end)
	if startYear == endYear {
		return fmt.Sprintf("%s - %s %s", startMonth, endMonth, startYear)
	}
	return fmt.Sprintf("%s %s - %s %s", startMonth, startYear, endMonth, endYear)
}

func splitMonthYear(timeframe string) (month, year string) {
	parts := strings.SplitN(timeframe, " ", 2)
	if len(parts) != 2 {
		return timeframe, ""
	}
	return parts[0], parts[1]
}
