package pricing_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/pricing-engine/money"
	"github.com/warp/pricing-engine/pricing"
)

func paymentRow(timeframe, amount string) pricing.Payment {
	return pricing.Payment{Timeframe: timeframe, Amount: money.MustParse(amount)}
}

func TestMonthlyPeriodsGroupsByAmount_MidMonthSchedule(t *testing.T) {
	// GIVEN: the classic mid-month shape with equal first and last partials
	// THEN: three rows, the middle run collapsed into a same-year range
	groups := pricing.MonthlyPeriodsGroupsByAmount([]pricing.Payment{
		paymentRow("Mar 2017", "1000"),
		paymentRow("Apr 2017", "2000"),
		paymentRow("May 2017", "2000"),
		paymentRow("Jun 2017", "2000"),
		paymentRow("Jul 2017", "2000"),
		paymentRow("Aug 2017", "2000"),
		paymentRow("Sep 2017", "1000"),
	})

	require.Len(t, groups, 3)
	assert.Equal(t, pricing.GroupedPayment{Timeframe: "Mar 2017", Amount: "1000.00"}, groups[0])
	assert.Equal(t, pricing.GroupedPayment{Timeframe: "Apr - Aug 2017", Amount: "2000.00"}, groups[1])
	assert.Equal(t, pricing.GroupedPayment{Timeframe: "Sep 2017", Amount: "1000.00"}, groups[2])
}

func TestMonthlyPeriodsGroupsByAmount_YearBreakKeepsBothYears(t *testing.T) {
	groups := pricing.MonthlyPeriodsGroupsByAmount([]pricing.Payment{
		paymentRow("Nov 2017", "2000"),
		paymentRow("Dec 2017", "2000"),
		paymentRow("Jan 2018", "2000"),
		paymentRow("Feb 2018", "2000"),
	})

	require.Len(t, groups, 1)
	assert.Equal(t, "Nov 2017 - Feb 2018", groups[0].Timeframe)
	assert.Equal(t, "2000.00", groups[0].Amount)
}

func TestMonthlyPeriodsGroupsByAmount_NonConsecutiveEqualsStaySeparate(t *testing.T) {
	// Equal amounts merge only when adjacent; the grouping is one pass.
	groups := pricing.MonthlyPeriodsGroupsByAmount([]pricing.Payment{
		paymentRow("Mar 2017", "1000"),
		paymentRow("Apr 2017", "2000"),
		paymentRow("May 2017", "1000"),
	})

	require.Len(t, groups, 3)
	assert.Equal(t, "Mar 2017", groups[0].Timeframe)
	assert.Equal(t, "Apr 2017", groups[1].Timeframe)
	assert.Equal(t, "May 2017", groups[2].Timeframe)
}

func TestMonthlyPeriodsGroupsByAmount_CentDifferencesDoNotMerge(t *testing.T) {
	// Comparison happens on the fixed 2-decimal rendering.
	groups := pricing.MonthlyPeriodsGroupsByAmount([]pricing.Payment{
		paymentRow("Mar 2017", "1032.26"),
		paymentRow("Apr 2017", "1032.25"),
	})
	require.Len(t, groups, 2)
}

func TestMonthlyPeriodsGroupsByAmount_Empty(t *testing.T) {
	assert.Empty(t, pricing.MonthlyPeriodsGroupsByAmount(nil))
}

func TestMonthlyPeriodsGroupsByAmount_FromRealSchedule(t *testing.T) {
	// End to end: the grouped rows come straight off a priced schedule.
	payments, err := pricing.MonthlyBasePayments(
		monthlyTerm("2000", 6),
		pricing.NewDate(2017, time.November, 1),
		pricing.StrategyCalendarMonth)
	require.NoError(t, err)

	groups := pricing.MonthlyPeriodsGroupsByAmount(payments)
	require.Len(t, groups, 1)
	assert.Equal(t, "Nov 2017 - Apr 2018", groups[0].Timeframe)
}
