package pricing

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/warp/pricing-engine/money"
)

// =============================================================================
// RESOLUTION PRECEDENCE
// =============================================================================

func TestConcessionNominal_Precedence(t *testing.T) {
	rent := money.MustParse("2000")

	// Variable wins regardless of other fields.
	c := Concession{Kind: ConcessionVariable, VariableAmount: money.MustParse("-264"),
		AbsoluteAdjustment: money.MustParse("-999")}
	if got := concessionNominal(rent, c); got.StringFixed(2) != "264.00" {
		t.Errorf("variable nominal = %s, want 264.00", got.StringFixed(2))
	}

	// Absolute beats relative when both are set.
	c = Concession{Kind: ConcessionRecurring,
		AbsoluteAdjustment: money.MustParse("-100"),
		RelativeAdjustment: money.MustParse("-50")}
	if got := concessionNominal(rent, c); got.StringFixed(2) != "100.00" {
		t.Errorf("absolute nominal = %s, want 100.00", got.StringFixed(2))
	}

	// Relative is a percentage of the fee amount, fixed to currency scale.
	c = Concession{Kind: ConcessionRecurring, RelativeAdjustment: money.MustParse("-12")}
	if got := concessionNominal(rent, c); got.StringFixed(2) != "240.00" {
		t.Errorf("relative nominal = %s, want 240.00", got.StringFixed(2))
	}
}

func TestResolvable(t *testing.T) {
	if (Concession{Kind: ConcessionVariable}).Resolvable() {
		t.Error("variable with zero amount is not resolvable")
	}
	if !(Concession{Kind: ConcessionVariable, VariableAmount: money.MustParse("264")}).Resolvable() {
		t.Error("variable with amount is resolvable")
	}
	if (Concession{Kind: ConcessionRecurring}).Resolvable() {
		t.Error("recurring with no adjustments is not resolvable")
	}
	if !(Concession{Kind: ConcessionOneTime, RelativeAdjustment: money.MustParse("-100")}).Resolvable() {
		t.Error("one-time with relative adjustment is resolvable")
	}
}

func TestPeriodLimit(t *testing.T) {
	// A one-time concession spans a single period even when a stray
	// recurring count is set on the record.
	c := Concession{Kind: ConcessionOneTime, RecurringCount: 4}
	if got := c.periodLimit(6); got != 1 {
		t.Errorf("one-time limit = %d, want 1", got)
	}

	c = Concession{Kind: ConcessionRecurring, RecurringCount: 0}
	if got := c.periodLimit(6); got != 6 {
		t.Errorf("recurring zero-count limit = %d, want termLength 6", got)
	}

	c = Concession{Kind: ConcessionRecurring, RecurringCount: 2}
	if got := c.periodLimit(6); got != 2 {
		t.Errorf("recurring limit = %d, want 2", got)
	}
}

// =============================================================================
// PER-PERIOD APPLICABLE AMOUNTS
// =============================================================================

func TestApplicableConcessionAmount_RecurringProrates(t *testing.T) {
	// GIVEN: a half-month period (15 of 30 days)
	// THEN: a recurring absolute adjustment applies at the billable fraction
	p := Payment{Amount: money.MustParse("1000"), BillableDays: 15, DaysInMonth: 30}
	c := Concession{Kind: ConcessionRecurring, AbsoluteAdjustment: money.MustParse("-3000")}

	got := applicableConcessionAmount(money.MustParse("2000"), c, p)
	// 3000/30*15 = 1500, capped at the fee amount 2000 -> 1500.
	if got.StringFixed(2) != "1500.00" {
		t.Errorf("applicable = %s, want 1500.00", got.StringFixed(2))
	}
}

func TestApplicableConcessionAmount_CappedAtFeeAmount(t *testing.T) {
	// A full period cannot absorb more than the fee amount in one month.
	p := Payment{Amount: money.MustParse("2000"), BillableDays: 30, DaysInMonth: 30}
	c := Concession{Kind: ConcessionRecurring, AbsoluteAdjustment: money.MustParse("-3000")}

	got := applicableConcessionAmount(money.MustParse("2000"), c, p)
	if got.StringFixed(2) != "2000.00" {
		t.Errorf("applicable = %s, want fee cap 2000.00", got.StringFixed(2))
	}
}

func TestApplicableConcessionAmount_OneTimeAbsoluteLandsInFull(t *testing.T) {
	// One-time absolute amounts do not prorate: the anchored period takes the
	// whole grant even when partially billed.
	p := Payment{Amount: money.MustParse("1000"), BillableDays: 15, DaysInMonth: 30}
	c := Concession{Kind: ConcessionOneTime, AbsoluteAdjustment: money.MustParse("-500")}

	got := applicableConcessionAmount(money.MustParse("2000"), c, p)
	if got.StringFixed(2) != "500.00" {
		t.Errorf("applicable = %s, want 500.00", got.StringFixed(2))
	}
}

func TestApplicableConcessionAmount_OneTimeRelative(t *testing.T) {
	feeAmount := money.MustParse("2000")

	// -200% of the fee amount, clamped to the period amount when it exceeds it.
	p := Payment{Amount: money.MustParse("2000"), BillableDays: 30, DaysInMonth: 30}
	c := Concession{Kind: ConcessionOneTime, RelativeAdjustment: money.MustParse("-200")}
	if got := applicableConcessionAmount(feeAmount, c, p); got.StringFixed(2) != "2000.00" {
		t.Errorf("applicable = %s, want clamp 2000.00", got.StringFixed(2))
	}

	// -12% sits below the period amount and applies unclamped.
	c = Concession{Kind: ConcessionOneTime, RelativeAdjustment: money.MustParse("-12")}
	if got := applicableConcessionAmount(feeAmount, c, p); got.StringFixed(2) != "240.00" {
		t.Errorf("applicable = %s, want 240.00", got.StringFixed(2))
	}
}

func TestApplicableConcessionAmount_RecurringRelativeProrates(t *testing.T) {
	// Recurring percentages apply to the period's prorated share of the fee.
	p := Payment{Amount: money.MustParse("1000"), BillableDays: 15, DaysInMonth: 30}
	c := Concession{Kind: ConcessionRecurring, RelativeAdjustment: money.MustParse("-10")}

	got := applicableConcessionAmount(money.MustParse("2000"), c, p)
	// 10% of 2000/30*15 = 100.
	if got.StringFixed(2) != "100.00" {
		t.Errorf("applicable = %s, want 100.00", got.StringFixed(2))
	}
}

func TestApplicableConcessionAmount_VariableProrates(t *testing.T) {
	p := Payment{Amount: money.MustParse("1132"), BillableDays: 15, DaysInMonth: 30}
	c := Concession{Kind: ConcessionVariable, VariableAmount: money.MustParse("264")}

	got := applicableConcessionAmount(money.MustParse("2264"), c, p)
	if got.StringFixed(2) != "132.00" {
		t.Errorf("applicable = %s, want 132.00", got.StringFixed(2))
	}
}

// =============================================================================
// TERM-LEVEL ADJUSTMENT
// =============================================================================

func TestAdjustmentForConcession(t *testing.T) {
	term := LeaseTerm{AdjustedMarketRent: money.MustParse("500"), Period: PeriodWeek}

	got, err := AdjustmentForConcession(term, Concession{
		Kind: ConcessionVariable, VariableAmount: money.MustParse("264")})
	if err != nil || got.StringFixed(2) != "264.00" {
		t.Errorf("variable: got (%s, %v)", got.StringFixed(2), err)
	}

	got, err = AdjustmentForConcession(term, Concession{
		Kind: ConcessionRecurring, AbsoluteAdjustment: money.MustParse("-100")})
	if err != nil || got.StringFixed(2) != "100.00" {
		t.Errorf("absolute: got (%s, %v)", got.StringFixed(2), err)
	}

	got, err = AdjustmentForConcession(term, Concession{
		Kind: ConcessionRecurring, RelativeAdjustment: money.MustParse("-10")})
	if err != nil || !got.Equal(decimal.NewFromInt(50)) {
		t.Errorf("relative: got (%s, %v)", got.String(), err)
	}
}

func TestAdjustmentForConcession_RelativeNeedsRent(t *testing.T) {
	term := LeaseTerm{Period: PeriodWeek}
	_, err := AdjustmentForConcession(term, Concession{
		Kind: ConcessionRecurring, RelativeAdjustment: money.MustParse("-10")})
	if !errors.Is(err, ErrMissingAdjustedMarketRent) {
		t.Errorf("err = %v, want ErrMissingAdjustedMarketRent", err)
	}
}

func TestAdjustmentForConcession_Unresolvable(t *testing.T) {
	term := LeaseTerm{AdjustedMarketRent: money.MustParse("500")}
	_, err := AdjustmentForConcession(term, Concession{ID: "empty", Kind: ConcessionRecurring})

	var unresolvable *UnresolvableConcessionError
	if !errors.As(err, &unresolvable) {
		t.Fatalf("err = %v, want UnresolvableConcessionError", err)
	}
	if unresolvable.ConcessionID != "empty" {
		t.Errorf("ConcessionID = %q", unresolvable.ConcessionID)
	}
	if !errors.Is(err, ErrUnresolvableConcession) {
		t.Error("should unwrap to ErrUnresolvableConcession")
	}
}
