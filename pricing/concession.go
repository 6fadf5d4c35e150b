/*
concession.go - Concession model and per-period resolution

PURPOSE:
  Models concessions as a closed tagged union (OneTime | Recurring |
  Variable) and resolves, for one (concession, period) pair, two amounts:

  nominal:    what the concession grants the period in full
  applicable: what the period can absorb directly this month

  The difference between the two is the remainder that the rollover engine
  carries to neighboring periods.

PRORATION ASYMMETRY (load-bearing):
  - Recurring adjustments (absolute, relative, variable) are prorated to the
    period's billableDays/daysInMonth fraction.
  - One-time absolute adjustments are NOT prorated: the full amount lands on
    the anchored period regardless of its billable days.
  - Variable concessions are always prorated when recurring, even though
    one-time absolute amounts are not.
  These rules are part of the schedule contract; do not "fix" them.

SEE ALSO:
  - rollover.go: the application walk that consumes these amounts
*/
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/warp/pricing-engine/money"
)

// =============================================================================
// CONCESSION UNION
// =============================================================================

// ConcessionKind discriminates the concession union.
type ConcessionKind string

const (
	// ConcessionOneTime applies exactly once, at its anchor.
	ConcessionOneTime ConcessionKind = "oneTime"
	// ConcessionRecurring applies to the first/last RecurringCount periods,
	// or to every period when RecurringCount is zero.
	ConcessionRecurring ConcessionKind = "recurring"
	// ConcessionVariable is a recurring concession whose per-period amount
	// is the agent-chosen VariableAmount (bounded upstream by the catalog).
	ConcessionVariable ConcessionKind = "variable"
)

// AppliedAt anchors a concession within the schedule.
type AppliedAt string

const (
	AppliedFirst     AppliedAt = "first"
	AppliedLast      AppliedAt = "last"
	AppliedFirstFull AppliedAt = "firstFull"
)

// Concession is one promotional discount. Exactly one of the adjustment
// fields is meaningful per kind:
//   - Variable:  VariableAmount
//   - otherwise: AbsoluteAdjustment when non-zero, else RelativeAdjustment
type Concession struct {
	ID   string
	Name string
	Kind ConcessionKind

	// AppliedAt anchors the application window. Empty means first.
	AppliedAt AppliedAt

	// RelativeAdjustment is a signed percent (-100 = one free period's
	// worth). Applied by magnitude.
	RelativeAdjustment decimal.Decimal

	// AbsoluteAdjustment is a signed money delta. Applied by magnitude.
	AbsoluteAdjustment decimal.Decimal

	// VariableAmount is the chosen amount of a variable concession.
	VariableAmount decimal.Decimal

	// RecurringCount limits recurring application; 0 means every period.
	RecurringCount int

	// Selected concessions participate in pricing; unselected are ignored.
	Selected bool

	// ExcludeFromRent marks informational concessions that never reduce the
	// rent-bearing schedule.
	ExcludeFromRent bool

	// BakedIntoFee marks concessions already folded into the quoted fee
	// price; the schedule must not apply them again.
	BakedIntoFee bool
}

// recurring reports whether per-period amounts prorate. Everything but a
// one-time concession recurs.
func (c Concession) recurring() bool {
	return c.Kind != ConcessionOneTime
}

// Resolvable reports whether the concession carries any usable adjustment.
func (c Concession) Resolvable() bool {
	switch c.Kind {
	case ConcessionVariable:
		return !c.VariableAmount.IsZero()
	default:
		return !c.AbsoluteAdjustment.IsZero() || !c.RelativeAdjustment.IsZero()
	}
}

// periodLimit returns how many periods the concession's window spans.
func (c Concession) periodLimit(termLength int) int {
	if c.Kind == ConcessionOneTime {
		return 1
	}
	if c.RecurringCount == 0 {
		return termLength
	}
	return c.RecurringCount
}

// =============================================================================
// PER-PERIOD RESOLUTION
// =============================================================================

// concessionNominal is the full amount the concession grants one eligible
// period, before any proration.
func concessionNominal(feeAmount decimal.Decimal, c Concession) decimal.Decimal {
	switch {
	case c.Kind == ConcessionVariable:
		return c.VariableAmount.Abs()
	case !c.AbsoluteAdjustment.IsZero():
		return c.AbsoluteAdjustment.Abs()
	default:
		return money.FixedCurrency(feeAmount.Mul(money.Percent(c.RelativeAdjustment)))
	}
}

// absoluteAdjustmentPerPeriod resolves an absolute (or variable) amount for
// one period. Recurring amounts prorate; one-time amounts land in full. The
// signed comparison clamps only positive adjustments to the period amount;
// negative (discount) adjustments apply by magnitude unclamped.
func absoluteAdjustmentPerPeriod(adjustment decimal.Decimal, p Payment, recurring bool) decimal.Decimal {
	if !recurring {
		positive := money.FixedCurrency(adjustment.Abs())
		if adjustment.GreaterThanOrEqual(p.Amount) {
			return p.Amount
		}
		return positive
	}
	return money.FixedCurrency(adjustment.Abs().Div(money.FromInt(p.DaysInMonth)).Mul(money.FromInt(p.BillableDays)))
}

// relativeAdjustmentPerPeriod resolves a percent adjustment for one period.
// One-time percentages apply to the full fee amount, capped at the period's
// current amount; recurring percentages apply to the period's prorated
// share.
func relativeAdjustmentPerPeriod(feeAmount decimal.Decimal, c Concession, p Payment) decimal.Decimal {
	if !c.recurring() {
		adjustment := money.FixedCurrency(money.Percent(c.RelativeAdjustment).Mul(feeAmount))
		if adjustment.GreaterThanOrEqual(p.Amount) {
			return money.FixedCurrency(p.Amount)
		}
		return adjustment
	}
	prorated := feeAmount.Div(money.FromInt(p.DaysInMonth)).Mul(money.FromInt(p.BillableDays))
	return money.FixedCurrency(money.Percent(c.RelativeAdjustment).Mul(prorated))
}

// applicableConcessionAmount is what the period can absorb directly,
// bounded by the full fee amount.
func applicableConcessionAmount(feeAmount decimal.Decimal, c Concession, p Payment) decimal.Decimal {
	var applicable decimal.Decimal
	switch {
	case c.Kind == ConcessionVariable:
		applicable = absoluteAdjustmentPerPeriod(c.VariableAmount, p, c.recurring())
	case !c.AbsoluteAdjustment.IsZero():
		applicable = absoluteAdjustmentPerPeriod(c.AbsoluteAdjustment, p, c.recurring())
	default:
		applicable = relativeAdjustmentPerPeriod(feeAmount, c, p)
	}
	if applicable.GreaterThan(feeAmount) {
		return feeAmount
	}
	return applicable
}

// =============================================================================
// TERM-LEVEL ADJUSTMENT
// =============================================================================

// AdjustmentForConcession returns the concession's per-period adjustment
// against the lease term's market rent, for display and non-month
// application.
func AdjustmentForConcession(term LeaseTerm, c Concession) (decimal.Decimal, error) {
	switch {
	case c.Kind == ConcessionVariable && !c.VariableAmount.IsZero():
		return c.VariableAmount, nil
	case !c.AbsoluteAdjustment.IsZero():
		return c.AbsoluteAdjustment.Abs(), nil
	case !c.RelativeAdjustment.IsZero():
		if term.AdjustedMarketRent.IsZero() {
			return decimal.Zero, ErrMissingAdjustedMarketRent
		}
		return money.Percent(c.RelativeAdjustment).Mul(term.AdjustedMarketRent), nil
	}
	return decimal.Zero, &UnresolvableConcessionError{ConcessionID: c.ID}
}
