/*
rollover.go - Concession application and rollover engine

PURPOSE:
  Applies an ordered concession list to a monthly payment schedule. Each
  concession runs one directed walk over the schedule, threading an explicit
  carry accumulator:

    overflow:  deficit left after clamping a period to zero; always drains
               into the next visited period
    remainder: the part of a period's nominal grant its proration did not
               let it absorb (nominal - applicable); accumulates through the
               concession's window and drains into the periods after it

  Walk direction follows the anchor: first/firstFull walk forward, last
  walks backward. The walk visits every period from the anchor to the
  schedule boundary; a recurring concession's leftover at the boundary then
  drains from the opposite end, and anything still left is discarded. A
  one-time concession's leftover is discarded outright.

INVARIANTS:
  - No period amount is ever negative; deficits are clamped to zero and
    carried, never stored.
  - Concessions apply strictly in list order; each walk sees the amounts
    the previous concessions produced.
  - An empty concession list returns the schedule unchanged.

FIRST-FULL ANCHORING:
  firstFull targets period 0 when the lease starts on the 1st, otherwise
  period 1. When that target does not exist or is itself partial, the
  concession does not apply at all.

SEE ALSO:
  - concession.go: nominal/applicable resolution per period
  - charges.go: runs this engine per fee line
*/
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/warp/pricing-engine/money"
)

// =============================================================================
// PUBLIC ENTRY POINT
// =============================================================================

// ApplyMonthlyConcessions applies each selected, rent-bearing concession to
// the payment schedule in list order. feeAmount is the full per-period
// amount the concessions are defined against (market rent for the base
// schedule, the fee price for fee-level schedules).
func ApplyMonthlyConcessions(feeAmount decimal.Decimal, concessions []Concession, termLength int, payments []Payment, start Date) []Payment {
	for _, c := range concessions {
		if !c.Selected || c.ExcludeFromRent || c.BakedIntoFee {
			continue
		}
		limit := c.periodLimit(termLength)

		switch c.AppliedAt {
		case AppliedLast:
			payments = applyConcessionWalk(feeAmount, c, payments, limit, len(payments)-1, -1)
		case AppliedFirstFull:
			payments = applyConcessionToFirstFullPeriod(feeAmount, c, payments, limit, start)
		default:
			payments = applyConcessionWalk(feeAmount, c, payments, limit, 0, 1)
		}
	}
	return payments
}

// applyConcessionToFirstFullPeriod anchors the walk on the first full month
// period, skipping a leading partial move-in month.
func applyConcessionToFirstFullPeriod(feeAmount decimal.Decimal, c Concession, payments []Payment, limit int, start Date) []Payment {
	target := 1
	if start.Day() == 1 {
		target = 0
	}
	if target == 1 && (len(payments) < 2 || !payments[1].fullMonth()) {
		return payments
	}
	return applyConcessionWalk(feeAmount, c, payments, limit, target, 1)
}

// =============================================================================
// THE WALK
// =============================================================================

// applyConcessionWalk folds one concession over the schedule from start in
// the given direction (step +1 or -1), carrying overflow and remainder.
func applyConcessionWalk(feeAmount decimal.Decimal, c Concession, payments []Payment, limit, start, step int) []Payment {
	overflow := decimal.Zero
	remainder := decimal.Zero
	applied := 0

	for i := start; i >= 0 && i < len(payments); i += step {
		p := &payments[i]
		inWindow := applied < limit

		var nominal, applicable decimal.Decimal
		if inWindow {
			nominal = concessionNominal(feeAmount, c)
			applicable = applicableConcessionAmount(feeAmount, c, *p)
		}

		total := overflow.Add(applicable)
		if !inWindow {
			// Past the window only the carried amounts drain.
			total = total.Add(remainder)
			remainder = decimal.Zero
		}

		before := p.Amount
		if total.GreaterThan(p.Amount) {
			overflow = total.Sub(p.Amount)
			p.Amount = decimal.Zero
		} else {
			overflow = decimal.Zero
			p.Amount = money.FixedCurrency(p.Amount.Sub(total))
		}
		p.recordApplied(c.ID, before.Sub(p.Amount))

		if inWindow {
			remainder = remainder.Add(money.FixedCurrency(nominal.Sub(applicable)))
		}
		applied++
	}

	leftover := overflow.Add(remainder)
	if leftover.IsPositive() && (step < 0 || c.Kind != ConcessionOneTime) {
		// Drain from the opposite boundary, walking back toward the anchor.
		drainStart := 0
		if step > 0 {
			drainStart = len(payments) - 1
		}
		drainLeftover(payments, leftover, c, drainStart, -step)
	}
	return payments
}

// drainLeftover absorbs a boundary leftover into still-positive periods,
// starting at the opposite end of the schedule. What no period can absorb
// is discarded.
func drainLeftover(payments []Payment, leftover decimal.Decimal, c Concession, start, step int) {
	for i := start; i >= 0 && i < len(payments) && leftover.IsPositive(); i += step {
		p := &payments[i]
		if !p.Amount.IsPositive() {
			continue
		}
		if p.Amount.LessThanOrEqual(leftover) {
			leftover = leftover.Sub(p.Amount)
			p.recordApplied(c.ID, p.Amount)
			p.Amount = decimal.Zero
			continue
		}
		p.Amount = money.FixedCurrency(p.Amount.Sub(leftover))
		p.recordApplied(c.ID, leftover)
		leftover = decimal.Zero
	}
}
