/*
Package money is the single point of truth for monetary rounding.

PURPOSE:
  Every monetary value in the engine is a decimal.Decimal, and every value
  that reaches a payment schedule passes through Fixed. The rounding rule
  (half away from zero, 2 decimals for currency) is deterministic and shared
  by all components, which is what makes schedule amounts cent-exact and
  comparable byte-for-byte.

WHY DECIMAL:
  Proration divides rents by day counts (2000/30*15) and percentages by 100.
  Binary floats drift on exactly these operations; decimal.Decimal keeps the
  intermediate values exact so the only rounding that happens is the rounding
  we ask for.

ROUNDING ORDER MATTERS:
  The proration formula is (amount / daysInMonth) * billableDays, fixed to 2
  decimals AFTER the multiplication. Callers must not "simplify" this into a
  single ratio with one final rounding; downstream amounts are defined in
  terms of this exact order.

SEE ALSO:
  - pricing/payment.go: base payment proration
  - pricing/concession.go: per-period concession amounts
*/
package money

import "github.com/shopspring/decimal"

// CurrencyDecimals is the scale used for all schedule amounts.
const CurrencyDecimals = 2

var (
	hundred = decimal.NewFromInt(100)
)

// Fixed rounds v to the given number of decimals, half away from zero.
// This is the one rounding rule of the engine.
func Fixed(v decimal.Decimal, decimals int32) decimal.Decimal {
	return v.Round(decimals)
}

// FixedCurrency rounds v to currency scale.
func FixedCurrency(v decimal.Decimal) decimal.Decimal {
	return Fixed(v, CurrencyDecimals)
}

// Zero returns the zero amount.
func Zero() decimal.Decimal {
	return decimal.Zero
}

// FromFloat converts a float input (API boundaries, test literals) into a
// decimal amount. Engine internals never go back to float.
func FromFloat(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

// FromInt converts an integer count (days, quantities) into a decimal.
func FromInt(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}

// Percent converts a percentage magnitude into a multiplier: Percent(15) is
// 0.15. The sign is dropped; concession percentages are stored signed but
// always applied by magnitude.
func Percent(pct decimal.Decimal) decimal.Decimal {
	return pct.Abs().Div(hundred)
}

// MustParse parses a decimal literal and panics on malformed input. Only for
// constants and test fixtures, never for runtime data.
func MustParse(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}
