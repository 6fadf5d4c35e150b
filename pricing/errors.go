/*
errors.go - Typed failures of the pricing engine

PURPOSE:
  The engine is pure computation, so every failure is a caller contract
  violation detected synchronously: a lease term missing the data a
  calculation needs, or a concession with no usable adjustment.

ERROR STRATEGY:
  - Sentinel errors for missing-input conditions (errors.Is friendly)
  - Structured error type for unresolvable concessions, carrying the
    concession identity for display

There are no retries and no recovery paths; callers surface these as
validation failures.

SEE ALSO:
  - payment.go: raises the missing-input sentinels
  - concession.go: raises UnresolvableConcessionError
*/
package pricing

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS
// =============================================================================

var (
	// ErrMissingAdjustedMarketRent is returned when a period or amount
	// calculation needs the term's adjusted market rent and it is unset.
	ErrMissingAdjustedMarketRent = errors.New("lease term has no adjusted market rent")

	// ErrMissingPeriodUnit is returned when the term's period unit is unset.
	ErrMissingPeriodUnit = errors.New("lease term has no period unit")

	// ErrMissingLeaseStartDate is returned when a schedule is requested
	// without a move-in date.
	ErrMissingLeaseStartDate = errors.New("missing lease start date")
)

// =============================================================================
// STRUCTURED ERRORS
// =============================================================================

// ErrUnresolvableConcession is the base error wrapped by
// UnresolvableConcessionError.
var ErrUnresolvableConcession = errors.New("concession has no usable adjustment")

// UnresolvableConcessionError reports a concession whose relative, absolute,
// and variable adjustments are all unset.
type UnresolvableConcessionError struct {
	ConcessionID string
}

func (e *UnresolvableConcessionError) Error() string {
	return fmt.Sprintf("concession %q has no usable adjustment", e.ConcessionID)
}

func (e *UnresolvableConcessionError) Unwrap() error {
	return ErrUnresolvableConcession
}
