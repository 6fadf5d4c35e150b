/*
Package factory provides JSON to Go pricing-catalog conversion.

PURPOSE:
  Converts JSON catalog definitions (lease terms, concessions, fees) into
  pricing domain structs. Pricing teams maintain the catalog as data; the
  factory validates shapes and applies defaults so the engine only ever sees
  well-formed inputs.

JSON SCHEMA:
  {
    "lease_terms": [
      {"id": "12m", "period": "month", "term_length": 12,
       "adjusted_market_rent": "2000",
       "concession_ids": ["1m-free"]}
    ],
    "concessions": [
      {"id": "1m-free", "name": "One month free", "kind": "oneTime",
       "applied_at": "first", "relative_adjustment": "-100",
       "selected": true}
    ],
    "fees": [
      {"id": "pet", "name": "Pet rent", "price": "50", "quantity": 1,
       "selected": true, "quote_payment_schedule": true}
    ]
  }

VALIDATION:
  - Monetary fields parse as decimal strings (never floats)
  - Concession kinds and anchors must be known enum values
  - A concession must carry a usable adjustment for its kind
  - Lease terms need a period unit and a positive term length

SEE ALSO:
  - pricing/term.go, pricing/concession.go, pricing/charges.go: target types
  - store/sqlite: persists these JSON shapes
*/
package factory

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/warp/pricing-engine/pricing"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// CatalogJSON is the JSON representation of a pricing catalog.
type CatalogJSON struct {
	LeaseTerms  []LeaseTermJSON  `json:"lease_terms,omitempty"`
	Concessions []ConcessionJSON `json:"concessions,omitempty"`
	Fees        []FeeJSON        `json:"fees,omitempty"`
}

// LeaseTermJSON is the JSON representation of a lease term.
type LeaseTermJSON struct {
	ID                  string   `json:"id"`
	Period              string   `json:"period"`
	TermLength          int      `json:"term_length"`
	AdjustedMarketRent  string   `json:"adjusted_market_rent"`
	OverwrittenBaseRent string   `json:"overwritten_base_rent,omitempty"`
	EndDate             string   `json:"end_date,omitempty"`
	ConcessionIDs       []string `json:"concession_ids,omitempty"`
}

// ConcessionJSON is the JSON representation of a concession.
type ConcessionJSON struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Kind               string `json:"kind"`
	AppliedAt          string `json:"applied_at,omitempty"`
	RelativeAdjustment string `json:"relative_adjustment,omitempty"`
	AbsoluteAdjustment string `json:"absolute_adjustment,omitempty"`
	VariableAmount     string `json:"variable_amount,omitempty"`
	RecurringCount     int    `json:"recurring_count,omitempty"`
	Selected           bool   `json:"selected"`
	ExcludeFromRent    bool   `json:"exclude_from_rent,omitempty"`
	BakedIntoFee       bool   `json:"baked_into_fee,omitempty"`
}

// FeeJSON is the JSON representation of an additional-charge fee.
type FeeJSON struct {
	ID                   string           `json:"id"`
	Name                 string           `json:"name"`
	Price                string           `json:"price"`
	Quantity             int              `json:"quantity,omitempty"`
	Selected             bool             `json:"selected"`
	ServicePeriod        string           `json:"service_period,omitempty"`
	QuotePaymentSchedule bool             `json:"quote_payment_schedule,omitempty"`
	Concessions          []ConcessionJSON `json:"concessions,omitempty"`
}

// =============================================================================
// CATALOG FACTORY
// =============================================================================

// CatalogFactory converts JSON catalog entries to pricing structs.
type CatalogFactory struct{}

// NewCatalogFactory creates a new catalog factory.
func NewCatalogFactory() *CatalogFactory {
	return &CatalogFactory{}
}

// ParseCatalog parses a JSON catalog document.
func (f *CatalogFactory) ParseCatalog(jsonStr string) (CatalogJSON, error) {
	var cj CatalogJSON
	if err := json.Unmarshal([]byte(jsonStr), &cj); err != nil {
		return CatalogJSON{}, fmt.Errorf("failed to parse catalog JSON: %w", err)
	}
	return cj, nil
}

// Concession converts and validates one concession definition.
func (f *CatalogFactory) Concession(cj ConcessionJSON) (pricing.Concession, error) {
	kind, err := parseKind(cj.Kind)
	if err != nil {
		return pricing.Concession{}, fmt.Errorf("concession %q: %w", cj.ID, err)
	}
	appliedAt, err := parseAppliedAt(cj.AppliedAt)
	if err != nil {
		return pricing.Concession{}, fmt.Errorf("concession %q: %w", cj.ID, err)
	}

	c := pricing.Concession{
		ID:              cj.ID,
		Name:            cj.Name,
		Kind:            kind,
		AppliedAt:       appliedAt,
		RecurringCount:  cj.RecurringCount,
		Selected:        cj.Selected,
		ExcludeFromRent: cj.ExcludeFromRent,
		BakedIntoFee:    cj.BakedIntoFee,
	}
	if c.RelativeAdjustment, err = parseMoney(cj.RelativeAdjustment); err != nil {
		return pricing.Concession{}, fmt.Errorf("concession %q: relative_adjustment: %w", cj.ID, err)
	}
	if c.AbsoluteAdjustment, err = parseMoney(cj.AbsoluteAdjustment); err != nil {
		return pricing.Concession{}, fmt.Errorf("concession %q: absolute_adjustment: %w", cj.ID, err)
	}
	if c.VariableAmount, err = parseMoney(cj.VariableAmount); err != nil {
		return pricing.Concession{}, fmt.Errorf("concession %q: variable_amount: %w", cj.ID, err)
	}

	if !c.Resolvable() {
		return pricing.Concession{}, &pricing.UnresolvableConcessionError{ConcessionID: cj.ID}
	}
	return c, nil
}

// LeaseTerm converts one lease term definition, resolving concession
// references against the given concession set.
func (f *CatalogFactory) LeaseTerm(tj LeaseTermJSON, concessions map[string]pricing.Concession) (pricing.LeaseTerm, error) {
	if tj.Period == "" {
		return pricing.LeaseTerm{}, fmt.Errorf("lease term %q: %w", tj.ID, pricing.ErrMissingPeriodUnit)
	}
	if tj.TermLength < 1 {
		return pricing.LeaseTerm{}, fmt.Errorf("lease term %q: term_length must be >= 1", tj.ID)
	}

	term := pricing.LeaseTerm{
		ID:         tj.ID,
		Period:     pricing.PeriodUnit(tj.Period),
		TermLength: tj.TermLength,
	}

	var err error
	if term.AdjustedMarketRent, err = parseMoney(tj.AdjustedMarketRent); err != nil {
		return pricing.LeaseTerm{}, fmt.Errorf("lease term %q: adjusted_market_rent: %w", tj.ID, err)
	}
	if term.OverwrittenBaseRent, err = parseMoney(tj.OverwrittenBaseRent); err != nil {
		return pricing.LeaseTerm{}, fmt.Errorf("lease term %q: overwritten_base_rent: %w", tj.ID, err)
	}
	if tj.EndDate != "" {
		if term.EndDate, err = pricing.ParseDate(tj.EndDate); err != nil {
			return pricing.LeaseTerm{}, fmt.Errorf("lease term %q: end_date: %w", tj.ID, err)
		}
	}

	for _, id := range tj.ConcessionIDs {
		c, ok := concessions[id]
		if !ok {
			return pricing.LeaseTerm{}, fmt.Errorf("lease term %q: unknown concession %q", tj.ID, id)
		}
		term.Concessions = append(term.Concessions, c)
	}
	return term, nil
}

// Fee converts one fee definition, including its own concessions.
func (f *CatalogFactory) Fee(fj FeeJSON) (pricing.Fee, error) {
	fee := pricing.Fee{
		ID:                   fj.ID,
		Name:                 fj.Name,
		Quantity:             fj.Quantity,
		Selected:             fj.Selected,
		ServicePeriod:        fj.ServicePeriod,
		QuotePaymentSchedule: fj.QuotePaymentSchedule,
	}

	var err error
	if fee.Price, err = parseMoney(fj.Price); err != nil {
		return pricing.Fee{}, fmt.Errorf("fee %q: price: %w", fj.ID, err)
	}
	for _, cj := range fj.Concessions {
		c, err := f.Concession(cj)
		if err != nil {
			return pricing.Fee{}, fmt.Errorf("fee %q: %w", fj.ID, err)
		}
		fee.Concessions = append(fee.Concessions, c)
	}
	return fee, nil
}

// =============================================================================
// PARSING HELPERS
// =============================================================================

func parseMoney(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

func parseKind(s string) (pricing.ConcessionKind, error) {
	switch pricing.ConcessionKind(s) {
	case pricing.ConcessionOneTime, pricing.ConcessionRecurring, pricing.ConcessionVariable:
		return pricing.ConcessionKind(s), nil
	}
	return "", fmt.Errorf("unknown concession kind %q", s)
}

func parseAppliedAt(s string) (pricing.AppliedAt, error) {
	switch pricing.AppliedAt(s) {
	case "", pricing.AppliedFirst:
		return pricing.AppliedFirst, nil
	case pricing.AppliedLast, pricing.AppliedFirstFull:
		return pricing.AppliedAt(s), nil
	}
	return "", fmt.Errorf("unknown concession anchor %q", s)
}
