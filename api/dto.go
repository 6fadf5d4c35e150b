/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

MONEY ON THE WIRE:
  All monetary values travel as fixed 2-decimal strings, never JSON
  numbers; float encoding would destroy the cent-exactness the engine
  guarantees.

VALIDATION:
  Structural validation happens in the factory (catalog JSON shapes);
  request-level validation in handlers. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: uses these types
  - factory/catalog.go: catalog JSON shapes embedded here
*/
package api

import (
	"github.com/warp/pricing-engine/factory"
	"github.com/warp/pricing-engine/pricing"
)

// =============================================================================
// CATALOG TYPES
// =============================================================================

// CatalogEntryDTO represents a stored catalog entry in API responses.
type CatalogEntryDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	Config    any    `json:"config"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// =============================================================================
// QUOTE PRICING
// =============================================================================

// PriceQuoteRequest asks the engine to price one lease term. The term and
// fees may be supplied inline or referenced from the catalog.
type PriceQuoteRequest struct {
	LeaseTermID string                 `json:"lease_term_id,omitempty"`
	LeaseTerm   *factory.LeaseTermJSON `json:"lease_term,omitempty"`

	LeaseStartDate    string `json:"lease_start_date"`
	ProrationStrategy string `json:"proration_strategy,omitempty"`

	FeeIDs []string          `json:"fee_ids,omitempty"`
	Fees   []factory.FeeJSON `json:"fees,omitempty"`

	// Save persists the priced quote under QuoteID.
	Save    bool   `json:"save,omitempty"`
	QuoteID string `json:"quote_id,omitempty"`
}

// AppliedConcessionDTO attributes a deduction to a concession.
type AppliedConcessionDTO struct {
	ConcessionID string `json:"concession_id"`
	Amount       string `json:"amount"`
}

// PaymentDTO represents one schedule row.
type PaymentDTO struct {
	Timeframe          string                 `json:"timeframe"`
	BillableDays       int                    `json:"billable_days,omitempty"`
	DaysInMonth        int                    `json:"days_in_month,omitempty"`
	Amount             string                 `json:"amount"`
	AppliedConcessions []AppliedConcessionDTO `json:"applied_concessions,omitempty"`
}

// GroupedPaymentDTO represents one display row of grouped periods.
type GroupedPaymentDTO struct {
	Timeframe string `json:"timeframe"`
	Amount    string `json:"amount"`
}

// QuoteResponse is a priced schedule.
type QuoteResponse struct {
	QuoteID           string              `json:"quote_id,omitempty"`
	LeaseTermID       string              `json:"lease_term_id,omitempty"`
	LeaseStartDate    string              `json:"lease_start_date"`
	ProrationStrategy string              `json:"proration_strategy"`
	Payments          []PaymentDTO        `json:"payments"`
	Groups            []GroupedPaymentDTO `json:"groups,omitempty"`
}

// QuoteSummaryDTO lists a stored quote.
type QuoteSummaryDTO struct {
	ID             string `json:"id"`
	LeaseTermID    string `json:"lease_term_id"`
	LeaseStartDate string `json:"lease_start_date"`
	CreatedAt      string `json:"created_at"`
}

// =============================================================================
// SCENARIOS
// =============================================================================

// ScenarioDTO describes a loadable demo catalog.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// LoadScenarioRequest selects a scenario to load.
type LoadScenarioRequest struct {
	ID string `json:"id"`
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toPaymentDTO(p pricing.Payment) PaymentDTO {
	dto := PaymentDTO{
		Timeframe:    p.Timeframe,
		BillableDays: p.BillableDays,
		DaysInMonth:  p.DaysInMonth,
		Amount:       p.Amount.StringFixed(2),
	}
	for _, ac := range p.AppliedConcessions {
		dto.AppliedConcessions = append(dto.AppliedConcessions, AppliedConcessionDTO{
			ConcessionID: ac.ConcessionID,
			Amount:       ac.Amount.StringFixed(2),
		})
	}
	return dto
}

func toQuoteResponse(schedule pricing.QuoteSchedule) QuoteResponse {
	resp := QuoteResponse{}
	for _, p := range schedule.Payments {
		resp.Payments = append(resp.Payments, toPaymentDTO(p))
	}
	for _, g := range schedule.Groups {
		resp.Groups = append(resp.Groups, GroupedPaymentDTO{Timeframe: g.Timeframe, Amount: g.Amount})
	}
	return resp
}
