/*
scenarios.go - Demo scenario loaders

PURPOSE:
  Loadable catalog datasets for demos and exploration. Each scenario
  populates the catalog with lease terms, concessions, and fees that
  exercise a specific part of the engine: proration strategies, concession
  rollover, leap-year February handling.

SCENARIOS:
  standard:     $2000 market rent, 6/12-month terms, one-month-free and
                recurring concessions, pet rent fee
  thirty-day:   30-day proration property with mid-month move-ins
  leap-feb:     February move-ins around leap-year boundaries

SEE ALSO:
  - handlers.go: scenario endpoints
  - factory/catalog.go: the JSON shapes stored here
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/warp/pricing-engine/factory"
	"github.com/warp/pricing-engine/store"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

type scenario struct {
	ID          string
	Name        string
	Description string
	Catalog     factory.CatalogJSON
}

var scenarios = []scenario{
	{
		ID:          "standard",
		Name:        "Standard property",
		Description: "$2000 market rent, one month free, recurring discount, pet rent",
		Catalog: factory.CatalogJSON{
			Concessions: []factory.ConcessionJSON{
				{ID: "1m-free", Name: "One month free", Kind: "oneTime", AppliedAt: "first",
					RelativeAdjustment: "-100", Selected: true},
				{ID: "loyalty-100", Name: "$100 monthly discount", Kind: "recurring",
					AbsoluteAdjustment: "-100", RecurringCount: 0, Selected: true},
				{ID: "variable-264", Name: "Flexible discount", Kind: "variable",
					VariableAmount: "264", RecurringCount: 0, Selected: true},
			},
			LeaseTerms: []factory.LeaseTermJSON{
				{ID: "6m-standard", Period: "month", TermLength: 6,
					AdjustedMarketRent: "2000", ConcessionIDs: []string{"1m-free"}},
				{ID: "12m-standard", Period: "month", TermLength: 12,
					AdjustedMarketRent: "2000", ConcessionIDs: []string{"loyalty-100"}},
			},
			Fees: []factory.FeeJSON{
				{ID: "pet-rent", Name: "Pet rent", Price: "50", Quantity: 1,
					Selected: true, ServicePeriod: "month", QuotePaymentSchedule: true},
				{ID: "parking", Name: "Covered parking", Price: "120", Quantity: 1,
					Selected: true, ServicePeriod: "month", QuotePaymentSchedule: true},
			},
		},
	},
	{
		ID:          "thirty-day",
		Name:        "30-day proration property",
		Description: "Normalized 30-day months with mid-month move-ins",
		Catalog: factory.CatalogJSON{
			Concessions: []factory.ConcessionJSON{
				{ID: "3000-first-2", Name: "$3000 off first two months", Kind: "recurring",
					AbsoluteAdjustment: "-3000", RecurringCount: 2, Selected: true},
				{ID: "half-firstfull", Name: "Half off first full month", Kind: "oneTime",
					AppliedAt: "firstFull", RelativeAdjustment: "-50", Selected: true},
			},
			LeaseTerms: []factory.LeaseTermJSON{
				{ID: "6m-thirty", Period: "month", TermLength: 6,
					AdjustedMarketRent: "2000", ConcessionIDs: []string{"3000-first-2"}},
			},
		},
	},
	{
		ID:          "leap-feb",
		Name:        "Leap-year February",
		Description: "February move-ins across leap and non-leap years",
		Catalog: factory.CatalogJSON{
			LeaseTerms: []factory.LeaseTermJSON{
				{ID: "12m-feb", Period: "month", TermLength: 12,
					AdjustedMarketRent: "2900"},
			},
		},
	},
}

// =============================================================================
// HANDLERS
// =============================================================================

// ListScenarios returns the available demo scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, _ *http.Request) {
	out := make([]ScenarioDTO, 0, len(scenarios))
	for _, s := range scenarios {
		out = append(out, ScenarioDTO{ID: s.ID, Name: s.Name, Description: s.Description})
	}
	writeJSON(w, http.StatusOK, out)
}

// LoadScenario populates the catalog with a scenario's records.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	for _, s := range scenarios {
		if s.ID != req.ID {
			continue
		}
		if err := h.loadScenarioCatalog(r.Context(), s.Catalog); err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, ScenarioDTO{ID: s.ID, Name: s.Name, Description: s.Description})
		return
	}
	writeError(w, http.StatusNotFound, fmt.Errorf("unknown scenario %q", req.ID))
}

func (h *Handler) loadScenarioCatalog(ctx context.Context, catalog factory.CatalogJSON) error {
	for _, cj := range catalog.Concessions {
		if err := h.saveCatalogJSON(ctx, store.KindConcession, cj.ID, cj.Name, cj); err != nil {
			return err
		}
	}
	for _, tj := range catalog.LeaseTerms {
		if err := h.saveCatalogJSON(ctx, store.KindLeaseTerm, tj.ID, tj.ID, tj); err != nil {
			return err
		}
	}
	for _, fj := range catalog.Fees {
		if err := h.saveCatalogJSON(ctx, store.KindFee, fj.ID, fj.Name, fj); err != nil {
			return err
		}
	}
	return nil
}

func (h *Handler) saveCatalogJSON(ctx context.Context, kind store.CatalogKind, id, name string, config any) error {
	configJSON, err := json.Marshal(config)
	if err != nil {
		return err
	}
	return h.Store.SaveCatalogRecord(ctx, store.CatalogRecord{
		ID:         id,
		Kind:       kind,
		Name:       name,
		ConfigJSON: string(configJSON),
	})
}
