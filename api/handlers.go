/*
handlers.go - HTTP API handlers for the pricing service

PURPOSE:
  Exposes the payment schedule engine and the pricing catalog via REST.
  Handles HTTP request/response, JSON serialization, and delegates to the
  engine and the store.

ENDPOINTS:
  Quotes:
    POST   /api/quotes/price         Price a lease term (schedule + groups)
    GET    /api/quotes               List stored quotes
    GET    /api/quotes/{id}          Fetch a stored quote

  Catalog:
    GET    /api/catalog/{kind}       List entries (lease-terms|concessions|fees)
    POST   /api/catalog/{kind}       Create/update an entry
    GET    /api/catalog/{kind}/{id}  Fetch an entry
    DELETE /api/catalog/{kind}/{id}  Delete an entry

  Scenarios:
    GET    /api/scenarios            List demo scenarios
    POST   /api/scenarios/load       Load a demo scenario into the catalog

REQUEST FLOW:
  1. Parse HTTP request
  2. Resolve catalog references through the factory
  3. Call the engine (pure computation)
  4. Serialize response
  5. Map errors to status codes

ERROR HANDLING:
  - 400: validation errors, unresolvable concessions, malformed input
  - 404: catalog/quote record not found
  - 500: storage failures

SEE ALSO:
  - dto.go: request/response data structures
  - scenarios.go: demo catalog loaders
  - server.go: router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/warp/pricing-engine/factory"
	"github.com/warp/pricing-engine/pricing"
	"github.com/warp/pricing-engine/store"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store   store.Store
	Factory *factory.CatalogFactory
}

// NewHandler creates a new handler with the given store.
func NewHandler(st store.Store) *Handler {
	return &Handler{
		Store:   st,
		Factory: factory.NewCatalogFactory(),
	}
}

// =============================================================================
// QUOTE PRICING
// =============================================================================

// PriceQuote computes the payment schedule for a lease term.
func (h *Handler) PriceQuote(w http.ResponseWriter, r *http.Request) {
	var req PriceQuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	start, err := pricing.ParseDate(req.LeaseStartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid lease_start_date: %w", err))
		return
	}

	strategy := pricing.StrategyCalendarMonth
	if req.ProrationStrategy != "" {
		strategy = pricing.ProrationStrategy(req.ProrationStrategy)
		if strategy != pricing.StrategyCalendarMonth && strategy != pricing.StrategyThirtyDayMonth {
			writeError(w, http.StatusBadRequest, fmt.Errorf("unknown proration_strategy %q", req.ProrationStrategy))
			return
		}
	}

	term, err := h.resolveLeaseTerm(r, req)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	charges, err := h.resolveCharges(r, req)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	schedule, err := pricing.PeriodAmountsForLeaseTerm(term, start, charges, strategy)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	resp := toQuoteResponse(schedule)
	resp.LeaseTermID = term.ID
	resp.LeaseStartDate = req.LeaseStartDate
	resp.ProrationStrategy = string(strategy)

	if req.Save {
		if req.QuoteID == "" {
			writeError(w, http.StatusBadRequest, errors.New("quote_id is required to save a quote"))
			return
		}
		resp.QuoteID = req.QuoteID
		if err := h.saveQuote(r, req, resp, start); err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) saveQuote(r *http.Request, req PriceQuoteRequest, resp QuoteResponse, start pricing.Date) error {
	requestJSON, err := json.Marshal(req)
	if err != nil {
		return err
	}
	scheduleJSON, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	return h.Store.SaveQuote(r.Context(), store.QuoteRecord{
		ID:           req.QuoteID,
		LeaseTermID:  resp.LeaseTermID,
		LeaseStart:   start.Time(),
		RequestJSON:  string(requestJSON),
		ScheduleJSON: string(scheduleJSON),
	})
}

// ListQuotes returns stored quote summaries.
func (h *Handler) ListQuotes(w http.ResponseWriter, r *http.Request) {
	recs, err := h.Store.ListQuotes(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	out := make([]QuoteSummaryDTO, 0, len(recs))
	for _, rec := range recs {
		out = append(out, QuoteSummaryDTO{
			ID:             rec.ID,
			LeaseTermID:    rec.LeaseTermID,
			LeaseStartDate: rec.LeaseStart.Format("2006-01-02"),
			CreatedAt:      rec.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// GetQuote returns one stored quote's schedule.
func (h *Handler) GetQuote(w http.ResponseWriter, r *http.Request) {
	rec, err := h.Store.GetQuote(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(rec.ScheduleJSON))
}

// =============================================================================
// CATALOG RESOLUTION
// =============================================================================

// resolveLeaseTerm builds the term from the inline definition or the
// catalog, resolving concession references either way.
func (h *Handler) resolveLeaseTerm(r *http.Request, req PriceQuoteRequest) (pricing.LeaseTerm, error) {
	var tj factory.LeaseTermJSON
	switch {
	case req.LeaseTerm != nil:
		tj = *req.LeaseTerm
	case req.LeaseTermID != "":
		rec, err := h.Store.GetCatalogRecord(r.Context(), store.KindLeaseTerm, req.LeaseTermID)
		if err != nil {
			return pricing.LeaseTerm{}, err
		}
		if err := json.Unmarshal([]byte(rec.ConfigJSON), &tj); err != nil {
			return pricing.LeaseTerm{}, fmt.Errorf("corrupt lease term record %q: %w", rec.ID, err)
		}
	default:
		return pricing.LeaseTerm{}, errors.New("either lease_term or lease_term_id is required")
	}

	concessions, err := h.loadConcessions(r)
	if err != nil {
		return pricing.LeaseTerm{}, err
	}
	return h.Factory.LeaseTerm(tj, concessions)
}

// loadConcessions parses every catalog concession into a lookup map.
func (h *Handler) loadConcessions(r *http.Request) (map[string]pricing.Concession, error) {
	recs, err := h.Store.ListCatalogRecords(r.Context(), store.KindConcession)
	if err != nil {
		return nil, err
	}
	concessions := make(map[string]pricing.Concession, len(recs))
	for _, rec := range recs {
		var cj factory.ConcessionJSON
		if err := json.Unmarshal([]byte(rec.ConfigJSON), &cj); err != nil {
			return nil, fmt.Errorf("corrupt concession record %q: %w", rec.ID, err)
		}
		c, err := h.Factory.Concession(cj)
		if err != nil {
			return nil, err
		}
		concessions[c.ID] = c
	}
	return concessions, nil
}

// resolveCharges builds the additional-charge fee set from inline
// definitions and catalog references.
func (h *Handler) resolveCharges(r *http.Request, req PriceQuoteRequest) (pricing.AdditionalCharges, error) {
	var charges pricing.AdditionalCharges
	for _, fj := range req.Fees {
		fee, err := h.Factory.Fee(fj)
		if err != nil {
			return pricing.AdditionalCharges{}, err
		}
		charges.Fees = append(charges.Fees, fee)
	}
	for _, id := range req.FeeIDs {
		rec, err := h.Store.GetCatalogRecord(r.Context(), store.KindFee, id)
		if err != nil {
			return pricing.AdditionalCharges{}, err
		}
		var fj factory.FeeJSON
		if err := json.Unmarshal([]byte(rec.ConfigJSON), &fj); err != nil {
			return pricing.AdditionalCharges{}, fmt.Errorf("corrupt fee record %q: %w", rec.ID, err)
		}
		fee, err := h.Factory.Fee(fj)
		if err != nil {
			return pricing.AdditionalCharges{}, err
		}
		charges.Fees = append(charges.Fees, fee)
	}
	return charges, nil
}

// =============================================================================
// CATALOG CRUD
// =============================================================================

var catalogKinds = map[string]store.CatalogKind{
	"lease-terms": store.KindLeaseTerm,
	"concessions": store.KindConcession,
	"fees":        store.KindFee,
}

func catalogKind(r *http.Request) (store.CatalogKind, error) {
	kind, ok := catalogKinds[chi.URLParam(r, "kind")]
	if !ok {
		return "", fmt.Errorf("unknown catalog kind %q", chi.URLParam(r, "kind"))
	}
	return kind, nil
}

// ListCatalog lists entries of one kind.
func (h *Handler) ListCatalog(w http.ResponseWriter, r *http.Request) {
	kind, err := catalogKind(r)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	recs, err := h.Store.ListCatalogRecords(r.Context(), kind)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	out := make([]CatalogEntryDTO, 0, len(recs))
	for _, rec := range recs {
		out = append(out, toCatalogEntryDTO(rec))
	}
	writeJSON(w, http.StatusOK, out)
}

// GetCatalogEntry fetches one entry.
func (h *Handler) GetCatalogEntry(w http.ResponseWriter, r *http.Request) {
	kind, err := catalogKind(r)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	rec, err := h.Store.GetCatalogRecord(r.Context(), kind, chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCatalogEntryDTO(rec))
}

// CreateCatalogEntry validates and stores one entry.
func (h *Handler) CreateCatalogEntry(w http.ResponseWriter, r *http.Request) {
	kind, err := catalogKind(r)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	var raw json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	id, name, err := h.validateCatalogConfig(r, kind, raw)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	rec := store.CatalogRecord{ID: id, Kind: kind, Name: name, ConfigJSON: string(raw)}
	if err := h.Store.SaveCatalogRecord(r.Context(), rec); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCatalogEntryDTO(rec))
}

// validateCatalogConfig runs the factory over an incoming config.
func (h *Handler) validateCatalogConfig(r *http.Request, kind store.CatalogKind, raw json.RawMessage) (id, name string, err error) {
	switch kind {
	case store.KindConcession:
		var cj factory.ConcessionJSON
		if err := json.Unmarshal(raw, &cj); err != nil {
			return "", "", err
		}
		if _, err := h.Factory.Concession(cj); err != nil {
			return "", "", err
		}
		return cj.ID, cj.Name, nil
	case store.KindFee:
		var fj factory.FeeJSON
		if err := json.Unmarshal(raw, &fj); err != nil {
			return "", "", err
		}
		if _, err := h.Factory.Fee(fj); err != nil {
			return "", "", err
		}
		return fj.ID, fj.Name, nil
	default:
		var tj factory.LeaseTermJSON
		if err := json.Unmarshal(raw, &tj); err != nil {
			return "", "", err
		}
		concessions, err := h.loadConcessions(r)
		if err != nil {
			return "", "", err
		}
		if _, err := h.Factory.LeaseTerm(tj, concessions); err != nil {
			return "", "", err
		}
		return tj.ID, tj.ID, nil
	}
}

// DeleteCatalogEntry removes one entry.
func (h *Handler) DeleteCatalogEntry(w http.ResponseWriter, r *http.Request) {
	kind, err := catalogKind(r)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err := h.Store.DeleteCatalogRecord(r.Context(), kind, chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toCatalogEntryDTO(rec store.CatalogRecord) CatalogEntryDTO {
	var config any
	if err := json.Unmarshal([]byte(rec.ConfigJSON), &config); err != nil {
		config = rec.ConfigJSON
	}
	dto := CatalogEntryDTO{
		ID:     rec.ID,
		Name:   rec.Name,
		Kind:   string(rec.Kind),
		Config: config,
	}
	if !rec.CreatedAt.IsZero() {
		dto.CreatedAt = rec.CreatedAt.Format("2006-01-02T15:04:05Z07:00")
		dto.UpdatedAt = rec.UpdatedAt.Format("2006-01-02T15:04:05Z07:00")
	}
	return dto
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

// writeDomainError maps engine/store errors to HTTP status codes.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, pricing.ErrMissingAdjustedMarketRent),
		errors.Is(err, pricing.ErrMissingPeriodUnit),
		errors.Is(err, pricing.ErrMissingLeaseStartDate),
		errors.Is(err, pricing.ErrUnresolvableConcession):
		writeError(w, http.StatusBadRequest, err)
	default:
		// Factory validation errors are client mistakes too; storage
		// failures are the only 500s and surface via explicit branches
		// above this helper.
		writeError(w, http.StatusBadRequest, err)
	}
}
