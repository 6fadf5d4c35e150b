/*
Package store defines the persistence interfaces of the pricing service.

PURPOSE:
  The engine itself is pure; persistence exists around it for the pricing
  catalog (lease terms, concessions, fees) and for quotes priced through the
  API. Catalog records hold the JSON shapes the factory validates, so
  storage never needs to understand pricing semantics.

IMPLEMENTATIONS:
  store/sqlite: production store (SQLite, WAL)
  store/memory: in-memory store for tests

SEE ALSO:
  - factory/catalog.go: record JSON -> domain conversion
  - api/handlers.go: the only consumer
*/
package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// =============================================================================
// RECORDS
// =============================================================================

// CatalogRecord is one stored catalog entry. ConfigJSON holds the factory
// JSON shape for the record's kind.
type CatalogRecord struct {
	ID         string
	Kind       CatalogKind
	Name       string
	ConfigJSON string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CatalogKind distinguishes catalog entry types.
type CatalogKind string

const (
	KindLeaseTerm  CatalogKind = "lease_term"
	KindConcession CatalogKind = "concession"
	KindFee        CatalogKind = "fee"
)

// QuoteRecord is one priced quote: the request inputs and the computed
// schedule, both as JSON.
type QuoteRecord struct {
	ID           string
	LeaseTermID  string
	LeaseStart   time.Time
	RequestJSON  string
	ScheduleJSON string
	CreatedAt    time.Time
}

// =============================================================================
// INTERFACES
// =============================================================================

// Catalog persists catalog entries.
type Catalog interface {
	SaveCatalogRecord(ctx context.Context, rec CatalogRecord) error
	GetCatalogRecord(ctx context.Context, kind CatalogKind, id string) (CatalogRecord, error)
	ListCatalogRecords(ctx context.Context, kind CatalogKind) ([]CatalogRecord, error)
	DeleteCatalogRecord(ctx context.Context, kind CatalogKind, id string) error
}

// Quotes persists priced quotes.
type Quotes interface {
	SaveQuote(ctx context.Context, rec QuoteRecord) error
	GetQuote(ctx context.Context, id string) (QuoteRecord, error)
	ListQuotes(ctx context.Context) ([]QuoteRecord, error)
}

// Store is the full persistence surface the API needs.
type Store interface {
	Catalog
	Quotes
}
