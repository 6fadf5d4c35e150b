// Package memory provides an in-memory Store implementation for tests and
// development.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/warp/pricing-engine/store"
)

// =============================================================================
// MEMORY STORE
// =============================================================================

type Memory struct {
	mu      sync.RWMutex
	catalog map[catalogKey]store.CatalogRecord
	quotes  map[string]store.QuoteRecord
}

type catalogKey struct {
	Kind store.CatalogKind
	ID   string
}

func New() *Memory {
	return &Memory{
		catalog: make(map[catalogKey]store.CatalogRecord),
		quotes:  make(map[string]store.QuoteRecord),
	}
}

// =============================================================================
// CATALOG
// =============================================================================

func (m *Memory) SaveCatalogRecord(_ context.Context, rec store.CatalogRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := catalogKey{Kind: rec.Kind, ID: rec.ID}
	now := time.Now().UTC()
	if existing, ok := m.catalog[k]; ok {
		rec.CreatedAt = existing.CreatedAt
	} else {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now
	m.catalog[k] = rec
	return nil
}

func (m *Memory) GetCatalogRecord(_ context.Context, kind store.CatalogKind, id string) (store.CatalogRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.catalog[catalogKey{Kind: kind, ID: id}]
	if !ok {
		return store.CatalogRecord{}, store.ErrNotFound
	}
	return rec, nil
}

func (m *Memory) ListCatalogRecords(_ context.Context, kind store.CatalogKind) ([]store.CatalogRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	recs := make([]store.CatalogRecord, 0)
	for k, rec := range m.catalog {
		if k.Kind == kind {
			recs = append(recs, rec)
		}
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].ID < recs[j].ID })
	return recs, nil
}

func (m *Memory) DeleteCatalogRecord(_ context.Context, kind store.CatalogKind, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := catalogKey{Kind: kind, ID: id}
	if _, ok := m.catalog[k]; !ok {
		return store.ErrNotFound
	}
	delete(m.catalog, k)
	return nil
}

// =============================================================================
// QUOTES
// =============================================================================

func (m *Memory) SaveQuote(_ context.Context, rec store.QuoteRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	m.quotes[rec.ID] = rec
	return nil
}

func (m *Memory) GetQuote(_ context.Context, id string) (store.QuoteRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.quotes[id]
	if !ok {
		return store.QuoteRecord{}, store.ErrNotFound
	}
	return rec, nil
}

func (m *Memory) ListQuotes(_ context.Context) ([]store.QuoteRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	recs := make([]store.QuoteRecord, 0, len(m.quotes))
	for _, rec := range m.quotes {
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].CreatedAt.Before(recs[j].CreatedAt) })
	return recs, nil
}
