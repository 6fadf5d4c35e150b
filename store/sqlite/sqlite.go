/*
Package sqlite provides the SQLite-backed implementation of the storage
interfaces.

PURPOSE:
  Persists the pricing catalog and priced quotes. In production the same
  patterns apply to PostgreSQL - only minor SQL dialect differences.

KEY TABLES:
  catalog_records: lease terms, concessions, and fees as validated JSON
  quotes:          priced quotes (request inputs + computed schedule)

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  multiple readers don't block, a single writer at a time, better crash
  recovery.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. With PostgreSQL, database-level
  concurrency control would handle this instead.

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper migration
  tool (golang-migrate, goose) with versioned migrations.

USAGE:
  st, err := sqlite.New("./data/pricing.db")
  if err != nil {
      log.Fatal(err)
  }
  defer st.Close()

SEE ALSO:
  - store/store.go: interface definitions
  - store/memory: in-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/pricing-engine/store"
)

// Store implements store.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Pricing catalog (lease terms, concessions, fees)
	CREATE TABLE IF NOT EXISTS catalog_records (
		id TEXT NOT NULL,
		kind TEXT NOT NULL,
		name TEXT NOT NULL,
		config_json TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		PRIMARY KEY (kind, id)
	);

	CREATE INDEX IF NOT EXISTS idx_catalog_kind
		ON catalog_records(kind);

	-- Priced quotes
	CREATE TABLE IF NOT EXISTS quotes (
		id TEXT PRIMARY KEY,
		lease_term_id TEXT NOT NULL,
		lease_start TEXT NOT NULL,
		request_json TEXT NOT NULL,
		schedule_json TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_quotes_lease_term
		ON quotes(lease_term_id);
	CREATE INDEX IF NOT EXISTS idx_quotes_created_at
		ON quotes(created_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// CATALOG (store.Catalog interface)
// =============================================================================

// SaveCatalogRecord inserts or updates a catalog entry.
func (s *Store) SaveCatalogRecord(ctx context.Context, rec store.CatalogRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC().Format(time.RFC3339)
	query := `
		INSERT INTO catalog_records (id, kind, name, config_json, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (kind, id) DO UPDATE SET
			name = excluded.name,
			config_json = excluded.config_json,
			updated_at = excluded.updated_at
	`
	_, err := s.db.ExecContext(ctx, query, rec.ID, rec.Kind, rec.Name, rec.ConfigJSON, now, now)
	if err != nil {
		return fmt.Errorf("failed to save catalog record: %w", err)
	}
	return nil
}

// GetCatalogRecord fetches one catalog entry.
func (s *Store) GetCatalogRecord(ctx context.Context, kind store.CatalogKind, id string) (store.CatalogRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, kind, name, config_json, created_at, updated_at
		FROM catalog_records WHERE kind = ? AND id = ?
	`
	rec, err := scanCatalogRecord(s.db.QueryRowContext(ctx, query, kind, id))
	if errors.Is(err, sql.ErrNoRows) {
		return store.CatalogRecord{}, store.ErrNotFound
	}
	if err != nil {
		return store.CatalogRecord{}, fmt.Errorf("failed to get catalog record: %w", err)
	}
	return rec, nil
}

// ListCatalogRecords lists all entries of one kind.
func (s *Store) ListCatalogRecords(ctx context.Context, kind store.CatalogKind) ([]store.CatalogRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, kind, name, config_json, created_at, updated_at
		FROM catalog_records WHERE kind = ? ORDER BY id
	`
	rows, err := s.db.QueryContext(ctx, query, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog records: %w", err)
	}
	defer rows.Close()

	var recs []store.CatalogRecord
	for rows.Next() {
		rec, err := scanCatalogRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan catalog record: %w", err)
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// DeleteCatalogRecord removes one catalog entry.
func (s *Store) DeleteCatalogRecord(ctx context.Context, kind store.CatalogKind, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		`DELETE FROM catalog_records WHERE kind = ? AND id = ?`, kind, id)
	if err != nil {
		return fmt.Errorf("failed to delete catalog record: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// =============================================================================
// QUOTES (store.Quotes interface)
// =============================================================================

// SaveQuote persists a priced quote.
func (s *Store) SaveQuote(ctx context.Context, rec store.QuoteRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	query := `
		INSERT INTO quotes (id, lease_term_id, lease_start, request_json, schedule_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		rec.ID,
		rec.LeaseTermID,
		rec.LeaseStart.UTC().Format(time.RFC3339),
		rec.RequestJSON,
		rec.ScheduleJSON,
		createdAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save quote: %w", err)
	}
	return nil
}

// GetQuote fetches one priced quote.
func (s *Store) GetQuote(ctx context.Context, id string) (store.QuoteRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, lease_term_id, lease_start, request_json, schedule_json, created_at
		FROM quotes WHERE id = ?
	`
	rec, err := scanQuoteRecord(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return store.QuoteRecord{}, store.ErrNotFound
	}
	if err != nil {
		return store.QuoteRecord{}, fmt.Errorf("failed to get quote: %w", err)
	}
	return rec, nil
}

// ListQuotes lists all priced quotes, oldest first.
func (s *Store) ListQuotes(ctx context.Context) ([]store.QuoteRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, lease_term_id, lease_start, request_json, schedule_json, created_at
		FROM quotes ORDER BY created_at
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list quotes: %w", err)
	}
	defer rows.Close()

	var recs []store.QuoteRecord
	for rows.Next() {
		rec, err := scanQuoteRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan quote: %w", err)
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// =============================================================================
// SCANNING
// =============================================================================

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCatalogRecord(row rowScanner) (store.CatalogRecord, error) {
	var rec store.CatalogRecord
	var kind, createdAt, updatedAt string
	if err := row.Scan(&rec.ID, &kind, &rec.Name, &rec.ConfigJSON, &createdAt, &updatedAt); err != nil {
		return store.CatalogRecord{}, err
	}
	rec.Kind = store.CatalogKind(kind)
	rec.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	rec.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return rec, nil
}

func scanQuoteRecord(row rowScanner) (store.QuoteRecord, error) {
	var rec store.QuoteRecord
	var leaseStart, createdAt string
	if err := row.Scan(&rec.ID, &rec.LeaseTermID, &leaseStart, &rec.RequestJSON, &rec.ScheduleJSON, &createdAt); err != nil {
		return store.QuoteRecord{}, err
	}
	rec.LeaseStart, _ = time.Parse(time.RFC3339, leaseStart)
	rec.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return rec, nil
}
