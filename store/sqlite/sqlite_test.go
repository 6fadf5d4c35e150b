package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/pricing-engine/store"
	"github.com/warp/pricing-engine/store/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	st, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

// =============================================================================
// CATALOG RECORDS
// =============================================================================

func TestCatalogRecord_RoundTrip(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	rec := store.CatalogRecord{
		ID:         "12m-standard",
		Kind:       store.KindLeaseTerm,
		Name:       "12 month standard",
		ConfigJSON: `{"id":"12m-standard","period":"month","term_length":12}`,
	}
	require.NoError(t, st.SaveCatalogRecord(ctx, rec))

	got, err := st.GetCatalogRecord(ctx, store.KindLeaseTerm, "12m-standard")
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, rec.Kind, got.Kind)
	assert.Equal(t, rec.Name, got.Name)
	assert.Equal(t, rec.ConfigJSON, got.ConfigJSON)
	assert.False(t, got.CreatedAt.IsZero())
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestCatalogRecord_SaveIsUpsert(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	rec := store.CatalogRecord{
		ID: "pet", Kind: store.KindFee, Name: "Pet rent",
		ConfigJSON: `{"price":"50"}`,
	}
	require.NoError(t, st.SaveCatalogRecord(ctx, rec))

	rec.Name = "Pet rent (updated)"
	rec.ConfigJSON = `{"price":"60"}`
	require.NoError(t, st.SaveCatalogRecord(ctx, rec))

	got, err := st.GetCatalogRecord(ctx, store.KindFee, "pet")
	require.NoError(t, err)
	assert.Equal(t, "Pet rent (updated)", got.Name)
	assert.Equal(t, `{"price":"60"}`, got.ConfigJSON)

	recs, err := st.ListCatalogRecords(ctx, store.KindFee)
	require.NoError(t, err)
	assert.Len(t, recs, 1, "upsert must not create a second row")
}

func TestCatalogRecord_KindsAreSeparateNamespaces(t *testing.T) {
	// The same ID can exist under different kinds; lookups are kind-scoped.
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.SaveCatalogRecord(ctx, store.CatalogRecord{
		ID: "shared", Kind: store.KindConcession, Name: "concession", ConfigJSON: `{}`}))
	require.NoError(t, st.SaveCatalogRecord(ctx, store.CatalogRecord{
		ID: "shared", Kind: store.KindFee, Name: "fee", ConfigJSON: `{}`}))

	c, err := st.GetCatalogRecord(ctx, store.KindConcession, "shared")
	require.NoError(t, err)
	assert.Equal(t, "concession", c.Name)

	f, err := st.GetCatalogRecord(ctx, store.KindFee, "shared")
	require.NoError(t, err)
	assert.Equal(t, "fee", f.Name)

	_, err = st.GetCatalogRecord(ctx, store.KindLeaseTerm, "shared")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCatalogRecord_ListSortedByID(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"zeta", "alpha", "mid"} {
		require.NoError(t, st.SaveCatalogRecord(ctx, store.CatalogRecord{
			ID: id, Kind: store.KindConcession, Name: id, ConfigJSON: `{}`}))
	}

	recs, err := st.ListCatalogRecords(ctx, store.KindConcession)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, "alpha", recs[0].ID)
	assert.Equal(t, "mid", recs[1].ID)
	assert.Equal(t, "zeta", recs[2].ID)
}

func TestCatalogRecord_Delete(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.SaveCatalogRecord(ctx, store.CatalogRecord{
		ID: "gone", Kind: store.KindConcession, Name: "gone", ConfigJSON: `{}`}))

	require.NoError(t, st.DeleteCatalogRecord(ctx, store.KindConcession, "gone"))
	_, err := st.GetCatalogRecord(ctx, store.KindConcession, "gone")
	assert.ErrorIs(t, err, store.ErrNotFound)

	// Deleting a missing record reports not-found, not success.
	err = st.DeleteCatalogRecord(ctx, store.KindConcession, "gone")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

// =============================================================================
// QUOTES
// =============================================================================

func TestQuote_RoundTrip(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	rec := store.QuoteRecord{
		ID:           "q-1",
		LeaseTermID:  "12m-standard",
		LeaseStart:   time.Date(2017, time.March, 16, 0, 0, 0, 0, time.UTC),
		RequestJSON:  `{"lease_term_id":"12m-standard"}`,
		ScheduleJSON: `{"payments":[]}`,
	}
	require.NoError(t, st.SaveQuote(ctx, rec))

	got, err := st.GetQuote(ctx, "q-1")
	require.NoError(t, err)
	assert.Equal(t, rec.LeaseTermID, got.LeaseTermID)
	assert.True(t, rec.LeaseStart.Equal(got.LeaseStart))
	assert.Equal(t, rec.RequestJSON, got.RequestJSON)
	assert.Equal(t, rec.ScheduleJSON, got.ScheduleJSON)
	assert.False(t, got.CreatedAt.IsZero(), "created_at defaults to now")
}

func TestQuote_NotFound(t *testing.T) {
	st := newTestStore(t)
	_, err := st.GetQuote(context.Background(), "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestQuote_ListOldestFirst(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	older := time.Date(2017, time.January, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2017, time.June, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, st.SaveQuote(ctx, store.QuoteRecord{
		ID: "q-new", LeaseTermID: "t", LeaseStart: newer,
		RequestJSON: `{}`, ScheduleJSON: `{}`, CreatedAt: newer}))
	require.NoError(t, st.SaveQuote(ctx, store.QuoteRecord{
		ID: "q-old", LeaseTermID: "t", LeaseStart: older,
		RequestJSON: `{}`, ScheduleJSON: `{}`, CreatedAt: older}))

	recs, err := st.ListQuotes(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "q-old", recs[0].ID)
	assert.Equal(t, "q-new", recs[1].ID)
}

func TestQuote_DuplicateIDRejected(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	rec := store.QuoteRecord{
		ID: "q-1", LeaseTermID: "t",
		LeaseStart:  time.Date(2017, time.March, 1, 0, 0, 0, 0, time.UTC),
		RequestJSON: `{}`, ScheduleJSON: `{}`,
	}
	require.NoError(t, st.SaveQuote(ctx, rec))
	assert.Error(t, st.SaveQuote(ctx, rec), "quote IDs are immutable once written")
}
