package factory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/pricing-engine/factory"
	"github.com/warp/pricing-engine/pricing"
)

func TestParseCatalog(t *testing.T) {
	f := factory.NewCatalogFactory()

	catalog, err := f.ParseCatalog(`{
		"lease_terms": [
			{"id": "12m", "period": "month", "term_length": 12,
			 "adjusted_market_rent": "2000", "concession_ids": ["1m-free"]}
		],
		"concessions": [
			{"id": "1m-free", "name": "One month free", "kind": "oneTime",
			 "applied_at": "first", "relative_adjustment": "-100", "selected": true}
		],
		"fees": [
			{"id": "pet", "name": "Pet rent", "price": "50", "quantity": 1,
			 "selected": true, "quote_payment_schedule": true}
		]
	}`)
	require.NoError(t, err)
	assert.Len(t, catalog.LeaseTerms, 1)
	assert.Len(t, catalog.Concessions, 1)
	assert.Len(t, catalog.Fees, 1)

	_, err = f.ParseCatalog(`{not json`)
	assert.Error(t, err)
}

func TestConcession_Conversion(t *testing.T) {
	f := factory.NewCatalogFactory()

	c, err := f.Concession(factory.ConcessionJSON{
		ID: "loyalty", Name: "Loyalty discount", Kind: "recurring",
		AbsoluteAdjustment: "-100", RecurringCount: 2, Selected: true,
	})
	require.NoError(t, err)
	assert.Equal(t, pricing.ConcessionRecurring, c.Kind)
	assert.Equal(t, pricing.AppliedFirst, c.AppliedAt, "empty anchor defaults to first")
	assert.Equal(t, "-100", c.AbsoluteAdjustment.String())
	assert.Equal(t, 2, c.RecurringCount)
}

func TestConcession_Validation(t *testing.T) {
	f := factory.NewCatalogFactory()

	// Unknown kind.
	_, err := f.Concession(factory.ConcessionJSON{ID: "bad", Kind: "monthly"})
	assert.ErrorContains(t, err, "unknown concession kind")

	// Unknown anchor.
	_, err = f.Concession(factory.ConcessionJSON{
		ID: "bad", Kind: "oneTime", AppliedAt: "middle", RelativeAdjustment: "-100"})
	assert.ErrorContains(t, err, "unknown concession anchor")

	// Malformed money string.
	_, err = f.Concession(factory.ConcessionJSON{
		ID: "bad", Kind: "oneTime", AbsoluteAdjustment: "one hundred"})
	assert.ErrorContains(t, err, "absolute_adjustment")

	// No usable adjustment for its kind.
	_, err = f.Concession(factory.ConcessionJSON{ID: "empty", Kind: "variable"})
	var unresolvable *pricing.UnresolvableConcessionError
	require.ErrorAs(t, err, &unresolvable)
	assert.Equal(t, "empty", unresolvable.ConcessionID)
}

func TestLeaseTerm_Conversion(t *testing.T) {
	f := factory.NewCatalogFactory()
	concessions := map[string]pricing.Concession{
		"1m-free": {ID: "1m-free", Kind: pricing.ConcessionOneTime},
	}

	term, err := f.LeaseTerm(factory.LeaseTermJSON{
		ID: "12m", Period: "month", TermLength: 12,
		AdjustedMarketRent:  "2000",
		OverwrittenBaseRent: "1900",
		EndDate:             "2018-02-28",
		ConcessionIDs:       []string{"1m-free"},
	}, concessions)
	require.NoError(t, err)

	assert.Equal(t, pricing.PeriodMonth, term.Period)
	assert.Equal(t, "2000", term.AdjustedMarketRent.String())
	assert.Equal(t, "1900", term.OverwrittenBaseRent.String())
	assert.False(t, term.EndDate.IsZero())
	require.Len(t, term.Concessions, 1)
	assert.Equal(t, "1m-free", term.Concessions[0].ID)
}

func TestLeaseTerm_Validation(t *testing.T) {
	f := factory.NewCatalogFactory()

	_, err := f.LeaseTerm(factory.LeaseTermJSON{ID: "t", TermLength: 6}, nil)
	assert.ErrorIs(t, err, pricing.ErrMissingPeriodUnit)

	_, err = f.LeaseTerm(factory.LeaseTermJSON{ID: "t", Period: "month"}, nil)
	assert.ErrorContains(t, err, "term_length")

	_, err = f.LeaseTerm(factory.LeaseTermJSON{
		ID: "t", Period: "month", TermLength: 6, AdjustedMarketRent: "2k"}, nil)
	assert.ErrorContains(t, err, "adjusted_market_rent")

	_, err = f.LeaseTerm(factory.LeaseTermJSON{
		ID: "t", Period: "month", TermLength: 6, EndDate: "02/28/2018"}, nil)
	assert.ErrorContains(t, err, "end_date")

	_, err = f.LeaseTerm(factory.LeaseTermJSON{
		ID: "t", Period: "month", TermLength: 6,
		ConcessionIDs: []string{"ghost"}}, nil)
	assert.ErrorContains(t, err, `unknown concession "ghost"`)
}

func TestFee_Conversion(t *testing.T) {
	f := factory.NewCatalogFactory()

	fee, err := f.Fee(factory.FeeJSON{
		ID: "parking", Name: "Covered parking", Price: "120", Quantity: 2,
		Selected: true, ServicePeriod: "month", QuotePaymentSchedule: true,
		Concessions: []factory.ConcessionJSON{
			{ID: "free-month", Kind: "oneTime", RelativeAdjustment: "-100", Selected: true},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "120", fee.Price.String())
	assert.Equal(t, 2, fee.Quantity)
	assert.True(t, fee.QuotePaymentSchedule)
	require.Len(t, fee.Concessions, 1)

	// A broken nested concession fails the whole fee.
	_, err = f.Fee(factory.FeeJSON{
		ID: "parking", Price: "120",
		Concessions: []factory.ConcessionJSON{{ID: "bad", Kind: "nope"}},
	})
	assert.ErrorContains(t, err, `fee "parking"`)

	_, err = f.Fee(factory.FeeJSON{ID: "parking", Price: "abc"})
	assert.ErrorContains(t, err, "price")
}
