package les_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scott198989/milpay-engine/les"
	"github.com/scott198989/milpay-engine/les/store"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestLedger() *les.Ledger {
	return les.NewLedger(store.NewMemory())
}

func payPeriod(year int, month int, day int, t les.PayPeriodType) les.PayPeriod {
	payDate := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return les.PayPeriod{
		Type:      t,
		StartDate: payDate.AddDate(0, 0, -14),
		EndDate:   payDate,
		PayDate:   payDate,
		Month:     month,
		Year:      year,
	}
}

func basicRecord(year, month, day int) les.Record {
	return les.Record{
		PayPeriod: payPeriod(year, month, day, les.PeriodEndOfMonth),
		Member:    les.MemberSnapshot{Name: "SPC Doe", Grade: "E-4", YearsOfService: 4, Branch: "army_national_guard"},
		Entitlements: []les.EntitlementLine{
			{Type: les.EntBasePay, Description: "Base pay", Amount: 1400.00, Taxable: true},
			{Type: les.EntBAH, Description: "BAH", Amount: 750.00},
		},
		Deductions: []les.DeductionLine{
			{Type: les.DedFederalTax, Description: "Federal tax", Amount: 308.00, Mandatory: true},
			{Type: les.DedFICASocSec, Description: "Social Security", Amount: 86.80, Mandatory: true},
		},
		Allotments: []les.AllotmentLine{
			{Type: les.AllotSavings, Description: "Savings", Amount: 100.00},
		},
	}
}

// =============================================================================
// TOTALS INVARIANT
// =============================================================================

func TestAddRecord_ComputesTotalsAndIDs(t *testing.T) {
	ledger := newTestLedger()
	ctx := context.Background()

	saved, err := ledger.AddRecord(ctx, basicRecord(2025, 6, 30))
	require.NoError(t, err)

	assert.NotEmpty(t, saved.ID)
	for _, e := range saved.Entitlements {
		assert.NotEmpty(t, e.ID, "entitlement line ids are generated")
	}
	assert.Equal(t, 2150.00, saved.Totals.GrossPay)
	assert.Equal(t, 394.80, saved.Totals.TotalDeductions)
	assert.Equal(t, 100.00, saved.Totals.TotalAllotments)
	assert.Equal(t, 1655.20, saved.Totals.NetPay)
}

func TestSubMutators_NeverSkipTotals(t *testing.T) {
	ledger := newTestLedger()
	ctx := context.Background()

	saved, err := ledger.AddRecord(ctx, basicRecord(2025, 6, 30))
	require.NoError(t, err)

	// Adding a deduction recomputes net.
	afterAdd, err := ledger.AddDeduction(ctx, saved.ID, les.DeductionLine{
		Type: les.DedTSP, Description: "TSP", Amount: 140.00,
	})
	require.NoError(t, err)
	assert.Equal(t, 1515.20, afterAdd.Totals.NetPay)

	// Removing an allotment recomputes again.
	afterRemove, err := ledger.RemoveAllotment(ctx, saved.ID, afterAdd.Allotments[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 0.00, afterRemove.Totals.TotalAllotments)
	assert.Equal(t, 1615.20, afterRemove.Totals.NetPay)

	// Updating an entitlement amount recomputes gross.
	ent := afterRemove.Entitlements[0]
	ent.Amount = 1500.00
	afterUpdate, err := ledger.UpdateEntitlement(ctx, saved.ID, ent)
	require.NoError(t, err)
	assert.Equal(t, 2250.00, afterUpdate.Totals.GrossPay)

	// Invariant: net == gross - deductions - allotments for every step.
	for _, r := range []les.Record{afterAdd, afterRemove, afterUpdate} {
		want := les.ComputeTotals(r.Entitlements, r.Deductions, r.Allotments)
		assert.Equal(t, want, r.Totals)
	}
}

func TestUpdateRecord_NonLineItemFieldsLeaveTotalsAlone(t *testing.T) {
	ledger := newTestLedger()
	ctx := context.Background()

	saved, err := ledger.AddRecord(ctx, basicRecord(2025, 6, 30))
	require.NoError(t, err)

	notes := "verified against myPay"
	verified := true
	updated, err := ledger.UpdateRecord(ctx, saved.ID, les.RecordUpdate{Notes: &notes, IsVerified: &verified})
	require.NoError(t, err)

	assert.Equal(t, saved.Totals, updated.Totals)
	assert.True(t, updated.IsVerified)
	assert.Equal(t, notes, updated.Notes)
}

// =============================================================================
// ORDERING AND CASCADE
// =============================================================================

func TestRecords_SortedByPayDateDescending(t *testing.T) {
	ledger := newTestLedger()
	ctx := context.Background()

	for _, day := range []struct{ m, d int }{{5, 15}, {6, 30}, {6, 15}, {5, 31}} {
		_, err := ledger.AddRecord(ctx, basicRecord(2025, day.m, day.d))
		require.NoError(t, err)
	}

	records, err := ledger.Records(ctx)
	require.NoError(t, err)
	require.Len(t, records, 4)
	for i := 1; i < len(records); i++ {
		assert.False(t, records[i].PayPeriod.PayDate.After(records[i-1].PayPeriod.PayDate),
			"records must be pay-date descending")
	}
}

func TestDeleteRecord_CascadesComparisons(t *testing.T) {
	ledger := newTestLedger()
	ctx := context.Background()

	first, err := ledger.AddRecord(ctx, basicRecord(2025, 5, 31))
	require.NoError(t, err)
	second, err := ledger.AddRecord(ctx, basicRecord(2025, 6, 15))
	require.NoError(t, err)
	third, err := ledger.AddRecord(ctx, basicRecord(2025, 6, 30))
	require.NoError(t, err)

	_, err = ledger.CompareRecords(ctx, first.ID, second.ID)
	require.NoError(t, err)
	surviving, err := ledger.CompareRecords(ctx, second.ID, third.ID)
	require.NoError(t, err)
	_, err = ledger.CompareRecords(ctx, first.ID, third.ID)
	require.NoError(t, err)

	// Deleting the first record removes both comparisons touching it.
	require.NoError(t, ledger.DeleteRecord(ctx, first.ID))

	comparisons, err := ledger.Comparisons(ctx)
	require.NoError(t, err)
	require.Len(t, comparisons, 1)
	assert.Equal(t, surviving.ID, comparisons[0].ID)

	_, err = ledger.Record(ctx, first.ID)
	assert.ErrorIs(t, err, les.ErrRecordNotFound)
}

func TestLatestComparison_IsHeadOfList(t *testing.T) {
	ledger := newTestLedger()
	ctx := context.Background()

	a, _ := ledger.AddRecord(ctx, basicRecord(2025, 5, 31))
	b, _ := ledger.AddRecord(ctx, basicRecord(2025, 6, 15))

	_, err := ledger.LatestComparison(ctx)
	assert.ErrorIs(t, err, les.ErrComparisonNotFound)

	_, err = ledger.CompareRecords(ctx, a.ID, b.ID)
	require.NoError(t, err)
	newest, err := ledger.CompareRecords(ctx, b.ID, a.ID)
	require.NoError(t, err)

	latest, err := ledger.LatestComparison(ctx)
	require.NoError(t, err)
	assert.Equal(t, newest.ID, latest.ID)
}

func TestUpdateRecord_MissingID(t *testing.T) {
	ledger := newTestLedger()
	_, err := ledger.UpdateRecord(context.Background(), "nope", les.RecordUpdate{})
	assert.ErrorIs(t, err, les.ErrRecordNotFound)
}
