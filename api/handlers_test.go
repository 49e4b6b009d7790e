/*
handlers_test.go - Unit tests for API handlers

Tests run against the full chi router with in-memory stores, so they
exercise routing, decoding, validation, and domain wiring together.
*/
package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/scott198989/milpay-engine/drill"
	drillstore "github.com/scott198989/milpay-engine/drill/store"
	"github.com/scott198989/milpay-engine/les"
	lesstore "github.com/scott198989/milpay-engine/les/store"
	"github.com/scott198989/milpay-engine/paycalc"
	"github.com/scott198989/milpay-engine/rates"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	h := NewHandler(
		les.NewLedger(lesstore.NewMemory()),
		drillstore.NewMemory(),
		rates.NewStaticProvider(),
		zap.NewNop(),
	)
	srv := httptest.NewServer(NewRouter(h))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, srv *httptest.Server, method, path string, body any, out any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, srv.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

// ===== CALCULATORS =====

func TestDrillPayEndpoint(t *testing.T) {
	srv := newTestServer(t)

	// GIVEN: an E-5 with 6 years requesting a standard 4-MUTA weekend
	req := map[string]any{
		"pay_grade":        "E-5",
		"years_of_service": 6,
		"muta_count":       4,
	}

	// WHEN: computing drill pay
	var result paycalc.DrillPayResult
	resp := doJSON(t, srv, http.MethodPost, "/api/calc/drill", req, &result)

	// THEN: the result is internally consistent
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Greater(t, result.TotalBasePay, 0.0)
	assert.InDelta(t, result.TotalBasePay, result.PerPeriodPay*4, 0.05)
	assert.Equal(t, result.TotalBasePay, result.GrossPay, "no BAH requested")
	assert.InDelta(t, result.GrossPay-result.EstimatedTaxes, result.EstimatedNetPay, 0.01)
	assert.InDelta(t, result.GrossPay*12, result.AnnualProjectedGross, 0.05)
}

func TestDrillPayEndpoint_RejectsBadMUTA(t *testing.T) {
	srv := newTestServer(t)

	req := map[string]any{
		"pay_grade":        "E-5",
		"years_of_service": 6,
		"muta_count":       12, // above the 8-period cap
	}
	resp := doJSON(t, srv, http.MethodPost, "/api/calc/drill", req, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestATPayEndpoint_TaxPartition(t *testing.T) {
	srv := newTestServer(t)

	// GIVEN: an AT period with taxable base and tax-free allowances
	req := map[string]any{
		"pay_grade":        "E-4",
		"years_of_service": 4,
		"days":             14,
		"include_bah":      true,
		"bah_monthly":      1500.0,
		"include_bas":      true,
	}

	// WHEN: computing AT pay
	var result paycalc.ATPayResult
	resp := doJSON(t, srv, http.MethodPost, "/api/calc/at", req, &result)

	// THEN: only base pay is taxed, allowances ride tax-free
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.InDelta(t, result.TotalBasePay, result.TaxableAmount, 0.01)
	assert.InDelta(t, result.TotalBAH+result.TotalBAS, result.TaxFreeAmount, 0.01)
	assert.InDelta(t, result.GrossPay-result.EstimatedTaxes, result.EstimatedNetPay, 0.01)
}

func TestCompareOrdersEndpoint(t *testing.T) {
	srv := newTestServer(t)

	// Military clearly ahead of civilian pay
	req := map[string]any{
		"military_total":      9000.0,
		"civilian_daily_rate": 200.0,
		"total_days":          30,
	}
	var result paycalc.OrdersComparison
	resp := doJSON(t, srv, http.MethodPost, "/api/calc/compare-orders", req, &result)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 6000.0, result.CivilianTotalPay)
	assert.Equal(t, 3000.0, result.PayDifference)
	assert.Equal(t, paycalc.RecommendTakeOrders, result.Recommendation)
}

// ===== RECORDS =====

func payPeriodRequest(year, month, day int, periodType string) map[string]any {
	return map[string]any{
		"type":     periodType,
		"pay_date": time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC),
		"month":    month,
		"year":     year,
	}
}

func sampleRecordRequest() map[string]any {
	return map[string]any{
		"pay_period": payPeriodRequest(2025, 6, 15, "mid_month"),
		"member": map[string]any{
			"name": "SGT Example", "grade": "E-5", "years_of_service": 6, "branch": "army",
		},
		"entitlements": []map[string]any{
			{"type": "base_pay", "amount": 1400.0, "taxable": true},
			{"type": "bah", "amount": 750.0},
		},
		"deductions": []map[string]any{
			{"type": "federal_tax", "amount": 308.0, "mandatory": true},
			{"type": "fica_soc_security", "amount": 86.80, "mandatory": true},
		},
		"allotments": []map[string]any{
			{"type": "savings", "amount": 100.0},
		},
	}
}

func TestRecordLifecycle(t *testing.T) {
	srv := newTestServer(t)

	// GIVEN: a created record
	var created les.Record
	resp := doJSON(t, srv, http.MethodPost, "/api/records", sampleRecordRequest(), &created)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NotEmpty(t, created.ID)

	// THEN: totals were computed server-side
	assert.Equal(t, 2150.0, created.Totals.GrossPay)
	assert.InDelta(t, 1655.20, created.Totals.NetPay, 0.001)

	// WHEN: fetching it back
	var fetched les.Record
	resp = doJSON(t, srv, http.MethodGet, "/api/records/"+created.ID, nil, &fetched)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, created.Totals, fetched.Totals)

	// WHEN: adding a deduction through the sub-mutator route
	var updated les.Record
	resp = doJSON(t, srv, http.MethodPost, "/api/records/"+created.ID+"/deductions",
		map[string]any{"type": "sgli", "amount": 25.0}, &updated)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.InDelta(t, 1630.20, updated.Totals.NetPay, 0.001, "totals follow line-item mutations")

	// WHEN: deleting
	resp = doJSON(t, srv, http.MethodDelete, "/api/records/"+created.ID, nil, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, srv, http.MethodGet, "/api/records/"+created.ID, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateRecord_RejectsUnknownType(t *testing.T) {
	srv := newTestServer(t)

	req := sampleRecordRequest()
	req["entitlements"] = []map[string]any{
		{"type": "lottery_winnings", "amount": 1400.0},
	}
	resp := doJSON(t, srv, http.MethodPost, "/api/records", req, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestValidateRecordEndpoint(t *testing.T) {
	srv := newTestServer(t)

	var created les.Record
	doJSON(t, srv, http.MethodPost, "/api/records", sampleRecordRequest(), &created)

	var report les.ValidationReport
	resp := doJSON(t, srv, http.MethodGet, "/api/records/"+created.ID+"/validate", nil, &report)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, report.IsValid)
	assert.Empty(t, report.Errors)
}

// ===== COMPARISONS AND TRENDS =====

func TestCompareRecordsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	prev := sampleRecordRequest()
	cur := sampleRecordRequest()
	cur["pay_period"] = payPeriodRequest(2025, 6, 30, "end_of_month")
	cur["deductions"] = []map[string]any{
		{"type": "federal_tax", "amount": 350.0, "mandatory": true},
		{"type": "fica_soc_security", "amount": 86.80, "mandatory": true},
	}

	var prevRec, curRec les.Record
	doJSON(t, srv, http.MethodPost, "/api/records", prev, &prevRec)
	doJSON(t, srv, http.MethodPost, "/api/records", cur, &curRec)

	var comparison les.Comparison
	resp := doJSON(t, srv, http.MethodPost, "/api/comparisons",
		map[string]any{"previous_id": prevRec.ID, "current_id": curRec.ID}, &comparison)

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NotEmpty(t, comparison.ID)
	assert.InDelta(t, -42.0, comparison.Summary.NetPayDifference, 0.001)

	// Latest returns the one we just created
	var latest les.Comparison
	resp = doJSON(t, srv, http.MethodGet, "/api/comparisons/latest", nil, &latest)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, comparison.ID, latest.ID)
}

func TestTrendEndpoint(t *testing.T) {
	srv := newTestServer(t)

	// Not enough history yet
	resp := doJSON(t, srv, http.MethodGet, "/api/trends/net_pay", nil, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	// Unknown metric
	resp = doJSON(t, srv, http.MethodGet, "/api/trends/bogus", nil, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Seed three months of statements
	for month := 4; month <= 6; month++ {
		req := sampleRecordRequest()
		req["pay_period"] = payPeriodRequest(2025, month, 15, "mid_month")
		doJSON(t, srv, http.MethodPost, "/api/records", req, nil)
	}

	var series les.TrendSeries
	resp = doJSON(t, srv, http.MethodGet, "/api/trends/net_pay?months=6", nil, &series)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, les.MetricNetPay, series.Metric)
	assert.Len(t, series.Points, 3)
}

// ===== SCHEDULES =====

func TestScheduleEndpoints(t *testing.T) {
	srv := newTestServer(t)

	// Create a FY2026 schedule
	var sched drill.Schedule
	resp := doJSON(t, srv, http.MethodPost, "/api/schedules",
		map[string]any{"fiscal_year": 2026, "branch": "army"}, &sched)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NotEmpty(t, sched.ID)

	// Add a standard 4-MUTA weekend
	resp = doJSON(t, srv, http.MethodPost, "/api/schedules/"+sched.ID+"/weekends",
		map[string]any{
			"event_type": "drill_weekend",
			"start_date": "2025-10-04T00:00:00Z",
			"end_date":   "2025-10-05T00:00:00Z",
			"muta_count": 4,
		}, &sched)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Len(t, sched.Weekends, 1)
	assert.Equal(t, 4, sched.TotalScheduledMUTAs)

	// Complete the first period
	weekendID := sched.Weekends[0].ID
	resp = doJSON(t, srv, http.MethodPost,
		"/api/schedules/"+sched.ID+"/weekends/"+weekendID+"/periods",
		map[string]any{"period_index": 0, "status": "completed"}, &sched)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, sched.TotalCompletedMUTAs)

	// Unknown weekend id is a 404
	resp = doJSON(t, srv, http.MethodPost,
		"/api/schedules/"+sched.ID+"/weekends/nope/periods",
		map[string]any{"period_index": 0, "status": "completed"}, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Year+branch lookup resolves to the same schedule
	var byYear drill.Schedule
	resp = doJSON(t, srv, http.MethodGet, "/api/schedules?fiscal_year=2026&branch=army", nil, &byYear)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, sched.ID, byYear.ID)
}
