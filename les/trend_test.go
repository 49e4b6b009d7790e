package les_test

import (
	"testing"

	"github.com/scott198989/milpay-engine/les"
)

// trendRecord builds a record whose gross/net land on the given value.
func trendRecord(year, month, day int, gross float64) les.Record {
	r := les.Record{
		PayPeriod:    payPeriod(year, month, day, les.PeriodEndOfMonth),
		Entitlements: []les.EntitlementLine{{Type: les.EntBasePay, Amount: gross}},
	}
	r.RecomputeTotals()
	return r
}

func TestAnalyzeTrend_NilBelowTwoRecords(t *testing.T) {
	// Trend classification on a single point is undefined.
	if got := les.AnalyzeTrend(nil, les.MetricGrossPay, 6); got != nil {
		t.Errorf("no records: got %+v, want nil", got)
	}
	one := []les.Record{trendRecord(2025, 6, 15, 1000)}
	if got := les.AnalyzeTrend(one, les.MetricGrossPay, 6); got != nil {
		t.Errorf("one record: got %+v, want nil", got)
	}
}

func TestAnalyzeTrend_VolatileOverridesDirection(t *testing.T) {
	// GIVEN: monthly averages [1000, 1000, 1500, 2000], CoV ~= 0.30
	// THEN: volatile wins even though the series rises.
	records := []les.Record{
		trendRecord(2025, 4, 30, 2000),
		trendRecord(2025, 3, 31, 1500),
		trendRecord(2025, 2, 28, 1000),
		trendRecord(2025, 1, 31, 1000),
	}
	got := les.AnalyzeTrend(records, les.MetricGrossPay, 6)
	if got == nil {
		t.Fatal("expected a series")
	}
	if got.Trend != les.TrendVolatile {
		t.Errorf("trend = %s, want volatile", got.Trend)
	}
}

func TestAnalyzeTrend_TwoHalfRuleStable(t *testing.T) {
	// [1000, 1005, 1010, 1015]: tiny CoV, and the second-half average
	// (1012.5) is inside the +/-2% band around the first half (1002.5).
	records := []les.Record{
		trendRecord(2025, 4, 30, 1015),
		trendRecord(2025, 3, 31, 1010),
		trendRecord(2025, 2, 28, 1005),
		trendRecord(2025, 1, 31, 1000),
	}
	got := les.AnalyzeTrend(records, les.MetricGrossPay, 6)
	if got == nil || got.Trend != les.TrendStable {
		t.Fatalf("trend = %+v, want stable", got)
	}
}

func TestAnalyzeTrend_IncreasingAndDecreasing(t *testing.T) {
	increasing := []les.Record{
		trendRecord(2025, 4, 30, 1080),
		trendRecord(2025, 3, 31, 1070),
		trendRecord(2025, 2, 28, 1010),
		trendRecord(2025, 1, 31, 1000),
	}
	got := les.AnalyzeTrend(increasing, les.MetricGrossPay, 6)
	if got == nil || got.Trend != les.TrendIncreasing {
		t.Fatalf("trend = %+v, want increasing", got)
	}

	decreasing := []les.Record{
		trendRecord(2025, 4, 30, 1000),
		trendRecord(2025, 3, 31, 1010),
		trendRecord(2025, 2, 28, 1070),
		trendRecord(2025, 1, 31, 1080),
	}
	got = les.AnalyzeTrend(decreasing, les.MetricGrossPay, 6)
	if got == nil || got.Trend != les.TrendDecreasing {
		t.Fatalf("trend = %+v, want decreasing", got)
	}
}

func TestAnalyzeTrend_AveragesWithinMonth(t *testing.T) {
	// Two statements in June average together; May has one. No special
	// casing for 1-vs-2 statements per month.
	records := []les.Record{
		trendRecord(2025, 6, 30, 1200),
		trendRecord(2025, 6, 15, 1000),
		trendRecord(2025, 5, 31, 900),
	}
	got := les.AnalyzeTrend(records, les.MetricGrossPay, 6)
	if got == nil {
		t.Fatal("expected a series")
	}
	if len(got.Points) != 2 {
		t.Fatalf("points = %+v, want 2 monthly groups", got.Points)
	}
	// Keys sort chronologically.
	if got.Points[0].Period != "2025-05" || got.Points[1].Period != "2025-06" {
		t.Errorf("period order = %+v, want 2025-05 then 2025-06", got.Points)
	}
	if got.Points[1].Value != 1100 {
		t.Errorf("june avg = %v, want 1100", got.Points[1].Value)
	}
	if got.MinValue != 900 || got.MaxValue != 1100 {
		t.Errorf("min/max = %v/%v, want 900/1100", got.MinValue, got.MaxValue)
	}
}

func TestAnalyzeTrend_WindowLimitsRecords(t *testing.T) {
	// monthsWindow=1 keeps only the 2 most recent records (2 per month
	// cadence), so older months drop out of the series.
	records := []les.Record{
		trendRecord(2025, 6, 30, 1200),
		trendRecord(2025, 6, 15, 1000),
		trendRecord(2025, 1, 31, 5000),
	}
	got := les.AnalyzeTrend(records, les.MetricGrossPay, 1)
	if got == nil {
		t.Fatal("expected a series")
	}
	if len(got.Points) != 1 || got.Points[0].Period != "2025-06" {
		t.Errorf("points = %+v, want only 2025-06", got.Points)
	}
	// A single period group defaults to stable.
	if got.Trend != les.TrendStable {
		t.Errorf("trend = %s, want stable with one group", got.Trend)
	}
}

func TestAnalyzeTrend_MetricSelection(t *testing.T) {
	r1 := les.Record{
		PayPeriod:    payPeriod(2025, 5, 31, les.PeriodEndOfMonth),
		Entitlements: []les.EntitlementLine{{Type: les.EntBasePay, Amount: 2000}},
		Deductions:   []les.DeductionLine{{Type: les.DedFederalTax, Amount: 400}},
	}
	r1.RecomputeTotals()
	r2 := les.Record{
		PayPeriod:    payPeriod(2025, 6, 30, les.PeriodEndOfMonth),
		Entitlements: []les.EntitlementLine{{Type: les.EntBasePay, Amount: 2000}},
		Deductions:   []les.DeductionLine{{Type: les.DedFederalTax, Amount: 450}},
	}
	r2.RecomputeTotals()
	records := []les.Record{r2, r1}

	deductions := les.AnalyzeTrend(records, les.MetricTotalDeductions, 6)
	if deductions == nil || deductions.Points[1].Value != 450 {
		t.Fatalf("deductions series = %+v, want June 450", deductions)
	}
	net := les.AnalyzeTrend(records, les.MetricNetPay, 6)
	if net == nil || net.Points[0].Value != 1600 {
		t.Fatalf("net series = %+v, want May 1600", net)
	}
}
