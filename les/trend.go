/*
trend.go - Pay trend analysis

PURPOSE:
  Aggregates a statement metric across many records into a labeled
  monthly series and classifies its direction. Input is noisy and
  irregularly sampled: a month may have zero, one, or two statements,
  and averaging within the month handles all three without special cases.

CLASSIFICATION:
  1. Volatility first: if the population coefficient of variation across
     the monthly averages exceeds 0.10 the series is volatile, overriding
     any directional signal. High dispersion beats direction.
  2. Otherwise split the ordered series in half (first half shorter when
     odd) and compare half-averages:
       second > first x 1.02 -> increasing
       second < first x 0.98 -> decreasing
       else                  -> stable
  3. Fewer than two monthly groups defaults to stable.
*/
package les

import (
	"fmt"
	"math"
	"sort"

	"github.com/scott198989/milpay-engine/money"
)

// =============================================================================
// SERIES MODEL
// =============================================================================

// Metric selects which statement figure is trended.
type Metric string

const (
	MetricGrossPay        Metric = "gross_pay"
	MetricNetPay          Metric = "net_pay"
	MetricTotalDeductions Metric = "total_deductions"
)

type Direction string

const (
	TrendIncreasing Direction = "increasing"
	TrendDecreasing Direction = "decreasing"
	TrendStable     Direction = "stable"
	TrendVolatile   Direction = "volatile"
)

// TrendPoint is one monthly average, labeled YYYY-MM.
type TrendPoint struct {
	Period string  `json:"period"`
	Value  float64 `json:"value"`
}

type TrendSeries struct {
	Metric       Metric       `json:"metric"`
	Points       []TrendPoint `json:"points"`
	Trend        Direction    `json:"trend"`
	AverageValue float64      `json:"average_value"`
	MinValue     float64      `json:"min_value"`
	MaxValue     float64      `json:"max_value"`
}

// volatilityThreshold is the coefficient-of-variation cutoff above which
// dispersion overrides direction.
const volatilityThreshold = 0.10

// =============================================================================
// ANALYSIS
// =============================================================================

// AnalyzeTrend builds the series from records ordered pay-date DESCENDING
// (the ledger's natural order). The window is monthsWindow x 2 records,
// two statements per month being the expected cadence. Returns nil with
// fewer than two source records.
func AnalyzeTrend(records []Record, metric Metric, monthsWindow int) *TrendSeries {
	if len(records) < 2 {
		return nil
	}
	limit := monthsWindow * 2
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}

	// Group by YYYY-MM and average within each month.
	sums := make(map[string]money.Money)
	counts := make(map[string]int)
	for _, r := range records {
		key := r.PayPeriod.PeriodKey()
		sums[key] = sums[key].Add(money.FromFloat(metricValue(r, metric)))
		counts[key]++
	}

	keys := make([]string, 0, len(sums))
	for k := range sums {
		keys = append(keys, k)
	}
	// Zero-padded YYYY-MM sorts chronologically.
	sort.Strings(keys)

	points := make([]TrendPoint, len(keys))
	values := make([]float64, len(keys))
	for i, k := range keys {
		avg := sums[k].DivInt(counts[k]).Float64()
		points[i] = TrendPoint{Period: k, Value: avg}
		values[i] = avg
	}

	avg, min, max := seriesStats(values)

	return &TrendSeries{
		Metric:       metric,
		Points:       points,
		Trend:        classify(values),
		AverageValue: avg,
		MinValue:     min,
		MaxValue:     max,
	}
}

func metricValue(r Record, m Metric) float64 {
	switch m {
	case MetricNetPay:
		return r.Totals.NetPay
	case MetricTotalDeductions:
		return r.Totals.TotalDeductions
	default:
		return r.Totals.GrossPay
	}
}

// classify applies the volatility-then-direction rules to the ordered
// monthly averages.
func classify(values []float64) Direction {
	if len(values) < 2 {
		return TrendStable
	}

	mean := meanOf(values)
	if mean != 0 {
		variance := 0.0
		for _, v := range values {
			d := v - mean
			variance += d * d
		}
		variance /= float64(len(values)) // population variance
		cov := math.Sqrt(variance) / math.Abs(mean)
		if cov > volatilityThreshold {
			return TrendVolatile
		}
	}

	// Two-half comparison; the first half takes the shorter piece.
	half := len(values) / 2
	firstAvg := meanOf(values[:half])
	secondAvg := meanOf(values[half:])

	switch {
	case secondAvg > firstAvg*1.02:
		return TrendIncreasing
	case secondAvg < firstAvg*0.98:
		return TrendDecreasing
	default:
		return TrendStable
	}
}

func meanOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func seriesStats(values []float64) (avg, min, max float64) {
	if len(values) == 0 {
		return 0, 0, 0
	}
	min, max = values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return meanOf(values), min, max
}

func periodKey(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}
