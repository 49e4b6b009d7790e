/*
drill.go - Drill-weekend pay calculation

PURPOSE:
  Computes expected pay for a drill weekend from the member's pay context
  and the weekend's MUTA count.

THE MODEL:
  perPeriod   = monthly base pay / 30       (one MUTA = 1/30 of monthly)
  totalBase   = perPeriod x mutaCount
  bahShare    = (monthly BAH / 30) x 2      (only when BAH is included;
                fixed at two housing-eligible days regardless of MUTAs)
  gross       = totalBase + bahShare        (BAS never applies to drill)
  net         = gross x (1 - withholding)   (flat estimate on full gross)
  annual      = weekend figures x (48 / mutaCount)

  The 1/30-per-period and 2-day BAH conventions are intentional
  simplifications of the published rules; keep them as-is.
*/
package paycalc

import (
	"github.com/scott198989/milpay-engine/money"
	"github.com/scott198989/milpay-engine/rates"
	"github.com/shopspring/decimal"
)

// standardYearMUTAs is the assumed number of paid periods in a full
// drill year (12 MUTA-4 weekends).
const standardYearMUTAs = 48

// DrillPayParams are the per-weekend inputs.
type DrillPayParams struct {
	MUTACount  int
	IncludeBAH bool
	// BAHMonthly is the member's monthly BAH rate, supplied by the caller
	// (location-based; not part of the grade table).
	BAHMonthly float64
}

// DrillPayResult is the computed weekend pay, all figures rounded to cents.
type DrillPayResult struct {
	PerPeriodPay         float64         `json:"per_period_pay"`
	TotalBasePay         float64         `json:"total_base_pay"`
	BAHComponent         float64         `json:"bah_component"`
	GrossPay             float64         `json:"gross_pay"`
	EstimatedTaxes       float64         `json:"estimated_taxes"`
	EstimatedNetPay      float64         `json:"estimated_net_pay"`
	AnnualProjectedGross float64         `json:"annual_projected_gross"`
	AnnualProjectedNet   float64         `json:"annual_projected_net"`
	Breakdown            []BreakdownItem `json:"breakdown"`
}

// ComputeDrillPay calculates pay for one drill weekend. Pure; never errors.
// A zero or negative MUTA count yields an all-zero result.
func ComputeDrillPay(ctx PayContext, provider rates.Provider, p DrillPayParams) DrillPayResult {
	if p.MUTACount <= 0 {
		return DrillPayResult{}
	}

	monthly := provider.BasePayRate(ctx.Grade, ctx.YearsOfService)
	perPeriod := monthly.DivInt(30)
	totalBase := perPeriod.MulInt(p.MUTACount)

	bahShare := money.Zero()
	if p.IncludeBAH {
		// Two housing-eligible days per weekend, fixed by convention.
		bahShare = money.FromFloat(p.BAHMonthly).DivInt(30).MulInt(2)
	}

	gross := totalBase.Add(bahShare)
	taxes := money.EstimateWithholding(gross, money.DefaultWithholdingRate)
	net := gross.Sub(taxes)

	// 48 MUTAs per standard year, scaled by this weekend's period count.
	weekendsPerYear := decimal.NewFromInt(standardYearMUTAs).Div(decimal.NewFromInt(int64(p.MUTACount)))
	annualGross := gross.Mul(weekendsPerYear)
	annualNet := net.Mul(weekendsPerYear)

	breakdown := []BreakdownItem{
		{Label: "Base drill pay", Amount: totalBase.Float64(), Taxable: true},
	}
	if bahShare.IsPositive() {
		breakdown = append(breakdown, BreakdownItem{Label: "BAH (prorated)", Amount: bahShare.Float64(), Taxable: false})
	}

	return DrillPayResult{
		PerPeriodPay:         perPeriod.Float64(),
		TotalBasePay:         totalBase.Float64(),
		BAHComponent:         bahShare.Float64(),
		GrossPay:             gross.Float64(),
		EstimatedTaxes:       taxes.Float64(),
		EstimatedNetPay:      net.Float64(),
		AnnualProjectedGross: annualGross.Float64(),
		AnnualProjectedNet:   annualNet.Float64(),
		Breakdown:            breakdown,
	}
}
