/*
at.go - Annual training / active-duty order pay calculation

PURPOSE:
  Computes pay for an AT or active-duty period of N days. Unlike drill
  pay, the tax estimate here respects the taxable/tax-free partition:
  only base pay is taxable; BAH, BAS, and per-diem are always tax-free.

DAILY RATES:
  base     = monthly base pay / 30
  BAH      = monthly BAH / 30          (if included)
  BAS      = published monthly BAS / 30 (if included)
  per-diem = flat daily rate           (if included)
*/
package paycalc

import (
	"github.com/scott198989/milpay-engine/money"
	"github.com/scott198989/milpay-engine/rates"
)

// ATPayParams are the per-order inputs.
type ATPayParams struct {
	Days           int
	IncludeBAH     bool
	BAHMonthly     float64
	IncludeBAS     bool
	IncludePerDiem bool
	PerDiemDaily   float64
}

// ATPayResult is the computed order pay, rounded to cents.
type ATPayResult struct {
	DailyBasePay    float64         `json:"daily_base_pay"`
	TotalBasePay    float64         `json:"total_base_pay"`
	TotalBAH        float64         `json:"total_bah"`
	TotalBAS        float64         `json:"total_bas"`
	TotalPerDiem    float64         `json:"total_per_diem"`
	GrossPay        float64         `json:"gross_pay"`
	TaxableAmount   float64         `json:"taxable_amount"`
	TaxFreeAmount   float64         `json:"tax_free_amount"`
	EstimatedTaxes  float64         `json:"estimated_taxes"`
	EstimatedNetPay float64         `json:"estimated_net_pay"`
	Breakdown       []BreakdownItem `json:"breakdown"`
}

// ComputeATPay calculates pay for an annual-training or active-duty period.
// Pure; never errors. Zero or negative days yields an all-zero result.
//
// Tax partition invariant: only the base-pay total is taxable. BAH, BAS,
// and per-diem totals are tax-free without exception.
func ComputeATPay(ctx PayContext, provider rates.Provider, p ATPayParams) ATPayResult {
	if p.Days <= 0 {
		return ATPayResult{}
	}

	dailyBase := provider.BasePayRate(ctx.Grade, ctx.YearsOfService).DivInt(30)
	totalBase := dailyBase.MulInt(p.Days)

	totalBAH := money.Zero()
	if p.IncludeBAH {
		totalBAH = money.FromFloat(p.BAHMonthly).DivInt(30).MulInt(p.Days)
	}
	totalBAS := money.Zero()
	if p.IncludeBAS {
		totalBAS = provider.BASRate(ctx.BASComponent()).DivInt(30).MulInt(p.Days)
	}
	totalPerDiem := money.Zero()
	if p.IncludePerDiem {
		totalPerDiem = money.FromFloat(p.PerDiemDaily).MulInt(p.Days)
	}

	taxable := totalBase
	taxFree := totalBAH.Add(totalBAS).Add(totalPerDiem)
	gross := taxable.Add(taxFree)
	taxes := money.EstimateWithholding(taxable, money.DefaultWithholdingRate)
	net := gross.Sub(taxes)

	// Breakdown only carries components with a positive amount.
	var breakdown []BreakdownItem
	appendIf := func(label string, amount money.Money, taxableItem bool) {
		if amount.IsPositive() {
			breakdown = append(breakdown, BreakdownItem{Label: label, Amount: amount.Float64(), Taxable: taxableItem})
		}
	}
	appendIf("Base pay", totalBase, true)
	appendIf("BAH", totalBAH, false)
	appendIf("BAS", totalBAS, false)
	appendIf("Per diem", totalPerDiem, false)

	return ATPayResult{
		DailyBasePay:    dailyBase.Float64(),
		TotalBasePay:    totalBase.Float64(),
		TotalBAH:        totalBAH.Float64(),
		TotalBAS:        totalBAS.Float64(),
		TotalPerDiem:    totalPerDiem.Float64(),
		GrossPay:        gross.Float64(),
		TaxableAmount:   taxable.Float64(),
		TaxFreeAmount:   taxFree.Float64(),
		EstimatedTaxes:  taxes.Float64(),
		EstimatedNetPay: net.Float64(),
		Breakdown:       breakdown,
	}
}
