/*
orders.go - Military-versus-civilian pay comparison for order decisions

PURPOSE:
  A reservist weighing active-duty orders against staying at a civilian
  job needs a dollar comparison plus a recommendation. The thresholds are
  deterministic policy, not a model:

    difference > +$500                  -> take_orders
    difference < -$500, no differential -> decline_orders
    difference < -$500, differential    -> negotiate
    otherwise                           -> neutral

  When the employer has a differential-pay policy and civilian pay wins,
  the USERRA make-up amount (civilian - military) is reported: that is
  what the employer would owe on top of military pay.

  Every comparison carries a note quantifying the tax-free portion of the
  military figure, because a raw dollar comparison understates military
  value.
*/
package paycalc

import (
	"fmt"

	"github.com/scott198989/milpay-engine/money"
	"github.com/shopspring/decimal"
)

// Recommendation is the comparator's decision label.
type Recommendation string

const (
	RecommendTakeOrders    Recommendation = "take_orders"
	RecommendDeclineOrders Recommendation = "decline_orders"
	RecommendNegotiate     Recommendation = "negotiate"
	RecommendNeutral       Recommendation = "neutral"
)

// significantDifference is the dollar threshold separating a clear
// recommendation from a neutral one.
var significantDifference = decimal.NewFromInt(500)

// CompareParams are the comparison inputs. MilitaryTaxFree is the portion
// of MilitaryTotal that is tax-free (BAH/BAS/per-diem), used for the note.
type CompareParams struct {
	MilitaryTotal            float64
	MilitaryTaxFree          float64
	CivilianDailyRate        float64
	TotalDays                int
	HasDifferentialPolicy    bool
}

// OrdersComparison is the computed result.
type OrdersComparison struct {
	MilitaryTotalPay     float64        `json:"military_total_pay"`
	CivilianTotalPay     float64        `json:"civilian_total_pay"`
	PayDifference        float64        `json:"pay_difference"`
	PercentDifference    float64        `json:"percent_difference"`
	EmployerDifferential float64        `json:"employer_differential"`
	Recommendation       Recommendation `json:"recommendation"`
	Notes                []string       `json:"notes"`
}

// CompareOrders compares military order pay against civilian earnings for
// the same period. Pure; never errors.
func CompareOrders(p CompareParams) OrdersComparison {
	military := money.FromFloat(p.MilitaryTotal)
	civilian := money.FromFloat(p.CivilianDailyRate).MulInt(p.TotalDays)
	diff := military.Sub(civilian)

	percent := money.Zero()
	if !civilian.IsZero() {
		percent = diff.Div(civilian.Value).MulInt(100)
	}

	rec := RecommendNeutral
	switch {
	case diff.Value.GreaterThan(significantDifference):
		rec = RecommendTakeOrders
	case diff.Value.LessThan(significantDifference.Neg()) && p.HasDifferentialPolicy:
		rec = RecommendNegotiate
	case diff.Value.LessThan(significantDifference.Neg()):
		rec = RecommendDeclineOrders
	}

	// USERRA make-up: owed only when a differential policy exists and the
	// civilian figure exceeds the military one.
	differential := money.Zero()
	if p.HasDifferentialPolicy && civilian.GreaterThan(military) {
		differential = civilian.Sub(military)
	}

	taxFree := money.FromFloat(p.MilitaryTaxFree)
	notes := []string{
		fmt.Sprintf("$%s of the military pay is tax-free; the dollar comparison understates its after-tax value.", taxFree.Round2()),
	}
	if differential.IsPositive() {
		notes = append(notes, fmt.Sprintf("Under a differential-pay policy the employer would owe $%s to match civilian earnings.", differential.Round2()))
	}

	return OrdersComparison{
		MilitaryTotalPay:     military.Float64(),
		CivilianTotalPay:     civilian.Float64(),
		PayDifference:        diff.Float64(),
		PercentDifference:    percent.Float64(),
		EmployerDifferential: differential.Float64(),
		Recommendation:       rec,
		Notes:                notes,
	}
}
