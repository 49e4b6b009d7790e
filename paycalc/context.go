/*
Package paycalc implements the deterministic pay calculators: drill-weekend
pay, annual-training (AT) / active-duty order pay, and the military-versus-
civilian orders comparison.

PURPOSE:
  Given a member's pay context and period parameters, compute gross and
  estimated-net pay with an itemized breakdown. Everything here is a pure
  function: no store, no I/O, no error returns. Missing numeric inputs are
  coerced to zero, matching the draft-tolerant form contract.

KEY CONVENTIONS (deliberate simplifications, documented, not bugs):
  - One drill period = 1/30 of monthly base pay (not the true 1/60 per day).
  - Drill-weekend BAH proration is always (monthly/30) x 2 days,
    regardless of MUTA count.
  - Net pay is estimated with a single flat withholding rate; drill pay
    applies it to the whole gross, AT pay only to the taxable partition.
  - A standard year is 48 MUTAs for annual projection.

SEE ALSO:
  - rates: monthly base pay and BAS lookups
  - money: decimal math and the shared withholding estimator
*/
package paycalc

import "github.com/scott198989/milpay-engine/rates"

// =============================================================================
// PAY CONTEXT - Immutable calculator input
// =============================================================================

// PayContext is a snapshot of the member attributes that drive rate lookup.
// It is never persisted on its own.
type PayContext struct {
	Grade          rates.PayGrade
	YearsOfService int
	Branch         rates.Branch
}

// BASComponent maps the member's grade to the published BAS component type.
func (c PayContext) BASComponent() rates.BASComponent {
	if len(c.Grade) > 0 && (c.Grade[0] == 'O' || c.Grade[0] == 'W') {
		return rates.BASOfficer
	}
	return rates.BASEnlisted
}

// BreakdownItem is one display line of a pay computation.
type BreakdownItem struct {
	Label   string  `json:"label"`
	Amount  float64 `json:"amount"`
	Taxable bool    `json:"taxable"`
}
