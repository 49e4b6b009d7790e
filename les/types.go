/*
Package les owns the Leave and Earnings Statement (LES) ledger: the
canonical list of periodic pay-statement records plus the read-only
analysis engines that operate over it (diff, trend, reconciliation).

PURPOSE:
  An LES record is a structured snapshot of one pay period: entitlement,
  deduction, and allotment line items plus leave balances. The record's
  totals are ALWAYS a pure function of its line-item lists; every mutator
  funnels through ComputeTotals so the cache can never drift.

KEY CONCEPTS IN THIS FILE (types.go):
  - EntitlementType / DeductionType / AllotmentType: closed line-item enums
  - EntitlementLine / DeductionLine / AllotmentLine: atomic line items
  - Record: one LES per pay period, with derived Totals
  - ComputeTotals: the single totals-recomputation authority

DESIGN PRINCIPLES:
  1. Totals invariant: netPay == round2(sum(ent) - sum(ded) - sum(allot))
     after every mutation, enforced by routing all writes through the
     Ledger (ledger.go)
  2. Closed enums: every line-item type is an enumerated constant with a
     total explanation mapping (reasons.go)
  3. Coercion over failure: amounts are summed through money.FromFloat,
     so NaN in a draft record degrades to zero instead of corrupting math

SEE ALSO:
  - ledger.go: the injectable repository owning the record list
  - diff.go: change classification between two records
  - trend.go: time-series analysis over many records
  - validate.go: independent recomputation cross-check
*/
package les

import (
	"time"

	"github.com/scott198989/milpay-engine/money"
)

// =============================================================================
// LINE-ITEM TYPE ENUMS - Closed sets, one per category
// =============================================================================

type EntitlementType string

const (
	EntBasePay       EntitlementType = "base_pay"
	EntDrillPay      EntitlementType = "drill_pay"
	EntBAH           EntitlementType = "bah"
	EntBAS           EntitlementType = "bas"
	EntHazardousDuty EntitlementType = "hazardous_duty"
	EntSpecialDuty   EntitlementType = "special_duty"
	EntHostileFire   EntitlementType = "hostile_fire"
	EntBonus         EntitlementType = "bonus"
	EntOther         EntitlementType = "other"
)

type DeductionType string

const (
	DedFederalTax  DeductionType = "federal_tax"
	DedStateTax    DeductionType = "state_tax"
	DedFICASocSec  DeductionType = "fica_soc_security"
	DedFICAMedicare DeductionType = "fica_medicare"
	DedSGLI        DeductionType = "sgli"
	DedDental      DeductionType = "dental"
	DedTSP         DeductionType = "tsp"
	DedOther       DeductionType = "other"
)

type AllotmentType string

const (
	AllotSavings   AllotmentType = "savings"
	AllotInsurance AllotmentType = "insurance"
	AllotDependent AllotmentType = "dependent"
	AllotCharity   AllotmentType = "charity"
	AllotOther     AllotmentType = "other"
)

// =============================================================================
// LINE ITEMS - Atomic statement entries
// =============================================================================

// EntitlementLine is a single pay line. Amounts are non-negative by
// contract; enforcement lives in the input-validation layer above the
// ledger, not here.
type EntitlementLine struct {
	ID          string          `json:"id"`
	Type        EntitlementType `json:"type"`
	Description string          `json:"description"`
	Amount      float64         `json:"amount"`
	YTDAmount   float64         `json:"ytd_amount,omitempty"`
	Taxable     bool            `json:"taxable"`
	Note        string          `json:"note,omitempty"`
}

type DeductionLine struct {
	ID          string        `json:"id"`
	Type        DeductionType `json:"type"`
	Description string        `json:"description"`
	Amount      float64       `json:"amount"`
	YTDAmount   float64       `json:"ytd_amount,omitempty"`
	Mandatory   bool          `json:"mandatory"`
	Note        string        `json:"note,omitempty"`
}

type AllotmentLine struct {
	ID          string        `json:"id"`
	Type        AllotmentType `json:"type"`
	Description string        `json:"description"`
	Amount      float64       `json:"amount"`
	Note        string        `json:"note,omitempty"`
}

// =============================================================================
// LEAVE BALANCE
// =============================================================================

type LeaveType string

const (
	LeaveAnnual     LeaveType = "annual"
	LeaveSick       LeaveType = "sick"
	LeaveSpecial    LeaveType = "special"
	LeaveExcess     LeaveType = "excess"
)

type LeaveBalance struct {
	Type    LeaveType `json:"type"`
	Balance float64   `json:"balance"`
	Earned  float64   `json:"earned"`
	Used    float64   `json:"used"`
}

// =============================================================================
// PAY PERIOD AND MEMBER SNAPSHOT
// =============================================================================

type PayPeriodType string

const (
	PeriodMidMonth   PayPeriodType = "mid_month"
	PeriodEndOfMonth PayPeriodType = "end_of_month"
)

// PayPeriod identifies which statement this record covers. Month/Year are
// carried explicitly because trend grouping keys on them.
type PayPeriod struct {
	Type      PayPeriodType `json:"type"`
	StartDate time.Time     `json:"start_date"`
	EndDate   time.Time     `json:"end_date"`
	PayDate   time.Time     `json:"pay_date"`
	Month     int           `json:"month"`
	Year      int           `json:"year"`
}

// PeriodKey is the zero-padded YYYY-MM label used for trend grouping.
// Lexicographic order on these keys is chronological order.
func (p PayPeriod) PeriodKey() string {
	return periodKey(p.Year, p.Month)
}

// MemberSnapshot captures the member attributes as of the statement.
// It is a snapshot, not a reference: a later promotion does not rewrite
// historical records.
type MemberSnapshot struct {
	Name           string `json:"name"`
	Grade          string `json:"grade"`
	YearsOfService int    `json:"years_of_service"`
	Branch         string `json:"branch"`
}

// =============================================================================
// RECORD - One LES per pay period
// =============================================================================

type EntryMethod string

const (
	EntryManual EntryMethod = "manual"
	EntryImport EntryMethod = "import"
)

// Totals is the derived rollup of a record's line items. It is a cache:
// authoritative values always come from ComputeTotals.
type Totals struct {
	GrossPay        float64 `json:"gross_pay"`
	TotalDeductions float64 `json:"total_deductions"`
	TotalAllotments float64 `json:"total_allotments"`
	NetPay          float64 `json:"net_pay"`
}

// Record is one LES entry.
type Record struct {
	ID           string            `json:"id"`
	PayPeriod    PayPeriod         `json:"pay_period"`
	Member       MemberSnapshot    `json:"member"`
	Entitlements []EntitlementLine `json:"entitlements"`
	Deductions   []DeductionLine   `json:"deductions"`
	Allotments   []AllotmentLine   `json:"allotments"`
	Leave        []LeaveBalance    `json:"leave,omitempty"`
	Totals       Totals            `json:"totals"`
	EntryMethod  EntryMethod       `json:"entry_method"`
	IsVerified   bool              `json:"is_verified"`
	Notes        string            `json:"notes,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// =============================================================================
// TOTALS - The single recomputation authority
// =============================================================================

// ComputeTotals derives the totals rollup from line items. Every mutation
// path funnels through this function; nothing else writes Totals.
//
// Each figure is rounded to 2 decimal places after full-precision
// summation. Malformed amounts (NaN/Inf) contribute zero.
func ComputeTotals(entitlements []EntitlementLine, deductions []DeductionLine, allotments []AllotmentLine) Totals {
	gross := money.Zero()
	for _, e := range entitlements {
		gross = gross.Add(money.FromFloat(e.Amount))
	}
	ded := money.Zero()
	for _, d := range deductions {
		ded = ded.Add(money.FromFloat(d.Amount))
	}
	allot := money.Zero()
	for _, a := range allotments {
		allot = allot.Add(money.FromFloat(a.Amount))
	}
	net := gross.Sub(ded).Sub(allot)

	return Totals{
		GrossPay:        gross.Float64(),
		TotalDeductions: ded.Float64(),
		TotalAllotments: allot.Float64(),
		NetPay:          net.Float64(),
	}
}

// RecomputeTotals refreshes the record's cached totals in place.
func (r *Record) RecomputeTotals() {
	r.Totals = ComputeTotals(r.Entitlements, r.Deductions, r.Allotments)
}
