/*
diff.go - Statement diff engine

PURPOSE:
  Compares two LES records and classifies every line-item change. This
  is what answers "why is this paycheck different from the last one?"

CLASSIFICATION (per category, independently):
  - type in previous only          -> removed   (current 0, percent -100)
  - type in both, amounts differ   -> increased / decreased by sign;
                                      percent = diff/previous x 100
                                      (100 when previous is 0)
  - type in current only           -> added     (previous 0, percent 100)

MATCHING:
  By line-item TYPE, not id. Ids are generated per record and are not
  stable across statements. Multiple lines of the same type within one
  record are summed before matching.

SIGNIFICANCE:
  A change is significant when |difference| >= $50 OR |percent| >= 5.
  The summary also carries the net-pay delta between the two records.
*/
package les

import (
	"time"

	"github.com/scott198989/milpay-engine/money"
)

// =============================================================================
// CHANGE MODEL
// =============================================================================

type Category string

const (
	CategoryEntitlement Category = "entitlement"
	CategoryDeduction   Category = "deduction"
	CategoryAllotment   Category = "allotment"
)

type ChangeType string

const (
	ChangeAdded     ChangeType = "added"
	ChangeRemoved   ChangeType = "removed"
	ChangeIncreased ChangeType = "increased"
	ChangeDecreased ChangeType = "decreased"
)

// LineItemChange is one classified difference between two statements.
type LineItemChange struct {
	Category       Category   `json:"category"`
	Type           string     `json:"type"`
	Description    string     `json:"description"`
	ChangeType     ChangeType `json:"change_type"`
	PreviousAmount float64    `json:"previous_amount"`
	CurrentAmount  float64    `json:"current_amount"`
	Difference     float64    `json:"difference"`
	PercentChange  float64    `json:"percent_change"`
	PossibleReason string     `json:"possible_reason"`
}

// Summary rolls up a comparison.
type Summary struct {
	NetPayDifference    float64          `json:"net_pay_difference"`
	NetPayPercentChange float64          `json:"net_pay_percent_change"`
	SignificantChanges  []LineItemChange `json:"significant_changes"`
}

// Comparison is the derived, never-mutated diff of two records. It is
// regenerated on demand and persists only until explicitly deleted (or
// until either endpoint record is deleted).
type Comparison struct {
	ID              string           `json:"id"`
	PreviousID      string           `json:"previous_id"`
	CurrentID       string           `json:"current_id"`
	PreviousPayDate time.Time        `json:"previous_pay_date"`
	CurrentPayDate  time.Time        `json:"current_pay_date"`
	Changes         []LineItemChange `json:"changes"`
	Summary         Summary          `json:"summary"`
	CreatedAt       time.Time        `json:"created_at"`
}

// significance thresholds
const (
	significantDollars = 50.0
	significantPercent = 5.0
)

// =============================================================================
// COMPARE
// =============================================================================

// Compare diffs two records. Pure: the returned Comparison has no ID or
// CreatedAt; Ledger.CompareRecords fills those when persisting.
func Compare(previous, current Record) Comparison {
	var changes []LineItemChange
	changes = append(changes, diffCategory(CategoryEntitlement, entitlementLines(previous), entitlementLines(current))...)
	changes = append(changes, diffCategory(CategoryDeduction, deductionLines(previous), deductionLines(current))...)
	changes = append(changes, diffCategory(CategoryAllotment, allotmentLines(previous), allotmentLines(current))...)

	netPrev := money.FromFloat(previous.Totals.NetPay)
	netCur := money.FromFloat(current.Totals.NetPay)
	netDiff := netCur.Sub(netPrev)
	netPercent := money.Zero()
	if !netPrev.IsZero() {
		netPercent = netDiff.Div(netPrev.Value).MulInt(100)
	} else if !netDiff.IsZero() {
		netPercent = money.FromInt(100)
	}

	var significant []LineItemChange
	for _, c := range changes {
		if abs(c.Difference) >= significantDollars || abs(c.PercentChange) >= significantPercent {
			significant = append(significant, c)
		}
	}

	return Comparison{
		PreviousID:      previous.ID,
		CurrentID:       current.ID,
		PreviousPayDate: previous.PayPeriod.PayDate,
		CurrentPayDate:  current.PayPeriod.PayDate,
		Changes:         changes,
		Summary: Summary{
			NetPayDifference:    netDiff.Float64(),
			NetPayPercentChange: netPercent.Float64(),
			SignificantChanges:  significant,
		},
	}
}

// =============================================================================
// PER-CATEGORY DIFF
// =============================================================================

// typedLine is the category-neutral view of a line item used for matching.
type typedLine struct {
	typ         string
	description string
	amount      money.Money
}

// diffCategory classifies changes for one category. Line items are summed
// by type first; output order is previous-record type order followed by
// newly-added types in current-record order.
func diffCategory(cat Category, prev, cur []typedLine) []LineItemChange {
	prevByType, prevOrder := sumByType(prev)
	curByType, curOrder := sumByType(cur)

	var changes []LineItemChange

	for _, typ := range prevOrder {
		p := prevByType[typ]
		c, inCurrent := curByType[typ]
		if !inCurrent {
			changes = append(changes, LineItemChange{
				Category:       cat,
				Type:           typ,
				Description:    p.description,
				ChangeType:     ChangeRemoved,
				PreviousAmount: p.amount.Float64(),
				CurrentAmount:  0,
				Difference:     p.amount.Neg().Float64(),
				PercentChange:  -100,
				PossibleReason: explainChange(cat, typ, ChangeRemoved),
			})
			continue
		}
		if p.amount.Equal(c.amount) {
			continue
		}
		diff := c.amount.Sub(p.amount)
		changeType := ChangeIncreased
		if diff.IsNegative() {
			changeType = ChangeDecreased
		}
		percent := money.FromInt(100)
		if !p.amount.IsZero() {
			percent = diff.Div(p.amount.Value).MulInt(100)
		}
		changes = append(changes, LineItemChange{
			Category:       cat,
			Type:           typ,
			Description:    c.description,
			ChangeType:     changeType,
			PreviousAmount: p.amount.Float64(),
			CurrentAmount:  c.amount.Float64(),
			Difference:     diff.Float64(),
			PercentChange:  percent.Float64(),
			PossibleReason: explainChange(cat, typ, changeType),
		})
	}

	for _, typ := range curOrder {
		if _, inPrevious := prevByType[typ]; inPrevious {
			continue
		}
		c := curByType[typ]
		changes = append(changes, LineItemChange{
			Category:       cat,
			Type:           typ,
			Description:    c.description,
			ChangeType:     ChangeAdded,
			PreviousAmount: 0,
			CurrentAmount:  c.amount.Float64(),
			Difference:     c.amount.Float64(),
			PercentChange:  100,
			PossibleReason: explainChange(cat, typ, ChangeAdded),
		})
	}

	return changes
}

func sumByType(lines []typedLine) (map[string]typedLine, []string) {
	byType := make(map[string]typedLine, len(lines))
	var order []string
	for _, l := range lines {
		existing, ok := byType[l.typ]
		if !ok {
			byType[l.typ] = l
			order = append(order, l.typ)
			continue
		}
		existing.amount = existing.amount.Add(l.amount)
		byType[l.typ] = existing
	}
	return byType, order
}

func entitlementLines(r Record) []typedLine {
	out := make([]typedLine, len(r.Entitlements))
	for i, e := range r.Entitlements {
		out[i] = typedLine{typ: string(e.Type), description: e.Description, amount: money.FromFloat(e.Amount)}
	}
	return out
}

func deductionLines(r Record) []typedLine {
	out := make([]typedLine, len(r.Deductions))
	for i, d := range r.Deductions {
		out[i] = typedLine{typ: string(d.Type), description: d.Description, amount: money.FromFloat(d.Amount)}
	}
	return out
}

func allotmentLines(r Record) []typedLine {
	out := make([]typedLine, len(r.Allotments))
	for i, a := range r.Allotments {
		out[i] = typedLine{typ: string(a.Type), description: a.Description, amount: money.FromFloat(a.Amount)}
	}
	return out
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
