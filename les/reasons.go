/*
reasons.go - Explanation table for statement changes

PURPOSE:
  Every classified change carries a human-readable possible reason drawn
  from this table, keyed by (line-item type, change type). The mapping is
  total over the closed enums in types.go: each variant has an entry for
  each change direction. Types outside the enums (forward compatibility
  with imported statements) fall back to a generic templated string.
*/
package les

import "fmt"

type reasonSet struct {
	added     string
	removed   string
	increased string
	decreased string
}

func (r reasonSet) forChange(ct ChangeType) string {
	switch ct {
	case ChangeAdded:
		return r.added
	case ChangeRemoved:
		return r.removed
	case ChangeIncreased:
		return r.increased
	default:
		return r.decreased
	}
}

// =============================================================================
// ENTITLEMENTS
// =============================================================================

var entitlementReasons = map[EntitlementType]reasonSet{
	EntBasePay: {
		added:     "Base pay started this period, typically the first statement after accession or return to pay status.",
		removed:   "Base pay stopped, which usually indicates a non-pay status or a statement entry error.",
		increased: "Base pay increased, commonly from a promotion, a years-of-service step, or the annual raise.",
		decreased: "Base pay decreased, possibly from a reduction in grade or a partial-period proration.",
	},
	EntDrillPay: {
		added:     "Drill pay appeared, normally a drill weekend falling in this period.",
		removed:   "No drill pay this period, usually no drill scheduled or periods not yet processed.",
		increased: "More drill periods were paid this statement than last.",
		decreased: "Fewer drill periods were paid this statement than last.",
	},
	EntBAH: {
		added:     "BAH started, typically a dependency or duty-location change, or activation on qualifying orders.",
		removed:   "BAH stopped, often the end of qualifying orders or a dependency status change.",
		increased: "BAH increased, commonly an annual rate adjustment, a move, or a dependency change.",
		decreased: "BAH decreased, possibly a duty-location or dependency change.",
	},
	EntBAS: {
		added:     "BAS started, typically activation or a change in subsistence eligibility.",
		removed:   "BAS stopped, often deactivation or government-provided meals.",
		increased: "BAS increased, usually the annual rate adjustment.",
		decreased: "BAS decreased, which is unusual; verify the statement.",
	},
	EntHazardousDuty: {
		added:     "Hazardous duty incentive pay started for qualifying duty.",
		removed:   "Hazardous duty incentive pay ended with the qualifying duty.",
		increased: "Hazardous duty incentive pay rate or qualifying days increased.",
		decreased: "Hazardous duty incentive pay rate or qualifying days decreased.",
	},
	EntSpecialDuty: {
		added:     "Special duty assignment pay started with a qualifying assignment.",
		removed:   "Special duty assignment pay ended with the assignment.",
		increased: "Special duty assignment pay rate increased.",
		decreased: "Special duty assignment pay rate decreased.",
	},
	EntHostileFire: {
		added:     "Hostile fire / imminent danger pay started for service in a designated area.",
		removed:   "Hostile fire / imminent danger pay ended on leaving the designated area.",
		increased: "More qualifying days of hostile fire pay this period.",
		decreased: "Fewer qualifying days of hostile fire pay this period.",
	},
	EntBonus: {
		added:     "A bonus or incentive installment paid this period.",
		removed:   "No bonus installment this period; installments are typically not monthly.",
		increased: "A larger bonus installment than the prior period.",
		decreased: "A smaller bonus installment than the prior period.",
	},
	EntOther: {
		added:     "A new entitlement appeared; check the statement remarks for its source.",
		removed:   "An entitlement ended; check the statement remarks.",
		increased: "An entitlement increased; check the statement remarks.",
		decreased: "An entitlement decreased; check the statement remarks.",
	},
}

// =============================================================================
// DEDUCTIONS
// =============================================================================

var deductionReasons = map[DeductionType]reasonSet{
	DedFederalTax: {
		added:     "Federal withholding started, normally with the first taxable pay of the year.",
		removed:   "No federal withholding, which is unusual with taxable pay; verify W-4 status.",
		increased: "Federal withholding rose, usually because taxable pay rose or the W-4 changed.",
		decreased: "Federal withholding fell, usually because taxable pay fell or the W-4 changed.",
	},
	DedStateTax: {
		added:     "State withholding started, often a state-of-residence change.",
		removed:   "State withholding stopped, often a move to a state without income tax or an exemption.",
		increased: "State withholding rose with taxable pay or a state rate change.",
		decreased: "State withholding fell with taxable pay or a state rate change.",
	},
	DedFICASocSec: {
		added:     "Social Security (FICA) withholding started with taxable pay.",
		removed:   "Social Security withholding stopped, typically only at the annual wage-base cap.",
		increased: "Social Security withholding tracks taxable pay, which rose.",
		decreased: "Social Security withholding tracks taxable pay, which fell.",
	},
	DedFICAMedicare: {
		added:     "Medicare withholding started with taxable pay.",
		removed:   "Medicare withholding stopped, which is unusual with taxable pay; verify the statement.",
		increased: "Medicare withholding tracks taxable pay, which rose.",
		decreased: "Medicare withholding tracks taxable pay, which fell.",
	},
	DedSGLI: {
		added:     "SGLI coverage was elected or reinstated.",
		removed:   "SGLI coverage was declined or separated.",
		increased: "SGLI coverage amount or premium rate increased.",
		decreased: "SGLI coverage amount was reduced.",
	},
	DedDental: {
		added:     "Dental coverage enrollment started.",
		removed:   "Dental coverage enrollment ended.",
		increased: "Dental premium increased, often an annual rate change.",
		decreased: "Dental premium decreased, often a coverage tier change.",
	},
	DedTSP: {
		added:     "TSP contributions started.",
		removed:   "TSP contributions stopped.",
		increased: "TSP contribution percentage or eligible pay increased.",
		decreased: "TSP contribution percentage or eligible pay decreased.",
	},
	DedOther: {
		added:     "A new deduction appeared; check the statement remarks for its source.",
		removed:   "A deduction ended; check the statement remarks.",
		increased: "A deduction increased; check the statement remarks.",
		decreased: "A deduction decreased; check the statement remarks.",
	},
}

// =============================================================================
// ALLOTMENTS
// =============================================================================

var allotmentReasons = map[AllotmentType]reasonSet{
	AllotSavings: {
		added:     "A savings allotment was started.",
		removed:   "A savings allotment was stopped.",
		increased: "The savings allotment amount was raised.",
		decreased: "The savings allotment amount was lowered.",
	},
	AllotInsurance: {
		added:     "An insurance allotment was started.",
		removed:   "An insurance allotment was stopped.",
		increased: "The insurance allotment premium increased.",
		decreased: "The insurance allotment premium decreased.",
	},
	AllotDependent: {
		added:     "A dependent support allotment was started.",
		removed:   "A dependent support allotment was stopped.",
		increased: "The dependent support amount was raised.",
		decreased: "The dependent support amount was lowered.",
	},
	AllotCharity: {
		added:     "A charitable allotment was started.",
		removed:   "A charitable allotment was stopped.",
		increased: "The charitable allotment amount was raised.",
		decreased: "The charitable allotment amount was lowered.",
	},
	AllotOther: {
		added:     "A new allotment appeared; check the statement remarks.",
		removed:   "An allotment ended; check the statement remarks.",
		increased: "An allotment increased; check the statement remarks.",
		decreased: "An allotment decreased; check the statement remarks.",
	},
}

// =============================================================================
// LOOKUP
// =============================================================================

// explainChange resolves the reason for a (category, type, change) triple.
// Unknown types get the generic templated fallback.
func explainChange(cat Category, typ string, ct ChangeType) string {
	switch cat {
	case CategoryEntitlement:
		if rs, ok := entitlementReasons[EntitlementType(typ)]; ok {
			return rs.forChange(ct)
		}
	case CategoryDeduction:
		if rs, ok := deductionReasons[DeductionType(typ)]; ok {
			return rs.forChange(ct)
		}
	case CategoryAllotment:
		if rs, ok := allotmentReasons[AllotmentType(typ)]; ok {
			return rs.forChange(ct)
		}
	}
	return fmt.Sprintf("The %s item %q %s; review the statement remarks for details.", cat, typ, ct)
}
