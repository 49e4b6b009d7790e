/*
validate.go - Reconciliation validator

PURPOSE:
  Independently recomputes a record's totals from its line items and
  flags discrepancies against the stored cache. This deliberately
  duplicates the totals invariant as a cross-check: the validator trusts
  nothing the record claims about itself.

FINDINGS TAXONOMY (reported as validation findings, never panics):
  ERROR   (record invalid): zero entitlement lines
  WARNING (record usable, review advised):
    - net-pay variance beyond the $1.00 manual-entry tolerance
    - missing base_pay entitlement
    - missing federal_tax deduction
    - missing both FICA deduction types

  A record with warnings but no errors is still valid. Validate never
  mutates its input and is idempotent.
*/
package les

import (
	"fmt"

	"github.com/scott198989/milpay-engine/money"
)

// varianceTolerance absorbs rounding drift from manual statement entry.
const varianceTolerance = 1.00

// ValidationReport is the validator's output.
type ValidationReport struct {
	RecordID             string   `json:"record_id"`
	IsValid              bool     `json:"is_valid"`
	CalculatedGross      float64  `json:"calculated_gross"`
	CalculatedDeductions float64  `json:"calculated_deductions"`
	CalculatedAllotments float64  `json:"calculated_allotments"`
	CalculatedNet        float64  `json:"calculated_net"`
	Variance             float64  `json:"variance"`
	Warnings             []string `json:"warnings"`
	Errors               []string `json:"errors"`
}

// Validate reconciles a record's stored totals against an independent
// recomputation and checks for structurally-expected line items.
func Validate(r Record) ValidationReport {
	computed := ComputeTotals(r.Entitlements, r.Deductions, r.Allotments)
	variance := money.FromFloat(r.Totals.NetPay).Sub(money.FromFloat(computed.NetPay))

	report := ValidationReport{
		RecordID:             r.ID,
		CalculatedGross:      computed.GrossPay,
		CalculatedDeductions: computed.TotalDeductions,
		CalculatedAllotments: computed.TotalAllotments,
		CalculatedNet:        computed.NetPay,
		Variance:             variance.Float64(),
	}

	if len(r.Entitlements) == 0 {
		report.Errors = append(report.Errors, "record has no entitlement lines; a statement without pay is invalid")
	}

	if variance.Abs().GreaterThan(money.FromFloat(varianceTolerance)) {
		report.Warnings = append(report.Warnings, fmt.Sprintf(
			"stored net pay differs from recomputed net by $%s (tolerance $%.2f)",
			variance.Abs().Round2(), varianceTolerance))
	}

	if len(r.Entitlements) > 0 && !hasEntitlement(r, EntBasePay) {
		report.Warnings = append(report.Warnings, "no base_pay entitlement; most statements carry one")
	}
	if !hasDeduction(r, DedFederalTax) {
		report.Warnings = append(report.Warnings, "no federal_tax deduction; verify withholding status")
	}
	if !hasDeduction(r, DedFICASocSec) && !hasDeduction(r, DedFICAMedicare) {
		report.Warnings = append(report.Warnings, "no FICA deductions at all; zero-FICA statements are unusual")
	}

	report.IsValid = len(report.Errors) == 0
	return report
}

func hasEntitlement(r Record, t EntitlementType) bool {
	for _, e := range r.Entitlements {
		if e.Type == t {
			return true
		}
	}
	return false
}

func hasDeduction(r Record, t DeductionType) bool {
	for _, d := range r.Deductions {
		if d.Type == t {
			return true
		}
	}
	return false
}
