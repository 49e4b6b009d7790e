package paycalc

// =============================================================================
// RETIREMENT / VA OFFSET PROVIDER - External collaborator contract
// =============================================================================

// The retirement and VA-disability-offset math (combined ratings table,
// CRDP/CRSC offsets) is supplied by an external module. The engine only
// fixes the input/output shape so results can be displayed alongside the
// calculators here. No implementation is provided.

// RetirementInput is what the external provider consumes.
type RetirementInput struct {
	// DisabilityPercentages are the individual VA ratings to combine.
	DisabilityPercentages []int
	YearsOfService        int
	// HighThreeMonthly is the average of the highest 36 months of base pay.
	HighThreeMonthly float64
}

// RetirementOutcome is what the external provider returns.
type RetirementOutcome struct {
	CombinedRating       int
	GrossMonthlyRetired  float64
	VACompensation       float64
	CRDPOffset           float64
	CRSCOffset           float64
	NetMonthly           float64
}

// RetirementProvider computes retirement and concurrent-receipt figures.
type RetirementProvider interface {
	Compute(input RetirementInput) RetirementOutcome
}
