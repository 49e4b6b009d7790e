/*
Package rates exposes the reference-data lookups the calculators depend on:
monthly base pay by grade and years of service, BAS allowance by component,
and per-diem defaults.

PURPOSE:
  The engine treats pay tables as an always-available pure lookup. A miss
  resolves to ZERO, never an error: a calculator asked about an unknown
  grade produces zero pay rather than failing a form in progress.

IMPLEMENTATIONS:
  - StaticProvider: embedded sample of the published tables (static.go)
  - ZeroProvider: all-zero lookups for tests

SEE ALSO:
  - paycalc: consumes Provider for drill and AT calculations
*/
package rates

import "github.com/scott198989/milpay-engine/money"

// =============================================================================
// PAY GRADES AND BRANCHES
// =============================================================================

// PayGrade is an enumerated rank code (E-1..E-9, W-1..W-5, O-1..O-10).
type PayGrade string

const (
	E1 PayGrade = "E-1"
	E2 PayGrade = "E-2"
	E3 PayGrade = "E-3"
	E4 PayGrade = "E-4"
	E5 PayGrade = "E-5"
	E6 PayGrade = "E-6"
	E7 PayGrade = "E-7"
	E8 PayGrade = "E-8"
	E9 PayGrade = "E-9"
	W1 PayGrade = "W-1"
	W2 PayGrade = "W-2"
	W3 PayGrade = "W-3"
	W4 PayGrade = "W-4"
	W5 PayGrade = "W-5"
	O1 PayGrade = "O-1"
	O2 PayGrade = "O-2"
	O3 PayGrade = "O-3"
	O4 PayGrade = "O-4"
	O5 PayGrade = "O-5"
	O6 PayGrade = "O-6"
)

type Branch string

const (
	BranchArmy         Branch = "army"
	BranchNavy         Branch = "navy"
	BranchAirForce     Branch = "air_force"
	BranchMarines      Branch = "marines"
	BranchCoastGuard   Branch = "coast_guard"
	BranchSpaceForce   Branch = "space_force"
	BranchArmyGuard    Branch = "army_national_guard"
	BranchAirGuard     Branch = "air_national_guard"
	BranchArmyReserve  Branch = "army_reserve"
	BranchNavyReserve  Branch = "navy_reserve"
)

// BAS is published per component type, not per grade.
type BASComponent string

const (
	BASEnlisted BASComponent = "enlisted"
	BASOfficer  BASComponent = "officer"
)

// =============================================================================
// PROVIDER - Pure lookup interface
// =============================================================================

// Provider answers rate lookups. Implementations MUST resolve a miss to
// zero and MUST NOT error; the calculators depend on that contract.
type Provider interface {
	// BasePayRate returns the monthly base pay for a grade at the given
	// years of service. Unknown grade or negative YOS returns zero.
	BasePayRate(grade PayGrade, yearsOfService int) money.Money

	// BASRate returns the monthly Basic Allowance for Subsistence for the
	// component type. Unknown component returns zero.
	BASRate(component BASComponent) money.Money
}

// ZeroProvider resolves every lookup to zero. Useful in tests and as the
// fallback when no table has been loaded.
type ZeroProvider struct{}

func (ZeroProvider) BasePayRate(PayGrade, int) money.Money { return money.Zero() }
func (ZeroProvider) BASRate(BASComponent) money.Money      { return money.Zero() }

var _ Provider = ZeroProvider{}
