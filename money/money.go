/*
Package money provides the decimal money type used by every calculator
and ledger in the engine.

PURPOSE:
  All pay math runs on decimal.Decimal to avoid floating-point drift.
  Amounts entering the engine from forms or JSON may be missing or NaN;
  the constructors coerce those to zero so a partially-filled draft never
  crashes a calculation.

KEY CONCEPTS IN THIS FILE:
  - Money: a dollar amount with exact decimal semantics
  - Round2: the single authority for 2-decimal-place rounding
  - EstimateWithholding: the shared flat-rate tax estimator

DESIGN PRINCIPLES:
  1. Precision: intermediate math keeps full decimal precision;
     rounding happens once, at result boundaries, via Round2
  2. Coercion over failure: malformed numeric input becomes zero,
     never an error (draft-tolerant data entry)
  3. One tax assumption: the 22% flat withholding rate lives here
     and nowhere else

SEE ALSO:
  - paycalc: drill/AT calculators built on Money
  - les: statement totals and diffing built on Money
*/
package money

import (
	"math"

	"github.com/shopspring/decimal"
)

// =============================================================================
// MONEY - Exact decimal dollar amount
// =============================================================================

type Money struct {
	Value decimal.Decimal
}

func New(value float64) Money {
	return Money{Value: decimal.NewFromFloat(value)}
}

func FromInt(value int) Money {
	return Money{Value: decimal.NewFromInt(int64(value))}
}

// FromFloat coerces arbitrary float input into Money.
// NaN and infinities become zero rather than propagating garbage.
func FromFloat(value float64) Money {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Zero()
	}
	return Money{Value: decimal.NewFromFloat(value)}
}

func FromDecimal(d decimal.Decimal) Money { return Money{Value: d} }

func Zero() Money { return Money{Value: decimal.Zero} }

func MustParse(s string) Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Zero()
	}
	return Money{Value: d}
}

// Arithmetic. Full precision is preserved; callers round at boundaries.
func (m Money) Add(o Money) Money            { return Money{Value: m.Value.Add(o.Value)} }
func (m Money) Sub(o Money) Money            { return Money{Value: m.Value.Sub(o.Value)} }
func (m Money) Mul(s decimal.Decimal) Money  { return Money{Value: m.Value.Mul(s)} }
func (m Money) MulInt(n int) Money           { return Money{Value: m.Value.Mul(decimal.NewFromInt(int64(n)))} }
func (m Money) Div(s decimal.Decimal) Money  { return Money{Value: m.Value.Div(s)} }
func (m Money) DivInt(n int) Money           { return Money{Value: m.Value.Div(decimal.NewFromInt(int64(n)))} }
func (m Money) Neg() Money                   { return Money{Value: m.Value.Neg()} }
func (m Money) Abs() Money                   { return Money{Value: m.Value.Abs()} }

// Comparison
func (m Money) IsZero() bool            { return m.Value.IsZero() }
func (m Money) IsNegative() bool        { return m.Value.IsNegative() }
func (m Money) IsPositive() bool        { return m.Value.IsPositive() }
func (m Money) GreaterThan(o Money) bool { return m.Value.GreaterThan(o.Value) }
func (m Money) LessThan(o Money) bool   { return m.Value.LessThan(o.Value) }
func (m Money) Equal(o Money) bool      { return m.Value.Equal(o.Value) }

// Round2 rounds to 2 decimal places, half away from zero.
// This is the ONLY rounding applied anywhere in the engine.
func (m Money) Round2() Money { return Money{Value: m.Value.Round(2)} }

func (m Money) Float64() float64 {
	f, _ := m.Value.Round(2).Float64()
	return f
}

func (m Money) String() string { return m.Value.StringFixed(2) }

// =============================================================================
// WITHHOLDING - Shared flat-rate tax estimation
// =============================================================================

// DefaultWithholdingRate is the flat estimate applied to taxable military
// pay. It is an estimate, not a tax computation; keeping it in one place
// makes the assumption correctable.
var DefaultWithholdingRate = decimal.NewFromFloat(0.22)

// EstimateWithholding returns the estimated tax on a taxable amount at the
// given flat rate. Result keeps full precision.
func EstimateWithholding(taxable Money, rate decimal.Decimal) Money {
	return taxable.Mul(rate)
}

// Sum totals a slice of amounts at full precision.
func Sum(amounts []Money) Money {
	total := Zero()
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}
