package money_test

import (
	"math"
	"testing"

	"github.com/scott198989/milpay-engine/money"
	"github.com/shopspring/decimal"
)

func TestFromFloat_CoercesNaNAndInf(t *testing.T) {
	// GIVEN: garbage numeric input from a half-filled form
	// WHEN: converted to Money
	// THEN: it becomes zero instead of poisoning downstream math
	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if got := money.FromFloat(f); !got.IsZero() {
			t.Errorf("FromFloat(%v) = %v, want zero", f, got)
		}
	}
	if got := money.FromFloat(12.5); got.Float64() != 12.5 {
		t.Errorf("FromFloat(12.5) = %v", got)
	}
}

func TestRound2_HalfAwayFromZero(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"93.333333", "93.33"},
		{"93.335", "93.34"},
		{"-93.335", "-93.34"},
		{"373.3333", "373.33"},
	}
	for _, c := range cases {
		if got := money.MustParse(c.in).Round2().String(); got != c.want {
			t.Errorf("Round2(%s) = %s, want %s", c.in, got, c.want)
		}
	}
}

func TestEstimateWithholding_DefaultRate(t *testing.T) {
	// $1,400 taxable at the 22% flat estimate is $308 exactly.
	tax := money.EstimateWithholding(money.FromInt(1400), money.DefaultWithholdingRate)
	if tax.String() != "308.00" {
		t.Errorf("withholding = %s, want 308.00", tax)
	}
}

func TestMustParse_InvalidBecomesZero(t *testing.T) {
	if got := money.MustParse("not-a-number"); !got.IsZero() {
		t.Errorf("MustParse garbage = %v, want zero", got)
	}
}

func TestSum_FullPrecisionThenRound(t *testing.T) {
	// Three thirds of $280 must total $280.00 when summed before rounding.
	third := money.FromInt(280).Div(decimal.NewFromInt(3))
	total := money.Sum([]money.Money{third, third, third})
	if total.Round2().String() != "280.00" {
		t.Errorf("sum = %s, want 280.00", total.Round2())
	}
}
