package rates

import "github.com/scott198989/milpay-engine/money"

// =============================================================================
// STATIC PROVIDER - Embedded sample of the 2025 pay tables
// =============================================================================

// StaticProvider serves a fixed subset of the published monthly base-pay
// table. Years-of-service brackets are resolved to the highest bracket not
// exceeding the member's YOS. The full tables live outside the engine; this
// sample covers the common reserve-component grades.
type StaticProvider struct {
	basePay map[PayGrade][]yosBracket
	bas     map[BASComponent]money.Money
}

type yosBracket struct {
	minYears int
	monthly  money.Money
}

func NewStaticProvider() *StaticProvider {
	d := func(s string) money.Money { return money.MustParse(s) }
	return &StaticProvider{
		basePay: map[PayGrade][]yosBracket{
			E1: {{0, d("2108.10")}},
			E2: {{0, d("2362.80")}},
			E3: {{0, d("2484.60")}, {2, d("2640.60")}, {3, d("2800.80")}},
			E4: {{0, d("2752.20")}, {2, d("2892.90")}, {3, d("3049.80")}, {4, d("3204.00")}, {6, d("3341.40")}},
			E5: {{0, d("3001.50")}, {2, d("3204.30")}, {3, d("3359.10")}, {4, d("3517.80")}, {6, d("3764.40")}, {8, d("4023.30")}},
			E6: {{0, d("3276.60")}, {2, d("3606.00")}, {3, d("3765.00")}, {4, d("3919.80")}, {6, d("4080.60")}, {8, d("4443.00")}, {10, d("4585.20")}},
			E7: {{0, d("3788.10")}, {4, d("4334.70")}, {8, d("4834.80")}, {12, d("5232.30")}, {16, d("5625.30")}},
			E8: {{8, d("5450.40")}, {12, d("5930.70")}, {16, d("6379.20")}, {20, d("6761.70")}},
			E9: {{10, d("6656.70")}, {14, d("7232.10")}, {18, d("7786.80")}, {22, d("8436.60")}},
			W1: {{0, d("3908.10")}, {4, d("4492.20")}, {8, d("4953.60")}},
			W2: {{0, d("4453.20")}, {4, d("4958.70")}, {8, d("5398.20")}},
			O1: {{0, d("3998.40")}, {2, d("4161.60")}, {3, d("5031.30")}},
			O2: {{0, d("4606.80")}, {2, d("5246.70")}, {3, d("6042.90")}},
			O3: {{0, d("5331.60")}, {2, d("6043.80")}, {4, d("7131.30")}, {8, d("7683.60")}},
			O4: {{0, d("6064.20")}, {4, d("7494.30")}, {8, d("8354.10")}, {12, d("9120.60")}},
			O5: {{0, d("7027.50")}, {6, d("8430.60")}, {12, d("9587.40")}, {16, d("10384.50")}},
			O6: {{0, d("8430.90")}, {8, d("10102.80")}, {14, d("11397.00")}, {20, d("12638.40")}},
		},
		bas: map[BASComponent]money.Money{
			BASEnlisted: d("465.77"),
			BASOfficer:  d("320.78"),
		},
	}
}

func (p *StaticProvider) BasePayRate(grade PayGrade, yearsOfService int) money.Money {
	brackets, ok := p.basePay[grade]
	if !ok || yearsOfService < 0 {
		return money.Zero()
	}
	rate := money.Zero()
	for _, b := range brackets {
		if yearsOfService >= b.minYears {
			rate = b.monthly
		}
	}
	return rate
}

func (p *StaticProvider) BASRate(component BASComponent) money.Money {
	rate, ok := p.bas[component]
	if !ok {
		return money.Zero()
	}
	return rate
}

var _ Provider = (*StaticProvider)(nil)
