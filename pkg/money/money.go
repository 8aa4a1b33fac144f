// Package money holds the fixed-point currency helpers used across the checkout.
//
// Amounts are kept as int64 minor units (cents). Decimal inputs are converted with
// half-up rounding to two places, so repeated conversions never drift.
package money

import (
	"github.com/shopspring/decimal"
)

// Places is the number of fractional digits of the currency.
const Places = 2

// MaxCents bounds every order amount (10 trillion major units). Totals of up
// to twice this stay exact in int64 cents and in float64 JSON numbers.
const MaxCents int64 = 1_000_000_000_000_000

var (
	hundred   = decimal.NewFromInt(100)
	half      = decimal.New(5, -1)
	maxAmount = decimal.New(MaxCents, -Places)
)

// Round2 rounds x to two decimal places as floor(x × 100 + 0.5) / 100, so
// negative halves round towards zero (-0.005 becomes 0).
func Round2(x float64) float64 {
	f, _ := decimal.NewFromFloat(x).Shift(Places).Add(half).Floor().Shift(-Places).Float64()
	return f
}

// InRange reports whether d, rounded to cents, lies within ±MaxCents.
func InRange(d decimal.Decimal) bool {
	return d.Round(Places).Abs().LessThanOrEqual(maxAmount)
}

// FromDecimal converts a decimal amount to cents, rounding half away from
// zero. d must be InRange.
func FromDecimal(d decimal.Decimal) int64 {
	return d.Round(Places).Mul(hundred).IntPart()
}

// FromFloat converts a float amount to cents, rounding to two places.
func FromFloat(x float64) int64 {
	return FromDecimal(decimal.NewFromFloat(x))
}

// ToDecimal converts cents to a decimal amount.
func ToDecimal(cents int64) decimal.Decimal {
	return decimal.New(cents, -Places)
}

// ToFloat converts cents to a float amount, for JSON responses.
func ToFloat(cents int64) float64 {
	f, _ := ToDecimal(cents).Float64()
	return f
}

// Format renders cents with exactly two decimals, e.g. "12.50".
func Format(cents int64) string {
	return ToDecimal(cents).StringFixed(Places)
}

// Parse reads a decimal string such as "12.5" into cents.
func Parse(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}
	return FromDecimal(d), nil
}

// Mul returns round2(cents × factor) in cents.
func Mul(cents int64, factor decimal.Decimal) int64 {
	return FromDecimal(ToDecimal(cents).Mul(factor))
}

// Div returns round2(cents ÷ n) in cents. n must be non-zero.
func Div(cents int64, n int64) int64 {
	return FromDecimal(ToDecimal(cents).Div(decimal.NewFromInt(n)))
}
