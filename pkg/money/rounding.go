package money

import "github.com/shopspring/decimal"

var half = decimal.New(5, -1)

// RoundHalfUp rounds to the given scale with ties going away from zero.
func RoundHalfUp(d decimal.Decimal, scale int32) decimal.Decimal {
	return d.Round(scale)
}

// RoundHalfDown rounds to the given scale with ties going toward zero.
func RoundHalfDown(d decimal.Decimal, scale int32) decimal.Decimal {
	shifted := d.Shift(scale)
	frac := shifted.Sub(shifted.Truncate(0)).Abs()
	if frac.Equal(half) {
		return shifted.Truncate(0).Shift(-scale)
	}
	return d.Round(scale)
}

// RoundDown truncates toward zero at the given scale.
func RoundDown(d decimal.Decimal, scale int32) decimal.Decimal {
	return d.RoundDown(scale)
}

// RoundUp rounds away from zero at the given scale.
func RoundUp(d decimal.Decimal, scale int32) decimal.Decimal {
	return d.RoundUp(scale)
}
