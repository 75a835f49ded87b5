package service

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/omnibank/mortgage-service/internal/domain/model"
	"github.com/omnibank/mortgage-service/pkg/money"
)

const (
	maxTenorYears     = 30
	retirementAge     = 65
	debtShareOfIncome = "0.4"
)

// AvailableRate is the applicant's monthly debt-service capacity: 40% of
// income minus existing installments.
func AvailableRate(income model.Income) decimal.Decimal {
	return income.CurrentIncome.Mul(decimal.RequireFromString(debtShareOfIncome)).
		Sub(income.OtherInstallments)
}

// MaxPeriodYears clamps the requested tenor to the bank's limits: at most 30
// years and never past the applicant's 65th birthday. A zero request means
// "as long as possible".
func MaxPeriodYears(age, requestedYears int) int {
	allowed := retirementAge - age

	if requestedYears == 0 || requestedYears > allowed {
		return min(allowed, maxTenorYears)
	}
	return min(requestedYears, maxTenorYears)
}

// MaxAffordable is the annuity present value of the available monthly rate:
// the largest loan the applicant can service at the given rate and tenor.
func MaxAffordable(rate float64, tenorMonths int, availableRate decimal.Decimal) decimal.Decimal {
	monthlyRate := rate / (100 * 12)
	pv := availableRate.InexactFloat64() * (1 - math.Pow(1+monthlyRate, float64(-tenorMonths))) / monthlyRate
	return decimal.NewFromFloat(pv)
}

// Guarantee is the collateral value required to satisfy the given
// loan-to-value ratio for a credit amount.
func Guarantee(ltv int, creditAmount decimal.Decimal) decimal.Decimal {
	return money.RoundHalfUp(d100.Div(decimal.NewFromInt(int64(ltv))), 6).Mul(creditAmount)
}

// GuaranteeWithFee is the guarantee over the financed amount including the
// analysis commission, at the higher precision used when the loan amount is
// itself derived.
func GuaranteeWithFee(ltv int, amount, analysisCommission decimal.Decimal) decimal.Decimal {
	return money.RoundHalfUp(d100.Div(decimal.NewFromInt(int64(ltv))), 10).
		Mul(amount.Add(analysisCommission))
}

// CreditAmount is the share of a property price the bank finances at the
// given loan-to-value ratio.
func CreditAmount(amount decimal.Decimal, ltv int) decimal.Decimal {
	return amount.Mul(decimal.NewFromInt(int64(ltv))).Div(d100)
}

// AmountWithFee adds the analysis commission to a loan amount.
func AmountWithFee(amount, analysisCommission decimal.Decimal) decimal.Decimal {
	return amountWithFee(amount, analysisCommission)
}
