package model

import "github.com/shopspring/decimal"

// Data returned by the external catalog and fx collaborators. These are pure
// lookups; the engine performs no compensating logic when they fail.

// ProductInfo identifies a loan product in the catalog.
type ProductInfo struct {
	ID    int
	Code  string
	Label string
}

// CommissionDescriptions carries the human-readable commission texts passed
// through to the response unchanged.
type CommissionDescriptions struct {
	AssessmentFee              string
	GrantingFee                string
	GuaranteePromiseCommission string
	EarlyRepaymentCommission   string
	InsuranceCostFormula       string
	InterestRateDescription    string
}

// LoanParameters are the product parameters the calculation depends on.
// BuildingInsurancePremiumRate arrives as a percentage of the estimated
// building value and is converted to a currency amount before the schedule
// runs; BuildingPADPremium is already a flat premium.
type LoanParameters struct {
	AnalysisCommission           decimal.Decimal
	PaymentOrderCommission       decimal.Decimal
	MonthlyAccountCommission     decimal.Decimal
	AssessmentFee                decimal.Decimal
	PostGrantCommission          decimal.Decimal
	BuildingPADPremium           decimal.Decimal
	BuildingInsurancePremiumRate decimal.Decimal
	LifeInsuranceRate            decimal.Decimal
	IRCC                         float64
	Descriptions                 CommissionDescriptions
}

// RateRowKind tags an interest-rate table row as belonging to the fixed or
// the variable phase.
type RateRowKind string

const (
	RateRowFixed    RateRowKind = "fixed"
	RateRowVariable RateRowKind = "variable"
)

// RateRow is one row of the interest-rate table for a product.
type RateRow struct {
	YearBucket int
	Kind       RateRowKind
	Rate       float64
	Margin     float64
}

// District maps a city/county pair to its financing zone.
type District struct {
	City   string
	County string
	Zone   int
}

// DiscountEntry is one discount catalog row: a name and the rate reduction
// in percentage points.
type DiscountEntry struct {
	Name  string
	Value float64
}

// ExchangeRate is a reference fx rate for a currency pair.
type ExchangeRate struct {
	CurrencyPair  string
	ReferenceRate decimal.Decimal
}
