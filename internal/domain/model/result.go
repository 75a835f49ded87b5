package model

import (
	"github.com/shopspring/decimal"

	"github.com/omnibank/mortgage-service/internal/domain/valueobject"
	"github.com/omnibank/mortgage-service/pkg/money"
)

// RepaymentPlanEntry is one row of the repayment schedule. Row 0 is the
// disbursement row: only the fee and total payment carry the analysis
// commission, everything else is zero.
type RepaymentPlanEntry struct {
	Month             int
	ReimbursedCapital money.Money
	Interest          money.Money
	Fee               money.Money
	Installment       money.Money
	TotalPayment      money.Money
	RemainingBalance  money.Money
}

// InsuranceFrequency is how often an insurance premium is due.
type InsuranceFrequency string

const FrequencyMonthly InsuranceFrequency = "MONTHLY"

// LifeInsurance is a reported insurance premium with its payment frequency.
type LifeInsurance struct {
	Value     money.Money
	Frequency InsuranceFrequency
}

// MonthlyInstallment is the headline installment split by rate phase. For a
// single-rate loan only the variable figure is populated.
type MonthlyInstallment struct {
	AmountFixedInterest    decimal.Decimal
	AmountVariableInterest decimal.Decimal
}

// DiscountValues holds the month-1 installment saving attributable to each
// discount, measured by finite difference against the undiscounted baseline.
type DiscountValues struct {
	SalaryInBank  decimal.Decimal
	GreenHouse    decimal.Decimal
	LifeInsurance decimal.Decimal
	DownPayment   decimal.Decimal
}

// ForKind returns the value attributed to the given discount kind.
func (d DiscountValues) ForKind(kind valueobject.DiscountKind) decimal.Decimal {
	switch kind {
	case valueobject.DiscountSalaryClient:
		return d.SalaryInBank
	case valueobject.DiscountGreenHouse:
		return d.GreenHouse
	case valueobject.DiscountLifeInsurance:
		return d.LifeInsurance
	default:
		return d.DownPayment
	}
}

// TotalDiscountValues aggregates the applied discounts: the combined monthly
// installment saving and the combined saving over the whole tenor.
type TotalDiscountValues struct {
	TotalDiscountInstallment decimal.Decimal
	TotalDiscountAmount      decimal.Decimal
}

// LoanCosts groups the recurring costs and discount figures of a quote.
type LoanCosts struct {
	LifeInsurance       []LifeInsurance
	Discounts           DiscountValues
	TotalDiscountValues TotalDiscountValues
}

// InterestRateFormula is the margin-plus-index decomposition of the variable
// rate, both figures at two decimals.
type InterestRateFormula struct {
	BankMarginRate float64
	IRCCRate       float64
}

// QuoteResult is the full output of a quote computation.
type QuoteResult struct {
	RateShape              valueobject.RateShape
	NominalInterestRate    decimal.Decimal
	InterestRateFormula    InterestRateFormula
	LoanAmount             money.Money
	MaxAmount              money.Money
	DownPayment            *money.Money
	LoanAmountWithFee      money.Money
	HousePrice             *money.Money
	TotalPayment           money.Money
	TenorYears             int
	MonthlyInstallment     MonthlyInstallment
	LoanCosts              LoanCosts
	AnnualPercentageRate   decimal.Decimal
	NoDocAmount            *decimal.Decimal
	MinGuaranteeAmount     *decimal.Decimal
	RepaymentPlan          []RepaymentPlanEntry
	CommissionDescriptions CommissionDescriptions
}
