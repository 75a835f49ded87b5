// Package dto defines the wire representation of the quote API. Field names
// follow the published contract and must not change with internal renames.
package dto

import (
	"github.com/shopspring/decimal"
)

// Interest rate type discriminators.
const (
	InterestRateTypeVariable = "VARIABLE"
	InterestRateTypeMixed    = "MIXED"
)

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// AmountDTO pairs an amount with its ISO 4217 currency code.
type AmountDTO struct {
	Currency string          `json:"currency"`
	Amount   decimal.Decimal `json:"amount"`
}

// AreaDTO locates the financed property.
type AreaDTO struct {
	City   string `json:"city"`
	County string `json:"county"`
}

// IncomeDTO carries the applicant's income and existing installments.
type IncomeDTO struct {
	CurrentIncome     decimal.Decimal `json:"currentIncome"`
	OtherInstallments decimal.Decimal `json:"otherInstallments"`
}

// SpecialOfferRequirementsDTO flags the conditions that unlock rate discounts.
type SpecialOfferRequirementsDTO struct {
	HasSalaryInTheBank bool `json:"hasSalaryInTheBank"`
	CasaVerde          bool `json:"casaVerde"`
}

// InterestRateTypeDTO is the discriminated union for the rate shape. Type is
// VARIABLE or MIXED; FixedPeriod is the fixed phase in years and only
// meaningful for MIXED.
type InterestRateTypeDTO struct {
	Type         string  `json:"type"`
	InterestRate float64 `json:"interestRate,omitempty"`
	FixedPeriod  int     `json:"fixedPeriod,omitempty"`
}

// CalculationRequest is the quote request body.
type CalculationRequest struct {
	ProductCode              string                       `json:"productCode"`
	LoanAmount               *AmountDTO                   `json:"loanAmount,omitempty"`
	Area                     *AreaDTO                     `json:"area,omitempty"`
	Income                   *IncomeDTO                   `json:"income,omitempty"`
	Tenor                    int                          `json:"tenor"`
	Age                      int                          `json:"age"`
	Owner                    bool                         `json:"owner"`
	DownPayment              *decimal.Decimal             `json:"downPayment,omitempty"`
	InterestRateType         *InterestRateTypeDTO         `json:"interestRateType,omitempty"`
	HasInsurance             bool                         `json:"hasInsurance"`
	InstallmentType          string                       `json:"installmentType,omitempty"`
	SpecialOfferRequirements *SpecialOfferRequirementsDTO `json:"specialOfferRequirements,omitempty"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// InterestRateFormulaDTO decomposes the variable rate into its components.
type InterestRateFormulaDTO struct {
	BankMarginRate float64 `json:"bankMarginRate"`
	IrccRate       float64 `json:"irccRate"`
}

// MonthlyInstallmentDTO carries the first-month installment for each rate
// phase. AmountFixedInterest is zero for a purely variable loan.
type MonthlyInstallmentDTO struct {
	AmountFixedInterest    decimal.Decimal `json:"amountFixedInterest"`
	AmountVariableInterest decimal.Decimal `json:"amountVariableInterest"`
}

// LifeInsuranceDTO is a recurring insurance premium.
type LifeInsuranceDTO struct {
	Value            AmountDTO `json:"value"`
	PaymentFrequency string    `json:"paymentFrequency"`
}

// DiscountsValuesDTO itemizes the first-month installment saving per
// discount condition.
type DiscountsValuesDTO struct {
	DiscountAmountHasSalaryInTheBank decimal.Decimal `json:"discountAmountHasSalaryInTheBank"`
	DiscountAmountCasaVerde          decimal.Decimal `json:"discountAmountCasaVerde"`
	DiscountAmountInsurance          decimal.Decimal `json:"discountAmountInsurance"`
	DiscountAmountDownPayment        decimal.Decimal `json:"discountAmountDownPayment"`
}

// TotalDiscountsValuesDTO aggregates the applied discounts.
type TotalDiscountsValuesDTO struct {
	TotalDiscountInstallment decimal.Decimal `json:"totalDiscountInstallment"`
	TotalDiscountAmount      decimal.Decimal `json:"totalDiscountAmount"`
}

// LoanCostsDTO groups the recurring and discount-related costs.
type LoanCostsDTO struct {
	LifeInsurance        []LifeInsuranceDTO      `json:"lifeInsurance"`
	Discounts            DiscountsValuesDTO      `json:"discounts"`
	TotalDiscountsValues TotalDiscountsValuesDTO `json:"totalDiscountsValues"`
}

// CommissionDescriptionDTO carries the human-readable commission texts.
type CommissionDescriptionDTO struct {
	AssessmentFee                   string `json:"assessmentFee,omitempty"`
	GrantingFee                     string `json:"grantingFee,omitempty"`
	GuaranteePromiseCommission      string `json:"guaranteePromiseCommission,omitempty"`
	EarlyRepaymentCommission        string `json:"earlyRepaymentCommission,omitempty"`
	InsuranceCostCalculationFormula string `json:"insuranceCostCalculationFormula,omitempty"`
	InterestRateDescription         string `json:"interestRateDescription,omitempty"`
}

// RepaymentEntryDTO is one month of the repayment plan.
type RepaymentEntryDTO struct {
	Month             int             `json:"month"`
	ReimbursedCapital decimal.Decimal `json:"reimbursedCapital"`
	Interest          decimal.Decimal `json:"interest"`
	Fee               decimal.Decimal `json:"fee"`
	Installment       decimal.Decimal `json:"installment"`
	TotalPayment      decimal.Decimal `json:"totalPayment"`
	RemainingBalance  decimal.Decimal `json:"remainingBalance"`
}

// CalculationResponse is the quote response body.
type CalculationResponse struct {
	InterestRateType      *InterestRateTypeDTO     `json:"interestRateType,omitempty"`
	NominalInterestRate   decimal.Decimal          `json:"nominalInterestRate"`
	InterestRateFormula   InterestRateFormulaDTO   `json:"interestRateFormula"`
	LoanAmount            *AmountDTO               `json:"loanAmount,omitempty"`
	MaxAmount             *AmountDTO               `json:"maxAmount,omitempty"`
	DownPayment           *AmountDTO               `json:"downPayment,omitempty"`
	LoanAmountWithFee     *AmountDTO               `json:"loanAmountWithFee,omitempty"`
	HousePrice            *AmountDTO               `json:"housePrice,omitempty"`
	TotalPaymentAmount    *AmountDTO               `json:"totalPaymentAmount,omitempty"`
	Tenor                 int                      `json:"tenor"`
	MonthlyInstallment    MonthlyInstallmentDTO    `json:"monthlyInstallment"`
	LoanCosts             LoanCostsDTO             `json:"loanCosts"`
	AnnualPercentageRate  decimal.Decimal          `json:"annualPercentageRate"`
	NoDocAmount           *decimal.Decimal         `json:"noDocAmount,omitempty"`
	MinGuaranteeAmount    *decimal.Decimal         `json:"minGuaranteeAmount,omitempty"`
	RepaymentPlan         []RepaymentEntryDTO      `json:"repaymentPlan,omitempty"`
	CommissionDescription CommissionDescriptionDTO `json:"commissionDescription"`
}
