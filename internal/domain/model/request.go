package model

import (
	"github.com/shopspring/decimal"

	"github.com/omnibank/mortgage-service/internal/domain/valueobject"
	"github.com/omnibank/mortgage-service/pkg/money"
)

// Area locates the financed property, used to resolve the financing zone and
// through it the maximum loan-to-value ratio.
type Area struct {
	City   string
	County string
}

// Income is the applicant's monthly financial standing.
type Income struct {
	CurrentIncome     decimal.Decimal
	OtherInstallments decimal.Decimal
}

// SpecialOffers carries the discount eligibility flags the applicant opted
// into.
type SpecialOffers struct {
	SalaryInBank bool
	GreenHouse   bool
}

// QuoteRequest is the validated, immutable input to the quoting engine.
//
// TenorMonths is derived: the requested tenor in years is clamped to
// min(requested or 30, 65-age, 30) years and converted to months before the
// engine runs.
type QuoteRequest struct {
	Product         valueobject.Product
	LoanAmount      *money.Money
	Area            Area
	Income          Income
	TenorYears      int
	TenorMonths     int
	Age             int
	Owner           bool
	DownPayment     *decimal.Decimal
	RateShape       valueobject.RateShape
	InstallmentType valueobject.InstallmentType
	HasInsurance    bool
	SpecialOffers   SpecialOffers
}

// Currency returns the request currency, defaulting to RON when no loan
// amount was supplied.
func (r QuoteRequest) Currency() money.Currency {
	if r.LoanAmount != nil {
		return r.LoanAmount.Currency()
	}
	return money.RON
}
