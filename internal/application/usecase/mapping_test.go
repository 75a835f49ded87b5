package usecase

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omnibank/mortgage-service/internal/apperror"
	"github.com/omnibank/mortgage-service/internal/application/dto"
	"github.com/omnibank/mortgage-service/internal/domain/model"
	"github.com/omnibank/mortgage-service/internal/domain/valueobject"
	"github.com/omnibank/mortgage-service/pkg/money"
)

func TestToDomainRequest(t *testing.T) {
	req, err := toDomainRequest(validRequest())
	require.NoError(t, err)

	assert.Equal(t, valueobject.ProductCasaTa, req.Product)
	require.NotNil(t, req.LoanAmount)
	assert.Equal(t, money.RON, req.LoanAmount.Currency())
	assert.Equal(t, "Bucuresti", req.Area.City)
	assert.Equal(t, 30, req.TenorYears)
	assert.Equal(t, 264, req.TenorMonths, "tenor is clamped to retirement age before the engine runs")
	assert.False(t, req.RateShape.IsMixed())
	assert.Equal(t, valueobject.InstallmentTypeEqual, req.InstallmentType)
}

func TestToDomainRequest_RetirementAgeLeavesNoTenor(t *testing.T) {
	d := validRequest()
	d.Age = 65

	_, err := toDomainRequest(d)
	require.Error(t, err)
	assert.Equal(t, apperror.KindBadRequest, apperror.KindOf(err))
	assert.Equal(t, "Tenor is not available for the given age", apperror.From(err).Message)
}

func TestToDomainRequest_MixedShape(t *testing.T) {
	d := validRequest()
	d.InterestRateType = &dto.InterestRateTypeDTO{Type: dto.InterestRateTypeMixed, FixedPeriod: 3}

	req, err := toDomainRequest(d)
	require.NoError(t, err)
	assert.True(t, req.RateShape.IsMixed())
	assert.Equal(t, 36, req.RateShape.FixedMonths())
}

func TestToDomainRequest_InvalidEnumerations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*dto.CalculationRequest)
	}{
		{"unknown product", func(d *dto.CalculationRequest) { d.ProductCode = "Ipotecar" }},
		{"unknown currency", func(d *dto.CalculationRequest) { d.LoanAmount.Currency = "XXX" }},
		{"unknown rate type", func(d *dto.CalculationRequest) { d.InterestRateType.Type = "FLOATING" }},
		{"unknown installment type", func(d *dto.CalculationRequest) { d.InstallmentType = "BALLOON" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validRequest()
			tt.mutate(&d)
			_, err := toDomainRequest(d)
			require.Error(t, err)
			assert.Equal(t, apperror.KindBadRequest, apperror.KindOf(err))
		})
	}
}

func TestValidate_Messages(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*dto.CalculationRequest)
		want   string
	}{
		{"missing product", func(d *dto.CalculationRequest) { d.ProductCode = "" },
			"ProductCode should not be null or empty"},
		{"zero amount", func(d *dto.CalculationRequest) { d.LoanAmount.Amount = decimal.Zero },
			"Amount should not be null or empty"},
		{"missing currency", func(d *dto.CalculationRequest) { d.LoanAmount.Currency = "" },
			"Currency should not be null or empty"},
		{"missing area", func(d *dto.CalculationRequest) { d.Area = nil },
			"Area should not be null"},
		{"missing city", func(d *dto.CalculationRequest) { d.Area.City = "" },
			"City should not be null or empty"},
		{"missing county", func(d *dto.CalculationRequest) { d.Area.County = "" },
			"County should not be null or empty"},
		{"missing income", func(d *dto.CalculationRequest) { d.Income = nil },
			"Income should not be null"},
		{"zero income", func(d *dto.CalculationRequest) { d.Income.CurrentIncome = decimal.Zero },
			"CurrentIncome should not be null"},
		{"missing age", func(d *dto.CalculationRequest) { d.Age = 0 },
			"Age is required to proceed"},
		{"missing rate type", func(d *dto.CalculationRequest) { d.InterestRateType = nil },
			"InterestRateType should not be null or empty"},
		{"mixed without fixed period", func(d *dto.CalculationRequest) {
			d.InterestRateType = &dto.InterestRateTypeDTO{Type: dto.InterestRateTypeMixed}
		}, "Fixed period is required to proceed"},
		{"missing installment type", func(d *dto.CalculationRequest) { d.InstallmentType = "" },
			"InstallmentType should not be null or empty"},
		{"missing special offers", func(d *dto.CalculationRequest) { d.SpecialOfferRequirements = nil },
			"SpecialOfferRequirements should not be null or empty"},
		{"credit venit without down payment", func(d *dto.CalculationRequest) {
			d.ProductCode = "CreditVenit"
		}, "DownPayment is required to proceed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validRequest()
			tt.mutate(&d)
			err := validate(d)
			require.Error(t, err)
			assert.Equal(t, tt.want, apperror.From(err).Message)
		})
	}
}

func TestValidate_NoAmountAllowsNoDownPayment(t *testing.T) {
	d := validRequest()
	d.ProductCode = "CreditVenit"
	d.LoanAmount = nil
	assert.NoError(t, validate(d))
}

func TestToResponse(t *testing.T) {
	loan := money.New(decimal.NewFromInt(40500), money.RON)
	dp := money.New(decimal.NewFromInt(10000), money.RON)
	noDoc := decimal.NewFromInt(12000)

	res := &model.QuoteResult{
		RateShape:           valueobject.SingleRate(),
		NominalInterestRate: decimal.RequireFromString("6.75"),
		InterestRateFormula: model.InterestRateFormula{BankMarginRate: 3.99, IRCCRate: 5.6},
		LoanAmount:          loan,
		LoanAmountWithFee:   loan,
		DownPayment:         &dp,
		TenorYears:          22,
		NoDocAmount:         &noDoc,
		LoanCosts: model.LoanCosts{
			LifeInsurance: []model.LifeInsurance{{
				Value:     money.New(decimal.RequireFromString("10.53"), money.RON),
				Frequency: model.FrequencyMonthly,
			}},
		},
	}

	resp := toResponse(validRequest(), res)

	require.NotNil(t, resp.InterestRateType)
	assert.Equal(t, dto.InterestRateTypeVariable, resp.InterestRateType.Type)
	assert.Equal(t, 3.99, resp.InterestRateFormula.BankMarginRate)
	assert.Equal(t, 5.6, resp.InterestRateFormula.IrccRate)

	require.NotNil(t, resp.LoanAmountWithFee)
	assert.Equal(t, "RON", resp.LoanAmountWithFee.Currency)
	require.NotNil(t, resp.DownPayment)
	assert.Equal(t, "10000.00", resp.DownPayment.Amount.StringFixed(2))

	// Figures the engine never produced stay absent instead of zero-valued.
	assert.Nil(t, resp.MaxAmount)
	assert.Nil(t, resp.HousePrice)
	assert.Nil(t, resp.MinGuaranteeAmount)
	require.NotNil(t, resp.NoDocAmount)

	require.Len(t, resp.LoanCosts.LifeInsurance, 1)
	assert.Equal(t, "MONTHLY", resp.LoanCosts.LifeInsurance[0].PaymentFrequency)
}
