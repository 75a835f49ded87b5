package usecase

import (
	"github.com/omnibank/mortgage-service/internal/apperror"
	"github.com/omnibank/mortgage-service/internal/application/dto"
	"github.com/omnibank/mortgage-service/internal/domain/model"
	"github.com/omnibank/mortgage-service/internal/domain/service"
	"github.com/omnibank/mortgage-service/internal/domain/valueobject"
	"github.com/omnibank/mortgage-service/pkg/money"
)

// toDomainRequest validates the wire request and converts it into the
// engine's input, clamping the tenor to the retirement-age and product
// ceilings.
func toDomainRequest(d dto.CalculationRequest) (model.QuoteRequest, error) {
	if err := validate(d); err != nil {
		return model.QuoteRequest{}, err
	}

	product, err := valueobject.NewProduct(d.ProductCode)
	if err != nil {
		return model.QuoteRequest{}, apperror.BadRequest("%v", err)
	}

	var loanAmount *money.Money
	if d.LoanAmount != nil {
		currency, curErr := money.NewCurrency(d.LoanAmount.Currency)
		if curErr != nil {
			return model.QuoteRequest{}, apperror.BadRequest("%v", curErr)
		}
		m := money.New(d.LoanAmount.Amount, currency)
		loanAmount = &m
	}

	shape, err := valueobject.NewRateShape(d.InterestRateType.Type, d.InterestRateType.FixedPeriod)
	if err != nil {
		return model.QuoteRequest{}, apperror.BadRequest("%v", err)
	}

	installmentType, err := valueobject.NewInstallmentType(d.InstallmentType)
	if err != nil {
		return model.QuoteRequest{}, apperror.BadRequest("%v", err)
	}

	req := model.QuoteRequest{
		Product:         product,
		LoanAmount:      loanAmount,
		Area:            model.Area{City: d.Area.City, County: d.Area.County},
		Income:          model.Income{CurrentIncome: d.Income.CurrentIncome, OtherInstallments: d.Income.OtherInstallments},
		TenorYears:      d.Tenor,
		Age:             d.Age,
		Owner:           d.Owner,
		DownPayment:     d.DownPayment,
		RateShape:       shape,
		InstallmentType: installmentType,
		HasInsurance:    d.HasInsurance,
		SpecialOffers: model.SpecialOffers{
			SalaryInBank: d.SpecialOfferRequirements.HasSalaryInTheBank,
			GreenHouse:   d.SpecialOfferRequirements.CasaVerde,
		},
	}
	req.TenorMonths = service.MaxPeriodYears(d.Age, d.Tenor) * 12
	if req.TenorMonths <= 0 {
		return model.QuoteRequest{}, apperror.BadRequest("Tenor is not available for the given age")
	}
	return req, nil
}

func validate(d dto.CalculationRequest) error {
	if d.ProductCode == "" {
		return apperror.BadRequest("ProductCode should not be null or empty")
	}
	if d.LoanAmount != nil && d.LoanAmount.Amount.IsZero() {
		return apperror.BadRequest("Amount should not be null or empty")
	}
	if d.LoanAmount != nil && d.LoanAmount.Currency == "" {
		return apperror.BadRequest("Currency should not be null or empty")
	}
	if d.Area == nil {
		return apperror.BadRequest("Area should not be null")
	}
	if d.Area.City == "" {
		return apperror.BadRequest("City should not be null or empty")
	}
	if d.Area.County == "" {
		return apperror.BadRequest("County should not be null or empty")
	}
	if d.Income == nil {
		return apperror.BadRequest("Income should not be null")
	}
	if d.Income.CurrentIncome.IsZero() {
		return apperror.BadRequest("CurrentIncome should not be null")
	}
	if d.Age == 0 {
		return apperror.BadRequest("Age is required to proceed")
	}
	if d.InterestRateType == nil {
		return apperror.BadRequest("InterestRateType should not be null or empty")
	}
	if d.InterestRateType.Type == dto.InterestRateTypeMixed && d.InterestRateType.FixedPeriod == 0 {
		return apperror.BadRequest("Fixed period is required to proceed")
	}
	if d.InstallmentType == "" {
		return apperror.BadRequest("InstallmentType should not be null or empty")
	}
	if d.SpecialOfferRequirements == nil {
		return apperror.BadRequest("SpecialOfferRequirements should not be null or empty")
	}
	if d.ProductCode == valueobject.ProductCreditVenit.Code() && d.LoanAmount != nil && d.DownPayment == nil {
		return apperror.BadRequest("DownPayment is required to proceed")
	}
	return nil
}

// ---------------------------------------------------------------------------
// Response mapping
// ---------------------------------------------------------------------------

func toResponse(req dto.CalculationRequest, res *model.QuoteResult) dto.CalculationResponse {
	resp := dto.CalculationResponse{
		InterestRateType:    req.InterestRateType,
		NominalInterestRate: res.NominalInterestRate,
		InterestRateFormula: dto.InterestRateFormulaDTO{
			BankMarginRate: res.InterestRateFormula.BankMarginRate,
			IrccRate:       res.InterestRateFormula.IRCCRate,
		},
		LoanAmount:         amountDTO(res.LoanAmount),
		MaxAmount:          amountDTO(res.MaxAmount),
		DownPayment:        amountPtrDTO(res.DownPayment),
		LoanAmountWithFee:  amountDTO(res.LoanAmountWithFee),
		HousePrice:         amountPtrDTO(res.HousePrice),
		TotalPaymentAmount: amountDTO(res.TotalPayment),
		Tenor:              res.TenorYears,
		MonthlyInstallment: dto.MonthlyInstallmentDTO{
			AmountFixedInterest:    res.MonthlyInstallment.AmountFixedInterest,
			AmountVariableInterest: res.MonthlyInstallment.AmountVariableInterest,
		},
		LoanCosts:            loanCostsDTO(res.LoanCosts),
		AnnualPercentageRate: res.AnnualPercentageRate,
		NoDocAmount:          res.NoDocAmount,
		MinGuaranteeAmount:   res.MinGuaranteeAmount,
		RepaymentPlan:        repaymentPlanDTO(res.RepaymentPlan),
		CommissionDescription: dto.CommissionDescriptionDTO{
			AssessmentFee:                   res.CommissionDescriptions.AssessmentFee,
			GrantingFee:                     res.CommissionDescriptions.GrantingFee,
			GuaranteePromiseCommission:      res.CommissionDescriptions.GuaranteePromiseCommission,
			EarlyRepaymentCommission:        res.CommissionDescriptions.EarlyRepaymentCommission,
			InsuranceCostCalculationFormula: res.CommissionDescriptions.InsuranceCostFormula,
			InterestRateDescription:         res.CommissionDescriptions.InterestRateDescription,
		},
	}
	return resp
}

// amountDTO maps a Money to the wire form, treating the zero Currency as an
// unset amount.
func amountDTO(m money.Money) *dto.AmountDTO {
	if m.Currency().Code() == "" {
		return nil
	}
	return &dto.AmountDTO{Currency: m.Currency().Code(), Amount: m.Amount()}
}

func amountPtrDTO(m *money.Money) *dto.AmountDTO {
	if m == nil {
		return nil
	}
	return amountDTO(*m)
}

func loanCostsDTO(costs model.LoanCosts) dto.LoanCostsDTO {
	insurance := make([]dto.LifeInsuranceDTO, 0, len(costs.LifeInsurance))
	for _, li := range costs.LifeInsurance {
		insurance = append(insurance, dto.LifeInsuranceDTO{
			Value:            *amountDTO(li.Value),
			PaymentFrequency: string(li.Frequency),
		})
	}
	return dto.LoanCostsDTO{
		LifeInsurance: insurance,
		Discounts: dto.DiscountsValuesDTO{
			DiscountAmountHasSalaryInTheBank: costs.Discounts.SalaryInBank,
			DiscountAmountCasaVerde:          costs.Discounts.GreenHouse,
			DiscountAmountInsurance:          costs.Discounts.LifeInsurance,
			DiscountAmountDownPayment:        costs.Discounts.DownPayment,
		},
		TotalDiscountsValues: dto.TotalDiscountsValuesDTO{
			TotalDiscountInstallment: costs.TotalDiscountValues.TotalDiscountInstallment,
			TotalDiscountAmount:      costs.TotalDiscountValues.TotalDiscountAmount,
		},
	}
}

func repaymentPlanDTO(entries []model.RepaymentPlanEntry) []dto.RepaymentEntryDTO {
	plan := make([]dto.RepaymentEntryDTO, 0, len(entries))
	for _, e := range entries {
		plan = append(plan, dto.RepaymentEntryDTO{
			Month:             e.Month,
			ReimbursedCapital: e.ReimbursedCapital.Amount(),
			Interest:          e.Interest.Amount(),
			Fee:               e.Fee.Amount(),
			Installment:       e.Installment.Amount(),
			TotalPayment:      e.TotalPayment.Amount(),
			RemainingBalance:  e.RemainingBalance.Amount(),
		})
	}
	return plan
}
