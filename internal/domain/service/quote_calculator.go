package service

import (
	"context"
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/omnibank/mortgage-service/internal/apperror"
	"github.com/omnibank/mortgage-service/internal/domain/model"
	"github.com/omnibank/mortgage-service/internal/domain/port"
	"github.com/omnibank/mortgage-service/internal/domain/valueobject"
	"github.com/omnibank/mortgage-service/pkg/money"
)

const (
	currencyPairEURRON = "EURRON"

	msgContributionTooLarge = "Ne pare rau! Contributia proprie nu poate fi mai mare decat suma solicitata"
	msgAmountTooLarge       = "Ne pare rau! Valoarea creditului este prea mare pentru venitul si cheltuielile tale! Te rugam sa incerci o suma mai mica decat %s Lei"
)

// downPaymentDiscountShare is the own-contribution share that unlocks the
// down-payment discount. An explicit contribution qualifies on the threshold
// itself; a contribution the engine derives from the loan-to-value split has
// to exceed it, so the standard 80% split alone never unlocks the discount.
var downPaymentDiscountShare = decimal.RequireFromString("0.2")

var noDocShare = decimal.RequireFromString("0.3")

// QuoteCalculator orchestrates a quote: product-specific down-payment and
// guarantee figures, rate resolution, discount attribution, the full
// schedule and the APR.
type QuoteCalculator struct {
	catalog port.CatalogClient
	fx      port.FxClient
}

func NewQuoteCalculator(catalog port.CatalogClient, fx port.FxClient) *QuoteCalculator {
	return &QuoteCalculator{catalog: catalog, fx: fx}
}

// Calculate quotes the request. The request must be validated and its tenor
// clamped to months before this is called.
func (c *QuoteCalculator) Calculate(ctx context.Context, req model.QuoteRequest) (*model.QuoteResult, error) {
	// An applicant at or past retirement age clamps to a zero tenor; the
	// schedule recurrence needs at least one repayment month.
	if req.TenorMonths <= 0 {
		return nil, apperror.BadRequest("Tenor is not available for the given age")
	}

	result := &model.QuoteResult{TenorYears: req.TenorMonths / 12}

	var err error
	switch req.Product {
	case valueobject.ProductCasaTa:
		err = c.casaTa(ctx, req, result)
	case valueobject.ProductConstructie:
		err = c.constructie(ctx, req, result)
	case valueobject.ProductCreditVenit:
		err = c.creditVenit(ctx, req, result)
	case valueobject.ProductFlexiIntegral:
		err = c.flexiIntegral(ctx, req, result)
	default:
		err = apperror.BadRequest("unsupported product code %q", req.Product.Code())
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ---------------------------------------------------------------------------
// Product strategies
// ---------------------------------------------------------------------------

// casaTa finances a share of the property price given by the loan-to-value
// limit; the remainder is the buyer's own contribution, either derived or
// supplied explicitly.
func (c *QuoteCalculator) casaTa(ctx context.Context, req model.QuoteRequest, result *model.QuoteResult) error {
	loanAmount := req.LoanAmount.Amount()

	in, err := c.fetchInputs(ctx, req, loanAmount)
	if err != nil {
		return err
	}
	rates, err := c.resolveRates(ctx, in.productID, req.RateShape)
	if err != nil {
		return err
	}
	triple := ApplyChosenDiscounts(rates, req)
	available := AvailableRate(req.Income)

	credit := CreditAmount(loanAmount, in.ltv)
	downPayment := loanAmount.Sub(credit)

	if req.DownPayment != nil {
		if req.DownPayment.GreaterThan(loanAmount) {
			return apperror.Unprocessable(msgContributionTooLarge, nil)
		}
		downPayment = *req.DownPayment
	}

	rounded := money.RoundHalfDown(downPayment, 2)
	dp := money.New(rounded, in.currency)
	result.DownPayment = &dp

	financed, err := req.LoanAmount.Subtract(dp)
	if err != nil {
		return apperror.Internal("quote assembly currency mismatch", err)
	}
	withFee := money.New(amountWithFee(financed.Amount(), in.params.AnalysisCommission), in.currency)
	result.LoanAmount = withFee
	result.LoanAmountWithFee = withFee

	threshold := downPaymentDiscountShare.Mul(loanAmount)
	applied := downPayment.GreaterThan(threshold)
	if req.DownPayment != nil {
		applied = downPayment.GreaterThanOrEqual(threshold)
	}
	if applied {
		triple = triple.Discounted(rates.DiscountValue(valueobject.DiscountDownPayment.CatalogName()))
	}

	if err := capToAffordable(triple.NominalRate, req.TenorMonths, available, credit, in.currency, result); err != nil {
		return err
	}

	return c.finishQuote(ctx, req, in, rates, triple, loanAmount.Sub(downPayment), applied, result)
}

// constructie finances a construction loan: the own contribution defaults to
// zero, and a 30% share of the credit needs no spending documentation.
func (c *QuoteCalculator) constructie(ctx context.Context, req model.QuoteRequest, result *model.QuoteResult) error {
	loanAmount := req.LoanAmount.Amount()

	in, err := c.fetchInputs(ctx, req, loanAmount)
	if err != nil {
		return err
	}
	rates, err := c.resolveRates(ctx, in.productID, req.RateShape)
	if err != nil {
		return err
	}

	downPayment := decimal.Zero
	if req.DownPayment != nil {
		downPayment = *req.DownPayment
	}
	if downPayment.GreaterThan(loanAmount) {
		return apperror.Unprocessable(msgContributionTooLarge, nil)
	}
	dp := money.New(downPayment, in.currency)
	result.DownPayment = &dp

	financed, err := req.LoanAmount.Subtract(dp)
	if err != nil {
		return apperror.Internal("quote assembly currency mismatch", err)
	}
	credit := financed.Amount()
	guarantee := Guarantee(in.ltv, credit)
	reference := Guarantee(80, credit)
	noDoc := noDocShare.Mul(credit)

	result.MinGuaranteeAmount = &guarantee
	result.NoDocAmount = &noDoc
	hp := money.New(reference, in.currency)
	result.HousePrice = &hp

	triple := ApplyChosenDiscounts(rates, req)
	applied := reference.LessThanOrEqual(guarantee)
	if applied {
		triple = triple.Discounted(rates.DiscountValue(valueobject.DiscountDownPayment.CatalogName()))
	}

	available := AvailableRate(req.Income)
	if err := capToAffordable(triple.NominalRate, req.TenorMonths, available, credit, in.currency, result); err != nil {
		return err
	}

	withFee := money.New(amountWithFee(credit, in.params.AnalysisCommission), in.currency)
	result.LoanAmount = withFee
	result.LoanAmountWithFee = withFee

	return c.finishQuote(ctx, req, in, rates, triple, credit, applied, result)
}

func (c *QuoteCalculator) creditVenit(ctx context.Context, req model.QuoteRequest, result *model.QuoteResult) error {
	if req.LoanAmount != nil {
		return c.creditVenitWithAmount(ctx, req, result)
	}
	return c.creditVenitDerived(ctx, req, result)
}

// creditVenitWithAmount quotes a requested amount; the own contribution is a
// mandatory input for this mode.
func (c *QuoteCalculator) creditVenitWithAmount(ctx context.Context, req model.QuoteRequest, result *model.QuoteResult) error {
	if req.DownPayment == nil {
		return apperror.BadRequest("DownPayment is required to proceed")
	}

	loanAmount := req.LoanAmount.Amount()
	in, err := c.fetchInputs(ctx, req, loanAmount)
	if err != nil {
		return err
	}
	rates, err := c.resolveRates(ctx, in.productID, req.RateShape)
	if err != nil {
		return err
	}
	triple := ApplyChosenDiscounts(rates, req)
	available := AvailableRate(req.Income)

	downPayment := *req.DownPayment
	if downPayment.GreaterThan(loanAmount) {
		return apperror.Unprocessable(msgContributionTooLarge, nil)
	}

	applied := downPayment.GreaterThanOrEqual(downPaymentDiscountShare.Mul(loanAmount))
	if applied {
		triple = triple.Discounted(rates.DiscountValue(valueobject.DiscountDownPayment.CatalogName()))
	}

	if err := capToAffordable(triple.NominalRate, req.TenorMonths, available, loanAmount, in.currency, result); err != nil {
		return err
	}

	dp := money.New(downPayment, in.currency)
	result.DownPayment = &dp

	financed, err := req.LoanAmount.Subtract(dp)
	if err != nil {
		return apperror.Internal("quote assembly currency mismatch", err)
	}
	withFee := money.New(amountWithFee(financed.Amount(), in.params.AnalysisCommission), in.currency)
	result.LoanAmount = withFee
	result.LoanAmountWithFee = withFee

	hp, err := req.LoanAmount.Add(dp)
	if err != nil {
		return apperror.Internal("quote assembly currency mismatch", err)
	}
	result.HousePrice = &hp

	return c.finishQuote(ctx, req, in, rates, triple, financed.Amount(), applied, result)
}

// creditVenitDerived has no requested amount: the affordability ceiling
// becomes the loan, and the guarantee and down payment are re-derived from
// it.
func (c *QuoteCalculator) creditVenitDerived(ctx context.Context, req model.QuoteRequest, result *model.QuoteResult) error {
	product, err := c.catalog.Product(ctx, req.Product.Code())
	if err != nil {
		return apperror.Internal("product lookup failed", err)
	}
	rates, err := c.resolveRates(ctx, product.ID, req.RateShape)
	if err != nil {
		return err
	}
	triple := ApplyChosenDiscounts(rates, req)
	available := AvailableRate(req.Income)

	maxLoan := MaxAffordable(triple.NominalRate, req.TenorMonths, available)

	in, err := c.fetchInputs(ctx, req, maxLoan)
	if err != nil {
		return err
	}

	engineAmount := maxLoan.Sub(in.params.AnalysisCommission)
	result.MaxAmount = money.New(money.RoundHalfDown(maxLoan, 2), in.currency)

	guarantee := GuaranteeWithFee(in.ltv, maxLoan, in.params.AnalysisCommission)
	downPayment := guarantee.Sub(maxLoan)

	applied := downPayment.GreaterThan(downPaymentDiscountShare.Mul(engineAmount))
	if applied {
		triple = triple.Discounted(rates.DiscountValue(valueobject.DiscountDownPayment.CatalogName()))
	}

	hp := money.New(maxLoan.Add(downPayment), in.currency)
	result.HousePrice = &hp
	dp := money.New(downPayment, in.currency)
	result.DownPayment = &dp
	loan := money.New(maxLoan, in.currency)
	result.LoanAmount = loan
	result.LoanAmountWithFee = loan
	result.MinGuaranteeAmount = &guarantee

	return c.finishQuote(ctx, req, in, rates, triple, engineAmount, applied, result)
}

// flexiIntegral finances the full requested amount with no own
// contribution; the guarantee is derived from the amount plus commission.
func (c *QuoteCalculator) flexiIntegral(ctx context.Context, req model.QuoteRequest, result *model.QuoteResult) error {
	loanAmount := req.LoanAmount.Amount()

	in, err := c.fetchInputs(ctx, req, loanAmount)
	if err != nil {
		return err
	}
	rates, err := c.resolveRates(ctx, in.productID, req.RateShape)
	if err != nil {
		return err
	}
	triple := ApplyChosenDiscounts(rates, req)
	available := AvailableRate(req.Income)

	guarantee := GuaranteeWithFee(in.ltv, loanAmount, in.params.AnalysisCommission)
	reference := Guarantee(80, loanAmount)

	applied := reference.LessThanOrEqual(guarantee)
	if applied {
		triple = triple.Discounted(rates.DiscountValue(valueobject.DiscountDownPayment.CatalogName()))
	}

	if err := capToAffordable(triple.NominalRate, req.TenorMonths, available, loanAmount, in.currency, result); err != nil {
		return err
	}

	result.MinGuaranteeAmount = &guarantee
	withFee := money.New(amountWithFee(loanAmount, in.params.AnalysisCommission), in.currency)
	result.LoanAmount = withFee
	result.LoanAmountWithFee = withFee
	hp := money.New(reference, in.currency)
	result.HousePrice = &hp

	return c.finishQuote(ctx, req, in, rates, triple, loanAmount, applied, result)
}

// ---------------------------------------------------------------------------
// Shared pipeline
// ---------------------------------------------------------------------------

type calculationInputs struct {
	productID int
	currency  money.Currency
	params    model.LoanParameters
	ltv       int
}

func (c *QuoteCalculator) fetchInputs(ctx context.Context, req model.QuoteRequest, amount decimal.Decimal) (calculationInputs, error) {
	currency := req.Currency()

	product, err := c.catalog.Product(ctx, req.Product.Code())
	if err != nil {
		return calculationInputs{}, apperror.Internal("product lookup failed", err)
	}

	params, err := c.catalog.Parameters(ctx, product.ID, req.SpecialOffers.SalaryInBank, currency.Code(), req.RateShape, false)
	if err != nil {
		return calculationInputs{}, apperror.Internal("parameter lookup failed", err)
	}

	districts, err := c.catalog.Districts(ctx)
	if err != nil {
		return calculationInputs{}, apperror.Internal("district lookup failed", err)
	}
	zone, ok := findZone(districts, req.Area)
	if !ok {
		return calculationInputs{}, apperror.NotFound("no financing zone for %s, %s", req.Area.City, req.Area.County)
	}

	ltv, err := c.catalog.LTV(ctx, amount.InexactFloat64(), req.Owner, zone, product.ID)
	if err != nil {
		return calculationInputs{}, apperror.Internal("ltv lookup failed", err)
	}

	return calculationInputs{
		productID: product.ID,
		currency:  currency,
		params:    params,
		ltv:       ltv,
	}, nil
}

func findZone(districts []model.District, area model.Area) (int, bool) {
	for _, d := range districts {
		if d.City == area.City && d.County == area.County {
			return d.Zone, true
		}
	}
	return 0, false
}

func (c *QuoteCalculator) resolveRates(ctx context.Context, productID int, shape valueobject.RateShape) (model.ResolvedRates, error) {
	rows, err := c.catalog.InterestRates(ctx, productID, false, false)
	if err != nil {
		return model.ResolvedRates{}, apperror.Internal("interest rate lookup failed", err)
	}
	catalog, err := c.catalog.Discounts(ctx, productID)
	if err != nil {
		return model.ResolvedRates{}, apperror.Internal("discount lookup failed", err)
	}
	return ResolveRates(rows, shape, catalog)
}

func capToAffordable(rate float64, tenorMonths int, available, credit decimal.Decimal, currency money.Currency, result *model.QuoteResult) error {
	maxAmount := money.RoundHalfDown(MaxAffordable(rate, tenorMonths, available), 2)
	result.MaxAmount = money.New(maxAmount, currency)

	if maxAmount.LessThan(credit) {
		return apperror.Unprocessable(fmt.Sprintf(msgAmountTooLarge, maxAmount.StringFixed(2)), &maxAmount)
	}
	return nil
}

// finishQuote runs the shared tail of every product: building-insurance
// conversion, discount attribution, the full schedule, headline figures and
// the APR.
func (c *QuoteCalculator) finishQuote(
	ctx context.Context,
	req model.QuoteRequest,
	in calculationInputs,
	rates model.ResolvedRates,
	triple model.RateTriple,
	engineAmount decimal.Decimal,
	downPaymentApplied bool,
	result *model.QuoteResult,
) error {
	premium, err := c.buildingInsurancePremium(ctx, in, engineAmount)
	if err != nil {
		return err
	}

	sched := ScheduleInputs{
		Currency:                 in.currency,
		Principal:                engineAmount,
		TenorMonths:              req.TenorMonths,
		InstallmentType:          req.InstallmentType,
		HasInsurance:             req.HasInsurance,
		FixedMonths:              rates.FixedMonths,
		Rate:                     triple.NominalRate,
		VariableRate:             triple.VariableRate,
		AnalysisCommission:       in.params.AnalysisCommission,
		MonthlyAccountCommission: in.params.MonthlyAccountCommission,
		BuildingInsurancePremium: premium,
		BuildingPADPremium:       in.params.BuildingPADPremium,
		LifeInsuranceRate:        in.params.LifeInsuranceRate,
	}

	fixedValues, variableValues := AttributeDiscounts(sched, rates, req.RateShape)
	totals := TotalDiscounts(req, fixedValues, variableValues, downPaymentApplied, req.TenorMonths, rates.FixedMonths)

	entries, lifeInsurance := BuildSchedule(sched)

	result.MonthlyInstallment = MonthlyInstallmentFigures(entries, req.RateShape, req.HasInsurance, lifeInsurance.Value.Amount())
	result.RateShape = req.RateShape
	result.InterestRateFormula = rateFormula(triple.BankMargin, in.params.IRCC)
	result.NominalInterestRate = money.RoundHalfDown(decimal.NewFromFloat(triple.NominalRate), 2)

	flows := CashFlows(entries)
	apr, err := AnnualPercentageRate(flows, amountWithFee(engineAmount, in.params.AnalysisCommission), in.params, premium)
	if err != nil {
		return err
	}

	result.LoanCosts = model.LoanCosts{
		LifeInsurance:       []model.LifeInsurance{lifeInsurance},
		Discounts:           fixedValues,
		TotalDiscountValues: totals,
	}
	result.AnnualPercentageRate = apr
	result.TotalPayment = TotalCost(flows, in.params, premium, in.currency)
	result.RepaymentPlan = entries
	result.CommissionDescriptions = in.params.Descriptions
	return nil
}

// buildingInsurancePremium turns the premium percentage into a currency
// amount over the estimated building value. The estimate follows from the
// financed amount and the loan-to-value ratio; non-RON loans convert through
// the EURRON reference rate.
func (c *QuoteCalculator) buildingInsurancePremium(ctx context.Context, in calculationInputs, engineAmount decimal.Decimal) (decimal.Decimal, error) {
	fxRates, err := c.fx.ExchangeRates(ctx, money.EUR.Code())
	if err != nil {
		return decimal.Decimal{}, apperror.Internal("exchange rate lookup failed", err)
	}
	var reference decimal.Decimal
	found := false
	for _, r := range fxRates {
		if r.CurrencyPair == currencyPairEURRON {
			reference = r.ReferenceRate
			found = true
			break
		}
	}
	if !found {
		return decimal.Decimal{}, apperror.Internal("no exchange rate found", nil)
	}

	total := amountWithFee(engineAmount, in.params.AnalysisCommission)
	estimated := money.RoundHalfUp(total.Mul(d100).Div(decimal.NewFromInt(int64(in.ltv))), 2)
	if in.currency != money.RON {
		estimated = estimated.Mul(reference)
	}

	premium := estimated.Mul(money.RoundHalfDown(in.params.BuildingInsurancePremiumRate.Div(d100), 6))
	return money.RoundHalfDown(premium, 2), nil
}

func rateFormula(bankMargin, ircc float64) model.InterestRateFormula {
	round2 := func(v float64) float64 { return math.Round(v*100) / 100 }
	return model.InterestRateFormula{
		BankMarginRate: round2(bankMargin),
		IRCCRate:       round2(ircc),
	}
}
