package usecase

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omnibank/mortgage-service/internal/apperror"
	"github.com/omnibank/mortgage-service/internal/application/dto"
	"github.com/omnibank/mortgage-service/internal/domain/model"
	"github.com/omnibank/mortgage-service/internal/domain/port"
	"github.com/omnibank/mortgage-service/internal/domain/service"
	"github.com/omnibank/mortgage-service/internal/infrastructure/adapter"
	"github.com/omnibank/mortgage-service/internal/infrastructure/cache"
)

// countingCatalog counts upstream product lookups so cache behavior is
// observable from the outside.
type countingCatalog struct {
	port.CatalogClient
	products atomic.Int64
}

func (c *countingCatalog) Product(ctx context.Context, code string) (model.ProductInfo, error) {
	c.products.Add(1)
	return c.CatalogClient.Product(ctx, code)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newUseCase(catalog port.CatalogClient, quoteCache port.QuoteCache) *CalculateQuoteUseCase {
	calculator := service.NewQuoteCalculator(catalog, adapter.NewStubFxClient())
	return NewCalculateQuoteUseCase(calculator, quoteCache, time.Minute, nil, testLogger())
}

func validRequest() dto.CalculationRequest {
	return dto.CalculationRequest{
		ProductCode: "CasaTa",
		LoanAmount:  &dto.AmountDTO{Currency: "RON", Amount: decimal.NewFromInt(50000)},
		Area:        &dto.AreaDTO{City: "Bucuresti", County: "Bucuresti"},
		Income: &dto.IncomeDTO{
			CurrentIncome:     decimal.NewFromInt(4000),
			OtherInstallments: decimal.NewFromInt(100),
		},
		Tenor:                    30,
		Age:                      43,
		Owner:                    true,
		InterestRateType:         &dto.InterestRateTypeDTO{Type: dto.InterestRateTypeVariable},
		InstallmentType:          "EQUAL_INSTALLMENTS",
		SpecialOfferRequirements: &dto.SpecialOfferRequirementsDTO{},
	}
}

func TestExecute(t *testing.T) {
	uc := newUseCase(adapter.NewStubCatalogClient(), nil)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Tenor 30 at age 43 is clamped to the 22 years left before retirement.
	assert.Equal(t, 22, resp.Tenor)
	require.NotNil(t, resp.DownPayment)
	assert.Equal(t, "10000.00", resp.DownPayment.Amount.StringFixed(2))
	require.NotNil(t, resp.LoanAmountWithFee)
	assert.Equal(t, "40500.00", resp.LoanAmountWithFee.Amount.StringFixed(2))
	assert.Equal(t, "RON", resp.LoanAmountWithFee.Currency)
	assert.Equal(t, "6.75", resp.NominalInterestRate.StringFixed(2))
	assert.Len(t, resp.RepaymentPlan, 265)

	require.NotNil(t, resp.InterestRateType)
	assert.Equal(t, dto.InterestRateTypeVariable, resp.InterestRateType.Type)
}

func TestExecute_CachesResponses(t *testing.T) {
	catalog := &countingCatalog{CatalogClient: adapter.NewStubCatalogClient()}
	uc := newUseCase(catalog, cache.NewMemoryCache())

	first, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	calls := catalog.products.Load()
	require.Greater(t, calls, int64(0))

	second, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, calls, catalog.products.Load(), "second identical request must be served from cache")
	assert.Equal(t, first.NominalInterestRate, second.NominalInterestRate)
	assert.Equal(t, first.DownPayment.Amount, second.DownPayment.Amount)
}

func TestExecute_DistinctRequestsMissTheCache(t *testing.T) {
	catalog := &countingCatalog{CatalogClient: adapter.NewStubCatalogClient()}
	uc := newUseCase(catalog, cache.NewMemoryCache())

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	calls := catalog.products.Load()

	other := validRequest()
	other.LoanAmount.Amount = decimal.NewFromInt(60000)
	_, err = uc.Execute(context.Background(), other)
	require.NoError(t, err)
	assert.Greater(t, catalog.products.Load(), calls)
}

func TestExecute_ValidationFailureSkipsCalculator(t *testing.T) {
	catalog := &countingCatalog{CatalogClient: adapter.NewStubCatalogClient()}
	uc := newUseCase(catalog, nil)

	req := validRequest()
	req.ProductCode = ""

	_, err := uc.Execute(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, apperror.KindBadRequest, apperror.KindOf(err))
	assert.Equal(t, int64(0), catalog.products.Load())
}

func TestExecute_PropagatesCalculatorErrors(t *testing.T) {
	uc := newUseCase(adapter.NewStubCatalogClient(), nil)

	req := validRequest()
	req.LoanAmount.Amount = decimal.NewFromInt(3000000)

	_, err := uc.Execute(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, apperror.KindUnprocessable, apperror.KindOf(err))
	require.NotNil(t, apperror.From(err).DisplayedValue)
}
