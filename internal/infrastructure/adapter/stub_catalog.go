package adapter

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/omnibank/mortgage-service/internal/domain/model"
	"github.com/omnibank/mortgage-service/internal/domain/valueobject"
)

// StubCatalogClient is a development/test adapter serving a fixed product
// catalog. It implements port.CatalogClient.
type StubCatalogClient struct {
	products  map[string]model.ProductInfo
	params    model.LoanParameters
	rates     []model.RateRow
	districts []model.District
	discounts []model.DiscountEntry
	ltv       int
}

// NewStubCatalogClient creates a stub with a RON catalog mirroring a typical
// production parameter set.
func NewStubCatalogClient() *StubCatalogClient {
	return &StubCatalogClient{
		products: map[string]model.ProductInfo{
			"CasaTa":        {ID: 40, Code: "CasaTa", Label: "Casa Ta"},
			"Constructie":   {ID: 41, Code: "Constructie", Label: "Constructie"},
			"CreditVenit":   {ID: 42, Code: "CreditVenit", Label: "Credit Venit"},
			"FlexiIntegral": {ID: 43, Code: "FlexiIntegral", Label: "Flexi Integral"},
		},
		params: model.LoanParameters{
			AnalysisCommission:           decimal.NewFromInt(500),
			PaymentOrderCommission:       decimal.Zero,
			MonthlyAccountCommission:     decimal.NewFromInt(5),
			AssessmentFee:                decimal.RequireFromString("533.037"),
			PostGrantCommission:          decimal.NewFromInt(10),
			BuildingPADPremium:           decimal.RequireFromString("99.54"),
			BuildingInsurancePremiumRate: decimal.Zero,
			LifeInsuranceRate:            decimal.RequireFromString("0.026"),
			IRCC:                         5.6,
			Descriptions: model.CommissionDescriptions{
				AssessmentFee:            "Taxa de evaluare a imobilului",
				GrantingFee:              "Comision de acordare",
				EarlyRepaymentCommission: "0% pentru rambursare anticipata din surse proprii",
				InterestRateDescription:  "Dobanda variabila compusa din marja fixa plus IRCC",
			},
		},
		rates: []model.RateRow{
			{YearBucket: 0, Kind: model.RateRowVariable, Rate: 6.75, Margin: 3.99},
			{YearBucket: 3, Kind: model.RateRowFixed, Rate: 6.75, Margin: 3.99},
			{YearBucket: 3, Kind: model.RateRowVariable, Rate: 5.66, Margin: 3.99},
		},
		districts: []model.District{
			{City: "Bucuresti", County: "Bucuresti", Zone: 1},
			{City: "Cluj-Napoca", County: "Cluj", Zone: 1},
			{City: "Iasi", County: "Iasi", Zone: 2},
			{City: "Brasov", County: "Brasov", Zone: 2},
		},
		discounts: []model.DiscountEntry{
			{Name: valueobject.DiscountDownPayment.CatalogName(), Value: 0.2},
			{Name: valueobject.DiscountSalaryClient.CatalogName(), Value: 0.25},
			{Name: valueobject.DiscountLifeInsurance.CatalogName(), Value: 0.15},
			{Name: valueobject.DiscountGreenHouse.CatalogName(), Value: 0.5},
		},
		ltv: 80,
	}
}

func (c *StubCatalogClient) Product(_ context.Context, code string) (model.ProductInfo, error) {
	p, ok := c.products[code]
	if !ok {
		return model.ProductInfo{}, fmt.Errorf("unknown product code %q", code)
	}
	return p, nil
}

func (c *StubCatalogClient) Parameters(_ context.Context, _ int, _ bool, _ string, _ valueobject.RateShape, _ bool) (model.LoanParameters, error) {
	return c.params, nil
}

func (c *StubCatalogClient) InterestRates(_ context.Context, _ int, _, _ bool) ([]model.RateRow, error) {
	rows := make([]model.RateRow, len(c.rates))
	copy(rows, c.rates)
	return rows, nil
}

func (c *StubCatalogClient) Districts(_ context.Context) ([]model.District, error) {
	districts := make([]model.District, len(c.districts))
	copy(districts, c.districts)
	return districts, nil
}

func (c *StubCatalogClient) LTV(_ context.Context, _ float64, _ bool, _, _ int) (int, error) {
	return c.ltv, nil
}

func (c *StubCatalogClient) Discounts(_ context.Context, _ int) ([]model.DiscountEntry, error) {
	entries := make([]model.DiscountEntry, len(c.discounts))
	copy(entries, c.discounts)
	return entries, nil
}
