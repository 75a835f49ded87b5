// Package port declares the driven-side interfaces the domain depends on.
// Implementations live under internal/infrastructure.
package port

import (
	"context"

	"github.com/omnibank/mortgage-service/internal/domain/model"
	"github.com/omnibank/mortgage-service/internal/domain/valueobject"
)

// CatalogClient looks up product definitions, calculation parameters,
// interest-rate tables, districts, loan-to-value limits and discount
// catalogs from the loan administration service. Pure data lookups; any
// failure aborts the quote.
type CatalogClient interface {
	Product(ctx context.Context, code string) (model.ProductInfo, error)
	Parameters(ctx context.Context, productID int, ownClient bool, currency string, shape valueobject.RateShape, digital bool) (model.LoanParameters, error)
	InterestRates(ctx context.Context, productID int, ownClient, digital bool) ([]model.RateRow, error)
	Districts(ctx context.Context) ([]model.District, error)
	LTV(ctx context.Context, amount float64, owner bool, zone, productID int) (int, error)
	Discounts(ctx context.Context, productID int) ([]model.DiscountEntry, error)
}

// FxClient serves reference exchange rates.
type FxClient interface {
	ExchangeRates(ctx context.Context, currency string) ([]model.ExchangeRate, error)
}
