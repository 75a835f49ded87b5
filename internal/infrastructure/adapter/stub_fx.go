package adapter

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/omnibank/mortgage-service/internal/domain/model"
)

// StubFxClient is a development/test adapter serving a fixed EURRON
// reference rate. It implements port.FxClient.
type StubFxClient struct {
	rates []model.ExchangeRate
}

func NewStubFxClient() *StubFxClient {
	return &StubFxClient{
		rates: []model.ExchangeRate{
			{CurrencyPair: "EURRON", ReferenceRate: decimal.RequireFromString("4.977")},
			{CurrencyPair: "USDRON", ReferenceRate: decimal.RequireFromString("4.58")},
		},
	}
}

func (c *StubFxClient) ExchangeRates(_ context.Context, _ string) ([]model.ExchangeRate, error) {
	rates := make([]model.ExchangeRate, len(c.rates))
	copy(rates, c.rates)
	return rates, nil
}
