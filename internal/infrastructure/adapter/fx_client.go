package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/omnibank/mortgage-service/internal/domain/model"
	"github.com/omnibank/mortgage-service/internal/observability"
)

// FxRatesConfig holds configuration for the fx rates client.
type FxRatesConfig struct {
	BaseURL string
	Timeout time.Duration
}

// FxRatesClient implements port.FxClient against the fx rates service.
type FxRatesClient struct {
	cfg    FxRatesConfig
	client *http.Client
	logger *slog.Logger
}

func NewFxRatesClient(cfg FxRatesConfig, logger *slog.Logger) *FxRatesClient {
	return &FxRatesClient{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

// exchangeRatePayload is the upstream wire form; the reference rate arrives
// as a string.
type exchangeRatePayload struct {
	CurrencyPair  string `json:"currencyPair"`
	Currency      string `json:"currency"`
	ReferenceRate string `json:"referenceRate"`
}

func (c *FxRatesClient) ExchangeRates(ctx context.Context, currency string) ([]model.ExchangeRate, error) {
	q := url.Values{}
	q.Set("currency", currency)
	q.Set("validityDate", time.Now().Format("2006-01-02"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build fx request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if id := observability.CorrelationID(ctx); id != "" {
		req.Header.Set(observability.HeaderCorrelationID, id)
	}
	if id := observability.RequestID(ctx); id != "" {
		req.Header.Set(observability.HeaderRequestID, id)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call fx rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("fx rates call failed", "status", resp.StatusCode)
		return nil, fmt.Errorf("fx rates: unexpected status %d", resp.StatusCode)
	}

	var payload []exchangeRatePayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode fx rates response: %w", err)
	}

	rates := make([]model.ExchangeRate, 0, len(payload))
	for _, p := range payload {
		rate, parseErr := decimal.NewFromString(p.ReferenceRate)
		if parseErr != nil {
			return nil, fmt.Errorf("parse reference rate %q for %s: %w", p.ReferenceRate, p.CurrencyPair, parseErr)
		}
		rates = append(rates, model.ExchangeRate{CurrencyPair: p.CurrencyPair, ReferenceRate: rate})
	}
	return rates, nil
}
