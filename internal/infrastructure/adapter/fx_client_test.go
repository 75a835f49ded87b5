package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFx(t *testing.T, handler http.HandlerFunc) *FxRatesClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewFxRatesClient(FxRatesConfig{BaseURL: srv.URL, Timeout: time.Second}, discardLogger())
}

func TestFxRatesClient(t *testing.T) {
	client := newTestFx(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "EUR", q.Get("currency"))
		assert.NotEmpty(t, q.Get("validityDate"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"currencyPair": "EURRON", "currency": "EUR", "referenceRate": "4.977"},
			{"currencyPair": "USDRON", "currency": "USD", "referenceRate": "4.58"}
		]`))
	})

	rates, err := client.ExchangeRates(context.Background(), "EUR")
	require.NoError(t, err)
	require.Len(t, rates, 2)
	assert.Equal(t, "EURRON", rates[0].CurrencyPair)
	assert.Equal(t, "4.977", rates[0].ReferenceRate.String())
}

func TestFxRatesClient_MalformedRate(t *testing.T) {
	client := newTestFx(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"currencyPair": "EURRON", "referenceRate": "n/a"}]`))
	})

	_, err := client.ExchangeRates(context.Background(), "EUR")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "EURRON")
}

func TestFxRatesClient_UpstreamFailure(t *testing.T) {
	client := newTestFx(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := client.ExchangeRates(context.Background(), "EUR")
	require.Error(t, err)
}
