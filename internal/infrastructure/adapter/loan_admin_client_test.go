package adapter

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omnibank/mortgage-service/internal/domain/model"
	"github.com/omnibank/mortgage-service/internal/domain/valueobject"
	"github.com/omnibank/mortgage-service/internal/observability"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestLoanAdmin(t *testing.T, handler http.HandlerFunc) *LoanAdminClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewLoanAdminClient(LoanAdminConfig{BaseURL: srv.URL, Timeout: time.Second}, discardLogger())
}

func TestLoanAdminClient_Product(t *testing.T) {
	client := newTestLoanAdmin(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/product", r.URL.Path)
		assert.Equal(t, "CasaTa", r.URL.Query().Get("productCode"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"idLoan": 40, "labelLoan": "Casa Ta", "productLoan": "CasaTa"}`))
	})

	product, err := client.Product(context.Background(), "CasaTa")
	require.NoError(t, err)
	assert.Equal(t, model.ProductInfo{ID: 40, Code: "CasaTa", Label: "Casa Ta"}, product)
}

func TestLoanAdminClient_Parameters(t *testing.T) {
	client := newTestLoanAdmin(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/get-all-parameters/", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "40", q.Get("fkLoanProduct"))
		assert.Equal(t, "true", q.Get("ourClient"))
		assert.Equal(t, "RON", q.Get("currency"))
		assert.Equal(t, "VARIABLE", q.Get("interestRateType"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"analysisCommission": 500,
			"monthlyCurrentAccountCommission": 5,
			"assessmentFee": 533.037,
			"postGrantCommission": 10,
			"buildingPADInsurancePremiumRateEuro": "99.54",
			"lifeInsurance": "0.026",
			"ircc": 5.6,
			"assesmentFeeDescription": "taxa evaluare"
		}`))
	})

	params, err := client.Parameters(context.Background(), 40, true, "RON", valueobject.SingleRate(), false)
	require.NoError(t, err)
	assert.Equal(t, "500", params.AnalysisCommission.String())
	assert.Equal(t, "99.54", params.BuildingPADPremium.String())
	assert.Equal(t, "0.026", params.LifeInsuranceRate.String())
	assert.Equal(t, 5.6, params.IRCC)
	assert.Equal(t, "taxa evaluare", params.Descriptions.AssessmentFee)
}

func TestLoanAdminClient_InterestRates(t *testing.T) {
	client := newTestLoanAdmin(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/get-loan-interest-rates/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"interestRate": 6.75, "interestRateType": "VARIABLE", "margin": 3.99, "year": 0},
			{"interestRate": 6.75, "interestRateType": "FIXED", "margin": 3.99, "year": 3}
		]`))
	})

	rows, err := client.InterestRates(context.Background(), 40, false, false)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, model.RateRowVariable, rows[0].Kind)
	assert.Equal(t, model.RateRowFixed, rows[1].Kind)
	assert.Equal(t, 3, rows[1].YearBucket)
}

func TestLoanAdminClient_ForwardsCorrelationHeaders(t *testing.T) {
	var gotCorrelation, gotRequest string
	client := newTestLoanAdmin(t, func(w http.ResponseWriter, r *http.Request) {
		gotCorrelation = r.Header.Get(observability.HeaderCorrelationID)
		gotRequest = r.Header.Get(observability.HeaderRequestID)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	})

	ctx := observability.WithCorrelation(context.Background(), "corr-1", "req-1")
	_, err := client.Districts(ctx)
	require.NoError(t, err)
	assert.Equal(t, "corr-1", gotCorrelation)
	assert.Equal(t, "req-1", gotRequest)
}

func TestLoanAdminClient_UpstreamFailure(t *testing.T) {
	client := newTestLoanAdmin(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.LTV(context.Background(), 50000, true, 1, 40)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}
