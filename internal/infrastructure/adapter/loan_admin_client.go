// Package adapter implements the driven-side ports over HTTP, plus in-memory
// stubs for development and tests.
package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/omnibank/mortgage-service/internal/domain/model"
	"github.com/omnibank/mortgage-service/internal/domain/valueobject"
	"github.com/omnibank/mortgage-service/internal/observability"
)

// LoanAdminConfig holds configuration for the loan administration client.
type LoanAdminConfig struct {
	BaseURL string
	Timeout time.Duration
}

// LoanAdminClient implements port.CatalogClient against the loan
// administration service.
type LoanAdminClient struct {
	cfg    LoanAdminConfig
	client *http.Client
	logger *slog.Logger
}

func NewLoanAdminClient(cfg LoanAdminConfig, logger *slog.Logger) *LoanAdminClient {
	return &LoanAdminClient{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

// Upstream wire representations. Field names follow the admin service's
// contract, not ours.

type loanProductPayload struct {
	IDLoan      int    `json:"idLoan"`
	LabelLoan   string `json:"labelLoan"`
	ProductLoan string `json:"productLoan"`
}

type loanParametersPayload struct {
	AnalysisCommission              float64         `json:"analysisCommission"`
	PaymentOrderCommission          float64         `json:"paymentOrderCommission"`
	MonthlyCurrentAccountCommission float64         `json:"monthlyCurrentAccountCommission"`
	AssessmentFee                   float64         `json:"assessmentFee"`
	PostGrantCommission             float64         `json:"postGrantCommission"`
	BuildingPADInsurancePremiumRate decimal.Decimal `json:"buildingPADInsurancePremiumRateEuro"`
	BuildingInsurancePremiumRate    decimal.Decimal `json:"buildingInsurancePremiumRate"`
	LifeInsurance                   decimal.Decimal `json:"lifeInsurance"`
	IRCC                            float64         `json:"ircc"`
	AssessmentFeeDescription        string          `json:"assesmentFeeDescription"`
	PostGrantCommissionDescription  string          `json:"postGrantCommissionDescription"`
	FngcimmCommissionDescription    string          `json:"fngcimmCommissionDescription"`
	EarlyRepaymentDescription       string          `json:"earlyRepaymentCommissionDescription"`
	MonthlyInsuranceCostDescription string          `json:"monthlyInsuranceCostCalculationFormulaDescription"`
	InterestRateDescription         string          `json:"interestRateDescription"`
}

type loanInterestRatePayload struct {
	InterestRate     float64 `json:"interestRate"`
	InterestRateType string  `json:"interestRateType"`
	Margin           float64 `json:"margin"`
	Year             int     `json:"year"`
}

type districtPayload struct {
	County string `json:"county"`
	City   string `json:"city"`
	Zone   int    `json:"zone"`
}

type discountPayload struct {
	DiscountName  string  `json:"discountName"`
	DiscountValue float64 `json:"discountValue"`
}

func (c *LoanAdminClient) Product(ctx context.Context, code string) (model.ProductInfo, error) {
	q := url.Values{}
	q.Set("productCode", code)

	var payload loanProductPayload
	if err := c.get(ctx, "/v1/product", q, &payload); err != nil {
		return model.ProductInfo{}, err
	}
	return model.ProductInfo{ID: payload.IDLoan, Code: payload.ProductLoan, Label: payload.LabelLoan}, nil
}

func (c *LoanAdminClient) Parameters(ctx context.Context, productID int, ownClient bool, currency string, shape valueobject.RateShape, digital bool) (model.LoanParameters, error) {
	q := url.Values{}
	q.Set("fkLoanProduct", strconv.Itoa(productID))
	q.Set("ourClient", strconv.FormatBool(ownClient))
	q.Set("currency", currency)
	q.Set("interestRateType", shape.String())
	q.Set("isDigital", strconv.FormatBool(digital))

	var payload loanParametersPayload
	if err := c.get(ctx, "/v1/get-all-parameters/", q, &payload); err != nil {
		return model.LoanParameters{}, err
	}
	return model.LoanParameters{
		AnalysisCommission:           decimal.NewFromFloat(payload.AnalysisCommission),
		PaymentOrderCommission:       decimal.NewFromFloat(payload.PaymentOrderCommission),
		MonthlyAccountCommission:     decimal.NewFromFloat(payload.MonthlyCurrentAccountCommission),
		AssessmentFee:                decimal.NewFromFloat(payload.AssessmentFee),
		PostGrantCommission:          decimal.NewFromFloat(payload.PostGrantCommission),
		BuildingPADPremium:           payload.BuildingPADInsurancePremiumRate,
		BuildingInsurancePremiumRate: payload.BuildingInsurancePremiumRate,
		LifeInsuranceRate:            payload.LifeInsurance,
		IRCC:                         payload.IRCC,
		Descriptions: model.CommissionDescriptions{
			AssessmentFee:              payload.AssessmentFeeDescription,
			GrantingFee:                payload.PostGrantCommissionDescription,
			GuaranteePromiseCommission: payload.FngcimmCommissionDescription,
			EarlyRepaymentCommission:   payload.EarlyRepaymentDescription,
			InsuranceCostFormula:       payload.MonthlyInsuranceCostDescription,
			InterestRateDescription:    payload.InterestRateDescription,
		},
	}, nil
}

func (c *LoanAdminClient) InterestRates(ctx context.Context, productID int, ownClient, digital bool) ([]model.RateRow, error) {
	q := url.Values{}
	q.Set("fkLoanProduct", strconv.Itoa(productID))
	q.Set("ourClient", strconv.FormatBool(ownClient))
	q.Set("isDigital", strconv.FormatBool(digital))

	var payload []loanInterestRatePayload
	if err := c.get(ctx, "/v1/get-loan-interest-rates/", q, &payload); err != nil {
		return nil, err
	}

	rows := make([]model.RateRow, 0, len(payload))
	for _, p := range payload {
		kind := model.RateRowVariable
		if p.InterestRateType == "FIXED" {
			kind = model.RateRowFixed
		}
		rows = append(rows, model.RateRow{
			YearBucket: p.Year,
			Kind:       kind,
			Rate:       p.InterestRate,
			Margin:     p.Margin,
		})
	}
	return rows, nil
}

func (c *LoanAdminClient) Districts(ctx context.Context) ([]model.District, error) {
	var payload []districtPayload
	if err := c.get(ctx, "/v1/districts", nil, &payload); err != nil {
		return nil, err
	}

	districts := make([]model.District, 0, len(payload))
	for _, p := range payload {
		districts = append(districts, model.District{City: p.City, County: p.County, Zone: p.Zone})
	}
	return districts, nil
}

func (c *LoanAdminClient) LTV(ctx context.Context, amount float64, owner bool, zone, productID int) (int, error) {
	q := url.Values{}
	q.Set("amount", strconv.FormatFloat(amount, 'f', -1, 64))
	q.Set("isOwner", strconv.FormatBool(owner))
	q.Set("financingZone", strconv.Itoa(zone))
	q.Set("idLoan", strconv.Itoa(productID))

	var ltv int
	if err := c.get(ctx, "/v1/ltv", q, &ltv); err != nil {
		return 0, err
	}
	return ltv, nil
}

func (c *LoanAdminClient) Discounts(ctx context.Context, productID int) ([]model.DiscountEntry, error) {
	q := url.Values{}
	q.Set("idLoan", strconv.Itoa(productID))

	var payload []discountPayload
	if err := c.get(ctx, "/v1/discounts", q, &payload); err != nil {
		return nil, err
	}

	entries := make([]model.DiscountEntry, 0, len(payload))
	for _, p := range payload {
		entries = append(entries, model.DiscountEntry{Name: p.DiscountName, Value: p.DiscountValue})
	}
	return entries, nil
}

func (c *LoanAdminClient) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.cfg.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request %s: %w", path, err)
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
		return fmt.Errorf("call loan admin %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("loan admin call failed", "path", path, "status", resp.StatusCode)
		return fmt.Errorf("loan admin %s: unexpected status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode loan admin %s response: %w", path, err)
	}
	return nil
}
