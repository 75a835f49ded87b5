package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omnibank/mortgage-service/internal/apperror"
	"github.com/omnibank/mortgage-service/internal/domain/model"
	"github.com/omnibank/mortgage-service/pkg/money"
)

// annuityFlows builds a plain cash-flow series: no payment at disbursement,
// then a constant payment per month.
func annuityFlows(months int, payment string) []decimal.Decimal {
	flows := make([]decimal.Decimal, months+1)
	p := decimal.RequireFromString(payment)
	for i := 1; i <= months; i++ {
		flows[i] = p
	}
	return flows
}

func TestCashFlows(t *testing.T) {
	entries, _ := BuildSchedule(scheduleInputs())
	flows := CashFlows(entries)

	require.Len(t, flows, len(entries))
	assert.Equal(t, "500.00", flows[0].StringFixed(2))
	assert.Equal(t, "312.95", flows[1].StringFixed(2))
}

func TestAnnualPercentageRate_FeeFreeLoan(t *testing.T) {
	// 1000 over 12 months at 1% per month pays 88.85; the effective annual
	// rate of that series is (1.01^12 - 1), modulo payment rounding.
	flows := annuityFlows(12, "88.85")

	apr, err := AnnualPercentageRate(flows, decimal.NewFromInt(1000), model.LoanParameters{}, decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, "12.68", apr.StringFixed(2))
}

func TestAnnualPercentageRate_FeesRaiseTheRate(t *testing.T) {
	flows := annuityFlows(12, "88.85")
	params := model.LoanParameters{
		AssessmentFee:       decimal.NewFromInt(30),
		PostGrantCommission: decimal.NewFromInt(10),
	}

	bare, err := AnnualPercentageRate(flows, decimal.NewFromInt(1000), model.LoanParameters{}, decimal.Zero)
	require.NoError(t, err)
	loaded, err := AnnualPercentageRate(flows, decimal.NewFromInt(1000), params, decimal.Zero)
	require.NoError(t, err)

	assert.True(t, loaded.GreaterThan(bare))
}

func TestAnnualPercentageRate_FullSchedule(t *testing.T) {
	entries, _ := BuildSchedule(scheduleInputs())
	flows := CashFlows(entries)
	params := model.LoanParameters{
		AssessmentFee:       decimal.RequireFromString("533.037"),
		PostGrantCommission: decimal.NewFromInt(10),
		BuildingPADPremium:  decimal.RequireFromString("99.54"),
	}

	apr, err := AnnualPercentageRate(flows, decimal.NewFromInt(40500), params, decimal.Zero)
	require.NoError(t, err)

	// Commissions push the effective rate above the nominal 6.75.
	assert.True(t, apr.GreaterThan(decimal.RequireFromString("6.75")))
	assert.True(t, apr.LessThan(decimal.NewFromInt(10)))
}

func TestAnnualPercentageRate_NoSolution(t *testing.T) {
	// All-positive flows have no internal rate of return.
	flows := annuityFlows(12, "88.85")

	_, err := AnnualPercentageRate(flows, decimal.Zero, model.LoanParameters{}, decimal.Zero)
	require.Error(t, err)
	assert.Equal(t, apperror.KindInternal, apperror.KindOf(err))
}

func TestTotalCost(t *testing.T) {
	flows := []decimal.Decimal{
		decimal.NewFromInt(500),
		decimal.NewFromInt(100),
		decimal.NewFromInt(100),
		decimal.NewFromInt(100),
	}
	params := model.LoanParameters{
		AssessmentFee:       decimal.NewFromInt(10),
		PostGrantCommission: decimal.NewFromInt(5),
		BuildingPADPremium:  decimal.NewFromInt(2),
	}

	total := TotalCost(flows, params, decimal.NewFromInt(3), money.RON)
	assert.Equal(t, "320", total.Amount().String())
	assert.Equal(t, money.RON, total.Currency())
}

func TestTotalCost_TruncatesToWholeUnits(t *testing.T) {
	flows := []decimal.Decimal{
		decimal.Zero,
		decimal.RequireFromString("100.40"),
		decimal.RequireFromString("100.40"),
		decimal.RequireFromString("100.40"),
	}

	total := TotalCost(flows, model.LoanParameters{}, decimal.Zero, money.RON)
	assert.Equal(t, "301", total.Amount().String())
}
