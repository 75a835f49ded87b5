package service

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/omnibank/mortgage-service/internal/apperror"
	"github.com/omnibank/mortgage-service/internal/domain/model"
	"github.com/omnibank/mortgage-service/pkg/money"
)

const (
	irrTolerance     = 1e-9
	irrMaxIterations = 100
	irrLowerBound    = -0.9999
	irrUpperBound    = 10.0
)

// CashFlows extracts the total-payment column of a schedule: the monthly
// cash-flow series the APR is computed from.
func CashFlows(entries []model.RepaymentPlanEntry) []decimal.Decimal {
	flows := make([]decimal.Decimal, len(entries))
	for i, e := range entries {
		flows[i] = e.TotalPayment.Amount()
	}
	return flows
}

// oneOffCommissions are the commissions paid once at disbursement, folded
// into the first cash flow and the total cost.
func oneOffCommissions(params model.LoanParameters, buildingInsurancePremium decimal.Decimal) decimal.Decimal {
	return params.AssessmentFee.
		Add(params.PaymentOrderCommission).
		Add(buildingInsurancePremium).
		Add(params.BuildingPADPremium).
		Add(params.PostGrantCommission)
}

// AnnualPercentageRate solves the monthly internal rate of return of the
// cash-flow series and annualizes it. The first flow nets the disbursed
// principal against the one-off commissions; the remaining flows are the
// monthly payments as-is.
func AnnualPercentageRate(
	flows []decimal.Decimal,
	disbursedWithFee decimal.Decimal,
	params model.LoanParameters,
	buildingInsurancePremium decimal.Decimal,
) (decimal.Decimal, error) {
	series := make([]float64, len(flows))
	for i, f := range flows {
		if i == 0 {
			series[i] = f.Sub(disbursedWithFee).
				Add(oneOffCommissions(params, buildingInsurancePremium)).
				InexactFloat64()
		} else {
			series[i] = f.InexactFloat64()
		}
	}

	rate, err := internalRateOfReturn(series)
	if err != nil {
		return decimal.Decimal{}, err
	}

	annualized := decimal.NewFromFloat(math.Pow(1+rate, 12) - 1).Mul(d100)
	return money.RoundHalfDown(annualized, 2), nil
}

// TotalCost is the sum of every payment after disbursement plus the one-off
// commissions, truncated to whole currency units.
func TotalCost(
	flows []decimal.Decimal,
	params model.LoanParameters,
	buildingInsurancePremium decimal.Decimal,
	currency money.Currency,
) money.Money {
	total := decimal.Zero
	for _, f := range flows[1:] {
		total = total.Add(f)
	}
	total = total.Add(oneOffCommissions(params, buildingInsurancePremium))
	return money.New(money.RoundDown(total, 0), currency)
}

// internalRateOfReturn finds the periodic rate with zero net present value.
// Newton's method seeded at zero converges in a handful of iterations for
// realistic loan series; a bisection over a bounded rate range covers the
// cases where the derivative misbehaves. Non-convergence is a fatal error
// for the request, the APR is mandatory output.
func internalRateOfReturn(flows []float64) (float64, error) {
	rate := 0.0
	for i := 0; i < irrMaxIterations; i++ {
		npv, derivative := npvWithDerivative(flows, rate)
		if math.Abs(npv) < irrTolerance {
			return rate, nil
		}
		if derivative == 0 || math.IsNaN(derivative) {
			break
		}
		next := rate - npv/derivative
		if next <= irrLowerBound || next >= irrUpperBound || math.IsNaN(next) {
			break
		}
		if math.Abs(next-rate) < irrTolerance {
			return next, nil
		}
		rate = next
	}
	return bisectIRR(flows)
}

func bisectIRR(flows []float64) (float64, error) {
	lo, hi := irrLowerBound, irrUpperBound
	npvLo, _ := npvWithDerivative(flows, lo)
	npvHi, _ := npvWithDerivative(flows, hi)
	if npvLo*npvHi > 0 {
		return 0, apperror.Internal("IRR does not converge", nil)
	}

	for i := 0; i < 200; i++ {
		mid := (lo + hi) / 2
		npvMid, _ := npvWithDerivative(flows, mid)
		if math.Abs(npvMid) < irrTolerance || hi-lo < irrTolerance {
			return mid, nil
		}
		if npvLo*npvMid < 0 {
			hi = mid
		} else {
			lo, npvLo = mid, npvMid
		}
	}
	return 0, apperror.Internal("IRR does not converge", nil)
}

func npvWithDerivative(flows []float64, rate float64) (npv, derivative float64) {
	for i, f := range flows {
		discount := math.Pow(1+rate, float64(i))
		npv += f / discount
		if i > 0 {
			derivative -= float64(i) * f / (discount * (1 + rate))
		}
	}
	return npv, derivative
}
