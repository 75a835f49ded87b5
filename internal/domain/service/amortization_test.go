package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omnibank/mortgage-service/internal/domain/model"
	"github.com/omnibank/mortgage-service/internal/domain/valueobject"
	"github.com/omnibank/mortgage-service/pkg/money"
)

func scheduleInputs() ScheduleInputs {
	return ScheduleInputs{
		Currency:                 money.RON,
		Principal:                decimal.NewFromInt(40000),
		TenorMonths:              240,
		InstallmentType:          valueobject.InstallmentTypeEqual,
		Rate:                     6.75,
		VariableRate:             6.75,
		AnalysisCommission:       decimal.NewFromInt(500),
		MonthlyAccountCommission: decimal.NewFromInt(5),
		BuildingPADPremium:       decimal.RequireFromString("99.54"),
		LifeInsuranceRate:        decimal.RequireFromString("0.026"),
	}
}

func TestBuildSchedule_DisbursementRow(t *testing.T) {
	entries, _ := BuildSchedule(scheduleInputs())
	require.Len(t, entries, 241)

	first := entries[0]
	assert.Equal(t, 0, first.Month)
	assert.Equal(t, "500.00", first.Fee.Amount().StringFixed(2))
	assert.Equal(t, "500.00", first.TotalPayment.Amount().StringFixed(2))
	assert.Equal(t, "40500.00", first.RemainingBalance.Amount().StringFixed(2))
	assert.True(t, first.ReimbursedCapital.Amount().IsZero())
	assert.True(t, first.Interest.Amount().IsZero())
	assert.True(t, first.Installment.Amount().IsZero())
}

func TestBuildSchedule_MonthOneAnnuity(t *testing.T) {
	entries, _ := BuildSchedule(scheduleInputs())

	m1 := entries[1]
	assert.Equal(t, "80.13", m1.ReimbursedCapital.Amount().StringFixed(2))
	assert.Equal(t, "227.81", m1.Interest.Amount().StringFixed(2))
	assert.Equal(t, "307.95", m1.Installment.Amount().StringFixed(2))
	assert.Equal(t, "5.00", m1.Fee.Amount().StringFixed(2))
	assert.Equal(t, "312.95", m1.TotalPayment.Amount().StringFixed(2))
}

func TestBuildSchedule_AmortizesToZero(t *testing.T) {
	entries, _ := BuildSchedule(scheduleInputs())

	terminal := entries[len(entries)-1].RemainingBalance.Amount()
	assert.True(t, terminal.Abs().LessThan(decimal.NewFromFloat(0.5)),
		"terminal balance %s should be zero within rounding drift", terminal)

	repaid := decimal.Zero
	for _, e := range entries {
		repaid = repaid.Add(e.ReimbursedCapital.Amount())
	}
	diff := repaid.Sub(decimal.NewFromInt(40500)).Abs()
	assert.True(t, diff.LessThan(decimal.NewFromFloat(0.5)),
		"capital repaid %s should match the financed amount", repaid)
}

func TestBuildSchedule_EqualInstallmentsAreConstant(t *testing.T) {
	entries, _ := BuildSchedule(scheduleInputs())

	first := entries[1].Installment.Amount()
	cent := decimal.NewFromFloat(0.01)
	for _, e := range entries[2:] {
		diff := e.Installment.Amount().Sub(first).Abs()
		assert.True(t, diff.LessThanOrEqual(cent),
			"month %d installment %s drifts from %s", e.Month, e.Installment.Amount(), first)
	}
}

func TestBuildSchedule_DecreasingPrincipalIsConstant(t *testing.T) {
	in := scheduleInputs()
	in.InstallmentType = valueobject.InstallmentTypeDecreasing
	entries, _ := BuildSchedule(in)

	// 40500 / 240 terminates, so every month repays exactly this share.
	for _, e := range entries[1:] {
		assert.Equal(t, "168.75", e.ReimbursedCapital.Amount().StringFixed(2), "month %d", e.Month)
	}

	prev := entries[1].Installment.Amount()
	for _, e := range entries[2:] {
		assert.True(t, e.Installment.Amount().LessThan(prev), "month %d installment should decrease", e.Month)
		prev = e.Installment.Amount()
	}
}

func TestBuildSchedule_FeeAnniversaries(t *testing.T) {
	entries, _ := BuildSchedule(scheduleInputs())

	assert.Equal(t, "5.00", entries[1].Fee.Amount().StringFixed(2))
	assert.Equal(t, "5.00", entries[12].Fee.Amount().StringFixed(2))
	assert.Equal(t, "104.54", entries[13].Fee.Amount().StringFixed(2))
	assert.Equal(t, "5.00", entries[14].Fee.Amount().StringFixed(2))
	assert.Equal(t, "104.54", entries[25].Fee.Amount().StringFixed(2))
}

func TestBuildSchedule_LifeInsuranceOptIn(t *testing.T) {
	base := scheduleInputs()
	without, _ := BuildSchedule(base)

	base.HasInsurance = true
	with, insurance := BuildSchedule(base)

	assert.Equal(t, "10.53", insurance.Value.Amount().StringFixed(2))
	assert.Equal(t, model.FrequencyMonthly, insurance.Frequency)

	diff := with[1].TotalPayment.Amount().Sub(without[1].TotalPayment.Amount())
	assert.Equal(t, "10.53", diff.StringFixed(2))
}

func TestBuildSchedule_MixedRateSwitchesPhase(t *testing.T) {
	in := scheduleInputs()
	in.TenorMonths = 264
	in.FixedMonths = 36
	in.Rate = 6.75
	in.VariableRate = 5.66
	entries, _ := BuildSchedule(in)
	require.Len(t, entries, 265)

	fixedPhase := entries[36].Installment.Amount()
	variablePhase := entries[37].Installment.Amount()
	assert.True(t, variablePhase.LessThan(fixedPhase),
		"installment should drop when the cheaper variable rate starts")

	terminal := entries[len(entries)-1].RemainingBalance.Amount()
	assert.True(t, terminal.Abs().LessThan(decimal.NewFromFloat(0.5)))
}

func TestProbeMonthOnePayment(t *testing.T) {
	in := scheduleInputs()

	base := ProbeMonthOnePayment(in, 6.75)
	assert.Equal(t, "312.95", base.StringFixed(2))

	again := ProbeMonthOnePayment(in, 6.75)
	assert.True(t, base.Equal(again), "probes must be repeatable")

	cheaper := ProbeMonthOnePayment(in, 6.55)
	assert.True(t, cheaper.LessThan(base))

	// The probe runs on a copy; the caller's rate is untouched.
	assert.Equal(t, 6.75, in.Rate)
}

func TestMonthlyInstallmentFigures_SingleRate(t *testing.T) {
	in := scheduleInputs()
	entries, insurance := BuildSchedule(in)

	figures := MonthlyInstallmentFigures(entries, valueobject.SingleRate(), false, insurance.Value.Amount())
	assert.True(t, figures.AmountFixedInterest.IsZero())
	assert.Equal(t, "312.95", figures.AmountVariableInterest.StringFixed(2))
}

func TestMonthlyInstallmentFigures_MixedRate(t *testing.T) {
	in := scheduleInputs()
	in.TenorMonths = 264
	in.FixedMonths = 36
	in.VariableRate = 5.66
	entries, insurance := BuildSchedule(in)

	shape := valueobject.MixedRate(3)
	figures := MonthlyInstallmentFigures(entries, shape, false, insurance.Value.Amount())
	assert.False(t, figures.AmountFixedInterest.IsZero())
	assert.False(t, figures.AmountVariableInterest.IsZero())
	assert.True(t, figures.AmountVariableInterest.LessThan(figures.AmountFixedInterest))
}

func TestMonthlyInstallmentFigures_InsuranceExcluded(t *testing.T) {
	in := scheduleInputs()
	in.HasInsurance = true
	entries, insurance := BuildSchedule(in)

	figures := MonthlyInstallmentFigures(entries, valueobject.SingleRate(), true, insurance.Value.Amount())
	withInsurance := entries[1].TotalPayment.Amount()
	assert.True(t, figures.AmountVariableInterest.LessThan(withInsurance))
	assert.Equal(t, "312.95", figures.AmountVariableInterest.StringFixed(2))
}
