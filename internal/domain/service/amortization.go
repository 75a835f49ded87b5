package service

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/omnibank/mortgage-service/internal/domain/model"
	"github.com/omnibank/mortgage-service/internal/domain/valueobject"
	"github.com/omnibank/mortgage-service/pkg/money"
)

var (
	d100  = decimal.NewFromInt(100)
	d1200 = decimal.NewFromInt(1200)
)

// ScheduleInputs are the resolved parameters of one schedule computation.
// Principal is the disbursed amount before the analysis commission; the
// commission is financed, so every balance figure is based on
// Principal + AnalysisCommission.
type ScheduleInputs struct {
	Currency        money.Currency
	Principal       decimal.Decimal
	TenorMonths     int
	InstallmentType valueobject.InstallmentType
	HasInsurance    bool

	// FixedMonths is zero for the single-rate shape. Rate is the nominal
	// (fixed-phase) rate, VariableRate applies after the fixed period.
	FixedMonths  int
	Rate         float64
	VariableRate float64

	AnalysisCommission       decimal.Decimal
	MonthlyAccountCommission decimal.Decimal
	BuildingInsurancePremium decimal.Decimal
	BuildingPADPremium       decimal.Decimal
	LifeInsuranceRate        decimal.Decimal
}

func (in ScheduleInputs) totalWithFee() decimal.Decimal {
	return amountWithFee(in.Principal, in.AnalysisCommission)
}

func amountWithFee(amount, analysisCommission decimal.Decimal) decimal.Decimal {
	return money.RoundHalfDown(amount.Add(analysisCommission), 2)
}

// scheduleState is the accumulator threaded through one engine run. A state
// is created per run and must never be shared across runs or requests; the
// discount probes in particular each get a fresh one.
type scheduleState struct {
	previousBalance     decimal.Decimal
	balance             decimal.Decimal
	referenceBalance    decimal.Decimal
	hasReferenceBalance bool
	principal           decimal.Decimal
	monthlyInsurance    decimal.Decimal
}

// BuildSchedule runs the month recurrence over the full tenor and returns
// one entry per month, 0..TenorMonths. Row 0 is the disbursement row. The
// second return value is the flat monthly life-insurance premium recorded
// during the run.
func BuildSchedule(in ScheduleInputs) ([]model.RepaymentPlanEntry, model.LifeInsurance) {
	entries, insurance := buildEntries(in, in.TenorMonths)
	return entries, model.LifeInsurance{
		Value:     money.New(insurance, in.Currency),
		Frequency: model.FrequencyMonthly,
	}
}

// ProbeMonthOnePayment runs the two-month probe used for discount
// attribution: a fresh run over months 0..1 with the given fixed-phase rate,
// returning the month-1 total payment.
func ProbeMonthOnePayment(in ScheduleInputs, rate float64) decimal.Decimal {
	probe := in
	probe.Rate = rate
	entries, _ := buildEntries(probe, 1)
	return entries[1].TotalPayment.Amount()
}

func buildEntries(in ScheduleInputs, lastMonth int) ([]model.RepaymentPlanEntry, decimal.Decimal) {
	st := &scheduleState{}
	entries := make([]model.RepaymentPlanEntry, 0, lastMonth+1)
	for month := 0; month <= lastMonth; month++ {
		entries = append(entries, step(month, in, st))
	}
	return entries, st.monthlyInsurance
}

// step computes one schedule row. The order matters: principal first, then
// the balance decrement, then interest off the previous balance, then fee
// and totals.
func step(month int, in ScheduleInputs, st *scheduleState) model.RepaymentPlanEntry {
	var principal decimal.Decimal
	if in.InstallmentType.Equal(valueobject.InstallmentTypeDecreasing) {
		principal = decreasingPrincipal(month, in, st)
	} else {
		principal = annuityPrincipal(month, in, st)
	}

	balance := advanceBalance(month, in, st)
	interest := monthInterest(month, in, st)
	fee := monthFee(month, in)

	installment := decimal.Zero
	if month != 0 {
		installment = interest.Add(principal)
	}
	total := totalPayment(month, in, st, installment, fee)

	cur := in.Currency
	return model.RepaymentPlanEntry{
		Month:             month,
		ReimbursedCapital: money.New(money.RoundHalfDown(principal, 2), cur),
		RemainingBalance:  money.New(money.RoundHalfDown(balance, 2), cur),
		Interest:          money.New(money.RoundHalfUp(interest, 2), cur),
		Fee:               money.New(money.RoundHalfDown(fee, 2), cur),
		Installment:       money.New(money.RoundHalfUp(installment, 2), cur),
		TotalPayment:      money.New(total, cur),
	}
}

func decreasingPrincipal(month int, in ScheduleInputs, st *scheduleState) decimal.Decimal {
	principal := decimal.Zero
	if month != 0 && month <= in.TenorMonths {
		principal = money.RoundUp(in.totalWithFee().Div(decimal.NewFromInt(int64(in.TenorMonths))), 10)
	}
	st.principal = principal
	return principal
}

func annuityPrincipal(month int, in ScheduleInputs, st *scheduleState) decimal.Decimal {
	amount := in.totalWithFee()

	var principal decimal.Decimal
	switch {
	case month <= in.FixedMonths:
		principal = phasePrincipal(month, in.TenorMonths, amount, in.Rate).Neg()
	case month > in.TenorMonths:
		principal = decimal.Zero
	default:
		rate := in.VariableRate
		if in.FixedMonths == 0 {
			rate = in.Rate
		}
		principal = phasePrincipal(
			month-in.FixedMonths,
			in.TenorMonths-in.FixedMonths,
			referenceBalance(month, amount, in, st),
			rate,
		).Neg()
	}

	st.principal = principal
	return principal
}

// referenceBalance anchors the second annuity phase: at the first variable
// month the outstanding balance is captured and reused for every remaining
// month.
func referenceBalance(month int, amount decimal.Decimal, in ScheduleInputs, st *scheduleState) decimal.Decimal {
	if month == in.FixedMonths+1 {
		st.referenceBalance = st.balance
		st.hasReferenceBalance = true
	}
	if st.hasReferenceBalance {
		return st.referenceBalance
	}
	return amount
}

func phasePrincipal(month, period int, amount decimal.Decimal, rate float64) decimal.Decimal {
	if month == 0 || month > period {
		return decimal.Zero
	}
	return ppmt(month, period, rate, amount)
}

// ppmt is the principal component of a constant annuity payment in the given
// period, negative by spreadsheet convention.
func ppmt(month, period int, rate float64, amount decimal.Decimal) decimal.Decimal {
	monthlyRate, _ := money.RoundUp(decimal.NewFromFloat(rate).Div(d1200), 10).Float64()
	pv := amount.InexactFloat64()

	if monthlyRate == 0 {
		return decimal.NewFromFloat(-pv / float64(period))
	}

	factor := math.Pow(1+monthlyRate, float64(period))
	pmt := -pv * monthlyRate * factor / (factor - 1)

	accrued := math.Pow(1+monthlyRate, float64(month-1))
	remaining := -(pv*accrued + pmt*(accrued-1)/monthlyRate)
	ipmt := remaining * monthlyRate

	return decimal.NewFromFloat(pmt - ipmt)
}

// advanceBalance snapshots the previous balance before decrementing; the
// snapshot feeds the interest computation of the same month (interest
// accrues on the balance entering the month).
func advanceBalance(month int, in ScheduleInputs, st *scheduleState) decimal.Decimal {
	total := in.totalWithFee()

	if month == 1 {
		st.previousBalance = total
	} else {
		st.previousBalance = st.balance
	}

	if month == 0 {
		st.balance = total
	} else {
		st.balance = st.balance.Sub(st.principal)
	}
	return st.balance
}

func monthInterest(month int, in ScheduleInputs, st *scheduleState) decimal.Decimal {
	if month == 0 {
		return decimal.Zero
	}

	rate := in.Rate
	if in.FixedMonths > 0 && month > in.FixedMonths {
		rate = in.VariableRate
	}

	return st.previousBalance.Mul(decimal.NewFromFloat(rate)).Div(d1200)
}

func monthFee(month int, in ScheduleInputs) decimal.Decimal {
	switch {
	case month == 0:
		return in.AnalysisCommission
	case month > in.TenorMonths:
		return decimal.Zero
	default:
		fee := in.MonthlyAccountCommission
		// Building insurance falls due on every 12-month anniversary
		// except the disbursement month itself.
		if (month-1)%12 == 0 && month != 1 {
			fee = fee.Add(in.BuildingPADPremium).Add(in.BuildingInsurancePremium)
		}
		return fee
	}
}

func totalPayment(month int, in ScheduleInputs, st *scheduleState, installment, fee decimal.Decimal) decimal.Decimal {
	if month == 0 {
		return in.AnalysisCommission
	}

	insurance := monthLifeInsurance(month, in)
	st.monthlyInsurance = money.RoundHalfDown(insurance, 2)

	total := installment.Add(fee)
	if in.HasInsurance {
		total = total.Add(insurance)
	}
	return money.RoundHalfDown(total, 2)
}

// monthLifeInsurance is a flat monthly premium on the financed amount. It is
// reported alongside the schedule and only folded into the total payment
// when the borrower opted into insurance.
func monthLifeInsurance(month int, in ScheduleInputs) decimal.Decimal {
	if month > in.TenorMonths {
		return decimal.Zero
	}
	return money.RoundHalfDown(in.LifeInsuranceRate.Div(d100), 6).Mul(in.totalWithFee())
}

// MonthlyInstallmentFigures derives the headline installment per rate phase
// from a full schedule: month 1 for the fixed (or only) phase and the first
// full variable month for mixed-rate loans long enough to have one. The
// reported figures exclude the life-insurance premium.
func MonthlyInstallmentFigures(
	entries []model.RepaymentPlanEntry,
	shape valueobject.RateShape,
	hasInsurance bool,
	monthlyInsurance decimal.Decimal,
) model.MonthlyInstallment {
	installment := entries[1].TotalPayment.Amount()

	variableIdx := shape.FixedMonths() + 2
	if shape.IsMixed() && len(entries) > 37 && variableIdx < len(entries) {
		variable := entries[variableIdx].TotalPayment.Amount()
		if hasInsurance {
			installment = installment.Sub(monthlyInsurance)
			variable = variable.Sub(monthlyInsurance)
		}
		return model.MonthlyInstallment{
			AmountFixedInterest:    money.RoundDown(installment, 2),
			AmountVariableInterest: money.RoundDown(variable, 2),
		}
	}

	if hasInsurance {
		installment = installment.Sub(monthlyInsurance)
	}
	return model.MonthlyInstallment{AmountVariableInterest: money.RoundDown(installment, 2)}
}
