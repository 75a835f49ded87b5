package service

import (
	"github.com/shopspring/decimal"

	"github.com/omnibank/mortgage-service/internal/domain/model"
	"github.com/omnibank/mortgage-service/internal/domain/valueobject"
)

// AttributeDiscounts measures the month-1 installment saving of each
// discount by finite difference: a baseline probe at the undiscounted rate,
// then one probe per discount with only that discount's reduction applied.
// For mixed-rate loans the probes are repeated with the variable-phase rate
// to measure the saving after the fixed period ends.
//
// The rate reduction is linear but its currency impact is not, so the impact
// has to be measured against the baseline rather than derived analytically.
func AttributeDiscounts(in ScheduleInputs, rates model.ResolvedRates, shape valueobject.RateShape) (fixed, variable model.DiscountValues) {
	fixed = probeDiscountValues(in, rates, rates.Defaults.NominalRate)
	if shape.IsMixed() {
		variable = probeDiscountValues(in, rates, rates.Defaults.VariableRate)
	}
	return fixed, variable
}

func probeDiscountValues(in ScheduleInputs, rates model.ResolvedRates, baseRate float64) model.DiscountValues {
	base := ProbeMonthOnePayment(in, baseRate)

	value := func(kind valueobject.DiscountKind) decimal.Decimal {
		points := rates.DiscountValue(kind.CatalogName())
		if points == 0 {
			return decimal.Zero
		}
		return base.Sub(ProbeMonthOnePayment(in, baseRate-points))
	}

	return model.DiscountValues{
		DownPayment:   value(valueobject.DiscountDownPayment),
		GreenHouse:    value(valueobject.DiscountGreenHouse),
		LifeInsurance: value(valueobject.DiscountLifeInsurance),
		SalaryInBank:  value(valueobject.DiscountSalaryClient),
	}
}

// TotalDiscounts aggregates the discounts actually applied to the quote:
// the combined month-1 saving and the combined saving projected over the
// loan lifetime. For mixed-rate loans the fixed-phase saving covers the
// fixed months and the variable-phase saving the remainder.
func TotalDiscounts(
	req model.QuoteRequest,
	fixed, variable model.DiscountValues,
	downPaymentApplied bool,
	tenorMonths, fixedMonths int,
) model.TotalDiscountValues {
	installment := decimal.Zero
	amount := decimal.Zero

	lifetime := func(kind valueobject.DiscountKind) decimal.Decimal {
		if fixedMonths > 0 {
			return fixed.ForKind(kind).Mul(decimal.NewFromInt(int64(fixedMonths))).
				Add(variable.ForKind(kind).Mul(decimal.NewFromInt(int64(tenorMonths - fixedMonths))))
		}
		return fixed.ForKind(kind).Mul(decimal.NewFromInt(int64(tenorMonths)))
	}

	applied := chosenDiscounts(req)
	if downPaymentApplied {
		applied = append(applied, valueobject.DiscountDownPayment)
	}
	for _, kind := range applied {
		installment = installment.Add(fixed.ForKind(kind))
		amount = amount.Add(lifetime(kind))
	}

	return model.TotalDiscountValues{
		TotalDiscountInstallment: installment,
		TotalDiscountAmount:      amount,
	}
}
