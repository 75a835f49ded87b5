package service

import (
	"github.com/omnibank/mortgage-service/internal/apperror"
	"github.com/omnibank/mortgage-service/internal/domain/model"
	"github.com/omnibank/mortgage-service/internal/domain/valueobject"
)

// ResolveRates turns the product's interest-rate table into the undiscounted
// rate triple for the requested shape.
//
// Single shape: the variable row applies for the whole tenor, so all three
// triple fields come from it and there is no fixed phase. Mixed shape: the
// fixed and variable rows for the requested year bucket are both required.
func ResolveRates(rows []model.RateRow, shape valueobject.RateShape, catalog []model.DiscountEntry) (model.ResolvedRates, error) {
	if shape.IsMixed() {
		fixed, ok := findRow(rows, model.RateRowFixed, shape.FixedPeriodYears())
		if !ok {
			return model.ResolvedRates{}, apperror.NotFound("no fixed rate found for a %d year period", shape.FixedPeriodYears())
		}
		variable, ok := findRow(rows, model.RateRowVariable, shape.FixedPeriodYears())
		if !ok {
			return model.ResolvedRates{}, apperror.NotFound("no variable rate found for a %d year period", shape.FixedPeriodYears())
		}

		return model.ResolvedRates{
			Defaults: model.RateTriple{
				NominalRate:  fixed.Rate,
				BankMargin:   fixed.Margin,
				VariableRate: variable.Rate,
			},
			FixedMonths: shape.FixedMonths(),
			Catalog:     catalog,
		}, nil
	}

	for _, row := range rows {
		if row.Kind == model.RateRowVariable {
			return model.ResolvedRates{
				Defaults: model.RateTriple{
					NominalRate:  row.Rate,
					BankMargin:   row.Margin,
					VariableRate: row.Rate,
				},
				Catalog: catalog,
			}, nil
		}
	}
	return model.ResolvedRates{}, apperror.NotFound("no variable rate found")
}

func findRow(rows []model.RateRow, kind model.RateRowKind, yearBucket int) (model.RateRow, bool) {
	for _, row := range rows {
		if row.Kind == kind && row.YearBucket == yearBucket {
			return row, true
		}
	}
	return model.RateRow{}, false
}

// chosenDiscounts lists the discount kinds the applicant opted into through
// request flags. The down-payment discount is gated separately by each
// product strategy.
func chosenDiscounts(req model.QuoteRequest) []valueobject.DiscountKind {
	var kinds []valueobject.DiscountKind
	if req.SpecialOffers.SalaryInBank {
		kinds = append(kinds, valueobject.DiscountSalaryClient)
	}
	if req.SpecialOffers.GreenHouse {
		kinds = append(kinds, valueobject.DiscountGreenHouse)
	}
	if req.HasInsurance {
		kinds = append(kinds, valueobject.DiscountLifeInsurance)
	}
	return kinds
}

// ApplyChosenDiscounts reduces the default triple by every discount the
// applicant opted into. Catalog entries missing a kind contribute zero.
func ApplyChosenDiscounts(rates model.ResolvedRates, req model.QuoteRequest) model.RateTriple {
	triple := rates.Defaults
	for _, kind := range chosenDiscounts(req) {
		triple = triple.Discounted(rates.DiscountValue(kind.CatalogName()))
	}
	return triple
}
