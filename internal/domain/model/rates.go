package model

// RateTriple is the accumulator the discount engine works on: the nominal
// (fixed-phase) rate, the bank margin, and the variable rate that applies
// after the fixed period. Applying a discount subtracts its point value from
// all three fields uniformly.
type RateTriple struct {
	NominalRate  float64
	BankMargin   float64
	VariableRate float64
}

// Discounted returns a copy of the triple with the given point value
// subtracted from every field.
func (t RateTriple) Discounted(points float64) RateTriple {
	return RateTriple{
		NominalRate:  t.NominalRate - points,
		BankMargin:   t.BankMargin - points,
		VariableRate: t.VariableRate - points,
	}
}

// ResolvedRates is the output of the rate resolver: the undiscounted default
// triple, the fixed-phase length in months, and the product's discount
// catalog.
type ResolvedRates struct {
	Defaults    RateTriple
	FixedMonths int
	Catalog     []DiscountEntry
}

// DiscountValue returns the point value of the named catalog entry, zero when
// the catalog has no such entry.
func (r ResolvedRates) DiscountValue(catalogName string) float64 {
	for _, d := range r.Catalog {
		if d.Name == catalogName {
			return d.Value
		}
	}
	return 0
}
