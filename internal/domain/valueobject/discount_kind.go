package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// DiscountKind – closed set of rate discounts
// ---------------------------------------------------------------------------

// DiscountKind names one of the rate discounts the bank offers. The upstream
// discount catalog keys entries by free-form name; each kind carries the
// catalog name it maps to so lookups cannot silently miss on a typo.
type DiscountKind struct {
	value       string
	catalogName string
}

var (
	// DiscountDownPayment applies when the borrower's own contribution
	// exceeds the reference loan-to-value threshold.
	DiscountDownPayment = DiscountKind{value: "DOWN_PAYMENT", catalogName: "avans"}
	// DiscountSalaryClient applies when the borrower receives their salary
	// in an account with the bank.
	DiscountSalaryClient = DiscountKind{value: "SALARY_CLIENT", catalogName: "client"}
	// DiscountGreenHouse applies to energy-efficient properties.
	DiscountGreenHouse = DiscountKind{value: "GREEN_HOUSE", catalogName: "green house"}
	// DiscountLifeInsurance applies when the borrower attaches life
	// insurance to the loan.
	DiscountLifeInsurance = DiscountKind{value: "LIFE_INSURANCE", catalogName: "asigurare"}
)

// DiscountKinds lists every discount kind in a stable order.
func DiscountKinds() []DiscountKind {
	return []DiscountKind{DiscountDownPayment, DiscountSalaryClient, DiscountGreenHouse, DiscountLifeInsurance}
}

// CatalogName returns the name the upstream discount catalog uses for this
// kind.
func (d DiscountKind) CatalogName() string { return d.catalogName }

// String returns the symbolic name of the kind.
func (d DiscountKind) String() string { return d.value }

// IsZero returns true if the kind has not been initialised.
func (d DiscountKind) IsZero() bool { return d.value == "" }

// Equal returns true when both kinds match.
func (d DiscountKind) Equal(other DiscountKind) bool { return d.value == other.value }

// NewDiscountKind resolves a symbolic name to a DiscountKind.
func NewDiscountKind(s string) (DiscountKind, error) {
	for _, k := range DiscountKinds() {
		if k.value == s {
			return k, nil
		}
	}
	return DiscountKind{}, fmt.Errorf("invalid discount kind: %q", s)
}
