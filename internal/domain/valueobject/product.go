package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// Product – immutable value object
// ---------------------------------------------------------------------------

// Product identifies one of the four mortgage products the calculator quotes.
type Product struct {
	value string
}

const (
	productCasaTa        = "CasaTa"
	productConstructie   = "Constructie"
	productCreditVenit   = "CreditVenit"
	productFlexiIntegral = "FlexiIntegral"
)

var (
	ProductCasaTa        = Product{value: productCasaTa}
	ProductConstructie   = Product{value: productConstructie}
	ProductCreditVenit   = Product{value: productCreditVenit}
	ProductFlexiIntegral = Product{value: productFlexiIntegral}
)

var validProducts = map[string]Product{
	productCasaTa:        ProductCasaTa,
	productConstructie:   ProductConstructie,
	productCreditVenit:   ProductCreditVenit,
	productFlexiIntegral: ProductFlexiIntegral,
}

// NewProduct creates a Product from a raw product code.
func NewProduct(s string) (Product, error) {
	v, ok := validProducts[s]
	if !ok {
		return Product{}, fmt.Errorf("invalid product code: %q", s)
	}
	return v, nil
}

// Code returns the product code.
func (p Product) Code() string { return p.value }

// String returns the product code.
func (p Product) String() string { return p.value }

// IsZero returns true if the product has not been initialised.
func (p Product) IsZero() bool { return p.value == "" }

// Equal returns true when both products carry the same code.
func (p Product) Equal(other Product) bool { return p.value == other.value }
