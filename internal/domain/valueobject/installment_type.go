package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// InstallmentType – immutable value object
// ---------------------------------------------------------------------------

// InstallmentType selects the shape of the repayment schedule: a constant
// annuity installment, or a constant principal share with decreasing
// installments.
type InstallmentType struct {
	value string
}

const (
	installmentEqual      = "EQUAL_INSTALLMENTS"
	installmentDecreasing = "DECREASING_INSTALLMENTS"
)

var (
	InstallmentTypeEqual      = InstallmentType{value: installmentEqual}
	InstallmentTypeDecreasing = InstallmentType{value: installmentDecreasing}
)

var validInstallmentTypes = map[string]InstallmentType{
	installmentEqual:      InstallmentTypeEqual,
	installmentDecreasing: InstallmentTypeDecreasing,
}

// NewInstallmentType creates an InstallmentType from its wire value.
func NewInstallmentType(s string) (InstallmentType, error) {
	v, ok := validInstallmentTypes[s]
	if !ok {
		return InstallmentType{}, fmt.Errorf("invalid installment type: %q", s)
	}
	return v, nil
}

// String returns the wire value.
func (t InstallmentType) String() string { return t.value }

// IsZero returns true if the type has not been initialised.
func (t InstallmentType) IsZero() bool { return t.value == "" }

// Equal returns true when both types carry the same value.
func (t InstallmentType) Equal(other InstallmentType) bool { return t.value == other.value }
