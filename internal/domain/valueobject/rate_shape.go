package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// RateShape – tagged union of the two supported interest-rate regimes
// ---------------------------------------------------------------------------

const (
	rateShapeSingle = "VARIABLE"
	rateShapeMixed  = "MIXED"
)

// RateShape is either a single variable rate for the whole tenor, or a mixed
// rate: fixed for an initial number of years, variable afterwards.
type RateShape struct {
	value            string
	fixedPeriodYears int
}

// SingleRate returns the variable-for-the-whole-tenor shape.
func SingleRate() RateShape {
	return RateShape{value: rateShapeSingle}
}

// MixedRate returns the fixed-then-variable shape. fixedPeriodYears must be
// positive; the caller validates that before building the request.
func MixedRate(fixedPeriodYears int) RateShape {
	return RateShape{value: rateShapeMixed, fixedPeriodYears: fixedPeriodYears}
}

// NewRateShape creates a RateShape from its wire discriminator.
func NewRateShape(kind string, fixedPeriodYears int) (RateShape, error) {
	switch kind {
	case rateShapeSingle:
		return SingleRate(), nil
	case rateShapeMixed:
		return MixedRate(fixedPeriodYears), nil
	default:
		return RateShape{}, fmt.Errorf("invalid interest rate type: %q", kind)
	}
}

// IsMixed reports whether the shape has an initial fixed-rate period.
func (r RateShape) IsMixed() bool { return r.value == rateShapeMixed }

// FixedPeriodYears returns the length of the fixed-rate period in years,
// zero for the single-rate shape.
func (r RateShape) FixedPeriodYears() int { return r.fixedPeriodYears }

// FixedMonths returns the length of the fixed-rate period in months.
func (r RateShape) FixedMonths() int { return r.fixedPeriodYears * 12 }

// String returns the wire discriminator ("VARIABLE" or "MIXED").
func (r RateShape) String() string { return r.value }

// IsZero returns true if the shape has not been initialised.
func (r RateShape) IsZero() bool { return r.value == "" }
