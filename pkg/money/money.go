// Package money pairs decimal amounts with an ISO 4217 currency and carries
// the rounding modes the quoting engine depends on.
package money

import (
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
)

var currencyCodeRe = regexp.MustCompile(`^[A-Z]{3}$`)

// Currency is a validated ISO 4217 currency code.
type Currency struct {
	code string
}

// NewCurrency validates that code is three uppercase letters.
func NewCurrency(code string) (Currency, error) {
	if !currencyCodeRe.MatchString(code) {
		return Currency{}, fmt.Errorf("invalid currency code %q: must be exactly 3 uppercase letters", code)
	}
	return Currency{code: code}, nil
}

// MustCurrency panics on an invalid code. For package-level variables only.
func MustCurrency(code string) Currency {
	c, err := NewCurrency(code)
	if err != nil {
		panic(err)
	}
	return c
}

// Code returns the ISO 4217 code.
func (c Currency) Code() string {
	return c.code
}

func (c Currency) String() string {
	return c.code
}

// Currencies the quoting engine deals in.
var (
	RON = MustCurrency("RON")
	EUR = MustCurrency("EUR")
	USD = MustCurrency("USD")
)

// Money is an immutable amount in a single currency. Arithmetic across
// currencies is an error, never a silent coercion.
type Money struct {
	amount   decimal.Decimal
	currency Currency
}

// New builds a Money from an amount and currency.
func New(amount decimal.Decimal, currency Currency) Money {
	return Money{amount: amount, currency: currency}
}

// Amount returns the decimal amount.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the currency.
func (m Money) Currency() Currency {
	return m.currency
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// Add sums two amounts of the same currency.
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, fmt.Errorf("currency mismatch: cannot add %s to %s", other.currency, m.currency)
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency}, nil
}

// Subtract deducts other from m. The currencies must match.
func (m Money) Subtract(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, fmt.Errorf("currency mismatch: cannot subtract %s from %s", other.currency, m.currency)
	}
	return Money{amount: m.amount.Sub(other.amount), currency: m.currency}, nil
}

// Equal reports whether amount and currency both match.
func (m Money) Equal(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// String renders "<amount> <currency>" with four decimal places.
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.amount.StringFixed(4), m.currency.Code())
}
