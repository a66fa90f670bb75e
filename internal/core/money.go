// Package core defines the WealthFlow domain model: monetary value types,
// the entities the record store persists, and their validation rules.
//
// All monetary arithmetic goes through Money (2 fractional digits) and
// Quantity (8 fractional digits, for fractional shares and crypto units).
// Both are thin wrappers over shopspring/decimal; binary floating point is
// used only for display-level percentages derived at the very end of a
// computation.
package core

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is a fixed-point monetary amount with exactly 2 fractional digits.
// The zero value is a valid zero amount.
type Money struct {
	value decimal.Decimal
}

var hundred = decimal.NewFromInt(100)

// NewMoney builds a Money from a decimal, rounding half away from zero to
// 2 fractional digits.
func NewMoney(d decimal.Decimal) Money {
	return Money{value: d.Round(2)}
}

// NewMoneyFromString parses a decimal string such as "1234.56".
func NewMoneyFromString(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return NewMoney(d), nil
}

// MustMoney parses a decimal string and panics on failure. Test helper.
func MustMoney(s string) Money {
	m, err := NewMoneyFromString(s)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value)} }
func (m Money) Neg() Money        { return Money{value: m.value.Neg()} }

func (m Money) IsZero() bool     { return m.value.IsZero() }
func (m Money) IsPositive() bool { return m.value.IsPositive() }
func (m Money) IsNegative() bool { return m.value.IsNegative() }

func (m Money) Equal(n Money) bool       { return m.value.Equal(n.value) }
func (m Money) GreaterThan(n Money) bool { return m.value.GreaterThan(n.value) }
func (m Money) LessThan(n Money) bool    { return m.value.LessThan(n.value) }

// Decimal exposes the underlying decimal for persistence layers.
func (m Money) Decimal() decimal.Decimal { return m.value }

// PercentOf returns m/total*100 as a display float, or 0 when total is not
// positive. This is the only place money math degrades to float64, and only
// for an already-derived ratio.
func (m Money) PercentOf(total Money) float64 {
	if !total.IsPositive() {
		return 0
	}
	return m.value.Div(total.value).Mul(hundred).InexactFloat64()
}

// String renders the amount with exactly 2 fractional digits.
func (m Money) String() string { return m.value.StringFixed(2) }

// Validate reports whether the amount is usable as a transaction magnitude.
func (m Money) Validate() error {
	if !m.IsPositive() {
		return ErrInvalidAmount
	}
	return nil
}

// MarshalJSON encodes the amount as a fixed 2-decimal string.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.value.StringFixed(2) + `"`), nil
}

// UnmarshalJSON accepts both quoted and bare decimal numbers.
func (m *Money) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*m = Money{}
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	*m = NewMoney(d)
	return nil
}

// Quantity is a fixed-point count of units with 8 fractional digits, enough
// for fractional shares and crypto positions.
type Quantity struct {
	value decimal.Decimal
}

// NewQuantity builds a Quantity from a decimal, rounding to 8 fractional
// digits.
func NewQuantity(d decimal.Decimal) Quantity {
	return Quantity{value: d.Round(8)}
}

// NewQuantityFromString parses a decimal string such as "0.00012345".
func NewQuantityFromString(s string) (Quantity, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Quantity{}, ErrInvalidQuantity
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Quantity{}, fmt.Errorf("%w: %q", ErrInvalidQuantity, s)
	}
	return NewQuantity(d), nil
}

// MustQuantity parses a decimal string and panics on failure. Test helper.
func MustQuantity(s string) Quantity {
	q, err := NewQuantityFromString(s)
	if err != nil {
		panic(err)
	}
	return q
}

// MulPrice multiplies the quantity by a unit price, rounding the product
// back to a 2-decimal amount.
func (q Quantity) MulPrice(p Money) Money {
	return NewMoney(q.value.Mul(p.Decimal()))
}

func (q Quantity) IsZero() bool     { return q.value.IsZero() }
func (q Quantity) IsPositive() bool { return q.value.IsPositive() }

func (q Quantity) Equal(p Quantity) bool { return q.value.Equal(p.value) }

// Decimal exposes the underlying decimal for persistence layers.
func (q Quantity) Decimal() decimal.Decimal { return q.value }

func (q Quantity) String() string { return q.value.String() }

func (q Quantity) MarshalJSON() ([]byte, error) {
	return []byte(`"` + q.value.String() + `"`), nil
}

func (q *Quantity) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*q = Quantity{}
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidQuantity, s)
	}
	*q = NewQuantity(d)
	return nil
}
