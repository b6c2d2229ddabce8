package ledger

import (
	"github.com/govalues/decimal"

	"github.com/heavyguana-aym/kithmonite/internal/errs"
)

// Scale is the number of fractional digits every monetary value carries.
const Scale = 4

// Money represents an arbitrary, positive amount of money at a fixed scale.
// This type strives to be as restrictive as possible to avoid potential
// errors: it is never negative, and the only way to go below zero is to get
// an error back instead.
type Money struct {
	dec decimal.Decimal
}

// NewMoney builds a Money from a decimal, rounding to Scale fractional
// digits. A negative input fails with a NegativeBalanceError.
func NewMoney(d decimal.Decimal) (Money, error) {
	if d.IsNeg() {
		return Money{}, &errs.NegativeBalanceError{Value: d}
	}
	return Money{dec: d.Round(Scale)}, nil
}

// ParseMoney parses a decimal string into a Money.
func ParseMoney(s string) (Money, error) {
	d, err := decimal.Parse(s)
	if err != nil {
		return Money{}, err
	}
	return NewMoney(d)
}

// MustMoney is a test/fixture helper that panics on invalid input.
func MustMoney(s string) Money {
	m, err := ParseMoney(s)
	if err != nil {
		panic(err)
	}
	return m
}

// Add calculates m + rhs, returning an error if there is an overdraft.
// Given both operands are non-negative this cannot underflow; the check is
// kept for symmetry with Sub.
func (m Money) Add(rhs Money) (Money, error) {
	sum, err := m.dec.Add(rhs.dec)
	if err != nil {
		return Money{}, err
	}
	if sum.IsNeg() {
		return Money{}, &errs.NegativeBalanceError{Value: sum}
	}
	return Money{dec: sum}, nil
}

// Sub calculates m - rhs, returning an error if there is an overdraft.
// This is the single overdraft gate used throughout the system.
func (m Money) Sub(rhs Money) (Money, error) {
	diff, err := m.dec.Sub(rhs.dec)
	if err != nil {
		return Money{}, err
	}
	if diff.IsNeg() {
		return Money{}, &errs.NegativeBalanceError{Value: diff}
	}
	return Money{dec: diff}, nil
}

// Equal reports numeric equality regardless of internal scale.
func (m Money) Equal(rhs Money) bool { return m.dec.Cmp(rhs.dec) == 0 }

// Decimal exposes the underlying decimal value.
func (m Money) Decimal() decimal.Decimal { return m.dec }

// String renders the amount with exactly Scale fractional digits. Values are
// rounded at construction, so padding is all that is left to do.
func (m Money) String() string { return m.dec.Pad(Scale).String() }
