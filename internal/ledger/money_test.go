package ledger

import (
	"errors"
	"testing"

	"github.com/govalues/decimal"

	"github.com/heavyguana-aym/kithmonite/internal/errs"
)

func TestNewMoneyRejectsNegative(t *testing.T) {
	_, err := NewMoney(decimal.MustParse("-2.0"))
	if !errors.Is(err, errs.ErrNegativeBalance) {
		t.Fatalf("expected negative balance error, got %v", err)
	}
}

func TestNewMoneyRoundsToFourDigits(t *testing.T) {
	m, err := ParseMoney("1.23456")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := m.String(); got != "1.2346" {
		t.Fatalf("expected 1.2346, got %s", got)
	}
}

func TestMoneyStringPadsToFourDigits(t *testing.T) {
	if got := MustMoney("2.5").String(); got != "2.5000" {
		t.Fatalf("expected 2.5000, got %s", got)
	}
	var zero Money
	if got := zero.String(); got != "0.0000" {
		t.Fatalf("expected 0.0000, got %s", got)
	}
}

func TestMoneyAdd(t *testing.T) {
	sum, err := MustMoney("1.5").Add(MustMoney("2.25"))
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !sum.Equal(MustMoney("3.75")) {
		t.Fatalf("expected 3.75, got %s", sum)
	}
}

func TestMoneySubOverdraft(t *testing.T) {
	_, err := MustMoney("1.0").Sub(MustMoney("2.0"))
	if !errors.Is(err, errs.ErrNegativeBalance) {
		t.Fatalf("expected negative balance error, got %v", err)
	}
	var nbe *errs.NegativeBalanceError
	if !errors.As(err, &nbe) {
		t.Fatalf("expected NegativeBalanceError, got %T", err)
	}
	if nbe.Value.Sign() >= 0 {
		t.Fatalf("expected negative would-be value, got %s", nbe.Value)
	}
}

func TestMoneySub(t *testing.T) {
	diff, err := MustMoney("2.0").Sub(MustMoney("2.0"))
	if err != nil {
		t.Fatalf("sub: %v", err)
	}
	if !diff.Equal(Money{}) {
		t.Fatalf("expected zero, got %s", diff)
	}
}
