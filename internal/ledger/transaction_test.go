package ledger

import (
	"errors"
	"testing"

	"github.com/heavyguana-aym/kithmonite/internal/errs"
)

func TestRecordDeposit(t *testing.T) {
	tx, err := Record{Type: "deposit", Client: 1, Tx: 10, Amount: "1.5"}.Transaction()
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if tx.ID != 10 {
		t.Fatalf("expected id 10, got %d", tx.ID)
	}
	d, ok := tx.Kind.(Deposit)
	if !ok {
		t.Fatalf("expected Deposit, got %T", tx.Kind)
	}
	if !d.Amount.Equal(MustMoney("1.5")) {
		t.Fatalf("expected 1.5, got %s", d.Amount)
	}
}

func TestRecordTypeIsCaseInsensitive(t *testing.T) {
	for raw, want := range map[string]string{
		"Deposit":    "deposit",
		"WITHDRAWAL": "withdrawal",
		" dispute ":  "dispute",
		"Resolve":    "resolve",
		"chargeBack": "chargeback",
	} {
		rec := Record{Type: raw, Client: 1, Tx: 1, Amount: "1.0"}
		tx, err := rec.Transaction()
		if err != nil {
			t.Fatalf("%q: %v", raw, err)
		}
		if got := tx.Kind.String(); got != want {
			t.Fatalf("%q: expected kind %s, got %s", raw, want, got)
		}
	}
}

func TestRecordMissingAmount(t *testing.T) {
	for _, kind := range []string{"deposit", "withdrawal"} {
		_, err := Record{Type: kind, Client: 1, Tx: 1}.Transaction()
		if !errors.Is(err, errs.ErrMissingAmount) {
			t.Fatalf("%s without amount: expected missing amount error, got %v", kind, err)
		}
	}
}

func TestRecordNegativeAmount(t *testing.T) {
	_, err := Record{Type: "deposit", Client: 1, Tx: 1, Amount: "-1.0"}.Transaction()
	if !errors.Is(err, errs.ErrNegativeBalance) {
		t.Fatalf("expected negative balance error, got %v", err)
	}
}

func TestRecordUnknownKind(t *testing.T) {
	_, err := Record{Type: "transfer", Client: 1, Tx: 1}.Transaction()
	if !errors.Is(err, errs.ErrUnknownKind) {
		t.Fatalf("expected unknown kind error, got %v", err)
	}
}

func TestRecordReferenceKindsIgnoreAmount(t *testing.T) {
	// an amount on a dispute is informational only
	tx, err := Record{Type: "dispute", Client: 1, Tx: 1, Amount: "9.99"}.Transaction()
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if _, ok := tx.Kind.(Dispute); !ok {
		t.Fatalf("expected Dispute, got %T", tx.Kind)
	}
}
