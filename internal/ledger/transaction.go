package ledger

import (
	"fmt"
	"strings"

	"github.com/heavyguana-aym/kithmonite/internal/errs"
)

// ClientID identifies a client. Equality is the only operation the system
// needs; ids are never globally ordered or derived from.
type ClientID uint16

// TxID identifies a transaction. Uniqueness is only assumed within a single
// client's history; dispute matching takes the first deposit found when ids
// collide.
type TxID uint32

// Kind is the closed set of transaction variants. Only Deposit and
// Withdrawal carry an amount; the other three reference a prior transaction
// by id alone.
type Kind interface {
	// String returns the lowercase wire tag for the variant.
	String() string
	isKind()
}

// Deposit is a credit to the client's asset account.
type Deposit struct {
	Amount Money
}

// Withdrawal is a debit to the client's asset account.
type Withdrawal struct {
	Amount Money
}

// Dispute is a client's claim that a transaction was erroneous and should be
// reversed.
type Dispute struct{}

// Resolve is a resolution to a dispute, releasing the associated held funds.
type Resolve struct{}

// Chargeback is the final state of a dispute, the client reversing a
// transaction.
type Chargeback struct{}

func (Deposit) isKind()    {}
func (Withdrawal) isKind() {}
func (Dispute) isKind()    {}
func (Resolve) isKind()    {}
func (Chargeback) isKind() {}

func (Deposit) String() string    { return "deposit" }
func (Withdrawal) String() string { return "withdrawal" }
func (Dispute) String() string    { return "dispute" }
func (Resolve) String() string    { return "resolve" }
func (Chargeback) String() string { return "chargeback" }

// Transaction is an immutable, identified event. Once appended to a client's
// history it is never rewritten or deleted.
type Transaction struct {
	ID   TxID
	Kind Kind
}

// Record is an untrusted transaction record as produced by an input source.
// Amount is the raw textual amount, empty when the column is absent.
type Record struct {
	Type   string
	Client uint16
	Tx     uint32
	Amount string
}

// Transaction validates the record into a Transaction. Deposits and
// withdrawals require a present, non-negative amount; the reference-only
// kinds ignore any amount. The type tag is matched case-insensitively.
// Invalid records are dropped by callers, never retried.
func (r Record) Transaction() (Transaction, error) {
	var kind Kind
	switch strings.ToLower(strings.TrimSpace(r.Type)) {
	case "deposit":
		amount, err := r.requiredAmount()
		if err != nil {
			return Transaction{}, fmt.Errorf("deposit tx %d: %w", r.Tx, err)
		}
		kind = Deposit{Amount: amount}
	case "withdrawal":
		amount, err := r.requiredAmount()
		if err != nil {
			return Transaction{}, fmt.Errorf("withdrawal tx %d: %w", r.Tx, err)
		}
		kind = Withdrawal{Amount: amount}
	case "dispute":
		kind = Dispute{}
	case "resolve":
		kind = Resolve{}
	case "chargeback":
		kind = Chargeback{}
	default:
		return Transaction{}, fmt.Errorf("%w: %q", errs.ErrUnknownKind, r.Type)
	}
	return Transaction{ID: TxID(r.Tx), Kind: kind}, nil
}

func (r Record) requiredAmount() (Money, error) {
	raw := strings.TrimSpace(r.Amount)
	if raw == "" {
		return Money{}, errs.ErrMissingAmount
	}
	return ParseMoney(raw)
}
