package errs

import (
	"errors"

	"github.com/govalues/decimal"
)

// Common sentinel errors for cross-layer signaling.
var (
	// ErrAccountLocked rejects any mutating operation after a chargeback.
	ErrAccountLocked = errors.New("account_locked")
	// ErrNegativeBalance matches any NegativeBalanceError via errors.Is.
	ErrNegativeBalance = errors.New("negative_balance")
	// ErrDisputeExists indicates multiple disputes on the same transaction.
	ErrDisputeExists = errors.New("dispute_exists")
	// ErrNoDispute indicates the referenced transaction is not in dispute.
	ErrNoDispute = errors.New("no_dispute")
	// ErrMissingAmount indicates a deposit/withdrawal record without an amount.
	ErrMissingAmount = errors.New("missing_amount")
	// ErrUnknownKind indicates an unrecognized transaction type tag.
	ErrUnknownKind = errors.New("unknown_kind")
)

// NegativeBalanceError reports an operation whose result would be a negative
// monetary value. Value holds the offending (or would-be) amount.
type NegativeBalanceError struct {
	Value decimal.Decimal
}

func (e *NegativeBalanceError) Error() string {
	return "a monetary value cannot be negative: " + e.Value.String()
}

// Is makes errors.Is(err, ErrNegativeBalance) match.
func (e *NegativeBalanceError) Is(target error) bool {
	return target == ErrNegativeBalance
}
