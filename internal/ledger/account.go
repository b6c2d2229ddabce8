package ledger

import (
	"github.com/heavyguana-aym/kithmonite/internal/errs"
)

// Account represents the state of a client's account at a given point in
// time. It is mutated only through its own operations, each of which checks
// the lock first (chargeback excepted, which sets the lock as its effect).
type Account struct {
	ClientID ClientID
	// Available is the total funds available for trading, staking and
	// withdrawal.
	Available Money
	// Held is the total funds frozen pending dispute resolution.
	Held Money
	// Locked disables all operations once set. No unlock exists.
	Locked bool
}

// NewAccount returns an unlocked account with zero balances.
func NewAccount(clientID ClientID) *Account {
	return &Account{ClientID: clientID}
}

// Deposit adds the amount to the account's available funds.
func (a *Account) Deposit(amount Money) error {
	if err := a.checkLock(); err != nil {
		return err
	}
	available, err := a.Available.Add(amount)
	if err != nil {
		return err
	}
	a.Available = available
	return nil
}

// Withdraw removes the amount from the account's available funds.
func (a *Account) Withdraw(amount Money) error {
	if err := a.checkLock(); err != nil {
		return err
	}
	available, err := a.Available.Sub(amount)
	if err != nil {
		return err
	}
	a.Available = available
	return nil
}

// Hold freezes the amount while a dispute is being resolved, moving it from
// available to held. Fails when the funds were already spent.
func (a *Account) Hold(amount Money) error {
	if err := a.checkLock(); err != nil {
		return err
	}
	available, err := a.Available.Sub(amount)
	if err != nil {
		return err
	}
	held, err := a.Held.Add(amount)
	if err != nil {
		return err
	}
	a.Available = available
	a.Held = held
	return nil
}

// Release un-freezes the amount when a dispute is resolved, moving it from
// held back to available.
func (a *Account) Release(amount Money) error {
	if err := a.checkLock(); err != nil {
		return err
	}
	held, err := a.Held.Sub(amount)
	if err != nil {
		return err
	}
	available, err := a.Available.Add(amount)
	if err != nil {
		return err
	}
	a.Available = available
	a.Held = held
	return nil
}

// Chargeback removes the amount from the held funds and locks the account.
// The lock is set regardless of whether the subtraction succeeds.
func (a *Account) Chargeback(amount Money) error {
	a.Locked = true

	held, err := a.Held.Sub(amount)
	if err != nil {
		return err
	}
	a.Held = held
	return nil
}

func (a *Account) checkLock() error {
	if a.Locked {
		return errs.ErrAccountLocked
	}
	return nil
}

// Snapshot is the externally visible final state of an account.
type Snapshot struct {
	Client    uint16
	Available Money
	Held      Money
	Total     Money
	Locked    bool
}

// Snapshot derives the output row for the account. Total is always exactly
// Available + Held.
func (a *Account) Snapshot() Snapshot {
	total, _ := a.Available.Add(a.Held)
	return Snapshot{
		Client:    uint16(a.ClientID),
		Available: a.Available,
		Held:      a.Held,
		Total:     total,
		Locked:    a.Locked,
	}
}
