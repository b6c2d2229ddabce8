// Package processor implements the ledger state machine: it takes client
// transactions and incrementally builds accounts from the transaction
// history, including the dispute/resolve/chargeback lifecycle.
package processor

import (
	"fmt"

	"github.com/heavyguana-aym/kithmonite/internal/errs"
	"github.com/heavyguana-aym/kithmonite/internal/ledger"
)

// accountLog owns one account plus the ordered history of transactions
// successfully applied to it. History is append-only.
type accountLog struct {
	state   *ledger.Account
	history []ledger.Transaction
}

func newAccountLog(clientID ledger.ClientID) *accountLog {
	return &accountLog{state: ledger.NewAccount(clientID)}
}

// disputeExists reports whether a dispute for id was already applied.
func (l *accountLog) disputeExists(id ledger.TxID) bool {
	for _, tx := range l.history {
		if tx.ID != id {
			continue
		}
		if _, ok := tx.Kind.(ledger.Dispute); ok {
			return true
		}
	}
	return false
}

// disputedDeposit finds the first deposit for id in history order.
func (l *accountLog) disputedDeposit(id ledger.TxID) (ledger.Money, bool) {
	for _, tx := range l.history {
		if tx.ID != id {
			continue
		}
		if d, ok := tx.Kind.(ledger.Deposit); ok {
			return d.Amount, true
		}
	}
	return ledger.Money{}, false
}

// Processor maintains one account log per client, created lazily on first
// reference. It is the sole owner of all account state for the lifetime of a
// run; callers drive it strictly in input order.
type Processor struct {
	accounts map[ledger.ClientID]*accountLog
}

// New returns an empty processor.
func New() *Processor {
	return &Processor{accounts: make(map[ledger.ClientID]*accountLog)}
}

// Process applies the transaction to the relevant client account. The
// transaction is retained in that client's history only when it applied
// successfully; a rejected transaction leaves no trace and no state change.
// Errors are final outcomes for the one transaction; the caller decides
// whether to continue with the next record.
func (p *Processor) Process(clientID ledger.ClientID, tx ledger.Transaction) error {
	log, ok := p.accounts[clientID]
	if !ok {
		log = newAccountLog(clientID)
		p.accounts[clientID] = log
	}

	err := p.apply(log, tx)
	observe(tx.Kind, err)
	return err
}

func (p *Processor) apply(log *accountLog, tx ledger.Transaction) error {
	switch kind := tx.Kind.(type) {
	case ledger.Deposit:
		if err := log.state.Deposit(kind.Amount); err != nil {
			return fmt.Errorf("deposit tx %d: %w", tx.ID, err)
		}
		log.history = append(log.history, tx)
	case ledger.Withdrawal:
		if err := log.state.Withdraw(kind.Amount); err != nil {
			return fmt.Errorf("withdrawal tx %d: %w", tx.ID, err)
		}
		log.history = append(log.history, tx)
	case ledger.Dispute:
		if log.disputeExists(tx.ID) {
			return errs.ErrDisputeExists
		}
		// A dispute against a missing or non-deposit transaction is
		// accepted as a no-op.
		amount, ok := log.disputedDeposit(tx.ID)
		if !ok {
			return nil
		}
		if err := log.state.Hold(amount); err != nil {
			return fmt.Errorf("dispute tx %d: %w", tx.ID, err)
		}
		log.history = append(log.history, tx)
	case ledger.Resolve:
		if !log.disputeExists(tx.ID) {
			return errs.ErrNoDispute
		}
		amount, ok := log.disputedDeposit(tx.ID)
		if !ok {
			return nil
		}
		if err := log.state.Release(amount); err != nil {
			return fmt.Errorf("resolve tx %d: %w", tx.ID, err)
		}
		log.history = append(log.history, tx)
	case ledger.Chargeback:
		if !log.disputeExists(tx.ID) {
			return errs.ErrNoDispute
		}
		amount, ok := log.disputedDeposit(tx.ID)
		if !ok {
			return nil
		}
		if err := log.state.Chargeback(amount); err != nil {
			return fmt.Errorf("chargeback tx %d: %w", tx.ID, err)
		}
		log.history = append(log.history, tx)
	}
	return nil
}

// Account returns a copy of the client's account state.
func (p *Processor) Account(clientID ledger.ClientID) (ledger.Account, bool) {
	log, ok := p.accounts[clientID]
	if !ok {
		return ledger.Account{}, false
	}
	return *log.state, true
}

// Snapshots yields the final snapshot of every known account. Ordering
// across clients is unspecified.
func (p *Processor) Snapshots() []ledger.Snapshot {
	out := make([]ledger.Snapshot, 0, len(p.accounts))
	for _, log := range p.accounts {
		out = append(out, log.state.Snapshot())
	}
	return out
}
