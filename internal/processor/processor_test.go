package processor

import (
	"errors"
	"testing"

	"github.com/heavyguana-aym/kithmonite/internal/errs"
	"github.com/heavyguana-aym/kithmonite/internal/ledger"
)

func deposit(id uint32, amount string) ledger.Transaction {
	return ledger.Transaction{ID: ledger.TxID(id), Kind: ledger.Deposit{Amount: ledger.MustMoney(amount)}}
}

func withdrawal(id uint32, amount string) ledger.Transaction {
	return ledger.Transaction{ID: ledger.TxID(id), Kind: ledger.Withdrawal{Amount: ledger.MustMoney(amount)}}
}

func dispute(id uint32) ledger.Transaction {
	return ledger.Transaction{ID: ledger.TxID(id), Kind: ledger.Dispute{}}
}

func resolve(id uint32) ledger.Transaction {
	return ledger.Transaction{ID: ledger.TxID(id), Kind: ledger.Resolve{}}
}

func chargeback(id uint32) ledger.Transaction {
	return ledger.Transaction{ID: ledger.TxID(id), Kind: ledger.Chargeback{}}
}

func mustAccount(t *testing.T, p *Processor, client ledger.ClientID) ledger.Account {
	t.Helper()
	account, ok := p.Account(client)
	if !ok {
		t.Fatalf("an account should have been created for client %d", client)
	}
	return account
}

func TestDeposit(t *testing.T) {
	p := New()
	if err := p.Process(1, deposit(1, "1.0")); err != nil {
		t.Fatalf("process: %v", err)
	}
	account := mustAccount(t, p, 1)
	if !account.Available.Equal(ledger.MustMoney("1.0")) {
		t.Fatalf("expected available 1.0, got %s", account.Available)
	}
}

func TestWithdrawal(t *testing.T) {
	p := New()
	if err := p.Process(1, deposit(1, "1.0")); err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if err := p.Process(1, withdrawal(2, "1.0")); err != nil {
		t.Fatalf("withdrawal: %v", err)
	}
	account := mustAccount(t, p, 1)
	if !account.Available.Equal(ledger.Money{}) {
		t.Fatalf("expected available 0.0, got %s", account.Available)
	}
}

func TestWithdrawInsufficientFunds(t *testing.T) {
	p := New()
	err := p.Process(1, withdrawal(1, "1.0"))
	if !errors.Is(err, errs.ErrNegativeBalance) {
		t.Fatalf("expected negative balance error, got %v", err)
	}
	account := mustAccount(t, p, 1)
	if !account.Available.Equal(ledger.Money{}) {
		t.Fatalf("rejected withdrawal must leave no trace, got %s", account.Available)
	}
}

func TestDispute(t *testing.T) {
	p := New()
	if err := p.Process(1, deposit(1, "1.0")); err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if err := p.Process(1, dispute(1)); err != nil {
		t.Fatalf("dispute: %v", err)
	}
	account := mustAccount(t, p, 1)
	if !account.Available.Equal(ledger.Money{}) || !account.Held.Equal(ledger.MustMoney("1.0")) {
		t.Fatalf("expected 0.0 available / 1.0 held, got %s / %s", account.Available, account.Held)
	}
}

func TestDisputeAlreadyDisputed(t *testing.T) {
	p := New()
	if err := p.Process(1, deposit(1, "1.0")); err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if err := p.Process(1, dispute(1)); err != nil {
		t.Fatalf("dispute: %v", err)
	}
	if err := p.Process(1, dispute(1)); !errors.Is(err, errs.ErrDisputeExists) {
		t.Fatalf("expected dispute exists error, got %v", err)
	}
	account := mustAccount(t, p, 1)
	if !account.Available.Equal(ledger.Money{}) || !account.Held.Equal(ledger.MustMoney("1.0")) {
		t.Fatalf("rejected dispute must not change state, got %s / %s", account.Available, account.Held)
	}
}

func TestResolveDispute(t *testing.T) {
	p := New()
	if err := p.Process(1, deposit(1, "1.0")); err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if err := p.Process(1, dispute(1)); err != nil {
		t.Fatalf("dispute: %v", err)
	}
	if err := p.Process(1, resolve(1)); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	account := mustAccount(t, p, 1)
	if !account.Available.Equal(ledger.MustMoney("1.0")) || !account.Held.Equal(ledger.Money{}) {
		t.Fatalf("expected 1.0 available / 0.0 held, got %s / %s", account.Available, account.Held)
	}
	if account.Locked {
		t.Fatal("resolve must not lock the account")
	}
}

func TestChargebackDispute(t *testing.T) {
	p := New()
	if err := p.Process(1, deposit(1, "1.0")); err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if err := p.Process(1, dispute(1)); err != nil {
		t.Fatalf("dispute: %v", err)
	}
	if err := p.Process(1, chargeback(1)); err != nil {
		t.Fatalf("chargeback: %v", err)
	}
	account := mustAccount(t, p, 1)
	if !account.Available.Equal(ledger.Money{}) || !account.Held.Equal(ledger.Money{}) {
		t.Fatalf("expected zero balances, got %s / %s", account.Available, account.Held)
	}
	if !account.Locked {
		t.Fatal("chargeback must lock the account")
	}

	// the lock is permanent for the rest of the run
	if err := p.Process(1, deposit(2, "5.0")); !errors.Is(err, errs.ErrAccountLocked) {
		t.Fatalf("deposit after chargeback: expected lock error, got %v", err)
	}
	account = mustAccount(t, p, 1)
	if !account.Available.Equal(ledger.Money{}) {
		t.Fatalf("locked account must not accept funds, got %s", account.Available)
	}
}

func TestResolveNoDispute(t *testing.T) {
	p := New()
	if err := p.Process(1, deposit(1, "1.0")); err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if err := p.Process(1, resolve(1)); !errors.Is(err, errs.ErrNoDispute) {
		t.Fatalf("expected no dispute error, got %v", err)
	}
	account := mustAccount(t, p, 1)
	if !account.Available.Equal(ledger.MustMoney("1.0")) || !account.Held.Equal(ledger.Money{}) {
		t.Fatalf("rejected resolve must not change state, got %s / %s", account.Available, account.Held)
	}
}

func TestChargebackNoDispute(t *testing.T) {
	p := New()
	if err := p.Process(1, deposit(1, "1.0")); err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if err := p.Process(1, chargeback(1)); !errors.Is(err, errs.ErrNoDispute) {
		t.Fatalf("expected no dispute error, got %v", err)
	}
	account := mustAccount(t, p, 1)
	if account.Locked {
		t.Fatal("rejected chargeback must not lock the account")
	}
}

func TestDisputeUnknownTransactionIsNoOp(t *testing.T) {
	p := New()
	if err := p.Process(1, deposit(1, "1.0")); err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if err := p.Process(1, dispute(42)); err != nil {
		t.Fatalf("dispute of unknown tx must be accepted as a no-op, got %v", err)
	}
	account := mustAccount(t, p, 1)
	if !account.Available.Equal(ledger.MustMoney("1.0")) || !account.Held.Equal(ledger.Money{}) {
		t.Fatalf("no-op dispute must not change state, got %s / %s", account.Available, account.Held)
	}

	// and since nothing was appended, a resolve for that id still fails
	if err := p.Process(1, resolve(42)); !errors.Is(err, errs.ErrNoDispute) {
		t.Fatalf("expected no dispute error, got %v", err)
	}
}

func TestDisputeWithdrawalIsNoOp(t *testing.T) {
	p := New()
	if err := p.Process(1, deposit(1, "2.0")); err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if err := p.Process(1, withdrawal(2, "1.0")); err != nil {
		t.Fatalf("withdrawal: %v", err)
	}
	if err := p.Process(1, dispute(2)); err != nil {
		t.Fatalf("dispute of a withdrawal must be a no-op, got %v", err)
	}
	account := mustAccount(t, p, 1)
	if !account.Available.Equal(ledger.MustMoney("1.0")) || !account.Held.Equal(ledger.Money{}) {
		t.Fatalf("unexpected state: %s / %s", account.Available, account.Held)
	}
}

func TestMultipleClientsShareTransactionIDs(t *testing.T) {
	p := New()
	if err := p.Process(1, deposit(1, "1.0")); err != nil {
		t.Fatalf("client 1 deposit: %v", err)
	}
	if err := p.Process(2, deposit(1, "1.0")); err != nil {
		t.Fatalf("client 2 deposit: %v", err)
	}
	for _, client := range []ledger.ClientID{1, 2} {
		account := mustAccount(t, p, client)
		if !account.Available.Equal(ledger.MustMoney("1.0")) {
			t.Fatalf("client %d: expected available 1.0, got %s", client, account.Available)
		}
	}
}

func TestSnapshotsCoverAllClients(t *testing.T) {
	p := New()
	if err := p.Process(1, deposit(1, "1.0")); err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if err := p.Process(2, deposit(2, "2.5")); err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if err := p.Process(2, dispute(2)); err != nil {
		t.Fatalf("dispute: %v", err)
	}

	snaps := p.Snapshots()
	if len(snaps) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(snaps))
	}
	for _, snap := range snaps {
		want, _ := snap.Available.Add(snap.Held)
		if !snap.Total.Equal(want) {
			t.Fatalf("client %d: total %s != available+held %s", snap.Client, snap.Total, want)
		}
	}
}
