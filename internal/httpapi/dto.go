package httpapi

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/heavyguana-aym/kithmonite/internal/ledger"
)

// postTransactionRequest mirrors the transaction record layout. Amount stays
// a json.Number so the literal text reaches the decimal parser untouched.
type postTransactionRequest struct {
	Type   string      `json:"type"`
	Client uint16      `json:"client"`
	Tx     uint32      `json:"tx"`
	Amount json.Number `json:"amount,omitempty"`
}

func (r postTransactionRequest) record() ledger.Record {
	return ledger.Record{
		Type:   r.Type,
		Client: r.Client,
		Tx:     r.Tx,
		Amount: r.Amount.String(),
	}
}

type accountResponse struct {
	Client    uint16 `json:"client"`
	Available string `json:"available"`
	Held      string `json:"held"`
	Total     string `json:"total"`
	Locked    bool   `json:"locked"`
}

func toAccountResponse(s ledger.Snapshot) accountResponse {
	return accountResponse{
		Client:    s.Client,
		Available: s.Available.String(),
		Held:      s.Held.String(),
		Total:     s.Total.String(),
		Locked:    s.Locked,
	}
}

type listAccountsResponse struct {
	Items []accountResponse `json:"items"`
}

type exportResponse struct {
	RunID    uuid.UUID `json:"run_id"`
	Accounts int       `json:"accounts"`
}
