package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/heavyguana-aym/kithmonite/internal/errs"
	"github.com/heavyguana-aym/kithmonite/internal/ledger"
)

// postTransaction validates and applies a single record. Validation failures
// are 400s; transactions the state machine rejects are 422s with a code, the
// same outcomes the batch mode logs and skips.
func (s *Server) postTransaction(w http.ResponseWriter, r *http.Request) {
	var req postTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body", "invalid_body")
		return
	}

	tx, err := req.record().Transaction()
	if err != nil {
		writeErr(w, http.StatusBadRequest, err.Error(), validationCode(err))
		return
	}

	s.mu.Lock()
	err = s.proc.Process(ledger.ClientID(req.Client), tx)
	account, _ := s.proc.Account(ledger.ClientID(req.Client))
	s.mu.Unlock()

	if err != nil {
		writeErr(w, http.StatusUnprocessableEntity, err.Error(), processingCode(err))
		return
	}
	toJSON(w, http.StatusCreated, toAccountResponse(account.Snapshot()))
}

// validationCode maps record-validation failures to response codes.
func validationCode(err error) string {
	switch {
	case errors.Is(err, errs.ErrMissingAmount):
		return "missing_amount"
	case errors.Is(err, errs.ErrNegativeBalance):
		return "negative_amount"
	case errors.Is(err, errs.ErrUnknownKind):
		return "unknown_kind"
	default:
		return "invalid_record"
	}
}

// processingCode maps state-machine rejections to response codes.
func processingCode(err error) string {
	switch {
	case errors.Is(err, errs.ErrAccountLocked):
		return "account_locked"
	case errors.Is(err, errs.ErrNegativeBalance):
		return "negative_balance"
	case errors.Is(err, errs.ErrDisputeExists):
		return "dispute_exists"
	case errors.Is(err, errs.ErrNoDispute):
		return "no_dispute"
	default:
		return "rejected"
	}
}
