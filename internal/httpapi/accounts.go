package httpapi

import (
	"net/http"
	"sort"
	"strconv"

	chi "github.com/go-chi/chi/v5"

	"github.com/heavyguana-aym/kithmonite/internal/ledger"
)

// listAccounts returns the current snapshot of every known account, sorted
// by client id for stable responses.
func (s *Server) listAccounts(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	snaps := s.proc.Snapshots()
	s.mu.Unlock()

	sort.Slice(snaps, func(i, j int) bool { return snaps[i].Client < snaps[j].Client })
	items := make([]accountResponse, 0, len(snaps))
	for _, snap := range snaps {
		items = append(items, toAccountResponse(snap))
	}
	toJSON(w, http.StatusOK, listAccountsResponse{Items: items})
}

// getAccount returns the snapshot of one client.
func (s *Server) getAccount(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "client")
	client, err := strconv.ParseUint(raw, 10, 16)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "client must be an unsigned 16-bit integer", "invalid_client")
		return
	}

	s.mu.Lock()
	account, ok := s.proc.Account(ledger.ClientID(client))
	s.mu.Unlock()

	if !ok {
		writeErr(w, http.StatusNotFound, "not_found", "not_found")
		return
	}
	toJSON(w, http.StatusOK, toAccountResponse(account.Snapshot()))
}
