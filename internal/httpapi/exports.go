package httpapi

import (
	"net/http"

	"github.com/google/uuid"
)

// postExport persists the current snapshots to the configured sink under a
// fresh run id.
func (s *Server) postExport(w http.ResponseWriter, r *http.Request) {
	if s.sink == nil {
		writeErr(w, http.StatusServiceUnavailable, "no snapshot sink configured", "no_sink")
		return
	}

	s.mu.Lock()
	snaps := s.proc.Snapshots()
	s.mu.Unlock()

	runID := uuid.New()
	if err := s.sink.SaveSnapshots(r.Context(), runID, snaps); err != nil {
		s.log.Error("snapshot export failed", "run_id", runID, "err", err)
		writeErr(w, http.StatusInternalServerError, "export failed", "export_failed")
		return
	}
	toJSON(w, http.StatusCreated, exportResponse{RunID: runID, Accounts: len(snaps)})
}
