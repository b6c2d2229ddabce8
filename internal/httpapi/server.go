// Package httpapi wires the HTTP surface of the payment processor. Handlers
// stay thin: records are validated by the domain and applied by the
// processor, which the server drives as its single writer.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	chi "github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/heavyguana-aym/kithmonite/internal/ledger"
	"github.com/heavyguana-aym/kithmonite/internal/processor"
)

// SnapshotSink persists the snapshots of a finished or in-flight run.
type SnapshotSink interface {
	Ready(ctx context.Context) error
	SaveSnapshots(ctx context.Context, runID uuid.UUID, snaps []ledger.Snapshot) error
}

// Server owns one processor behind a mutex, preserving the single-writer
// model while requests arrive concurrently.
type Server struct {
	mu   sync.Mutex
	proc *processor.Processor
	sink SnapshotSink
	log  *slog.Logger
	rt   *chi.Mux
}

// New constructs the HTTP server with routes and middleware. sink may be nil
// when no snapshot persistence is configured.
func New(proc *processor.Processor, sink SnapshotSink, logger *slog.Logger) *Server {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(requestLogger(logger))
	r.Use(recoverer(logger))
	r.Use(metricsMiddleware)

	s := &Server{proc: proc, sink: sink, log: logger, rt: r}
	s.routes()
	return s
}

// Handler exposes the configured http.Handler.
func (s *Server) Handler() http.Handler { return s.rt }

// routes declares the public HTTP API endpoints.
func (s *Server) routes() {
	s.rt.Post("/v1/transactions", s.postTransaction)
	s.rt.Get("/v1/accounts", s.listAccounts)
	s.rt.Get("/v1/accounts/{client}", s.getAccount)
	s.rt.Post("/v1/exports", s.postExport)
	s.rt.Get("/healthz", s.healthz)
	s.rt.Get("/readyz", s.readyz)
	s.rt.Method(http.MethodGet, "/metrics", metricsHandler())
}
