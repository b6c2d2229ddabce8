package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/heavyguana-aym/kithmonite/internal/config"
	"github.com/heavyguana-aym/kithmonite/internal/csvio"
	"github.com/heavyguana-aym/kithmonite/internal/httpapi"
	"github.com/heavyguana-aym/kithmonite/internal/ledger"
	"github.com/heavyguana-aym/kithmonite/internal/processor"
	pgstore "github.com/heavyguana-aym/kithmonite/internal/storage/postgres"
)

func main() {
	serve := flag.Bool("serve", false, "run the HTTP API instead of batch mode")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	// Logger (slog to stderr). Level via LOG_LEVEL; format via LOG_FORMAT
	// (json|text, default json). Stdout stays free for the snapshot CSV.
	logger := buildLogger(cfg)
	slog.SetDefault(logger)

	if *serve {
		if err := runServe(cfg, logger); err != nil {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
		return
	}

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: kithmonite [-serve] <transactions.csv>")
		os.Exit(2)
	}
	if err := runBatch(flag.Arg(0), logger); err != nil {
		logger.Error("run failed", "err", err)
		os.Exit(1)
	}
}

// runBatch streams the input file through the processor and writes the final
// account snapshots as CSV on stdout. Per-record failures are logged and
// skipped; only boundary I/O is fatal.
func runBatch(path string, logger *slog.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("unable to read the transactions file: %w", err)
	}
	defer f.Close()

	reader := csvio.NewReader(f, logger)
	proc := processor.New()
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		tx, err := rec.Transaction()
		if err != nil {
			logger.Warn("dropping invalid record", "client", rec.Client, "tx", rec.Tx, "err", err)
			continue
		}
		if err := proc.Process(ledger.ClientID(rec.Client), tx); err != nil {
			logger.Warn("transaction rejected", "client", rec.Client, "tx", rec.Tx, "err", err)
		}
	}

	out := csvio.NewWriter(os.Stdout)
	for _, snap := range proc.Snapshots() {
		if err := out.Write(snap); err != nil {
			return err
		}
	}
	return out.Flush()
}

// runServe hosts the processor behind the HTTP API until interrupted.
func runServe(cfg config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var sink httpapi.SnapshotSink
	var closeFn func()
	if dsn := strings.TrimSpace(cfg.DatabaseURL); dsn != "" {
		pg, err := pgstore.Open(ctx, dsn)
		if err != nil {
			return fmt.Errorf("failed to connect to postgres: %w", err)
		}
		if err := pg.EnsureSchema(ctx); err != nil {
			pg.Close()
			return fmt.Errorf("failed to prepare snapshot schema: %w", err)
		}
		sink = pg
		closeFn = pg.Close
		logger.Info("snapshot sink: postgres")
	} else {
		logger.Info("snapshot sink: none")
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpapi.New(processor.New(), sink, logger).Handler(),
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("payment processor listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctxShutdown); err != nil {
			logger.Error("server shutdown error", "err", err)
		}
	case err := <-errCh:
		runErr = err
	}
	if closeFn != nil {
		closeFn()
	}
	return runErr
}

// parseLogLevel maps env values to slog.Leveler.
func parseLogLevel(s string) slog.Leveler {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "err":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func buildLogger(cfg config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLogLevel(cfg.LogLevel)}
	if strings.ToLower(strings.TrimSpace(cfg.LogFormat)) == "text" {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}
