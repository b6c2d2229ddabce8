package postgres

// Package postgres provides a pgx-backed sink for the account snapshots a
// completed run produces. Processor state never touches the database; only
// the final output rows are stored, keyed by a per-export run id.

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heavyguana-aym/kithmonite/internal/ledger"
)

// Store holds a pgx connection pool. All methods are safe for concurrent use.
type Store struct {
	pool *pgxpool.Pool
}

// Open establishes a pgx pool using the provided connection string and
// verifies connectivity.
func Open(ctx context.Context, dsn string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return &Store{pool: pool}, nil
}

// Close releases the underlying pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Ready pings the pool to verify connectivity.
func (s *Store) Ready(ctx context.Context) error { return s.pool.Ping(ctx) }

// EnsureSchema creates the snapshot table when missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		create table if not exists account_snapshots (
			run_id     uuid        not null,
			client     integer     not null,
			available  numeric     not null,
			held       numeric     not null,
			total      numeric     not null,
			locked     boolean     not null,
			created_at timestamptz not null default now(),
			primary key (run_id, client)
		)
	`)
	return err
}

// SaveSnapshots stores every snapshot of a run atomically under runID.
func (s *Store) SaveSnapshots(ctx context.Context, runID uuid.UUID, snaps []ledger.Snapshot) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()
	for _, snap := range snaps {
		if _, err := tx.Exec(ctx, `
			insert into account_snapshots (run_id, client, available, held, total, locked)
			values ($1, $2, $3, $4, $5, $6)
		`, runID, int32(snap.Client), snap.Available.String(), snap.Held.String(), snap.Total.String(), snap.Locked); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// RunSnapshots reads back the snapshots stored under runID.
func (s *Store) RunSnapshots(ctx context.Context, runID uuid.UUID) ([]ledger.Snapshot, error) {
	rows, err := s.pool.Query(ctx, `
		select client, available, held, total, locked
		from account_snapshots
		where run_id = $1
		order by client
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]ledger.Snapshot, 0)
	for rows.Next() {
		var client int32
		var available, held, total string
		var locked bool
		if err := rows.Scan(&client, &available, &held, &total, &locked); err != nil {
			return nil, err
		}
		snap := ledger.Snapshot{Client: uint16(client), Locked: locked}
		if snap.Available, err = ledger.ParseMoney(available); err != nil {
			return nil, err
		}
		if snap.Held, err = ledger.ParseMoney(held); err != nil {
			return nil, err
		}
		if snap.Total, err = ledger.ParseMoney(total); err != nil {
			return nil, err
		}
		out = append(out, snap)
	}
	return out, rows.Err()
}
