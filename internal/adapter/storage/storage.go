package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type db interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// Storage is the Postgres adapter behind every storage-facing port:
// vector search, full-text search, embedding reads, variant counts
// and category discounts.
type Storage struct {
	db db
}

func New(ctx context.Context, dsn string) (Storage, error) {
	const op = "storage.New"

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return Storage{}, fmt.Errorf("%s: %w", op, err)
	}

	s := Storage{pool}
	if err := s.ping(ctx); err != nil {
		pool.Close()
		return Storage{}, err
	}
	return s, nil
}

func (s Storage) ping(ctx context.Context) error {
	const op = "Storage.ping"
	if err := s.db.Ping(ctx); err != nil {
		return fmt.Errorf("%s: database unavailable: %w", op, err)
	}
	slog.Info("database is available", "op", op)
	return nil
}

func (s Storage) Close() {
	const op = "Storage.Close"
	log := slog.With("op", op)

	log.Info("closing database pool...")
	s.db.Close()
	log.Info("database pool is closed")
}
