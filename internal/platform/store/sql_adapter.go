package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgxQuerier is shared by *pgxpool.Pool and pgx.Tx
type pgxQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// pgQueries exposes a pgx querier as a RowQuerier; pgx values already
// satisfy Row, Rows and CommandTag
type pgQueries struct{ q pgxQuerier }

func (p pgQueries) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	return p.q.Exec(ctx, sql, args...)
}

func (p pgQueries) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	rs, err := p.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return rs, nil
}

func (p pgQueries) QueryRow(ctx context.Context, sql string, args ...any) Row {
	return p.q.QueryRow(ctx, sql, args...)
}

// pgAdapter is the TxRunner over a pool
type pgAdapter struct {
	pgQueries
	pool *pgxpool.Pool
}

func newPGAdapter(pool *pgxpool.Pool) *pgAdapter {
	return &pgAdapter{pgQueries: pgQueries{q: pool}, pool: pool}
}

// Tx commits when fn returns nil and rolls back otherwise
func (a *pgAdapter) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	return pgx.BeginFunc(ctx, a.pool, func(tx pgx.Tx) error {
		return fn(pgQueries{q: tx})
	})
}

func (a *pgAdapter) Ping(ctx context.Context) error { return a.pool.Ping(ctx) }

func (a *pgAdapter) Close() error {
	a.pool.Close()
	return nil
}
