package xpgx

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Pool wraps pgxpool with squirrel-aware helpers so store code works with
// builders instead of raw SQL strings.
type Pool struct {
	*pgxpool.Pool
}

func NewPool(ctx context.Context, dsn string) (*Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("xpgx: create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("xpgx: ping: %w", err)
	}
	return &Pool{Pool: pool}, nil
}

func (p *Pool) Execx(ctx context.Context, query squirrel.Sqlizer) (pgconn.CommandTag, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return pgconn.CommandTag{}, fmt.Errorf("xpgx: build query: %w", err)
	}
	return p.Exec(ctx, sql, args...)
}

func (p *Pool) Queryx(ctx context.Context, query squirrel.Sqlizer) (pgx.Rows, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("xpgx: build query: %w", err)
	}
	return p.Query(ctx, sql, args...)
}

// Get scans a single row into T by matching db tags to column names.
func Get[T any](ctx context.Context, p *Pool, query squirrel.Sqlizer) (T, error) {
	var zero T
	rows, err := p.Queryx(ctx, query)
	if err != nil {
		return zero, err
	}
	return pgx.CollectOneRow(rows, pgx.RowToStructByNameLax[T])
}

// Select scans all rows into a slice of T.
func Select[T any](ctx context.Context, p *Pool, query squirrel.Sqlizer) ([]T, error) {
	rows, err := p.Queryx(ctx, query)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByNameLax[T])
}
