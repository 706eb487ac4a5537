// Package ch wraps the clickhouse-go native driver behind a narrow client
package ch

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"videotube/internal/core/version"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// Config configures a ClickHouse client
type Config struct {
	URL  string
	Role string // reported to the server as a client product, e.g. "videotube-api"
}

// Rows is the iteration surface returned by Query
type Rows = driver.Rows

// CH is a thin client over a native clickhouse connection pool
type CH struct {
	conn driver.Conn
}

// ErrClosed is returned when the client has no live connection
var ErrClosed = errors.New("ch: client not open")

// Open parses cfg.URL and prepares a pool; connections are dialed lazily
func Open(_ context.Context, cfg Config) (*CH, error) {
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, errors.New("ch: empty url")
	}
	opts, err := clickhouse.ParseDSN(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("ch: parse dsn: %w", err)
	}
	opts.ClientInfo = clientInfo(cfg.Role)

	conn, err := clickhouse.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("ch: open: %w", err)
	}
	return &CH{conn: conn}, nil
}

// Insert appends rows to table in a single batch
func (c *CH) Insert(ctx context.Context, table string, rows [][]any) error {
	if c == nil || c.conn == nil {
		return ErrClosed
	}
	if len(rows) == 0 {
		return nil
	}
	batch, err := c.conn.PrepareBatch(ctx, "INSERT INTO "+table)
	if err != nil {
		return fmt.Errorf("ch: prepare %s: %w", table, err)
	}
	for i, r := range rows {
		if err := batch.Append(r...); err != nil {
			_ = batch.Abort()
			return fmt.Errorf("ch: append row %d: %w", i, err)
		}
	}
	if err := batch.Send(); err != nil {
		return fmt.Errorf("ch: send %s: %w", table, err)
	}
	return nil
}

// Exec runs a statement that returns no rows (DDL, mutations)
func (c *CH) Exec(ctx context.Context, sql string, args ...any) error {
	if c == nil || c.conn == nil {
		return ErrClosed
	}
	return c.conn.Exec(ctx, sql, args...)
}

// Query runs sql and returns the driver rows
func (c *CH) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	if c == nil || c.conn == nil {
		return nil, ErrClosed
	}
	return c.conn.Query(ctx, sql, args...)
}

// Ping dials if needed and round-trips a ping packet
func (c *CH) Ping(ctx context.Context) error {
	if c == nil || c.conn == nil {
		return ErrClosed
	}
	return c.conn.Ping(ctx)
}

// Close releases the pool; a nil or unopened client is a no-op
func (c *CH) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// clientInfo names this build in system.query_log's client columns
func clientInfo(role string) clickhouse.ClientInfo {
	bi := version.Info()
	info := clickhouse.ClientInfo{}
	if role = strings.TrimSpace(role); role != "" {
		info.Products = append(info.Products, struct{ Name, Version string }{role, bi.Version})
	}
	info.Products = append(info.Products, struct{ Name, Version string }{"commit", bi.Commit})
	return info
}
