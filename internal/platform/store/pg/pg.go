// Package pg opens the pgx pool the subscription store runs on
package pg

import (
	"context"
	"fmt"
	"time"

	"videotube/internal/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Config configures the pool and its statement logging
type Config struct {
	URL      string
	MaxConns int32

	// LogSQL logs every statement at debug
	LogSQL bool
	// Slow logs statements at or above this duration at warn; zero disables
	Slow time.Duration
}

var newPool = pgxpool.NewWithConfig

// Open parses cfg.URL and creates a pool; no connection is made until first use
func Open(ctx context.Context, cfg Config, log logger.Logger) (*pgxpool.Pool, error) {
	pcfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("pg: parse url: %w", err)
	}
	if cfg.MaxConns > 0 {
		pcfg.MaxConns = cfg.MaxConns
	}
	if cfg.LogSQL || cfg.Slow > 0 {
		pcfg.ConnConfig.Tracer = &Tracer{
			Log:  log.With().Str("component", "pg").Logger(),
			All:  cfg.LogSQL,
			Slow: cfg.Slow,
		}
	}
	pool, err := newPool(ctx, pcfg)
	if err != nil {
		return nil, fmt.Errorf("pg: new pool: %w", err)
	}
	return pool, nil
}

// Pinger is satisfied by *pgxpool.Pool
type Pinger interface {
	Ping(ctx context.Context) error
}

// WaitReady pings p until it answers, backing off from 150ms up to 2s between attempts
func WaitReady(ctx context.Context, p Pinger, attempts int, timeout time.Duration) error {
	if attempts <= 0 {
		attempts = 1
	}
	backoff := 150 * time.Millisecond
	var last error
	for i := 0; i < attempts; i++ {
		pctx, cancel := context.WithTimeout(ctx, timeout)
		last = p.Ping(pctx)
		cancel()
		if last == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, 2*time.Second)
	}
	return fmt.Errorf("pg: not ready after %d attempts: %w", attempts, last)
}
