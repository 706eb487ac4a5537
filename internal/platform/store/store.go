// Package store opens the optional backends the api runs on and hands
// repos narrow seams over them
package store

import (
	"context"
	"errors"
	"fmt"

	"videotube/internal/platform/logger"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Store holds whichever backends were enabled; the rest stay nil
type Store struct {
	Log logger.Logger

	PG    TxRunner
	CH    Clickhouse
	Redis redis.UniversalClient
}

// Row is a single result row
type Row interface {
	Scan(dest ...any) error
}

// Rows is an open result set; callers must Close it
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}

// CommandTag reports what a statement did
type CommandTag interface {
	String() string
	RowsAffected() int64
}

// RowQuerier is the sql surface repos see
type RowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner runs fn inside a transaction, rolling back when fn errors
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
}

// Clickhouse is the columnar seam telemetry writes through
type Clickhouse interface {
	Insert(ctx context.Context, table string, data any) error
	Exec(ctx context.Context, sql string, args ...any) error
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	Close() error
}

// Pinger reports readiness
type Pinger interface{ Ping(context.Context) error }

// Option configures a Store before backends open
type Option func(*Store)

// WithLogger sets the logger backends log through
func WithLogger(l logger.Logger) Option { return func(s *Store) { s.Log = l } }

// Open brings up every backend enabled in cfg; anything already opened is
// closed again when a later backend fails
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{Log: zerolog.Nop()}
	for _, o := range opts {
		o(s)
	}

	var err error
	if cfg.PG.Enabled {
		if s.PG, err = openPG(ctx, cfg.PG, s.Log); err != nil {
			return nil, err
		}
	}
	if cfg.CH.Enabled {
		if s.CH, err = openCH(ctx, cfg); err != nil {
			_ = s.Close(ctx)
			return nil, err
		}
	}
	if cfg.RDS.Enabled {
		if s.Redis, err = openRedis(ctx, cfg, s.Log); err != nil {
			_ = s.Close(ctx)
			return nil, err
		}
	}
	return s, nil
}

// Guard pings every open backend that can be pinged and joins the failures
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("store: nil")
	}
	var errs []error
	check := func(name string, v any) {
		p, ok := v.(Pinger)
		if !ok {
			return
		}
		if err := p.Ping(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	if s.PG != nil {
		check("pg", s.PG)
	}
	if s.CH != nil {
		check("ch", s.CH)
	}
	if s.Redis != nil {
		if err := s.Redis.Ping(ctx).Err(); err != nil {
			errs = append(errs, fmt.Errorf("redis: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Close releases redis, clickhouse and postgres in that order
func (s *Store) Close(context.Context) error {
	var errs []error
	if s.Redis != nil {
		errs = append(errs, s.Redis.Close())
	}
	if s.CH != nil {
		errs = append(errs, s.CH.Close())
	}
	if c, ok := s.PG.(interface{ Close() error }); ok {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
