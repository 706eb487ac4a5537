package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"videotube/internal/platform/logger"
	chx "videotube/internal/platform/store/ch"
	"videotube/internal/platform/store/pg"

	"github.com/redis/go-redis/v9"
)

// openPG opens the pool and waits for the server before handing it out
func openPG(ctx context.Context, cfg PGConfig, log logger.Logger) (TxRunner, error) {
	pool, err := pg.Open(ctx, pg.Config{
		URL:      cfg.URL,
		MaxConns: cfg.MaxConns,
		LogSQL:   cfg.LogSQL,
		Slow:     cfg.Slow,
	}, log)
	if err != nil {
		return nil, err
	}

	retries := cfg.ConnectRetries
	if retries <= 0 {
		retries = 20
	}
	timeout := cfg.PingTimeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if err := pg.WaitReady(ctx, pool, retries, timeout); err != nil {
		pool.Close()
		return nil, err
	}
	log.Info().Str("host", pool.Config().ConnConfig.Host).Int32("max_conns", pool.Config().MaxConns).Msg("postgres connected")
	return newPGAdapter(pool), nil
}

// openCH prepares a lazy clickhouse pool; Guard performs the first dial
func openCH(ctx context.Context, cfg Config) (Clickhouse, error) {
	c, err := chx.Open(ctx, chx.Config{URL: cfg.CH.URL, Role: cfg.AppName})
	if err != nil {
		return nil, err
	}
	return &chAdapter{c: c}, nil
}

// redisOptions resolves URL or Addr/DB into client options
func redisOptions(cfg RedisConfig) (*redis.Options, error) {
	switch {
	case cfg.URL != "":
		opts, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("redis url: %w", err)
		}
		return opts, nil
	case cfg.Addr != "":
		return &redis.Options{Addr: cfg.Addr, DB: cfg.DB}, nil
	default:
		return nil, errors.New("redis: neither url nor addr configured")
	}
}

// openRedis connects and pings once; an unreachable server fails boot
func openRedis(ctx context.Context, cfg Config, log logger.Logger) (redis.UniversalClient, error) {
	opts, err := redisOptions(cfg.RDS)
	if err != nil {
		return nil, err
	}
	if cfg.AppName != "" {
		opts.ClientName = cfg.AppName
	}
	timeout := cfg.RDS.PingTimeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}

	rdb := redis.NewClient(opts)
	pctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := rdb.Ping(pctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", opts.Addr, err)
	}
	log.Info().Str("addr", opts.Addr).Int("db", opts.DB).Msg("redis connected")
	return rdb, nil
}
