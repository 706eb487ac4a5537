package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestOpenPG_ParentAlreadyCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := PGConfig{URL: "postgres://u:p@127.0.0.1:1/db?sslmode=disable", MaxConns: 1}

	start := time.Now()
	txr, err := openPG(ctx, cfg, zerolog.Nop())
	if err == nil || txr != nil {
		t.Fatalf("expected canceled open to fail, got %T %v", txr, err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("expected quick failure, got %v", elapsed)
	}
}

func TestRedisOptions(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		cfg      RedisConfig
		wantAddr string
		wantDB   int
		wantErr  bool
	}{
		{name: "url wins", cfg: RedisConfig{URL: "redis://cache:6380/3", Addr: "ignored:1"}, wantAddr: "cache:6380", wantDB: 3},
		{name: "addr and db", cfg: RedisConfig{Addr: "127.0.0.1:6379", DB: 2}, wantAddr: "127.0.0.1:6379", wantDB: 2},
		{name: "bad url", cfg: RedisConfig{URL: "http://nope"}, wantErr: true},
		{name: "nothing set", cfg: RedisConfig{}, wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			opts, err := redisOptions(tc.cfg)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", opts)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if opts.Addr != tc.wantAddr || opts.DB != tc.wantDB {
				t.Fatalf("got addr=%q db=%d", opts.Addr, opts.DB)
			}
		})
	}
}

func TestOpenRedis_Unreachable(t *testing.T) {
	t.Parallel()

	cfg := Config{RDS: RedisConfig{Enabled: true, Addr: "127.0.0.1:1", PingTimeout: 500 * time.Millisecond}}
	rdb, err := openRedis(context.Background(), cfg, zerolog.Nop())
	if err == nil || rdb != nil {
		t.Fatalf("expected ping failure, got %v %v", rdb, err)
	}
}

func TestOpenRedis_Integration(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("skipping Redis integration test: set TEST_REDIS_URL to enable")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	rdb, err := openRedis(ctx, Config{AppName: "videotube-test", RDS: RedisConfig{URL: url}}, zerolog.Nop())
	if err != nil {
		t.Fatalf("openRedis: %v", err)
	}
	defer rdb.Close()
	if err := rdb.Set(ctx, "videotube:test", "1", time.Minute).Err(); err != nil {
		t.Fatalf("set: %v", err)
	}
}
