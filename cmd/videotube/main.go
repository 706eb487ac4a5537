package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"videotube/internal/adapters/gateway"
	"videotube/internal/platform/config"
	"videotube/internal/platform/logger"
	"videotube/internal/platform/monitor"
	"videotube/internal/platform/store/kv"
	"videotube/internal/services/cli"

	"github.com/google/uuid"
)

func defaultState() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "videotube.db"
	}
	return filepath.Join(dir, "videotube", "state.db")
}

// deviceID returns the id this install reports under, minting one on first run
func deviceID(ctx context.Context, db *kv.KV) string {
	b, ok, err := db.Get(ctx, "device-id")
	if err == nil && ok {
		if id, perr := uuid.ParseBytes(b); perr == nil {
			return id.String()
		}
	}
	id := uuid.NewString()
	_ = db.Put(ctx, "device-id", []byte(id))
	return id
}

func main() { os.Exit(run()) }

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// stdout belongs to command output
	logger.Init(logger.FromEnv(logger.Options{Level: "warn", Format: "console", Writer: os.Stderr}))
	cfg := config.New().Prefix("VIDEOTUBE_")
	l := logger.Get()

	db, err := kv.Open(cfg.MayString("STATE", defaultState()))
	if err != nil {
		l.Error().Err(err).Msg("open state")
		return 1
	}
	defer func() {
		if err := db.Close(); err != nil {
			l.Error().Err(err).Msg("close state")
		}
	}()

	gw := gateway.NewClient(gateway.Options{
		BaseURL: cfg.MayString("API_URL", ""),
		Token:   cfg.MayString("TOKEN", ""),
		Timeout: cfg.MayDuration("TIMEOUT", 15*time.Second),
	})

	mon := monitor.New(nil)
	if cfg.MayBool("TELEMETRY", true) {
		mon.SetReporter(gw)
	}
	mon.SetUser(deviceID(ctx, db), "")
	monitor.SetDefault(mon)

	app := cli.New(cli.Deps{API: gw, Subs: gw, Blob: db, Out: os.Stdout})
	if err := app.Run(ctx, os.Args[1:]); err != nil {
		if errors.Is(err, cli.ErrUsage) {
			cli.Usage(os.Stderr)
			l.Error().Err(err).Msg("bad command line")
			return 2
		}
		l.Error().Err(err).Msg("command failed")
		return 1
	}
	return 0
}
