// @title         VideoTube API
// @version       0.1.0
// @description   YouTube proxy, user subscriptions and client telemetry
// @BasePath      /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"context"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"videotube/internal/adapters/youtube"
	"videotube/internal/core/version"
	"videotube/internal/modkit/httpkit"
	"videotube/internal/modkit/repokit"
	"videotube/internal/platform/config"
	"videotube/internal/platform/logger"
	phttp "videotube/internal/platform/net/http"
	"videotube/internal/platform/store"

	"videotube/internal/services/api"
	subsrepo "videotube/internal/services/api/subscriptions/repo"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")
	ytCfg := root.Prefix("YOUTUBE_")
	pgCfg := root.Prefix("SERVICE_PGSQL_")
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_")
	rdsCfg := root.Prefix("SERVICE_REDIS_")

	logger.Init(logger.FromEnv(logger.Options{Level: "info", Format: "json", Service: "videotube-api"}))
	l := logger.Get()
	l.Info().Str("version", version.Info().Version).Msg("videotube-api starting")

	backend := strings.ToLower(apiCfg.MayEnum("SUBSCRIPTIONS_BACKEND", "memory", "memory", "pg"))
	pgURL := ""
	if backend == "pg" {
		pgURL = pgCfg.MustString("DBURL")
	}
	chURL := chCfg.MayString("DBURL", "")
	rdsURL := rdsCfg.MayString("URL", "")
	rdsAddr := rdsCfg.MayString("ADDR", "")

	st, err := store.Open(
		ctx,
		store.Config{
			AppName: "videotube-api",
			PG: store.PGConfig{
				Enabled:        backend == "pg",
				URL:            pgURL,
				MaxConns:       int32(pgCfg.MayInt("MAX_CONNS", 4)),
				LogSQL:         pgCfg.MayBool("LOG_SQL", false),
				Slow:           pgCfg.MayDuration("SLOW", 500*time.Millisecond),
				ConnectRetries: pgCfg.MayInt("CONNECT_RETRIES", 20),
			},
			CH: store.CHConfig{
				Enabled: chURL != "",
				URL:     chURL,
			},
			RDS: store.RedisConfig{
				Enabled: rdsURL != "" || rdsAddr != "",
				URL:     rdsURL,
				Addr:    rdsAddr,
				DB:      rdsCfg.MayInt("DB", 0),
			},
		},
		store.WithLogger(*l),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	repokit.MustGuard(ctx, st)
	if st.PG != nil {
		if err := subsrepo.EnsureSchema(ctx, repokit.RequireQueryer(st.PG)); err != nil {
			l.Panic().Err(err).Msg("subscriptions schema failed")
		}
	}

	yt := youtube.New(youtube.Config{
		Client: youtube.Options{
			BaseURL: ytCfg.MayString("BASE_URL", ""),
			APIKey:  ytCfg.MayString("API_KEY", ""),
			Timeout: ytCfg.MayDuration("TIMEOUT", 10*time.Second),
			QPS:     ytCfg.MayFloat64("QPS", 5),
			Burst:   ytCfg.MayInt("BURST", 10),
		},
		CacheTTL: ytCfg.MayDuration("CACHE_TTL", 5*time.Minute),
		Redis:    st.Redis,
	})

	tokens := apiCfg.MayCSV("SESSION_TOKENS", nil)
	if len(tokens) == 0 {
		l.Warn().Msg("no CORE_API_SESSION_TOKENS configured, subscription routes will reject every caller")
	}

	// http server (reads CORE_API_PORT / CORE_API_ADDR)
	srv := phttp.NewServer(apiCfg)

	api.Mount(
		srv.Router(),
		api.Options{
			Config:         apiCfg,
			Store:          st,
			Logger:         l,
			YouTube:        yt,
			Auth:           httpkit.NewPortFunc(httpkit.StaticTokens(tokens)),
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
			Telemetry:      apiCfg.MayBool("TELEMETRY", true),
		},
	)

	// run
	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
