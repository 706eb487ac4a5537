// Package modkit provides module wiring and core deps
package modkit

import (
	"videotube/internal/adapters/youtube"
	"videotube/internal/modkit/repokit"
	"videotube/internal/platform/config"
	"videotube/internal/platform/logger"
	"videotube/internal/platform/net/middleware"
	"videotube/internal/platform/store"

	"github.com/redis/go-redis/v9"
)

// Deps is what every module constructor receives; optional backends are nil when disabled
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner
	CH  store.Clickhouse

	// Redis is the shared cache client, nil when disabled
	Redis redis.UniversalClient

	// YouTube is the upstream the proxy routes serve from
	YouTube youtube.API

	// Auth resolves bearer tokens on protected routes; nil leaves them open
	Auth middleware.AuthPort
}
