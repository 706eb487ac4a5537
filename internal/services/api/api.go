// Package api provides the HTTP API for the application
package api

import (
	"time"

	"videotube/internal/adapters/youtube"
	"videotube/internal/platform/config"
	"videotube/internal/platform/logger"
	"videotube/internal/platform/net/middleware"
	phttp "videotube/internal/platform/net/http"
	"videotube/internal/platform/store"

	"videotube/internal/modkit"
	"videotube/internal/modkit/httpkit"
	"videotube/internal/modkit/swaggerkit"

	metamod "videotube/internal/services/api/meta/module"
	subsmod "videotube/internal/services/api/subscriptions/module"
	telemetrymod "videotube/internal/services/api/telemetry/module"
	ytmod "videotube/internal/services/api/youtube/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	YouTube        youtube.API
	Auth           middleware.AuthPort
	EnableSwagger  bool
	EnableProfiler bool
	Telemetry      bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	log := logger.Get()
	if opt.Logger != nil {
		log = opt.Logger
	}

	// shared deps for modules
	deps := modkit.Deps{
		Log:     *log,
		Cfg:     opt.Config,
		YouTube: opt.YouTube,
		Auth:    opt.Auth,
	}
	if opt.Store != nil {
		deps.PG = opt.Store.PG
		deps.CH = opt.Store.CH
		deps.Redis = opt.Store.Redis
	}

	yt := ytmod.New(deps)
	// meta reports on whatever backend the proxy ended up with
	deps.YouTube = modkit.MustPortsOf[ytmod.Ports](yt).API

	mods := []modkit.Module{
		metamod.New(deps),
		yt,
		subsmod.New(deps),
	}
	if opt.Telemetry {
		mods = append(mods, telemetrymod.New(deps))
	}

	stack := httpkit.CommonStack(httpkit.StackOptions{
		CORSOrigins: opt.Config.MayCSV("CORS_ORIGINS", []string{"*"}),
		Timeout:     opt.Config.MayDuration("TIMEOUT", 30*time.Second),
	})

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, swaggerkit.Options{
			Enabled:     opt.EnableSwagger,
			TitleSuffix: opt.Config.MayString("DOCS_TITLE_SUFFIX", ""),
		})
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			m.MountRoutes(api)
			log.Debug().Str("module", m.Name()).Msg("module mounted")
		}
	})
}
