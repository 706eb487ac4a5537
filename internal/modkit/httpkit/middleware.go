package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	phttp "videotube/internal/platform/net/http"
	"videotube/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack
type StackOptions struct {
	CORSOrigins []string
	Timeout     time.Duration // default 30s
	SlowLog     time.Duration // default 1s
}

// CommonStack is the middleware every /api/v1 route runs behind, outermost first
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	if o.SlowLog <= 0 {
		o.SlowLog = time.Second
	}
	return []func(http.Handler) http.Handler{
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recover(phttp.JSON),
		middleware.AccessLog(o.SlowLog),
		middleware.CORS(o.CORSOrigins),
		middleware.Compress(flate.BestSpeed),
		middleware.Heartbeat("/health"),
		middleware.StripSlashes,
		middleware.Timeout(o.Timeout),
	}
}

// Auth resolves the principal through p and writes failures as envelopes
func Auth(p middleware.AuthPort) func(http.Handler) http.Handler {
	return middleware.Auth(p, phttp.JSON)
}

// MountAPIV1 scopes mount under /api/v1 with mw applied to every route in it
func MountAPIV1(r Router, mw []func(http.Handler) http.Handler, mount func(Router)) {
	r.Route("/api/v1", func(api Router) {
		api.Use(mw...)
		mount(api)
	})
}
