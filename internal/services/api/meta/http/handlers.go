// Package http serves liveness, readiness, build and cache introspection
package http

import (
	"context"
	"net/http"
	"time"

	"videotube/internal/adapters/youtube"
	"videotube/internal/core/version"
	"videotube/internal/modkit/httpkit"
)

// Pinger is a backend readiness probe
type Pinger interface {
	Ping(context.Context) error
}

// PingFunc lets a plain function serve as a Pinger
type PingFunc func(context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// Backend names a probe for /ready; a nil Probe reports skipped
type Backend struct {
	Name  string
	Probe Pinger
}

// Deps feed the meta routes
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	Backends    []Backend

	// Upstream reports cache counters when it has a Stats method
	Upstream any

	// ReadyTimeout bounds all pings together; 2s when zero
	ReadyTimeout time.Duration
}

type statsSource interface {
	Stats() youtube.CacheStats
}

type handlers struct {
	Deps
	now func() time.Time
}

// Register mounts /health, /ready, /version, /service and /cache on r
func Register(r httpkit.Router, d Deps) {
	if d.ReadyTimeout <= 0 {
		d.ReadyTimeout = 2 * time.Second
	}
	h := &handlers{Deps: d, now: time.Now}
	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
	httpkit.Get(r, "/cache", h.cache)
}

func stamp(t time.Time) string { return t.UTC().Format(time.RFC3339) }

// @Summary Health check
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /meta/health [get]
func (h *handlers) health(*http.Request) (any, error) {
	return HealthResponse{OK: true, Service: h.ServiceName, Started: stamp(h.StartedAt), Now: stamp(h.now())}, nil
}

// @Summary Readiness probe with dependency checks
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse
// @Router /meta/ready [get]
func (h *handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := context.WithTimeout(r.Context(), h.ReadyTimeout)
	defer cancel()

	out := ReadyResponse{Status: "ok", Checks: make([]Check, 0, len(h.Backends))}
	for _, b := range h.Backends {
		c := Check{Name: b.Name, Status: "skipped"}
		if b.Probe != nil {
			c.Status = "ok"
			if err := b.Probe.Ping(ctx); err != nil {
				c.Status, c.Error = "fail", err.Error()
				out.Status = "fail"
			}
		}
		out.Checks = append(out.Checks, c)
	}
	out.Now = stamp(h.now())
	return out, nil
}

// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo
// @Router /meta/version [get]
func (h *handlers) version(*http.Request) (any, error) { return version.Info(), nil }

// @Summary Service info and uptime
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse
// @Router /meta/service [get]
func (h *handlers) service(*http.Request) (any, error) {
	return ServiceResponse{
		Name:    h.ServiceName,
		Started: stamp(h.StartedAt),
		Uptime:  int64(h.now().Sub(h.StartedAt) / time.Second),
	}, nil
}

// @Summary Upstream response cache counters
// @Tags Meta
// @Produce json
// @Success 200 {object} CacheResponse
// @Router /meta/cache [get]
func (h *handlers) cache(*http.Request) (any, error) {
	src, ok := h.Upstream.(statsSource)
	if !ok {
		return CacheResponse{}, nil
	}
	st := src.Stats()
	out := CacheResponse{Enabled: true, Hits: st.Hits, Misses: st.Misses}
	if n := st.Hits + st.Misses; n > 0 {
		out.HitRate = float64(st.Hits) / float64(n)
	}
	return out, nil
}
