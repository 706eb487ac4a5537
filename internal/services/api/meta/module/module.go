// Package module mounts the meta routes under /meta
package module

import (
	"context"
	"time"

	modkit "videotube/internal/modkit"
	"videotube/internal/modkit/httpkit"

	metahttp "videotube/internal/services/api/meta/http"
)

// probe returns v's Ping as a readiness probe; disabled or unpingable backends report skipped
func probe(v any) metahttp.Pinger {
	p, _ := v.(metahttp.Pinger)
	return p
}

// New builds the meta module; /ready covers the backends deps carries
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	redis := metahttp.Backend{Name: "redis"}
	if deps.Redis != nil {
		redis.Probe = metahttp.PingFunc(func(ctx context.Context) error { return deps.Redis.Ping(ctx).Err() })
	}
	d := metahttp.Deps{
		ServiceName: "videotube-api",
		StartedAt:   time.Now(),
		Upstream:    deps.YouTube,
		Backends: []metahttp.Backend{
			{Name: "pg", Probe: probe(deps.PG)},
			{Name: "ch", Probe: probe(deps.CH)},
			redis,
		},
	}
	return modkit.Build(func(r httpkit.Router) { metahttp.Register(r, d) },
		append([]modkit.Option{
			modkit.WithName("meta"),
			modkit.WithPrefix("/meta"),
		}, opts...)...)
}
