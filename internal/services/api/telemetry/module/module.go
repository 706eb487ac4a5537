// Package module wires client error telemetry into the API
package module

import (
	"context"
	"time"

	modkit "videotube/internal/modkit"
	"videotube/internal/modkit/httpkit"

	telhttp "videotube/internal/services/api/telemetry/http"
	telrepo "videotube/internal/services/api/telemetry/repo"
)

// New constructs the telemetry module
// reports go to clickhouse when deps.CH is set and its table can be created, otherwise to the log
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	var sink telrepo.Sink = telrepo.NewLog()
	if deps.CH != nil {
		chs := telrepo.NewCH(deps.CH)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err := chs.EnsureSchema(ctx)
		cancel()
		if err != nil {
			deps.Log.Error().Err(err).Msg("telemetry: clickhouse schema failed, logging reports instead")
		} else {
			sink = chs
		}
	}

	return modkit.Build(func(r httpkit.Router) { telhttp.Register(r, sink) },
		append([]modkit.Option{
			modkit.WithName("telemetry"),
			modkit.WithPrefix("/telemetry"),
			modkit.WithPorts(sink),
		}, opts...)...)
}
