// Package module wires the YouTube proxy into the API
package module

import (
	"videotube/internal/adapters/youtube"
	modkit "videotube/internal/modkit"
	"videotube/internal/modkit/httpkit"

	ythttp "videotube/internal/services/api/youtube/http"
)

// Ports exposes the upstream to sibling modules (meta reads cache stats from it)
type Ports struct {
	API youtube.API
}

// New constructs the proxy module; deps.YouTube falls back to the fixture backend
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	api := deps.YouTube
	if api == nil {
		api = youtube.NewFixture()
	}
	return modkit.Build(func(r httpkit.Router) { ythttp.Register(r, api) },
		append([]modkit.Option{
			modkit.WithName("youtube"),
			modkit.WithPrefix("/youtube"),
			modkit.WithPorts(Ports{API: api}),
		}, opts...)...)
}
