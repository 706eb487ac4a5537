// Package module wires user subscriptions into the API
package module

import (
	modkit "videotube/internal/modkit"
	"videotube/internal/modkit/httpkit"
	"videotube/internal/modkit/repokit"
	subshttp "videotube/internal/services/api/subscriptions/http"
	subsrepo "videotube/internal/services/api/subscriptions/repo"
	subssvc "videotube/internal/services/api/subscriptions/service"
)

// Module serves /subscriptions behind bearer auth
type Module struct {
	*modkit.Base
	svc subssvc.Service
}

// New constructs the subscriptions module
// postgres backs the set when deps.PG is present, otherwise it lives in memory
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	var repo subsrepo.Repo
	if deps.PG != nil {
		repo = repokit.MustBind(subsrepo.NewPG(), deps.PG)
	} else {
		deps.Log.Warn().Msg("subscriptions: no postgres, using in-memory repo")
		repo = subsrepo.NewMemory()
	}

	m := &Module{svc: subssvc.New(repo)}
	m.Base = modkit.Build(func(r httpkit.Router) {
		httpkit.Protected(r, deps.Auth, func(pr httpkit.Router) {
			subshttp.Register(pr, m.svc)
		})
	}, append([]modkit.Option{
		modkit.WithName("subscriptions"),
		modkit.WithPrefix("/subscriptions"),
		modkit.WithPorts(m.svc),
	}, opts...)...)
	return m
}
