package modkit

import (
	"net/http"

	"videotube/internal/modkit/httpkit"
	str "videotube/internal/platform/strings"
)

// Module is a named route group mounted under its prefix, plus the ports
// it offers sibling modules
type Module interface {
	MountRoutes(r httpkit.Router)
	Ports() any
	Name() string
}

// Option tweaks a Base before a module is returned
type Option func(*Base)

// WithName sets the name used in logs
func WithName(name string) Option { return func(b *Base) { b.name = name } }

// WithPrefix sets the mount point, e.g. "/youtube"
func WithPrefix(prefix string) Option { return func(b *Base) { b.prefix = prefix } }

// WithMiddlewares adds per module middleware, applied in order
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(b *Base) { b.mws = append(b.mws, mw...) }
}

// WithPorts sets the port set returned by Ports
func WithPorts(p any) Option { return func(b *Base) { b.ports = p } }

// WithRegister attaches extra routes after the module's own
func WithRegister(fn func(httpkit.Router)) Option {
	return func(b *Base) { b.extra = append(b.extra, fn) }
}

// Base implements Module for a register func; modules embed it
type Base struct {
	name   string
	prefix string
	mws    []func(http.Handler) http.Handler
	ports  any

	register func(httpkit.Router)
	extra    []func(httpkit.Router)
}

// Build applies opts in order so caller options override module defaults
func Build(register func(httpkit.Router), opts ...Option) *Base {
	b := &Base{register: register}
	for _, o := range opts {
		o(b)
	}
	return b
}

// MountRoutes implements Module
func (b *Base) MountRoutes(r httpkit.Router) {
	r.Route(b.Prefix(), func(rr httpkit.Router) {
		if len(b.mws) > 0 {
			rr.Use(b.mws...)
		}
		if b.register != nil {
			b.register(rr)
		}
		for _, fn := range b.extra {
			fn(rr)
		}
	})
}

// Name implements Module
func (b *Base) Name() string { return str.MustString(b.name, "module name") }

// Prefix returns the normalized mount point
func (b *Base) Prefix() string { return str.MustPrefix(b.prefix) }

// Ports implements Module
func (b *Base) Ports() any { return b.ports }

// MustPortsOf returns m's ports as T and panics when they are something else
func MustPortsOf[T any](m Module) T {
	p, ok := m.Ports().(T)
	if !ok {
		panic("modkit: module " + m.Name() + " does not offer the requested ports")
	}
	return p
}
