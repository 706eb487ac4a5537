// Package repokit holds the seams repos bind to so they never import a driver
package repokit

import (
	"context"
	"fmt"

	"videotube/internal/platform/store"
)

type (
	// Queryer is the read and write surface a SQL repo is bound to
	Queryer = store.RowQuerier

	// TxRunner runs a function inside a transaction
	TxRunner = store.TxRunner
)

// Binder binds a domain repo to a Queryer
type Binder[T any] interface {
	Bind(Queryer) T
}

// BindFunc adapts a function to a Binder
type BindFunc[T any] func(Queryer) T

// Bind calls f
func (f BindFunc[T]) Bind(q Queryer) T { return f(q) }

// RequireQueryer panics on a nil q
func RequireQueryer(q Queryer) Queryer {
	if q == nil {
		panic("repokit: nil Queryer")
	}
	return q
}

// MustBind checks q then binds
func MustBind[T any](b Binder[T], q Queryer) T {
	return b.Bind(RequireQueryer(q))
}

type guarder interface {
	Guard(context.Context) error
}

// MustGuard panics when the store's backends are not all reachable
func MustGuard(ctx context.Context, st guarder) {
	if err := st.Guard(ctx); err != nil {
		panic(fmt.Errorf("dependency guard failed: %w", err))
	}
}
