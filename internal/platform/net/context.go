// Package net provides utilities for working with request contexts
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// ctxKey is an unexported key type for context values
type ctxKey string

const (
	keyUserID ctxKey = "user_id"
	keyEmail  ctxKey = "email"
)

// Principal is the signed-in account a request acts for
type Principal struct {
	UserID string
	Email  string
}

// WithRequest annotates context with the request id and, when known, the user id
func WithRequest(ctx context.Context, reqID, userID string) context.Context {
	if reqID != "" {
		// set chi RequestID so chimw.GetReqID can retrieve it
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	return WithUser(ctx, userID)
}

// WithUser annotates context with the authenticated user id
func WithUser(ctx context.Context, userID string) context.Context {
	if userID != "" {
		ctx = context.WithValue(ctx, keyUserID, userID)
	}
	return ctx
}

// WithPrincipal annotates context with every known field of p
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	ctx = WithUser(ctx, p.UserID)
	if p.Email != "" {
		ctx = context.WithValue(ctx, keyEmail, p.Email)
	}
	return ctx
}

// RequestID returns the request id on the context if present
func RequestID(ctx context.Context) string {
	return chimw.GetReqID(ctx)
}

// UserID returns the user id on the context if present
func UserID(ctx context.Context) string {
	if v, ok := ctx.Value(keyUserID).(string); ok {
		return v
	}
	return ""
}

// PrincipalFrom returns the principal stored on ctx; UserID is empty when anonymous
func PrincipalFrom(ctx context.Context) Principal {
	p := Principal{UserID: UserID(ctx)}
	if v, ok := ctx.Value(keyEmail).(string); ok {
		p.Email = v
	}
	return p
}
