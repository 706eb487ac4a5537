// Package middleware is the http middleware the api stacks in front of its
// modules; most of it is chi's, re-exported so callers never import chi
package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	chicors "github.com/go-chi/cors"
)

// Middleware is the standard net/http decorator
type Middleware = func(http.Handler) http.Handler

var (
	// RequestID reuses an inbound X-Request-Id or mints one
	RequestID Middleware = chimw.RequestID
	// RealIP trusts X-Forwarded-For and X-Real-IP
	RealIP Middleware = chimw.RealIP
	// StripSlashes routes /x/ as /x
	StripSlashes Middleware = chimw.StripSlashes
)

// Timeout cancels the request context after d
func Timeout(d time.Duration) Middleware { return chimw.Timeout(d) }

// Heartbeat answers GET path with 200 before routing
func Heartbeat(path string) Middleware { return chimw.Heartbeat(path) }

// Compress gzips responses at level
func Compress(level int) Middleware { return chimw.NewCompressor(level).Handler }

var (
	corsMethods = []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions}
	corsHeaders = []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"}
)

// CORS lets the listed browser origins call the api with a bearer token
func CORS(origins []string) Middleware {
	return chicors.Handler(chicors.Options{
		AllowedOrigins: origins,
		AllowedMethods: corsMethods,
		AllowedHeaders: corsHeaders,
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	})
}
