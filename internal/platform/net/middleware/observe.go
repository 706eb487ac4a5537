package middleware

import (
	"net/http"
	"runtime/debug"
	"time"

	perr "videotube/internal/platform/errors"
	"videotube/internal/platform/logger"
	pnet "videotube/internal/platform/net"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// Writer renders a status and body, normally phttp.JSON
type Writer func(w http.ResponseWriter, status int, body any)

// AccessLog logs one line per request once the handler returns. 5xx log at
// error, requests slower than slow at warn when slow > 0, the rest at info.
// The request id is put on the logger context for logger.C
func AccessLog(slow time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			ctx := logger.WithRequest(r.Context(), pnet.RequestID(r.Context()), "")
			began := time.Now()
			next.ServeHTTP(ww, r.WithContext(ctx))
			took := time.Since(began)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			log := logger.C(ctx)
			ev := log.Info()
			if status >= 500 {
				ev = log.Error()
			} else if slow > 0 && took >= slow {
				ev = log.Warn()
			}
			ev.Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("query", r.URL.RawQuery).
				Int("status", status).
				Int("bytes", ww.BytesWritten()).
				Dur("elapsed", took).
				Msg("request done")
		})
	}
}

// Recover turns a handler panic into a 500 envelope and logs the stack.
// http.ErrAbortHandler is re-raised so net/http can abort the connection
func Recover(write Writer) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if v == http.ErrAbortHandler {
					panic(v)
				}
				rid := pnet.RequestID(r.Context())
				logger.C(r.Context()).Error().
					Str("request_id", rid).
					Interface("panic", v).
					Bytes("stack", debug.Stack()).
					Msg("panic recovered")
				status, body := pnet.Error(perr.PanicErrf("panic recovered"), rid)
				write(w, status, body)
			}()
			next.ServeHTTP(w, r)
		})
	}
}
