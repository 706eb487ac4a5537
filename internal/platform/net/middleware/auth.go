package middleware

import (
	"net/http"

	pnet "videotube/internal/platform/net"
)

// AuthPort resolves who a request acts for
type AuthPort interface {
	// Parse returns the principal, or an Unauthorized error
	Parse(r *http.Request) (pnet.Principal, error)
}

// Auth puts the parsed principal on the request context and answers with
// the port's error otherwise. With a nil port every request is anonymous
func Auth(p AuthPort, write Writer) Middleware {
	if p == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			who, err := p.Parse(r)
			if err == nil {
				next.ServeHTTP(w, r.WithContext(pnet.WithPrincipal(r.Context(), who)))
				return
			}
			status, body := pnet.Error(err, pnet.RequestID(r.Context()))
			write(w, status, body)
		})
	}
}
