package httpkit

import (
	"net/http"
	"strings"

	perr "videotube/internal/platform/errors"
	pnet "videotube/internal/platform/net"
	"videotube/internal/platform/net/middleware"
)

var errUnauthorized = perr.Unauthorizedf("Unauthorized")

// Protected mounts fn's routes behind bearer auth resolved by p
func Protected(r Router, p middleware.AuthPort, fn func(Router)) {
	r.Group(func(g Router) {
		g.Use(Auth(p))
		fn(g)
	})
}

// User is the signed-in user id, or Unauthorized on an anonymous request
func User(r *http.Request) (string, error) {
	if uid := pnet.UserID(r.Context()); uid != "" {
		return uid, nil
	}
	return "", errUnauthorized
}

// Bearer extracts the token from "Authorization: Bearer <token>"; the scheme is case-insensitive
func Bearer(r *http.Request) (string, error) {
	scheme, tok, _ := strings.Cut(strings.TrimSpace(r.Header.Get("Authorization")), " ")
	tok = strings.TrimSpace(tok)
	if !strings.EqualFold(scheme, "bearer") || tok == "" {
		return "", errUnauthorized
	}
	return tok, nil
}

// TokenFunc maps a bearer token to its principal
type TokenFunc func(token string) (pnet.Principal, error)

// Port is a middleware.AuthPort over a TokenFunc
type Port struct{ resolve TokenFunc }

func NewPortFunc(fn TokenFunc) *Port { return &Port{resolve: fn} }

// Parse rejects missing or malformed headers, unknown tokens and principals without a user id
func (p *Port) Parse(r *http.Request) (pnet.Principal, error) {
	tok, err := Bearer(r)
	if err != nil || p.resolve == nil {
		return pnet.Principal{}, errUnauthorized
	}
	who, err := p.resolve(tok)
	if err != nil || who.UserID == "" {
		return pnet.Principal{}, errUnauthorized
	}
	return who, nil
}

// StaticTokens builds a TokenFunc from "token=user[:email]" entries; malformed
// entries are ignored. It stands in for an identity provider
func StaticTokens(entries []string) TokenFunc {
	known := make(map[string]pnet.Principal, len(entries))
	for _, e := range entries {
		tok, who, _ := strings.Cut(strings.TrimSpace(e), "=")
		if tok == "" || who == "" {
			continue
		}
		uid, email, _ := strings.Cut(who, ":")
		known[tok] = pnet.Principal{UserID: uid, Email: email}
	}
	return func(token string) (pnet.Principal, error) {
		p, ok := known[token]
		if !ok {
			return pnet.Principal{}, errUnauthorized
		}
		return p, nil
	}
}
