// Package httpkit is the routing and handler surface modules build on
// so they never import internal/platform/net/http directly
package httpkit

import (
	"net/http"

	phttp "videotube/internal/platform/net/http"
	"videotube/internal/platform/net/http/bind"
)

type (
	// Envelope is the JSON body every route answers with
	Envelope = phttp.Envelope

	// Response is what return-style handlers hand back
	Response = phttp.Response

	// Handler is the platform handler type
	Handler = phttp.Handler

	// Router is the platform router seam
	Router = phttp.Router
)

// Param returns a named route parameter
func Param(r *http.Request, name string) string { return phttp.URLParam(r, name) }

// Error maps err onto a status and error envelope
func Error(err error) Response { return phttp.Error(err) }

// Handle adapts a Response-returning function
func Handle(fn func(*http.Request) Response) Handler { return phttp.Handle(fn) }

// reply turns a handler result into a Response; a returned Response passes through
func reply(out any, err error) Response {
	if err != nil {
		return phttp.Error(err)
	}
	if resp, ok := out.(Response); ok {
		return resp
	}
	return phttp.OK(out)
}

// Get mounts a GET handler with no input binding
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, Handle(func(req *http.Request) Response { return reply(h(req)) }))
}

// Post mounts a POST handler that reads no body
func Post(r Router, path string, h func(*http.Request) (any, error)) {
	r.Post(path, Handle(func(req *http.Request) Response { return reply(h(req)) }))
}

// GetQuery mounts a GET handler whose input is bound and validated from the query string
func GetQuery[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Get(path, Handle(func(req *http.Request) Response {
		in, err := bind.ParseQuery[T](req)
		if err != nil {
			return phttp.Error(err)
		}
		return reply(h(req, in))
	}))
}

// PostJSON mounts a POST handler whose JSON body is bound and validated
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, Handle(func(req *http.Request) Response {
		in, err := bind.ParseJSON[T](req)
		if err != nil {
			return phttp.Error(err)
		}
		return reply(h(req, in))
	}))
}
