// Package http writes the JSON envelope every API route answers with
package http

import (
	"encoding/json"
	stdhttp "net/http"

	pnet "videotube/internal/platform/net"
)

// Envelope is the body of every response; Data is set on success and Error on failure
type Envelope struct {
	pnet.Wire
	Data any `json:"data,omitempty"`
}

// JSON writes v as application/json with the given status
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Response is what return-style handlers hand back
// An error Body picks its own status
type Response struct {
	Status int
	Body   any
	Header stdhttp.Header
}

// Handle adapts a Response-returning handler to net/http
func Handle(h func(r *stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		h(r).write(w, r)
	}
}

func (resp Response) write(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	for k, vv := range resp.Header {
		for _, v := range vv {
			w.Header().Add(k, v)
		}
	}
	reqID := pnet.RequestID(r.Context())

	if err, ok := resp.Body.(error); ok && err != nil {
		status, wire := pnet.Error(err, reqID)
		JSON(w, status, Envelope{Wire: wire})
		return
	}

	status := resp.Status
	if status == 0 {
		status = stdhttp.StatusOK
	}
	_, wire := pnet.Error(nil, reqID)
	wire.StatusCode, wire.Status = status, stdhttp.StatusText(status)
	JSON(w, status, Envelope{Wire: wire, Data: resp.Body})
}

// OK returns a 200 response
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// Error returns a response whose status and envelope come from err
func Error(err error) Response { return Response{Body: err} }
