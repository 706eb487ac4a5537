package net

import (
	"net/http"

	perr "videotube/internal/platform/errors"
)

// Wire is the envelope header every response carries. Middleware that
// answers before a handler runs writes it alone; handlers embed it
type Wire struct {
	StatusCode int        `json:"status_code"`
	Status     string     `json:"status"`
	Error      *perr.Wire `json:"error,omitempty"`
	RequestID  string     `json:"request_id,omitempty"`
}

// Error returns err's status and envelope; nil err is a plain 200
func Error(err error, reqID string) (int, Wire) {
	status, w := perr.HTTP(err)
	out := Wire{StatusCode: status, Status: http.StatusText(status), RequestID: reqID}
	if err != nil {
		out.Error = &w
	}
	return status, out
}
