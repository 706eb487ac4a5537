package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	perr "videotube/internal/platform/errors"
)

// GatewayError is a failed call to the Data API or to the VideoTube gateway
// Status is 0 when no response was received at all
type GatewayError struct {
	Message string
	Status  int
	RawBody string
	Err     error
}

// Error interface
func (e *GatewayError) Error() string { return e.Message }

// Unwrap exposes the project error carrying the mapped code
func (e *GatewayError) Unwrap() error { return e.Err }

// HTTPStatus interface
func (e *GatewayError) HTTPStatus() int { return e.Status }

// ErrorFromResponse builds a GatewayError from a non-2xx response body
// The message comes from {"error":{"message":...}} when present, else "HTTP <status>: <text>"
func ErrorFromResponse(status int, body []byte) *GatewayError {
	msg := messageOf(body)
	if msg == "" {
		msg = fmt.Sprintf("HTTP %d: %s", status, http.StatusText(status))
	}
	return newGatewayError(status, msg, body)
}

// messageOf extracts error.message from a failure body, "" when absent
func messageOf(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil || eb.Error == nil {
		return ""
	}
	return strings.TrimSpace(eb.Error.Message)
}

func newGatewayError(status int, msg string, body []byte) *GatewayError {
	return &GatewayError{
		Message: msg,
		Status:  status,
		RawBody: string(body),
		Err:     perr.New(perr.StatusCode(status), msg),
	}
}

// networkError wraps a transport failure where no response arrived
func networkError(err error) *GatewayError {
	return &GatewayError{
		Message: "Network request failed",
		Err:     perr.Wrap(err, perr.ErrorCodeUnavailable, "Network request failed"),
	}
}

// IsCanceled reports whether err is a cancellation that callers should ignore
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled)
}

// IsNotFound reports whether err means the requested resource does not exist
func IsNotFound(err error) bool { return perr.IsCode(err, perr.ErrorCodeNotFound) }

// IsUnauthorized reports whether err means the caller is not signed in
func IsUnauthorized(err error) bool { return perr.IsCode(err, perr.ErrorCodeUnauthorized) }

// AsGatewayError unwraps a *GatewayError from err
func AsGatewayError(err error) (*GatewayError, bool) {
	var ge *GatewayError
	if errors.As(err, &ge) {
		return ge, true
	}
	return nil, false
}
