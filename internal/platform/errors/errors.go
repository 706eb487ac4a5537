// Package errors carries a machine code next to the human message so
// handlers can pick an HTTP status without string matching.
// Import it as perr.
package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
)

// ErrorCode is the stable machine code sent to clients in error.code
type ErrorCode uint16

// Codes are part of the wire format; append only
const (
	ErrorCodeUnknown ErrorCode = iota
	ErrorCodePanic
	ErrorCodeUnavailable
	ErrorCodeTooManyRequests
	ErrorCodeConflict
	ErrorCodeUnauthorized
	ErrorCodeForbidden
	ErrorCodeInvalidArgument
	ErrorCodeValidation
	ErrorCodeJSON
	ErrorCodeNotFound
	ErrorCodeDuplicateKey
	ErrorCodeDB
	// ErrorCodeUpstream means YouTube or another proxied API failed
	ErrorCodeUpstream
)

var statusByCode = map[ErrorCode]int{
	ErrorCodeNotFound:        http.StatusNotFound,
	ErrorCodeInvalidArgument: http.StatusUnprocessableEntity,
	ErrorCodeDuplicateKey:    http.StatusConflict,
	ErrorCodeConflict:        http.StatusConflict,
	ErrorCodeValidation:      http.StatusBadRequest,
	ErrorCodeJSON:            http.StatusBadRequest,
	ErrorCodeUnauthorized:    http.StatusUnauthorized,
	ErrorCodeForbidden:       http.StatusForbidden,
	ErrorCodeTooManyRequests: http.StatusTooManyRequests,
	ErrorCodeUnavailable:     http.StatusServiceUnavailable,
	ErrorCodeUpstream:        http.StatusBadGateway,
}

// HTTPStatusCode returns the response status for c; unmapped codes are 500
func HTTPStatusCode(c ErrorCode) int {
	if s, ok := statusByCode[c]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// StatusCode classifies a status returned by a remote service
func StatusCode(status int) ErrorCode {
	switch status {
	case http.StatusNotFound:
		return ErrorCodeNotFound
	case http.StatusUnauthorized:
		return ErrorCodeUnauthorized
	case http.StatusForbidden:
		return ErrorCodeForbidden
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return ErrorCodeValidation
	case http.StatusConflict:
		return ErrorCodeConflict
	case http.StatusTooManyRequests:
		return ErrorCodeTooManyRequests
	case http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return ErrorCodeUnavailable
	}
	if status >= 500 {
		return ErrorCodeUpstream
	}
	return ErrorCodeUnknown
}

// ErrNotFound is the shared not found sentinel
var ErrNotFound = New(ErrorCodeNotFound, "not found")

// Error is a coded error with an optional input field and cause
type Error struct {
	code  ErrorCode
	msg   string
	field string
	cause error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.cause == nil {
		return e.msg
	}
	return e.msg + ": " + e.cause.Error()
}

func (e *Error) Unwrap() error { return e.cause }

// Code is the machine code
func (e *Error) Code() ErrorCode { return e.code }

// Field names the offending input, empty when not about one input
func (e *Error) Field() string { return e.field }

// Wire is the error object inside a response envelope
type Wire struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
}

// WireFrom renders err for clients; the cause chain is not exposed for coded errors
func WireFrom(err error) Wire {
	switch e, ok := As(err); {
	case err == nil:
		return Wire{}
	case ok:
		return Wire{Code: e.code, Message: e.msg, Field: e.field}
	default:
		return Wire{Code: ErrorCodeUnknown, Message: err.Error()}
	}
}

// HTTP returns the status and wire payload for err; nil is 200 with an empty Wire
func HTTP(err error) (int, Wire) {
	if err == nil {
		return http.StatusOK, Wire{}
	}
	return HTTPStatus(err), WireFrom(err)
}

// As finds the outermost *Error in err's chain
func As(err error) (*Error, bool) {
	var e *Error
	ok := stderrs.As(err, &e)
	return e, ok
}

// Root returns the innermost cause
func Root(err error) error {
	for err != nil {
		next := stderrs.Unwrap(err)
		if next == nil {
			break
		}
		err = next
	}
	return err
}

// CodeOf returns err's code, ErrorCodeUnknown for foreign errors
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

// IsCode reports whether err carries code
func IsCode(err error, code ErrorCode) bool { return CodeOf(err) == code }

// HTTPStatus is HTTPStatusCode(CodeOf(err))
func HTTPStatus(err error) int { return HTTPStatusCode(CodeOf(err)) }

// WithField returns a copy of err bound to field; foreign errors pass through
func WithField(err error, field string) error {
	e, ok := As(err)
	if !ok {
		return err
	}
	c := *e
	c.field = field
	return &c
}

func New(code ErrorCode, msg string) error { return &Error{code: code, msg: msg} }

func Newf(code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...)}
}

// Wrap attaches code and msg to cause; Error() prints both, WireFrom only msg
func Wrap(cause error, code ErrorCode, msg string) error {
	return &Error{code: code, msg: msg, cause: cause}
}

func Wrapf(cause error, code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...), cause: cause}
}

// FieldErrorf is a validation error about one input
func FieldErrorf(field, format string, a ...any) error {
	return &Error{code: ErrorCodeValidation, msg: fmt.Sprintf(format, a...), field: field}
}

func NotFoundf(format string, a ...any) error     { return Newf(ErrorCodeNotFound, format, a...) }
func Validationf(format string, a ...any) error   { return Newf(ErrorCodeValidation, format, a...) }
func JSONErrf(format string, a ...any) error      { return Newf(ErrorCodeJSON, format, a...) }
func PanicErrf(format string, a ...any) error     { return Newf(ErrorCodePanic, format, a...) }
func Unauthorizedf(format string, a ...any) error { return Newf(ErrorCodeUnauthorized, format, a...) }
func Conflictf(format string, a ...any) error     { return Newf(ErrorCodeConflict, format, a...) }
func Internalf(format string, a ...any) error     { return Newf(ErrorCodeUnknown, format, a...) }
