package bind

import (
	"bufio"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	perr "videotube/internal/platform/errors"
)

// JSONOptions tunes ParseJSON; the zero value reads an unbounded body and
// accepts unknown fields
type JSONOptions struct {
	MaxBytes        int64
	DisallowUnknown bool
	AllowEmptyBody  bool
}

var strictJSON = JSONOptions{MaxBytes: 1 << 20, DisallowUnknown: true}

// ParseJSON decodes one JSON value from the body into T and validates it.
// Without options bodies are capped at 1MB and unknown fields are rejected.
// An empty body is an error except on GET, HEAD, DELETE and OPTIONS
func ParseJSON[T any](r *http.Request, opts ...JSONOptions) (T, error) {
	var zero, dst T
	o := strictJSON
	if len(opts) > 0 {
		o = opts[0]
	}
	defer r.Body.Close()

	var body io.Reader = r.Body
	if o.MaxBytes > 0 {
		body = io.LimitReader(body, o.MaxBytes)
	}
	br := bufio.NewReader(body)
	if _, err := br.Peek(1); errors.Is(err, io.EOF) {
		if o.AllowEmptyBody || bodyless(r.Method) {
			return zero, nil
		}
		return zero, perr.JSONErrf("empty body")
	}

	dec := json.NewDecoder(br)
	if o.DisallowUnknown {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(&dst); err != nil {
		return zero, perr.JSONErrf("invalid JSON: %v", err)
	}
	if dec.More() {
		return zero, perr.JSONErrf("unexpected trailing data")
	}
	if err := Validate(dst); err != nil {
		return zero, err
	}
	return dst, nil
}

func bodyless(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodDelete, http.MethodOptions:
		return true
	}
	return false
}
