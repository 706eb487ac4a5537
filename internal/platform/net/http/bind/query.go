package bind

import (
	"net/http"
	"reflect"
	"strconv"
	"strings"

	perr "videotube/internal/platform/errors"
)

// ParseQuery fills T from the request query string and validates it
// Fields opt in with a `query:"name"` tag; string, int and bool kinds are supported
func ParseQuery[T any](r *http.Request) (T, error) {
	var dst T
	rv := reflect.ValueOf(&dst).Elem()
	if rv.Kind() != reflect.Struct {
		return dst, perr.Internalf("ParseQuery target must be a struct, got %s", rv.Kind())
	}
	q := r.URL.Query()
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		name := sf.Tag.Get("query")
		if name == "" || name == "-" || !sf.IsExported() {
			continue
		}
		raw := strings.TrimSpace(q.Get(name))
		if raw == "" {
			continue
		}
		fv := rv.Field(i)
		switch fv.Kind() {
		case reflect.String:
			fv.SetString(raw)
		case reflect.Int, reflect.Int32, reflect.Int64:
			n, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return dst, perr.FieldErrorf(name, "%s must be an integer", name)
			}
			fv.SetInt(n)
		case reflect.Bool:
			b, err := strconv.ParseBool(raw)
			if err != nil {
				return dst, perr.FieldErrorf(name, "%s must be a boolean", name)
			}
			fv.SetBool(b)
		default:
			return dst, perr.Internalf("unsupported query field kind %s for %q", fv.Kind(), name)
		}
	}
	return dst, Validate(dst)
}
