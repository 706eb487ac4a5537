// Package bind decodes request bodies and query strings into structs and runs
// go-playground/validator over them, reporting the first failing field
package bind

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	perr "videotube/internal/platform/errors"
	"videotube/internal/platform/logger"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entrans "github.com/go-playground/validator/v10/translations/en"
)

type engine struct {
	v  *validator.Validate
	tr ut.Translator
}

var eng = sync.OnceValue(func() engine {
	loc := en.New()
	tr, _ := ut.New(loc, loc).GetTranslator("en")

	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(wireName)
	_ = entrans.RegisterDefaultTranslations(v, tr)
	_ = v.RegisterValidation("comma_ids", commaIDs)

	for tag, text := range map[string]string{
		"min":       "{0} must be at least {1}",
		"max":       "{0} must be at most {1}",
		"comma_ids": "{0} must be a comma-separated list of ids",
	} {
		_ = v.RegisterTranslation(tag, tr,
			func(t ut.Translator) error { return t.Add(tag, text, true) },
			func(t ut.Translator, fe validator.FieldError) string {
				msg, _ := t.T(tag, fe.Field(), fe.Param())
				return msg
			})
	}
	return engine{v: v, tr: tr}
})

// Validate checks v's validate tags; failures are Validation errors bound to
// the first offending field's wire name
func Validate(v any) error {
	err := eng().v.Struct(v)
	if err == nil {
		return nil
	}
	var inv *validator.InvalidValidationError
	if errors.As(err, &inv) {
		logger.Get().Error().Err(err).Msg("validator misuse")
		return perr.Validationf("validation error")
	}
	field, msg := describe(err)
	if field == "" {
		return perr.Validationf("%s", msg)
	}
	return perr.FieldErrorf(field, "%s", msg)
}

// describe returns the first failing field and its english message
func describe(err error) (field, msg string) {
	var ves validator.ValidationErrors
	if errors.As(err, &ves) && len(ves) > 0 {
		return ves[0].Field(), ves[0].Translate(eng().tr)
	}
	if err == nil {
		return "", ""
	}
	return "", err.Error()
}

// wireName reports fields by their query or json tag so messages match what clients sent
func wireName(f reflect.StructField) string {
	for _, key := range [...]string{"query", "json"} {
		name, _, _ := strings.Cut(f.Tag.Get(key), ",")
		if name != "" && name != "-" {
			return name
		}
	}
	return f.Name
}

// commaIDs accepts "a,b,c" where each id is a non-empty run of [A-Za-z0-9_-]
func commaIDs(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	for _, id := range strings.Split(s, ",") {
		if id == "" || strings.IndexFunc(id, notIDRune) >= 0 {
			return false
		}
	}
	return true
}

func notIDRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		return false
	}
	return true
}
