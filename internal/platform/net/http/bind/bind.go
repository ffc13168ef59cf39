// Package bind decodes and validates JSON request bodies
package bind

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	perr "logzq/internal/platform/errors"
	"logzq/internal/platform/logger"

	"github.com/go-json-experiment/json"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// FieldError aliases validator.FieldError
type FieldError = validator.FieldError

// ValidatorSvc is the shared validator with its english translator
type ValidatorSvc struct {
	Validator  *validator.Validate
	Translator ut.Translator
}

// Get returns the shared validator. Messages name fields by their json tag
var Get = sync.OnceValue(func() *ValidatorSvc {
	loc := en.New()
	trans, _ := ut.New(loc, loc).GetTranslator("en")

	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)
	_ = en_translations.RegisterDefaultTranslations(v, trans)
	registerRules(v, trans)

	return &ValidatorSvc{Validator: v, Translator: trans}
})

func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}

// JSONOptions controls ParseJSON. MaxBytes 0 means no limit
type JSONOptions struct {
	MaxBytes        int64
	DisallowUnknown bool
	AllowEmptyBody  bool
}

// DefaultJSONOptions caps bodies at 1MiB and rejects unknown members
var DefaultJSONOptions = JSONOptions{MaxBytes: 1 << 20, DisallowUnknown: true}

// ParseJSON decodes the body into T and validates it. Decode failures are
// json errors, rule failures are validation errors naming the field.
// Safe methods may omit the body
func ParseJSON[T any](r *http.Request, opts ...JSONOptions) (T, error) {
	var dst T
	o := DefaultJSONOptions
	if len(opts) > 0 {
		o = opts[0]
	}

	raw, err := readBody(r, o.MaxBytes)
	if err != nil {
		return dst, err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		switch {
		case o.AllowEmptyBody:
		case r.Method == http.MethodGet, r.Method == http.MethodHead,
			r.Method == http.MethodDelete, r.Method == http.MethodOptions:
			return dst, nil
		default:
			return dst, perr.JSONErrf("empty body")
		}
	} else if err := json.Unmarshal(raw, &dst, json.RejectUnknownMembers(o.DisallowUnknown)); err != nil {
		return dst, perr.JSONErrf("invalid JSON: %v", err)
	}

	if err := validate(dst); err != nil {
		var zero T
		return zero, err
	}
	return dst, nil
}

func readBody(r *http.Request, limit int64) ([]byte, error) {
	defer func() {
		if err := r.Body.Close(); err != nil {
			logger.Get().Error().Err(err).Msg("failed to close request body")
		}
	}()

	var src io.Reader = r.Body
	if limit > 0 {
		// one byte over tells an oversized body from one that fits exactly
		src = io.LimitReader(r.Body, limit+1)
	}
	raw, err := io.ReadAll(src)
	if err != nil {
		return nil, perr.JSONErrf("read body: %v", err)
	}
	if limit > 0 && int64(len(raw)) > limit {
		return nil, perr.JSONErrf("body larger than %d bytes", limit)
	}
	return raw, nil
}

func validate(v any) error {
	err := Get().Validator.Struct(v)
	if err == nil {
		return nil
	}
	var inv *validator.InvalidValidationError
	if errors.As(err, &inv) {
		logger.Get().Error().Err(inv).Msg("validator internal error")
		return perr.JSONErrf("validation error")
	}
	field, msg := ValidationFieldAndMessage(err)
	return perr.WithField(perr.Newf(perr.ErrorCodeValidation, "%s", msg), field)
}

// ValidationFieldAndMessage returns the first failing field and its message
func ValidationFieldAndMessage(err error) (field, message string) {
	if err == nil {
		return "", ""
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Field(), verrs[0].Translate(Get().Translator)
	}
	return "", err.Error()
}
