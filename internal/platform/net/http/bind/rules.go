package bind

import (
	"time"

	"logzq/internal/platform/clock"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
)

// rule is a message override, plus a check when the tag is ours
type rule struct {
	tag   string
	text  string // {0} is the field, {1} the tag parameter
	check validator.Func
}

var rules = []rule{
	{tag: "min", text: "{0} must be at least {1}"},
	{tag: "max", text: "{0} must be at most {1}"},
	{
		tag:  "timespec",
		text: "{0} must be RFC3339, a date or epoch milliseconds",
		check: func(fl validator.FieldLevel) bool {
			_, err := clock.Parse(fl.Field().String())
			return err == nil
		},
	},
	{
		tag:  "duration",
		text: "{0} must be a positive duration such as 30m or 12h",
		check: func(fl validator.FieldLevel) bool {
			d, err := time.ParseDuration(fl.Field().String())
			return err == nil && d > 0
		},
	},
}

func registerRules(v *validator.Validate, trans ut.Translator) {
	for _, r := range rules {
		if r.check != nil {
			_ = v.RegisterValidation(r.tag, r.check)
		}
		_ = v.RegisterTranslation(r.tag, trans,
			func(t ut.Translator) error { return t.Add(r.tag, r.text, true) },
			func(t ut.Translator, fe validator.FieldError) string {
				msg, _ := t.T(r.tag, fe.Field(), fe.Param())
				return msg
			},
		)
	}
}
