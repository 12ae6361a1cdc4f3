package service

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/nyaruka/phonenumbers"

	"github.com/imagehub/imagehub-web/internal/core/domain"
	"github.com/imagehub/imagehub-web/internal/pkg/metrics"
)

// defaultPhoneRegion is used for numbers typed without a country prefix.
const defaultPhoneRegion = "CO"

// tagPriority orders failures when several fields fail at once. A password
// mismatch is reported before anything else.
var tagPriority = map[string]int{
	"eqfield":  0,
	"required": 1,
	"contains": 2,
	"min":      3,
	"oneof":    4,
}

// formValidator wraps go-playground/validator and turns failures into the
// single inline message a form shows.
type formValidator struct {
	v *validator.Validate
}

func newFormValidator() *formValidator {
	return &formValidator{v: validator.New()}
}

// check validates i and counts rejections under form.
func (fv *formValidator) check(form string, i any) error {
	err := fv.v.Struct(i)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	metrics.ValidationRejectionsTotal.WithLabelValues(form).Inc()
	return domain.NewValidationError(firstMessage(ve))
}

func firstMessage(ve validator.ValidationErrors) string {
	best := ve[0]
	for _, fe := range ve[1:] {
		if rank(fe.Tag()) < rank(best.Tag()) {
			best = fe
		}
	}
	return tagMessage(best)
}

func rank(tag string) int {
	if r, ok := tagPriority[tag]; ok {
		return r
	}
	return len(tagPriority)
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "contains":
		return MsgInvalidEmail
	case "eqfield":
		return MsgPasswordMismatch
	case "min":
		return MsgPasswordTooShort
	case "oneof":
		return MsgInvalidRole
	default:
		return MsgRequiredFields
	}
}

// reject counts a rejection found outside struct validation.
func reject(form, msg string) error {
	metrics.ValidationRejectionsTotal.WithLabelValues(form).Inc()
	return domain.NewValidationError(msg)
}

// normalisePhone formats parseable numbers as E.164 and keeps anything else
// as typed.
func normalisePhone(raw string) string {
	raw = strings.TrimSpace(raw)
	num, err := phonenumbers.Parse(raw, defaultPhoneRegion)
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return raw
	}
	return phonenumbers.Format(num, phonenumbers.E164)
}

func trimAll(fields ...*string) {
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
	}
}
