package handlers

import (
	"errors"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Bangladeshi mobile: optional 88 country prefix, then 01 followed by an
// operator digit 3-9 and eight more digits.
var bdPhonePattern = regexp.MustCompile(`^(\+?88)?01[3-9][0-9]{8}$`)

func isValidBDPhone(phone string) bool {
	return bdPhonePattern.MatchString(strings.TrimSpace(phone))
}

// RegisterValidators hooks the custom tags into gin's binding engine. Call
// once at startup, before any route binds a request.
func RegisterValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("bdphone", func(fl validator.FieldLevel) bool {
			return isValidBDPhone(fl.Field().String())
		})
	}
}

// bindingFieldErrors flattens a validator error into field-level messages so
// checkout failures report which field is wrong instead of a bare 400.
func bindingFieldErrors(err error) map[string]string {
	fields := map[string]string{}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		fields["body"] = "invalid request body"
		return fields
	}

	for _, fe := range validationErrs {
		name := strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
		switch fe.Tag() {
		case "required":
			fields[name] = "required"
		case "bdphone":
			fields[name] = "must be a valid Bangladeshi mobile number"
		case "email":
			fields[name] = "must be a valid email address"
		case "gt", "min":
			fields[name] = "must be greater than zero"
		case "oneof":
			fields[name] = "value not allowed"
		default:
			fields[name] = "invalid"
		}
	}
	return fields
}
