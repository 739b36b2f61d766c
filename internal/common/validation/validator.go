package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"staff-acl/internal/common/apperr"

	playgroundvalidator "github.com/go-playground/validator/v10"
)

var validate = newValidate()

func newValidate() *playgroundvalidator.Validate {
	v := playgroundvalidator.New()

	// Report JSON names so error messages match the request body
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("access_level", func(fl playgroundvalidator.FieldLevel) bool {
		switch fl.Field().String() {
		case "NO", "VIEW", "EDIT":
			return true
		}
		return false
	})

	return v
}

// Struct validates a request DTO. Failures wrap apperr.ErrInvalidArgument.
func Struct(i interface{}) error {
	err := validate.Struct(i)
	if err == nil {
		return nil
	}

	var validationErrors playgroundvalidator.ValidationErrors
	if errors.As(err, &validationErrors) {
		fields := make([]string, 0, len(validationErrors))
		for _, fe := range validationErrors {
			fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
		}
		return fmt.Errorf("%w: validation failed on fields: %s", apperr.ErrInvalidArgument, strings.Join(fields, ", "))
	}
	return fmt.Errorf("%w: %v", apperr.ErrInvalidArgument, err)
}

// Var validates a single value against a tag expression.
func Var(field interface{}, tag string) error {
	if err := validate.Var(field, tag); err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrInvalidArgument, err)
	}
	return nil
}
