package services

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/maxaizer/placement-portal/internal/apperr"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	return v
}

func validateInput(input any) error {
	return toValidationError(validate.Struct(input))
}

func toValidationError(err error) error {
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return apperr.Wrap(apperr.KindValidation, err, "invalid input")
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		messages = append(messages, describeFieldError(fieldErr))
	}
	return apperr.Validation("%s", strings.Join(messages, "; "))
}

func describeFieldError(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return fieldErr.Field() + " is required"
	case "oneof":
		return fieldErr.Field() + " must be one of: " + strings.ReplaceAll(fieldErr.Param(), " ", ", ")
	case "max":
		return fieldErr.Field() + " is too long"
	case "url", "http_url":
		return fieldErr.Field() + " must be a valid url"
	default:
		return fieldErr.Field() + " is invalid"
	}
}
