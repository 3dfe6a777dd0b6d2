package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report json names so details match the request body
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// ValidateStruct returns one FieldError per failed constraint, or nil when valid.
func ValidateStruct(data any) []FieldError {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []FieldError{{Field: "body", Message: err.Error()}}
	}

	details := make([]FieldError, 0, len(validationErrors))
	for _, fe := range validationErrors {
		details = append(details, FieldError{
			Field:         fieldPath(fe),
			Message:       getErrorMessage(fe),
			RejectedValue: rejectedValue(fe),
		})
	}
	return details
}

// ValidateVar validates a single value against a tag, e.g. "required,uuid".
func ValidateVar(field string, value any, tag string) []FieldError {
	err := validate.Var(value, tag)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []FieldError{{Field: field, Message: err.Error()}}
	}

	details := make([]FieldError, 0, len(validationErrors))
	for _, fe := range validationErrors {
		details = append(details, FieldError{Field: field, Message: getErrorMessage(fe), RejectedValue: value})
	}
	return details
}

// fieldPath drops the top level struct name: "RegisterRequest.email" becomes "email".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func rejectedValue(fe validator.FieldError) any {
	if strings.Contains(strings.ToLower(fe.Field()), "password") {
		return nil
	}
	value := fe.Value()
	if value == nil {
		return nil
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Ptr && rv.IsNil() {
		return nil
	}
	if rv.IsZero() {
		return nil
	}
	return value
}

// converts validator errors to human-readable messages
func getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "min":
		if err.Kind() == reflect.String || err.Kind() == reflect.Slice {
			return fmt.Sprintf("Minimum length is %s", err.Param())
		}
		return fmt.Sprintf("Must be at least %s", err.Param())
	case "max":
		if err.Kind() == reflect.String || err.Kind() == reflect.Slice {
			return fmt.Sprintf("Maximum length is %s", err.Param())
		}
		return fmt.Sprintf("Must be at most %s", err.Param())
	case "gt":
		return fmt.Sprintf("Must be greater than %s", err.Param())
	case "gte":
		return fmt.Sprintf("Must be greater than or equal to %s", err.Param())
	case "len":
		return fmt.Sprintf("Must be exactly %s characters", err.Param())
	case "oneof":
		options := strings.ReplaceAll(err.Param(), " ", ", ")
		return fmt.Sprintf("Must be one of: %s", options)
	case "uuid":
		return "Must be a valid UUID"
	case "url":
		return "Must be a valid URL"
	case "datetime":
		return fmt.Sprintf("Must be a date in format %s", err.Param())
	case "iso3166_1_alpha2":
		return "Must be a valid ISO 3166-1 alpha-2 country code"
	default:
		return fmt.Sprintf("Invalid %s field", err.Field())
	}
}
