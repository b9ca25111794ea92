// internal/utils/validator.go
package utils

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   strings.ToLower(e.Field()),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

// ValidationMessage flattens field errors into a single human-readable string,
// the form the dashboard surfaces verbatim in its notifications.
func ValidationMessage(err error) string {
	fieldErrors := GetValidationErrors(err)
	if len(fieldErrors) == 0 {
		return "Invalid input"
	}

	messages := make([]string, 0, len(fieldErrors))
	for _, e := range fieldErrors {
		messages = append(messages, e.Message)
	}
	return strings.Join(messages, "; ")
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		if e.Kind().String() == "slice" {
			return e.Field() + " must contain at least " + e.Param() + " entries"
		}
		return e.Field() + " must be at least " + e.Param() + " characters"
	case "max":
		if e.Kind().String() == "slice" {
			return e.Field() + " must contain at most " + e.Param() + " entries"
		}
		return e.Field() + " must be at most " + e.Param() + " characters"
	case "gte":
		return e.Field() + " must be " + e.Param() + " or greater"
	case "url":
		return e.Field() + " must be a valid URL"
	case "uuid":
		return e.Field() + " must be a valid id"
	default:
		return e.Field() + " is invalid"
	}
}
