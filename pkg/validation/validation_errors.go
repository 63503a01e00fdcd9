package validation

import (
	"errors"
	"fmt"
	"strings"

	"matchmakr-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

var enumTags = map[string]string{
	"employment_type":    "FULL_TIME, PART_TIME, CONTRACT, INTERNSHIP",
	"experience_level":   "ENTRY, MID, SENIOR, LEAD, EXECUTIVE",
	"role_type":          "CANDIDATE, EMPLOYER, ADMIN",
	"application_status": "PENDING, REVIEWED, SHORTLISTED, INTERVIEWED, OFFERED, ACCEPTED, REJECTED, WITHDRAWN",
	"match_type":         "ALGORITHM, MANUAL",
}

// FormatValidationErrors converts validator.ValidationErrors to field-level messages.
// Any other error becomes a single entry without a field.
func FormatValidationErrors(err error) []apperror.FieldError {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []apperror.FieldError{{Message: err.Error()}}
	}

	fields := make([]apperror.FieldError, 0, len(validationErrors))
	for _, e := range validationErrors {
		fields = append(fields, apperror.FieldError{
			Field:   fieldPath(e),
			Message: formatSingleError(e),
		})
	}
	return fields
}

// fieldPath strips the top-level struct name from the namespace
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return e.Field()
}

func formatSingleError(e validator.FieldError) string {
	param := e.Param()

	switch tag := e.Tag(); tag {
	case "required":
		return "This field is required"
	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("Must be at least %s characters", param)
		}
		return fmt.Sprintf("Must be at least %s", param)
	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("Must be at most %s characters", param)
		}
		return fmt.Sprintf("Must be at most %s", param)
	case "gte":
		return fmt.Sprintf("Must be greater than or equal to %s", param)
	case "lte":
		return fmt.Sprintf("Must be less than or equal to %s", param)
	case "gt":
		return fmt.Sprintf("Must be greater than %s", param)
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", strings.Join(strings.Fields(param), ", "))
	case "email":
		return "Enter a valid email address"
	case "url":
		return "Enter a valid URL"
	case "alphanum":
		return "Only letters and digits are allowed"
	case "no_emoji":
		return "Must not contain emoji or special symbols"
	case "dive":
		return "Contains an invalid item"
	default:
		if choices, ok := enumTags[tag]; ok {
			return fmt.Sprintf("%q is not a valid choice. Must be one of: %s", fmt.Sprint(e.Value()), choices)
		}
		return fmt.Sprintf("Failed on the '%s' rule", tag)
	}
}
