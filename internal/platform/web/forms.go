// Package web provides helpers shared by the HTML-rendering handlers.
package web

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// FieldErrors converts a gin binding error into per-field messages keyed by
// struct field name, ready to be re-rendered next to the originating form
// inputs. Non-validation errors map to a single catch-all message.
func FieldErrors(err error) map[string]string {
	out := map[string]string{}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["Form"] = "Invalid form submission"
		return out
	}

	for _, fe := range verrs {
		out[fe.Field()] = fieldMessage(fe)
	}
	return out
}

// fieldMessage renders one validation failure as a user-facing message.
func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "email":
		return "Must be a valid email address"
	case "eqfield":
		return "Passwords must match"
	case "gte", "lte":
		return fmt.Sprintf("%s must be between 0 and 59", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
