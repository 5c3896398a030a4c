package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"storefront/internal/apperr"
)

// Record is implemented by every persisted entity. Engines rely on it to
// pick the table, manage the surrogate key and enforce uniqueness.
type Record interface {
	TableName() string
	GetID() int64
	SetID(id int64)
	// UniqueKeys lists the values of every unique constraint of the row.
	// Engines with native constraints ignore it.
	UniqueKeys() []string
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			name = strings.SplitN(field.Tag.Get("bson"), ",", 2)[0]
		}
		if name == "" || name == "-" {
			return ""
		}
		return name
	})
	return v
}

// check validates v and converts validator output into a single
// ValidationError listing every offending field.
func check(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return apperr.Validation("invalid %T: %v", v, err)
	}

	details := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		details = append(details, describe(fe))
	}
	return apperr.Validation("%s", strings.Join(details, "; "))
}

func describe(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func key(column string, values ...any) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return column + "=" + strings.Join(parts, ",")
}

func trim(s string) string { return strings.TrimSpace(s) }
