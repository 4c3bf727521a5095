package validation

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
)

// Validator wraps go-playground/validator for struct-tag checks on request
// DTOs (required strings, length caps, enum membership). Numeric range and
// date checks live on Number and Date because their bounds vary per field.
type Validator struct {
	v *validator.Validate
}

// New creates a validator configured for our request DTOs.
func New() *Validator {
	v := validator.New()

	// Use JSON tag names in issue fields.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := fld.Tag.Get("json")
		if name == "" {
			return fld.Name
		}
		// Remove options like omitempty, -
		for i := range len(name) {
			if name[i] == ',' {
				return name[:i]
			}
		}
		return name
	})

	return &Validator{v: v}
}

// Struct runs tag validation on s and appends one issue per failing field.
// A non-nil error indicates the struct itself could not be validated
// (programming error), not a client problem.
func (v *Validator) Struct(is *Issues, s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	for _, e := range validationErrs {
		is.Add(e.Field(), friendlyMessage(e))
	}
	return nil
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must not exceed %s characters", e.Param())
	case "min":
		return fmt.Sprintf("must be at least %s characters", e.Param())
	case "oneof":
		return "must be one of: " + e.Param()
	default:
		return "is invalid"
	}
}
