package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/Homestead_Go/internal/domain"
)

// actionTag is the custom validation tag for the action field
const actionTag = "action"

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

// Global validator instance
var validate *Validator

// InitValidator initializes the global validator
func InitValidator() {
	v := validator.New()
	_ = v.RegisterValidation(actionTag, validateAction)
	validate = &Validator{validate: v}
}

// GetValidator returns the global validator instance
func GetValidator() *Validator {
	if validate == nil {
		InitValidator()
	}
	return validate
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s any) error {
	return v.validate.Struct(s)
}

// FormatValidationError turns validation errors into a field -> message map
// keyed by lower-cased field name
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = "Invalid request format"
		return errs
	}

	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			errs[field] = "This field is required"
		case actionTag:
			errs[field] = "Must be PLANT or HARVEST"
		case "max":
			errs[field] = fmt.Sprintf("Must be at most %s characters", e.Param())
		case "excludesall":
			errs[field] = "Contains invalid characters"
		default:
			errs[field] = "Invalid value"
		}
	}

	return errs
}

// isUnknownAction reports whether err is only a failed action tag, which is
// reported to the client as an engine UNKNOWN_ACTION rather than a bad body
func isUnknownAction(err error) bool {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return false
	}
	for _, e := range validationErrors {
		if e.Tag() != actionTag {
			return false
		}
	}
	return true
}

func validateAction(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	// Emptiness is the job of the required tag
	if value == "" {
		return true
	}
	_, err := domain.ParseAction(value, "", "")
	return err == nil
}
