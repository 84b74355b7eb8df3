package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ScottNealon/ArtifactScouter_Go/internal/domain"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

// Global validator instance
var validate *Validator

// InitValidator initializes the global validator
func InitValidator() {
	v := validator.New()

	_ = v.RegisterValidation("slot", validateSlot)
	_ = v.RegisterValidation("stat", validateStat)
	_ = v.RegisterValidation("source", validateSource)
	_ = v.RegisterValidation("critmode", validateCritMode)

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
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

func validateSlot(fl validator.FieldLevel) bool {
	return domain.ValidSlot(domain.Slot(fl.Field().String()))
}

func validateStat(fl validator.FieldLevel) bool {
	_, ok := domain.ParseStat(fl.Field().String())
	return ok
}

func validateSource(fl validator.FieldLevel) bool {
	switch domain.LootSource(fl.Field().String()) {
	case domain.SourceDomain, domain.SourceWorldBoss, domain.SourceStrongbox:
		return true
	}
	return false
}

func validateCritMode(fl validator.FieldLevel) bool {
	switch domain.CritMode(fl.Field().String()) {
	case domain.CritModeNever, domain.CritModeAlways, domain.CritModeExpected:
		return true
	}
	return false
}

// FormatValidationError formats validation errors into a user-friendly map.
// This prevents leaking internal struct names and provides cleaner error messages.
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
		case "slot":
			errs[field] = "Unknown artifact slot"
		case "stat":
			errs[field] = "Unknown stat name"
		case "source":
			errs[field] = "Unknown loot source"
		case "critmode":
			errs[field] = "Crit mode must be never, always or expected"
		case "min":
			errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
		case "max":
			errs[field] = fmt.Sprintf("Must be at most %s", e.Param())
		case "gt":
			errs[field] = fmt.Sprintf("Must be greater than %s", e.Param())
		case "dive":
			errs[field] = "Invalid element"
		default:
			errs[field] = "Invalid value"
		}
	}

	return errs
}
