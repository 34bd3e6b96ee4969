package validator

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/promptforge/prompt-service/internal/models"
)

// ValidationError represents a single field validation failure.
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
	Rule    string      `json:"rule,omitempty"`
}

type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	if len(ve) == 1 {
		return fmt.Sprintf("validation failed: %s %s", ve[0].Field, ve[0].Message)
	}
	return fmt.Sprintf("validation failed: %d field errors", len(ve))
}

// Validator wraps go-playground/validator with the domain enum rules.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	validate := validator.New()

	v := &Validator{validate: validate}
	v.registerDomainRules()

	return v
}

// Validate validates a struct and returns nil when it passes.
func (v *Validator) Validate(s interface{}) ValidationErrors {
	var errors ValidationErrors

	err := v.validate.Struct(s)
	if err != nil {
		for _, err := range err.(validator.ValidationErrors) {
			errors = append(errors, ValidationError{
				Field:   err.Field(),
				Message: v.getErrorMessage(err),
				Value:   err.Value(),
				Rule:    err.Tag(),
			})
		}
	}

	return errors
}

func (v *Validator) registerDomainRules() {
	v.validate.RegisterValidation("prompt_category", func(fl validator.FieldLevel) bool {
		return models.PromptCategory(fl.Field().String()).IsValid()
	})

	v.validate.RegisterValidation("response_style", func(fl validator.FieldLevel) bool {
		return models.ResponseStyle(fl.Field().String()).IsValid()
	})

	v.validate.RegisterValidation("user_role", func(fl validator.FieldLevel) bool {
		return models.UserRole(fl.Field().String()).IsValid()
	})
}

func (v *Validator) getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s", err.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", err.Param())
	case "eqfield":
		return fmt.Sprintf("must match %s", err.Param())
	case "prompt_category":
		return "must be a valid prompt category"
	case "response_style":
		return "must be a valid response style"
	case "user_role":
		return "must be a valid user role"
	default:
		return fmt.Sprintf("validation failed for rule '%s'", err.Tag())
	}
}
